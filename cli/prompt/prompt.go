// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package prompt

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/gagliardetto/solana-go"
	"github.com/manifoldco/promptui"

	"github.com/gongde/countervm/utils"
)

var (
	ErrInputEmpty          = errors.New("input is empty")
	ErrInvalidChoice       = errors.New("invalid choice")
	ErrInsufficientBalance = errors.New("insufficient balance")
)

func Address(label string) (solana.PublicKey, error) {
	promptText := promptui.Prompt{
		Label: label,
		Validate: func(input string) error {
			_, err := solana.PublicKeyFromBase58(strings.TrimSpace(input))
			return err
		},
	}
	raw, err := promptText.Run()
	if err != nil {
		return solana.PublicKey{}, err
	}
	return solana.PublicKeyFromBase58(strings.TrimSpace(raw))
}

// Amount reads a SOL amount no larger than [maxValue] lamports.
func Amount(label string, maxValue uint64) (uint64, error) {
	promptText := promptui.Prompt{
		Label: label,
		Validate: func(input string) error {
			if len(input) == 0 {
				return ErrInputEmpty
			}
			amount, err := utils.ParseBalance(input)
			if err != nil {
				return err
			}
			if amount > maxValue {
				return ErrInsufficientBalance
			}
			return nil
		},
	}
	rawAmount, err := promptText.Run()
	if err != nil {
		return 0, err
	}
	return utils.ParseBalance(strings.TrimSpace(rawAmount))
}

func Int(
	label string,
	maxValue int,
) (int, error) {
	stringToInt := func(input string, maxValue int) (int, error) {
		input = strings.TrimSpace(input)

		if len(input) == 0 {
			return 0, ErrInputEmpty
		}
		amount, err := strconv.Atoi(input)
		if err != nil {
			return 0, err
		}
		if amount <= 0 {
			return 0, fmt.Errorf("%d must be > 0", amount)
		}
		if amount > maxValue {
			return 0, fmt.Errorf("%d must be <= %d", amount, maxValue)
		}
		return amount, nil
	}

	promptText := promptui.Prompt{
		Label: label,
		Validate: func(input string) error {
			_, err := stringToInt(input, maxValue)
			return err
		},
	}
	rawAmount, err := promptText.Run()
	if err != nil {
		return 0, err
	}
	return stringToInt(rawAmount, maxValue)
}

func Continue() (bool, error) {
	cont, err := Bool("continue")
	if err != nil {
		return false, err
	}
	if !cont {
		utils.Outf("{{red}}exiting...{{/}}\n")
	}
	return cont, nil
}

func Bool(label string) (bool, error) {
	promptText := promptui.Prompt{
		Label:    label + " (y/n)",
		Validate: validateYesNo,
	}
	raw, err := promptText.Run()
	if err != nil {
		return false, err
	}
	return strings.ToLower(strings.TrimSpace(raw)) == "y", nil
}

func validateYesNo(input string) error {
	if len(input) == 0 {
		return ErrInputEmpty
	}
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "y", "n":
		return nil
	default:
		return ErrInvalidChoice
	}
}
