// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/gongde/countervm/cli/prompt"
	"github.com/gongde/countervm/utils"
)

var spamCmd = &cobra.Command{
	Use:   "spam",
	Short: "Increment the counters of many fresh accounts concurrently",
	RunE: func(*cobra.Command, []string) error {
		lamports, err := utils.ParseBalance(funding)
		if err != nil {
			return err
		}
		accounts := numAccounts
		if accounts <= 0 {
			accounts, err = prompt.Int("number of accounts", 10_000)
			if err != nil {
				return err
			}
		}
		_, err = handler.Spam(context.Background(), accounts, increments, lamports)
		return err
	},
}
