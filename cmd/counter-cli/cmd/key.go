// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/gongde/countervm/cli/prompt"
	"github.com/gongde/countervm/consts"
	"github.com/gongde/countervm/utils"
)

var keyCmd = &cobra.Command{
	Use: "key",
	RunE: func(*cobra.Command, []string) error {
		return ErrMissingSubcommand
	},
}

var showKeyCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the signer, its balance and its counter address",
	RunE: func(*cobra.Command, []string) error {
		owner, err := signer()
		if err != nil {
			return err
		}
		balance, err := handler.Balance(context.Background(), owner)
		if err != nil {
			return err
		}
		counter, err := handler.Client().CounterAddress(owner)
		if err != nil {
			return err
		}
		utils.Outf(
			"{{yellow}}address:{{/}} %s {{yellow}}balance:{{/}} %s SOL\n",
			owner,
			utils.FormatBalance(balance),
		)
		utils.Outf("{{yellow}}counter:{{/}} %s\n", counter)
		return nil
	},
}

var setKeyCmd = &cobra.Command{
	Use:   "set [path]",
	Short: "Use a keypair file as the default signer",
	PreRunE: func(_ *cobra.Command, args []string) error {
		if len(args) != 1 {
			return ErrInvalidArgs
		}
		return nil
	},
	RunE: func(_ *cobra.Command, args []string) error {
		priv, err := handler.StoreDefaultKeypair(args[0])
		if err != nil {
			return err
		}
		utils.Outf("{{green}}default signer:{{/}} %s\n", priv.PublicKey())
		return nil
	},
}

var airdropCmd = &cobra.Command{
	Use:   "airdrop [SOL]",
	Short: "Credit SOL to the signer",
	PreRunE: func(_ *cobra.Command, args []string) error {
		if len(args) > 1 {
			return ErrInvalidArgs
		}
		return nil
	},
	RunE: func(_ *cobra.Command, args []string) error {
		owner, err := signer()
		if err != nil {
			return err
		}
		var amount uint64
		if len(args) == 1 {
			amount, err = utils.ParseBalance(args[0])
		} else {
			amount, err = prompt.Amount("amount (SOL)", consts.MaxUint64)
		}
		if err != nil {
			return err
		}
		return handler.Airdrop(context.Background(), owner, amount)
	},
}
