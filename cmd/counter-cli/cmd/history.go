// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"context"

	"github.com/gagliardetto/solana-go"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show journaled invocations of the signer",
	RunE: func(*cobra.Command, []string) error {
		var owner *solana.PublicKey
		if !historyAll {
			pk, err := signer()
			if err != nil {
				return err
			}
			owner = &pk
		}
		return handler.PrintHistory(context.Background(), owner, historyLimit)
	},
}
