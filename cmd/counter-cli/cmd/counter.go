// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"context"
	"strconv"

	"github.com/gagliardetto/solana-go"
	"github.com/spf13/cobra"

	"github.com/gongde/countervm/cli/prompt"
)

func signer() (solana.PublicKey, error) {
	priv, err := handler.Signer(keypairPath)
	if err != nil {
		return solana.PublicKey{}, err
	}
	return priv.PublicKey(), nil
}

var initializeCmd = &cobra.Command{
	Use:   "initialize",
	Short: "Create the counter of the signer",
	RunE: func(*cobra.Command, []string) error {
		owner, err := signer()
		if err != nil {
			return err
		}
		ctx := context.Background()
		if err := handler.Initialize(ctx, owner); err != nil {
			return err
		}
		return handler.PrintCounter(ctx, owner)
	},
}

var incrementCmd = &cobra.Command{
	Use:   "increment [times]",
	Short: "Increment the counter of the signer",
	PreRunE: func(_ *cobra.Command, args []string) error {
		if len(args) > 1 {
			return ErrInvalidArgs
		}
		return nil
	},
	RunE: func(_ *cobra.Command, args []string) error {
		times := 1
		if len(args) == 1 {
			n, err := strconv.Atoi(args[0])
			if err != nil || n < 1 {
				return ErrInvalidArgs
			}
			times = n
		}
		owner, err := signer()
		if err != nil {
			return err
		}
		return handler.Increment(context.Background(), owner, times)
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Set the counter of the signer back to zero",
	RunE: func(*cobra.Command, []string) error {
		owner, err := signer()
		if err != nil {
			return err
		}
		cont, err := prompt.Bool("reset counter to zero")
		if !cont || err != nil {
			return err
		}
		return handler.Reset(context.Background(), owner)
	},
}

var closeCmd = &cobra.Command{
	Use:   "close",
	Short: "Close the counter of the signer and recover its deposit",
	RunE: func(*cobra.Command, []string) error {
		owner, err := signer()
		if err != nil {
			return err
		}
		ctx := context.Background()
		if err := handler.PrintCounter(ctx, owner); err != nil {
			return err
		}
		if !skipConfirm {
			cont, err := prompt.Continue()
			if !cont || err != nil {
				return err
			}
		}
		_, err = handler.Close(ctx, owner)
		return err
	},
}

var queryCmd = &cobra.Command{
	Use:   "query [owner]",
	Short: "Show the counter of an owner, the signer by default",
	PreRunE: func(_ *cobra.Command, args []string) error {
		if len(args) > 1 {
			return ErrInvalidArgs
		}
		return nil
	},
	RunE: func(_ *cobra.Command, args []string) error {
		var (
			owner solana.PublicKey
			err   error
		)
		switch {
		case len(args) == 1:
			owner, err = solana.PublicKeyFromBase58(args[0])
		default:
			owner, err = signer()
			if err != nil {
				owner, err = prompt.Address("owner")
			}
		}
		if err != nil {
			return err
		}
		return handler.PrintCounter(context.Background(), owner)
	},
}
