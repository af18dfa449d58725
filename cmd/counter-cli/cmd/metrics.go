// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Print the ledger and program metrics",
	RunE: func(*cobra.Command, []string) error {
		handler.PrintCacheStats()
		return handler.WriteMetrics(os.Stdout)
	},
}
