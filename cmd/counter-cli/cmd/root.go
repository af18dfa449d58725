// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"context"
	"os"

	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/spf13/cobra"

	"github.com/gongde/countervm/cli"
	"github.com/gongde/countervm/config"
	"github.com/gongde/countervm/consts"
	"github.com/gongde/countervm/program"
	"github.com/gongde/countervm/utils"
)

const defaultDataDir = ".countervm"

var (
	handler *cli.Handler

	configFile   string
	variant      string
	programID    string
	dataDir      string
	keypairPath  string
	skipConfirm  bool
	historyLimit int
	historyAll   bool
	numAccounts  int
	increments   int
	funding      string

	rootCmd = &cobra.Command{
		Use:        "counter-cli",
		Short:      "Counter program CLI",
		SuggestFor: []string{"counter-cli", "countercli"},
	}
)

func init() {
	cobra.EnablePrefixMatching = true
	rootCmd.AddCommand(
		initializeCmd,
		incrementCmd,
		resetCmd,
		closeCmd,
		queryCmd,
		airdropCmd,
		keyCmd,
		historyCmd,
		spamCmd,
		metricsCmd,
	)
	rootCmd.PersistentFlags().StringVar(
		&configFile,
		"config",
		"",
		"path to a JSON config file",
	)
	rootCmd.PersistentFlags().StringVar(
		&variant,
		"variant",
		program.LazyVariant,
		"counter program variant (lazy, gongde, global, managed)",
	)
	rootCmd.PersistentFlags().StringVar(
		&programID,
		"program-id",
		config.DefaultProgramID,
		"address the counter program is deployed at",
	)
	rootCmd.PersistentFlags().StringVar(
		&dataDir,
		"data-dir",
		defaultDataDir,
		"path to the ledger data (will create it missing)",
	)
	rootCmd.PersistentFlags().StringVar(
		&keypairPath,
		"keypair",
		"",
		"signer keypair file (defaults to the stored key, then the Solana CLI config)",
	)
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig(configFile, cmd.Flags())
		if err != nil {
			return err
		}
		log := logging.NewLogger(
			"counter-cli",
			logging.NewWrappedCore(
				cfg.GetLogLevel(),
				os.Stderr,
				logging.Colors.ConsoleEncoder(),
			),
		)
		utils.Outf(
			"{{yellow}}data:{{/}} %s {{yellow}}variant:{{/}} %s {{yellow}}program:{{/}} %s\n",
			cfg.DataDir,
			cfg.Variant,
			cfg.GetProgramID(),
		)
		handler, err = cli.New(context.Background(), cfg, log)
		return err
	}
	rootCmd.PersistentPostRunE = func(*cobra.Command, []string) error {
		return handler.CloseDatabase()
	}
	rootCmd.SilenceErrors = true

	// close
	closeCmd.PersistentFlags().BoolVarP(
		&skipConfirm,
		"yes",
		"y",
		false,
		"close without asking for confirmation",
	)

	// history
	historyCmd.PersistentFlags().IntVar(
		&historyLimit,
		"limit",
		20,
		"number of invocations to show",
	)
	historyCmd.PersistentFlags().BoolVar(
		&historyAll,
		"all",
		false,
		"show invocations of every signer",
	)

	// key
	keyCmd.AddCommand(
		showKeyCmd,
		setKeyCmd,
	)

	// spam
	spamCmd.PersistentFlags().IntVar(
		&numAccounts,
		"accounts",
		-1,
		"number of accounts incrementing concurrently",
	)
	spamCmd.PersistentFlags().IntVar(
		&increments,
		"increments",
		100,
		"increments per account",
	)
	spamCmd.PersistentFlags().StringVar(
		&funding,
		"funding",
		utils.FormatBalance(consts.LamportsPerSOL),
		"SOL airdropped to every account",
	)
}

func Execute() error {
	return rootCmd.Execute()
}
