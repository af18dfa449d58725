// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"encoding/json"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/gongde/countervm/config"
	"github.com/gongde/countervm/utils"
)

const (
	envPrefix = "countervm"

	variantKey   = "variant"
	programIDKey = "programID"
	dataDirKey   = "dataDir"
)

// loadConfig merges the config file, COUNTERVM_* environment variables and
// [flags], in increasing precedence. Without an explicit program id the
// deploy keypair of the program is used when present.
func loadConfig(configFile string, flags *pflag.FlagSet) (*config.Config, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, flag := range map[string]string{
		variantKey:   variantKey,
		programIDKey: "program-id",
		dataDirKey:   "data-dir",
	} {
		if err := v.BindPFlag(key, flags.Lookup(flag)); err != nil {
			return nil, err
		}
	}
	if len(configFile) > 0 {
		v.SetConfigFile(config.ExpandHome(configFile))
		v.SetConfigType("json")
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	// Keys are lowercased by viper. Field matching of encoding/json is case
	// insensitive so the settings still reach their fields.
	b, err := json.Marshal(v.AllSettings())
	if err != nil {
		return nil, err
	}
	cfg, err := config.New(b)
	if err != nil {
		return nil, err
	}
	if !v.IsSet(programIDKey) {
		if id, path, err := config.LoadProgramID(config.DefaultDeployKeyPaths()...); err == nil {
			utils.Outf("{{yellow}}program keypair:{{/}} %s\n", path)
			cfg.SetProgramID(id)
		}
	}
	return cfg, nil
}
