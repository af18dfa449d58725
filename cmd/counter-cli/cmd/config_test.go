// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/gongde/countervm/config"
	"github.com/gongde/countervm/program"
)

func testFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("variant", program.LazyVariant, "")
	fs.String("program-id", config.DefaultProgramID, "")
	fs.String("data-dir", defaultDataDir, "")
	return fs
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	r := require.New(t)

	cfg, err := loadConfig("", testFlags())
	r.NoError(err)
	r.Equal(program.LazyVariant, cfg.Variant)
	r.Equal(defaultDataDir, cfg.DataDir)
	r.Equal(config.DefaultProgramID, cfg.GetProgramID().String())
	r.True(cfg.Journal)
	r.True(cfg.Pebble.Sync)
}

func TestLoadConfigFile(t *testing.T) {
	r := require.New(t)
	path := writeConfig(t, `{
		"variant": "managed",
		"programID": "11111111111111111111111111111111",
		"cacheSize": 7,
		"journal": false,
		"logLevel": "debug",
		"pebble": {"sync": false}
	}`)

	cfg, err := loadConfig(path, testFlags())
	r.NoError(err)
	r.Equal(program.ManagedVariant, cfg.GetVariant().Name)
	r.Equal("11111111111111111111111111111111", cfg.GetProgramID().String())
	r.Equal(7, cfg.CacheSize)
	r.False(cfg.Journal)
	r.Equal(logging.Debug, cfg.GetLogLevel())
	r.False(cfg.Pebble.Sync)
	r.Equal(1_024, cfg.Pebble.MaxOpenFiles)
}

func TestLoadConfigPrecedence(t *testing.T) {
	r := require.New(t)
	path := writeConfig(t, `{"variant": "managed", "dataDir": "from-file"}`)

	t.Setenv("COUNTERVM_VARIANT", program.GlobalVariant)
	cfg, err := loadConfig(path, testFlags())
	r.NoError(err)
	r.Equal(program.GlobalVariant, cfg.Variant)
	r.Equal("from-file", cfg.DataDir)

	flags := testFlags()
	r.NoError(flags.Parse([]string{"--variant=gongde", "--data-dir=from-flag"}))
	cfg, err = loadConfig(path, flags)
	r.NoError(err)
	r.Equal(program.GongDeVariant, cfg.Variant)
	r.Equal("from-flag", cfg.DataDir)
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		err  error
	}{
		{
			name: "UnknownVariant",
			body: `{"variant": "nope"}`,
			err:  program.ErrUnknownVariant,
		},
		{
			name: "BadProgramID",
			body: `{"programID": "not-a-key"}`,
			err:  config.ErrInvalidConfig,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadConfig(writeConfig(t, tt.body), testFlags())
			require.ErrorIs(t, err, tt.err)
		})
	}

	_, err := loadConfig(filepath.Join(t.TempDir(), "missing.json"), testFlags())
	require.Error(t, err)
}
