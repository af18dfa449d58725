// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/require"

	"github.com/gongde/countervm/program"
)

func TestNewDefaults(t *testing.T) {
	require := require.New(t)

	c, err := New(nil)
	require.NoError(err)
	require.Equal(program.LazyVariant, c.GetVariant().Name)
	require.Equal(solana.MustPublicKeyFromBase58(DefaultProgramID), c.GetProgramID())
	require.Equal(logging.Info, c.GetLogLevel())
	require.True(c.Journal)
	require.Equal(defaultCacheSize, c.CacheSize)
}

func TestNewOverrides(t *testing.T) {
	require := require.New(t)

	c, err := New([]byte(`{"variant":"managed","logLevel":"debug","cacheSize":8,"journal":false,"pebble":{"sync":false}}`))
	require.NoError(err)
	require.Equal(program.ManagedVariant, c.GetVariant().Name)
	require.Equal(logging.Debug, c.GetLogLevel())
	require.Equal(8, c.CacheSize)
	require.False(c.Journal)
	require.False(c.Pebble.Sync)

	id := solana.SystemProgramID
	c.SetProgramID(id)
	require.Equal(id, c.GetProgramID())
	require.Equal(id.String(), c.ProgramID)
}

func TestNewInvalid(t *testing.T) {
	tests := []struct {
		name        string
		config      string
		expectedErr error
	}{
		{
			name:        "variant",
			config:      `{"variant":"anchor"}`,
			expectedErr: program.ErrUnknownVariant,
		},
		{
			name:        "program id",
			config:      `{"programID":"not a key"}`,
			expectedErr: ErrInvalidConfig,
		},
		{
			name:        "cache size",
			config:      `{"cacheSize":-1}`,
			expectedErr: ErrInvalidConfig,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New([]byte(tt.config))
			require.ErrorIs(t, err, tt.expectedErr)
		})
	}

	_, err := New([]byte(`{`))
	require.Error(t, err)
}

func TestLoadSolanaCLIConfig(t *testing.T) {
	require := require.New(t)
	dir := t.TempDir()

	missing := filepath.Join(dir, "missing.yml")
	_, _, err := LoadSolanaCLIConfig(missing)
	require.ErrorIs(err, ErrConfigNotFound)

	path := filepath.Join(dir, "config.yml")
	require.NoError(os.WriteFile(path, []byte(`---
json_rpc_url: "https://api.devnet.solana.com"
websocket_url: ""
keypair_path: ./id.json
address_labels:
  "11111111111111111111111111111111": System Program
commitment: confirmed
`), 0o600))
	c, found, err := LoadSolanaCLIConfig(missing, path)
	require.NoError(err)
	require.Equal(path, found)
	require.Equal(&SolanaCLIConfig{
		JSONRPCURL:  "https://api.devnet.solana.com",
		KeypairPath: "./id.json",
		Commitment:  "confirmed",
	}, c)

	bad := filepath.Join(dir, "bad.yml")
	require.NoError(os.WriteFile(bad, []byte("json_rpc_url: [\n"), 0o600))
	_, _, err = LoadSolanaCLIConfig(bad, path)
	require.Error(err)
}

func writeKeypair(t *testing.T, path string, key []byte) {
	values := make([]int, len(key))
	for i, b := range key {
		values[i] = int(b)
	}
	b, err := json.Marshal(values)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
}

func TestLoadKeypairAndProgramID(t *testing.T) {
	require := require.New(t)
	dir := t.TempDir()

	key, err := solana.NewRandomPrivateKey()
	require.NoError(err)
	keyPath := filepath.Join(dir, "id.json")
	writeKeypair(t, keyPath, key)

	loaded, err := LoadKeypair(keyPath)
	require.NoError(err)
	require.Equal(key.PublicKey(), loaded.PublicKey())

	short := filepath.Join(dir, "short.json")
	writeKeypair(t, short, key[:32])
	_, err = LoadKeypair(short)
	require.Error(err)

	_, _, err = LoadProgramID(filepath.Join(dir, "missing.json"))
	require.ErrorIs(err, ErrNoDeployKey)

	// Malformed deploy keys are skipped.
	id, found, err := LoadProgramID(short, keyPath)
	require.NoError(err)
	require.Equal(keyPath, found)
	require.Equal(key.PublicKey(), id)
}

func TestExpandHome(t *testing.T) {
	require := require.New(t)

	home, err := os.UserHomeDir()
	require.NoError(err)
	require.Equal(filepath.Join(home, ".config"), ExpandHome(filepath.Join("~", ".config")))
	require.Equal("./id.json", ExpandHome("./id.json"))
	require.Equal("~user/id.json", ExpandHome("~user/id.json"))
}
