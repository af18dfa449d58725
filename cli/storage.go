// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cli

import (
	"errors"
	"fmt"

	"github.com/ava-labs/avalanchego/database"
	"github.com/gagliardetto/solana-go"

	"github.com/gongde/countervm/config"
	"github.com/gongde/countervm/utils"
)

// Settings share the account database. Account records live under 0x0.
const (
	defaultPrefix = 0x1

	defaultKeypairKey = "keypair"
)

func (h *Handler) StoreDefault(key string, value []byte) error {
	return h.db.Put(defaultKey(key), value)
}

func (h *Handler) GetDefault(key string) ([]byte, error) {
	v, err := h.db.Get(defaultKey(key))
	if errors.Is(err, database.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}

func defaultKey(key string) []byte {
	k := make([]byte, 1+len(key))
	k[0] = defaultPrefix
	copy(k[1:], key)
	return k
}

// StoreDefaultKeypair remembers the keypair file used when no keypair is
// given on the command line. Only the path is stored.
func (h *Handler) StoreDefaultKeypair(path string) (solana.PrivateKey, error) {
	path = config.ExpandHome(path)
	priv, err := config.LoadKeypair(path)
	if err != nil {
		return nil, err
	}
	return priv, h.StoreDefault(defaultKeypairKey, []byte(path))
}

// Signer loads the signing keypair. [path] wins when set, then the stored
// default, then the keypair of the Solana CLI config.
func (h *Handler) Signer(path string) (solana.PrivateKey, error) {
	source := "flag"
	if len(path) == 0 {
		v, err := h.GetDefault(defaultKeypairKey)
		if err != nil {
			return nil, err
		}
		path, source = string(v), "default"
	}
	if len(path) == 0 {
		cfg, cfgPath, err := config.LoadSolanaCLIConfig(config.DefaultCLIConfigPaths()...)
		if errors.Is(err, config.ErrConfigNotFound) {
			return nil, fmt.Errorf("%w: set one with the key command", ErrNoKeys)
		}
		if err != nil {
			return nil, err
		}
		path, source = cfg.KeypairPath, cfgPath
	}
	priv, err := config.LoadKeypair(config.ExpandHome(path))
	if err != nil {
		return nil, err
	}
	utils.Outf("{{yellow}}signer:{{/}} %s {{yellow}}from:{{/}} %s\n", priv.PublicKey(), source)
	return priv, nil
}
