// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/gagliardetto/solana-go"
	"gopkg.in/yaml.v2"
)

// SolanaCLIConfig is the part of the Solana CLI config file the counter
// tools read.
type SolanaCLIConfig struct {
	JSONRPCURL  string `yaml:"json_rpc_url"`
	KeypairPath string `yaml:"keypair_path"`
	Commitment  string `yaml:"commitment"`
}

// DefaultCLIConfigPaths returns the locations searched for the Solana CLI
// config, project first.
func DefaultCLIConfigPaths() []string {
	return []string{
		filepath.Join(".config", "solana", "cli", "config.yml"),
		filepath.Join("~", ".config", "solana", "cli", "config.yml"),
	}
}

// DefaultDeployKeyPaths returns the locations searched for the program
// deploy keypair.
func DefaultDeployKeyPaths() []string {
	return []string{
		filepath.Join("target", "deploy", "gong_de_increase-keypair.json"),
		filepath.Join("solana", "target", "deploy", "gong_de_increase-keypair.json"),
		filepath.Join("..", "target", "deploy", "gong_de_increase-keypair.json"),
	}
}

// LoadSolanaCLIConfig parses the first of [paths] that exists. It returns
// the config and the path it was read from.
func LoadSolanaCLIConfig(paths ...string) (*SolanaCLIConfig, string, error) {
	for _, p := range paths {
		p = ExpandHome(p)
		b, err := os.ReadFile(p)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, "", err
		}
		c := &SolanaCLIConfig{}
		if err := yaml.Unmarshal(b, c); err != nil {
			return nil, "", fmt.Errorf("failed to parse %s: %w", p, err)
		}
		return c, p, nil
	}
	return nil, "", fmt.Errorf("%w: searched %s", ErrConfigNotFound, strings.Join(paths, ", "))
}

// LoadKeypair reads a keypair file holding the 64 byte private key as a
// JSON array.
func LoadKeypair(path string) (solana.PrivateKey, error) {
	return solana.PrivateKeyFromSolanaKeygenFile(ExpandHome(path))
}

// LoadProgramID returns the public key of the first deploy keypair of
// [paths] that can be read. Malformed keypairs are skipped.
func LoadProgramID(paths ...string) (solana.PublicKey, string, error) {
	for _, p := range paths {
		p = ExpandHome(p)
		if _, err := os.Stat(p); err != nil {
			continue
		}
		key, err := solana.PrivateKeyFromSolanaKeygenFile(p)
		if err != nil {
			continue
		}
		return key.PublicKey(), p, nil
	}
	return solana.PublicKey{}, "", fmt.Errorf("%w: searched %s", ErrNoDeployKey, strings.Join(paths, ", "))
}

// ExpandHome replaces a leading ~ with the home directory.
func ExpandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~"+string(filepath.Separator)) {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}
