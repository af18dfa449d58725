// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"encoding/json"
	"fmt"

	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/gagliardetto/solana-go"

	"github.com/gongde/countervm/pebble"
	"github.com/gongde/countervm/program"
)

const (
	// DefaultProgramID is the address of the counter program when no deploy
	// keypair is available.
	DefaultProgramID = "9jpqDtrTj4GyNLVDjydbJVW1pWkZypHwpqDyLt2Ragt9"

	defaultDataDir   = ".countervm"
	defaultCacheSize = 1_024
)

type Config struct {
	Variant   string `json:"variant"`
	ProgramID string `json:"programID"`

	// Storage
	DataDir   string        `json:"dataDir"`
	CacheSize int           `json:"cacheSize"`
	Pebble    pebble.Config `json:"pebble"`

	// Journal keeps the history of every invocation when enabled.
	Journal bool `json:"journal"`

	// Misc
	LogLevel       logging.Level `json:"logLevel"`
	MetricsEnabled bool          `json:"metricsEnabled"`

	parsedProgramID solana.PublicKey
	variant         program.Variant
}

func New(b []byte) (*Config, error) {
	c := &Config{}
	c.setDefault()
	if len(b) > 0 {
		if err := json.Unmarshal(b, c); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config %s: %w", string(b), err)
		}
	}
	if err := c.parse(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) setDefault() {
	c.Variant = program.LazyVariant
	c.ProgramID = DefaultProgramID
	c.DataDir = defaultDataDir
	c.CacheSize = defaultCacheSize
	c.Pebble = pebble.NewDefaultConfig()
	c.Journal = true
	c.LogLevel = logging.Info
	c.MetricsEnabled = true
}

func (c *Config) parse() error {
	programID, err := solana.PublicKeyFromBase58(c.ProgramID)
	if err != nil {
		return fmt.Errorf("%w: program id %q: %w", ErrInvalidConfig, c.ProgramID, err)
	}
	variant, err := program.VariantByName(c.Variant)
	if err != nil {
		return err
	}
	if c.CacheSize < 0 {
		return fmt.Errorf("%w: negative cache size", ErrInvalidConfig)
	}
	c.parsedProgramID = programID
	c.variant = variant
	return nil
}

// SetProgramID overrides the configured program id.
func (c *Config) SetProgramID(id solana.PublicKey) {
	c.ProgramID = id.String()
	c.parsedProgramID = id
}

func (c *Config) GetProgramID() solana.PublicKey { return c.parsedProgramID }
func (c *Config) GetVariant() program.Variant    { return c.variant }
func (c *Config) GetLogLevel() logging.Level     { return c.LogLevel }
