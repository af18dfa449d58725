// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import "errors"

var (
	ErrInvalidConfig  = errors.New("invalid config")
	ErrConfigNotFound = errors.New("solana cli config not found")
	ErrNoDeployKey    = errors.New("program keypair not found")
)
