// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package address derives counter account addresses. Derivation is
// bit-exact with the Solana ledger so addresses computed here match the ones
// a deployed program would accept.
package address

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/gagliardetto/solana-go"

	"github.com/gongde/countervm/consts"
)

// PDAMarker is appended to the hash input of every program derived address.
const PDAMarker = "ProgramDerivedAddress"

// MaxBump is the first bump seed tried by [FindProgramAddress].
const MaxBump = uint8(255)

// CreateWithSeed returns sha256(base || seed || program).
func CreateWithSeed(base solana.PublicKey, seed string, program solana.PublicKey) (solana.PublicKey, error) {
	if len(seed) > consts.MaxSeedLen {
		return solana.PublicKey{}, fmt.Errorf("%w: seed is %d bytes", ErrMaxSeedLengthExceeded, len(seed))
	}
	if bytes.HasSuffix(program[:], []byte(PDAMarker)) {
		return solana.PublicKey{}, ErrIllegalOwner
	}
	addr, err := solana.CreateWithSeed(base, seed, program)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("%w: %w", ErrIllegalOwner, err)
	}
	return addr, nil
}

// CreateProgramAddress returns sha256(seeds... || program || PDAMarker). The
// result is rejected with [ErrInvalidSeeds] when it is a valid ed25519 point,
// since such an address could have a private key.
func CreateProgramAddress(seeds [][]byte, program solana.PublicKey) (solana.PublicKey, error) {
	if len(seeds) > consts.MaxSeeds {
		return solana.PublicKey{}, fmt.Errorf("%w: %d seeds", ErrMaxSeedLengthExceeded, len(seeds))
	}
	for _, seed := range seeds {
		if len(seed) > consts.MaxSeedLen {
			return solana.PublicKey{}, fmt.Errorf("%w: seed is %d bytes", ErrMaxSeedLengthExceeded, len(seed))
		}
	}
	addr, err := solana.CreateProgramAddress(seeds, program)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("%w: %w", ErrInvalidSeeds, err)
	}
	return addr, nil
}

// FindProgramAddress tries bump seeds from 255 down to 0 and returns the
// first off-curve address together with its bump.
func FindProgramAddress(seeds [][]byte, program solana.PublicKey) (solana.PublicKey, uint8, error) {
	return findProgramAddress(seeds, program, CreateProgramAddress)
}

type createFunc func([][]byte, solana.PublicKey) (solana.PublicKey, error)

func findProgramAddress(seeds [][]byte, program solana.PublicKey, create createFunc) (solana.PublicKey, uint8, error) {
	if len(seeds) >= consts.MaxSeeds {
		return solana.PublicKey{}, 0, fmt.Errorf("%w: %d seeds", ErrMaxSeedLengthExceeded, len(seeds))
	}
	withBump := make([][]byte, len(seeds)+1)
	copy(withBump, seeds)
	bump := [1]byte{}
	withBump[len(seeds)] = bump[:]

	for b := int(MaxBump); b >= 0; b-- {
		bump[0] = byte(b)
		addr, err := create(withBump, program)
		if err == nil {
			return addr, uint8(b), nil
		}
		if !errors.Is(err, ErrInvalidSeeds) {
			return solana.PublicKey{}, 0, err
		}
	}
	return solana.PublicKey{}, 0, ErrNoValidAddress
}
