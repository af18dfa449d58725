// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package consts

const (
	ByteLen      = 1
	BoolLen      = 1
	Uint32Len    = 4
	Uint64Len    = 8
	PublicKeyLen = 32
	MaxUint32    = ^uint32(0)
	MaxUint64    = ^uint64(0)

	// MaxSeedLen is the largest seed accepted by address derivation.
	MaxSeedLen = 32
	MaxSeeds   = 16

	LamportsPerSOL uint64 = 1_000_000_000
	SOLDecimals           = 9
)

// Seeds used to derive counter addresses.
const (
	CounterSeed       = "counter"
	GlobalCounterSeed = "global_counter"
	GongDeSeed        = "GongDeIncrease"
)
