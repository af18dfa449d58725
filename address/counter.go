// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package address

import (
	"github.com/gagliardetto/solana-go"

	"github.com/gongde/countervm/consts"
)

// Scheme selects how a counter address is derived from its owner.
type Scheme uint8

const (
	// ProgramDerived derives the counter at FindProgramAddress(["counter", owner]).
	ProgramDerived Scheme = iota
	// Seeded derives the counter at CreateWithSeed(owner, "GongDeIncrease").
	Seeded
)

func (s Scheme) String() string {
	switch s {
	case ProgramDerived:
		return "pda"
	case Seeded:
		return "seeded"
	default:
		return "unknown"
	}
}

// Counter derives the counter address of [owner] under [s].
func (s Scheme) Counter(owner, program solana.PublicKey) (solana.PublicKey, error) {
	switch s {
	case Seeded:
		return GongDeAddress(owner, program)
	default:
		addr, _, err := CounterAddress(owner, program)
		return addr, err
	}
}

func CounterAddress(owner, program solana.PublicKey) (solana.PublicKey, uint8, error) {
	return FindProgramAddress([][]byte{[]byte(consts.CounterSeed), owner.Bytes()}, program)
}

func GlobalCounterAddress(program solana.PublicKey) (solana.PublicKey, uint8, error) {
	return FindProgramAddress([][]byte{[]byte(consts.GlobalCounterSeed)}, program)
}

func GongDeAddress(owner, program solana.PublicKey) (solana.PublicKey, error) {
	return CreateWithSeed(owner, consts.GongDeSeed, program)
}
