// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

const (
	// AccountStorageOverhead is charged for every account on top of its data.
	AccountStorageOverhead = 128
	// LamportsPerByteYear is the rent rate.
	LamportsPerByteYear = 3480
	// ExemptionThreshold is how many years of rent make an account exempt.
	ExemptionThreshold = 2
)

// MinimumBalance returns the deposit that makes an account of [space] data
// bytes rent exempt.
func MinimumBalance(space uint64) uint64 {
	return (space + AccountStorageOverhead) * LamportsPerByteYear * ExemptionThreshold
}

func IsRentExempt(lamports uint64, space uint64) bool {
	return lamports >= MinimumBalance(space)
}
