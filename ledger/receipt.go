// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ledger

import (
	"time"

	"github.com/gagliardetto/solana-go"

	"github.com/gongde/countervm/runtime"
)

// Receipt is the outcome of an invocation.
type Receipt struct {
	Timestamp time.Time
	Duration  time.Duration

	Programs []solana.PublicKey
	Signers  []solana.PublicKey

	Logs []string
	Err  error
	Code runtime.Code

	// Accounts created and drained by the invocation. Both are zero when
	// the invocation failed.
	Created int
	Closed  int
}

func (r *Receipt) Success() bool {
	return r.Err == nil
}

// Payer returns the first signer of the invocation.
func (r *Receipt) Payer() solana.PublicKey {
	if len(r.Signers) == 0 {
		return solana.PublicKey{}
	}
	return r.Signers[0]
}
