// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package runtime

import (
	"context"

	"github.com/gagliardetto/solana-go"
)

// Account is a ledger account as seen by a program.
//
// An account holding zero lamports does not exist. Reading an address that
// was never funded yields an empty account owned by the system program.
type Account struct {
	Lamports   uint64
	Owner      solana.PublicKey
	Executable bool
	Data       []byte
}

// EmptyAccount returns the account every unused address holds.
func EmptyAccount() *Account {
	return &Account{Owner: solana.SystemProgramID}
}

func (a *Account) Exists() bool {
	return a.Lamports > 0
}

// OwnedBy returns true if [a] exists and is owned by [program].
func (a *Account) OwnedBy(program solana.PublicKey) bool {
	return a.Exists() && a.Owner.Equals(program)
}

// AccountStore is the only way a program reaches ledger state.
//
// Implementations enforce the ledger rules: accounts not provided to the
// invocation are invisible, only writable accounts may change, a program
// may only modify data of accounts it owns and never resize it, and
// lamports are conserved.
type AccountStore interface {
	// GetAccount returns the account stored at [addr].
	GetAccount(ctx context.Context, addr solana.PublicKey) (*Account, error)
	// CreateAccount funds [addr] with [lamports] taken from [payer] and
	// allocates [space] zeroed bytes of data owned by [owner].
	CreateAccount(
		ctx context.Context,
		payer solana.PublicKey,
		addr solana.PublicKey,
		lamports uint64,
		space uint64,
		owner solana.PublicKey,
	) error
	// WriteData replaces the data of [addr]. The length must not change.
	WriteData(ctx context.Context, addr solana.PublicKey, data []byte) error
	// Transfer moves [amount] lamports from [from] to [to].
	Transfer(ctx context.Context, from solana.PublicKey, to solana.PublicKey, amount uint64) error
	// MinimumBalance returns the rent-exempt deposit for [space] bytes.
	MinimumBalance(space uint64) uint64
}
