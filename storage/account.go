// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/ava-labs/avalanchego/database"
	"github.com/gagliardetto/solana-go"

	"github.com/gongde/countervm/consts"
	"github.com/gongde/countervm/runtime"
	"github.com/gongde/countervm/state"

	smath "github.com/ava-labs/avalanchego/utils/math"
)

// State
// 0x0/ (accounts)
//   -> [address] => lamports | executable | owner | data

const accountPrefix byte = 0x0

const accountHeaderLen = consts.Uint64Len + consts.BoolLen + consts.PublicKeyLen

// [accountPrefix] + [address]
func AccountKey(addr solana.PublicKey) []byte {
	k := make([]byte, consts.ByteLen+consts.PublicKeyLen)
	k[0] = accountPrefix
	copy(k[1:], addr[:])
	return k
}

func MarshalAccount(acct *runtime.Account) []byte {
	v := make([]byte, accountHeaderLen+len(acct.Data))
	binary.BigEndian.PutUint64(v, acct.Lamports)
	if acct.Executable {
		v[consts.Uint64Len] = 1
	}
	copy(v[consts.Uint64Len+consts.BoolLen:], acct.Owner[:])
	copy(v[accountHeaderLen:], acct.Data)
	return v
}

func UnmarshalAccount(v []byte) (*runtime.Account, error) {
	if len(v) < accountHeaderLen {
		return nil, fmt.Errorf("%w: record is %d bytes", ErrCorruptAccount, len(v))
	}
	acct := &runtime.Account{
		Lamports: binary.BigEndian.Uint64(v),
		Data:     make([]byte, len(v)-accountHeaderLen),
	}
	switch v[consts.Uint64Len] {
	case 0:
	case 1:
		acct.Executable = true
	default:
		return nil, fmt.Errorf("%w: invalid executable flag %d", ErrCorruptAccount, v[consts.Uint64Len])
	}
	copy(acct.Owner[:], v[consts.Uint64Len+consts.BoolLen:])
	copy(acct.Data, v[accountHeaderLen:])
	return acct, nil
}

// GetAccount returns the account at [addr]. Missing accounts are returned as
// [runtime.EmptyAccount].
func GetAccount(
	ctx context.Context,
	im state.Immutable,
	addr solana.PublicKey,
) (*runtime.Account, error) {
	v, err := im.GetValue(ctx, AccountKey(addr))
	if errors.Is(err, database.ErrNotFound) {
		return runtime.EmptyAccount(), nil
	}
	if err != nil {
		return nil, err
	}
	return UnmarshalAccount(v)
}

// SetAccount stores [acct] at [addr]. An account without lamports is
// deleted instead.
func SetAccount(
	ctx context.Context,
	mu state.Mutable,
	addr solana.PublicKey,
	acct *runtime.Account,
) error {
	k := AccountKey(addr)
	if !acct.Exists() {
		return mu.Remove(ctx, k)
	}
	return mu.Insert(ctx, k, MarshalAccount(acct))
}

func AddLamports(
	ctx context.Context,
	mu state.Mutable,
	addr solana.PublicKey,
	amount uint64,
) (uint64, error) {
	acct, err := GetAccount(ctx, mu, addr)
	if err != nil {
		return 0, err
	}
	nbal, err := smath.Add(acct.Lamports, amount)
	if err != nil {
		return 0, fmt.Errorf(
			"%w: could not add lamports (bal=%d, addr=%s, amount=%d)",
			runtime.ErrArithmeticOverflow,
			acct.Lamports,
			addr,
			amount,
		)
	}
	acct.Lamports = nbal
	return nbal, SetAccount(ctx, mu, addr, acct)
}

func SubLamports(
	ctx context.Context,
	mu state.Mutable,
	addr solana.PublicKey,
	amount uint64,
) (uint64, error) {
	acct, err := GetAccount(ctx, mu, addr)
	if err != nil {
		return 0, err
	}
	nbal, err := smath.Sub(acct.Lamports, amount)
	if err != nil {
		return 0, fmt.Errorf(
			"%w: could not subtract lamports (bal=%d, addr=%s, amount=%d)",
			runtime.ErrInsufficientFunds,
			acct.Lamports,
			addr,
			amount,
		)
	}
	// If there are no lamports left, SetAccount deletes the record.
	acct.Lamports = nbal
	return nbal, SetAccount(ctx, mu, addr, acct)
}
