// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"context"
	"testing"

	"github.com/ava-labs/avalanchego/database"
	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/require"

	"github.com/gongde/countervm/consts"
	"github.com/gongde/countervm/runtime"
	"github.com/gongde/countervm/state"
)

func TestAccountKey(t *testing.T) {
	require := require.New(t)

	addr := solana.PublicKey{1, 2, 3}
	k := AccountKey(addr)
	require.Len(k, 33)
	require.Equal(byte(0x0), k[0])
	require.Equal(addr[:], k[1:])
}

func TestMarshalAccount(t *testing.T) {
	require := require.New(t)

	acct := &runtime.Account{
		Lamports:   0x0102030405060708,
		Owner:      solana.PublicKey{9},
		Executable: true,
		Data:       []byte{0xAA, 0xBB},
	}
	v := MarshalAccount(acct)
	require.Len(v, 8+1+32+2)
	require.Equal([]byte{1, 2, 3, 4, 5, 6, 7, 8}, v[:8])
	require.Equal(byte(1), v[8])
	require.Equal(byte(9), v[9])
	require.Equal([]byte{0xAA, 0xBB}, v[41:])

	parsed, err := UnmarshalAccount(v)
	require.NoError(err)
	require.Equal(acct, parsed)

	_, err = UnmarshalAccount(v[:10])
	require.ErrorIs(err, ErrCorruptAccount)

	v[8] = 7
	_, err = UnmarshalAccount(v)
	require.ErrorIs(err, ErrCorruptAccount)
}

func TestMissingAccountIsEmpty(t *testing.T) {
	require := require.New(t)

	acct, err := GetAccount(context.Background(), state.ImmutableStorage{}, solana.PublicKey{1})
	require.NoError(err)
	require.False(acct.Exists())
	require.Equal(solana.SystemProgramID, acct.Owner)
	require.Empty(acct.Data)
}

func TestLamports(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	mu := state.MutableStorage{}
	addr := solana.PublicKey{1}

	bal, err := AddLamports(ctx, mu, addr, 10)
	require.NoError(err)
	require.Equal(uint64(10), bal)

	_, err = AddLamports(ctx, mu, addr, consts.MaxUint64)
	require.ErrorIs(err, runtime.ErrArithmeticOverflow)

	_, err = SubLamports(ctx, mu, addr, 11)
	require.ErrorIs(err, runtime.ErrInsufficientFunds)

	bal, err = SubLamports(ctx, mu, addr, 4)
	require.NoError(err)
	require.Equal(uint64(6), bal)

	// Draining an account purges it.
	bal, err = SubLamports(ctx, mu, addr, 6)
	require.NoError(err)
	require.Zero(bal)
	_, err = mu.GetValue(ctx, AccountKey(addr))
	require.ErrorIs(err, database.ErrNotFound)
}

func TestSetAccountWithoutLamportsRemoves(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	mu := state.MutableStorage{}
	addr := solana.PublicKey{2}

	require.NoError(SetAccount(ctx, mu, addr, &runtime.Account{Lamports: 5, Owner: addr, Data: []byte{1}}))
	require.Contains(mu, string(AccountKey(addr)))

	require.NoError(SetAccount(ctx, mu, addr, &runtime.Account{Owner: addr, Data: []byte{1}}))
	require.NotContains(mu, string(AccountKey(addr)))
}

func TestMinimumBalance(t *testing.T) {
	tests := []struct {
		space    uint64
		expected uint64
	}{
		{0, 890_880},
		{4, 918_720},
		{8, 946_560},
		{RecordSize, 1_169_280},
	}
	for _, tt := range tests {
		require.Equal(t, tt.expected, MinimumBalance(tt.space))
		require.True(t, IsRentExempt(tt.expected, tt.space))
		require.False(t, IsRentExempt(tt.expected-1, tt.space))
	}
}
