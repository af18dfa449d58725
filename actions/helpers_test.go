// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"context"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/require"

	"github.com/gongde/countervm/address"
	"github.com/gongde/countervm/consts"
	"github.com/gongde/countervm/ledger"
	"github.com/gongde/countervm/ledger/ledgertest"
	"github.com/gongde/countervm/runtime"
	"github.com/gongde/countervm/storage"
)

var (
	payer = ledgertest.Key(1)
	other = ledgertest.Key(2)

	lazyU64 = Counter{Layout: storage.U64, Scheme: address.ProgramDerived}
	gongDe  = Counter{Layout: storage.U32, Scheme: address.Seeded}
	managed = Counter{Layout: storage.Record, Scheme: address.ProgramDerived}
)

func counterOf(t testing.TB, c Counter, owner solana.PublicKey) solana.PublicKey {
	addr, err := c.Scheme.Counter(owner, ledgertest.ProgramID)
	require.NoError(t, err)
	return addr
}

func globalCounter(t testing.TB) solana.PublicKey {
	addr, _, err := address.GlobalCounterAddress(ledgertest.ProgramID)
	require.NoError(t, err)
	return addr
}

func writable(addr solana.PublicKey) *solana.AccountMeta {
	return solana.NewAccountMeta(addr, true, false)
}

func readonly(addr solana.PublicKey) *solana.AccountMeta {
	return solana.NewAccountMeta(addr, false, false)
}

func signer(addr solana.PublicKey) *solana.AccountMeta {
	return solana.NewAccountMeta(addr, true, true)
}

func system() *solana.AccountMeta {
	return readonly(solana.SystemProgramID)
}

// putCounter stores a rent exempt counter of [c] at [addr].
func putCounter(ctx context.Context, t testing.TB, l *ledger.Ledger, c Counter, addr solana.PublicKey, counter storage.Counter) {
	data := make([]byte, c.Layout.Size())
	require.NoError(t, c.Layout.Write(data, counter))
	require.NoError(t, l.SetAccount(ctx, addr, &runtime.Account{
		Lamports: storage.MinimumBalance(c.Layout.Size()),
		Owner:    ledgertest.ProgramID,
		Data:     data,
	}))
}

func requireCounter(ctx context.Context, t testing.TB, l *ledger.Ledger, c Counter, addr solana.PublicKey, expected uint64) {
	require := require.New(t)

	acct := ledgertest.Account(ctx, t, l, addr)
	require.True(acct.Exists())
	require.Equal(ledgertest.ProgramID, acct.Owner)
	require.Len(acct.Data, int(c.Layout.Size()))
	counter, err := c.Layout.Read(acct.Data)
	require.NoError(err)
	require.Equal(expected, counter.Value)
}

func requireAbsent(ctx context.Context, t testing.TB, l *ledger.Ledger, addr solana.PublicKey) {
	require.False(t, ledgertest.Account(ctx, t, l, addr).Exists())
}

const oneSOL = consts.LamportsPerSOL
