// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"context"
	"fmt"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/gongde/countervm/ledger"
	"github.com/gongde/countervm/ledger/ledgertest"
	"github.com/gongde/countervm/runtime"
	"github.com/gongde/countervm/runtime/runtimemock"
	"github.com/gongde/countervm/storage"
)

func TestGlobalIncrementAction(t *testing.T) {
	counter := counterOf(t, lazyU64, payer)
	global := globalCounter(t)
	deposit := storage.MinimumBalance(8)
	inc := &GlobalIncrement{Counter: lazyU64}
	accounts := []*solana.AccountMeta{writable(counter), signer(payer), writable(global), system()}

	tests := map[string]ledgertest.ActionTest{
		"CreatesBoth": {
			Program: inc,
			Setup: func(ctx context.Context, t *testing.T, l *ledger.Ledger) {
				ledgertest.Fund(ctx, t, l, payer, oneSOL)
			},
			Accounts: accounts,
			ExpectedLogs: []string{
				fmt.Sprintf("counters incremented counter=%s global=1 value=1", counter),
			},
			Assertion: func(ctx context.Context, t *testing.T, l *ledger.Ledger) {
				requireCounter(ctx, t, l, lazyU64, counter, 1)
				requireCounter(ctx, t, l, lazyU64, global, 1)
				require.Equal(t, oneSOL-2*deposit, ledgertest.Account(ctx, t, l, payer).Lamports)
			},
		},
		"IncrementsBoth": {
			Program: inc,
			Setup: func(ctx context.Context, t *testing.T, l *ledger.Ledger) {
				ledgertest.Fund(ctx, t, l, payer, oneSOL)
				putCounter(ctx, t, l, lazyU64, counter, storage.Counter{Value: 5})
				putCounter(ctx, t, l, lazyU64, global, storage.Counter{Value: 100})
			},
			Accounts: accounts,
			ExpectedLogs: []string{
				fmt.Sprintf("counters incremented counter=%s global=101 value=6", counter),
			},
			Assertion: func(ctx context.Context, t *testing.T, l *ledger.Ledger) {
				requireCounter(ctx, t, l, lazyU64, counter, 6)
				requireCounter(ctx, t, l, lazyU64, global, 101)
				require.Equal(t, oneSOL, ledgertest.Account(ctx, t, l, payer).Lamports)
			},
		},
		"CreatesOnlyMissing": {
			Program: inc,
			Setup: func(ctx context.Context, t *testing.T, l *ledger.Ledger) {
				ledgertest.Fund(ctx, t, l, payer, deposit)
				putCounter(ctx, t, l, lazyU64, global, storage.Counter{Value: 7})
			},
			Accounts: accounts,
			Assertion: func(ctx context.Context, t *testing.T, l *ledger.Ledger) {
				requireCounter(ctx, t, l, lazyU64, counter, 1)
				requireCounter(ctx, t, l, lazyU64, global, 8)
				requireAbsent(ctx, t, l, payer)
			},
		},
		"InsufficientFundsForBoth": {
			Program: inc,
			Setup: func(ctx context.Context, t *testing.T, l *ledger.Ledger) {
				ledgertest.Fund(ctx, t, l, payer, deposit)
			},
			Accounts:    accounts,
			ExpectedErr: runtime.ErrInsufficientFunds,
			Assertion: func(ctx context.Context, t *testing.T, l *ledger.Ledger) {
				requireAbsent(ctx, t, l, counter)
				requireAbsent(ctx, t, l, global)
				require.Equal(t, deposit, ledgertest.Account(ctx, t, l, payer).Lamports)
			},
		},
		"WrongGlobalAddress": {
			Program: inc,
			Setup: func(ctx context.Context, t *testing.T, l *ledger.Ledger) {
				ledgertest.Fund(ctx, t, l, payer, oneSOL)
			},
			Accounts:    []*solana.AccountMeta{writable(counter), signer(payer), writable(other), system()},
			ExpectedErr: runtime.ErrInvalidAccountData,
		},
		"GlobalNotWritable": {
			Program: inc,
			Setup: func(ctx context.Context, t *testing.T, l *ledger.Ledger) {
				ledgertest.Fund(ctx, t, l, payer, oneSOL)
			},
			Accounts:    []*solana.AccountMeta{writable(counter), signer(payer), readonly(global), system()},
			ExpectedErr: runtime.ErrInvalidAccountData,
		},
		"MalformedGlobalLeavesCounter": {
			Program: inc,
			Setup: func(ctx context.Context, t *testing.T, l *ledger.Ledger) {
				ledgertest.Fund(ctx, t, l, payer, oneSOL)
				putCounter(ctx, t, l, lazyU64, counter, storage.Counter{Value: 5})
				putCounter(ctx, t, l, gongDe, global, storage.Counter{Value: 100})
			},
			Accounts:    accounts,
			ExpectedErr: runtime.ErrAccountDataTooSmall,
			Assertion: func(ctx context.Context, t *testing.T, l *ledger.Ledger) {
				requireCounter(ctx, t, l, lazyU64, counter, 5)
			},
		},
		"MissingSignature": {
			Program: inc,
			Setup: func(ctx context.Context, t *testing.T, l *ledger.Ledger) {
				ledgertest.Fund(ctx, t, l, payer, oneSOL)
			},
			Accounts:    []*solana.AccountMeta{writable(counter), writable(payer), writable(global), system()},
			ExpectedErr: runtime.ErrMissingRequiredSignature,
		},
		"NotEnoughAccounts": {
			Program:     inc,
			Accounts:    []*solana.AccountMeta{writable(counter), signer(payer), writable(global)},
			ExpectedErr: runtime.ErrNotEnoughAccountKeys,
		},
	}

	suite := ledgertest.ActionTestSuite{Tests: tests}
	suite.Run(t)
}

func TestGlobalIncrementChecksFundsBeforeMutating(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	ctrl := gomock.NewController(t)

	counter := counterOf(t, lazyU64, payer)
	global := globalCounter(t)
	deposit := storage.MinimumBalance(8)

	store := runtimemock.NewMockAccountStore(ctrl)
	store.EXPECT().MinimumBalance(uint64(8)).Return(deposit).AnyTimes()
	store.EXPECT().GetAccount(gomock.Any(), counter).Return(runtime.EmptyAccount(), nil)
	store.EXPECT().GetAccount(gomock.Any(), global).Return(runtime.EmptyAccount(), nil)
	store.EXPECT().GetAccount(gomock.Any(), payer).Return(&runtime.Account{
		Lamports: 2*deposit - 1,
		Owner:    solana.SystemProgramID,
	}, nil)
	store.EXPECT().CreateAccount(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
	store.EXPECT().WriteData(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	rc := runtime.NewContext(
		ledgertest.ProgramID,
		[]*solana.AccountMeta{writable(counter), signer(payer), writable(global), system()},
		nil,
		store,
		nil,
	)
	inc := &GlobalIncrement{Counter: lazyU64}
	require.ErrorIs(inc.Execute(ctx, rc), runtime.ErrInsufficientFunds)
	require.Empty(rc.Logs())
}
