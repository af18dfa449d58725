// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"context"
	"fmt"
	"testing"

	"github.com/gagliardetto/solana-go"

	"github.com/gongde/countervm/ledger"
	"github.com/gongde/countervm/ledger/ledgertest"
	"github.com/gongde/countervm/runtime"
	"github.com/gongde/countervm/storage"
)

func TestResetAction(t *testing.T) {
	counter := counterOf(t, managed, payer)
	pda := counterOf(t, lazyU64, payer)

	tests := map[string]ledgertest.ActionTest{
		"OwnerResets": {
			Program: &Reset{Counter: managed},
			Setup: func(ctx context.Context, t *testing.T, l *ledger.Ledger) {
				putCounter(ctx, t, l, managed, counter, storage.Counter{Value: 77, Owner: payer})
			},
			Accounts:     []*solana.AccountMeta{writable(counter), signer(payer)},
			ExpectedLogs: []string{fmt.Sprintf("counter reset counter=%s", counter)},
			Assertion: func(ctx context.Context, t *testing.T, l *ledger.Ledger) {
				requireCounter(ctx, t, l, managed, counter, 0)
			},
		},
		"DerivedOwnerResets": {
			Program: &Reset{Counter: lazyU64},
			Setup: func(ctx context.Context, t *testing.T, l *ledger.Ledger) {
				putCounter(ctx, t, l, lazyU64, pda, storage.Counter{Value: 5})
			},
			Accounts: []*solana.AccountMeta{writable(pda), signer(payer)},
			Assertion: func(ctx context.Context, t *testing.T, l *ledger.Ledger) {
				requireCounter(ctx, t, l, lazyU64, pda, 0)
			},
		},
		"NotOwner": {
			Program: &Reset{Counter: managed},
			Setup: func(ctx context.Context, t *testing.T, l *ledger.Ledger) {
				putCounter(ctx, t, l, managed, counter, storage.Counter{Value: 77, Owner: payer})
			},
			Accounts:    []*solana.AccountMeta{writable(counter), signer(other)},
			ExpectedErr: runtime.ErrInvalidAccountData,
			Assertion: func(ctx context.Context, t *testing.T, l *ledger.Ledger) {
				requireCounter(ctx, t, l, managed, counter, 77)
			},
		},
		"DerivedNotOwner": {
			Program: &Reset{Counter: lazyU64},
			Setup: func(ctx context.Context, t *testing.T, l *ledger.Ledger) {
				putCounter(ctx, t, l, lazyU64, pda, storage.Counter{Value: 5})
			},
			Accounts:    []*solana.AccountMeta{writable(pda), signer(other)},
			ExpectedErr: runtime.ErrInvalidAccountData,
		},
		"MissingSignature": {
			Program: &Reset{Counter: managed},
			Setup: func(ctx context.Context, t *testing.T, l *ledger.Ledger) {
				putCounter(ctx, t, l, managed, counter, storage.Counter{Value: 77, Owner: payer})
			},
			Accounts:    []*solana.AccountMeta{writable(counter), readonly(payer)},
			ExpectedErr: runtime.ErrMissingRequiredSignature,
		},
		"Uninitialized": {
			Program:     &Reset{Counter: managed},
			Accounts:    []*solana.AccountMeta{writable(counter), signer(payer)},
			ExpectedErr: runtime.ErrUninitializedAccount,
		},
		"NotEnoughAccounts": {
			Program:     &Reset{Counter: managed},
			Accounts:    []*solana.AccountMeta{writable(counter)},
			ExpectedErr: runtime.ErrNotEnoughAccountKeys,
		},
	}

	suite := ledgertest.ActionTestSuite{Tests: tests}
	suite.Run(t)
}
