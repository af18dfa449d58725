// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ledgertest

import (
	"context"
	"testing"

	"github.com/ava-labs/avalanchego/database/memdb"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/require"

	"github.com/gongde/countervm/ledger"
	"github.com/gongde/countervm/runtime"
	"github.com/gongde/countervm/state"
)

// ProgramID is the address test programs are registered at.
var ProgramID = solana.MustPublicKeyFromBase58("9jpqDtrTj4GyNLVDjydbJVW1pWkZypHwpqDyLt2Ragt9")

// NewLedger returns an in-memory ledger with [program] registered at
// [ProgramID] when it is non-nil.
func NewLedger(t testing.TB, program ledger.Program) *ledger.Ledger {
	l, _, err := ledger.New(logging.NoLog{}, state.NewDatabaseStorage(memdb.New()))
	require.NoError(t, err)
	if program != nil {
		require.NoError(t, l.Register(ProgramID, program))
	}
	return l
}

// Key returns a deterministic public key for tests.
func Key(seed byte) solana.PublicKey {
	var k solana.PublicKey
	for i := range k {
		k[i] = seed
	}
	return k
}

func Fund(ctx context.Context, t testing.TB, l *ledger.Ledger, addr solana.PublicKey, lamports uint64) {
	_, err := l.Airdrop(ctx, addr, lamports)
	require.NoError(t, err)
}

func Account(ctx context.Context, t testing.TB, l *ledger.Ledger, addr solana.PublicKey) *runtime.Account {
	acct, err := l.GetAccount(ctx, addr)
	require.NoError(t, err)
	return acct
}

// ActionTest is a single parameterized test. It invokes [Program] with the
// passed accounts and data on a fresh ledger and checks that all
// assertions pass.
type ActionTest struct {
	Name string

	Program ledger.Program

	Setup    func(context.Context, *testing.T, *ledger.Ledger)
	Accounts []*solana.AccountMeta
	Data     []byte

	ExpectedErr  error
	ExpectedLogs []string

	Assertion func(context.Context, *testing.T, *ledger.Ledger)
}

// Run executes the [ActionTest] and makes sure all assertions pass.
func (test *ActionTest) Run(ctx context.Context, t *testing.T) {
	t.Run(test.Name, func(t *testing.T) {
		require := require.New(t)

		l := NewLedger(t, test.Program)
		if test.Setup != nil {
			test.Setup(ctx, t, l)
		}

		receipt, err := l.Invoke(ctx, solana.NewInstruction(ProgramID, test.Accounts, test.Data))
		require.ErrorIs(err, test.ExpectedErr)
		require.Equal(runtime.ErrorCode(test.ExpectedErr), receipt.Code)
		if test.ExpectedLogs != nil {
			require.Equal(test.ExpectedLogs, receipt.Logs)
		}

		if test.Assertion != nil {
			test.Assertion(ctx, t, l)
		}
	})
}

// ActionTestSuite runs a set of named [ActionTest]s.
type ActionTestSuite struct {
	Tests map[string]ActionTest
}

func (suite *ActionTestSuite) Run(t *testing.T) {
	ctx := context.Background()
	for name, test := range suite.Tests {
		test.Name = name
		test.Run(ctx, t)
	}
}
