// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"context"
	"testing"

	"github.com/ava-labs/avalanchego/api/metrics"
	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/require"

	"github.com/gongde/countervm/pebble"
	"github.com/gongde/countervm/runtime"
	"github.com/gongde/countervm/state"
)

func TestNewDatabase(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	cfg := pebble.NewDefaultConfig()
	cfg.Sync = false
	gatherer := metrics.NewPrefixGatherer()
	db, err := New(cfg, t.TempDir(), "accounts", gatherer)
	require.NoError(err)

	mu := state.NewDatabaseStorage(db)
	addr := solana.PublicKey{7}
	require.NoError(SetAccount(ctx, mu, addr, &runtime.Account{
		Lamports: 5,
		Owner:    solana.SystemProgramID,
	}))
	acct, err := GetAccount(ctx, mu, addr)
	require.NoError(err)
	require.Equal(uint64(5), acct.Lamports)

	families, err := gatherer.Gather()
	require.NoError(err)
	require.NotEmpty(families)
	require.NoError(db.Close())
}
