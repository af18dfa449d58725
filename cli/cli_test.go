// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/require"

	"github.com/gongde/countervm/config"
	"github.com/gongde/countervm/consts"
	"github.com/gongde/countervm/program"
	"github.com/gongde/countervm/storage"
)

func newTestConfig(t *testing.T, variant string, dataDir string) *config.Config {
	t.Helper()
	cfg, err := config.New([]byte(fmt.Sprintf(`{"variant":%q}`, variant)))
	require.NoError(t, err)
	cfg.DataDir = dataDir
	return cfg
}

func newTestHandler(t *testing.T, variant string) *Handler {
	t.Helper()
	h, err := New(context.Background(), newTestConfig(t, variant, t.TempDir()), logging.NoLog{})
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, h.CloseDatabase())
	})
	return h
}

func fundedSigner(t *testing.T, h *Handler) solana.PublicKey {
	t.Helper()
	signer := solana.NewWallet().PublicKey()
	require.NoError(t, h.Airdrop(context.Background(), signer, consts.LamportsPerSOL))
	return signer
}

func TestIncrement(t *testing.T) {
	tests := []struct {
		variant string
		space   uint64
	}{
		{variant: program.LazyVariant, space: storage.U64.Size()},
		{variant: program.GongDeVariant, space: storage.U32.Size()},
		{variant: program.GlobalVariant, space: storage.U64.Size()},
		{variant: program.ManagedVariant, space: storage.Record.Size()},
	}
	for _, tt := range tests {
		t.Run(tt.variant, func(t *testing.T) {
			r := require.New(t)
			ctx := context.Background()
			h := newTestHandler(t, tt.variant)
			signer := fundedSigner(t, h)

			r.NoError(h.Increment(ctx, signer, 3))

			info, err := h.Client().Query(ctx, h.Ledger(), signer)
			r.NoError(err)
			r.True(info.Exists)
			r.Equal(uint64(3), info.Value)
			r.True(info.RentExempt)

			deposits := storage.MinimumBalance(tt.space)
			if tt.variant == program.GlobalVariant {
				deposits *= 2
			}
			bal, err := h.Balance(ctx, signer)
			r.NoError(err)
			r.Equal(consts.LamportsPerSOL-deposits, bal)
		})
	}
}

func TestIncrementUnfunded(t *testing.T) {
	r := require.New(t)
	ctx := context.Background()
	h := newTestHandler(t, program.LazyVariant)

	signer := solana.NewWallet().PublicKey()
	r.Error(h.Increment(ctx, signer, 1))

	info, err := h.Client().Query(ctx, h.Ledger(), signer)
	r.NoError(err)
	r.False(info.Exists)
}

func TestResetAndClose(t *testing.T) {
	r := require.New(t)
	ctx := context.Background()
	h := newTestHandler(t, program.ManagedVariant)
	signer := fundedSigner(t, h)

	r.NoError(h.Increment(ctx, signer, 2))
	r.NoError(h.Reset(ctx, signer))
	info, err := h.Client().Query(ctx, h.Ledger(), signer)
	r.NoError(err)
	r.Zero(info.Value)

	recovered, err := h.Close(ctx, signer)
	r.NoError(err)
	r.Equal(storage.MinimumBalance(storage.Record.Size()), recovered)

	bal, err := h.Balance(ctx, signer)
	r.NoError(err)
	r.Equal(consts.LamportsPerSOL, bal)

	_, err = h.Close(ctx, signer)
	r.Error(err)
}

func TestResetUnsupported(t *testing.T) {
	h := newTestHandler(t, program.LazyVariant)
	signer := fundedSigner(t, h)
	require.ErrorIs(t, h.Reset(context.Background(), signer), program.ErrNotEncodable)
}

func TestSpam(t *testing.T) {
	tests := []struct {
		variant     string
		invocations uint64
	}{
		{variant: program.LazyVariant, invocations: 4 * 5},
		// The first round also initializes.
		{variant: program.ManagedVariant, invocations: 4 * 6},
	}
	for _, tt := range tests {
		t.Run(tt.variant, func(t *testing.T) {
			r := require.New(t)
			ctx := context.Background()
			h := newTestHandler(t, tt.variant)

			result, err := h.Spam(ctx, 4, 5, consts.LamportsPerSOL)
			r.NoError(err)
			r.Equal(4, result.Accounts)
			r.Equal(tt.invocations, result.Invocations)
			r.Zero(result.Failures)

			stats, err := h.Journal().Stats(ctx)
			r.NoError(err)
			r.Equal(int(tt.invocations), stats.Invocations)
			r.Equal(4, stats.Created)
		})
	}

	h := newTestHandler(t, program.LazyVariant)
	_, err := h.Spam(context.Background(), 0, 1, 1)
	require.ErrorIs(t, err, ErrInsufficientAccounts)
}

func TestJournalAndHistory(t *testing.T) {
	r := require.New(t)
	ctx := context.Background()
	h := newTestHandler(t, program.LazyVariant)
	signer := fundedSigner(t, h)

	r.NoError(h.Increment(ctx, signer, 2))
	entries, err := h.Journal().BySigner(ctx, signer, 10)
	r.NoError(err)
	r.Len(entries, 2)
	r.True(entries[0].Success())

	r.NoError(h.PrintHistory(ctx, &signer, 10))
	r.NoError(h.PrintHistory(ctx, nil, 10))
}

func TestJournalDisabled(t *testing.T) {
	r := require.New(t)
	cfg := newTestConfig(t, program.LazyVariant, t.TempDir())
	cfg.Journal = false
	h, err := New(context.Background(), cfg, logging.NoLog{})
	r.NoError(err)
	defer func() {
		r.NoError(h.CloseDatabase())
	}()

	r.Nil(h.Journal())
	r.ErrorIs(h.PrintHistory(context.Background(), nil, 10), ErrJournalDisabled)
}

func TestWriteMetrics(t *testing.T) {
	r := require.New(t)
	ctx := context.Background()
	h := newTestHandler(t, program.LazyVariant)
	signer := fundedSigner(t, h)
	r.NoError(h.Increment(ctx, signer, 1))

	var b bytes.Buffer
	r.NoError(h.WriteMetrics(&b))
	r.Contains(b.String(), "ledger_invocations")
	r.Contains(b.String(), "program_instructions")

	h.cfg.MetricsEnabled = false
	r.ErrorIs(h.WriteMetrics(&b), ErrMetricsDisabled)
}

func TestReopenKeepsAccounts(t *testing.T) {
	r := require.New(t)
	ctx := context.Background()
	dir := t.TempDir()

	h, err := New(ctx, newTestConfig(t, program.LazyVariant, dir), logging.NoLog{})
	r.NoError(err)
	signer := fundedSigner(t, h)
	r.NoError(h.Increment(ctx, signer, 7))
	r.NoError(h.CloseDatabase())
	r.NoError(h.CloseDatabase())

	h, err = New(ctx, newTestConfig(t, program.LazyVariant, dir), logging.NoLog{})
	r.NoError(err)
	defer func() {
		r.NoError(h.CloseDatabase())
	}()
	info, err := h.Client().Query(ctx, h.Ledger(), signer)
	r.NoError(err)
	r.Equal(uint64(7), info.Value)

	stats, err := h.Journal().Stats(ctx)
	r.NoError(err)
	r.Equal(7, stats.Invocations)
}

func TestDefaultKeypair(t *testing.T) {
	r := require.New(t)
	h := newTestHandler(t, program.LazyVariant)

	priv, err := solana.NewRandomPrivateKey()
	r.NoError(err)
	ints := make([]int, len(priv))
	for i, b := range priv {
		ints[i] = int(b)
	}
	raw, err := json.Marshal(ints)
	r.NoError(err)
	path := filepath.Join(t.TempDir(), "id.json")
	r.NoError(os.WriteFile(path, raw, 0o600))

	stored, err := h.StoreDefaultKeypair(path)
	r.NoError(err)
	r.Equal(priv.PublicKey(), stored.PublicKey())

	signer, err := h.Signer("")
	r.NoError(err)
	r.Equal(priv.PublicKey(), signer.PublicKey())

	_, err = h.StoreDefaultKeypair(filepath.Join(t.TempDir(), "missing.json"))
	r.Error(err)
}
