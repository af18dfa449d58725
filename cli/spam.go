// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cli

import (
	"context"
	"time"

	"github.com/gagliardetto/solana-go"
	"go.uber.org/atomic"
	"golang.org/x/sync/errgroup"

	"github.com/gongde/countervm/utils"
)

// SpamResult summarizes a spam run.
type SpamResult struct {
	Accounts    int
	Invocations uint64
	Failures    uint64
	Elapsed     time.Duration
}

func (r *SpamResult) PerSecond() float64 {
	if r.Elapsed <= 0 {
		return 0
	}
	return float64(r.Invocations) / r.Elapsed.Seconds()
}

// Spam funds [accounts] fresh signers with [funding] lamports each and has
// every one of them increment its counter [increments] times concurrently.
// Failed increments are counted rather than returned.
func (h *Handler) Spam(ctx context.Context, accounts int, increments int, funding uint64) (*SpamResult, error) {
	if accounts < 1 {
		return nil, ErrInsufficientAccounts
	}
	signers := make([]solana.PublicKey, accounts)
	for i := range signers {
		priv, err := solana.NewRandomPrivateKey()
		if err != nil {
			return nil, err
		}
		signers[i] = priv.PublicKey()
		if _, err := h.ledger.Airdrop(ctx, signers[i], funding); err != nil {
			return nil, err
		}
	}
	utils.Outf("{{yellow}}funded accounts:{{/}} %d {{yellow}}each:{{/}} %s SOL\n", accounts, utils.FormatBalance(funding))

	var (
		invocations atomic.Uint64
		failures    atomic.Uint64
		start       = time.Now()
	)
	g, gctx := errgroup.WithContext(ctx)
	for _, signer := range signers {
		signer := signer
		g.Go(func() error {
			ixs, err := h.spamInstructions(signer)
			if err != nil {
				return err
			}
			for i := 0; i < increments; i++ {
				for _, ix := range ixs {
					if _, err := h.Invoke(gctx, ix); err != nil {
						failures.Inc()
					}
					invocations.Inc()
				}
				ixs = ixs[len(ixs)-1:]
			}
			return gctx.Err()
		})
	}
	err := g.Wait()
	result := &SpamResult{
		Accounts:    accounts,
		Invocations: invocations.Load(),
		Failures:    failures.Load(),
		Elapsed:     time.Since(start),
	}
	utils.Outf(
		"{{green}}invocations:{{/}} %d {{green}}failures:{{/}} %d {{green}}elapsed:{{/}} %s {{green}}per second:{{/}} %.2f\n",
		result.Invocations,
		result.Failures,
		result.Elapsed,
		result.PerSecond(),
	)
	return result, err
}

// spamInstructions returns the first round of instructions of [signer]. The
// last one is the increment repeated afterwards.
func (h *Handler) spamInstructions(signer solana.PublicKey) ([]solana.Instruction, error) {
	increment, err := h.client.Increment(signer)
	if err != nil {
		return nil, err
	}
	if h.client.Variant().Lazy {
		return []solana.Instruction{increment}, nil
	}
	initialize, err := h.client.Initialize(signer)
	if err != nil {
		return nil, err
	}
	return []solana.Instruction{initialize, increment}, nil
}
