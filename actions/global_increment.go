// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"go.uber.org/zap"

	"github.com/gongde/countervm/address"
	"github.com/gongde/countervm/runtime"
	"github.com/gongde/countervm/storage"

	smath "github.com/ava-labs/avalanchego/utils/math"
)

var _ Action = (*GlobalIncrement)(nil)

// GlobalIncrement increments the payer's counter and the program-wide
// counter together, creating either one when missing.
//
// Accounts: [counter, payer, global, system].
//
// Every check runs before the first mutation so a failure never leaves one
// counter updated without the other.
type GlobalIncrement struct {
	Counter
}

func (*GlobalIncrement) Name() string {
	return "increment"
}

// target is a counter GlobalIncrement will create or increment.
type target struct {
	addr    solana.PublicKey
	acct    *runtime.Account
	counter storage.Counter
}

func (g *GlobalIncrement) Execute(ctx context.Context, rc *runtime.Context) error {
	it := rc.Iter()
	metas := make([]*solana.AccountMeta, 4)
	for i := range metas {
		meta, err := it.Next()
		if err != nil {
			return err
		}
		metas[i] = meta
	}
	counterMeta, payerMeta, globalMeta, systemMeta := metas[0], metas[1], metas[2], metas[3]

	if err := requireSigner(payerMeta); err != nil {
		return err
	}
	if err := requireWritable(counterMeta); err != nil {
		return err
	}
	if err := requireWritable(globalMeta); err != nil {
		return err
	}
	expected, err := g.Scheme.Counter(payerMeta.PublicKey, rc.ProgramID)
	if err != nil {
		return err
	}
	if err := requireAddress(counterMeta, expected); err != nil {
		return err
	}
	global, _, err := address.GlobalCounterAddress(rc.ProgramID)
	if err != nil {
		return err
	}
	if err := requireAddress(globalMeta, global); err != nil {
		return err
	}
	if err := requireSystemProgram(systemMeta); err != nil {
		return err
	}

	user, err := g.prepare(ctx, rc, expected)
	if err != nil {
		return err
	}
	all, err := g.prepare(ctx, rc, global)
	if err != nil {
		return err
	}
	if err := g.checkFunds(ctx, rc, payerMeta.PublicKey, user, all); err != nil {
		return err
	}

	for _, t := range []*target{user, all} {
		if err := g.apply(ctx, rc, payerMeta.PublicKey, t); err != nil {
			return err
		}
	}
	rc.Msg("counters incremented",
		zap.Stringer("counter", expected),
		zap.Uint64("value", user.counter.Value),
		zap.Uint64("global", all.counter.Value),
	)
	return nil
}

// prepare loads and validates the counter at [addr] without modifying it.
func (g *GlobalIncrement) prepare(ctx context.Context, rc *runtime.Context, addr solana.PublicKey) (*target, error) {
	acct, err := rc.Store.GetAccount(ctx, addr)
	if err != nil {
		return nil, err
	}
	t := &target{addr: addr, acct: acct}
	if !acct.Exists() {
		return t, nil
	}
	t.counter, err = g.decode(rc, addr, acct)
	if err != nil {
		return nil, err
	}
	return t, nil
}

// checkFunds verifies [payer] can pay the deposit of every counter that has
// to be created.
func (g *GlobalIncrement) checkFunds(ctx context.Context, rc *runtime.Context, payer solana.PublicKey, targets ...*target) error {
	var needed uint64
	for _, t := range targets {
		if t.acct.Exists() {
			continue
		}
		var err error
		needed, err = smath.Add(needed, rc.Store.MinimumBalance(g.Layout.Size()))
		if err != nil {
			return fmt.Errorf("%w: deposit", runtime.ErrArithmeticOverflow)
		}
	}
	if needed == 0 {
		return nil
	}
	payerAcct, err := rc.Store.GetAccount(ctx, payer)
	if err != nil {
		return err
	}
	if payerAcct.Lamports < needed {
		return fmt.Errorf("%w: payer %s has %d lamports, needs %d", runtime.ErrInsufficientFunds, payer, payerAcct.Lamports, needed)
	}
	return nil
}

func (g *GlobalIncrement) apply(ctx context.Context, rc *runtime.Context, payer solana.PublicKey, t *target) error {
	if !t.acct.Exists() {
		t.counter = storage.Counter{Value: 1, Owner: payer}
		return g.create(ctx, rc, payer, t.addr, t.counter)
	}
	t.counter.Value = saturatingIncrement(t.counter.Value, g.Layout.Max())
	return g.write(ctx, rc, t.addr, t.acct, t.counter)
}
