// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"go.uber.org/zap"

	"github.com/gongde/countervm/runtime"
	"github.com/gongde/countervm/storage"
)

var _ Action = (*Increment)(nil)

// Increment adds one to a counter, saturating at the maximum of its layout.
//
// Accounts: [counter] for an existing counter. When [Lazy] is set a missing
// counter is created with a value of 1 and the accounts are
// [counter, payer, system].
type Increment struct {
	Counter
	Lazy bool
}

func (*Increment) Name() string {
	return "increment"
}

func (inc *Increment) Execute(ctx context.Context, rc *runtime.Context) error {
	it := rc.Iter()
	counterMeta, err := it.Next()
	if err != nil {
		return err
	}
	acct, err := rc.Store.GetAccount(ctx, counterMeta.PublicKey)
	if err != nil {
		return err
	}

	if !acct.Exists() {
		if !inc.Lazy {
			return fmt.Errorf("%w: counter %s", runtime.ErrUninitializedAccount, counterMeta.PublicKey)
		}
		payerMeta, err := it.Next()
		if err != nil {
			return err
		}
		systemMeta, err := it.Next()
		if err != nil {
			return err
		}
		return inc.createCounter(ctx, rc, counterMeta, payerMeta, systemMeta)
	}

	if err := requireWritable(counterMeta); err != nil {
		return err
	}
	counter, err := inc.decode(rc, counterMeta.PublicKey, acct)
	if err != nil {
		return err
	}
	counter.Value = saturatingIncrement(counter.Value, inc.Layout.Max())
	if err := inc.write(ctx, rc, counterMeta.PublicKey, acct, counter); err != nil {
		return err
	}
	rc.Msg("counter incremented",
		zap.Stringer("counter", counterMeta.PublicKey),
		zap.Uint64("value", counter.Value),
	)
	return nil
}

func (inc *Increment) createCounter(
	ctx context.Context,
	rc *runtime.Context,
	counterMeta *solana.AccountMeta,
	payerMeta *solana.AccountMeta,
	systemMeta *solana.AccountMeta,
) error {
	if err := requireSigner(payerMeta); err != nil {
		return err
	}
	expected, err := inc.Scheme.Counter(payerMeta.PublicKey, rc.ProgramID)
	if err != nil {
		return err
	}
	if err := requireAddress(counterMeta, expected); err != nil {
		rc.Msg("counter address mismatch", zap.Stringer("expected", expected))
		return err
	}
	if err := requireWritable(counterMeta); err != nil {
		return err
	}
	if err := requireSystemProgram(systemMeta); err != nil {
		return err
	}
	if err := inc.create(ctx, rc, payerMeta.PublicKey, expected, storage.Counter{Value: 1, Owner: payerMeta.PublicKey}); err != nil {
		return err
	}
	rc.Msg("counter created",
		zap.Stringer("counter", expected),
		zap.Uint64("value", 1),
	)
	return nil
}
