// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/gongde/countervm/runtime"
	"github.com/gongde/countervm/storage"
)

var _ Action = (*Initialize)(nil)

// Initialize creates the counter of the payer with a value of 0.
//
// Accounts: [counter, payer, system].
type Initialize struct {
	Counter
}

func (*Initialize) Name() string {
	return "initialize"
}

func (i *Initialize) Execute(ctx context.Context, rc *runtime.Context) error {
	it := rc.Iter()
	counterMeta, err := it.Next()
	if err != nil {
		return err
	}
	payerMeta, err := it.Next()
	if err != nil {
		return err
	}
	systemMeta, err := it.Next()
	if err != nil {
		return err
	}

	if err := requireSigner(payerMeta); err != nil {
		return err
	}
	expected, err := i.Scheme.Counter(payerMeta.PublicKey, rc.ProgramID)
	if err != nil {
		return err
	}
	if err := requireAddress(counterMeta, expected); err != nil {
		return err
	}
	if err := requireWritable(counterMeta); err != nil {
		return err
	}
	if err := requireSystemProgram(systemMeta); err != nil {
		return err
	}
	acct, err := rc.Store.GetAccount(ctx, expected)
	if err != nil {
		return err
	}
	if acct.Exists() {
		return fmt.Errorf("%w: counter %s", runtime.ErrAccountAlreadyInUse, expected)
	}

	if err := i.create(ctx, rc, payerMeta.PublicKey, expected, storage.Counter{Owner: payerMeta.PublicKey}); err != nil {
		return err
	}
	rc.Msg("counter initialized",
		zap.Stringer("counter", expected),
		zap.Stringer("owner", payerMeta.PublicKey),
		zap.Uint64("value", 0),
	)
	return nil
}
