// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"context"

	"go.uber.org/zap"

	"github.com/gongde/countervm/runtime"
)

var _ Action = (*Reset)(nil)

// Reset sets a counter back to 0.
//
// Accounts: [counter, signer].
type Reset struct {
	Counter
}

func (*Reset) Name() string {
	return "reset"
}

func (r *Reset) Execute(ctx context.Context, rc *runtime.Context) error {
	counterMeta, signerMeta, err := ownerAccounts(rc)
	if err != nil {
		return err
	}
	acct, counter, err := r.loadOwned(ctx, rc, counterMeta.PublicKey, signerMeta.PublicKey)
	if err != nil {
		return err
	}
	counter.Value = 0
	if err := r.write(ctx, rc, counterMeta.PublicKey, acct, counter); err != nil {
		return err
	}
	rc.Msg("counter reset", zap.Stringer("counter", counterMeta.PublicKey))
	return nil
}
