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

	smath "github.com/ava-labs/avalanchego/utils/math"
)

var _ Action = (*Close)(nil)

// Close deletes a counter and returns its deposit to the signer.
//
// Accounts: [counter, signer].
type Close struct {
	Counter
}

func (*Close) Name() string {
	return "close"
}

func (c *Close) Execute(ctx context.Context, rc *runtime.Context) error {
	counterMeta, signerMeta, err := ownerAccounts(rc)
	if err != nil {
		return err
	}
	acct, _, err := c.loadOwned(ctx, rc, counterMeta.PublicKey, signerMeta.PublicKey)
	if err != nil {
		return err
	}
	signer, err := rc.Store.GetAccount(ctx, signerMeta.PublicKey)
	if err != nil {
		return err
	}
	if _, err := smath.Add(signer.Lamports, acct.Lamports); err != nil {
		return fmt.Errorf("%w: cannot credit %d lamports to %s", runtime.ErrArithmeticOverflow, acct.Lamports, signerMeta.PublicKey)
	}

	if err := rc.Store.WriteData(ctx, counterMeta.PublicKey, make([]byte, len(acct.Data))); err != nil {
		return err
	}
	if err := rc.Store.Transfer(ctx, counterMeta.PublicKey, signerMeta.PublicKey, acct.Lamports); err != nil {
		return err
	}
	rc.Msg("counter closed",
		zap.Stringer("counter", counterMeta.PublicKey),
		zap.Uint64("recovered", acct.Lamports),
	)
	return nil
}

// ownerAccounts returns the [counter, signer] accounts of Reset and Close.
func ownerAccounts(rc *runtime.Context) (*solana.AccountMeta, *solana.AccountMeta, error) {
	it := rc.Iter()
	counterMeta, err := it.Next()
	if err != nil {
		return nil, nil, err
	}
	signerMeta, err := it.Next()
	if err != nil {
		return nil, nil, err
	}
	if err := requireWritable(counterMeta); err != nil {
		return nil, nil, err
	}
	if err := requireSigner(signerMeta); err != nil {
		return nil, nil, err
	}
	return counterMeta, signerMeta, nil
}

// loadOwned returns the counter at [addr] after checking that [signer] is
// allowed to reset or close it.
func (c Counter) loadOwned(
	ctx context.Context,
	rc *runtime.Context,
	addr solana.PublicKey,
	signer solana.PublicKey,
) (*runtime.Account, storage.Counter, error) {
	acct, err := rc.Store.GetAccount(ctx, addr)
	if err != nil {
		return nil, storage.Counter{}, err
	}
	if !acct.Exists() {
		return nil, storage.Counter{}, fmt.Errorf("%w: counter %s", runtime.ErrUninitializedAccount, addr)
	}
	counter, err := c.decode(rc, addr, acct)
	if err != nil {
		return nil, storage.Counter{}, err
	}
	if err := c.authorize(rc, addr, counter, signer); err != nil {
		return nil, storage.Counter{}, err
	}
	return acct, counter, nil
}
