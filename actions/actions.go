// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"

	"github.com/gongde/countervm/address"
	"github.com/gongde/countervm/runtime"
	"github.com/gongde/countervm/storage"
)

// Action handles one instruction against the accounts of an invocation.
type Action interface {
	Name() string
	Execute(ctx context.Context, rc *runtime.Context) error
}

// Counter describes the counters an action operates on.
type Counter struct {
	Layout storage.Layout
	Scheme address.Scheme
}

func requireSigner(meta *solana.AccountMeta) error {
	if !meta.IsSigner {
		return fmt.Errorf("%w: %s", runtime.ErrMissingRequiredSignature, meta.PublicKey)
	}
	return nil
}

func requireWritable(meta *solana.AccountMeta) error {
	if !meta.IsWritable {
		return fmt.Errorf("%w: %s is not writable", runtime.ErrInvalidAccountData, meta.PublicKey)
	}
	return nil
}

func requireAddress(meta *solana.AccountMeta, expected solana.PublicKey) error {
	if !meta.PublicKey.Equals(expected) {
		return fmt.Errorf("%w: expected counter %s, got %s", runtime.ErrInvalidAccountData, expected, meta.PublicKey)
	}
	return nil
}

func requireSystemProgram(meta *solana.AccountMeta) error {
	if !meta.PublicKey.Equals(solana.SystemProgramID) {
		return fmt.Errorf("%w: %s is not the system program", runtime.ErrInvalidAccountData, meta.PublicKey)
	}
	return nil
}

func saturatingIncrement(v, max uint64) uint64 {
	if v >= max {
		return max
	}
	return v + 1
}

// decode reads the counter stored in [acct]. The account must exist and be
// owned by the invoked program.
func (c Counter) decode(rc *runtime.Context, addr solana.PublicKey, acct *runtime.Account) (storage.Counter, error) {
	if !acct.Owner.Equals(rc.ProgramID) {
		return storage.Counter{}, fmt.Errorf("%w: counter %s is owned by %s", runtime.ErrInvalidAccountData, addr, acct.Owner)
	}
	return c.Layout.Read(acct.Data)
}

func (c Counter) write(
	ctx context.Context,
	rc *runtime.Context,
	addr solana.PublicKey,
	acct *runtime.Account,
	counter storage.Counter,
) error {
	data := make([]byte, len(acct.Data))
	copy(data, acct.Data)
	if err := c.Layout.Write(data, counter); err != nil {
		return err
	}
	return rc.Store.WriteData(ctx, addr, data)
}

// create allocates a rent exempt counter at [addr] paid for by [payer] and
// stores [counter] in it.
func (c Counter) create(
	ctx context.Context,
	rc *runtime.Context,
	payer solana.PublicKey,
	addr solana.PublicKey,
	counter storage.Counter,
) error {
	space := c.Layout.Size()
	if err := rc.Store.CreateAccount(ctx, payer, addr, rc.Store.MinimumBalance(space), space, rc.ProgramID); err != nil {
		return err
	}
	data := make([]byte, space)
	if err := c.Layout.Write(data, counter); err != nil {
		return err
	}
	return rc.Store.WriteData(ctx, addr, data)
}

// authorize checks that [signer] is the owner-designated signer of the
// counter at [addr].
func (c Counter) authorize(rc *runtime.Context, addr solana.PublicKey, counter storage.Counter, signer solana.PublicKey) error {
	if c.Layout.HasOwner() {
		if !counter.Owner.Equals(signer) {
			return fmt.Errorf("%w: %s does not own counter %s", runtime.ErrInvalidAccountData, signer, addr)
		}
		return nil
	}
	expected, err := c.Scheme.Counter(signer, rc.ProgramID)
	if err != nil {
		return err
	}
	if !expected.Equals(addr) {
		return fmt.Errorf("%w: %s does not own counter %s", runtime.ErrInvalidAccountData, signer, addr)
	}
	return nil
}
