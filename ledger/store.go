// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ledger

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"

	"github.com/gongde/countervm/runtime"
	"github.com/gongde/countervm/state"
	"github.com/gongde/countervm/storage"

	smath "github.com/ava-labs/avalanchego/utils/math"
)

var _ runtime.AccountStore = (*invocationStore)(nil)

// invocationStore is the [runtime.AccountStore] handed to a single
// instruction. It only sees the accounts listed by the instruction and
// enforces the ledger rules on every mutation.
type invocationStore struct {
	program solana.PublicKey
	mu      state.Mutable
	metas   map[solana.PublicKey]*solana.AccountMeta

	created int
	closed  int
}

func newInvocationStore(program solana.PublicKey, mu state.Mutable, accounts []*solana.AccountMeta) *invocationStore {
	metas := make(map[solana.PublicKey]*solana.AccountMeta, len(accounts))
	for _, meta := range accounts {
		// An account listed twice keeps the union of its flags.
		if prev, ok := metas[meta.PublicKey]; ok {
			merged := *prev
			merged.IsWritable = merged.IsWritable || meta.IsWritable
			merged.IsSigner = merged.IsSigner || meta.IsSigner
			metas[meta.PublicKey] = &merged
			continue
		}
		metas[meta.PublicKey] = meta
	}
	return &invocationStore{
		program: program,
		mu:      mu,
		metas:   metas,
	}
}

func (s *invocationStore) meta(addr solana.PublicKey) (*solana.AccountMeta, error) {
	meta, ok := s.metas[addr]
	if !ok {
		return nil, fmt.Errorf("%w: %s", runtime.ErrMissingAccount, addr)
	}
	return meta, nil
}

func (s *invocationStore) writable(addr solana.PublicKey) (*solana.AccountMeta, error) {
	meta, err := s.meta(addr)
	if err != nil {
		return nil, err
	}
	if !meta.IsWritable {
		return nil, fmt.Errorf("%w: %s", runtime.ErrReadonlyAccount, addr)
	}
	return meta, nil
}

func (s *invocationStore) GetAccount(ctx context.Context, addr solana.PublicKey) (*runtime.Account, error) {
	if _, err := s.meta(addr); err != nil {
		return nil, err
	}
	return storage.GetAccount(ctx, s.mu, addr)
}

// canDebit returns nil if the program may take lamports from [acct].
func (s *invocationStore) canDebit(meta *solana.AccountMeta, acct *runtime.Account) error {
	if acct.Owner.Equals(s.program) {
		return nil
	}
	if acct.Owner.Equals(solana.SystemProgramID) && meta.IsSigner {
		return nil
	}
	if acct.Owner.Equals(solana.SystemProgramID) {
		return fmt.Errorf("%w: %s", runtime.ErrMissingRequiredSignature, meta.PublicKey)
	}
	return fmt.Errorf("%w: %s is owned by %s", runtime.ErrExternalAccountModified, meta.PublicKey, acct.Owner)
}

func (s *invocationStore) CreateAccount(
	ctx context.Context,
	payer solana.PublicKey,
	addr solana.PublicKey,
	lamports uint64,
	space uint64,
	owner solana.PublicKey,
) error {
	payerMeta, err := s.writable(payer)
	if err != nil {
		return err
	}
	if !payerMeta.IsSigner {
		return fmt.Errorf("%w: payer %s", runtime.ErrMissingRequiredSignature, payer)
	}
	if _, err := s.writable(addr); err != nil {
		return err
	}
	if !owner.Equals(s.program) {
		return fmt.Errorf("%w: cannot assign %s to %s", runtime.ErrExternalAccountModified, addr, owner)
	}
	if lamports == 0 {
		return fmt.Errorf("%w: deposit of %s must be positive", runtime.ErrInsufficientFunds, addr)
	}

	target, err := storage.GetAccount(ctx, s.mu, addr)
	if err != nil {
		return err
	}
	if target.Exists() || len(target.Data) > 0 {
		return fmt.Errorf("%w: %s", runtime.ErrAccountAlreadyInUse, addr)
	}
	from, err := storage.GetAccount(ctx, s.mu, payer)
	if err != nil {
		return err
	}
	if !from.Owner.Equals(solana.SystemProgramID) || len(from.Data) > 0 {
		return fmt.Errorf("%w: payer %s is not a system account", runtime.ErrExternalAccountModified, payer)
	}
	remaining, err := smath.Sub(from.Lamports, lamports)
	if err != nil {
		return fmt.Errorf(
			"%w: payer %s has %d lamports, needs %d",
			runtime.ErrInsufficientFunds,
			payer,
			from.Lamports,
			lamports,
		)
	}

	from.Lamports = remaining
	if err := storage.SetAccount(ctx, s.mu, payer, from); err != nil {
		return err
	}
	if err := storage.SetAccount(ctx, s.mu, addr, &runtime.Account{
		Lamports: lamports,
		Owner:    owner,
		Data:     make([]byte, space),
	}); err != nil {
		return err
	}
	s.created++
	return nil
}

func (s *invocationStore) WriteData(ctx context.Context, addr solana.PublicKey, data []byte) error {
	if _, err := s.writable(addr); err != nil {
		return err
	}
	acct, err := storage.GetAccount(ctx, s.mu, addr)
	if err != nil {
		return err
	}
	if !acct.Exists() {
		return fmt.Errorf("%w: %s", runtime.ErrUninitializedAccount, addr)
	}
	if !acct.Owner.Equals(s.program) {
		return fmt.Errorf("%w: %s is owned by %s", runtime.ErrExternalAccountModified, addr, acct.Owner)
	}
	if len(data) != len(acct.Data) {
		return fmt.Errorf("%w: %s from %d to %d bytes", runtime.ErrAccountDataSizeChanged, addr, len(acct.Data), len(data))
	}
	acct.Data = make([]byte, len(data))
	copy(acct.Data, data)
	return storage.SetAccount(ctx, s.mu, addr, acct)
}

func (s *invocationStore) Transfer(ctx context.Context, from solana.PublicKey, to solana.PublicKey, amount uint64) error {
	fromMeta, err := s.writable(from)
	if err != nil {
		return err
	}
	if _, err := s.writable(to); err != nil {
		return err
	}
	src, err := storage.GetAccount(ctx, s.mu, from)
	if err != nil {
		return err
	}
	if err := s.canDebit(fromMeta, src); err != nil {
		return err
	}
	if from.Equals(to) || amount == 0 {
		return nil
	}
	dst, err := storage.GetAccount(ctx, s.mu, to)
	if err != nil {
		return err
	}

	srcBal, err := smath.Sub(src.Lamports, amount)
	if err != nil {
		return fmt.Errorf("%w: %s has %d lamports, needs %d", runtime.ErrInsufficientFunds, from, src.Lamports, amount)
	}
	dstBal, err := smath.Add(dst.Lamports, amount)
	if err != nil {
		return fmt.Errorf("%w: crediting %s", runtime.ErrArithmeticOverflow, to)
	}
	src.Lamports = srcBal
	dst.Lamports = dstBal
	if err := storage.SetAccount(ctx, s.mu, from, src); err != nil {
		return err
	}
	if err := storage.SetAccount(ctx, s.mu, to, dst); err != nil {
		return err
	}
	if srcBal == 0 {
		s.closed++
	}
	return nil
}

func (*invocationStore) MinimumBalance(space uint64) uint64 {
	return storage.MinimumBalance(space)
}
