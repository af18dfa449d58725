// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package ledger hosts programs on a local account ledger. It provides the
// guarantees a program relies on: invocations touching the same account are
// serialized, and the effects of an invocation are applied atomically or not
// at all.
package ledger

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/gagliardetto/solana-go"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/gongde/countervm/lockmap"
	"github.com/gongde/countervm/runtime"
	"github.com/gongde/countervm/state"
	"github.com/gongde/countervm/storage"
	"github.com/gongde/countervm/tstate"
)

// Program executes the instructions addressed to it.
type Program interface {
	Execute(ctx context.Context, rc *runtime.Context) error
}

type Ledger struct {
	log     logging.Logger
	base    *syncState
	locks   *lockmap.Lockmap
	metrics *metrics

	programsL sync.RWMutex
	programs  map[solana.PublicKey]Program
}

// New returns a ledger storing its accounts in [base].
func New(log logging.Logger, base state.Mutable) (*Ledger, *prometheus.Registry, error) {
	registry, metrics, err := newMetrics()
	if err != nil {
		return nil, nil, err
	}
	return &Ledger{
		log:      log,
		base:     &syncState{mu: base},
		locks:    lockmap.New(64),
		metrics:  metrics,
		programs: map[solana.PublicKey]Program{},
	}, registry, nil
}

// Register deploys [program] at [id].
func (l *Ledger) Register(id solana.PublicKey, program Program) error {
	l.programsL.Lock()
	defer l.programsL.Unlock()

	if _, ok := l.programs[id]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateProgram, id)
	}
	l.programs[id] = program
	l.log.Info("registered program", zap.Stringer("program", id))
	return nil
}

func (l *Ledger) program(id solana.PublicKey) (Program, error) {
	l.programsL.RLock()
	defer l.programsL.RUnlock()

	p, ok := l.programs[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", runtime.ErrProgramNotFound, id)
	}
	return p, nil
}

// GetAccount returns the committed account at [addr].
func (l *Ledger) GetAccount(ctx context.Context, addr solana.PublicKey) (*runtime.Account, error) {
	k := string(storage.AccountKey(addr))
	l.locks.RLock(k)
	defer l.locks.RUnlock(k)

	return storage.GetAccount(ctx, l.base, addr)
}

// SetAccount overwrites the account at [addr] without running any program.
func (l *Ledger) SetAccount(ctx context.Context, addr solana.PublicKey, acct *runtime.Account) error {
	k := string(storage.AccountKey(addr))
	l.locks.Lock(k)
	defer l.locks.Unlock(k)

	return storage.SetAccount(ctx, l.base, addr, acct)
}

// Airdrop credits [lamports] to [addr].
func (l *Ledger) Airdrop(ctx context.Context, addr solana.PublicKey, lamports uint64) (uint64, error) {
	k := string(storage.AccountKey(addr))
	l.locks.Lock(k)
	defer l.locks.Unlock(k)

	bal, err := storage.AddLamports(ctx, l.base, addr, lamports)
	if err != nil {
		return 0, err
	}
	l.metrics.airdrops.Inc()
	l.log.Debug("airdrop",
		zap.Stringer("account", addr),
		zap.Uint64("lamports", lamports),
		zap.Uint64("balance", bal),
	)
	return bal, nil
}

func (*Ledger) MinimumBalance(space uint64) uint64 {
	return storage.MinimumBalance(space)
}

// Invoke runs [instructions] in order as a single unit of work. Either the
// changes of every instruction are committed or none are.
//
// The returned error is the first instruction failure and is also recorded
// in the receipt.
func (l *Ledger) Invoke(ctx context.Context, instructions ...solana.Instruction) (*Receipt, error) {
	start := time.Now()
	receipt := &Receipt{Timestamp: start}
	defer func() {
		receipt.Duration = time.Since(start)
		receipt.Code = runtime.ErrorCode(receipt.Err)
		l.metrics.invocations.Inc()
		l.metrics.invoke.Observe(float64(receipt.Duration))
	}()

	if err := ctx.Err(); err != nil {
		receipt.Err = err
		return receipt, err
	}
	if len(instructions) == 0 {
		receipt.Err = ErrNoInstructions
		return receipt, ErrNoInstructions
	}

	calls, keys, err := l.prepare(instructions, receipt)
	if err != nil {
		receipt.Err = err
		return receipt, err
	}

	write, read := splitKeys(keys)
	unlock := l.locks.LockAll(write, read)
	defer unlock()

	ts := tstate.New(len(keys))
	view := ts.NewView(keys, l.base)
	for i, c := range calls {
		store := newInvocationStore(c.programID, view, c.accounts)
		rc := runtime.NewContext(c.programID, c.accounts, c.data, store, l.log)
		err := c.program.Execute(ctx, rc)
		receipt.Logs = append(receipt.Logs, rc.Logs()...)
		if err != nil {
			err = fmt.Errorf("instruction %d: %w", i, err)
			view.Rollback(ctx, 0)
			receipt.Created, receipt.Closed = 0, 0
			l.metrics.rollbacks.Inc()
			l.log.Debug("invocation rolled back",
				zap.Stringer("program", c.programID),
				zap.Error(err),
			)
			receipt.Err = err
			return receipt, err
		}
		receipt.Created += store.created
		receipt.Closed += store.closed
	}

	view.Commit()
	if err := ts.WriteChanges(ctx, l.base); err != nil {
		receipt.Err = err
		receipt.Created, receipt.Closed = 0, 0
		l.log.Error("failed to write invocation changes", zap.Error(err))
		return receipt, err
	}
	l.metrics.commits.Inc()
	l.metrics.accountsCreated.Add(float64(receipt.Created))
	l.metrics.accountsClosed.Add(float64(receipt.Closed))
	l.log.Debug("invocation committed",
		zap.Int("instructions", len(calls)),
		zap.Int("changes", ts.OpIndex()),
	)
	return receipt, nil
}

type call struct {
	program   Program
	programID solana.PublicKey
	accounts  []*solana.AccountMeta
	data      []byte
}

// prepare resolves the programs of [instructions] and computes the state
// keys the invocation may touch.
func (l *Ledger) prepare(instructions []solana.Instruction, receipt *Receipt) ([]*call, state.Keys, error) {
	keys := state.Keys{}
	signers := map[solana.PublicKey]struct{}{}
	calls := make([]*call, 0, len(instructions))
	for _, ix := range instructions {
		id := ix.ProgramID()
		program, err := l.program(id)
		if err != nil {
			return nil, nil, err
		}
		data, err := ix.Data()
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %w", ErrInvalidInstruction, err)
		}
		accounts := ix.Accounts()
		for _, meta := range accounts {
			k := string(storage.AccountKey(meta.PublicKey))
			if meta.IsWritable {
				keys.Add(k, state.All)
			} else {
				keys.Add(k, state.Read)
			}
			if _, ok := signers[meta.PublicKey]; meta.IsSigner && !ok {
				signers[meta.PublicKey] = struct{}{}
				receipt.Signers = append(receipt.Signers, meta.PublicKey)
			}
		}
		receipt.Programs = append(receipt.Programs, id)
		calls = append(calls, &call{
			program:   program,
			programID: id,
			accounts:  accounts,
			data:      data,
		})
	}
	return calls, keys, nil
}

func splitKeys(keys state.Keys) ([]string, []string) {
	var write, read []string
	for k, perm := range keys {
		if perm.Has(state.Write) {
			write = append(write, k)
		} else {
			read = append(read, k)
		}
	}
	return write, read
}

var _ state.Mutable = (*syncState)(nil)

// syncState serializes access to the account database. Per account
// ordering is provided by the lockmap.
type syncState struct {
	l  sync.RWMutex
	mu state.Mutable
}

func (s *syncState) GetValue(ctx context.Context, key []byte) ([]byte, error) {
	s.l.RLock()
	defer s.l.RUnlock()

	return s.mu.GetValue(ctx, key)
}

func (s *syncState) Insert(ctx context.Context, key []byte, value []byte) error {
	s.l.Lock()
	defer s.l.Unlock()

	return s.mu.Insert(ctx, key, value)
}

func (s *syncState) Remove(ctx context.Context, key []byte) error {
	s.l.Lock()
	defer s.l.Unlock()

	return s.mu.Remove(ctx, key)
}
