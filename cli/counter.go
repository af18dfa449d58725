// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"go.uber.org/zap"

	"github.com/gongde/countervm/client"
	"github.com/gongde/countervm/ledger"
	"github.com/gongde/countervm/runtime"
	"github.com/gongde/countervm/utils"
)

// Invoke runs [instructions] on the ledger and journals the receipt.
func (h *Handler) Invoke(ctx context.Context, instructions ...solana.Instruction) (*ledger.Receipt, error) {
	receipt, err := h.ledger.Invoke(ctx, instructions...)
	if h.journal != nil {
		if _, jerr := h.journal.Record(context.WithoutCancel(ctx), receipt); jerr != nil {
			h.log.Warn("unable to journal invocation", zap.Error(jerr))
		}
	}
	return receipt, err
}

// Send invokes [instructions] and prints the outcome.
func (h *Handler) Send(ctx context.Context, instructions ...solana.Instruction) (*ledger.Receipt, error) {
	receipt, err := h.Invoke(ctx, instructions...)
	PrintReceipt(receipt)
	if errors.Is(err, runtime.ErrInsufficientFunds) {
		utils.Outf("{{yellow}}hint:{{/}} fund the signer with the airdrop command\n")
	}
	return receipt, err
}

func PrintReceipt(r *ledger.Receipt) {
	for _, l := range r.Logs {
		utils.Outf("{{cyan}}log:{{/}} %s\n", l)
	}
	if !r.Success() {
		utils.Outf("{{red}}failed:{{/}} %s {{red}}code:{{/}} %s\n", r.Err, r.Code)
		return
	}
	utils.Outf(
		"{{green}}success{{/}} {{yellow}}created:{{/}} %d {{yellow}}closed:{{/}} %d {{yellow}}took:{{/}} %s\n",
		r.Created,
		r.Closed,
		r.Duration,
	)
}

// Balance returns the lamports held by [addr].
func (h *Handler) Balance(ctx context.Context, addr solana.PublicKey) (uint64, error) {
	acct, err := h.ledger.GetAccount(ctx, addr)
	if err != nil {
		return 0, err
	}
	return acct.Lamports, nil
}

// Airdrop credits [lamports] to [addr] and prints the new balance.
func (h *Handler) Airdrop(ctx context.Context, addr solana.PublicKey, lamports uint64) error {
	bal, err := h.ledger.Airdrop(ctx, addr, lamports)
	if err != nil {
		return err
	}
	utils.Outf(
		"{{green}}airdropped:{{/}} %s SOL {{green}}to:{{/}} %s {{green}}balance:{{/}} %s SOL\n",
		utils.FormatBalance(lamports),
		addr,
		utils.FormatBalance(bal),
	)
	return nil
}

// Initialize creates the counter of [signer].
func (h *Handler) Initialize(ctx context.Context, signer solana.PublicKey) error {
	ix, err := h.client.Initialize(signer)
	if err != nil {
		return err
	}
	_, err = h.Send(ctx, ix)
	return err
}

// Increment increments the counter of [signer] [times] times. A managed
// counter that does not exist yet is initialized first. It stops at the
// first failure and reports what the successful invocations cost.
func (h *Handler) Increment(ctx context.Context, signer solana.PublicKey, times int) error {
	before, err := h.Balance(ctx, signer)
	if err != nil {
		return err
	}
	defer h.reportConsumed(ctx, signer, before)

	if !h.client.Variant().Lazy {
		info, err := h.client.Query(ctx, h.ledger, signer)
		if err != nil {
			return err
		}
		if !info.Exists {
			utils.Outf("{{yellow}}counter does not exist, initializing{{/}}\n")
			if err := h.Initialize(ctx, signer); err != nil {
				return err
			}
		}
	}

	ix, err := h.client.Increment(signer)
	if err != nil {
		return err
	}
	for i := 0; i < times; i++ {
		if _, err := h.Send(ctx, ix); err != nil {
			return fmt.Errorf("increment %d of %d: %w", i+1, times, err)
		}
	}
	return h.PrintCounter(ctx, signer)
}

func (h *Handler) reportConsumed(ctx context.Context, signer solana.PublicKey, before uint64) {
	after, err := h.Balance(ctx, signer)
	if err != nil {
		return
	}
	utils.Outf(
		"{{yellow}}balance:{{/}} %s SOL {{yellow}}consumed:{{/}} %s SOL\n",
		utils.FormatBalance(after),
		utils.FormatBalance(client.Consumed(before, after)),
	)
}

// Reset zeroes the counter of [owner].
func (h *Handler) Reset(ctx context.Context, owner solana.PublicKey) error {
	ix, err := h.client.Reset(owner)
	if err != nil {
		return err
	}
	if _, err := h.Send(ctx, ix); err != nil {
		return err
	}
	return h.PrintCounter(ctx, owner)
}

// Close closes the counter of [owner] and returns the deposit recovered.
func (h *Handler) Close(ctx context.Context, owner solana.PublicKey) (uint64, error) {
	before, err := h.Balance(ctx, owner)
	if err != nil {
		return 0, err
	}
	ix, err := h.client.Close(owner)
	if err != nil {
		return 0, err
	}
	if _, err := h.Send(ctx, ix); err != nil {
		return 0, err
	}
	after, err := h.Balance(ctx, owner)
	if err != nil {
		return 0, err
	}
	recovered := after - before
	utils.Outf(
		"{{green}}recovered:{{/}} %s SOL {{green}}balance:{{/}} %s SOL\n",
		utils.FormatBalance(recovered),
		utils.FormatBalance(after),
	)
	return recovered, nil
}

// PrintCounter prints the counter of [owner] and, for the global variant,
// the program-wide counter.
func (h *Handler) PrintCounter(ctx context.Context, owner solana.PublicKey) error {
	info, err := h.client.Query(ctx, h.ledger, owner)
	if err != nil {
		return err
	}
	printCounterInfo("counter", info)
	if !h.client.Variant().Global {
		return nil
	}
	global, err := h.client.QueryGlobal(ctx, h.ledger)
	if err != nil {
		return err
	}
	printCounterInfo("global", global)
	return nil
}

func printCounterInfo(name string, info *client.CounterInfo) {
	utils.Outf("{{yellow}}%s:{{/}} %s\n", name, info.Address)
	if !info.Exists {
		utils.Outf("{{red}}not initialized{{/}}\n")
		return
	}
	level := client.LevelOf(info.Value)
	utils.Outf(
		"{{yellow}}value:{{/}} %d {{yellow}}level:{{/}} %s %s\n",
		info.Value,
		level,
		client.Progress(info.Value),
	)
	if next, ok := client.NextMilestone(info.Value); ok {
		utils.Outf("{{yellow}}next milestone:{{/}} %d (%d to go)\n", next, next-info.Value)
	}
	if info.Owner != (solana.PublicKey{}) {
		utils.Outf("{{yellow}}owner:{{/}} %s\n", info.Owner)
	}
	utils.Outf(
		"{{yellow}}deposit:{{/}} %s SOL {{yellow}}rent exempt:{{/}} %t\n",
		utils.FormatBalance(info.Lamports),
		info.RentExempt,
	)
}
