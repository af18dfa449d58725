// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package client builds counter instructions and reads counter accounts.
package client

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"

	"github.com/gongde/countervm/address"
	"github.com/gongde/countervm/program"
	"github.com/gongde/countervm/runtime"
	"github.com/gongde/countervm/storage"
)

// AccountReader returns committed accounts.
type AccountReader interface {
	GetAccount(ctx context.Context, addr solana.PublicKey) (*runtime.Account, error)
}

type Client struct {
	programID solana.PublicKey
	variant   program.Variant
}

func New(programID solana.PublicKey, variant program.Variant) *Client {
	return &Client{
		programID: programID,
		variant:   variant,
	}
}

func (c *Client) ProgramID() solana.PublicKey {
	return c.programID
}

func (c *Client) Variant() program.Variant {
	return c.variant
}

// CounterAddress returns the counter account of [owner].
func (c *Client) CounterAddress(owner solana.PublicKey) (solana.PublicKey, error) {
	return c.variant.Counter.Scheme.Counter(owner, c.programID)
}

// GlobalAddress returns the program-wide counter account.
func (c *Client) GlobalAddress() (solana.PublicKey, error) {
	addr, _, err := address.GlobalCounterAddress(c.programID)
	return addr, err
}

// Initialize returns the instruction creating the counter of [payer].
func (c *Client) Initialize(payer solana.PublicKey) (solana.Instruction, error) {
	counter, err := c.CounterAddress(payer)
	if err != nil {
		return nil, err
	}
	return c.instruction(program.Initialize,
		solana.NewAccountMeta(counter, true, false),
		solana.NewAccountMeta(payer, true, true),
		solana.NewAccountMeta(solana.SystemProgramID, false, false),
	)
}

// Increment returns the instruction incrementing the counter of [payer].
// The accounts allow a lazy variant to create the counter.
func (c *Client) Increment(payer solana.PublicKey) (solana.Instruction, error) {
	counter, err := c.CounterAddress(payer)
	if err != nil {
		return nil, err
	}
	switch {
	case c.variant.Global:
		global, err := c.GlobalAddress()
		if err != nil {
			return nil, err
		}
		return c.instruction(program.Increment,
			solana.NewAccountMeta(counter, true, false),
			solana.NewAccountMeta(payer, true, true),
			solana.NewAccountMeta(global, true, false),
			solana.NewAccountMeta(solana.SystemProgramID, false, false),
		)
	case c.variant.Lazy:
		return c.instruction(program.Increment,
			solana.NewAccountMeta(counter, true, false),
			solana.NewAccountMeta(payer, true, true),
			solana.NewAccountMeta(solana.SystemProgramID, false, false),
		)
	default:
		return c.instruction(program.Increment, solana.NewAccountMeta(counter, true, false))
	}
}

// Reset returns the instruction zeroing the counter of [owner].
func (c *Client) Reset(owner solana.PublicKey) (solana.Instruction, error) {
	return c.ownerInstruction(program.Reset, owner)
}

// Close returns the instruction closing the counter of [owner] and
// returning its deposit to [owner].
func (c *Client) Close(owner solana.PublicKey) (solana.Instruction, error) {
	return c.ownerInstruction(program.Close, owner)
}

func (c *Client) ownerInstruction(ix program.Instruction, owner solana.PublicKey) (solana.Instruction, error) {
	counter, err := c.CounterAddress(owner)
	if err != nil {
		return nil, err
	}
	return c.instruction(ix,
		solana.NewAccountMeta(counter, true, false),
		solana.NewAccountMeta(owner, true, true),
	)
}

func (c *Client) instruction(ix program.Instruction, accounts ...*solana.AccountMeta) (solana.Instruction, error) {
	data, err := c.variant.Encoding.Encode(ix)
	if err != nil {
		return nil, fmt.Errorf("%s variant: %w", c.variant.Name, err)
	}
	return solana.NewInstruction(c.programID, accounts, data), nil
}

// CounterInfo is the state of a counter account.
type CounterInfo struct {
	Address solana.PublicKey
	// Exists is false when the account holds no lamports or too little data
	// to hold a counter. The other fields are then zero.
	Exists     bool
	Value      uint64
	Owner      solana.PublicKey
	Lamports   uint64
	RentExempt bool
}

// Query reads the counter of [owner].
func (c *Client) Query(ctx context.Context, r AccountReader, owner solana.PublicKey) (*CounterInfo, error) {
	addr, err := c.CounterAddress(owner)
	if err != nil {
		return nil, err
	}
	return c.query(ctx, r, addr)
}

// QueryGlobal reads the program-wide counter.
func (c *Client) QueryGlobal(ctx context.Context, r AccountReader) (*CounterInfo, error) {
	addr, err := c.GlobalAddress()
	if err != nil {
		return nil, err
	}
	return c.query(ctx, r, addr)
}

func (c *Client) query(ctx context.Context, r AccountReader, addr solana.PublicKey) (*CounterInfo, error) {
	info := &CounterInfo{Address: addr}
	acct, err := r.GetAccount(ctx, addr)
	if err != nil {
		return nil, err
	}
	layout := c.variant.Counter.Layout
	if !acct.Exists() || uint64(len(acct.Data)) < layout.Size() {
		return info, nil
	}
	if !acct.OwnedBy(c.programID) {
		return nil, fmt.Errorf("%w: %s is owned by %s", runtime.ErrInvalidAccountData, addr, acct.Owner)
	}
	counter, err := layout.Read(acct.Data)
	if err != nil {
		return nil, err
	}
	info.Exists = true
	info.Value = counter.Value
	info.Owner = counter.Owner
	info.Lamports = acct.Lamports
	info.RentExempt = storage.IsRentExempt(acct.Lamports, uint64(len(acct.Data)))
	return info, nil
}
