// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package runtime

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/gagliardetto/solana-go"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Context is everything a program is handed for a single invocation.
type Context struct {
	ProgramID solana.PublicKey
	Accounts  []*solana.AccountMeta
	Data      []byte
	Store     AccountStore
	Log       logging.Logger

	logs []string
}

func NewContext(
	programID solana.PublicKey,
	accounts []*solana.AccountMeta,
	data []byte,
	store AccountStore,
	log logging.Logger,
) *Context {
	if log == nil {
		log = logging.NoLog{}
	}
	return &Context{
		ProgramID: programID,
		Accounts:  accounts,
		Data:      data,
		Store:     store,
		Log:       log,
	}
}

// Msg records a program log line. Fields are rendered as sorted key=value
// pairs after [msg].
func (c *Context) Msg(msg string, fields ...zap.Field) {
	c.logs = append(c.logs, render(msg, fields))
	c.Log.Debug(msg, append(fields, zap.Stringer("program", c.ProgramID))...)
}

// Logs returns the lines recorded with [Context.Msg].
func (c *Context) Logs() []string {
	return c.logs
}

// Iter walks the accounts of the invocation in order.
func (c *Context) Iter() *AccountIter {
	return &AccountIter{accounts: c.Accounts}
}

func render(msg string, fields []zap.Field) string {
	if len(fields) == 0 {
		return msg
	}
	enc := zapcore.NewMapObjectEncoder()
	for _, f := range fields {
		f.AddTo(enc)
	}
	keys := make([]string, 0, len(enc.Fields))
	for k := range enc.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(msg)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, enc.Fields[k])
	}
	return b.String()
}

type AccountIter struct {
	accounts []*solana.AccountMeta
	next     int
}

// Next returns the next account or [ErrNotEnoughAccountKeys] once the list
// is exhausted.
func (it *AccountIter) Next() (*solana.AccountMeta, error) {
	if it.next >= len(it.accounts) {
		return nil, fmt.Errorf("%w: expected account at index %d", ErrNotEnoughAccountKeys, it.next)
	}
	meta := it.accounts[it.next]
	it.next++
	return meta, nil
}
