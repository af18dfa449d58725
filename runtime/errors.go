// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package runtime

import (
	"errors"

	"github.com/gongde/countervm/address"
)

// Errors returned by programs.
var (
	ErrMissingRequiredSignature = errors.New("missing required signature")
	ErrInvalidAccountData       = errors.New("invalid account data")
	ErrAccountDataTooSmall      = errors.New("account data too small")
	ErrInvalidInstructionData   = errors.New("invalid instruction data")
	ErrArithmeticOverflow       = errors.New("arithmetic overflow")
	ErrNotEnoughAccountKeys     = errors.New("not enough account keys")
	ErrUninitializedAccount     = errors.New("uninitialized account")
)

// Errors returned by an [AccountStore] when a program breaks a ledger rule.
var (
	ErrInsufficientFunds       = errors.New("insufficient funds")
	ErrAccountAlreadyInUse     = errors.New("account already in use")
	ErrReadonlyAccount         = errors.New("account is not writable")
	ErrExternalAccountModified = errors.New("program modified an account it does not own")
	ErrAccountDataSizeChanged  = errors.New("program changed the size of account data")
	ErrMissingAccount          = errors.New("account was not provided to the invocation")
	ErrProgramNotFound         = errors.New("program not found")
)

// Code is a stable numeric identifier of an invocation outcome.
type Code uint32

const (
	CodeSuccess Code = iota
	CodeMissingRequiredSignature
	CodeInvalidAccountData
	CodeAccountDataTooSmall
	CodeInvalidInstructionData
	CodeArithmeticOverflow
	CodeNotEnoughAccountKeys
	CodeUninitializedAccount
	CodeNoValidAddress
	CodeInsufficientFunds
	CodeAccountAlreadyInUse
	CodeReadonlyAccount
	CodeExternalAccountModified
	CodeAccountDataSizeChanged
	CodeMissingAccount
	CodeProgramNotFound

	CodeUnknown Code = 0xFFFF
)

var codes = []struct {
	err  error
	code Code
}{
	{ErrMissingRequiredSignature, CodeMissingRequiredSignature},
	{ErrInvalidAccountData, CodeInvalidAccountData},
	{ErrAccountDataTooSmall, CodeAccountDataTooSmall},
	{ErrInvalidInstructionData, CodeInvalidInstructionData},
	{ErrArithmeticOverflow, CodeArithmeticOverflow},
	{ErrNotEnoughAccountKeys, CodeNotEnoughAccountKeys},
	{ErrUninitializedAccount, CodeUninitializedAccount},
	{address.ErrNoValidAddress, CodeNoValidAddress},
	{ErrInsufficientFunds, CodeInsufficientFunds},
	{ErrAccountAlreadyInUse, CodeAccountAlreadyInUse},
	{ErrReadonlyAccount, CodeReadonlyAccount},
	{ErrExternalAccountModified, CodeExternalAccountModified},
	{ErrAccountDataSizeChanged, CodeAccountDataSizeChanged},
	{ErrMissingAccount, CodeMissingAccount},
	{ErrProgramNotFound, CodeProgramNotFound},
}

// ErrorCode maps [err] to its [Code]. Wrapped errors resolve to the code of
// the first known error in their chain.
func ErrorCode(err error) Code {
	if err == nil {
		return CodeSuccess
	}
	for _, c := range codes {
		if errors.Is(err, c.err) {
			return c.code
		}
	}
	return CodeUnknown
}

func (c Code) String() string {
	switch c {
	case CodeSuccess:
		return "success"
	case CodeUnknown:
		return "unknown"
	}
	for _, k := range codes {
		if k.code == c {
			return k.err.Error()
		}
	}
	return "unknown"
}
