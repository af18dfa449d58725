// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ledger

import "errors"

var (
	ErrNoInstructions     = errors.New("no instructions")
	ErrDuplicateProgram   = errors.New("program already registered")
	ErrInvalidInstruction = errors.New("invalid instruction")
)
