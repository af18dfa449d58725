// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package program

import (
	"fmt"

	"github.com/near/borsh-go"

	"github.com/gongde/countervm/runtime"
)

// Instruction is the closed set of operations a counter program accepts.
type Instruction borsh.Enum

const (
	Initialize Instruction = iota
	Increment
	Reset
	Close
)

func (i Instruction) String() string {
	switch i {
	case Initialize:
		return "initialize"
	case Increment:
		return "increment"
	case Reset:
		return "reset"
	case Close:
		return "close"
	default:
		return fmt.Sprintf("instruction(%d)", uint8(i))
	}
}

// Encoding converts between instructions and instruction data.
type Encoding interface {
	Name() string
	Decode(data []byte) (Instruction, error)
	Encode(ix Instruction) ([]byte, error)
}

var (
	_ Encoding = RawEncoding{}
	_ Encoding = TaggedEncoding{}
)

// RawEncoding reads a single tag byte: 0 is Increment and 1 is Close.
//
// Empty instruction data is an Increment. Only the raw tag 0 has this
// shortcut.
type RawEncoding struct{}

func (RawEncoding) Name() string {
	return "raw"
}

func (RawEncoding) Decode(data []byte) (Instruction, error) {
	if len(data) == 0 {
		return Increment, nil
	}
	switch data[0] {
	case 0:
		return Increment, nil
	case 1:
		return Close, nil
	default:
		return 0, fmt.Errorf("%w: raw tag %d", runtime.ErrInvalidInstructionData, data[0])
	}
}

func (RawEncoding) Encode(ix Instruction) ([]byte, error) {
	switch ix {
	case Increment:
		return []byte{0}, nil
	case Close:
		return []byte{1}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrNotEncodable, ix)
	}
}

// TaggedEncoding is the borsh encoding of [Instruction].
type TaggedEncoding struct{}

func (TaggedEncoding) Name() string {
	return "tagged"
}

func (TaggedEncoding) Decode(data []byte) (Instruction, error) {
	if len(data) != 1 {
		return 0, fmt.Errorf("%w: expected 1 byte, got %d", runtime.ErrInvalidInstructionData, len(data))
	}
	var ix Instruction
	if err := borsh.Deserialize(&ix, data); err != nil {
		return 0, fmt.Errorf("%w: %w", runtime.ErrInvalidInstructionData, err)
	}
	if ix > Close {
		return 0, fmt.Errorf("%w: tag %d", runtime.ErrInvalidInstructionData, uint8(ix))
	}
	return ix, nil
}

func (TaggedEncoding) Encode(ix Instruction) ([]byte, error) {
	if ix > Close {
		return nil, fmt.Errorf("%w: %s", ErrNotEncodable, ix)
	}
	return borsh.Serialize(ix)
}
