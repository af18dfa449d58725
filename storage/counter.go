// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"encoding/binary"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/near/borsh-go"

	"github.com/gongde/countervm/consts"
	"github.com/gongde/countervm/runtime"
)

// RecordSize is the length of a borsh encoded [record].
const RecordSize = consts.Uint64Len + consts.PublicKeyLen

// Counter is the decoded content of a counter account.
type Counter struct {
	Value uint64
	// Owner is only tracked by the record layout.
	Owner solana.PublicKey
}

// Layout is the byte layout of counter account data. The value always lives
// little endian at offset 0.
type Layout interface {
	Name() string
	// Size is the data length allocated when the account is created.
	Size() uint64
	// Max is the value increments saturate at.
	Max() uint64
	// HasOwner returns true if the layout stores the owner of the counter.
	HasOwner() bool
	Read(data []byte) (Counter, error)
	// Write encodes [c] into the first Size bytes of [data].
	Write(data []byte, c Counter) error
}

var (
	U32    Layout = widthLayout{width: consts.Uint32Len}
	U64    Layout = widthLayout{width: consts.Uint64Len}
	Record Layout = recordLayout{}
)

func LayoutByName(name string) (Layout, error) {
	for _, l := range []Layout{U32, U64, Record} {
		if l.Name() == name {
			return l, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownLayout, name)
}

// EncodeValue returns [v] as [width] little endian bytes. [v] is truncated
// to fit.
func EncodeValue(width int, v uint64) []byte {
	b := make([]byte, width)
	switch width {
	case consts.Uint32Len:
		binary.LittleEndian.PutUint32(b, uint32(v))
	case consts.Uint64Len:
		binary.LittleEndian.PutUint64(b, v)
	}
	return b
}

// DecodeValue reads a [width] byte little endian value from the start of
// [data]. Bytes past [width] are ignored.
func DecodeValue(width int, data []byte) (uint64, error) {
	if len(data) < width {
		return 0, fmt.Errorf("%w: need %d bytes, have %d", runtime.ErrAccountDataTooSmall, width, len(data))
	}
	switch width {
	case consts.Uint32Len:
		return uint64(binary.LittleEndian.Uint32(data)), nil
	case consts.Uint64Len:
		return binary.LittleEndian.Uint64(data), nil
	default:
		return 0, fmt.Errorf("%w: width %d", ErrUnknownLayout, width)
	}
}

type widthLayout struct {
	width int
}

func (l widthLayout) Name() string {
	return fmt.Sprintf("u%d", l.width*8)
}

func (l widthLayout) Size() uint64 {
	return uint64(l.width)
}

func (l widthLayout) Max() uint64 {
	if l.width == consts.Uint32Len {
		return uint64(consts.MaxUint32)
	}
	return consts.MaxUint64
}

func (widthLayout) HasOwner() bool {
	return false
}

func (l widthLayout) Read(data []byte) (Counter, error) {
	v, err := DecodeValue(l.width, data)
	return Counter{Value: v}, err
}

func (l widthLayout) Write(data []byte, c Counter) error {
	if len(data) < l.width {
		return fmt.Errorf("%w: need %d bytes, have %d", runtime.ErrAccountDataTooSmall, l.width, len(data))
	}
	if c.Value > l.Max() {
		return fmt.Errorf("%w: %d does not fit %s", runtime.ErrArithmeticOverflow, c.Value, l.Name())
	}
	copy(data, EncodeValue(l.width, c.Value))
	return nil
}

type record struct {
	Count uint64
	Owner [consts.PublicKeyLen]byte
}

type recordLayout struct{}

func (recordLayout) Name() string {
	return "record"
}

func (recordLayout) Size() uint64 {
	return RecordSize
}

func (recordLayout) Max() uint64 {
	return consts.MaxUint64
}

func (recordLayout) HasOwner() bool {
	return true
}

func (recordLayout) Read(data []byte) (Counter, error) {
	if len(data) < RecordSize {
		return Counter{}, fmt.Errorf("%w: need %d bytes, have %d", runtime.ErrAccountDataTooSmall, RecordSize, len(data))
	}
	var r record
	if err := borsh.Deserialize(&r, data[:RecordSize]); err != nil {
		return Counter{}, fmt.Errorf("%w: %w", runtime.ErrInvalidAccountData, err)
	}
	return Counter{Value: r.Count, Owner: solana.PublicKeyFromBytes(r.Owner[:])}, nil
}

func (recordLayout) Write(data []byte, c Counter) error {
	if len(data) < RecordSize {
		return fmt.Errorf("%w: need %d bytes, have %d", runtime.ErrAccountDataTooSmall, RecordSize, len(data))
	}
	b, err := borsh.Serialize(record{Count: c.Value, Owner: c.Owner})
	if err != nil {
		return err
	}
	copy(data, b)
	return nil
}
