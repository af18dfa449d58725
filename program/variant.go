// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package program

import (
	"fmt"

	"github.com/gongde/countervm/actions"
	"github.com/gongde/countervm/address"
	"github.com/gongde/countervm/storage"
)

const (
	LazyVariant    = "lazy"
	GongDeVariant  = "gongde"
	GlobalVariant  = "global"
	ManagedVariant = "managed"
)

// Variant is the behavior of a deployed counter program. A deployment runs
// exactly one variant.
type Variant struct {
	Name     string
	Encoding Encoding
	Counter  actions.Counter
	// Lazy counters are created by their first Increment. Other counters
	// must be created with Initialize.
	Lazy bool
	// Global increments the program-wide counter with every Increment.
	Global bool
}

var variants = map[string]Variant{
	LazyVariant: {
		Name:     LazyVariant,
		Encoding: RawEncoding{},
		Counter:  actions.Counter{Layout: storage.U64, Scheme: address.ProgramDerived},
		Lazy:     true,
	},
	GongDeVariant: {
		Name:     GongDeVariant,
		Encoding: RawEncoding{},
		Counter:  actions.Counter{Layout: storage.U32, Scheme: address.Seeded},
		Lazy:     true,
	},
	GlobalVariant: {
		Name:     GlobalVariant,
		Encoding: RawEncoding{},
		Counter:  actions.Counter{Layout: storage.U64, Scheme: address.ProgramDerived},
		Lazy:     true,
		Global:   true,
	},
	ManagedVariant: {
		Name:     ManagedVariant,
		Encoding: TaggedEncoding{},
		Counter:  actions.Counter{Layout: storage.Record, Scheme: address.ProgramDerived},
	},
}

// VariantByName returns one of the named variants.
func VariantByName(name string) (Variant, error) {
	v, ok := variants[name]
	if !ok {
		return Variant{}, fmt.Errorf("%w: %q", ErrUnknownVariant, name)
	}
	return v, nil
}

// Verify rejects combinations no deployment can serve.
func (v Variant) Verify() error {
	if v.Encoding == nil || v.Counter.Layout == nil {
		return fmt.Errorf("%w: encoding and layout are required", ErrIncoherentVariant)
	}
	_, raw := v.Encoding.(RawEncoding)
	switch {
	case raw && !v.Lazy:
		// Raw data cannot express Initialize.
		return fmt.Errorf("%w: raw encoding requires lazy creation", ErrIncoherentVariant)
	case raw && v.Counter.Layout.HasOwner():
		return fmt.Errorf("%w: raw encoding cannot store an owner record", ErrIncoherentVariant)
	case !raw && v.Lazy:
		return fmt.Errorf("%w: %s encoding requires explicit initialization", ErrIncoherentVariant, v.Encoding.Name())
	case !raw && v.Global:
		return fmt.Errorf("%w: %s encoding does not support the global counter", ErrIncoherentVariant, v.Encoding.Name())
	case v.Global && v.Counter.Scheme != address.ProgramDerived:
		return fmt.Errorf("%w: global counter requires program derived addresses", ErrIncoherentVariant)
	}
	return nil
}

// handlers returns the action serving each instruction of the variant.
func (v Variant) handlers() map[Instruction]actions.Action {
	h := map[Instruction]actions.Action{
		Close: &actions.Close{Counter: v.Counter},
	}
	switch {
	case v.Global:
		h[Increment] = &actions.GlobalIncrement{Counter: v.Counter}
	default:
		h[Increment] = &actions.Increment{Counter: v.Counter, Lazy: v.Lazy}
	}
	if !v.Lazy {
		h[Initialize] = &actions.Initialize{Counter: v.Counter}
		h[Reset] = &actions.Reset{Counter: v.Counter}
	}
	return h
}
