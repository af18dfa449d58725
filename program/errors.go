// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package program

import "errors"

var (
	ErrUnknownVariant    = errors.New("unknown variant")
	ErrIncoherentVariant = errors.New("incoherent variant")
	ErrNotEncodable      = errors.New("instruction not supported by encoding")
)
