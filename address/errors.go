// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package address

import "errors"

var (
	ErrMaxSeedLengthExceeded = errors.New("max seed length exceeded")
	ErrIllegalOwner          = errors.New("illegal owner")
	ErrInvalidSeeds          = errors.New("invalid seeds, address must fall off the curve")
	ErrNoValidAddress        = errors.New("unable to find a viable program address bump seed")
)
