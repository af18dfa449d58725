// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cli

import "errors"

var (
	ErrNoKeys               = errors.New("no available keys")
	ErrInsufficientAccounts = errors.New("insufficient accounts")
	ErrMetricsDisabled      = errors.New("metrics are disabled")
	ErrJournalDisabled      = errors.New("journal is disabled")
)
