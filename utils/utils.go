// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package utils

import (
	"errors"
	"fmt"
	"os"
	"path"
	"strconv"
	"strings"

	"github.com/ava-labs/avalanchego/utils/perms"
	"github.com/onsi/ginkgo/v2/formatter"

	"github.com/gongde/countervm/consts"
)

var ErrInvalidBalance = errors.New("invalid balance")

func InitSubDirectory(rootPath string, name string) (string, error) {
	p := path.Join(rootPath, name)
	return p, os.MkdirAll(p, perms.ReadWriteExecute)
}

// Outputs to stdout.
//
// e.g.,
//
//	Out("{{green}}{{bold}}hi there %q{{/}}", "aa")
//	Out("{{magenta}}{{bold}}hi therea{{/}} {{cyan}}{{underline}}b{{/}}")
//
// ref.
// https://github.com/onsi/ginkgo/blob/v2.0.0/formatter/formatter.go#L52-L73
func Outf(format string, args ...interface{}) {
	s := formatter.F(format, args...)
	fmt.Fprint(formatter.ColorableStdOut, s)
}

// FormatBalance renders [lamports] in SOL with all 9 decimals.
func FormatBalance(lamports uint64) string {
	whole := lamports / consts.LamportsPerSOL
	frac := lamports % consts.LamportsPerSOL
	return fmt.Sprintf("%d.%09d", whole, frac)
}

// ParseBalance parses a SOL amount such as "1.5" into lamports.
func ParseBalance(bal string) (uint64, error) {
	whole, frac, _ := strings.Cut(strings.TrimSpace(bal), ".")
	if whole == "" && frac == "" {
		return 0, ErrInvalidBalance
	}
	if len(frac) > consts.SOLDecimals {
		return 0, fmt.Errorf("%w: more than %d decimals", ErrInvalidBalance, consts.SOLDecimals)
	}
	var w, f uint64
	var err error
	if whole != "" {
		w, err = strconv.ParseUint(whole, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %w", ErrInvalidBalance, err)
		}
	}
	if frac != "" {
		f, err = strconv.ParseUint(frac+strings.Repeat("0", consts.SOLDecimals-len(frac)), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %w", ErrInvalidBalance, err)
		}
	}
	if w > (consts.MaxUint64-f)/consts.LamportsPerSOL {
		return 0, fmt.Errorf("%w: %s overflows", ErrInvalidBalance, bal)
	}
	return w*consts.LamportsPerSOL + f, nil
}
