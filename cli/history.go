// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cli

import (
	"context"
	"strings"
	"time"

	"github.com/gagliardetto/solana-go"

	"github.com/gongde/countervm/journal"
	"github.com/gongde/countervm/utils"
)

// PrintHistory prints the [limit] most recent journaled invocations. When
// [signer] is set only its invocations are printed.
func (h *Handler) PrintHistory(ctx context.Context, signer *solana.PublicKey, limit int) error {
	if h.journal == nil {
		return ErrJournalDisabled
	}
	var (
		entries []*journal.Entry
		err     error
	)
	if signer != nil {
		entries, err = h.journal.BySigner(ctx, *signer, limit)
	} else {
		entries, err = h.journal.Recent(ctx, limit)
	}
	if err != nil {
		return err
	}
	for _, e := range entries {
		status := "⚠️"
		if e.Success() {
			status = "✅"
		}
		utils.Outf(
			"%s {{yellow}}#%d{{/}} %s {{yellow}}code:{{/}} %s {{yellow}}signers:{{/}} %s\n",
			status,
			e.ID,
			e.Timestamp.Format(time.RFC3339),
			e.Code,
			joinKeys(e.Signers),
		)
		if len(e.Error) > 0 {
			utils.Outf("  {{red}}error:{{/}} %s\n", e.Error)
		}
		for _, l := range e.Logs {
			utils.Outf("  {{cyan}}log:{{/}} %s\n", l)
		}
	}

	stats, err := h.journal.Stats(ctx)
	if err != nil {
		return err
	}
	utils.Outf(
		"{{yellow}}invocations:{{/}} %d {{yellow}}failed:{{/}} %d {{yellow}}created:{{/}} %d {{yellow}}closed:{{/}} %d\n",
		stats.Invocations,
		stats.Failed,
		stats.Created,
		stats.Closed,
	)
	return nil
}

func joinKeys(keys []solana.PublicKey) string {
	s := make([]string, len(keys))
	for i, k := range keys {
		s[i] = k.String()
	}
	return strings.Join(s, ",")
}
