// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cli

import (
	"io"

	"github.com/prometheus/common/expfmt"

	"github.com/gongde/countervm/utils"
)

// WriteMetrics writes every registered metric in the text exposition
// format.
func (h *Handler) WriteMetrics(w io.Writer) error {
	if !h.cfg.MetricsEnabled {
		return ErrMetricsDisabled
	}
	families, err := h.gatherer.Gather()
	if err != nil {
		return err
	}
	enc := expfmt.NewEncoder(w, expfmt.FmtText)
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return err
		}
	}
	return nil
}

func (h *Handler) PrintCacheStats() {
	utils.Outf(
		"{{yellow}}cached accounts:{{/}} %d {{yellow}}hits:{{/}} %d {{yellow}}misses:{{/}} %d\n",
		h.cache.Len(),
		h.cache.Hits(),
		h.cache.Misses(),
	)
}
