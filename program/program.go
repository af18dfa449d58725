// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package program routes instruction data to the counter actions of a
// variant.
package program

import (
	"context"
	"fmt"

	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/gongde/countervm/actions"
	"github.com/gongde/countervm/runtime"
)

type Program struct {
	log      logging.Logger
	variant  Variant
	handlers map[Instruction]actions.Action
	metrics  *metrics
}

func New(log logging.Logger, variant Variant) (*Program, *prometheus.Registry, error) {
	if err := variant.Verify(); err != nil {
		return nil, nil, err
	}
	registry, metrics, err := newMetrics()
	if err != nil {
		return nil, nil, err
	}
	return &Program{
		log:      log,
		variant:  variant,
		handlers: variant.handlers(),
		metrics:  metrics,
	}, registry, nil
}

func (p *Program) Variant() Variant {
	return p.variant
}

// Execute decodes the instruction in [rc] and runs its action.
func (p *Program) Execute(ctx context.Context, rc *runtime.Context) error {
	ix, err := p.variant.Encoding.Decode(rc.Data)
	if err != nil {
		p.metrics.rejected.Inc()
		return err
	}
	action, ok := p.handlers[ix]
	if !ok {
		p.metrics.rejected.Inc()
		return fmt.Errorf("%w: %s is not served by the %s variant", runtime.ErrInvalidInstructionData, ix, p.variant.Name)
	}

	p.metrics.instructions.WithLabelValues(action.Name()).Inc()
	if err := action.Execute(ctx, rc); err != nil {
		code := runtime.ErrorCode(err)
		p.metrics.failures.WithLabelValues(action.Name(), code.String()).Inc()
		p.log.Debug("instruction failed",
			zap.Stringer("instruction", ix),
			zap.Stringer("code", code),
			zap.Error(err),
		)
		return err
	}
	return nil
}
