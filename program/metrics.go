// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package program

import (
	"github.com/ava-labs/avalanchego/utils/wrappers"
	"github.com/prometheus/client_golang/prometheus"
)

type metrics struct {
	instructions *prometheus.CounterVec
	failures     *prometheus.CounterVec
	rejected     prometheus.Counter
}

func newMetrics() (*prometheus.Registry, *metrics, error) {
	r := prometheus.NewRegistry()
	m := &metrics{
		instructions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "program",
			Name:      "instructions",
			Help:      "number of instructions executed",
		}, []string{"instruction"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "program",
			Name:      "failures",
			Help:      "number of instructions that failed",
		}, []string{"instruction", "code"}),
		rejected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "program",
			Name:      "rejected",
			Help:      "number of instructions whose data could not be decoded",
		}),
	}
	errs := wrappers.Errs{}
	errs.Add(
		r.Register(m.instructions),
		r.Register(m.failures),
		r.Register(m.rejected),
	)
	return r, m, errs.Err
}
