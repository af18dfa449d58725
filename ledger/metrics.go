// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ledger

import (
	"github.com/ava-labs/avalanchego/utils/metric"
	"github.com/ava-labs/avalanchego/utils/wrappers"
	"github.com/prometheus/client_golang/prometheus"
)

type metrics struct {
	invocations     prometheus.Counter
	commits         prometheus.Counter
	rollbacks       prometheus.Counter
	accountsCreated prometheus.Counter
	accountsClosed  prometheus.Counter
	airdrops        prometheus.Counter

	invoke metric.Averager
}

func newMetrics() (*prometheus.Registry, *metrics, error) {
	r := prometheus.NewRegistry()
	invoke, err := metric.NewAverager(
		"ledger_invoke",
		"time spent executing and committing invocations",
		r,
	)
	if err != nil {
		return nil, nil, err
	}
	m := &metrics{
		invocations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ledger",
			Name:      "invocations",
			Help:      "number of invocations processed",
		}),
		commits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ledger",
			Name:      "commits",
			Help:      "number of invocations whose changes were committed",
		}),
		rollbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ledger",
			Name:      "rollbacks",
			Help:      "number of invocations whose changes were discarded",
		}),
		accountsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ledger",
			Name:      "accounts_created",
			Help:      "number of accounts created by committed invocations",
		}),
		accountsClosed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ledger",
			Name:      "accounts_closed",
			Help:      "number of accounts drained by committed invocations",
		}),
		airdrops: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ledger",
			Name:      "airdrops",
			Help:      "number of airdrops",
		}),
		invoke: invoke,
	}
	errs := wrappers.Errs{}
	errs.Add(
		r.Register(m.invocations),
		r.Register(m.commits),
		r.Register(m.rollbacks),
		r.Register(m.accountsCreated),
		r.Register(m.accountsClosed),
		r.Register(m.airdrops),
	)
	return r, m, errs.Err
}
