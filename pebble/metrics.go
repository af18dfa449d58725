// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pebble

import (
	"github.com/ava-labs/avalanchego/utils/metric"
	"github.com/ava-labs/avalanchego/utils/wrappers"
	"github.com/cockroachdb/pebble"
	"github.com/prometheus/client_golang/prometheus"
)

type metrics struct {
	getLatency   metric.Averager
	writeLatency metric.Averager

	l0Compactions     prometheus.Counter
	otherCompactions  prometheus.Counter
	activeCompactions prometheus.Gauge
}

func newMetrics(db *Database) (*prometheus.Registry, *metrics, error) {
	r := prometheus.NewRegistry()
	getLatency, err := metric.NewAverager(
		"pebble_read_latency",
		"time spent waiting for db get",
		r,
	)
	if err != nil {
		return nil, nil, err
	}
	writeLatency, err := metric.NewAverager(
		"pebble_write_latency",
		"time spent waiting for db set",
		r,
	)
	if err != nil {
		return nil, nil, err
	}
	m := &metrics{
		getLatency:   getLatency,
		writeLatency: writeLatency,
		l0Compactions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "pebble",
			Name:      "l0_compactions",
			Help:      "number of l0 compactions",
		}),
		otherCompactions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "pebble",
			Name:      "other_compactions",
			Help:      "number of l1+ compactions",
		}),
		activeCompactions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "pebble",
			Name:      "active_compactions",
			Help:      "number of active compactions",
		}),
	}
	// Sampled on scrape rather than on a timer.
	tombstones := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: "pebble",
		Name:      "tombstone_count",
		Help:      "approximate count of internal tombstones",
	}, func() float64 {
		return float64(db.sample().Keys.TombstoneCount)
	})
	walSize := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: "pebble",
		Name:      "wal_size",
		Help:      "size of the live write-ahead log in bytes",
	}, func() float64 {
		return float64(db.sample().WAL.Size)
	})
	errs := wrappers.Errs{}
	errs.Add(
		r.Register(m.l0Compactions),
		r.Register(m.otherCompactions),
		r.Register(m.activeCompactions),
		r.Register(tombstones),
		r.Register(walSize),
	)
	return r, m, errs.Err
}

func (db *Database) sample() *pebble.Metrics {
	db.lock.RLock()
	defer db.lock.RUnlock()

	if db.closed {
		return &pebble.Metrics{}
	}
	return db.db.Metrics()
}

func (db *Database) onCompactionBegin(info pebble.CompactionInfo) {
	db.metrics.activeCompactions.Inc()
	if len(info.Input) > 0 && info.Input[0].Level == 0 {
		db.metrics.l0Compactions.Inc()
	} else {
		db.metrics.otherCompactions.Inc()
	}
}

func (db *Database) onCompactionEnd(pebble.CompactionInfo) {
	db.metrics.activeCompactions.Dec()
}
