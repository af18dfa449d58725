// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/gongde/countervm/pebble"
	"github.com/gongde/countervm/utils"
)

// Gatherer collects the registries of every store opened by a process.
// avalanchego's metrics.MultiGatherer satisfies it.
type Gatherer interface {
	Register(name string, gatherer prometheus.Gatherer) error
}

// New opens the account database under [dataDir]/[namespace].
func New(cfg pebble.Config, dataDir string, namespace string, gatherer Gatherer) (*pebble.Database, error) {
	path, err := utils.InitSubDirectory(dataDir, namespace)
	if err != nil {
		return nil, err
	}

	db, registry, err := pebble.New(path, cfg)
	if err != nil {
		return nil, err
	}

	if err := gatherer.Register(namespace, registry); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}
