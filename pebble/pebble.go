// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pebble

import (
	"errors"
	"sync"
	"time"

	"github.com/ava-labs/avalanchego/database"
	"github.com/cockroachdb/pebble"
	"github.com/prometheus/client_golang/prometheus"
)

var _ database.KeyValueReaderWriterDeleter = (*Database)(nil)

type Config struct {
	CacheSize    int  `json:"cacheSize"`
	BytesPerSync int  `json:"bytesPerSync"`
	MaxOpenFiles int  `json:"maxOpenFiles"`
	Sync         bool `json:"sync"`
}

func NewDefaultConfig() Config {
	return Config{
		CacheSize:    16 * 1024 * 1024,
		BytesPerSync: 512 * 1024,
		MaxOpenFiles: 1_024,
		Sync:         true,
	}
}

// Database is the ledger account store kept on disk.
type Database struct {
	lock   sync.RWMutex
	db     *pebble.DB
	closed bool

	writeOpts *pebble.WriteOptions
	metrics   *metrics
}

func New(file string, cfg Config) (*Database, *prometheus.Registry, error) {
	d := &Database{
		writeOpts: pebble.NoSync,
	}
	if cfg.Sync {
		d.writeOpts = pebble.Sync
	}

	cache := pebble.NewCache(int64(cfg.CacheSize))
	defer cache.Unref()
	opts := &pebble.Options{
		Cache:        cache,
		BytesPerSync: cfg.BytesPerSync,
		MaxOpenFiles: cfg.MaxOpenFiles,
		EventListener: &pebble.EventListener{
			CompactionBegin: d.onCompactionBegin,
			CompactionEnd:   d.onCompactionEnd,
		},
	}
	db, err := pebble.Open(file, opts)
	if err != nil {
		return nil, nil, err
	}
	d.db = db

	registry, metrics, err := newMetrics(d)
	if err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	d.metrics = metrics
	return d, registry, nil
}

func (db *Database) Has(key []byte) (bool, error) {
	_, err := db.Get(key)
	if errors.Is(err, database.ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (db *Database) Get(key []byte) ([]byte, error) {
	db.lock.RLock()
	defer db.lock.RUnlock()

	if db.closed {
		return nil, database.ErrClosed
	}
	start := time.Now()
	data, closer, err := db.db.Get(key)
	db.metrics.getLatency.Observe(float64(time.Since(start)))
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, database.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	// [data] is only valid until [closer] is closed.
	ret := make([]byte, len(data))
	copy(ret, data)
	return ret, closer.Close()
}

func (db *Database) Put(key []byte, value []byte) error {
	db.lock.RLock()
	defer db.lock.RUnlock()

	if db.closed {
		return database.ErrClosed
	}
	start := time.Now()
	err := db.db.Set(key, value, db.writeOpts)
	db.metrics.writeLatency.Observe(float64(time.Since(start)))
	return err
}

func (db *Database) Delete(key []byte) error {
	db.lock.RLock()
	defer db.lock.RUnlock()

	if db.closed {
		return database.ErrClosed
	}
	return db.db.Delete(key, db.writeOpts)
}

func (db *Database) Close() error {
	db.lock.Lock()
	defer db.lock.Unlock()

	if db.closed {
		return database.ErrClosed
	}
	db.closed = true
	return db.db.Close()
}
