// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package cli wires a persistent counter ledger for command-line use.
package cli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/ava-labs/avalanchego/api/metrics"
	"github.com/ava-labs/avalanchego/utils/logging"

	"github.com/gongde/countervm/cache"
	"github.com/gongde/countervm/client"
	"github.com/gongde/countervm/config"
	"github.com/gongde/countervm/journal"
	"github.com/gongde/countervm/ledger"
	"github.com/gongde/countervm/pebble"
	"github.com/gongde/countervm/program"
	"github.com/gongde/countervm/state"
	"github.com/gongde/countervm/storage"
)

const (
	accountsNamespace = "accounts"
	journalFile       = "journal.db"
)

type Handler struct {
	cfg *config.Config
	log logging.Logger

	db      *pebble.Database
	cache   *cache.State
	ledger  *ledger.Ledger
	client  *client.Client
	journal *journal.Journal

	gatherer metrics.MultiGatherer
}

// New opens the ledger under the configured data directory and deploys the
// configured program variant on it.
func New(ctx context.Context, cfg *config.Config, log logging.Logger) (*Handler, error) {
	h := &Handler{
		cfg:      cfg,
		log:      log,
		gatherer: metrics.NewPrefixGatherer(),
	}

	db, err := storage.New(cfg.Pebble, cfg.DataDir, accountsNamespace, h.gatherer)
	if err != nil {
		return nil, fmt.Errorf("unable to open database: %w", err)
	}
	h.db = db

	if err := h.init(ctx); err != nil {
		_ = h.CloseDatabase()
		return nil, err
	}
	return h, nil
}

func (h *Handler) init(ctx context.Context) error {
	cached, err := cache.New(state.NewDatabaseStorage(h.db), h.cfg.CacheSize)
	if err != nil {
		return err
	}
	h.cache = cached

	l, ledgerRegistry, err := ledger.New(h.log, cached)
	if err != nil {
		return err
	}
	p, programRegistry, err := program.New(h.log, h.cfg.GetVariant())
	if err != nil {
		return err
	}
	if err := l.Register(h.cfg.GetProgramID(), p); err != nil {
		return err
	}
	h.ledger = l
	h.client = client.New(h.cfg.GetProgramID(), p.Variant())

	if h.cfg.MetricsEnabled {
		if err := h.gatherer.Register("ledger", ledgerRegistry); err != nil {
			return err
		}
		if err := h.gatherer.Register("program", programRegistry); err != nil {
			return err
		}
	}

	if h.cfg.Journal {
		j, err := journal.Open(ctx, filepath.Join(h.cfg.DataDir, journalFile))
		if err != nil {
			return fmt.Errorf("unable to open journal: %w", err)
		}
		h.journal = j
	}
	return nil
}

func (h *Handler) Config() *config.Config    { return h.cfg }
func (h *Handler) Ledger() *ledger.Ledger    { return h.ledger }
func (h *Handler) Client() *client.Client    { return h.client }
func (h *Handler) Journal() *journal.Journal { return h.journal }

// CloseDatabase releases the journal and the account database. It may be
// called more than once.
func (h *Handler) CloseDatabase() error {
	var errs []error
	if h.journal != nil {
		if err := h.journal.Close(); err != nil {
			errs = append(errs, fmt.Errorf("unable to close journal: %w", err))
		}
		h.journal = nil
	}
	if h.db != nil {
		if err := h.db.Close(); err != nil {
			errs = append(errs, fmt.Errorf("unable to close database: %w", err))
		}
		h.db = nil
	}
	return errors.Join(errs...)
}
