// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package cache keeps recently read account records in memory in front of
// the account database.
package cache

import (
	"context"
	"errors"

	"github.com/ava-labs/avalanchego/database"
	"go.uber.org/atomic"

	"github.com/gongde/countervm/state"

	lru "github.com/hashicorp/golang-lru/v2"
)

var _ state.Mutable = (*State)(nil)

// entry is a cached read. A nil value records a missing key.
type entry struct {
	value []byte
}

// State is a write-through LRU cache over a [state.Mutable].
type State struct {
	inner state.Mutable
	lru   *lru.Cache[string, entry]

	hits   atomic.Uint64
	misses atomic.Uint64
}

func New(inner state.Mutable, size int) (*State, error) {
	c, err := lru.New[string, entry](size)
	if err != nil {
		return nil, err
	}
	return &State{inner: inner, lru: c}, nil
}

func (s *State) GetValue(ctx context.Context, key []byte) ([]byte, error) {
	if e, ok := s.lru.Get(string(key)); ok {
		s.hits.Inc()
		if e.value == nil {
			return nil, database.ErrNotFound
		}
		return e.value, nil
	}
	s.misses.Inc()

	v, err := s.inner.GetValue(ctx, key)
	switch {
	case errors.Is(err, database.ErrNotFound):
		s.lru.Add(string(key), entry{})
		return nil, err
	case err != nil:
		return nil, err
	}
	s.lru.Add(string(key), entry{value: v})
	return v, nil
}

func (s *State) Insert(ctx context.Context, key []byte, value []byte) error {
	if err := s.inner.Insert(ctx, key, value); err != nil {
		s.lru.Remove(string(key))
		return err
	}
	s.lru.Add(string(key), entry{value: value})
	return nil
}

func (s *State) Remove(ctx context.Context, key []byte) error {
	if err := s.inner.Remove(ctx, key); err != nil {
		s.lru.Remove(string(key))
		return err
	}
	s.lru.Add(string(key), entry{})
	return nil
}

func (s *State) Hits() uint64 {
	return s.hits.Load()
}

func (s *State) Misses() uint64 {
	return s.misses.Load()
}

func (s *State) Len() int {
	return s.lru.Len()
}
