// Recstudy - News Recommendation Expert Study
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recstudy

package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
)

const stateKeyPrefix = "study_session:"

// BadgerStore persists session state in BadgerDB so participants keep their
// article ordering across restarts.
type BadgerStore struct {
	db  *badger.DB
	ttl time.Duration
}

// NewBadgerStore creates a store on an open database. The caller owns db.
// Each Save expires ttl after it is written, normally the cookie max age;
// a non-positive ttl keeps states forever.
func NewBadgerStore(db *badger.DB, ttl time.Duration) *BadgerStore {
	return &BadgerStore{db: db, ttl: ttl}
}

// Get retrieves the state for id.
func (s *BadgerStore) Get(_ context.Context, id string) (*State, error) {
	var state State

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(stateKeyPrefix + id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrStateNotFound
		}
		if err != nil {
			return fmt.Errorf("get session state: %w", err)
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &state)
		})
	})
	if err != nil {
		return nil, err
	}

	return &state, nil
}

// Save creates or replaces the state.
func (s *BadgerStore) Save(_ context.Context, state *State) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal session state: %w", err)
	}

	entry := badger.NewEntry([]byte(stateKeyPrefix+state.ID), data)
	if s.ttl > 0 {
		entry = entry.WithTTL(s.ttl)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		if err := txn.SetEntry(entry); err != nil {
			return fmt.Errorf("set session state: %w", err)
		}
		return nil
	})
}

// Count returns the number of stored sessions.
func (s *BadgerStore) Count(_ context.Context) (int, error) {
	count := 0

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(stateKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			count++
		}
		return nil
	})

	return count, err
}
