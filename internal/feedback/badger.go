// Recstudy - News Recommendation Expert Study
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recstudy

package feedback

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
)

const (
	recordKeyPrefix = "feedback:"

	// maxConflictRetries bounds retries of read-modify-write transactions
	// that lost a race with a concurrent write to the same session.
	maxConflictRetries = 5
)

// BadgerStore keeps feedback records in BadgerDB. Each update is a
// read-modify-write inside one transaction.
type BadgerStore struct {
	db *badger.DB
}

// NewBadgerStore creates a store on an open database. The caller owns db.
func NewBadgerStore(db *badger.DB) *BadgerStore {
	return &BadgerStore{db: db}
}

// UpsertRating sets one nested rating.
func (s *BadgerStore) UpsertRating(ctx context.Context, sessionID, articleID, recID string, entry Entry) error {
	if err := validateIDs(sessionID, articleID, recID); err != nil {
		return err
	}
	return s.update(ctx, sessionID, func(r *Record) {
		r.setRating(articleID, recID, entry)
	})
}

// UpsertSUS replaces the questionnaire block.
func (s *BadgerStore) UpsertSUS(ctx context.Context, sessionID string, sus SUS) error {
	if err := validateIDs(sessionID); err != nil {
		return err
	}
	return s.update(ctx, sessionID, func(r *Record) {
		r.SUSFeedback = &sus
	})
}

// SetCompany records the participant's company.
func (s *BadgerStore) SetCompany(ctx context.Context, sessionID, company string) error {
	if err := validateIDs(sessionID); err != nil {
		return err
	}
	return s.update(ctx, sessionID, func(r *Record) {
		r.Company = company
	})
}

func (s *BadgerStore) update(ctx context.Context, sessionID string, mutate func(*Record)) error {
	key := []byte(recordKeyPrefix + sessionID)

	var err error
	for attempt := 0; attempt < maxConflictRetries; attempt++ {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		err = s.db.Update(func(txn *badger.Txn) error {
			record := Record{SessionID: sessionID}

			item, err := txn.Get(key)
			switch {
			case errors.Is(err, badger.ErrKeyNotFound):
			case err != nil:
				return fmt.Errorf("get feedback record: %w", err)
			default:
				if err := item.Value(func(val []byte) error {
					return json.Unmarshal(val, &record)
				}); err != nil {
					return fmt.Errorf("unmarshal feedback record: %w", err)
				}
			}

			mutate(&record)

			data, err := json.Marshal(&record)
			if err != nil {
				return fmt.Errorf("marshal feedback record: %w", err)
			}
			return txn.Set(key, data)
		})
		if !errors.Is(err, badger.ErrConflict) {
			return err
		}
	}
	return fmt.Errorf("update feedback record: %w", err)
}

// Find returns the record of a session.
func (s *BadgerStore) Find(_ context.Context, sessionID string) (*Record, error) {
	var record Record

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(recordKeyPrefix + sessionID))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrRecordNotFound
		}
		if err != nil {
			return fmt.Errorf("get feedback record: %w", err)
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &record)
		})
	})
	if err != nil {
		return nil, err
	}

	return &record, nil
}

// Each iterates all records in key order.
func (s *BadgerStore) Each(ctx context.Context, fn func(*Record) error) error {
	return s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(recordKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}

			var record Record
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &record)
			}); err != nil {
				return fmt.Errorf("unmarshal feedback record: %w", err)
			}
			if err := fn(&record); err != nil {
				return err
			}
		}
		return nil
	})
}

// Ping reports whether the database is open.
func (s *BadgerStore) Ping(_ context.Context) error {
	if s.db.IsClosed() {
		return errors.New("badger database is closed")
	}
	return nil
}

// Close is a no-op: the database is shared with the session store and
// closed by its owner.
func (s *BadgerStore) Close(_ context.Context) error {
	return nil
}
