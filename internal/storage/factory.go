// Recstudy - News Recommendation Expert Study
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recstudy

package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"

	"github.com/tomtom215/recstudy/internal/config"
	"github.com/tomtom215/recstudy/internal/feedback"
	"github.com/tomtom215/recstudy/internal/logging"
	"github.com/tomtom215/recstudy/internal/session"
)

// Stores holds the persistence backends of one process.
//
// Session state always lives in the embedded badger database. Feedback
// lives there too unless storage.backend is "mongo", in which case it goes
// to MongoDB behind a circuit breaker.
type Stores struct {
	DB       *badger.DB
	Sessions session.Store
	Feedback feedback.Store
	Backend  string

	// mongo is closed separately from badger.
	mongo feedback.Store
}

// Open opens the badger database and the configured feedback backend.
func Open(ctx context.Context, cfg *config.Config) (*Stores, error) {
	db, err := OpenBadger(cfg.Storage.BadgerPath)
	if err != nil {
		return nil, err
	}

	stores := &Stores{
		DB:       db,
		Sessions: session.NewBadgerStore(db, cfg.Session.MaxAge),
		Backend:  cfg.Storage.Backend,
	}

	switch cfg.Storage.Backend {
	case config.BackendMongo:
		mongoStore, err := feedback.NewMongoStore(ctx, feedback.MongoConfig{
			URI:        cfg.Storage.Mongo.URI,
			Database:   cfg.Storage.Mongo.Database,
			Collection: cfg.Storage.Mongo.Collection,
			Timeout:    cfg.Storage.Mongo.Timeout,
		})
		if err != nil {
			_ = db.Close() //nolint:errcheck // already failing
			return nil, fmt.Errorf("open mongodb feedback store: %w", err)
		}
		stores.mongo = mongoStore
		stores.Feedback = feedback.NewBreakerStore(mongoStore, "feedback-mongo")
	default:
		stores.Backend = config.BackendBadger
		stores.Feedback = feedback.NewBadgerStore(db)
	}

	logging.Info().
		Str("badger_path", cfg.Storage.BadgerPath).
		Str("feedback_backend", stores.Backend).
		Msg("Storage opened")
	return stores, nil
}

// OpenBadger opens (or creates) the embedded database at path.
func OpenBadger(path string) (*badger.DB, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil // badger's own logger is too chatty at info

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger db at %s: %w", path, err)
	}
	return db, nil
}

// Close closes the feedback backend and the badger database.
func (s *Stores) Close(ctx context.Context) error {
	var errs []error
	if s.mongo != nil {
		if err := s.mongo.Close(ctx); err != nil {
			errs = append(errs, fmt.Errorf("close mongodb: %w", err))
		}
	}
	if err := s.DB.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close badger: %w", err))
	}
	return errors.Join(errs...)
}
