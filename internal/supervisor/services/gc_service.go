// Recstudy - News Recommendation Expert Study
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recstudy

package services

import (
	"context"
	"errors"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/rs/zerolog"

	"github.com/tomtom215/recstudy/internal/logging"
)

// gcDiscardRatio is the share of stale data a value log file needs before
// badger rewrites it.
const gcDiscardRatio = 0.5

// ValueLogGC runs badger value log garbage collection.
// Satisfied by *badger.DB.
type ValueLogGC interface {
	RunValueLogGC(discardRatio float64) error
}

// BadgerGCService reclaims value log space of the session and feedback
// database. Each tick collects until badger reports nothing left to rewrite.
type BadgerGCService struct {
	db       ValueLogGC
	interval time.Duration
	logger   zerolog.Logger
	name     string
}

// NewBadgerGCService creates the GC worker. A non-positive interval means
// ten minutes.
func NewBadgerGCService(db ValueLogGC, interval time.Duration) *BadgerGCService {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	return &BadgerGCService{
		db:       db,
		interval: interval,
		logger:   logging.WithComponent("badger-gc"),
		name:     "badger-gc",
	}
}

// Serve implements suture.Service.
func (s *BadgerGCService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.collect(ctx)
		}
	}
}

// collect returns the number of rewritten value log files.
func (s *BadgerGCService) collect(ctx context.Context) int {
	rewritten := 0
	for ctx.Err() == nil {
		err := s.db.RunValueLogGC(gcDiscardRatio)
		if err == nil {
			rewritten++
			continue
		}
		if !errors.Is(err, badger.ErrNoRewrite) && !errors.Is(err, badger.ErrRejected) {
			s.logger.Warn().Err(err).Msg("Value log GC failed")
		}
		break
	}
	if rewritten > 0 {
		s.logger.Debug().Int("files", rewritten).Msg("Value log GC reclaimed space")
	}
	return rewritten
}

// String names the service in supervisor events.
func (s *BadgerGCService) String() string {
	return s.name
}
