// Recstudy - News Recommendation Expert Study
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recstudy

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/recstudy/internal/logging"
)

// Dumper writes the feedback collection to the export file.
// Satisfied by *feedback.Exporter.
type Dumper interface {
	Dump(ctx context.Context) (int, error)
	Path() string
}

// ExportService rewrites the JSON Lines export on a fixed interval, and once
// more on shutdown so the file reflects every stored answer.
type ExportService struct {
	dumper   Dumper
	interval time.Duration
	timeout  time.Duration
	logger   zerolog.Logger
	name     string
}

// NewExportService creates the periodic export worker. A non-positive
// interval means one hour.
func NewExportService(dumper Dumper, interval time.Duration) *ExportService {
	if interval <= 0 {
		interval = time.Hour
	}
	return &ExportService{
		dumper:   dumper,
		interval: interval,
		timeout:  2 * time.Minute,
		logger:   logging.WithComponent("export"),
		name:     "feedback-export",
	}
}

// Serve implements suture.Service. A failed dump is logged and retried on
// the next tick rather than restarting the service.
func (s *ExportService) Serve(ctx context.Context) error {
	s.logger.Info().
		Str("path", s.dumper.Path()).
		Dur("interval", s.interval).
		Msg("Feedback export scheduled")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.dump(context.Background())
			return ctx.Err()
		case <-ticker.C:
			s.dump(ctx)
		}
	}
}

func (s *ExportService) dump(parent context.Context) {
	ctx, cancel := context.WithTimeout(logging.ContextWithNewCorrelationID(parent), s.timeout)
	defer cancel()

	start := time.Now()
	n, err := s.dumper.Dump(ctx)
	if err != nil {
		logging.Ctx(ctx).Error().Err(err).Str("path", s.dumper.Path()).Msg("Scheduled feedback export failed")
		return
	}
	logging.Ctx(ctx).Info().
		Int("records", n).
		Dur("duration", time.Since(start)).
		Msg("Feedback exported")
}

// String names the service in supervisor events.
func (s *ExportService) String() string {
	return s.name
}
