// Recstudy - News Recommendation Expert Study
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recstudy

package feedback

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/tomtom215/recstudy/internal/logging"
	"github.com/tomtom215/recstudy/internal/metrics"
)

// Exporter writes every feedback record to a JSON Lines file.
type Exporter struct {
	store   Store
	path    string
	limiter *rate.Limiter
	logger  zerolog.Logger
}

// NewExporter creates an exporter writing to path. minInterval limits
// DumpThrottled to one dump per interval; zero disables throttling.
func NewExporter(store Store, path string, minInterval time.Duration) *Exporter {
	limit := rate.Inf
	if minInterval > 0 {
		limit = rate.Every(minInterval)
	}
	return &Exporter{
		store:   store,
		path:    path,
		limiter: rate.NewLimiter(limit, 1),
		logger:  logging.WithComponent("export"),
	}
}

// Path returns the output file.
func (e *Exporter) Path() string {
	return e.path
}

// WriteJSONL writes one JSON document per record to w and returns the
// number of records written.
func WriteJSONL(ctx context.Context, store Store, w io.Writer) (int, error) {
	enc := json.NewEncoder(w)
	n := 0
	err := store.Each(ctx, func(r *Record) error {
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("encode record %s: %w", r.SessionID, err)
		}
		n++
		return nil
	})
	return n, err
}

// Dump replaces the output file with a fresh export. The file is written
// next to its destination and renamed into place, so readers never see a
// partial export.
func (e *Exporter) Dump(ctx context.Context) (int, error) {
	start := time.Now()
	n, err := e.dump(ctx)
	metrics.ExportDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.ExportsTotal.WithLabelValues("error").Inc()
		return 0, err
	}

	metrics.ExportsTotal.WithLabelValues("success").Inc()
	metrics.ExportedRecords.Set(float64(n))
	e.logger.Info().Int("records", n).Str("path", e.path).Msg("Feedback exported")
	return n, nil
}

func (e *Exporter) dump(ctx context.Context) (int, error) {
	dir := filepath.Dir(e.path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return 0, fmt.Errorf("create export directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(e.path)+".*.tmp")
	if err != nil {
		return 0, fmt.Errorf("create temp export file: %w", err)
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck // no-op after a successful rename

	buf := bufio.NewWriter(tmp)
	n, err := WriteJSONL(ctx, e.store, buf)
	if err == nil {
		err = buf.Flush()
	}
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return 0, fmt.Errorf("write export: %w", err)
	}

	if err := os.Rename(tmp.Name(), e.path); err != nil {
		return 0, fmt.Errorf("replace export file: %w", err)
	}
	return n, nil
}

// DumpThrottled dumps unless another dump ran within the configured
// interval. It reports whether a dump was performed.
func (e *Exporter) DumpThrottled(ctx context.Context) (bool, error) {
	if !e.limiter.Allow() {
		metrics.ExportsTotal.WithLabelValues("throttled").Inc()
		e.logger.Debug().Msg("Export skipped, last dump too recent")
		return false, nil
	}
	if _, err := e.Dump(ctx); err != nil {
		return false, err
	}
	return true, nil
}

// Summary is an aggregate view of the collected feedback.
type Summary struct {
	Sessions     int            `json:"sessions"`
	Ratings      int            `json:"ratings"`
	SUSCompleted int            `json:"sus_completed"`
	PerSession   map[string]int `json:"per_session"`
}

// Summarize counts ratings per session and completed questionnaires.
func Summarize(ctx context.Context, store Store) (*Summary, error) {
	s := &Summary{PerSession: make(map[string]int)}
	err := store.Each(ctx, func(r *Record) error {
		count := r.RatingCount()
		s.Sessions++
		s.Ratings += count
		s.PerSession[r.SessionID] = count
		if r.SUSFeedback != nil {
			s.SUSCompleted++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}
