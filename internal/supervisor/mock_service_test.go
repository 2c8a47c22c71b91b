// Recstudy - News Recommendation Expert Study
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recstudy

package supervisor

import (
	"context"
	"errors"
	"sync/atomic"
)

// countingService runs until canceled, failing its first fails starts.
type countingService struct {
	name   string
	fails  int32
	starts atomic.Int32
}

func newCountingService(name string, fails int32) *countingService {
	return &countingService{name: name, fails: fails}
}

func (s *countingService) Serve(ctx context.Context) error {
	if n := s.starts.Add(1); n <= s.fails {
		return errors.New("simulated failure")
	}
	<-ctx.Done()
	return ctx.Err()
}

func (s *countingService) Starts() int32 { return s.starts.Load() }

func (s *countingService) String() string { return s.name }
