// Recstudy - News Recommendation Expert Study
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recstudy

package feedback

import (
	"context"
	"errors"
	"fmt"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/recstudy/internal/logging"
	"github.com/tomtom215/recstudy/internal/metrics"
)

// BreakerStore guards a remote Store with a circuit breaker so an
// unreachable database fails requests fast instead of piling them up.
//
// Circuit breaker configuration:
//   - Max 3 concurrent requests in half-open state
//   - 1 minute measurement window
//   - 30 second timeout before attempting recovery
//   - Opens after 60% failure rate with minimum 10 requests
//
// ErrRecordNotFound and invalid keys are answers, not failures, and never
// count towards tripping the circuit.
type BreakerStore struct {
	next Store
	cb   *gobreaker.CircuitBreaker[any]
	name string
}

// NewBreakerStore wraps next. name labels the breaker metrics.
func NewBreakerStore(next Store, name string) *BreakerStore {
	metrics.CircuitBreakerState.WithLabelValues(name).Set(0)
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(0)

	cb := gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        name,
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 10 {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			shouldTrip := failureRatio >= 0.6
			if shouldTrip {
				logging.Warn().
					Str("breaker", name).
					Uint32("failures", counts.TotalFailures).
					Float64("failure_rate", failureRatio*100).
					Msg("Opening feedback store circuit")
			}
			return shouldTrip
		},

		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrRecordNotFound) || errors.Is(err, ErrInvalidKey)
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Info().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("Feedback store circuit state transition")

			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, from.String(), to.String()).Inc()
			if to == gobreaker.StateClosed {
				metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(0)
			}
		},
	})

	return &BreakerStore{next: next, cb: cb, name: name}
}

func (s *BreakerStore) execute(fn func() (any, error)) (any, error) {
	result, err := s.cb.Execute(fn)
	if err != nil {
		switch {
		case errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests):
			metrics.CircuitBreakerRequests.WithLabelValues(s.name, "rejected").Inc()
			logging.Warn().Err(err).Str("breaker", s.name).Msg("Feedback store request rejected")
		case errors.Is(err, ErrRecordNotFound) || errors.Is(err, ErrInvalidKey):
			metrics.CircuitBreakerRequests.WithLabelValues(s.name, "success").Inc()
		default:
			metrics.CircuitBreakerRequests.WithLabelValues(s.name, "failure").Inc()
			counts := s.cb.Counts()
			metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(s.name).Set(float64(counts.ConsecutiveFailures))
		}
		return nil, err
	}

	metrics.CircuitBreakerRequests.WithLabelValues(s.name, "success").Inc()
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(s.name).Set(0)
	return result, nil
}

func (s *BreakerStore) run(fn func() error) error {
	_, err := s.execute(func() (any, error) {
		return nil, fn()
	})
	return err
}

// UpsertRating implements Store.
func (s *BreakerStore) UpsertRating(ctx context.Context, sessionID, articleID, recID string, entry Entry) error {
	return s.run(func() error {
		return s.next.UpsertRating(ctx, sessionID, articleID, recID, entry)
	})
}

// UpsertSUS implements Store.
func (s *BreakerStore) UpsertSUS(ctx context.Context, sessionID string, sus SUS) error {
	return s.run(func() error {
		return s.next.UpsertSUS(ctx, sessionID, sus)
	})
}

// SetCompany implements Store.
func (s *BreakerStore) SetCompany(ctx context.Context, sessionID, company string) error {
	return s.run(func() error {
		return s.next.SetCompany(ctx, sessionID, company)
	})
}

// Find implements Store.
func (s *BreakerStore) Find(ctx context.Context, sessionID string) (*Record, error) {
	result, err := s.execute(func() (any, error) {
		return s.next.Find(ctx, sessionID)
	})
	if err != nil {
		return nil, err
	}
	record, ok := result.(*Record)
	if !ok {
		return nil, fmt.Errorf("circuit breaker: unexpected result type %T", result)
	}
	return record, nil
}

// Each implements Store.
func (s *BreakerStore) Each(ctx context.Context, fn func(*Record) error) error {
	return s.run(func() error {
		return s.next.Each(ctx, fn)
	})
}

// Ping bypasses the breaker so health checks see the real backend state.
func (s *BreakerStore) Ping(ctx context.Context) error {
	return s.next.Ping(ctx)
}

// Close implements Store.
func (s *BreakerStore) Close(ctx context.Context) error {
	return s.next.Close(ctx)
}

// State returns the current circuit state.
func (s *BreakerStore) State() gobreaker.State {
	return s.cb.State()
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

// IsUnavailable reports whether err means the circuit rejected the call
// without reaching the backend.
func IsUnavailable(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
}
