// Recstudy - News Recommendation Expert Study
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recstudy

package middleware

import (
	"net/http"
	"time"

	"github.com/tomtom215/recstudy/internal/logging"
)

// DefaultSlowRequestThreshold is the duration above which a request is
// logged at warn level.
const DefaultSlowRequestThreshold = time.Second

// AccessLog writes one structured line per request through logging.Ctx, so
// request_id and correlation_id are attached when RequestID runs first. Health probes and /metrics are logged
// at debug level; requests slower than slow are logged at warn level.
func AccessLog(slow time.Duration) func(http.Handler) http.Handler {
	if slow <= 0 {
		slow = DefaultSlowRequestThreshold
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			wrapper := &statusRecorder{
				ResponseWriter: w,
				statusCode:     http.StatusOK,
			}

			next.ServeHTTP(wrapper, r)

			duration := time.Since(start)
			logger := logging.Ctx(r.Context())

			event := logger.Info()
			switch {
			case wrapper.statusCode >= http.StatusInternalServerError:
				event = logger.Error()
			case duration > slow:
				event = logger.Warn().Bool("slow", true)
			case quietRoute(r.URL.Path):
				event = logger.Debug()
			}

			event.
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Str("route", RoutePattern(r)).
				Int("status", wrapper.statusCode).
				Int64("duration_ms", duration.Milliseconds()).
				Str("remote_addr", r.RemoteAddr).
				Msg("HTTP request")
		})
	}
}

func quietRoute(path string) bool {
	switch path {
	case "/metrics", "/api/v1/health/live", "/api/v1/health/ready":
		return true
	}
	return false
}
