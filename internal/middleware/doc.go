// Recstudy - News Recommendation Expert Study
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recstudy

/*
Package middleware provides HTTP middleware shared by the study API.

Key Components:

  - RequestID: assigns or propagates X-Request-ID and seeds the logging
    context with request and correlation IDs
  - AccessLog: one structured zerolog line per request, warn level for slow
    requests, debug level for health probes and /metrics
  - PrometheusMetrics: request count, latency and in-flight gauge labelled
    by chi route pattern

All three use the func(http.Handler) http.Handler shape and are installed
with chi's Router.Use:

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.AccessLog(middleware.DefaultSlowRequestThreshold))
	r.Use(middleware.PrometheusMetrics)

RequestID must run before AccessLog for the request_id field to appear in
access log lines. Response compression comes from chi's own Compress
middleware.

See Also:

  - internal/logging: context loggers
  - internal/metrics: Prometheus metric definitions
  - internal/api: router construction
*/
package middleware
