// Recstudy - News Recommendation Expert Study
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recstudy

/*
Package metrics provides Prometheus metrics collection and export for observability.

All collectors are registered with the default registry through promauto and
exposed at the /metrics endpoint in Prometheus text format:

	curl http://localhost:8080/metrics

# Available Metrics

API Metrics:
  - api_requests_total: Total API requests (counter)
    Labels: method, endpoint, status_code
  - api_request_duration_seconds: Request latency (histogram)
    Labels: method, endpoint
  - api_active_requests: In-flight requests (gauge)
  - api_rate_limit_hits_total: Rate limit rejections (counter)
    Labels: endpoint

Study Metrics:
  - recstudy_articles_loaded: Rows loaded per table (gauge)
    Labels: table (reference, catalog)
  - recstudy_sessions_created_total: Participant sessions created (counter)
  - recstudy_feedback_writes_total: Feedback store writes (counter)
    Labels: kind (rating, sus, company), result (success, error)

Export Metrics:
  - recstudy_exports_total: Export attempts (counter)
    Labels: result (success, error, throttled)
  - recstudy_export_duration_seconds: Export duration (histogram)
  - recstudy_exported_records: Records in the last export (gauge)

Cache Metrics:
  - cache_hits_total, cache_misses_total: Memoization lookups (counter)
    Labels: cache_type (article, recommendations)

Circuit Breaker Metrics:
  - circuit_breaker_state: Current state (gauge)
    Labels: name
    Values: 0=closed, 1=half-open, 2=open
  - circuit_breaker_requests_total: Requests by outcome (counter)
    Labels: name, result (success, failure, rejected)
  - circuit_breaker_consecutive_failures: Current failure streak (gauge)
  - circuit_breaker_state_transitions_total: State changes (counter)
    Labels: name, from_state, to_state

System Metrics:
  - app_info: Build information (gauge)
    Labels: version, go_version
  - app_uptime_seconds: Process uptime (gauge)

# Example PromQL

	# Ratings submitted per minute
	rate(recstudy_feedback_writes_total{kind="rating",result="success"}[1m]) * 60

	# Recommendation cache hit rate
	sum(rate(cache_hits_total{cache_type="recommendations"}[5m])) /
	  (sum(rate(cache_hits_total{cache_type="recommendations"}[5m])) +
	   sum(rate(cache_misses_total{cache_type="recommendations"}[5m])))

# Thread Safety

All recording functions are safe for concurrent use. The Prometheus client
library handles synchronization internally.

# Cardinality Management

Endpoint labels use the chi route pattern (for example
/api/v1/article/{articleID}) rather than the raw path, so article ids never
become label values.
*/
package metrics
