// Recstudy - News Recommendation Expert Study
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recstudy

package models

import (
	"time"
)

// APIResponse represents a standardized API response wrapper used by all HTTP endpoints.
//
// Status field values:
//   - "success": Request completed successfully, see Data field
//   - "error": Request failed, see Error field for details
//
// Example successful response:
//
//	{
//	  "status": "success",
//	  "data": {"count": 7, "threshold": 20, "sus_unlocked": false},
//	  "metadata": {"timestamp": "2026-03-02T12:00:00Z"}
//	}
//
// Example error response:
//
//	{
//	  "status": "error",
//	  "error": {
//	    "code": "VALIDATION_ERROR",
//	    "message": "rating must be an integer from 1 to 5",
//	    "details": {"field": "rating"}
//	  },
//	  "metadata": {"timestamp": "2026-03-02T12:00:00Z"}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata contains response metadata for observability.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
	Cached      bool      `json:"cached,omitempty"`
}

// APIError represents an error response with structured error details.
//
// Common error codes:
//   - VALIDATION_ERROR: Invalid input parameters
//   - NOT_FOUND: Article or recommendation doesn't exist
//   - STORE_ERROR: Feedback store failure
//   - SERVICE_UNAVAILABLE: Feedback store circuit open
//   - SEQUENCE_ERROR: Article is not part of the session order
//   - RATE_LIMIT_EXCEEDED: Too many requests
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// HealthResponse is returned by the liveness and readiness probes.
type HealthResponse struct {
	Status         string            `json:"status"`
	Version        string            `json:"version"`
	Uptime         float64           `json:"uptime_seconds"`
	Articles       int               `json:"articles"`
	CatalogSize    int               `json:"catalog_size"`
	StorageBackend string            `json:"storage_backend,omitempty"`
	Checks         map[string]string `json:"checks,omitempty"`
}
