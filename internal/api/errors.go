// Recstudy - News Recommendation Expert Study
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recstudy

package api

import "errors"

// Error codes for API responses
const (
	ErrCodeBadRequest         = "BAD_REQUEST"
	ErrCodeValidation         = "VALIDATION_ERROR"
	ErrCodeNotFound           = "NOT_FOUND"
	ErrCodeMethodNotAllowed   = "METHOD_NOT_ALLOWED"
	ErrCodeSequence           = "SEQUENCE_ERROR"
	ErrCodeTooManyRequests    = "RATE_LIMIT_EXCEEDED"
	ErrCodeStore              = "STORE_ERROR"
	ErrCodeServiceUnavailable = "SERVICE_UNAVAILABLE"
	ErrCodeInternal           = "INTERNAL_ERROR"
)

var (
	// ErrNoSession indicates a study route was mounted without the session
	// middleware.
	ErrNoSession = errors.New("no session state in request context")

	// ErrNoStudyArticles indicates the reference table is empty, so no
	// predetermined flow can start.
	ErrNoStudyArticles = errors.New("no study articles loaded")
)

// errInvalidSUS marks a rejected questionnaire in study event logs.
var errInvalidSUS = errors.New("incomplete or invalid SUS answers")
