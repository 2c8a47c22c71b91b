// Recstudy - News Recommendation Expert Study
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recstudy

// Package validation provides struct validation using go-playground/validator v10.
//
// It wraps a thread-safe singleton validator with the study's custom tags and
// turns failures into the VALIDATION_ERROR shape used by the HTTP API. Field
// names in messages come from the json tag.
//
// # Custom Tags
//
//   - likert: integer 1..5, either as a number or a decimal string ("4")
//   - susquestion: map key sus_question1 through sus_question10
//   - feedbackkey: non-empty identifier without '.', '$' or NUL, safe to
//     use as a nested document key in both feedback backends
//
// # Usage
//
//	type FeedbackRequest struct {
//	    ArticleID string `json:"article_id" validate:"required,feedbackkey"`
//	    Rating    string `json:"rating" validate:"required,likert"`
//	}
//
//	if verr := validation.ValidateStruct(&req); verr != nil {
//	    apiErr := verr.ToAPIError()
//	    respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
//	    return
//	}
//
// SUS responses are validated per key and per value with dive:
//
//	Responses map[string]string `validate:"len=10,dive,keys,susquestion,endkeys,likert"`
//
// # Thread Safety
//
// GetValidator initializes once via sync.Once; the returned validator caches
// struct metadata and is safe for concurrent use.
package validation
