// Recstudy - News Recommendation Expert Study
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recstudy

package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/recstudy/internal/feedback"
	"github.com/tomtom215/recstudy/internal/logging"
	"github.com/tomtom215/recstudy/internal/models"
	"github.com/tomtom215/recstudy/internal/progress"
	"github.com/tomtom215/recstudy/internal/session"
	"github.com/tomtom215/recstudy/internal/validation"
)

// maxBodyBytes bounds JSON and form request bodies.
const maxBodyBytes = 64 << 10

// sanitizeLogValue removes control characters from strings to prevent log injection attacks.
func sanitizeLogValue(s string) string {
	var result strings.Builder
	result.Grow(len(s))
	for _, r := range s {
		if r < 0x20 || r == 0x7F {
			fmt.Fprintf(&result, "\\x%02x", r)
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}

// respondJSON sends a JSON response with proper headers. Study responses
// depend on the participant's session and are never cached.
func respondJSON(w http.ResponseWriter, status int, response interface{}) {
	data, err := json.Marshal(response)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Error().Err(err).Msg("Failed to write JSON response")
	}
}

// respondSuccess wraps data in the success envelope.
func respondSuccess(w http.ResponseWriter, status int, data interface{}, started time.Time) {
	respondJSON(w, status, &models.APIResponse{
		Status: "success",
		Data:   data,
		Metadata: models.Metadata{
			Timestamp:   time.Now().UTC(),
			QueryTimeMS: time.Since(started).Milliseconds(),
		},
	})
}

// respondError sends an error response
func respondError(w http.ResponseWriter, status int, code, message string, err error) {
	respondErrorDetails(w, status, code, message, nil, err)
}

func respondErrorDetails(w http.ResponseWriter, status int, code, message string, details map[string]interface{}, err error) {
	if err != nil {
		logging.Error().Str("code", sanitizeLogValue(code)).Str("error", sanitizeLogValue(err.Error())).Msg("API Error")
	}

	respondJSON(w, status, &models.APIResponse{
		Status: "error",
		Data:   nil,
		Metadata: models.Metadata{
			Timestamp: time.Now().UTC(),
		},
		Error: &models.APIError{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

// failure is a handler error ready to be rendered in either the envelope or
// the legacy shape.
type failure struct {
	status  int
	code    string
	message string
	details map[string]interface{}
	err     error
}

func (f *failure) respond(w http.ResponseWriter) {
	respondErrorDetails(w, f.status, f.code, f.message, f.details, f.err)
}

// respondLegacy renders f as {"status":"error","message":...}.
func (f *failure) respondLegacy(w http.ResponseWriter) {
	if f.err != nil {
		logging.Error().Str("code", f.code).Str("error", sanitizeLogValue(f.err.Error())).Msg("API Error")
	}
	respondJSON(w, f.status, map[string]string{"status": "error", "message": f.message})
}

// badRequest is a client error; it is not logged.
func badRequest(message string) *failure {
	return &failure{status: http.StatusBadRequest, code: ErrCodeBadRequest, message: message}
}

// validateRequest validates a struct using go-playground/validator.
// The returned failure uses the VALIDATION_ERROR code.
func validateRequest(v interface{}) *failure {
	verr := validation.ValidateStruct(v)
	if verr == nil {
		return nil
	}
	apiErr := verr.ToAPIError()
	return &failure{
		status:  http.StatusBadRequest,
		code:    apiErr.Code,
		message: apiErr.Message,
		details: apiErr.Details,
	}
}

// storeFailure maps feedback store errors to HTTP failures.
func storeFailure(err error) *failure {
	switch {
	case errors.Is(err, feedback.ErrInvalidKey):
		return &failure{status: http.StatusBadRequest, code: ErrCodeValidation, message: "Identifiers must not contain '.', '$' or NUL"}
	case feedback.IsUnavailable(err):
		return &failure{status: http.StatusServiceUnavailable, code: ErrCodeServiceUnavailable, message: "Feedback store temporarily unavailable", err: err}
	default:
		return &failure{status: http.StatusInternalServerError, code: ErrCodeStore, message: "Failed to store feedback", err: err}
	}
}

// decodeJSON reads a bounded JSON body into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) *failure {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(body)
	if err := dec.Decode(v); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxErr):
			return &failure{status: http.StatusRequestEntityTooLarge, code: ErrCodeBadRequest, message: "Request body too large"}
		case errors.Is(err, io.EOF):
			return badRequest("Request body is empty")
		default:
			return badRequest("Invalid JSON request body")
		}
	}
	return nil
}

// isForm reports whether the request carries an HTML form body.
func isForm(r *http.Request) bool {
	ct := r.Header.Get("Content-Type")
	return strings.HasPrefix(ct, "application/x-www-form-urlencoded") || strings.HasPrefix(ct, "multipart/form-data")
}

// requireSession returns the session state attached by session.Middleware.
func requireSession(r *http.Request) (*session.State, *failure) {
	state := session.FromContext(r.Context())
	if state == nil {
		return nil, &failure{status: http.StatusInternalServerError, code: ErrCodeInternal, message: "Session unavailable", err: ErrNoSession}
	}
	return state, nil
}

// findRecord returns the session's feedback record; a session without
// feedback yields a nil record and no error.
func (h *Handler) findRecord(r *http.Request, sessionID string) (*feedback.Record, error) {
	record, err := h.feedback.Find(r.Context(), sessionID)
	if errors.Is(err, feedback.ErrRecordNotFound) {
		return nil, nil
	}
	return record, err
}

// sequenceFailure reports a progress window requested for an article
// outside the session order.
func sequenceFailure(err error) *failure {
	if errors.Is(err, progress.ErrArticleNotInSequence) {
		return &failure{status: http.StatusConflict, code: ErrCodeSequence, message: "Session state out of sync", err: err}
	}
	return &failure{status: http.StatusInternalServerError, code: ErrCodeInternal, message: "Failed to compute progress", err: err}
}
