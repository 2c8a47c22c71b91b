// Recstudy - News Recommendation Expert Study
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recstudy

package logging

import (
	"context"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

// StudyEvent is a participant action recorded in the study audit log.
type StudyEvent struct {
	// Event is the type of event (e.g., "rating_submitted", "sus_submitted").
	Event string
	// SessionID is the participant session (sanitized when logged).
	SessionID string
	// ArticleID is the reference article the action concerns, if any.
	ArticleID string
	// RecommendationID is the rated recommendation, if any.
	RecommendationID string
	// IPAddress is the client's IP address.
	IPAddress string
	// Success indicates if the operation was successful.
	Success bool
	// Error is the error message if the operation failed.
	Error string
	// Details contains additional details.
	Details map[string]string
}

// StudyLogger writes participant actions with sanitized identifiers.
type StudyLogger struct {
	logger zerolog.Logger
}

// NewStudyLogger creates a study event logger on the global logger.
func NewStudyLogger() *StudyLogger {
	return &StudyLogger{
		logger: With().Str("component", "study").Logger(),
	}
}

// NewStudyLoggerWithLogger creates a study event logger with a custom zerolog logger.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewStudyLoggerWithLogger(logger zerolog.Logger) *StudyLogger {
	return &StudyLogger{
		logger: logger.With().Str("component", "study").Logger(),
	}
}

// LogEvent logs a study event. Failed events are logged at warn level.
func (l *StudyLogger) LogEvent(ctx context.Context, event *StudyEvent) {
	e := l.logger.Info()
	if !event.Success {
		e = l.logger.Warn()
	}
	e = e.Str("event", event.Event)

	if event.Success {
		e = e.Str("status", "success")
	} else {
		e = e.Str("status", "failed")
	}

	if requestID := RequestIDFromContext(ctx); requestID != "" {
		e = e.Str("request_id", requestID)
	}
	if event.SessionID != "" {
		e = e.Str("session_id", SanitizeSessionID(event.SessionID))
	}
	if event.ArticleID != "" {
		e = e.Str("article_id", event.ArticleID)
	}
	if event.RecommendationID != "" {
		e = e.Str("recommendation_id", event.RecommendationID)
	}
	if event.IPAddress != "" {
		e = e.Str("ip", event.IPAddress)
	}
	if event.Error != "" && !event.Success {
		e = e.Str("error", truncateString(event.Error, 200))
	}
	for k, v := range event.Details {
		e = e.Str(k, SanitizeValue(k, v))
	}

	e.Msg("")
}

// LogRating logs a rating submission.
func (l *StudyLogger) LogRating(ctx context.Context, sessionID, articleID, recID, ip string, err error) {
	l.LogEvent(ctx, &StudyEvent{
		Event:            "rating_submitted",
		SessionID:        sessionID,
		ArticleID:        articleID,
		RecommendationID: recID,
		IPAddress:        ip,
		Success:          err == nil,
		Error:            errString(err),
	})
}

// LogSUS logs a questionnaire submission.
func (l *StudyLogger) LogSUS(ctx context.Context, sessionID, ip string, answered int, err error) {
	l.LogEvent(ctx, &StudyEvent{
		Event:     "sus_submitted",
		SessionID: sessionID,
		IPAddress: ip,
		Success:   err == nil,
		Error:     errString(err),
		Details: map[string]string{
			"answered": strconv.Itoa(answered),
		},
	})
}

// LogCompany logs a company affiliation submission. The company name
// itself is not logged.
func (l *StudyLogger) LogCompany(ctx context.Context, sessionID, ip string, err error) {
	l.LogEvent(ctx, &StudyEvent{
		Event:     "company_submitted",
		SessionID: sessionID,
		IPAddress: ip,
		Success:   err == nil,
		Error:     errString(err),
	})
}

// LogSessionStarted logs the creation of a participant session.
func (l *StudyLogger) LogSessionStarted(ctx context.Context, sessionID, ip string) {
	l.LogEvent(ctx, &StudyEvent{
		Event:     "session_started",
		SessionID: sessionID,
		IPAddress: ip,
		Success:   true,
	})
}

// SanitizeSessionID masks a session ID.
// Example: "3f1c9a2e-0000-4000-8000-00000000b7d4" -> "3f1c...b7d4"
func SanitizeSessionID(sessionID string) string {
	if sessionID == "" {
		return ""
	}
	if len(sessionID) <= 12 {
		return "***"
	}
	return sessionID[:4] + "..." + sessionID[len(sessionID)-4:]
}

// SanitizeValue masks values whose key names a secret or identifier.
func SanitizeValue(key, value string) string {
	switch strings.ToLower(key) {
	case "secret", "secret_key", "password", "token", "cookie", "session", "session_id", "sessionid":
		return SanitizeSessionID(value)
	}
	return value
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

// truncateString truncates a string to a maximum length.
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
