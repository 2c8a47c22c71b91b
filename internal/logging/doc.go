// Recstudy - News Recommendation Expert Study
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recstudy

// Package logging provides centralized zerolog-based structured logging for Recstudy.
//
// # Overview
//
// The package provides:
//   - A global zerolog logger configured once from main
//   - JSON output for production and console output for development
//   - Context-aware logging carrying request, correlation and session IDs
//   - A study event logger for participant submissions
//   - An slog adapter for the suture supervisor hook
//
// # Quick Start
//
//	logging.Init(logging.Config{
//	    Level:  "info",
//	    Format: "json",
//	})
//
//	logging.Info().Str("addr", addr).Msg("Server starting")
//	logging.Ctx(ctx).Warn().Err(err).Msg("Feedback write failed")
//
// # Session IDs
//
// Session IDs are participant identifiers. Ctx and the StudyLogger only ever
// emit them masked by SanitizeSessionID, so raw IDs never reach log files.
//
// # Best Practices
//
// Always terminate log chains with .Msg() or .Send():
//
//	logging.Info().Str("key", "value").Msg("message")  // Correct
//	logging.Info().Str("key", "value")                 // WRONG - log not emitted
package logging
