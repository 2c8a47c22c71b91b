// Recstudy - News Recommendation Expert Study
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recstudy

package feedback

import (
	"context"
)

// Store persists feedback records. Every write is an upsert scoped to a
// single session and is atomic for that session.
type Store interface {
	// UpsertRating sets feedback[articleID][recID] = entry.
	UpsertRating(ctx context.Context, sessionID, articleID, recID string, entry Entry) error

	// UpsertSUS replaces the session's questionnaire answers.
	UpsertSUS(ctx context.Context, sessionID string, sus SUS) error

	// SetCompany records the participant's company.
	SetCompany(ctx context.Context, sessionID, company string) error

	// Find returns the record of a session, or ErrRecordNotFound.
	Find(ctx context.Context, sessionID string) (*Record, error)

	// Each calls fn for every stored record until fn returns an error.
	Each(ctx context.Context, fn func(*Record) error) error

	// Ping checks that the backend is reachable.
	Ping(ctx context.Context) error

	// Close releases backend resources.
	Close(ctx context.Context) error
}

// Backend names accepted by configuration.
const (
	BackendBadger = "badger"
	BackendMongo  = "mongo"
)

func validateIDs(sessionID string, keys ...string) error {
	if sessionID == "" {
		return ErrInvalidKey
	}
	for _, k := range keys {
		if err := ValidateKey(k); err != nil {
			return err
		}
	}
	return nil
}
