// Recstudy - News Recommendation Expert Study
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recstudy

// Package session tracks study participants across requests.
//
// A participant is identified by a session_id (uuid v4) carried in a signed
// cookie. The id keys a server-side State holding the participant's
// predetermined article ordering, which is a deterministic shuffle of the
// study articles seeded by the session id. The ordering is generated at
// most once and persisted, so progress tracking stays aligned with what the
// participant has already seen.
//
// Stores:
//   - BadgerStore: durable, survives restarts (production)
//   - MemoryStore: tests and development
package session
