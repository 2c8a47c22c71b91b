// Recstudy - News Recommendation Expert Study
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recstudy

// Package storage opens the persistence backends selected by the storage
// section of the configuration. The server and the recstudy CLI share it so
// both read the same feedback collection.
package storage
