// Recstudy - News Recommendation Expert Study
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recstudy

// Package articles loads the study's article tables and resolves article ids
// into unified views.
//
// Two CSV exports are read once at startup:
//
//   - the reference table: the curated study set, carrying the precomputed
//     recommendations, their result tuples and retrieval metrics
//   - the catalog table: every candidate article that can be recommended
//
// List-shaped columns (byline, tags, related_articles, ...) are stored as
// Python list literals in the exports. They are decoded at load time; any
// cell that is not a well-formed list becomes an empty slice.
//
// # Resolution
//
// Store.Resolve never fails. An id present in both tables is merged field by
// field with the reference row taking precedence (see Merge). An id found in
// neither table yields Placeholder(id), whose title is "Article {id} Not Found".
// Resolved views are memoized in an LRU with room for every known id plus
// MemoHeadroom unknown ones; an evicted view is rebuilt identically.
//
// Usage:
//
//	store, err := articles.Load("data/reference.csv", "data/catalog.csv")
//	if err != nil {
//	    logging.Fatal().Err(err).Msg("Failed to load article tables")
//	}
//	article := store.Resolve(id)
package articles
