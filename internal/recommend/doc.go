// Recstudy - News Recommendation Expert Study
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recstudy

// Package recommend serves the precomputed recommendation lists that study
// participants evaluate.
//
// Recommendations are not computed here. Each reference article carries a
// ranked list of catalog ids together with result tuples produced offline
// (model rating, similarity score, explanation). The Engine joins the two:
//
//   - list order is the ranking and is preserved exactly
//   - each id is resolved against the catalog, unknown ids become
//     placeholder articles
//   - the result tuple is matched on its recommended id; a recommendation
//     without a tuple keeps zero values and is logged at debug level
//   - RecommendationAge is the humanized distance between the two
//     creation dates, e.g. "3 days" or "2 months"
//
// Missed returns the curated related articles that did not make it into the
// list, which participants use to judge recall.
//
// # Usage
//
//	engine := recommend.NewEngine(store, logging.Logger())
//	for _, v := range engine.Recommend(articleID) {
//	    fmt.Println(v.Title, v.SimilarityScore)
//	}
//
// # Thread Safety
//
// The Engine is safe for concurrent use. Lists are memoized per reference
// id; concurrent misses may build the same list twice, which is harmless
// because the source tables never change.
package recommend
