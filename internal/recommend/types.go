// Recstudy - News Recommendation Expert Study
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recstudy

package recommend

import (
	"github.com/tomtom215/recstudy/internal/articles"
)

// View is a recommended article enriched with its precomputed result data.
type View struct {
	articles.Article

	// SimilarityScore is the model score as an integer percentage in [0, 100].
	SimilarityScore int `json:"similarity_score"`

	// Explanation is the generated justification for the recommendation.
	Explanation string `json:"explanation"`

	// LLMRating is the model's own relevance rating, when present.
	LLMRating *float64 `json:"llm_rating"`

	// RecommendationAge is the coarse elapsed time between the creation of
	// the source and the recommended article, e.g. "3 days". Nil when either
	// creation date is unknown.
	RecommendationAge *string `json:"recommendation_age"`

	// Matched reports whether a result tuple existed for this recommendation.
	Matched bool `json:"-"`
}
