// Recstudy - News Recommendation Expert Study
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recstudy

package recommend

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"

	"github.com/tomtom215/recstudy/internal/articles"
	"github.com/tomtom215/recstudy/internal/cache"
	"github.com/tomtom215/recstudy/internal/metrics"
)

// Engine resolves the precomputed recommendation lists of reference articles.
// It is safe for concurrent use.
type Engine struct {
	store  *articles.Store
	logger zerolog.Logger

	lists *cache.LRU[[]View]
}

// NewEngine creates an engine backed by store.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(store *articles.Store, logger zerolog.Logger) *Engine {
	return &Engine{
		store:  store,
		logger: logger.With().Str("component", "recommend").Logger(),
		lists:  cache.NewLRU[[]View](len(store.Reference()) + articles.MemoHeadroom),
	}
}

// Recommend returns the ranked recommendations of the reference article
// refID, in the order of its recommendations list. Unknown ids and articles
// without recommendations give an empty slice. Results are memoized; callers
// must not modify the returned slice.
func (e *Engine) Recommend(refID string) []View {
	if views, ok := e.lists.Get(refID); ok {
		metrics.RecordCacheLookup("recommendations", true)
		return views
	}
	metrics.RecordCacheLookup("recommendations", false)

	views := e.build(refID)
	e.lists.Add(refID, views)
	return views
}

func (e *Engine) build(refID string) []View {
	ref, ok := e.store.FindByID(articles.Reference, refID)
	if !ok || len(ref.Recommendations) == 0 {
		return []View{}
	}

	source := e.store.Resolve(refID)
	views := make([]View, 0, len(ref.Recommendations))
	for _, recID := range ref.Recommendations {
		view := View{Article: e.store.CatalogArticle(recID)}

		if res, found := findResult(ref.RecommendationsResults, recID); found {
			view.Matched = true
			view.SimilarityScore = similarity(res.Score)
			view.Explanation = res.Explanation
			view.LLMRating = res.LLMRating
		} else {
			e.logger.Debug().
				Str("article_id", refID).
				Str("recommendation_id", recID).
				Msg("No result tuple for recommendation")
		}

		view.RecommendationAge = age(view.CreationDate, source.CreationDate)
		views = append(views, view)
	}
	return views
}

// Find returns the recommendation recID of refID.
func (e *Engine) Find(refID, recID string) (View, bool) {
	for _, v := range e.Recommend(refID) {
		if v.ID == recID {
			return v, true
		}
	}
	return View{}, false
}

// Missed returns the related articles of refID that were not recommended,
// in related-articles order and without duplicates.
func (e *Engine) Missed(refID string) []articles.Article {
	source := e.store.Resolve(refID)
	if len(source.CleanedRelatedArticles) == 0 {
		return []articles.Article{}
	}

	seen := make(map[string]struct{})
	for _, v := range e.Recommend(refID) {
		seen[v.ID] = struct{}{}
	}

	missed := make([]articles.Article, 0, len(source.CleanedRelatedArticles))
	for _, id := range source.CleanedRelatedArticles {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		missed = append(missed, e.store.Resolve(id))
	}
	return missed
}

// CachedLists reports how many recommendation lists are memoized.
func (e *Engine) CachedLists() int {
	return e.lists.Len()
}

func findResult(results []articles.Result, recID string) (articles.Result, bool) {
	for _, r := range results {
		if r.RecommendedID == recID {
			return r, true
		}
	}
	return articles.Result{}, false
}

// similarity converts a [0, 1] score into a whole percentage. The score is
// first rounded to two decimals from its exact binary value (ties to even),
// so 0.835, stored just below the tie, gives 83. The final math.Round only
// absorbs float error in the scaling: 0.29*100 is 28.999999999999996.
func similarity(score float64) int {
	if math.IsNaN(score) || math.IsInf(score, 0) {
		return 0
	}
	rounded, err := strconv.ParseFloat(strconv.FormatFloat(score, 'f', 2, 64), 64)
	if err != nil {
		return 0
	}
	pct := int(math.Round(rounded * 100))
	switch {
	case pct < 0:
		return 0
	case pct > 100:
		return 100
	default:
		return pct
	}
}

// age formats the distance between two creation dates, e.g. "3 days".
func age(recommended, source *time.Time) *string {
	if recommended == nil || source == nil {
		return nil
	}
	s := strings.TrimSpace(humanize.RelTime(*recommended, *source, "", ""))
	return &s
}
