// Recstudy - News Recommendation Expert Study
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recstudy

package api

import (
	"net/http"
	"net/url"
	"slices"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/recstudy/internal/logging"
	"github.com/tomtom215/recstudy/internal/models"
	"github.com/tomtom215/recstudy/internal/progress"
	"github.com/tomtom215/recstudy/internal/session"
)

// Catalogue lists the study articles, newest first.
func (h *Handler) Catalogue(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	listing := h.articles.Catalogue()
	respondSuccess(w, http.StatusOK, models.CatalogueResponse{
		Articles: listing,
		Total:    len(listing),
	}, start)
}

// Start ensures the session's predetermined article order exists and
// returns it with the first article to show.
func (h *Handler) Start(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	order, f := h.ensureOrder(r)
	if f != nil {
		f.respond(w)
		return
	}
	respondSuccess(w, http.StatusOK, models.StartResponse{
		FirstArticle:          order[0],
		PredeterminedArticles: order,
	}, start)
}

// StartRedirect sends the participant to the first article of their order.
func (h *Handler) StartRedirect(w http.ResponseWriter, r *http.Request) {
	order, f := h.ensureOrder(r)
	if f != nil {
		f.respond(w)
		return
	}
	http.Redirect(w, r, "/api/v1/article/"+url.PathEscape(order[0]), http.StatusFound)
}

func (h *Handler) ensureOrder(r *http.Request) ([]string, *failure) {
	state, f := requireSession(r)
	if f != nil {
		return nil, f
	}

	ids := h.articles.ReferenceIDs()
	if len(ids) == 0 {
		return nil, &failure{status: http.StatusNotFound, code: ErrCodeNotFound, message: "No study articles loaded", err: ErrNoStudyArticles}
	}

	order, err := h.sessions.EnsureOrder(r.Context(), state, ids)
	if err != nil {
		return nil, &failure{status: http.StatusServiceUnavailable, code: ErrCodeServiceUnavailable, message: "Session state unavailable", err: err}
	}
	return order, nil
}

// Article returns an article with its recommendations, the related
// articles that were not recommended and, when the article is part of the
// session order, the progress window.
func (h *Handler) Article(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	state, f := requireSession(r)
	if f != nil {
		f.respond(w)
		return
	}

	articleID := chi.URLParam(r, "articleID")
	order := state.PredeterminedArticles
	if order == nil {
		order = []string{}
	}

	page := models.ArticlePageResponse{
		Article:               h.articles.Resolve(articleID),
		Recommendations:       h.engine.Recommend(articleID),
		MissedArticles:        h.engine.Missed(articleID),
		UsePredeterminedFlow:  h.config.Study.PredeterminedFlow,
		PredeterminedArticles: order,
	}

	if slices.Contains(order, articleID) {
		prog, f := h.progress(r, state, articleID)
		if f != nil {
			f.respond(w)
			return
		}
		page.Progress = prog
	}

	respondSuccess(w, http.StatusOK, page, start)
}

// progress computes the visible window of the session order. The window is
// decoration: when the feedback store is unreachable the page is served
// without it.
func (h *Handler) progress(r *http.Request, state *session.State, articleID string) (*models.ProgressResponse, *failure) {
	record, err := h.findRecord(r, state.ID)
	if err != nil {
		logging.Ctx(r.Context()).Warn().Err(err).Msg("Feedback unavailable, serving article without progress")
		return nil, nil
	}

	window, err := progress.Compute(record, state.PredeterminedArticles, articleID)
	if err != nil {
		return nil, sequenceFailure(err)
	}

	items := make([]models.ProgressItem, len(window.Visible))
	for i, s := range window.Visible {
		items[i] = models.ProgressItem{
			UUID:     s.ID,
			Title:    h.articles.Resolve(s.ID).Title,
			Progress: string(s.State),
		}
	}
	return &models.ProgressResponse{
		Visible:             items,
		LastProgressedIndex: window.LastProgressedIndex,
		CurrentIndex:        window.CurrentIndex,
	}, nil
}

// Recommendation returns one recommendation next to its source article.
func (h *Handler) Recommendation(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	articleID := chi.URLParam(r, "articleID")
	recID := chi.URLParam(r, "recommendationID")

	view, ok := h.engine.Find(articleID, recID)
	if !ok {
		respondError(w, http.StatusNotFound, ErrCodeNotFound, "Recommendation not found for this article", nil)
		return
	}

	respondSuccess(w, http.StatusOK, models.RecommendationPageResponse{
		Article:        h.articles.Resolve(articleID),
		Recommendation: view,
	}, start)
}
