// Recstudy - News Recommendation Expert Study
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recstudy

package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/tomtom215/recstudy/internal/feedback"
	"github.com/tomtom215/recstudy/internal/logging"
	"github.com/tomtom215/recstudy/internal/metrics"
	"github.com/tomtom215/recstudy/internal/models"
	"github.com/tomtom215/recstudy/internal/validation"
)

// SubmitFeedback stores one rating of one recommendation.
func (h *Handler) SubmitFeedback(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	if f := h.storeRating(w, r); f != nil {
		f.respond(w)
		return
	}
	respondSuccess(w, http.StatusOK, models.StatusResponse{Status: "success"}, start)
}

func (h *Handler) storeRating(w http.ResponseWriter, r *http.Request) *failure {
	state, f := requireSession(r)
	if f != nil {
		return f
	}

	var req models.FeedbackRequest
	if f := decodeJSON(w, r, &req); f != nil {
		return f
	}
	if f := validateRequest(&req); f != nil {
		return f
	}

	entry := feedback.Entry{
		Rating:    string(req.Rating),
		Comment:   req.Comment,
		Timestamp: feedback.Timestamp(time.Now().UTC()),
	}
	err := h.feedback.UpsertRating(r.Context(), state.ID, req.ArticleID, req.RecommendationID, entry)
	metrics.RecordFeedbackWrite("rating", err)
	h.events.LogRating(r.Context(), state.ID, req.ArticleID, req.RecommendationID, r.RemoteAddr, err)
	if err != nil {
		return storeFailure(err)
	}
	return nil
}

// SUSStatus reports whether the questionnaire is unlocked and answered.
func (h *Handler) SUSStatus(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	state, f := requireSession(r)
	if f != nil {
		f.respond(w)
		return
	}

	record, err := h.findRecord(r, state.ID)
	if err != nil {
		storeFailure(err).respond(w)
		return
	}

	count := record.RatingCount()
	threshold := h.config.Study.RatingThreshold
	respondSuccess(w, http.StatusOK, models.SUSStatusResponse{
		Questions:   susQuestions(),
		Submitted:   record != nil && record.SUSFeedback != nil,
		RatingCount: count,
		Threshold:   threshold,
		SUSUnlocked: count >= threshold,
	}, start)
}

// SubmitSUS stores the questionnaire and demographics, then refreshes the
// JSONL export unless one ran recently. Accepts JSON or the HTML form
// fields age, gender and sus_question1..sus_question10.
func (h *Handler) SubmitSUS(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	if f := h.storeSUS(w, r); f != nil {
		f.respond(w)
		return
	}
	respondSuccess(w, http.StatusOK, models.StatusResponse{
		Status:  "success",
		Message: susThankYou,
	}, start)
}

// susThankYou is the confirmation shown to participants.
const susThankYou = "Takk for at du svarte på undersøkelsen!"

func (h *Handler) storeSUS(w http.ResponseWriter, r *http.Request) *failure {
	state, f := requireSession(r)
	if f != nil {
		return f
	}

	var req models.SUSRequest
	if isForm(r) {
		if f := parseSUSForm(w, r, &req); f != nil {
			return f
		}
	} else if f := decodeJSON(w, r, &req); f != nil {
		return f
	}
	if f := validateRequest(&req); f != nil {
		h.events.LogSUS(r.Context(), state.ID, r.RemoteAddr, len(req.Responses), errInvalidSUS)
		return f
	}

	responses := make(map[string]string, len(req.Responses))
	for k, v := range req.Responses {
		responses[k] = string(v)
	}
	sus := feedback.SUS{
		Timestamp: feedback.Timestamp(time.Now().UTC()),
		Age:       req.Age,
		Gender:    req.Gender,
		Responses: responses,
	}

	err := h.feedback.UpsertSUS(r.Context(), state.ID, sus)
	metrics.RecordFeedbackWrite("sus", err)
	h.events.LogSUS(r.Context(), state.ID, r.RemoteAddr, len(responses), err)
	if err != nil {
		return storeFailure(err)
	}

	h.refreshExport(r.Context())
	return nil
}

// refreshExport runs a throttled dump. Export failures never fail the
// participant's submission.
func (h *Handler) refreshExport(ctx context.Context) {
	if h.exporter == nil {
		return
	}
	if _, err := h.exporter.DumpThrottled(ctx); err != nil {
		logging.Ctx(ctx).Error().Err(err).Str("path", h.exporter.Path()).Msg("Feedback export after SUS failed")
	}
}

func parseSUSForm(w http.ResponseWriter, r *http.Request, req *models.SUSRequest) *failure {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		return badRequest("Invalid form body")
	}

	req.Age = r.PostForm.Get("age")
	req.Gender = r.PostForm.Get("gender")
	req.Responses = make(map[string]models.Likert, validation.SUSQuestionCount)
	for _, key := range susQuestions() {
		if v := r.PostForm.Get(key); v != "" {
			req.Responses[key] = models.Likert(v)
		}
	}
	return nil
}

func susQuestions() []string {
	keys := make([]string, validation.SUSQuestionCount)
	for i := range keys {
		keys[i] = validation.SUSQuestionPrefix + strconv.Itoa(i+1)
	}
	return keys
}

// RatingCount returns how many recommendations the session has rated and
// whether the questionnaire is unlocked.
func (h *Handler) RatingCount(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	count, f := h.ratingCount(r)
	if f != nil {
		f.respond(w)
		return
	}
	threshold := h.config.Study.RatingThreshold
	respondSuccess(w, http.StatusOK, models.RatingCountResponse{
		Count:       count,
		Threshold:   threshold,
		SUSUnlocked: count >= threshold,
	}, start)
}

func (h *Handler) ratingCount(r *http.Request) (int, *failure) {
	state, f := requireSession(r)
	if f != nil {
		return 0, f
	}
	record, err := h.findRecord(r, state.ID)
	if err != nil {
		return 0, storeFailure(err)
	}
	return record.RatingCount(), nil
}

// UserFeedback returns the session's stored ratings. With ?article_id= only
// the ratings of that article are returned, keyed by recommendation ID.
func (h *Handler) UserFeedback(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	resp, f := h.userFeedback(r)
	if f != nil {
		f.respond(w)
		return
	}
	respondSuccess(w, http.StatusOK, resp, start)
}

func (h *Handler) userFeedback(r *http.Request) (*models.UserFeedbackResponse, *failure) {
	state, f := requireSession(r)
	if f != nil {
		return nil, f
	}
	record, err := h.findRecord(r, state.ID)
	if err != nil {
		return nil, storeFailure(err)
	}

	resp := &models.UserFeedbackResponse{
		Feedback: map[string]map[string]feedback.Entry{},
		Count:    record.RatingCount(),
	}
	if articleID := r.URL.Query().Get("article_id"); articleID != "" {
		ratings := record.ArticleFeedback(articleID)
		resp.Feedback[articleID] = ratings
		resp.Count = len(ratings)
	} else if record != nil && record.Feedback != nil {
		resp.Feedback = record.Feedback
	}
	return resp, nil
}

// StoreCompany records the participant's company.
func (h *Handler) StoreCompany(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	if f := h.storeCompany(w, r); f != nil {
		f.respond(w)
		return
	}
	respondSuccess(w, http.StatusOK, models.StatusResponse{Status: "success"}, start)
}

func (h *Handler) storeCompany(w http.ResponseWriter, r *http.Request) *failure {
	state, f := requireSession(r)
	if f != nil {
		return f
	}

	var req models.CompanyRequest
	if isForm(r) {
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		if err := r.ParseForm(); err != nil {
			return badRequest("Invalid form body")
		}
		req.Company = r.PostForm.Get("company")
	} else if f := decodeJSON(w, r, &req); f != nil {
		return f
	}
	if f := validateRequest(&req); f != nil {
		return f
	}

	err := h.feedback.SetCompany(r.Context(), state.ID, req.Company)
	metrics.RecordFeedbackWrite("company", err)
	h.events.LogCompany(r.Context(), state.ID, r.RemoteAddr, err)
	if err != nil {
		return storeFailure(err)
	}
	return nil
}
