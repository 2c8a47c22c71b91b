// Recstudy - News Recommendation Expert Study
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recstudy

package api

import (
	"net/http"
)

// The legacy study front end posts to un-prefixed paths and reads bare
// JSON objects rather than the response envelope. These handlers share the
// logic of their /api/v1 counterparts and only differ in the response
// shape.

var legacySuccess = map[string]string{"status": "success"}

// LegacyFeedback answers POST /feedback with {"status":"success"}.
func (h *Handler) LegacyFeedback(w http.ResponseWriter, r *http.Request) {
	if f := h.storeRating(w, r); f != nil {
		f.respondLegacy(w)
		return
	}
	respondJSON(w, http.StatusOK, legacySuccess)
}

// LegacySUS answers a form post with the plain-text thank-you page and a
// JSON post with {"status":"success"}.
func (h *Handler) LegacySUS(w http.ResponseWriter, r *http.Request) {
	form := isForm(r)
	if f := h.storeSUS(w, r); f != nil {
		if form {
			http.Error(w, f.message, f.status)
			return
		}
		f.respondLegacy(w)
		return
	}

	if form {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(susThankYou))
		return
	}
	respondJSON(w, http.StatusOK, legacySuccess)
}

// LegacyRatingCount answers GET /get_rating_count with {"count":n}.
func (h *Handler) LegacyRatingCount(w http.ResponseWriter, r *http.Request) {
	count, f := h.ratingCount(r)
	if f != nil {
		f.respondLegacy(w)
		return
	}
	respondJSON(w, http.StatusOK, map[string]int{"count": count})
}

// LegacyUserFeedback answers GET /get_user_feedback with the bare feedback map.
func (h *Handler) LegacyUserFeedback(w http.ResponseWriter, r *http.Request) {
	resp, f := h.userFeedback(r)
	if f != nil {
		f.respondLegacy(w)
		return
	}
	respondJSON(w, http.StatusOK, resp.Feedback)
}

// LegacyStoreCompany answers POST /store_company with {"status":"success"}.
func (h *Handler) LegacyStoreCompany(w http.ResponseWriter, r *http.Request) {
	if f := h.storeCompany(w, r); f != nil {
		f.respondLegacy(w)
		return
	}
	respondJSON(w, http.StatusOK, legacySuccess)
}
