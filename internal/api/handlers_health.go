// Recstudy - News Recommendation Expert Study
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recstudy

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/tomtom215/recstudy/internal/logging"
	"github.com/tomtom215/recstudy/internal/metrics"
	"github.com/tomtom215/recstudy/internal/models"
)

// readyTimeout bounds the feedback store ping of the readiness probe.
const readyTimeout = 2 * time.Second

func (h *Handler) health(status string) models.HealthResponse {
	uptime := time.Since(h.startTime).Seconds()
	metrics.AppUptime.Set(uptime)
	return models.HealthResponse{
		Status:         status,
		Version:        h.version,
		Uptime:         uptime,
		Articles:       len(h.articles.Reference()),
		CatalogSize:    len(h.articles.Catalog()),
		StorageBackend: h.config.Storage.Backend,
	}
}

// HealthLive handles liveness probe requests (Kubernetes-style)
// Returns 200 OK if the process is alive, regardless of dependencies
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	respondSuccess(w, http.StatusOK, h.health("alive"), start)
}

// HealthReady handles readiness probe requests (Kubernetes-style)
// Returns 200 OK only if articles are loaded and the feedback store answers.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
	defer cancel()

	resp := h.health("ready")
	resp.Checks = map[string]string{"articles": "ok", "feedback_store": "ok"}
	ready := true

	if resp.Articles == 0 {
		resp.Checks["articles"] = "no study articles loaded"
		ready = false
	}
	if err := h.feedback.Ping(ctx); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Msg("Readiness check: feedback store unreachable")
		resp.Checks["feedback_store"] = "unreachable"
		ready = false
	}

	if !ready {
		resp.Status = "not_ready"
		respondJSON(w, http.StatusServiceUnavailable, &models.APIResponse{
			Status: "error",
			Data:   resp,
			Metadata: models.Metadata{
				Timestamp:   time.Now().UTC(),
				QueryTimeMS: time.Since(start).Milliseconds(),
			},
			Error: &models.APIError{
				Code:    ErrCodeServiceUnavailable,
				Message: "Service is not ready",
			},
		})
		return
	}
	respondSuccess(w, http.StatusOK, resp, start)
}
