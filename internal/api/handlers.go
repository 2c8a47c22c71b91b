// Recstudy - News Recommendation Expert Study
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recstudy

package api

import (
	"errors"
	"time"

	"github.com/tomtom215/recstudy/internal/articles"
	"github.com/tomtom215/recstudy/internal/config"
	"github.com/tomtom215/recstudy/internal/feedback"
	"github.com/tomtom215/recstudy/internal/logging"
	"github.com/tomtom215/recstudy/internal/recommend"
	"github.com/tomtom215/recstudy/internal/session"
)

// Handler contains dependencies for API handlers
//
// Handler methods are split across multiple files:
//   - handlers.go: Handler struct and constructor (this file)
//   - handlers_helpers.go: response and request helpers
//   - handlers_health.go: liveness and readiness probes
//   - handlers_articles.go: catalogue, start, article and recommendation views
//   - handlers_feedback.go: ratings, SUS questionnaire, company, counts
//   - handlers_legacy.go: response shapes expected by the legacy front end
type Handler struct {
	articles *articles.Store
	engine   *recommend.Engine
	sessions *session.Manager
	feedback feedback.Store
	exporter *feedback.Exporter
	events   *logging.StudyLogger

	config    *config.Config
	version   string
	startTime time.Time
}

// Dependencies groups everything a Handler needs. Exporter is optional; the
// other fields are required.
type Dependencies struct {
	Config   *config.Config
	Articles *articles.Store
	Engine   *recommend.Engine
	Sessions *session.Manager
	Feedback feedback.Store
	Exporter *feedback.Exporter
	Version  string
}

// NewHandler creates a new API handler.
//
// Example:
//
//	handler, err := api.NewHandler(api.Dependencies{
//	    Config:   cfg,
//	    Articles: store,
//	    Engine:   recommend.NewEngine(store, logging.Logger()),
//	    Sessions: sessions,
//	    Feedback: feedbackStore,
//	    Exporter: exporter,
//	})
//	router := api.NewRouter(handler, cfg)
//	srv := &http.Server{Handler: router.SetupChi()}
func NewHandler(deps Dependencies) (*Handler, error) {
	switch {
	case deps.Config == nil:
		return nil, errors.New("api: config is required")
	case deps.Articles == nil:
		return nil, errors.New("api: article store is required")
	case deps.Engine == nil:
		return nil, errors.New("api: recommendation engine is required")
	case deps.Sessions == nil:
		return nil, errors.New("api: session manager is required")
	case deps.Feedback == nil:
		return nil, errors.New("api: feedback store is required")
	}

	version := deps.Version
	if version == "" {
		version = "dev"
	}

	return &Handler{
		articles:  deps.Articles,
		engine:    deps.Engine,
		sessions:  deps.Sessions,
		feedback:  deps.Feedback,
		exporter:  deps.Exporter,
		events:    logging.NewStudyLogger(),
		config:    deps.Config,
		version:   version,
		startTime: time.Now(),
	}, nil
}
