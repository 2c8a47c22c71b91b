// Recstudy - News Recommendation Expert Study
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recstudy

/*
Package models defines the HTTP request and response shapes of the study API.

Key Components:

  - APIResponse: Standard response wrapper with Metadata and APIError
  - FeedbackRequest, SUSRequest, CompanyRequest: participant submissions
  - ArticlePageResponse, RecommendationPageResponse, CatalogueResponse: views
  - RatingCountResponse, StartResponse, ProgressResponse: study flow state
  - HealthResponse: liveness and readiness probes

Request types carry validate tags consumed by internal/validation. Likert
values decode from either a JSON string or a JSON number and are kept as the
decimal string, which is how the feedback store persists them.

Article data itself lives in internal/articles and recommendation views in
internal/recommend; the page responses embed those types directly.
*/
package models
