// Recstudy - News Recommendation Expert Study
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recstudy

package models

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/goccy/go-json"

	"github.com/tomtom215/recstudy/internal/articles"
	"github.com/tomtom215/recstudy/internal/feedback"
	"github.com/tomtom215/recstudy/internal/recommend"
)

// Likert is a 1..5 answer. Forms post it as a string and scripts often as a
// number, so both JSON encodings are accepted; it is stored as the string.
type Likert string

// UnmarshalJSON accepts "4" and 4.
func (l *Likert) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*l = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*l = Likert(s)
		return nil
	}
	n, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return fmt.Errorf("likert value must be a string or number: %w", err)
	}
	*l = Likert(strconv.FormatFloat(n, 'f', -1, 64))
	return nil
}

// FeedbackRequest is one rating of one recommendation.
type FeedbackRequest struct {
	ArticleID        string `json:"article_id" validate:"required,max=128,feedbackkey"`
	RecommendationID string `json:"recommendation_id" validate:"required,max=128,feedbackkey"`
	Rating           Likert `json:"rating" validate:"required,likert"`
	Comment          string `json:"comment" validate:"max=5000"`
}

// SUSRequest is the System Usability Scale questionnaire with demographics.
// Responses must hold sus_question1 through sus_question10.
type SUSRequest struct {
	Age       string            `json:"age" validate:"max=32"`
	Gender    string            `json:"gender" validate:"max=64"`
	Responses map[string]Likert `json:"responses" validate:"len=10,dive,keys,susquestion,endkeys,likert"`
}

// CompanyRequest records the participant's employer.
type CompanyRequest struct {
	Company string `json:"company" validate:"required,max=200"`
}

// StatusResponse acknowledges a write.
type StatusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// RatingCountResponse reports how many ratings the session has submitted.
type RatingCountResponse struct {
	Count       int  `json:"count"`
	Threshold   int  `json:"threshold"`
	SUSUnlocked bool `json:"sus_unlocked"`
}

// StartResponse opens the predetermined flow.
type StartResponse struct {
	FirstArticle          string   `json:"first_article"`
	PredeterminedArticles []string `json:"predetermined_articles"`
}

// ProgressItem is one article of the visible progress bar.
type ProgressItem struct {
	UUID     string `json:"uuid"`
	Title    string `json:"title"`
	Progress string `json:"progress"`
}

// ProgressResponse is the visible progress window.
type ProgressResponse struct {
	Visible             []ProgressItem `json:"visible"`
	LastProgressedIndex int            `json:"last_progressed_index"`
	CurrentIndex        int            `json:"current_index"`
}

// ArticlePageResponse is everything the article view needs.
type ArticlePageResponse struct {
	Article               articles.Article   `json:"article"`
	Recommendations       []recommend.View   `json:"recommendations"`
	MissedArticles        []articles.Article `json:"missed_articles"`
	UsePredeterminedFlow  bool               `json:"use_predetermined_flow"`
	PredeterminedArticles []string           `json:"predetermined_articles"`
	Progress              *ProgressResponse  `json:"progress,omitempty"`
}

// RecommendationPageResponse is one recommendation next to its source.
type RecommendationPageResponse struct {
	Article        articles.Article `json:"article"`
	Recommendation recommend.View   `json:"recommendation"`
}

// CatalogueResponse lists the study articles.
type CatalogueResponse struct {
	Articles []articles.Listing `json:"articles"`
	Total    int                `json:"total"`
}

// SUSStatusResponse describes the questionnaire and whether this session
// may answer it yet.
type SUSStatusResponse struct {
	Questions   []string `json:"questions"`
	Submitted   bool     `json:"submitted"`
	RatingCount int      `json:"rating_count"`
	Threshold   int      `json:"threshold"`
	SUSUnlocked bool     `json:"sus_unlocked"`
}

// UserFeedbackResponse is the session's stored ratings, keyed by article ID
// then recommendation ID.
type UserFeedbackResponse struct {
	Feedback map[string]map[string]feedback.Entry `json:"feedback"`
	Count    int                                  `json:"count"`
}
