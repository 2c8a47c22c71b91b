// Recstudy - News Recommendation Expert Study
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recstudy

package feedback

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrRecordNotFound is returned when a session has no feedback record.
	ErrRecordNotFound = errors.New("feedback record not found")

	// ErrInvalidKey is returned for ids that cannot be used as nested
	// document keys.
	ErrInvalidKey = errors.New("invalid feedback key")
)

// Entry is one participant rating of one recommendation.
type Entry struct {
	Rating    string  `json:"rating" bson:"rating"`
	Comment   string  `json:"comment" bson:"comment"`
	Timestamp float64 `json:"timestamp" bson:"timestamp"`
}

// SUS is the System Usability Scale questionnaire with demographics.
type SUS struct {
	Timestamp float64           `json:"timestamp" bson:"timestamp"`
	Age       string            `json:"age" bson:"age"`
	Gender    string            `json:"gender" bson:"gender"`
	Responses map[string]string `json:"sus_responses" bson:"sus_responses"`
}

// Record is the feedback document of one session.
type Record struct {
	SessionID   string                      `json:"session_id" bson:"session_id"`
	Feedback    map[string]map[string]Entry `json:"feedback,omitempty" bson:"feedback,omitempty"`
	SUSFeedback *SUS                        `json:"sus_feedback,omitempty" bson:"sus_feedback,omitempty"`
	Company     string                      `json:"company,omitempty" bson:"company,omitempty"`
}

// RatingCount returns the number of rated recommendations across all
// articles. A nil record counts zero.
func (r *Record) RatingCount() int {
	if r == nil {
		return 0
	}
	n := 0
	for _, recs := range r.Feedback {
		n += len(recs)
	}
	return n
}

// RatedCount returns the number of rated recommendations of one article.
func (r *Record) RatedCount(articleID string) int {
	if r == nil {
		return 0
	}
	return len(r.Feedback[articleID])
}

// ArticleFeedback returns the ratings of one article, never nil.
func (r *Record) ArticleFeedback(articleID string) map[string]Entry {
	if r == nil || r.Feedback[articleID] == nil {
		return map[string]Entry{}
	}
	return r.Feedback[articleID]
}

// setRating stores e under articleID/recID, creating maps as needed.
func (r *Record) setRating(articleID, recID string, e Entry) {
	if r.Feedback == nil {
		r.Feedback = make(map[string]map[string]Entry)
	}
	if r.Feedback[articleID] == nil {
		r.Feedback[articleID] = make(map[string]Entry)
	}
	r.Feedback[articleID][recID] = e
}

// Timestamp returns t as fractional Unix seconds in UTC, the format stored
// with every entry.
func Timestamp(t time.Time) float64 {
	return float64(t.Unix()) + float64(t.Nanosecond())/float64(time.Second)
}

// ValidateKey rejects ids that would break nested document paths.
func ValidateKey(id string) error {
	if id == "" || strings.ContainsAny(id, ".$") || strings.ContainsRune(id, 0) {
		return fmt.Errorf("%w: %q", ErrInvalidKey, id)
	}
	return nil
}
