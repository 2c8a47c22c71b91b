// Recstudy - News Recommendation Expert Study
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recstudy

// Package progress classifies how far a participant has come through the
// study sequence and computes which part of it the interface may reveal.
package progress

import (
	"errors"
	"fmt"
)

// ErrArticleNotInSequence is returned by WindowFor when the current article
// is not part of the session's article sequence.
var ErrArticleNotInSequence = errors.New("article not in session sequence")

// State is the completion state of one article.
type State string

const (
	// None means no recommendation of the article has been rated.
	None State = "none"
	// Partial means some, but fewer than RecommendationCap, are rated.
	Partial State = "partial"
	// Full means at least RecommendationCap recommendations are rated.
	Full State = "full"
)

const (
	// RecommendationCap is the number of recommendations shown per article.
	RecommendationCap = 5

	// Lookahead is how many articles past the last progressed one are revealed.
	Lookahead = 10
)

// Ratings reports how many recommendations of an article have been rated.
// A nil feedback record satisfies it by reporting zero everywhere.
type Ratings interface {
	RatedCount(articleID string) int
}

// ArticleState is one entry of a classified sequence.
type ArticleState struct {
	ID    string `json:"uuid"`
	State State  `json:"progress"`
}

// Window is the visible part of a classified sequence.
type Window struct {
	Visible             []ArticleState `json:"visible"`
	LastProgressedIndex int            `json:"last_progressed_index"`
	CurrentIndex        int            `json:"current_index"`
}

// Classify returns the completion state of every article in sequence.
func Classify(ratings Ratings, sequence []string) []ArticleState {
	states := make([]ArticleState, len(sequence))
	for i, id := range sequence {
		n := 0
		if ratings != nil {
			n = ratings.RatedCount(id)
		}
		states[i] = ArticleState{ID: id, State: stateFor(n)}
	}
	return states
}

func stateFor(rated int) State {
	switch {
	case rated <= 0:
		return None
	case rated >= RecommendationCap:
		return Full
	default:
		return Partial
	}
}

// WindowFor returns the revealed prefix of states. The prefix reaches
// Lookahead articles past the last progressed one, covers at least the first
// Lookahead articles, and always includes currentID.
func WindowFor(states []ArticleState, currentID string) (Window, error) {
	current := -1
	last := -1
	for i, s := range states {
		if s.ID == currentID && current < 0 {
			current = i
		}
		if s.State != None {
			last = i
		}
	}
	if current < 0 {
		return Window{}, fmt.Errorf("%w: %q", ErrArticleNotInSequence, currentID)
	}

	bound := min(Lookahead-1, len(states)-1)
	if last >= 0 {
		bound = min(last+Lookahead, len(states)-1)
	}
	bound = max(bound, current)

	return Window{
		Visible:             states[:bound+1],
		LastProgressedIndex: last,
		CurrentIndex:        current,
	}, nil
}

// Compute classifies sequence and returns the window around currentID.
func Compute(ratings Ratings, sequence []string, currentID string) (Window, error) {
	return WindowFor(Classify(ratings, sequence), currentID)
}
