// Recstudy - News Recommendation Expert Study
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recstudy

package progress

import (
	"errors"
	"fmt"
	"testing"
)

type countMap map[string]int

func (c countMap) RatedCount(id string) int { return c[id] }

func sequence(n int) []string {
	ids := make([]string, n)
	for i := range ids {
		ids[i] = fmt.Sprintf("a%02d", i)
	}
	return ids
}

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		rated int
		want  State
	}{
		{0, None},
		{1, Partial},
		{4, Partial},
		{5, Full},
		{7, Full},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("rated_%d", tt.rated), func(t *testing.T) {
			t.Parallel()

			states := Classify(countMap{"x": tt.rated}, []string{"x"})
			if states[0].State != tt.want {
				t.Errorf("Classify(%d ratings) = %s, want %s", tt.rated, states[0].State, tt.want)
			}
		})
	}
}

func TestClassify_NilRatings(t *testing.T) {
	t.Parallel()

	states := Classify(nil, []string{"a", "b"})
	for _, s := range states {
		if s.State != None {
			t.Errorf("state of %s = %s, want none", s.ID, s.State)
		}
	}
}

func TestWindowFor(t *testing.T) {
	t.Parallel()

	seq := sequence(20)

	tests := []struct {
		name        string
		ratings     countMap
		current     string
		wantLen     int
		wantLast    int
		wantCurrent int
	}{
		{"nothing rated", countMap{}, "a00", 10, -1, 0},
		{"progress at 3", countMap{"a03": 2}, "a03", 14, 3, 3},
		{"current beyond bound", countMap{}, "a15", 16, -1, 15},
		{"window clipped at end", countMap{"a15": 5}, "a02", 20, 15, 2},
		{"last progressed wins over earlier", countMap{"a01": 5, "a05": 1}, "a00", 16, 5, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			w, err := Compute(tt.ratings, seq, tt.current)
			if err != nil {
				t.Fatalf("Compute() error = %v", err)
			}
			if len(w.Visible) != tt.wantLen {
				t.Errorf("visible = %d articles, want %d", len(w.Visible), tt.wantLen)
			}
			if w.LastProgressedIndex != tt.wantLast {
				t.Errorf("LastProgressedIndex = %d, want %d", w.LastProgressedIndex, tt.wantLast)
			}
			if w.CurrentIndex != tt.wantCurrent {
				t.Errorf("CurrentIndex = %d, want %d", w.CurrentIndex, tt.wantCurrent)
			}
			if w.Visible[0].ID != "a00" {
				t.Errorf("window must start at the first article, got %s", w.Visible[0].ID)
			}
		})
	}
}

func TestWindowFor_ShortSequence(t *testing.T) {
	t.Parallel()

	w, err := Compute(countMap{}, sequence(4), "a01")
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}
	if len(w.Visible) != 4 {
		t.Errorf("visible = %d, want the whole sequence", len(w.Visible))
	}
}

func TestWindowFor_NotInSequence(t *testing.T) {
	t.Parallel()

	_, err := Compute(countMap{}, sequence(5), "missing")
	if !errors.Is(err, ErrArticleNotInSequence) {
		t.Errorf("error = %v, want ErrArticleNotInSequence", err)
	}

	_, err = WindowFor(nil, "a00")
	if !errors.Is(err, ErrArticleNotInSequence) {
		t.Errorf("empty sequence error = %v, want ErrArticleNotInSequence", err)
	}
}
