// Recstudy - News Recommendation Expert Study
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recstudy

package articles

import (
	"errors"
	"reflect"
	"testing"
)

func TestParseListLiteral(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want []any
	}{
		{"empty list", "[]", []any{}},
		{"single quoted strings", "['a', 'b']", []any{"a", "b"}},
		{"double quoted strings", `["a", "b"]`, []any{"a", "b"}},
		{"mixed quotes with apostrophe", `["Ola's", 'x']`, []any{"Ola's", "x"}},
		{"escaped quote", `['it\'s']`, []any{"it's"}},
		{"unicode", "['Bjørn Ålesund']", []any{"Bjørn Ålesund"}},
		{"unicode escape", `['\u00e6\x41']`, []any{"æA"}},
		{"numbers", "[1, -2, 0.5, 1e-3]", []any{int64(1), int64(-2), 0.5, 0.001}},
		{"keywords", "[True, False, None]", []any{true, false, nil}},
		{"trailing comma", "['a',]", []any{"a"}},
		{"tuple", "[(4, 'x', 'id', 0.83)]", []any{[]any{int64(4), "x", "id", 0.83}}},
		{"nested list", "[[1, 2], []]", []any{[]any{int64(1), int64(2)}, []any{}}},
		{"surrounding whitespace", "  [ 'a' ]  ", []any{"a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := parseListLiteral(tt.raw)
			if err != nil {
				t.Fatalf("parseListLiteral(%q) error = %v", tt.raw, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("parseListLiteral(%q) = %#v, want %#v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestParseListLiteral_Invalid(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"",
		"a, b",
		"('a', 'b')",
		"['a'",
		"['a' 'b']",
		"['unterminated]",
		"[nan]",
		"[np.float64(0.5)]",
		"['a'] trailing",
		"{'k': 'v'}",
	}

	for _, raw := range inputs {
		if _, err := parseListLiteral(raw); !errors.Is(err, ErrInvalidLiteral) {
			t.Errorf("parseListLiteral(%q) error = %v, want ErrInvalidLiteral", raw, err)
		}
	}
}

func TestStringList(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw  string
		want []string
	}{
		{"['a', 'b']", []string{"a", "b"}},
		{"[1, 'b', None]", []string{"1", "b"}},
		{"not a list", []string{}},
		{"", []string{}},
		{"['broken", []string{}},
	}

	for _, tt := range tests {
		got := stringList(tt.raw)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("stringList(%q) = %#v, want %#v", tt.raw, got, tt.want)
		}
	}
}

func TestParseResults(t *testing.T) {
	t.Parallel()

	raw := `[(4, 'x', 'cat-1', 0.834, 1, 'Same topic'), ('3', None, 'cat-2', 0.5, 2, "Author's pick"), (1, 2), (None, 'x', 'cat-3', 0.1)]`
	got := parseResults(raw)

	if len(got) != 3 {
		t.Fatalf("len(parseResults) = %d, want 3", len(got))
	}

	if got[0].RecommendedID != "cat-1" || got[0].Score != 0.834 || got[0].Explanation != "Same topic" {
		t.Errorf("first result = %+v", got[0])
	}
	if got[0].LLMRating == nil || *got[0].LLMRating != 4 {
		t.Errorf("first result LLMRating = %v, want 4", got[0].LLMRating)
	}

	if got[1].LLMRating == nil || *got[1].LLMRating != 3 {
		t.Errorf("numeric string rating should parse, got %v", got[1].LLMRating)
	}
	if got[1].Explanation != "Author's pick" {
		t.Errorf("second explanation = %q", got[1].Explanation)
	}

	if got[2].LLMRating != nil {
		t.Errorf("None rating should be nil, got %v", *got[2].LLMRating)
	}
	if got[2].Explanation != "" {
		t.Errorf("short tuple explanation = %q, want empty", got[2].Explanation)
	}

	if res := parseResults("garbage"); len(res) != 0 {
		t.Errorf("parseResults(garbage) = %v, want empty", res)
	}
}
