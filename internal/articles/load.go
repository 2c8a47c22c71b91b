// Recstudy - News Recommendation Expert Study
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recstudy

package articles

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// ErrMissingIDColumn is returned when a table has no uuid column.
var ErrMissingIDColumn = errors.New("missing required column \"uuid\"")

// idColumn is the identifier column of both source tables.
const idColumn = "uuid"

// columnAliases maps header spellings seen in exports to canonical names.
var columnAliases = map[string]string{
	"recommendations results": "recommendations_results",
}

// table is an immutable, id-indexed source table.
type table struct {
	kind Table
	rows []*Record
	byID map[string]*Record
}

func (t *table) find(id string) (*Record, bool) {
	if t == nil {
		return nil, false
	}
	r, ok := t.byID[id]
	return r, ok
}

// readTable reads a CSV export into a table. Duplicate identifiers keep the
// first row.
func readTable(kind Table, src io.Reader) (*table, int, error) {
	reader := csv.NewReader(src)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.ReuseRecord = false

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, 0, fmt.Errorf("%s table: %w", kind, ErrMissingIDColumn)
		}
		return nil, 0, fmt.Errorf("%s table: read header: %w", kind, err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		if alias, ok := columnAliases[name]; ok {
			name = alias
		}
		if _, dup := columns[name]; !dup {
			columns[name] = i
		}
	}
	if _, ok := columns[idColumn]; !ok {
		return nil, 0, fmt.Errorf("%s table: %w", kind, ErrMissingIDColumn)
	}

	t := &table{kind: kind, byID: make(map[string]*Record)}
	duplicates := 0
	line := 1
	for {
		fields, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, 0, fmt.Errorf("%s table: line %d: %w", kind, line, err)
		}

		row := rowReader{columns: columns, fields: fields}
		rec := row.record(kind)
		if rec.ID == "" {
			continue
		}
		if _, exists := t.byID[rec.ID]; exists {
			duplicates++
			continue
		}
		t.rows = append(t.rows, rec)
		t.byID[rec.ID] = rec
	}

	return t, duplicates, nil
}

// rowReader gives named access to a CSV row.
type rowReader struct {
	columns map[string]int
	fields  []string
}

func (r rowReader) text(name string) string {
	i, ok := r.columns[name]
	if !ok || i >= len(r.fields) {
		return ""
	}
	v := r.fields[i]
	if v == "nan" || v == "NaN" {
		return ""
	}
	return v
}

func (r rowReader) list(name string) []string {
	return stringList(r.text(name))
}

func (r rowReader) integer(name string) int {
	s := strings.TrimSpace(r.text(name))
	if s == "" {
		return 0
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return int(f)
	}
	return 0
}

func (r rowReader) optionalFloat(name string) *float64 {
	s := strings.TrimSpace(r.text(name))
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) {
		return nil
	}
	return &f
}

func (r rowReader) record(kind Table) *Record {
	rec := &Record{
		ID:                           strings.TrimSpace(r.text(idColumn)),
		Title:                        r.text("title"),
		LeadText:                     r.text("lead_text"),
		BodyText:                     r.text("body_text"),
		AllText:                      r.text("all_text"),
		URL:                          r.text("url"),
		Section:                      r.text("section"),
		Byline:                       r.list("byline"),
		Tags:                         r.list("tags"),
		CreationDate:                 r.text("creation_date"),
		LastModified:                 r.text("last_modified"),
		CreationTime:                 r.text("creation_time"),
		RelatedMediaLinks:            r.list("related_media_links"),
		RelatedArticles:              r.list("related_articles"),
		CleanedRelatedArticles:       r.list("cleaned_related_articles"),
		RelatedArticlesCounts:        r.integer("related_articles_counts"),
		NumberCleanedRelatedArticles: r.integer("number_cleaned_related_articles"),
	}

	if kind == Reference {
		rec.Recommendations = r.list("recommendations")
		rec.RecommendationsResults = parseResults(r.text("recommendations_results"))
		rec.GroundTruth = r.text("ground_truth")
		rec.RecallAt5 = r.optionalFloat("recall_at_5")
		rec.PrecisionAt5 = r.optionalFloat("precision_at_5")
		rec.MAPAt5 = r.optionalFloat("map_at_5")
	}
	return rec
}

// parseResults decodes the recommendations_results cell. Tuples shorter than
// four fields are skipped; a missing explanation stays empty.
func parseResults(raw string) []Result {
	items, err := parseListLiteral(raw)
	if err != nil {
		return []Result{}
	}

	results := make([]Result, 0, len(items))
	for _, item := range items {
		tuple, ok := item.([]any)
		if !ok || len(tuple) < 4 {
			continue
		}

		var res Result
		if s, ok := tuple[2].(string); ok {
			res.RecommendedID = s
		} else {
			res.RecommendedID = fmt.Sprint(tuple[2])
		}
		if score, ok := numberValue(tuple[3]); ok {
			res.Score = score
		}
		if rating, ok := numberValue(tuple[0]); ok {
			res.LLMRating = &rating
		}
		if len(tuple) > 5 {
			if s, ok := tuple[5].(string); ok {
				res.Explanation = s
			}
		}
		results = append(results, res)
	}
	return results
}
