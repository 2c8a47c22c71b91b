// Recstudy - News Recommendation Expert Study
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recstudy

package articles

import (
	"time"
)

// MissingImageURL is shown for articles without related media links.
const MissingImageURL = "https://yt3.googleusercontent.com/-3Tg8kiLkkT7m1KZ8GhKP9Q8l0ar2xPCipW1Fpqrf0ZstSP1iejX5arX7HrBl2vmho4phtQ0=s900-c-k-c0x00ffffff-no-rj"

// Table identifies one of the two source tables.
type Table int

const (
	// Reference is the small curated study set with precomputed recommendations.
	Reference Table = iota
	// Catalog is the full set of candidate articles.
	Catalog
)

func (t Table) String() string {
	switch t {
	case Reference:
		return "reference"
	case Catalog:
		return "catalog"
	default:
		return "unknown"
	}
}

// Result is one precomputed recommendation result tuple:
// (llm_rating, _, recommended_id, similarity_score, _, explanation).
type Result struct {
	LLMRating     *float64
	RecommendedID string
	Score         float64
	Explanation   string
}

// Record is one parsed row of a source table. String fields hold the raw
// cell text; list fields are already decoded.
type Record struct {
	ID                           string
	Title                        string
	LeadText                     string
	BodyText                     string
	AllText                      string
	URL                          string
	Section                      string
	Byline                       []string
	Tags                         []string
	CreationDate                 string
	LastModified                 string
	CreationTime                 string
	RelatedMediaLinks            []string
	RelatedArticles              []string
	CleanedRelatedArticles       []string
	RelatedArticlesCounts        int
	NumberCleanedRelatedArticles int

	// Reference table only.
	Recommendations        []string
	RecommendationsResults []Result
	GroundTruth            string
	RecallAt5              *float64
	PrecisionAt5           *float64
	MAPAt5                 *float64
}

// Article is the unified view of an article served to callers.
type Article struct {
	ID                           string     `json:"uuid"`
	Found                        bool       `json:"found"`
	Title                        string     `json:"title"`
	LeadText                     string     `json:"lead_text"`
	BodyText                     string     `json:"body_text"`
	AllText                      string     `json:"all_text"`
	URL                          string     `json:"url"`
	Section                      string     `json:"section"`
	ImageURL                     string     `json:"image_url"`
	Byline                       []string   `json:"byline"`
	Tags                         []string   `json:"tags"`
	CreationDate                 *time.Time `json:"creation_date"`
	LastModified                 *time.Time `json:"last_modified"`
	CreationTime                 string     `json:"creation_time,omitempty"`
	RelatedMediaLinks            []string   `json:"related_media_links"`
	RelatedArticles              []string   `json:"related_articles"`
	CleanedRelatedArticles       []string   `json:"cleaned_related_articles"`
	RelatedArticlesCounts        int        `json:"related_articles_counts"`
	NumberCleanedRelatedArticles int        `json:"number_cleaned_related_articles"`

	Recommendations []string `json:"recommendations,omitempty"`
	GroundTruth     string   `json:"ground_truth,omitempty"`
	RecallAt5       *float64 `json:"recall_at_5,omitempty"`
	PrecisionAt5    *float64 `json:"precision_at_5,omitempty"`
	MAPAt5          *float64 `json:"map_at_5,omitempty"`
}

// Placeholder returns the article shown for an identifier that exists in
// neither table.
func Placeholder(id string) Article {
	return Article{
		ID:                     id,
		Title:                  "Article " + id + " Not Found",
		ImageURL:               MissingImageURL,
		Byline:                 []string{},
		Tags:                   []string{},
		RelatedMediaLinks:      []string{},
		RelatedArticles:        []string{},
		CleanedRelatedArticles: []string{},
	}
}

// ToArticle converts a single record into an article view.
func (r *Record) ToArticle() Article {
	a := Article{
		ID:                           r.ID,
		Found:                        true,
		Title:                        r.Title,
		LeadText:                     r.LeadText,
		BodyText:                     r.BodyText,
		AllText:                      r.AllText,
		URL:                          r.URL,
		Section:                      r.Section,
		Byline:                       nonNil(r.Byline),
		Tags:                         nonNil(r.Tags),
		CreationDate:                 ParseTimestamp(r.CreationDate),
		LastModified:                 ParseTimestamp(r.LastModified),
		CreationTime:                 r.CreationTime,
		RelatedMediaLinks:            nonNil(r.RelatedMediaLinks),
		RelatedArticles:              nonNil(r.RelatedArticles),
		CleanedRelatedArticles:       nonNil(r.CleanedRelatedArticles),
		RelatedArticlesCounts:        r.RelatedArticlesCounts,
		NumberCleanedRelatedArticles: r.NumberCleanedRelatedArticles,
		Recommendations:              r.Recommendations,
		GroundTruth:                  r.GroundTruth,
		RecallAt5:                    r.RecallAt5,
		PrecisionAt5:                 r.PrecisionAt5,
		MAPAt5:                       r.MAPAt5,
	}
	a.ImageURL = imageURL(a.RelatedMediaLinks)
	return a
}

func imageURL(links []string) string {
	if len(links) > 0 && links[0] != "" {
		return links[0]
	}
	return MissingImageURL
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
