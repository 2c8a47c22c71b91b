// Recstudy - News Recommendation Expert Study
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recstudy

package articles

// Merge combines the reference and catalog rows of the same article. Each
// field takes the reference value when it is set and falls back to the
// catalog value otherwise. Reference-only fields always come from ref.
func Merge(ref, cat *Record) *Record {
	if ref == nil {
		return cat
	}
	if cat == nil {
		return ref
	}

	return &Record{
		ID:                           ref.ID,
		Title:                        pickString(ref.Title, cat.Title),
		LeadText:                     pickString(ref.LeadText, cat.LeadText),
		BodyText:                     pickString(ref.BodyText, cat.BodyText),
		AllText:                      pickString(ref.AllText, cat.AllText),
		URL:                          pickString(ref.URL, cat.URL),
		Section:                      pickString(ref.Section, cat.Section),
		Byline:                       pickList(ref.Byline, cat.Byline),
		Tags:                         pickList(ref.Tags, cat.Tags),
		CreationDate:                 pickString(ref.CreationDate, cat.CreationDate),
		LastModified:                 pickString(ref.LastModified, cat.LastModified),
		CreationTime:                 pickString(ref.CreationTime, cat.CreationTime),
		RelatedMediaLinks:            pickList(ref.RelatedMediaLinks, cat.RelatedMediaLinks),
		RelatedArticles:              pickList(ref.RelatedArticles, cat.RelatedArticles),
		CleanedRelatedArticles:       pickList(ref.CleanedRelatedArticles, cat.CleanedRelatedArticles),
		RelatedArticlesCounts:        pickInt(ref.RelatedArticlesCounts, cat.RelatedArticlesCounts),
		NumberCleanedRelatedArticles: pickInt(ref.NumberCleanedRelatedArticles, cat.NumberCleanedRelatedArticles),

		Recommendations:        ref.Recommendations,
		RecommendationsResults: ref.RecommendationsResults,
		GroundTruth:            ref.GroundTruth,
		RecallAt5:              ref.RecallAt5,
		PrecisionAt5:           ref.PrecisionAt5,
		MAPAt5:                 ref.MAPAt5,
	}
}

func pickString(ref, cat string) string {
	if ref != "" {
		return ref
	}
	return cat
}

func pickList(ref, cat []string) []string {
	if len(ref) > 0 {
		return ref
	}
	return cat
}

func pickInt(ref, cat int) int {
	if ref != 0 {
		return ref
	}
	return cat
}
