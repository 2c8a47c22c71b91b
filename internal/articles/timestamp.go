// Recstudy - News Recommendation Expert Study
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recstudy

package articles

import (
	"strings"
	"time"
)

// timestampLayouts are tried in order. Layouts without a zone are read as UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseTimestamp parses a dataset timestamp leniently. Empty, "NaT", "nan"
// and otherwise unparsable values give nil.
func ParseTimestamp(raw string) *time.Time {
	s := strings.TrimSpace(raw)
	switch strings.ToLower(s) {
	case "", "nat", "nan", "none", "null":
		return nil
	}

	if t, ok := parseLayouts(s); ok {
		return &t
	}

	// Some exports carry offsets the layouts above do not accept (e.g. "+0100").
	// The date part is still usable once the offset is stripped.
	if i := strings.LastIndex(s, "+"); i > 0 {
		if t, ok := parseLayouts(strings.TrimSpace(s[:i])); ok {
			return &t
		}
	}
	return nil
}

func parseLayouts(s string) (time.Time, bool) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			t = t.UTC()
			return t, true
		}
	}
	return time.Time{}, false
}
