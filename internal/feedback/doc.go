// Recstudy - News Recommendation Expert Study
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recstudy

// Package feedback stores participant ratings and questionnaire answers.
//
// Each session owns one Record:
//
//	{
//	  "session_id": "...",
//	  "feedback": {"<article>": {"<recommendation>": {"rating": "4", "comment": "", "timestamp": 1.7e9}}},
//	  "sus_feedback": {"timestamp": ..., "age": "...", "gender": "...", "sus_responses": {"sus_question1": "4", ...}},
//	  "company": "..."
//	}
//
// Writes are upserts on a nested path, so a rating overwrites an earlier
// rating of the same recommendation and never touches other entries.
//
// Backends:
//   - BadgerStore: embedded, used for local runs and tests
//   - MongoStore: the "feedback" collection of the study deployment
//
// Remote backends are wrapped in a BreakerStore. Exporter writes all
// records as JSON Lines for analysis.
package feedback
