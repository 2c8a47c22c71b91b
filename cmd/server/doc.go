// Recstudy - News Recommendation Expert Study
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recstudy

/*
Command server runs the news recommendation expert study.

Participants browse a fixed set of reference articles, each shown with the
recommendations a model produced for it, and rate every recommendation on a
1 to 5 scale. After enough ratings they fill in a System Usability Scale
questionnaire. Ratings and answers are stored per browser session.

# Startup

 1. Configuration: koanf (defaults, config.yaml, .env, environment)
 2. Logging: zerolog
 3. Article tables: both CSV files are loaded into memory; failure is fatal
 4. Storage: badger for sessions, badger or MongoDB for feedback
 5. Supervisor tree: HTTP server, badger GC and the optional periodic export

# Configuration

	HTTP_PORT=8080
	REFERENCE_CSV_PATH=data/combined_articles_recommendations.csv
	CATALOG_CSV_PATH=data/articles_big_dataset.csv
	STORAGE_BACKEND=badger              # or mongo
	BADGER_PATH=/data/recstudy
	MONGODB_URI=mongodb://mongo:27017/expert_study
	EXPERT_STUDY_SECRET_KEY=<32+ chars> # required
	RATING_THRESHOLD=20
	EXPORT_PATH=/data/feedback.jsonl
	EXPORT_INTERVAL=1h                  # 0 disables the periodic dump
	LOG_LEVEL=info
	LOG_FORMAT=json

# Signals

SIGINT and SIGTERM cancel the supervisor tree. The HTTP server drains
in-flight requests within server.shutdown_timeout, the export service writes
a final dump, and the storage backends are closed.
*/
package main
