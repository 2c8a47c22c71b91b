// Recstudy - News Recommendation Expert Study
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recstudy

/*
Package config provides centralized configuration management for Recstudy.

# Configuration Sources

Configuration is layered with koanf, later sources overriding earlier ones:

 1. Built-in defaults (defaultConfig)
 2. An optional YAML file: CONFIG_PATH, else config.yaml / config.yml in the
    working directory, else /etc/recstudy/config.yaml
 3. Environment variables, after a .env file (DOTENV_PATH, default .env)
    has been merged into the environment without overriding set variables

# Environment Variables

Server:
  - HTTP_HOST, HTTP_PORT (default: 0.0.0.0:8080)
  - HTTP_TIMEOUT, HTTP_SHUTDOWN_TIMEOUT
  - ENVIRONMENT: development or production

Data:
  - REFERENCE_CSV_PATH: study articles with recommendation lists
  - CATALOG_CSV_PATH: article catalog

Storage:
  - STORAGE_BACKEND: badger (default) or mongo
  - BADGER_PATH: embedded database directory (sessions, badger feedback)
  - MONGODB_URI, MONGODB_DATABASE, MONGODB_COLLECTION, MONGODB_TIMEOUT

Session:
  - EXPERT_STUDY_SECRET_KEY: cookie signing secret (required)
  - SESSION_COOKIE_NAME, SESSION_MAX_AGE, SESSION_COOKIE_SECURE, SESSION_SAME_SITE

Study:
  - USE_PREDETERMINED_FLOW (default: true)
  - RATING_THRESHOLD: ratings needed before the SUS form (default: 20)

Export:
  - EXPORT_PATH: JSON Lines dump file
  - EXPORT_INTERVAL: periodic dump, 0 disables
  - EXPORT_MIN_INTERVAL: throttle for dumps after SUS submissions

Security:
  - RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW, DISABLE_RATE_LIMIT
  - CORS_ORIGINS: comma-separated origins

Logging:
  - LOG_LEVEL, LOG_FORMAT, LOG_CALLER

# Usage

	cfg, err := config.Load()
	if err != nil {
	    logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

# Validation

Validate runs after loading. In production the session secret must be at
least 32 characters without placeholder text, cookies must be secure and
CORS must not allow every origin.
*/
package config
