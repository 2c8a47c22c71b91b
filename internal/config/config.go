// Recstudy - News Recommendation Expert Study
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recstudy

package config

import (
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// Storage backends for participant feedback.
const (
	BackendBadger = "badger"
	BackendMongo  = "mongo"
)

// Config holds all application configuration
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Data     DataConfig     `koanf:"data"`
	Storage  StorageConfig  `koanf:"storage"`
	Session  SessionConfig  `koanf:"session"`
	Study    StudyConfig    `koanf:"study"`
	Export   ExportConfig   `koanf:"export"`
	Security SecurityConfig `koanf:"security"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`

	// Environment is "development" or "production". Production enforces a
	// strong session secret and secure cookies.
	Environment string `koanf:"environment"`
}

// DataConfig points at the two article tables loaded at startup
type DataConfig struct {
	// ReferencePath is the study table (articles with recommendation lists).
	ReferencePath string `koanf:"reference_path"`

	// CatalogPath is the big article catalog recommendations are drawn from.
	CatalogPath string `koanf:"catalog_path"`
}

// StorageConfig selects where sessions and feedback are persisted
type StorageConfig struct {
	// Backend is "badger" (embedded, default) or "mongo" for feedback.
	// Session state always lives in badger.
	Backend string `koanf:"backend"`

	// BadgerPath is the embedded database directory.
	BadgerPath string `koanf:"badger_path"`

	Mongo MongoConfig `koanf:"mongo"`
}

// MongoConfig holds MongoDB connection settings
type MongoConfig struct {
	URI        string        `koanf:"uri"`
	Database   string        `koanf:"database"` // empty: taken from the URI path
	Collection string        `koanf:"collection"`
	Timeout    time.Duration `koanf:"timeout"`
}

// SessionConfig holds the participant cookie settings
type SessionConfig struct {
	SecretKey    string        `koanf:"secret_key"`
	CookieName   string        `koanf:"cookie_name"`
	MaxAge       time.Duration `koanf:"max_age"`
	CookieSecure bool          `koanf:"cookie_secure"`

	// SameSite is one of lax, strict, none.
	SameSite string `koanf:"same_site"`
}

// SameSiteMode converts the configured SameSite string to its http constant.
func (s SessionConfig) SameSiteMode() http.SameSite {
	switch strings.ToLower(s.SameSite) {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}

// StudyConfig holds the study flow settings
type StudyConfig struct {
	// PredeterminedFlow walks every participant through a per-session
	// shuffled order of the reference articles.
	PredeterminedFlow bool `koanf:"predetermined_flow"`

	// RatingThreshold is the number of ratings that unlocks the SUS form.
	RatingThreshold int `koanf:"rating_threshold"`
}

// ExportConfig holds the JSON Lines dump settings
type ExportConfig struct {
	Path string `koanf:"path"`

	// Interval runs a periodic dump. Zero disables it.
	Interval time.Duration `koanf:"interval"`

	// MinInterval throttles dumps triggered by SUS submissions.
	MinInterval time.Duration `koanf:"min_interval"`
}

// SecurityConfig holds rate limiting and CORS settings
type SecurityConfig struct {
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Addr returns the host:port the HTTP server listens on.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	env := strings.ToLower(c.Server.Environment)
	return env == "production" || env == "prod"
}

// Load loads configuration from defaults, config file, .env and environment.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
