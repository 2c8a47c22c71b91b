// Recstudy - News Recommendation Expert Study
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recstudy

package config

import (
	"fmt"
	"strings"
)

// minSecretKeyLength is the shortest session secret accepted in production.
const minSecretKeyLength = 32

// Validate checks that required configuration is present and valid
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}

	if err := c.validateData(); err != nil {
		return err
	}

	if err := c.validateStorage(); err != nil {
		return err
	}

	if err := c.validateSession(); err != nil {
		return err
	}

	if err := c.validateStudy(); err != nil {
		return err
	}

	if err := c.validateExport(); err != nil {
		return err
	}

	if err := c.validateSecurity(); err != nil {
		return err
	}

	return c.validateLogging()
}

// validateServer validates the HTTP server settings
func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive")
	}
	return nil
}

// validateData validates the article table paths
func (c *Config) validateData() error {
	if c.Data.ReferencePath == "" {
		return fmt.Errorf("REFERENCE_CSV_PATH is required")
	}
	if c.Data.CatalogPath == "" {
		return fmt.Errorf("CATALOG_CSV_PATH is required")
	}
	return nil
}

// validateStorage validates the storage backend selection
func (c *Config) validateStorage() error {
	if c.Storage.BadgerPath == "" {
		return fmt.Errorf("BADGER_PATH is required")
	}

	switch c.Storage.Backend {
	case BackendBadger:
		return nil
	case BackendMongo:
		if c.Storage.Mongo.URI == "" {
			return fmt.Errorf("MONGODB_URI is required when STORAGE_BACKEND=mongo")
		}
		return validateMongoURI(c.Storage.Mongo.URI)
	default:
		return fmt.Errorf("STORAGE_BACKEND must be one of: badger, mongo, got %q", c.Storage.Backend)
	}
}

// validateSession validates the participant cookie settings. The secret
// is always required; production additionally rejects short or
// placeholder secrets and insecure cookies.
func (c *Config) validateSession() error {
	secret := c.Session.SecretKey
	if secret == "" {
		return fmt.Errorf("EXPERT_STUDY_SECRET_KEY is required")
	}
	if c.Session.CookieName == "" {
		return fmt.Errorf("SESSION_COOKIE_NAME must not be empty")
	}
	if !validSameSite[strings.ToLower(c.Session.SameSite)] {
		return fmt.Errorf("SESSION_SAME_SITE must be one of: lax, strict, none")
	}

	if !c.IsProduction() {
		return nil
	}
	if len(secret) < minSecretKeyLength {
		return fmt.Errorf("EXPERT_STUDY_SECRET_KEY must be at least %d characters in production", minSecretKeyLength)
	}
	if containsPlaceholder(secret) {
		return fmt.Errorf("EXPERT_STUDY_SECRET_KEY contains a placeholder value")
	}
	if !c.Session.CookieSecure {
		return fmt.Errorf("SESSION_COOKIE_SECURE must be true in production")
	}
	return nil
}

var validSameSite = map[string]bool{
	"lax":    true,
	"strict": true,
	"none":   true,
}

// validateStudy validates the study flow settings
func (c *Config) validateStudy() error {
	if c.Study.RatingThreshold < 1 {
		return fmt.Errorf("RATING_THRESHOLD must be at least 1, got %d", c.Study.RatingThreshold)
	}
	return nil
}

// validateExport validates the dump settings
func (c *Config) validateExport() error {
	if c.Export.Path == "" {
		return fmt.Errorf("EXPORT_PATH is required")
	}
	if c.Export.Interval < 0 {
		return fmt.Errorf("EXPORT_INTERVAL must not be negative")
	}
	if c.Export.MinInterval < 0 {
		return fmt.Errorf("EXPORT_MIN_INTERVAL must not be negative")
	}
	return nil
}

// validateSecurity validates rate limiting and CORS
func (c *Config) validateSecurity() error {
	if !c.Security.RateLimitDisabled {
		if c.Security.RateLimitReqs < 1 {
			return fmt.Errorf("RATE_LIMIT_REQUESTS must be at least 1")
		}
		if c.Security.RateLimitWindow <= 0 {
			return fmt.Errorf("RATE_LIMIT_WINDOW must be positive")
		}
	}

	for _, origin := range c.Security.CORSOrigins {
		if origin == "*" {
			if c.IsProduction() {
				return fmt.Errorf("CORS_ORIGINS must not contain * in production")
			}
			continue
		}
		if err := validateHTTPURL(origin, "CORS_ORIGINS"); err != nil {
			return err
		}
	}
	return nil
}

// validLogLevels defines the allowed log levels
var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// validLogFormats defines the allowed log formats
var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

// validateLogging validates logging configuration
func (c *Config) validateLogging() error {
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if c.Logging.Format != "" && !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}

// placeholderPatterns defines common placeholder patterns that indicate
// the operator forgot to set a real value.
var placeholderPatterns = []string{
	"REPLACE",
	"CHANGEME",
	"CHANGE_ME",
	"YOUR_SECRET",
	"PLACEHOLDER",
	"TODO",
	"FIXME",
	"EXAMPLE",
}

// containsPlaceholder checks if a value contains common placeholder patterns.
func containsPlaceholder(value string) bool {
	upper := strings.ToUpper(value)
	for _, pattern := range placeholderPatterns {
		if strings.Contains(upper, pattern) {
			return true
		}
	}
	return false
}
