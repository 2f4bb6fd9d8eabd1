// Cinemora - Web Series Reviews and Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemora

package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Rate limit bounds
const (
	minRateLimitRequests = 1
	maxRateLimitRequests = 100000
	minRateLimitWindow   = time.Second
	maxRateLimitWindow   = 24 * time.Hour
)

// minJWTSecretLength matches the HS256 key size.
const minJWTSecretLength = 32

var validLogLevels = map[string]bool{
	"trace": true, "debug": true, "info": true, "warn": true, "error": true,
}

var validLogFormats = map[string]bool{
	"json": true, "console": true,
}

var validCacheBackends = map[string]bool{
	"memory": true, "redis": true, "badger": true,
}

// Validate checks that required configuration is present and valid.
func (c *Config) Validate() error {
	if err := c.ValidateMaintenance(); err != nil {
		return err
	}
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateAudit(); err != nil {
		return err
	}
	return c.validateSecurity()
}

// ValidateMaintenance validates everything the CLI jobs depend on.
func (c *Config) ValidateMaintenance() error {
	if err := c.validateDatabase(); err != nil {
		return err
	}
	if err := c.validateAPI(); err != nil {
		return err
	}
	if err := c.validateCache(); err != nil {
		return err
	}
	if err := c.validateTVMaze(); err != nil {
		return err
	}
	if err := c.validateCatalog(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535")
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("SERVER_TIMEOUT must be positive")
	}
	return nil
}

func (c *Config) validateDatabase() error {
	if strings.TrimSpace(c.Database.Path) == "" {
		return fmt.Errorf("DUCKDB_PATH is required")
	}
	if c.Database.Threads < 0 {
		return fmt.Errorf("DUCKDB_THREADS must not be negative")
	}
	return nil
}

func (c *Config) validateAPI() error {
	if c.API.DefaultPageSize < 1 {
		return fmt.Errorf("API_DEFAULT_PAGE_SIZE must be at least 1")
	}
	if c.API.MaxPageSize < c.API.DefaultPageSize {
		return fmt.Errorf("API_MAX_PAGE_SIZE (%d) must be >= API_DEFAULT_PAGE_SIZE (%d)",
			c.API.MaxPageSize, c.API.DefaultPageSize)
	}
	return nil
}

func (c *Config) validateSecurity() error {
	if err := c.validateJWTSecret(); err != nil {
		return err
	}
	if c.Security.SessionTimeout <= 0 {
		return fmt.Errorf("SESSION_TIMEOUT must be positive")
	}
	if c.Security.BcryptCost < bcrypt.MinCost || c.Security.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("BCRYPT_COST must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}
	if err := c.validateRateLimits(); err != nil {
		return err
	}
	return c.validateCORS()
}

func (c *Config) validateJWTSecret() error {
	if c.Security.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if len(c.Security.JWTSecret) < minJWTSecretLength {
		return fmt.Errorf("JWT_SECRET must be at least %d characters for security", minJWTSecretLength)
	}
	return nil
}

func (c *Config) validateRateLimits() error {
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < minRateLimitRequests || c.Security.RateLimitReqs > maxRateLimitRequests {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be between %d and %d", minRateLimitRequests, maxRateLimitRequests)
	}
	if c.Security.RateLimitWindow < minRateLimitWindow || c.Security.RateLimitWindow > maxRateLimitWindow {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be between %v and %v", minRateLimitWindow, maxRateLimitWindow)
	}
	return nil
}

// validateCORS rejects a wildcard origin in production. Bearer tokens live in
// browser storage, so any origin could replay them.
func (c *Config) validateCORS() error {
	if c.HasWildcardCORS() && c.IsProduction() {
		return fmt.Errorf("CORS_ORIGINS=* is not allowed in production; set FRONTEND_URL to the frontend origin")
	}
	return nil
}

// HasWildcardCORS reports whether any configured origin is "*".
func (c *Config) HasWildcardCORS() bool {
	for _, origin := range c.Security.CORSOrigins {
		if origin == "*" {
			return true
		}
	}
	return false
}

func (c *Config) validateCache() error {
	if !validCacheBackends[c.Cache.Backend] {
		return fmt.Errorf("CACHE_BACKEND must be one of: memory, redis, badger")
	}
	if c.Cache.TTL <= 0 {
		return fmt.Errorf("CACHE_TTL must be positive")
	}
	switch c.Cache.Backend {
	case "memory":
		if c.Cache.CleanupInterval <= 0 {
			return fmt.Errorf("CACHE_CLEANUP_INTERVAL must be positive")
		}
	case "redis":
		if c.Cache.RedisURL == "" {
			return fmt.Errorf("REDIS_URL is required when CACHE_BACKEND=redis")
		}
	case "badger":
		if c.Cache.BadgerPath == "" {
			return fmt.Errorf("BADGER_PATH is required when CACHE_BACKEND=badger")
		}
	}
	return nil
}

func (c *Config) validateTVMaze() error {
	if err := validateHTTPURL(c.TVMaze.BaseURL, "TVMAZE_BASE_URL"); err != nil {
		return err
	}
	if c.TVMaze.SearchTimeout <= 0 || c.TVMaze.PageTimeout <= 0 {
		return fmt.Errorf("TVMAZE_SEARCH_TIMEOUT and TVMAZE_PAGE_TIMEOUT must be positive")
	}
	if c.TVMaze.RateLimit <= 0 {
		return fmt.Errorf("TVMAZE_RATE_LIMIT must be positive")
	}
	return nil
}

func (c *Config) validateCatalog() error {
	if c.Catalog.HindiTarget < 0 || c.Catalog.GlobalTarget < 0 {
		return fmt.Errorf("SEED_HINDI_TARGET and SEED_GLOBAL_TARGET must not be negative")
	}
	if c.Catalog.MaxPages < 1 {
		return fmt.Errorf("SEED_MAX_PAGES must be at least 1")
	}
	if c.Catalog.ChunkSize < 1 {
		return fmt.Errorf("SEED_CHUNK_SIZE must be at least 1")
	}
	if c.Catalog.LockPath == "" {
		return fmt.Errorf("CATALOG_LOCK_PATH is required")
	}
	return nil
}

func (c *Config) validateAudit() error {
	if !c.Audit.Enabled {
		return nil
	}
	if c.Audit.Retention <= 0 || c.Audit.CleanupInterval <= 0 {
		return fmt.Errorf("AUDIT_RETENTION and AUDIT_CLEANUP_INTERVAL must be positive")
	}
	if c.Audit.BufferSize < 1 {
		return fmt.Errorf("AUDIT_BUFFER_SIZE must be at least 1")
	}
	return nil
}

func (c *Config) validateLogging() error {
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if c.Logging.Format != "" && !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}

// validateHTTPURL checks for an http(s) base URL with a host and no query.
func validateHTTPURL(rawURL, fieldName string) error {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("%s failed to parse URL: %w", fieldName, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("%s scheme must be http or https, got: %q", fieldName, parsed.Scheme)
	}
	if parsed.Host == "" {
		return fmt.Errorf("%s host is required", fieldName)
	}
	if parsed.RawQuery != "" {
		return fmt.Errorf("%s should not contain query parameters", fieldName)
	}
	return nil
}

// IsProduction reports whether ENVIRONMENT is production.
func (c *Config) IsProduction() bool {
	env := strings.ToLower(c.Server.Environment)
	return env == "production" || env == "prod"
}

// IsDevelopment reports whether ENVIRONMENT is development (or unset).
func (c *Config) IsDevelopment() bool {
	env := strings.ToLower(c.Server.Environment)
	return env == "" || env == "development" || env == "dev"
}
