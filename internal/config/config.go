// Cinemora - Web Series Reviews and Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemora

package config

import "time"

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Database DatabaseConfig `koanf:"database"`
	API      APIConfig      `koanf:"api"`
	Security SecurityConfig `koanf:"security"`
	Cache    CacheConfig    `koanf:"cache"`
	TVMaze   TVMazeConfig   `koanf:"tvmaze"`
	Catalog  CatalogConfig  `koanf:"catalog"`
	Audit    AuditConfig    `koanf:"audit"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port        int           `koanf:"port"`
	Host        string        `koanf:"host"`
	Timeout     time.Duration `koanf:"timeout"`
	Environment string        `koanf:"environment"` // "development", "staging", "production"
}

// DatabaseConfig holds DuckDB settings.
type DatabaseConfig struct {
	Path      string `koanf:"path"`
	MaxMemory string `koanf:"max_memory"`
	Threads   int    `koanf:"threads"` // 0 = DuckDB default (all cores)
}

// APIConfig holds pagination settings shared by every list endpoint.
type APIConfig struct {
	DefaultPageSize int `koanf:"default_page_size"`
	MaxPageSize     int `koanf:"max_page_size"`
}

// SecurityConfig holds authentication, authorization and request limiting settings.
type SecurityConfig struct {
	JWTSecret       string        `koanf:"jwt_secret"`
	SessionTimeout  time.Duration `koanf:"session_timeout"`
	BcryptCost      int           `koanf:"bcrypt_cost"`
	RateLimitReqs   int           `koanf:"rate_limit_requests"`
	RateLimitWindow time.Duration `koanf:"rate_limit_window"`
	// RateLimitDisabled turns off the /api limiter. Intended for load tests only.
	RateLimitDisabled bool     `koanf:"rate_limit_disabled"`
	CORSOrigins       []string `koanf:"cors_origins"`
	// AuthzModelPath and AuthzPolicyPath override the embedded Casbin files.
	AuthzModelPath  string `koanf:"authz_model_path"`
	AuthzPolicyPath string `koanf:"authz_policy_path"`
}

// CacheConfig selects and tunes the response cache backend.
type CacheConfig struct {
	// Backend is one of: memory, redis, badger.
	Backend         string        `koanf:"backend"`
	TTL             time.Duration `koanf:"ttl"`
	CleanupInterval time.Duration `koanf:"cleanup_interval"`
	Prefix          string        `koanf:"prefix"`
	RedisURL        string        `koanf:"redis_url"`
	BadgerPath      string        `koanf:"badger_path"`
}

// TVMazeConfig configures the outbound TVMaze client.
type TVMazeConfig struct {
	BaseURL       string        `koanf:"base_url"`
	SearchTimeout time.Duration `koanf:"search_timeout"`
	PageTimeout   time.Duration `koanf:"page_timeout"`
	RateLimit     float64       `koanf:"rate_limit"` // requests per second
	CacheTTL      time.Duration `koanf:"cache_ttl"`
	UserAgent     string        `koanf:"user_agent"`
}

// CatalogConfig drives the maintenance jobs run from the cinemora CLI.
type CatalogConfig struct {
	HindiTarget   int           `koanf:"hindi_target"`
	GlobalTarget  int           `koanf:"global_target"`
	MaxPages      int           `koanf:"max_pages"`
	PageDelay     time.Duration `koanf:"page_delay"`
	ChunkSize     int           `koanf:"chunk_size"`
	LockPath      string        `koanf:"lock_path"`
	AdminEmail    string        `koanf:"admin_email"`
	AdminPassword string        `koanf:"admin_password"`
	AdminName     string        `koanf:"admin_name"`
}

// AuditConfig controls the security audit trail.
type AuditConfig struct {
	Enabled         bool          `koanf:"enabled"`
	Retention       time.Duration `koanf:"retention"`
	CleanupInterval time.Duration `koanf:"cleanup_interval"`
	BufferSize      int           `koanf:"buffer_size"`
}

// LoggingConfig holds zerolog settings.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	Level string `koanf:"level"`

	// Format is json (production) or console (development).
	Format string `koanf:"format"`

	// Caller adds file:line to every entry.
	Caller bool `koanf:"caller"`
}

// Load reads configuration from defaults, an optional YAML file and the
// environment, then validates everything including the token secret.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
