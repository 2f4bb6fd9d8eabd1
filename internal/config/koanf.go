// Cinemora - Web Series Reviews and Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemora

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths searched for a config file, in order.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/cinemora/config.yaml",
	"/etc/cinemora/config.yml",
}

// ConfigPathEnvVar overrides the config file location.
const ConfigPathEnvVar = "CONFIG_PATH"

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:        5001,
			Host:        "0.0.0.0",
			Timeout:     30 * time.Second,
			Environment: "development",
		},
		Database: DatabaseConfig{
			Path:      "./data/cinemora.duckdb",
			MaxMemory: "1GB",
		},
		API: APIConfig{
			DefaultPageSize: 10,
			MaxPageSize:     100,
		},
		Security: SecurityConfig{
			SessionTimeout:  7 * 24 * time.Hour,
			BcryptCost:      10,
			RateLimitReqs:   100,
			RateLimitWindow: 15 * time.Minute,
			CORSOrigins:     []string{"http://localhost:5173"},
		},
		Cache: CacheConfig{
			Backend:         "memory",
			TTL:             time.Hour,
			CleanupInterval: 5 * time.Minute,
			Prefix:          "cinemora:",
			BadgerPath:      "./data/cache",
		},
		TVMaze: TVMazeConfig{
			BaseURL:       "https://api.tvmaze.com",
			SearchTimeout: 10 * time.Second,
			PageTimeout:   15 * time.Second,
			RateLimit:     2,
			CacheTTL:      time.Hour,
			UserAgent:     "cinemora/1.0",
		},
		Catalog: CatalogConfig{
			HindiTarget:   40,
			GlobalTarget:  60,
			MaxPages:      10,
			PageDelay:     500 * time.Millisecond,
			ChunkSize:     50,
			LockPath:      "./data/catalog.lock",
			AdminEmail:    "admin@cinemora.local",
			AdminPassword: "Admin@123",
			AdminName:     "Admin",
		},
		Audit: AuditConfig{
			Enabled:         true,
			Retention:       90 * 24 * time.Hour,
			CleanupInterval: 24 * time.Hour,
			BufferSize:      1000,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// LoadWithKoanf loads configuration in three layers (later wins):
//
//  1. Built-in defaults
//  2. Optional YAML file (CONFIG_PATH, or config.yaml in the working directory)
//  3. Environment variables
//
// The result is fully validated.
func LoadWithKoanf() (*Config, error) {
	cfg, err := loadLayers()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// LoadForMaintenance loads configuration for CLI jobs. The job commands
// never issue tokens, so the security section is not validated.
func LoadForMaintenance() (*Config, error) {
	cfg, err := loadLayers()
	if err != nil {
		return nil, err
	}
	if err := cfg.ValidateMaintenance(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func loadLayers() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}
	if err := processSecondsFields(k); err != nil {
		return nil, fmt.Errorf("failed to process duration fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	return cfg, nil
}

func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// sliceConfigPaths are parsed as comma-separated lists when set from env.
var sliceConfigPaths = []string{
	"security.cors_origins",
}

func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}
		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}

// secondsConfigPaths accept a bare integer meaning seconds (CACHE_TTL=3600)
// in addition to Go duration strings.
var secondsConfigPaths = []string{
	"cache.ttl",
	"tvmaze.cache_ttl",
}

func processSecondsFields(k *koanf.Koanf) error {
	for _, path := range secondsConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok {
			continue
		}
		secs, err := strconv.Atoi(strings.TrimSpace(strVal))
		if err != nil {
			continue
		}
		if err := k.Set(path, (time.Duration(secs) * time.Second).String()); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// envMappings maps environment variable names (lowercased) to koanf paths.
// Unmapped variables are ignored so the process environment cannot leak
// arbitrary keys into the config tree.
var envMappings = map[string]string{
	// Server
	"port":           "server.port",
	"http_port":      "server.port",
	"http_host":      "server.host",
	"server_timeout": "server.timeout",
	"environment":    "server.environment",

	// Database
	"duckdb_path":       "database.path",
	"duckdb_max_memory": "database.max_memory",
	"duckdb_threads":    "database.threads",

	// API
	"api_default_page_size": "api.default_page_size",
	"api_max_page_size":     "api.max_page_size",

	// Security
	"jwt_secret":          "security.jwt_secret",
	"secret_key":          "security.jwt_secret",
	"session_timeout":     "security.session_timeout",
	"bcrypt_cost":         "security.bcrypt_cost",
	"rate_limit_requests": "security.rate_limit_requests",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",
	"cors_origins":        "security.cors_origins",
	"frontend_url":        "security.cors_origins",
	"authz_model_path":    "security.authz_model_path",
	"authz_policy_path":   "security.authz_policy_path",

	// Cache
	"cache_backend":          "cache.backend",
	"cache_ttl":              "cache.ttl",
	"cache_cleanup_interval": "cache.cleanup_interval",
	"cache_prefix":           "cache.prefix",
	"redis_url":              "cache.redis_url",
	"badger_path":            "cache.badger_path",

	// TVMaze
	"tvmaze_base_url":       "tvmaze.base_url",
	"tvmaze_search_timeout": "tvmaze.search_timeout",
	"tvmaze_page_timeout":   "tvmaze.page_timeout",
	"tvmaze_rate_limit":     "tvmaze.rate_limit",
	"tvmaze_cache_ttl":      "tvmaze.cache_ttl",
	"tvmaze_user_agent":     "tvmaze.user_agent",

	// Catalog jobs
	"seed_hindi_target":  "catalog.hindi_target",
	"seed_global_target": "catalog.global_target",
	"seed_max_pages":     "catalog.max_pages",
	"seed_page_delay":    "catalog.page_delay",
	"seed_chunk_size":    "catalog.chunk_size",
	"catalog_lock_path":  "catalog.lock_path",
	"admin_email":        "catalog.admin_email",
	"admin_password":     "catalog.admin_password",
	"admin_name":         "catalog.admin_name",

	// Audit trail
	"audit_enabled":          "audit.enabled",
	"audit_retention":        "audit.retention",
	"audit_cleanup_interval": "audit.cleanup_interval",
	"audit_buffer_size":      "audit.buffer_size",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
