// Cinemora - Web Series Reviews and Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemora

package config

import (
	"strings"
	"testing"
	"time"
)

func validConfig() *Config {
	cfg := defaultConfig()
	cfg.Security.JWTSecret = testSecret
	return cfg
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults with secret", func(*Config) {}, ""},
		{"port too high", func(c *Config) { c.Server.Port = 70000 }, "PORT"},
		{"short secret", func(c *Config) { c.Security.JWTSecret = "short" }, "at least 32"},
		{"bcrypt cost", func(c *Config) { c.Security.BcryptCost = 99 }, "BCRYPT_COST"},
		{"rate limit zero", func(c *Config) { c.Security.RateLimitReqs = 0 }, "RATE_LIMIT_REQUESTS"},
		{"rate limit disabled ignores bounds", func(c *Config) {
			c.Security.RateLimitReqs = 0
			c.Security.RateLimitDisabled = true
		}, ""},
		{"window too small", func(c *Config) { c.Security.RateLimitWindow = time.Millisecond }, "RATE_LIMIT_WINDOW"},
		{"wildcard in production", func(c *Config) {
			c.Security.CORSOrigins = []string{"*"}
			c.Server.Environment = "production"
		}, "CORS_ORIGINS"},
		{"wildcard in development", func(c *Config) { c.Security.CORSOrigins = []string{"*"} }, ""},
		{"unknown cache backend", func(c *Config) { c.Cache.Backend = "memcached" }, "CACHE_BACKEND"},
		{"redis without url", func(c *Config) { c.Cache.Backend = "redis" }, "REDIS_URL"},
		{"badger without path", func(c *Config) {
			c.Cache.Backend = "badger"
			c.Cache.BadgerPath = ""
		}, "BADGER_PATH"},
		{"zero ttl", func(c *Config) { c.Cache.TTL = 0 }, "CACHE_TTL"},
		{"page sizes inverted", func(c *Config) { c.API.MaxPageSize = 5 }, "API_MAX_PAGE_SIZE"},
		{"bad tvmaze url", func(c *Config) { c.TVMaze.BaseURL = "ftp://api.tvmaze.com" }, "TVMAZE_BASE_URL"},
		{"negative target", func(c *Config) { c.Catalog.HindiTarget = -1 }, "SEED_HINDI_TARGET"},
		{"zero audit retention", func(c *Config) { c.Audit.Retention = 0 }, "AUDIT_RETENTION"},
		{"audit disabled ignores bounds", func(c *Config) {
			c.Audit.Enabled = false
			c.Audit.BufferSize = 0
		}, ""},
		{"bad log level", func(c *Config) { c.Logging.Level = "verbose" }, "LOG_LEVEL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() error = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("Validate() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestEnvironmentHelpers(t *testing.T) {
	tests := []struct {
		env  string
		prod bool
		dev  bool
	}{
		{"", false, true},
		{"development", false, true},
		{"dev", false, true},
		{"staging", false, false},
		{"production", true, false},
		{"PROD", true, false},
	}
	for _, tt := range tests {
		cfg := &Config{Server: ServerConfig{Environment: tt.env}}
		if cfg.IsProduction() != tt.prod || cfg.IsDevelopment() != tt.dev {
			t.Errorf("env %q: IsProduction=%v IsDevelopment=%v, want %v/%v",
				tt.env, cfg.IsProduction(), cfg.IsDevelopment(), tt.prod, tt.dev)
		}
	}
}
