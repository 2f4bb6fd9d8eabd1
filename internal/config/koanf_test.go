// Cinemora - Web Series Reviews and Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemora

package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if cfg.Server.Port != 5001 {
		t.Errorf("Server.Port = %d, want 5001", cfg.Server.Port)
	}
	if cfg.Cache.Backend != "memory" {
		t.Errorf("Cache.Backend = %q, want memory", cfg.Cache.Backend)
	}
	if cfg.Cache.TTL != time.Hour {
		t.Errorf("Cache.TTL = %v, want 1h", cfg.Cache.TTL)
	}
	if cfg.Security.SessionTimeout != 7*24*time.Hour {
		t.Errorf("Security.SessionTimeout = %v, want 168h", cfg.Security.SessionTimeout)
	}
	if cfg.Security.RateLimitReqs != 100 || cfg.Security.RateLimitWindow != 15*time.Minute {
		t.Errorf("rate limit = %d/%v, want 100/15m", cfg.Security.RateLimitReqs, cfg.Security.RateLimitWindow)
	}
	if cfg.Catalog.HindiTarget != 40 || cfg.Catalog.GlobalTarget != 60 || cfg.Catalog.MaxPages != 10 {
		t.Errorf("seed targets = %d/%d/%d, want 40/60/10",
			cfg.Catalog.HindiTarget, cfg.Catalog.GlobalTarget, cfg.Catalog.MaxPages)
	}
	if cfg.TVMaze.BaseURL != "https://api.tvmaze.com" {
		t.Errorf("TVMaze.BaseURL = %q", cfg.TVMaze.BaseURL)
	}
}

func TestEnvTransformFunc(t *testing.T) {
	tests := []struct {
		env  string
		want string
	}{
		{"PORT", "server.port"},
		{"JWT_SECRET", "security.jwt_secret"},
		{"SECRET_KEY", "security.jwt_secret"},
		{"FRONTEND_URL", "security.cors_origins"},
		{"CACHE_TTL", "cache.ttl"},
		{"REDIS_URL", "cache.redis_url"},
		{"SEED_HINDI_TARGET", "catalog.hindi_target"},
		{"log_level", "logging.level"},
		{"HOME", ""},
		{"PATH", ""},
	}
	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			if got := envTransformFunc(tt.env); got != tt.want {
				t.Errorf("envTransformFunc(%q) = %q, want %q", tt.env, got, tt.want)
			}
		})
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("PORT", "8080")
	t.Setenv("CACHE_TTL", "120")
	t.Setenv("FRONTEND_URL", "http://a.example, http://b.example")
	t.Setenv("SEED_PAGE_DELAY", "250ms")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Cache.TTL != 2*time.Minute {
		t.Errorf("Cache.TTL = %v, want 2m (bare seconds)", cfg.Cache.TTL)
	}
	want := []string{"http://a.example", "http://b.example"}
	if !reflect.DeepEqual(cfg.Security.CORSOrigins, want) {
		t.Errorf("CORSOrigins = %v, want %v", cfg.Security.CORSOrigins, want)
	}
	if cfg.Catalog.PageDelay != 250*time.Millisecond {
		t.Errorf("Catalog.PageDelay = %v, want 250ms", cfg.Catalog.PageDelay)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
server:
  port: 6001
security:
  jwt_secret: "` + testSecret + `"
cache:
  backend: redis
  redis_url: redis://localhost:6379/1
  ttl: 10m
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("PORT", "7001")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Port != 7001 {
		t.Errorf("Server.Port = %d, want env to win with 7001", cfg.Server.Port)
	}
	if cfg.Cache.Backend != "redis" || cfg.Cache.RedisURL != "redis://localhost:6379/1" {
		t.Errorf("cache = %+v", cfg.Cache)
	}
	if cfg.Cache.TTL != 10*time.Minute {
		t.Errorf("Cache.TTL = %v, want 10m", cfg.Cache.TTL)
	}
}

func TestLoadRequiresSecret(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("JWT_SECRET", "")

	if _, err := Load(); err == nil || !strings.Contains(err.Error(), "JWT_SECRET") {
		t.Fatalf("Load() error = %v, want JWT_SECRET error", err)
	}

	if _, err := LoadForMaintenance(); err != nil {
		t.Fatalf("LoadForMaintenance() error = %v, want nil", err)
	}
}
