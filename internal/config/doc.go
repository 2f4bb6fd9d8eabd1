// Cinemora - Web Series Reviews and Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemora

// Package config loads Cinemora configuration with Koanf v2.
//
// Sources, highest priority last:
//
//   - built-in defaults (defaultConfig)
//   - YAML file from CONFIG_PATH, ./config.yaml or /etc/cinemora/config.yaml
//   - environment variables (see envMappings)
//
// Example config.yaml:
//
//	server:
//	  port: 5001
//	security:
//	  jwt_secret: "change-me-to-a-32-character-secret!!"
//	  cors_origins: ["https://cinemora.example"]
//	cache:
//	  backend: redis
//	  redis_url: redis://localhost:6379/0
//
// The server calls Load, which validates every section. The cinemora CLI
// calls LoadForMaintenance, which skips token settings it never uses.
package config
