// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration management for shopfront.
//
// Configuration is read from ~/.shopfront/config.toml, then from a .env
// file in the working directory, then from SHOPFRONT_* environment
// variables. Missing values fall back to Default.
//
// # Configuration Sections
//
//   - store: key-value backend (sqlite, file, memory, redis) and data dir
//   - security: lockout threshold, log/alert caps, simulated login delay
//   - ui: theme, toast timeout, key help
//   - logging: level and log file
//   - server: admin API address, token TTL, rate limit, CORS origins
//
// # Environment Variables
//
//   - SHOPFRONT_DATA_DIR, SHOPFRONT_STORE, SHOPFRONT_REDIS_ADDR
//   - SHOPFRONT_MAX_LOGIN_ATTEMPTS, SHOPFRONT_MAX_LOGS, SHOPFRONT_MAX_ALERTS
//   - SHOPFRONT_CLIENT_IP, SHOPFRONT_LOGIN_DELAY
//   - SHOPFRONT_LOG_LEVEL, SHOPFRONT_LOG_FILE
//   - SHOPFRONT_SERVER_ADDR, SHOPFRONT_JWT_SECRET
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    return err
//	}
//	go config.Watch(ctx, path, apply, nil)
package config
