// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package server provides the local admin API started by "shopfront serve".
//
// It exposes the same services the TUI uses, so a login failure over HTTP
// counts toward the shared lockout threshold and an alert resolved here
// disappears from the TUI on its next refresh.
//
// # Endpoints
//
//   - POST /api/login                       - exchange admin credentials for a bearer token
//   - GET  /api/security/logs               - security log, newest first (?limit=, ?risk=)
//   - GET  /api/security/alerts             - unresolved alerts (?all=true for every alert)
//   - POST /api/security/alerts/:id/resolve - resolve an alert
//   - GET  /api/security/stats              - alert and log counters
//   - GET  /api/dashboard                   - overview, analytics and financial figures (?period=)
//   - GET  /api/users                       - managed users (?q=, ?status=)
//   - GET  /health                          - liveness
//   - GET  /metrics                         - Prometheus metrics
//
// Everything under /api except login requires an admin token.
//
// # Middleware
//
//   - Recovery and request logging through zap
//   - Security headers (X-Content-Type-Options, X-Frame-Options, CSP)
//   - Per-client token bucket rate limiting on /api
//   - CORS for the configured origins
//   - Request counter and latency histogram
//
// # Usage
//
//	srv, err := server.New(services, cfg.Server, server.WithLogger(logger))
//	if err != nil {
//		return err
//	}
//	return srv.Start(ctx)
package server
