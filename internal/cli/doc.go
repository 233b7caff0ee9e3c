// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides command-line parsing and the non-interactive
// commands of shopfront.
//
// Every command runs against the same services as the TUI, so a login
// attempted here counts toward the lockout and an alert resolved here is
// resolved in the TUI too.
//
// # Key Types
//
//   - Command: enumeration of the commands
//   - Args: global flags plus the raw command arguments
//   - Env: config, services and output streams a handler runs against
//   - ArgParser: per-command flag and positional parsing
//   - JSONResponse: the --json envelope
//
// # Usage
//
//	code := cli.Main(ctx, os.Args[1:], cli.WithTUI(runTUI))
//	os.Exit(code)
//
// # Commands Overview
//
// Account: login, logout, signup, status.
//
// Security: logs, alerts, resolve, stats, block, reset.
//
// Store: products, product, users, dashboard.
//
// Other: serve, config, version, help.
//
// All commands support --json.
package cli
