// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session holds the signed-in identity and the login-attempt
// counter, persisted to a kvstore.Store.
//
// # Key Types
//
//   - Identity: the signed-in user record
//   - Manager: owns identity, attempt counter and blocked flag
//   - Snapshot: read-only copy used by the router and views
//
// # Persistence
//
// Three keys are written through on every change:
//
//	user           identity JSON
//	loginAttempts  decimal integer
//	isBlocked      "true" when blocked, absent otherwise
//
// A malformed user record found during Restore is deleted rather than
// reported; the session simply starts signed out.
//
// # Usage
//
//	mgr := session.NewManager(store, session.WithLogger(logger))
//	if err := mgr.Restore(ctx); err != nil {
//	    return err
//	}
//	if id, ok := mgr.Identity(); ok {
//	    fmt.Println("signed in as", id.Email)
//	}
package session
