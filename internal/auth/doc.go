// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package auth implements sign-in, signup and logout against a fixed
// demo account directory.
//
// # Key Types
//
//   - Directory: the built-in accounts (plaintext demo passwords)
//   - Service: login/signup/logout flows, lockout and security logging
//   - TwoFactor: authenticator enrollment for the profile screen
//
// Every flow records its outcome in the security monitor. Failed logins
// are graded medium, or high once the failure count is one short of the
// threshold, which in turn raises a danger alert.
//
// # Usage
//
//	svc := auth.NewService(sessions, monitor, auth.WithDelay(0))
//	id, err := svc.AttemptLogin(ctx, "admin@amazon.com", "admin123")
//	if errors.Is(err, auth.ErrBlocked) {
//	    // show the blocked screen
//	}
package auth
