// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package security provides the storefront's login lockout and its
// security log/alert pipeline.
//
// None of this is a trust boundary. Blocking is enforced by the client
// that reads the flag, and the IP recorded with each entry is whatever
// the caller passes in.
//
// # Lockout
//
// LockoutGuard wraps a credential check. Once the consecutive-failure
// count (held by an AttemptCounter such as session.Manager) reaches the
// threshold, every attempt is rejected with ErrLockedOut without
// consulting credentials. A success resets the count to zero.
//
// # Log and Alerts
//
// Monitor keeps two newest-first lists:
//
//   - the log, capped at 100 entries by default
//   - alerts, capped at 10 by default; resolving flips a flag and the
//     alert leaves ActiveAlerts but stays stored
//
// Every high-risk log entry raises exactly one danger alert for the same
// user. Stats recounts both lists on each call.
//
// # Usage
//
//	mon := security.NewMonitor(
//	    security.WithMaxLogs(cfg.Security.MaxLogs),
//	    security.WithBlockFlag(sessions),
//	    security.WithJournal(security.NewKVJournal(store)),
//	)
//	if err := mon.Restore(ctx); err != nil {
//	    return err
//	}
//	mon.AddLog(ctx, security.LogEntry{UserID: email, Action: "Successful login", RiskLevel: security.RiskLow})
package security
