// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package dashboard supplies the admin panels' figures: overview cards,
// analytics, financials and the managed-user list, plus the profile's
// order history.
//
// Apart from the security alert card and the managed-user statuses,
// every figure is fixed demo data.
//
// # Key Types
//
//   - Metric: a headline card
//   - Analytics, Financial: panel data
//   - Users: managed users with search, status filter and actions
package dashboard
