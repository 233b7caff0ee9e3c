// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the reusable pieces of the shopfront TUI.
//
// # Key Types
//
//   - Header: brand, navigation tabs, user and cart badge
//   - StatusBar: status message and key help
//   - ToastManager: auto-dismissing alert toasts
//
// ErrorScreen and BlockedScreen render the two full-screen states.
package components
