// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package router decides which screen is shown.
//
// Route is a pure function of the session snapshot: blocked beats
// everything, then signed-out, then role. Inside the storefront, Nav moves
// between home, product, cart and profile on explicit actions; AdminNav
// does the same for the five admin sections.
//
// # Usage
//
//	switch router.Route(sessions.Snapshot(), false) {
//	case router.ViewBlocked:
//	    // render the blocked screen
//	case router.ViewAdmin:
//	    // render the dashboard
//	}
package router
