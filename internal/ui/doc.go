// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package ui is the Bubble Tea front end of the shop.

The root Model asks the router which top-level screen to show after every
key press and every asynchronous result, so signing in, signing out and a
block raised elsewhere all take effect without explicit navigation.

# Key Components

## Model (model.go)

Holds the services, the theme, the shared components and one state struct
per screen. New subscribes to the security monitor; alerts arrive on a
buffered channel and become toasts.

## Update Loop (update.go)

Type-switch dispatch to per-screen handlers. Login and signup run in
tea.Cmds because they include a simulated network delay. A panic in
Update or View is recovered and replaced by the error screen; "r" reloads
the persisted session and security journal and routes again.

## Screens

  - auth_view.go: sign-in and sign-up forms, lockout warning, password checklist
  - shop_view.go: product grid, product page (glamour), cart, profile and 2FA
  - admin_view.go: dashboard, security center, analytics, financial, users

# Usage

	m := ui.New(ctx, services)
	defer m.Close()
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
*/
package ui
