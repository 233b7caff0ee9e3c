// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the shopfront TUI.
//
// All colours are lipgloss.AdaptiveColor so light and dark terminals both
// read well. Every semantic colour is paired with an ASCII marker from
// StatusIndicators.
//
// # Key Types
//
//   - Theme: the styles every screen draws with
//
// # Usage
//
//	theme := styles.NewTheme(cfg.UI.Theme)
//	theme.SetSize(msg.Width, msg.Height)
//	fmt.Println(theme.Price.Render(util.Money(p.Price)))
package styles
