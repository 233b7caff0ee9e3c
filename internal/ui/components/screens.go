// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/shopfront-tui/internal/ui/styles"
)

// ErrorScreen is shown after a recovered panic. It deliberately says
// nothing about the cause; Detail is only shown in debug builds.
func ErrorScreen(theme *styles.Theme, detail string, width, height int) string {
	lines := []string{
		theme.Error.Render(styles.StatusIndicators.Error + " Something went wrong"),
		"",
		theme.Label.Render("An unexpected error occurred. Please reload to continue."),
	}
	if detail != "" {
		lines = append(lines, "", theme.Muted.Render(detail))
	}
	lines = append(lines, "", theme.ButtonActive.Render("r  Reload")+"  "+theme.Button.Render("q  Quit"))

	box := theme.ErrorPanel.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}

// BlockedScreen is the terminal screen for a blocked session.
func BlockedScreen(theme *styles.Theme, width, height int) string {
	box := theme.BlockedPanel.Render(lipgloss.JoinVertical(lipgloss.Center,
		theme.Error.Render(styles.StatusIndicators.Error+" Account Blocked"),
		"",
		"Your account has been temporarily blocked due to",
		"suspicious activity. Please contact support.",
		"",
		theme.Muted.Render("q quit"),
	))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
