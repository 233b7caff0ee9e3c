// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/shopfront-tui/internal/ui/styles"
	"github.com/jeranaias/shopfront-tui/internal/util"
)

// =============================================================================
// STATUS BAR COMPONENT
// =============================================================================

// StatusBar is the bottom line: a status message on the left and key
// help on the right.
type StatusBar struct {
	Message string
	Help    string
	Width   int
	theme   *styles.Theme
}

// NewStatusBar creates an empty StatusBar.
func NewStatusBar(theme *styles.Theme) *StatusBar {
	return &StatusBar{Width: 80, theme: theme}
}

// SetWidth updates the bar width.
func (s *StatusBar) SetWidth(width int) {
	s.Width = width
}

// View renders the bar. The help text wins when space is short.
func (s *StatusBar) View() string {
	width := max(s.Width, 20)
	inner := width - 2

	help := s.Help
	if lipgloss.Width(help) > inner {
		help = ""
	}
	room := inner - lipgloss.Width(help) - 1
	msg := ""
	if room > 0 {
		msg = util.TruncateWidth(s.Message, room)
	}
	gap := max(1, inner-lipgloss.Width(msg)-lipgloss.Width(help))
	return s.theme.StatusBar.Width(width).Render(msg + strings.Repeat(" ", gap) + help)
}
