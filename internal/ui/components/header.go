// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/shopfront-tui/internal/ui/styles"
	"github.com/jeranaias/shopfront-tui/internal/util"
)

// =============================================================================
// HEADER COMPONENT
// =============================================================================

// Header is the top bar: brand, navigation tabs, user and cart badge.
type Header struct {
	Title     string
	UserName  string
	Admin     bool
	CartCount int
	Tabs      []string
	Active    int
	Width     int
	theme     *styles.Theme
}

// NewHeader creates a Header with the storefront brand.
func NewHeader(theme *styles.Theme) *Header {
	return &Header{
		Title: "SecureShop",
		Width: 80,
		theme: theme,
	}
}

// SetWidth updates the header width.
func (h *Header) SetWidth(width int) {
	h.Width = width
}

// View renders the header on a single line, dropping the tabs when the
// terminal is too narrow for them.
func (h *Header) View() string {
	width := max(h.Width, 40)
	t := h.theme

	brand := t.HeaderBrand.Render(h.Title)
	if h.Admin {
		brand += t.HeaderUser.Render(" admin")
	}

	var right []string
	if h.UserName != "" {
		right = append(right, t.HeaderUser.Render(util.TruncateWidth(h.UserName, 20)))
	}
	if !h.Admin {
		right = append(right, t.CartBadge.Render("cart "+strconv.Itoa(h.CartCount)))
	}
	rightStr := strings.Join(right, " ")

	tabs := h.renderTabs()
	inner := width - 2
	gap := inner - lipgloss.Width(brand) - lipgloss.Width(tabs) - lipgloss.Width(rightStr)
	if gap < 2 {
		tabs = ""
		gap = max(1, inner-lipgloss.Width(brand)-lipgloss.Width(rightStr))
	}
	left := brand + "  " + tabs
	if tabs == "" {
		left = brand
	} else {
		gap -= 2
	}

	line := left + strings.Repeat(" ", max(1, gap)) + rightStr
	return t.Header.Width(width).Render(line)
}

func (h *Header) renderTabs() string {
	if len(h.Tabs) == 0 {
		return ""
	}
	parts := make([]string, len(h.Tabs))
	for i, tab := range h.Tabs {
		label := strconv.Itoa(i+1) + " " + tab
		if i == h.Active {
			parts[i] = h.theme.HeaderBrand.Render("[" + label + "]")
		} else {
			parts[i] = h.theme.HeaderUser.Render(" " + label + " ")
		}
	}
	return strings.Join(parts, "")
}
