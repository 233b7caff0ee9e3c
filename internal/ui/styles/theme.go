// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds the styled building blocks for every screen.
type Theme struct {
	IsDark       bool
	ColorProfile termenv.Profile

	Width  int
	Height int

	// ==========================================================================
	// CHROME
	// ==========================================================================

	Header      lipgloss.Style
	HeaderBrand lipgloss.Style
	HeaderUser  lipgloss.Style
	CartBadge   lipgloss.Style
	StatusBar   lipgloss.Style
	ShortcutKey lipgloss.Style
	ShortcutDsc lipgloss.Style

	// ==========================================================================
	// TEXT
	// ==========================================================================

	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Label    lipgloss.Style
	Muted    lipgloss.Style
	Success  lipgloss.Style
	Warning  lipgloss.Style
	Error    lipgloss.Style

	// ==========================================================================
	// FORMS
	// ==========================================================================

	FormBox      lipgloss.Style
	Input        lipgloss.Style
	InputFocused lipgloss.Style
	Button       lipgloss.Style
	ButtonActive lipgloss.Style

	// ==========================================================================
	// CATALOG
	// ==========================================================================

	Card         lipgloss.Style
	CardSelected lipgloss.Style
	Badge        lipgloss.Style
	Price        lipgloss.Style
	OldPrice     lipgloss.Style
	Stars        lipgloss.Style

	// ==========================================================================
	// TABS AND TABLES
	// ==========================================================================

	Tab         lipgloss.Style
	TabActive   lipgloss.Style
	TableHeader lipgloss.Style
	RowSelected lipgloss.Style

	// ==========================================================================
	// ALERTS
	// ==========================================================================

	Toast        lipgloss.Style
	BlockedPanel lipgloss.Style
	ErrorPanel   lipgloss.Style
}

// NewTheme detects the terminal and builds the styles. mode is "auto",
// "dark" or "light"; anything else means auto.
func NewTheme(mode string) *Theme {
	t := &Theme{ColorProfile: termenv.ColorProfile()}
	switch strings.ToLower(mode) {
	case "dark":
		t.IsDark = true
		lipgloss.SetHasDarkBackground(true)
	case "light":
		t.IsDark = false
		lipgloss.SetHasDarkBackground(false)
	default:
		t.IsDark = termenv.HasDarkBackground()
	}
	t.initStyles()
	return t
}

func (t *Theme) initStyles() {
	t.Header = lipgloss.NewStyle().
		Background(BlueDeep).
		Foreground(lipgloss.Color("#FFFFFF")).
		Padding(0, 1)
	t.HeaderBrand = lipgloss.NewStyle().Bold(true).Foreground(Orange)
	t.HeaderUser = lipgloss.NewStyle().Foreground(lipgloss.Color("#E5E7EB"))
	t.CartBadge = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextInverse).
		Background(Orange).
		Padding(0, 1)
	t.StatusBar = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Background(SurfaceDim).
		Padding(0, 1)
	t.ShortcutKey = lipgloss.NewStyle().Bold(true).Foreground(Blue)
	t.ShortcutDsc = lipgloss.NewStyle().Foreground(TextMuted)

	t.Title = lipgloss.NewStyle().Bold(true).Foreground(TextPrimary).MarginBottom(1)
	t.Subtitle = lipgloss.NewStyle().Foreground(TextSecondary).Italic(true)
	t.Label = lipgloss.NewStyle().Foreground(TextSecondary)
	t.Muted = lipgloss.NewStyle().Foreground(TextMuted)
	t.Success = lipgloss.NewStyle().Foreground(Emerald)
	t.Warning = lipgloss.NewStyle().Foreground(Amber)
	t.Error = lipgloss.NewStyle().Bold(true).Foreground(Rose)

	t.FormBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(1, 3).
		Width(64)
	t.Input = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(Overlay).
		Padding(0, 1)
	t.InputFocused = t.Input.BorderForeground(Blue)
	t.Button = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Background(Overlay).
		Padding(0, 2)
	t.ButtonActive = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(Blue).
		Padding(0, 2)

	t.Card = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(0, 1).
		Width(34)
	t.CardSelected = t.Card.BorderForeground(Blue).BorderStyle(lipgloss.ThickBorder())
	t.Badge = lipgloss.NewStyle().
		Foreground(TextInverse).
		Background(Purple).
		Padding(0, 1)
	t.Price = lipgloss.NewStyle().Bold(true).Foreground(Orange)
	t.OldPrice = lipgloss.NewStyle().Foreground(TextMuted).Strikethrough(true)
	t.Stars = lipgloss.NewStyle().Foreground(Yellow)

	t.Tab = lipgloss.NewStyle().Foreground(TextSecondary).Padding(0, 2)
	t.TabActive = lipgloss.NewStyle().
		Bold(true).
		Foreground(Blue).
		Underline(true).
		Padding(0, 2)
	t.TableHeader = lipgloss.NewStyle().Bold(true).Foreground(TextSecondary)
	t.RowSelected = lipgloss.NewStyle().Background(SelectionBg)

	t.Toast = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		Padding(0, 1).
		Width(44)
	t.BlockedPanel = lipgloss.NewStyle().
		BorderStyle(lipgloss.DoubleBorder()).
		BorderForeground(Rose).
		Background(RoseDeep).
		Padding(1, 4).
		Align(lipgloss.Center).
		Width(60)
	t.ErrorPanel = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Rose).
		Padding(1, 4).
		Width(60)
}

// SetSize updates the dimensions for responsive layouts.
func (t *Theme) SetSize(width, height int) {
	t.Width = width
	t.Height = height
}

// Columns is how many product cards fit side by side.
func (t *Theme) Columns() int {
	switch {
	case t.Width >= 110:
		return 3
	case t.Width >= 74:
		return 2
	default:
		return 1
	}
}

// =============================================================================
// SEMANTIC HELPERS
// =============================================================================

// Risk returns the style for a risk level name.
func (t *Theme) Risk(level string) lipgloss.Style {
	switch level {
	case "high":
		return t.Error
	case "medium":
		return t.Warning
	default:
		return t.Success
	}
}

// AlertColor returns the border colour for an alert type name.
func AlertColor(kind string) lipgloss.AdaptiveColor {
	switch kind {
	case "danger":
		return Rose
	case "warning":
		return Amber
	default:
		return Blue
	}
}

// Status returns the style for a managed-user or order status.
func (t *Theme) Status(status string) lipgloss.Style {
	switch strings.ToLower(status) {
	case "active", "completed", "delivered", "processed":
		return t.Success
	case "blocked":
		return t.Error
	default:
		return t.Warning
	}
}
