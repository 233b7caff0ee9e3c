// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/shopfront-tui/internal/ui/styles"
)

func TestToastManager_Expiry(t *testing.T) {
	start := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	m := NewToastManager(10 * time.Second)
	m.now = func() time.Time { return start }

	m.Add("first", ToastInfo, "")
	m.now = func() time.Time { return start.Add(4 * time.Second) }
	m.Add("second", ToastDanger, "a-1")

	assert.True(t, m.Tick(start.Add(9*time.Second)))
	assert.Len(t, m.Toasts(), 2)

	assert.True(t, m.Tick(start.Add(10*time.Second)))
	toasts := m.Toasts()
	require.Len(t, toasts, 1)
	assert.Equal(t, "second", toasts[0].Message)

	assert.False(t, m.Tick(start.Add(14*time.Second)))
}

func TestToastManager_DedupAndCap(t *testing.T) {
	m := NewToastManager(0)
	id := m.Add("alert", ToastDanger, "a-1")
	assert.Equal(t, id, m.Add("alert again", ToastDanger, "a-1"))

	for i := 0; i < MaxToasts+2; i++ {
		m.Add("x", ToastInfo, "")
	}
	assert.Len(t, m.Toasts(), MaxToasts)

	m.Add("y", ToastWarning, "a-2")
	m.DismissAlert("a-2")
	for _, toast := range m.Toasts() {
		assert.NotEqual(t, "a-2", toast.AlertID)
	}
}

func TestParseToastKind(t *testing.T) {
	assert.Equal(t, ToastDanger, ParseToastKind("danger"))
	assert.Equal(t, ToastWarning, ParseToastKind("warning"))
	assert.Equal(t, ToastInfo, ParseToastKind("info"))
}

func TestHeaderView(t *testing.T) {
	theme := styles.NewTheme("dark")
	h := NewHeader(theme)
	h.UserName = "John Doe"
	h.CartCount = 3
	h.Tabs = []string{"Home", "Cart", "Profile"}
	h.SetWidth(100)

	out := h.View()
	assert.Contains(t, out, "SecureShop")
	assert.Contains(t, out, "cart 3")
	assert.Contains(t, out, "Profile")
	assert.LessOrEqual(t, lipgloss.Width(out), 100)

	h.SetWidth(40)
	assert.NotContains(t, h.View(), "Profile")
}

func TestStatusBarView(t *testing.T) {
	s := NewStatusBar(styles.NewTheme("light"))
	s.Message = "Signed in"
	s.Help = "q quit"
	s.SetWidth(60)
	out := s.View()
	assert.True(t, strings.Contains(out, "Signed in") && strings.Contains(out, "q quit"))
}

func TestScreens(t *testing.T) {
	theme := styles.NewTheme("dark")
	assert.Contains(t, ErrorScreen(theme, "", 80, 24), "Something went wrong")
	assert.Contains(t, BlockedScreen(theme, 80, 24), "Account Blocked")
}
