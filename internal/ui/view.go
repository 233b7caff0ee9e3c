// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/jeranaias/shopfront-tui/internal/router"
	"github.com/jeranaias/shopfront-tui/internal/ui/components"
)

// =============================================================================
// VIEW
// =============================================================================

// View renders the active screen. Like Update it recovers from panics and
// shows the error screen in their place.
func (m Model) View() (out string) {
	defer func() {
		if r := recover(); r != nil {
			m.logger.Error("recovered panic in view", zap.Any("panic", r))
			out = components.ErrorScreen(m.theme, "", m.width, m.height)
		}
	}()

	if m.crashed {
		return components.ErrorScreen(m.theme, m.crashDetail, m.width, m.height)
	}

	switch m.view {
	case router.ViewBlocked:
		return components.BlockedScreen(m.theme, m.width, m.height)
	case router.ViewLogin:
		return m.withToasts(m.viewLogin())
	case router.ViewSignup:
		return m.withToasts(m.viewSignup())
	case router.ViewAdmin:
		return m.layout(m.viewAdmin(), m.keys.adminHelp())
	default:
		return m.layout(m.viewShop(), m.keys.shopHelp())
	}
}

// withToasts stacks the toasts above a full-screen view.
func (m Model) withToasts(body string) string {
	toasts := components.RenderToasts(m.theme, m.toasts.Toasts())
	if toasts == "" {
		return body
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.PlaceHorizontal(m.width, lipgloss.Right, toasts),
		body)
}

// layout wraps a signed-in screen in the header and status bar.
func (m Model) layout(body string, bindings []key.Binding) string {
	m.syncHeader()

	helpView := m.help.ShortHelpView(bindings)
	if m.help.ShowAll {
		helpView = m.help.FullHelpView(m.keys.FullHelp())
	}
	m.status.Message = m.flash
	m.status.Help = ""
	if m.svc.Config.UI.ShowKeyHelp && !m.help.ShowAll {
		m.status.Help = helpView
	}

	height := m.bodyHeight()
	if m.help.ShowAll {
		height -= lipgloss.Height(helpView)
	}
	content := m.withToasts(body)
	content = lipgloss.NewStyle().
		Width(m.width).
		Height(max(height, 1)).
		MaxHeight(max(height, 1)).
		Padding(0, 1).
		Render(content)

	parts := []string{m.header.View(), content}
	if m.help.ShowAll {
		parts = append(parts, helpView)
	}
	parts = append(parts, m.status.View())
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// syncHeader copies the session and cart state into the header.
func (m Model) syncHeader() {
	h := m.header
	h.UserName, h.Admin = "", false
	if id, ok := m.svc.Auth.Current(); ok {
		h.UserName = id.Name
		h.Admin = id.IsAdmin()
	}
	h.CartCount = m.svc.Cart.TotalItems()

	if m.view == router.ViewAdmin {
		h.Tabs = make([]string, len(router.AdminSections))
		for i, s := range router.AdminSections {
			h.Tabs[i] = s.Label()
			if s == m.admin.nav.Section() {
				h.Active = i
			}
		}
		return
	}

	h.Tabs = []string{"Home", "Cart", "Profile"}
	switch m.shop.nav.Page() {
	case router.PageCart:
		h.Active = 1
	case router.PageProfile:
		h.Active = 2
	default:
		h.Active = 0
	}
}
