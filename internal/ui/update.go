// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"errors"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jeranaias/shopfront-tui/internal/auth"
	"github.com/jeranaias/shopfront-tui/internal/router"
	"github.com/jeranaias/shopfront-tui/internal/ui/components"
)

// =============================================================================
// UPDATE
// =============================================================================

// Update handles all messages. A panic anywhere below is recovered and
// replaces the screen with the error view instead of killing the program.
func (m Model) Update(msg tea.Msg) (out tea.Model, cmd tea.Cmd) {
	defer func() {
		if r := recover(); r != nil {
			m.recoverFrom(r)
			out, cmd = m, nil
		}
	}()

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case alertMsg:
		return m.handleAlert(msg)

	case components.ToastTickMsg:
		if m.toasts.Tick(msg.Time) {
			return m, components.ToastTickCmd()
		}
		m.toastTicker = false
		return m, nil

	case flashExpiredMsg:
		if msg.seq == m.flashSeq {
			m.flash = ""
		}
		return m, nil

	case ConfigReloadedMsg:
		m.svc.ApplyConfig(msg.Config)
		m.toasts.SetDuration(m.svc.Config.UI.ToastTimeout.Duration)
		return m, m.setFlash("Configuration reloaded")

	case loginResultMsg:
		return m.handleLoginResult(msg)

	case signupResultMsg:
		return m.handleSignupResult(msg)

	case spinner.TickMsg:
		if !m.login.loading && !m.signup.loading {
			return m, nil
		}
		var c tea.Cmd
		m.spinner, c = m.spinner.Update(msg)
		return m, c
	}

	return m.forwardToInputs(msg)
}

// handleAlert turns a fresh alert into a toast and re-arms the wait.
func (m Model) handleAlert(msg alertMsg) (tea.Model, tea.Cmd) {
	cmds := []tea.Cmd{waitForAlert(m.alerts)}
	if msg.alert.Resolved {
		return m, tea.Batch(cmds...)
	}
	m.toasts.Add(msg.alert.Message, components.ParseToastKind(string(msg.alert.Type)), msg.alert.ID)
	if !m.toastTicker {
		m.toastTicker = true
		cmds = append(cmds, components.ToastTickCmd())
	}
	m.reroute()
	return m, tea.Batch(cmds...)
}

// =============================================================================
// KEY HANDLING
// =============================================================================

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.ForceQuit) {
		return m, tea.Quit
	}

	if m.crashed {
		switch {
		case key.Matches(msg, m.keys.Reload):
			return m, m.reload()
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		}
		return m, nil
	}

	if key.Matches(msg, m.keys.Dismiss) {
		for _, t := range m.toasts.Toasts() {
			m.toasts.Dismiss(t.ID)
		}
		return m, nil
	}

	var cmd tea.Cmd
	switch m.view {
	case router.ViewLogin:
		cmd = m.updateLogin(msg)
	case router.ViewSignup:
		cmd = m.updateSignup(msg)
	case router.ViewMain:
		cmd = m.updateShop(msg)
	case router.ViewAdmin:
		cmd = m.updateAdmin(msg)
	case router.ViewBlocked:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
	}
	m.reroute()
	return m, cmd
}

// typing reports whether a text input currently owns the keyboard.
func (m *Model) typing() bool {
	switch m.view {
	case router.ViewLogin, router.ViewSignup:
		return true
	case router.ViewMain:
		return m.shop.searching || m.shop.enteringCode
	case router.ViewAdmin:
		return m.admin.searching
	}
	return false
}

// handleGlobal processes the keys shared by the storefront and admin
// screens. It reports whether msg was consumed.
func (m *Model) handleGlobal(msg tea.KeyMsg) (tea.Cmd, bool) {
	if m.typing() {
		return nil, false
	}
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit, true
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return nil, true
	case key.Matches(msg, m.keys.Logout):
		return m.logout(), true
	}
	return nil, false
}

func (m *Model) logout() tea.Cmd {
	if err := m.svc.Auth.Logout(m.ctx); err != nil && !errors.Is(err, auth.ErrNotSignedIn) {
		m.logger.Warn("logout", zap.Error(err))
		return m.setFlash("Logout failed: " + err.Error())
	}
	m.svc.Cart.Clear()
	return nil
}

// =============================================================================
// AUTH RESULTS
// =============================================================================

func (m Model) handleLoginResult(msg loginResultMsg) (tea.Model, tea.Cmd) {
	m.login.loading = false
	if msg.err != nil {
		m.login.err = auth.Message(msg.err)
		m.login.password.SetValue("")
		m.reroute()
		return m, nil
	}
	m.reroute()
	return m, m.setFlash("Welcome back, " + msg.identity.Name)
}

func (m Model) handleSignupResult(msg signupResultMsg) (tea.Model, tea.Cmd) {
	m.signup.loading = false
	if msg.err != nil {
		m.signup.err = auth.Message(msg.err)
		return m, nil
	}
	m.wantSignup = false
	m.reroute()
	return m, m.setFlash("Welcome, " + msg.identity.Name)
}

// forwardToInputs passes non-key messages such as cursor blinks to the
// focused text input.
func (m Model) forwardToInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case router.ViewLogin:
		cmd = m.login.updateInputs(msg)
	case router.ViewSignup:
		cmd = m.signup.updateInputs(msg)
	case router.ViewMain:
		cmd = m.shop.updateInputs(msg)
	case router.ViewAdmin:
		cmd = m.admin.updateInputs(msg)
	}
	return m, cmd
}
