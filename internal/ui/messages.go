// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/shopfront-tui/internal/app"
	"github.com/jeranaias/shopfront-tui/internal/auth"
	"github.com/jeranaias/shopfront-tui/internal/config"
	"github.com/jeranaias/shopfront-tui/internal/security"
	"github.com/jeranaias/shopfront-tui/internal/session"
)

// =============================================================================
// MESSAGES
// =============================================================================

// loginResultMsg carries the outcome of a sign-in attempt.
type loginResultMsg struct {
	identity session.Identity
	err      error
}

// signupResultMsg carries the outcome of account creation.
type signupResultMsg struct {
	identity session.Identity
	err      error
}

// alertMsg announces a newly raised security alert.
type alertMsg struct {
	alert security.Alert
}

// flashExpiredMsg clears the status line if nothing replaced it.
type flashExpiredMsg struct {
	seq int
}

// ConfigReloadedMsg is sent into the program when the config file changes
// on disk.
type ConfigReloadedMsg struct {
	Config *config.Config
}

// =============================================================================
// COMMANDS
// =============================================================================

// loginCmd runs the sign-in off the update loop; it includes the
// simulated network delay.
func loginCmd(ctx context.Context, svc *app.Services, email, password string) tea.Cmd {
	return func() tea.Msg {
		id, err := svc.Auth.AttemptLogin(ctx, email, password)
		return loginResultMsg{identity: id, err: err}
	}
}

func signupCmd(ctx context.Context, svc *app.Services, req auth.SignupRequest) tea.Cmd {
	return func() tea.Msg {
		id, err := svc.Auth.Signup(ctx, req)
		return signupResultMsg{identity: id, err: err}
	}
}

// waitForAlert blocks until the monitor raises an alert. It is re-armed
// after every delivery.
func waitForAlert(ch <-chan security.Alert) tea.Cmd {
	return func() tea.Msg {
		a, ok := <-ch
		if !ok {
			return nil
		}
		return alertMsg{alert: a}
	}
}

func flashExpireCmd(seq int) tea.Cmd {
	return tea.Tick(4*time.Second, func(time.Time) tea.Msg {
		return flashExpiredMsg{seq: seq}
	})
}
