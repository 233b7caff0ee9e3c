// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// auth_cmd.go - login, logout, signup and status.

package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jeranaias/shopfront-tui/internal/auth"
	"github.com/jeranaias/shopfront-tui/internal/security"
	"github.com/jeranaias/shopfront-tui/internal/session"
	"github.com/jeranaias/shopfront-tui/internal/util"
)

// =============================================================================
// LOGIN / LOGOUT
// =============================================================================

// HandleLogin signs in through the same lockout guard as the TUI.
func HandleLogin(ctx context.Context, env *Env) error {
	p := NewArgParser(env.Args.Raw)
	email := p.FlagOrDefault("email", p.Positional(0))
	password := p.Flag("password")

	var err error
	if email == "" {
		if email, err = env.Prompter.Prompt("Email: "); err != nil {
			return err
		}
	}
	if password == "" {
		if password, err = env.Prompter.Password("Password: "); err != nil {
			return err
		}
	}
	if email == "" || password == "" {
		return auth.ErrMissingFields
	}

	id, err := env.Services.Auth.AttemptLogin(ctx, email, password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		if w := env.Services.Auth.LockoutWarning(); w != "" {
			env.warn(w)
		}
		return err
	}
	if err != nil {
		return err
	}

	return env.emit(CmdLogin, id, func() {
		fmt.Fprintf(env.Out, "%s Signed in as %s (%s)\n", SuccessStyle.Render("OK"), id.Email, id.Role)
	})
}

// HandleLogout clears the signed-in identity.
func HandleLogout(ctx context.Context, env *Env) error {
	id, _ := env.Services.Auth.Current()
	if err := env.Services.Auth.Logout(ctx); err != nil {
		return err
	}
	env.Services.Cart.Clear()
	return env.emit(CmdLogout, map[string]string{"email": id.Email}, func() {
		env.info("Signed out %s", id.Email)
	})
}

// =============================================================================
// SIGNUP
// =============================================================================

// HandleSignup creates and signs in a new user account.
func HandleSignup(ctx context.Context, env *Env) error {
	p := NewArgParser(env.Args.Raw)
	req := auth.SignupRequest{
		Name:     p.Flag("name"),
		Email:    p.Flag("email"),
		Password: p.Flag("password"),
	}
	req.Confirm = req.Password

	var err error
	if req.Name == "" {
		if req.Name, err = env.Prompter.Prompt("Full name: "); err != nil {
			return err
		}
	}
	if req.Email == "" {
		if req.Email, err = env.Prompter.Prompt("Email: "); err != nil {
			return err
		}
	}
	if req.Password == "" {
		if req.Password, err = env.Prompter.Password("Password: "); err != nil {
			return err
		}
		if req.Confirm, err = env.Prompter.Password("Confirm password: "); err != nil {
			return err
		}
	}

	id, err := env.Services.Auth.Signup(ctx, req)
	if errors.Is(err, auth.ErrWeakPassword) && !env.Args.JSON {
		for _, rule := range auth.CheckPassword(req.Password) {
			if !rule.Met {
				fmt.Fprintf(env.Err, "  %s %s\n", ErrorStyle.Render("x"), rule.Label)
			}
		}
	}
	if err != nil {
		return err
	}
	return env.emit(CmdSignup, id, func() {
		fmt.Fprintf(env.Out, "%s Account created for %s\n", SuccessStyle.Render("OK"), id.Email)
	})
}

// =============================================================================
// STATUS
// =============================================================================

// StatusReport is the status command's data.
type StatusReport struct {
	SignedIn          bool              `json:"signedIn"`
	User              *session.Identity `json:"user,omitempty"`
	Blocked           bool              `json:"blocked"`
	FailedAttempts    int               `json:"failedAttempts"`
	RemainingAttempts int               `json:"remainingAttempts"`
	Stats             security.Stats    `json:"stats"`
	Store             string            `json:"store"`
}

// HandleStatus shows who is signed in and the security summary.
func HandleStatus(_ context.Context, env *Env) error {
	svc := env.Services
	report := StatusReport{
		Blocked:           svc.Monitor.IsBlocked(),
		FailedAttempts:    svc.Sessions.Attempts(),
		RemainingAttempts: svc.Auth.RemainingAttempts(),
		Stats:             svc.Monitor.Stats(),
		Store:             env.Config.Store.Backend,
	}
	if id, ok := svc.Auth.Current(); ok {
		report.SignedIn = true
		report.User = &id
	}

	return env.emit(CmdStatus, report, func() {
		w := env.Out
		fmt.Fprintln(w, TitleStyle.Render("shopfront status"))
		fmt.Fprintln(w, Separator(40))
		if report.User != nil {
			fmt.Fprintln(w, FormatKeyValue("Signed in as", report.User.Email))
			fmt.Fprintln(w, FormatKeyValue("Role", string(report.User.Role)))
			if !report.User.LastLogin.IsZero() {
				fmt.Fprintln(w, FormatKeyValue("Last login", util.Ago(report.User.LastLogin, time.Now())))
			}
		} else {
			fmt.Fprintln(w, FormatKeyValue("Signed in as", DimStyle.Render("nobody")))
		}

		blocked := SuccessStyle.Render("no")
		if report.Blocked {
			blocked = ErrorStyle.Render("yes")
		}
		fmt.Fprintln(w, FormatKeyValue("Blocked", blocked))
		fmt.Fprintln(w, FormatKeyValue("Failed attempts",
			fmt.Sprintf("%d (%d remaining)", report.FailedAttempts, report.RemainingAttempts)))
		fmt.Fprintln(w, FormatKeyValue("Active alerts", fmt.Sprint(report.Stats.TotalAlerts)))
		fmt.Fprintln(w, FormatKeyValue("High-risk logs", fmt.Sprint(report.Stats.HighRiskLogs)))
		fmt.Fprintln(w, FormatKeyValue("Store", report.Store))
	})
}
