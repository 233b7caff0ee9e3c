// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// security_cmd.go - logs, alerts, resolve, stats, block and reset.

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/jeranaias/shopfront-tui/internal/app"
	"github.com/jeranaias/shopfront-tui/internal/security"
	"github.com/jeranaias/shopfront-tui/internal/util"
)

// DefaultLogLimit is how many entries "logs" prints without --limit.
const DefaultLogLimit = 20

// =============================================================================
// LOGS
// =============================================================================

// HandleLogs prints the security log, newest first.
func HandleLogs(_ context.Context, env *Env) error {
	p := NewArgParser(env.Args.Raw)
	limit, err := p.FlagInt("limit", DefaultLogLimit)
	if err != nil {
		return err
	}
	var risk security.RiskLevel
	if raw := p.Flag("risk"); raw != "" {
		if risk, err = security.ParseRiskLevel(raw); err != nil {
			return &ValidationError{Field: "--risk", Value: raw, Reason: "must be low, medium or high"}
		}
	}

	var logs []security.LogEntry
	for _, l := range env.Services.Monitor.Logs() {
		if risk == "" || l.RiskLevel == risk {
			logs = append(logs, l)
		}
	}
	if limit > 0 && len(logs) > limit {
		logs = logs[:limit]
	}

	return env.emit(CmdLogs, logs, func() {
		if len(logs) == 0 {
			env.info("No security events.")
			return
		}
		writeLogTable(env.Out, logs, time.Now())
	})
}

func writeLogTable(w io.Writer, logs []security.LogEntry, now time.Time) {
	fmt.Fprintf(w, "%s %s %s %s %s\n",
		util.PadRight("WHEN", 10), util.PadRight("RISK", 7), util.PadRight("USER", 20),
		util.PadRight("ACTION", 28), "IP")
	for _, l := range logs {
		fmt.Fprintf(w, "%s %s %s %s %s\n",
			DimStyle.Render(util.PadRight(util.Ago(l.Timestamp, now), 10)),
			RiskStyle(l.RiskLevel).Render(util.PadRight(string(l.RiskLevel), 7)),
			util.PadRight(l.UserID, 20),
			util.PadRight(l.Action, 28),
			DimStyle.Render(l.IP))
		if l.Details != "" {
			fmt.Fprintf(w, "%s %s\n", util.PadRight("", 10), DimStyle.Render(util.TruncateWidth(l.Details, 70)))
		}
	}
}

// =============================================================================
// ALERTS
// =============================================================================

// HandleAlerts lists unresolved alerts, or every alert with --all.
func HandleAlerts(_ context.Context, env *Env) error {
	p := NewArgParser(env.Args.Raw, "all")
	alerts := env.Services.Monitor.ActiveAlerts()
	if p.BoolFlag("all") {
		alerts = env.Services.Monitor.Alerts()
	}

	return env.emit(CmdAlerts, alerts, func() {
		if len(alerts) == 0 {
			env.info("%s No active security alerts.", SuccessStyle.Render("All clear."))
			return
		}
		now := time.Now()
		for _, a := range alerts {
			state := ""
			if a.Resolved {
				state = DimStyle.Render(" (resolved)")
			}
			fmt.Fprintf(env.Out, "%s  %s  %s%s\n",
				DimStyle.Render(a.ID),
				AlertStyle(a.Type).Render(util.PadRight(string(a.Type), 8)),
				a.Message, state)
			fmt.Fprintf(env.Out, "    %s\n", DimStyle.Render(util.Ago(a.Timestamp, now)))
		}
	})
}

// HandleResolve marks an alert resolved.
func HandleResolve(ctx context.Context, env *Env) error {
	p := NewArgParser(env.Args.Raw)
	id, err := p.requirePositional(0, "alert id", "shopfront resolve <id>")
	if err != nil {
		return err
	}
	if err := env.Services.Monitor.ResolveAlert(ctx, id); err != nil {
		return &CommandError{Command: "resolve", Action: id, Err: err}
	}
	return env.emit(CmdResolve, map[string]any{"id": id, "resolved": true}, func() {
		fmt.Fprintf(env.Out, "%s Alert %s resolved\n", SuccessStyle.Render("OK"), id)
	})
}

// HandleStats prints the derived counters.
func HandleStats(_ context.Context, env *Env) error {
	stats := env.Services.Monitor.Stats()
	return env.emit(CmdStats, stats, func() {
		fmt.Fprintln(env.Out, TitleStyle.Render("Security stats"))
		fmt.Fprintln(env.Out, FormatKeyValue("Active alerts", fmt.Sprint(stats.TotalAlerts)))
		fmt.Fprintln(env.Out, FormatKeyValue("Resolved alerts", fmt.Sprint(stats.ResolvedAlerts)))
		fmt.Fprintln(env.Out, FormatKeyValue("High-risk logs", fmt.Sprint(stats.HighRiskLogs)))
		fmt.Fprintln(env.Out, FormatKeyValue("Blocked users", fmt.Sprint(stats.BlockedUsers)))
	})
}

// =============================================================================
// BLOCK / RESET
// =============================================================================

// HandleBlock blocks the local session and raises the danger alert.
func HandleBlock(ctx context.Context, env *Env) error {
	user := NewArgParser(env.Args.Raw).Positional(0)
	if err := env.Services.Block(ctx, user); err != nil {
		return err
	}
	if user == "" {
		user = "current session"
	}
	return env.emit(CmdBlock, map[string]any{"user": user, "blocked": true}, func() {
		fmt.Fprintf(env.Out, "%s %s blocked\n", WarningStyle.Render("!"), user)
	})
}

// HandleReset clears the blocked flag and the failed-login counter.
func HandleReset(ctx context.Context, env *Env) error {
	err := env.Services.Unblock(ctx)
	if errors.Is(err, app.ErrNotBlocked) {
		return env.emit(CmdReset, map[string]any{"reset": false}, func() {
			env.info("Nothing to reset: %s.", err)
		})
	}
	if err != nil {
		return err
	}
	return env.emit(CmdReset, map[string]any{"reset": true}, func() {
		fmt.Fprintf(env.Out, "%s Block and failed-login counter cleared\n", SuccessStyle.Render("OK"))
	})
}
