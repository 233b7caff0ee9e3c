// shopfront - a terminal storefront with a security dashboard.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jeranaias/shopfront-tui/internal/cli"
	"github.com/jeranaias/shopfront-tui/internal/config"
	"github.com/jeranaias/shopfront-tui/internal/ui"
)

// Version information (set at build time)
var (
	Version   = "1.0.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := cli.Main(ctx, os.Args[1:], cli.WithTUI(runTUI))
	stop()
	os.Exit(code)
}

// runTUI starts the full-screen interface and feeds config reloads into it.
func runTUI(ctx context.Context, env *cli.Env) error {
	if !cli.IsTTY() {
		return &cli.TTYRequiredError{Operation: "run the storefront"}
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	m := ui.New(ctx, env.Services, ui.WithDebug(env.Args.Debug))
	defer m.Close()

	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)

	go func() {
		err := config.Watch(ctx, env.ConfigPath, func(cfg *config.Config) {
			p.Send(ui.ConfigReloadedMsg{Config: cfg})
		}, func(err error) {
			env.Logger.Warn("config reload failed", zap.Error(err))
		})
		if err != nil {
			env.Logger.Debug("config watch stopped", zap.Error(err))
		}
	}()

	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
