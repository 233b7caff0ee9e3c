// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jeranaias/shopfront-tui/internal/config"
	"github.com/jeranaias/shopfront-tui/internal/server"
)

// HandleServe runs the admin API until ctx is cancelled, reloading the
// rate limit and security caps when the config file changes.
func HandleServe(ctx context.Context, env *Env) error {
	logger := env.Logger.Named("server")
	srv, err := server.New(env.Services, env.Config.Server, server.WithLogger(logger))
	if err != nil {
		return err
	}

	go func() {
		err := config.Watch(ctx, env.ConfigPath, srv.ApplyConfig, func(err error) {
			logger.Warn("config reload failed", zap.Error(err))
		})
		if err != nil {
			logger.Warn("config watch stopped", zap.Error(err))
		}
	}()

	env.info("Admin API on http://%s (Ctrl+C to stop)", env.Config.Server.Addr)
	if err := srv.Start(ctx); err != nil {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}
