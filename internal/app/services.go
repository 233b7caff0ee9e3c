// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/jeranaias/shopfront-tui/internal/auth"
	"github.com/jeranaias/shopfront-tui/internal/cart"
	"github.com/jeranaias/shopfront-tui/internal/catalog"
	"github.com/jeranaias/shopfront-tui/internal/config"
	"github.com/jeranaias/shopfront-tui/internal/dashboard"
	"github.com/jeranaias/shopfront-tui/internal/kvstore"
	"github.com/jeranaias/shopfront-tui/internal/logging"
	"github.com/jeranaias/shopfront-tui/internal/security"
	"github.com/jeranaias/shopfront-tui/internal/session"
)

// =============================================================================
// SERVICES
// =============================================================================

// Services is every long-lived object the front ends share. It is built
// once in main and passed down; nothing here is a package global.
type Services struct {
	Config *config.Config
	Logger *zap.Logger

	Store     kvstore.Store
	Sessions  *session.Manager
	Monitor   *security.Monitor
	Auth      *auth.Service
	Catalog   *catalog.Catalog
	Favorites *catalog.Favorites
	Cart      *cart.Cart
	Users     *dashboard.Users

	ownsStore bool
}

// Option configures New.
type Option func(*options)

type options struct {
	logger  *zap.Logger
	store   kvstore.Store
	authOpt []auth.Option
}

// WithLogger sets the logger shared by every service.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithStore uses store instead of opening the configured backend. The
// caller keeps ownership and Close leaves it open.
func WithStore(store kvstore.Store) Option {
	return func(o *options) { o.store = store }
}

// WithAuthOptions appends options for the auth service, after the ones
// derived from config.
func WithAuthOptions(opts ...auth.Option) Option {
	return func(o *options) { o.authOpt = append(o.authOpt, opts...) }
}

// New opens the store, restores the session and security journal, and
// wires the services together according to cfg.
func New(ctx context.Context, cfg *config.Config, opts ...Option) (*Services, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	logger := logging.OrNop(o.logger)

	s := &Services{Config: cfg, Logger: logger}

	if o.store != nil {
		s.Store = o.store
	} else {
		dir, err := cfg.DataDir()
		if err != nil {
			return nil, err
		}
		store, err := kvstore.Open(ctx, kvstore.Options{
			Backend:     cfg.Store.Backend,
			Dir:         dir,
			RedisAddr:   cfg.Store.RedisAddr,
			RedisPrefix: cfg.Store.RedisPrefix,
		})
		if err != nil {
			return nil, fmt.Errorf("open %s store: %w", cfg.Store.Backend, err)
		}
		s.Store = store
		s.ownsStore = true
	}

	s.Sessions = session.NewManager(s.Store, session.WithLogger(logger.Named("session")))
	s.Monitor = security.NewMonitor(
		security.WithMaxLogs(cfg.Security.MaxLogs),
		security.WithMaxAlerts(cfg.Security.MaxAlerts),
		security.WithBlockFlag(s.Sessions),
		security.WithJournal(security.NewKVJournal(s.Store)),
		security.WithSampleLogs(cfg.Security.SeedSampleLogs),
		security.WithMonitorLogger(logger.Named("security")),
	)

	authOpts := append([]auth.Option{
		auth.WithMaxAttempts(cfg.Security.MaxLoginAttempts),
		auth.WithDelay(cfg.Security.LoginDelay.Duration),
		auth.WithClientIP(cfg.Security.ClientIP),
		auth.WithLogger(logger.Named("auth")),
	}, o.authOpt...)
	s.Auth = auth.NewService(s.Sessions, s.Monitor, authOpts...)

	s.Catalog = catalog.Default()
	s.Favorites = catalog.NewFavorites()
	s.Cart = cart.New()
	s.Users = dashboard.NewUsers()

	if err := s.Restore(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}
	logger.Info("services ready",
		zap.String("store", cfg.Store.Backend),
		zap.Int("max_login_attempts", s.Auth.Guard().MaxAttempts()))
	return s, nil
}

// Restore reloads the session and the security journal from the store.
// The TUI's reload action calls it after an error.
func (s *Services) Restore(ctx context.Context) error {
	if err := s.Sessions.Restore(ctx); err != nil {
		return fmt.Errorf("restore session: %w", err)
	}
	if err := s.Monitor.Restore(ctx); err != nil {
		return fmt.Errorf("restore security journal: %w", err)
	}
	return nil
}

// ApplyConfig adopts the parts of cfg that can change at runtime: the
// security caps and the UI settings. Store and lockout settings need a
// restart.
func (s *Services) ApplyConfig(cfg *config.Config) {
	if cfg == nil {
		return
	}
	s.Monitor.SetLimits(cfg.Security.MaxLogs, cfg.Security.MaxAlerts)
	s.Config.Security.MaxLogs = cfg.Security.MaxLogs
	s.Config.Security.MaxAlerts = cfg.Security.MaxAlerts
	s.Config.UI = cfg.UI
	s.Logger.Info("config reloaded",
		zap.Int("max_logs", cfg.Security.MaxLogs),
		zap.Int("max_alerts", cfg.Security.MaxAlerts))
}

// Close releases the store if New opened it.
func (s *Services) Close() error {
	_ = s.Logger.Sync()
	if s.ownsStore && s.Store != nil {
		return s.Store.Close()
	}
	return nil
}

// =============================================================================
// BLOCKING
// =============================================================================

// ErrNotBlocked is returned by Unblock when there is nothing to clear.
var ErrNotBlocked = errors.New("session is not blocked or locked out")

// Block marks the local session as blocked and raises the alert.
func (s *Services) Block(ctx context.Context, userID string) error {
	if userID == "" {
		if id, ok := s.Sessions.Identity(); ok {
			userID = id.Email
		} else {
			userID = CurrentUser
		}
	}
	return s.Monitor.BlockUser(ctx, userID)
}

// Unblock clears both the blocked flag and the failed-login counter.
func (s *Services) Unblock(ctx context.Context) error {
	if !s.Sessions.Blocked() && s.Sessions.Attempts() == 0 {
		return ErrNotBlocked
	}
	if err := s.Monitor.UnblockUser(ctx); err != nil {
		return err
	}
	return s.Auth.Guard().Reset(ctx)
}
