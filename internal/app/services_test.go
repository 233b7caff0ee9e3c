// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/shopfront-tui/internal/auth"
	"github.com/jeranaias/shopfront-tui/internal/catalog"
	"github.com/jeranaias/shopfront-tui/internal/config"
	"github.com/jeranaias/shopfront-tui/internal/kvstore"
	"github.com/jeranaias/shopfront-tui/internal/security"
)

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Security.LoginDelay = config.Duration{}
	cfg.Security.SeedSampleLogs = false
	return cfg
}

func TestNew_SQLiteInDataDir(t *testing.T) {
	cfg := testConfig()
	cfg.Store.DataDir = t.TempDir()
	ctx := context.Background()

	svc, err := New(ctx, cfg)
	require.NoError(t, err)

	_, err = svc.Auth.AttemptLogin(ctx, "admin@amazon.com", "admin123")
	require.NoError(t, err)
	require.NoError(t, svc.Close())

	// A second process sees the session and the journal.
	svc, err = New(ctx, cfg)
	require.NoError(t, err)
	defer svc.Close()

	id, ok := svc.Sessions.Identity()
	require.True(t, ok)
	assert.True(t, id.IsAdmin())
	require.Len(t, svc.Monitor.Logs(), 1)
	assert.Equal(t, "Successful login", svc.Monitor.Logs()[0].Action)
}

func TestNew_SeedsSampleLogsOnce(t *testing.T) {
	cfg := testConfig()
	cfg.Security.SeedSampleLogs = true
	store := kvstore.NewMemory()
	ctx := context.Background()

	svc, err := New(ctx, cfg, WithStore(store))
	require.NoError(t, err)
	require.Len(t, svc.Monitor.Logs(), 2)

	svc.Monitor.AddLog(ctx, security.LogEntry{UserID: "u", Action: "x"})

	svc, err = New(ctx, cfg, WithStore(store))
	require.NoError(t, err)
	assert.Len(t, svc.Monitor.Logs(), 3)
}

func TestShopActivity(t *testing.T) {
	ctx := context.Background()
	svc, err := New(ctx, testConfig(), WithStore(kvstore.NewMemory()))
	require.NoError(t, err)

	d, err := svc.ViewProduct(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, 47, d.InStock)

	require.NoError(t, svc.AddToCart(ctx, "1", 2))
	on, err := svc.ToggleFavorite(ctx, "3")
	require.NoError(t, err)
	assert.True(t, on)

	_, err = svc.ViewProduct(ctx, "nope")
	assert.ErrorIs(t, err, catalog.ErrProductNotFound)

	logs := svc.Monitor.Logs()
	require.Len(t, logs, 3)
	assert.Equal(t, "Product favorited", logs[0].Action)
	assert.Equal(t, "Product Wireless Bluetooth Headphones added to cart (qty: 2)", logs[1].Details)
	assert.Equal(t, "Product 1 viewed", logs[2].Details)
	for _, l := range logs {
		assert.Equal(t, CurrentUser, l.UserID)
		assert.Equal(t, security.RiskLow, l.RiskLevel)
	}
	assert.Equal(t, 2, svc.Cart.TotalItems())
}

func TestBlockAndUnblock(t *testing.T) {
	ctx := context.Background()
	svc, err := New(ctx, testConfig(), WithStore(kvstore.NewMemory()))
	require.NoError(t, err)

	require.ErrorIs(t, svc.Unblock(ctx), ErrNotBlocked)

	for i := 0; i < 3; i++ {
		_, _ = svc.Auth.AttemptLogin(ctx, "user@amazon.com", "bad")
	}
	require.NoError(t, svc.Block(ctx, "user@amazon.com"))
	assert.True(t, svc.Sessions.Blocked())
	assert.Equal(t, 1, svc.Monitor.Stats().BlockedUsers)
	assert.Equal(t, security.BlockedMessage("user@amazon.com"), svc.Monitor.Alerts()[0].Message)

	require.NoError(t, svc.Unblock(ctx))
	assert.False(t, svc.Sessions.Blocked())
	assert.Zero(t, svc.Sessions.Attempts())

	_, err = svc.Auth.AttemptLogin(ctx, "user@amazon.com", "user123")
	assert.NoError(t, err)
}

func TestApplyConfig(t *testing.T) {
	ctx := context.Background()
	svc, err := New(ctx, testConfig(), WithStore(kvstore.NewMemory()))
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		svc.Monitor.AddLog(ctx, security.LogEntry{Action: "a"})
	}
	next := testConfig()
	next.Security.MaxLogs = 2
	next.UI.ToastTimeout = config.Duration{Duration: 3 * time.Second}
	svc.ApplyConfig(next)

	assert.Len(t, svc.Monitor.Logs(), 2)
	assert.Equal(t, 3*time.Second, svc.Config.UI.ToastTimeout.Duration)
}

func TestWithAuthOptions(t *testing.T) {
	ctx := context.Background()
	svc, err := New(ctx, testConfig(), WithStore(kvstore.NewMemory()),
		WithAuthOptions(auth.WithMaxAttempts(1)))
	require.NoError(t, err)

	_, _ = svc.Auth.AttemptLogin(ctx, "user@amazon.com", "bad")
	_, err = svc.Auth.AttemptLogin(ctx, "user@amazon.com", "user123")
	assert.ErrorIs(t, err, auth.ErrBlocked)
}
