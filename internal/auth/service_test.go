// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/shopfront-tui/internal/kvstore"
	"github.com/jeranaias/shopfront-tui/internal/security"
	"github.com/jeranaias/shopfront-tui/internal/session"
)

var testNow = time.Date(2025, 3, 14, 9, 26, 0, 0, time.UTC)

type fixture struct {
	store    *kvstore.Memory
	sessions *session.Manager
	monitor  *security.Monitor
	svc      *Service
}

func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()
	ctx := context.Background()

	store := kvstore.NewMemory()
	sessions := session.NewManager(store)
	require.NoError(t, sessions.Restore(ctx))

	monitor := security.NewMonitor(security.WithBlockFlag(sessions))
	require.NoError(t, monitor.Restore(ctx))

	base := []Option{WithDelay(0), WithClock(func() time.Time { return testNow })}
	return &fixture{
		store:    store,
		sessions: sessions,
		monitor:  monitor,
		svc:      NewService(sessions, monitor, append(base, opts...)...),
	}
}

// =============================================================================
// LOGIN
// =============================================================================

func TestAttemptLogin_Admin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	id, err := f.svc.AttemptLogin(ctx, "admin@amazon.com", "admin123")
	require.NoError(t, err)
	assert.Equal(t, "1", id.ID)
	assert.Equal(t, session.RoleAdmin, id.Role)
	assert.Equal(t, testNow, id.LastLogin)

	cur, ok := f.svc.Current()
	require.True(t, ok)
	assert.Equal(t, "admin@amazon.com", cur.Email)

	raw, err := f.store.Get(ctx, session.KeyUser)
	require.NoError(t, err)
	assert.Contains(t, raw, `"role":"admin"`)

	logs := f.monitor.Logs()
	require.Len(t, logs, 1)
	assert.Equal(t, "Successful login", logs[0].Action)
	assert.Equal(t, security.RiskLow, logs[0].RiskLevel)
	assert.Equal(t, "192.168.1.1", logs[0].IP)
}

func TestAttemptLogin_EmailIsCaseInsensitive(t *testing.T) {
	f := newFixture(t)

	id, err := f.svc.AttemptLogin(context.Background(), "  User@Amazon.com ", "user123")
	require.NoError(t, err)
	assert.Equal(t, "John Doe", id.Name)
}

func TestAttemptLogin_ThreeFailuresLockOut(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		_, err := f.svc.AttemptLogin(ctx, "user@amazon.com", "wrong")
		require.ErrorIs(t, err, ErrInvalidCredentials, "attempt %d", i)
		assert.Equal(t, i, f.sessions.Attempts())
	}

	// Correct credentials are refused once locked.
	_, err := f.svc.AttemptLogin(ctx, "user@amazon.com", "user123")
	require.ErrorIs(t, err, ErrBlocked)
	_, ok := f.svc.Current()
	assert.False(t, ok)
	assert.Equal(t, 3, f.sessions.Attempts())

	logs := f.monitor.Logs()
	require.Len(t, logs, 4)
	// Newest first: blocked, 3/3, 2/3, 1/3.
	assert.Equal(t, security.RiskMedium, logs[0].RiskLevel)
	assert.Equal(t, "Login rejected: account locked after repeated failures", logs[0].Details)
	assert.Equal(t, "Failed login attempt 3/3", logs[1].Details)
	assert.Equal(t, security.RiskHigh, logs[1].RiskLevel)
	assert.Equal(t, security.RiskMedium, logs[2].RiskLevel)
	assert.Equal(t, "Failed login attempt 1/3", logs[3].Details)
	assert.Equal(t, security.RiskMedium, logs[3].RiskLevel)

	// Only the failure that reached the threshold raised an alert.
	alerts := f.monitor.Alerts()
	require.Len(t, alerts, 1)
	assert.Equal(t, security.AlertDanger, alerts[0].Type)
	assert.Equal(t, security.HighRiskMessage("Failed login attempt"), alerts[0].Message)
}

func TestAttemptLogin_LockedRetriesKeepBlockAlert(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for _i := 0; _i < 3; _i++ {
		_, _ = f.svc.AttemptLogin(ctx, "user@amazon.com", "wrong")
	}
	blocked := f.monitor.AddAlert(ctx, security.Alert{Type: security.AlertDanger, Message: security.BlockedMessage("user@amazon.com")})

	for _i := 0; _i < 20; _i++ {
		_, err := f.svc.AttemptLogin(ctx, "user@amazon.com", "user123")
		require.ErrorIs(t, err, ErrBlocked)
	}

	alerts := f.monitor.Alerts()
	require.Len(t, alerts, 2)
	assert.Equal(t, blocked.ID, alerts[0].ID)
}

func TestAttemptLogin_SuccessResetsCounter(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.AttemptLogin(ctx, "nobody@example.com", "x")
	require.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = f.svc.AttemptLogin(ctx, "user@amazon.com", "nope")
	require.ErrorIs(t, err, ErrInvalidCredentials)
	require.Equal(t, 2, f.sessions.Attempts())

	_, err = f.svc.AttemptLogin(ctx, "user@amazon.com", "user123")
	require.NoError(t, err)
	assert.Equal(t, 0, f.sessions.Attempts())

	_, err = f.store.Get(ctx, session.KeyLoginAttempts)
	assert.ErrorIs(t, err, kvstore.ErrNotFound)
}

func TestAttemptLogin_CustomThreshold(t *testing.T) {
	f := newFixture(t, WithMaxAttempts(5))
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		_, _ = f.svc.AttemptLogin(ctx, "user@amazon.com", "bad")
	}
	_, err := f.svc.AttemptLogin(ctx, "user@amazon.com", "user123")
	require.NoError(t, err)
	assert.Equal(t, 5, f.svc.Guard().MaxAttempts())
}

func TestAttemptLogin_HonoursContext(t *testing.T) {
	f := newFixture(t, WithDelay(time.Hour))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.svc.AttemptLogin(ctx, "user@amazon.com", "user123")
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, f.sessions.Attempts())
}

func TestLockoutWarning(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	assert.Empty(t, f.svc.LockoutWarning())

	_, _ = f.svc.AttemptLogin(ctx, "user@amazon.com", "bad")
	assert.Equal(t, "Warning: 2 attempts remaining before account lockout", f.svc.LockoutWarning())

	_, _ = f.svc.AttemptLogin(ctx, "user@amazon.com", "bad")
	assert.Equal(t, "Warning: 1 attempt remaining before account lockout", f.svc.LockoutWarning())
	assert.Equal(t, 1, f.svc.RemainingAttempts())

	_, _ = f.svc.AttemptLogin(ctx, "user@amazon.com", "bad")
	assert.Empty(t, f.svc.LockoutWarning())
}

// =============================================================================
// SIGNUP / LOGOUT
// =============================================================================

func TestSignup(t *testing.T) {
	f := newFixture(t)

	id, err := f.svc.Signup(context.Background(), SignupRequest{
		Name:     "Grace Hopper",
		Email:    "grace@example.com",
		Password: "Cobol#1959",
		Confirm:  "Cobol#1959",
	})
	require.NoError(t, err)
	assert.Equal(t, session.RoleUser, id.Role)
	assert.Equal(t, "1741944360000", id.ID)

	cur, ok := f.svc.Current()
	require.True(t, ok)
	assert.Equal(t, "grace@example.com", cur.Email)

	logs := f.monitor.Logs()
	require.Len(t, logs, 1)
	assert.Equal(t, "Account created", logs[0].Action)
	assert.Equal(t, "grace@example.com", logs[0].UserID)
}

func TestSignup_Errors(t *testing.T) {
	tests := []struct {
		name string
		req  SignupRequest
		want error
	}{
		{"missing name", SignupRequest{Email: "a@b.c", Password: "Abcdef1!", Confirm: "Abcdef1!"}, ErrMissingFields},
		{"mismatch before policy", SignupRequest{Name: "A", Email: "a@b.c", Password: "weak", Confirm: "other"}, ErrPasswordMismatch},
		{"weak", SignupRequest{Name: "A", Email: "a@b.c", Password: "abcdefgh", Confirm: "abcdefgh"}, ErrWeakPassword},
		{"existing", SignupRequest{Name: "A", Email: "ADMIN@amazon.com", Password: "Abcdef1!", Confirm: "Abcdef1!"}, ErrUserExists},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			_, err := f.svc.Signup(context.Background(), tt.req)
			require.ErrorIs(t, err, tt.want)
			_, ok := f.svc.Current()
			assert.False(t, ok)
			assert.Empty(t, f.monitor.Logs())
		})
	}
}

func TestSignup_AccountNotAddedToDirectory(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Signup(ctx, SignupRequest{Name: "N", Email: "n@example.com", Password: "Passw0rd!", Confirm: "Passw0rd!"})
	require.NoError(t, err)
	require.NoError(t, f.svc.Logout(ctx))

	_, err = f.svc.AttemptLogin(ctx, "n@example.com", "Passw0rd!")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogout(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.ErrorIs(t, f.svc.Logout(ctx), ErrNotSignedIn)

	_, err := f.svc.AttemptLogin(ctx, "user@amazon.com", "user123")
	require.NoError(t, err)
	require.NoError(t, f.svc.Logout(ctx))

	_, ok := f.svc.Current()
	assert.False(t, ok)
	_, err = f.store.Get(ctx, session.KeyUser)
	assert.ErrorIs(t, err, kvstore.ErrNotFound)
}
