// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jeranaias/shopfront-tui/internal/logging"
	"github.com/jeranaias/shopfront-tui/internal/security"
	"github.com/jeranaias/shopfront-tui/internal/session"
	"github.com/jeranaias/shopfront-tui/internal/util"
)

// DefaultDelay stands in for the network round trip of login and signup.
const DefaultDelay = time.Second

// =============================================================================
// SERVICE
// =============================================================================

// Service signs users in and out. It owns no state: the identity and the
// attempt counter live in the session manager, events go to the monitor.
type Service struct {
	directory *Directory
	sessions  *session.Manager
	guard     *security.LockoutGuard
	monitor   *security.Monitor
	twoFactor *TwoFactor

	maxAttempts int
	delay       time.Duration
	clientIP    string
	now         func() time.Time
	logger      *zap.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithDirectory replaces the built-in demo accounts.
func WithDirectory(d *Directory) Option {
	return func(s *Service) { s.directory = d }
}

// WithDelay sets the simulated round-trip delay. Zero disables it.
func WithDelay(d time.Duration) Option {
	return func(s *Service) {
		if d >= 0 {
			s.delay = d
		}
	}
}

// WithMaxAttempts sets the lockout threshold.
func WithMaxAttempts(n int) Option {
	return func(s *Service) { s.maxAttempts = n }
}

// WithClientIP sets the address recorded with security log entries.
func WithClientIP(ip string) Option {
	return func(s *Service) { s.clientIP = ip }
}

// WithClock overrides time.Now. For tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithLogger sets the application logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Service) { s.logger = logging.OrNop(l) }
}

// NewService wires a Service over the session manager and monitor.
func NewService(sessions *session.Manager, monitor *security.Monitor, opts ...Option) *Service {
	s := &Service{
		directory:   NewDirectory(),
		sessions:    sessions,
		monitor:     monitor,
		twoFactor:   NewTwoFactor("Shopfront"),
		maxAttempts: security.DefaultMaxAttempts,
		delay:       DefaultDelay,
		clientIP:    "192.168.1.1",
		now:         time.Now,
		logger:      logging.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.guard = security.NewLockoutGuard(sessions,
		security.WithMaxAttempts(s.maxAttempts),
		security.WithLockoutLogger(s.logger))
	return s
}

// Directory returns the account directory.
func (s *Service) Directory() *Directory { return s.directory }

// Guard returns the lockout guard.
func (s *Service) Guard() *security.LockoutGuard { return s.guard }

// TwoFactor returns the authenticator enrollment registry.
func (s *Service) TwoFactor() *TwoFactor { return s.twoFactor }

// ClientIP returns the address recorded with security events.
func (s *Service) ClientIP() string { return s.clientIP }

// Current returns the signed-in identity.
func (s *Service) Current() (session.Identity, bool) {
	return s.sessions.Identity()
}

// =============================================================================
// LOGIN
// =============================================================================

// AttemptLogin checks credentials against the directory, subject to the
// lockout guard.
//
// Once the failure count has reached the threshold it returns ErrBlocked
// without looking at the credentials. Otherwise a mismatch increments the
// count and returns ErrInvalidCredentials, and a match resets the count,
// stamps LastLogin and persists the identity.
func (s *Service) AttemptLogin(ctx context.Context, email, password string) (session.Identity, error) {
	email = strings.TrimSpace(email)

	if err := s.guard.Check(); err != nil {
		s.recordFailure(ctx, email, s.guard.Attempts(), true)
		return session.Identity{}, ErrBlocked
	}

	if err := s.wait(ctx); err != nil {
		return session.Identity{}, err
	}

	var matched session.Identity
	previous, err := s.guard.Guard(ctx, email, func() (bool, error) {
		id, ok := s.directory.Verify(email, password)
		matched = id
		return ok, nil
	})
	switch {
	case errors.Is(err, security.ErrLockedOut):
		s.recordFailure(ctx, email, previous, true)
		return session.Identity{}, ErrBlocked
	case security.IsRejected(err):
		s.recordFailure(ctx, email, previous, false)
		return session.Identity{}, ErrInvalidCredentials
	case err != nil:
		return session.Identity{}, err
	}

	matched.LastLogin = s.now()
	if err := s.sessions.SetIdentity(ctx, matched); err != nil {
		s.logger.Warn("persist identity", zap.Error(err))
	}

	s.monitor.AddLog(ctx, security.LogEntry{
		UserID:    email,
		Action:    "Successful login",
		IP:        s.clientIP,
		RiskLevel: security.RiskLow,
		Details:   "User logged in successfully",
	})
	s.logger.Info("login succeeded", zap.String("user_id", matched.ID), zap.String("role", string(matched.Role)))
	return matched, nil
}

// recordFailure logs a failed attempt. The failure that reaches the
// threshold is high risk. Retries while locked stay medium so they do not
// push older alerts out of the capped list.
func (s *Service) recordFailure(ctx context.Context, email string, previous int, locked bool) {
	risk := security.RiskMedium
	details := "Login rejected: account locked after repeated failures"
	if !locked {
		details = fmt.Sprintf("Failed login attempt %d/%d", previous+1, s.guard.MaxAttempts())
		if previous >= s.guard.MaxAttempts()-1 {
			risk = security.RiskHigh
		}
	}
	s.monitor.AddLog(ctx, security.LogEntry{
		UserID:    email,
		Action:    "Failed login attempt",
		IP:        s.clientIP,
		RiskLevel: risk,
		Details:   details,
	})
}

// RemainingAttempts is what the login form warns about.
func (s *Service) RemainingAttempts() int {
	return s.guard.Remaining()
}

// LockoutWarning returns the inline warning shown under the login form,
// or "" when there have been no failures yet or the account is locked.
func (s *Service) LockoutWarning() string {
	attempts := s.guard.Attempts()
	remaining := s.guard.Remaining()
	if attempts == 0 || remaining == 0 {
		return ""
	}
	return fmt.Sprintf("Warning: %d %s remaining before account lockout",
		remaining, util.Plural(remaining, "attempt", "attempts"))
}

// =============================================================================
// SIGNUP / LOGOUT
// =============================================================================

// SignupRequest is the signup form.
type SignupRequest struct {
	Name     string
	Email    string
	Password string
	Confirm  string
}

// Signup validates the form, then creates and signs in a new user
// identity. The new account is not added to the directory, so it cannot
// sign in again after logging out.
func (s *Service) Signup(ctx context.Context, req SignupRequest) (session.Identity, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)

	if req.Name == "" || req.Email == "" || req.Password == "" {
		return session.Identity{}, ErrMissingFields
	}
	if req.Password != req.Confirm {
		return session.Identity{}, ErrPasswordMismatch
	}
	if !ValidPassword(req.Password) {
		return session.Identity{}, ErrWeakPassword
	}

	if err := s.wait(ctx); err != nil {
		return session.Identity{}, err
	}

	if s.directory.Exists(req.Email) {
		return session.Identity{}, ErrUserExists
	}

	now := s.now()
	id := session.Identity{
		ID:        strconv.FormatInt(now.UnixMilli(), 10),
		Email:     req.Email,
		Name:      req.Name,
		Role:      session.RoleUser,
		CreatedAt: now,
	}
	if err := s.sessions.SetIdentity(ctx, id); err != nil {
		s.logger.Warn("persist identity", zap.Error(err))
	}

	s.monitor.AddLog(ctx, security.LogEntry{
		UserID:    req.Email,
		Action:    "Account created",
		IP:        s.clientIP,
		RiskLevel: security.RiskLow,
		Details:   "New user account created successfully",
	})
	s.logger.Info("account created", zap.String("user_id", id.ID))
	return id, nil
}

// Logout clears the signed-in identity. The failure count is untouched.
func (s *Service) Logout(ctx context.Context) error {
	id, ok := s.sessions.Identity()
	if !ok {
		return ErrNotSignedIn
	}
	if err := s.sessions.ClearIdentity(ctx); err != nil {
		return err
	}
	s.logger.Info("logged out", zap.String("user_id", id.ID))
	return nil
}

// wait sleeps for the simulated delay, returning early if ctx ends.
func (s *Service) wait(ctx context.Context) error {
	if s.delay <= 0 {
		return nil
	}
	t := time.NewTimer(s.delay)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
