// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package security

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/jeranaias/shopfront-tui/internal/logging"
)

// DefaultMaxAttempts is the number of consecutive failures that blocks
// further login attempts.
const DefaultMaxAttempts = 3

// ErrLockedOut is returned by Check once the failure count has reached
// the limit. There is no time-based unlock.
var ErrLockedOut = errors.New("too many failed login attempts")

// AttemptCounter is the persisted consecutive-failure count.
// session.Manager implements it.
type AttemptCounter interface {
	Attempts() int
	IncrementAttempts(ctx context.Context) (int, error)
	ResetAttempts(ctx context.Context) error
}

// =============================================================================
// LOCKOUT GUARD
// =============================================================================

// LockoutGuard decides whether a credential check may run at all.
// It holds no state of its own; the count lives in the AttemptCounter.
type LockoutGuard struct {
	mu          sync.Mutex
	counter     AttemptCounter
	maxAttempts int
	logger      *zap.Logger
}

// LockoutOption configures a LockoutGuard.
type LockoutOption func(*LockoutGuard)

// WithMaxAttempts sets the lockout threshold. Values below 1 are ignored.
func WithMaxAttempts(n int) LockoutOption {
	return func(g *LockoutGuard) {
		if n > 0 {
			g.maxAttempts = n
		}
	}
}

// WithLockoutLogger sets the application logger.
func WithLockoutLogger(l *zap.Logger) LockoutOption {
	return func(g *LockoutGuard) {
		g.logger = logging.OrNop(l)
	}
}

// NewLockoutGuard creates a guard over counter.
func NewLockoutGuard(counter AttemptCounter, opts ...LockoutOption) *LockoutGuard {
	g := &LockoutGuard{
		counter:     counter,
		maxAttempts: DefaultMaxAttempts,
		logger:      logging.Nop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// MaxAttempts returns the lockout threshold.
func (g *LockoutGuard) MaxAttempts() int {
	return g.maxAttempts
}

// Attempts returns the current failure count.
func (g *LockoutGuard) Attempts() int {
	return g.counter.Attempts()
}

// Remaining returns how many more failures are allowed before lockout.
func (g *LockoutGuard) Remaining() int {
	r := g.maxAttempts - g.counter.Attempts()
	if r < 0 {
		return 0
	}
	return r
}

// IsLocked reports whether the threshold has been reached.
func (g *LockoutGuard) IsLocked() bool {
	return g.counter.Attempts() >= g.maxAttempts
}

// Check returns ErrLockedOut when no credential check may run.
func (g *LockoutGuard) Check() error {
	if g.IsLocked() {
		return ErrLockedOut
	}
	return nil
}

// Guard runs verify unless locked out, then records the outcome: a
// failure increments the counter, a success resets it. previous is the
// count before this attempt, which callers use to grade the risk of a
// failure. verify must report bad credentials as (false, nil); an error
// from verify is returned as-is and leaves the counter untouched.
func (g *LockoutGuard) Guard(ctx context.Context, identifier string, verify func() (bool, error)) (previous int, err error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	previous = g.counter.Attempts()
	if previous >= g.maxAttempts {
		g.logger.Warn("login rejected: locked out",
			zap.String("identifier", maskIdentifier(identifier)),
			zap.Int("attempts", previous))
		return previous, ErrLockedOut
	}

	ok, err := verify()
	if err != nil {
		return previous, err
	}

	if !ok {
		n, perr := g.counter.IncrementAttempts(ctx)
		g.logger.Info("login failed",
			zap.String("identifier", maskIdentifier(identifier)),
			zap.Int("attempts", n),
			zap.Int("max_attempts", g.maxAttempts))
		if perr != nil {
			g.logger.Warn("persist attempt counter", zap.Error(perr))
		}
		return previous, errCredentialsRejected
	}

	if perr := g.counter.ResetAttempts(ctx); perr != nil {
		g.logger.Warn("reset attempt counter", zap.Error(perr))
	}
	return previous, nil
}

// errCredentialsRejected is returned by Guard when verify reported a
// mismatch. Callers translate it into their own user-facing error.
var errCredentialsRejected = errors.New("credentials rejected")

// IsRejected reports whether err came from a failed verify in Guard.
func IsRejected(err error) bool {
	return errors.Is(err, errCredentialsRejected)
}

// Reset clears the counter (admin unlock).
func (g *LockoutGuard) Reset(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.counter.ResetAttempts(ctx); err != nil {
		return fmt.Errorf("reset lockout: %w", err)
	}
	g.logger.Info("lockout reset")
	return nil
}

// maskIdentifier keeps the first two characters and the domain of an email
// so logs stay useful without recording full addresses.
func maskIdentifier(id string) string {
	local, domain, found := strings.Cut(id, "@")
	if !found {
		if utf8.RuneCountInString(id) <= 2 {
			return "**"
		}
		return firstRunes(id, 2) + "***"
	}
	return firstRunes(local, 2) + "***@" + domain
}

func firstRunes(s string, n int) string {
	for i := range s {
		if n == 0 {
			return s[:i]
		}
		n--
	}
	return s
}
