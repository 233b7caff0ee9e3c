// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session holds the signed-in identity and the login-attempt
// counter, persisted to a kvstore.Store.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"go.uber.org/zap"

	"github.com/jeranaias/shopfront-tui/internal/kvstore"
	"github.com/jeranaias/shopfront-tui/internal/logging"
)

// Persistence keys. The value formats are part of the on-disk contract:
// identity JSON, a decimal integer, and the literal "true".
const (
	KeyUser          = "user"
	KeyLoginAttempts = "loginAttempts"
	KeyBlocked       = "isBlocked"
)

// =============================================================================
// SESSION MANAGER
// =============================================================================

// Manager owns the session state for one process. All state lives in
// memory; every mutation is written through to the store. A failed write
// still updates memory so the running process behaves consistently.
type Manager struct {
	mu     sync.RWMutex
	store  kvstore.Store
	logger *zap.Logger

	identity *Identity
	attempts int
	blocked  bool
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(m *Manager) {
		m.logger = logging.OrNop(l)
	}
}

// NewManager creates a Manager over store. Call Restore before use.
func NewManager(store kvstore.Store, opts ...Option) *Manager {
	m := &Manager{
		store:  store,
		logger: logging.Nop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Snapshot is a point-in-time copy of the session.
type Snapshot struct {
	Identity *Identity
	Attempts int
	Blocked  bool
}

// =============================================================================
// RESTORE
// =============================================================================

// Restore loads the persisted session, replacing whatever is in memory.
// It runs once at startup and again on an explicit reload.
//
// A malformed user record is deleted and treated as signed out. A malformed
// counter reads as 0. Only store I/O failures are returned.
func (m *Manager) Restore(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.identity = nil
	m.attempts = 0
	m.blocked = false

	raw, err := m.store.Get(ctx, KeyUser)
	switch {
	case errors.Is(err, kvstore.ErrNotFound):
	case err != nil:
		return fmt.Errorf("restore %s: %w", KeyUser, err)
	default:
		id, decodeErr := decodeIdentity(raw)
		if decodeErr != nil {
			m.logger.Warn("discarding malformed stored identity", zap.Error(decodeErr))
			if err := m.store.Delete(ctx, KeyUser); err != nil {
				return fmt.Errorf("clear malformed %s: %w", KeyUser, err)
			}
		} else {
			m.identity = &id
		}
	}

	raw, err = m.store.Get(ctx, KeyLoginAttempts)
	switch {
	case errors.Is(err, kvstore.ErrNotFound):
	case err != nil:
		return fmt.Errorf("restore %s: %w", KeyLoginAttempts, err)
	default:
		n, convErr := strconv.Atoi(raw)
		if convErr != nil || n < 0 {
			m.logger.Warn("ignoring malformed attempt counter", zap.String("value", raw))
		} else {
			m.attempts = n
		}
	}

	raw, err = m.store.Get(ctx, KeyBlocked)
	switch {
	case errors.Is(err, kvstore.ErrNotFound):
	case err != nil:
		return fmt.Errorf("restore %s: %w", KeyBlocked, err)
	default:
		m.blocked = raw == "true"
	}

	m.logger.Debug("session restored",
		zap.Bool("signed_in", m.identity != nil),
		zap.Int("attempts", m.attempts),
		zap.Bool("blocked", m.blocked))
	return nil
}

// =============================================================================
// IDENTITY
// =============================================================================

// Identity returns the signed-in identity, if any.
func (m *Manager) Identity() (Identity, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.identity == nil {
		return Identity{}, false
	}
	return *m.identity, true
}

// SetIdentity replaces the signed-in identity and persists it.
func (m *Manager) SetIdentity(ctx context.Context, id Identity) error {
	raw, err := json.Marshal(id)
	if err != nil {
		return fmt.Errorf("encode identity: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.identity = &id
	if err := m.store.Set(ctx, KeyUser, string(raw)); err != nil {
		return fmt.Errorf("persist %s: %w", KeyUser, err)
	}
	return nil
}

// ClearIdentity signs out. The attempt counter is left alone.
func (m *Manager) ClearIdentity(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.identity = nil
	if err := m.store.Delete(ctx, KeyUser); err != nil {
		return fmt.Errorf("clear %s: %w", KeyUser, err)
	}
	return nil
}

// =============================================================================
// LOGIN ATTEMPTS
// =============================================================================

// Attempts returns the consecutive failed login count.
func (m *Manager) Attempts() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.attempts
}

// IncrementAttempts adds one failure and returns the new count.
func (m *Manager) IncrementAttempts(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.attempts++
	if err := m.store.Set(ctx, KeyLoginAttempts, strconv.Itoa(m.attempts)); err != nil {
		return m.attempts, fmt.Errorf("persist %s: %w", KeyLoginAttempts, err)
	}
	return m.attempts, nil
}

// ResetAttempts sets the counter to 0 and removes the key.
func (m *Manager) ResetAttempts(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.attempts = 0
	if err := m.store.Delete(ctx, KeyLoginAttempts); err != nil {
		return fmt.Errorf("clear %s: %w", KeyLoginAttempts, err)
	}
	return nil
}

// =============================================================================
// BLOCKED FLAG
// =============================================================================

// Blocked reports whether this session has been blocked by an admin action.
func (m *Manager) Blocked() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.blocked
}

// SetBlocked sets or clears the blocked flag. Blocking stores "true";
// unblocking removes the key.
func (m *Manager) SetBlocked(ctx context.Context, blocked bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blocked = blocked

	var err error
	if blocked {
		err = m.store.Set(ctx, KeyBlocked, "true")
	} else {
		err = m.store.Delete(ctx, KeyBlocked)
	}
	if err != nil {
		return fmt.Errorf("persist %s: %w", KeyBlocked, err)
	}
	return nil
}

// Snapshot returns a copy of the whole session.
func (m *Manager) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s := Snapshot{Attempts: m.attempts, Blocked: m.blocked}
	if m.identity != nil {
		id := *m.identity
		s.Identity = &id
	}
	return s
}
