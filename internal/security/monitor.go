// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package security

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jeranaias/shopfront-tui/internal/logging"
)

// Default caps.
const (
	DefaultMaxLogs   = 100
	DefaultMaxAlerts = 10
)

// ErrAlertNotFound is returned by ResolveAlert for an unknown or evicted id.
var ErrAlertNotFound = errors.New("alert not found")

// BlockFlag is the persisted "this session is blocked" switch.
// session.Manager implements it.
type BlockFlag interface {
	Blocked() bool
	SetBlocked(ctx context.Context, blocked bool) error
}

// =============================================================================
// MONITOR
// =============================================================================

// Monitor is the security log/alert pipeline: a bounded newest-first log,
// a bounded newest-first alert list, and promotion of high-risk log
// entries into danger alerts.
type Monitor struct {
	mu     sync.RWMutex
	logs   []LogEntry
	alerts []Alert

	maxLogs   int
	maxAlerts int
	seed      bool

	flag    BlockFlag
	journal Journal
	// saveMu serializes snapshot and Save so an older snapshot never
	// overwrites a newer one.
	saveMu  sync.Mutex
	logger  *zap.Logger
	now     func() time.Time
	newID   func() string

	hooksMu sync.RWMutex
	hooks   []func(Alert)
}

// MonitorOption configures a Monitor.
type MonitorOption func(*Monitor)

// WithMaxLogs sets the log cap. Values below 1 are ignored.
func WithMaxLogs(n int) MonitorOption {
	return func(m *Monitor) {
		if n > 0 {
			m.maxLogs = n
		}
	}
}

// WithMaxAlerts sets the alert cap. Values below 1 are ignored.
func WithMaxAlerts(n int) MonitorOption {
	return func(m *Monitor) {
		if n > 0 {
			m.maxAlerts = n
		}
	}
}

// WithBlockFlag wires the persisted blocked flag used by BlockUser and Stats.
func WithBlockFlag(f BlockFlag) MonitorOption {
	return func(m *Monitor) {
		m.flag = f
	}
}

// WithJournal persists both lists after every change.
func WithJournal(j Journal) MonitorOption {
	return func(m *Monitor) {
		m.journal = j
	}
}

// WithSampleLogs seeds two example entries when Restore finds nothing.
func WithSampleLogs(enabled bool) MonitorOption {
	return func(m *Monitor) {
		m.seed = enabled
	}
}

// WithMonitorLogger sets the application logger.
func WithMonitorLogger(l *zap.Logger) MonitorOption {
	return func(m *Monitor) {
		m.logger = logging.OrNop(l)
	}
}

// WithClock overrides time.Now. For tests.
func WithClock(now func() time.Time) MonitorOption {
	return func(m *Monitor) {
		m.now = now
	}
}

// WithIDGenerator overrides uuid generation. For tests.
func WithIDGenerator(gen func() string) MonitorOption {
	return func(m *Monitor) {
		m.newID = gen
	}
}

// NewMonitor creates an empty Monitor.
func NewMonitor(opts ...MonitorOption) *Monitor {
	m := &Monitor{
		maxLogs:   DefaultMaxLogs,
		maxAlerts: DefaultMaxAlerts,
		logger:    logging.Nop(),
		now:       time.Now,
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Restore loads the journal (if any) and seeds sample entries when the
// journal is empty and seeding is enabled.
func (m *Monitor) Restore(ctx context.Context) error {
	var (
		logs   []LogEntry
		alerts []Alert
		found  bool
	)
	if m.journal != nil {
		var err error
		logs, alerts, found, err = m.journal.Load(ctx)
		if err != nil {
			return fmt.Errorf("load security journal: %w", err)
		}
	}

	m.mu.Lock()
	m.logs = truncate(logs, m.maxLogs)
	m.alerts = truncate(alerts, m.maxAlerts)
	seeded := false
	if !found && m.seed && len(m.logs) == 0 {
		m.logs = m.sampleLogs()
		seeded = true
	}
	m.mu.Unlock()

	if seeded {
		m.persist(ctx)
	}
	return nil
}

func (m *Monitor) sampleLogs() []LogEntry {
	now := m.now()
	return []LogEntry{
		{
			ID:        m.newID(),
			UserID:    "user456",
			Action:    "Suspicious product search",
			IP:        "10.0.0.1",
			Timestamp: now.Add(-30 * time.Minute),
			RiskLevel: RiskLow,
			Details:   "Multiple rapid searches for restricted items",
		},
		{
			ID:        m.newID(),
			UserID:    "user123",
			Action:    "Failed login attempt",
			IP:        "192.168.1.100",
			Timestamp: now.Add(-time.Hour),
			RiskLevel: RiskMedium,
			Details:   "Invalid password provided",
		},
	}
}

// OnAlert registers fn to run after every new alert, outside the lock.
// The returned func unregisters it.
func (m *Monitor) OnAlert(fn func(Alert)) (cancel func()) {
	m.hooksMu.Lock()
	defer m.hooksMu.Unlock()
	m.hooks = append(m.hooks, fn)
	idx := len(m.hooks) - 1
	return func() {
		m.hooksMu.Lock()
		defer m.hooksMu.Unlock()
		if idx < len(m.hooks) {
			m.hooks[idx] = nil
		}
	}
}

// =============================================================================
// LOG PIPELINE
// =============================================================================

// AddLog stamps entry with an id and the current time, prepends it and
// trims the log to its cap. A high-risk entry also raises exactly one
// danger alert for the same user. Unknown risk levels are stored as low.
func (m *Monitor) AddLog(ctx context.Context, entry LogEntry) LogEntry {
	entry.ID = m.newID()
	entry.Timestamp = m.now()
	if !entry.RiskLevel.valid() {
		entry.RiskLevel = RiskLow
	}

	m.mu.Lock()
	m.logs = prepend(m.logs, entry, m.maxLogs)
	var raised *Alert
	if entry.RiskLevel == RiskHigh {
		a := m.newAlertLocked(Alert{
			Type:    AlertDanger,
			Message: HighRiskMessage(entry.Action),
			UserID:  entry.UserID,
		})
		raised = &a
	}
	m.mu.Unlock()

	m.logger.Info("security event",
		zap.String("user_id", entry.UserID),
		zap.String("action", entry.Action),
		zap.String("risk", string(entry.RiskLevel)),
		zap.String("ip", entry.IP))

	m.persist(ctx)
	if raised != nil {
		m.fire(*raised)
	}
	return entry
}

// Logs returns a copy of the log, newest first.
func (m *Monitor) Logs() []LogEntry {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]LogEntry(nil), m.logs...)
}

// RecentLogs returns at most n entries, newest first.
func (m *Monitor) RecentLogs(n int) []LogEntry {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if n > len(m.logs) {
		n = len(m.logs)
	}
	if n < 0 {
		n = 0
	}
	return append([]LogEntry(nil), m.logs[:n]...)
}

// =============================================================================
// ALERT PIPELINE
// =============================================================================

// AddAlert stamps a with an id and the current time, marks it unresolved,
// prepends it and trims the list to its cap.
func (m *Monitor) AddAlert(ctx context.Context, a Alert) Alert {
	m.mu.Lock()
	a = m.newAlertLocked(a)
	m.mu.Unlock()

	m.persist(ctx)
	m.fire(a)
	return a
}

func (m *Monitor) newAlertLocked(a Alert) Alert {
	a.ID = m.newID()
	a.Timestamp = m.now()
	a.Resolved = false
	if !a.Type.valid() {
		a.Type = AlertInfo
	}
	m.alerts = prepend(m.alerts, a, m.maxAlerts)

	m.logger.Warn("security alert",
		zap.String("alert_id", a.ID),
		zap.String("type", string(a.Type)),
		zap.String("message", a.Message),
		zap.String("user_id", a.UserID))
	return a
}

// ResolveAlert marks the alert resolved. Resolving an already resolved
// alert is a no-op.
func (m *Monitor) ResolveAlert(ctx context.Context, id string) error {
	m.mu.Lock()
	found, changed := false, false
	for i := range m.alerts {
		if m.alerts[i].ID == id {
			found = true
			changed = !m.alerts[i].Resolved
			m.alerts[i].Resolved = true
			break
		}
	}
	m.mu.Unlock()

	if !found {
		return fmt.Errorf("%w: %s", ErrAlertNotFound, id)
	}
	if changed {
		m.logger.Info("alert resolved", zap.String("alert_id", id))
		m.persist(ctx)
	}
	return nil
}

// ActiveAlerts returns unresolved alerts, newest first.
func (m *Monitor) ActiveAlerts() []Alert {
	m.mu.RLock()
	defer m.mu.RUnlock()
	active := make([]Alert, 0, len(m.alerts))
	for _, a := range m.alerts {
		if !a.Resolved {
			active = append(active, a)
		}
	}
	return active
}

// Alerts returns every stored alert, resolved included, newest first.
func (m *Monitor) Alerts() []Alert {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]Alert(nil), m.alerts...)
}

// =============================================================================
// BLOCKING
// =============================================================================

// BlockUser sets the persisted blocked flag and raises a danger alert.
func (m *Monitor) BlockUser(ctx context.Context, userID string) error {
	if m.flag == nil {
		return errors.New("no block flag configured")
	}
	if err := m.flag.SetBlocked(ctx, true); err != nil {
		return err
	}
	m.AddAlert(ctx, Alert{
		Type:    AlertDanger,
		Message: BlockedMessage(userID),
		UserID:  userID,
	})
	return nil
}

// UnblockUser clears the blocked flag.
func (m *Monitor) UnblockUser(ctx context.Context) error {
	if m.flag == nil {
		return errors.New("no block flag configured")
	}
	if err := m.flag.SetBlocked(ctx, false); err != nil {
		return err
	}
	m.logger.Info("session unblocked")
	return nil
}

// IsBlocked reports the blocked flag.
func (m *Monitor) IsBlocked() bool {
	return m.flag != nil && m.flag.Blocked()
}

// =============================================================================
// STATISTICS
// =============================================================================

// Stats recounts both lists.
func (m *Monitor) Stats() Stats {
	m.mu.RLock()
	var s Stats
	for _, a := range m.alerts {
		if a.Resolved {
			s.ResolvedAlerts++
		} else {
			s.TotalAlerts++
		}
	}
	for _, l := range m.logs {
		if l.RiskLevel == RiskHigh {
			s.HighRiskLogs++
		}
	}
	m.mu.RUnlock()

	if m.IsBlocked() {
		s.BlockedUsers = 1
	}
	return s
}

// SetLimits changes the caps, trimming immediately if they shrank.
func (m *Monitor) SetLimits(maxLogs, maxAlerts int) {
	m.mu.Lock()
	if maxLogs > 0 {
		m.maxLogs = maxLogs
		m.logs = truncate(m.logs, maxLogs)
	}
	if maxAlerts > 0 {
		m.maxAlerts = maxAlerts
		m.alerts = truncate(m.alerts, maxAlerts)
	}
	m.mu.Unlock()
}

// =============================================================================
// HELPERS
// =============================================================================

func (m *Monitor) persist(ctx context.Context) {
	if m.journal == nil {
		return
	}
	m.saveMu.Lock()
	defer m.saveMu.Unlock()

	m.mu.RLock()
	logs := append([]LogEntry(nil), m.logs...)
	alerts := append([]Alert(nil), m.alerts...)
	m.mu.RUnlock()

	if err := m.journal.Save(ctx, logs, alerts); err != nil {
		m.logger.Warn("security journal write failed", zap.Error(err))
	}
}

func (m *Monitor) fire(a Alert) {
	m.hooksMu.RLock()
	hooks := slices.Clone(m.hooks)
	m.hooksMu.RUnlock()
	for _, fn := range hooks {
		if fn != nil {
			fn(a)
		}
	}
}

func prepend[T any](list []T, item T, max int) []T {
	out := make([]T, 0, min(len(list)+1, max))
	out = append(out, item)
	for _, v := range list {
		if len(out) == max {
			break
		}
		out = append(out, v)
	}
	return out
}

func truncate[T any](list []T, max int) []T {
	if len(list) > max {
		list = list[:max]
	}
	return append([]T(nil), list...)
}
