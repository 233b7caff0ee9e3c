// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package security

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/shopfront-tui/internal/kvstore"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

type fakeFlag struct {
	blocked bool
	err     error
}

func (f *fakeFlag) Blocked() bool { return f.blocked }

func (f *fakeFlag) SetBlocked(_ context.Context, b bool) error {
	if f.err != nil {
		return f.err
	}
	f.blocked = b
	return nil
}

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func newTestMonitor(opts ...MonitorOption) *Monitor {
	base := []MonitorOption{
		WithIDGenerator(sequentialIDs()),
		WithClock(fixedClock(time.Date(2025, 1, 20, 12, 0, 0, 0, time.UTC))),
	}
	return NewMonitor(append(base, opts...)...)
}

// =============================================================================
// LOG TESTS
// =============================================================================

func TestAddLog_StampsAndPrepends(t *testing.T) {
	ctx := context.Background()
	m := newTestMonitor()

	first := m.AddLog(ctx, LogEntry{UserID: "u1", Action: "Product viewed", RiskLevel: RiskLow})
	second := m.AddLog(ctx, LogEntry{UserID: "u1", Action: "Product added to cart", RiskLevel: RiskLow})

	assert.Equal(t, "id-1", first.ID)
	assert.False(t, first.Timestamp.IsZero())

	logs := m.Logs()
	require.Len(t, logs, 2)
	assert.Equal(t, second.ID, logs[0].ID, "newest first")
	assert.Equal(t, first.ID, logs[1].ID)
}

func TestAddLog_UnknownRiskStoredAsLow(t *testing.T) {
	m := newTestMonitor()
	got := m.AddLog(context.Background(), LogEntry{Action: "x", RiskLevel: "severe"})
	assert.Equal(t, RiskLow, got.RiskLevel)
	assert.Empty(t, m.Alerts())
}

func TestAddLog_CapsAtMaxLogs(t *testing.T) {
	ctx := context.Background()
	m := newTestMonitor()

	for i := 0; i < 250; i++ {
		m.AddLog(ctx, LogEntry{Action: fmt.Sprintf("a%d", i), RiskLevel: RiskLow})
		require.LessOrEqual(t, len(m.Logs()), DefaultMaxLogs)
	}

	logs := m.Logs()
	require.Len(t, logs, DefaultMaxLogs)
	assert.Equal(t, "a249", logs[0].Action)
	assert.Equal(t, "a150", logs[len(logs)-1].Action, "oldest entries are dropped")
}

func TestAddLog_HighRiskRaisesExactlyOneDangerAlert(t *testing.T) {
	ctx := context.Background()
	m := newTestMonitor()

	for i, risk := range []RiskLevel{RiskLow, RiskMedium, RiskHigh, RiskHigh} {
		before := len(m.Alerts())
		m.AddLog(ctx, LogEntry{UserID: fmt.Sprintf("user%d", i), Action: "Failed login attempt", RiskLevel: risk})
		after := m.Alerts()

		if risk != RiskHigh {
			assert.Len(t, after, before, "risk %s must not raise an alert", risk)
			continue
		}
		require.Len(t, after, before+1)
		assert.Equal(t, AlertDanger, after[0].Type)
		assert.Equal(t, fmt.Sprintf("user%d", i), after[0].UserID)
		assert.Equal(t, "High-risk activity detected: Failed login attempt", after[0].Message)
		assert.False(t, after[0].Resolved)
	}
}

func TestRecentLogs(t *testing.T) {
	ctx := context.Background()
	m := newTestMonitor()
	for i := 0; i < 8; i++ {
		m.AddLog(ctx, LogEntry{Action: fmt.Sprintf("a%d", i)})
	}

	recent := m.RecentLogs(5)
	require.Len(t, recent, 5)
	assert.Equal(t, "a7", recent[0].Action)
	assert.Len(t, m.RecentLogs(50), 8)
	assert.Empty(t, m.RecentLogs(-1))
}

// =============================================================================
// ALERT TESTS
// =============================================================================

func TestAddAlert_AlwaysUnresolvedAndCapped(t *testing.T) {
	ctx := context.Background()
	m := newTestMonitor()

	a := m.AddAlert(ctx, Alert{Type: AlertWarning, Message: "m", Resolved: true})
	assert.False(t, a.Resolved, "new alerts start unresolved")

	for i := 0; i < 25; i++ {
		m.AddAlert(ctx, Alert{Type: AlertInfo, Message: fmt.Sprintf("m%d", i)})
	}
	assert.Len(t, m.Alerts(), DefaultMaxAlerts)
	assert.LessOrEqual(t, len(m.ActiveAlerts()), DefaultMaxAlerts)
	assert.Equal(t, "m24", m.Alerts()[0].Message)
}

func TestResolveAlert_Idempotent(t *testing.T) {
	ctx := context.Background()
	m := newTestMonitor()

	a := m.AddAlert(ctx, Alert{Type: AlertDanger, Message: "boom"})
	m.AddAlert(ctx, Alert{Type: AlertInfo, Message: "other"})

	for i := 0; i < 2; i++ {
		require.NoError(t, m.ResolveAlert(ctx, a.ID))

		resolved := 0
		for _, stored := range m.Alerts() {
			if stored.ID == a.ID {
				assert.True(t, stored.Resolved)
				resolved++
			}
		}
		assert.Equal(t, 1, resolved, "exactly one stored entry for the id")

		for _, active := range m.ActiveAlerts() {
			assert.NotEqual(t, a.ID, active.ID, "resolved alert must not be active")
		}
		assert.Len(t, m.ActiveAlerts(), 1)
	}
}

func TestResolveAlert_Unknown(t *testing.T) {
	m := newTestMonitor()
	err := m.ResolveAlert(context.Background(), "nope")
	assert.True(t, errors.Is(err, ErrAlertNotFound))
}

func TestOnAlert(t *testing.T) {
	ctx := context.Background()
	m := newTestMonitor()

	var got []Alert
	cancel := m.OnAlert(func(a Alert) { got = append(got, a) })

	m.AddLog(ctx, LogEntry{Action: "x", RiskLevel: RiskHigh})
	m.AddAlert(ctx, Alert{Type: AlertInfo, Message: "hello"})
	cancel()
	m.AddAlert(ctx, Alert{Type: AlertInfo, Message: "after cancel"})

	require.Len(t, got, 2)
	assert.Equal(t, AlertDanger, got[0].Type)
	assert.Equal(t, "hello", got[1].Message)
}

// =============================================================================
// BLOCK AND STATS TESTS
// =============================================================================

func TestBlockUser(t *testing.T) {
	ctx := context.Background()
	flag := &fakeFlag{}
	m := newTestMonitor(WithBlockFlag(flag))

	require.NoError(t, m.BlockUser(ctx, "user@amazon.com"))
	assert.True(t, flag.blocked)
	assert.True(t, m.IsBlocked())

	alerts := m.ActiveAlerts()
	require.Len(t, alerts, 1)
	assert.Equal(t, AlertDanger, alerts[0].Type)
	assert.Equal(t, "User user@amazon.com has been blocked due to security violations", alerts[0].Message)

	require.NoError(t, m.UnblockUser(ctx))
	assert.False(t, m.IsBlocked())
}

func TestBlockUser_FlagErrorRaisesNoAlert(t *testing.T) {
	m := newTestMonitor(WithBlockFlag(&fakeFlag{err: errors.New("disk full")}))
	assert.Error(t, m.BlockUser(context.Background(), "u"))
	assert.Empty(t, m.Alerts())
}

func TestStats(t *testing.T) {
	ctx := context.Background()
	flag := &fakeFlag{}
	m := newTestMonitor(WithBlockFlag(flag))

	m.AddLog(ctx, LogEntry{Action: "a", RiskLevel: RiskHigh})
	m.AddLog(ctx, LogEntry{Action: "b", RiskLevel: RiskHigh})
	m.AddLog(ctx, LogEntry{Action: "c", RiskLevel: RiskMedium})
	info := m.AddAlert(ctx, Alert{Type: AlertInfo, Message: "i"})
	require.NoError(t, m.ResolveAlert(ctx, info.ID))

	assert.Equal(t, Stats{TotalAlerts: 2, ResolvedAlerts: 1, HighRiskLogs: 2, BlockedUsers: 0}, m.Stats())

	flag.blocked = true
	assert.Equal(t, 1, m.Stats().BlockedUsers)
}

func TestSetLimits_TrimsImmediately(t *testing.T) {
	ctx := context.Background()
	m := newTestMonitor()
	for i := 0; i < 10; i++ {
		m.AddLog(ctx, LogEntry{Action: "a"})
		m.AddAlert(ctx, Alert{Message: "m"})
	}

	m.SetLimits(3, 2)
	assert.Len(t, m.Logs(), 3)
	assert.Len(t, m.Alerts(), 2)

	m.AddAlert(ctx, Alert{Message: "n"})
	assert.Len(t, m.Alerts(), 2)
}

// =============================================================================
// RESTORE / JOURNAL TESTS
// =============================================================================

func TestRestore_SeedsSampleLogsOnce(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemory()

	m := newTestMonitor(WithJournal(NewKVJournal(store)), WithSampleLogs(true))
	require.NoError(t, m.Restore(ctx))

	logs := m.Logs()
	require.Len(t, logs, 2)
	assert.Equal(t, "Suspicious product search", logs[0].Action)
	assert.Equal(t, "Failed login attempt", logs[1].Action)
	assert.Equal(t, RiskMedium, logs[1].RiskLevel)

	m.AddLog(ctx, LogEntry{Action: "Successful login"})

	again := newTestMonitor(WithJournal(NewKVJournal(store)), WithSampleLogs(true))
	require.NoError(t, again.Restore(ctx))
	assert.Len(t, again.Logs(), 3, "journal contents win over seeding")
}

func TestRestore_NoSeedWithoutOption(t *testing.T) {
	m := newTestMonitor()
	require.NoError(t, m.Restore(context.Background()))
	assert.Empty(t, m.Logs())
}

func TestJournal_CorruptValueIgnored(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemory()
	require.NoError(t, store.Set(ctx, KeySecurityLogs, "[{"))

	m := newTestMonitor(WithJournal(NewKVJournal(store)))
	require.NoError(t, m.Restore(ctx))
	assert.Empty(t, m.Logs())

	_, err := store.Get(ctx, KeySecurityLogs)
	assert.True(t, errors.Is(err, kvstore.ErrNotFound))
}

// slowJournal records the last saved lists, stalling each Save by a
// varying amount so writers overlap.
type slowJournal struct {
	mu    sync.Mutex
	calls int
	logs  []LogEntry
}

func (j *slowJournal) Load(context.Context) ([]LogEntry, []Alert, bool, error) {
	return nil, nil, false, nil
}

func (j *slowJournal) Save(_ context.Context, logs []LogEntry, _ []Alert) error {
	j.mu.Lock()
	j.calls++
	delay := time.Duration(j.calls%4) * time.Millisecond
	j.mu.Unlock()

	time.Sleep(delay)

	j.mu.Lock()
	j.logs = logs
	j.mu.Unlock()
	return nil
}

func TestJournal_ConcurrentWritesKeepNewestSnapshot(t *testing.T) {
	ctx := context.Background()
	j := &slowJournal{}
	m := NewMonitor(WithJournal(j))

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		g := g
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 5; i++ {
				m.AddLog(ctx, LogEntry{UserID: "u", Action: fmt.Sprintf("event %d/%d", g, i)})
			}
		}()
	}
	wg.Wait()

	j.mu.Lock()
	defer j.mu.Unlock()
	if len(j.logs) != len(m.Logs()) {
		t.Errorf("journal has %d logs, want %d", len(j.logs), len(m.Logs()))
	}
	assert.Equal(t, m.Logs(), j.logs)
}

func TestJournal_RoundTripKeepsResolution(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemory()

	m := newTestMonitor(WithJournal(NewKVJournal(store)))
	require.NoError(t, m.Restore(ctx))
	a := m.AddAlert(ctx, Alert{Type: AlertWarning, Message: "w"})
	require.NoError(t, m.ResolveAlert(ctx, a.ID))

	again := NewMonitor(WithJournal(NewKVJournal(store)))
	require.NoError(t, again.Restore(ctx))
	require.Len(t, again.Alerts(), 1)
	assert.True(t, again.Alerts()[0].Resolved)
	assert.Empty(t, again.ActiveAlerts())
}

func TestParseRiskLevel(t *testing.T) {
	r, err := ParseRiskLevel("HIGH")
	require.NoError(t, err)
	assert.Equal(t, RiskHigh, r)

	_, err = ParseRiskLevel("extreme")
	assert.Error(t, err)
}
