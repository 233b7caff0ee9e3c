// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package dashboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/shopfront-tui/internal/security"
)

func TestOverview(t *testing.T) {
	cards := Overview(security.Stats{})
	require.Len(t, cards, 4)
	assert.Equal(t, "1,234", cards[0].Value)
	assert.Equal(t, "$123,456", cards[2].Value)
	assert.Equal(t, Metric{Title: "Security Alerts", Value: "0", Change: "Clear"}, cards[3])

	cards = Overview(security.Stats{TotalAlerts: 3, ResolvedAlerts: 9})
	assert.Equal(t, "3", cards[3].Value)
	assert.Equal(t, "Active", cards[3].Change)
}

func TestFinancialMetrics(t *testing.T) {
	f := DefaultFinancial(PeriodMonth)
	m := f.Metrics()

	assert.Equal(t, "$156,780.50", m[0].Value)
	assert.Equal(t, "+15.2%", m[0].Change)
	assert.Equal(t, "2,340", m[1].Value)
	assert.Equal(t, "$67.04", m[2].Value)
	assert.Equal(t, "$42,150.75", m[3].Value)
	assert.Equal(t, "-3.2%", m[3].Change)
	assert.False(t, m[3].Positive())

	assert.Equal(t, 104, f.TargetProgress())
	assert.Len(t, f.Transactions, 4)
	assert.Negative(t, f.Transactions[1].Amount)
}

func TestPeriod(t *testing.T) {
	p, err := ParsePeriod(" Quarter ")
	require.NoError(t, err)
	assert.Equal(t, PeriodQuarter, p)
	assert.Equal(t, "This Quarter", p.Label())
	assert.Equal(t, PeriodYear, p.Next())
	assert.Equal(t, PeriodWeek, PeriodYear.Next())

	_, err = ParsePeriod("decade")
	assert.Error(t, err)
}

func TestAnalytics(t *testing.T) {
	a := DefaultAnalytics()
	assert.Equal(t, 1800, a.PeakGrowth())
	assert.Equal(t, "/products", a.TopPages[0].Path)
	assert.Equal(t, "4m 32s", a.Metrics[3].Value)
}

func TestUsers_Filter(t *testing.T) {
	u := NewUsers()
	tests := []struct {
		search string
		status UserStatus
		want   []string
	}{
		{"", StatusAll, []string{"1", "2", "3", "4"}},
		{"JANE", "", []string{"2"}},
		{"example.com", StatusActive, []string{"1", "2"}},
		{"", StatusBlocked, []string{"3"}},
		{"alice", StatusActive, nil},
	}
	for _, tt := range tests {
		var got []string
		for _, m := range u.Filter(tt.search, tt.status) {
			got = append(got, m.ID)
		}
		assert.Equal(t, tt.want, got, "Filter(%q, %q)", tt.search, tt.status)
	}
}

func TestUsers_Apply(t *testing.T) {
	u := NewUsers()
	assert.Equal(t, UserCounts{Total: 4, Active: 2, Blocked: 1, Inactive: 1}, u.Counts())

	m, err := u.Apply("1", ActionBlock)
	require.NoError(t, err)
	assert.Equal(t, StatusBlocked, m.Status)

	m, err = u.Apply("3", ActionUnblock)
	require.NoError(t, err)
	assert.Equal(t, StatusActive, m.Status)

	_, err = u.Apply("4", ActionActivate)
	require.NoError(t, err)
	assert.Equal(t, UserCounts{Total: 4, Active: 3, Blocked: 1}, u.Counts())

	_, err = u.Apply("9", ActionBlock)
	assert.ErrorIs(t, err, ErrUserNotFound)
	_, err = u.Apply("1", "delete")
	assert.ErrorIs(t, err, ErrUnknownAction)
}

func TestSampleOrders(t *testing.T) {
	orders := SampleOrders()
	require.Len(t, orders, 3)
	assert.Equal(t, "In Transit", orders[1].Status)
	assert.Equal(t, "Active", StatusActive.Title())
}
