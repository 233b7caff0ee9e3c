// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package dashboard

import (
	"strconv"

	"github.com/jeranaias/shopfront-tui/internal/security"
)

// RecentActivityLimit is how many log entries the overview lists.
const RecentActivityLimit = 5

// Metric is one headline card: a title, a formatted value and a change
// or status label.
type Metric struct {
	Title  string `json:"title"`
	Value  string `json:"value"`
	Change string `json:"change"`
}

// Positive reports whether the change label reads as good news.
func (m Metric) Positive() bool {
	return m.Change == "" || m.Change[0] != '-'
}

// Overview returns the four admin dashboard cards. The first three are
// fixed figures; the last reflects the live alert count.
func Overview(stats security.Stats) []Metric {
	label := "Clear"
	if stats.TotalAlerts > 0 {
		label = "Active"
	}
	return []Metric{
		{Title: "Total Users", Value: "1,234", Change: "+12%"},
		{Title: "Total Orders", Value: "5,678", Change: "+8%"},
		{Title: "Revenue", Value: "$123,456", Change: "+15%"},
		{Title: "Security Alerts", Value: strconv.Itoa(stats.TotalAlerts), Change: label},
	}
}
