// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package dashboard

// MonthValue is one bar of the user growth chart.
type MonthValue struct {
	Month string `json:"month"`
	Users int    `json:"users"`
}

// PageStat is one row of the top pages table.
type PageStat struct {
	Path       string `json:"page"`
	Views      int    `json:"views"`
	BounceRate int    `json:"bounceRate"`
}

// Analytics is the analytics panel.
type Analytics struct {
	Metrics    []Metric     `json:"metrics"`
	UserGrowth []MonthValue `json:"userGrowth"`
	TopPages   []PageStat   `json:"topPages"`
}

// DefaultAnalytics returns the demo analytics figures.
func DefaultAnalytics() Analytics {
	return Analytics{
		Metrics: []Metric{
			{Title: "Total Page Views", Value: "45,680", Change: "+12.5%"},
			{Title: "Active Users", Value: "1,024", Change: "+8.2%"},
			{Title: "Conversion Rate", Value: "3.2%", Change: "+0.5%"},
			{Title: "Avg. Session Time", Value: "4m 32s", Change: "+15s"},
		},
		UserGrowth: []MonthValue{
			{"Jan", 1200}, {"Feb", 1350}, {"Mar", 1500},
			{"Apr", 1400}, {"May", 1650}, {"Jun", 1800},
		},
		TopPages: []PageStat{
			{"/products", 15420, 32},
			{"/login", 12340, 45},
			{"/cart", 8760, 28},
			{"/checkout", 5430, 22},
			{"/profile", 3210, 35},
		},
	}
}

// PeakGrowth returns the largest monthly user count, for scaling bars.
func (a Analytics) PeakGrowth() int {
	peak := 0
	for _, m := range a.UserGrowth {
		peak = max(peak, m.Users)
	}
	return peak
}
