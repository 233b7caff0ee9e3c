// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package dashboard

import "time"

// Order is a row of the profile order history.
type Order struct {
	ID     string    `json:"id"`
	Date   time.Time `json:"date"`
	Items  int       `json:"items"`
	Total  float64   `json:"total"`
	Status string    `json:"status"`
}

// SampleOrders returns the demo order history shown on every profile.
func SampleOrders() []Order {
	day := func(d int) time.Time { return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC) }
	return []Order{
		{ID: "ORD-001", Date: day(15), Items: 2, Total: 159.98, Status: "Delivered"},
		{ID: "ORD-002", Date: day(10), Items: 1, Total: 79.99, Status: "In Transit"},
		{ID: "ORD-003", Date: day(5), Items: 3, Total: 249.97, Status: "Processing"},
	}
}
