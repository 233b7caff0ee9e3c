// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// printer formats numbers the way the storefront displays them (en-US
// grouping).
var printer = message.NewPrinter(language.AmericanEnglish)

// Thousands formats n with grouping separators: 5678 -> "5,678".
func Thousands(n int) string {
	return printer.Sprintf("%d", n)
}

// Money formats an amount in dollars with two decimals and grouping:
// 156780.5 -> "$156,780.50". Negative amounts render as "-$79.99".
func Money(amount float64) string {
	if amount < 0 {
		return "-" + printer.Sprintf("$%.2f", -amount)
	}
	return printer.Sprintf("$%.2f", amount)
}

// Percent formats a signed percentage change: 15.2 -> "+15.2%".
func Percent(change float64) string {
	if change < 0 {
		return printer.Sprintf("%.1f%%", change)
	}
	return printer.Sprintf("+%.1f%%", change)
}

// Ago renders how long before now t happened in a compact form
// ("just now", "5m ago", "2h ago", "3d ago").
func Ago(t, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return printer.Sprintf("%dm ago", int(d/time.Minute))
	case d < 24*time.Hour:
		return printer.Sprintf("%dh ago", int(d/time.Hour))
	default:
		return printer.Sprintf("%dd ago", int(d/(24*time.Hour)))
	}
}
