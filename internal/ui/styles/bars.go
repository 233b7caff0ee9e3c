// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import "strings"

// Bar characters.
var (
	BarFull  = "#"
	BarEmpty = "-"
)

// RenderBar draws a fixed-width bar filled to value/total.
func RenderBar(width int, value, total float64) string {
	if width <= 0 {
		return ""
	}
	filled := 0
	if total > 0 && value > 0 {
		filled = int(float64(width) * value / total)
	}
	filled = min(filled, width)

	var sb strings.Builder
	sb.Grow(width)
	sb.WriteString(strings.Repeat(BarFull, filled))
	sb.WriteString(strings.Repeat(BarEmpty, width-filled))
	return sb.String()
}

// RenderStars draws a five-star rating with filled stars rounded down.
func RenderStars(rating float64) string {
	n := max(0, min(5, int(rating)))
	return strings.Repeat("★", n) + strings.Repeat("☆", 5-n)
}
