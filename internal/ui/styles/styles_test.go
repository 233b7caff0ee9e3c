// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import "testing"

func TestRenderBar(t *testing.T) {
	tests := []struct {
		width      int
		value, total float64
		want       string
	}{
		{10, 5, 10, "#####-----"},
		{4, 0, 10, "----"},
		{4, 20, 10, "####"},
		{4, 3, 0, "----"},
		{0, 1, 1, ""},
	}
	for _, tt := range tests {
		if got := RenderBar(tt.width, tt.value, tt.total); got != tt.want {
			t.Errorf("RenderBar(%d, %v, %v) = %q, want %q", tt.width, tt.value, tt.total, got, tt.want)
		}
	}
}

func TestRenderStars(t *testing.T) {
	if got := RenderStars(4.5); got != "★★★★☆" {
		t.Errorf("RenderStars(4.5) = %q", got)
	}
	if got := RenderStars(9); got != "★★★★★" {
		t.Errorf("RenderStars(9) = %q", got)
	}
}

func TestThemeColumns(t *testing.T) {
	th := NewTheme("dark")
	if !th.IsDark {
		t.Error("NewTheme(dark).IsDark = false")
	}
	for width, want := range map[int]int{40: 1, 80: 2, 120: 3} {
		th.SetSize(width, 40)
		if got := th.Columns(); got != want {
			t.Errorf("Columns() at width %d = %d, want %d", width, got, want)
		}
	}
}
