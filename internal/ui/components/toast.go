// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/shopfront-tui/internal/ui/styles"
	"github.com/jeranaias/shopfront-tui/internal/util"
)

// =============================================================================
// TOAST TYPES
// =============================================================================

// ToastKind mirrors the alert types.
type ToastKind int

const (
	ToastInfo ToastKind = iota
	ToastWarning
	ToastDanger
	ToastSuccess
)

// ParseToastKind maps an alert type name onto a kind.
func ParseToastKind(name string) ToastKind {
	switch name {
	case "danger":
		return ToastDanger
	case "warning":
		return ToastWarning
	case "success":
		return ToastSuccess
	default:
		return ToastInfo
	}
}

// DefaultToastDuration is how long a toast stays up.
const DefaultToastDuration = 10 * time.Second

// MaxToasts caps the stack.
const MaxToasts = 4

// Toast is one auto-dismissing notification. AlertID links it back to
// the security alert it announces, if any.
type Toast struct {
	ID        int
	AlertID   string
	Message   string
	Kind      ToastKind
	CreatedAt time.Time
	Duration  time.Duration
}

// Expired reports whether the toast should be gone at now.
func (t Toast) Expired(now time.Time) bool {
	return now.Sub(t.CreatedAt) >= t.Duration
}

// =============================================================================
// TOAST MANAGER
// =============================================================================

// ToastManager keeps the visible toasts, newest first.
type ToastManager struct {
	mu       sync.Mutex
	toasts   []Toast
	nextID   int
	duration time.Duration
	now      func() time.Time
}

// NewToastManager creates a manager whose toasts last duration.
func NewToastManager(duration time.Duration) *ToastManager {
	if duration <= 0 {
		duration = DefaultToastDuration
	}
	return &ToastManager{nextID: 1, duration: duration, now: time.Now}
}

// SetDuration changes the lifetime of toasts added from now on.
func (m *ToastManager) SetDuration(d time.Duration) {
	if d <= 0 {
		return
	}
	m.mu.Lock()
	m.duration = d
	m.mu.Unlock()
}

// Add shows a toast and returns its id. An alert already on screen is not
// shown twice.
func (m *ToastManager) Add(message string, kind ToastKind, alertID string) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	if alertID != "" {
		for _, t := range m.toasts {
			if t.AlertID == alertID {
				return t.ID
			}
		}
	}
	t := Toast{
		ID:        m.nextID,
		AlertID:   alertID,
		Message:   message,
		Kind:      kind,
		CreatedAt: m.now(),
		Duration:  m.duration,
	}
	m.nextID++
	m.toasts = append([]Toast{t}, m.toasts...)
	if len(m.toasts) > MaxToasts {
		m.toasts = m.toasts[:MaxToasts]
	}
	return t.ID
}

// Dismiss removes a toast by id.
func (m *ToastManager) Dismiss(id int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, t := range m.toasts {
		if t.ID == id {
			m.toasts = append(m.toasts[:i], m.toasts[i+1:]...)
			return
		}
	}
}

// DismissAlert removes the toast announcing alertID, e.g. once resolved.
func (m *ToastManager) DismissAlert(alertID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, t := range m.toasts {
		if t.AlertID == alertID {
			m.toasts = append(m.toasts[:i], m.toasts[i+1:]...)
			return
		}
	}
}

// Tick drops expired toasts and reports whether any remain.
func (m *ToastManager) Tick(now time.Time) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	active := m.toasts[:0]
	for _, t := range m.toasts {
		if !t.Expired(now) {
			active = append(active, t)
		}
	}
	m.toasts = active
	return len(m.toasts) > 0
}

// Toasts returns a copy of the visible toasts.
func (m *ToastManager) Toasts() []Toast {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Toast(nil), m.toasts...)
}

// =============================================================================
// MESSAGES
// =============================================================================

// ToastTickMsg drives expiry.
type ToastTickMsg struct {
	Time time.Time
}

// ToastTickCmd ticks once a second.
func ToastTickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return ToastTickMsg{Time: t}
	})
}

// =============================================================================
// RENDERING
// =============================================================================

// RenderToasts stacks the toasts vertically, or returns "".
func RenderToasts(theme *styles.Theme, toasts []Toast) string {
	if len(toasts) == 0 {
		return ""
	}
	rendered := make([]string, len(toasts))
	for i, t := range toasts {
		rendered[i] = RenderToast(theme, t)
	}
	return lipgloss.JoinVertical(lipgloss.Right, rendered...)
}

// RenderToast renders one toast with a marker that does not rely on colour.
func RenderToast(theme *styles.Theme, t Toast) string {
	var color lipgloss.AdaptiveColor
	var icon string
	switch t.Kind {
	case ToastDanger:
		color, icon = styles.Rose, styles.StatusIndicators.Error
	case ToastWarning:
		color, icon = styles.Amber, styles.StatusIndicators.Warning
	case ToastSuccess:
		color, icon = styles.Emerald, styles.StatusIndicators.Success
	default:
		color, icon = styles.Blue, styles.StatusIndicators.Info
	}

	head := lipgloss.NewStyle().Bold(true).Foreground(color).Render(icon)
	width := theme.Toast.GetWidth() - 4
	msg := strings.TrimSpace(t.Message)
	if lipgloss.Width(msg) > width*2 {
		msg = util.TruncateWidth(msg, width*2)
	}
	body := lipgloss.NewStyle().Width(width - lipgloss.Width(icon) - 1).Render(msg)
	return theme.Toast.BorderForeground(color).Render(lipgloss.JoinHorizontal(lipgloss.Top, head, " ", body))
}
