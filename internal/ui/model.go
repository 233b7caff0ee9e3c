// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"context"
	"fmt"
	"runtime/debug"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jeranaias/shopfront-tui/internal/app"
	"github.com/jeranaias/shopfront-tui/internal/router"
	"github.com/jeranaias/shopfront-tui/internal/security"
	"github.com/jeranaias/shopfront-tui/internal/ui/components"
	"github.com/jeranaias/shopfront-tui/internal/ui/styles"
)

// alertBuffer bounds the alerts queued between monitor and update loop.
const alertBuffer = 16

// =============================================================================
// MODEL
// =============================================================================

// Model is the root Bubble Tea model. It routes between the auth forms,
// the storefront, the admin dashboard and the blocked screen, and owns
// the toast stack and the crash screen.
type Model struct {
	ctx    context.Context
	svc    *app.Services
	logger *zap.Logger

	theme   *styles.Theme
	keys    KeyMap
	help    help.Model
	spinner spinner.Model

	header *components.Header
	status *components.StatusBar
	toasts *components.ToastManager

	width  int
	height int

	view       router.View
	wantSignup bool

	login  loginState
	signup signupState
	shop   shopState
	admin  adminState

	alerts      chan security.Alert
	stopAlerts  func()
	toastTicker bool

	flash    string
	flashSeq int

	crashed     bool
	crashDetail string
	debug       bool
}

// Option configures a Model.
type Option func(*Model)

// WithDebug shows panic details on the error screen.
func WithDebug(enabled bool) Option {
	return func(m *Model) { m.debug = enabled }
}

// WithTheme overrides the theme derived from config.
func WithTheme(t *styles.Theme) Option {
	return func(m *Model) { m.theme = t }
}

// New builds the root model over svc and subscribes to security alerts.
// Call Close when the program exits.
func New(ctx context.Context, svc *app.Services, opts ...Option) Model {
	m := Model{
		ctx:    ctx,
		svc:    svc,
		logger: svc.Logger.Named("ui"),
		keys:   DefaultKeyMap(),
		help:   help.New(),
		width:  80,
		height: 24,
		alerts: make(chan security.Alert, alertBuffer),
	}
	for _, opt := range opts {
		opt(&m)
	}
	if m.theme == nil {
		m.theme = styles.NewTheme(svc.Config.UI.Theme)
	}

	m.spinner = spinner.New(spinner.WithSpinner(spinner.Dot))
	m.spinner.Style = m.theme.Warning
	m.header = components.NewHeader(m.theme)
	m.status = components.NewStatusBar(m.theme)
	m.toasts = components.NewToastManager(svc.Config.UI.ToastTimeout.Duration)

	ch := m.alerts
	m.stopAlerts = svc.Monitor.OnAlert(func(a security.Alert) {
		select {
		case ch <- a:
		default:
		}
	})

	m.login = newLoginState()
	m.signup = newSignupState()
	m.shop = newShopState()
	m.admin = newAdminState()
	m.view = router.Route(svc.Sessions.Snapshot(), false)
	m.enterView()
	return m
}

// Close unsubscribes from the monitor.
func (m Model) Close() {
	if m.stopAlerts != nil {
		m.stopAlerts()
	}
}

// CurrentView returns the active top-level screen.
func (m Model) CurrentView() router.View {
	return m.view
}

// Init starts the cursor blink and the alert subscription.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, waitForAlert(m.alerts))
}

// =============================================================================
// ROUTING
// =============================================================================

// reroute recomputes the top-level view from the session and resets the
// incoming screen when it changed.
func (m *Model) reroute() {
	next := router.Route(m.svc.Sessions.Snapshot(), m.wantSignup)
	if next == m.view {
		return
	}
	m.logger.Debug("view changed", zap.Stringer("from", m.view), zap.Stringer("to", next))
	m.view = next
	m.enterView()
}

// enterView prepares the screen that just became active.
func (m *Model) enterView() {
	switch m.view {
	case router.ViewLogin:
		m.login.reset()
		m.wantSignup = false
	case router.ViewSignup:
		m.signup.reset()
	case router.ViewMain:
		m.shop = newShopState()
	case router.ViewAdmin:
		m.admin = newAdminState()
	}
	m.resizeScreens()
}

// =============================================================================
// STATUS LINE
// =============================================================================

// setFlash shows msg on the status line for a few seconds.
func (m *Model) setFlash(msg string) tea.Cmd {
	m.flash = msg
	m.flashSeq++
	return flashExpireCmd(m.flashSeq)
}

// =============================================================================
// CRASH RECOVERY
// =============================================================================

// recoverFrom switches to the error screen after a panic in Update.
func (m *Model) recoverFrom(r any) {
	m.crashed = true
	m.crashDetail = ""
	if m.debug {
		m.crashDetail = fmt.Sprint(r)
	}
	m.logger.Error("recovered panic",
		zap.Any("panic", r),
		zap.ByteString("stack", debug.Stack()))
}

// reload is the error screen's recovery action: reread persisted state
// and route from scratch.
func (m *Model) reload() tea.Cmd {
	if err := m.svc.Restore(m.ctx); err != nil {
		m.logger.Error("reload failed", zap.Error(err))
		if m.debug {
			m.crashDetail = err.Error()
		}
		return nil
	}
	m.crashed = false
	m.crashDetail = ""
	m.wantSignup = false
	m.view = router.Route(m.svc.Sessions.Snapshot(), false)
	m.enterView()
	return m.setFlash("Reloaded")
}

// =============================================================================
// LAYOUT
// =============================================================================

func (m *Model) resize(width, height int) {
	m.width, m.height = width, height
	m.theme.SetSize(width, height)
	m.header.SetWidth(width)
	m.status.SetWidth(width)
	m.help.Width = width
	m.resizeScreens()
}

// bodyHeight is what is left between header and status bar.
func (m *Model) bodyHeight() int {
	return max(m.height-3, 5)
}

func (m *Model) resizeScreens() {
	m.shop.resize(m.width, m.bodyHeight())
}
