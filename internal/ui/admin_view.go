// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/shopfront-tui/internal/dashboard"
	"github.com/jeranaias/shopfront-tui/internal/router"
	"github.com/jeranaias/shopfront-tui/internal/security"
	"github.com/jeranaias/shopfront-tui/internal/ui/styles"
	"github.com/jeranaias/shopfront-tui/internal/util"
)

var securityTabs = []string{"Security Alerts", "Activity Logs", "Live Monitoring"}

// userFilters is the status filter cycle of the users panel.
var userFilters = []dashboard.UserStatus{
	dashboard.StatusAll, dashboard.StatusActive, dashboard.StatusBlocked, dashboard.StatusInactive,
}

// =============================================================================
// STATE
// =============================================================================

type adminState struct {
	nav router.AdminNav

	securityTab int
	alertCursor int

	period dashboard.Period

	search     textinput.Model
	searching  bool
	filter     int
	userCursor int
}

func newAdminState() adminState {
	s := adminState{
		period: dashboard.PeriodMonth,
		search: newInput("Search users...", false),
	}
	s.search.Prompt = "/ "
	return s
}

func (s *adminState) updateInputs(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	s.search, cmd = s.search.Update(msg)
	return cmd
}

func (s *adminState) users(u *dashboard.Users) []dashboard.ManagedUser {
	return u.Filter(s.search.Value(), userFilters[s.filter])
}

// =============================================================================
// UPDATE
// =============================================================================

func (m *Model) updateAdmin(msg tea.KeyMsg) tea.Cmd {
	if cmd, ok := m.handleGlobal(msg); ok {
		return cmd
	}
	s := &m.admin

	if !m.typing() && key.Matches(msg, m.keys.Section) {
		i, _ := strconv.Atoi(msg.String())
		if i >= 1 && i <= len(router.AdminSections) {
			_ = s.nav.Select(router.AdminSections[i-1])
		}
		return nil
	}

	switch s.nav.Section() {
	case router.SectionSecurity:
		return m.updateSecurity(msg)
	case router.SectionFinancial:
		if key.Matches(msg, m.keys.Period) {
			s.period = s.period.Next()
		}
	case router.SectionUsers:
		return m.updateUsers(msg)
	}
	return nil
}

func (m *Model) updateSecurity(msg tea.KeyMsg) tea.Cmd {
	s := &m.admin
	switch {
	case key.Matches(msg, m.keys.NextTab), key.Matches(msg, m.keys.Right):
		s.securityTab = (s.securityTab + 1) % len(securityTabs)
		return nil
	case key.Matches(msg, m.keys.PrevTab), key.Matches(msg, m.keys.Left):
		s.securityTab = (s.securityTab - 1 + len(securityTabs)) % len(securityTabs)
		return nil
	}
	if s.securityTab != 0 {
		return nil
	}

	active := m.svc.Monitor.ActiveAlerts()
	if len(active) == 0 {
		return nil
	}
	s.alertCursor = min(s.alertCursor, len(active)-1)
	switch {
	case key.Matches(msg, m.keys.Up):
		s.alertCursor = max(s.alertCursor-1, 0)
	case key.Matches(msg, m.keys.Down):
		s.alertCursor = min(s.alertCursor+1, len(active)-1)
	case key.Matches(msg, m.keys.Resolve):
		a := active[s.alertCursor]
		if err := m.svc.Monitor.ResolveAlert(m.ctx, a.ID); err != nil {
			return m.setFlash(err.Error())
		}
		m.toasts.DismissAlert(a.ID)
		return m.setFlash("Alert resolved")
	}
	return nil
}

func (m *Model) updateUsers(msg tea.KeyMsg) tea.Cmd {
	s := &m.admin
	if s.searching {
		switch {
		case key.Matches(msg, m.keys.Back):
			s.search.SetValue("")
			fallthrough
		case key.Matches(msg, m.keys.Submit):
			s.searching = false
			s.search.Blur()
			s.userCursor = 0
			return nil
		}
		var cmd tea.Cmd
		s.search, cmd = s.search.Update(msg)
		s.userCursor = 0
		return cmd
	}

	switch {
	case key.Matches(msg, m.keys.Search):
		s.searching = true
		return s.search.Focus()
	case key.Matches(msg, m.keys.Filter):
		s.filter = (s.filter + 1) % len(userFilters)
		s.userCursor = 0
		return nil
	case key.Matches(msg, m.keys.Back):
		s.search.SetValue("")
		s.filter = 0
		return nil
	}

	users := s.users(m.svc.Users)
	if len(users) == 0 {
		return nil
	}
	s.userCursor = min(s.userCursor, len(users)-1)

	var action dashboard.UserAction
	switch {
	case key.Matches(msg, m.keys.Up):
		s.userCursor = max(s.userCursor-1, 0)
		return nil
	case key.Matches(msg, m.keys.Down):
		s.userCursor = min(s.userCursor+1, len(users)-1)
		return nil
	case key.Matches(msg, m.keys.Block):
		action = dashboard.ActionBlock
	case key.Matches(msg, m.keys.Unblock):
		action = dashboard.ActionUnblock
	case key.Matches(msg, m.keys.Activate):
		action = dashboard.ActionActivate
	default:
		return nil
	}
	u, err := m.svc.Users.Apply(users[s.userCursor].ID, action)
	if err != nil {
		return m.setFlash(err.Error())
	}
	return m.setFlash(fmt.Sprintf("%s is now %s", u.Name, u.Status))
}

// =============================================================================
// VIEW
// =============================================================================

func (m Model) viewAdmin() string {
	switch m.admin.nav.Section() {
	case router.SectionSecurity:
		return m.viewSecurity()
	case router.SectionAnalytics:
		return m.viewAnalytics()
	case router.SectionFinancial:
		return m.viewFinancial()
	case router.SectionUsers:
		return m.viewUsers()
	default:
		return m.viewDashboard()
	}
}

// renderMetrics lays out headline cards in as many columns as fit.
func (m Model) renderMetrics(metrics []dashboard.Metric) string {
	t := m.theme
	cards := make([]string, len(metrics))
	for i, mt := range metrics {
		change := t.Success
		if !mt.Positive() {
			change = t.Error
		}
		cards[i] = t.Card.Width(22).Render(strings.Join([]string{
			t.Label.Render(mt.Title),
			t.Title.UnsetMarginBottom().Render(mt.Value),
			change.Render(mt.Change),
		}, "\n"))
	}
	perRow := max(1, m.width/24)
	var rows []string
	for start := 0; start < len(cards); start += perRow {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards[start:min(start+perRow, len(cards))]...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m Model) renderLogRow(l security.LogEntry, now time.Time) string {
	t := m.theme
	risk := t.Risk(string(l.RiskLevel)).Render(util.PadRight(strings.ToUpper(string(l.RiskLevel)), 7))
	return risk + " " +
		util.PadRight(util.TruncateWidth(l.Action, 24), 25) +
		util.PadRight(util.TruncateWidth(l.UserID, 20), 21) +
		t.Muted.Render(util.PadRight(l.IP, 15)+" "+util.Ago(l.Timestamp, now))
}

func (m Model) viewDashboard() string {
	t := m.theme
	now := time.Now()
	stats := m.svc.Monitor.Stats()

	var b strings.Builder
	b.WriteString(t.Title.Render("Admin Dashboard"))
	b.WriteString("\n")
	b.WriteString(m.renderMetrics(dashboard.Overview(stats)))
	b.WriteString("\n\n")

	b.WriteString(t.Label.Render("Recent Security Logs") + "\n")
	recent := m.svc.Monitor.RecentLogs(dashboard.RecentActivityLimit)
	if len(recent) == 0 {
		b.WriteString(t.Muted.Render("No activity yet") + "\n")
	}
	for _, l := range recent {
		b.WriteString(m.renderLogRow(l, now) + "\n")
	}

	b.WriteString("\n" + t.Label.Render("System Health") + "\n")
	health := [][2]string{
		{"Server Status", "Online"},
		{"Security Level", "Secure"},
		{"Last Backup", "2 hours ago"},
		{"Active Users", "1,024"},
	}
	for _, h := range health {
		b.WriteString(util.PadRight(h[0], 18) + t.Success.Render(h[1]) + "\n")
	}
	return b.String()
}

func (m Model) viewSecurity() string {
	t := m.theme
	s := m.admin
	stats := m.svc.Monitor.Stats()

	summary := m.renderMetrics([]dashboard.Metric{
		{Title: "Active Alerts", Value: strconv.Itoa(stats.TotalAlerts), Change: "unresolved"},
		{Title: "Resolved", Value: strconv.Itoa(stats.ResolvedAlerts), Change: "closed"},
		{Title: "High Risk Events", Value: strconv.Itoa(stats.HighRiskLogs), Change: "logged"},
		{Title: "Blocked Users", Value: strconv.Itoa(stats.BlockedUsers), Change: "this session"},
	})

	tabs := make([]string, len(securityTabs))
	for i, name := range securityTabs {
		if i == s.securityTab {
			tabs[i] = t.TabActive.Render(name)
		} else {
			tabs[i] = t.Tab.Render(name)
		}
	}

	var body string
	switch s.securityTab {
	case 0:
		body = m.viewAlerts()
	case 1:
		body = m.viewLogs()
	default:
		body = m.viewMonitoring()
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		t.Title.Render("Security Center"),
		summary,
		"",
		lipgloss.JoinHorizontal(lipgloss.Top, tabs...),
		"",
		body)
}

func (m Model) viewAlerts() string {
	t := m.theme
	active := m.svc.Monitor.ActiveAlerts()
	if len(active) == 0 {
		return t.Success.Render(styles.StatusIndicators.Success+" All Clear!") + "\n" +
			t.Muted.Render("No active security alerts at this time.")
	}

	now := time.Now()
	cursor := min(m.admin.alertCursor, len(active)-1)
	lines := []string{t.Success.Render(styles.StatusIndicators.Active + " Live Monitoring Active")}
	for i, a := range active {
		marker := lipgloss.NewStyle().Foreground(styles.AlertColor(string(a.Type))).Render(alertIcon(a.Type))
		row := marker + " " + util.TruncateWidth(a.Message, max(m.width-24, 20)) + "  " + t.Muted.Render(util.Ago(a.Timestamp, now))
		if i == cursor {
			row = t.RowSelected.Render(row)
		}
		lines = append(lines, row)
	}
	return strings.Join(lines, "\n")
}

func alertIcon(kind security.AlertType) string {
	switch kind {
	case security.AlertDanger:
		return styles.StatusIndicators.Error
	case security.AlertWarning:
		return styles.StatusIndicators.Warning
	default:
		return styles.StatusIndicators.Info
	}
}

func (m Model) viewLogs() string {
	t := m.theme
	logs := m.svc.Monitor.Logs()
	if len(logs) == 0 {
		return t.Muted.Render("No activity recorded")
	}

	// Newest first; show what fits.
	room := max(m.bodyHeight()-16, 5)
	now := time.Now()
	lines := make([]string, 0, min(room, len(logs)))
	for i := 0; i < len(logs) && i < room; i++ {
		l := logs[i]
		lines = append(lines, m.renderLogRow(l, now)+"\n        "+t.Muted.Render(util.TruncateWidth(l.Details, max(m.width-10, 20))))
	}
	if len(logs) > room {
		lines = append(lines, t.Muted.Render(fmt.Sprintf("... %d more", len(logs)-room)))
	}
	return strings.Join(lines, "\n")
}

func (m Model) viewMonitoring() string {
	t := m.theme
	row := func(label, value string, style lipgloss.Style) string {
		return util.PadRight(label, 24) + style.Render(value)
	}
	attempts := m.svc.Sessions.Attempts()
	attemptStyle := t.Success
	if attempts > 0 {
		attemptStyle = t.Warning
	}
	suspicious := "None"
	if m.svc.Monitor.Stats().HighRiskLogs > 0 {
		suspicious = "Review high-risk logs"
	}

	left := strings.Join([]string{
		t.Label.Render("Threat Detection"),
		row("Malware Scanner", "Active", t.Success),
		row("DDoS Protection", "Enabled", t.Success),
		row("Intrusion Detection", "Monitoring", t.Success),
		row("SQL Injection Shield", "Protected", t.Success),
	}, "\n")
	right := strings.Join([]string{
		t.Label.Render("Access Control"),
		row("Failed Login Attempts", strconv.Itoa(attempts), attemptStyle),
		row("Blocked IPs", "2", t.Error),
		row("Active Sessions", "1,024", t.Success),
		row("Suspicious Activity", suspicious, t.Success),
	}, "\n")
	if m.width < 80 {
		return left + "\n\n" + right
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, lipgloss.NewStyle().Width(40).Render(left), right)
}

func (m Model) viewAnalytics() string {
	t := m.theme
	a := dashboard.DefaultAnalytics()

	var b strings.Builder
	b.WriteString(t.Title.Render("Analytics"))
	b.WriteString("\n")
	b.WriteString(m.renderMetrics(a.Metrics))
	b.WriteString("\n\n" + t.Label.Render("User Growth") + "\n")

	peak := float64(a.PeakGrowth())
	barWidth := max(min(m.width-20, 50), 10)
	for _, mv := range a.UserGrowth {
		b.WriteString(util.PadRight(mv.Month, 5) + styles.RenderBar(barWidth, float64(mv.Users), peak) + " " + util.Thousands(mv.Users) + "\n")
	}

	b.WriteString("\n" + t.Label.Render("Top Pages") + "\n")
	b.WriteString(t.TableHeader.Render(util.PadRight("Page", 14)+util.PadRight("Views", 10)+"Bounce") + "\n")
	for _, p := range a.TopPages {
		b.WriteString(util.PadRight(p.Path, 14) + util.PadRight(util.Thousands(p.Views), 10) + strconv.Itoa(p.BounceRate) + "%\n")
	}
	return b.String()
}

func (m Model) viewFinancial() string {
	t := m.theme
	f := dashboard.DefaultFinancial(m.admin.period)

	var b strings.Builder
	b.WriteString(t.Title.UnsetMarginBottom().Render("Financial Overview") + "   " +
		t.ShortcutKey.Render(f.Period.Label()) + t.Muted.Render("  (p to change)") + "\n\n")
	b.WriteString(m.renderMetrics(f.Metrics()))
	b.WriteString("\n\n")

	barWidth := max(min(m.width-30, 40), 10)
	b.WriteString(t.Label.Render("Revenue Target") + "  " +
		styles.RenderBar(barWidth, f.Revenue, f.RevenueTarget) + " " + strconv.Itoa(f.TargetProgress()) + "%\n")
	b.WriteString(t.Label.Render("Net Profit") + "      " + t.Price.Render(util.Money(f.NetProfit())) + "\n\n")

	b.WriteString(t.Label.Render("Expense Breakdown") + "\n")
	for _, c := range f.ExpenseCategories {
		b.WriteString(util.PadRight(c.Name, 12) + styles.RenderBar(barWidth, float64(c.Percentage), 100) + " " +
			util.Money(c.Amount) + " (" + strconv.Itoa(c.Percentage) + "%)\n")
	}

	b.WriteString("\n" + t.Label.Render("Recent Transactions") + "\n")
	for _, tx := range f.Transactions {
		amount := t.Success.Render(util.PadRight(util.Money(tx.Amount), 12))
		if tx.Amount < 0 {
			amount = t.Error.Render(util.PadRight("-"+util.Money(-tx.Amount), 12))
		}
		b.WriteString(util.PadRight(tx.ID, 9) + util.PadRight(tx.Type, 8) + amount +
			util.PadRight(tx.Customer, 14) + util.PadRight(tx.Method, 13) + t.Status(tx.Status).Render(tx.Status) + "\n")
	}
	return b.String()
}

func (m Model) viewUsers() string {
	t := m.theme
	s := m.admin
	c := m.svc.Users.Counts()

	var b strings.Builder
	b.WriteString(t.Title.Render("User Management"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s %d   %s %d   %s %d   %s %d\n\n",
		t.Label.Render("Total"), c.Total,
		t.Success.Render("Active"), c.Active,
		t.Error.Render("Blocked"), c.Blocked,
		t.Warning.Render("Inactive"), c.Inactive))

	filter := t.Label.Render("Status: ") + t.ShortcutKey.Render(userFilters[s.filter].Title())
	if s.searching || s.search.Value() != "" {
		filter += "   " + s.search.View()
	}
	b.WriteString(filter + "\n\n")

	users := s.users(m.svc.Users)
	if len(users) == 0 {
		b.WriteString(t.Muted.Render("No users match."))
		return b.String()
	}
	b.WriteString(t.TableHeader.Render(util.PadRight("Name", 14)+util.PadRight("Email", 22)+util.PadRight("Status", 10)+
		util.PadRight("Orders", 8)+util.PadRight("Spent", 12)+"Joined") + "\n")
	cursor := min(s.userCursor, len(users)-1)
	for i, u := range users {
		row := util.PadRight(u.Name, 14) + util.PadRight(util.TruncateWidth(u.Email, 21), 22) +
			t.Status(string(u.Status)).Render(util.PadRight(u.Status.Title(), 10)) +
			util.PadRight(strconv.Itoa(u.Orders), 8) + util.PadRight(util.Money(u.TotalSpent), 12) +
			u.JoinDate.Format("Jan 2006")
		if i == cursor {
			row = t.RowSelected.Render(row)
		}
		b.WriteString(row + "\n")
	}
	return b.String()
}
