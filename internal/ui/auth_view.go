// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/shopfront-tui/internal/auth"
	"github.com/jeranaias/shopfront-tui/internal/ui/styles"
)

// newInput builds a form field.
func newInput(placeholder string, secret bool) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = ""
	ti.CharLimit = 128
	ti.Width = 40
	if secret {
		ti.EchoMode = textinput.EchoPassword
		ti.EchoCharacter = '•'
	}
	return ti
}

// focusField focuses inputs[i] and blurs the rest.
func focusField(inputs []textinput.Model, i int) tea.Cmd {
	var cmd tea.Cmd
	for j := range inputs {
		if j == i {
			cmd = inputs[j].Focus()
		} else {
			inputs[j].Blur()
		}
	}
	return cmd
}

// =============================================================================
// LOGIN FORM
// =============================================================================

type loginState struct {
	email        textinput.Model
	password     textinput.Model
	focus        int
	showPassword bool
	loading      bool
	err          string
}

func newLoginState() loginState {
	s := loginState{
		email:    newInput("Enter your email", false),
		password: newInput("Enter your password", true),
	}
	s.email.Focus()
	return s
}

func (s *loginState) reset() {
	*s = newLoginState()
}

func (s *loginState) fields() []textinput.Model {
	return []textinput.Model{s.email, s.password}
}

func (s *loginState) setFocus(i int) tea.Cmd {
	fields := s.fields()
	s.focus = (i + len(fields)) % len(fields)
	cmd := focusField(fields, s.focus)
	s.email, s.password = fields[0], fields[1]
	return cmd
}

func (s *loginState) updateInputs(msg tea.Msg) tea.Cmd {
	var c1, c2 tea.Cmd
	s.email, c1 = s.email.Update(msg)
	s.password, c2 = s.password.Update(msg)
	return tea.Batch(c1, c2)
}

func (m *Model) updateLogin(msg tea.KeyMsg) tea.Cmd {
	s := &m.login
	if s.loading {
		return nil
	}
	switch {
	case key.Matches(msg, m.keys.SwitchForm):
		m.wantSignup = true
		return nil
	case key.Matches(msg, m.keys.ShowPassword):
		s.showPassword = !s.showPassword
		if s.showPassword {
			s.password.EchoMode = textinput.EchoNormal
		} else {
			s.password.EchoMode = textinput.EchoPassword
		}
		return nil
	case key.Matches(msg, m.keys.NextField):
		return s.setFocus(s.focus + 1)
	case key.Matches(msg, m.keys.PrevField):
		return s.setFocus(s.focus - 1)
	case key.Matches(msg, m.keys.Submit):
		if s.focus == 0 {
			return s.setFocus(1)
		}
		return m.submitLogin()
	}
	return s.updateInputs(msg)
}

func (m *Model) submitLogin() tea.Cmd {
	s := &m.login
	email, password := strings.TrimSpace(s.email.Value()), s.password.Value()
	if email == "" || password == "" {
		s.err = auth.Message(auth.ErrMissingFields)
		return nil
	}
	s.err = ""
	s.loading = true
	return tea.Batch(m.spinner.Tick, loginCmd(m.ctx, m.svc, email, password))
}

func (m Model) viewLogin() string {
	t := m.theme
	s := m.login

	var b strings.Builder
	b.WriteString(t.HeaderBrand.Render("SecureShop") + "\n")
	b.WriteString(t.Subtitle.Render("Sign in to your account") + "\n\n")

	if s.err != "" {
		b.WriteString(t.Error.Render(styles.StatusIndicators.Error+" "+s.err) + "\n\n")
	}
	if warn := m.svc.Auth.LockoutWarning(); warn != "" {
		b.WriteString(t.Warning.Render(styles.StatusIndicators.Warning+" "+warn) + "\n\n")
	}

	b.WriteString(renderField(t, "Email Address", s.email, s.focus == 0))
	b.WriteString(renderField(t, "Password", s.password, s.focus == 1))

	if s.loading {
		b.WriteString(m.spinner.View() + " Signing in...\n")
	} else {
		b.WriteString(t.ButtonActive.Render("Sign In") + "\n")
	}

	b.WriteString("\n" + t.Muted.Render("Don't have an account? ") + t.ShortcutKey.Render("C-n") + t.Muted.Render(" Sign Up") + "\n\n")
	b.WriteString(t.Label.Render("Demo credentials") + "\n")
	b.WriteString(t.Muted.Render("Admin: admin@amazon.com / admin123") + "\n")
	b.WriteString(t.Muted.Render("User:  user@amazon.com / user123"))

	return m.centerForm(t.FormBox.Render(b.String()), m.keys.loginHelp())
}

// =============================================================================
// SIGNUP FORM
// =============================================================================

const (
	fieldName = iota
	fieldEmail
	fieldPassword
	fieldConfirm
)

type signupState struct {
	inputs  []textinput.Model
	focus   int
	loading bool
	err     string
}

func newSignupState() signupState {
	s := signupState{inputs: []textinput.Model{
		newInput("Enter your full name", false),
		newInput("Enter your email", false),
		newInput("Create a password", true),
		newInput("Confirm your password", true),
	}}
	s.inputs[fieldName].Focus()
	return s
}

func (s *signupState) reset() {
	*s = newSignupState()
}

func (s *signupState) updateInputs(msg tea.Msg) tea.Cmd {
	cmds := make([]tea.Cmd, len(s.inputs))
	for i := range s.inputs {
		s.inputs[i], cmds[i] = s.inputs[i].Update(msg)
	}
	return tea.Batch(cmds...)
}

func (s *signupState) setFocus(i int) tea.Cmd {
	s.focus = (i + len(s.inputs)) % len(s.inputs)
	return focusField(s.inputs, s.focus)
}

func (s *signupState) request() auth.SignupRequest {
	return auth.SignupRequest{
		Name:     s.inputs[fieldName].Value(),
		Email:    s.inputs[fieldEmail].Value(),
		Password: s.inputs[fieldPassword].Value(),
		Confirm:  s.inputs[fieldConfirm].Value(),
	}
}

func (m *Model) updateSignup(msg tea.KeyMsg) tea.Cmd {
	s := &m.signup
	if s.loading {
		return nil
	}
	switch {
	case key.Matches(msg, m.keys.SwitchForm), key.Matches(msg, m.keys.Back):
		m.wantSignup = false
		return nil
	case key.Matches(msg, m.keys.NextField):
		return s.setFocus(s.focus + 1)
	case key.Matches(msg, m.keys.PrevField):
		return s.setFocus(s.focus - 1)
	case key.Matches(msg, m.keys.Submit):
		if s.focus < fieldConfirm {
			return s.setFocus(s.focus + 1)
		}
		s.err = ""
		s.loading = true
		return tea.Batch(m.spinner.Tick, signupCmd(m.ctx, m.svc, s.request()))
	}
	return s.updateInputs(msg)
}

func (m Model) viewSignup() string {
	t := m.theme
	s := m.signup

	var b strings.Builder
	b.WriteString(t.HeaderBrand.Render("SecureShop") + "\n")
	b.WriteString(t.Subtitle.Render("Create your account") + "\n\n")
	if s.err != "" {
		b.WriteString(t.Error.Render(styles.StatusIndicators.Error+" "+s.err) + "\n\n")
	}

	labels := []string{"Full Name", "Email Address", "Password", "Confirm Password"}
	for i, in := range s.inputs {
		b.WriteString(renderField(t, labels[i], in, s.focus == i))
		if i == fieldPassword && in.Value() != "" {
			b.WriteString(renderChecklist(t, in.Value()) + "\n")
		}
	}

	if s.loading {
		b.WriteString(m.spinner.View() + " Creating account...\n")
	} else {
		b.WriteString(t.ButtonActive.Render("Create Account") + "\n")
	}
	b.WriteString("\n" + t.Muted.Render("Already have an account? ") + t.ShortcutKey.Render("Esc") + t.Muted.Render(" Sign In"))

	return m.centerForm(t.FormBox.Render(b.String()), m.keys.loginHelp())
}

// renderChecklist shows each password rule as met or unmet.
func renderChecklist(t *styles.Theme, pw string) string {
	rules := auth.CheckPassword(pw)
	lines := make([]string, len(rules))
	for i, r := range rules {
		if r.Met {
			lines[i] = t.Success.Render(styles.StatusIndicators.Success + " " + r.Label)
		} else {
			lines[i] = t.Muted.Render("[ ] " + r.Label)
		}
	}
	return strings.Join(lines, "\n") + "\n"
}

// renderField renders a label over a bordered input.
func renderField(t *styles.Theme, label string, in textinput.Model, focused bool) string {
	box := t.Input
	if focused {
		box = t.InputFocused
	}
	return t.Label.Render(label) + "\n" + box.Width(44).Render(in.View()) + "\n"
}

// centerForm places a form box in the middle of the screen with its key
// help below.
func (m Model) centerForm(box string, bindings []key.Binding) string {
	body := lipgloss.JoinVertical(lipgloss.Center, box, m.help.ShortHelpView(bindings))
	return lipgloss.Place(m.width, max(m.height-1, lipgloss.Height(body)), lipgloss.Center, lipgloss.Center, body)
}
