// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"github.com/charmbracelet/bubbles/key"
)

// =============================================================================
// KEY MAP DEFINITION
// =============================================================================

// KeyMap holds every binding the screens use. Single-letter bindings are
// ignored while a text input has focus.
type KeyMap struct {
	// Global
	Quit      key.Binding
	ForceQuit key.Binding
	Help      key.Binding
	Dismiss   key.Binding
	Logout    key.Binding
	Reload    key.Binding

	// Forms
	NextField    key.Binding
	PrevField    key.Binding
	Submit       key.Binding
	SwitchForm   key.Binding
	ShowPassword key.Binding

	// Navigation
	Up      key.Binding
	Down    key.Binding
	Left    key.Binding
	Right   key.Binding
	Back    key.Binding
	Section key.Binding
	NextTab key.Binding
	PrevTab key.Binding

	// Storefront
	Search   key.Binding
	Category key.Binding
	Add      key.Binding
	Favorite key.Binding
	More     key.Binding
	Less     key.Binding
	Remove   key.Binding
	Clear    key.Binding
	Enable2F key.Binding
	Disable  key.Binding

	// Admin
	Resolve  key.Binding
	Block    key.Binding
	Unblock  key.Binding
	Activate key.Binding
	Filter   key.Binding
	Period   key.Binding
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("C-c", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("ctrl+x"),
			key.WithHelp("C-x", "dismiss alerts"),
		),
		Logout: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "log out"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),

		NextField: key.NewBinding(
			key.WithKeys("tab", "down"),
			key.WithHelp("Tab", "next field"),
		),
		PrevField: key.NewBinding(
			key.WithKeys("shift+tab", "up"),
			key.WithHelp("S-Tab", "previous field"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("Enter", "submit"),
		),
		SwitchForm: key.NewBinding(
			key.WithKeys("ctrl+n"),
			key.WithHelp("C-n", "sign up / sign in"),
		),
		ShowPassword: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("C-t", "show password"),
		),

		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("left/h", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("right/l", "right"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("Esc", "back"),
		),
		Section: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5"),
			key.WithHelp("1-5", "switch section"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("Tab", "next tab"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("S-Tab", "previous tab"),
		),

		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Category: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "category"),
		),
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add to cart"),
		),
		Favorite: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "favorite"),
		),
		More: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "more"),
		),
		Less: key.NewBinding(
			key.WithKeys("-", "_"),
			key.WithHelp("-", "less"),
		),
		Remove: key.NewBinding(
			key.WithKeys("x", "delete"),
			key.WithHelp("x", "remove"),
		),
		Clear: key.NewBinding(
			key.WithKeys("X"),
			key.WithHelp("X", "clear cart"),
		),
		Enable2F: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "enable 2FA"),
		),
		Disable: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "disable 2FA"),
		),

		Resolve: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "resolve"),
		),
		Block: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "block"),
		),
		Unblock: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "unblock"),
		),
		Activate: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "activate"),
		),
		Filter: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "status filter"),
		),
		Period: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "period"),
		),
	}
}

// =============================================================================
// HELP TEXT
// =============================================================================

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right, k.Back},
		{k.Search, k.Category, k.Add, k.Favorite, k.More, k.Less},
		{k.Remove, k.Clear, k.Enable2F, k.Disable},
		{k.Resolve, k.Block, k.Unblock, k.Activate, k.Filter, k.Period},
		{k.Section, k.Dismiss, k.Logout, k.Help, k.Quit},
	}
}

// loginHelp is shown under the sign-in form.
func (k KeyMap) loginHelp() []key.Binding {
	return []key.Binding{k.NextField, k.Submit, k.ShowPassword, k.SwitchForm, k.ForceQuit}
}

// shopHelp is shown on the storefront pages.
func (k KeyMap) shopHelp() []key.Binding {
	return []key.Binding{k.Section, k.Search, k.Category, k.Add, k.Favorite, k.Logout, k.Help}
}

// adminHelp is shown on the admin dashboard.
func (k KeyMap) adminHelp() []key.Binding {
	return []key.Binding{k.Section, k.NextTab, k.Resolve, k.Logout, k.Help}
}
