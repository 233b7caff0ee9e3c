// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package dashboard

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
)

// Errors returned by Users.
var (
	ErrUserNotFound  = errors.New("user not found")
	ErrUnknownAction = errors.New("unknown user action")
)

// UserStatus is the account state shown in the users table.
type UserStatus string

// Account states.
const (
	StatusActive   UserStatus = "active"
	StatusBlocked  UserStatus = "blocked"
	StatusInactive UserStatus = "inactive"
)

// StatusAll disables the status filter.
const StatusAll UserStatus = "all"

// Title is the capitalised status for display.
func (s UserStatus) Title() string {
	if s == "" {
		return ""
	}
	return strings.ToUpper(string(s[:1])) + string(s[1:])
}

// UserAction is an admin action on a managed user.
type UserAction string

// Admin actions. Unblock and activate both make the user active.
const (
	ActionBlock    UserAction = "block"
	ActionUnblock  UserAction = "unblock"
	ActionActivate UserAction = "activate"
)

// ManagedUser is a customer account listed in the users panel.
type ManagedUser struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Email      string     `json:"email"`
	Status     UserStatus `json:"status"`
	LastLogin  time.Time  `json:"lastLogin"`
	Orders     int        `json:"orders"`
	TotalSpent float64    `json:"totalSpent"`
	JoinDate   time.Time  `json:"joinDate"`
}

// UserCounts are the status tallies above the table.
type UserCounts struct {
	Total    int `json:"total"`
	Active   int `json:"active"`
	Blocked  int `json:"blocked"`
	Inactive int `json:"inactive"`
}

// SampleUsers returns the demo customer accounts.
func SampleUsers() []ManagedUser {
	at := func(y int, mo time.Month, d, h, mi int) time.Time {
		return time.Date(y, mo, d, h, mi, 0, 0, time.UTC)
	}
	return []ManagedUser{
		{"1", "John Doe", "john@example.com", StatusActive, at(2024, 1, 20, 10, 30), 12, 1249.99, at(2023, 6, 15, 0, 0)},
		{"2", "Jane Smith", "jane@example.com", StatusActive, at(2024, 1, 19, 16, 45), 8, 679.50, at(2023, 8, 22, 0, 0)},
		{"3", "Bob Johnson", "bob@example.com", StatusBlocked, at(2024, 1, 18, 12, 20), 3, 199.99, at(2023, 12, 1, 0, 0)},
		{"4", "Alice Brown", "alice@example.com", StatusInactive, at(2024, 1, 15, 8, 15), 15, 2149.75, at(2023, 3, 10, 0, 0)},
	}
}

// Users is the mutable managed-user list. Changes are not persisted.
type Users struct {
	mu    sync.RWMutex
	users []ManagedUser
}

// NewUsers returns a list over users, or the samples when none are given.
func NewUsers(users ...ManagedUser) *Users {
	if len(users) == 0 {
		users = SampleUsers()
	}
	return &Users{users: append([]ManagedUser(nil), users...)}
}

// All returns every user in list order.
func (u *Users) All() []ManagedUser {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return append([]ManagedUser(nil), u.users...)
}

// Get returns a user by id.
func (u *Users) Get(id string) (ManagedUser, error) {
	u.mu.RLock()
	defer u.mu.RUnlock()
	for _, m := range u.users {
		if m.ID == id {
			return m, nil
		}
	}
	return ManagedUser{}, fmt.Errorf("%w: %s", ErrUserNotFound, id)
}

// Filter returns users whose name or email contains search (ignoring
// case) and whose status matches. StatusAll or "" matches any status.
func (u *Users) Filter(search string, status UserStatus) []ManagedUser {
	q := strings.ToLower(strings.TrimSpace(search))

	u.mu.RLock()
	defer u.mu.RUnlock()
	var out []ManagedUser
	for _, m := range u.users {
		if q != "" &&
			!strings.Contains(strings.ToLower(m.Name), q) &&
			!strings.Contains(strings.ToLower(m.Email), q) {
			continue
		}
		if status != "" && status != StatusAll && m.Status != status {
			continue
		}
		out = append(out, m)
	}
	return out
}

// Apply performs action on the user with id and returns the updated record.
func (u *Users) Apply(id string, action UserAction) (ManagedUser, error) {
	var next UserStatus
	switch action {
	case ActionBlock:
		next = StatusBlocked
	case ActionUnblock, ActionActivate:
		next = StatusActive
	default:
		return ManagedUser{}, fmt.Errorf("%w: %s", ErrUnknownAction, action)
	}

	u.mu.Lock()
	defer u.mu.Unlock()
	for i := range u.users {
		if u.users[i].ID == id {
			u.users[i].Status = next
			return u.users[i], nil
		}
	}
	return ManagedUser{}, fmt.Errorf("%w: %s", ErrUserNotFound, id)
}

// Counts tallies users by status.
func (u *Users) Counts() UserCounts {
	u.mu.RLock()
	defer u.mu.RUnlock()
	c := UserCounts{Total: len(u.users)}
	for _, m := range u.users {
		switch m.Status {
		case StatusActive:
			c.Active++
		case StatusBlocked:
			c.Blocked++
		case StatusInactive:
			c.Inactive++
		}
	}
	return c
}
