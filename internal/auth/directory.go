// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package auth

import (
	"strings"
	"time"

	"github.com/jeranaias/shopfront-tui/internal/session"
)

// Account is a directory entry: an identity plus its demo password.
type Account struct {
	Identity session.Identity
	Password string
}

// Directory is the fixed in-memory list of accounts that can sign in.
// Passwords are compared in the clear.
type Directory struct {
	accounts []Account
}

// DefaultAccounts returns the two built-in demo accounts.
func DefaultAccounts() []Account {
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return []Account{
		{
			Identity: session.Identity{
				ID:        "1",
				Email:     "admin@amazon.com",
				Name:      "Admin User",
				Role:      session.RoleAdmin,
				CreatedAt: created,
			},
			Password: "admin123",
		},
		{
			Identity: session.Identity{
				ID:        "2",
				Email:     "user@amazon.com",
				Name:      "John Doe",
				Role:      session.RoleUser,
				CreatedAt: created,
			},
			Password: "user123",
		},
	}
}

// NewDirectory returns a directory over accounts, or the defaults when
// none are given.
func NewDirectory(accounts ...Account) *Directory {
	if len(accounts) == 0 {
		accounts = DefaultAccounts()
	}
	return &Directory{accounts: append([]Account(nil), accounts...)}
}

// Lookup finds an account by email, ignoring case and surrounding space.
func (d *Directory) Lookup(email string) (Account, bool) {
	email = normalizeEmail(email)
	for _, a := range d.accounts {
		if strings.EqualFold(a.Identity.Email, email) {
			return a, true
		}
	}
	return Account{}, false
}

// Exists reports whether email belongs to a directory account.
func (d *Directory) Exists(email string) bool {
	_, ok := d.Lookup(email)
	return ok
}

// Verify returns the identity when email and password match an account.
func (d *Directory) Verify(email, password string) (session.Identity, bool) {
	a, ok := d.Lookup(email)
	if !ok || a.Password != password {
		return session.Identity{}, false
	}
	return a.Identity, true
}

// Accounts returns a copy of every entry.
func (d *Directory) Accounts() []Account {
	return append([]Account(nil), d.accounts...)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
