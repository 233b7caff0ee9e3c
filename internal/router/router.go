// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package router

import (
	"errors"

	"github.com/jeranaias/shopfront-tui/internal/session"
)

var (
	// ErrNoProductSelected is returned when the product page is requested
	// without a product id.
	ErrNoProductSelected = errors.New("no product selected")
	// ErrUnknownSection is returned for an admin section that does not exist.
	ErrUnknownSection = errors.New("unknown admin section")
)

// ============================================================================
// TOP-LEVEL ROUTING
// ============================================================================

// Route picks the top-level view for a session. A blocked session always
// lands on ViewBlocked; signed-out sessions get the login form, or the
// signup form when wantSignup is set; admins get the dashboard.
func Route(s session.Snapshot, wantSignup bool) View {
	switch {
	case s.Blocked:
		return ViewBlocked
	case s.Identity == nil:
		if wantSignup {
			return ViewSignup
		}
		return ViewLogin
	case s.Identity.IsAdmin():
		return ViewAdmin
	default:
		return ViewMain
	}
}

// ============================================================================
// STOREFRONT NAVIGATION
// ============================================================================

// Nav tracks the storefront page and the selected product.
// The zero value is on PageHome.
type Nav struct {
	page    Page
	product string
}

// Page returns the current page.
func (n *Nav) Page() Page { return n.page }

// ProductID returns the selected product, or "".
func (n *Nav) ProductID() string { return n.product }

// Go switches to page. PageProduct needs a selected product; use Open.
func (n *Nav) Go(page Page) error {
	if page == PageProduct && n.product == "" {
		return ErrNoProductSelected
	}
	n.page = page
	return nil
}

// Open selects a product and shows its page.
func (n *Nav) Open(productID string) error {
	if productID == "" {
		return ErrNoProductSelected
	}
	n.product = productID
	n.page = PageProduct
	return nil
}

// Home returns to the grid and forgets the selected product.
func (n *Nav) Home() {
	n.page = PageHome
	n.product = ""
}

// ============================================================================
// ADMIN NAVIGATION
// ============================================================================

// AdminNav tracks the selected admin section. The zero value is on the
// dashboard.
type AdminNav struct {
	section AdminSection
}

// Section returns the current section.
func (a *AdminNav) Section() AdminSection {
	if a.section == "" {
		return SectionDashboard
	}
	return a.section
}

// Select switches to s.
func (a *AdminNav) Select(s AdminSection) error {
	if s.index() < 0 {
		return ErrUnknownSection
	}
	a.section = s
	return nil
}

// Next moves to the following section, wrapping around.
func (a *AdminNav) Next() AdminSection {
	i := a.Section().index()
	a.section = AdminSections[(i+1)%len(AdminSections)]
	return a.section
}

// Prev moves to the preceding section, wrapping around.
func (a *AdminNav) Prev() AdminSection {
	i := a.Section().index()
	a.section = AdminSections[(i-1+len(AdminSections))%len(AdminSections)]
	return a.section
}
