// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package router

import (
	"fmt"
	"strings"
)

// ============================================================================
// VIEW TYPE
// ============================================================================

// View is a top-level screen.
type View int

const (
	// ViewLogin is the sign-in form.
	ViewLogin View = iota
	// ViewSignup is the account creation form.
	ViewSignup
	// ViewMain is the storefront for signed-in customers.
	ViewMain
	// ViewAdmin is the admin dashboard.
	ViewAdmin
	// ViewBlocked is the terminal "account blocked" screen.
	ViewBlocked
)

// String returns the view name.
func (v View) String() string {
	switch v {
	case ViewLogin:
		return "login"
	case ViewSignup:
		return "signup"
	case ViewMain:
		return "main"
	case ViewAdmin:
		return "admin"
	case ViewBlocked:
		return "blocked"
	default:
		return fmt.Sprintf("View(%d)", v)
	}
}

// RequiresIdentity reports whether the view is only reachable signed in.
func (v View) RequiresIdentity() bool {
	return v == ViewMain || v == ViewAdmin
}

// ============================================================================
// PAGE TYPE
// ============================================================================

// Page is a screen inside the storefront layout.
type Page int

const (
	// PageHome is the product grid.
	PageHome Page = iota
	// PageProduct is a product detail page.
	PageProduct
	// PageCart is the shopping cart.
	PageCart
	// PageProfile is the user profile.
	PageProfile
)

// String returns the page name.
func (p Page) String() string {
	switch p {
	case PageHome:
		return "home"
	case PageProduct:
		return "product"
	case PageCart:
		return "cart"
	case PageProfile:
		return "profile"
	default:
		return fmt.Sprintf("Page(%d)", p)
	}
}

// ============================================================================
// ADMIN SECTIONS
// ============================================================================

// AdminSection is a sub-view of the admin dashboard.
type AdminSection string

// Admin sections, in navigation order.
const (
	SectionDashboard AdminSection = "dashboard"
	SectionSecurity  AdminSection = "security"
	SectionAnalytics AdminSection = "analytics"
	SectionFinancial AdminSection = "financial"
	SectionUsers     AdminSection = "users"
)

// AdminSections lists the sections in navigation order.
var AdminSections = []AdminSection{
	SectionDashboard, SectionSecurity, SectionAnalytics, SectionFinancial, SectionUsers,
}

// Label is the navigation title.
func (s AdminSection) Label() string {
	switch s {
	case SectionDashboard:
		return "Dashboard"
	case SectionSecurity:
		return "Security"
	case SectionAnalytics:
		return "Analytics"
	case SectionFinancial:
		return "Financial"
	case SectionUsers:
		return "Users"
	default:
		return string(s)
	}
}

// ParseAdminSection accepts a section name, case-insensitive.
func ParseAdminSection(name string) (AdminSection, error) {
	s := AdminSection(strings.ToLower(strings.TrimSpace(name)))
	if s.index() < 0 {
		return "", fmt.Errorf("%w: %q", ErrUnknownSection, name)
	}
	return s, nil
}

func (s AdminSection) index() int {
	for i, known := range AdminSections {
		if known == s {
			return i
		}
	}
	return -1
}
