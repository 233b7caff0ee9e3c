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
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/jeranaias/shopfront-tui/internal/cart"
	"github.com/jeranaias/shopfront-tui/internal/catalog"
	"github.com/jeranaias/shopfront-tui/internal/dashboard"
	"github.com/jeranaias/shopfront-tui/internal/router"
	"github.com/jeranaias/shopfront-tui/internal/ui/styles"
	"github.com/jeranaias/shopfront-tui/internal/util"
)

// shopTabs are the header tabs of the storefront, bound to 1-3.
var shopTabs = []router.Page{router.PageHome, router.PageCart, router.PageProfile}

// profileTabs are the sections of the profile page.
var profileTabs = []string{"Profile", "Orders", "Security"}

// =============================================================================
// STATE
// =============================================================================

type shopState struct {
	nav router.Nav

	// home grid
	cursor    int
	category  string
	search    textinput.Model
	searching bool

	// product page
	detail   catalog.Detail
	markdown viewport.Model
	qty      int

	cartCursor int

	profileTab   int
	code         textinput.Model
	enteringCode bool

	width  int
	height int
}

func newShopState() shopState {
	s := shopState{
		category: catalog.AllCategories,
		search:   newInput("Search products...", false),
		markdown: viewport.New(80, 10),
		code:     newInput("6-digit code", false),
		qty:      1,
	}
	s.search.Prompt = "/ "
	s.code.CharLimit = 6
	s.code.Width = 8
	return s
}

func (s *shopState) resize(width, height int) {
	s.width, s.height = width, height
	s.markdown.Width = max(width-4, 20)
	s.markdown.Height = max(height-8, 3)
}

func (s *shopState) updateInputs(msg tea.Msg) tea.Cmd {
	var c1, c2 tea.Cmd
	s.search, c1 = s.search.Update(msg)
	s.code, c2 = s.code.Update(msg)
	return tea.Batch(c1, c2)
}

// products is the filtered grid content.
func (m *Model) products() []catalog.Product {
	var out []catalog.Product
	for _, p := range m.svc.Catalog.Search(m.shop.search.Value()) {
		if m.shop.category == catalog.AllCategories || strings.EqualFold(p.Category, m.shop.category) {
			out = append(out, p)
		}
	}
	return out
}

// =============================================================================
// UPDATE
// =============================================================================

func (m *Model) updateShop(msg tea.KeyMsg) tea.Cmd {
	if cmd, ok := m.handleGlobal(msg); ok {
		return cmd
	}
	s := &m.shop

	if !m.typing() && key.Matches(msg, m.keys.Section) {
		i, _ := strconv.Atoi(msg.String())
		if i >= 1 && i <= len(shopTabs) {
			m.goPage(shopTabs[i-1])
		}
		return nil
	}

	switch s.nav.Page() {
	case router.PageHome:
		return m.updateHome(msg)
	case router.PageProduct:
		return m.updateProduct(msg)
	case router.PageCart:
		return m.updateCart(msg)
	case router.PageProfile:
		return m.updateProfile(msg)
	}
	return nil
}

func (m *Model) goPage(p router.Page) {
	if p == router.PageHome {
		m.shop.nav.Home()
		return
	}
	if err := m.shop.nav.Go(p); err != nil {
		m.logger.Debug("navigation refused", zap.Error(err))
	}
}

func (m *Model) updateHome(msg tea.KeyMsg) tea.Cmd {
	s := &m.shop
	if s.searching {
		switch {
		case key.Matches(msg, m.keys.Back):
			s.search.SetValue("")
			fallthrough
		case key.Matches(msg, m.keys.Submit):
			s.searching = false
			s.search.Blur()
			s.cursor = 0
			return nil
		}
		var cmd tea.Cmd
		s.search, cmd = s.search.Update(msg)
		s.cursor = 0
		return cmd
	}

	items := m.products()
	cols := m.theme.Columns()
	switch {
	case key.Matches(msg, m.keys.Search):
		s.searching = true
		return s.search.Focus()
	case key.Matches(msg, m.keys.Category):
		s.category = nextCategory(append([]string{catalog.AllCategories}, m.svc.Catalog.Categories()...), s.category)
		s.cursor = 0
	case key.Matches(msg, m.keys.Back):
		s.search.SetValue("")
		s.category = catalog.AllCategories
		s.cursor = 0
	case key.Matches(msg, m.keys.Left):
		s.cursor = max(s.cursor-1, 0)
	case key.Matches(msg, m.keys.Right):
		s.cursor = min(s.cursor+1, max(len(items)-1, 0))
	case key.Matches(msg, m.keys.Up):
		if s.cursor-cols >= 0 {
			s.cursor -= cols
		}
	case key.Matches(msg, m.keys.Down):
		if s.cursor+cols < len(items) {
			s.cursor += cols
		}
	case len(items) == 0:
		return nil
	case key.Matches(msg, m.keys.Submit):
		return m.openProduct(items[s.cursor].ID)
	case key.Matches(msg, m.keys.Add):
		return m.addToCart(items[s.cursor].ID, 1)
	case key.Matches(msg, m.keys.Favorite):
		return m.toggleFavorite(items[s.cursor].ID)
	}
	return nil
}

func nextCategory(all []string, current string) string {
	for i, c := range all {
		if c == current {
			return all[(i+1)%len(all)]
		}
	}
	return all[0]
}

func (m *Model) openProduct(id string) tea.Cmd {
	s := &m.shop
	d, err := m.svc.ViewProduct(m.ctx, id)
	if err != nil {
		return m.setFlash(err.Error())
	}
	if err := s.nav.Open(id); err != nil {
		return m.setFlash(err.Error())
	}
	s.detail = d
	s.qty = 1
	s.markdown.SetContent(m.renderMarkdown(d.Markdown(), s.markdown.Width))
	s.markdown.GotoTop()
	return nil
}

// renderMarkdown renders md with glamour, falling back to the raw text.
func (m *Model) renderMarkdown(md string, width int) string {
	style := "light"
	if m.theme.IsDark {
		style = "dark"
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		m.logger.Warn("markdown renderer", zap.Error(err))
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		m.logger.Warn("render product page", zap.Error(err))
		return md
	}
	return out
}

func (m *Model) updateProduct(msg tea.KeyMsg) tea.Cmd {
	s := &m.shop
	id := s.nav.ProductID()
	switch {
	case key.Matches(msg, m.keys.Back):
		s.nav.Home()
		return nil
	case key.Matches(msg, m.keys.More):
		s.qty = min(s.qty+1, min(s.detail.InStock, cart.MaxQuantity))
		return nil
	case key.Matches(msg, m.keys.Less):
		s.qty = max(s.qty-1, 1)
		return nil
	case key.Matches(msg, m.keys.Add):
		return m.addToCart(id, s.qty)
	case key.Matches(msg, m.keys.Favorite):
		return m.toggleFavorite(id)
	}
	var cmd tea.Cmd
	s.markdown, cmd = s.markdown.Update(msg)
	return cmd
}

func (m *Model) addToCart(id string, qty int) tea.Cmd {
	if err := m.svc.AddToCart(m.ctx, id, qty); err != nil {
		return m.setFlash(err.Error())
	}
	p, _ := m.svc.Catalog.Get(id)
	return m.setFlash(fmt.Sprintf("Added %d x %s to cart", qty, util.TruncateWidth(p.Name, 40)))
}

func (m *Model) toggleFavorite(id string) tea.Cmd {
	on, err := m.svc.ToggleFavorite(m.ctx, id)
	if err != nil {
		return m.setFlash(err.Error())
	}
	if on {
		return m.setFlash("Added to favorites")
	}
	return m.setFlash("Removed from favorites")
}

func (m *Model) updateCart(msg tea.KeyMsg) tea.Cmd {
	s := &m.shop
	lines := m.svc.Cart.Lines()
	if key.Matches(msg, m.keys.Back) {
		s.nav.Home()
		return nil
	}
	if len(lines) == 0 {
		return nil
	}
	s.cartCursor = min(s.cartCursor, len(lines)-1)
	line := lines[s.cartCursor]

	switch {
	case key.Matches(msg, m.keys.Up):
		s.cartCursor = max(s.cartCursor-1, 0)
	case key.Matches(msg, m.keys.Down):
		s.cartCursor = min(s.cartCursor+1, len(lines)-1)
	case key.Matches(msg, m.keys.More):
		if _, err := m.svc.Cart.SetQuantity(line.ID, line.Quantity+1); err != nil {
			return m.setFlash(err.Error())
		}
	case key.Matches(msg, m.keys.Less):
		if _, err := m.svc.Cart.SetQuantity(line.ID, line.Quantity-1); err != nil {
			return m.setFlash(err.Error())
		}
	case key.Matches(msg, m.keys.Remove):
		m.svc.Cart.Remove(line.ID)
		return m.setFlash("Removed " + util.TruncateWidth(line.Name, 40))
	case key.Matches(msg, m.keys.Clear):
		m.svc.Cart.Clear()
		s.cartCursor = 0
		return m.setFlash("Cart cleared")
	case key.Matches(msg, m.keys.Submit):
		return m.openProduct(line.ID)
	}
	return nil
}

func (m *Model) updateProfile(msg tea.KeyMsg) tea.Cmd {
	s := &m.shop
	id, _ := m.svc.Auth.Current()
	tf := m.svc.Auth.TwoFactor()

	if s.enteringCode {
		switch {
		case key.Matches(msg, m.keys.Back):
			s.enteringCode = false
			s.code.Blur()
			s.code.SetValue("")
			tf.Disable(id.Email)
			return nil
		case key.Matches(msg, m.keys.Submit):
			err := tf.Confirm(id.Email, s.code.Value())
			s.code.SetValue("")
			if err != nil {
				return m.setFlash(err.Error())
			}
			s.enteringCode = false
			s.code.Blur()
			return m.setFlash("Two-factor authentication enabled")
		}
		var cmd tea.Cmd
		s.code, cmd = s.code.Update(msg)
		return cmd
	}

	switch {
	case key.Matches(msg, m.keys.Back):
		s.nav.Home()
	case key.Matches(msg, m.keys.NextTab), key.Matches(msg, m.keys.Right):
		s.profileTab = (s.profileTab + 1) % len(profileTabs)
	case key.Matches(msg, m.keys.PrevTab), key.Matches(msg, m.keys.Left):
		s.profileTab = (s.profileTab - 1 + len(profileTabs)) % len(profileTabs)
	case s.profileTab != 2:
	case key.Matches(msg, m.keys.Enable2F):
		if tf.Enabled(id.Email) {
			return nil
		}
		if _, err := tf.Begin(id.Email); err != nil {
			m.logger.Warn("begin two-factor enrollment", zap.Error(err))
			return m.setFlash("Could not start two-factor setup")
		}
		s.enteringCode = true
		return s.code.Focus()
	case key.Matches(msg, m.keys.Disable):
		tf.Disable(id.Email)
		return m.setFlash("Two-factor authentication disabled")
	}
	return nil
}

// =============================================================================
// VIEW
// =============================================================================

func (m Model) viewShop() string {
	switch m.shop.nav.Page() {
	case router.PageProduct:
		return m.viewProduct()
	case router.PageCart:
		return m.viewCart()
	case router.PageProfile:
		return m.viewProfile()
	default:
		return m.viewHome()
	}
}

func (m Model) viewHome() string {
	t := m.theme
	s := m.shop

	var b strings.Builder
	filter := t.Label.Render("Category: ") + t.ShortcutKey.Render(s.category)
	if s.searching || s.search.Value() != "" {
		filter += "   " + s.search.View()
	}
	b.WriteString(filter + "\n\n")

	items := m.products()
	if len(items) == 0 {
		b.WriteString(t.Muted.Render("No products match. Esc clears the filters."))
		return b.String()
	}

	cols := t.Columns()
	var rows []string
	for start := 0; start < len(items); start += cols {
		end := min(start+cols, len(items))
		cards := make([]string, 0, cols)
		for i := start; i < end; i++ {
			cards = append(cards, m.renderCard(items[i], i == s.cursor))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}
	b.WriteString(lipgloss.JoinVertical(lipgloss.Left, rows...))
	return b.String()
}

func (m Model) renderCard(p catalog.Product, selected bool) string {
	t := m.theme
	style := t.Card
	if selected {
		style = t.CardSelected
	}
	width := style.GetWidth() - 4

	name := util.TruncateWidth(p.Name, width)
	if m.svc.Favorites.Has(p.ID) {
		name = util.TruncateWidth(p.Name, width-2) + " " + t.Error.Render("♥")
	}
	lines := []string{t.Title.UnsetMarginBottom().Render(name)}
	if p.Badge != "" {
		lines = append(lines, t.Badge.Render(p.Badge))
	}
	lines = append(lines,
		t.Stars.Render(styles.RenderStars(p.Rating))+" "+t.Muted.Render("("+util.Thousands(p.Reviews)+")"),
		priceLine(t, p),
		t.Muted.Render(util.TruncateWidth("by "+p.Seller, width)),
	)
	return style.Render(strings.Join(lines, "\n"))
}

func priceLine(t *styles.Theme, p catalog.Product) string {
	line := t.Price.Render(util.Money(p.Price))
	if d := p.Discount(); d > 0 {
		line += " " + t.OldPrice.Render(util.Money(p.OriginalPrice)) + " " + t.Success.Render(fmt.Sprintf("-%d%%", d))
	}
	return line
}

func (m Model) viewProduct() string {
	t := m.theme
	s := m.shop
	d := s.detail

	fav := ""
	if m.svc.Favorites.Has(d.ID) {
		fav = "  " + t.Error.Render("♥ favorite")
	}
	head := []string{
		t.Title.UnsetMarginBottom().Render(d.Name) + fav,
		t.Stars.Render(styles.RenderStars(d.Rating)) + " " + t.Muted.Render(fmt.Sprintf("%.1f (%s reviews)", d.Rating, util.Thousands(d.Reviews))),
		priceLine(t, d.Product) + "   " + t.Muted.Render("Sold by "+d.Seller),
		t.Success.Render(fmt.Sprintf("In stock: %d", d.InStock)) + "   " +
			t.Label.Render("Qty: ") + t.ShortcutKey.Render("- "+strconv.Itoa(s.qty)+" +") + "   " +
			t.ButtonActive.Render("a Add to Cart"),
	}
	return lipgloss.JoinVertical(lipgloss.Left, strings.Join(head, "\n"), s.markdown.View())
}

func (m Model) viewCart() string {
	t := m.theme
	s := m.shop
	lines := m.svc.Cart.Lines()

	var b strings.Builder
	b.WriteString(t.Title.Render("Shopping Cart"))
	b.WriteString("\n")
	if len(lines) == 0 {
		b.WriteString(t.Muted.Render("Your cart is empty. Press 1 to keep shopping."))
		return b.String()
	}

	nameWidth := max(m.width-40, 20)
	b.WriteString(t.TableHeader.Render(util.PadRight("Item", nameWidth)+util.PadRight("Price", 12)+util.PadRight("Qty", 6)+"Total") + "\n")
	cursor := min(s.cartCursor, len(lines)-1)
	for i, l := range lines {
		row := util.PadRight(util.TruncateWidth(l.Name, nameWidth-2), nameWidth) +
			util.PadRight(util.Money(l.Price), 12) +
			util.PadRight(strconv.Itoa(l.Quantity), 6) +
			util.Money(l.Total())
		if i == cursor {
			row = t.RowSelected.Render(row)
		}
		b.WriteString(row + "\n")
	}
	b.WriteString("\n")
	b.WriteString(t.Label.Render(fmt.Sprintf("Subtotal (%d %s): ", m.svc.Cart.TotalItems(),
		util.Plural(m.svc.Cart.TotalItems(), "item", "items"))))
	b.WriteString(t.Price.Render(util.Money(m.svc.Cart.Subtotal())))
	return b.String()
}

func (m Model) viewProfile() string {
	t := m.theme
	s := m.shop
	id, _ := m.svc.Auth.Current()

	tabs := make([]string, len(profileTabs))
	for i, name := range profileTabs {
		if i == s.profileTab {
			tabs[i] = t.TabActive.Render(name)
		} else {
			tabs[i] = t.Tab.Render(name)
		}
	}

	var body string
	switch s.profileTab {
	case 0:
		body = m.viewProfileInfo()
	case 1:
		body = m.viewOrders()
	default:
		body = m.viewAccountSecurity(id.Email)
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		t.Title.Render("My Account"),
		lipgloss.JoinHorizontal(lipgloss.Top, tabs...),
		"",
		body)
}

func (m Model) viewProfileInfo() string {
	t := m.theme
	id, _ := m.svc.Auth.Current()
	now := time.Now()

	row := func(label, value string) string {
		return t.Label.Render(util.PadRight(label, 16)) + value
	}
	lastLogin := "never"
	if !id.LastLogin.IsZero() {
		lastLogin = util.Ago(id.LastLogin, now)
	}
	return strings.Join([]string{
		row("Full Name", id.Name),
		row("Email", id.Email),
		row("Account Type", string(id.Role)),
		row("Member Since", id.CreatedAt.Format("January 2006")),
		row("Last Login", lastLogin),
		row("Favorites", strconv.Itoa(len(m.svc.Favorites.IDs()))),
	}, "\n")
}

func (m Model) viewOrders() string {
	t := m.theme
	var b strings.Builder
	b.WriteString(t.TableHeader.Render(util.PadRight("Order", 12)+util.PadRight("Date", 14)+util.PadRight("Items", 8)+util.PadRight("Total", 12)+"Status") + "\n")
	for _, o := range dashboard.SampleOrders() {
		b.WriteString(util.PadRight(o.ID, 12) +
			util.PadRight(o.Date.Format("Jan 2, 2006"), 14) +
			util.PadRight(strconv.Itoa(o.Items), 8) +
			util.PadRight(util.Money(o.Total), 12) +
			t.Status(o.Status).Render(o.Status) + "\n")
	}
	return b.String()
}

func (m Model) viewAccountSecurity(email string) string {
	t := m.theme
	s := m.shop
	tf := m.svc.Auth.TwoFactor()

	lines := []string{
		t.Success.Render(styles.StatusIndicators.Success + " Account Security"),
		t.Muted.Render("Your account is protected with secure login"),
		"",
		t.Label.Render("Password"),
		t.Muted.Render("Last changed when the account was created"),
		"",
		t.Label.Render("Two-Factor Authentication"),
	}
	switch {
	case tf.Enabled(email):
		lines = append(lines, t.Success.Render("Enabled")+"   "+t.Muted.Render("d disable"))
	case s.enteringCode:
		if e, ok := tf.Pending(email); ok {
			lines = append(lines,
				t.Muted.Render("Add this key to your authenticator app:"),
				t.ShortcutKey.Render(e.Secret),
				t.Muted.Render(util.TruncateWidth(e.URL, max(m.width-4, 20))),
				"",
				t.Label.Render("Code: ")+s.code.View(),
				t.Muted.Render("Enter confirm  Esc cancel"))
		}
	default:
		lines = append(lines, t.Muted.Render("Not enabled")+"   "+t.Muted.Render("e enable"))
	}
	return strings.Join(lines, "\n")
}
