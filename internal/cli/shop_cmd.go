// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// shop_cmd.go - products, product, users and dashboard.

package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/jeranaias/shopfront-tui/internal/catalog"
	"github.com/jeranaias/shopfront-tui/internal/dashboard"
	"github.com/jeranaias/shopfront-tui/internal/util"
)

// HandleProducts lists the catalog, optionally filtered.
func HandleProducts(_ context.Context, env *Env) error {
	p := NewArgParser(env.Args.Raw)
	category := p.Flag("category")
	search := p.Flag("search")

	var products []catalog.Product
	for _, prod := range env.Services.Catalog.Search(search) {
		if category == "" || strings.EqualFold(prod.Category, category) {
			products = append(products, prod)
		}
	}

	return env.emit(CmdProducts, products, func() {
		if len(products) == 0 {
			env.info("No products match.")
			return
		}
		fmt.Fprintf(env.Out, "%s %s %s %s %s\n",
			util.PadRight("ID", 4), util.PadRight("NAME", 40), util.PadRight("PRICE", 10),
			util.PadRight("RATING", 8), "CATEGORY")
		for _, prod := range products {
			discount := ""
			if d := prod.Discount(); d > 0 {
				discount = SuccessStyle.Render(fmt.Sprintf(" -%d%%", d))
			}
			fmt.Fprintf(env.Out, "%s %s %s %s %s%s\n",
				util.PadRight(prod.ID, 4),
				util.PadRight(prod.Name, 40),
				util.PadRight(util.Money(prod.Price), 10),
				util.PadRight(fmt.Sprintf("%.1f", prod.Rating), 8),
				DimStyle.Render(prod.Category),
				discount)
		}
	})
}

// HandleProduct shows one product page. Viewing is logged like in the TUI.
func HandleProduct(ctx context.Context, env *Env) error {
	p := NewArgParser(env.Args.Raw)
	id, err := p.requirePositional(0, "product id", "shopfront product <id>")
	if err != nil {
		return err
	}
	detail, err := env.Services.ViewProduct(ctx, id)
	if err != nil {
		return err
	}

	return env.emit(CmdProduct, detail, func() {
		md := detail.Markdown()
		style := "notty"
		if ColorsEnabled() {
			style = "dark"
		}
		out, err := glamour.Render(md, style)
		if err != nil {
			out = md
		}
		fmt.Fprint(env.Out, out)
		fmt.Fprintln(env.Out, FormatKeyValue("In stock", fmt.Sprint(detail.InStock)))
	})
}

// HandleUsers lists the managed customer accounts.
func HandleUsers(_ context.Context, env *Env) error {
	p := NewArgParser(env.Args.Raw)
	status := dashboard.UserStatus(strings.ToLower(p.FlagOrDefault("status", string(dashboard.StatusAll))))
	switch status {
	case dashboard.StatusAll, dashboard.StatusActive, dashboard.StatusBlocked, dashboard.StatusInactive:
	default:
		return &ValidationError{Field: "--status", Value: string(status), Reason: "must be all, active, blocked or inactive"}
	}
	users := env.Services.Users.Filter(p.Flag("search"), status)
	counts := env.Services.Users.Counts()

	data := map[string]any{"users": users, "counts": counts}
	return env.emit(CmdUsers, data, func() {
		fmt.Fprintf(env.Out, "%d total, %d active, %d blocked, %d inactive\n",
			counts.Total, counts.Active, counts.Blocked, counts.Inactive)
		for _, u := range users {
			fmt.Fprintf(env.Out, "%s %s %s %s %s\n",
				util.PadRight(u.ID, 3),
				util.PadRight(u.Name, 16),
				util.PadRight(u.Email, 22),
				util.PadRight(u.Status.Title(), 9),
				DimStyle.Render(fmt.Sprintf("%d orders, %s", u.Orders, util.Money(u.TotalSpent))))
		}
	})
}

// HandleDashboard prints the overview cards and the financial summary.
func HandleDashboard(_ context.Context, env *Env) error {
	p := NewArgParser(env.Args.Raw)
	period := dashboard.PeriodMonth
	if raw := p.Flag("period"); raw != "" {
		parsed, err := dashboard.ParsePeriod(raw)
		if err != nil {
			return &ValidationError{Field: "--period", Value: raw, Reason: "must be week, month, quarter or year"}
		}
		period = parsed
	}

	overview := dashboard.Overview(env.Services.Monitor.Stats())
	fin := dashboard.DefaultFinancial(period)
	data := map[string]any{"overview": overview, "financial": fin}

	return env.emit(CmdDashboard, data, func() {
		w := env.Out
		fmt.Fprintln(w, TitleStyle.Render("Admin Dashboard"))
		for _, m := range overview {
			change := SuccessStyle.Render(m.Change)
			if !m.Positive() {
				change = ErrorStyle.Render(m.Change)
			}
			fmt.Fprintf(w, "%s %s %s\n", LabelStyle.Render(m.Title+":"), util.PadRight(m.Value, 10), change)
		}
		fmt.Fprintln(w, SectionStyle.Render("Financial ("+period.Label()+")"))
		for _, m := range fin.Metrics() {
			fmt.Fprintf(w, "%s %s %s\n", LabelStyle.Render(m.Title+":"), util.PadRight(m.Value, 12), DimStyle.Render(m.Change))
		}
		fmt.Fprintln(w, FormatKeyValue("Net profit", util.Money(fin.NetProfit())))
		fmt.Fprintln(w, FormatKeyValue("Target progress", fmt.Sprintf("%d%%", fin.TargetProgress())))
	})
}
