// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package dashboard

import (
	"fmt"
	"strings"
	"time"

	"github.com/jeranaias/shopfront-tui/internal/util"
)

// Period is the financial reporting window. It only changes the label;
// the figures are the same for every period.
type Period string

// Reporting periods, in selector order.
const (
	PeriodWeek    Period = "week"
	PeriodMonth   Period = "month"
	PeriodQuarter Period = "quarter"
	PeriodYear    Period = "year"
)

// Periods lists the selector options.
var Periods = []Period{PeriodWeek, PeriodMonth, PeriodQuarter, PeriodYear}

// Label is the selector text, e.g. "This Month".
func (p Period) Label() string {
	return "This " + strings.ToUpper(string(p[:1])) + string(p[1:])
}

// ParsePeriod accepts a period name, case-insensitive.
func ParsePeriod(s string) (Period, error) {
	p := Period(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Periods {
		if p == known {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown period %q", s)
}

// Next cycles to the following period, wrapping around.
func (p Period) Next() Period {
	for i, known := range Periods {
		if known == p {
			return Periods[(i+1)%len(Periods)]
		}
	}
	return PeriodMonth
}

// ExpenseCategory is one slice of the expense breakdown.
type ExpenseCategory struct {
	Name       string  `json:"name"`
	Amount     float64 `json:"amount"`
	Percentage int     `json:"percentage"`
}

// Transaction is a row of the recent transactions table. Refunds carry a
// negative amount.
type Transaction struct {
	ID       string    `json:"id"`
	Type     string    `json:"type"`
	Amount   float64   `json:"amount"`
	Customer string    `json:"customer"`
	Date     time.Time `json:"date"`
	Status   string    `json:"status"`
	Method   string    `json:"method"`
}

// Financial is the financial panel.
type Financial struct {
	Period Period `json:"period"`

	Revenue       float64 `json:"revenue"`
	RevenueChange float64 `json:"revenueChange"`
	RevenueTarget float64 `json:"revenueTarget"`

	Orders        int     `json:"orders"`
	OrdersChange  float64 `json:"ordersChange"`
	AverageOrder  float64 `json:"averageOrder"`
	AverageChange float64 `json:"averageChange"`

	Expenses          float64           `json:"expenses"`
	ExpensesChange    float64           `json:"expensesChange"`
	ExpenseCategories []ExpenseCategory `json:"expenseCategories"`

	Transactions []Transaction `json:"transactions"`
}

// DefaultFinancial returns the demo figures for period.
func DefaultFinancial(period Period) Financial {
	day := func(d, h, m int) time.Time { return time.Date(2024, 1, d, h, m, 0, 0, time.UTC) }
	return Financial{
		Period:        period,
		Revenue:       156780.50,
		RevenueChange: 15.2,
		RevenueTarget: 150000,
		Orders:        2340,
		OrdersChange:  8.7,
		AverageOrder:  67.04,
		AverageChange: 2.3,

		Expenses:       42150.75,
		ExpensesChange: -3.2,
		ExpenseCategories: []ExpenseCategory{
			{"Inventory", 25000, 59},
			{"Marketing", 8500, 20},
			{"Operations", 5650, 13},
			{"Other", 3000, 8},
		},

		Transactions: []Transaction{
			{"TXN-001", "order", 299.99, "John Doe", day(20, 10, 30), "completed", "Credit Card"},
			{"TXN-002", "refund", -79.99, "Jane Smith", day(20, 9, 15), "processed", "Credit Card"},
			{"TXN-003", "order", 149.50, "Bob Johnson", day(20, 8, 45), "completed", "PayPal"},
			{"TXN-004", "order", 89.99, "Alice Brown", day(19, 16, 20), "pending", "Credit Card"},
		},
	}
}

// Metrics returns the four headline cards.
func (f Financial) Metrics() []Metric {
	return []Metric{
		{Title: "Total Revenue", Value: util.Money(f.Revenue), Change: util.Percent(f.RevenueChange)},
		{Title: "Total Orders", Value: util.Thousands(f.Orders), Change: util.Percent(f.OrdersChange)},
		{Title: "Average Order", Value: util.Money(f.AverageOrder), Change: util.Percent(f.AverageChange)},
		{Title: "Total Expenses", Value: util.Money(f.Expenses), Change: util.Percent(f.ExpensesChange)},
	}
}

// TargetProgress is revenue as a whole percentage of target.
func (f Financial) TargetProgress() int {
	if f.RevenueTarget <= 0 {
		return 0
	}
	return int(f.Revenue / f.RevenueTarget * 100)
}

// NetProfit is revenue minus expenses.
func (f Financial) NetProfit() float64 {
	return f.Revenue - f.Expenses
}
