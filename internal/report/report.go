// Package report derives summary views from transaction snapshots.
// All functions are pure: they never touch storage and never mutate
// their input.
package report

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"pocketledger/internal/core"
)

// DefaultTrendMonths is the trend window used when the caller passes a
// non-positive month count.
const DefaultTrendMonths = 6

type (
	// Summary holds independent income and expense totals for one month.
	// The two components are never netted here; net amount is a
	// display-time subtraction.
	Summary struct {
		TotalIncome   decimal.Decimal
		TotalExpenses decimal.Decimal
	}

	// CategoryAmount is one entry of an expense breakdown.
	CategoryAmount struct {
		Category string
		Amount   decimal.Decimal
	}

	// TrendPoint is one month of an expense trend, oldest first.
	TrendPoint struct {
		Label string
		Value decimal.Decimal
	}
)

// Balance sums the given transactions with income counted positive and
// expenses negative. An empty input yields zero.
func Balance(txns []core.Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, t := range txns {
		switch t.Type {
		case core.Income:
			total = total.Add(t.Amount)
		case core.Expense:
			total = total.Sub(t.Amount)
		}
	}
	return total
}

// MonthSummary totals income and expenses for transactions whose own date
// falls in the given calendar month. Record creation time is ignored.
func MonthSummary(txns []core.Transaction, year int, month time.Month) Summary {
	s := Summary{TotalIncome: decimal.Zero, TotalExpenses: decimal.Zero}
	for _, t := range txns {
		if !inMonth(t.Date, year, month) {
			continue
		}
		switch t.Type {
		case core.Income:
			s.TotalIncome = s.TotalIncome.Add(t.Amount)
		case core.Expense:
			s.TotalExpenses = s.TotalExpenses.Add(t.Amount)
		}
	}
	return s
}

// CategoryBreakdown groups the month's expense transactions by exact
// category string and returns per-category sums sorted by descending
// amount. Ties keep the first-encountered category order of the input;
// the sort is stable, not alphabetic.
func CategoryBreakdown(txns []core.Transaction, year int, month time.Month) []CategoryAmount {
	index := make(map[string]int)
	var entries []CategoryAmount
	for _, t := range txns {
		if t.Type != core.Expense || !inMonth(t.Date, year, month) {
			continue
		}
		i, ok := index[t.Category]
		if !ok {
			index[t.Category] = len(entries)
			entries = append(entries, CategoryAmount{Category: t.Category, Amount: decimal.Zero})
			i = index[t.Category]
		}
		entries[i].Amount = entries[i].Amount.Add(t.Amount)
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Amount.GreaterThan(entries[j].Amount)
	})
	return entries
}

// MonthlyTrend sums expense amounts per calendar month over a window of
// monthCount months ending at now's month inclusive, oldest first. Months
// with no expenses still produce a zero-valued point: the window anchors
// to now, not to the latest transaction. A non-positive monthCount falls
// back to DefaultTrendMonths.
func MonthlyTrend(txns []core.Transaction, now time.Time, monthCount int) []TrendPoint {
	if monthCount <= 0 {
		monthCount = DefaultTrendMonths
	}
	anchor := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	oldest := anchor.AddDate(0, -(monthCount - 1), 0)
	labelLayout := "Jan"
	if oldest.Year() != anchor.Year() {
		labelLayout = "Jan 06"
	}

	points := make([]TrendPoint, 0, monthCount)
	for i := monthCount - 1; i >= 0; i-- {
		m := anchor.AddDate(0, -i, 0)
		total := decimal.Zero
		for _, t := range txns {
			if t.Type == core.Expense && inMonth(t.Date, m.Year(), m.Month()) {
				total = total.Add(t.Amount)
			}
		}
		points = append(points, TrendPoint{Label: m.Format(labelLayout), Value: total})
	}
	return points
}

func inMonth(date time.Time, year int, month time.Month) bool {
	d := date.UTC()
	return d.Year() == year && d.Month() == month
}
