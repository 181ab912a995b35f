// Package seed performs the one-time sample-data bootstrap for fresh
// installations.
package seed

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"pocketledger/internal/core"
	"pocketledger/internal/storage"
)

func sampleDrafts(now time.Time) []core.TransactionDraft {
	day := 24 * time.Hour
	return []core.TransactionDraft{
		{
			Amount:      decimal.RequireFromString("25.50"),
			Category:    "Food & Dining",
			Description: "Lunch at cafe",
			Date:        now.Add(-1 * day),
			Type:        core.Expense,
		},
		{
			Amount:      decimal.RequireFromString("500.00"),
			Category:    "Transportation",
			Description: "Monthly bus pass",
			Date:        now.Add(-2 * day),
			Type:        core.Expense,
		},
		{
			Amount:      decimal.RequireFromString("3000.00"),
			Category:    "Salary",
			Description: "Monthly salary",
			Date:        now.Add(-3 * day),
			Type:        core.Income,
		},
		{
			Amount:      decimal.RequireFromString("89.99"),
			Category:    "Shopping",
			Description: "New headphones",
			Date:        now.Add(-4 * day),
			Type:        core.Expense,
		},
		{
			Amount:      decimal.RequireFromString("45.00"),
			Category:    "Entertainment",
			Description: "Movie tickets",
			Date:        now.Add(-5 * day),
			Type:        core.Expense,
		},
		{
			Amount:      decimal.RequireFromString("200.00"),
			Category:    "Bills & Utilities",
			Description: "Electricity bill",
			Date:        now.Add(-6 * day),
			Type:        core.Expense,
		},
	}
}

// EnsureSampleData inserts the sample transactions into an empty ledger.
// A ledger with any existing transaction is left untouched, so the call
// is safe on every start.
func EnsureSampleData(ctx context.Context, store *storage.Store) error {
	existing, err := store.ListTransactions(ctx, 1, 0)
	if err != nil {
		return fmt.Errorf("check existing transactions: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	drafts := sampleDrafts(time.Now())
	for _, d := range drafts {
		if _, err := store.CreateTransaction(ctx, d); err != nil {
			return fmt.Errorf("insert sample transaction %q: %w", d.Description, err)
		}
	}

	slog.InfoContext(ctx, "Sample data inserted", "count", len(drafts))
	return nil
}
