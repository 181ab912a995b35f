// Package services orchestrates the storage layer and the report engine
// behind a single ledger facade consumed by the HTTP handlers.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"pocketledger/internal/catalog"
	"pocketledger/internal/core"
	"pocketledger/internal/report"
	"pocketledger/internal/storage"
)

// Ledger wraps the store with the derived-view logic.
type Ledger struct {
	store *storage.Store
}

func NewLedger(store *storage.Store) *Ledger {
	return &Ledger{store: store}
}

// Dashboard is the full set of derived views assembled from one snapshot
// of the transaction set.
type Dashboard struct {
	Balance   decimal.Decimal
	Month     report.Summary
	Breakdown []CategoryShare
	Trend     []report.TrendPoint
	Currency  string
}

// CategoryShare extends a breakdown entry with its share of the month's
// total expenses and a display color.
type CategoryShare struct {
	Category string
	Amount   decimal.Decimal
	Percent  float64
	Color    string
}

func (l *Ledger) CreateTransaction(ctx context.Context, draft core.TransactionDraft) (core.Transaction, error) {
	txn, err := l.store.CreateTransaction(ctx, draft)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("create transaction: %w", err)
	}
	return txn, nil
}

func (l *Ledger) UpdateTransaction(ctx context.Context, id string, patch core.TransactionPatch) (core.Transaction, error) {
	txn, err := l.store.UpdateTransaction(ctx, id, patch)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("update transaction: %w", err)
	}
	return txn, nil
}

func (l *Ledger) DeleteTransaction(ctx context.Context, id string) error {
	if err := l.store.DeleteTransaction(ctx, id); err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	return nil
}

func (l *Ledger) Transaction(ctx context.Context, id string) (core.Transaction, error) {
	return l.store.GetTransaction(ctx, id)
}

func (l *Ledger) Transactions(ctx context.Context, limit, offset int) ([]core.Transaction, error) {
	return l.store.ListTransactions(ctx, limit, offset)
}

func (l *Ledger) TransactionsInRange(ctx context.Context, start, end time.Time) ([]core.Transaction, error) {
	return l.store.ListTransactionsInRange(ctx, start, end)
}

func (l *Ledger) Settings(ctx context.Context) (core.Settings, error) {
	return l.store.GetSettings(ctx)
}

func (l *Ledger) UpdateSettings(ctx context.Context, patch core.SettingsPatch) (core.Settings, error) {
	return l.store.UpdateSettings(ctx, patch)
}

// Dashboard reads one snapshot of the full transaction set and derives
// every reporting view from it, so balance, month summary, breakdown and
// trend are mutually consistent.
func (l *Ledger) Dashboard(ctx context.Context, now time.Time, trendMonths int) (Dashboard, error) {
	txns, err := l.store.ListTransactions(ctx, 0, 0)
	if err != nil {
		return Dashboard{}, fmt.Errorf("load transactions: %w", err)
	}
	settings, err := l.store.GetSettings(ctx)
	if err != nil {
		return Dashboard{}, fmt.Errorf("load settings: %w", err)
	}

	summary := report.MonthSummary(txns, now.Year(), now.Month())
	breakdown := report.CategoryBreakdown(txns, now.Year(), now.Month())

	d := Dashboard{
		Balance:   report.Balance(txns),
		Month:     summary,
		Breakdown: make([]CategoryShare, 0, len(breakdown)),
		Trend:     report.MonthlyTrend(txns, now, trendMonths),
		Currency:  settings.Currency,
	}
	for _, entry := range breakdown {
		d.Breakdown = append(d.Breakdown, CategoryShare{
			Category: entry.Category,
			Amount:   entry.Amount,
			Percent:  percentOf(entry.Amount, summary.TotalExpenses),
			Color:    catalog.Color(entry.Category),
		})
	}

	slog.DebugContext(ctx, "Dashboard assembled",
		"transactions", len(txns),
		"categories", len(d.Breakdown),
		"trend_points", len(d.Trend))

	return d, nil
}

// percentOf guards the zero-total month: with no expenses the share is
// reported as 0 rather than attempting 0/0.
func percentOf(amount, total decimal.Decimal) float64 {
	if !total.IsPositive() {
		return 0
	}
	f, _ := amount.Div(total).Mul(decimal.NewFromInt(100)).Round(1).Float64()
	return f
}

// Close releases the underlying store handle.
func (l *Ledger) Close() error {
	if l.store != nil {
		if err := l.store.Close(); err != nil {
			return fmt.Errorf("close ledger store: %w", err)
		}
	}
	return nil
}
