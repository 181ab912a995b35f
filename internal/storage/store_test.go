package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"pocketledger/internal/core"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "ledger.db"), "MYR")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("close store: %v", err)
		}
	})
	return store
}

func amt(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func draft(amount, category string, typ core.TransactionType, date time.Time) core.TransactionDraft {
	return core.TransactionDraft{
		Amount:   amt(amount),
		Category: category,
		Date:     date,
		Type:     typ,
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "ledger.db")

	first, err := Open(dbPath, "MYR")
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	if _, err := first.CreateTransaction(context.Background(),
		draft("10", "Shopping", core.Expense, time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC))); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	second, err := Open(dbPath, "MYR")
	if err != nil {
		t.Fatalf("second open: %v", err)
	}
	defer second.Close()

	txns, err := second.ListTransactions(context.Background(), 0, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(txns) != 1 {
		t.Fatalf("reopen lost data: got %d transactions, want 1", len(txns))
	}
}

func TestCreateTransactionRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	d := core.TransactionDraft{
		Amount:      amt("25.50"),
		Category:    "Food & Dining",
		Description: "Lunch at cafe",
		Date:        time.Date(2025, 8, 30, 12, 30, 0, 0, time.UTC),
		Type:        core.Expense,
	}
	created, err := store.CreateTransaction(ctx, d)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == "" {
		t.Fatal("created transaction has empty id")
	}
	if !created.CreatedAt.Equal(created.UpdatedAt) {
		t.Fatalf("createdAt %v != updatedAt %v", created.CreatedAt, created.UpdatedAt)
	}

	got, err := store.GetTransaction(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !got.Amount.Equal(d.Amount) {
		t.Fatalf("amount = %s, want %s", got.Amount, d.Amount)
	}
	if got.Category != d.Category || got.Description != d.Description || got.Type != d.Type {
		t.Fatalf("fields differ: %+v", got)
	}
	if !got.Date.Equal(d.Date) {
		t.Fatalf("date = %v, want %v", got.Date, d.Date)
	}
	if !got.CreatedAt.Equal(created.CreatedAt) || !got.UpdatedAt.Equal(created.UpdatedAt) {
		t.Fatalf("timestamps differ after round trip: %+v", got)
	}
}

func TestCreateTransactionValidation(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	date := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)

	if _, err := store.CreateTransaction(ctx, draft("0", "Food & Dining", core.Expense, date)); !errors.Is(err, core.ErrInvalidAmount) {
		t.Fatalf("got %v, want ErrInvalidAmount", err)
	}
	if _, err := store.CreateTransaction(ctx, draft("5", "  ", core.Expense, date)); !errors.Is(err, core.ErrEmptyCategory) {
		t.Fatalf("got %v, want ErrEmptyCategory", err)
	}

	// Invalid drafts must leave the store untouched.
	txns, err := store.ListTransactions(ctx, 0, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(txns) != 0 {
		t.Fatalf("rejected drafts were persisted: %d records", len(txns))
	}
}

func TestUpdateTransactionPartial(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	created, err := store.CreateTransaction(ctx, core.TransactionDraft{
		Amount:      amt("89.99"),
		Category:    "Shopping",
		Description: "New headphones",
		Date:        time.Date(2025, 8, 26, 0, 0, 0, 0, time.UTC),
		Type:        core.Expense,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	time.Sleep(5 * time.Millisecond) // ensure updated_at moves forward

	newAmount := amt("79.99")
	updated, err := store.UpdateTransaction(ctx, created.ID, core.TransactionPatch{Amount: &newAmount})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	if !updated.Amount.Equal(newAmount) {
		t.Fatalf("amount = %s, want %s", updated.Amount, newAmount)
	}
	if updated.Category != created.Category ||
		updated.Description != created.Description ||
		updated.Type != created.Type ||
		!updated.Date.Equal(created.Date) {
		t.Fatalf("untouched fields changed: %+v", updated)
	}
	if !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Fatalf("createdAt changed on update: %v -> %v", created.CreatedAt, updated.CreatedAt)
	}
	if !updated.UpdatedAt.After(created.UpdatedAt) {
		t.Fatalf("updatedAt not refreshed: %v -> %v", created.UpdatedAt, updated.UpdatedAt)
	}
}

func TestUpdateTransactionNotFound(t *testing.T) {
	store := newTestStore(t)
	newAmount := amt("1")
	_, err := store.UpdateTransaction(context.Background(), "no-such-id", core.TransactionPatch{Amount: &newAmount})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestUpdateTransactionRejectsInvalidField(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	created, err := store.CreateTransaction(ctx,
		draft("45.00", "Entertainment", core.Expense, time.Date(2025, 8, 25, 0, 0, 0, 0, time.UTC)))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	bad := amt("-3")
	if _, err := store.UpdateTransaction(ctx, created.ID, core.TransactionPatch{Amount: &bad}); !errors.Is(err, core.ErrInvalidAmount) {
		t.Fatalf("got %v, want ErrInvalidAmount", err)
	}

	got, err := store.GetTransaction(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !got.Amount.Equal(created.Amount) {
		t.Fatalf("rejected update changed stored amount: %s", got.Amount)
	}
}

func TestDeleteTransactionIdempotent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	created, err := store.CreateTransaction(ctx,
		draft("45.00", "Entertainment", core.Expense, time.Date(2025, 8, 25, 0, 0, 0, 0, time.UTC)))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	before, _ := store.ListTransactions(ctx, 0, 0)

	if err := store.DeleteTransaction(ctx, created.ID); err != nil {
		t.Fatalf("first delete: %v", err)
	}
	if err := store.DeleteTransaction(ctx, created.ID); err != nil {
		t.Fatalf("second delete should be silent: %v", err)
	}

	after, err := store.ListTransactions(ctx, 0, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(after) != len(before)-1 {
		t.Fatalf("count = %d, want %d", len(after), len(before)-1)
	}
	for _, txn := range after {
		if txn.ID == created.ID {
			t.Fatalf("deleted id %s still listed", created.ID)
		}
	}
}

func TestListTransactionsOrderAndPaging(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	// Insert in order; the user-chosen dates deliberately run backwards so
	// the test catches ordering by date instead of creation time.
	dates := []time.Time{
		time.Date(2025, 8, 10, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 8, 5, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC),
	}
	var ids []string
	for i, d := range dates {
		txn, err := store.CreateTransaction(ctx, draft("10", "Others", core.Expense, d))
		if err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
		ids = append(ids, txn.ID)
		time.Sleep(2 * time.Millisecond)
	}

	all, err := store.ListTransactions(ctx, 0, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("got %d, want 3", len(all))
	}
	// Most recently recorded first
	for i := range ids {
		if all[i].ID != ids[len(ids)-1-i] {
			t.Fatalf("order mismatch at %d: got %s", i, all[i].ID)
		}
	}

	page, err := store.ListTransactions(ctx, 2, 1)
	if err != nil {
		t.Fatalf("paged list: %v", err)
	}
	if len(page) != 2 {
		t.Fatalf("page size = %d, want 2", len(page))
	}
	if page[0].ID != ids[1] || page[1].ID != ids[0] {
		t.Fatalf("page contents wrong: %s, %s", page[0].ID, page[1].ID)
	}
}

func TestListTransactionsInRangeInclusive(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	start := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 8, 31, 23, 59, 59, 0, time.UTC)

	inside := []time.Time{
		start, // boundary, inclusive
		time.Date(2025, 8, 15, 12, 0, 0, 0, time.UTC),
		end, // boundary, inclusive
	}
	outside := []time.Time{
		time.Date(2025, 7, 31, 23, 59, 59, 0, time.UTC),
		time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC),
	}
	for _, d := range inside {
		if _, err := store.CreateTransaction(ctx, draft("1", "Others", core.Expense, d)); err != nil {
			t.Fatalf("create: %v", err)
		}
	}
	for _, d := range outside {
		if _, err := store.CreateTransaction(ctx, draft("1", "Others", core.Expense, d)); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	got, err := store.ListTransactionsInRange(ctx, start, end)
	if err != nil {
		t.Fatalf("range list: %v", err)
	}
	if len(got) != len(inside) {
		t.Fatalf("got %d in range, want %d", len(got), len(inside))
	}
}

func TestSettingsSingleton(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	settings, err := store.GetSettings(ctx)
	if err != nil {
		t.Fatalf("get settings: %v", err)
	}
	want := core.Settings{Currency: "MYR", Language: "en", Theme: core.ThemeSystem, IsPremium: false}
	if settings != want {
		t.Fatalf("defaults = %+v, want %+v", settings, want)
	}
}

func TestUpdateSettingsPartial(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	usd := "USD"
	updated, err := store.UpdateSettings(ctx, core.SettingsPatch{Currency: &usd})
	if err != nil {
		t.Fatalf("update settings: %v", err)
	}
	want := core.Settings{Currency: "USD", Language: "en", Theme: core.ThemeSystem, IsPremium: false}
	if updated != want {
		t.Fatalf("after patch = %+v, want %+v", updated, want)
	}

	got, err := store.GetSettings(ctx)
	if err != nil {
		t.Fatalf("get settings: %v", err)
	}
	if got != want {
		t.Fatalf("persisted = %+v, want %+v", got, want)
	}
}

func TestUpdateSettingsEmptyPatchIsNoop(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	before, err := store.GetSettings(ctx)
	if err != nil {
		t.Fatalf("get settings: %v", err)
	}
	after, err := store.UpdateSettings(ctx, core.SettingsPatch{})
	if err != nil {
		t.Fatalf("empty patch should not error: %v", err)
	}
	if after != before {
		t.Fatalf("empty patch changed settings: %+v -> %+v", before, after)
	}
}

func TestUpdateSettingsPremiumFlag(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	premium := true
	updated, err := store.UpdateSettings(ctx, core.SettingsPatch{IsPremium: &premium})
	if err != nil {
		t.Fatalf("update settings: %v", err)
	}
	if !updated.IsPremium {
		t.Fatal("isPremium not set")
	}
	if updated.Currency != "MYR" || updated.Language != "en" || updated.Theme != core.ThemeSystem {
		t.Fatalf("other fields changed: %+v", updated)
	}
}

func TestGetTransactionNotFound(t *testing.T) {
	store := newTestStore(t)
	if _, err := store.GetTransaction(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}
