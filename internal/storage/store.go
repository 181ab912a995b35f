// Package storage owns durable persistence of the transaction ledger and
// the settings singleton, backed by a single SQLite file.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"pocketledger/internal/core"
)

// Dates are persisted as RFC3339 UTC strings (second precision) so that
// lexicographic range comparisons match chronological order. Creation and
// update times are stored as unix nanoseconds to give recency ordering a
// total order even within the same second.
const dateLayout = time.RFC3339

const settingsRowID = 1

// Store is the process's single handle on the ledger medium. It is opened
// once via Open and held until Close at process teardown.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the SQLite database at dbPath, applies
// schema migrations, and seeds the settings singleton with the given
// default currency on first run. All failures are wrapped in *InitError
// and must be treated as fatal by the caller.
func Open(dbPath, defaultCurrency string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, &InitError{Err: fmt.Errorf("create db directory: %w", err)}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, &InitError{Err: fmt.Errorf("open sqlite database: %w", err)}
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, &InitError{Err: fmt.Errorf("ping database: %w", err)}
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, &InitError{Err: err}
	}

	// Idempotent singleton bootstrap: the fixed primary key makes a second
	// run a no-op and the schema itself forbids a second row.
	_, err = db.Exec(
		`INSERT OR IGNORE INTO settings (id, currency, language, theme, is_premium) VALUES (?, ?, 'en', 'system', 0)`,
		settingsRowID, defaultCurrency,
	)
	if err != nil {
		db.Close()
		return nil, &InitError{Err: fmt.Errorf("seed default settings: %w", err)}
	}

	return &Store{db: db}, nil
}

// Close flushes and releases the medium handle.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// CreateTransaction validates the draft, assigns an ID and timestamps, and
// persists the record. The returned transaction is the persisted form,
// including the generated ID.
func (s *Store) CreateTransaction(ctx context.Context, draft core.TransactionDraft) (core.Transaction, error) {
	if err := draft.Validate(); err != nil {
		return core.Transaction{}, err
	}

	// UUIDv7: millisecond time-ordered prefix plus random suffix, so IDs
	// are unique in practice without any coordination step.
	id, err := uuid.NewV7()
	if err != nil {
		return core.Transaction{}, &WriteError{Op: "generate transaction id", Err: err}
	}

	now := time.Now().UTC()
	txn := core.Transaction{
		ID:          id.String(),
		Amount:      draft.Amount,
		Category:    strings.TrimSpace(draft.Category),
		Description: draft.Description,
		Date:        normalizeDate(draft.Date),
		Type:        draft.Type,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO transactions (id, amount, category, description, date, type, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		txn.ID, txn.Amount.String(), txn.Category, txn.Description,
		txn.Date.Format(dateLayout), string(txn.Type),
		txn.CreatedAt.UnixNano(), txn.UpdatedAt.UnixNano(),
	)
	if err != nil {
		return core.Transaction{}, &WriteError{Op: "create transaction", Err: err}
	}

	slog.InfoContext(ctx, "Transaction created",
		"id", txn.ID,
		"type", string(txn.Type),
		"category", txn.Category,
		"amount", txn.Amount.String())

	return txn, nil
}

// UpdateTransaction applies only the fields present in the patch and
// always refreshes updated_at, even for an empty patch. Returns
// ErrNotFound if no record has the given id.
func (s *Store) UpdateTransaction(ctx context.Context, id string, patch core.TransactionPatch) (core.Transaction, error) {
	if err := patch.Validate(); err != nil {
		return core.Transaction{}, err
	}

	var sets []string
	var args []any
	if patch.Amount != nil {
		sets = append(sets, "amount = ?")
		args = append(args, patch.Amount.String())
	}
	if patch.Category != nil {
		sets = append(sets, "category = ?")
		args = append(args, strings.TrimSpace(*patch.Category))
	}
	if patch.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, *patch.Description)
	}
	if patch.Date != nil {
		sets = append(sets, "date = ?")
		args = append(args, normalizeDate(*patch.Date).Format(dateLayout))
	}
	if patch.Type != nil {
		sets = append(sets, "type = ?")
		args = append(args, string(*patch.Type))
	}

	now := time.Now().UTC()
	sets = append(sets, "updated_at = ?")
	args = append(args, now.UnixNano())
	args = append(args, id)

	res, err := s.db.ExecContext(ctx,
		"UPDATE transactions SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
	if err != nil {
		return core.Transaction{}, &WriteError{Op: "update transaction", Err: err}
	}
	n, err := res.RowsAffected()
	if err != nil {
		return core.Transaction{}, &WriteError{Op: "update transaction", Err: err}
	}
	if n == 0 {
		return core.Transaction{}, ErrNotFound
	}

	slog.InfoContext(ctx, "Transaction updated", "id", id)

	return s.GetTransaction(ctx, id)
}

// DeleteTransaction removes the record. Deleting an id that does not
// exist is a deliberate non-error: a double-delete from stale UI state
// must not surface as a failure.
func (s *Store) DeleteTransaction(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = ?`, id)
	if err != nil {
		return &WriteError{Op: "delete transaction", Err: err}
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		slog.DebugContext(ctx, "Delete of missing transaction ignored", "id", id)
		return nil
	}
	slog.InfoContext(ctx, "Transaction deleted", "id", id)
	return nil
}

// GetTransaction returns a single record by id, or ErrNotFound.
func (s *Store) GetTransaction(ctx context.Context, id string) (core.Transaction, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, amount, category, description, date, type, created_at, updated_at
		 FROM transactions WHERE id = ?`, id)
	txn, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Transaction{}, ErrNotFound
	}
	if err != nil {
		return core.Transaction{}, &ReadError{Op: "get transaction", Err: err}
	}
	return txn, nil
}

// ListTransactions returns transactions ordered by creation time
// descending, most recently recorded first regardless of the user-chosen
// date. A non-positive limit returns the full set; offset only applies
// together with a limit.
func (s *Store) ListTransactions(ctx context.Context, limit, offset int) ([]core.Transaction, error) {
	query := `SELECT id, amount, category, description, date, type, created_at, updated_at
		 FROM transactions ORDER BY created_at DESC, id DESC`
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
		if offset > 0 {
			query += " OFFSET ?"
			args = append(args, offset)
		}
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, &ReadError{Op: "list transactions", Err: err}
	}
	defer rows.Close()

	return collectTransactions(rows, "list transactions")
}

// ListTransactionsInRange returns transactions whose event date falls in
// [start, end] inclusive, same ordering as ListTransactions.
func (s *Store) ListTransactionsInRange(ctx context.Context, start, end time.Time) ([]core.Transaction, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, amount, category, description, date, type, created_at, updated_at
		 FROM transactions WHERE date >= ? AND date <= ?
		 ORDER BY created_at DESC, id DESC`,
		normalizeDate(start).Format(dateLayout), normalizeDate(end).Format(dateLayout))
	if err != nil {
		return nil, &ReadError{Op: "list transactions in range", Err: err}
	}
	defer rows.Close()

	return collectTransactions(rows, "list transactions in range")
}

// GetSettings returns the singleton settings record. ErrNotFound here
// means Open never ran successfully, which is a programming-contract
// violation rather than an expected state.
func (s *Store) GetSettings(ctx context.Context) (core.Settings, error) {
	var (
		settings  core.Settings
		theme     string
		isPremium int64
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT currency, language, theme, is_premium FROM settings WHERE id = ?`, settingsRowID).
		Scan(&settings.Currency, &settings.Language, &theme, &isPremium)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Settings{}, ErrNotFound
	}
	if err != nil {
		return core.Settings{}, &ReadError{Op: "get settings", Err: err}
	}
	settings.Theme = core.Theme(theme)
	settings.IsPremium = isPremium != 0
	return settings, nil
}

// UpdateSettings merges the supplied fields into the singleton and
// returns the resulting record. An empty patch is a no-op, not an error.
func (s *Store) UpdateSettings(ctx context.Context, patch core.SettingsPatch) (core.Settings, error) {
	if err := patch.Validate(); err != nil {
		return core.Settings{}, err
	}
	if patch.IsEmpty() {
		return s.GetSettings(ctx)
	}

	var sets []string
	var args []any
	if patch.Currency != nil {
		sets = append(sets, "currency = ?")
		args = append(args, strings.TrimSpace(*patch.Currency))
	}
	if patch.Language != nil {
		sets = append(sets, "language = ?")
		args = append(args, strings.TrimSpace(*patch.Language))
	}
	if patch.Theme != nil {
		sets = append(sets, "theme = ?")
		args = append(args, string(*patch.Theme))
	}
	if patch.IsPremium != nil {
		premium := 0
		if *patch.IsPremium {
			premium = 1
		}
		sets = append(sets, "is_premium = ?")
		args = append(args, premium)
	}
	args = append(args, settingsRowID)

	res, err := s.db.ExecContext(ctx,
		"UPDATE settings SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
	if err != nil {
		return core.Settings{}, &WriteError{Op: "update settings", Err: err}
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return core.Settings{}, ErrNotFound
	}

	slog.InfoContext(ctx, "Settings updated")

	return s.GetSettings(ctx)
}

// normalizeDate converts an event date to UTC at second precision, the
// granularity of the persisted form.
func normalizeDate(t time.Time) time.Time {
	return t.UTC().Truncate(time.Second)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (core.Transaction, error) {
	var (
		txn              core.Transaction
		amount, date     string
		typ              string
		created, updated int64
	)
	if err := row.Scan(&txn.ID, &amount, &txn.Category, &txn.Description, &date, &typ, &created, &updated); err != nil {
		return core.Transaction{}, err
	}

	d, err := decimal.NewFromString(amount)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("parse stored amount %q: %w", amount, err)
	}
	txn.Amount = d

	txn.Date, err = time.Parse(dateLayout, date)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("parse stored date %q: %w", date, err)
	}
	txn.Date = txn.Date.UTC()

	txn.Type = core.TransactionType(typ)
	txn.CreatedAt = time.Unix(0, created).UTC()
	txn.UpdatedAt = time.Unix(0, updated).UTC()
	return txn, nil
}

func collectTransactions(rows *sql.Rows, op string) ([]core.Transaction, error) {
	var txns []core.Transaction
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, &ReadError{Op: op, Err: err}
		}
		txns = append(txns, txn)
	}
	if err := rows.Err(); err != nil {
		return nil, &ReadError{Op: op, Err: err}
	}
	return txns, nil
}
