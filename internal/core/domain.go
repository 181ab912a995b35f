package core

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeSystem Theme = "system"
)

type (
	TransactionType string

	Theme string

	// Transaction is a single persisted financial event. Amount is always a
	// positive magnitude; the sign in balance math comes from Type.
	Transaction struct {
		ID          string
		Amount      decimal.Decimal
		Category    string
		Description string
		Date        time.Time
		Type        TransactionType
		CreatedAt   time.Time
		UpdatedAt   time.Time
	}

	// TransactionDraft is caller-supplied data for a new transaction,
	// awaiting ID and timestamp assignment by the store.
	TransactionDraft struct {
		Amount      decimal.Decimal
		Category    string
		Description string
		Date        time.Time
		Type        TransactionType
	}

	// TransactionPatch carries a partial update. Nil fields are left
	// untouched by the store.
	TransactionPatch struct {
		Amount      *decimal.Decimal
		Category    *string
		Description *string
		Date        *time.Time
		Type        *TransactionType
	}

	// Settings is the per-installation singleton configuration record.
	Settings struct {
		Currency  string
		Language  string
		Theme     Theme
		IsPremium bool
	}

	// SettingsPatch carries a partial settings update.
	SettingsPatch struct {
		Currency  *string
		Language  *string
		Theme     *Theme
		IsPremium *bool
	}
)

var (
	ErrInvalidAmount   = errors.New("amount must be greater than zero")
	ErrEmptyCategory   = errors.New("empty category")
	ErrInvalidType     = errors.New("invalid transaction type")
	ErrZeroDate        = errors.New("date cannot be zero")
	ErrInvalidTheme    = errors.New("invalid theme")
	ErrEmptyCurrency   = errors.New("empty currency code")
	ErrEmptyLanguage   = errors.New("empty language code")
	ErrDescriptionSize = errors.New("description too long (max 200 characters)")
)

// ParseTransactionType validates a raw type string.
func ParseTransactionType(s string) (TransactionType, error) {
	switch TransactionType(s) {
	case Income, Expense:
		return TransactionType(s), nil
	default:
		return "", ErrInvalidType
	}
}

// ParseTheme validates a raw theme string.
func ParseTheme(s string) (Theme, error) {
	switch Theme(s) {
	case ThemeLight, ThemeDark, ThemeSystem:
		return Theme(s), nil
	default:
		return "", ErrInvalidTheme
	}
}

func validateAmount(d decimal.Decimal) error {
	if !d.IsPositive() {
		return ErrInvalidAmount
	}
	return nil
}

func (d TransactionDraft) Validate() error {
	if err := validateAmount(d.Amount); err != nil {
		return err
	}
	if strings.TrimSpace(d.Category) == "" {
		return ErrEmptyCategory
	}
	if len(d.Description) > 200 {
		return ErrDescriptionSize
	}
	if d.Date.IsZero() {
		return ErrZeroDate
	}
	if _, err := ParseTransactionType(string(d.Type)); err != nil {
		return err
	}
	return nil
}

// Validate checks only the fields present in the patch.
func (p TransactionPatch) Validate() error {
	if p.Amount != nil {
		if err := validateAmount(*p.Amount); err != nil {
			return err
		}
	}
	if p.Category != nil && strings.TrimSpace(*p.Category) == "" {
		return ErrEmptyCategory
	}
	if p.Description != nil && len(*p.Description) > 200 {
		return ErrDescriptionSize
	}
	if p.Date != nil && p.Date.IsZero() {
		return ErrZeroDate
	}
	if p.Type != nil {
		if _, err := ParseTransactionType(string(*p.Type)); err != nil {
			return err
		}
	}
	return nil
}

// IsEmpty reports whether the patch carries no fields at all.
func (p TransactionPatch) IsEmpty() bool {
	return p.Amount == nil && p.Category == nil && p.Description == nil &&
		p.Date == nil && p.Type == nil
}

func (p SettingsPatch) Validate() error {
	if p.Currency != nil && strings.TrimSpace(*p.Currency) == "" {
		return ErrEmptyCurrency
	}
	if p.Language != nil && strings.TrimSpace(*p.Language) == "" {
		return ErrEmptyLanguage
	}
	if p.Theme != nil {
		if _, err := ParseTheme(string(*p.Theme)); err != nil {
			return err
		}
	}
	return nil
}

func (p SettingsPatch) IsEmpty() bool {
	return p.Currency == nil && p.Language == nil && p.Theme == nil && p.IsPremium == nil
}
