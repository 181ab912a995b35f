// Package currency provides the supported currency table and display
// formatting. Amounts are stored currency-agnostic; the ledger never
// converts between currencies, it only formats for display.
package currency

import "github.com/shopspring/decimal"

type Currency struct {
	Code   string
	Symbol string
	Name   string
}

var currencies = map[string]Currency{
	"MYR": {Code: "MYR", Symbol: "RM", Name: "Malaysian Ringgit"},
	"USD": {Code: "USD", Symbol: "$", Name: "US Dollar"},
	"EUR": {Code: "EUR", Symbol: "€", Name: "Euro"},
	"GBP": {Code: "GBP", Symbol: "£", Name: "British Pound"},
	"JPY": {Code: "JPY", Symbol: "¥", Name: "Japanese Yen"},
	"SGD": {Code: "SGD", Symbol: "S$", Name: "Singapore Dollar"},
	"THB": {Code: "THB", Symbol: "฿", Name: "Thai Baht"},
	"IDR": {Code: "IDR", Symbol: "Rp", Name: "Indonesian Rupiah"},
}

// Get returns the currency for a code.
func Get(code string) (Currency, bool) {
	c, ok := currencies[code]
	return c, ok
}

// Symbol returns the display symbol for a code, or the code itself for
// unknown currencies.
func Symbol(code string) string {
	if c, ok := currencies[code]; ok {
		return c.Symbol
	}
	return code
}

// Format renders an amount with the currency's symbol and two decimals,
// e.g. Format(25.5, "USD") -> "$25.50". Unknown codes fall back to the
// bare amount.
func Format(amount decimal.Decimal, code string) string {
	c, ok := currencies[code]
	if !ok {
		return amount.StringFixed(2)
	}
	return c.Symbol + amount.StringFixed(2)
}
