// Package catalog holds the fixed category catalog shown by the UI.
// The store deliberately does not enforce membership: categories are
// persisted as free text and this catalog only drives presentation.
package catalog

import "pocketledger/internal/core"

// DefaultColor is used for categories not present in the catalog.
const DefaultColor = "#808080"

type Category struct {
	ID    string
	Name  string
	Icon  string
	Color string
	Type  core.TransactionType
}

var ExpenseCategories = []Category{
	{ID: "1", Name: "Food & Dining", Icon: "restaurant", Color: "#FF6B6B", Type: core.Expense},
	{ID: "2", Name: "Transportation", Icon: "car", Color: "#4ECDC4", Type: core.Expense},
	{ID: "3", Name: "Shopping", Icon: "shopping-bag", Color: "#45B7D1", Type: core.Expense},
	{ID: "4", Name: "Entertainment", Icon: "movie", Color: "#96CEB4", Type: core.Expense},
	{ID: "5", Name: "Bills & Utilities", Icon: "receipt", Color: "#FFEAA7", Type: core.Expense},
	{ID: "6", Name: "Healthcare", Icon: "medical", Color: "#DDA0DD", Type: core.Expense},
	{ID: "7", Name: "Education", Icon: "school", Color: "#98D8C8", Type: core.Expense},
	{ID: "8", Name: "Others", Icon: "ellipsis-horizontal", Color: "#F7DC6F", Type: core.Expense},
}

var IncomeCategories = []Category{
	{ID: "9", Name: "Salary", Icon: "card", Color: "#6BCF7F", Type: core.Income},
	{ID: "10", Name: "Business", Icon: "business", Color: "#4D96FF", Type: core.Income},
	{ID: "11", Name: "Investment", Icon: "trending-up", Color: "#9B59B6", Type: core.Income},
	{ID: "12", Name: "Gift", Icon: "gift", Color: "#F39C12", Type: core.Income},
	{ID: "13", Name: "Others", Icon: "add-circle", Color: "#1ABC9C", Type: core.Income},
}

// All returns the full catalog, expenses first.
func All() []Category {
	all := make([]Category, 0, len(ExpenseCategories)+len(IncomeCategories))
	all = append(all, ExpenseCategories...)
	all = append(all, IncomeCategories...)
	return all
}

// Lookup finds a catalog entry by exact name. Expense entries shadow
// income entries with the same name ("Others" exists in both lists).
func Lookup(name string) (Category, bool) {
	for _, c := range All() {
		if c.Name == name {
			return c, true
		}
	}
	return Category{}, false
}

// Color returns the display color for a category name, falling back to
// DefaultColor for free-text categories outside the catalog.
func Color(name string) string {
	if c, ok := Lookup(name); ok {
		return c.Color
	}
	return DefaultColor
}
