package core

import "github.com/shopspring/decimal"

const (
	DefaultCurrency = "INR"

	// UnknownCategoryName and UnknownCategoryColor stand in for dangling
	// category references.
	UnknownCategoryName  = "Unknown"
	UnknownCategoryColor = "#94a3b8"
)

// Palette is the fixed set of colors a new category may use.
var Palette = []string{
	"#ef4444", "#f97316", "#f59e0b", "#84cc16", "#10b981",
	"#06b6d4", "#3b82f6", "#6366f1", "#8b5cf6", "#d946ef",
	"#f43f5e", "#64748b",
}

// InPalette reports whether color is one of the Palette tokens.
func InPalette(color string) bool {
	for _, c := range Palette {
		if c == color {
			return true
		}
	}
	return false
}

// DefaultCategories returns a fresh copy of the built-in categories.
func DefaultCategories() []Category {
	return []Category{
		{ID: "cat_1", Name: "Food & Dining", Color: "#ef4444"},
		{ID: "cat_2", Name: "Transportation", Color: "#f59e0b"},
		{ID: "cat_3", Name: "Shopping", Color: "#3b82f6"},
		{ID: "cat_4", Name: "Entertainment", Color: "#8b5cf6"},
		{ID: "cat_5", Name: "Bills & Utilities", Color: "#64748b"},
		{ID: "cat_6", Name: "Health", Color: "#10b981"},
		{ID: "cat_7", Name: "Income", Color: "#059669"},
	}
}

// SampleTransactions is seeded on the very first run only.
func SampleTransactions() []Transaction {
	return []Transaction{
		{ID: "tx_1", Date: NewDate(2023, 10, 25), Description: "Grocery Run", Amount: decimal.RequireFromString("120.50"), CategoryID: "cat_1", Type: Expense},
		{ID: "tx_2", Date: NewDate(2023, 10, 26), Description: "Uber to Work", Amount: decimal.RequireFromString("25.00"), CategoryID: "cat_2", Type: Expense},
		{ID: "tx_3", Date: NewDate(2023, 10, 27), Description: "Salary", Amount: decimal.RequireFromString("3000.00"), CategoryID: "cat_7", Type: Income},
	}
}

// Currency describes a selectable settings currency.
type Currency struct {
	Code   string `json:"code"`
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}

var Currencies = []Currency{
	{Code: "INR", Symbol: "₹", Name: "Indian Rupee"},
	{Code: "USD", Symbol: "$", Name: "US Dollar"},
	{Code: "EUR", Symbol: "€", Name: "Euro"},
	{Code: "GBP", Symbol: "£", Name: "British Pound"},
	{Code: "JPY", Symbol: "¥", Name: "Japanese Yen"},
	{Code: "AUD", Symbol: "A$", Name: "Australian Dollar"},
	{Code: "CAD", Symbol: "C$", Name: "Canadian Dollar"},
	{Code: "CHF", Symbol: "Fr", Name: "Swiss Franc"},
	{Code: "CNY", Symbol: "¥", Name: "Chinese Yuan"},
	{Code: "SGD", Symbol: "S$", Name: "Singapore Dollar"},
	{Code: "HKD", Symbol: "HK$", Name: "Hong Kong Dollar"},
	{Code: "NZD", Symbol: "NZ$", Name: "New Zealand Dollar"},
	{Code: "SEK", Symbol: "kr", Name: "Swedish Krona"},
	{Code: "KRW", Symbol: "₩", Name: "South Korean Won"},
	{Code: "BRL", Symbol: "R$", Name: "Brazilian Real"},
	{Code: "MXN", Symbol: "$", Name: "Mexican Peso"},
	{Code: "ZAR", Symbol: "R", Name: "South African Rand"},
	{Code: "RUB", Symbol: "₽", Name: "Russian Ruble"},
	{Code: "TRY", Symbol: "₺", Name: "Turkish Lira"},
	{Code: "AED", Symbol: "dh", Name: "UAE Dirham"},
}

// LookupCurrency finds a currency by its code.
func LookupCurrency(code string) (Currency, bool) {
	for _, c := range Currencies {
		if c.Code == code {
			return c, true
		}
	}
	return Currency{}, false
}

// CurrencySymbol falls back to the code itself for unknown currencies.
func CurrencySymbol(code string) string {
	if c, ok := LookupCurrency(code); ok {
		return c.Symbol
	}
	return code
}
