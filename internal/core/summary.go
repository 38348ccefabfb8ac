package core

import (
	"sort"

	"github.com/shopspring/decimal"
)

// MonthSummary aggregates income and expense for one calendar month.
type MonthSummary struct {
	Year    int             `json:"year"`
	Month   int             `json:"month"` // 1-12
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Balance decimal.Decimal `json:"balance"`
}

// CategoryTotal is one row of a daily category breakdown.
type CategoryTotal struct {
	CategoryID string          `json:"categoryId"`
	Name       string          `json:"name"`
	Amount     decimal.Decimal `json:"amount"`
	Color      string          `json:"color"`
}

// DayAmount is one point of a monthly trend.
type DayAmount struct {
	Day    int             `json:"day"`
	Amount decimal.Decimal `json:"amount"`
}

// DayMarker flags the activity recorded on one calendar day.
type DayMarker struct {
	HasExpense   bool            `json:"hasExpense"`
	HasIncome    bool            `json:"hasIncome"`
	TotalExpense decimal.Decimal `json:"totalExpense"`
}

// MonthlySummary sums income and expense for transactions dated in the
// given month.
func MonthlySummary(txs []Transaction, year, month int) MonthSummary {
	s := MonthSummary{Year: year, Month: month, Income: decimal.Zero, Expense: decimal.Zero}
	for _, t := range txs {
		if !t.Date.InMonth(year, month) {
			continue
		}
		switch t.Type {
		case Income:
			s.Income = s.Income.Add(t.Amount)
		case Expense:
			s.Expense = s.Expense.Add(t.Amount)
		}
	}
	s.Balance = s.Income.Sub(s.Expense)
	return s
}

// DailyCategoryBreakdown groups the expenses of one day by category, largest
// first. Ties keep the order in which categories were first encountered and
// groups summing to zero are dropped.
func DailyCategoryBreakdown(txs []Transaction, cats []Category, date Date) []CategoryTotal {
	var out []CategoryTotal
	index := map[string]int{}
	for _, t := range txs {
		if t.Type != Expense || !t.Date.SameDay(date) {
			continue
		}
		i, ok := index[t.CategoryID]
		if !ok {
			i = len(out)
			index[t.CategoryID] = i
			name, color := ResolveCategory(cats, t.CategoryID)
			out = append(out, CategoryTotal{CategoryID: t.CategoryID, Name: name, Color: color, Amount: decimal.Zero})
		}
		out[i].Amount = out[i].Amount.Add(t.Amount)
	}

	kept := out[:0]
	for _, ct := range out {
		if !ct.Amount.IsZero() {
			kept = append(kept, ct)
		}
	}
	sort.SliceStable(kept, func(a, b int) bool {
		return kept[a].Amount.GreaterThan(kept[b].Amount)
	})
	return kept
}

// MonthlyTrend returns one entry per calendar day of the month with the
// expense total of that day.
func MonthlyTrend(txs []Transaction, year, month int) []DayAmount {
	n := DaysInMonth(year, month)
	out := make([]DayAmount, n)
	for i := range out {
		out[i] = DayAmount{Day: i + 1, Amount: decimal.Zero}
	}
	for _, t := range txs {
		if t.Type != Expense || !t.Date.InMonth(year, month) {
			continue
		}
		d := t.Date.Day() - 1
		out[d].Amount = out[d].Amount.Add(t.Amount)
	}
	return out
}

// CategoryTransactionCount counts transactions referencing categoryID.
func CategoryTransactionCount(txs []Transaction, categoryID string) int {
	n := 0
	for _, t := range txs {
		if t.CategoryID == categoryID {
			n++
		}
	}
	return n
}

// TagTransactionCount counts transactions whose description contains the
// tag name (case-insensitive substring).
func TagTransactionCount(txs []Transaction, tagName string) int {
	n := 0
	for _, t := range txs {
		if HasTag(t.Description, tagName) {
			n++
		}
	}
	return n
}

// CalendarDayMarkers returns a marker for every day of the month with at
// least one transaction. Days without activity are absent from the map.
func CalendarDayMarkers(txs []Transaction, year, month int) map[int]DayMarker {
	out := map[int]DayMarker{}
	for _, t := range txs {
		if !t.Date.InMonth(year, month) {
			continue
		}
		m, ok := out[t.Date.Day()]
		if !ok {
			m.TotalExpense = decimal.Zero
		}
		switch t.Type {
		case Expense:
			m.HasExpense = true
			m.TotalExpense = m.TotalExpense.Add(t.Amount)
		case Income:
			m.HasIncome = true
		}
		out[t.Date.Day()] = m
	}
	return out
}

// ResolveCategory returns the display name and color for a category id,
// falling back to the Unknown placeholder.
func ResolveCategory(cats []Category, id string) (name, color string) {
	for _, c := range cats {
		if c.ID == id {
			return c.Name, c.Color
		}
	}
	return UnknownCategoryName, UnknownCategoryColor
}
