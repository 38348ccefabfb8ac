package core

import (
	"sort"
	"strings"
)

// TypeFilter selects which transactions a listing shows.
type TypeFilter string

const (
	FilterAll     TypeFilter = "ALL"
	FilterExpense TypeFilter = "EXPENSE"
	FilterIncome  TypeFilter = "INCOME"
)

// ParseTypeFilter maps an empty value to FilterAll.
func ParseTypeFilter(s string) (TypeFilter, bool) {
	switch f := TypeFilter(strings.ToUpper(strings.TrimSpace(s))); f {
	case "":
		return FilterAll, true
	case FilterAll, FilterExpense, FilterIncome:
		return f, true
	default:
		return "", false
	}
}

// ListQuery narrows a transaction listing. Empty fields match everything.
type ListQuery struct {
	Type       TypeFilter
	CategoryID string
	Tag        string
}

// ListTransactions returns a filtered copy sorted by date, newest first.
// Transactions on the same day keep their stored order.
func ListTransactions(txs []Transaction, q ListQuery) []Transaction {
	out := make([]Transaction, 0, len(txs))
	for _, t := range txs {
		switch q.Type {
		case FilterExpense:
			if t.Type != Expense {
				continue
			}
		case FilterIncome:
			if t.Type != Income {
				continue
			}
		}
		if q.CategoryID != "" && t.CategoryID != q.CategoryID {
			continue
		}
		if q.Tag != "" && !HasTag(t.Description, q.Tag) {
			continue
		}
		out = append(out, t)
	}
	sort.SliceStable(out, func(a, b int) bool {
		return out[a].Date.After(out[b].Date.Time)
	})
	return out
}
