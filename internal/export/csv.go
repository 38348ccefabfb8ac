// Package export renders transactions as CSV and as plain rows for
// spreadsheet uploads.
package export

import (
	"strings"
	"time"

	"hisab/internal/core"
)

// Header is the first line of every export.
var Header = []string{"Date", "Description", "Type", "Category", "Amount"}

// Rows returns the header followed by one row per transaction, in the order
// given. Dangling category references resolve to the unknown category name.
func Rows(txs []core.Transaction, cats []core.Category) [][]string {
	rows := make([][]string, 0, len(txs)+1)
	rows = append(rows, append([]string{}, Header...))
	for _, t := range txs {
		name, _ := core.ResolveCategory(cats, t.CategoryID)
		rows = append(rows, []string{
			t.Date.String(),
			t.Description,
			t.Type.String(),
			name,
			core.FormatAmount(t.Amount),
		})
	}
	return rows
}

// CSV renders the export text. Description and category are always quoted;
// the other columns never need quoting. Lines are joined by "\n" with no
// trailing newline.
func CSV(txs []core.Transaction, cats []core.Category) string {
	rows := Rows(txs, cats)
	lines := make([]string, 0, len(rows))
	lines = append(lines, strings.Join(rows[0], ","))
	for _, r := range rows[1:] {
		lines = append(lines, strings.Join([]string{r[0], quote(r[1]), r[2], quote(r[3]), r[4]}, ","))
	}
	return strings.Join(lines, "\n")
}

// FileName is the suggested download name for an export made on day.
func FileName(day time.Time) string {
	return "hisab_export_" + day.Format(core.DateLayout) + ".csv"
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
