package core

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseTransactionType(t *testing.T) {
	cases := []struct {
		in   string
		want TransactionType
		ok   bool
	}{
		{"EXPENSE", Expense, true},
		{"income", Income, true},
		{" Income ", Income, true},
		{"", 0, false},
		{"TRANSFER", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseTransactionType(tc.in)
		if tc.ok && (err != nil || got != tc.want) {
			t.Fatalf("%q expected %v, got %v (err=%v)", tc.in, tc.want, got, err)
		}
		if !tc.ok && err == nil {
			t.Fatalf("%q expected error", tc.in)
		}
	}
}

func TestTransactionJSONShape(t *testing.T) {
	tx := Transaction{
		ID:          "tx_1",
		Date:        NewDate(2023, 10, 25),
		Description: "Grocery Run",
		Amount:      decimal.RequireFromString("120.50"),
		CategoryID:  "cat_1",
		Type:        Expense,
	}
	b, err := json.Marshal(tx)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	s := string(b)
	for _, want := range []string{`"date":"2023-10-25"`, `"type":"EXPENSE"`, `"categoryId":"cat_1"`} {
		if !strings.Contains(s, want) {
			t.Fatalf("expected %s in %s", want, s)
		}
	}
}

func TestTransactionDecodesNumericAmount(t *testing.T) {
	raw := `{"id":"tx_9","date":"2023-10-27","description":"Salary","amount":3000,"categoryId":"cat_7","type":"INCOME"}`
	var tx Transaction
	if err := json.Unmarshal([]byte(raw), &tx); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if tx.Type != Income || !tx.Amount.Equal(decimal.NewFromInt(3000)) || !tx.Date.SameDay(NewDate(2023, 10, 27)) {
		t.Fatalf("unexpected decode: %+v", tx)
	}
}

func TestTransactionRejectsUnknownType(t *testing.T) {
	raw := `{"id":"tx_9","date":"2023-10-27","description":"x","amount":1,"categoryId":"c","type":"TRANSFER"}`
	var tx Transaction
	if err := json.Unmarshal([]byte(raw), &tx); err == nil {
		t.Fatalf("expected error for unknown type")
	}
}

func TestTransactionValidate(t *testing.T) {
	good := Transaction{
		Date:        NewDate(2025, 1, 1),
		Description: "ok",
		Amount:      decimal.NewFromInt(1),
		Type:        Expense,
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	zero := good
	zero.Amount = decimal.Zero
	if err := zero.Validate(); err != nil {
		t.Fatalf("zero amount should be allowed, got %v", err)
	}

	bads := []struct {
		tx   Transaction
		want error
	}{
		{Transaction{Description: "a", Amount: decimal.NewFromInt(1), Type: Expense}, ErrInvalidDate},
		{Transaction{Date: NewDate(2025, 1, 1), Description: "   ", Amount: decimal.NewFromInt(1), Type: Expense}, ErrEmptyDescription},
		{Transaction{Date: NewDate(2025, 1, 1), Description: "a", Amount: decimal.NewFromInt(-1), Type: Expense}, ErrInvalidAmount},
		{Transaction{Date: NewDate(2025, 1, 1), Description: "a", Amount: decimal.NewFromInt(1)}, ErrInvalidType},
	}
	for i, tc := range bads {
		err := tc.tx.Validate()
		if !errors.Is(err, tc.want) {
			t.Fatalf("case %d expected %v, got %v", i, tc.want, err)
		}
		if !IsValidationError(err) {
			t.Fatalf("case %d expected validation error", i)
		}
	}
}

func TestDaysInMonth(t *testing.T) {
	cases := []struct{ year, month, want int }{
		{2023, 2, 28},
		{2024, 2, 29},
		{2023, 4, 30},
		{2023, 10, 31},
		{2023, 12, 31},
	}
	for _, tc := range cases {
		if got := DaysInMonth(tc.year, tc.month); got != tc.want {
			t.Fatalf("%d-%02d expected %d, got %d", tc.year, tc.month, tc.want, got)
		}
	}
}

func TestCategoryValidate(t *testing.T) {
	if err := (Category{Name: "Pets", Color: Palette[0]}).Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if err := (Category{Name: " ", Color: Palette[0]}).Validate(); !errors.Is(err, ErrEmptyCategoryName) {
		t.Fatalf("expected empty name error, got %v", err)
	}
	if err := (Category{Name: "Pets", Color: "#000000"}).Validate(); !errors.Is(err, ErrInvalidColor) {
		t.Fatalf("expected palette error, got %v", err)
	}
}

func TestCurrencySymbol(t *testing.T) {
	if got := CurrencySymbol("EUR"); got != "€" {
		t.Fatalf("expected €, got %q", got)
	}
	if got := CurrencySymbol("XYZ"); got != "XYZ" {
		t.Fatalf("expected code fallback, got %q", got)
	}
}
