package core

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	Expense TransactionType = iota + 1
	Income
)

// DateLayout is the wire and storage format of a calendar day.
const DateLayout = "2006-01-02"

type (
	// TransactionType is either Expense or Income. The zero value is invalid.
	TransactionType int

	// Date is a calendar day without a time component.
	Date struct {
		time.Time
	}

	Transaction struct {
		ID          string          `json:"id"`
		Date        Date            `json:"date"`
		Description string          `json:"description"`
		Amount      decimal.Decimal `json:"amount"`
		CategoryID  string          `json:"categoryId"`
		Type        TransactionType `json:"type"`
	}

	Category struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Color string `json:"color"`
	}

	Tag struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}

	Settings struct {
		Currency string `json:"currency"`
	}
)

var (
	ErrInvalidDate       = errors.New("invalid date")
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrEmptyAmount       = errors.New("empty amount")
	ErrEmptyDescription  = errors.New("empty description")
	ErrInvalidType       = errors.New("invalid transaction type")
	ErrEmptyCategoryName = errors.New("empty category name")
	ErrInvalidColor      = errors.New("color not in palette")
	ErrEmptyTagName      = errors.New("empty tag name")
)

// ParseTransactionType accepts "EXPENSE" or "INCOME", case-insensitively.
func ParseTransactionType(s string) (TransactionType, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "EXPENSE":
		return Expense, nil
	case "INCOME":
		return Income, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidType, s)
	}
}

func (t TransactionType) String() string {
	switch t {
	case Expense:
		return "EXPENSE"
	case Income:
		return "INCOME"
	default:
		return fmt.Sprintf("TransactionType(%d)", int(t))
	}
}

func (t TransactionType) Valid() bool {
	return t == Expense || t == Income
}

func (t TransactionType) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, ErrInvalidType
	}
	return []byte(t.String()), nil
}

func (t *TransactionType) UnmarshalText(b []byte) error {
	v, err := ParseTransactionType(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// NewDate creates a new Date from year, month, day
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return Date{Time: t}, nil
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// Day returns the day of the month
func (d Date) Day() int {
	return d.Time.Day()
}

// Month returns the month
func (d Date) Month() int {
	return int(d.Time.Month())
}

// Year returns the year
func (d Date) Year() int {
	return d.Time.Year()
}

// SameDay compares calendar components only.
func (d Date) SameDay(o Date) bool {
	return d.Year() == o.Year() && d.Month() == o.Month() && d.Day() == o.Day()
}

// InMonth reports whether the date falls in the given calendar month.
func (d Date) InMonth(year, month int) bool {
	return d.Year() == year && d.Month() == month
}

func (d Date) String() string {
	return d.Format(DateLayout)
}

func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Date) UnmarshalText(b []byte) error {
	v, err := ParseDate(string(b))
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// MarshalJSON overrides the promoted time.Time encoding.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidDate, b)
	}
	return d.UnmarshalText([]byte(s))
}

// DaysInMonth returns 28-31 for the given calendar month.
func DaysInMonth(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Validate checks the fields collected at the entry point. The category
// reference is deliberately not checked.
func (t Transaction) Validate() error {
	if err := t.Date.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(t.Description) == "" {
		return ErrEmptyDescription
	}
	if t.Amount.IsNegative() {
		return ErrInvalidAmount
	}
	if !t.Type.Valid() {
		return ErrInvalidType
	}
	return nil
}

func (c Category) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyCategoryName
	}
	if !InPalette(c.Color) {
		return ErrInvalidColor
	}
	return nil
}

// IsValidationError reports whether err comes from entry-point validation.
func IsValidationError(err error) bool {
	for _, target := range []error{
		ErrInvalidDate, ErrInvalidAmount, ErrEmptyAmount, ErrEmptyDescription,
		ErrInvalidType, ErrEmptyCategoryName, ErrInvalidColor, ErrEmptyTagName,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
