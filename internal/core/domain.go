package core

import (
	"errors"
	"math"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	Income  Type = "income"
	Expense Type = "expense"
)

// DefaultCategory is used when a transaction is submitted without one.
const DefaultCategory = "Other"

// MaxTitleLength is the longest title, in characters, accepted from input.
const MaxTitleLength = 200

const dateLayout = "2006-01-02"

type (
	// Type tells income and expense transactions apart.
	Type string

	Date struct {
		time.Time
	}

	// Transaction is one income or expense record.
	Transaction struct {
		ID        int64     `json:"id"`
		Title     string    `json:"title"`
		Amount    float64   `json:"amount"`
		Category  string    `json:"category"`
		Date      Date      `json:"date"`
		Notes     string    `json:"notes"`
		Type      Type      `json:"type"`
		CreatedAt time.Time `json:"createdAt"`
	}
)

var (
	ErrInvalidID     = errors.New("invalid id")
	ErrInvalidType   = errors.New("invalid transaction type")
	ErrInvalidAmount = errors.New("invalid amount")
	ErrInvalidDate   = errors.New("invalid date")
	ErrEmptyTitle    = errors.New("empty title")
	ErrTitleTooLong  = errors.New("title too long (max 200 characters)")
	ErrDuplicateID   = errors.New("duplicate transaction id")
)

// ParseType accepts "income" or "expense", case-insensitively.
func ParseType(s string) (Type, error) {
	t := Type(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", ErrInvalidType
	}
	return t, nil
}

func (t Type) Valid() bool {
	return t == Income || t == Expense
}

func (t Type) String() string {
	return string(t)
}

// NewDate creates a new Date from year, month, day
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates t to its calendar day in t's own location.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), int(t.Month()), t.Day())
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	parsed, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: parsed}, nil
}

// IsEmpty returns true if the date is zero (dates are optional in stored data)
func (d Date) IsEmpty() bool {
	return d.IsZero()
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(dateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := string(b)
	if s == "null" || s == `""` {
		*d = Date{}
		return nil
	}
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return ErrInvalidDate
	}
	parsed, err := ParseDate(s[1 : len(s)-1])
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Day returns the calendar day the transaction belongs to, falling back to
// the creation timestamp (in UTC) when no date was recorded.
func (t Transaction) Day() time.Time {
	if !t.Date.IsEmpty() {
		return t.Date.Time
	}
	return t.CreatedAt.UTC()
}

// Signed returns the amount with expenses negated.
func (t Transaction) Signed() float64 {
	if t.Type == Expense {
		return -t.Amount
	}
	return t.Amount
}

func ValidateAmount(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

// Validate checks the ledger invariant: a usable id, a known type and a
// positive amount. Title rules apply to input only, see ValidateTitle.
func (t Transaction) Validate() error {
	if t.ID <= 0 {
		return ErrInvalidID
	}
	if !t.Type.Valid() {
		return ErrInvalidType
	}
	return ValidateAmount(t.Amount)
}

// ValidateTitle checks a submitted title after trimming.
func ValidateTitle(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return ErrEmptyTitle
	}
	if utf8.RuneCountInString(title) > MaxTitleLength {
		return ErrTitleTooLong
	}
	return nil
}
