// Package core provides amount parsing and currency formatting.
//
// Amounts are plain float64 values, as stored in the persisted ledger.
// Parsing is strict: the whole input must be a number.
package core

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// CurrencySymbol prefixes every formatted amount.
const CurrencySymbol = "₹"

var currencyPrinter = message.NewPrinter(language.MustParse("en-IN"))

// ParseAmount converts user input into a positive amount.
//
// It accepts both dot (12.34) and comma (12,34) decimal separators. Signs,
// exponents, trailing garbage, zero, NaN and infinities are rejected.
//
// Examples:
//
//	ParseAmount("12.34") -> 12.34, nil
//	ParseAmount("12,5")  -> 12.5, nil
//	ParseAmount("abc")   -> 0, ErrInvalidAmount
func ParseAmount(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")
	if strings.Count(s, ".") > 1 {
		return 0, ErrInvalidAmount
	}
	for _, r := range s {
		if (r < '0' || r > '9') && r != '.' {
			return 0, ErrInvalidAmount
		}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	if err := ValidateAmount(v); err != nil {
		return 0, err
	}
	return v, nil
}

// FormatCurrency renders v with Indian digit grouping and at most two
// fraction digits, e.g. 1234.5 -> "₹1,234.5".
func FormatCurrency(v float64) string {
	neg := v < 0
	rounded, _ := decimal.NewFromFloat(math.Abs(v)).Round(2).Float64()
	s := CurrencySymbol + currencyPrinter.Sprint(number.Decimal(rounded, number.MaxFractionDigits(2)))
	if neg && rounded != 0 {
		return "-" + s
	}
	return s
}

// FormatSigned renders the amount of t with a leading + or -.
func FormatSigned(t Transaction) string {
	sign := "+"
	if t.Type == Expense {
		sign = "-"
	}
	return sign + strings.TrimPrefix(FormatCurrency(t.Amount), CurrencySymbol)
}

// Round rounds half up, so -2.5 becomes -2 and 2.5 becomes 3.
func Round(v float64) int {
	return int(math.Floor(v + 0.5))
}
