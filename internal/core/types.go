package core

// Totals holds per-type sums and counts.
type Totals struct {
	Income       float64 `json:"income"`
	Expense      float64 `json:"expense"`
	IncomeCount  int     `json:"incomeCount"`
	ExpenseCount int     `json:"expenseCount"`
}

// CategoryShare is one category's expense sum and its share of the period total.
type CategoryShare struct {
	Name    string  `json:"name"`
	Amount  float64 `json:"amount"`
	Percent int     `json:"percent"`
}

// Summary feeds the summary cards.
type Summary struct {
	Totals
	Balance      float64 `json:"balance"`
	ExpenseRatio int     `json:"expenseRatio"`
	// Trend is nil when the ledger is too small to compare two windows.
	Trend *int `json:"trend,omitempty"`

	Budget    float64  `json:"budget,omitempty"`
	Remaining *float64 `json:"remaining,omitempty"`
}

// MonthOverview is the category breakdown for a specific year+month.
type MonthOverview struct {
	Year       int             `json:"year"`
	Month      int             `json:"month"` // 1-12
	Total      float64         `json:"total"`
	ByCategory []CategoryShare `json:"byCategory"`
}
