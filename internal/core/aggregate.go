package core

import (
	"math"
	"sort"
	"time"
)

const (
	// DefaultTrendWindow is how many recent transactions the trend compares.
	DefaultTrendWindow = 10
	// DefaultBreakdownTop is how many categories the breakdown keeps.
	DefaultBreakdownTop = 4

	minTrendSample = 4
)

// Period selects the transactions an aggregation looks at.
type Period func(Transaction) bool

// AllTime matches every transaction.
func AllTime(Transaction) bool { return true }

// InMonth matches transactions whose day falls in the given year and month.
func InMonth(year, month int) Period {
	return func(t Transaction) bool {
		d := t.Day()
		return d.Year() == year && int(d.Month()) == month
	}
}

// SameMonth matches the calendar month of now.
func SameMonth(now time.Time) Period {
	return InMonth(now.Year(), int(now.Month()))
}

// Between matches days in [from, to], both inclusive.
func Between(from, to Date) Period {
	return func(t Transaction) bool {
		d := DateOf(t.Day())
		return !d.Before(from.Time) && !d.After(to.Time)
	}
}

func TotalsByType(l Ledger) Totals {
	var tot Totals
	for _, t := range l {
		switch t.Type {
		case Income:
			tot.Income += t.Amount
			tot.IncomeCount++
		case Expense:
			tot.Expense += t.Amount
			tot.ExpenseCount++
		}
	}
	return tot
}

func Balance(l Ledger) float64 {
	tot := TotalsByType(l)
	return tot.Income - tot.Expense
}

// ExpenseRatio is total expense as a rounded percentage of total income,
// or 0 when there is no income.
func ExpenseRatio(l Ledger) int {
	return expenseRatio(TotalsByType(l))
}

func expenseRatio(tot Totals) int {
	if tot.Income == 0 {
		return 0
	}
	return Round(tot.Expense / tot.Income * 100)
}

// Trend compares the balance of the newer half of the last window
// transactions with the older half. The split is by position, not time.
// ok is false when fewer than four transactions exist.
func Trend(l Ledger, window int) (pct int, ok bool) {
	if window <= 0 {
		window = DefaultTrendWindow
	}
	last := l.Head(window)
	if len(last) < minTrendSample {
		return 0, false
	}
	mid := len(last) / 2
	recent := Balance(last[:mid])
	prior := Balance(last[mid:])
	if prior == 0 {
		return 0, true
	}
	return Round((recent - prior) / math.Abs(prior) * 100), true
}

// CategoryBreakdown sums the expenses matching period per category, sorted
// by amount descending. Ties keep the order in which categories first
// appear. top <= 0 keeps every category. Percentages are relative to the
// whole period, not only the kept categories.
func CategoryBreakdown(l Ledger, period Period, top int) []CategoryShare {
	if period == nil {
		period = AllTime
	}
	sums := map[string]float64{}
	var order []string
	var total float64
	for _, t := range l {
		if t.Type != Expense || !period(t) {
			continue
		}
		if _, seen := sums[t.Category]; !seen {
			order = append(order, t.Category)
		}
		sums[t.Category] += t.Amount
		total += t.Amount
	}
	if len(order) == 0 {
		return []CategoryShare{}
	}

	out := make([]CategoryShare, 0, len(order))
	for _, name := range order {
		out = append(out, CategoryShare{Name: name, Amount: sums[name]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Amount > out[j].Amount })
	if top > 0 && len(out) > top {
		out = out[:top]
	}
	for i := range out {
		out[i].Percent = Round(out[i].Amount / total * 100)
	}
	return out
}

// MonthlyOverview wraps CategoryBreakdown for a single month.
func MonthlyOverview(l Ledger, year, month, top int) MonthOverview {
	period := InMonth(year, month)
	var total float64
	for _, t := range l {
		if t.Type == Expense && period(t) {
			total += t.Amount
		}
	}
	return MonthOverview{
		Year:       year,
		Month:      month,
		Total:      total,
		ByCategory: CategoryBreakdown(l, period, top),
	}
}

// Summarize computes every summary figure from scratch.
func Summarize(l Ledger, window int) Summary {
	tot := TotalsByType(l)
	s := Summary{
		Totals:       tot,
		Balance:      tot.Income - tot.Expense,
		ExpenseRatio: expenseRatio(tot),
	}
	if pct, ok := Trend(l, window); ok {
		s.Trend = &pct
	}
	return s
}

// WithBudget attaches a budget and what is left of it. A budget of 0 means
// none is set.
func (s Summary) WithBudget(budget float64) Summary {
	if budget <= 0 {
		s.Budget = 0
		s.Remaining = nil
		return s
	}
	remaining := budget - s.Expense
	s.Budget = budget
	s.Remaining = &remaining
	return s
}
