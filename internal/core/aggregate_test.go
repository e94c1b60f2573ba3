package core

import (
	"testing"
	"time"
)

func TestEmptyLedgerAggregates(t *testing.T) {
	var l Ledger
	s := Summarize(l, DefaultTrendWindow)
	if s.Income != 0 || s.Expense != 0 || s.Balance != 0 || s.IncomeCount != 0 || s.ExpenseCount != 0 {
		t.Fatalf("expected zero totals, got %+v", s)
	}
	if s.ExpenseRatio != 0 {
		t.Fatalf("expected zero ratio, got %d", s.ExpenseRatio)
	}
	if s.Trend != nil {
		t.Fatalf("expected unset trend, got %d", *s.Trend)
	}
	if got := CategoryBreakdown(l, AllTime, DefaultBreakdownTop); len(got) != 0 {
		t.Fatalf("expected empty breakdown, got %+v", got)
	}
}

func TestCoffeeAndSalary(t *testing.T) {
	var l Ledger
	l = l.Prepend(Transaction{ID: 1, Title: "Coffee", Amount: 50, Type: Expense, Category: "Food"})
	l = l.Prepend(Transaction{ID: 2, Title: "Salary", Amount: 1000, Type: Income, Category: "Work"})

	tot := TotalsByType(l)
	if tot.Expense != 50 || tot.Income != 1000 || tot.ExpenseCount != 1 || tot.IncomeCount != 1 {
		t.Fatalf("unexpected totals %+v", tot)
	}
	if b := Balance(l); b != 950 {
		t.Fatalf("expected balance 950, got %v", b)
	}
	if r := ExpenseRatio(l); r != 5 {
		t.Fatalf("expected ratio 5, got %d", r)
	}
}

func TestBalanceIsIncomeMinusExpense(t *testing.T) {
	ledgers := []Ledger{
		{},
		{tx(1, Expense, 0.1, "A"), tx(2, Expense, 0.2, "B"), tx(3, Income, 0.3, "C")},
		{tx(1, Income, 1e9, "A"), tx(2, Expense, 123.456, "B")},
		{tx(1, Expense, 7, "A")},
	}
	for i, l := range ledgers {
		tot := TotalsByType(l)
		if Balance(l) != tot.Income-tot.Expense {
			t.Fatalf("case %d: balance %v != %v - %v", i, Balance(l), tot.Income, tot.Expense)
		}
	}
}

func TestExpenseRatioWithoutIncome(t *testing.T) {
	l := Ledger{tx(1, Expense, 500, "A"), tx(2, Expense, 1, "B")}
	if r := ExpenseRatio(l); r != 0 {
		t.Fatalf("expected 0 without income, got %d", r)
	}
}

func TestTrend(t *testing.T) {
	cases := []struct {
		name   string
		ledger Ledger
		want   int
		ok     bool
	}{
		{
			name:   "too few transactions",
			ledger: Ledger{tx(1, Income, 10, "A"), tx(2, Income, 10, "A"), tx(3, Income, 10, "A")},
			ok:     false,
		},
		{
			name: "recent half doubled",
			// newest first: recent = [20, 20], prior = [10, 10]
			ledger: Ledger{tx(4, Income, 20, "A"), tx(3, Income, 20, "A"), tx(2, Income, 10, "A"), tx(1, Income, 10, "A")},
			want:   100,
			ok:     true,
		},
		{
			name:   "prior balance zero",
			ledger: Ledger{tx(4, Income, 20, "A"), tx(3, Income, 20, "A"), tx(2, Income, 10, "A"), tx(1, Expense, 10, "A")},
			want:   0,
			ok:     true,
		},
		{
			name: "negative prior balance uses absolute value",
			// recent = +10, prior = -20 -> (10 - -20) / 20 = 150%
			ledger: Ledger{tx(4, Income, 10, "A"), tx(3, Expense, 0.0001, "A"), tx(2, Expense, 10, "A"), tx(1, Expense, 10, "A")},
			want:   150,
			ok:     true,
		},
		{
			name: "odd sample puts the extra one in the prior half",
			// recent = [10, 10], prior = [10, 10, 20] -> (20 - 40) / 40 = -50%
			ledger: Ledger{tx(5, Income, 10, "A"), tx(4, Income, 10, "A"), tx(3, Income, 10, "A"), tx(2, Income, 10, "A"), tx(1, Income, 20, "A")},
			want:   -50,
			ok:     true,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := Trend(tc.ledger, DefaultTrendWindow)
			if ok != tc.ok || got != tc.want {
				t.Fatalf("Trend = %d, %v; want %d, %v", got, ok, tc.want, tc.ok)
			}
		})
	}
}

func TestTrendOnlyLooksAtWindow(t *testing.T) {
	var l Ledger
	// Oldest 10 are huge expenses that fall outside the window.
	for i := int64(1); i <= 10; i++ {
		l = l.Prepend(tx(i, Expense, 1e6, "A"))
	}
	for i := int64(11); i <= 20; i++ {
		l = l.Prepend(tx(i, Income, 10, "A"))
	}
	got, ok := Trend(l, 10)
	if !ok || got != 0 {
		t.Fatalf("expected flat trend inside window, got %d ok=%v", got, ok)
	}
}

func TestCategoryBreakdown(t *testing.T) {
	l := Ledger{
		tx(1, Expense, 30, "Food"),
		tx(2, Expense, 50, "Rent"),
		tx(3, Income, 900, "Work"),
		tx(4, Expense, 10, "Fun"),
		tx(5, Expense, 20, "Food"),
		tx(6, Expense, 5, "Misc"),
		tx(7, Expense, 5, "Gifts"),
	}
	got := CategoryBreakdown(l, AllTime, DefaultBreakdownTop)
	if len(got) != 4 {
		t.Fatalf("expected top 4, got %+v", got)
	}
	wantNames := []string{"Food", "Rent", "Fun", "Misc"}
	for i, name := range wantNames {
		if got[i].Name != name {
			t.Fatalf("position %d: got %q, want %q (%+v)", i, got[i].Name, name, got)
		}
	}
	if got[0].Amount != 50 || got[0].Percent != 43 {
		t.Fatalf("unexpected food share %+v", got[0])
	}

	sum := 0
	for i, c := range got {
		sum += c.Percent
		if i > 0 && c.Amount > got[i-1].Amount {
			t.Fatalf("breakdown not sorted descending: %+v", got)
		}
	}
	if sum > 100 {
		t.Fatalf("percentages sum to %d", sum)
	}

	if all := CategoryBreakdown(l, AllTime, 0); len(all) != 5 {
		t.Fatalf("top <= 0 should keep all categories, got %d", len(all))
	}
}

func TestCategoryBreakdownPeriod(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	l := Ledger{
		{ID: 1, Title: "a", Amount: 10, Type: Expense, Category: "Food", Date: NewDate(2025, 6, 1)},
		{ID: 2, Title: "b", Amount: 99, Type: Expense, Category: "Food", Date: NewDate(2025, 5, 31)},
		{ID: 3, Title: "c", Amount: 30, Type: Expense, Category: "Travel", CreatedAt: now},
	}
	got := CategoryBreakdown(l, SameMonth(now), 0)
	if len(got) != 2 || got[0].Name != "Travel" || got[1].Name != "Food" || got[1].Amount != 10 {
		t.Fatalf("unexpected breakdown %+v", got)
	}
	if got[0].Percent != 75 || got[1].Percent != 25 {
		t.Fatalf("unexpected percentages %+v", got)
	}

	if got := CategoryBreakdown(l, InMonth(2024, 1), 0); len(got) != 0 {
		t.Fatalf("expected empty breakdown for a month without expenses, got %+v", got)
	}
}

func TestInMonthBucketsCreatedAtInUTC(t *testing.T) {
	cest := time.FixedZone("CEST", 2*60*60)
	tests := []struct {
		name    string
		created time.Time
		year    int
		month   int
	}{
		{"early morning local is previous UTC month", time.Date(2025, 6, 1, 1, 30, 0, 0, cest), 2025, 5},
		{"midday local stays in month", time.Date(2025, 6, 1, 12, 0, 0, 0, cest), 2025, 6},
		{"new year rolls back", time.Date(2025, 1, 1, 0, 15, 0, 0, cest), 2024, 12},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := Transaction{ID: 1, Title: "a", Amount: 5, Type: Expense, CreatedAt: tt.created}
			if !InMonth(tt.year, tt.month)(tx) {
				t.Fatalf("expected %v to fall in %d-%02d", tt.created, tt.year, tt.month)
			}
		})
	}
}

func TestBetween(t *testing.T) {
	p := Between(NewDate(2025, 1, 10), NewDate(2025, 1, 20))
	in := Transaction{Date: NewDate(2025, 1, 20)}
	out := Transaction{Date: NewDate(2025, 1, 21)}
	if !p(in) || p(out) {
		t.Fatalf("Between bounds are inclusive")
	}
}

func TestMonthlyOverview(t *testing.T) {
	l := Ledger{
		{ID: 1, Title: "a", Amount: 10, Type: Expense, Category: "Food", Date: NewDate(2025, 6, 1)},
		{ID: 2, Title: "b", Amount: 30, Type: Expense, Category: "Rent", Date: NewDate(2025, 6, 2)},
		{ID: 3, Title: "c", Amount: 500, Type: Income, Category: "Work", Date: NewDate(2025, 6, 2)},
	}
	ov := MonthlyOverview(l, 2025, 6, 1)
	if ov.Total != 40 || len(ov.ByCategory) != 1 || ov.ByCategory[0].Name != "Rent" || ov.ByCategory[0].Percent != 75 {
		t.Fatalf("unexpected overview %+v", ov)
	}
}

func TestSummaryWithBudget(t *testing.T) {
	l := Ledger{tx(1, Expense, 300, "A"), tx(2, Income, 1000, "B")}
	s := Summarize(l, DefaultTrendWindow).WithBudget(500)
	if s.Budget != 500 || s.Remaining == nil || *s.Remaining != 200 {
		t.Fatalf("unexpected budget summary %+v", s)
	}
	s = s.WithBudget(0)
	if s.Remaining != nil || s.Budget != 0 {
		t.Fatalf("zero budget should clear remaining, got %+v", s)
	}
}
