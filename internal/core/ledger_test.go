package core

import (
	"errors"
	"reflect"
	"testing"
)

func tx(id int64, typ Type, amount float64, category string) Transaction {
	return Transaction{ID: id, Title: "t", Amount: amount, Category: category, Type: typ}
}

func TestPrependAndWithoutRestoreLedger(t *testing.T) {
	orig := Ledger{tx(3, Expense, 5, "Food"), tx(2, Income, 10, "Work"), tx(1, Expense, 1, "Bills")}
	snapshot := orig.Clone()

	added := orig.Prepend(tx(4, Expense, 7, "Food"))
	if len(added) != 4 || added[0].ID != 4 {
		t.Fatalf("expected new transaction in front, got %+v", added)
	}
	if !reflect.DeepEqual(orig, snapshot) {
		t.Fatalf("prepend must not mutate the receiver")
	}

	back, ok := added.Without(4)
	if !ok {
		t.Fatalf("expected id 4 to be removed")
	}
	if !reflect.DeepEqual(back, snapshot) {
		t.Fatalf("add then remove should restore the ledger, got %+v", back)
	}
}

func TestWithoutMissingIDIsNoop(t *testing.T) {
	l := Ledger{tx(1, Expense, 1, "A")}
	out, ok := l.Without(99)
	if ok || len(out) != 1 {
		t.Fatalf("expected no-op, got %+v ok=%v", out, ok)
	}
}

func TestNextID(t *testing.T) {
	l := Ledger{tx(100, Expense, 1, "A"), tx(50, Expense, 1, "A")}
	cases := []struct {
		candidate, want int64
	}{
		{200, 200},
		{75, 75},
		{100, 101},
		{50, 101},
		{0, 101},
	}
	for _, tc := range cases {
		if got := l.NextID(tc.candidate); got != tc.want {
			t.Fatalf("NextID(%d) = %d, want %d", tc.candidate, got, tc.want)
		}
	}
	if got := (Ledger{}).NextID(0); got != 1 {
		t.Fatalf("empty ledger NextID(0) = %d, want 1", got)
	}
}

func TestParseFilter(t *testing.T) {
	cases := map[string]Filter{
		"":        FilterAll,
		"all":     FilterAll,
		"ALL":     FilterAll,
		"income":  Filter(Income),
		"expense": Filter(Expense),
	}
	for in, want := range cases {
		got, err := ParseFilter(in)
		if err != nil || got != want {
			t.Fatalf("ParseFilter(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := ParseFilter("transfers"); !errors.Is(err, ErrInvalidType) {
		t.Fatalf("expected ErrInvalidType, got %v", err)
	}
}

func TestFilterByType(t *testing.T) {
	var l Ledger
	for i := int64(1); i <= 5; i++ {
		l = l.Prepend(tx(i, Expense, 10, "Food"))
	}

	if got := FilterByType(l, Filter(Expense)); len(got) != 5 {
		t.Fatalf("expected 5 expenses, got %d", len(got))
	}
	if got := FilterByType(l, Filter(Income)); len(got) != 0 {
		t.Fatalf("expected no income, got %d", len(got))
	}
	if got := FilterByType(l, FilterAll); !reflect.DeepEqual(got, l) {
		t.Fatalf("all should return the full ledger")
	}
}

func TestFilterByTypePreservesOrder(t *testing.T) {
	l := Ledger{tx(5, Income, 1, "A"), tx(4, Expense, 1, "A"), tx(3, Income, 1, "A"), tx(2, Expense, 1, "A"), tx(1, Income, 1, "A")}
	got := FilterByType(l, Filter(Income))
	ids := []int64{got[0].ID, got[1].ID, got[2].ID}
	if !reflect.DeepEqual(ids, []int64{5, 3, 1}) {
		t.Fatalf("unexpected order %v", ids)
	}
}

func TestHead(t *testing.T) {
	l := Ledger{tx(3, Income, 1, "A"), tx(2, Income, 1, "A"), tx(1, Income, 1, "A")}
	if len(l.Head(2)) != 2 || len(l.Head(0)) != 3 || len(l.Head(10)) != 3 {
		t.Fatalf("unexpected head lengths")
	}
}
