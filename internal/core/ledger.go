package core

import "strings"

// FilterAll selects every transaction regardless of type.
const FilterAll Filter = "all"

type (
	// Ledger is the full list of transactions, newest first.
	Ledger []Transaction

	// Filter is either FilterAll or one of the transaction types.
	Filter string
)

// ParseFilter accepts "all", "income" or "expense". An empty string means all.
func ParseFilter(s string) (Filter, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == string(FilterAll) {
		return FilterAll, nil
	}
	t, err := ParseType(s)
	if err != nil {
		return "", err
	}
	return Filter(t), nil
}

// Prepend returns a new ledger with t in front.
func (l Ledger) Prepend(t Transaction) Ledger {
	out := make(Ledger, 0, len(l)+1)
	out = append(out, t)
	return append(out, l...)
}

// Without returns a new ledger lacking the first transaction with the given
// id, and whether one was found. The receiver is returned as-is when not.
func (l Ledger) Without(id int64) (Ledger, bool) {
	i := l.Index(id)
	if i < 0 {
		return l, false
	}
	out := make(Ledger, 0, len(l)-1)
	out = append(out, l[:i]...)
	return append(out, l[i+1:]...), true
}

func (l Ledger) Index(id int64) int {
	for i, t := range l {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func (l Ledger) Find(id int64) (Transaction, bool) {
	if i := l.Index(id); i >= 0 {
		return l[i], true
	}
	return Transaction{}, false
}

// NextID returns candidate unless it is already taken, in which case it
// returns one past the largest id in the ledger.
func (l Ledger) NextID(candidate int64) int64 {
	if _, taken := l.Find(candidate); !taken && candidate > 0 {
		return candidate
	}
	var max int64
	for _, t := range l {
		if t.ID > max {
			max = t.ID
		}
	}
	if candidate > max {
		return candidate
	}
	return max + 1
}

// Clone returns a copy that shares no backing array with l.
func (l Ledger) Clone() Ledger {
	if l == nil {
		return Ledger{}
	}
	return append(Ledger(nil), l...)
}

// Head returns at most n transactions from the front. n <= 0 means all.
func (l Ledger) Head(n int) Ledger {
	if n <= 0 || n >= len(l) {
		return l
	}
	return l[:n]
}

// FilterByType returns the transactions matching f, preserving order.
func FilterByType(l Ledger, f Filter) Ledger {
	if f == FilterAll || f == "" {
		return l
	}
	out := Ledger{}
	for _, t := range l {
		if string(t.Type) == string(f) {
			out = append(out, t)
		}
	}
	return out
}
