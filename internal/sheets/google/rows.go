package google

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"neotrack/internal/core"
)

// header is written to the first row of an empty sheet.
var header = []any{"ID", "Date", "Title", "Category", "Type", "Amount", "Notes", "Created At"}

// transactionRow renders t as
// [id, date, title, category, type, signed amount, notes, createdAt].
// The id is written as text so it reads back exactly.
func transactionRow(t core.Transaction) []any {
	createdAt := ""
	if !t.CreatedAt.IsZero() {
		createdAt = t.CreatedAt.UTC().Format(time.RFC3339)
	}
	return []any{
		strconv.FormatInt(t.ID, 10),
		t.Date.String(),
		t.Title,
		t.Category,
		t.Type.String(),
		t.Signed(),
		t.Notes,
		createdAt,
	}
}

// findRow returns the zero-based index of the row whose first cell is id,
// or -1.
func findRow(values [][]any, id int64) int {
	want := strconv.FormatInt(id, 10)
	for i, row := range values {
		if len(row) == 0 {
			continue
		}
		if strings.TrimSpace(fmt.Sprint(row[0])) == want {
			return i
		}
	}
	return -1
}

// idsFromColumn collects every numeric first cell. Header and blank rows
// are skipped.
func idsFromColumn(values [][]any) map[int64]struct{} {
	ids := make(map[int64]struct{}, len(values))
	for _, row := range values {
		if len(row) == 0 {
			continue
		}
		id, err := strconv.ParseInt(strings.TrimSpace(fmt.Sprint(row[0])), 10, 64)
		if err != nil || id <= 0 {
			continue
		}
		ids[id] = struct{}{}
	}
	return ids
}
