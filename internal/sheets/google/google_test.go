package google

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"neotrack/internal/core"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

func sample() core.Transaction {
	return core.Transaction{
		ID:        1718000000000,
		Title:     "Groceries",
		Amount:    42.5,
		Category:  "Food",
		Date:      core.NewDate(2024, 6, 10),
		Notes:     "weekly",
		Type:      core.Expense,
		CreatedAt: time.Date(2024, 6, 10, 7, 13, 20, 0, time.UTC),
	}
}

func TestTransactionRow(t *testing.T) {
	row := transactionRow(sample())
	want := []any{"1718000000000", "2024-06-10", "Groceries", "Food", "expense", -42.5, "weekly", "2024-06-10T07:13:20Z"}
	if len(row) != len(want) {
		t.Fatalf("row has %d cells, want %d", len(row), len(want))
	}
	for i := range want {
		if row[i] != want[i] {
			t.Errorf("cell %d = %v, want %v", i, row[i], want[i])
		}
	}

	income := sample()
	income.Type = core.Income
	income.CreatedAt = time.Time{}
	row = transactionRow(income)
	if row[5] != 42.5 || row[7] != "" {
		t.Errorf("unexpected income row %v", row)
	}
}

func TestFindRowAndIDs(t *testing.T) {
	values := [][]any{{"ID"}, {"11"}, {}, {" 22 "}, {"not-a-number"}, {"0"}}

	if got := findRow(values, 22); got != 3 {
		t.Errorf("findRow(22) = %d, want 3", got)
	}
	if got := findRow(values, 99); got != -1 {
		t.Errorf("findRow(99) = %d, want -1", got)
	}

	ids := idsFromColumn(values)
	if len(ids) != 2 {
		t.Fatalf("expected 2 ids, got %v", ids)
	}
	for _, id := range []int64{11, 22} {
		if _, ok := ids[id]; !ok {
			t.Errorf("missing id %d", id)
		}
	}
}

func TestNewRequiresSpreadsheetAndCredentials(t *testing.T) {
	if _, err := New(context.Background(), Config{}); err == nil || !strings.Contains(err.Error(), "spreadsheet") {
		t.Fatalf("expected missing spreadsheet error, got %v", err)
	}

	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS", "")
	_, err := New(context.Background(), Config{SpreadsheetID: "abc"})
	if err == nil || !strings.Contains(err.Error(), "missing service account credentials") {
		t.Fatalf("expected missing credentials error, got %v", err)
	}

	_, err = New(context.Background(), Config{SpreadsheetID: "abc", CredentialsFile: "/does/not/exist.json"})
	if err == nil || !strings.Contains(err.Error(), "read service account file") {
		t.Fatalf("expected file error, got %v", err)
	}

	_, err = New(context.Background(), Config{SpreadsheetID: "abc", CredentialsJSON: `{"type":"authorized_user"}`})
	if err == nil || !strings.Contains(err.Error(), "parse service account credentials") {
		t.Fatalf("expected credentials parse error, got %v", err)
	}
}

// fakeSheets serves the handful of Sheets API calls the client makes.
type fakeSheets struct {
	mu       sync.Mutex
	ids      [][]any
	appended [][]any
	deleted  []int64
	header   bool
}

func (f *fakeSheets) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	w.Header().Set("Content-Type", "application/json")
	path := r.URL.Path

	switch {
	case r.Method == http.MethodGet && strings.Contains(path, "/values/"):
		_ = json.NewEncoder(w).Encode(map[string]any{"range": "Transactions!A:A", "values": f.ids})
	case r.Method == http.MethodPost && strings.HasSuffix(path, ":append"):
		var vr gsheet.ValueRange
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &vr)
		f.appended = append(f.appended, vr.Values...)
		for _, row := range vr.Values {
			f.ids = append(f.ids, []any{row[0]})
		}
		n := len(f.ids)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"updates": map[string]any{"updatedRange": "Transactions!A" + itoa(n) + ":H" + itoa(n)},
		})
	case r.Method == http.MethodPut && strings.Contains(path, "/values/"):
		f.header = true
		_ = json.NewEncoder(w).Encode(map[string]any{})
	case r.Method == http.MethodPost && strings.HasSuffix(path, ":batchUpdate"):
		var req gsheet.BatchUpdateSpreadsheetRequest
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &req)
		for _, rq := range req.Requests {
			start := rq.DeleteDimension.Range.StartIndex
			f.deleted = append(f.deleted, start)
			f.ids = append(f.ids[:start], f.ids[start+1:]...)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"spreadsheetId": "sheet-1"})
	case r.Method == http.MethodGet:
		_ = json.NewEncoder(w).Encode(map[string]any{
			"sheets": []any{
				map[string]any{"properties": map[string]any{"sheetId": 3, "title": "Other"}},
				map[string]any{"properties": map[string]any{"sheetId": 7, "title": "Transactions"}},
			},
		})
	default:
		http.Error(w, "unexpected "+r.Method+" "+path, http.StatusNotFound)
	}
}

func itoa(n int) string {
	b, _ := json.Marshal(n)
	return string(b)
}

func newFakeClient(t *testing.T, fake *fakeSheets) *Client {
	t.Helper()
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	svc, err := gsheet.NewService(context.Background(),
		goption.WithEndpoint(srv.URL+"/"),
		goption.WithoutAuthentication(),
		goption.WithHTTPClient(srv.Client()))
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return NewWithService(svc, "sheet-1", "Transactions")
}

func TestClientMirrorsTransactions(t *testing.T) {
	fake := &fakeSheets{}
	c := newFakeClient(t, fake)
	ctx := context.Background()

	if err := c.EnsureHeader(ctx); err != nil {
		t.Fatalf("EnsureHeader: %v", err)
	}
	if !fake.header {
		t.Fatal("expected header write on empty sheet")
	}
	fake.ids = [][]any{{"ID"}}

	tx := sample()
	ref, err := c.AppendTransaction(ctx, tx)
	if err != nil {
		t.Fatalf("AppendTransaction: %v", err)
	}
	if ref != "Transactions!A2:H2" {
		t.Errorf("ref = %q", ref)
	}
	if len(fake.appended) != 1 || fake.appended[0][2] != "Groceries" {
		t.Fatalf("unexpected appended rows %v", fake.appended)
	}

	// appending again is idempotent
	ref, err = c.AppendTransaction(ctx, tx)
	if err != nil || ref != "Transactions!A2:H2" || len(fake.appended) != 1 {
		t.Fatalf("duplicate append: ref=%q err=%v rows=%d", ref, err, len(fake.appended))
	}

	ids, err := c.ListIDs(ctx)
	if err != nil {
		t.Fatalf("ListIDs: %v", err)
	}
	if _, ok := ids[tx.ID]; !ok || len(ids) != 1 {
		t.Fatalf("unexpected ids %v", ids)
	}

	found, err := c.DeleteTransaction(ctx, tx.ID)
	if err != nil || !found {
		t.Fatalf("DeleteTransaction = %v, %v", found, err)
	}
	if len(fake.deleted) != 1 || fake.deleted[0] != 1 {
		t.Fatalf("expected row index 1 deleted, got %v", fake.deleted)
	}

	found, err = c.DeleteTransaction(ctx, tx.ID)
	if err != nil || found {
		t.Fatalf("second delete should report not found, got %v %v", found, err)
	}
}

func TestAppendRejectsInvalidTransaction(t *testing.T) {
	c := NewWithService(nil, "sheet-1", "")
	bad := sample()
	bad.Amount = 0
	if _, err := c.AppendTransaction(context.Background(), bad); err == nil {
		t.Fatal("expected validation error")
	}
	if c.sheetName != "Transactions" {
		t.Errorf("default sheet name = %q", c.sheetName)
	}
}
