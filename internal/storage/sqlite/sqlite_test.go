package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"neotrack/internal/storage"
	"neotrack/internal/storage/storagetest"
)

func newTestStore(t *testing.T, path string) *Store {
	t.Helper()
	s, err := New(path)
	if err != nil {
		t.Fatalf("new sqlite store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLiteStore(t *testing.T) {
	storagetest.Run(t, func(t *testing.T) storage.KeyValue {
		return newTestStore(t, filepath.Join(t.TempDir(), "neotrack.db"))
	})
}

func TestMigrationsAreIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "neotrack.db")
	s := newTestStore(t, path)
	if err := s.SetItem(context.Background(), "k", "v"); err != nil {
		t.Fatalf("set: %v", err)
	}
	s.Close()

	reopened := newTestStore(t, path)
	v, ok, err := reopened.GetItem(context.Background(), "k")
	if err != nil || !ok || v != "v" {
		t.Fatalf("value lost across reopen: %q ok=%v err=%v", v, ok, err)
	}
}
