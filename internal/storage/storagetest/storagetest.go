// Package storagetest holds the behaviour every storage backend must share.
package storagetest

import (
	"context"
	"testing"

	"neotrack/internal/storage"
)

// Run exercises get/set/remove semantics against a fresh store from newStore.
func Run(t *testing.T, newStore func(t *testing.T) storage.KeyValue) {
	t.Helper()
	ctx := context.Background()

	t.Run("missing key", func(t *testing.T) {
		s := newStore(t)
		v, ok, err := s.GetItem(ctx, "absent")
		if err != nil || ok || v != "" {
			t.Fatalf("expected absent key, got %q ok=%v err=%v", v, ok, err)
		}
	})

	t.Run("set then get", func(t *testing.T) {
		s := newStore(t)
		if err := s.SetItem(ctx, "k", `[{"id":1}]`); err != nil {
			t.Fatalf("set: %v", err)
		}
		v, ok, err := s.GetItem(ctx, "k")
		if err != nil || !ok || v != `[{"id":1}]` {
			t.Fatalf("unexpected get: %q ok=%v err=%v", v, ok, err)
		}
	})

	t.Run("overwrite", func(t *testing.T) {
		s := newStore(t)
		_ = s.SetItem(ctx, "k", "first")
		if err := s.SetItem(ctx, "k", "second"); err != nil {
			t.Fatalf("overwrite: %v", err)
		}
		v, _, _ := s.GetItem(ctx, "k")
		if v != "second" {
			t.Fatalf("expected overwritten value, got %q", v)
		}
	})

	t.Run("empty value is present", func(t *testing.T) {
		s := newStore(t)
		if err := s.SetItem(ctx, "k", ""); err != nil {
			t.Fatalf("set: %v", err)
		}
		v, ok, err := s.GetItem(ctx, "k")
		if err != nil || !ok || v != "" {
			t.Fatalf("expected present empty value, got %q ok=%v err=%v", v, ok, err)
		}
	})

	t.Run("keys are independent", func(t *testing.T) {
		s := newStore(t)
		_ = s.SetItem(ctx, "a", "1")
		_ = s.SetItem(ctx, "b", "2")
		if err := s.RemoveItem(ctx, "a"); err != nil {
			t.Fatalf("remove: %v", err)
		}
		if _, ok, _ := s.GetItem(ctx, "a"); ok {
			t.Fatalf("a should be gone")
		}
		if v, ok, _ := s.GetItem(ctx, "b"); !ok || v != "2" {
			t.Fatalf("b should survive, got %q ok=%v", v, ok)
		}
	})

	t.Run("remove absent key", func(t *testing.T) {
		s := newStore(t)
		if err := s.RemoveItem(ctx, "never-set"); err != nil {
			t.Fatalf("removing an absent key should not fail: %v", err)
		}
	})

	t.Run("empty key rejected", func(t *testing.T) {
		s := newStore(t)
		if err := s.SetItem(ctx, " ", "x"); err == nil {
			t.Fatalf("expected error for empty key")
		}
	})
}
