package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"neotrack/internal/config"
	applog "neotrack/internal/log"
	"neotrack/internal/services"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.LoadFrom(map[string]string{
		"DATA_BACKEND": "file",
		"DATA_DIR":     t.TempDir(),
	})
	if err != nil {
		t.Fatal(err)
	}
	return cfg
}

func TestNewLedgerServicePersistsAcrossRestarts(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)

	svc, cleanup, err := NewLedgerService(ctx, cfg, applog.Discard())
	if err != nil {
		t.Fatalf("NewLedgerService: %v", err)
	}
	if _, err := svc.Create(ctx, services.CreateInput{Title: "Coffee", Amount: "3.50"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.SetBudget(ctx, "200"); err != nil {
		t.Fatalf("budget: %v", err)
	}
	if err := cleanup(); err != nil {
		t.Fatalf("cleanup: %v", err)
	}

	svc, cleanup, err = NewLedgerService(ctx, cfg, applog.Discard())
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer cleanup()
	if got := svc.All(ctx); len(got) != 1 || got[0].Title != "Coffee" {
		t.Fatalf("ledger not persisted: %+v", got)
	}
	if svc.Budget(ctx) != 200 {
		t.Fatalf("budget not persisted: %v", svc.Budget(ctx))
	}
}

func TestNewLedgerServiceUsesCategoriesFile(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)
	cfg.CategoriesFile = filepath.Join(t.TempDir(), "categories.yaml")
	if err := os.WriteFile(cfg.CategoriesFile, []byte("expense:\n  - Pets\n  - Books\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	svc, cleanup, err := NewLedgerService(ctx, cfg, applog.Discard())
	if err != nil {
		t.Fatalf("NewLedgerService: %v", err)
	}
	defer cleanup()

	tax, err := svc.Categories(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Join(tax.Expense, ",") != "Books,Pets,Other" {
		t.Fatalf("unexpected expense categories %v", tax.Expense)
	}
}

func TestNewLedgerServiceRejectsBadCategories(t *testing.T) {
	cfg := testConfig(t)
	cfg.CategoriesFile = filepath.Join(t.TempDir(), "categories.yaml")
	if err := os.WriteFile(cfg.CategoriesFile, []byte("expense: [unterminated"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := NewLedgerService(context.Background(), cfg, applog.Discard()); err == nil {
		t.Fatal("expected taxonomy parse error")
	}
}

func TestOpenLedgerRejectsUnknownBackend(t *testing.T) {
	cfg := testConfig(t)
	cfg.DataBackend = "sheets"
	if _, _, err := OpenLedger(context.Background(), cfg, applog.Discard()); err == nil {
		t.Fatal("expected backend error")
	}
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("DATA_BACKEND", "memory")
	t.Setenv("PORT", "9999")
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Port != "9999" || cfg.DataBackend != "memory" {
		t.Fatalf("unexpected config %+v", cfg)
	}

	t.Setenv("PORT", "nope")
	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected validation error")
	}
}
