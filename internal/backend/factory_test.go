package backend

import (
	"context"
	"path/filepath"
	"testing"

	"neotrack/internal/config"
	applog "neotrack/internal/log"
)

func TestFromAppConfig(t *testing.T) {
	if _, err := FromAppConfig(nil); err == nil {
		t.Fatal("expected error for nil config")
	}
	if _, err := FromAppConfig(&config.Config{DataBackend: "sheets"}); err == nil {
		t.Fatal("expected error for unknown backend")
	}

	cfg, err := FromAppConfig(&config.Config{DataBackend: "bolt", BoltDBPath: "/tmp/x.bolt"})
	if err != nil {
		t.Fatalf("FromAppConfig() error = %v", err)
	}
	if cfg.Type != BoltBackend || cfg.BoltDBPath != "/tmp/x.bolt" {
		t.Fatalf("unexpected config %+v", cfg)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{"memory", Config{Type: MemoryBackend}, false},
		{"file without dir", Config{Type: FileBackend}, false},
		{"sqlite without path", Config{Type: SQLiteBackend}, true},
		{"bolt without path", Config{Type: BoltBackend}, true},
		{"postgres without dsn", Config{Type: PostgresBackend}, true},
		{"unknown", Config{Type: "sheets"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.config.Validate(); (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestCreateBackend(t *testing.T) {
	dir := t.TempDir()
	factory := NewFactory(applog.Discard())

	configs := []Config{
		{Type: MemoryBackend},
		{Type: FileBackend, DataDirectory: filepath.Join(dir, "files")},
		{Type: SQLiteBackend, SQLiteDBPath: filepath.Join(dir, "neotrack.db")},
		{Type: BoltBackend, BoltDBPath: filepath.Join(dir, "neotrack.bolt")},
	}

	ctx := context.Background()
	for _, cfg := range configs {
		t.Run(cfg.Type.String(), func(t *testing.T) {
			res, err := factory.CreateBackend(ctx, cfg)
			if err != nil {
				t.Fatalf("CreateBackend() error = %v", err)
			}
			defer func() {
				if err := res.Cleanup(); err != nil {
					t.Errorf("cleanup: %v", err)
				}
			}()

			if err := res.Storage.SetItem(ctx, "k", "v"); err != nil {
				t.Fatalf("SetItem() error = %v", err)
			}
			got, ok, err := res.Storage.GetItem(ctx, "k")
			if err != nil || !ok || got != "v" {
				t.Fatalf("GetItem() = %q, %v, %v", got, ok, err)
			}
		})
	}
}

func TestGetBackendTypeStrings(t *testing.T) {
	got := GetBackendTypeStrings()
	if len(got) != 5 || got[0] != "memory" || got[4] != "postgres" {
		t.Fatalf("unexpected backend types %v", got)
	}
}
