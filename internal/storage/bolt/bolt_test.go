package bolt

import (
	"path/filepath"
	"testing"

	"neotrack/internal/storage"
	"neotrack/internal/storage/storagetest"
)

func TestBoltStore(t *testing.T) {
	storagetest.Run(t, func(t *testing.T) storage.KeyValue {
		s, err := New(filepath.Join(t.TempDir(), "neotrack.bolt"))
		if err != nil {
			t.Fatalf("new bolt store: %v", err)
		}
		t.Cleanup(func() { s.Close() })
		return s
	})
}
