package bolt

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"

	"neotrack/internal/storage"
)

// Bucket holding every key.
const Bucket = "local_storage"

// Store wraps a bbolt database file.
type Store struct {
	db *bolt.DB
}

var _ storage.Store = (*Store)(nil)

// New opens dbPath and makes sure the bucket exists.
func New(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := bolt.Open(dbPath, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists([]byte(Bucket)); err != nil {
			return fmt.Errorf("failed to create bucket %s: %w", Bucket, err)
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) GetItem(_ context.Context, key string) (string, bool, error) {
	var (
		value string
		ok    bool
	)
	err := s.db.View(func(tx *bolt.Tx) error {
		// Seek instead of Get: Get cannot tell an empty value from a missing key.
		k, v := tx.Bucket([]byte(Bucket)).Cursor().Seek([]byte(key))
		if k != nil && bytes.Equal(k, []byte(key)) {
			value, ok = string(v), true
		}
		return nil
	})
	if err != nil {
		return "", false, fmt.Errorf("get item %s: %w", key, err)
	}
	return value, ok, nil
}

func (s *Store) SetItem(_ context.Context, key, value string) error {
	if err := storage.ValidateKey(key); err != nil {
		return err
	}
	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(Bucket)).Put([]byte(key), []byte(value))
	})
	if err != nil {
		return fmt.Errorf("set item %s: %w", key, err)
	}
	return nil
}

func (s *Store) RemoveItem(_ context.Context, key string) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(Bucket)).Delete([]byte(key))
	})
	if err != nil {
		return fmt.Errorf("remove item %s: %w", key, err)
	}
	return nil
}
