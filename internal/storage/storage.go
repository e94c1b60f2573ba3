// Package storage defines the local key-value store the ledger persists into.
//
// Backends mirror browser local storage: string keys, string values, whole
// values overwritten on every write.
package storage

import (
	"context"
	"errors"
	"strings"
)

// ErrClosed is returned by backends used after Close.
var ErrClosed = errors.New("storage closed")

// Ports for storage backends.
type (
	KeyValue interface {
		// GetItem returns the value under key. ok is false when the key is absent.
		GetItem(ctx context.Context, key string) (value string, ok bool, err error)
		// SetItem overwrites the value under key.
		SetItem(ctx context.Context, key, value string) error
		// RemoveItem deletes key. Removing an absent key is not an error.
		RemoveItem(ctx context.Context, key string) error
	}

	// Store is a KeyValue that holds resources.
	Store interface {
		KeyValue
		Close() error
	}
)

// ValidateKey rejects empty or whitespace-only keys.
func ValidateKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return errors.New("empty storage key")
	}
	return nil
}
