// Package ledger owns the transaction list and keeps it in sync with the
// key-value store it is persisted in.
package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"neotrack/internal/core"
	applog "neotrack/internal/log"
	"neotrack/internal/storage"
)

const (
	// DefaultKey is the key the ledger is persisted under.
	DefaultKey = "neotrack-expenses-v1"
	// DefaultBudgetKey is the key the budget is persisted under.
	DefaultBudgetKey = "neotrack-budget-v1"
)

// Store holds the in-memory ledger. Every mutation is written through to
// the backing storage before it becomes visible.
type Store struct {
	mu        sync.Mutex
	kv        storage.KeyValue
	key       string
	budgetKey string
	logger    *applog.Logger
	ledger    core.Ledger
}

type Option func(*Store)

// WithKey overrides the ledger storage key.
func WithKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

// WithBudgetKey overrides the budget storage key.
func WithBudgetKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.budgetKey = key
		}
	}
}

func WithLogger(l *applog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l.WithComponent(applog.ComponentLedger)
		}
	}
}

// Open creates a store over kv and loads whatever is persisted.
func Open(ctx context.Context, kv storage.KeyValue, opts ...Option) *Store {
	s := &Store{
		kv:        kv,
		key:       DefaultKey,
		budgetKey: DefaultBudgetKey,
		logger:    applog.FromContext(ctx).WithComponent(applog.ComponentLedger),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Load(ctx)
	return s
}

// Load re-reads the persisted ledger. Missing, unreadable or malformed data
// yields an empty ledger; entries that are not valid transactions are
// dropped. Nothing is reported to the caller beyond the result.
func (s *Store) Load(ctx context.Context) core.Ledger {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ledger = s.read(ctx)
	return s.ledger.Clone()
}

func (s *Store) read(ctx context.Context) core.Ledger {
	raw, ok, err := s.kv.GetItem(ctx, s.key)
	if err != nil {
		s.logger.WarnContext(ctx, "Failed to read ledger, starting empty",
			applog.FieldStorageKey, s.key, applog.FieldError, err)
		return core.Ledger{}
	}
	if !ok || raw == "" {
		return core.Ledger{}
	}

	// elements are decoded one by one so a single bad record does not cost
	// the rest of the ledger
	var elems []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &elems); err != nil {
		s.logger.WarnContext(ctx, "Failed to parse ledger, starting empty",
			applog.FieldStorageKey, s.key, applog.FieldError, err)
		return core.Ledger{}
	}

	out := make(core.Ledger, 0, len(elems))
	seen := make(map[int64]struct{}, len(elems))
	for i, elem := range elems {
		var t core.Transaction
		if err := json.Unmarshal(elem, &t); err != nil {
			s.logger.WarnContext(ctx, "Dropping undecodable stored transaction",
				applog.FieldIndex, i, applog.FieldError, err)
			continue
		}
		if err := t.Validate(); err != nil {
			s.logger.WarnContext(ctx, "Dropping invalid stored transaction",
				applog.FieldTransactionID, t.ID, applog.FieldError, err)
			continue
		}
		if _, dup := seen[t.ID]; dup {
			s.logger.WarnContext(ctx, "Dropping duplicate stored transaction",
				applog.FieldTransactionID, t.ID)
			continue
		}
		seen[t.ID] = struct{}{}
		out = append(out, t)
	}

	s.logger.DebugContext(ctx, "Ledger loaded", applog.FieldLedgerSize, len(out))
	return out
}

// Save persists l and makes it the current ledger.
func (s *Store) Save(ctx context.Context, l core.Ledger) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write(ctx, l.Clone())
}

func (s *Store) write(ctx context.Context, l core.Ledger) error {
	if l == nil {
		l = core.Ledger{}
	}
	b, err := json.Marshal(l)
	if err != nil {
		return fmt.Errorf("encode ledger: %w", err)
	}
	if err := s.kv.SetItem(ctx, s.key, string(b)); err != nil {
		return fmt.Errorf("persist ledger: %w", err)
	}
	s.ledger = l
	return nil
}

// Add puts t at the front of the ledger and persists the result.
func (s *Store) Add(ctx context.Context, t core.Transaction) error {
	if err := t.Validate(); err != nil {
		return fmt.Errorf("add transaction: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.ledger.Find(t.ID); exists {
		return fmt.Errorf("add transaction %d: %w", t.ID, core.ErrDuplicateID)
	}
	return s.write(ctx, s.ledger.Prepend(t))
}

// Remove deletes the transaction with the given id and persists the
// result. It reports the removed transaction; a missing id is a no-op.
func (s *Store) Remove(ctx context.Context, id int64) (core.Transaction, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed, found := s.ledger.Find(id)
	if !found {
		return core.Transaction{}, false, nil
	}
	next, _ := s.ledger.Without(id)
	if err := s.write(ctx, next); err != nil {
		return core.Transaction{}, false, err
	}
	return removed, true, nil
}

// Transactions returns a copy of the current ledger.
func (s *Store) Transactions() core.Ledger {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Clone()
}

// NextID picks an unused id, preferring candidate.
func (s *Store) NextID(candidate int64) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.NextID(candidate)
}

func (s *Store) Key() string {
	return s.key
}
