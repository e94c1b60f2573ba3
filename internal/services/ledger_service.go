package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"neotrack/internal/amqp"
	"neotrack/internal/core"
	"neotrack/internal/ledger"
	applog "neotrack/internal/log"
	"neotrack/internal/taxonomy"
)

// EventPublisher delivers ledger events to whoever mirrors the ledger.
type EventPublisher interface {
	PublishLedgerEvent(ctx context.Context, ev *amqp.LedgerEvent) error
}

// CategoryReader lists the categories offered for new transactions.
type CategoryReader interface {
	List(ctx context.Context) (taxonomy.Taxonomy, error)
}

// CreateInput is raw form input; every field is still a string.
type CreateInput struct {
	Title    string `json:"title"`
	Amount   string `json:"amount"`
	Category string `json:"category"`
	Date     string `json:"date"`
	Notes    string `json:"notes"`
	Type     string `json:"type"`
}

// Dashboard bundles everything the main screen shows.
type Dashboard struct {
	Summary core.Summary       `json:"summary"`
	Month   core.MonthOverview `json:"month"`
	Recent  core.Ledger        `json:"recent"`
}

// LedgerService is what the HTTP and CLI adapters talk to. It validates
// input, mutates the ledger store and publishes ledger events.
type LedgerService struct {
	store      *ledger.Store
	publisher  EventPublisher
	categories CategoryReader
	logger     *applog.Logger
	now        func() time.Time

	trendWindow  int
	breakdownTop int
	listLimit    int
}

type Option func(*LedgerService)

// WithPublisher enables ledger events. A nil publisher disables them.
func WithPublisher(p EventPublisher) Option {
	return func(s *LedgerService) { s.publisher = p }
}

func WithCategories(c CategoryReader) Option {
	return func(s *LedgerService) {
		if c != nil {
			s.categories = c
		}
	}
}

func WithLogger(l *applog.Logger) Option {
	return func(s *LedgerService) {
		if l != nil {
			s.logger = l.WithComponent(applog.ComponentService)
		}
	}
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *LedgerService) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLimits overrides the trend window, breakdown size and list length.
// Non-positive values keep the defaults, except listLimit where 0 means
// unlimited.
func WithLimits(trendWindow, breakdownTop, listLimit int) Option {
	return func(s *LedgerService) {
		if trendWindow > 0 {
			s.trendWindow = trendWindow
		}
		if breakdownTop > 0 {
			s.breakdownTop = breakdownTop
		}
		if listLimit >= 0 {
			s.listLimit = listLimit
		}
	}
}

const DefaultListLimit = 10

func NewLedgerService(store *ledger.Store, opts ...Option) *LedgerService {
	s := &LedgerService{
		store:        store,
		categories:   taxonomy.Default(),
		logger:       applog.FromContext(context.Background()).WithComponent(applog.ComponentService),
		now:          time.Now,
		trendWindow:  core.DefaultTrendWindow,
		breakdownTop: core.DefaultBreakdownTop,
		listLimit:    DefaultListLimit,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Build turns raw input into a transaction without touching the ledger.
func (s *LedgerService) Build(in CreateInput) (core.Transaction, error) {
	now := s.now()

	title := strings.TrimSpace(in.Title)
	if err := core.ValidateTitle(title); err != nil {
		return core.Transaction{}, err
	}

	amount, err := core.ParseAmount(in.Amount)
	if err != nil {
		return core.Transaction{}, err
	}

	typ := core.Expense
	if strings.TrimSpace(in.Type) != "" {
		if typ, err = core.ParseType(in.Type); err != nil {
			return core.Transaction{}, err
		}
	}

	date := core.DateOf(now)
	if strings.TrimSpace(in.Date) != "" {
		if date, err = core.ParseDate(in.Date); err != nil {
			return core.Transaction{}, err
		}
	}

	category := strings.TrimSpace(in.Category)
	if category == "" {
		category = core.DefaultCategory
	}

	t := core.Transaction{
		ID:        s.store.NextID(now.UnixMilli()),
		Title:     title,
		Amount:    amount,
		Category:  category,
		Date:      date,
		Notes:     strings.TrimSpace(in.Notes),
		Type:      typ,
		CreatedAt: now.UTC(),
	}
	if err := t.Validate(); err != nil {
		return core.Transaction{}, err
	}
	return t, nil
}

// Create validates in, records the transaction and publishes a created event.
func (s *LedgerService) Create(ctx context.Context, in CreateInput) (core.Transaction, error) {
	t, err := s.Build(in)
	if err != nil {
		s.logger.DebugContext(ctx, "Rejected transaction input", applog.FieldError, err)
		return core.Transaction{}, fmt.Errorf("create transaction: %w", err)
	}

	if err := s.store.Add(ctx, t); err != nil {
		// a concurrent create may have taken the id
		if !errors.Is(err, core.ErrDuplicateID) {
			return core.Transaction{}, err
		}
		t.ID = s.store.NextID(t.ID)
		if err := s.store.Add(ctx, t); err != nil {
			return core.Transaction{}, err
		}
	}

	s.logger.InfoContext(ctx, "Transaction created",
		applog.NewFields().
			WithOperation(applog.OpCreate).
			WithTransaction(t.ID, t.Type.String(), t.Title, t.Amount, t.Category).
			ToSlice()...)

	s.publish(ctx, amqp.EventCreated, t)
	return t, nil
}

// Delete removes the transaction with id. Reports whether it existed; a
// missing or impossible id is not an error.
func (s *LedgerService) Delete(ctx context.Context, id int64) (bool, error) {
	removed, ok, err := s.store.Remove(ctx, id)
	if err != nil {
		return false, fmt.Errorf("delete transaction %d: %w", id, err)
	}
	if !ok {
		s.logger.DebugContext(ctx, "Delete of unknown transaction ignored", applog.FieldTransactionID, id)
		return false, nil
	}

	s.logger.InfoContext(ctx, "Transaction deleted",
		applog.FieldOperation, applog.OpDelete,
		applog.FieldTransactionID, id)

	s.publish(ctx, amqp.EventDeleted, removed)
	return true, nil
}

func (s *LedgerService) publish(ctx context.Context, kind amqp.EventKind, t core.Transaction) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishLedgerEvent(ctx, amqp.NewLedgerEvent(kind, t, s.now())); err != nil {
		// the local write already succeeded
		s.logger.ErrorContext(ctx, "Failed to publish ledger event",
			applog.FieldOperation, applog.OpPublish,
			applog.FieldTransactionID, t.ID,
			applog.FieldError, err)
	}
}

// List returns up to limit newest transactions matching filter. limit 0
// uses the configured default.
func (s *LedgerService) List(_ context.Context, filter core.Filter, limit int) core.Ledger {
	if limit <= 0 {
		limit = s.listLimit
	}
	matched := core.FilterByType(s.store.Transactions(), filter)
	if limit <= 0 {
		return matched
	}
	return matched.Head(limit)
}

// All returns the whole ledger, newest first.
func (s *LedgerService) All(_ context.Context) core.Ledger {
	return s.store.Transactions()
}

// Summary computes the summary cards, including the budget if one is set.
func (s *LedgerService) Summary(ctx context.Context) core.Summary {
	return core.Summarize(s.store.Transactions(), s.trendWindow).WithBudget(s.store.Budget(ctx))
}

// Breakdown returns the top categories for year/month. A zero year or month
// means the current month; top 0 uses the configured default. Aggregates
// are recomputed from the full ledger on every call.
func (s *LedgerService) Breakdown(_ context.Context, year, month, top int) core.MonthOverview {
	if year == 0 || month == 0 {
		now := s.now()
		year, month = now.Year(), int(now.Month())
	}
	if top <= 0 {
		top = s.breakdownTop
	}
	return core.MonthlyOverview(s.store.Transactions(), year, month, top)
}

func (s *LedgerService) Dashboard(ctx context.Context) Dashboard {
	return Dashboard{
		Summary: s.Summary(ctx),
		Month:   s.Breakdown(ctx, 0, 0, 0),
		Recent:  s.List(ctx, core.FilterAll, 0),
	}
}

func (s *LedgerService) Budget(ctx context.Context) float64 {
	return s.store.Budget(ctx)
}

// SetBudget parses raw and stores it. An empty string or "0" clears the
// budget.
func (s *LedgerService) SetBudget(ctx context.Context, raw string) (float64, error) {
	v, err := ParseBudget(raw)
	if err != nil {
		return 0, fmt.Errorf("set budget: %w", err)
	}
	if err := s.store.SetBudget(ctx, v); err != nil {
		return 0, err
	}
	s.logger.InfoContext(ctx, "Budget updated", applog.FieldAmount, v)
	return v, nil
}

func ParseBudget(raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.Trim(raw, "0.,") == "" {
		return 0, nil
	}
	return core.ParseAmount(raw)
}

func (s *LedgerService) Categories(ctx context.Context) (taxonomy.Taxonomy, error) {
	return s.categories.List(ctx)
}

// Close releases the publisher if it holds resources.
func (s *LedgerService) Close() error {
	if c, ok := s.publisher.(interface{ Close() error }); ok {
		if err := c.Close(); err != nil {
			return fmt.Errorf("close publisher: %w", err)
		}
	}
	return nil
}
