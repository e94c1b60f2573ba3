package ledger

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"neotrack/internal/core"
	applog "neotrack/internal/log"
)

// Budget returns the persisted budget, or 0 when none is set or the stored
// value is not a usable number.
func (s *Store) Budget(ctx context.Context) float64 {
	raw, ok, err := s.kv.GetItem(ctx, s.budgetKey)
	if err != nil {
		s.logger.WarnContext(ctx, "Failed to read budget", applog.FieldStorageKey, s.budgetKey, applog.FieldError, err)
		return 0
	}
	if !ok {
		return 0
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || core.ValidateAmount(v) != nil {
		return 0
	}
	return v
}

// SetBudget persists v as a bare number. 0 clears the budget.
func (s *Store) SetBudget(ctx context.Context, v float64) error {
	if v == 0 {
		if err := s.kv.RemoveItem(ctx, s.budgetKey); err != nil {
			return fmt.Errorf("clear budget: %w", err)
		}
		return nil
	}
	if err := core.ValidateAmount(v); err != nil {
		return fmt.Errorf("set budget: %w", err)
	}
	if err := s.kv.SetItem(ctx, s.budgetKey, strconv.FormatFloat(v, 'f', -1, 64)); err != nil {
		return fmt.Errorf("persist budget: %w", err)
	}
	return nil
}
