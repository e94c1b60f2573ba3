package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"neotrack/internal/core"
	applog "neotrack/internal/log"
	"neotrack/internal/services"
)

// handleHealth performs basic liveness check
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
		"uptime":    time.Since(s.started).Round(time.Second).String(),
	})
}

// handleReady reports whether the service can answer ledger requests.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	checks := map[string]string{}
	status, code := "ready", http.StatusOK

	if s.svc == nil {
		checks["ledger"] = "not_configured"
		status, code = "not_ready", http.StatusServiceUnavailable
	} else {
		checks["ledger"] = "ok"
		if _, err := s.svc.Categories(ctx); err != nil {
			checks["categories"] = "failed: " + err.Error()
			status, code = "not_ready", http.StatusServiceUnavailable
		} else {
			checks["categories"] = "ok"
		}
	}

	writeJSON(w, code, map[string]any{
		"status":    status,
		"timestamp": time.Now().Format(time.RFC3339),
		"checks":    checks,
	})
}

type listResponse struct {
	Transactions core.Ledger `json:"transactions"`
	Count        int         `json:"count"`
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter, err := core.ParseFilter(q.Get("type"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid type filter: must be all, income or expense")
		return
	}
	limit, err := queryInt(q, "limit")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	txs := s.svc.List(r.Context(), filter, limit)
	if txs == nil {
		txs = core.Ledger{}
	}
	writeJSON(w, http.StatusOK, listResponse{Transactions: txs, Count: len(txs)})
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := applog.FromContext(ctx)

	p := NewRequestBodyParser(r)
	if err := p.Parse(); err != nil {
		if errors.Is(err, errBodyTooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, err.Error())
			return
		}
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	in := services.CreateInput{
		Title:    p.Get("title"),
		Amount:   p.Get("amount"),
		Category: p.Get("category"),
		Date:     p.Get("date"),
		Notes:    p.Get("notes"),
		Type:     p.Get("type"),
	}

	t, err := s.svc.Create(ctx, in)
	if err != nil {
		if msg, ok := validationMessage(err); ok {
			writeError(w, http.StatusUnprocessableEntity, msg)
			return
		}
		logger.ErrorContext(ctx, "Failed to create transaction",
			applog.FieldOperation, applog.OpCreate, applog.FieldError, err)
		writeError(w, http.StatusInternalServerError, "could not save the transaction")
		return
	}

	w.Header().Set("Location", "/api/transactions/"+strconv.FormatInt(t.ID, 10))
	writeJSON(w, http.StatusCreated, t)
}

// handleDeleteTransaction answers 204 whether or not the id existed.
func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid transaction id")
		return
	}

	if _, err := s.svc.Delete(ctx, id); err != nil {
		applog.FromContext(ctx).ErrorContext(ctx, "Failed to delete transaction",
			applog.FieldOperation, applog.OpDelete,
			applog.FieldTransactionID, id,
			applog.FieldError, err)
		writeError(w, http.StatusInternalServerError, "could not delete the transaction")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.svc.Summary(r.Context()))
}

func (s *Server) handleBreakdown(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	year, month, err := parseYearMonth(q)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	top, err := queryInt(q, "top")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	overview := s.svc.Breakdown(r.Context(), year, month, top)
	if overview.ByCategory == nil {
		overview.ByCategory = []core.CategoryShare{}
	}
	writeJSON(w, http.StatusOK, overview)
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	d := s.svc.Dashboard(r.Context())
	if d.Recent == nil {
		d.Recent = core.Ledger{}
	}
	if d.Month.ByCategory == nil {
		d.Month.ByCategory = []core.CategoryShare{}
	}
	writeJSON(w, http.StatusOK, d)
}

type budgetResponse struct {
	Budget float64 `json:"budget"`
}

func (s *Server) handleGetBudget(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, budgetResponse{Budget: s.svc.Budget(r.Context())})
}

// handleSetBudget accepts {"budget": 1500} or budget=1500. Zero or empty
// clears the budget.
func (s *Server) handleSetBudget(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	p := NewRequestBodyParser(r)
	if err := p.Parse(); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	v, err := s.svc.SetBudget(ctx, p.Get("budget"))
	if err != nil {
		if errors.Is(err, core.ErrInvalidAmount) {
			writeError(w, http.StatusUnprocessableEntity, "budget must be a positive number")
			return
		}
		applog.FromContext(ctx).ErrorContext(ctx, "Failed to set budget", applog.FieldError, err)
		writeError(w, http.StatusInternalServerError, "could not save the budget")
		return
	}
	writeJSON(w, http.StatusOK, budgetResponse{Budget: v})
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	tax, err := s.svc.Categories(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "could not load categories")
		return
	}
	writeJSON(w, http.StatusOK, tax)
}

var validationErrors = []struct {
	err error
	msg string
}{
	{core.ErrEmptyTitle, "title is required"},
	{core.ErrTitleTooLong, "title is too long (max 200 characters)"},
	{core.ErrInvalidAmount, "amount must be a positive number"},
	{core.ErrInvalidType, "type must be income or expense"},
	{core.ErrInvalidDate, "date must be in YYYY-MM-DD format"},
}

// validationMessage maps input errors to a user-facing message.
func validationMessage(err error) (string, bool) {
	for _, v := range validationErrors {
		if errors.Is(err, v.err) {
			return v.msg, true
		}
	}
	return "", false
}
