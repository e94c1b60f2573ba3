package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	applog "neotrack/internal/log"
	"neotrack/internal/middleware/ratelimit"
	"neotrack/internal/middleware/security"
	"neotrack/internal/middleware/trace"
	"neotrack/internal/services"
)

// Server is the JSON API in front of the ledger service.
type Server struct {
	http.Server
	svc      *services.LedgerService
	logger   *applog.Logger
	detector *security.Detector
	limiter  *ratelimit.Limiter
	tracer   *trace.Middleware
	started  time.Time

	shutdownOnce sync.Once
}

type Option func(*Server)

func WithLogger(l *applog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l.WithComponent(applog.ComponentHTTP)
		}
	}
}

// WithRateLimit replaces the default per-client rate limit.
func WithRateLimit(cfg ratelimit.Config) Option {
	return func(s *Server) {
		s.limiter.Stop()
		s.limiter = ratelimit.NewLimiter(cfg)
	}
}

// NewServer configures routes and middleware, returning a ready-to-run
// http.Server.
func NewServer(addr string, svc *services.LedgerService, opts ...Option) *Server {
	s := &Server{
		Server: http.Server{
			Addr:              addr,
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      15 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
		svc:      svc,
		logger:   applog.FromContext(context.Background()).WithComponent(applog.ComponentHTTP),
		detector: security.NewDetector(),
		limiter:  ratelimit.NewLimiter(ratelimit.DefaultConfig()),
		started:  time.Now(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.tracer = trace.NewMiddleware(s.detector.ExtractClientIP)
	s.Handler = s.routes()
	return s
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(applog.Middleware(s.logger))
	r.Use(s.tracer.Middleware)
	r.Use(security.NewHeadersMiddleware(security.DefaultHeadersConfig()).Middleware)
	r.Use(s.detector.Middleware)

	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", s.handleReady)

	r.Route("/api", func(r chi.Router) {
		r.Use(s.limiter.Middleware(s.detector.ExtractClientIP, func(w http.ResponseWriter, r *http.Request) {
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded, please try again later")
		}))

		r.Get("/transactions", s.handleListTransactions)
		r.Post("/transactions", s.handleCreateTransaction)
		r.Delete("/transactions/{id}", s.handleDeleteTransaction)

		r.Get("/summary", s.handleSummary)
		r.Get("/breakdown", s.handleBreakdown)
		r.Get("/dashboard", s.handleDashboard)

		r.Get("/budget", s.handleGetBudget)
		r.Put("/budget", s.handleSetBudget)

		r.Get("/categories", s.handleCategories)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})
	return r
}

// Shutdown stops background work and then the listener.
func (s *Server) Shutdown(ctx context.Context) error {
	s.shutdownOnce.Do(func() {
		s.limiter.Stop()
		s.logger.InfoContext(ctx, "HTTP server shutting down",
			applog.FieldOperation, applog.OpShutdown,
			"total_requests", s.tracer.GetMetrics().TotalRequests,
			"suspicious_requests", s.detector.GetMetrics().SuspiciousRequests)
	})
	return s.Server.Shutdown(ctx)
}
