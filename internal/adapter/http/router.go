package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/iho/clearledger/internal/adapter/http/handler"
	"github.com/iho/clearledger/internal/adapter/http/middleware"
	"github.com/iho/clearledger/internal/usecase"
)

// RouterConfig holds dependencies for the router. Optional parts are
// skipped when nil.
type RouterConfig struct {
	ClientHandler    *handler.ClientHandler
	ReceiptHandler   *handler.ReceiptHandler
	PaymentHandler   *handler.PaymentHandler
	TrashHandler     *handler.TrashHandler
	StatementHandler *handler.StatementHandler
	HealthHandler    *handler.HealthHandler

	Logger             zerolog.Logger
	IdempotencyStore   usecase.IdempotencyStore
	IdempotencyOptions middleware.IdempotencyOptions
	RateLimiter        *middleware.RateLimiter
	Observer           middleware.HTTPObserver
	MetricsHandler     http.Handler
	CORSOrigins        []string
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Recovery)
	if cfg.Observer != nil {
		r.Use(middleware.Metrics(cfg.Observer))
	}
	if len(cfg.CORSOrigins) > 0 {
		r.Use(middleware.NewCORS(cfg.CORSOrigins))
	}
	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}

	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	r.Route("/api", func(r chi.Router) {
		if cfg.IdempotencyStore != nil {
			idempotency := middleware.NewIdempotencyMiddleware(
				cfg.IdempotencyStore,
				cfg.IdempotencyOptions.TTL,
				cfg.IdempotencyOptions.Replays,
			)
			r.Use(idempotency.Wrap)
		}

		r.Route("/clients", func(r chi.Router) {
			r.Post("/", cfg.ClientHandler.Create)
			r.Get("/", cfg.ClientHandler.List)
			r.Get("/{id}", cfg.ClientHandler.Get)
			r.Put("/{id}", cfg.ClientHandler.Update)
			r.Delete("/{id}", cfg.ClientHandler.Delete)
			r.Get("/{id}/receipts", cfg.ReceiptHandler.ListByClient)
			r.Get("/{id}/payments", cfg.PaymentHandler.ListByClient)
			r.Get("/{id}/account", cfg.StatementHandler.Statement)
			r.Get("/{id}/account.pdf", cfg.StatementHandler.StatementPDF)
		})

		r.Route("/receipts", func(r chi.Router) {
			r.Post("/", cfg.ReceiptHandler.Create)
			r.Get("/", cfg.ReceiptHandler.List)
			r.Get("/{id}", cfg.ReceiptHandler.Get)
			r.Put("/{id}", cfg.ReceiptHandler.Update)
			r.Delete("/{id}", cfg.ReceiptHandler.Delete)
		})

		r.Route("/payments", func(r chi.Router) {
			r.Post("/", cfg.PaymentHandler.Create)
			r.Get("/", cfg.PaymentHandler.List)
			r.Get("/{id}", cfg.PaymentHandler.Get)
			r.Put("/{id}", cfg.PaymentHandler.Update)
			r.Delete("/{id}", cfg.PaymentHandler.Delete)
		})

		r.Route("/trash", func(r chi.Router) {
			r.Get("/", cfg.TrashHandler.List)
			r.Delete("/", cfg.TrashHandler.Empty)
			r.Post("/{id}/restore", cfg.TrashHandler.Restore)
			r.Delete("/{id}", cfg.TrashHandler.Purge)
		})

		r.Get("/enums", handler.Enums)
		r.Get("/stats", cfg.StatementHandler.Stats)
		r.Get("/reconciliation", cfg.StatementHandler.Reconciliation)
	})

	return r
}
