package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	httpAdapter "github.com/iho/clearledger/internal/adapter/http"
	"github.com/iho/clearledger/internal/adapter/http/handler"
	"github.com/iho/clearledger/internal/adapter/http/middleware"
	postgresRepo "github.com/iho/clearledger/internal/adapter/repository/postgres"
	redisRepo "github.com/iho/clearledger/internal/adapter/repository/redis"
	"github.com/iho/clearledger/internal/infrastructure/config"
	"github.com/iho/clearledger/internal/infrastructure/logger"
	"github.com/iho/clearledger/internal/infrastructure/metrics"
	"github.com/iho/clearledger/internal/infrastructure/postgres"
	"github.com/iho/clearledger/internal/infrastructure/redis"
	"github.com/iho/clearledger/internal/report"
	"github.com/iho/clearledger/internal/usecase"
)

const limiterIdleTimeout = 10 * time.Minute

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	if cfg.MigrateOnStart {
		if err := postgres.NewMigrator(cfg.MigrationsPath, cfg.DatabaseURL, log).Up(); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	// Connect to PostgreSQL
	pool, err := postgres.NewPoolWithConfig(ctx, postgres.PoolConfig{
		DatabaseURL:    cfg.DatabaseURL,
		MaxConns:       cfg.DatabaseMaxConns,
		MinConns:       cfg.DatabaseMinConns,
		ConnectTimeout: cfg.DatabaseTimeout,
	})
	if err != nil {
		return fmt.Errorf("connect to postgres: %w", err)
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	// Connect to Redis
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		return fmt.Errorf("connect to redis: %w", err)
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	m := metrics.New(prometheus.DefaultRegisterer)

	// Initialize repositories
	txManager := postgresRepo.NewTxManager(pool)
	retrier := postgresRepo.NewRetrier(log)
	clientRepo := postgresRepo.NewClientRepository(pool)
	receiptRepo := postgresRepo.NewReceiptRepository(pool)
	paymentRepo := postgresRepo.NewPaymentRepository(pool)
	trashRepo := postgresRepo.NewTrashRepository(pool)
	aggregateRepo := postgresRepo.NewAggregateRepository(pool)
	idGen := postgresRepo.NewULIDGenerator()
	cache := redisRepo.NewCache(redisClient)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)

	// Initialize use cases
	statsUC := usecase.NewStatsUseCase(txManager, clientRepo, receiptRepo, paymentRepo, cache, cfg.StatsCacheTTL)
	clientUC := usecase.NewClientUseCase(txManager, retrier, clientRepo, receiptRepo, paymentRepo, trashRepo, idGen, statsUC, m)
	receiptUC := usecase.NewReceiptUseCase(txManager, retrier, clientRepo, receiptRepo, trashRepo, idGen, statsUC, m)
	paymentUC := usecase.NewPaymentUseCase(txManager, retrier, clientRepo, paymentRepo, trashRepo, idGen, statsUC, m)
	trashUC := usecase.NewTrashUseCase(txManager, retrier, clientRepo, receiptRepo, paymentRepo, trashRepo, statsUC, m)
	statementUC := usecase.NewStatementUseCase(txManager, clientRepo, receiptRepo, paymentRepo, m)
	reconciliationUC := usecase.NewReconciliationUseCase(txManager, clientRepo, receiptRepo, paymentRepo, aggregateRepo, m)

	rateLimiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	rateLimiter.OnLimited = m.RecordRateLimited
	go sweepLimiters(ctx, rateLimiter, log)

	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		ClientHandler:    handler.NewClientHandler(clientUC),
		ReceiptHandler:   handler.NewReceiptHandler(receiptUC),
		PaymentHandler:   handler.NewPaymentHandler(paymentUC),
		TrashHandler:     handler.NewTrashHandler(trashUC),
		StatementHandler: handler.NewStatementHandler(statementUC, statsUC, reconciliationUC, statementPDF(cfg)),
		HealthHandler: handler.NewHealthHandler(
			pool.Ping,
			func(ctx context.Context) error { return redisClient.Ping(ctx).Err() },
		),
		Logger:           log,
		IdempotencyStore: idempotencyStore,
		IdempotencyOptions: middleware.IdempotencyOptions{
			TTL:     cfg.IdempotencyTTL,
			Replays: m,
		},
		RateLimiter:    rateLimiter,
		Observer:       m,
		MetricsHandler: promhttp.Handler(),
		CORSOrigins:    cfg.CORSOrigins,
	})

	server := &http.Server{
		Addr:         listenAddr(cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", server.Addr).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	log.Info().Msg("server stopped")
	return nil
}

func statementPDF(cfg *config.Config) *report.StatementPDF {
	var opts []report.Option
	if cfg.PDFFontFile != "" {
		opts = append(opts, report.WithUTF8Font(cfg.PDFFontFile))
	}
	return report.NewStatementPDF(cfg.PDFTitle, opts...)
}

func listenAddr(port string) string {
	if port == "" {
		port = "8080"
	}
	return ":" + port
}

func sweepLimiters(ctx context.Context, rl *middleware.RateLimiter, log zerolog.Logger) {
	ticker := time.NewTicker(limiterIdleTimeout / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := rl.CleanupLimiters(limiterIdleTimeout); n > 0 {
				log.Debug().Int("removed", n).Msg("dropped idle rate limiters")
			}
		}
	}
}
