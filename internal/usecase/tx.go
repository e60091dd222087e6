package usecase

import (
	"context"

	"github.com/rs/zerolog"
)

// withTx runs fn inside a single database transaction bounded by
// DefaultTransactionTimeout. When a retrier is configured the whole unit is
// re-run on transient failures, so fn must not keep state between attempts.
func withTx(ctx context.Context, txManager TransactionManager, retrier Retrier, fn func(ctx context.Context, tx Transaction) error) error {
	attempt := func() error {
		txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
		defer cancel()

		tx, err := txManager.Begin(txCtx)
		if err != nil {
			return err
		}
		defer func() { _ = tx.Rollback(txCtx) }()

		if err := fn(txCtx, tx); err != nil {
			return err
		}

		return tx.Commit(txCtx)
	}

	if retrier == nil {
		return attempt()
	}

	return retrier.Retry(ctx, attempt)
}

// invalidateStats drops cached stats after a mutation. A failure only means
// stats may lag until the cache TTL expires.
func invalidateStats(ctx context.Context, stats StatsInvalidator) {
	if stats == nil {
		return
	}

	if err := stats.Invalidate(ctx); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("failed to invalidate stats cache")
	}
}

func metricsOrNoop(m MetricsRecorder) MetricsRecorder {
	if m == nil {
		return noopMetrics{}
	}
	return m
}
