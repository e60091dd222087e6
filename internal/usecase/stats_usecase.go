package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/clearledger/internal/domain"
)

// StatsUseCase computes organization-wide stats, cached between mutations.
//
// Cached entries are keyed by a version counter that every mutation bumps.
// A reader that computed from a snapshot taken before a mutation writes
// under the version it started with, so the stale result is never served
// after the bump.
type StatsUseCase struct {
	txManager   TransactionManager
	clientRepo  ClientRepository
	receiptRepo ReceiptRepository
	paymentRepo PaymentRepository
	cache       Cache
	ttl         time.Duration
}

// NewStatsUseCase creates a new StatsUseCase. A nil cache disables caching.
func NewStatsUseCase(
	txManager TransactionManager,
	clientRepo ClientRepository,
	receiptRepo ReceiptRepository,
	paymentRepo PaymentRepository,
	cache Cache,
	ttl time.Duration,
) *StatsUseCase {
	if ttl <= 0 {
		ttl = DefaultStatsCacheTTL
	}

	return &StatsUseCase{
		txManager:   txManager,
		clientRepo:  clientRepo,
		receiptRepo: receiptRepo,
		paymentRepo: paymentRepo,
		cache:       cache,
		ttl:         ttl,
	}
}

// GetStats returns cached stats when available, otherwise reduces the full
// dataset and caches the result. Cache failures never fail the request.
func (uc *StatsUseCase) GetStats(ctx context.Context) (*domain.Stats, error) {
	logger := zerolog.Ctx(ctx)

	key, cacheable := uc.cacheKey(ctx)
	if cacheable {
		data, err := uc.cache.Get(ctx, key)
		switch {
		case err == nil:
			var stats domain.Stats
			if err := json.Unmarshal(data, &stats); err == nil {
				return &stats, nil
			}
			logger.Warn().Msg("discarding undecodable cached stats")
		case !errors.Is(err, ErrCacheMiss):
			logger.Warn().Err(err).Msg("stats cache read failed")
		}
	}

	stats, err := uc.compute(ctx)
	if err != nil {
		return nil, err
	}

	if cacheable {
		data, err := json.Marshal(stats)
		if err == nil {
			err = uc.cache.Set(ctx, key, data, uc.ttl)
		}
		if err != nil {
			logger.Warn().Err(err).Msg("stats cache write failed")
		}
	}

	return stats, nil
}

// cacheKey returns the stats key for the current version. It must be read
// before the snapshot is taken.
func (uc *StatsUseCase) cacheKey(ctx context.Context) (string, bool) {
	if uc.cache == nil {
		return "", false
	}

	version := int64(0)
	data, err := uc.cache.Get(ctx, StatsVersionKey)
	switch {
	case err == nil:
		version, err = strconv.ParseInt(string(data), 10, 64)
		if err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Msg("stats cache version is not a number")
			return "", false
		}
	case !errors.Is(err, ErrCacheMiss):
		zerolog.Ctx(ctx).Warn().Err(err).Msg("stats cache version read failed")
		return "", false
	}

	return StatsCacheKey + ":" + strconv.FormatInt(version, 10), true
}

func (uc *StatsUseCase) compute(ctx context.Context) (*domain.Stats, error) {
	var (
		clients  []*domain.Client
		receipts []*domain.Receipt
		payments []*domain.Payment
	)

	err := withTx(ctx, uc.txManager, nil, func(ctx context.Context, tx Transaction) error {
		var err error
		if clients, err = uc.clientRepo.ListAllTx(ctx, tx); err != nil {
			return err
		}
		if receipts, err = uc.receiptRepo.ListAllTx(ctx, tx); err != nil {
			return err
		}
		payments, err = uc.paymentRepo.ListAllTx(ctx, tx)
		return err
	})
	if err != nil {
		return nil, err
	}

	return domain.BuildStats(clients, receipts, payments), nil
}

// Invalidate moves readers to a fresh cache key. Entries under older
// versions expire with their TTL.
func (uc *StatsUseCase) Invalidate(ctx context.Context) error {
	if uc.cache == nil {
		return nil
	}

	_, err := uc.cache.Incr(ctx, StatsVersionKey)
	return err
}
