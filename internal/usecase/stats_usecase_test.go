package usecase_test

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"

	"github.com/iho/clearledger/internal/domain"
	"github.com/iho/clearledger/internal/usecase"
	"github.com/iho/clearledger/internal/usecase/mocks"
)

// memoryCache is a usecase.Cache backed by a map. TTLs are ignored.
type memoryCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemoryCache() *memoryCache {
	return &memoryCache{data: map[string][]byte{}}
}

func (c *memoryCache) Get(_ context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	v, ok := c.data[key]
	if !ok {
		return nil, usecase.ErrCacheMiss
	}
	return v, nil
}

func (c *memoryCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.data[key] = value
	return nil
}

func (c *memoryCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.data, key)
	return nil
}

func (c *memoryCache) Incr(_ context.Context, key string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	n, _ := strconv.ParseInt(string(c.data[key]), 10, 64)
	n++
	c.data[key] = []byte(strconv.FormatInt(n, 10))
	return n, nil
}

func TestStatsUseCase_GetStats(t *testing.T) {
	t.Run("cache hit", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		cache := mocks.NewMockCache(ctrl)
		cached, _ := json.Marshal(domain.Stats{ClientsCount: 7, Balance: decimal.NewFromInt(42)})
		cache.EXPECT().Get(gomock.Any(), usecase.StatsVersionKey).Return([]byte("3"), nil)
		cache.EXPECT().Get(gomock.Any(), usecase.StatsCacheKey+":3").Return(cached, nil)

		uc := usecase.NewStatsUseCase(nil, nil, nil, nil, cache, time.Minute)

		stats, err := uc.GetStats(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if stats.ClientsCount != 7 || !stats.Balance.Equal(decimal.NewFromInt(42)) {
			t.Fatalf("unexpected stats %+v", stats)
		}
	})

	t.Run("cache miss computes in one transaction and stores", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		txManager, tx := expectCommittedTx(ctrl)
		clientRepo := mocks.NewMockClientRepository(ctrl)
		receiptRepo := mocks.NewMockReceiptRepository(ctrl)
		paymentRepo := mocks.NewMockPaymentRepository(ctrl)
		cache := mocks.NewMockCache(ctrl)

		cache.EXPECT().Get(gomock.Any(), usecase.StatsVersionKey).Return(nil, usecase.ErrCacheMiss)
		cache.EXPECT().Get(gomock.Any(), usecase.StatsCacheKey+":0").Return(nil, usecase.ErrCacheMiss)
		clientRepo.EXPECT().ListAllTx(gomock.Any(), tx).Return([]*domain.Client{{ID: "CL-1"}, {ID: "CL-2"}}, nil)
		receiptRepo.EXPECT().ListAllTx(gomock.Any(), tx).Return([]*domain.Receipt{
			{ID: "RCPT-1", Amount: decimal.NewNullDecimal(decimal.NewFromInt(100))},
		}, nil)
		paymentRepo.EXPECT().ListAllTx(gomock.Any(), tx).Return([]*domain.Payment{
			{ID: "PAY-1", Amount: decimal.NewNullDecimal(decimal.NewFromInt(25))},
		}, nil)
		cache.EXPECT().Set(gomock.Any(), usecase.StatsCacheKey+":0", gomock.Any(), time.Minute).Return(nil)

		uc := usecase.NewStatsUseCase(txManager, clientRepo, receiptRepo, paymentRepo, cache, time.Minute)

		stats, err := uc.GetStats(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if stats.ClientsCount != 2 || !stats.Balance.Equal(decimal.NewFromInt(75)) {
			t.Fatalf("unexpected stats %+v", stats)
		}
	})

	t.Run("cache failure still serves stats", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		txManager, tx := expectCommittedTx(ctrl)
		clientRepo := mocks.NewMockClientRepository(ctrl)
		receiptRepo := mocks.NewMockReceiptRepository(ctrl)
		paymentRepo := mocks.NewMockPaymentRepository(ctrl)
		cache := mocks.NewMockCache(ctrl)

		// Without a version the entry cannot be keyed, so nothing is written.
		cache.EXPECT().Get(gomock.Any(), usecase.StatsVersionKey).Return(nil, errors.New("connection refused"))
		clientRepo.EXPECT().ListAllTx(gomock.Any(), tx).Return(nil, nil)
		receiptRepo.EXPECT().ListAllTx(gomock.Any(), tx).Return(nil, nil)
		paymentRepo.EXPECT().ListAllTx(gomock.Any(), tx).Return(nil, nil)

		uc := usecase.NewStatsUseCase(txManager, clientRepo, receiptRepo, paymentRepo, cache, 0)

		stats, err := uc.GetStats(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if stats.ClientsCount != 0 || !stats.Balance.IsZero() {
			t.Fatalf("expected zero stats, got %+v", stats)
		}
	})

	t.Run("repository error rolls back", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		boom := errors.New("boom")
		txManager, tx := expectRolledBackTx(ctrl)
		clientRepo := mocks.NewMockClientRepository(ctrl)
		clientRepo.EXPECT().ListAllTx(gomock.Any(), tx).Return(nil, boom)

		uc := usecase.NewStatsUseCase(txManager, clientRepo, nil, nil, nil, 0)

		if _, err := uc.GetStats(context.Background()); !errors.Is(err, boom) {
			t.Fatalf("expected boom, got %v", err)
		}
	})
}

// A mutation that lands while stats are being computed must not leave the
// pre-mutation result visible to later readers.
func TestStatsUseCase_GetStats_MutationDuringCompute(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	txManager := mocks.NewMockTransactionManager(ctrl)
	tx := mocks.NewMockTransaction(ctrl)
	txManager.EXPECT().Begin(gomock.Any()).Return(tx, nil).Times(2)
	tx.EXPECT().Commit(gomock.Any()).Return(nil).Times(2)
	tx.EXPECT().Rollback(gomock.Any()).Return(nil).AnyTimes()

	clientRepo := mocks.NewMockClientRepository(ctrl)
	receiptRepo := mocks.NewMockReceiptRepository(ctrl)
	paymentRepo := mocks.NewMockPaymentRepository(ctrl)

	cache := newMemoryCache()
	uc := usecase.NewStatsUseCase(txManager, clientRepo, receiptRepo, paymentRepo, cache, time.Minute)
	ctx := context.Background()

	// First read sees one client, then a second client is created and the
	// cache invalidated before the reader writes its result.
	gomock.InOrder(
		clientRepo.EXPECT().ListAllTx(gomock.Any(), tx).
			DoAndReturn(func(ctx context.Context, _ usecase.Transaction) ([]*domain.Client, error) {
				if err := uc.Invalidate(ctx); err != nil {
					t.Fatalf("invalidate failed: %v", err)
				}
				return []*domain.Client{{ID: "CL-1"}}, nil
			}),
		clientRepo.EXPECT().ListAllTx(gomock.Any(), tx).
			Return([]*domain.Client{{ID: "CL-1"}, {ID: "CL-2"}}, nil),
	)
	receiptRepo.EXPECT().ListAllTx(gomock.Any(), tx).Return(nil, nil).Times(2)
	paymentRepo.EXPECT().ListAllTx(gomock.Any(), tx).Return(nil, nil).Times(2)

	stale, err := uc.GetStats(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stale.ClientsCount != 1 {
		t.Fatalf("expected first read to see 1 client, got %d", stale.ClientsCount)
	}

	fresh, err := uc.GetStats(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fresh.ClientsCount != 2 {
		t.Fatalf("expected stale entry to be bypassed, got %d clients", fresh.ClientsCount)
	}

	// The fresh result is now cached under the bumped version.
	cached, err := uc.GetStats(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cached.ClientsCount != 2 {
		t.Fatalf("expected cached stats with 2 clients, got %d", cached.ClientsCount)
	}
}

func TestStatsUseCase_Invalidate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cache := mocks.NewMockCache(ctrl)
	cache.EXPECT().Incr(gomock.Any(), usecase.StatsVersionKey).Return(int64(4), nil)

	uc := usecase.NewStatsUseCase(nil, nil, nil, nil, cache, 0)

	if err := uc.Invalidate(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := usecase.NewStatsUseCase(nil, nil, nil, nil, nil, 0).Invalidate(context.Background()); err != nil {
		t.Fatalf("expected nil cache to be a no-op, got %v", err)
	}
}
