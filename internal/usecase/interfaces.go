package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/iho/clearledger/internal/domain"
)

// ClientRepository defines data access for clients.
type ClientRepository interface {
	Create(ctx context.Context, client *domain.Client) error
	CreateTx(ctx context.Context, tx Transaction, client *domain.Client) error
	GetByID(ctx context.Context, id string) (*domain.Client, error)
	GetByIDTx(ctx context.Context, tx Transaction, id string) (*domain.Client, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.Client, error)
	Update(ctx context.Context, client *domain.Client) error
	DeleteTx(ctx context.Context, tx Transaction, id string) error
	List(ctx context.Context, filter domain.ClientFilter) ([]*domain.Client, error)
	ListAllTx(ctx context.Context, tx Transaction) ([]*domain.Client, error)
}

// ReceiptRepository defines data access for receipts.
type ReceiptRepository interface {
	Create(ctx context.Context, receipt *domain.Receipt) error
	CreateTx(ctx context.Context, tx Transaction, receipt *domain.Receipt) error
	GetByID(ctx context.Context, id string) (*domain.Receipt, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.Receipt, error)
	Update(ctx context.Context, receipt *domain.Receipt) error
	DeleteTx(ctx context.Context, tx Transaction, id string) error
	DeleteByClientTx(ctx context.Context, tx Transaction, clientID string) error
	ListByClient(ctx context.Context, clientID string) ([]*domain.Receipt, error)
	ListByClientTx(ctx context.Context, tx Transaction, clientID string) ([]*domain.Receipt, error)
	List(ctx context.Context, limit, offset int) ([]*domain.Receipt, error)
	ListAllTx(ctx context.Context, tx Transaction) ([]*domain.Receipt, error)
}

// PaymentRepository defines data access for payments.
type PaymentRepository interface {
	Create(ctx context.Context, payment *domain.Payment) error
	CreateTx(ctx context.Context, tx Transaction, payment *domain.Payment) error
	GetByID(ctx context.Context, id string) (*domain.Payment, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.Payment, error)
	Update(ctx context.Context, payment *domain.Payment) error
	DeleteTx(ctx context.Context, tx Transaction, id string) error
	DeleteByClientTx(ctx context.Context, tx Transaction, clientID string) error
	ListByClient(ctx context.Context, clientID string) ([]*domain.Payment, error)
	ListByClientTx(ctx context.Context, tx Transaction, clientID string) ([]*domain.Payment, error)
	List(ctx context.Context, limit, offset int) ([]*domain.Payment, error)
	ListAllTx(ctx context.Context, tx Transaction) ([]*domain.Payment, error)
}

// TrashRepository defines data access for soft-deleted records.
type TrashRepository interface {
	CreateTx(ctx context.Context, tx Transaction, item *domain.TrashItem) error
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.TrashItem, error)
	DeleteTx(ctx context.Context, tx Transaction, id string) error
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) (int64, error)
	List(ctx context.Context, limit, offset int) ([]*domain.TrashItem, error)
}

// AggregateRepository exposes totals computed by the database.
type AggregateRepository interface {
	TotalsTx(ctx context.Context, tx Transaction) (domain.StorageTotals, error)
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// Retrier re-runs an operation on transient storage failures.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// IDGenerator generates unique, prefixed IDs.
type IDGenerator interface {
	Generate(prefix string) string
}

// ErrCacheMiss is returned by Cache.Get when the key is absent.
var ErrCacheMiss = errors.New("cache miss")

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	// Incr atomically increments an integer counter, creating it at 1.
	Incr(ctx context.Context, key string) (int64, error)
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
	// Release drops a claimed key so the request can be retried.
	Release(ctx context.Context, key string) error
}

// StatsInvalidator drops cached organization-wide stats.
type StatsInvalidator interface {
	Invalidate(ctx context.Context) error
}

// MetricsRecorder receives business-level measurements.
type MetricsRecorder interface {
	RecordMutation(entity, operation string)
	ObserveStatement(transactions int, duration time.Duration)
	RecordMalformedAmounts(count int)
}

type noopMetrics struct{}

func (noopMetrics) RecordMutation(string, string)       {}
func (noopMetrics) ObserveStatement(int, time.Duration) {}
func (noopMetrics) RecordMalformedAmounts(int)          {}
