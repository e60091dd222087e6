package usecase

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/clearledger/internal/domain"
)

// StatementUseCase builds per-client account statements.
type StatementUseCase struct {
	txManager   TransactionManager
	clientRepo  ClientRepository
	receiptRepo ReceiptRepository
	paymentRepo PaymentRepository
	metrics     MetricsRecorder
}

// NewStatementUseCase creates a new StatementUseCase.
func NewStatementUseCase(
	txManager TransactionManager,
	clientRepo ClientRepository,
	receiptRepo ReceiptRepository,
	paymentRepo PaymentRepository,
	metrics MetricsRecorder,
) *StatementUseCase {
	return &StatementUseCase{
		txManager:   txManager,
		clientRepo:  clientRepo,
		receiptRepo: receiptRepo,
		paymentRepo: paymentRepo,
		metrics:     metricsOrNoop(metrics),
	}
}

// GetStatement loads a client with its receipts and payments from a single
// snapshot and folds them into an account statement.
func (uc *StatementUseCase) GetStatement(ctx context.Context, clientID string) (*domain.AccountStatement, error) {
	start := time.Now()

	var (
		client   *domain.Client
		receipts []*domain.Receipt
		payments []*domain.Payment
	)

	err := withTx(ctx, uc.txManager, nil, func(ctx context.Context, tx Transaction) error {
		var err error

		client, err = uc.clientRepo.GetByIDTx(ctx, tx, clientID)
		if err != nil {
			return err
		}

		receipts, err = uc.receiptRepo.ListByClientTx(ctx, tx, clientID)
		if err != nil {
			return err
		}

		payments, err = uc.paymentRepo.ListByClientTx(ctx, tx, clientID)
		return err
	})
	if err != nil {
		return nil, err
	}

	statement, err := domain.BuildStatement(client, receipts, payments)
	if err != nil {
		return nil, err
	}

	if n := len(statement.Malformed); n > 0 {
		zerolog.Ctx(ctx).Warn().
			Str("client_id", clientID).
			Strs("record_ids", statement.Malformed).
			Msg("stored amounts missing or unreadable, counted as zero")
		uc.metrics.RecordMalformedAmounts(n)
	}

	uc.metrics.ObserveStatement(len(statement.Transactions), time.Since(start))

	return statement, nil
}
