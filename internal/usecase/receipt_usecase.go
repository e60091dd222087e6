package usecase

import (
	"context"
	"time"

	"github.com/iho/clearledger/internal/domain"
)

// ReceiptUseCase handles receipt business logic.
type ReceiptUseCase struct {
	txManager   TransactionManager
	retrier     Retrier
	clientRepo  ClientRepository
	receiptRepo ReceiptRepository
	trashRepo   TrashRepository
	idGen       IDGenerator
	stats       StatsInvalidator
	metrics     MetricsRecorder
}

// NewReceiptUseCase creates a new ReceiptUseCase.
func NewReceiptUseCase(
	txManager TransactionManager,
	retrier Retrier,
	clientRepo ClientRepository,
	receiptRepo ReceiptRepository,
	trashRepo TrashRepository,
	idGen IDGenerator,
	stats StatsInvalidator,
	metrics MetricsRecorder,
) *ReceiptUseCase {
	return &ReceiptUseCase{
		txManager:   txManager,
		retrier:     retrier,
		clientRepo:  clientRepo,
		receiptRepo: receiptRepo,
		trashRepo:   trashRepo,
		idGen:       idGen,
		stats:       stats,
		metrics:     metricsOrNoop(metrics),
	}
}

// CreateReceiptInput represents input for creating a receipt.
type CreateReceiptInput struct {
	ClientID string
	Fields   domain.ReceiptFields
}

// CreateReceipt validates and stores a receipt for a live client.
func (uc *ReceiptUseCase) CreateReceipt(ctx context.Context, input CreateReceiptInput) (*domain.Receipt, error) {
	receipt, err := domain.NewReceipt(uc.idGen.Generate(domain.ReceiptIDPrefix), input.ClientID, input.Fields, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	if _, err := uc.clientRepo.GetByID(ctx, input.ClientID); err != nil {
		return nil, err
	}

	if err := uc.receiptRepo.Create(ctx, receipt); err != nil {
		return nil, err
	}

	uc.metrics.RecordMutation("receipt", "create")
	invalidateStats(ctx, uc.stats)

	return receipt, nil
}

// GetReceipt retrieves a receipt by ID.
func (uc *ReceiptUseCase) GetReceipt(ctx context.Context, id string) (*domain.Receipt, error) {
	return uc.receiptRepo.GetByID(ctx, id)
}

// UpdateReceipt replaces the editable fields of a receipt.
func (uc *ReceiptUseCase) UpdateReceipt(ctx context.Context, id string, fields domain.ReceiptFields) (*domain.Receipt, error) {
	receipt, err := uc.receiptRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := receipt.Apply(fields); err != nil {
		return nil, err
	}

	if err := uc.receiptRepo.Update(ctx, receipt); err != nil {
		return nil, err
	}

	uc.metrics.RecordMutation("receipt", "update")
	invalidateStats(ctx, uc.stats)

	return receipt, nil
}

// DeleteReceipt moves a receipt to the trash.
func (uc *ReceiptUseCase) DeleteReceipt(ctx context.Context, id string) (*domain.TrashItem, error) {
	var item *domain.TrashItem

	err := withTx(ctx, uc.txManager, uc.retrier, func(ctx context.Context, tx Transaction) error {
		receipt, err := uc.receiptRepo.GetByIDForUpdate(ctx, tx, id)
		if err != nil {
			return err
		}

		item, err = domain.NewTrashItem(uc.idGen.Generate(domain.TrashItemIDPrefix), domain.TrashItemReceipt, receipt, time.Now().UTC())
		if err != nil {
			return err
		}

		if err := uc.receiptRepo.DeleteTx(ctx, tx, id); err != nil {
			return err
		}

		return uc.trashRepo.CreateTx(ctx, tx, item)
	})
	if err != nil {
		return nil, err
	}

	uc.metrics.RecordMutation("receipt", "delete")
	invalidateStats(ctx, uc.stats)

	return item, nil
}

// ListReceipts lists receipts across all clients, newest first.
func (uc *ReceiptUseCase) ListReceipts(ctx context.Context, limit, offset int) ([]*domain.Receipt, error) {
	limit, offset = domain.ValidatePagination(limit, offset)
	return uc.receiptRepo.List(ctx, limit, offset)
}

// ListClientReceipts lists all receipts of a live client.
func (uc *ReceiptUseCase) ListClientReceipts(ctx context.Context, clientID string) ([]*domain.Receipt, error) {
	if _, err := uc.clientRepo.GetByID(ctx, clientID); err != nil {
		return nil, err
	}

	return uc.receiptRepo.ListByClient(ctx, clientID)
}
