package usecase

import (
	"context"
	"fmt"

	"github.com/iho/clearledger/internal/domain"
)

// TrashUseCase handles listing, restoring and purging soft-deleted records.
type TrashUseCase struct {
	txManager   TransactionManager
	retrier     Retrier
	clientRepo  ClientRepository
	receiptRepo ReceiptRepository
	paymentRepo PaymentRepository
	trashRepo   TrashRepository
	stats       StatsInvalidator
	metrics     MetricsRecorder
}

// NewTrashUseCase creates a new TrashUseCase.
func NewTrashUseCase(
	txManager TransactionManager,
	retrier Retrier,
	clientRepo ClientRepository,
	receiptRepo ReceiptRepository,
	paymentRepo PaymentRepository,
	trashRepo TrashRepository,
	stats StatsInvalidator,
	metrics MetricsRecorder,
) *TrashUseCase {
	return &TrashUseCase{
		txManager:   txManager,
		retrier:     retrier,
		clientRepo:  clientRepo,
		receiptRepo: receiptRepo,
		paymentRepo: paymentRepo,
		trashRepo:   trashRepo,
		stats:       stats,
		metrics:     metricsOrNoop(metrics),
	}
}

// ListTrash lists trash items, most recently deleted first.
func (uc *TrashUseCase) ListTrash(ctx context.Context, limit, offset int) ([]*domain.TrashItem, error) {
	limit, offset = domain.ValidatePagination(limit, offset)
	return uc.trashRepo.List(ctx, limit, offset)
}

// RestoreItem puts a trashed record back in place and removes it from the
// trash. A restored client brings back the receipts and payments deleted
// with it; a receipt or payment can only be restored while its client is live.
func (uc *TrashUseCase) RestoreItem(ctx context.Context, id string) (*domain.TrashItem, error) {
	var item *domain.TrashItem

	err := withTx(ctx, uc.txManager, uc.retrier, func(ctx context.Context, tx Transaction) error {
		var err error

		item, err = uc.trashRepo.GetByIDForUpdate(ctx, tx, id)
		if err != nil {
			return err
		}

		switch item.ItemType {
		case domain.TrashItemClient:
			err = uc.restoreClient(ctx, tx, item)
		case domain.TrashItemReceipt:
			err = uc.restoreReceipt(ctx, tx, item)
		case domain.TrashItemPayment:
			err = uc.restorePayment(ctx, tx, item)
		default:
			err = fmt.Errorf("%w: %s", domain.ErrUnknownTrashItemType, item.ItemType)
		}
		if err != nil {
			return err
		}

		return uc.trashRepo.DeleteTx(ctx, tx, id)
	})
	if err != nil {
		return nil, err
	}

	uc.metrics.RecordMutation(string(item.ItemType), "restore")
	invalidateStats(ctx, uc.stats)

	return item, nil
}

func (uc *TrashUseCase) restoreClient(ctx context.Context, tx Transaction, item *domain.TrashItem) error {
	snap, err := item.ClientSnapshot()
	if err != nil {
		return err
	}

	if err := uc.clientRepo.CreateTx(ctx, tx, snap.Client); err != nil {
		return err
	}

	for _, r := range snap.Receipts {
		if err := uc.receiptRepo.CreateTx(ctx, tx, r); err != nil {
			return fmt.Errorf("failed to restore receipt %s: %w", r.ID, err)
		}
	}

	for _, p := range snap.Payments {
		if err := uc.paymentRepo.CreateTx(ctx, tx, p); err != nil {
			return fmt.Errorf("failed to restore payment %s: %w", p.ID, err)
		}
	}

	return nil
}

func (uc *TrashUseCase) restoreReceipt(ctx context.Context, tx Transaction, item *domain.TrashItem) error {
	receipt, err := item.Receipt()
	if err != nil {
		return err
	}

	if _, err := uc.clientRepo.GetByIDTx(ctx, tx, receipt.ClientID); err != nil {
		return err
	}

	return uc.receiptRepo.CreateTx(ctx, tx, receipt)
}

func (uc *TrashUseCase) restorePayment(ctx context.Context, tx Transaction, item *domain.TrashItem) error {
	payment, err := item.Payment()
	if err != nil {
		return err
	}

	if _, err := uc.clientRepo.GetByIDTx(ctx, tx, payment.ClientID); err != nil {
		return err
	}

	return uc.paymentRepo.CreateTx(ctx, tx, payment)
}

// PurgeItem permanently deletes a single trash item.
func (uc *TrashUseCase) PurgeItem(ctx context.Context, id string) error {
	if err := uc.trashRepo.Delete(ctx, id); err != nil {
		return err
	}

	uc.metrics.RecordMutation("trash", "purge")

	return nil
}

// EmptyTrash permanently deletes every trash item and reports how many were removed.
func (uc *TrashUseCase) EmptyTrash(ctx context.Context) (int64, error) {
	n, err := uc.trashRepo.DeleteAll(ctx)
	if err != nil {
		return 0, err
	}

	uc.metrics.RecordMutation("trash", "empty")

	return n, nil
}
