package usecase

import (
	"context"
	"time"

	"github.com/iho/clearledger/internal/domain"
)

// PaymentUseCase handles payment business logic.
type PaymentUseCase struct {
	txManager   TransactionManager
	retrier     Retrier
	clientRepo  ClientRepository
	paymentRepo PaymentRepository
	trashRepo   TrashRepository
	idGen       IDGenerator
	stats       StatsInvalidator
	metrics     MetricsRecorder
}

// NewPaymentUseCase creates a new PaymentUseCase.
func NewPaymentUseCase(
	txManager TransactionManager,
	retrier Retrier,
	clientRepo ClientRepository,
	paymentRepo PaymentRepository,
	trashRepo TrashRepository,
	idGen IDGenerator,
	stats StatsInvalidator,
	metrics MetricsRecorder,
) *PaymentUseCase {
	return &PaymentUseCase{
		txManager:   txManager,
		retrier:     retrier,
		clientRepo:  clientRepo,
		paymentRepo: paymentRepo,
		trashRepo:   trashRepo,
		idGen:       idGen,
		stats:       stats,
		metrics:     metricsOrNoop(metrics),
	}
}

// CreatePaymentInput represents input for creating a payment.
type CreatePaymentInput struct {
	ClientID string
	Fields   domain.PaymentFields
}

// CreatePayment validates and stores a payment for a live client.
func (uc *PaymentUseCase) CreatePayment(ctx context.Context, input CreatePaymentInput) (*domain.Payment, error) {
	payment, err := domain.NewPayment(uc.idGen.Generate(domain.PaymentIDPrefix), input.ClientID, input.Fields, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	if _, err := uc.clientRepo.GetByID(ctx, input.ClientID); err != nil {
		return nil, err
	}

	if err := uc.paymentRepo.Create(ctx, payment); err != nil {
		return nil, err
	}

	uc.metrics.RecordMutation("payment", "create")
	invalidateStats(ctx, uc.stats)

	return payment, nil
}

// GetPayment retrieves a payment by ID.
func (uc *PaymentUseCase) GetPayment(ctx context.Context, id string) (*domain.Payment, error) {
	return uc.paymentRepo.GetByID(ctx, id)
}

// UpdatePayment replaces the editable fields of a payment.
func (uc *PaymentUseCase) UpdatePayment(ctx context.Context, id string, fields domain.PaymentFields) (*domain.Payment, error) {
	payment, err := uc.paymentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := payment.Apply(fields); err != nil {
		return nil, err
	}

	if err := uc.paymentRepo.Update(ctx, payment); err != nil {
		return nil, err
	}

	uc.metrics.RecordMutation("payment", "update")
	invalidateStats(ctx, uc.stats)

	return payment, nil
}

// DeletePayment moves a payment to the trash.
func (uc *PaymentUseCase) DeletePayment(ctx context.Context, id string) (*domain.TrashItem, error) {
	var item *domain.TrashItem

	err := withTx(ctx, uc.txManager, uc.retrier, func(ctx context.Context, tx Transaction) error {
		payment, err := uc.paymentRepo.GetByIDForUpdate(ctx, tx, id)
		if err != nil {
			return err
		}

		item, err = domain.NewTrashItem(uc.idGen.Generate(domain.TrashItemIDPrefix), domain.TrashItemPayment, payment, time.Now().UTC())
		if err != nil {
			return err
		}

		if err := uc.paymentRepo.DeleteTx(ctx, tx, id); err != nil {
			return err
		}

		return uc.trashRepo.CreateTx(ctx, tx, item)
	})
	if err != nil {
		return nil, err
	}

	uc.metrics.RecordMutation("payment", "delete")
	invalidateStats(ctx, uc.stats)

	return item, nil
}

// ListPayments lists payments across all clients, newest first.
func (uc *PaymentUseCase) ListPayments(ctx context.Context, limit, offset int) ([]*domain.Payment, error) {
	limit, offset = domain.ValidatePagination(limit, offset)
	return uc.paymentRepo.List(ctx, limit, offset)
}

// ListClientPayments lists all payments of a live client.
func (uc *PaymentUseCase) ListClientPayments(ctx context.Context, clientID string) ([]*domain.Payment, error) {
	if _, err := uc.clientRepo.GetByID(ctx, clientID); err != nil {
		return nil, err
	}

	return uc.paymentRepo.ListByClient(ctx, clientID)
}
