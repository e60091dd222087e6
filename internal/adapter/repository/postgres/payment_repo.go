package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/iho/clearledger/internal/domain"
	"github.com/iho/clearledger/internal/infrastructure/postgres/generated"
	"github.com/iho/clearledger/internal/usecase"
)

// PaymentRepository implements usecase.PaymentRepository.
type PaymentRepository struct {
	queries *generated.Queries
}

// NewPaymentRepository creates a new PaymentRepository.
func NewPaymentRepository(db generated.DBTX) *PaymentRepository {
	return &PaymentRepository{queries: generated.New(db)}
}

func createPaymentParams(payment *domain.Payment) generated.CreatePaymentParams {
	return generated.CreatePaymentParams{
		ID:        payment.ID,
		ClientID:  payment.ClientID,
		Date:      dateToPgDate(payment.Date),
		Amount:    nullDecimalToNumeric(payment.Amount),
		Method:    string(payment.Method),
		Note:      payment.Note,
		CreatedAt: timeToPgTimestamptz(payment.CreatedAt),
	}
}

// Create creates a new payment.
func (r *PaymentRepository) Create(ctx context.Context, payment *domain.Payment) error {
	return mapClientFK(r.queries.CreatePayment(ctx, createPaymentParams(payment)))
}

// CreateTx creates a payment within a transaction.
func (r *PaymentRepository) CreateTx(ctx context.Context, tx usecase.Transaction, payment *domain.Payment) error {
	return mapClientFK(txQueries(tx).CreatePayment(ctx, createPaymentParams(payment)))
}

// GetByID retrieves a payment by ID.
func (r *PaymentRepository) GetByID(ctx context.Context, id string) (*domain.Payment, error) {
	return getPayment(ctx, r.queries.GetPaymentByID, id)
}

// GetByIDForUpdate retrieves a payment by ID with a FOR UPDATE lock.
func (r *PaymentRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Payment, error) {
	return getPayment(ctx, txQueries(tx).GetPaymentByIDForUpdate, id)
}

func getPayment(ctx context.Context, query func(context.Context, string) (generated.Payment, error), id string) (*domain.Payment, error) {
	row, err := query(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPaymentNotFound
		}

		return nil, err
	}

	return rowToPayment(row), nil
}

// Update stores the editable fields of a payment.
func (r *PaymentRepository) Update(ctx context.Context, payment *domain.Payment) error {
	n, err := r.queries.UpdatePayment(ctx, generated.UpdatePaymentParams{
		ID:     payment.ID,
		Date:   dateToPgDate(payment.Date),
		Amount: nullDecimalToNumeric(payment.Amount),
		Method: string(payment.Method),
		Note:   payment.Note,
	})
	if err != nil {
		return err
	}

	if n == 0 {
		return domain.ErrPaymentNotFound
	}

	return nil
}

// DeleteTx removes a payment within a transaction.
func (r *PaymentRepository) DeleteTx(ctx context.Context, tx usecase.Transaction, id string) error {
	n, err := txQueries(tx).DeletePayment(ctx, id)
	if err != nil {
		return err
	}

	if n == 0 {
		return domain.ErrPaymentNotFound
	}

	return nil
}

// DeleteByClientTx removes every payment of a client within a transaction.
func (r *PaymentRepository) DeleteByClientTx(ctx context.Context, tx usecase.Transaction, clientID string) error {
	_, err := txQueries(tx).DeletePaymentsByClient(ctx, clientID)
	return err
}

// ListByClient lists a client's payments, newest first.
func (r *PaymentRepository) ListByClient(ctx context.Context, clientID string) ([]*domain.Payment, error) {
	rows, err := r.queries.ListPaymentsByClient(ctx, clientID)
	if err != nil {
		return nil, err
	}

	return rowsTo(rows, rowToPayment), nil
}

// ListByClientTx lists a client's payments within a transaction.
func (r *PaymentRepository) ListByClientTx(ctx context.Context, tx usecase.Transaction, clientID string) ([]*domain.Payment, error) {
	rows, err := txQueries(tx).ListPaymentsByClient(ctx, clientID)
	if err != nil {
		return nil, err
	}

	return rowsTo(rows, rowToPayment), nil
}

// List lists payments across all clients, newest first.
func (r *PaymentRepository) List(ctx context.Context, limit, offset int) ([]*domain.Payment, error) {
	rows, err := r.queries.ListPayments(ctx, generated.ListPaymentsParams{
		Limit:  int32(limit),
		Offset: int32(offset),
	})
	if err != nil {
		return nil, err
	}

	return rowsTo(rows, rowToPayment), nil
}

// ListAllTx lists every live payment within a transaction.
func (r *PaymentRepository) ListAllTx(ctx context.Context, tx usecase.Transaction) ([]*domain.Payment, error) {
	rows, err := txQueries(tx).ListAllPayments(ctx)
	if err != nil {
		return nil, err
	}

	return rowsTo(rows, rowToPayment), nil
}
