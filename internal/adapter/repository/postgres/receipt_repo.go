package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/iho/clearledger/internal/domain"
	"github.com/iho/clearledger/internal/infrastructure/postgres/generated"
	"github.com/iho/clearledger/internal/usecase"
)

// ReceiptRepository implements usecase.ReceiptRepository.
type ReceiptRepository struct {
	queries *generated.Queries
}

// NewReceiptRepository creates a new ReceiptRepository.
func NewReceiptRepository(db generated.DBTX) *ReceiptRepository {
	return &ReceiptRepository{queries: generated.New(db)}
}

func createReceiptParams(receipt *domain.Receipt) generated.CreateReceiptParams {
	return generated.CreateReceiptParams{
		ID:        receipt.ID,
		ClientID:  receipt.ClientID,
		Date:      dateToPgDate(receipt.Date),
		Driver:    receipt.Driver,
		Car:       receipt.Car,
		City:      string(receipt.City),
		Note:      receipt.Note,
		Amount:    nullDecimalToNumeric(receipt.Amount),
		CreatedAt: timeToPgTimestamptz(receipt.CreatedAt),
	}
}

// Create creates a new receipt.
func (r *ReceiptRepository) Create(ctx context.Context, receipt *domain.Receipt) error {
	return mapClientFK(r.queries.CreateReceipt(ctx, createReceiptParams(receipt)))
}

// CreateTx creates a receipt within a transaction.
func (r *ReceiptRepository) CreateTx(ctx context.Context, tx usecase.Transaction, receipt *domain.Receipt) error {
	return mapClientFK(txQueries(tx).CreateReceipt(ctx, createReceiptParams(receipt)))
}

// GetByID retrieves a receipt by ID.
func (r *ReceiptRepository) GetByID(ctx context.Context, id string) (*domain.Receipt, error) {
	return getReceipt(ctx, r.queries.GetReceiptByID, id)
}

// GetByIDForUpdate retrieves a receipt by ID with a FOR UPDATE lock.
func (r *ReceiptRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Receipt, error) {
	return getReceipt(ctx, txQueries(tx).GetReceiptByIDForUpdate, id)
}

func getReceipt(ctx context.Context, query func(context.Context, string) (generated.Receipt, error), id string) (*domain.Receipt, error) {
	row, err := query(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrReceiptNotFound
		}

		return nil, err
	}

	return rowToReceipt(row), nil
}

// Update stores the editable fields of a receipt.
func (r *ReceiptRepository) Update(ctx context.Context, receipt *domain.Receipt) error {
	n, err := r.queries.UpdateReceipt(ctx, generated.UpdateReceiptParams{
		ID:     receipt.ID,
		Date:   dateToPgDate(receipt.Date),
		Driver: receipt.Driver,
		Car:    receipt.Car,
		City:   string(receipt.City),
		Note:   receipt.Note,
		Amount: nullDecimalToNumeric(receipt.Amount),
	})
	if err != nil {
		return err
	}

	if n == 0 {
		return domain.ErrReceiptNotFound
	}

	return nil
}

// DeleteTx removes a receipt within a transaction.
func (r *ReceiptRepository) DeleteTx(ctx context.Context, tx usecase.Transaction, id string) error {
	n, err := txQueries(tx).DeleteReceipt(ctx, id)
	if err != nil {
		return err
	}

	if n == 0 {
		return domain.ErrReceiptNotFound
	}

	return nil
}

// DeleteByClientTx removes every receipt of a client within a transaction.
func (r *ReceiptRepository) DeleteByClientTx(ctx context.Context, tx usecase.Transaction, clientID string) error {
	_, err := txQueries(tx).DeleteReceiptsByClient(ctx, clientID)
	return err
}

// ListByClient lists a client's receipts, newest first.
func (r *ReceiptRepository) ListByClient(ctx context.Context, clientID string) ([]*domain.Receipt, error) {
	rows, err := r.queries.ListReceiptsByClient(ctx, clientID)
	if err != nil {
		return nil, err
	}

	return rowsTo(rows, rowToReceipt), nil
}

// ListByClientTx lists a client's receipts within a transaction.
func (r *ReceiptRepository) ListByClientTx(ctx context.Context, tx usecase.Transaction, clientID string) ([]*domain.Receipt, error) {
	rows, err := txQueries(tx).ListReceiptsByClient(ctx, clientID)
	if err != nil {
		return nil, err
	}

	return rowsTo(rows, rowToReceipt), nil
}

// List lists receipts across all clients, newest first.
func (r *ReceiptRepository) List(ctx context.Context, limit, offset int) ([]*domain.Receipt, error) {
	rows, err := r.queries.ListReceipts(ctx, generated.ListReceiptsParams{
		Limit:  int32(limit),
		Offset: int32(offset),
	})
	if err != nil {
		return nil, err
	}

	return rowsTo(rows, rowToReceipt), nil
}

// ListAllTx lists every live receipt within a transaction.
func (r *ReceiptRepository) ListAllTx(ctx context.Context, tx usecase.Transaction) ([]*domain.Receipt, error) {
	rows, err := txQueries(tx).ListAllReceipts(ctx)
	if err != nil {
		return nil, err
	}

	return rowsTo(rows, rowToReceipt), nil
}
