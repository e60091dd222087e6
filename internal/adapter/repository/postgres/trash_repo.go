package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/iho/clearledger/internal/domain"
	"github.com/iho/clearledger/internal/infrastructure/postgres/generated"
	"github.com/iho/clearledger/internal/usecase"
)

// TrashRepository implements usecase.TrashRepository.
type TrashRepository struct {
	queries *generated.Queries
}

// NewTrashRepository creates a new TrashRepository.
func NewTrashRepository(db generated.DBTX) *TrashRepository {
	return &TrashRepository{queries: generated.New(db)}
}

// CreateTx stores a trash item within a transaction.
func (r *TrashRepository) CreateTx(ctx context.Context, tx usecase.Transaction, item *domain.TrashItem) error {
	return txQueries(tx).CreateTrashItem(ctx, generated.CreateTrashItemParams{
		ID:        item.ID,
		ItemType:  string(item.ItemType),
		Data:      item.Data,
		DeletedAt: timeToPgTimestamptz(item.DeletedAt),
	})
}

// GetByIDForUpdate retrieves a trash item with a FOR UPDATE lock.
func (r *TrashRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.TrashItem, error) {
	row, err := txQueries(tx).GetTrashItemForUpdate(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTrashItemNotFound
		}

		return nil, err
	}

	return rowToTrashItem(row), nil
}

// DeleteTx removes a trash item within a transaction.
func (r *TrashRepository) DeleteTx(ctx context.Context, tx usecase.Transaction, id string) error {
	return deleteTrashItem(ctx, txQueries(tx), id)
}

// Delete permanently removes a trash item.
func (r *TrashRepository) Delete(ctx context.Context, id string) error {
	return deleteTrashItem(ctx, r.queries, id)
}

func deleteTrashItem(ctx context.Context, q *generated.Queries, id string) error {
	n, err := q.DeleteTrashItem(ctx, id)
	if err != nil {
		return err
	}

	if n == 0 {
		return domain.ErrTrashItemNotFound
	}

	return nil
}

// DeleteAll empties the trash.
func (r *TrashRepository) DeleteAll(ctx context.Context) (int64, error) {
	return r.queries.DeleteAllTrashItems(ctx)
}

// List lists trash items, most recently deleted first.
func (r *TrashRepository) List(ctx context.Context, limit, offset int) ([]*domain.TrashItem, error) {
	rows, err := r.queries.ListTrashItems(ctx, generated.ListTrashItemsParams{
		Limit:  int32(limit),
		Offset: int32(offset),
	})
	if err != nil {
		return nil, err
	}

	return rowsTo(rows, rowToTrashItem), nil
}
