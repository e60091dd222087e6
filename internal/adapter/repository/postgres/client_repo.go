package postgres

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/iho/clearledger/internal/domain"
	"github.com/iho/clearledger/internal/infrastructure/postgres/generated"
	"github.com/iho/clearledger/internal/usecase"
)

// ClientRepository implements usecase.ClientRepository.
type ClientRepository struct {
	queries *generated.Queries
}

// NewClientRepository creates a new ClientRepository.
func NewClientRepository(db generated.DBTX) *ClientRepository {
	return &ClientRepository{queries: generated.New(db)}
}

func createClientParams(client *domain.Client) generated.CreateClientParams {
	return generated.CreateClientParams{
		ID:        client.ID,
		Name:      client.Name,
		Phone:     client.Phone,
		Company:   client.Company,
		CreatedAt: timeToPgTimestamptz(client.CreatedAt),
	}
}

// Create creates a new client.
func (r *ClientRepository) Create(ctx context.Context, client *domain.Client) error {
	return r.queries.CreateClient(ctx, createClientParams(client))
}

// CreateTx creates a client within a transaction.
func (r *ClientRepository) CreateTx(ctx context.Context, tx usecase.Transaction, client *domain.Client) error {
	return txQueries(tx).CreateClient(ctx, createClientParams(client))
}

// GetByID retrieves a client by ID.
func (r *ClientRepository) GetByID(ctx context.Context, id string) (*domain.Client, error) {
	return getClient(ctx, r.queries.GetClientByID, id)
}

// GetByIDTx retrieves a client by ID within a transaction.
func (r *ClientRepository) GetByIDTx(ctx context.Context, tx usecase.Transaction, id string) (*domain.Client, error) {
	return getClient(ctx, txQueries(tx).GetClientByID, id)
}

// GetByIDForUpdate retrieves a client by ID with a FOR UPDATE lock.
func (r *ClientRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Client, error) {
	return getClient(ctx, txQueries(tx).GetClientByIDForUpdate, id)
}

func getClient(ctx context.Context, query func(context.Context, string) (generated.Client, error), id string) (*domain.Client, error) {
	row, err := query(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrClientNotFound
		}

		return nil, err
	}

	return rowToClient(row), nil
}

// Update stores the editable fields of a client.
func (r *ClientRepository) Update(ctx context.Context, client *domain.Client) error {
	n, err := r.queries.UpdateClient(ctx, generated.UpdateClientParams{
		ID:      client.ID,
		Name:    client.Name,
		Phone:   client.Phone,
		Company: client.Company,
	})
	if err != nil {
		return err
	}

	if n == 0 {
		return domain.ErrClientNotFound
	}

	return nil
}

// DeleteTx removes a client within a transaction.
func (r *ClientRepository) DeleteTx(ctx context.Context, tx usecase.Transaction, id string) error {
	n, err := txQueries(tx).DeleteClient(ctx, id)
	if err != nil {
		return err
	}

	if n == 0 {
		return domain.ErrClientNotFound
	}

	return nil
}

// List lists clients matching the filter, newest first.
func (r *ClientRepository) List(ctx context.Context, filter domain.ClientFilter) ([]*domain.Client, error) {
	rows, err := r.queries.ListClients(ctx, generated.ListClientsParams{
		Query: escapeLike(strings.TrimSpace(filter.Query)),
		Lim:   int32(filter.Limit),
		Off:   int32(filter.Offset),
	})
	if err != nil {
		return nil, err
	}

	return rowsTo(rows, rowToClient), nil
}

// ListAllTx lists every live client within a transaction.
func (r *ClientRepository) ListAllTx(ctx context.Context, tx usecase.Transaction) ([]*domain.Client, error) {
	rows, err := txQueries(tx).ListAllClients(ctx)
	if err != nil {
		return nil, err
	}

	return rowsTo(rows, rowToClient), nil
}
