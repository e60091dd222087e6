package usecase

import (
	"context"
	"time"

	"github.com/iho/clearledger/internal/domain"
)

// ClientUseCase handles client business logic.
type ClientUseCase struct {
	txManager   TransactionManager
	retrier     Retrier
	clientRepo  ClientRepository
	receiptRepo ReceiptRepository
	paymentRepo PaymentRepository
	trashRepo   TrashRepository
	idGen       IDGenerator
	stats       StatsInvalidator
	metrics     MetricsRecorder
}

// NewClientUseCase creates a new ClientUseCase.
func NewClientUseCase(
	txManager TransactionManager,
	retrier Retrier,
	clientRepo ClientRepository,
	receiptRepo ReceiptRepository,
	paymentRepo PaymentRepository,
	trashRepo TrashRepository,
	idGen IDGenerator,
	stats StatsInvalidator,
	metrics MetricsRecorder,
) *ClientUseCase {
	return &ClientUseCase{
		txManager:   txManager,
		retrier:     retrier,
		clientRepo:  clientRepo,
		receiptRepo: receiptRepo,
		paymentRepo: paymentRepo,
		trashRepo:   trashRepo,
		idGen:       idGen,
		stats:       stats,
		metrics:     metricsOrNoop(metrics),
	}
}

// ClientInput represents input for creating or updating a client.
type ClientInput struct {
	Name    string
	Phone   string
	Company string
}

func (in ClientInput) fields() domain.ClientFields {
	return domain.ClientFields{Name: in.Name, Phone: in.Phone, Company: in.Company}
}

// CreateClient validates and stores a new client.
func (uc *ClientUseCase) CreateClient(ctx context.Context, input ClientInput) (*domain.Client, error) {
	client, err := domain.NewClient(uc.idGen.Generate(domain.ClientIDPrefix), input.fields(), time.Now().UTC())
	if err != nil {
		return nil, err
	}

	if err := uc.clientRepo.Create(ctx, client); err != nil {
		return nil, err
	}

	uc.metrics.RecordMutation("client", "create")
	invalidateStats(ctx, uc.stats)

	return client, nil
}

// GetClient retrieves a client by ID.
func (uc *ClientUseCase) GetClient(ctx context.Context, id string) (*domain.Client, error) {
	return uc.clientRepo.GetByID(ctx, id)
}

// UpdateClient replaces the editable fields of a client.
func (uc *ClientUseCase) UpdateClient(ctx context.Context, id string, input ClientInput) (*domain.Client, error) {
	client, err := uc.clientRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := client.Apply(input.fields()); err != nil {
		return nil, err
	}

	if err := uc.clientRepo.Update(ctx, client); err != nil {
		return nil, err
	}

	uc.metrics.RecordMutation("client", "update")

	return client, nil
}

// ListClientsInput represents input for listing clients.
type ListClientsInput struct {
	Query  string
	Limit  int
	Offset int
}

// ListClients lists clients, optionally filtered by a search query.
func (uc *ClientUseCase) ListClients(ctx context.Context, input ListClientsInput) ([]*domain.Client, error) {
	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)

	return uc.clientRepo.List(ctx, domain.ClientFilter{
		Query:  input.Query,
		Limit:  limit,
		Offset: offset,
	})
}

// DeleteClient moves a client to the trash together with its receipts and
// payments. All of it happens in one transaction.
func (uc *ClientUseCase) DeleteClient(ctx context.Context, id string) (*domain.TrashItem, error) {
	var item *domain.TrashItem

	err := withTx(ctx, uc.txManager, uc.retrier, func(ctx context.Context, tx Transaction) error {
		client, err := uc.clientRepo.GetByIDForUpdate(ctx, tx, id)
		if err != nil {
			return err
		}

		receipts, err := uc.receiptRepo.ListByClientTx(ctx, tx, id)
		if err != nil {
			return err
		}

		payments, err := uc.paymentRepo.ListByClientTx(ctx, tx, id)
		if err != nil {
			return err
		}

		item, err = domain.NewTrashItem(
			uc.idGen.Generate(domain.TrashItemIDPrefix),
			domain.TrashItemClient,
			domain.ClientSnapshot{Client: client, Receipts: receipts, Payments: payments},
			time.Now().UTC(),
		)
		if err != nil {
			return err
		}

		if err := uc.receiptRepo.DeleteByClientTx(ctx, tx, id); err != nil {
			return err
		}

		if err := uc.paymentRepo.DeleteByClientTx(ctx, tx, id); err != nil {
			return err
		}

		if err := uc.clientRepo.DeleteTx(ctx, tx, id); err != nil {
			return err
		}

		return uc.trashRepo.CreateTx(ctx, tx, item)
	})
	if err != nil {
		return nil, err
	}

	uc.metrics.RecordMutation("client", "delete")
	invalidateStats(ctx, uc.stats)

	return item, nil
}
