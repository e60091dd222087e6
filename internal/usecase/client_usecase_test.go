package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"

	"github.com/iho/clearledger/internal/domain"
	"github.com/iho/clearledger/internal/usecase"
	"github.com/iho/clearledger/internal/usecase/mocks"
)

// expectCommittedTx wires a transaction manager whose single transaction
// is expected to commit.
func expectCommittedTx(ctrl *gomock.Controller) (*mocks.MockTransactionManager, *mocks.MockTransaction) {
	txManager := mocks.NewMockTransactionManager(ctrl)
	tx := mocks.NewMockTransaction(ctrl)

	txManager.EXPECT().Begin(gomock.Any()).Return(tx, nil)
	tx.EXPECT().Commit(gomock.Any()).Return(nil)
	tx.EXPECT().Rollback(gomock.Any()).Return(nil).AnyTimes()

	return txManager, tx
}

// expectRolledBackTx wires a transaction manager whose single transaction
// must never commit.
func expectRolledBackTx(ctrl *gomock.Controller) (*mocks.MockTransactionManager, *mocks.MockTransaction) {
	txManager := mocks.NewMockTransactionManager(ctrl)
	tx := mocks.NewMockTransaction(ctrl)

	txManager.EXPECT().Begin(gomock.Any()).Return(tx, nil)
	tx.EXPECT().Rollback(gomock.Any()).Return(nil)

	return txManager, tx
}

func newStatsInvalidator(ctrl *gomock.Controller) *mocks.MockStatsInvalidator {
	stats := mocks.NewMockStatsInvalidator(ctrl)
	stats.EXPECT().Invalidate(gomock.Any()).Return(nil).AnyTimes()
	return stats
}

func TestClientUseCase_CreateClient(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	clientRepo := mocks.NewMockClientRepository(ctrl)
	idGen := mocks.NewMockIDGenerator(ctrl)
	stats := mocks.NewMockStatsInvalidator(ctrl)

	idGen.EXPECT().Generate(domain.ClientIDPrefix).Return("CL-01")
	clientRepo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, c *domain.Client) error {
			if c.ID != "CL-01" || c.Name != "Dar Al Salam" {
				t.Fatalf("unexpected client %+v", c)
			}
			return nil
		},
	)
	stats.EXPECT().Invalidate(gomock.Any()).Return(nil)

	uc := usecase.NewClientUseCase(nil, nil, clientRepo, nil, nil, nil, idGen, stats, nil)

	client, err := uc.CreateClient(context.Background(), usecase.ClientInput{Name: "  Dar Al Salam ", Phone: "0750"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client.CreatedAt.IsZero() {
		t.Fatal("expected CreatedAt to be set")
	}
}

func TestClientUseCase_CreateClient_RejectsEmptyName(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	idGen := mocks.NewMockIDGenerator(ctrl)
	idGen.EXPECT().Generate(gomock.Any()).Return("CL-01")

	// No repository expectations: nothing may be persisted.
	uc := usecase.NewClientUseCase(nil, nil, mocks.NewMockClientRepository(ctrl), nil, nil, nil, idGen, nil, nil)

	_, err := uc.CreateClient(context.Background(), usecase.ClientInput{Name: " "})
	if !errors.Is(err, domain.ErrInvalidClientName) {
		t.Fatalf("expected ErrInvalidClientName, got %v", err)
	}
}

func TestClientUseCase_ListClients_ClampsPagination(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	clientRepo := mocks.NewMockClientRepository(ctrl)
	clientRepo.EXPECT().List(gomock.Any(), domain.ClientFilter{
		Query:  "noor",
		Limit:  domain.MaxPageSize,
		Offset: 0,
	}).Return([]*domain.Client{{ID: "CL-1"}}, nil)

	uc := usecase.NewClientUseCase(nil, nil, clientRepo, nil, nil, nil, nil, nil, nil)

	clients, err := uc.ListClients(context.Background(), usecase.ListClientsInput{Query: "noor", Limit: 1_000_000, Offset: -4})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(clients) != 1 {
		t.Fatalf("expected 1 client, got %d", len(clients))
	}
}

func TestClientUseCase_DeleteClient_CascadesIntoSnapshot(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	txManager, tx := expectCommittedTx(ctrl)
	clientRepo := mocks.NewMockClientRepository(ctrl)
	receiptRepo := mocks.NewMockReceiptRepository(ctrl)
	paymentRepo := mocks.NewMockPaymentRepository(ctrl)
	trashRepo := mocks.NewMockTrashRepository(ctrl)
	idGen := mocks.NewMockIDGenerator(ctrl)

	client := &domain.Client{ID: "CL-1", Name: "Client"}
	receipts := []*domain.Receipt{{
		ID: "RCPT-1", ClientID: "CL-1", Date: domain.MustParseDate("2025-01-01"),
		Amount: decimal.NewNullDecimal(decimal.NewFromInt(100)),
	}}
	payments := []*domain.Payment{{
		ID: "PAY-1", ClientID: "CL-1", Date: domain.MustParseDate("2025-01-02"),
		Amount: decimal.NewNullDecimal(decimal.NewFromInt(40)),
	}}

	idGen.EXPECT().Generate(domain.TrashItemIDPrefix).Return("TR-1")

	gomock.InOrder(
		clientRepo.EXPECT().GetByIDForUpdate(gomock.Any(), tx, "CL-1").Return(client, nil),
		receiptRepo.EXPECT().ListByClientTx(gomock.Any(), tx, "CL-1").Return(receipts, nil),
		paymentRepo.EXPECT().ListByClientTx(gomock.Any(), tx, "CL-1").Return(payments, nil),
		receiptRepo.EXPECT().DeleteByClientTx(gomock.Any(), tx, "CL-1").Return(nil),
		paymentRepo.EXPECT().DeleteByClientTx(gomock.Any(), tx, "CL-1").Return(nil),
		clientRepo.EXPECT().DeleteTx(gomock.Any(), tx, "CL-1").Return(nil),
		trashRepo.EXPECT().CreateTx(gomock.Any(), tx, gomock.Any()).Return(nil),
	)

	uc := usecase.NewClientUseCase(txManager, nil, clientRepo, receiptRepo, paymentRepo, trashRepo, idGen, newStatsInvalidator(ctrl), nil)

	item, err := uc.DeleteClient(context.Background(), "CL-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if item.ItemType != domain.TrashItemClient {
		t.Fatalf("expected client trash item, got %s", item.ItemType)
	}

	snap, err := item.ClientSnapshot()
	if err != nil {
		t.Fatalf("snapshot decode failed: %v", err)
	}
	if len(snap.Receipts) != 1 || len(snap.Payments) != 1 {
		t.Fatalf("expected cascade to capture 1 receipt and 1 payment, got %d/%d", len(snap.Receipts), len(snap.Payments))
	}
}

func TestClientUseCase_DeleteClient_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	txManager, tx := expectRolledBackTx(ctrl)
	clientRepo := mocks.NewMockClientRepository(ctrl)
	clientRepo.EXPECT().GetByIDForUpdate(gomock.Any(), tx, "missing").Return(nil, domain.ErrClientNotFound)

	uc := usecase.NewClientUseCase(txManager, nil, clientRepo, nil, nil, nil, nil, nil, nil)

	_, err := uc.DeleteClient(context.Background(), "missing")
	if !errors.Is(err, domain.ErrClientNotFound) {
		t.Fatalf("expected ErrClientNotFound, got %v", err)
	}
}

func TestClientUseCase_DeleteClient_UsesRetrier(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	txManager := mocks.NewMockTransactionManager(ctrl)
	retrier := mocks.NewMockRetrier(ctrl)

	transient := errors.New("serialization failure")
	retrier.EXPECT().Retry(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, op func() error) error {
			if err := op(); !errors.Is(err, transient) {
				t.Fatalf("expected transient error from first attempt, got %v", err)
			}
			return transient
		},
	)
	txManager.EXPECT().Begin(gomock.Any()).Return(nil, transient)

	uc := usecase.NewClientUseCase(txManager, retrier, nil, nil, nil, nil, nil, nil, nil)

	if _, err := uc.DeleteClient(context.Background(), "CL-1"); !errors.Is(err, transient) {
		t.Fatalf("expected transient error, got %v", err)
	}
}

func TestClientUseCase_UpdateClient(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	clientRepo := mocks.NewMockClientRepository(ctrl)
	existing := &domain.Client{ID: "CL-1", Name: "Old", CreatedAt: time.Now()}

	clientRepo.EXPECT().GetByID(gomock.Any(), "CL-1").Return(existing, nil)
	clientRepo.EXPECT().Update(gomock.Any(), existing).Return(nil)

	uc := usecase.NewClientUseCase(nil, nil, clientRepo, nil, nil, nil, nil, nil, nil)

	updated, err := uc.UpdateClient(context.Background(), "CL-1", usecase.ClientInput{Name: "New", Company: "Acme"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Name != "New" || updated.Company != "Acme" {
		t.Fatalf("unexpected client %+v", updated)
	}
}
