package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"

	"github.com/iho/clearledger/internal/domain"
	"github.com/iho/clearledger/internal/usecase"
	"github.com/iho/clearledger/internal/usecase/mocks"
)

func amount(v int64) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.NewFromInt(v))
}

type reconciliationMocks struct {
	txManager     *mocks.MockTransactionManager
	tx            *mocks.MockTransaction
	clientRepo    *mocks.MockClientRepository
	receiptRepo   *mocks.MockReceiptRepository
	paymentRepo   *mocks.MockPaymentRepository
	aggregateRepo *mocks.MockAggregateRepository
}

func newReconciliationMocks(ctrl *gomock.Controller) *reconciliationMocks {
	return &reconciliationMocks{
		txManager:     mocks.NewMockTransactionManager(ctrl),
		tx:            mocks.NewMockTransaction(ctrl),
		clientRepo:    mocks.NewMockClientRepository(ctrl),
		receiptRepo:   mocks.NewMockReceiptRepository(ctrl),
		paymentRepo:   mocks.NewMockPaymentRepository(ctrl),
		aggregateRepo: mocks.NewMockAggregateRepository(ctrl),
	}
}

func (m *reconciliationMocks) useCase() *usecase.ReconciliationUseCase {
	return usecase.NewReconciliationUseCase(m.txManager, m.clientRepo, m.receiptRepo, m.paymentRepo, m.aggregateRepo, nil)
}

// expectSnapshot requires every read to run on the same transaction, in
// order, between Begin and Commit.
func (m *reconciliationMocks) expectSnapshot(
	clients []*domain.Client,
	receipts []*domain.Receipt,
	payments []*domain.Payment,
	totals domain.StorageTotals,
) {
	m.tx.EXPECT().Rollback(gomock.Any()).Return(nil).AnyTimes()
	gomock.InOrder(
		m.txManager.EXPECT().Begin(gomock.Any()).Return(m.tx, nil),
		m.clientRepo.EXPECT().ListAllTx(gomock.Any(), m.tx).Return(clients, nil),
		m.receiptRepo.EXPECT().ListAllTx(gomock.Any(), m.tx).Return(receipts, nil),
		m.paymentRepo.EXPECT().ListAllTx(gomock.Any(), m.tx).Return(payments, nil),
		m.aggregateRepo.EXPECT().TotalsTx(gomock.Any(), m.tx).Return(totals, nil),
		m.tx.EXPECT().Commit(gomock.Any()).Return(nil),
	)
}

func (m *reconciliationMocks) expectFixture(totals domain.StorageTotals) {
	m.expectSnapshot(
		[]*domain.Client{{ID: "CL-1"}, {ID: "CL-2"}},
		[]*domain.Receipt{
			{ID: "RCPT-1", ClientID: "CL-1", Amount: amount(100)},
			{ID: "RCPT-2", ClientID: "CL-2", Amount: amount(50)},
		},
		[]*domain.Payment{{ID: "PAY-1", ClientID: "CL-1", Amount: amount(30)}},
		totals,
	)
}

func TestGenerateReconciliationReport_Consistent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	m := newReconciliationMocks(ctrl)
	m.expectFixture(domain.StorageTotals{
		ClientsCount:  2,
		ReceiptsCount: 2,
		PaymentsCount: 1,
		TotalReceipts: decimal.NewFromInt(150),
		TotalPayments: decimal.NewFromInt(30),
	})

	report, err := m.useCase().GenerateReconciliationReport(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !report.Consistent {
		t.Fatalf("expected consistent report, got discrepancies %+v", report.Discrepancies)
	}

	if !report.Stats.Balance.Equal(decimal.NewFromInt(120)) {
		t.Fatalf("expected balance 120, got %s", report.Stats.Balance)
	}

	if report.CheckedAt.IsZero() {
		t.Fatal("expected CheckedAt timestamp to be set")
	}
}

func TestGenerateReconciliationReport_DetectsMismatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	m := newReconciliationMocks(ctrl)
	m.expectFixture(domain.StorageTotals{
		ClientsCount:  2,
		ReceiptsCount: 3,
		PaymentsCount: 1,
		TotalReceipts: decimal.NewFromInt(175),
		TotalPayments: decimal.NewFromInt(30),
	})

	report, err := m.useCase().GenerateReconciliationReport(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if report.Consistent {
		t.Fatal("expected inconsistent report")
	}

	fields := map[string]usecase.Discrepancy{}
	for _, d := range report.Discrepancies {
		fields[d.Field] = d
	}

	if _, ok := fields["receipts_count"]; !ok {
		t.Fatalf("expected receipts_count discrepancy, got %+v", report.Discrepancies)
	}

	if d := fields["total_receipts"]; d.InMemory != "150.00" || d.Storage != "175.00" {
		t.Fatalf("unexpected total_receipts discrepancy %+v", d)
	}
}

func TestGenerateReconciliationReport_FlagsMalformedRecords(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	m := newReconciliationMocks(ctrl)
	m.expectSnapshot(
		[]*domain.Client{{ID: "CL-1"}},
		[]*domain.Receipt{{ID: "RCPT-NULL", ClientID: "CL-1"}},
		nil,
		domain.StorageTotals{ClientsCount: 1, ReceiptsCount: 1, NullAmounts: 1},
	)

	report, err := m.useCase().GenerateReconciliationReport(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if report.Consistent {
		t.Fatal("expected malformed record to make the report inconsistent")
	}

	if len(report.MalformedRecords) != 1 || report.MalformedRecords[0] != "RCPT-NULL" {
		t.Fatalf("unexpected malformed records %v", report.MalformedRecords)
	}

	if report.NullAmounts != 1 {
		t.Fatalf("expected 1 null amount, got %d", report.NullAmounts)
	}
}

func TestGenerateReconciliationReport_PropagatesError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	boom := errors.New("boom")
	m := newReconciliationMocks(ctrl)
	m.txManager.EXPECT().Begin(gomock.Any()).Return(m.tx, nil)
	m.clientRepo.EXPECT().ListAllTx(gomock.Any(), m.tx).Return(nil, boom)
	m.tx.EXPECT().Rollback(gomock.Any()).Return(nil)

	if _, err := m.useCase().GenerateReconciliationReport(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
}

func TestGenerateReconciliationReport_BeginFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	boom := errors.New("pool exhausted")
	m := newReconciliationMocks(ctrl)
	m.txManager.EXPECT().Begin(gomock.Any()).Return(nil, boom)

	if _, err := m.useCase().GenerateReconciliationReport(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected begin error, got %v", err)
	}
}
