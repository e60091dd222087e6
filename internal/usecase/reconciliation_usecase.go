package usecase

import (
	"context"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/clearledger/internal/domain"
)

// ReconciliationUseCase cross-checks in-memory aggregation against totals
// computed by the database.
type ReconciliationUseCase struct {
	txManager     TransactionManager
	clientRepo    ClientRepository
	receiptRepo   ReceiptRepository
	paymentRepo   PaymentRepository
	aggregateRepo AggregateRepository
	metrics       MetricsRecorder
}

// NewReconciliationUseCase creates a new reconciliation use case
func NewReconciliationUseCase(
	txManager TransactionManager,
	clientRepo ClientRepository,
	receiptRepo ReceiptRepository,
	paymentRepo PaymentRepository,
	aggregateRepo AggregateRepository,
	metrics MetricsRecorder,
) *ReconciliationUseCase {
	return &ReconciliationUseCase{
		txManager:     txManager,
		clientRepo:    clientRepo,
		receiptRepo:   receiptRepo,
		paymentRepo:   paymentRepo,
		aggregateRepo: aggregateRepo,
		metrics:       metricsOrNoop(metrics),
	}
}

// Discrepancy is a figure on which the two computations disagree.
type Discrepancy struct {
	Field    string `json:"field"`
	InMemory string `json:"in_memory"`
	Storage  string `json:"storage"`
}

// ReconciliationReport represents a full reconciliation report
type ReconciliationReport struct {
	Stats            *domain.Stats `json:"stats"`
	Consistent       bool          `json:"consistent"`
	Discrepancies    []Discrepancy `json:"discrepancies"`
	MalformedRecords []string      `json:"malformed_records"`
	NullAmounts      int64         `json:"null_amounts"`
	CheckedAt        time.Time     `json:"checked_at"`
}

// GenerateReconciliationReport reduces the full dataset in memory, asks the
// database for the same figures and reports every mismatch along with
// records whose stored amount is missing or unreadable.
func (uc *ReconciliationUseCase) GenerateReconciliationReport(ctx context.Context) (*ReconciliationReport, error) {
	var (
		clients  []*domain.Client
		receipts []*domain.Receipt
		payments []*domain.Payment
		totals   domain.StorageTotals
	)

	// Both sides must see one snapshot or concurrent writes show up as
	// discrepancies.
	err := withTx(ctx, uc.txManager, nil, func(ctx context.Context, tx Transaction) error {
		var err error
		if clients, err = uc.clientRepo.ListAllTx(ctx, tx); err != nil {
			return err
		}
		if receipts, err = uc.receiptRepo.ListAllTx(ctx, tx); err != nil {
			return err
		}
		if payments, err = uc.paymentRepo.ListAllTx(ctx, tx); err != nil {
			return err
		}
		totals, err = uc.aggregateRepo.TotalsTx(ctx, tx)
		return err
	})
	if err != nil {
		return nil, err
	}

	stats := domain.BuildStats(clients, receipts, payments)
	ledger := domain.BuildLedger(receipts, payments)

	report := &ReconciliationReport{
		Stats:            stats,
		Discrepancies:    make([]Discrepancy, 0),
		MalformedRecords: ledger.Malformed,
		NullAmounts:      totals.NullAmounts,
		CheckedAt:        time.Now().UTC(),
	}

	compareCount := func(field string, mem int, db int64) {
		if int64(mem) != db {
			report.Discrepancies = append(report.Discrepancies, Discrepancy{
				Field:    field,
				InMemory: strconv.Itoa(mem),
				Storage:  strconv.FormatInt(db, 10),
			})
		}
	}

	compareCount("clients_count", stats.ClientsCount, totals.ClientsCount)
	compareCount("receipts_count", stats.ReceiptsCount, totals.ReceiptsCount)
	compareCount("payments_count", stats.PaymentsCount, totals.PaymentsCount)

	if !stats.TotalReceipts.Equal(totals.TotalReceipts) {
		report.Discrepancies = append(report.Discrepancies, Discrepancy{
			Field:    "total_receipts",
			InMemory: domain.FormatAmount(stats.TotalReceipts),
			Storage:  domain.FormatAmount(totals.TotalReceipts),
		})
	}

	if !stats.TotalPayments.Equal(totals.TotalPayments) {
		report.Discrepancies = append(report.Discrepancies, Discrepancy{
			Field:    "total_payments",
			InMemory: domain.FormatAmount(stats.TotalPayments),
			Storage:  domain.FormatAmount(totals.TotalPayments),
		})
	}

	report.Consistent = len(report.Discrepancies) == 0 && len(report.MalformedRecords) == 0

	if !report.Consistent {
		zerolog.Ctx(ctx).Warn().
			Int("discrepancies", len(report.Discrepancies)).
			Int("malformed", len(report.MalformedRecords)).
			Msg("reconciliation found inconsistencies")
	}

	if n := len(report.MalformedRecords); n > 0 {
		uc.metrics.RecordMalformedAmounts(n)
	}

	return report, nil
}
