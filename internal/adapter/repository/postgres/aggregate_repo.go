package postgres

import (
	"context"

	"github.com/iho/clearledger/internal/domain"
	"github.com/iho/clearledger/internal/infrastructure/postgres/generated"
	"github.com/iho/clearledger/internal/usecase"
)

// AggregateRepository implements usecase.AggregateRepository.
type AggregateRepository struct {
	queries *generated.Queries
}

// NewAggregateRepository creates a new AggregateRepository.
func NewAggregateRepository(db generated.DBTX) *AggregateRepository {
	return &AggregateRepository{queries: generated.New(db)}
}

// TotalsTx returns counts and sums computed by the database within a
// transaction. NULL and NaN amounts are excluded from the sums and counted
// in NullAmounts.
func (r *AggregateRepository) TotalsTx(ctx context.Context, tx usecase.Transaction) (domain.StorageTotals, error) {
	row, err := txQueries(tx).GetTotals(ctx)
	if err != nil {
		return domain.StorageTotals{}, err
	}

	return domain.StorageTotals{
		ClientsCount:  row.ClientsCount,
		ReceiptsCount: row.ReceiptsCount,
		PaymentsCount: row.PaymentsCount,
		TotalReceipts: numericToDecimal(row.TotalReceipts),
		TotalPayments: numericToDecimal(row.TotalPayments),
		NullAmounts:   row.NullAmounts,
	}, nil
}
