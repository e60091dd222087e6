package generated

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const getTotals = `-- name: GetTotals :one
SELECT
    (SELECT COUNT(*) FROM clients)::bigint AS clients_count,
    (SELECT COUNT(*) FROM receipts)::bigint AS receipts_count,
    (SELECT COUNT(*) FROM payments)::bigint AS payments_count,
    (SELECT COALESCE(SUM(amount) FILTER (WHERE amount <> 'NaN'), 0) FROM receipts)::numeric AS total_receipts,
    (SELECT COALESCE(SUM(amount) FILTER (WHERE amount <> 'NaN'), 0) FROM payments)::numeric AS total_payments,
    ((SELECT COUNT(*) FROM receipts WHERE amount IS NULL OR amount = 'NaN')
        + (SELECT COUNT(*) FROM payments WHERE amount IS NULL OR amount = 'NaN'))::bigint AS null_amounts
`

type GetTotalsRow struct {
	ClientsCount  int64          `json:"clients_count"`
	ReceiptsCount int64          `json:"receipts_count"`
	PaymentsCount int64          `json:"payments_count"`
	TotalReceipts pgtype.Numeric `json:"total_receipts"`
	TotalPayments pgtype.Numeric `json:"total_payments"`
	NullAmounts   int64          `json:"null_amounts"`
}

func (q *Queries) GetTotals(ctx context.Context) (GetTotalsRow, error) {
	row := q.db.QueryRow(ctx, getTotals)
	var i GetTotalsRow
	err := row.Scan(
		&i.ClientsCount,
		&i.ReceiptsCount,
		&i.PaymentsCount,
		&i.TotalReceipts,
		&i.TotalPayments,
		&i.NullAmounts,
	)
	return i, err
}
