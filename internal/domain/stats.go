package domain

import "github.com/shopspring/decimal"

// Stats are organization-wide counts and totals.
type Stats struct {
	ClientsCount  int             `json:"clients_count"`
	ReceiptsCount int             `json:"receipts_count"`
	PaymentsCount int             `json:"payments_count"`
	TotalReceipts decimal.Decimal `json:"total_receipts"`
	TotalPayments decimal.Decimal `json:"total_payments"`
	Balance       decimal.Decimal `json:"balance"`
}

// BuildStats reduces the full dataset. Empty input yields all zeros.
func BuildStats(clients []*Client, receipts []*Receipt, payments []*Payment) *Stats {
	totalReceipts, receiptsCount := sumReceipts(receipts)
	totalPayments, paymentsCount := sumPayments(payments)

	clientsCount := 0
	for _, c := range clients {
		if c != nil {
			clientsCount++
		}
	}

	return &Stats{
		ClientsCount:  clientsCount,
		ReceiptsCount: receiptsCount,
		PaymentsCount: paymentsCount,
		TotalReceipts: totalReceipts,
		TotalPayments: totalPayments,
		Balance:       totalReceipts.Sub(totalPayments),
	}
}

// StorageTotals are the same figures as Stats, computed by the storage
// engine. Used to cross-check in-memory aggregation.
type StorageTotals struct {
	ClientsCount  int64
	ReceiptsCount int64
	PaymentsCount int64
	TotalReceipts decimal.Decimal
	TotalPayments decimal.Decimal
	// NullAmounts counts stored receipts and payments without an amount.
	NullAmounts int64
}
