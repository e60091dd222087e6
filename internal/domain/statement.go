package domain

import "github.com/shopspring/decimal"

// AccountStatement is the client-facing summary: who, how much, and the
// full history. It is derived on every request and never persisted.
type AccountStatement struct {
	Client        *Client
	TotalReceipts decimal.Decimal
	TotalPayments decimal.Decimal
	Balance       decimal.Decimal
	Transactions  []Transaction
	Receipts      []*Receipt
	Payments      []*Payment
	Malformed     []string
}

// BuildStatement packages a client with its ledger. A nil client yields
// ErrClientNotFound.
func BuildStatement(client *Client, receipts []*Receipt, payments []*Payment) (*AccountStatement, error) {
	if client == nil {
		return nil, ErrClientNotFound
	}

	ledger := BuildLedger(receipts, payments)

	if receipts == nil {
		receipts = []*Receipt{}
	}
	if payments == nil {
		payments = []*Payment{}
	}

	return &AccountStatement{
		Client:        client,
		TotalReceipts: ledger.TotalReceipts,
		TotalPayments: ledger.TotalPayments,
		Balance:       ledger.Balance,
		Transactions:  ledger.Transactions,
		Receipts:      receipts,
		Payments:      payments,
		Malformed:     ledger.Malformed,
	}, nil
}

// Narrow returns a copy listing only the records that match f. Totals and
// the balance still cover the whole account.
func (s *AccountStatement) Narrow(f TransactionFilter) *AccountStatement {
	if f.IsZero() {
		return s
	}

	out := *s
	out.Transactions = f.Apply(s.Transactions)

	out.Receipts = make([]*Receipt, 0, len(s.Receipts))
	for _, r := range s.Receipts {
		if f.match(TransactionKindReceipt, r.Date) {
			out.Receipts = append(out.Receipts, r)
		}
	}

	out.Payments = make([]*Payment, 0, len(s.Payments))
	for _, p := range s.Payments {
		if f.match(TransactionKindPayment, p.Date) {
			out.Payments = append(out.Payments, p)
		}
	}

	return &out
}
