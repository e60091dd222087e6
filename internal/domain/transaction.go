package domain

import "github.com/shopspring/decimal"

// TransactionKind tags a transaction with the stream it came from.
type TransactionKind string

const (
	TransactionKindReceipt TransactionKind = "receipt"
	TransactionKindPayment TransactionKind = "payment"
)

// Transaction is the normalized view of a single receipt or payment.
type Transaction struct {
	Kind     TransactionKind `json:"kind"`
	ID       string          `json:"id"`
	ClientID string          `json:"client_id"`
	Date     Date            `json:"date"`
	Amount   decimal.Decimal `json:"amount"`
	Note     string          `json:"note"`

	// Valid is false when the stored amount was missing or unreadable and
	// Amount was substituted with zero.
	Valid bool `json:"valid"`

	// Exactly one of Receipt or Payment is set, matching Kind.
	Receipt *Receipt `json:"-"`
	Payment *Payment `json:"-"`
}

// ReceiptTransaction normalizes a receipt.
func ReceiptTransaction(r *Receipt) Transaction {
	amount, ok := amountOrZero(r.Amount)
	return Transaction{
		Kind:     TransactionKindReceipt,
		ID:       r.ID,
		ClientID: r.ClientID,
		Date:     r.Date,
		Amount:   amount,
		Note:     r.Note,
		Valid:    ok,
		Receipt:  r,
	}
}

// PaymentTransaction normalizes a payment.
func PaymentTransaction(p *Payment) Transaction {
	amount, ok := amountOrZero(p.Amount)
	return Transaction{
		Kind:     TransactionKindPayment,
		ID:       p.ID,
		ClientID: p.ClientID,
		Date:     p.Date,
		Amount:   amount,
		Note:     p.Note,
		Valid:    ok,
		Payment:  p,
	}
}

// rank orders kinds on the same date: receipts first.
func (k TransactionKind) rank() int {
	if k == TransactionKindReceipt {
		return 0
	}
	return 1
}

// newerFirst reports whether a sorts before b: date descending, then
// receipts before payments, then id ascending.
func newerFirst(a, b Transaction) bool {
	if c := a.Date.Compare(b.Date); c != 0 {
		return c > 0
	}
	if a.Kind != b.Kind {
		return a.Kind.rank() < b.Kind.rank()
	}
	return a.ID < b.ID
}
