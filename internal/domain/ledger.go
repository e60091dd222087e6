package domain

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// Ledger is a client's receipts and payments merged into one history with
// its totals. Totals are always derived from the records, never stored.
type Ledger struct {
	TotalReceipts decimal.Decimal
	TotalPayments decimal.Decimal
	Balance       decimal.Decimal

	// Transactions is sorted newest first.
	Transactions []Transaction

	// Malformed lists ids of records whose stored amount was missing or
	// unreadable. They are counted as zero.
	Malformed []string
}

// BuildLedger merges receipts and payments and computes the balance
// total_receipts - total_payments. It has no side effects.
func BuildLedger(receipts []*Receipt, payments []*Payment) *Ledger {
	l := &Ledger{
		TotalReceipts: decimal.Zero,
		TotalPayments: decimal.Zero,
		Transactions:  make([]Transaction, 0, len(receipts)+len(payments)),
		Malformed:     []string{},
	}

	for _, r := range receipts {
		if r == nil {
			continue
		}
		l.add(ReceiptTransaction(r))
	}

	for _, p := range payments {
		if p == nil {
			continue
		}
		l.add(PaymentTransaction(p))
	}

	l.Balance = l.TotalReceipts.Sub(l.TotalPayments)

	sort.SliceStable(l.Transactions, func(i, j int) bool {
		return newerFirst(l.Transactions[i], l.Transactions[j])
	})

	return l
}

func (l *Ledger) add(tx Transaction) {
	if !tx.Valid {
		l.Malformed = append(l.Malformed, tx.ID)
	}

	switch tx.Kind {
	case TransactionKindReceipt:
		l.TotalReceipts = l.TotalReceipts.Add(tx.Amount)
	case TransactionKindPayment:
		l.TotalPayments = l.TotalPayments.Add(tx.Amount)
	}

	l.Transactions = append(l.Transactions, tx)
}

// TransactionFilter narrows a transaction list by kind and by an inclusive
// date range. Zero fields match everything.
type TransactionFilter struct {
	Kind TransactionKind
	From Date
	To   Date
}

// Validate rejects unknown kinds and ranges that end before they start.
func (f TransactionFilter) Validate() error {
	if f.Kind != "" && f.Kind != TransactionKindReceipt && f.Kind != TransactionKindPayment {
		return fmt.Errorf("%w: %q", ErrInvalidTransactionKind, f.Kind)
	}
	if !f.From.IsZero() && !f.To.IsZero() && f.To.Before(f.From) {
		return fmt.Errorf("%w: %s is before %s", ErrInvalidDateRange, f.To, f.From)
	}
	return nil
}

// IsZero reports whether the filter matches everything.
func (f TransactionFilter) IsZero() bool {
	return f.Kind == "" && f.From.IsZero() && f.To.IsZero()
}

func (f TransactionFilter) match(kind TransactionKind, date Date) bool {
	if f.Kind != "" && kind != f.Kind {
		return false
	}
	if !f.From.IsZero() && date.Before(f.From) {
		return false
	}
	if !f.To.IsZero() && date.After(f.To) {
		return false
	}
	return true
}

// Apply returns the matching transactions, preserving order.
func (f TransactionFilter) Apply(txs []Transaction) []Transaction {
	out := make([]Transaction, 0, len(txs))
	for _, tx := range txs {
		if f.match(tx.Kind, tx.Date) {
			out = append(out, tx)
		}
	}
	return out
}

func sumReceipts(receipts []*Receipt) (total decimal.Decimal, count int) {
	total = decimal.Zero
	for _, r := range receipts {
		if r == nil {
			continue
		}
		amount, _ := amountOrZero(r.Amount)
		total = total.Add(amount)
		count++
	}
	return total, count
}

func sumPayments(payments []*Payment) (total decimal.Decimal, count int) {
	total = decimal.Zero
	for _, p := range payments {
		if p == nil {
			continue
		}
		amount, _ := amountOrZero(p.Amount)
		total = total.Add(amount)
		count++
	}
	return total, count
}
