package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// PaymentIDPrefix prefixes generated payment identifiers.
const PaymentIDPrefix = "PAY-"

// PaymentMethod is how a client paid.
type PaymentMethod string

const (
	PaymentMethodCash         PaymentMethod = "cash"
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
	PaymentMethodCheck        PaymentMethod = "check"
	PaymentMethodCreditCard   PaymentMethod = "credit_card"
)

var methodLabels = map[PaymentMethod]string{
	PaymentMethodCash:         "نقدي",
	PaymentMethodBankTransfer: "تحويل بنكي",
	PaymentMethodCheck:        "شيك",
	PaymentMethodCreditCard:   "بطاقة ائتمان",
}

// PaymentMethods lists the supported methods in display order.
func PaymentMethods() []PaymentMethod {
	return []PaymentMethod{PaymentMethodCash, PaymentMethodBankTransfer, PaymentMethodCheck, PaymentMethodCreditCard}
}

// ParsePaymentMethod accepts a canonical code or its Arabic label. An empty
// value defaults to cash.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return PaymentMethodCash, nil
	}

	if m := PaymentMethod(strings.ToLower(s)); methodLabels[m] != "" {
		return m, nil
	}

	for m, label := range methodLabels {
		if label == s {
			return m, nil
		}
	}

	return "", fmt.Errorf("%w: %q", ErrInvalidMethod, s)
}

// Label returns the Arabic display label.
func (m PaymentMethod) Label() string { return methodLabels[m] }

// Payment is money received from a client. It decreases the client's
// balance.
type Payment struct {
	ID        string              `json:"id"`
	ClientID  string              `json:"client_id"`
	Date      Date                `json:"date"`
	Amount    decimal.NullDecimal `json:"amount"`
	Method    PaymentMethod       `json:"method"`
	Note      string              `json:"note"`
	CreatedAt time.Time           `json:"created_at"`
}

// PaymentFields is the raw, user-supplied part of a payment.
type PaymentFields struct {
	Date   string
	Amount string
	Method string
	Note   string
}

// NewPayment validates fields and builds a payment for clientID.
func NewPayment(id, clientID string, fields PaymentFields, now time.Time) (*Payment, error) {
	if strings.TrimSpace(clientID) == "" {
		return nil, ErrMissingClientID
	}

	p := &Payment{ID: id, ClientID: clientID, CreatedAt: now}
	if err := p.Apply(fields); err != nil {
		return nil, err
	}
	return p, nil
}

// Apply validates fields and, when all are valid, replaces the editable
// part of the payment. On error the payment is left untouched.
func (p *Payment) Apply(fields PaymentFields) error {
	date, err := ParseDate(fields.Date)
	if err != nil {
		return err
	}

	amount, err := ParseAmount(fields.Amount)
	if err != nil {
		return err
	}

	if err := ValidatePaymentAmount(amount); err != nil {
		return err
	}

	method, err := ParsePaymentMethod(fields.Method)
	if err != nil {
		return err
	}

	if err := ValidateLength("note", fields.Note, MaxNoteLength); err != nil {
		return err
	}

	p.Date = date
	p.Amount = decimal.NewNullDecimal(amount)
	p.Method = method
	p.Note = strings.TrimSpace(fields.Note)

	return nil
}
