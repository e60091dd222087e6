package dto

import (
	"bytes"
	"encoding/json"

	"github.com/iho/clearledger/internal/domain"
	"github.com/iho/clearledger/internal/usecase"
)

// AmountInput accepts an amount sent either as a JSON string or a JSON
// number. The text is kept verbatim and validated by domain.ParseAmount.
type AmountInput string

// UnmarshalJSON implements json.Unmarshaler.
func (a *AmountInput) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	switch {
	case bytes.Equal(data, []byte("null")):
		*a = ""
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = AmountInput(s)
	default:
		*a = AmountInput(data)
	}

	return nil
}

// ClientRequest represents a request to create or update a client.
type ClientRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Company string `json:"company"`
}

// ToUseCaseInput converts to use case input.
func (r *ClientRequest) ToUseCaseInput() usecase.ClientInput {
	return usecase.ClientInput{
		Name:    r.Name,
		Phone:   r.Phone,
		Company: r.Company,
	}
}

// ReceiptRequest represents a request to create or update a receipt.
// ClientID is ignored on update.
type ReceiptRequest struct {
	ClientID string      `json:"client_id"`
	Date     string      `json:"date"`
	Driver   string      `json:"driver"`
	Car      string      `json:"car"`
	City     string      `json:"city"`
	Note     string      `json:"note"`
	Amount   AmountInput `json:"amount"`
}

// Fields returns the editable receipt fields.
func (r *ReceiptRequest) Fields() domain.ReceiptFields {
	return domain.ReceiptFields{
		Date:   r.Date,
		Driver: r.Driver,
		Car:    r.Car,
		City:   r.City,
		Note:   r.Note,
		Amount: string(r.Amount),
	}
}

// ToUseCaseInput converts to use case input.
func (r *ReceiptRequest) ToUseCaseInput() usecase.CreateReceiptInput {
	return usecase.CreateReceiptInput{
		ClientID: r.ClientID,
		Fields:   r.Fields(),
	}
}

// PaymentRequest represents a request to create or update a payment.
// ClientID is ignored on update. An empty method means cash.
type PaymentRequest struct {
	ClientID string      `json:"client_id"`
	Date     string      `json:"date"`
	Amount   AmountInput `json:"amount"`
	Method   string      `json:"method"`
	Note     string      `json:"note"`
}

// Fields returns the editable payment fields.
func (r *PaymentRequest) Fields() domain.PaymentFields {
	return domain.PaymentFields{
		Date:   r.Date,
		Amount: string(r.Amount),
		Method: r.Method,
		Note:   r.Note,
	}
}

// ToUseCaseInput converts to use case input.
func (r *PaymentRequest) ToUseCaseInput() usecase.CreatePaymentInput {
	return usecase.CreatePaymentInput{
		ClientID: r.ClientID,
		Fields:   r.Fields(),
	}
}
