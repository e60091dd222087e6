package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/iho/clearledger/internal/adapter/http/dto"
	"github.com/iho/clearledger/internal/domain"
	"github.com/iho/clearledger/internal/usecase"
)

type receiptServiceStub struct {
	usecaseReceipts
	createFn func(ctx context.Context, input usecase.CreateReceiptInput) (*domain.Receipt, error)
	updateFn func(ctx context.Context, id string, fields domain.ReceiptFields) (*domain.Receipt, error)
	listFn   func(ctx context.Context, clientID string) ([]*domain.Receipt, error)
}

// usecaseReceipts satisfies the methods a test does not exercise.
type usecaseReceipts interface {
	GetReceipt(ctx context.Context, id string) (*domain.Receipt, error)
	DeleteReceipt(ctx context.Context, id string) (*domain.TrashItem, error)
	ListReceipts(ctx context.Context, limit, offset int) ([]*domain.Receipt, error)
}

func (s *receiptServiceStub) CreateReceipt(ctx context.Context, input usecase.CreateReceiptInput) (*domain.Receipt, error) {
	return s.createFn(ctx, input)
}

func (s *receiptServiceStub) UpdateReceipt(ctx context.Context, id string, fields domain.ReceiptFields) (*domain.Receipt, error) {
	return s.updateFn(ctx, id, fields)
}

func (s *receiptServiceStub) ListClientReceipts(ctx context.Context, clientID string) ([]*domain.Receipt, error) {
	return s.listFn(ctx, clientID)
}

type paymentServiceStub struct {
	usecasePayments
	createFn func(ctx context.Context, input usecase.CreatePaymentInput) (*domain.Payment, error)
}

type usecasePayments interface {
	GetPayment(ctx context.Context, id string) (*domain.Payment, error)
	UpdatePayment(ctx context.Context, id string, fields domain.PaymentFields) (*domain.Payment, error)
	DeletePayment(ctx context.Context, id string) (*domain.TrashItem, error)
	ListPayments(ctx context.Context, limit, offset int) ([]*domain.Payment, error)
	ListClientPayments(ctx context.Context, clientID string) ([]*domain.Payment, error)
}

func (s *paymentServiceStub) CreatePayment(ctx context.Context, input usecase.CreatePaymentInput) (*domain.Payment, error) {
	return s.createFn(ctx, input)
}

func TestReceiptHandler_Create(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		err    error
		status int
	}{
		{"created", `{"client_id":"CL-1","date":"2025-01-09","driver":"Karim","car":"12","city":"erbil","amount":"125.50"}`, nil, http.StatusCreated},
		{"negative amount", `{"client_id":"CL-1","amount":"-1"}`, domain.ErrNegativeAmount, http.StatusBadRequest},
		{"unknown client", `{"client_id":"CL-404","amount":"1"}`, domain.ErrClientNotFound, http.StatusNotFound},
		{"malformed body", `{"client_id":`, nil, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewReceiptHandler(&receiptServiceStub{
				createFn: func(ctx context.Context, input usecase.CreateReceiptInput) (*domain.Receipt, error) {
					if tt.err != nil {
						return nil, tt.err
					}
					if input.Fields.Amount != "125.50" || input.Fields.City != "erbil" {
						t.Fatalf("unexpected input %+v", input)
					}
					return &domain.Receipt{
						ID:       "RCPT-1",
						ClientID: input.ClientID,
						Date:     domain.MustParseDate(input.Fields.Date),
						City:     domain.CityErbil,
						Amount:   decimal.NewNullDecimal(decimal.RequireFromString(input.Fields.Amount)),
					}, nil
				},
			})

			req := httptest.NewRequest(http.MethodPost, "/api/receipts", bytes.NewBufferString(tt.body))
			rec := httptest.NewRecorder()

			handler.Create(rec, req)

			if rec.Code != tt.status {
				t.Fatalf("expected %d, got %d: %s", tt.status, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestReceiptHandler_Update_UsesPathID(t *testing.T) {
	handler := NewReceiptHandler(&receiptServiceStub{
		updateFn: func(ctx context.Context, id string, fields domain.ReceiptFields) (*domain.Receipt, error) {
			if id != "RCPT-7" {
				t.Fatalf("expected path id RCPT-7, got %s", id)
			}
			return &domain.Receipt{ID: id, Amount: decimal.NewNullDecimal(decimal.NewFromInt(5))}, nil
		},
	})

	req := httptest.NewRequest(http.MethodPut, "/api/receipts/RCPT-7", bytes.NewBufferString(`{"client_id":"ignored","amount":5}`))
	req = setChiURLParam(req, "id", "RCPT-7")
	rec := httptest.NewRecorder()

	handler.Update(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp dto.ReceiptResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Amount == nil || *resp.Amount != "5.00" {
		t.Fatalf("expected formatted amount, got %v", resp.Amount)
	}
}

func TestReceiptHandler_ListByClient_NotFound(t *testing.T) {
	handler := NewReceiptHandler(&receiptServiceStub{
		listFn: func(ctx context.Context, clientID string) ([]*domain.Receipt, error) {
			return nil, domain.ErrClientNotFound
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/clients/CL-404/receipts", nil)
	req = setChiURLParam(req, "id", "CL-404")
	rec := httptest.NewRecorder()

	handler.ListByClient(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestPaymentHandler_Create_RejectsZeroAmount(t *testing.T) {
	handler := NewPaymentHandler(&paymentServiceStub{
		createFn: func(ctx context.Context, input usecase.CreatePaymentInput) (*domain.Payment, error) {
			if input.Fields.Amount != "0" {
				t.Fatalf("expected raw amount 0, got %q", input.Fields.Amount)
			}
			return nil, domain.ErrNonPositiveAmount
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/api/payments", bytes.NewBufferString(`{"client_id":"CL-1","date":"2025-01-10","amount":0}`))
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestPaymentHandler_Create_DefaultsMethodDownstream(t *testing.T) {
	handler := NewPaymentHandler(&paymentServiceStub{
		createFn: func(ctx context.Context, input usecase.CreatePaymentInput) (*domain.Payment, error) {
			return domain.NewPayment("PAY-1", input.ClientID, input.Fields, domain.MustParseDate("2025-01-10").Time())
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/api/payments", bytes.NewBufferString(`{"client_id":"CL-1","date":"2025-01-10","amount":"30"}`))
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp dto.PaymentResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Method != string(domain.PaymentMethodCash) || *resp.Amount != "30.00" {
		t.Fatalf("unexpected payment response %+v", resp)
	}
}
