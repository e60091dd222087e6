package handler

import (
	"context"
	"net/http"

	"github.com/iho/clearledger/internal/adapter/http/dto"
	"github.com/iho/clearledger/internal/domain"
	"github.com/iho/clearledger/internal/usecase"
)

// PaymentService defines the behavior needed by PaymentHandler.
type PaymentService interface {
	CreatePayment(ctx context.Context, input usecase.CreatePaymentInput) (*domain.Payment, error)
	GetPayment(ctx context.Context, id string) (*domain.Payment, error)
	UpdatePayment(ctx context.Context, id string, fields domain.PaymentFields) (*domain.Payment, error)
	DeletePayment(ctx context.Context, id string) (*domain.TrashItem, error)
	ListPayments(ctx context.Context, limit, offset int) ([]*domain.Payment, error)
	ListClientPayments(ctx context.Context, clientID string) ([]*domain.Payment, error)
}

// PaymentHandler handles payment-related HTTP requests.
type PaymentHandler struct {
	paymentUC PaymentService
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(paymentUC PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentUC: paymentUC}
}

// Create records a payment for a live client.
func (h *PaymentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.PaymentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	payment, err := h.paymentUC.CreatePayment(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeDomainError(w, r, "failed to create payment", err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.PaymentFromDomain(payment))
}

// Get retrieves a payment by ID.
func (h *PaymentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "payment")
	if !ok {
		return
	}

	payment, err := h.paymentUC.GetPayment(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, "failed to get payment", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.PaymentFromDomain(payment))
}

// Update replaces the editable fields of a payment.
func (h *PaymentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "payment")
	if !ok {
		return
	}

	var req dto.PaymentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	payment, err := h.paymentUC.UpdatePayment(r.Context(), id, req.Fields())
	if err != nil {
		writeDomainError(w, r, "failed to update payment", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.PaymentFromDomain(payment))
}

// Delete moves a payment to the trash.
func (h *PaymentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "payment")
	if !ok {
		return
	}

	item, err := h.paymentUC.DeletePayment(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, "failed to delete payment", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.TrashItemFromDomain(item))
}

// List lists payments across all clients.
func (h *PaymentHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)

	payments, err := h.paymentUC.ListPayments(r.Context(), limit, offset)
	if err != nil {
		writeDomainError(w, r, "failed to list payments", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ListPaymentsResponse{
		Payments: dto.PaymentsFromDomain(payments),
		Limit:    limit,
		Offset:   offset,
	})
}

// ListByClient lists every payment of a client.
func (h *PaymentHandler) ListByClient(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "client")
	if !ok {
		return
	}

	payments, err := h.paymentUC.ListClientPayments(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, "failed to list payments", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ListPaymentsResponse{
		Payments: dto.PaymentsFromDomain(payments),
	})
}
