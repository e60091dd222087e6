package handler

import (
	"context"
	"net/http"

	"github.com/iho/clearledger/internal/adapter/http/dto"
	"github.com/iho/clearledger/internal/domain"
	"github.com/iho/clearledger/internal/usecase"
)

// ReceiptService defines the behavior needed by ReceiptHandler.
type ReceiptService interface {
	CreateReceipt(ctx context.Context, input usecase.CreateReceiptInput) (*domain.Receipt, error)
	GetReceipt(ctx context.Context, id string) (*domain.Receipt, error)
	UpdateReceipt(ctx context.Context, id string, fields domain.ReceiptFields) (*domain.Receipt, error)
	DeleteReceipt(ctx context.Context, id string) (*domain.TrashItem, error)
	ListReceipts(ctx context.Context, limit, offset int) ([]*domain.Receipt, error)
	ListClientReceipts(ctx context.Context, clientID string) ([]*domain.Receipt, error)
}

// ReceiptHandler handles receipt-related HTTP requests.
type ReceiptHandler struct {
	receiptUC ReceiptService
}

// NewReceiptHandler creates a new ReceiptHandler.
func NewReceiptHandler(receiptUC ReceiptService) *ReceiptHandler {
	return &ReceiptHandler{receiptUC: receiptUC}
}

// Create records a receipt for a live client.
func (h *ReceiptHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.ReceiptRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	receipt, err := h.receiptUC.CreateReceipt(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeDomainError(w, r, "failed to create receipt", err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.ReceiptFromDomain(receipt))
}

// Get retrieves a receipt by ID.
func (h *ReceiptHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "receipt")
	if !ok {
		return
	}

	receipt, err := h.receiptUC.GetReceipt(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, "failed to get receipt", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ReceiptFromDomain(receipt))
}

// Update replaces the editable fields of a receipt.
func (h *ReceiptHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "receipt")
	if !ok {
		return
	}

	var req dto.ReceiptRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	receipt, err := h.receiptUC.UpdateReceipt(r.Context(), id, req.Fields())
	if err != nil {
		writeDomainError(w, r, "failed to update receipt", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ReceiptFromDomain(receipt))
}

// Delete moves a receipt to the trash.
func (h *ReceiptHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "receipt")
	if !ok {
		return
	}

	item, err := h.receiptUC.DeleteReceipt(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, "failed to delete receipt", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.TrashItemFromDomain(item))
}

// List lists receipts across all clients.
func (h *ReceiptHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)

	receipts, err := h.receiptUC.ListReceipts(r.Context(), limit, offset)
	if err != nil {
		writeDomainError(w, r, "failed to list receipts", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ListReceiptsResponse{
		Receipts: dto.ReceiptsFromDomain(receipts),
		Limit:    limit,
		Offset:   offset,
	})
}

// ListByClient lists every receipt of a client.
func (h *ReceiptHandler) ListByClient(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "client")
	if !ok {
		return
	}

	receipts, err := h.receiptUC.ListClientReceipts(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, "failed to list receipts", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ListReceiptsResponse{
		Receipts: dto.ReceiptsFromDomain(receipts),
	})
}
