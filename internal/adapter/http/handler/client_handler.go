package handler

import (
	"context"
	"net/http"

	"github.com/iho/clearledger/internal/adapter/http/dto"
	"github.com/iho/clearledger/internal/domain"
	"github.com/iho/clearledger/internal/usecase"
)

// ClientService defines the behavior needed by ClientHandler.
type ClientService interface {
	CreateClient(ctx context.Context, input usecase.ClientInput) (*domain.Client, error)
	GetClient(ctx context.Context, id string) (*domain.Client, error)
	UpdateClient(ctx context.Context, id string, input usecase.ClientInput) (*domain.Client, error)
	ListClients(ctx context.Context, input usecase.ListClientsInput) ([]*domain.Client, error)
	DeleteClient(ctx context.Context, id string) (*domain.TrashItem, error)
}

// ClientHandler handles client-related HTTP requests.
type ClientHandler struct {
	clientUC ClientService
}

// NewClientHandler creates a new ClientHandler.
func NewClientHandler(clientUC ClientService) *ClientHandler {
	return &ClientHandler{clientUC: clientUC}
}

// Create creates a new client.
func (h *ClientHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.ClientRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	client, err := h.clientUC.CreateClient(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeDomainError(w, r, "failed to create client", err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.ClientFromDomain(client))
}

// Get retrieves a client by ID.
func (h *ClientHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "client")
	if !ok {
		return
	}

	client, err := h.clientUC.GetClient(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, "failed to get client", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ClientFromDomain(client))
}

// Update replaces the editable fields of a client.
func (h *ClientHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "client")
	if !ok {
		return
	}

	var req dto.ClientRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	client, err := h.clientUC.UpdateClient(r.Context(), id, req.ToUseCaseInput())
	if err != nil {
		writeDomainError(w, r, "failed to update client", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ClientFromDomain(client))
}

// List lists clients, optionally filtered by ?q=.
func (h *ClientHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)

	clients, err := h.clientUC.ListClients(r.Context(), usecase.ListClientsInput{
		Query:  r.URL.Query().Get("q"),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		writeDomainError(w, r, "failed to list clients", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ListClientsResponse{
		Clients: dto.ClientsFromDomain(clients),
		Limit:   limit,
		Offset:  offset,
	})
}

// Delete moves a client, with its receipts and payments, to the trash.
func (h *ClientHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "client")
	if !ok {
		return
	}

	item, err := h.clientUC.DeleteClient(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, "failed to delete client", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.TrashItemFromDomain(item))
}
