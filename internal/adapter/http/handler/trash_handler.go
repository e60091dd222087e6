package handler

import (
	"context"
	"net/http"

	"github.com/iho/clearledger/internal/adapter/http/dto"
	"github.com/iho/clearledger/internal/domain"
)

// TrashService defines the behavior needed by TrashHandler.
type TrashService interface {
	ListTrash(ctx context.Context, limit, offset int) ([]*domain.TrashItem, error)
	RestoreItem(ctx context.Context, id string) (*domain.TrashItem, error)
	PurgeItem(ctx context.Context, id string) error
	EmptyTrash(ctx context.Context) (int64, error)
}

// TrashHandler handles trash HTTP requests.
type TrashHandler struct {
	trashUC TrashService
}

// NewTrashHandler creates a new TrashHandler.
func NewTrashHandler(trashUC TrashService) *TrashHandler {
	return &TrashHandler{trashUC: trashUC}
}

// List lists trashed records, most recently deleted first.
func (h *TrashHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)

	items, err := h.trashUC.ListTrash(r.Context(), limit, offset)
	if err != nil {
		writeDomainError(w, r, "failed to list trash", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ListTrashResponse{
		Items:  dto.TrashItemsFromDomain(items),
		Limit:  limit,
		Offset: offset,
	})
}

// Restore puts a trashed record back into the active tables.
func (h *TrashHandler) Restore(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "trash item")
	if !ok {
		return
	}

	item, err := h.trashUC.RestoreItem(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, "failed to restore item", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.TrashItemFromDomain(item))
}

// Purge permanently deletes one trashed record.
func (h *TrashHandler) Purge(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "trash item")
	if !ok {
		return
	}

	if err := h.trashUC.PurgeItem(r.Context(), id); err != nil {
		writeDomainError(w, r, "failed to purge item", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Empty permanently deletes everything in the trash.
func (h *TrashHandler) Empty(w http.ResponseWriter, r *http.Request) {
	n, err := h.trashUC.EmptyTrash(r.Context())
	if err != nil {
		writeDomainError(w, r, "failed to empty trash", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.EmptyTrashResponse{Deleted: n})
}
