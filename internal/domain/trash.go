package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// TrashItemIDPrefix prefixes generated trash item identifiers.
const TrashItemIDPrefix = "TR-"

// TrashItemType identifies what a trash item holds.
type TrashItemType string

const (
	TrashItemClient  TrashItemType = "client"
	TrashItemReceipt TrashItemType = "receipt"
	TrashItemPayment TrashItemType = "payment"
)

// TrashItem is a soft-deleted record kept for restore.
type TrashItem struct {
	ID        string
	ItemType  TrashItemType
	Data      json.RawMessage
	DeletedAt time.Time
}

// ClientSnapshot is what a trashed client carries: the client itself and
// the receipts and payments removed with it.
type ClientSnapshot struct {
	Client   *Client    `json:"client"`
	Receipts []*Receipt `json:"receipts"`
	Payments []*Payment `json:"payments"`
}

// NewTrashItem serializes data into a trash item of the given type.
func NewTrashItem(id string, itemType TrashItemType, data any, now time.Time) (*TrashItem, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s snapshot: %w", itemType, err)
	}

	return &TrashItem{
		ID:        id,
		ItemType:  itemType,
		Data:      raw,
		DeletedAt: now,
	}, nil
}

// ClientSnapshot decodes a trashed client.
func (t *TrashItem) ClientSnapshot() (*ClientSnapshot, error) {
	if t.ItemType != TrashItemClient {
		return nil, fmt.Errorf("%w: expected %s, got %s", ErrUnknownTrashItemType, TrashItemClient, t.ItemType)
	}

	var snap ClientSnapshot
	if err := json.Unmarshal(t.Data, &snap); err != nil {
		return nil, fmt.Errorf("failed to decode client snapshot: %w", err)
	}
	if snap.Client == nil {
		return nil, fmt.Errorf("failed to decode client snapshot: missing client")
	}

	return &snap, nil
}

// Receipt decodes a trashed receipt.
func (t *TrashItem) Receipt() (*Receipt, error) {
	if t.ItemType != TrashItemReceipt {
		return nil, fmt.Errorf("%w: expected %s, got %s", ErrUnknownTrashItemType, TrashItemReceipt, t.ItemType)
	}

	var r Receipt
	if err := json.Unmarshal(t.Data, &r); err != nil {
		return nil, fmt.Errorf("failed to decode receipt: %w", err)
	}

	return &r, nil
}

// Payment decodes a trashed payment.
func (t *TrashItem) Payment() (*Payment, error) {
	if t.ItemType != TrashItemPayment {
		return nil, fmt.Errorf("%w: expected %s, got %s", ErrUnknownTrashItemType, TrashItemPayment, t.ItemType)
	}

	var p Payment
	if err := json.Unmarshal(t.Data, &p); err != nil {
		return nil, fmt.Errorf("failed to decode payment: %w", err)
	}

	return &p, nil
}
