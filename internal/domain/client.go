package domain

import (
	"strings"
	"time"
)

// ClientIDPrefix prefixes generated client identifiers.
const ClientIDPrefix = "CL-"

// Client is a customer of the company. Receipts and payments reference it.
type Client struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Company   string    `json:"company"`
	CreatedAt time.Time `json:"created_at"`
}

// ClientFields holds the user-editable part of a client.
type ClientFields struct {
	Name    string
	Phone   string
	Company string
}

// NewClient validates fields and builds a client.
func NewClient(id string, fields ClientFields, now time.Time) (*Client, error) {
	c := &Client{ID: id, CreatedAt: now}
	if err := c.Apply(fields); err != nil {
		return nil, err
	}
	return c, nil
}

// Apply validates fields and, when valid, replaces the editable fields.
func (c *Client) Apply(fields ClientFields) error {
	if err := ValidateClientName(fields.Name); err != nil {
		return err
	}
	if err := ValidateLength("phone", fields.Phone, MaxShortFieldLength); err != nil {
		return err
	}
	if err := ValidateLength("company", fields.Company, MaxShortFieldLength); err != nil {
		return err
	}

	c.Name = strings.TrimSpace(fields.Name)
	c.Phone = strings.TrimSpace(fields.Phone)
	c.Company = strings.TrimSpace(fields.Company)
	return nil
}

// ClientFilter narrows a client listing.
type ClientFilter struct {
	// Query matches name or company case-insensitively, or phone as a substring.
	Query  string
	Limit  int
	Offset int
}
