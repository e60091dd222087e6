package generated

import (
	"github.com/jackc/pgx/v5/pgtype"
)

type Client struct {
	ID        string             `json:"id"`
	Name      string             `json:"name"`
	Phone     string             `json:"phone"`
	Company   string             `json:"company"`
	CreatedAt pgtype.Timestamptz `json:"created_at"`
}

type Payment struct {
	ID        string             `json:"id"`
	ClientID  string             `json:"client_id"`
	Date      pgtype.Date        `json:"date"`
	Amount    pgtype.Numeric     `json:"amount"`
	Method    string             `json:"method"`
	Note      string             `json:"note"`
	CreatedAt pgtype.Timestamptz `json:"created_at"`
}

type Receipt struct {
	ID        string             `json:"id"`
	ClientID  string             `json:"client_id"`
	Date      pgtype.Date        `json:"date"`
	Driver    string             `json:"driver"`
	Car       string             `json:"car"`
	City      string             `json:"city"`
	Note      string             `json:"note"`
	Amount    pgtype.Numeric     `json:"amount"`
	CreatedAt pgtype.Timestamptz `json:"created_at"`
}

type TrashItem struct {
	ID        string             `json:"id"`
	ItemType  string             `json:"item_type"`
	Data      []byte             `json:"data"`
	DeletedAt pgtype.Timestamptz `json:"deleted_at"`
}
