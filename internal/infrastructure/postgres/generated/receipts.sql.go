package generated

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const createReceipt = `-- name: CreateReceipt :exec
INSERT INTO receipts (id, client_id, date, driver, car, city, note, amount, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
`

type CreateReceiptParams struct {
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

func (q *Queries) CreateReceipt(ctx context.Context, arg CreateReceiptParams) error {
	_, err := q.db.Exec(ctx, createReceipt,
		arg.ID,
		arg.ClientID,
		arg.Date,
		arg.Driver,
		arg.Car,
		arg.City,
		arg.Note,
		arg.Amount,
		arg.CreatedAt,
	)
	return err
}

const deleteReceipt = `-- name: DeleteReceipt :execrows
DELETE FROM receipts WHERE id = $1
`

func (q *Queries) DeleteReceipt(ctx context.Context, id string) (int64, error) {
	result, err := q.db.Exec(ctx, deleteReceipt, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const deleteReceiptsByClient = `-- name: DeleteReceiptsByClient :execrows
DELETE FROM receipts WHERE client_id = $1
`

func (q *Queries) DeleteReceiptsByClient(ctx context.Context, clientID string) (int64, error) {
	result, err := q.db.Exec(ctx, deleteReceiptsByClient, clientID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const getReceiptByID = `-- name: GetReceiptByID :one
SELECT id, client_id, date, driver, car, city, note, amount, created_at FROM receipts WHERE id = $1
`

func (q *Queries) GetReceiptByID(ctx context.Context, id string) (Receipt, error) {
	row := q.db.QueryRow(ctx, getReceiptByID, id)
	var i Receipt
	err := row.Scan(
		&i.ID,
		&i.ClientID,
		&i.Date,
		&i.Driver,
		&i.Car,
		&i.City,
		&i.Note,
		&i.Amount,
		&i.CreatedAt,
	)
	return i, err
}

const getReceiptByIDForUpdate = `-- name: GetReceiptByIDForUpdate :one
SELECT id, client_id, date, driver, car, city, note, amount, created_at FROM receipts WHERE id = $1 FOR UPDATE
`

func (q *Queries) GetReceiptByIDForUpdate(ctx context.Context, id string) (Receipt, error) {
	row := q.db.QueryRow(ctx, getReceiptByIDForUpdate, id)
	var i Receipt
	err := row.Scan(
		&i.ID,
		&i.ClientID,
		&i.Date,
		&i.Driver,
		&i.Car,
		&i.City,
		&i.Note,
		&i.Amount,
		&i.CreatedAt,
	)
	return i, err
}

const listAllReceipts = `-- name: ListAllReceipts :many
SELECT id, client_id, date, driver, car, city, note, amount, created_at FROM receipts ORDER BY date DESC, id
`

func (q *Queries) ListAllReceipts(ctx context.Context) ([]Receipt, error) {
	rows, err := q.db.Query(ctx, listAllReceipts)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Receipt
	for rows.Next() {
		var i Receipt
		if err := rows.Scan(
			&i.ID,
			&i.ClientID,
			&i.Date,
			&i.Driver,
			&i.Car,
			&i.City,
			&i.Note,
			&i.Amount,
			&i.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const listReceipts = `-- name: ListReceipts :many
SELECT id, client_id, date, driver, car, city, note, amount, created_at FROM receipts
ORDER BY date DESC, id LIMIT $1 OFFSET $2
`

type ListReceiptsParams struct {
	Limit  int32 `json:"limit"`
	Offset int32 `json:"offset"`
}

func (q *Queries) ListReceipts(ctx context.Context, arg ListReceiptsParams) ([]Receipt, error) {
	rows, err := q.db.Query(ctx, listReceipts, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Receipt
	for rows.Next() {
		var i Receipt
		if err := rows.Scan(
			&i.ID,
			&i.ClientID,
			&i.Date,
			&i.Driver,
			&i.Car,
			&i.City,
			&i.Note,
			&i.Amount,
			&i.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const listReceiptsByClient = `-- name: ListReceiptsByClient :many
SELECT id, client_id, date, driver, car, city, note, amount, created_at FROM receipts
WHERE client_id = $1 ORDER BY date DESC, id
`

func (q *Queries) ListReceiptsByClient(ctx context.Context, clientID string) ([]Receipt, error) {
	rows, err := q.db.Query(ctx, listReceiptsByClient, clientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Receipt
	for rows.Next() {
		var i Receipt
		if err := rows.Scan(
			&i.ID,
			&i.ClientID,
			&i.Date,
			&i.Driver,
			&i.Car,
			&i.City,
			&i.Note,
			&i.Amount,
			&i.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const updateReceipt = `-- name: UpdateReceipt :execrows
UPDATE receipts SET date = $2, driver = $3, car = $4, city = $5, note = $6, amount = $7 WHERE id = $1
`

type UpdateReceiptParams struct {
	ID     string         `json:"id"`
	Date   pgtype.Date    `json:"date"`
	Driver string         `json:"driver"`
	Car    string         `json:"car"`
	City   string         `json:"city"`
	Note   string         `json:"note"`
	Amount pgtype.Numeric `json:"amount"`
}

func (q *Queries) UpdateReceipt(ctx context.Context, arg UpdateReceiptParams) (int64, error) {
	result, err := q.db.Exec(ctx, updateReceipt,
		arg.ID,
		arg.Date,
		arg.Driver,
		arg.Car,
		arg.City,
		arg.Note,
		arg.Amount,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}
