package generated

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const createPayment = `-- name: CreatePayment :exec
INSERT INTO payments (id, client_id, date, amount, method, note, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
`

type CreatePaymentParams struct {
	ID        string             `json:"id"`
	ClientID  string             `json:"client_id"`
	Date      pgtype.Date        `json:"date"`
	Amount    pgtype.Numeric     `json:"amount"`
	Method    string             `json:"method"`
	Note      string             `json:"note"`
	CreatedAt pgtype.Timestamptz `json:"created_at"`
}

func (q *Queries) CreatePayment(ctx context.Context, arg CreatePaymentParams) error {
	_, err := q.db.Exec(ctx, createPayment,
		arg.ID,
		arg.ClientID,
		arg.Date,
		arg.Amount,
		arg.Method,
		arg.Note,
		arg.CreatedAt,
	)
	return err
}

const deletePayment = `-- name: DeletePayment :execrows
DELETE FROM payments WHERE id = $1
`

func (q *Queries) DeletePayment(ctx context.Context, id string) (int64, error) {
	result, err := q.db.Exec(ctx, deletePayment, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const deletePaymentsByClient = `-- name: DeletePaymentsByClient :execrows
DELETE FROM payments WHERE client_id = $1
`

func (q *Queries) DeletePaymentsByClient(ctx context.Context, clientID string) (int64, error) {
	result, err := q.db.Exec(ctx, deletePaymentsByClient, clientID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const getPaymentByID = `-- name: GetPaymentByID :one
SELECT id, client_id, date, amount, method, note, created_at FROM payments WHERE id = $1
`

func (q *Queries) GetPaymentByID(ctx context.Context, id string) (Payment, error) {
	row := q.db.QueryRow(ctx, getPaymentByID, id)
	var i Payment
	err := row.Scan(
		&i.ID,
		&i.ClientID,
		&i.Date,
		&i.Amount,
		&i.Method,
		&i.Note,
		&i.CreatedAt,
	)
	return i, err
}

const getPaymentByIDForUpdate = `-- name: GetPaymentByIDForUpdate :one
SELECT id, client_id, date, amount, method, note, created_at FROM payments WHERE id = $1 FOR UPDATE
`

func (q *Queries) GetPaymentByIDForUpdate(ctx context.Context, id string) (Payment, error) {
	row := q.db.QueryRow(ctx, getPaymentByIDForUpdate, id)
	var i Payment
	err := row.Scan(
		&i.ID,
		&i.ClientID,
		&i.Date,
		&i.Amount,
		&i.Method,
		&i.Note,
		&i.CreatedAt,
	)
	return i, err
}

const listAllPayments = `-- name: ListAllPayments :many
SELECT id, client_id, date, amount, method, note, created_at FROM payments ORDER BY date DESC, id
`

func (q *Queries) ListAllPayments(ctx context.Context) ([]Payment, error) {
	rows, err := q.db.Query(ctx, listAllPayments)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Payment
	for rows.Next() {
		var i Payment
		if err := rows.Scan(
			&i.ID,
			&i.ClientID,
			&i.Date,
			&i.Amount,
			&i.Method,
			&i.Note,
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

const listPayments = `-- name: ListPayments :many
SELECT id, client_id, date, amount, method, note, created_at FROM payments
ORDER BY date DESC, id LIMIT $1 OFFSET $2
`

type ListPaymentsParams struct {
	Limit  int32 `json:"limit"`
	Offset int32 `json:"offset"`
}

func (q *Queries) ListPayments(ctx context.Context, arg ListPaymentsParams) ([]Payment, error) {
	rows, err := q.db.Query(ctx, listPayments, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Payment
	for rows.Next() {
		var i Payment
		if err := rows.Scan(
			&i.ID,
			&i.ClientID,
			&i.Date,
			&i.Amount,
			&i.Method,
			&i.Note,
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

const listPaymentsByClient = `-- name: ListPaymentsByClient :many
SELECT id, client_id, date, amount, method, note, created_at FROM payments
WHERE client_id = $1 ORDER BY date DESC, id
`

func (q *Queries) ListPaymentsByClient(ctx context.Context, clientID string) ([]Payment, error) {
	rows, err := q.db.Query(ctx, listPaymentsByClient, clientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Payment
	for rows.Next() {
		var i Payment
		if err := rows.Scan(
			&i.ID,
			&i.ClientID,
			&i.Date,
			&i.Amount,
			&i.Method,
			&i.Note,
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

const updatePayment = `-- name: UpdatePayment :execrows
UPDATE payments SET date = $2, amount = $3, method = $4, note = $5 WHERE id = $1
`

type UpdatePaymentParams struct {
	ID     string         `json:"id"`
	Date   pgtype.Date    `json:"date"`
	Amount pgtype.Numeric `json:"amount"`
	Method string         `json:"method"`
	Note   string         `json:"note"`
}

func (q *Queries) UpdatePayment(ctx context.Context, arg UpdatePaymentParams) (int64, error) {
	result, err := q.db.Exec(ctx, updatePayment,
		arg.ID,
		arg.Date,
		arg.Amount,
		arg.Method,
		arg.Note,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}
