package generated

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const createClient = `-- name: CreateClient :exec
INSERT INTO clients (id, name, phone, company, created_at)
VALUES ($1, $2, $3, $4, $5)
`

type CreateClientParams struct {
	ID        string             `json:"id"`
	Name      string             `json:"name"`
	Phone     string             `json:"phone"`
	Company   string             `json:"company"`
	CreatedAt pgtype.Timestamptz `json:"created_at"`
}

func (q *Queries) CreateClient(ctx context.Context, arg CreateClientParams) error {
	_, err := q.db.Exec(ctx, createClient,
		arg.ID,
		arg.Name,
		arg.Phone,
		arg.Company,
		arg.CreatedAt,
	)
	return err
}

const deleteClient = `-- name: DeleteClient :execrows
DELETE FROM clients WHERE id = $1
`

func (q *Queries) DeleteClient(ctx context.Context, id string) (int64, error) {
	result, err := q.db.Exec(ctx, deleteClient, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const getClientByID = `-- name: GetClientByID :one
SELECT id, name, phone, company, created_at FROM clients WHERE id = $1
`

func (q *Queries) GetClientByID(ctx context.Context, id string) (Client, error) {
	row := q.db.QueryRow(ctx, getClientByID, id)
	var i Client
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.Phone,
		&i.Company,
		&i.CreatedAt,
	)
	return i, err
}

const getClientByIDForUpdate = `-- name: GetClientByIDForUpdate :one
SELECT id, name, phone, company, created_at FROM clients WHERE id = $1 FOR UPDATE
`

func (q *Queries) GetClientByIDForUpdate(ctx context.Context, id string) (Client, error) {
	row := q.db.QueryRow(ctx, getClientByIDForUpdate, id)
	var i Client
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.Phone,
		&i.Company,
		&i.CreatedAt,
	)
	return i, err
}

const listAllClients = `-- name: ListAllClients :many
SELECT id, name, phone, company, created_at FROM clients ORDER BY created_at DESC, id
`

func (q *Queries) ListAllClients(ctx context.Context) ([]Client, error) {
	rows, err := q.db.Query(ctx, listAllClients)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Client
	for rows.Next() {
		var i Client
		if err := rows.Scan(
			&i.ID,
			&i.Name,
			&i.Phone,
			&i.Company,
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

const listClients = `-- name: ListClients :many
SELECT id, name, phone, company, created_at FROM clients
WHERE $1::text = ''
   OR name ILIKE '%' || $1::text || '%'
   OR company ILIKE '%' || $1::text || '%'
   OR phone LIKE '%' || $1::text || '%'
ORDER BY created_at DESC, id
LIMIT $2 OFFSET $3
`

type ListClientsParams struct {
	Query string `json:"query"`
	Lim   int32  `json:"lim"`
	Off   int32  `json:"off"`
}

func (q *Queries) ListClients(ctx context.Context, arg ListClientsParams) ([]Client, error) {
	rows, err := q.db.Query(ctx, listClients, arg.Query, arg.Lim, arg.Off)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Client
	for rows.Next() {
		var i Client
		if err := rows.Scan(
			&i.ID,
			&i.Name,
			&i.Phone,
			&i.Company,
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

const updateClient = `-- name: UpdateClient :execrows
UPDATE clients SET name = $2, phone = $3, company = $4 WHERE id = $1
`

type UpdateClientParams struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Company string `json:"company"`
}

func (q *Queries) UpdateClient(ctx context.Context, arg UpdateClientParams) (int64, error) {
	result, err := q.db.Exec(ctx, updateClient,
		arg.ID,
		arg.Name,
		arg.Phone,
		arg.Company,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}
