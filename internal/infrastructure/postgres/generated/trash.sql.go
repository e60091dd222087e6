package generated

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const createTrashItem = `-- name: CreateTrashItem :exec
INSERT INTO trash_items (id, item_type, data, deleted_at) VALUES ($1, $2, $3, $4)
`

type CreateTrashItemParams struct {
	ID        string             `json:"id"`
	ItemType  string             `json:"item_type"`
	Data      []byte             `json:"data"`
	DeletedAt pgtype.Timestamptz `json:"deleted_at"`
}

func (q *Queries) CreateTrashItem(ctx context.Context, arg CreateTrashItemParams) error {
	_, err := q.db.Exec(ctx, createTrashItem,
		arg.ID,
		arg.ItemType,
		arg.Data,
		arg.DeletedAt,
	)
	return err
}

const deleteAllTrashItems = `-- name: DeleteAllTrashItems :execrows
DELETE FROM trash_items
`

func (q *Queries) DeleteAllTrashItems(ctx context.Context) (int64, error) {
	result, err := q.db.Exec(ctx, deleteAllTrashItems)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const deleteTrashItem = `-- name: DeleteTrashItem :execrows
DELETE FROM trash_items WHERE id = $1
`

func (q *Queries) DeleteTrashItem(ctx context.Context, id string) (int64, error) {
	result, err := q.db.Exec(ctx, deleteTrashItem, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const getTrashItemForUpdate = `-- name: GetTrashItemForUpdate :one
SELECT id, item_type, data, deleted_at FROM trash_items WHERE id = $1 FOR UPDATE
`

func (q *Queries) GetTrashItemForUpdate(ctx context.Context, id string) (TrashItem, error) {
	row := q.db.QueryRow(ctx, getTrashItemForUpdate, id)
	var i TrashItem
	err := row.Scan(
		&i.ID,
		&i.ItemType,
		&i.Data,
		&i.DeletedAt,
	)
	return i, err
}

const listTrashItems = `-- name: ListTrashItems :many
SELECT id, item_type, data, deleted_at FROM trash_items
ORDER BY deleted_at DESC, id LIMIT $1 OFFSET $2
`

type ListTrashItemsParams struct {
	Limit  int32 `json:"limit"`
	Offset int32 `json:"offset"`
}

func (q *Queries) ListTrashItems(ctx context.Context, arg ListTrashItemsParams) ([]TrashItem, error) {
	rows, err := q.db.Query(ctx, listTrashItems, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []TrashItem
	for rows.Next() {
		var i TrashItem
		if err := rows.Scan(
			&i.ID,
			&i.ItemType,
			&i.Data,
			&i.DeletedAt,
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
