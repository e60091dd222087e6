package postgres

import (
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/iho/clearledger/internal/domain"
	"github.com/iho/clearledger/internal/infrastructure/postgres/generated"
	"github.com/iho/clearledger/internal/usecase"
)

const pgErrForeignKeyViolation = "23503"

// txQueries binds generated queries to the pgx transaction behind tx.
func txQueries(tx usecase.Transaction) *generated.Queries {
	return generated.New(tx.(*Tx).PgxTx())
}

// mapClientFK turns a dangling client reference into ErrClientNotFound.
func mapClientFK(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgErrForeignKeyViolation {
		return domain.ErrClientNotFound
	}
	return err
}

func decimalToNumeric(d decimal.Decimal) pgtype.Numeric {
	var n pgtype.Numeric

	_ = n.Scan(d.String())

	return n
}

func nullDecimalToNumeric(d decimal.NullDecimal) pgtype.Numeric {
	if !d.Valid {
		return pgtype.Numeric{}
	}
	return decimalToNumeric(d.Decimal)
}

// numericToNullDecimal reports SQL NULL, NaN and infinities as invalid.
func numericToNullDecimal(n pgtype.Numeric) decimal.NullDecimal {
	if !n.Valid || n.NaN || n.InfinityModifier != pgtype.Finite || n.Int == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(decimal.NewFromBigInt(n.Int, n.Exp))
}

func numericToDecimal(n pgtype.Numeric) decimal.Decimal {
	d := numericToNullDecimal(n)
	if !d.Valid {
		return decimal.Zero
	}
	return d.Decimal
}

func timeToPgTimestamptz(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, Valid: true}
}

func dateToPgDate(d domain.Date) pgtype.Date {
	return pgtype.Date{Time: d.Time(), Valid: true}
}

func pgDateToDate(d pgtype.Date) domain.Date {
	if !d.Valid {
		return domain.Date{}
	}
	return domain.DateOf(d.Time)
}

// escapeLike escapes LIKE metacharacters so user input matches literally.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func rowToClient(row generated.Client) *domain.Client {
	return &domain.Client{
		ID:        row.ID,
		Name:      row.Name,
		Phone:     row.Phone,
		Company:   row.Company,
		CreatedAt: row.CreatedAt.Time,
	}
}

func rowToReceipt(row generated.Receipt) *domain.Receipt {
	return &domain.Receipt{
		ID:        row.ID,
		ClientID:  row.ClientID,
		Date:      pgDateToDate(row.Date),
		Driver:    row.Driver,
		Car:       row.Car,
		City:      domain.City(row.City),
		Note:      row.Note,
		Amount:    numericToNullDecimal(row.Amount),
		CreatedAt: row.CreatedAt.Time,
	}
}

func rowToPayment(row generated.Payment) *domain.Payment {
	return &domain.Payment{
		ID:        row.ID,
		ClientID:  row.ClientID,
		Date:      pgDateToDate(row.Date),
		Amount:    numericToNullDecimal(row.Amount),
		Method:    domain.PaymentMethod(row.Method),
		Note:      row.Note,
		CreatedAt: row.CreatedAt.Time,
	}
}

func rowToTrashItem(row generated.TrashItem) *domain.TrashItem {
	return &domain.TrashItem{
		ID:        row.ID,
		ItemType:  domain.TrashItemType(row.ItemType),
		Data:      row.Data,
		DeletedAt: row.DeletedAt.Time,
	}
}

func rowsTo[R any, T any](rows []R, convert func(R) *T) []*T {
	out := make([]*T, 0, len(rows))
	for _, row := range rows {
		out = append(out, convert(row))
	}
	return out
}
