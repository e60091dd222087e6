package postgres

import (
	"context"
	"errors"
	"math/big"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"

	"github.com/iho/clearledger/internal/domain"
)

var (
	clientColumns  = []string{"id", "name", "phone", "company", "created_at"}
	receiptColumns = []string{"id", "client_id", "date", "driver", "car", "city", "note", "amount", "created_at"}
)

func pgTime(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, Valid: true}
}

func beginMockTx(t *testing.T, pool pgxmock.PgxPoolIface) *Tx {
	t.Helper()

	pool.ExpectBeginTx(txOptions)
	tx, err := newTxManagerWithPool(pool).Begin(context.Background())
	if err != nil {
		t.Fatalf("begin failed: %v", err)
	}

	return tx.(*Tx)
}

func TestClientRepository_GetByID(t *testing.T) {
	pool := newMockPool(t)
	repo := NewClientRepository(pool)
	created := time.Date(2025, 1, 2, 10, 0, 0, 0, time.UTC)

	pool.ExpectQuery("FROM clients WHERE id = \\$1").
		WithArgs("CL-1").
		WillReturnRows(pgxmock.NewRows(clientColumns).
			AddRow("CL-1", "Al Noor", "0750", "Noor Co", pgTime(created)))

	client, err := repo.GetByID(context.Background(), "CL-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if client.Name != "Al Noor" || !client.CreatedAt.Equal(created) {
		t.Fatalf("unexpected client %+v", client)
	}

	assertExpectations(t, pool)
}

func TestClientRepository_GetByID_NotFound(t *testing.T) {
	pool := newMockPool(t)
	repo := NewClientRepository(pool)

	pool.ExpectQuery("FROM clients WHERE id = \\$1").
		WithArgs("missing").
		WillReturnError(pgx.ErrNoRows)

	if _, err := repo.GetByID(context.Background(), "missing"); !errors.Is(err, domain.ErrClientNotFound) {
		t.Fatalf("expected ErrClientNotFound, got %v", err)
	}

	assertExpectations(t, pool)
}

func TestClientRepository_List_EscapesQuery(t *testing.T) {
	pool := newMockPool(t)
	repo := NewClientRepository(pool)

	pool.ExpectQuery("FROM clients").
		WithArgs(`50\%\_off`, int32(20), int32(40)).
		WillReturnRows(pgxmock.NewRows(clientColumns))

	clients, err := repo.List(context.Background(), domain.ClientFilter{Query: " 50%_off ", Limit: 20, Offset: 40})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if clients == nil || len(clients) != 0 {
		t.Fatalf("expected empty non-nil slice, got %v", clients)
	}

	assertExpectations(t, pool)
}

func TestClientRepository_Update_NotFound(t *testing.T) {
	pool := newMockPool(t)
	repo := NewClientRepository(pool)

	pool.ExpectExec("UPDATE clients").
		WithArgs("CL-9", "Name", "", "").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := repo.Update(context.Background(), &domain.Client{ID: "CL-9", Name: "Name"})
	if !errors.Is(err, domain.ErrClientNotFound) {
		t.Fatalf("expected ErrClientNotFound, got %v", err)
	}

	assertExpectations(t, pool)
}

func TestReceiptRepository_Create_MapsForeignKeyViolation(t *testing.T) {
	pool := newMockPool(t)
	repo := NewReceiptRepository(pool)

	pool.ExpectExec("INSERT INTO receipts").
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: pgErrForeignKeyViolation})

	err := repo.Create(context.Background(), &domain.Receipt{
		ID:       "RCPT-1",
		ClientID: "CL-gone",
		Date:     domain.MustParseDate("2025-01-01"),
		Amount:   decimal.NewNullDecimal(decimal.NewFromInt(10)),
	})
	if !errors.Is(err, domain.ErrClientNotFound) {
		t.Fatalf("expected ErrClientNotFound, got %v", err)
	}

	assertExpectations(t, pool)
}

func TestReceiptRepository_ListByClientTx_DecodesAmounts(t *testing.T) {
	pool := newMockPool(t)
	repo := NewReceiptRepository(pool)
	tx := beginMockTx(t, pool)

	day := pgtype.Date{Time: time.Date(2025, 1, 9, 0, 0, 0, 0, time.UTC), Valid: true}
	now := pgTime(time.Now().UTC())

	pool.ExpectQuery("FROM receipts\\s+WHERE client_id = \\$1").
		WithArgs("CL-1").
		WillReturnRows(pgxmock.NewRows(receiptColumns).
			AddRow("RCPT-1", "CL-1", day, "Karim", "12", "erbil", "", pgtype.Numeric{Int: big.NewInt(12550), Exp: -2, Valid: true}, now).
			AddRow("RCPT-2", "CL-1", day, "Karim", "12", "erbil", "", pgtype.Numeric{NaN: true, Valid: true}, now).
			AddRow("RCPT-3", "CL-1", day, "Karim", "12", "erbil", "", pgtype.Numeric{}, now))

	receipts, err := repo.ListByClientTx(context.Background(), tx, "CL-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(receipts) != 3 {
		t.Fatalf("expected 3 receipts, got %d", len(receipts))
	}

	if !receipts[0].Amount.Valid || !receipts[0].Amount.Decimal.Equal(decimal.RequireFromString("125.50")) {
		t.Fatalf("unexpected amount %+v", receipts[0].Amount)
	}

	if receipts[1].Amount.Valid || receipts[2].Amount.Valid {
		t.Fatal("expected NaN and NULL amounts to decode as invalid")
	}

	if receipts[0].Date.String() != "2025-01-09" {
		t.Fatalf("unexpected date %s", receipts[0].Date)
	}

	assertExpectations(t, pool)
}

func TestPaymentRepository_DeleteTx_NotFound(t *testing.T) {
	pool := newMockPool(t)
	repo := NewPaymentRepository(pool)
	tx := beginMockTx(t, pool)

	pool.ExpectExec("DELETE FROM payments WHERE id = \\$1").
		WithArgs("PAY-404").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	if err := repo.DeleteTx(context.Background(), tx, "PAY-404"); !errors.Is(err, domain.ErrPaymentNotFound) {
		t.Fatalf("expected ErrPaymentNotFound, got %v", err)
	}

	assertExpectations(t, pool)
}

func TestTrashRepository_Delete(t *testing.T) {
	pool := newMockPool(t)
	repo := NewTrashRepository(pool)

	pool.ExpectExec("DELETE FROM trash_items WHERE id = \\$1").
		WithArgs("TR-1").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	pool.ExpectExec("DELETE FROM trash_items WHERE id = \\$1").
		WithArgs("TR-1").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	if err := repo.Delete(context.Background(), "TR-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := repo.Delete(context.Background(), "TR-1"); !errors.Is(err, domain.ErrTrashItemNotFound) {
		t.Fatalf("expected ErrTrashItemNotFound on second delete, got %v", err)
	}

	assertExpectations(t, pool)
}

func TestClientRepository_ListAllTx(t *testing.T) {
	pool := newMockPool(t)
	repo := NewClientRepository(pool)
	tx := beginMockTx(t, pool)
	created := time.Date(2025, 1, 2, 10, 0, 0, 0, time.UTC)

	pool.ExpectQuery("FROM clients ORDER BY created_at DESC").
		WillReturnRows(pgxmock.NewRows(clientColumns).
			AddRow("CL-2", "Karim", "0751", "", pgTime(created)).
			AddRow("CL-1", "Al Noor", "0750", "Noor Co", pgTime(created)))

	clients, err := repo.ListAllTx(context.Background(), tx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(clients) != 2 || clients[0].ID != "CL-2" {
		t.Fatalf("unexpected clients %+v", clients)
	}

	assertExpectations(t, pool)
}

func TestAggregateRepository_TotalsTx(t *testing.T) {
	pool := newMockPool(t)
	repo := NewAggregateRepository(pool)
	tx := beginMockTx(t, pool)

	pool.ExpectQuery("clients_count").
		WillReturnRows(pgxmock.NewRows([]string{
			"clients_count", "receipts_count", "payments_count", "total_receipts", "total_payments", "null_amounts",
		}).AddRow(
			int64(3), int64(4), int64(2),
			pgtype.Numeric{Int: big.NewInt(22500), Exp: -2, Valid: true},
			pgtype.Numeric{Int: big.NewInt(55), Exp: 0, Valid: true},
			int64(1),
		))

	totals, err := repo.TotalsTx(context.Background(), tx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if totals.ClientsCount != 3 || totals.NullAmounts != 1 {
		t.Fatalf("unexpected counts %+v", totals)
	}

	if !totals.TotalReceipts.Equal(decimal.NewFromInt(225)) || !totals.TotalPayments.Equal(decimal.NewFromInt(55)) {
		t.Fatalf("unexpected totals %s / %s", totals.TotalReceipts, totals.TotalPayments)
	}

	assertExpectations(t, pool)
}

func TestULIDGenerator_Prefix(t *testing.T) {
	g := NewULIDGenerator()

	a := g.Generate(domain.ReceiptIDPrefix)
	b := g.Generate(domain.ReceiptIDPrefix)

	if !strings.HasPrefix(a, "RCPT-") || len(a) != len("RCPT-")+26 {
		t.Fatalf("unexpected id %q", a)
	}

	if a == b {
		t.Fatal("expected unique ids")
	}
}

func TestDecimalNumericRoundTrip(t *testing.T) {
	for _, v := range []string{"0", "0.01", "125.50", "999999999999.99"} {
		d := decimal.RequireFromString(v)
		got := numericToDecimal(decimalToNumeric(d))
		if !got.Equal(d) {
			t.Fatalf("round trip of %s gave %s", v, got)
		}
	}

	if nullDecimalToNumeric(decimal.NullDecimal{}).Valid {
		t.Fatal("expected invalid numeric for null decimal")
	}
}
