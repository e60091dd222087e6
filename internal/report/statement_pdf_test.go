package report

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/clearledger/internal/domain"
)

func sampleStatement(t *testing.T) *domain.AccountStatement {
	t.Helper()

	client := &domain.Client{ID: "CL-1", Name: "Al Noor", Phone: "0750", Company: "Noor Trading"}
	receipts := []*domain.Receipt{{
		ID:       "RCPT-1",
		ClientID: "CL-1",
		Date:     domain.MustParseDate("2025-01-10"),
		Driver:   "Karim",
		City:     domain.CityErbil,
		Amount:   decimal.NewNullDecimal(decimal.RequireFromString("150.25")),
	}, {
		ID:       "RCPT-2",
		ClientID: "CL-1",
		Date:     domain.MustParseDate("2025-01-11"),
		City:     domain.CityErbil,
	}}
	payments := []*domain.Payment{{
		ID:       "PAY-1",
		ClientID: "CL-1",
		Date:     domain.MustParseDate("2025-01-12"),
		Method:   domain.PaymentMethodCash,
		Note:     "first installment for the January shipments",
		Amount:   decimal.NewNullDecimal(decimal.NewFromInt(50)),
	}}

	s, err := domain.BuildStatement(client, receipts, payments)
	if err != nil {
		t.Fatalf("build statement: %v", err)
	}

	return s
}

func TestStatementPDF_RenderStatement(t *testing.T) {
	var buf bytes.Buffer

	err := NewStatementPDF("").RenderStatement(&buf, sampleStatement(t), time.Date(2025, 2, 1, 9, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Fatalf("expected PDF header, got %q", buf.Bytes()[:min(8, buf.Len())])
	}
}

func TestStatementPDF_EmptyStatement(t *testing.T) {
	s, err := domain.BuildStatement(&domain.Client{ID: "CL-2", Name: "Empty"}, nil, nil)
	if err != nil {
		t.Fatalf("build statement: %v", err)
	}

	var buf bytes.Buffer
	if err := NewStatementPDF("Kashf Hesab").RenderStatement(&buf, s, time.Now()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if buf.Len() == 0 {
		t.Fatal("expected output")
	}
}

func TestStatementPDF_NilStatement(t *testing.T) {
	var buf bytes.Buffer

	if err := NewStatementPDF("").RenderStatement(&buf, nil, time.Now()); !errors.Is(err, domain.ErrClientNotFound) {
		t.Fatalf("expected ErrClientNotFound, got %v", err)
	}
}

func TestStatementPDF_MissingUTF8Font(t *testing.T) {
	var buf bytes.Buffer

	p := NewStatementPDF("", WithUTF8Font(filepath.Join(t.TempDir(), "absent.ttf")))
	if err := p.RenderStatement(&buf, sampleStatement(t), time.Now()); err == nil {
		t.Fatal("expected missing font to fail rendering")
	}

	if buf.Len() != 0 {
		t.Fatalf("expected no output, got %d bytes", buf.Len())
	}
}

func TestStatementPDF_UTF8Font(t *testing.T) {
	font := os.Getenv("CLEARLEDGER_TEST_FONT")
	if font == "" {
		t.Skip("CLEARLEDGER_TEST_FONT not set")
	}

	s := sampleStatement(t)
	s.Client.Name = "شركة النور"
	s.Transactions[0].Note = "دفعة أولى"

	var buf bytes.Buffer
	if err := NewStatementPDF("كشف حساب", WithUTF8Font(font)).RenderStatement(&buf, s, time.Now()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Fatal("expected PDF header")
	}
}

func TestStatementPDF_Details(t *testing.T) {
	receipt := domain.ReceiptTransaction(&domain.Receipt{ID: "RCPT-1", City: domain.CityErbil, Driver: "Karim"})
	payment := domain.PaymentTransaction(&domain.Payment{ID: "PAY-1", Method: domain.PaymentMethodBankTransfer})

	tests := []struct {
		name string
		pdf  *StatementPDF
		tx   domain.Transaction
		want string
	}{
		{"receipt code", NewStatementPDF(""), receipt, "erbil / Karim"},
		{"payment code", NewStatementPDF(""), payment, "bank_transfer"},
		{"receipt label", NewStatementPDF("", WithUTF8Font("font.ttf")), receipt, domain.CityErbil.Label() + " / Karim"},
		{"payment label", NewStatementPDF("", WithUTF8Font("font.ttf")), payment, domain.PaymentMethodBankTransfer.Label()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.pdf.details(tt.tx); got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Fatalf("unexpected %q", got)
	}

	if got := truncate("abcdefghij", 5); got != "abcd…" {
		t.Fatalf("unexpected %q", got)
	}
}
