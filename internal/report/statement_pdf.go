// Package report renders account statements for printing.
package report

import (
	"fmt"
	"io"
	"time"

	"github.com/jung-kurt/gofpdf/v2"
	"github.com/shopspring/decimal"

	"github.com/iho/clearledger/internal/domain"
)

const pageWidth = 190

const utf8Family = "statement"

// StatementPDF renders an account statement as an A4 PDF document.
//
// Without a UTF-8 font the core Arial font is used and text outside
// Windows-1252 is lost, so cities and methods print as their codes. With
// one, Arabic labels print as stored, in logical order and unshaped.
type StatementPDF struct {
	title    string
	fontFile string
}

// Option configures a StatementPDF.
type Option func(*StatementPDF)

// WithUTF8Font embeds the TrueType font at path and uses it for every style.
func WithUTF8Font(path string) Option {
	return func(p *StatementPDF) {
		p.fontFile = path
	}
}

// NewStatementPDF creates a renderer. An empty title uses the default heading.
func NewStatementPDF(title string, opts ...Option) *StatementPDF {
	if title == "" {
		title = "Account Statement"
	}

	p := &StatementPDF{title: title}
	for _, opt := range opts {
		opt(p)
	}

	return p
}

// newDocument returns the document with its font family and a translator
// for the text passed to it.
func (p *StatementPDF) newDocument() (*gofpdf.Fpdf, string, func(string) string) {
	pdf := gofpdf.New("P", "mm", "A4", "")

	if p.fontFile == "" {
		return pdf, "Arial", pdf.UnicodeTranslatorFromDescriptor("")
	}

	for _, style := range []string{"", "B", "I"} {
		pdf.AddUTF8Font(utf8Family, style, p.fontFile)
	}

	return pdf, utf8Family, func(s string) string { return s }
}

// RenderStatement writes the statement to w.
func (p *StatementPDF) RenderStatement(w io.Writer, s *domain.AccountStatement, generatedAt time.Time) error {
	if s == nil || s.Client == nil {
		return domain.ErrClientNotFound
	}

	pdf, family, tr := p.newDocument()
	if err := pdf.Error(); err != nil {
		return fmt.Errorf("load statement font: %w", err)
	}

	pdf.SetMargins(10, 10, 10)
	pdf.SetTitle(p.title, true)
	pdf.AddPage()

	pdf.SetFont(family, "B", 16)
	pdf.CellFormat(pageWidth, 10, tr(p.title), "", 1, "C", false, 0, "")
	pdf.SetFont(family, "", 10)
	pdf.CellFormat(pageWidth, 6, fmt.Sprintf("Generated: %s", generatedAt.Format("02-Jan-2006 15:04")), "", 1, "C", false, 0, "")
	pdf.Ln(5)

	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont(family, "B", 12)
	pdf.CellFormat(pageWidth, 8, "Client", "1", 1, "L", true, 0, "")
	pdf.SetFont(family, "", 11)
	pdf.CellFormat(95, 7, tr("Name: "+s.Client.Name), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, tr("Phone: "+s.Client.Phone), "RB", 1, "L", false, 0, "")
	pdf.CellFormat(95, 7, tr("Company: "+s.Client.Company), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, "ID: "+s.Client.ID, "RB", 1, "L", false, 0, "")
	pdf.Ln(5)

	pdf.SetFont(family, "B", 12)
	pdf.CellFormat(pageWidth, 8, "Summary", "1", 1, "L", true, 0, "")
	pdf.SetFont(family, "", 11)
	pdf.CellFormat(63, 8, "Receipts: "+formatAmount(s.TotalReceipts), "1", 0, "C", false, 0, "")
	pdf.CellFormat(63, 8, "Payments: "+formatAmount(s.TotalPayments), "1", 0, "C", false, 0, "")
	pdf.CellFormat(64, 8, "Balance: "+formatAmount(s.Balance), "1", 1, "C", false, 0, "")

	if len(s.Malformed) > 0 {
		pdf.SetFont(family, "I", 9)
		pdf.MultiCell(pageWidth, 5, fmt.Sprintf("%d record(s) with missing amounts were counted as zero.", len(s.Malformed)), "", "L", false)
	}
	pdf.Ln(5)

	pdf.SetFont(family, "B", 12)
	pdf.CellFormat(pageWidth, 8, "Transactions", "1", 1, "L", true, 0, "")

	pdf.SetFont(family, "B", 10)
	pdf.SetFillColor(200, 200, 200)
	pdf.CellFormat(28, 7, "Date", "1", 0, "C", true, 0, "")
	pdf.CellFormat(24, 7, "Type", "1", 0, "C", true, 0, "")
	pdf.CellFormat(40, 7, "Details", "1", 0, "C", true, 0, "")
	pdf.CellFormat(33, 7, "Debit", "1", 0, "C", true, 0, "")
	pdf.CellFormat(33, 7, "Credit", "1", 0, "C", true, 0, "")
	pdf.CellFormat(32, 7, "Note", "1", 1, "C", true, 0, "")

	pdf.SetFont(family, "", 9)
	if len(s.Transactions) == 0 {
		pdf.CellFormat(pageWidth, 6, "No transactions", "1", 1, "C", false, 0, "")
	}

	for _, tx := range s.Transactions {
		debit, credit := "", ""
		amount := formatAmount(tx.Amount)
		if !tx.Valid {
			amount = "-"
		}

		kind := "Receipt"
		if tx.Kind == domain.TransactionKindReceipt {
			debit = amount
		} else {
			kind, credit = "Payment", amount
		}
		details := p.details(tx)

		pdf.CellFormat(28, 6, tx.Date.String(), "1", 0, "C", false, 0, "")
		pdf.CellFormat(24, 6, kind, "1", 0, "C", false, 0, "")
		pdf.CellFormat(40, 6, tr(truncate(details, 28)), "1", 0, "L", false, 0, "")
		pdf.CellFormat(33, 6, debit, "1", 0, "R", false, 0, "")
		pdf.CellFormat(33, 6, credit, "1", 0, "R", false, 0, "")
		pdf.CellFormat(32, 6, tr(truncate(tx.Note, 20)), "1", 1, "L", false, 0, "")
	}

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("render statement: %w", err)
	}

	return pdf.Output(w)
}

// details describes where a receipt came from or how a payment was made.
// Arabic labels are only used when the document can show them.
func (p *StatementPDF) details(tx domain.Transaction) string {
	switch {
	case tx.Receipt != nil:
		city := string(tx.Receipt.City)
		if p.fontFile != "" && tx.Receipt.City.Label() != "" {
			city = tx.Receipt.City.Label()
		}
		if tx.Receipt.Driver == "" {
			return city
		}
		return city + " / " + tx.Receipt.Driver
	case tx.Payment != nil:
		if p.fontFile != "" && tx.Payment.Method.Label() != "" {
			return tx.Payment.Method.Label()
		}
		return string(tx.Payment.Method)
	}
	return ""
}

func formatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}

	return string(r[:n-1]) + "…"
}
