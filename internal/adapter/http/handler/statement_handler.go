package handler

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/iho/clearledger/internal/adapter/http/dto"
	"github.com/iho/clearledger/internal/domain"
	"github.com/iho/clearledger/internal/usecase"
)

// StatementService defines the behavior needed for account statements.
type StatementService interface {
	GetStatement(ctx context.Context, clientID string) (*domain.AccountStatement, error)
}

// StatsService defines the behavior needed for organization-wide stats.
type StatsService interface {
	GetStats(ctx context.Context) (*domain.Stats, error)
}

// ReconciliationService defines the behavior needed for storage cross-checks.
type ReconciliationService interface {
	GenerateReconciliationReport(ctx context.Context) (*usecase.ReconciliationReport, error)
}

// StatementRenderer renders a statement as a printable document.
type StatementRenderer interface {
	RenderStatement(w io.Writer, statement *domain.AccountStatement, generatedAt time.Time) error
}

// StatementHandler serves account statements, stats and reconciliation.
type StatementHandler struct {
	statementUC      StatementService
	statsUC          StatsService
	reconciliationUC ReconciliationService
	renderer         StatementRenderer
	now              func() time.Time
}

// NewStatementHandler creates a new StatementHandler. renderer may be nil,
// in which case PDF export answers 501.
func NewStatementHandler(
	statementUC StatementService,
	statsUC StatsService,
	reconciliationUC ReconciliationService,
	renderer StatementRenderer,
) *StatementHandler {
	return &StatementHandler{
		statementUC:      statementUC,
		statsUC:          statsUC,
		reconciliationUC: reconciliationUC,
		renderer:         renderer,
		now:              time.Now,
	}
}

// Statement returns the account statement of a client. The optional kind,
// from and to query parameters narrow the listed records. Totals always
// cover the whole account.
func (h *StatementHandler) Statement(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "client")
	if !ok {
		return
	}

	filter, err := transactionFilter(r)
	if err != nil {
		writeDomainError(w, r, "invalid statement filter", err)
		return
	}

	statement, err := h.statementUC.GetStatement(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, "failed to build statement", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.StatementFromDomain(statement.Narrow(filter)))
}

// transactionFilter reads ?kind=receipt|payment&from=YYYY-MM-DD&to=YYYY-MM-DD.
func transactionFilter(r *http.Request) (domain.TransactionFilter, error) {
	q := r.URL.Query()
	filter := domain.TransactionFilter{Kind: domain.TransactionKind(strings.ToLower(strings.TrimSpace(q.Get("kind"))))}

	var err error
	if v := q.Get("from"); v != "" {
		if filter.From, err = domain.ParseDate(v); err != nil {
			return filter, err
		}
	}
	if v := q.Get("to"); v != "" {
		if filter.To, err = domain.ParseDate(v); err != nil {
			return filter, err
		}
	}

	return filter, filter.Validate()
}

// StatementPDF returns the account statement of a client as a PDF.
func (h *StatementHandler) StatementPDF(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "client")
	if !ok {
		return
	}

	if h.renderer == nil {
		writeError(w, http.StatusNotImplemented, "pdf export is not configured", "")
		return
	}

	filter, err := transactionFilter(r)
	if err != nil {
		writeDomainError(w, r, "invalid statement filter", err)
		return
	}

	statement, err := h.statementUC.GetStatement(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, "failed to build statement", err)
		return
	}

	var buf bytes.Buffer
	if err := h.renderer.RenderStatement(&buf, statement.Narrow(filter), h.now()); err != nil {
		writeDomainError(w, r, "failed to render statement", err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="statement-%s.pdf"`, id))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	buf.WriteTo(w)
}

// Stats returns organization-wide counts and totals.
func (h *StatementHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.statsUC.GetStats(r.Context())
	if err != nil {
		writeDomainError(w, r, "failed to compute stats", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.StatsFromDomain(stats))
}

// Reconciliation cross-checks in-memory totals against the database.
func (h *StatementHandler) Reconciliation(w http.ResponseWriter, r *http.Request) {
	report, err := h.reconciliationUC.GenerateReconciliationReport(r.Context())
	if err != nil {
		writeDomainError(w, r, "failed to reconcile", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ReconciliationFromReport(report))
}
