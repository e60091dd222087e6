package dto

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/clearledger/internal/domain"
	"github.com/iho/clearledger/internal/usecase"
)

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// ClientResponse represents a client in API responses.
type ClientResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Company   string    `json:"company"`
	CreatedAt time.Time `json:"created_at"`
}

// ClientFromDomain converts domain client to response.
func ClientFromDomain(c *domain.Client) *ClientResponse {
	return &ClientResponse{
		ID:        c.ID,
		Name:      c.Name,
		Phone:     c.Phone,
		Company:   c.Company,
		CreatedAt: c.CreatedAt,
	}
}

// ClientsFromDomain converts domain clients to responses.
func ClientsFromDomain(clients []*domain.Client) []*ClientResponse {
	result := make([]*ClientResponse, len(clients))
	for i, c := range clients {
		result[i] = ClientFromDomain(c)
	}
	return result
}

// ReceiptResponse represents a receipt in API responses. Amount is null
// when the stored value is missing or unreadable.
type ReceiptResponse struct {
	ID        string    `json:"id"`
	ClientID  string    `json:"client_id"`
	Date      string    `json:"date"`
	Driver    string    `json:"driver"`
	Car       string    `json:"car"`
	City      string    `json:"city"`
	CityLabel string    `json:"city_label"`
	Note      string    `json:"note"`
	Amount    *string   `json:"amount"`
	CreatedAt time.Time `json:"created_at"`
}

// ReceiptFromDomain converts domain receipt to response.
func ReceiptFromDomain(r *domain.Receipt) *ReceiptResponse {
	return &ReceiptResponse{
		ID:        r.ID,
		ClientID:  r.ClientID,
		Date:      r.Date.String(),
		Driver:    r.Driver,
		Car:       r.Car,
		City:      string(r.City),
		CityLabel: r.City.Label(),
		Note:      r.Note,
		Amount:    formatNullAmount(r.Amount),
		CreatedAt: r.CreatedAt,
	}
}

// ReceiptsFromDomain converts domain receipts to responses.
func ReceiptsFromDomain(receipts []*domain.Receipt) []*ReceiptResponse {
	result := make([]*ReceiptResponse, len(receipts))
	for i, r := range receipts {
		result[i] = ReceiptFromDomain(r)
	}
	return result
}

// PaymentResponse represents a payment in API responses.
type PaymentResponse struct {
	ID          string    `json:"id"`
	ClientID    string    `json:"client_id"`
	Date        string    `json:"date"`
	Amount      *string   `json:"amount"`
	Method      string    `json:"method"`
	MethodLabel string    `json:"method_label"`
	Note        string    `json:"note"`
	CreatedAt   time.Time `json:"created_at"`
}

// PaymentFromDomain converts domain payment to response.
func PaymentFromDomain(p *domain.Payment) *PaymentResponse {
	return &PaymentResponse{
		ID:          p.ID,
		ClientID:    p.ClientID,
		Date:        p.Date.String(),
		Amount:      formatNullAmount(p.Amount),
		Method:      string(p.Method),
		MethodLabel: p.Method.Label(),
		Note:        p.Note,
		CreatedAt:   p.CreatedAt,
	}
}

// PaymentsFromDomain converts domain payments to responses.
func PaymentsFromDomain(payments []*domain.Payment) []*PaymentResponse {
	result := make([]*PaymentResponse, len(payments))
	for i, p := range payments {
		result[i] = PaymentFromDomain(p)
	}
	return result
}

// TransactionResponse is one line of the merged history.
type TransactionResponse struct {
	Kind     string `json:"kind"`
	ID       string `json:"id"`
	ClientID string `json:"client_id"`
	Date     string `json:"date"`
	Amount   string `json:"amount"`
	Note     string `json:"note"`
	Valid    bool   `json:"valid"`
}

// TransactionsFromDomain converts normalized transactions to responses.
func TransactionsFromDomain(txs []domain.Transaction) []TransactionResponse {
	result := make([]TransactionResponse, len(txs))
	for i, tx := range txs {
		result[i] = TransactionResponse{
			Kind:     string(tx.Kind),
			ID:       tx.ID,
			ClientID: tx.ClientID,
			Date:     tx.Date.String(),
			Amount:   domain.FormatAmount(tx.Amount),
			Note:     tx.Note,
			Valid:    tx.Valid,
		}
	}
	return result
}

// StatementResponse is the account statement of one client.
type StatementResponse struct {
	Client        *ClientResponse       `json:"client"`
	TotalReceipts string                `json:"total_receipts"`
	TotalPayments string                `json:"total_payments"`
	Balance       string                `json:"balance"`
	Transactions  []TransactionResponse `json:"transactions"`
	Receipts      []*ReceiptResponse    `json:"receipts"`
	Payments      []*PaymentResponse    `json:"payments"`
	Malformed     []string              `json:"malformed,omitempty"`
}

// StatementFromDomain converts an account statement to response.
func StatementFromDomain(s *domain.AccountStatement) *StatementResponse {
	return &StatementResponse{
		Client:        ClientFromDomain(s.Client),
		TotalReceipts: domain.FormatAmount(s.TotalReceipts),
		TotalPayments: domain.FormatAmount(s.TotalPayments),
		Balance:       domain.FormatAmount(s.Balance),
		Transactions:  TransactionsFromDomain(s.Transactions),
		Receipts:      ReceiptsFromDomain(s.Receipts),
		Payments:      PaymentsFromDomain(s.Payments),
		Malformed:     s.Malformed,
	}
}

// StatsResponse represents organization-wide totals.
type StatsResponse struct {
	ClientsCount  int    `json:"clients_count"`
	ReceiptsCount int    `json:"receipts_count"`
	PaymentsCount int    `json:"payments_count"`
	TotalReceipts string `json:"total_receipts"`
	TotalPayments string `json:"total_payments"`
	Balance       string `json:"balance"`
}

// StatsFromDomain converts stats to response.
func StatsFromDomain(s *domain.Stats) *StatsResponse {
	return &StatsResponse{
		ClientsCount:  s.ClientsCount,
		ReceiptsCount: s.ReceiptsCount,
		PaymentsCount: s.PaymentsCount,
		TotalReceipts: domain.FormatAmount(s.TotalReceipts),
		TotalPayments: domain.FormatAmount(s.TotalPayments),
		Balance:       domain.FormatAmount(s.Balance),
	}
}

// TrashItemResponse represents a trashed record.
type TrashItemResponse struct {
	ID        string          `json:"id"`
	ItemType  string          `json:"item_type"`
	Data      json.RawMessage `json:"data"`
	DeletedAt time.Time       `json:"deleted_at"`
}

// TrashItemFromDomain converts a trash item to response.
func TrashItemFromDomain(t *domain.TrashItem) *TrashItemResponse {
	return &TrashItemResponse{
		ID:        t.ID,
		ItemType:  string(t.ItemType),
		Data:      t.Data,
		DeletedAt: t.DeletedAt,
	}
}

// TrashItemsFromDomain converts trash items to responses.
func TrashItemsFromDomain(items []*domain.TrashItem) []*TrashItemResponse {
	result := make([]*TrashItemResponse, len(items))
	for i, t := range items {
		result[i] = TrashItemFromDomain(t)
	}
	return result
}

// ReconciliationResponse is the outcome of a storage cross-check.
type ReconciliationResponse struct {
	Stats            *StatsResponse        `json:"stats"`
	Consistent       bool                  `json:"consistent"`
	Discrepancies    []usecase.Discrepancy `json:"discrepancies"`
	MalformedRecords []string              `json:"malformed_records"`
	NullAmounts      int64                 `json:"null_amounts"`
	CheckedAt        time.Time             `json:"checked_at"`
}

// ReconciliationFromReport converts a reconciliation report to response.
func ReconciliationFromReport(r *usecase.ReconciliationReport) *ReconciliationResponse {
	discrepancies := r.Discrepancies
	if discrepancies == nil {
		discrepancies = []usecase.Discrepancy{}
	}
	malformed := r.MalformedRecords
	if malformed == nil {
		malformed = []string{}
	}

	return &ReconciliationResponse{
		Stats:            StatsFromDomain(r.Stats),
		Consistent:       r.Consistent,
		Discrepancies:    discrepancies,
		MalformedRecords: malformed,
		NullAmounts:      r.NullAmounts,
		CheckedAt:        r.CheckedAt,
	}
}

// ListClientsResponse represents a page of clients.
type ListClientsResponse struct {
	Clients []*ClientResponse `json:"clients"`
	Limit   int               `json:"limit"`
	Offset  int               `json:"offset"`
}

// ListReceiptsResponse represents a page of receipts.
type ListReceiptsResponse struct {
	Receipts []*ReceiptResponse `json:"receipts"`
	Limit    int                `json:"limit,omitempty"`
	Offset   int                `json:"offset,omitempty"`
}

// ListPaymentsResponse represents a page of payments.
type ListPaymentsResponse struct {
	Payments []*PaymentResponse `json:"payments"`
	Limit    int                `json:"limit,omitempty"`
	Offset   int                `json:"offset,omitempty"`
}

// ListTrashResponse represents a page of trash items.
type ListTrashResponse struct {
	Items  []*TrashItemResponse `json:"items"`
	Limit  int                  `json:"limit"`
	Offset int                  `json:"offset"`
}

// EmptyTrashResponse reports how many items were purged.
type EmptyTrashResponse struct {
	Deleted int64 `json:"deleted"`
}

func formatNullAmount(a decimal.NullDecimal) *string {
	if !a.Valid {
		return nil
	}
	s := domain.FormatAmount(a.Decimal)
	return &s
}

// EnumValue is an accepted code with its Arabic display label.
type EnumValue struct {
	Code  string `json:"code"`
	Label string `json:"label"`
}

// EnumsResponse lists the accepted cities and payment methods in display
// order.
type EnumsResponse struct {
	Cities         []EnumValue `json:"cities"`
	PaymentMethods []EnumValue `json:"payment_methods"`
}

// Enums builds the reference data served to form clients.
func Enums() *EnumsResponse {
	resp := &EnumsResponse{}
	for _, c := range domain.Cities() {
		resp.Cities = append(resp.Cities, EnumValue{Code: string(c), Label: c.Label()})
	}
	for _, m := range domain.PaymentMethods() {
		resp.PaymentMethods = append(resp.PaymentMethods, EnumValue{Code: string(m), Label: m.Label()})
	}
	return resp
}
