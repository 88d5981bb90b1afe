package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"scbank/internal/core"
	"scbank/internal/query"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed encoding response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// DTOs. Amounts travel as cents plus a preformatted decimal string so
// clients never re-derive money formatting.

type moneyDTO struct {
	Cents   int64  `json:"cents"`
	Decimal string `json:"decimal"`
}

func toMoneyDTO(m core.Money) moneyDTO {
	return moneyDTO{Cents: m.Cents, Decimal: m.DecimalString()}
}

type accountDTO struct {
	ID      string   `json:"id"`
	Type    string   `json:"type"`
	Number  string   `json:"number"`
	Balance moneyDTO `json:"balance"`
	Change  moneyDTO `json:"change"`
}

func toAccountDTO(a core.Account) accountDTO {
	return accountDTO{
		ID:      a.ID,
		Type:    a.Type,
		Number:  a.Number,
		Balance: toMoneyDTO(a.Balance),
		Change:  toMoneyDTO(a.Change),
	}
}

type transactionDTO struct {
	ID             string   `json:"id"`
	Type           string   `json:"type"`
	Description    string   `json:"description"`
	Date           string   `json:"date"`
	Amount         moneyDTO `json:"amount"`
	AccountID      string   `json:"accountId"`
	Category       string   `json:"category"`
	CategoryIcon   string   `json:"categoryIcon"`
	Status         string   `json:"status"`
	RunningBalance moneyDTO `json:"runningBalance"`
	MerchantLogo   string   `json:"merchantLogo,omitempty"`
}

func (s *Server) toTransactionDTO(tx core.Transaction) transactionDTO {
	return transactionDTO{
		ID:             tx.ID,
		Type:           string(tx.Type),
		Description:    tx.Description,
		Date:           tx.Date.UTC().Format(time.RFC3339),
		Amount:         toMoneyDTO(tx.Amount),
		AccountID:      tx.AccountID,
		Category:       tx.Category,
		CategoryIcon:   s.catalog.IconFor(tx.Category),
		Status:         string(tx.Status),
		RunningBalance: toMoneyDTO(tx.RunningBalance),
		MerchantLogo:   tx.MerchantLogo,
	}
}

func (s *Server) toTransactionDTOs(records []core.Transaction) []transactionDTO {
	out := make([]transactionDTO, len(records))
	for i, tx := range records {
		out[i] = s.toTransactionDTO(tx)
	}
	return out
}

type receiptItemDTO struct {
	Name     string   `json:"name"`
	Quantity int      `json:"quantity"`
	Price    moneyDTO `json:"price"`
}

type receiptDTO struct {
	ID       string           `json:"id"`
	Vendor   string           `json:"vendor"`
	Date     string           `json:"date"`
	Total    moneyDTO         `json:"total"`
	Category string           `json:"category"`
	Items    []receiptItemDTO `json:"items"`
}

func toReceiptDTO(r core.Receipt) receiptDTO {
	items := make([]receiptItemDTO, len(r.Items))
	for i, it := range r.Items {
		items[i] = receiptItemDTO{Name: it.Name, Quantity: it.Quantity, Price: toMoneyDTO(it.Price)}
	}
	return receiptDTO{
		ID:       r.ID,
		Vendor:   r.Vendor,
		Date:     r.Date.UTC().Format(time.RFC3339),
		Total:    toMoneyDTO(r.Total),
		Category: r.Category,
		Items:    items,
	}
}

type pillDTO struct {
	Kind  string `json:"kind"`
	Value string `json:"value,omitempty"`
	Label string `json:"label"`
}

func toPillDTOs(pills []query.Pill) []pillDTO {
	out := make([]pillDTO, len(pills))
	for i, p := range pills {
		out[i] = pillDTO{Kind: p.Kind, Value: p.Value, Label: p.Label}
	}
	return out
}

// criteriaDTO echoes criteria back to the client after pill removal.
type criteriaDTO struct {
	Search    string   `json:"search"`
	Type      string   `json:"type"`
	Accounts  []string `json:"accounts"`
	Category  string   `json:"category"`
	DateStart string   `json:"dateStart,omitempty"`
	DateEnd   string   `json:"dateEnd,omitempty"`
}

func toCriteriaDTO(c core.FilterCriteria) criteriaDTO {
	dto := criteriaDTO{
		Search:   c.SearchTerm,
		Type:     c.Type,
		Accounts: c.AccountIDs,
		Category: c.Category,
	}
	if dto.Accounts == nil {
		dto.Accounts = []string{}
	}
	if !c.DateRange.Start.IsZero() {
		dto.DateStart = c.DateRange.Start.Format(dateParamLayout)
	}
	if !c.DateRange.End.IsZero() {
		dto.DateEnd = c.DateRange.End.Format(dateParamLayout)
	}
	return dto
}
