package dto

import (
	"time"

	"github.com/Erenishere/pharam-sub003/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateDoubleEntryRequest carries the inputs for one balanced posting.
type CreateDoubleEntryRequest struct {
	DebitRef        domain.AccountRef    `json:"debitRef" validate:"required"`
	CreditRef       domain.AccountRef    `json:"creditRef" validate:"required"`
	Amount          decimal.Decimal      `json:"amount" validate:"required"`
	Description     string               `json:"description" validate:"max=500"`
	ReferenceType   domain.ReferenceType `json:"referenceType" validate:"required"`
	ReferenceID     string               `json:"referenceID"`
	TransactionDate *time.Time           `json:"transactionDate"` // Defaults to now
	CurrencyCode    string               `json:"currencyCode"`    // Defaults to the home currency
	ExchangeRate    *decimal.Decimal     `json:"exchangeRate"`    // Defaults to 1
}

// EntryResponse defines the data returned for a ledger entry.
type EntryResponse struct {
	EntryID         string          `json:"entryID"`
	Ref             string          `json:"ref"`
	Type            string          `json:"type"` // DEBIT or CREDIT
	Amount          decimal.Decimal `json:"amount"`
	Description     string          `json:"description"`
	ReferenceType   string          `json:"referenceType"`
	ReferenceID     string          `json:"referenceID,omitempty"`
	TransactionDate time.Time       `json:"transactionDate"`
	CurrencyCode    string          `json:"currencyCode"`
	CreatedAt       time.Time       `json:"createdAt"`
	CreatedBy       string          `json:"createdBy"`
}

// ToEntryResponse converts a domain.LedgerEntry to EntryResponse.
func ToEntryResponse(e *domain.LedgerEntry) EntryResponse {
	return EntryResponse{
		EntryID:         e.EntryID,
		Ref:             e.Ref.String(),
		Type:            string(e.TransactionType),
		Amount:          e.Amount,
		Description:     e.Description,
		ReferenceType:   string(e.ReferenceType),
		ReferenceID:     e.ReferenceID,
		TransactionDate: e.TransactionDate,
		CurrencyCode:    e.CurrencyCode,
		CreatedAt:       e.CreatedAt,
		CreatedBy:       e.CreatedBy,
	}
}

// ToEntryResponses converts a slice of entries.
func ToEntryResponses(entries []domain.LedgerEntry) []EntryResponse {
	responses := make([]EntryResponse, len(entries))
	for i := range entries {
		responses[i] = ToEntryResponse(&entries[i])
	}
	return responses
}

// StatementLine is one entry of a statement together with the balance after it.
type StatementLine struct {
	Entry          EntryResponse   `json:"entry"`
	RunningBalance decimal.Decimal `json:"runningBalance"`
}

// StatementResponse is the result of a statement over a date range.
type StatementResponse struct {
	Ref            string          `json:"ref"`
	StartDate      time.Time       `json:"startDate"`
	EndDate        time.Time       `json:"endDate"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	Lines          []StatementLine `json:"lines"`
	ClosingBalance decimal.Decimal `json:"closingBalance"`
}

// ListEntriesParams holds pagination parameters for listing entries.
type ListEntriesParams struct {
	Limit     int     `json:"limit"`
	NextToken *string `json:"nextToken"`
}

// ListEntriesResponse is a paginated page of entries.
type ListEntriesResponse struct {
	Entries   []EntryResponse `json:"entries"`
	NextToken *string         `json:"nextToken,omitempty"`
}
