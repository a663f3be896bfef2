package dto

import (
	"github.com/Erenishere/pharam-sub003/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SchemeItem carries the scheme quantities for one invoice line.
type SchemeItem struct {
	LineID          string          `json:"lineID" validate:"required"`
	Scheme1Quantity decimal.Decimal `json:"scheme1Quantity"`
	Scheme2Quantity decimal.Decimal `json:"scheme2Quantity"`
	ClaimAccountID  string          `json:"claimAccountID"` // Required when Scheme2Quantity > 0
}

// SchemeRecordingResult is the outcome of persisting scheme quantities.
type SchemeRecordingResult struct {
	InvoiceID    string          `json:"invoiceID"`
	Items        []SchemeItem    `json:"items"`
	TotalScheme1 decimal.Decimal `json:"totalScheme1"`
	TotalScheme2 decimal.Decimal `json:"totalScheme2"`
}

// SchemeSettlementResult is the outcome of linking an invoice's scheme2 value
// to a claim account and posting its settlement.
type SchemeSettlementResult struct {
	Invoice           *domain.Invoice `json:"invoice"`
	ClaimAccount      *domain.Account `json:"claimAccount"`
	LedgerEntries     []EntryResponse `json:"ledgerEntries"` // Exactly two on success
	TotalScheme2Value decimal.Decimal `json:"totalScheme2Value"`
}

// SchemeApplicationResult merges recording and (optional) settlement.
// Settlement is nil when the invoice carried no scheme2 quantities; in that
// case the ledger was never touched.
type SchemeApplicationResult struct {
	Recording  *SchemeRecordingResult  `json:"recording"`
	Settlement *SchemeSettlementResult `json:"settlement,omitempty"`
}
