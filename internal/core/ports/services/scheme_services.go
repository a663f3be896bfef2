package services

import (
	"context"

	"github.com/Erenishere/pharam-sub003/internal/dto"
)

// SchemeSvcFacade exposes the scheme settlement orchestrator: it glues an
// invoice's scheme quantities to a claim account and drives the ledger engine
// to post the monetary consequence.
type SchemeSvcFacade interface {
	// RecordSchemeQuantities persists per-line scheme quantities and returns
	// the recorded set with aggregate totals. No ledger effect.
	RecordSchemeQuantities(ctx context.Context, invoiceID string, items []dto.SchemeItem, actor string) (*dto.SchemeRecordingResult, error)

	// LinkSchemeToClaimAccount validates the claim account, computes the
	// invoice's scheme2 value, posts the settlement pair (debit claim
	// account, credit customer) and records the association on the invoice.
	LinkSchemeToClaimAccount(ctx context.Context, invoiceID string, claimAccountID string, actor string) (*dto.SchemeSettlementResult, error)

	// ProcessSchemeApplication records quantities, then settles through
	// LinkSchemeToClaimAccount only when any scheme2 quantity exists.
	ProcessSchemeApplication(ctx context.Context, invoiceID string, items []dto.SchemeItem, actor string) (*dto.SchemeApplicationResult, error)
}
