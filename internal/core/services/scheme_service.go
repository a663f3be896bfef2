package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Erenishere/pharam-sub003/internal/apperrors"
	"github.com/Erenishere/pharam-sub003/internal/core/domain"
	portsrepo "github.com/Erenishere/pharam-sub003/internal/core/ports/repositories"
	portssvc "github.com/Erenishere/pharam-sub003/internal/core/ports/services"
	"github.com/Erenishere/pharam-sub003/internal/dto"
	"github.com/Erenishere/pharam-sub003/pkg/logging"
)

var (
	// ErrMissingInvoiceID is returned when no invoice was named.
	ErrMissingInvoiceID = fmt.Errorf("%w: invoice ID", apperrors.ErrMissingArgument)

	// ErrMissingSchemeItems is returned when a scheme application carries no items.
	ErrMissingSchemeItems = fmt.Errorf("%w: scheme items", apperrors.ErrMissingArgument)

	// ErrMissingActor is returned when no actor identity was supplied.
	ErrMissingActor = fmt.Errorf("%w: actor", apperrors.ErrMissingArgument)

	// ErrClaimAccountRequiredForScheme2 is returned when a line carries a
	// scheme2 quantity but names no claim account. Nothing is posted.
	ErrClaimAccountRequiredForScheme2 = errors.New("claim account is required for items with scheme2 quantity")

	// ErrNoScheme2Quantities is returned when a claim link was requested but
	// the invoice has nothing to settle.
	ErrNoScheme2Quantities = errors.New("invoice has no scheme2 quantities to settle")

	// ErrMultipleClaimAccounts is returned when scheme2 items reference more
	// than one claim account; a settlement posts against exactly one.
	ErrMultipleClaimAccounts = errors.New("scheme2 items must reference a single claim account")

	// ErrSchemeLineNotFound is returned when a scheme item names a line that
	// is not on the invoice.
	ErrSchemeLineNotFound = errors.New("scheme item references unknown invoice line")
)

// schemeService glues invoice scheme quantities to claim accounts and drives
// the ledger engine to post the monetary consequence. Scheme1 quantities are
// free goods with no accounting effect; only the scheme2 aggregate reaches
// the ledger.
type schemeService struct {
	invoiceRepo    portsrepo.InvoiceRepositoryFacade
	claimValidator portssvc.ClaimAccountValidatorFacade
	ledgerSvc      portssvc.LedgerSvcFacade
}

// NewSchemeService creates a new scheme settlement orchestrator.
func NewSchemeService(invoiceRepo portsrepo.InvoiceRepositoryFacade, claimValidator portssvc.ClaimAccountValidatorFacade, ledgerSvc portssvc.LedgerSvcFacade) portssvc.SchemeSvcFacade {
	return &schemeService{
		invoiceRepo:    invoiceRepo,
		claimValidator: claimValidator,
		ledgerSvc:      ledgerSvc,
	}
}

var _ portssvc.SchemeSvcFacade = (*schemeService)(nil)

// RecordSchemeQuantities persists per-line scheme1/scheme2 quantities on the
// invoice and returns the recorded set with aggregate totals.
func (s *schemeService) RecordSchemeQuantities(ctx context.Context, invoiceID string, items []dto.SchemeItem, actor string) (*dto.SchemeRecordingResult, error) {
	logger := logging.FromContext(ctx)

	if invoiceID == "" {
		return nil, ErrMissingInvoiceID
	}
	if len(items) == 0 {
		return nil, ErrMissingSchemeItems
	}
	if actor == "" {
		return nil, ErrMissingActor
	}
	for _, item := range items {
		if err := dto.Validate(item); err != nil {
			return nil, err
		}
		if item.Scheme1Quantity.IsNegative() || item.Scheme2Quantity.IsNegative() {
			return nil, fmt.Errorf("%w: scheme quantities must not be negative for line %s", apperrors.ErrValidation, item.LineID)
		}
	}

	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to find invoice %s: %w", invoiceID, err)
	}

	lineIndex := make(map[string]int, len(invoice.Lines))
	for i, line := range invoice.Lines {
		lineIndex[line.LineID] = i
	}

	totalScheme1 := decimal.Zero
	totalScheme2 := decimal.Zero
	for _, item := range items {
		i, ok := lineIndex[item.LineID]
		if !ok {
			return nil, fmt.Errorf("%w: line %s on invoice %s", ErrSchemeLineNotFound, item.LineID, invoiceID)
		}
		invoice.Lines[i].Scheme1Quantity = item.Scheme1Quantity
		invoice.Lines[i].Scheme2Quantity = item.Scheme2Quantity
		invoice.Lines[i].ClaimAccountID = item.ClaimAccountID
	}
	for _, line := range invoice.Lines {
		totalScheme1 = totalScheme1.Add(line.Scheme1Quantity)
		totalScheme2 = totalScheme2.Add(line.Scheme2Quantity)
	}
	invoice.TotalScheme1 = totalScheme1
	invoice.TotalScheme2 = totalScheme2

	now := time.Now().UTC()
	if err := s.invoiceRepo.UpdateSchemeQuantities(ctx, *invoice, actor, now); err != nil {
		logger.Error("Failed to persist scheme quantities", slog.String("error", err.Error()), slog.String("invoice_id", invoiceID))
		return nil, fmt.Errorf("failed to persist scheme quantities: %w", err)
	}

	logger.Info("Scheme quantities recorded",
		slog.String("invoice_id", invoiceID),
		slog.String("total_scheme1", totalScheme1.String()),
		slog.String("total_scheme2", totalScheme2.String()))
	return &dto.SchemeRecordingResult{
		InvoiceID:    invoiceID,
		Items:        items,
		TotalScheme1: totalScheme1,
		TotalScheme2: totalScheme2,
	}, nil
}

// LinkSchemeToClaimAccount validates the claim account, computes the
// invoice's scheme2 value and posts the settlement: debit the claim account,
// credit the invoice's customer.
func (s *schemeService) LinkSchemeToClaimAccount(ctx context.Context, invoiceID string, claimAccountID string, actor string) (*dto.SchemeSettlementResult, error) {
	logger := logging.FromContext(ctx)

	if invoiceID == "" {
		return nil, ErrMissingInvoiceID
	}
	if claimAccountID == "" {
		return nil, ErrMissingClaimAccountID
	}
	if actor == "" {
		return nil, ErrMissingActor
	}

	// The gate must run on every settlement; activation state is not cached.
	claimAccount, err := s.claimValidator.ValidateClaimAccount(ctx, claimAccountID)
	if err != nil {
		return nil, err
	}

	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to find invoice %s: %w", invoiceID, err)
	}

	totalScheme2Value := invoice.TotalScheme2Value()
	if totalScheme2Value.IsZero() {
		return nil, fmt.Errorf("%w: invoice %s", ErrNoScheme2Quantities, invoiceID)
	}

	entries, err := s.ledgerSvc.CreateDoubleEntry(ctx, dto.CreateDoubleEntryRequest{
		DebitRef:      domain.AccountRef{Kind: domain.RefAccount, ID: claimAccount.AccountID},
		CreditRef:     domain.AccountRef{Kind: domain.RefCustomer, ID: invoice.CustomerID},
		Amount:        totalScheme2Value,
		Description:   fmt.Sprintf("Scheme claim settlement for invoice %s", invoiceID),
		ReferenceType: domain.RefTypeSchemeClaim,
		ReferenceID:   invoiceID,
		CurrencyCode:  invoice.CurrencyCode,
	}, actor)
	if err != nil {
		return nil, fmt.Errorf("failed to post scheme settlement for invoice %s: %w", invoiceID, err)
	}

	now := time.Now().UTC()
	if err := s.invoiceRepo.SetClaimAccount(ctx, invoiceID, claimAccount.AccountID, actor, now); err != nil {
		// The posting committed; surface the association failure rather than
		// pretending the settlement did not happen.
		logger.Error("Failed to record claim account on invoice after settlement",
			slog.String("error", err.Error()), slog.String("invoice_id", invoiceID))
		return nil, fmt.Errorf("settlement posted but claim account link failed for invoice %s: %w", invoiceID, err)
	}
	invoice.ClaimAccountID = claimAccount.AccountID

	logger.Info("Scheme claim settled",
		slog.String("invoice_id", invoiceID),
		slog.String("claim_account_id", claimAccount.AccountID),
		slog.String("total_scheme2_value", totalScheme2Value.String()))
	return &dto.SchemeSettlementResult{
		Invoice:           invoice,
		ClaimAccount:      claimAccount,
		LedgerEntries:     dto.ToEntryResponses(entries),
		TotalScheme2Value: totalScheme2Value,
	}, nil
}

// ProcessSchemeApplication records scheme quantities and settles the scheme2
// value when any exists. With no scheme2 quantities the ledger engine is
// never invoked.
func (s *schemeService) ProcessSchemeApplication(ctx context.Context, invoiceID string, items []dto.SchemeItem, actor string) (*dto.SchemeApplicationResult, error) {
	if invoiceID == "" {
		return nil, ErrMissingInvoiceID
	}
	if len(items) == 0 {
		return nil, ErrMissingSchemeItems
	}
	if actor == "" {
		return nil, ErrMissingActor
	}

	// All validation happens before any write.
	claimAccountID := ""
	anyScheme2 := false
	for _, item := range items {
		if !item.Scheme2Quantity.IsPositive() {
			continue
		}
		anyScheme2 = true
		if item.ClaimAccountID == "" {
			return nil, fmt.Errorf("%w: line %s", ErrClaimAccountRequiredForScheme2, item.LineID)
		}
		if claimAccountID == "" {
			claimAccountID = item.ClaimAccountID
		} else if claimAccountID != item.ClaimAccountID {
			return nil, fmt.Errorf("%w: %s and %s", ErrMultipleClaimAccounts, claimAccountID, item.ClaimAccountID)
		}
	}

	recording, err := s.RecordSchemeQuantities(ctx, invoiceID, items, actor)
	if err != nil {
		return nil, err
	}

	result := &dto.SchemeApplicationResult{Recording: recording}
	if !anyScheme2 {
		return result, nil
	}

	settlement, err := s.LinkSchemeToClaimAccount(ctx, invoiceID, claimAccountID, actor)
	if err != nil {
		return nil, err
	}
	result.Settlement = settlement
	return result, nil
}
