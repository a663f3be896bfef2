package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Erenishere/pharam-sub003/internal/apperrors"
	"github.com/Erenishere/pharam-sub003/internal/core/domain"
	portsrepo "github.com/Erenishere/pharam-sub003/internal/core/ports/repositories"
	portssvc "github.com/Erenishere/pharam-sub003/internal/core/ports/services"
	"github.com/Erenishere/pharam-sub003/internal/dto"
	"github.com/Erenishere/pharam-sub003/pkg/logging"
)

var (
	// ErrInvalidEntryAmount is returned when a posting amount is zero or negative.
	ErrInvalidEntryAmount = fmt.Errorf("%w: entry amount must be positive", apperrors.ErrValidation)

	// ErrCannotReverseReversal guards against reversing an adjustment entry
	// that is itself a correction.
	ErrCannotReverseReversal = errors.New("cannot reverse an adjustment entry")

	// ErrMissingReason is returned when a reversal is requested without a reason.
	ErrMissingReason = fmt.Errorf("%w: reversal reason", apperrors.ErrMissingArgument)
)

// RetryPolicy bounds the retries applied to conflicting ledger writes.
type RetryPolicy struct {
	MaxAttempts    int
	InitialBackoff time.Duration
}

// DefaultRetryPolicy is used when the caller supplies a zero policy.
var DefaultRetryPolicy = RetryPolicy{MaxAttempts: 3, InitialBackoff: 25 * time.Millisecond}

// ledgerService is the append-only double-entry engine. Every financial event
// becomes a matched debit/credit pair committed atomically with the cached
// balance updates of both participants; corrections are new opposite-direction
// entries, never updates.
type ledgerService struct {
	ledgerRepo   portsrepo.LedgerRepositoryFacade
	homeCurrency string
	retry        RetryPolicy
	now          func() time.Time
}

// NewLedgerService creates a new ledger engine.
func NewLedgerService(ledgerRepo portsrepo.LedgerRepositoryFacade, homeCurrency string, retry RetryPolicy) portssvc.LedgerSvcFacade {
	if retry.MaxAttempts <= 0 {
		retry = DefaultRetryPolicy
	}
	return &ledgerService{
		ledgerRepo:   ledgerRepo,
		homeCurrency: homeCurrency,
		retry:        retry,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// withConflictRetry runs fn, retrying with doubling backoff on transient
// write conflicts. Once attempts are exhausted the caller receives
// apperrors.ErrConcurrency and the store is guaranteed unchanged.
func (s *ledgerService) withConflictRetry(ctx context.Context, fn func() error) error {
	backoff := s.retry.InitialBackoff
	var lastErr error
	for attempt := 1; attempt <= s.retry.MaxAttempts; attempt++ {
		lastErr = fn()
		if lastErr == nil || !errors.Is(lastErr, apperrors.ErrConflict) {
			return lastErr
		}
		if attempt == s.retry.MaxAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
	}
	return fmt.Errorf("%w: %v", apperrors.ErrConcurrency, lastErr)
}

// CreateDoubleEntry posts a balanced pair: one debit, one credit, identical
// amount, currency, reference and timestamp.
func (s *ledgerService) CreateDoubleEntry(ctx context.Context, req dto.CreateDoubleEntryRequest, actor string) ([]domain.LedgerEntry, error) {
	logger := logging.FromContext(ctx)

	if err := dto.Validate(req); err != nil {
		return nil, err
	}
	if actor == "" {
		return nil, fmt.Errorf("%w: actor", apperrors.ErrMissingArgument)
	}
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w, got %s", ErrInvalidEntryAmount, req.Amount)
	}

	now := s.now()
	txnDate := now
	if req.TransactionDate != nil {
		txnDate = req.TransactionDate.UTC()
	}
	currency := req.CurrencyCode
	if currency == "" {
		currency = s.homeCurrency
	}
	rate := decimal.NewFromInt(1)
	if req.ExchangeRate != nil {
		rate = *req.ExchangeRate
	}

	audit := domain.NewAuditFields(actor, now)
	debit := domain.LedgerEntry{
		EntryID:         uuid.NewString(),
		Ref:             req.DebitRef,
		TransactionType: domain.Debit,
		Amount:          req.Amount,
		Description:     req.Description,
		ReferenceType:   req.ReferenceType,
		ReferenceID:     req.ReferenceID,
		TransactionDate: txnDate,
		CurrencyCode:    currency,
		ExchangeRate:    rate,
		AuditFields:     audit,
	}
	credit := debit
	credit.EntryID = uuid.NewString()
	credit.Ref = req.CreditRef
	credit.TransactionType = domain.Credit

	// Write-time validation applies to both halves regardless of path.
	for _, e := range []domain.LedgerEntry{debit, credit} {
		if err := e.Validate(now); err != nil {
			return nil, err
		}
	}

	err := s.withConflictRetry(ctx, func() error {
		return s.ledgerRepo.SaveEntryPair(ctx, debit, credit)
	})
	if err != nil {
		logger.Error("Failed to save double entry",
			slog.String("error", err.Error()),
			slog.String("debit_ref", debit.Ref.String()),
			slog.String("credit_ref", credit.Ref.String()))
		return nil, err
	}

	logger.Info("Double entry posted",
		slog.String("debit_entry_id", debit.EntryID),
		slog.String("credit_entry_id", credit.EntryID),
		slog.String("amount", req.Amount.String()),
		slog.String("reference_type", string(req.ReferenceType)))
	return []domain.LedgerEntry{debit, credit}, nil
}

// BalanceAsOf replays every entry dated <= asOf in ascending date order,
// accumulating +amount for debits and -amount for credits. The cached
// Account.Balance is a mirror of this fold, never the other way around.
func (s *ledgerService) BalanceAsOf(ctx context.Context, ref domain.AccountRef, asOf time.Time) (decimal.Decimal, error) {
	if err := ref.Validate(); err != nil {
		return decimal.Zero, err
	}

	entries, err := s.ledgerRepo.FindEntriesByRefAsOf(ctx, ref, asOf)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to load entries for %s: %w", ref, err)
	}

	balance := decimal.Zero
	for _, e := range entries {
		balance = balance.Add(e.SignedAmount())
	}
	return balance, nil
}

// Statement computes the opening balance (entries strictly before start),
// walks the entries of [start, end] with a running balance, and returns the
// closing balance.
func (s *ledgerService) Statement(ctx context.Context, ref domain.AccountRef, start, end time.Time) (*dto.StatementResponse, error) {
	if err := ref.Validate(); err != nil {
		return nil, err
	}
	if end.Before(start) {
		return nil, fmt.Errorf("%w: statement end %s precedes start %s", apperrors.ErrValidation, end.Format(time.RFC3339), start.Format(time.RFC3339))
	}

	openingEntries, err := s.ledgerRepo.FindEntriesByRefBefore(ctx, ref, start)
	if err != nil {
		return nil, fmt.Errorf("failed to load opening entries for %s: %w", ref, err)
	}
	opening := decimal.Zero
	for _, e := range openingEntries {
		opening = opening.Add(e.SignedAmount())
	}

	entries, err := s.ledgerRepo.FindEntriesByRefBetween(ctx, ref, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to load statement entries for %s: %w", ref, err)
	}

	lines := make([]dto.StatementLine, len(entries))
	running := opening
	for i := range entries {
		running = running.Add(entries[i].SignedAmount())
		lines[i] = dto.StatementLine{
			Entry:          dto.ToEntryResponse(&entries[i]),
			RunningBalance: running,
		}
	}

	return &dto.StatementResponse{
		Ref:            ref.String(),
		StartDate:      start,
		EndDate:        end,
		OpeningBalance: opening,
		Lines:          lines,
		ClosingBalance: running,
	}, nil
}

// Reverse posts a new entry with the opposite direction, the same amount,
// account, currency and exchange rate, reference type forced to ADJUSTMENT
// and the reference ID pointing back at the original entry. The original is
// never touched; the net balance effect of original plus reversal is zero.
func (s *ledgerService) Reverse(ctx context.Context, entryID string, reason string, actor string) (*domain.LedgerEntry, error) {
	logger := logging.FromContext(ctx)

	if entryID == "" {
		return nil, fmt.Errorf("%w: entry ID", apperrors.ErrMissingArgument)
	}
	if reason == "" {
		return nil, ErrMissingReason
	}
	if actor == "" {
		return nil, fmt.Errorf("%w: actor", apperrors.ErrMissingArgument)
	}

	original, err := s.ledgerRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to find entry %s: %w", entryID, err)
	}
	if original.ReferenceType == domain.RefTypeAdjustment {
		return nil, fmt.Errorf("%w: entry %s", ErrCannotReverseReversal, entryID)
	}

	now := s.now()
	reversal := domain.LedgerEntry{
		EntryID:         uuid.NewString(),
		Ref:             original.Ref,
		TransactionType: original.TransactionType.Opposite(),
		Amount:          original.Amount,
		Description:     fmt.Sprintf("Reversal (%s) of: %s", reason, original.Description),
		ReferenceType:   domain.RefTypeAdjustment,
		ReferenceID:     original.EntryID,
		TransactionDate: now,
		CurrencyCode:    original.CurrencyCode,
		ExchangeRate:    original.ExchangeRate,
		AuditFields:     domain.NewAuditFields(actor, now),
	}
	if err := reversal.Validate(now); err != nil {
		return nil, err
	}

	err = s.withConflictRetry(ctx, func() error {
		return s.ledgerRepo.SaveEntry(ctx, reversal)
	})
	if err != nil {
		logger.Error("Failed to save reversal entry", slog.String("error", err.Error()), slog.String("original_entry_id", entryID))
		return nil, err
	}

	logger.Info("Entry reversed", slog.String("original_entry_id", entryID), slog.String("reversal_entry_id", reversal.EntryID))
	return &reversal, nil
}

// GetEntry retrieves one entry.
func (s *ledgerService) GetEntry(ctx context.Context, entryID string) (*domain.LedgerEntry, error) {
	if entryID == "" {
		return nil, fmt.Errorf("%w: entry ID", apperrors.ErrMissingArgument)
	}
	return s.ledgerRepo.FindEntryByID(ctx, entryID)
}

// ListEntriesByRef returns a paginated page of entries, newest first.
func (s *ledgerService) ListEntriesByRef(ctx context.Context, ref domain.AccountRef, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	if err := ref.Validate(); err != nil {
		return nil, err
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	entries, nextToken, err := s.ledgerRepo.ListEntriesByRef(ctx, ref, limit, params.NextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries for %s: %w", ref, err)
	}

	return &dto.ListEntriesResponse{
		Entries:   dto.ToEntryResponses(entries),
		NextToken: nextToken,
	}, nil
}
