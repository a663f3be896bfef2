package services

import (
	"context"
	"time"

	"github.com/Erenishere/pharam-sub003/internal/core/domain"
	"github.com/Erenishere/pharam-sub003/internal/dto"
	"github.com/shopspring/decimal"
)

// LedgerSvcFacade exposes the ledger engine.
type LedgerSvcFacade interface {
	// CreateDoubleEntry posts a matched debit/credit pair atomically together
	// with both cached-balance updates. Returns the two persisted entries,
	// debit first.
	CreateDoubleEntry(ctx context.Context, req dto.CreateDoubleEntryRequest, actor string) ([]domain.LedgerEntry, error)

	// BalanceAsOf folds every entry for the reference dated <= asOf into a
	// signed balance. This is the authoritative balance definition.
	BalanceAsOf(ctx context.Context, ref domain.AccountRef, asOf time.Time) (decimal.Decimal, error)

	// Statement returns the opening balance, the dated entries with running
	// balances, and the closing balance for the range.
	Statement(ctx context.Context, ref domain.AccountRef, start, end time.Time) (*dto.StatementResponse, error)

	// Reverse posts a new opposite-direction adjustment entry cancelling the
	// economic effect of the original, which is never mutated.
	Reverse(ctx context.Context, entryID string, reason string, actor string) (*domain.LedgerEntry, error)

	// GetEntry retrieves one entry.
	GetEntry(ctx context.Context, entryID string) (*domain.LedgerEntry, error)

	// ListEntriesByRef returns a paginated page of entries, newest first.
	ListEntriesByRef(ctx context.Context, ref domain.AccountRef, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error)
}
