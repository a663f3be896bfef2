package repositories

import (
	"context"
	"time"

	"github.com/Erenishere/pharam-sub003/internal/core/domain"
)

// LedgerReader defines read operations for ledger entries.
type LedgerReader interface {
	// FindEntryByID retrieves a single ledger entry.
	FindEntryByID(ctx context.Context, entryID string) (*domain.LedgerEntry, error)

	// FindEntriesByRefAsOf retrieves every entry for the given account
	// reference with transaction date <= asOf, in ascending transaction date
	// order (entry ID as tie-breaker).
	FindEntriesByRefAsOf(ctx context.Context, ref domain.AccountRef, asOf time.Time) ([]domain.LedgerEntry, error)

	// FindEntriesByRefBefore retrieves every entry for the reference with
	// transaction date strictly before the given instant, ascending. Used for
	// statement opening balances so boundary entries are not double counted.
	FindEntriesByRefBefore(ctx context.Context, ref domain.AccountRef, before time.Time) ([]domain.LedgerEntry, error)

	// FindEntriesByRefBetween retrieves entries for the reference with
	// transaction date in [start, end], ascending.
	FindEntriesByRefBetween(ctx context.Context, ref domain.AccountRef, start, end time.Time) ([]domain.LedgerEntry, error)

	// ListEntriesByRef retrieves a paginated list of entries for the
	// reference, newest first, using token-based pagination.
	ListEntriesByRef(ctx context.Context, ref domain.AccountRef, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error)
}

// LedgerWriter defines write operations for ledger entries.
type LedgerWriter interface {
	// SaveEntryPair persists a matched debit/credit pair and applies the
	// resulting cached-balance mutations to both referenced participants
	// within a single database transaction. On a transient write conflict it
	// returns an error matching apperrors.ErrConflict and persists nothing.
	SaveEntryPair(ctx context.Context, debit domain.LedgerEntry, credit domain.LedgerEntry) error

	// SaveEntry persists a single corrective entry together with its balance
	// mutation, under the same atomicity and conflict semantics as
	// SaveEntryPair. Used by the reversal path only.
	SaveEntry(ctx context.Context, entry domain.LedgerEntry) error
}

// LedgerRepositoryFacade combines all ledger repository interfaces.
type LedgerRepositoryFacade interface {
	LedgerReader
	LedgerWriter
}

// LedgerRepositoryWithTx extends LedgerRepositoryFacade with transaction capabilities.
type LedgerRepositoryWithTx interface {
	LedgerRepositoryFacade
	TransactionManager
}
