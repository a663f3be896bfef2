package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/Erenishere/pharam-sub003/internal/apperrors"
	"github.com/Erenishere/pharam-sub003/internal/core/domain"
	portsrepo "github.com/Erenishere/pharam-sub003/internal/core/ports/repositories"
	"github.com/Erenishere/pharam-sub003/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxLedgerRepository struct {
	BaseRepository
}

// newPgxLedgerRepository creates a new repository for ledger entries.
func newPgxLedgerRepository(pool *pgxpool.Pool) portsrepo.LedgerRepositoryWithTx {
	return &PgxLedgerRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.LedgerRepositoryWithTx = (*PgxLedgerRepository)(nil)

// refTarget names the table and key column a reference kind resolves against.
// The map is the single place the polymorphic reference meets SQL; kinds are
// a closed set, so table names are never built from caller input.
type refTarget struct {
	table string
	idCol string
}

var refTargets = map[domain.RefKind]refTarget{
	domain.RefAccount:  {table: "accounts", idCol: "account_id"},
	domain.RefCustomer: {table: "customers", idCol: "customer_id"},
	domain.RefSupplier: {table: "suppliers", idCol: "supplier_id"},
	domain.RefUser:     {table: "users", idCol: "user_id"},
}

func targetFor(kind domain.RefKind) (refTarget, error) {
	target, ok := refTargets[kind]
	if !ok {
		return refTarget{}, fmt.Errorf("%w: no table for reference kind %q", apperrors.ErrValidation, kind)
	}
	return target, nil
}

// lockParticipant locks the referenced row and returns its current cached
// balance. Must be called within a transaction.
func (r *PgxLedgerRepository) lockParticipant(ctx context.Context, tx pgx.Tx, ref domain.AccountRef) (decimal.Decimal, error) {
	target, err := targetFor(ref.Kind)
	if err != nil {
		return decimal.Zero, err
	}

	query := `SELECT balance FROM ` + target.table + ` WHERE ` + target.idCol + ` = $1 FOR UPDATE;`
	var balance decimal.Decimal
	if err := tx.QueryRow(ctx, query, ref.ID).Scan(&balance); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, fmt.Errorf("participant %s: %w", ref, apperrors.ErrNotFound)
		}
		return decimal.Zero, mapConflict("failed to lock participant "+ref.String(), err)
	}
	return balance, nil
}

// applyBalanceChange increments the cached balance of the referenced row.
func (r *PgxLedgerRepository) applyBalanceChange(ctx context.Context, tx pgx.Tx, ref domain.AccountRef, delta decimal.Decimal, actor string, now time.Time) error {
	target, err := targetFor(ref.Kind)
	if err != nil {
		return err
	}

	query := `UPDATE ` + target.table + ` SET balance = balance + $2, last_updated_at = $3, last_updated_by = $4 WHERE ` + target.idCol + ` = $1;`
	cmdTag, err := tx.Exec(ctx, query, ref.ID, delta, now, actor)
	if err != nil {
		return mapConflict("failed to update balance for "+ref.String(), err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("participant %s: %w", ref, apperrors.ErrNotFound)
	}
	return nil
}

const insertEntryQuery = `
	INSERT INTO ledger_entries (entry_id, ref_kind, ref_id, transaction_type, amount, description, reference_type, reference_id, transaction_date, currency_code, exchange_rate, created_at, created_by, last_updated_at, last_updated_by)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
`

func (r *PgxLedgerRepository) insertEntry(ctx context.Context, tx pgx.Tx, e domain.LedgerEntry) error {
	var referenceID sql.NullString
	if e.ReferenceID != "" {
		referenceID = sql.NullString{String: e.ReferenceID, Valid: true}
	}
	_, err := tx.Exec(ctx, insertEntryQuery,
		e.EntryID,
		e.Ref.Kind,
		e.Ref.ID,
		e.TransactionType,
		e.Amount,
		e.Description,
		e.ReferenceType,
		referenceID,
		e.TransactionDate,
		e.CurrencyCode,
		e.ExchangeRate,
		e.CreatedAt,
		e.CreatedBy,
		e.LastUpdatedAt,
		e.LastUpdatedBy,
	)
	if err != nil {
		return mapConflict("failed to insert ledger entry "+e.EntryID, err)
	}
	return nil
}

// SaveEntryPair persists a matched debit/credit pair and both cached-balance
// mutations in one database transaction. Participants are locked first so
// concurrent postings against the same rows serialize instead of clobbering
// the cached balance.
func (r *PgxLedgerRepository) SaveEntryPair(ctx context.Context, debit domain.LedgerEntry, credit domain.LedgerEntry) error {
	return r.saveEntries(ctx, []domain.LedgerEntry{debit, credit})
}

// SaveEntry persists a single corrective entry with its balance mutation
// under the same transactional rules as SaveEntryPair.
func (r *PgxLedgerRepository) SaveEntry(ctx context.Context, entry domain.LedgerEntry) error {
	return r.saveEntries(ctx, []domain.LedgerEntry{entry})
}

func (r *PgxLedgerRepository) saveEntries(ctx context.Context, entries []domain.LedgerEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	// Ignored once the transaction commits.
	defer r.Rollback(ctx, tx)

	// Net balance change per participant; a pair may touch the same row twice.
	changes := make(map[domain.AccountRef]decimal.Decimal, len(entries))
	for _, e := range entries {
		changes[e.Ref] = changes[e.Ref].Add(e.SignedAmount())
	}

	// Lock every participant before writing anything.
	for ref := range changes {
		if _, err := r.lockParticipant(ctx, tx, ref); err != nil {
			return err
		}
	}

	for _, e := range entries {
		if err := r.insertEntry(ctx, tx, e); err != nil {
			return err
		}
	}

	actor := entries[0].CreatedBy
	now := entries[0].CreatedAt
	for ref, delta := range changes {
		if err := r.applyBalanceChange(ctx, tx, ref, delta, actor, now); err != nil {
			return err
		}
	}

	return r.Commit(ctx, tx)
}

const entryColumns = `entry_id, ref_kind, ref_id, transaction_type, amount, description, reference_type, reference_id, transaction_date, currency_code, exchange_rate, created_at, created_by, last_updated_at, last_updated_by`

func scanEntry(row pgx.Row) (domain.LedgerEntry, error) {
	var e domain.LedgerEntry
	var referenceID sql.NullString
	err := row.Scan(
		&e.EntryID,
		&e.Ref.Kind,
		&e.Ref.ID,
		&e.TransactionType,
		&e.Amount,
		&e.Description,
		&e.ReferenceType,
		&referenceID,
		&e.TransactionDate,
		&e.CurrencyCode,
		&e.ExchangeRate,
		&e.CreatedAt,
		&e.CreatedBy,
		&e.LastUpdatedAt,
		&e.LastUpdatedBy,
	)
	if err != nil {
		return domain.LedgerEntry{}, err
	}
	if referenceID.Valid {
		e.ReferenceID = referenceID.String
	}
	return e, nil
}

// FindEntryByID retrieves a single ledger entry.
func (r *PgxLedgerRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.LedgerEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM ledger_entries WHERE entry_id = $1;`
	entry, err := scanEntry(r.Pool.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find ledger entry "+entryID, err)
	}
	return &entry, nil
}

func (r *PgxLedgerRepository) queryEntries(ctx context.Context, query string, args ...interface{}) ([]domain.LedgerEntry, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query ledger entries", err)
	}
	defer rows.Close()

	entries := []domain.LedgerEntry{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan ledger entry row", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating ledger entry rows", err)
	}
	return entries, nil
}

// FindEntriesByRefAsOf retrieves entries dated <= asOf, ascending.
// Entry ID breaks ties so replays are deterministic.
func (r *PgxLedgerRepository) FindEntriesByRefAsOf(ctx context.Context, ref domain.AccountRef, asOf time.Time) ([]domain.LedgerEntry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM ledger_entries
		WHERE ref_kind = $1 AND ref_id = $2 AND transaction_date <= $3
		ORDER BY transaction_date, entry_id;
	`
	return r.queryEntries(ctx, query, ref.Kind, ref.ID, asOf)
}

// FindEntriesByRefBefore retrieves entries dated strictly before the instant, ascending.
func (r *PgxLedgerRepository) FindEntriesByRefBefore(ctx context.Context, ref domain.AccountRef, before time.Time) ([]domain.LedgerEntry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM ledger_entries
		WHERE ref_kind = $1 AND ref_id = $2 AND transaction_date < $3
		ORDER BY transaction_date, entry_id;
	`
	return r.queryEntries(ctx, query, ref.Kind, ref.ID, before)
}

// FindEntriesByRefBetween retrieves entries dated within [start, end], ascending.
func (r *PgxLedgerRepository) FindEntriesByRefBetween(ctx context.Context, ref domain.AccountRef, start, end time.Time) ([]domain.LedgerEntry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM ledger_entries
		WHERE ref_kind = $1 AND ref_id = $2 AND transaction_date >= $3 AND transaction_date <= $4
		ORDER BY transaction_date, entry_id;
	`
	return r.queryEntries(ctx, query, ref.Kind, ref.ID, start, end)
}

// ListEntriesByRef retrieves a paginated list of entries for a reference,
// newest first, using token-based pagination.
func (r *PgxLedgerRepository) ListEntriesByRef(ctx context.Context, ref domain.AccountRef, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// Fetch one extra row to decide whether there is a next page.
	fetchLimit := limit + 1

	baseQuery := `
		SELECT ` + entryColumns + `
		FROM ledger_entries
		WHERE ref_kind = $1 AND ref_id = $2
	`
	orderByClause := `ORDER BY transaction_date DESC, created_at DESC`

	args := []interface{}{ref.Kind, ref.ID}
	query := baseQuery
	if nextToken != nil && *nextToken != "" {
		lastTxnDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		query += ` AND (transaction_date, created_at) < ($3, $4) `
		args = append(args, lastTxnDate, lastCreatedAt)
	}
	query += " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
	args = append(args, fetchLimit)

	entries, err := r.queryEntries(ctx, query, args...)
	if err != nil {
		return nil, nil, err
	}

	var nextTokenVal *string
	if len(entries) > limit {
		last := entries[limit-1]
		token := pagination.EncodeToken(last.TransactionDate, last.CreatedAt)
		nextTokenVal = &token
		entries = entries[:limit]
	}
	return entries, nextTokenVal, nil
}
