package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Erenishere/pharam-sub003/internal/apperrors"
	"github.com/Erenishere/pharam-sub003/internal/core/domain"
	portsrepo "github.com/Erenishere/pharam-sub003/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxInvoiceRepository struct {
	BaseRepository
}

// newPgxInvoiceRepository creates a new repository for invoice facts.
func newPgxInvoiceRepository(pool *pgxpool.Pool) portsrepo.InvoiceRepositoryFacade {
	return &PgxInvoiceRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.InvoiceRepositoryFacade = (*PgxInvoiceRepository)(nil)

// FindInvoiceByID retrieves an invoice together with its lines.
func (r *PgxInvoiceRepository) FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	query := `
		SELECT invoice_id, customer_id, claim_account_id, currency_code, total_scheme1, total_scheme2, created_at, created_by, last_updated_at, last_updated_by
		FROM invoices
		WHERE invoice_id = $1;
	`
	var inv domain.Invoice
	var claimAccountID sql.NullString
	err := r.Pool.QueryRow(ctx, query, invoiceID).Scan(
		&inv.InvoiceID,
		&inv.CustomerID,
		&claimAccountID,
		&inv.CurrencyCode,
		&inv.TotalScheme1,
		&inv.TotalScheme2,
		&inv.CreatedAt,
		&inv.CreatedBy,
		&inv.LastUpdatedAt,
		&inv.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find invoice "+invoiceID, err)
	}
	if claimAccountID.Valid {
		inv.ClaimAccountID = claimAccountID.String
	}

	lines, err := r.findLines(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	inv.Lines = lines
	return &inv, nil
}

func (r *PgxInvoiceRepository) findLines(ctx context.Context, invoiceID string) ([]domain.InvoiceLine, error) {
	query := `
		SELECT line_id, invoice_id, item_id, quantity, unit_price, discount1_percent, discount2_percent, tax_rate, scheme1_quantity, scheme2_quantity, claim_account_id
		FROM invoice_lines
		WHERE invoice_id = $1
		ORDER BY line_id;
	`
	rows, err := r.Pool.Query(ctx, query, invoiceID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query invoice lines for "+invoiceID, err)
	}
	defer rows.Close()

	lines := []domain.InvoiceLine{}
	for rows.Next() {
		var line domain.InvoiceLine
		var claimAccountID sql.NullString
		err := rows.Scan(
			&line.LineID,
			&line.InvoiceID,
			&line.ItemID,
			&line.Quantity,
			&line.UnitPrice,
			&line.Discount1Percent,
			&line.Discount2Percent,
			&line.TaxRate,
			&line.Scheme1Quantity,
			&line.Scheme2Quantity,
			&claimAccountID,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan invoice line row", err)
		}
		if claimAccountID.Valid {
			line.ClaimAccountID = claimAccountID.String
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating invoice line rows", err)
	}
	return lines, nil
}

// UpdateSchemeQuantities persists per-line scheme quantities and the
// invoice-level aggregates in one transaction.
func (r *PgxInvoiceRepository) UpdateSchemeQuantities(ctx context.Context, invoice domain.Invoice, actor string, now time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	lineQuery := `
		UPDATE invoice_lines
		SET scheme1_quantity = $3, scheme2_quantity = $4, claim_account_id = $5
		WHERE invoice_id = $1 AND line_id = $2;
	`
	for _, line := range invoice.Lines {
		var claimAccountID sql.NullString
		if line.ClaimAccountID != "" {
			claimAccountID = sql.NullString{String: line.ClaimAccountID, Valid: true}
		}
		cmdTag, err := tx.Exec(ctx, lineQuery, invoice.InvoiceID, line.LineID, line.Scheme1Quantity, line.Scheme2Quantity, claimAccountID)
		if err != nil {
			return mapConflict("failed to update scheme quantities for line "+line.LineID, err)
		}
		if cmdTag.RowsAffected() == 0 {
			return apperrors.NewNotFoundError("invoice line " + line.LineID + " not found")
		}
	}

	invoiceQuery := `
		UPDATE invoices
		SET total_scheme1 = $2, total_scheme2 = $3, last_updated_at = $4, last_updated_by = $5
		WHERE invoice_id = $1;
	`
	cmdTag, err := tx.Exec(ctx, invoiceQuery, invoice.InvoiceID, invoice.TotalScheme1, invoice.TotalScheme2, now, actor)
	if err != nil {
		return mapConflict("failed to update scheme totals for invoice "+invoice.InvoiceID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("invoice " + invoice.InvoiceID + " not found")
	}

	return r.Commit(ctx, tx)
}

// SetClaimAccount records the claim-account association on the invoice.
func (r *PgxInvoiceRepository) SetClaimAccount(ctx context.Context, invoiceID string, claimAccountID string, actor string, now time.Time) error {
	query := `
		UPDATE invoices
		SET claim_account_id = $2, last_updated_at = $3, last_updated_by = $4
		WHERE invoice_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, invoiceID, claimAccountID, now, actor)
	if err != nil {
		return mapConflict("failed to set claim account on invoice "+invoiceID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("invoice " + invoiceID + " not found")
	}
	return nil
}
