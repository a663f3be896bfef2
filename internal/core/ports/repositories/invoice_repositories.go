package repositories

import (
	"context"
	"time"

	"github.com/Erenishere/pharam-sub003/internal/core/domain"
)

// InvoiceReader defines read operations for the invoice facts this core consumes.
type InvoiceReader interface {
	// FindInvoiceByID retrieves an invoice with its lines.
	FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error)
}

// InvoiceWriter defines the narrow write operations this core performs on
// invoice records: scheme quantities and the claim-account association.
type InvoiceWriter interface {
	// UpdateSchemeQuantities persists per-line scheme1/scheme2 quantities and
	// the invoice-level aggregates.
	UpdateSchemeQuantities(ctx context.Context, invoice domain.Invoice, actor string, now time.Time) error

	// SetClaimAccount records the claim-account association on the invoice.
	SetClaimAccount(ctx context.Context, invoiceID string, claimAccountID string, actor string, now time.Time) error
}

// InvoiceRepositoryFacade combines the invoice repository interfaces.
type InvoiceRepositoryFacade interface {
	InvoiceReader
	InvoiceWriter
}
