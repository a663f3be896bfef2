package pgsql

import (
	portsrepo "github.com/Erenishere/pharam-sub003/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires the pgx-backed repositories over a shared pool.
func NewRepositoryProvider(pool *pgxpool.Pool) *portsrepo.RepositoryProvider {
	return &portsrepo.RepositoryProvider{
		AccountRepo: newPgxAccountRepository(pool),
		LedgerRepo:  newPgxLedgerRepository(pool),
		InvoiceRepo: newPgxInvoiceRepository(pool),
	}
}
