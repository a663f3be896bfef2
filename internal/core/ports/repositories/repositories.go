package repositories

// RepositoryProvider bundles the repositories the service layer needs.
type RepositoryProvider struct {
	AccountRepo AccountRepositoryFacade
	LedgerRepo  LedgerRepositoryWithTx
	InvoiceRepo InvoiceRepositoryFacade
}
