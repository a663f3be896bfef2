package services

import (
	portsrepo "github.com/Erenishere/pharam-sub003/internal/core/ports/repositories"
	portssvc "github.com/Erenishere/pharam-sub003/internal/core/ports/services"
)

// Container holds all the services and manages their dependencies
type Container struct {
	Account        portssvc.AccountSvcFacade
	ClaimValidator portssvc.ClaimAccountValidatorFacade
	Ledger         portssvc.LedgerSvcFacade
	Scheme         portssvc.SchemeSvcFacade
}

// Options carries the configuration the services need.
type Options struct {
	HomeCurrency string
	Retry        RetryPolicy
}

// NewContainer creates a new service container with properly initialized dependencies.
func NewContainer(repos *portsrepo.RepositoryProvider, opts Options) *Container {
	container := &Container{}

	container.Account = NewAccountService(repos.AccountRepo, opts.HomeCurrency)
	container.ClaimValidator = NewClaimAccountValidator(repos.AccountRepo)
	container.Ledger = NewLedgerService(repos.LedgerRepo, opts.HomeCurrency, opts.Retry)
	container.Scheme = NewSchemeService(repos.InvoiceRepo, container.ClaimValidator, container.Ledger)

	return container
}
