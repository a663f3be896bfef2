package services

import (
	"context"

	"github.com/Erenishere/pharam-sub003/internal/core/domain"
	"github.com/Erenishere/pharam-sub003/internal/dto"
)

// AccountSvcFacade exposes the account store to the rest of the core.
// Account creation and deactivation belong to external account
// administration; they are surfaced here so that surface has a contract to
// call, but balances are only ever mutated by the ledger engine.
type AccountSvcFacade interface {
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, actor string) (*domain.Account, error)
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)
	GetAccountByCode(ctx context.Context, code string) (*domain.Account, error)
	GetAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)
	ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error)
	UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, actor string) (*domain.Account, error)
	DeactivateAccount(ctx context.Context, accountID string, actor string) error
}

// ClaimAccountValidatorFacade is the gate every scheme-claim posting passes
// through. Results must not be cached across requests: activation state can
// change between calls.
type ClaimAccountValidatorFacade interface {
	// ValidateClaimAccount confirms the account exists, is active and is
	// claim-eligible, returning its snapshot.
	ValidateClaimAccount(ctx context.Context, accountID string) (*domain.Account, error)
}
