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

// accountService provides lookups and administration over the account store.
// Balances are intentionally absent from its write path: only the ledger
// repository mutates them, inside the same transaction as the entries.
type accountService struct {
	accountRepo  portsrepo.AccountRepositoryFacade
	homeCurrency string
}

// NewAccountService creates a new account service.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade, homeCurrency string) portssvc.AccountSvcFacade {
	return &accountService{
		accountRepo:  accountRepo,
		homeCurrency: homeCurrency,
	}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccount creates a new account with a zero balance.
func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, actor string) (*domain.Account, error) {
	logger := logging.FromContext(ctx)

	if err := dto.Validate(req); err != nil {
		return nil, err
	}
	if actor == "" {
		return nil, fmt.Errorf("%w: actor", apperrors.ErrMissingArgument)
	}
	if !req.AccountType.IsValid() {
		return nil, fmt.Errorf("%w: unknown account type %q", apperrors.ErrValidation, req.AccountType)
	}

	currency := req.CurrencyCode
	if currency == "" {
		currency = s.homeCurrency
	}

	now := time.Now().UTC()
	account := domain.Account{
		AccountID:    uuid.NewString(),
		Name:         req.Name,
		Code:         req.Code,
		AccountType:  req.AccountType,
		CurrencyCode: currency,
		Description:  req.Description,
		IsActive:     true,
		Balance:      decimal.Zero,
		AuditFields:  domain.NewAuditFields(actor, now),
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		logger.Error("Failed to save account", slog.String("error", err.Error()), slog.String("code", req.Code))
		return nil, fmt.Errorf("failed to save account: %w", err)
	}

	logger.Info("Account created", slog.String("account_id", account.AccountID), slog.String("code", account.Code))
	return &account, nil
}

// GetAccountByID retrieves an account by ID.
func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	if accountID == "" {
		return nil, fmt.Errorf("%w: account ID", apperrors.ErrMissingArgument)
	}
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}
	return account, nil
}

// GetAccountByCode retrieves an account by its human-readable code.
func (s *accountService) GetAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	if code == "" {
		return nil, fmt.Errorf("%w: account code", apperrors.ErrMissingArgument)
	}
	account, err := s.accountRepo.FindAccountByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to find account with code %s: %w", code, err)
	}
	return account, nil
}

// GetAccountsByIDs retrieves multiple accounts. Missing IDs are absent from
// the map; callers decide whether that is an error.
func (s *accountService) GetAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.Account{}, nil
	}
	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch accounts: %w", err)
	}
	return accounts, nil
}

// ListAccounts retrieves a paginated list of active accounts.
func (s *accountService) ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error) {
	return s.accountRepo.ListAccounts(ctx, limit, offset)
}

// UpdateAccount updates the mutable descriptive fields of an account.
func (s *accountService) UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, actor string) (*domain.Account, error) {
	logger := logging.FromContext(ctx)

	if accountID == "" {
		return nil, fmt.Errorf("%w: account ID", apperrors.ErrMissingArgument)
	}
	if err := dto.Validate(req); err != nil {
		return nil, err
	}

	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	updated := false
	if req.Name != nil {
		account.Name = *req.Name
		updated = true
	}
	if req.Description != nil {
		account.Description = *req.Description
		updated = true
	}
	if !updated {
		return account, nil
	}

	account.LastUpdatedAt = time.Now().UTC()
	account.LastUpdatedBy = actor

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		logger.Error("Failed to update account", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to update account: %w", err)
	}
	return account, nil
}

// DeactivateAccount marks an account inactive. Accounts are never deleted;
// history referencing them must stay resolvable.
func (s *accountService) DeactivateAccount(ctx context.Context, accountID string, actor string) error {
	logger := logging.FromContext(ctx)

	if accountID == "" {
		return fmt.Errorf("%w: account ID", apperrors.ErrMissingArgument)
	}
	if actor == "" {
		return fmt.Errorf("%w: actor", apperrors.ErrMissingArgument)
	}

	err := s.accountRepo.DeactivateAccount(ctx, accountID, actor, time.Now().UTC())
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to deactivate account", slog.String("error", err.Error()), slog.String("account_id", accountID))
		}
		return err
	}

	logger.Info("Account deactivated", slog.String("account_id", accountID))
	return nil
}
