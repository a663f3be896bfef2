package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Erenishere/pharam-sub003/internal/apperrors"
	"github.com/Erenishere/pharam-sub003/internal/core/domain"
	portsrepo "github.com/Erenishere/pharam-sub003/internal/core/ports/repositories"
	portssvc "github.com/Erenishere/pharam-sub003/internal/core/ports/services"
	"github.com/Erenishere/pharam-sub003/pkg/logging"
)

var (
	// ErrMissingClaimAccountID is returned when no claim account was supplied.
	ErrMissingClaimAccountID = fmt.Errorf("%w: claim account ID", apperrors.ErrMissingArgument)

	// ErrAccountInactive is returned when the claim account exists but is deactivated.
	ErrAccountInactive = errors.New("account is inactive")

	// ErrAccountNotClaimEligible is returned when the account's type forbids claim usage.
	ErrAccountNotClaimEligible = errors.New("account type is not claim eligible")
)

// claimAccountValidator gates scheme-claim settlements: it confirms an
// account reference is usable as a claim target before any posting occurs.
// It holds no state and never caches results; account activation can change
// between requests.
type claimAccountValidator struct {
	accountRepo portsrepo.AccountReader
}

// NewClaimAccountValidator creates a new claim account validator.
func NewClaimAccountValidator(accountRepo portsrepo.AccountReader) portssvc.ClaimAccountValidatorFacade {
	return &claimAccountValidator{accountRepo: accountRepo}
}

var _ portssvc.ClaimAccountValidatorFacade = (*claimAccountValidator)(nil)

// ValidateClaimAccount fetches the account and checks it is active and of a
// claim-eligible type, returning its snapshot on success.
func (v *claimAccountValidator) ValidateClaimAccount(ctx context.Context, accountID string) (*domain.Account, error) {
	logger := logging.FromContext(ctx)

	if accountID == "" {
		return nil, ErrMissingClaimAccountID
	}

	account, err := v.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("claim account %s: %w", accountID, apperrors.ErrNotFound)
		}
		logger.Error("Failed to fetch claim account", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to fetch claim account %s: %w", accountID, err)
	}

	if !account.IsActive {
		return nil, fmt.Errorf("%w: %s (%s)", ErrAccountInactive, account.Name, account.AccountID)
	}
	if !account.CanUseForClaims() {
		return nil, fmt.Errorf("%w: %s (%s) has type %s", ErrAccountNotClaimEligible, account.Name, account.AccountID, account.AccountType)
	}

	return account, nil
}
