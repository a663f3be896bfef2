package dto

import (
	"github.com/Erenishere/pharam-sub003/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest carries the inputs for creating an account.
type CreateAccountRequest struct {
	Name         string             `json:"name" validate:"required,max=255"`
	Code         string             `json:"code" validate:"required,max=64"`
	AccountType  domain.AccountType `json:"accountType" validate:"required"`
	CurrencyCode string             `json:"currencyCode" validate:"omitempty,len=3"`
	Description  string             `json:"description" validate:"max=500"`
}

// UpdateAccountRequest carries optional field updates for an account.
type UpdateAccountRequest struct {
	Name        *string `json:"name" validate:"omitempty,max=255"`
	Description *string `json:"description" validate:"omitempty,max=500"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID    string          `json:"accountID"`
	Name         string          `json:"name"`
	Code         string          `json:"code"`
	AccountType  string          `json:"accountType"`
	CurrencyCode string          `json:"currencyCode"`
	IsActive     bool            `json:"isActive"`
	Balance      decimal.Decimal `json:"balance"`
}

// ToAccountResponse converts a domain.Account to AccountResponse.
func ToAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:    a.AccountID,
		Name:         a.Name,
		Code:         a.Code,
		AccountType:  string(a.AccountType),
		CurrencyCode: a.CurrencyCode,
		IsActive:     a.IsActive,
		Balance:      a.Balance,
	}
}
