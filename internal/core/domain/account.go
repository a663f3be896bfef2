package domain

import (
	"github.com/shopspring/decimal"
)

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset      AccountType = "ASSET"
	Liability  AccountType = "LIABILITY"
	Income     AccountType = "INCOME"
	Expense    AccountType = "EXPENSE"
	Adjustment AccountType = "ADJUSTMENT"
	Claim      AccountType = "CLAIM"
)

// IsValid reports whether t belongs to the closed set of account types.
func (t AccountType) IsValid() bool {
	switch t {
	case Asset, Liability, Income, Expense, Adjustment, Claim:
		return true
	}
	return false
}

// Account represents a named ledger participant.
// Balance is a cached projection of the account's posted entries; the ledger
// engine's BalanceAsOf fold is the source of truth, and the cache is only
// mutated inside the same transaction as the entries that justify it.
type Account struct {
	AccountID    string          `json:"accountID"`   // Primary Key (UUID)
	Name         string          `json:"name"`        // User-defined name
	Code         string          `json:"code"`        // Human-readable unique code
	AccountType  AccountType     `json:"accountType"` // ASSET, LIABILITY, etc.
	CurrencyCode string          `json:"currencyCode"`
	Description  string          `json:"description"` // Nullable user description
	IsActive     bool            `json:"isActive"`    // Accounts are deactivated, never deleted
	Balance      decimal.Decimal `json:"balance"`
	AuditFields
}

// CanUseForClaims reports whether the account may absorb scheme-claim value.
// Only active expense, adjustment and claim accounts are eligible.
func (a Account) CanUseForClaims() bool {
	if !a.IsActive {
		return false
	}
	switch a.AccountType {
	case Expense, Adjustment, Claim:
		return true
	}
	return false
}
