package domain

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/Erenishere/pharam-sub003/internal/apperrors"
	"github.com/shopspring/decimal"
)

// TransactionType indicates whether a ledger entry is a Debit or a Credit.
type TransactionType string

const (
	Debit  TransactionType = "DEBIT"
	Credit TransactionType = "CREDIT"
)

// Opposite returns the inverse transaction type, used when constructing
// reversal entries.
func (t TransactionType) Opposite() TransactionType {
	if t == Debit {
		return Credit
	}
	return Debit
}

// RefKind discriminates which collection a ledger entry's account reference
// resolves against.
type RefKind string

const (
	RefCustomer RefKind = "CUSTOMER"
	RefSupplier RefKind = "SUPPLIER"
	RefUser     RefKind = "USER"
	RefAccount  RefKind = "ACCOUNT"
)

// IsValid reports whether k belongs to the closed set of reference kinds.
func (k RefKind) IsValid() bool {
	switch k {
	case RefCustomer, RefSupplier, RefUser, RefAccount:
		return true
	}
	return false
}

// AccountRef is a polymorphic reference to a ledger participant: the kind
// selects the collection, the ID identifies the row within it.
type AccountRef struct {
	Kind RefKind `json:"kind"`
	ID   string  `json:"id"`
}

// Validate checks the reference is structurally usable.
func (r AccountRef) Validate() error {
	if !r.Kind.IsValid() {
		return fmt.Errorf("%w: unknown account reference kind %q", apperrors.ErrValidation, r.Kind)
	}
	if r.ID == "" {
		return fmt.Errorf("%w: account reference ID", apperrors.ErrMissingArgument)
	}
	return nil
}

func (r AccountRef) String() string {
	return string(r.Kind) + ":" + r.ID
}

// ReferenceType classifies the business event behind a ledger entry.
type ReferenceType string

const (
	RefTypeInvoice        ReferenceType = "INVOICE"
	RefTypePayment        ReferenceType = "PAYMENT"
	RefTypeAdjustment     ReferenceType = "ADJUSTMENT"
	RefTypeOpeningBalance ReferenceType = "OPENING_BALANCE"
	RefTypeCashReceipt    ReferenceType = "CASH_RECEIPT"
	RefTypeCashPayment    ReferenceType = "CASH_PAYMENT"
	RefTypeSchemeClaim    ReferenceType = "SCHEME_CLAIM"
)

// IsValid reports whether t belongs to the closed set of reference types.
func (t ReferenceType) IsValid() bool {
	switch t {
	case RefTypeInvoice, RefTypePayment, RefTypeAdjustment, RefTypeOpeningBalance,
		RefTypeCashReceipt, RefTypeCashPayment, RefTypeSchemeClaim:
		return true
	}
	return false
}

// RequiresReferenceID reports whether entries of this type must carry the ID
// of the document they settle.
func (t ReferenceType) RequiresReferenceID() bool {
	switch t {
	case RefTypeInvoice, RefTypePayment, RefTypeCashReceipt, RefTypeCashPayment:
		return true
	}
	return false
}

// maxDescriptionLen bounds free-text entry descriptions.
const maxDescriptionLen = 500

// LedgerEntry is one half of a financial event. Entries are immutable after
// creation; corrections are expressed as a new opposite-direction entry with
// an ADJUSTMENT reference type, never as an update or delete.
type LedgerEntry struct {
	EntryID         string          `json:"entryID"` // Primary Key (UUID)
	Ref             AccountRef      `json:"ref"`
	TransactionType TransactionType `json:"transactionType"`
	Amount          decimal.Decimal `json:"amount"` // Always positive; direction lives in TransactionType
	Description     string          `json:"description"`
	ReferenceType   ReferenceType   `json:"referenceType"`
	ReferenceID     string          `json:"referenceID"` // Required for invoice/payment/cash types
	TransactionDate time.Time       `json:"transactionDate"`
	CurrencyCode    string          `json:"currencyCode"` // 3-letter code
	ExchangeRate    decimal.Decimal `json:"exchangeRate"` // > 0, 1 for home currency
	AuditFields
}

// SignedAmount returns +Amount for a debit and -Amount for a credit.
func (e LedgerEntry) SignedAmount() decimal.Decimal {
	if e.TransactionType == Debit {
		return e.Amount
	}
	return e.Amount.Neg()
}

// BaseAmount returns the entry amount converted to the home currency.
func (e LedgerEntry) BaseAmount() decimal.Decimal {
	return e.Amount.Mul(e.ExchangeRate)
}

// Validate enforces every write-time rule for a single entry. It applies to
// all creation paths, double-entry and reversal alike.
func (e LedgerEntry) Validate(now time.Time) error {
	if err := e.Ref.Validate(); err != nil {
		return err
	}
	if e.TransactionType != Debit && e.TransactionType != Credit {
		return fmt.Errorf("%w: transaction type %q", apperrors.ErrValidation, e.TransactionType)
	}
	if e.Amount.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: entry amount must be positive, got %s", apperrors.ErrValidation, e.Amount)
	}
	if utf8.RuneCountInString(e.Description) > maxDescriptionLen {
		return fmt.Errorf("%w: description exceeds %d characters", apperrors.ErrValidation, maxDescriptionLen)
	}
	if !e.ReferenceType.IsValid() {
		return fmt.Errorf("%w: reference type %q", apperrors.ErrValidation, e.ReferenceType)
	}
	if e.ReferenceType.RequiresReferenceID() && e.ReferenceID == "" {
		return fmt.Errorf("%w: reference ID for reference type %s", apperrors.ErrMissingArgument, e.ReferenceType)
	}
	if e.TransactionDate.After(now) {
		return fmt.Errorf("%w: transaction date %s is in the future", apperrors.ErrValidation, e.TransactionDate.Format(time.RFC3339))
	}
	if len(e.CurrencyCode) != 3 {
		return fmt.Errorf("%w: currency code %q", apperrors.ErrValidation, e.CurrencyCode)
	}
	if e.ExchangeRate.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: exchange rate must be positive, got %s", apperrors.ErrValidation, e.ExchangeRate)
	}
	return nil
}
