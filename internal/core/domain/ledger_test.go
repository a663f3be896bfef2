package domain_test

import (
	"strings"
	"testing"
	"time"

	"github.com/Erenishere/pharam-sub003/internal/apperrors"
	"github.com/Erenishere/pharam-sub003/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func validEntry(now time.Time) domain.LedgerEntry {
	return domain.LedgerEntry{
		EntryID:         "entry-1",
		Ref:             domain.AccountRef{Kind: domain.RefCustomer, ID: "cust-1"},
		TransactionType: domain.Debit,
		Amount:          decimal.NewFromInt(100),
		Description:     "Opening entry",
		ReferenceType:   domain.RefTypeOpeningBalance,
		TransactionDate: now.Add(-time.Hour),
		CurrencyCode:    "INR",
		ExchangeRate:    decimal.NewFromInt(1),
	}
}

func TestLedgerEntry_SignedAmount(t *testing.T) {
	e := domain.LedgerEntry{TransactionType: domain.Debit, Amount: decimal.NewFromInt(150)}
	assert.True(t, e.SignedAmount().Equal(decimal.NewFromInt(150)))

	e.TransactionType = domain.Credit
	assert.True(t, e.SignedAmount().Equal(decimal.NewFromInt(-150)))
}

func TestLedgerEntry_BaseAmount(t *testing.T) {
	e := domain.LedgerEntry{
		Amount:       decimal.NewFromInt(100),
		ExchangeRate: decimal.RequireFromString("82.5"),
	}
	assert.True(t, e.BaseAmount().Equal(decimal.RequireFromString("8250")))

	e.ExchangeRate = decimal.NewFromInt(1)
	assert.True(t, e.BaseAmount().Equal(e.Amount))
}

func TestTransactionType_Opposite(t *testing.T) {
	assert.Equal(t, domain.Credit, domain.Debit.Opposite())
	assert.Equal(t, domain.Debit, domain.Credit.Opposite())
}

func TestAccountRef_Validate(t *testing.T) {
	tests := []struct {
		name    string
		ref     domain.AccountRef
		wantErr error
	}{
		{"valid customer ref", domain.AccountRef{Kind: domain.RefCustomer, ID: "cust-1"}, nil},
		{"valid account ref", domain.AccountRef{Kind: domain.RefAccount, ID: "acc-1"}, nil},
		{"unknown kind", domain.AccountRef{Kind: "VENDOR", ID: "v-1"}, apperrors.ErrValidation},
		{"missing id", domain.AccountRef{Kind: domain.RefSupplier}, apperrors.ErrMissingArgument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.ref.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestAccountRef_String(t *testing.T) {
	ref := domain.AccountRef{Kind: domain.RefSupplier, ID: "sup-9"}
	assert.Equal(t, "SUPPLIER:sup-9", ref.String())
}

func TestReferenceType_RequiresReferenceID(t *testing.T) {
	requiring := []domain.ReferenceType{
		domain.RefTypeInvoice,
		domain.RefTypePayment,
		domain.RefTypeCashReceipt,
		domain.RefTypeCashPayment,
	}
	for _, rt := range requiring {
		assert.True(t, rt.RequiresReferenceID(), "%s should require a reference ID", rt)
	}

	exempt := []domain.ReferenceType{
		domain.RefTypeAdjustment,
		domain.RefTypeOpeningBalance,
		domain.RefTypeSchemeClaim,
	}
	for _, rt := range exempt {
		assert.False(t, rt.RequiresReferenceID(), "%s should not require a reference ID", rt)
	}
}

func TestLedgerEntry_Validate(t *testing.T) {
	now := time.Now().UTC()

	tests := []struct {
		name    string
		mutate  func(*domain.LedgerEntry)
		wantErr error
	}{
		{"valid entry", func(e *domain.LedgerEntry) {}, nil},
		{"zero amount", func(e *domain.LedgerEntry) { e.Amount = decimal.Zero }, apperrors.ErrValidation},
		{"negative amount", func(e *domain.LedgerEntry) { e.Amount = decimal.NewFromInt(-5) }, apperrors.ErrValidation},
		{"bad transaction type", func(e *domain.LedgerEntry) { e.TransactionType = "TRANSFER" }, apperrors.ErrValidation},
		{"bad reference kind", func(e *domain.LedgerEntry) { e.Ref.Kind = "VENDOR" }, apperrors.ErrValidation},
		{"missing ref id", func(e *domain.LedgerEntry) { e.Ref.ID = "" }, apperrors.ErrMissingArgument},
		{"description too long", func(e *domain.LedgerEntry) { e.Description = strings.Repeat("x", 501) }, apperrors.ErrValidation},
		{"description at limit is fine", func(e *domain.LedgerEntry) { e.Description = strings.Repeat("x", 500) }, nil},
		{"bad reference type", func(e *domain.LedgerEntry) { e.ReferenceType = "RECEIPT" }, apperrors.ErrValidation},
		{
			"invoice type without reference id",
			func(e *domain.LedgerEntry) { e.ReferenceType = domain.RefTypeInvoice; e.ReferenceID = "" },
			apperrors.ErrMissingArgument,
		},
		{
			"invoice type with reference id is fine",
			func(e *domain.LedgerEntry) { e.ReferenceType = domain.RefTypeInvoice; e.ReferenceID = "inv-1" },
			nil,
		},
		{"future transaction date", func(e *domain.LedgerEntry) { e.TransactionDate = now.Add(time.Hour) }, apperrors.ErrValidation},
		{"bad currency code", func(e *domain.LedgerEntry) { e.CurrencyCode = "RUPEES" }, apperrors.ErrValidation},
		{"zero exchange rate", func(e *domain.LedgerEntry) { e.ExchangeRate = decimal.Zero }, apperrors.ErrValidation},
		{"negative exchange rate", func(e *domain.LedgerEntry) { e.ExchangeRate = decimal.NewFromInt(-1) }, apperrors.ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := validEntry(now)
			tt.mutate(&e)
			err := e.Validate(now)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}
