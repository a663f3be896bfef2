package pricing_test

import (
	"testing"

	"github.com/Erenishere/pharam-sub003/internal/apperrors"
	"github.com/Erenishere/pharam-sub003/internal/core/domain"
	"github.com/Erenishere/pharam-sub003/internal/core/pricing"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestApplyDiscounts_Sequencing(t *testing.T) {
	// 1000 at 10% then 5%: discount2 applies to the post-discount1 base.
	breakdown, err := pricing.ApplyDiscounts(d("1000"), d("10"), d("5"), "acc-claim-1")
	require.NoError(t, err)

	assert.True(t, breakdown.Discount1Amount.Equal(d("100")), "discount1 should be 100, got %s", breakdown.Discount1Amount)
	assert.True(t, breakdown.AmountAfterDiscount1.Equal(d("900")))
	assert.True(t, breakdown.Discount2Amount.Equal(d("45")), "discount2 should be 45 (5%% of 900), got %s", breakdown.Discount2Amount)
	assert.True(t, breakdown.AmountAfterDiscount2.Equal(d("855")))
	assert.True(t, breakdown.FinalAmount.Equal(d("855")))
}

func TestApplyDiscounts_Identities(t *testing.T) {
	tests := []struct {
		name     string
		amount   string
		d1       string
		d2       string
		expected string
	}{
		{"zero percents leave amount unchanged", "1000", "0", "0", "1000"},
		{"full discount1 zeroes the base", "1000", "100", "0", "0"},
		{"full discount1 leaves nothing for discount2", "1000", "100", "50", "0"},
		{"zero amount stays zero", "0", "10", "5", "0"},
		{"both full discounts", "250", "100", "100", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claimID := ""
			if tt.d2 != "0" {
				claimID = "acc-claim-1"
			}
			breakdown, err := pricing.ApplyDiscounts(d(tt.amount), d(tt.d1), d(tt.d2), claimID)
			require.NoError(t, err)
			assert.True(t, breakdown.FinalAmount.Equal(d(tt.expected)),
				"final amount should be %s, got %s", tt.expected, breakdown.FinalAmount)
			assert.False(t, breakdown.FinalAmount.IsNegative(), "final amount must never go negative")
		})
	}
}

func TestDiscount1_Bounds(t *testing.T) {
	_, err := pricing.Discount1(d("-1"), d("10"))
	assert.ErrorIs(t, err, pricing.ErrInvalidAmount)

	_, err = pricing.Discount1(d("100"), d("-0.01"))
	assert.ErrorIs(t, err, pricing.ErrInvalidPercent)

	_, err = pricing.Discount1(d("100"), d("100.01"))
	assert.ErrorIs(t, err, pricing.ErrInvalidPercent)

	// Percent errors are validation errors for callers matching broadly.
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	amt, err := pricing.Discount1(d("100"), d("100"))
	require.NoError(t, err)
	assert.True(t, amt.Equal(d("100")))
}

func TestDiscount2_RequiresClaimAccount(t *testing.T) {
	_, err := pricing.Discount2(d("900"), d("5"), "")
	assert.ErrorIs(t, err, pricing.ErrClaimAccountRequired)

	// Zero discount2 needs no claim account.
	amt, err := pricing.Discount2(d("900"), d("0"), "")
	require.NoError(t, err)
	assert.True(t, amt.IsZero())

	amt, err = pricing.Discount2(d("900"), d("5"), "acc-claim-1")
	require.NoError(t, err)
	assert.True(t, amt.Equal(d("45")))
}

func TestLineTax_AfterDiscounts(t *testing.T) {
	tax, err := pricing.LineTax(d("855"), d("18"))
	require.NoError(t, err)
	assert.True(t, tax.Equal(d("153.9")), "tax should be 153.9, got %s", tax)

	_, err = pricing.LineTax(d("-1"), d("18"))
	assert.ErrorIs(t, err, pricing.ErrInvalidAmount)

	_, err = pricing.LineTax(d("855"), d("101"))
	assert.ErrorIs(t, err, pricing.ErrInvalidPercent)
}

func TestLineTotal(t *testing.T) {
	line := domain.InvoiceLine{
		LineID:           "line-1",
		Quantity:         d("10"),
		UnitPrice:        d("100"),
		Discount1Percent: d("10"),
		Discount2Percent: d("5"),
		TaxRate:          d("18"),
	}

	totals, err := pricing.LineTotal(line, "acc-claim-1")
	require.NoError(t, err)

	assert.True(t, totals.LineSubtotal.Equal(d("1000")))
	assert.True(t, totals.Discount1Amount.Equal(d("100")))
	assert.True(t, totals.Discount2Amount.Equal(d("45")))
	assert.True(t, totals.TotalDiscount.Equal(d("145")))
	assert.True(t, totals.TaxableAmount.Equal(d("855")))
	assert.True(t, totals.TaxAmount.Equal(d("153.9")))
	assert.True(t, totals.LineTotal.Equal(d("1008.9")))
}

func TestInvoiceTotals(t *testing.T) {
	lines := []domain.InvoiceLine{
		{
			LineID:           "line-1",
			Quantity:         d("10"),
			UnitPrice:        d("100"),
			Discount1Percent: d("10"),
			Discount2Percent: d("5"),
			TaxRate:          d("18"),
		},
		{
			LineID:    "line-2",
			Quantity:  d("4"),
			UnitPrice: d("250"),
			TaxRate:   d("12"),
		},
	}

	result, err := pricing.InvoiceTotals(lines, "acc-claim-1")
	require.NoError(t, err)
	require.Len(t, result.Lines, 2)

	assert.True(t, result.Subtotal.Equal(d("2000")))
	assert.True(t, result.TotalDiscount.Equal(d("145")))
	assert.True(t, result.TaxableTotal.Equal(d("1855")))
	// 153.9 + 120
	assert.True(t, result.TaxTotal.Equal(d("273.9")), "tax total should be 273.9, got %s", result.TaxTotal)
	assert.True(t, result.GrandTotal.Equal(d("2128.9")))
}

func TestInvoiceTotals_PropagatesLineError(t *testing.T) {
	lines := []domain.InvoiceLine{
		{
			LineID:           "line-bad",
			Quantity:         d("1"),
			UnitPrice:        d("100"),
			Discount2Percent: d("5"),
		},
	}

	_, err := pricing.InvoiceTotals(lines, "")
	require.Error(t, err)
	assert.ErrorIs(t, err, pricing.ErrClaimAccountRequired)
	assert.Contains(t, err.Error(), "line-bad")
}
