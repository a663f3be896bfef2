package pricing_test

import (
	"testing"

	"github.com/Erenishere/pharam-sub003/internal/core/pricing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitTaxRate_SameJurisdiction(t *testing.T) {
	components, err := pricing.SplitTaxRate(d("18"), true)
	require.NoError(t, err)
	require.Len(t, components, 2)

	assert.Equal(t, pricing.CentralComponent, components[0].Kind)
	assert.Equal(t, pricing.StateComponent, components[1].Kind)
	assert.True(t, components[0].Rate.Equal(d("9")))
	assert.True(t, components[1].Rate.Equal(d("9")))

	// The halves always recompose to the nominal rate, odd rates included.
	components, err = pricing.SplitTaxRate(d("5"), true)
	require.NoError(t, err)
	sum := components[0].Rate.Add(components[1].Rate)
	assert.True(t, sum.Equal(d("5")))
}

func TestSplitTaxRate_DifferentJurisdiction(t *testing.T) {
	components, err := pricing.SplitTaxRate(d("18"), false)
	require.NoError(t, err)
	require.Len(t, components, 1)

	assert.Equal(t, pricing.IntegratedComponent, components[0].Kind)
	assert.True(t, components[0].Rate.Equal(d("18")))
}

func TestSplitTaxRate_InvalidRate(t *testing.T) {
	_, err := pricing.SplitTaxRate(d("-1"), true)
	assert.ErrorIs(t, err, pricing.ErrInvalidPercent)

	_, err = pricing.SplitTaxRate(d("120"), false)
	assert.ErrorIs(t, err, pricing.ErrInvalidPercent)
}

func TestSplitLineTax(t *testing.T) {
	// Same jurisdiction: 18% of 1000 split 90/90.
	components, err := pricing.SplitLineTax(d("1000"), d("18"), true)
	require.NoError(t, err)
	require.Len(t, components, 2)
	assert.True(t, components[0].Amount.Equal(d("90")))
	assert.True(t, components[1].Amount.Equal(d("90")))

	// Cross jurisdiction: one component carrying the full 180.
	components, err = pricing.SplitLineTax(d("1000"), d("18"), false)
	require.NoError(t, err)
	require.Len(t, components, 1)
	assert.True(t, components[0].Amount.Equal(d("180")))

	_, err = pricing.SplitLineTax(d("-1"), d("18"), true)
	assert.ErrorIs(t, err, pricing.ErrInvalidAmount)
}

func TestSplitLineTax_ComponentsSumToFullTax(t *testing.T) {
	taxable := d("855")
	rate := d("18")

	full, err := pricing.LineTax(taxable, rate)
	require.NoError(t, err)

	for _, same := range []bool{true, false} {
		components, err := pricing.SplitLineTax(taxable, rate, same)
		require.NoError(t, err)
		sum := d("0")
		for _, c := range components {
			sum = sum.Add(c.Amount)
		}
		assert.True(t, sum.Equal(full), "components should sum to %s, got %s (same=%v)", full, sum, same)
	}
}
