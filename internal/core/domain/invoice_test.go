package domain_test

import (
	"testing"

	"github.com/Erenishere/pharam-sub003/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestInvoice_TotalScheme2Value(t *testing.T) {
	inv := domain.Invoice{
		InvoiceID: "inv-1",
		Lines: []domain.InvoiceLine{
			{
				LineID:          "line-1",
				Quantity:        decimal.NewFromInt(12),
				Scheme2Quantity: decimal.NewFromInt(2),
				UnitPrice:       decimal.NewFromInt(100),
			},
			{
				LineID:          "line-2",
				Quantity:        decimal.NewFromInt(24),
				Scheme2Quantity: decimal.NewFromInt(1),
				UnitPrice:       decimal.NewFromInt(50),
			},
		},
	}

	// 2*100 + 1*50
	assert.True(t, inv.TotalScheme2Value().Equal(decimal.NewFromInt(250)),
		"total scheme2 value should be 250, got %s", inv.TotalScheme2Value())
}

func TestInvoiceLine_Scheme2Value(t *testing.T) {
	line := domain.InvoiceLine{
		Scheme2Quantity: decimal.NewFromInt(3),
		UnitPrice:       decimal.RequireFromString("12.5"),
	}
	assert.True(t, line.Scheme2Value().Equal(decimal.RequireFromString("37.5")))

	empty := domain.InvoiceLine{UnitPrice: decimal.NewFromInt(100)}
	assert.True(t, empty.Scheme2Value().IsZero(), "no scheme2 quantity means zero value")
}
