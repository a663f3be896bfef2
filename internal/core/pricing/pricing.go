// Package pricing implements the discount and tax pipeline applied to invoice
// lines before any ledger posting. Everything here is a pure function over
// decimal inputs: no lookups, no side effects, safe for any number of
// concurrent callers.
//
// Sequencing is fixed and load-bearing: discount1 applies to the line amount,
// discount2 applies to the post-discount1 remainder, and tax is computed on
// the amount left after both discounts. Computing discount2 on the reduced
// base bounds the combined discount so the final amount never goes negative
// for valid percentages.
package pricing

import (
	"errors"
	"fmt"

	"github.com/Erenishere/pharam-sub003/internal/apperrors"
	"github.com/Erenishere/pharam-sub003/internal/core/domain"
	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidAmount is returned when a negative amount is supplied.
	ErrInvalidAmount = fmt.Errorf("%w: amount must not be negative", apperrors.ErrValidation)

	// ErrInvalidPercent is returned when a percentage falls outside [0,100].
	ErrInvalidPercent = fmt.Errorf("%w: percent must be between 0 and 100", apperrors.ErrValidation)

	// ErrClaimAccountRequired is returned when a positive discount2 is
	// requested without a claim account to absorb it.
	ErrClaimAccountRequired = errors.New("claim account is required for discount2")
)

var hundred = decimal.NewFromInt(100)

// DiscountBreakdown is the transient result of applying the discount/tax
// pipeline to one amount.
type DiscountBreakdown struct {
	OriginalAmount       decimal.Decimal `json:"originalAmount"`
	Discount1Percent     decimal.Decimal `json:"discount1Percent"`
	Discount1Amount      decimal.Decimal `json:"discount1Amount"`
	AmountAfterDiscount1 decimal.Decimal `json:"amountAfterDiscount1"`
	Discount2Percent     decimal.Decimal `json:"discount2Percent"`
	Discount2Amount      decimal.Decimal `json:"discount2Amount"`
	AmountAfterDiscount2 decimal.Decimal `json:"amountAfterDiscount2"` // The taxable amount
	TaxAmount            decimal.Decimal `json:"taxAmount"`
	FinalAmount          decimal.Decimal `json:"finalAmount"`
}

// LineTotals is the full pricing result for one invoice line.
type LineTotals struct {
	LineSubtotal    decimal.Decimal `json:"lineSubtotal"` // quantity x unit price
	Discount1Amount decimal.Decimal `json:"discount1Amount"`
	Discount2Amount decimal.Decimal `json:"discount2Amount"`
	TotalDiscount   decimal.Decimal `json:"totalDiscount"`
	TaxableAmount   decimal.Decimal `json:"taxableAmount"`
	TaxAmount       decimal.Decimal `json:"taxAmount"`
	LineTotal       decimal.Decimal `json:"lineTotal"`
}

// InvoiceTotalsResult aggregates line totals for the invoice subsystem.
type InvoiceTotalsResult struct {
	Lines         []LineTotals    `json:"lines"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	TotalDiscount decimal.Decimal `json:"totalDiscount"`
	TaxableTotal  decimal.Decimal `json:"taxableTotal"`
	TaxTotal      decimal.Decimal `json:"taxTotal"`
	GrandTotal    decimal.Decimal `json:"grandTotal"`
}

func validatePercent(percent decimal.Decimal) error {
	if percent.IsNegative() || percent.GreaterThan(hundred) {
		return ErrInvalidPercent
	}
	return nil
}

// Discount1 computes the first-level discount amount.
func Discount1(amount, percent decimal.Decimal) (decimal.Decimal, error) {
	if amount.IsNegative() {
		return decimal.Zero, ErrInvalidAmount
	}
	if err := validatePercent(percent); err != nil {
		return decimal.Zero, err
	}
	return amount.Mul(percent).Div(hundred), nil
}

// Discount2 computes the second-level discount amount on the post-discount1
// base. A positive percent requires a claim account; existence and
// eligibility of that account are the caller's concern (the claim account
// validator), keeping this function pure.
func Discount2(amountAfterD1, percent decimal.Decimal, claimAccountID string) (decimal.Decimal, error) {
	if amountAfterD1.IsNegative() {
		return decimal.Zero, ErrInvalidAmount
	}
	if err := validatePercent(percent); err != nil {
		return decimal.Zero, err
	}
	if percent.IsPositive() && claimAccountID == "" {
		return decimal.Zero, ErrClaimAccountRequired
	}
	return amountAfterD1.Mul(percent).Div(hundred), nil
}

// ApplyDiscounts runs discount1 then discount2 over amount and returns the
// full breakdown. Tax fields are left zero; LineTax fills them for callers
// that need the taxed pipeline.
func ApplyDiscounts(amount, discount1Percent, discount2Percent decimal.Decimal, claimAccountID string) (DiscountBreakdown, error) {
	d1, err := Discount1(amount, discount1Percent)
	if err != nil {
		return DiscountBreakdown{}, err
	}
	afterD1 := amount.Sub(d1)

	d2, err := Discount2(afterD1, discount2Percent, claimAccountID)
	if err != nil {
		return DiscountBreakdown{}, err
	}
	afterD2 := afterD1.Sub(d2)

	return DiscountBreakdown{
		OriginalAmount:       amount,
		Discount1Percent:     discount1Percent,
		Discount1Amount:      d1,
		AmountAfterDiscount1: afterD1,
		Discount2Percent:     discount2Percent,
		Discount2Amount:      d2,
		AmountAfterDiscount2: afterD2,
		FinalAmount:          afterD2,
	}, nil
}

// LineTax computes the tax on a taxable amount. Tax always applies after both
// discounts, never before.
func LineTax(taxableAmount, taxRate decimal.Decimal) (decimal.Decimal, error) {
	if taxableAmount.IsNegative() {
		return decimal.Zero, ErrInvalidAmount
	}
	if err := validatePercent(taxRate); err != nil {
		return decimal.Zero, err
	}
	return taxableAmount.Mul(taxRate).Div(hundred), nil
}

// LineTotal composes subtotal, discounts and tax for one invoice line.
func LineTotal(line domain.InvoiceLine, claimAccountID string) (LineTotals, error) {
	subtotal := line.Quantity.Mul(line.UnitPrice)

	breakdown, err := ApplyDiscounts(subtotal, line.Discount1Percent, line.Discount2Percent, claimAccountID)
	if err != nil {
		return LineTotals{}, err
	}

	tax, err := LineTax(breakdown.AmountAfterDiscount2, line.TaxRate)
	if err != nil {
		return LineTotals{}, err
	}

	return LineTotals{
		LineSubtotal:    subtotal,
		Discount1Amount: breakdown.Discount1Amount,
		Discount2Amount: breakdown.Discount2Amount,
		TotalDiscount:   breakdown.Discount1Amount.Add(breakdown.Discount2Amount),
		TaxableAmount:   breakdown.AmountAfterDiscount2,
		TaxAmount:       tax,
		LineTotal:       breakdown.AmountAfterDiscount2.Add(tax),
	}, nil
}

// InvoiceTotals prices every line and aggregates the invoice-level totals.
func InvoiceTotals(lines []domain.InvoiceLine, claimAccountID string) (InvoiceTotalsResult, error) {
	result := InvoiceTotalsResult{
		Lines:         make([]LineTotals, 0, len(lines)),
		Subtotal:      decimal.Zero,
		TotalDiscount: decimal.Zero,
		TaxableTotal:  decimal.Zero,
		TaxTotal:      decimal.Zero,
		GrandTotal:    decimal.Zero,
	}
	for _, line := range lines {
		lt, err := LineTotal(line, claimAccountID)
		if err != nil {
			return InvoiceTotalsResult{}, fmt.Errorf("line %s: %w", line.LineID, err)
		}
		result.Lines = append(result.Lines, lt)
		result.Subtotal = result.Subtotal.Add(lt.LineSubtotal)
		result.TotalDiscount = result.TotalDiscount.Add(lt.TotalDiscount)
		result.TaxableTotal = result.TaxableTotal.Add(lt.TaxableAmount)
		result.TaxTotal = result.TaxTotal.Add(lt.TaxAmount)
		result.GrandTotal = result.GrandTotal.Add(lt.LineTotal)
	}
	return result, nil
}
