package pricing

import "github.com/shopspring/decimal"

// TaxComponentKind names one jurisdictional component of a tax charge.
type TaxComponentKind string

const (
	// CentralComponent and StateComponent are the two halves applied when the
	// counterparty shares the business's home jurisdiction.
	CentralComponent TaxComponentKind = "CENTRAL"
	StateComponent   TaxComponentKind = "STATE"
	// IntegratedComponent is the single full-rate component applied across
	// jurisdictions.
	IntegratedComponent TaxComponentKind = "INTEGRATED"
)

// TaxComponent is one jurisdictional slice of a tax charge.
type TaxComponent struct {
	Kind   TaxComponentKind `json:"kind"`
	Rate   decimal.Decimal  `json:"rate"`
	Amount decimal.Decimal  `json:"amount"`
}

var two = decimal.NewFromInt(2)

// SplitTaxRate splits a nominal tax rate into jurisdictional components.
// When the counterparty's jurisdiction equals the business's home
// jurisdiction the rate splits evenly into a central and a state half;
// otherwise the full rate applies as a single integrated component. Resolving
// the jurisdiction-equality boolean is the caller's concern.
func SplitTaxRate(rate decimal.Decimal, sameJurisdiction bool) ([]TaxComponent, error) {
	if err := validatePercent(rate); err != nil {
		return nil, err
	}
	if !sameJurisdiction {
		return []TaxComponent{{Kind: IntegratedComponent, Rate: rate}}, nil
	}
	half := rate.Div(two)
	return []TaxComponent{
		{Kind: CentralComponent, Rate: half},
		{Kind: StateComponent, Rate: half},
	}, nil
}

// SplitLineTax computes the tax on a taxable amount and splits it into
// jurisdictional components.
func SplitLineTax(taxableAmount, rate decimal.Decimal, sameJurisdiction bool) ([]TaxComponent, error) {
	if taxableAmount.IsNegative() {
		return nil, ErrInvalidAmount
	}
	components, err := SplitTaxRate(rate, sameJurisdiction)
	if err != nil {
		return nil, err
	}
	for i := range components {
		components[i].Amount = taxableAmount.Mul(components[i].Rate).Div(hundred)
	}
	return components, nil
}
