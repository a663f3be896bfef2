package domain

import (
	"github.com/shopspring/decimal"
)

// Invoice carries the slice of invoice facts this core needs: line quantities
// and prices for pricing, scheme quantities and the claim-account link for
// settlement. The invoice subsystem owns everything else about the document.
type Invoice struct {
	InvoiceID      string          `json:"invoiceID"`
	CustomerID     string          `json:"customerID"`
	ClaimAccountID string          `json:"claimAccountID"` // Set once scheme2 value is settled
	CurrencyCode   string          `json:"currencyCode"`
	Lines          []InvoiceLine   `json:"lines"`
	TotalScheme1   decimal.Decimal `json:"totalScheme1"`
	TotalScheme2   decimal.Decimal `json:"totalScheme2"`
	AuditFields
}

// InvoiceLine is one priced row of an invoice.
// Scheme1Quantity is a free-goods bonus with no monetary effect;
// Scheme2Quantity is a claim-based bonus whose value is settled through the
// ledger against a claim account.
type InvoiceLine struct {
	LineID           string          `json:"lineID"`
	InvoiceID        string          `json:"invoiceID"`
	ItemID           string          `json:"itemID"`
	Quantity         decimal.Decimal `json:"quantity"`
	UnitPrice        decimal.Decimal `json:"unitPrice"`
	Discount1Percent decimal.Decimal `json:"discount1Percent"`
	Discount2Percent decimal.Decimal `json:"discount2Percent"`
	TaxRate          decimal.Decimal `json:"taxRate"`
	Scheme1Quantity  decimal.Decimal `json:"scheme1Quantity"`
	Scheme2Quantity  decimal.Decimal `json:"scheme2Quantity"`
	ClaimAccountID   string          `json:"claimAccountID"` // Required when Scheme2Quantity > 0
}

// Scheme2Value returns the monetary value of the line's scheme2 bonus.
func (l InvoiceLine) Scheme2Value() decimal.Decimal {
	return l.Scheme2Quantity.Mul(l.UnitPrice)
}

// TotalScheme2Value sums the scheme2 value across the invoice's lines.
func (inv Invoice) TotalScheme2Value() decimal.Decimal {
	total := decimal.Zero
	for _, line := range inv.Lines {
		total = total.Add(line.Scheme2Value())
	}
	return total
}
