package trade

import "github.com/shopspring/decimal"

// DefaultTaxRate returns the flat tax rate applied to the gross amount
func DefaultTaxRate() decimal.Decimal {
	return decimal.NewFromFloat(0.10)
}

// Breakdown is the itemized price summary for an order
type Breakdown struct {
	Gross    decimal.Decimal `json:"gross"`
	Tax      decimal.Decimal `json:"tax"`
	Discount decimal.Decimal `json:"discount"`
	Shipping decimal.Decimal `json:"shipping"`
	Net      decimal.Decimal `json:"net"`
}

// ComputeBreakdown derives the price breakdown from line items and
// order-level adjustments. The computation is pure: it never mutates
// its inputs and the same inputs always yield the same breakdown.
//
//	gross = sum of quantity * rate over all items
//	tax   = gross * taxRate, rounded to cents
//	net   = gross + tax - discount + shipping
//
// An empty item list yields a gross of zero; discount and shipping
// still apply, so the net can be negative when a discount exceeds the
// order total.
func ComputeBreakdown(items []OrderItem, discount, shipping, taxRate decimal.Decimal) Breakdown {
	gross := decimal.Zero
	for _, item := range items {
		gross = gross.Add(item.Rate.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	tax := gross.Mul(taxRate).Round(2)
	net := gross.Add(tax).Sub(discount).Add(shipping)

	return Breakdown{
		Gross:    gross,
		Tax:      tax,
		Discount: discount,
		Shipping: shipping,
		Net:      net,
	}
}
