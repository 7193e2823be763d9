package cart

import (
	"github.com/fullstackvinod/krishAlignUser/internal/domain"
	"github.com/shopspring/decimal"
)

// Pricing holds the delivery and tax rules applied on top of the cart subtotal.
type Pricing struct {
	// FreeShippingThreshold waives the delivery fee for subtotals strictly above it.
	FreeShippingThreshold decimal.Decimal
	DeliveryFee           decimal.Decimal
	TaxRate               decimal.Decimal
}

// DefaultPricing is free delivery above 500, a flat fee of 50 otherwise and 5% tax.
var DefaultPricing = Pricing{
	FreeShippingThreshold: decimal.NewFromInt(500),
	DeliveryFee:           decimal.NewFromInt(50),
	TaxRate:               decimal.RequireFromString("0.05"),
}

// Summary is the price breakdown rendered on the cart review screen.
type Summary struct {
	Subtotal    decimal.Decimal `json:"subtotal"`
	DeliveryFee decimal.Decimal `json:"deliveryFee"`
	Tax         decimal.Decimal `json:"tax"`
	Total       decimal.Decimal `json:"total"`
}

// ComboSubtotal is basePrice × quantity plus every line's unitPrice × quantity.
func ComboSubtotal(e domain.ComboCartEntry) decimal.Decimal {
	total := e.BasePrice.Mul(decimal.NewFromInt(int64(e.Quantity)))
	for _, line := range e.IngredientLines {
		total = total.Add(line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return total
}

// Subtotal sums ComboSubtotal over entries.
func Subtotal(entries []domain.ComboCartEntry) decimal.Decimal {
	total := decimal.Zero
	for _, e := range entries {
		total = total.Add(ComboSubtotal(e))
	}
	return total
}

// DeliveryFeeFor returns the delivery fee owed for a subtotal.
func (p Pricing) DeliveryFeeFor(subtotal decimal.Decimal) decimal.Decimal {
	if subtotal.GreaterThan(p.FreeShippingThreshold) {
		return decimal.Zero
	}
	return p.DeliveryFee
}

// TaxFor returns the tax owed for a subtotal.
func (p Pricing) TaxFor(subtotal decimal.Decimal) decimal.Decimal {
	return subtotal.Mul(p.TaxRate)
}

// Quote prices a set of entries.
func (p Pricing) Quote(entries []domain.ComboCartEntry) Summary {
	subtotal := Subtotal(entries)
	fee := p.DeliveryFeeFor(subtotal)
	tax := p.TaxFor(subtotal)
	return Summary{
		Subtotal:    subtotal,
		DeliveryFee: fee,
		Tax:         tax,
		Total:       subtotal.Add(fee).Add(tax),
	}
}
