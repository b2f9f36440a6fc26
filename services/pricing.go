package services

import (
	"github.com/shopspring/decimal"
)

// Line is one priced cart or order line.
type Line struct {
	UnitPrice int64
	Quantity  int
}

type Totals struct {
	Subtotal    int64 `json:"subtotal"`
	DeliveryFee int64 `json:"deliveryFee"`
	Tax         int64 `json:"tax"`
	Total       int64 `json:"total"`
	ItemCount   int   `json:"itemCount"`
}

// Pricing holds the fee and tax rate. Cart summaries and checkout share one
// value so the two always agree.
type Pricing struct {
	DeliveryFee int64
	TaxRate     decimal.Decimal
}

func DefaultPricing() Pricing {
	return Pricing{DeliveryFee: 49, TaxRate: decimal.RequireFromString("0.05")}
}

// Compute is pure. An empty cart costs nothing; tax rounds half up on the
// subtotal only.
func (p Pricing) Compute(lines []Line) Totals {
	var t Totals
	for _, l := range lines {
		t.Subtotal += l.UnitPrice * int64(l.Quantity)
		t.ItemCount += l.Quantity
	}
	if len(lines) > 0 {
		t.DeliveryFee = p.DeliveryFee
	}
	// amounts are non-negative, so away-from-zero rounding is half up
	t.Tax = decimal.NewFromInt(t.Subtotal).Mul(p.TaxRate).Round(0).IntPart()
	t.Total = t.Subtotal + t.DeliveryFee + t.Tax
	return t
}
