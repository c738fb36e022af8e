package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ModifierLine is a selected modifier attached to an ordered item
type ModifierLine struct {
	Code        string          `json:"code"`
	Description string          `json:"description"`
	Cost        decimal.Decimal `json:"cost"`
}

// OrderedItem is one line of the order with its selected modifiers,
// in selection order.
type OrderedItem struct {
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Modifiers []ModifierLine  `json:"modifiers"`
}

// LineTotal is unit price times quantity plus every modifier cost.
func (i OrderedItem) LineTotal() decimal.Decimal {
	total := i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
	for _, m := range i.Modifiers {
		total = total.Add(m.Cost)
	}
	return total
}

// Order is an immutable snapshot of the ledger taken at finish time.
// PlacedAt is captured in the snapshot so that receipt encoding is a pure
// function of the order.
type Order struct {
	Items    []OrderedItem   `json:"items"`
	Subtotal decimal.Decimal `json:"subtotal"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
	PlacedAt time.Time       `json:"placed_at"`
}

// ComputeTotals derives subtotal, tax and total from the item lines.
// Tax is rounded to cents before the total is formed.
func (o *Order) ComputeTotals(taxRate decimal.Decimal) {
	subtotal := decimal.Zero
	for _, item := range o.Items {
		subtotal = subtotal.Add(item.LineTotal())
	}
	o.Subtotal = subtotal
	o.Tax = subtotal.Mul(taxRate).Round(2)
	o.Total = subtotal.Add(o.Tax)
}
