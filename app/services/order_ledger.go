package services

import (
	"time"

	"github.com/shopspring/decimal"

	"KioskApp/app/models"
)

// OrderLedger accumulates the items and modifier lines of the in-progress
// order. Modifier lines attach to the most recently added item.
type OrderLedger struct {
	taxRate decimal.Decimal
	items   []models.OrderedItem
}

// NewOrderLedger creates an empty ledger
func NewOrderLedger(taxRate decimal.Decimal) *OrderLedger {
	return &OrderLedger{taxRate: taxRate}
}

// AddItem appends an item line
func (l *OrderLedger) AddItem(name string, quantity int, unitPrice decimal.Decimal) {
	l.items = append(l.items, models.OrderedItem{
		Name:      name,
		Quantity:  quantity,
		UnitPrice: unitPrice,
	})
}

// AddModifierLine records a selection change. On selected it appends a
// modifier line to the current item; on deselected it removes the matching
// line. Both are no-ops while the ledger has no items.
func (l *OrderLedger) AddModifierLine(code, description string, cost decimal.Decimal, selected bool) {
	if len(l.items) == 0 {
		return
	}

	if selected {
		current := &l.items[len(l.items)-1]
		current.Modifiers = append(current.Modifiers, models.ModifierLine{
			Code:        code,
			Description: description,
			Cost:        cost,
		})
		return
	}

	// Deselection walks items newest-first so it removes the line belonging
	// to the item currently being composed.
	for i := len(l.items) - 1; i >= 0; i-- {
		mods := l.items[i].Modifiers
		for j := len(mods) - 1; j >= 0; j-- {
			if mods[j].Code == code && mods[j].Description == description {
				l.items[i].Modifiers = append(mods[:j], mods[j+1:]...)
				return
			}
		}
	}
}

// ItemCount returns the number of item lines (modifier lines excluded)
func (l *OrderLedger) ItemCount() int {
	return len(l.items)
}

// TotalPrice is the sum of item price times quantity plus every selected
// modifier cost. Tax is not included; it is derived at snapshot time.
func (l *OrderLedger) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, item := range l.items {
		total = total.Add(item.LineTotal())
	}
	return total
}

// Clear empties the ledger
func (l *OrderLedger) Clear() {
	l.items = nil
}

// Snapshot returns a read-only copy of the order with derived totals,
// stamped with the given time.
func (l *OrderLedger) Snapshot(placedAt time.Time) models.Order {
	order := models.Order{
		Items:    make([]models.OrderedItem, len(l.items)),
		PlacedAt: placedAt,
	}
	for i, item := range l.items {
		copied := item
		copied.Modifiers = append([]models.ModifierLine(nil), item.Modifiers...)
		order.Items[i] = copied
	}
	order.ComputeTotals(l.taxRate)
	return order
}
