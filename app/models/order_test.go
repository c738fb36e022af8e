package models

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestLineTotal(t *testing.T) {
	item := OrderedItem{
		Name:      "Burger",
		Quantity:  2,
		UnitPrice: decimal.RequireFromString("5.00"),
		Modifiers: []ModifierLine{
			{Description: "Cheese", Cost: decimal.RequireFromString("0.50")},
			{Description: "Bacon", Cost: decimal.RequireFromString("1.00")},
		},
	}

	if got := item.LineTotal().StringFixed(2); got != "11.50" {
		t.Errorf("LineTotal = %s, want 11.50", got)
	}
}

func TestComputeTotalsRoundsTaxToCents(t *testing.T) {
	order := Order{
		Items: []OrderedItem{
			{Name: "Soda", Quantity: 1, UnitPrice: decimal.RequireFromString("1.99")},
		},
	}

	order.ComputeTotals(decimal.RequireFromString("0.0825"))

	if got := order.Subtotal.StringFixed(2); got != "1.99" {
		t.Errorf("Subtotal = %s, want 1.99", got)
	}
	// 1.99 * 0.0825 = 0.164175, rounded to 0.16
	if got := order.Tax.StringFixed(2); got != "0.16" {
		t.Errorf("Tax = %s, want 0.16", got)
	}
	if got := order.Total.StringFixed(2); got != "2.15" {
		t.Errorf("Total = %s, want 2.15", got)
	}
}

func TestComputeTotalsEmptyOrder(t *testing.T) {
	var order Order
	order.ComputeTotals(decimal.RequireFromString("0.10"))

	if !order.Subtotal.IsZero() || !order.Tax.IsZero() || !order.Total.IsZero() {
		t.Errorf("empty order totals = %s/%s/%s, want zeros", order.Subtotal, order.Tax, order.Total)
	}
}
