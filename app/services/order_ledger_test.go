package services

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestLedgerTotalsIncludeModifierCosts(t *testing.T) {
	ledger := NewOrderLedger(decimal.RequireFromString("0.10"))

	ledger.AddItem("Burger", 1, decimal.RequireFromString("5.00"))
	ledger.AddModifierLine("aa", "Cheese", decimal.RequireFromString("0.50"), true)

	if got, want := ledger.TotalPrice().StringFixed(2), "5.50"; got != want {
		t.Errorf("TotalPrice = %s, want %s", got, want)
	}

	order := ledger.Snapshot(time.Now())
	if got, want := order.Subtotal.StringFixed(2), "5.50"; got != want {
		t.Errorf("Subtotal = %s, want %s", got, want)
	}
	if got, want := order.Tax.StringFixed(2), "0.55"; got != want {
		t.Errorf("Tax = %s, want %s", got, want)
	}
	if got, want := order.Total.StringFixed(2), "6.05"; got != want {
		t.Errorf("Total = %s, want %s", got, want)
	}
}

func TestLedgerDeselectRemovesMatchingLine(t *testing.T) {
	ledger := NewOrderLedger(decimal.Zero)

	ledger.AddItem("Burger", 1, decimal.RequireFromString("5.00"))
	ledger.AddModifierLine("bb", "Bacon", decimal.RequireFromString("1.00"), true)
	ledger.AddModifierLine("bb", "Avocado", decimal.RequireFromString("1.50"), true)

	ledger.AddModifierLine("bb", "Bacon", decimal.RequireFromString("1.00"), false)

	order := ledger.Snapshot(time.Now())
	mods := order.Items[0].Modifiers
	if len(mods) != 1 || mods[0].Description != "Avocado" {
		t.Fatalf("modifiers after deselect = %+v, want only Avocado", mods)
	}
	if got, want := ledger.TotalPrice().StringFixed(2), "6.50"; got != want {
		t.Errorf("TotalPrice = %s, want %s", got, want)
	}
}

func TestLedgerDeselectTargetsNewestItem(t *testing.T) {
	ledger := NewOrderLedger(decimal.Zero)

	ledger.AddItem("Burger", 1, decimal.RequireFromString("5.00"))
	ledger.AddModifierLine("bb", "Bacon", decimal.RequireFromString("1.00"), true)
	ledger.AddItem("Burger", 1, decimal.RequireFromString("5.00"))
	ledger.AddModifierLine("bb", "Bacon", decimal.RequireFromString("1.00"), true)

	ledger.AddModifierLine("bb", "Bacon", decimal.RequireFromString("1.00"), false)

	order := ledger.Snapshot(time.Now())
	if len(order.Items[0].Modifiers) != 1 {
		t.Error("deselect removed the first item's line instead of the second's")
	}
	if len(order.Items[1].Modifiers) != 0 {
		t.Error("deselect left the second item's line in place")
	}
}

func TestLedgerModifierLineWithoutItemsIsNoOp(t *testing.T) {
	ledger := NewOrderLedger(decimal.Zero)

	ledger.AddModifierLine("aa", "Cheese", decimal.RequireFromString("0.50"), true)

	if ledger.ItemCount() != 0 {
		t.Error("modifier line created an item")
	}
	if !ledger.TotalPrice().IsZero() {
		t.Errorf("TotalPrice = %s, want 0", ledger.TotalPrice())
	}
}

func TestLedgerSnapshotIsDetached(t *testing.T) {
	ledger := NewOrderLedger(decimal.Zero)
	ledger.AddItem("Burger", 1, decimal.RequireFromString("5.00"))
	ledger.AddModifierLine("aa", "Cheese", decimal.RequireFromString("0.50"), true)

	order := ledger.Snapshot(time.Now())
	order.Items[0].Modifiers[0].Description = "mutated"

	fresh := ledger.Snapshot(time.Now())
	if fresh.Items[0].Modifiers[0].Description != "Cheese" {
		t.Error("snapshot shares modifier storage with the ledger")
	}
}

func TestLedgerClear(t *testing.T) {
	ledger := NewOrderLedger(decimal.Zero)
	ledger.AddItem("Burger", 2, decimal.RequireFromString("5.00"))

	ledger.Clear()

	if ledger.ItemCount() != 0 {
		t.Errorf("ItemCount after Clear = %d, want 0", ledger.ItemCount())
	}
}
