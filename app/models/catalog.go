package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ChoiceType controls how a modifier group accepts selections
type ChoiceType string

const (
	// ChoiceSingle picks exactly one detail and moves on to the next group
	ChoiceSingle ChoiceType = "one"
	// ChoiceUpsell allows any number of independent selections
	ChoiceUpsell ChoiceType = "upsale"
)

// ModifierSlots lists the item record fields that may carry a modifier code,
// in traversal order.
var ModifierSlots = []string{"aa", "bb", "cc", "dd", "ee", "ff", "gg", "hh", "ii", "jj", "kk", "ll"}

// MenuItem is one sellable item from the catalog. Immutable once loaded.
type MenuItem struct {
	Name          string          `json:"name"`
	Category      string          `json:"category"`
	Price         decimal.Decimal `json:"price"`
	Position      int             `json:"position"`
	ModifierCodes []string        `json:"modifier_codes"` // non-empty slot values, slot order
}

// ModifierDefinition describes one modifier group
type ModifierDefinition struct {
	Code   string     `json:"code"`
	Choice ChoiceType `json:"choice"`
}

// AutoAdvances reports whether selecting a detail in this group should move
// the session to the next modifier group.
func (d ModifierDefinition) AutoAdvances() bool {
	return d.Choice == ChoiceSingle
}

// ModifierDetail is one selectable option within a modifier group
type ModifierDetail struct {
	Code        string          `json:"code"`
	Description string          `json:"description"`
	Cost        decimal.Decimal `json:"cost"`
	Image       string          `json:"image"`
}

// ParsePrice converts a catalog price string to a decimal amount. Currency
// symbols and thousands separators are stripped first; anything that still
// fails to parse is treated as zero.
func ParsePrice(raw string) decimal.Decimal {
	cleaned := strings.ReplaceAll(raw, "$", "")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero
	}
	return d
}
