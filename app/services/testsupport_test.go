package services

import (
	"testing"

	"github.com/shopspring/decimal"

	"KioskApp/app/models"
)

func newTestLogger(t *testing.T) *LoggerService {
	t.Helper()
	logger := NewLoggerService(t.TempDir(), "test")
	t.Cleanup(logger.Close)
	return logger
}

// newTestCatalog builds a small catalog in memory: a Food category with a
// Burger whose modifier traversal covers a single-choice group, an undefined
// code and an upsell group, plus a modifier-free Soda under Drinks.
func newTestCatalog(t *testing.T) *CatalogService {
	t.Helper()
	catalog := NewCatalogService(newTestLogger(t))

	burger := &models.MenuItem{
		Name:          "Burger",
		Category:      "Food",
		Price:         decimal.RequireFromString("5.00"),
		Position:      1,
		ModifierCodes: []string{"aa", "zz", "bb"},
	}
	soda := &models.MenuItem{
		Name:     "Soda",
		Category: "Drinks",
		Price:    decimal.RequireFromString("1.50"),
		Position: 1,
	}
	catalog.items = []*models.MenuItem{burger, soda}
	catalog.itemsByName = map[string]*models.MenuItem{
		"Burger": burger,
		"Soda":   soda,
	}
	catalog.categories = []string{"Food", "Drinks"}

	catalog.definitions = map[string]models.ModifierDefinition{
		"aa": {Code: "aa", Choice: models.ChoiceSingle},
		"bb": {Code: "bb", Choice: models.ChoiceUpsell},
	}
	catalog.details = map[string][]models.ModifierDetail{
		"aa": {
			{Code: "aa", Description: "Cheese", Cost: decimal.RequireFromString("0.50")},
			{Code: "aa", Description: "No Cheese", Cost: decimal.Zero},
		},
		"bb": {
			{Code: "bb", Description: "Bacon", Cost: decimal.RequireFromString("1.00")},
			{Code: "bb", Description: "Avocado", Cost: decimal.RequireFromString("1.50")},
		},
	}
	return catalog
}
