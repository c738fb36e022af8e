package services

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"

	"KioskApp/app/models"
)

// CatalogService loads the menu catalog from the three kiosk data files and
// serves it read-only. A missing or unparsable file is reported once and its
// slice of the catalog stays empty; dependent screens simply have nothing to
// show.
type CatalogService struct {
	logger *LoggerService

	items       []*models.MenuItem
	itemsByName map[string]*models.MenuItem
	categories  []string
	definitions map[string]models.ModifierDefinition
	details     map[string][]models.ModifierDetail
}

// itemRecord mirrors one entry of the items file. Modifier slots aa..ll hold
// modifier codes or empty strings.
type itemRecord struct {
	MenuItem     string `json:"menuitem"`
	MenuCategory string `json:"menucategory"`
	ItemPrice    string `json:"itemprice"`
	Position     string `json:"position"`
	AA           string `json:"aa"`
	BB           string `json:"bb"`
	CC           string `json:"cc"`
	DD           string `json:"dd"`
	EE           string `json:"ee"`
	FF           string `json:"ff"`
	GG           string `json:"gg"`
	HH           string `json:"hh"`
	II           string `json:"ii"`
	JJ           string `json:"jj"`
	KK           string `json:"kk"`
	LL           string `json:"ll"`
}

func (r itemRecord) slots() []string {
	return []string{r.AA, r.BB, r.CC, r.DD, r.EE, r.FF, r.GG, r.HH, r.II, r.JJ, r.KK, r.LL}
}

type modifierRecord struct {
	ModCode   string `json:"modcode"`
	ModChoice string `json:"modchoice"`
}

type detailRecord struct {
	ModCode     string `json:"modcode"`
	Description string `json:"description"`
	Cost        string `json:"cost"`
	Location    string `json:"location"`
}

// NewCatalogService creates an empty catalog service
func NewCatalogService(logger *LoggerService) *CatalogService {
	return &CatalogService{
		logger:      logger,
		itemsByName: make(map[string]*models.MenuItem),
		definitions: make(map[string]models.ModifierDefinition),
		details:     make(map[string][]models.ModifierDetail),
	}
}

// Load reads the item, modifier definition and modifier detail files. Each
// file degrades independently: a load failure is logged and that portion of
// the catalog stays empty.
func (s *CatalogService) Load(itemsPath, modifierPath, detailPath string) {
	if err := s.loadItems(itemsPath); err != nil {
		s.logger.LogWarning("Item catalog unavailable", err.Error())
	}
	if err := s.loadModifiers(modifierPath); err != nil {
		s.logger.LogWarning("Modifier catalog unavailable", err.Error())
	}
	if err := s.loadDetails(detailPath); err != nil {
		s.logger.LogWarning("Modifier detail catalog unavailable", err.Error())
	}
	s.logger.LogInfo("Catalog loaded", fmt.Sprintf("items=%d modifiers=%d", len(s.items), len(s.definitions)))
}

func (s *CatalogService) loadItems(path string) error {
	var doc struct {
		Data []itemRecord `json:"data"`
	}
	if err := readJSONFile(path, &doc); err != nil {
		return err
	}

	seenCategories := make(map[string]bool)
	for _, rec := range doc.Data {
		if rec.MenuItem == "" || rec.MenuCategory == "" {
			s.logger.LogWarning("Skipping invalid item record", fmt.Sprintf("menuitem=%q menucategory=%q", rec.MenuItem, rec.MenuCategory))
			continue
		}

		position, _ := strconv.Atoi(rec.Position)
		item := &models.MenuItem{
			Name:     rec.MenuItem,
			Category: rec.MenuCategory,
			Price:    models.ParsePrice(rec.ItemPrice),
			Position: position,
		}
		for _, code := range rec.slots() {
			if code != "" {
				item.ModifierCodes = append(item.ModifierCodes, code)
			}
		}

		s.items = append(s.items, item)
		s.itemsByName[item.Name] = item
		if !seenCategories[item.Category] {
			seenCategories[item.Category] = true
			s.categories = append(s.categories, item.Category)
		}
	}
	return nil
}

func (s *CatalogService) loadModifiers(path string) error {
	var doc struct {
		Data []modifierRecord `json:"data"`
	}
	if err := readJSONFile(path, &doc); err != nil {
		return err
	}

	for _, rec := range doc.Data {
		if rec.ModCode == "" {
			continue
		}
		choice := models.ChoiceType(rec.ModChoice)
		if choice != models.ChoiceSingle && choice != models.ChoiceUpsell {
			choice = models.ChoiceSingle
		}
		s.definitions[rec.ModCode] = models.ModifierDefinition{Code: rec.ModCode, Choice: choice}
	}
	return nil
}

func (s *CatalogService) loadDetails(path string) error {
	var doc struct {
		Data []detailRecord `json:"data"`
	}
	if err := readJSONFile(path, &doc); err != nil {
		return err
	}

	for _, rec := range doc.Data {
		if rec.ModCode == "" || rec.Description == "" {
			continue
		}
		s.details[rec.ModCode] = append(s.details[rec.ModCode], models.ModifierDetail{
			Code:        rec.ModCode,
			Description: rec.Description,
			Cost:        models.ParsePrice(rec.Cost),
			Image:       rec.Location,
		})
	}
	return nil
}

func readJSONFile(path string, out interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("could not read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("could not parse %s: %w", path, err)
	}
	return nil
}

// Categories returns the category names in first-seen order
func (s *CatalogService) Categories() []string {
	return s.categories
}

// ItemsInCategory returns the items of one category ordered by position
func (s *CatalogService) ItemsInCategory(category string) []*models.MenuItem {
	var result []*models.MenuItem
	for _, item := range s.items {
		if item.Category == category {
			result = append(result, item)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Position < result[j].Position
	})
	return result
}

// Item looks up one item by name
func (s *CatalogService) Item(name string) (*models.MenuItem, bool) {
	item, ok := s.itemsByName[name]
	return item, ok
}

// Modifier looks up one modifier definition by code
func (s *CatalogService) Modifier(code string) (models.ModifierDefinition, bool) {
	def, ok := s.definitions[code]
	return def, ok
}

// Details returns the selectable details of a modifier group in file order
func (s *CatalogService) Details(code string) []models.ModifierDetail {
	return s.details[code]
}

// Detail looks up one modifier detail by group code and description
func (s *CatalogService) Detail(code, description string) (models.ModifierDetail, bool) {
	for _, d := range s.details[code] {
		if d.Description == description {
			return d, true
		}
	}
	return models.ModifierDetail{}, false
}
