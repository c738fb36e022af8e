package services

import (
	"fmt"
	"time"

	"KioskApp/app/models"
)

// ScreenType names the screens a session can show
type ScreenType string

const (
	ScreenMainCategory ScreenType = "main_category"
	ScreenCategory     ScreenType = "category"
	ScreenItem         ScreenType = "item"
	ScreenModifier     ScreenType = "modifier"
	ScreenFinalSale    ScreenType = "final_sale"
)

// NavigationEntry is one step of the navigation history
type NavigationEntry struct {
	Screen ScreenType
	Data   string // category name, item name or modifier code
}

// ScreenRenderer is the abstract rendering capability injected into the
// session. Implementations only describe what to show; layout, images and
// control creation are entirely theirs.
type ScreenRenderer interface {
	RenderCategories(categories []string)
	RenderItems(category string, items []*models.MenuItem)
	RenderModifier(def models.ModifierDefinition, details []models.ModifierDetail, selected map[string]bool)
	RenderFinalSale(order models.Order)
	ShowError(message string)
}

// ReceiptPrinter delivers an encoded receipt to the printer
type ReceiptPrinter interface {
	Print(data []byte) error
}

// OrderNumberSource issues the next order number
type OrderNumberSource interface {
	NextOrderNumber() (int, error)
}

// OrderNotifier tells the remote order system an order was finalized
type OrderNotifier interface {
	NotifyOrderComplete(orderNumber int) (string, error)
}

// OrderArchiver persists finished orders locally
type OrderArchiver interface {
	SaveOrder(order models.Order, orderNumber int) error
}

// SessionService is the kiosk's screen state machine. It walks one customer
// through category, item and modifier screens to the final sale, owns the
// navigation history, and runs the finish-order sequence.
//
// All methods must be called from a single control flow; the session is not
// safe for concurrent use.
type SessionService struct {
	catalog   *CatalogService
	selection *SelectionEngine
	ledger    *OrderLedger
	encoder   *ReceiptEncoder
	screen    ScreenRenderer
	logger    *LoggerService

	printer  ReceiptPrinter
	numbers  OrderNumberSource
	notifier OrderNotifier
	archive  OrderArchiver // optional

	state           ScreenType
	history         []NavigationEntry
	currentCategory string
	currentItem     string
	modifierCodes   []string
	modifierIndex   int
}

// NewSessionService wires a session from its collaborators. archive may be
// nil when no local archive is configured.
func NewSessionService(
	catalog *CatalogService,
	selection *SelectionEngine,
	ledger *OrderLedger,
	encoder *ReceiptEncoder,
	screen ScreenRenderer,
	logger *LoggerService,
	printer ReceiptPrinter,
	numbers OrderNumberSource,
	notifier OrderNotifier,
	archive OrderArchiver,
) *SessionService {
	return &SessionService{
		catalog:   catalog,
		selection: selection,
		ledger:    ledger,
		encoder:   encoder,
		screen:    screen,
		logger:    logger,
		printer:   printer,
		numbers:   numbers,
		notifier:  notifier,
		archive:   archive,
		state:     ScreenMainCategory,
	}
}

// Start shows the main category screen
func (s *SessionService) Start() {
	s.state = ScreenMainCategory
	s.screen.RenderCategories(s.catalog.Categories())
}

// State returns the current screen state
func (s *SessionService) State() ScreenType {
	return s.state
}

// HistoryDepth returns the navigation history length
func (s *SessionService) HistoryDepth() int {
	return len(s.history)
}

func (s *SessionService) push(entry NavigationEntry) {
	s.history = append(s.history, entry)
}

// pop removes and returns the most recent entry. Popping an empty history is
// a no-op reported through ok.
func (s *SessionService) pop() (NavigationEntry, bool) {
	if len(s.history) == 0 {
		return NavigationEntry{}, false
	}
	entry := s.history[len(s.history)-1]
	s.history = s.history[:len(s.history)-1]
	return entry, true
}

// SelectCategory shows the item list of one category
func (s *SessionService) SelectCategory(name string) {
	s.push(NavigationEntry{Screen: ScreenCategory, Data: s.currentCategory})
	s.currentCategory = name
	s.state = ScreenCategory
	s.screen.RenderItems(name, s.catalog.ItemsInCategory(name))
	s.logger.LogInfo("Category selected", name)
}

// SelectItem adds the item to the order and begins its modifier traversal.
// An item missing from the catalog is nothing to show; the screen is left
// as it is.
func (s *SessionService) SelectItem(name string) {
	item, ok := s.catalog.Item(name)
	if !ok {
		s.logger.LogWarning("Selected item not in catalog", name)
		return
	}

	s.push(NavigationEntry{Screen: ScreenCategory, Data: s.currentCategory})
	s.currentItem = item.Name
	s.currentCategory = item.Category
	s.state = ScreenItem
	s.ledger.AddItem(item.Name, 1, item.Price)
	s.logger.LogInfo("Item added to order", item.Name)

	s.modifierCodes = append([]string(nil), item.ModifierCodes...)
	s.modifierIndex = 0
	s.push(NavigationEntry{Screen: ScreenItem, Data: item.Name})
	s.AdvanceModifier()
}

// AdvanceModifier shows the next modifier group of the current item, or the
// final sale screen when the traversal is done. Codes with no definition in
// the catalog are skipped; that is non-fatal but logged so operators can see
// the data gap.
func (s *SessionService) AdvanceModifier() {
	for {
		if s.modifierIndex >= len(s.modifierCodes) {
			s.state = ScreenFinalSale
			s.screen.RenderFinalSale(s.ledger.Snapshot(time.Now()))
			return
		}

		code := s.modifierCodes[s.modifierIndex]
		s.modifierIndex++

		def, ok := s.catalog.Modifier(code)
		if !ok {
			s.logger.LogWarning("Skipping undefined modifier code", code)
			continue
		}

		s.push(NavigationEntry{Screen: ScreenModifier, Data: code})
		s.state = ScreenModifier
		s.renderModifier(def)
		return
	}
}

func (s *SessionService) renderModifier(def models.ModifierDefinition) {
	s.screen.RenderModifier(def, s.catalog.Details(def.Code), s.selection.SelectedFor(def.Code))
}

// ToggleDetail records a modifier detail tap. Ledger lines follow the
// selection state, and single-choice groups advance automatically.
func (s *SessionService) ToggleDetail(code, description string) {
	result := s.selection.Toggle(code, description)

	for _, cleared := range result.Cleared {
		if detail, ok := s.catalog.Detail(code, cleared); ok {
			s.ledger.AddModifierLine(code, cleared, detail.Cost, false)
		}
	}

	if result.Changed {
		detail, ok := s.catalog.Detail(code, description)
		if !ok {
			// Unknown detail: selection state was recorded but there is no
			// cost line to carry.
			s.logger.LogWarning("Modifier detail not in catalog", fmt.Sprintf("%s/%s", code, description))
		} else {
			s.ledger.AddModifierLine(code, description, detail.Cost, result.Selected)
		}
	}

	if result.AutoAdvance {
		s.AdvanceModifier()
		return
	}

	if def, ok := s.catalog.Modifier(code); ok && s.state == ScreenModifier {
		s.renderModifier(def)
	}
}

// GoBack returns to the previous screen. With nothing to go back to it is a
// no-op that leaves the state untouched.
func (s *SessionService) GoBack() {
	switch s.state {
	case ScreenMainCategory:
		return

	case ScreenCategory:
		if _, ok := s.pop(); !ok {
			return
		}
		s.currentCategory = ""
		s.state = ScreenMainCategory
		s.screen.RenderCategories(s.catalog.Categories())

	case ScreenItem:
		s.backToItemList()

	case ScreenModifier:
		if s.modifierIndex > 1 {
			// Drop the entry of the group being left, then walk back over
			// codes the traversal silently skipped.
			s.pop()
			for s.modifierIndex > 1 {
				s.modifierIndex--
				code := s.modifierCodes[s.modifierIndex-1]
				def, ok := s.catalog.Modifier(code)
				if !ok {
					continue
				}
				s.resetSingleChoice(def)
				s.state = ScreenModifier
				s.renderModifier(def)
				return
			}
		}
		s.backToItemList()

	case ScreenFinalSale:
		// Step back into the last modifier shown, or to the item list when
		// the item had none.
		for s.modifierIndex > 0 {
			code := s.modifierCodes[s.modifierIndex-1]
			def, ok := s.catalog.Modifier(code)
			if !ok {
				s.modifierIndex--
				continue
			}
			s.resetSingleChoice(def)
			s.state = ScreenModifier
			s.renderModifier(def)
			return
		}
		s.backToItemList()
	}
}

// resetSingleChoice clears a single-choice group so the revisited screen
// starts unselected, and drops its ledger lines. Upsell selections persist.
func (s *SessionService) resetSingleChoice(def models.ModifierDefinition) {
	if def.Choice != models.ChoiceSingle {
		return
	}
	for _, description := range s.selection.Reset(def.Code) {
		if detail, ok := s.catalog.Detail(def.Code, description); ok {
			s.ledger.AddModifierLine(def.Code, description, detail.Cost, false)
		}
	}
}

// backToItemList unwinds the history to the owning category's item list, or
// all the way to the main categories when there is none.
func (s *SessionService) backToItemList() {
	s.modifierCodes = nil
	s.modifierIndex = 0
	s.currentItem = ""

	for {
		entry, ok := s.pop()
		if !ok {
			s.currentCategory = ""
			s.state = ScreenMainCategory
			s.screen.RenderCategories(s.catalog.Categories())
			return
		}
		if entry.Screen == ScreenCategory {
			if entry.Data == "" {
				s.currentCategory = ""
				s.state = ScreenMainCategory
				s.screen.RenderCategories(s.catalog.Categories())
				return
			}
			s.currentCategory = entry.Data
			s.state = ScreenCategory
			s.screen.RenderItems(entry.Data, s.catalog.ItemsInCategory(entry.Data))
			return
		}
	}
}

// StartOver discards the whole session and shows the main categories again
func (s *SessionService) StartOver() {
	s.resetSession()
	s.logger.LogInfo("Session reset")
}

func (s *SessionService) resetSession() {
	s.history = nil
	s.ledger.Clear()
	s.selection.Clear()
	s.modifierCodes = nil
	s.modifierIndex = 0
	s.currentCategory = ""
	s.currentItem = ""
	s.Start()
}

// FinishOrder runs the finalization sequence: snapshot the ledger, acquire
// an order number, encode and print the receipt, archive and notify, then
// reset for the next customer. A failed step halts the sequence with an
// operator-visible error and never rolls back earlier steps; the notifier's
// outcome never gates the reset.
func (s *SessionService) FinishOrder() error {
	if s.ledger.ItemCount() == 0 {
		s.logger.LogWarning("Finish requested with empty order")
		s.resetSession()
		return nil
	}

	order := s.ledger.Snapshot(time.Now())

	orderNumber, err := s.numbers.NextOrderNumber()
	if err != nil {
		s.screen.ShowError(fmt.Sprintf("Could not get order number: %v", err))
		return fmt.Errorf("order number: %w", err)
	}

	receipt := s.encoder.Encode(order, orderNumber)

	if err := s.printer.Print(receipt); err != nil {
		s.screen.ShowError(fmt.Sprintf("Printer error: %v", err))
		return fmt.Errorf("print receipt: %w", err)
	}
	s.logger.LogInfo("Receipt printed", fmt.Sprintf("order=%d bytes=%d", orderNumber, len(receipt)))

	if s.archive != nil {
		if err := s.archive.SaveOrder(order, orderNumber); err != nil {
			s.logger.LogError("Could not archive order", err)
		}
	}

	if s.notifier != nil {
		if body, err := s.notifier.NotifyOrderComplete(orderNumber); err != nil {
			s.screen.ShowError(fmt.Sprintf("Order system notification failed: %v", err))
			s.logger.LogError("Order completion notify failed", err)
		} else {
			s.logger.LogInfo("Order system notified", body)
		}
	}

	s.resetSession()
	return nil
}
