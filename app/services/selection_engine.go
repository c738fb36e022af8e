package services

import "KioskApp/app/models"

// selectionKey identifies one modifier detail. Keying by group code and
// description together keeps details with the same description in different
// groups from aliasing each other.
type selectionKey struct {
	code        string
	description string
}

// ToggleResult reports what a Toggle call changed
type ToggleResult struct {
	// Selected is the detail's state after the call
	Selected bool
	// Changed is false when the call left the detail as it was (re-selecting
	// an already chosen single-choice detail)
	Changed bool
	// AutoAdvance signals the session to move to the next modifier group
	AutoAdvance bool
	// Cleared lists sibling descriptions deselected to keep a single-choice
	// group exclusive
	Cleared []string
}

// SelectionEngine tracks per-detail selection state for the active session
// and enforces the group's choice-type rules.
type SelectionEngine struct {
	catalog  *CatalogService
	selected map[selectionKey]bool
}

// NewSelectionEngine creates an engine with no selections
func NewSelectionEngine(catalog *CatalogService) *SelectionEngine {
	return &SelectionEngine{
		catalog:  catalog,
		selected: make(map[selectionKey]bool),
	}
}

// Toggle flips the selection state of (code, description).
//
// For a single-choice group the engine keeps at most one detail selected:
// choosing a detail deselects its siblings, re-choosing the current detail is
// a no-op, and either way the session is told to advance. For an upsell group
// the toggle is independent and never advances.
func (e *SelectionEngine) Toggle(code, description string) ToggleResult {
	def, ok := e.catalog.Modifier(code)
	if !ok {
		def = models.ModifierDefinition{Code: code, Choice: models.ChoiceSingle}
	}

	key := selectionKey{code: code, description: description}

	if def.Choice == models.ChoiceUpsell {
		e.selected[key] = !e.selected[key]
		return ToggleResult{Selected: e.selected[key], Changed: true}
	}

	if e.selected[key] {
		return ToggleResult{Selected: true, AutoAdvance: true}
	}

	cleared := e.Reset(code)
	e.selected[key] = true
	return ToggleResult{Selected: true, Changed: true, AutoAdvance: true, Cleared: cleared}
}

// Reset deselects every detail of one group and returns the descriptions
// that were cleared. Back-navigation uses this for single-choice groups so a
// revisited screen starts unselected; upsell selections deliberately survive.
func (e *SelectionEngine) Reset(code string) []string {
	var cleared []string
	for _, detail := range e.catalog.Details(code) {
		key := selectionKey{code: code, description: detail.Description}
		if e.selected[key] {
			delete(e.selected, key)
			cleared = append(cleared, detail.Description)
		}
	}
	return cleared
}

// IsSelected reports whether (code, description) is currently selected
func (e *SelectionEngine) IsSelected(code, description string) bool {
	return e.selected[selectionKey{code: code, description: description}]
}

// SelectedFor returns the selection state of every detail in a group,
// keyed by description.
func (e *SelectionEngine) SelectedFor(code string) map[string]bool {
	state := make(map[string]bool)
	for _, detail := range e.catalog.Details(code) {
		state[detail.Description] = e.IsSelected(code, detail.Description)
	}
	return state
}

// Clear drops every selection in the session
func (e *SelectionEngine) Clear() {
	e.selected = make(map[selectionKey]bool)
}
