package services

import "testing"

func TestToggleSingleChoiceIsExclusive(t *testing.T) {
	engine := NewSelectionEngine(newTestCatalog(t))

	first := engine.Toggle("aa", "Cheese")
	if !first.Selected || !first.Changed || !first.AutoAdvance {
		t.Fatalf("first toggle = %+v, want selected, changed, auto-advance", first)
	}
	if len(first.Cleared) != 0 {
		t.Fatalf("first toggle cleared %v, want nothing", first.Cleared)
	}

	second := engine.Toggle("aa", "No Cheese")
	if !second.Selected || !second.Changed || !second.AutoAdvance {
		t.Fatalf("second toggle = %+v, want selected, changed, auto-advance", second)
	}
	if len(second.Cleared) != 1 || second.Cleared[0] != "Cheese" {
		t.Fatalf("second toggle cleared %v, want [Cheese]", second.Cleared)
	}
	if engine.IsSelected("aa", "Cheese") {
		t.Error("Cheese still selected after choosing No Cheese")
	}
	if !engine.IsSelected("aa", "No Cheese") {
		t.Error("No Cheese not selected")
	}
}

func TestToggleSingleChoiceReselectIsNoOpButAdvances(t *testing.T) {
	engine := NewSelectionEngine(newTestCatalog(t))

	engine.Toggle("aa", "Cheese")
	again := engine.Toggle("aa", "Cheese")

	if !again.Selected {
		t.Error("re-select lost the selection")
	}
	if again.Changed {
		t.Error("re-select reported a change")
	}
	if !again.AutoAdvance {
		t.Error("re-select did not advance")
	}
	if len(again.Cleared) != 0 {
		t.Errorf("re-select cleared %v, want nothing", again.Cleared)
	}
}

func TestToggleUpsellIsIndependent(t *testing.T) {
	engine := NewSelectionEngine(newTestCatalog(t))

	bacon := engine.Toggle("bb", "Bacon")
	if !bacon.Selected || !bacon.Changed || bacon.AutoAdvance {
		t.Fatalf("bacon on = %+v, want selected, changed, no advance", bacon)
	}

	avocado := engine.Toggle("bb", "Avocado")
	if !avocado.Selected {
		t.Error("avocado not selected alongside bacon")
	}
	if !engine.IsSelected("bb", "Bacon") {
		t.Error("bacon deselected by choosing avocado")
	}

	baconOff := engine.Toggle("bb", "Bacon")
	if baconOff.Selected || !baconOff.Changed {
		t.Fatalf("bacon off = %+v, want deselected and changed", baconOff)
	}
	if !engine.IsSelected("bb", "Avocado") {
		t.Error("avocado deselected by toggling bacon off")
	}
}

func TestToggleUnknownCodeDefaultsToSingleChoice(t *testing.T) {
	engine := NewSelectionEngine(newTestCatalog(t))

	result := engine.Toggle("zz", "Mystery")
	if !result.Selected || !result.AutoAdvance {
		t.Fatalf("unknown code toggle = %+v, want single-choice behavior", result)
	}
}

func TestResetClearsOnlyOneGroup(t *testing.T) {
	engine := NewSelectionEngine(newTestCatalog(t))

	engine.Toggle("aa", "Cheese")
	engine.Toggle("bb", "Bacon")

	cleared := engine.Reset("aa")
	if len(cleared) != 1 || cleared[0] != "Cheese" {
		t.Fatalf("Reset cleared %v, want [Cheese]", cleared)
	}
	if engine.IsSelected("aa", "Cheese") {
		t.Error("Cheese survived Reset")
	}
	if !engine.IsSelected("bb", "Bacon") {
		t.Error("Bacon did not survive Reset of another group")
	}
}

func TestSelectedForReportsWholeGroup(t *testing.T) {
	engine := NewSelectionEngine(newTestCatalog(t))
	engine.Toggle("aa", "Cheese")

	state := engine.SelectedFor("aa")
	if !state["Cheese"] {
		t.Error("Cheese not reported selected")
	}
	if state["No Cheese"] {
		t.Error("No Cheese reported selected")
	}
	if len(state) != 2 {
		t.Errorf("SelectedFor returned %d entries, want 2", len(state))
	}
}

func TestClearDropsEverything(t *testing.T) {
	engine := NewSelectionEngine(newTestCatalog(t))
	engine.Toggle("aa", "Cheese")
	engine.Toggle("bb", "Bacon")

	engine.Clear()

	if engine.IsSelected("aa", "Cheese") || engine.IsSelected("bb", "Bacon") {
		t.Error("Clear left selections behind")
	}
}
