package websocket

import (
	"testing"
	"time"
)

type fakeSession struct {
	calls []string
	err   error
}

func (f *fakeSession) Start()                { f.calls = append(f.calls, "start") }
func (f *fakeSession) SelectCategory(name string) {
	f.calls = append(f.calls, "selectCategory:"+name)
}
func (f *fakeSession) SelectItem(name string) { f.calls = append(f.calls, "selectItem:"+name) }
func (f *fakeSession) ToggleDetail(code, description string) {
	f.calls = append(f.calls, "toggleDetail:"+code+"/"+description)
}
func (f *fakeSession) AdvanceModifier() { f.calls = append(f.calls, "advance") }
func (f *fakeSession) GoBack()          { f.calls = append(f.calls, "back") }
func (f *fakeSession) StartOver()       { f.calls = append(f.calls, "startOver") }
func (f *fakeSession) FinishOrder() error {
	f.calls = append(f.calls, "finish")
	return f.err
}

func TestDispatchRoutesActions(t *testing.T) {
	session := &fakeSession{}
	server := NewServer(":0")
	server.SetSession(session)

	server.dispatch(Event{Action: "selectCategory", Name: "Food"})
	server.dispatch(Event{Action: "selectItem", Name: "Burger"})
	server.dispatch(Event{Action: "toggleDetail", Code: "aa", Description: "Cheese"})
	server.dispatch(Event{Action: "advance"})
	server.dispatch(Event{Action: "back"})
	server.dispatch(Event{Action: "startOver"})
	server.dispatch(Event{Action: "finish"})

	want := []string{
		"selectCategory:Food",
		"selectItem:Burger",
		"toggleDetail:aa/Cheese",
		"advance",
		"back",
		"startOver",
		"finish",
	}
	if len(session.calls) != len(want) {
		t.Fatalf("calls = %v, want %v", session.calls, want)
	}
	for i := range want {
		if session.calls[i] != want[i] {
			t.Fatalf("calls = %v, want %v", session.calls, want)
		}
	}
}

func TestDispatchIgnoresUnknownAction(t *testing.T) {
	session := &fakeSession{}
	server := NewServer(":0")
	server.SetSession(session)

	server.dispatch(Event{Action: "reboot"})

	if len(session.calls) != 0 {
		t.Errorf("unknown action reached the session: %v", session.calls)
	}
}

// slowFinishSession holds FinishOrder open long enough for a competing
// event to arrive. The flags need no locking of their own: if dispatch
// serializes correctly, the accesses cannot overlap.
type slowFinishSession struct {
	fakeSession
	entered    chan struct{}
	finishing  bool
	overlapped bool
}

func (s *slowFinishSession) FinishOrder() error {
	s.finishing = true
	close(s.entered)
	time.Sleep(50 * time.Millisecond)
	s.finishing = false
	return nil
}

func (s *slowFinishSession) StartOver() {
	if s.finishing {
		s.overlapped = true
	}
}

func TestDispatchSerializesCompetingConnections(t *testing.T) {
	session := &slowFinishSession{entered: make(chan struct{})}
	server := NewServer(":0")
	server.SetSession(session)

	finished := make(chan struct{})
	go func() {
		server.dispatch(Event{Action: "finish"})
		close(finished)
	}()
	<-session.entered

	// A reconnecting screen resets the session; it must wait for the
	// in-flight finish of the connection it replaced.
	server.dispatch(Event{Action: "startOver"})
	<-finished

	if session.overlapped {
		t.Error("session reset ran while an order finish was still executing")
	}
}

func TestPushWithoutClientIsSafe(t *testing.T) {
	server := NewServer(":0")

	// No connected screen; rendering must not panic or block.
	server.RenderCategories([]string{"Food"})
	server.ShowError("nothing to show it on")
}
