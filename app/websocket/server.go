package websocket

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/grandcat/zeroconf"

	"KioskApp/app/models"
)

// MessageType labels a render payload pushed to the kiosk front-end
type MessageType string

const (
	TypeCategories MessageType = "render_categories"
	TypeItems      MessageType = "render_items"
	TypeModifier   MessageType = "render_modifier"
	TypeFinalSale  MessageType = "render_final_sale"
	TypeError      MessageType = "error"
)

// Message is one render payload sent to the front-end
type Message struct {
	Type      MessageType `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data"`
}

// Event is one tap forwarded by the front-end
type Event struct {
	Action      string `json:"action"` // selectCategory, selectItem, toggleDetail, advance, back, startOver, finish
	Name        string `json:"name,omitempty"`
	Code        string `json:"code,omitempty"`
	Description string `json:"description,omitempty"`
}

// Session is the state machine driven by front-end events. Events are
// delivered one at a time from a single goroutine.
type Session interface {
	Start()
	SelectCategory(name string)
	SelectItem(name string)
	ToggleDetail(code, description string)
	AdvanceModifier()
	GoBack()
	StartOver()
	FinishOrder() error
}

// Server owns the kiosk screen WebSocket endpoint. It renders session state
// to the connected front-end and feeds its taps back into the session. Only
// one front-end is active at a time; a new connection replaces the old one.
type Server struct {
	port     string
	session  Session
	upgrader websocket.Upgrader

	mu     sync.RWMutex
	active *client

	// sessionMu serializes all session access. Events may arrive from the
	// read pumps of an old and a new connection around a reconnect; the
	// session itself is not safe for concurrent use.
	sessionMu sync.Mutex

	mdnsServer   *zeroconf.Server
	mdnsShutdown chan struct{}
}

// NewServer creates a screen server listening on the given port (":8080")
func NewServer(port string) *Server {
	return &Server{
		port:         port,
		mdnsShutdown: make(chan struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				// Kiosk front-ends connect from the local network
				return true
			},
		},
	}
}

// SetSession attaches the session the server drives
func (s *Server) SetSession(session Session) {
	s.session = session
}

// Start serves the screen endpoint and announces it over mDNS. Blocks.
func (s *Server) Start() error {
	mux := http.NewServeMux()
	mux.HandleFunc("/screen", s.handleScreen)
	mux.HandleFunc("/health", s.handleHealth)

	go s.startMDNS()

	log.Printf("Kiosk screen server starting on %s", s.port)
	return http.ListenAndServe(s.port, mux)
}

// startMDNS announces the screen server so front-ends can find it
func (s *Server) startMDNS() {
	var port int
	if _, err := fmt.Sscanf(s.port, ":%d", &port); err != nil {
		log.Printf("mDNS: invalid port format %s: %v", s.port, err)
		return
	}

	server, err := zeroconf.Register(
		"Kiosk Screen",
		"_kioskscreen._tcp",
		"local.",
		port,
		[]string{"version=1.0"},
		nil,
	)
	if err != nil {
		log.Printf("mDNS: failed to register service: %v", err)
		return
	}

	s.mdnsServer = server
	log.Println("mDNS: kiosk screen announced on _kioskscreen._tcp.local")

	<-s.mdnsShutdown
	server.Shutdown()
}

// Stop shuts down the mDNS announcement and the active connection
func (s *Server) Stop() {
	close(s.mdnsShutdown)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active != nil {
		s.active.close()
		s.active = nil
	}
}

func (s *Server) handleScreen(w http.ResponseWriter, r *http.Request) {
	if s.session == nil {
		http.Error(w, "session not ready", http.StatusServiceUnavailable)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade error: %v", err)
		return
	}

	c := &client{
		conn:   conn,
		send:   make(chan []byte, 64),
		done:   make(chan struct{}),
		server: s,
	}

	s.mu.Lock()
	if s.active != nil {
		s.active.close()
	}
	s.active = c
	s.mu.Unlock()
	log.Printf("Screen connected: %s", r.RemoteAddr)

	go c.writePump()

	// A fresh connection starts a fresh customer session. Routed through
	// dispatch so it waits for any event a replaced connection is still
	// delivering.
	s.dispatch(Event{Action: "startOver"})

	// Events are handled inline on this goroutine.
	c.readPump()
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	connected := s.active != nil
	s.mu.RUnlock()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":    "healthy",
		"connected": connected,
		"time":      time.Now(),
	})
}

// dispatch routes one front-end event into the session. Holding sessionMu
// for the whole call keeps session transitions strictly one at a time.
func (s *Server) dispatch(event Event) {
	s.sessionMu.Lock()
	defer s.sessionMu.Unlock()

	switch event.Action {
	case "selectCategory":
		s.session.SelectCategory(event.Name)
	case "selectItem":
		s.session.SelectItem(event.Name)
	case "toggleDetail":
		s.session.ToggleDetail(event.Code, event.Description)
	case "advance":
		s.session.AdvanceModifier()
	case "back":
		s.session.GoBack()
	case "startOver":
		s.session.StartOver()
	case "finish":
		if err := s.session.FinishOrder(); err != nil {
			log.Printf("Finish order failed: %v", err)
		}
	default:
		log.Printf("Unknown screen event action: %q", event.Action)
	}
}

func (s *Server) push(msgType MessageType, data interface{}) {
	s.mu.RLock()
	c := s.active
	s.mu.RUnlock()
	if c == nil {
		return
	}

	payload, err := json.Marshal(Message{
		Type:      msgType,
		Timestamp: time.Now(),
		Data:      data,
	})
	if err != nil {
		log.Printf("Could not marshal %s payload: %v", msgType, err)
		return
	}

	select {
	case c.send <- payload:
	default:
		// Slow screen: drop the frame rather than block the session.
		log.Printf("Screen send buffer full, dropping %s frame", msgType)
	}
}

// The render methods below implement the session's ScreenRenderer.

// RenderCategories shows the main category screen
func (s *Server) RenderCategories(categories []string) {
	s.push(TypeCategories, map[string]interface{}{"categories": categories})
}

// RenderItems shows the item list of one category
func (s *Server) RenderItems(category string, items []*models.MenuItem) {
	s.push(TypeItems, map[string]interface{}{
		"category": category,
		"items":    items,
	})
}

// RenderModifier shows one modifier group with current selection state
func (s *Server) RenderModifier(def models.ModifierDefinition, details []models.ModifierDetail, selected map[string]bool) {
	s.push(TypeModifier, map[string]interface{}{
		"modifier": def,
		"details":  details,
		"selected": selected,
	})
}

// RenderFinalSale shows the order summary screen
func (s *Server) RenderFinalSale(order models.Order) {
	s.push(TypeFinalSale, map[string]interface{}{"order": order})
}

// ShowError surfaces an operator-facing error message
func (s *Server) ShowError(message string) {
	s.push(TypeError, map[string]interface{}{"message": message})
}
