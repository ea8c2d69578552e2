// Package bridge exposes a controller's state over HTTP for external
// tooling: a JSON snapshot, a websocket event stream, and remote open/close
// commands. The bridge never touches the controller directly; it mirrors
// state from bus events and hands commands to the host's event thread, so
// the controller stays single-thread confined.
package bridge

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/zigzagg16/dragster/pkg/events"
)

// Command is a remote request marshaled onto the host's event thread.
type Command struct {
	Action   string `json:"action"` // "open" or "close"
	Animated bool   `json:"animated"`
}

// Commander delivers a command to the host's event thread. It must be safe
// to call from HTTP handler goroutines (bubbletea's Program.Send is).
type Commander func(Command)

// State is the snapshot served by GET /state.
type State struct {
	Position   float64 `json:"position"`
	Percentage float64 `json:"percentage"`
	Phase      string  `json:"phase"`
}

// wireEvent is the JSON shape of one streamed bus event.
type wireEvent struct {
	ID           string                 `json:"id"`
	Type         string                 `json:"type"`
	ControllerID string                 `json:"controller_id,omitempty"`
	Timestamp    time.Time              `json:"timestamp"`
	Data         map[string]interface{} `json:"data,omitempty"`
}

type client struct {
	id   string
	send chan wireEvent
}

type Server struct {
	router    *mux.Router
	server    *http.Server
	bus       *events.EventBus
	commander Commander
	upgrader  websocket.Upgrader
	sub       events.Subscription

	mu      sync.RWMutex
	state   State
	clients map[string]*client
}

// NewServer builds the bridge. commander may be nil, in which case the
// command endpoints respond 503.
func NewServer(port int, bus *events.EventBus, commander Commander) *Server {
	s := &Server{
		router:    mux.NewRouter(),
		bus:       bus,
		commander: commander,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true // Local debug surface; any origin may connect
			},
		},
		state:   State{Phase: "idle"},
		clients: make(map[string]*client),
	}

	s.server = &http.Server{
		Addr:    fmt.Sprintf("127.0.0.1:%d", port),
		Handler: s.router,
	}

	s.setupRoutes()
	s.sub = bus.Subscribe(events.TypeAny, s.handleBusEvent)
	return s
}

func (s *Server) setupRoutes() {
	s.router.HandleFunc("/state", s.handleState).Methods("GET")
	s.router.HandleFunc("/ws", s.handleWebSocket).Methods("GET")
	s.router.HandleFunc("/open", s.handleCommand("open")).Methods("POST")
	s.router.HandleFunc("/close", s.handleCommand("close")).Methods("POST")
	s.router.HandleFunc("/health", s.handleHealth).Methods("GET")
}

// Start runs the HTTP server until Stop is called. It returns once the
// listener closes.
func (s *Server) Start() error {
	err := s.server.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Stop unsubscribes from the bus, disconnects clients and shuts the server
// down.
func (s *Server) Stop(ctx context.Context) error {
	s.bus.Unsubscribe(s.sub)

	s.mu.Lock()
	for _, c := range s.clients {
		close(c.send)
	}
	s.clients = make(map[string]*client)
	s.mu.Unlock()

	return s.server.Shutdown(ctx)
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// handleBusEvent mirrors controller state and fans the event out to
// websocket clients. Runs on bus worker goroutines.
func (s *Server) handleBusEvent(event events.Event) {
	s.mu.Lock()
	switch event.Type {
	case events.PositionChanged:
		if v, ok := event.Data["position"].(float64); ok {
			s.state.Position = v
		}
	case events.PercentageChanged:
		if v, ok := event.Data["percentage"].(float64); ok {
			s.state.Percentage = v
		}
	case events.DragStarted:
		s.state.Phase = "dragging"
	case events.DragEnded, events.SnapCompleted:
		s.state.Phase = "idle"
	case events.SnapStarted:
		if v, ok := event.Data["target"].(string); ok {
			s.state.Phase = "snapping-" + v
		}
	}
	we := wireEvent{
		ID:           event.ID,
		Type:         string(event.Type),
		ControllerID: event.ControllerID,
		Timestamp:    event.Timestamp,
		Data:         event.Data,
	}
	// Fan-out happens under the lock so a send cannot race a client
	// channel being closed; slow clients drop events rather than stall
	// the bus.
	for _, c := range s.clients {
		select {
		case c.send <- we:
		default:
		}
	}
	s.mu.Unlock()
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	state := s.state
	s.mu.RUnlock()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(state)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) handleCommand(action string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.commander == nil {
			http.Error(w, "no command sink attached", http.StatusServiceUnavailable)
			return
		}

		cmd := Command{Action: action, Animated: true}
		if r.Body != nil {
			// An empty or invalid body means the animated default.
			var body struct {
				Animated *bool `json:"animated"`
			}
			if err := json.NewDecoder(r.Body).Decode(&body); err == nil && body.Animated != nil {
				cmd.Animated = *body.Animated
			}
		}

		s.commander(cmd)
		w.WriteHeader(http.StatusAccepted)
	}
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}

	c := &client{
		id:   uuid.New().String(),
		send: make(chan wireEvent, 256),
	}

	s.mu.Lock()
	s.clients[c.id] = c
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		if _, ok := s.clients[c.id]; ok {
			delete(s.clients, c.id)
			close(c.send)
		}
		s.mu.Unlock()
		conn.Close()
	}()

	// Drain the read side so close frames are processed.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				conn.Close()
				return
			}
		}
	}()

	for we := range c.send {
		if err := conn.WriteJSON(we); err != nil {
			return
		}
	}
}
