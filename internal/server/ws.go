// Package server provides the HTTP surface of the mudra game server.
package server

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/ayusman/mudra/internal/landmark"
	"github.com/ayusman/mudra/internal/match"
	"github.com/ayusman/mudra/internal/metrics"
	"github.com/ayusman/mudra/internal/opponent"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow local connections
	},
}

// PlayHub bridges the play WebSocket and the match engine. Clients stream
// control messages and landmark frames in; the hub broadcasts engine events
// out. It implements match.EventSink.
type PlayHub struct {
	engine   *match.Engine
	defaults match.Settings
	clients  map[*websocket.Conn]bool
	mu       sync.RWMutex
}

// NewPlayHub creates a PlayHub. AttachEngine must be called before the hub
// serves connections.
func NewPlayHub() *PlayHub {
	return &PlayHub{
		clients: make(map[*websocket.Conn]bool),
	}
}

// AttachEngine wires the engine the hub dispatches client messages to.
func (h *PlayHub) AttachEngine(e *match.Engine) {
	h.engine = e
}

// SetDefaults sets the match settings used when a start message omits them.
func (h *PlayHub) SetDefaults(s match.Settings) {
	h.defaults = s
}

// clientMessage is the envelope for all client-to-server messages.
type clientMessage struct {
	Type       string          `json:"type"`
	TargetWins int             `json:"target_wins,omitempty"`
	Difficulty string          `json:"difficulty,omitempty"`
	Hands      []landmark.Hand `json:"hands,omitempty"`
}

// ServeHTTP upgrades the connection and pumps client messages into the
// engine until the client disconnects.
func (h *PlayHub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade error: %v", err)
		return
	}
	defer conn.Close()

	h.mu.Lock()
	h.clients[conn] = true
	h.mu.Unlock()
	metrics.ClientConnected()

	defer func() {
		h.mu.Lock()
		delete(h.clients, conn)
		h.mu.Unlock()
		metrics.ClientDisconnected()
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}

		var msg clientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			log.Printf("invalid play message: %v", err)
			continue
		}

		h.dispatch(&msg)
	}
}

// dispatch routes one client message to the engine. Unknown message types
// are dropped, matching the engine's silent handling of illegal signals.
func (h *PlayHub) dispatch(msg *clientMessage) {
	switch msg.Type {
	case "start":
		settings := match.Settings{
			TargetWins: msg.TargetWins,
			Difficulty: opponent.Difficulty(msg.Difficulty),
		}
		if settings.TargetWins <= 0 {
			settings.TargetWins = h.defaults.TargetWins
		}
		if settings.Difficulty == "" {
			settings.Difficulty = h.defaults.Difficulty
		}
		h.engine.StartMatch(settings)
	case "frame":
		metrics.RecordFrame()
		// Single-hand mode: consume the first hand set, ignore extras.
		var hand *landmark.Hand
		if len(msg.Hands) > 0 {
			hand = &msg.Hands[0]
		}
		h.engine.Frame(hand)
	case "force":
		h.engine.ForceResolve()
	case "restart":
		h.engine.Restart()
	}
}

// Publish broadcasts an engine event to all connected clients, wrapped in a
// {type, data} envelope. Called from the engine's loop goroutine only, so
// connection writes are never concurrent.
func (h *PlayHub) Publish(ev match.Event) {
	switch e := ev.(type) {
	case match.RoundResolved:
		metrics.RecordRound(e.Record.Outcome.String())
	case match.MatchEnded:
		metrics.RecordMatch(e.Winner)
	}

	msg, err := json.Marshal(map[string]any{
		"type": ev.Name(),
		"data": ev,
	})
	if err != nil {
		log.Printf("failed to encode event %s: %v", ev.Name(), err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for conn := range h.clients {
		conn.WriteMessage(websocket.TextMessage, msg)
	}
}

var _ match.EventSink = (*PlayHub)(nil)
