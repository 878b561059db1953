// Package api provides HTTP API handlers for the mudra game server.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/ayusman/mudra/internal/store"
)

// MatchHandler handles HTTP requests for match history resources.
type MatchHandler struct {
	store *store.Store
}

// NewMatchHandler creates a new MatchHandler with the given store.
func NewMatchHandler(s *store.Store) *MatchHandler {
	return &MatchHandler{store: s}
}

// ServeHTTP implements the http.Handler interface and routes requests to
// appropriate methods.
func (h *MatchHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Parse the path to determine if this is a collection or item request
	// Expected paths: /api/matches or /api/matches/{id}
	path := strings.TrimPrefix(r.URL.Path, "/api/matches")
	path = strings.TrimPrefix(path, "/")

	if path == "" {
		// Collection endpoint: /api/matches
		switch r.Method {
		case http.MethodGet:
			h.list(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
		return
	}

	// Item endpoint: /api/matches/{id}
	id := path
	switch r.Method {
	case http.MethodGet:
		h.get(w, r, id)
	case http.MethodDelete:
		h.delete(w, r, id)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// Response types

type roundResponse struct {
	Round    int    `json:"round"`
	Player   string `json:"player"`
	Opponent string `json:"opponent"`
	Outcome  string `json:"outcome"`
	PlayedAt string `json:"played_at"`
}

type matchResponse struct {
	ID           string          `json:"id"`
	TargetWins   int             `json:"target_wins"`
	Difficulty   string          `json:"difficulty"`
	PlayerWins   int             `json:"player_wins"`
	OpponentWins int             `json:"opponent_wins"`
	Winner       string          `json:"winner,omitempty"`
	StartedAt    string          `json:"started_at"`
	EndedAt      string          `json:"ended_at,omitempty"`
	Rounds       []roundResponse `json:"rounds,omitempty"`
}

type listMatchesResponse struct {
	Matches []matchResponse `json:"matches"`
}

type errorResponse struct {
	Error string `json:"error"`
}

const timeFormat = "2006-01-02T15:04:05Z07:00"

// toResponse converts a store.Match to a matchResponse.
func toResponse(m *store.Match) matchResponse {
	resp := matchResponse{
		ID:           m.ID,
		TargetWins:   m.TargetWins,
		Difficulty:   m.Difficulty,
		PlayerWins:   m.PlayerWins,
		OpponentWins: m.OpponentWins,
		Winner:       m.Winner,
		StartedAt:    m.StartedAt.Format(timeFormat),
	}
	if m.EndedAt.Valid {
		resp.EndedAt = m.EndedAt.Time.Format(timeFormat)
	}
	return resp
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// list handles GET /api/matches and returns all matches, newest first.
func (h *MatchHandler) list(w http.ResponseWriter, r *http.Request) {
	matches, err := h.store.Matches().List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list matches: "+err.Error())
		return
	}

	response := listMatchesResponse{
		Matches: make([]matchResponse, 0, len(matches)),
	}

	for _, m := range matches {
		response.Matches = append(response.Matches, toResponse(m))
	}

	writeJSON(w, http.StatusOK, response)
}

// get handles GET /api/matches/{id} and returns a single match with its
// round log.
func (h *MatchHandler) get(w http.ResponseWriter, r *http.Request, id string) {
	m, err := h.store.Matches().GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Match not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get match")
		return
	}

	rounds, err := h.store.Matches().Rounds(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get rounds")
		return
	}

	response := toResponse(m)
	response.Rounds = make([]roundResponse, 0, len(rounds))
	for _, rd := range rounds {
		response.Rounds = append(response.Rounds, roundResponse{
			Round:    rd.Number,
			Player:   rd.Player.String(),
			Opponent: rd.Opponent.String(),
			Outcome:  rd.Outcome.String(),
			PlayedAt: rd.PlayedAt.Format(timeFormat),
		})
	}

	writeJSON(w, http.StatusOK, response)
}

// delete handles DELETE /api/matches/{id}.
func (h *MatchHandler) delete(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.store.Matches().Delete(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Match not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete match")
		return
	}

	writeJSON(w, http.StatusNoContent, nil)
}
