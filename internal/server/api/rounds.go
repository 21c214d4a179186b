// Package api provides the JSON handlers for the round history.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/ayusman/roshambo/internal/game"
	"github.com/ayusman/roshambo/internal/store"
)

// DefaultListLimit caps GET /api/rounds when no limit is given.
const DefaultListLimit = 50

// RoundHandler handles HTTP requests for round resources.
type RoundHandler struct {
	store *store.Store
}

// NewRoundHandler creates a new RoundHandler with the given store.
func NewRoundHandler(s *store.Store) *RoundHandler {
	return &RoundHandler{store: s}
}

// ServeHTTP routes /api/rounds and /api/rounds/{id}.
func (h *RoundHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/rounds")
	path = strings.TrimPrefix(path, "/")

	if path == "" {
		switch r.Method {
		case http.MethodGet:
			h.list(w, r)
		case http.MethodDelete:
			h.clear(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
		return
	}

	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	h.get(w, r, path)
}

type roundResponse struct {
	ID        string `json:"id"`
	Mode      string `json:"mode"`
	PlayerOne string `json:"player_one"`
	PlayerTwo string `json:"player_two"`
	Outcome   string `json:"outcome"`
	CreatedAt string `json:"created_at"`
}

type listRoundsResponse struct {
	Rounds []roundResponse `json:"rounds"`
}

type clearResponse struct {
	Deleted int64 `json:"deleted"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// toResponse converts a store.Round to a roundResponse.
func toResponse(rd *store.Round) roundResponse {
	return roundResponse{
		ID:        rd.ID,
		Mode:      rd.Mode.String(),
		PlayerOne: rd.PlayerOne.String(),
		PlayerTwo: rd.PlayerTwo.String(),
		Outcome:   rd.Outcome.String(),
		CreatedAt: rd.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
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

// list handles GET /api/rounds?limit=N.
func (h *RoundHandler) list(w http.ResponseWriter, r *http.Request) {
	limit := DefaultListLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	rounds, err := h.store.Rounds().List(limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list rounds")
		return
	}

	response := listRoundsResponse{
		Rounds: make([]roundResponse, 0, len(rounds)),
	}
	for _, rd := range rounds {
		response.Rounds = append(response.Rounds, toResponse(rd))
	}

	writeJSON(w, http.StatusOK, response)
}

// get handles GET /api/rounds/{id}.
func (h *RoundHandler) get(w http.ResponseWriter, r *http.Request, id string) {
	rd, err := h.store.Rounds().GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Round not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get round")
		return
	}

	writeJSON(w, http.StatusOK, toResponse(rd))
}

// clear handles DELETE /api/rounds.
func (h *RoundHandler) clear(w http.ResponseWriter, r *http.Request) {
	n, err := h.store.Rounds().Clear()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to clear rounds")
		return
	}
	writeJSON(w, http.StatusOK, clearResponse{Deleted: n})
}

// StatsHandler serves GET /api/stats?mode=pvp|pve.
type StatsHandler struct {
	store *store.Store
}

// NewStatsHandler creates a new StatsHandler with the given store.
func NewStatsHandler(s *store.Store) *StatsHandler {
	return &StatsHandler{store: s}
}

type statsResponse struct {
	Mode          string `json:"mode"`
	Total         int    `json:"total"`
	PlayerOneWins int    `json:"player_one_wins"`
	PlayerTwoWins int    `json:"player_two_wins"`
	Ties          int    `json:"ties"`
	Invalid       int    `json:"invalid"`
}

func (h *StatsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	mode := game.Menu
	label := "all"
	if raw := r.URL.Query().Get("mode"); raw != "" {
		m, err := game.ParseMode(raw)
		if err != nil || !m.Playing() {
			writeError(w, http.StatusBadRequest, "mode must be pvp or pve")
			return
		}
		mode, label = m, raw
	}

	stats, err := h.store.Rounds().Stats(mode)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to compute stats")
		return
	}

	writeJSON(w, http.StatusOK, statsResponse{
		Mode:          label,
		Total:         stats.Total,
		PlayerOneWins: stats.PlayerOneWins,
		PlayerTwoWins: stats.PlayerTwoWins,
		Ties:          stats.Ties,
		Invalid:       stats.Invalid,
	})
}
