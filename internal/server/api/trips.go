// Package api provides HTTP API handlers for the HandLift floor selection system.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/ayusman/handlift/internal/store"
)

// defaultTripLimit bounds the history listing when no limit is given.
const defaultTripLimit = 50

// TripsHandler handles HTTP requests for the trip history.
type TripsHandler struct {
	store *store.Store
}

// NewTripsHandler creates a new TripsHandler with the given store.
func NewTripsHandler(s *store.Store) *TripsHandler {
	return &TripsHandler{store: s}
}

// ServeHTTP implements the http.Handler interface and routes requests to appropriate methods.
func (h *TripsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Expected paths: /api/trips or /api/trips/{id}
	path := strings.TrimPrefix(r.URL.Path, "/api/trips")
	path = strings.TrimPrefix(path, "/")

	if path == "" {
		// Collection endpoint: /api/trips
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.list(w, r)
		return
	}

	// Item endpoint: /api/trips/{id}
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	h.get(w, r, path)
}

// Response types

type tripResponse struct {
	ID           string `json:"id"`
	Floor        string `json:"floor"`
	Digits       int    `json:"digits"`
	Status       string `json:"status"`
	Error        string `json:"error,omitempty"`
	DispatchedAt string `json:"dispatched_at"`
}

type listTripsResponse struct {
	Trips []tripResponse `json:"trips"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// toResponse converts a store.Trip to a tripResponse.
func toResponse(t *store.Trip) tripResponse {
	return tripResponse{
		ID:           t.ID,
		Floor:        t.Floor,
		Digits:       t.Digits,
		Status:       string(t.Status),
		Error:        t.Error,
		DispatchedAt: t.DispatchedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
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

// list handles GET /api/trips and returns recent trips, newest first.
// An optional limit query parameter bounds the result.
func (h *TripsHandler) list(w http.ResponseWriter, r *http.Request) {
	limit := defaultTripLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			writeError(w, http.StatusBadRequest, "Invalid limit")
			return
		}
		limit = parsed
	}

	trips, err := h.store.Trips().List(limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list trips")
		return
	}

	response := listTripsResponse{
		Trips: make([]tripResponse, 0, len(trips)),
	}

	for _, t := range trips {
		response.Trips = append(response.Trips, toResponse(t))
	}

	writeJSON(w, http.StatusOK, response)
}

// get handles GET /api/trips/{id} and returns a single trip.
func (h *TripsHandler) get(w http.ResponseWriter, r *http.Request, id string) {
	trip, err := h.store.Trips().GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Trip not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get trip")
		return
	}

	writeJSON(w, http.StatusOK, toResponse(trip))
}
