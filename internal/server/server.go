// Package server provides the HTTP server for the HandLift floor selection system.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/ayusman/handlift/internal/app"
	"github.com/ayusman/handlift/internal/capture"
	"github.com/ayusman/handlift/internal/server/api"
	"github.com/ayusman/handlift/internal/store"
)

// StateSource supplies the latest recognition snapshot for the
// landmarks WebSocket. Implemented by the app pipeline.
type StateSource interface {
	Snapshot() app.Snapshot
}

// Config holds the server configuration.
type Config struct {
	StaticDir string
	Store     *store.Store
	Camera    capture.Camera
	State     StateSource
}

// Server represents the HTTP server for the HandLift application.
type Server struct {
	config Config
	mux    *http.ServeMux
	start  time.Time
}

// New creates a new Server with the given configuration.
func New(config Config) *Server {
	s := &Server{
		config: config,
		mux:    http.NewServeMux(),
		start:  time.Now(),
	}
	s.setupRoutes()
	return s
}

// setupRoutes configures all HTTP routes for the server.
func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/api/health", s.handleHealth)

	// Register trip history and config endpoints if Store is configured
	if s.config.Store != nil {
		tripsHandler := api.NewTripsHandler(s.config.Store)
		s.mux.Handle("/api/trips", tripsHandler)
		s.mux.Handle("/api/trips/", tripsHandler)

		configHandler := api.NewConfigHandler(s.config.Store)
		s.mux.Handle("/api/config", configHandler)
	}

	// Register camera stream endpoint if Camera is configured
	if s.config.Camera != nil {
		streamHandler := NewStreamHandler(s.config.Camera)
		s.mux.Handle("/api/stream", streamHandler)
	}

	// Register landmarks WebSocket endpoint if a state source is configured
	if s.config.State != nil {
		landmarksHandler := NewLandmarksHandler(s.config.State)
		s.mux.Handle("/api/landmarks", landmarksHandler)
	}

	// Serve static files if StaticDir is configured
	if s.config.StaticDir != "" {
		fs := http.FileServer(http.Dir(s.config.StaticDir))
		s.mux.Handle("/", fs)
	}
}

// ServeHTTP implements the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// handleHealth handles GET requests to /api/health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	uptime := time.Since(s.start)

	response := map[string]interface{}{
		"status": "ok",
		"uptime": uptime.String(),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

// ListenAndServe starts the HTTP server on the given address.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s)
}
