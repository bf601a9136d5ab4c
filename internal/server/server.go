// Package server provides the HTTP server for the Mudra sign typing system.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/ayusman/mudra/internal/server/api"
	"github.com/ayusman/mudra/internal/session"
	"github.com/ayusman/mudra/internal/store"
)

// Config holds the server configuration.
type Config struct {
	StaticDir string
	Store     *store.Store
	Session   *session.Session
	Events    *EventsHub
}

// Server represents the HTTP server for the Mudra application.
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

	if s.config.Session != nil {
		detectionHandler := api.NewDetectionHandler(s.config.Session)
		s.mux.Handle("/api/detection/", detectionHandler)

		streamHandler := NewStreamHandler(s.config.Session.Preview())
		s.mux.Handle("/api/stream", streamHandler)
	}

	if s.config.Events != nil {
		s.mux.Handle("/api/events", s.config.Events)
	}

	if s.config.Store != nil && s.config.Session != nil {
		transcriptHandler := api.NewTranscriptHandler(s.config.Store, s.config.Session)
		s.mux.Handle("/api/transcripts", transcriptHandler)
		s.mux.Handle("/api/transcripts/", transcriptHandler)

		calibrationHandler := api.NewCalibrationHandler(s.config.Store, s.config.Session)
		s.mux.Handle("/api/calibration/", calibrationHandler)
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
