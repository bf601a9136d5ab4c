// Package api provides HTTP API handlers for the Mudra sign typing system.
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ayusman/mudra/internal/session"
)

// Start rejection reasons on the wire.
const (
	ReasonAlreadyRunning = "already_running"
	ReasonModelNotLoaded = "model_not_loaded"
	ReasonCameraError    = "camera_error"
)

// DetectionHandler controls the detection session lifecycle and text buffer.
type DetectionHandler struct {
	sess *session.Session
}

// NewDetectionHandler creates a new DetectionHandler for the given session.
func NewDetectionHandler(sess *session.Session) *DetectionHandler {
	return &DetectionHandler{sess: sess}
}

// ServeHTTP implements the http.Handler interface and routes requests to appropriate methods.
func (h *DetectionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/api/detection/start":
		h.start(w, r)
	case "/api/detection/stop":
		h.stop(w, r)
	case "/api/detection/buffer":
		h.buffer(w, r)
	case "/api/detection/buffer/clear":
		h.clearBuffer(w, r)
	default:
		http.NotFound(w, r)
	}
}

// Request and response types

type startResponse struct {
	Accepted bool   `json:"accepted"`
	Reason   string `json:"reason,omitempty"`
}

type bufferResponse struct {
	Text string `json:"text"`
}

type errorResponse struct {
	Error string `json:"error"`
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

// start handles POST /api/detection/start.
func (h *DetectionHandler) start(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	err := h.sess.Start()
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, startResponse{Accepted: true})
	case errors.Is(err, session.ErrAlreadyRunning):
		writeJSON(w, http.StatusConflict, startResponse{Reason: ReasonAlreadyRunning})
	case errors.Is(err, session.ErrModelNotLoaded):
		writeJSON(w, http.StatusConflict, startResponse{Reason: ReasonModelNotLoaded})
	default:
		// Camera open failure
		writeJSON(w, http.StatusServiceUnavailable, startResponse{Reason: ReasonCameraError})
	}
}

// stop handles POST /api/detection/stop. Stopping is always accepted,
// including when no session is running.
func (h *DetectionHandler) stop(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	h.sess.Stop()
	writeJSON(w, http.StatusOK, startResponse{Accepted: true})
}

// buffer handles GET /api/detection/buffer and returns the text snapshot.
func (h *DetectionHandler) buffer(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	writeJSON(w, http.StatusOK, bufferResponse{Text: h.sess.Buffer()})
}

// clearBuffer handles POST /api/detection/buffer/clear.
func (h *DetectionHandler) clearBuffer(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	h.sess.ClearBuffer()
	writeJSON(w, http.StatusOK, bufferResponse{Text: ""})
}
