package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ayusman/mudra/internal/classify"
	"github.com/ayusman/mudra/internal/session"
	"github.com/ayusman/mudra/internal/store"
)

// CalibrationHandler reads and updates per-sign confidence thresholds and
// action bindings. Updates are persisted and applied to the session, which
// only accepts new calibration while stopped.
type CalibrationHandler struct {
	store *store.Store
	sess  *session.Session
}

// NewCalibrationHandler creates a new CalibrationHandler.
func NewCalibrationHandler(s *store.Store, sess *session.Session) *CalibrationHandler {
	return &CalibrationHandler{store: s, sess: sess}
}

// ServeHTTP implements the http.Handler interface and routes requests to appropriate methods.
func (h *CalibrationHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/api/calibration/thresholds":
		switch r.Method {
		case http.MethodGet:
			h.getThresholds(w, r)
		case http.MethodPut:
			h.putThresholds(w, r)
		default:
			writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	case "/api/calibration/actions":
		switch r.Method {
		case http.MethodGet:
			h.getActions(w, r)
		case http.MethodPut:
			h.putActions(w, r)
		default:
			writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	default:
		http.NotFound(w, r)
	}
}

type thresholdsResponse struct {
	Default   float64            `json:"default"`
	Overrides map[string]float64 `json:"overrides"`
}

type putThresholdsRequest struct {
	Overrides map[string]float64 `json:"overrides"`
}

type actionsResponse struct {
	Bindings map[string]string `json:"bindings"`
}

type putActionsRequest struct {
	Bindings map[string]string `json:"bindings"`
}

// getThresholds handles GET /api/calibration/thresholds.
func (h *CalibrationHandler) getThresholds(w http.ResponseWriter, r *http.Request) {
	overrides, err := h.store.Calibration().Thresholds()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load thresholds")
		return
	}

	writeJSON(w, http.StatusOK, thresholdsResponse{
		Default:   classify.DefaultThreshold,
		Overrides: overrides,
	})
}

// putThresholds handles PUT /api/calibration/thresholds.
func (h *CalibrationHandler) putThresholds(w http.ResponseWriter, r *http.Request) {
	var req putThresholdsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	for label, threshold := range req.Overrides {
		if threshold < 0 || threshold > 1 {
			writeError(w, http.StatusBadRequest, "Threshold for "+label+" must be between 0 and 1")
			return
		}
	}

	gate := classify.NewGate(classify.DefaultThreshold, req.Overrides)
	if err := h.sess.SetCalibration(gate, nil); err != nil {
		if errors.Is(err, session.ErrAlreadyRunning) {
			writeError(w, http.StatusConflict, "Stop detection before changing calibration")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to apply thresholds")
		return
	}

	if err := h.store.Calibration().SetThresholds(req.Overrides); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save thresholds")
		return
	}

	writeJSON(w, http.StatusOK, thresholdsResponse{
		Default:   classify.DefaultThreshold,
		Overrides: req.Overrides,
	})
}

// getActions handles GET /api/calibration/actions.
func (h *CalibrationHandler) getActions(w http.ResponseWriter, r *http.Request) {
	bindings, err := h.store.Calibration().Bindings()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load action bindings")
		return
	}

	writeJSON(w, http.StatusOK, actionsResponse{Bindings: bindings})
}

// putActions handles PUT /api/calibration/actions.
func (h *CalibrationHandler) putActions(w http.ResponseWriter, r *http.Request) {
	var req putActionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	bindings := make(session.Bindings, len(req.Bindings))
	for label, name := range req.Bindings {
		action := session.ActionFromName(name)
		if action == session.ActionLiteral {
			writeError(w, http.StatusBadRequest, "Unknown action "+name+" for "+label)
			return
		}
		bindings[label] = action
	}

	if err := h.sess.SetCalibration(nil, bindings); err != nil {
		if errors.Is(err, session.ErrAlreadyRunning) {
			writeError(w, http.StatusConflict, "Stop detection before changing calibration")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to apply action bindings")
		return
	}

	if err := h.store.Calibration().SetBindings(req.Bindings); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save action bindings")
		return
	}

	writeJSON(w, http.StatusOK, actionsResponse{Bindings: req.Bindings})
}
