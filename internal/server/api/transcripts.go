package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/ayusman/mudra/internal/session"
	"github.com/ayusman/mudra/internal/store"
)

// TranscriptHandler handles HTTP requests for transcript resources.
// Creating a transcript snapshots the session's current text buffer.
type TranscriptHandler struct {
	store *store.Store
	sess  *session.Session
}

// NewTranscriptHandler creates a new TranscriptHandler.
func NewTranscriptHandler(s *store.Store, sess *session.Session) *TranscriptHandler {
	return &TranscriptHandler{store: s, sess: sess}
}

// ServeHTTP implements the http.Handler interface and routes requests to appropriate methods.
func (h *TranscriptHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Expected paths: /api/transcripts or /api/transcripts/{id}
	path := strings.TrimPrefix(r.URL.Path, "/api/transcripts")
	path = strings.TrimPrefix(path, "/")

	if path == "" {
		switch r.Method {
		case http.MethodGet:
			h.list(w, r)
		case http.MethodPost:
			h.create(w, r)
		default:
			writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
		return
	}

	id := path
	switch r.Method {
	case http.MethodGet:
		h.get(w, r, id)
	case http.MethodDelete:
		h.delete(w, r, id)
	default:
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

type createTranscriptRequest struct {
	Title string `json:"title"`
	// Content overrides the buffer snapshot, for clients that let the
	// user edit the text before saving.
	Content string `json:"content"`
}

type transcriptResponse struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
}

type listTranscriptsResponse struct {
	Transcripts []transcriptResponse `json:"transcripts"`
}

// toTranscriptResponse converts a store.Transcript to its wire form.
func toTranscriptResponse(tr *store.Transcript) transcriptResponse {
	return transcriptResponse{
		ID:        tr.ID,
		Title:     tr.Title,
		Content:   tr.Content,
		CreatedAt: tr.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// list handles GET /api/transcripts and returns all transcripts.
func (h *TranscriptHandler) list(w http.ResponseWriter, r *http.Request) {
	transcripts, err := h.store.Transcripts().List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list transcripts")
		return
	}

	response := listTranscriptsResponse{
		Transcripts: make([]transcriptResponse, 0, len(transcripts)),
	}
	for _, tr := range transcripts {
		response.Transcripts = append(response.Transcripts, toTranscriptResponse(tr))
	}

	writeJSON(w, http.StatusOK, response)
}

// create handles POST /api/transcripts and saves the current buffer.
func (h *TranscriptHandler) create(w http.ResponseWriter, r *http.Request) {
	var req createTranscriptRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid JSON")
			return
		}
	}

	content := req.Content
	if content == "" {
		content = h.sess.Buffer()
	}
	if content == "" {
		writeError(w, http.StatusBadRequest, "Text buffer is empty")
		return
	}

	title := req.Title
	if title == "" {
		title = "Untitled"
	}

	tr := &store.Transcript{
		Title:   title,
		Content: content,
	}
	if err := h.store.Transcripts().Create(tr); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create transcript")
		return
	}

	writeJSON(w, http.StatusCreated, toTranscriptResponse(tr))
}

// get handles GET /api/transcripts/{id}.
func (h *TranscriptHandler) get(w http.ResponseWriter, r *http.Request, id string) {
	tr, err := h.store.Transcripts().GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Transcript not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get transcript")
		return
	}

	writeJSON(w, http.StatusOK, toTranscriptResponse(tr))
}

// delete handles DELETE /api/transcripts/{id}.
func (h *TranscriptHandler) delete(w http.ResponseWriter, r *http.Request, id string) {
	err := h.store.Transcripts().Delete(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Transcript not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete transcript")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
