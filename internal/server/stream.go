// Package server provides the HTTP server for the Mudra sign typing system.
package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/ayusman/mudra/internal/session"
)

// streamInterval paces the MJPEG stream at roughly 15 FPS.
const streamInterval = 66 * time.Millisecond

// StreamHandler serves MJPEG frames from the session's preview slot.
// Each client gets the most recent annotated frame; there is no backlog.
type StreamHandler struct {
	slot *session.FrameSlot
}

// NewStreamHandler creates a new StreamHandler over the given frame slot.
func NewStreamHandler(slot *session.FrameSlot) *StreamHandler {
	return &StreamHandler{slot: slot}
}

// ServeHTTP streams MJPEG frames to connected clients.
func (h *StreamHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "multipart/x-mixed-replace; boundary=frame")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	var lastSeq uint64
	for {
		select {
		case <-r.Context().Done():
			return
		default:
		}

		jpeg, seq, ok := h.slot.Latest()
		if !ok || seq == lastSeq {
			// Nothing new yet; the session may be stopped or between frames
			time.Sleep(streamInterval)
			continue
		}
		lastSeq = seq

		fmt.Fprintf(w, "--frame\r\n")
		fmt.Fprintf(w, "Content-Type: image/jpeg\r\n")
		fmt.Fprintf(w, "Content-Length: %d\r\n\r\n", len(jpeg))
		if _, err := w.Write(jpeg); err != nil {
			return
		}
		fmt.Fprintf(w, "\r\n")

		if f, ok := w.(http.Flusher); ok {
			f.Flush()
		}

		time.Sleep(streamInterval)
	}
}
