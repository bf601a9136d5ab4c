package session

import "github.com/ayusman/mudra/internal/classify"

// Emission is pushed to subscribers every time the debounce machine emits
// a sign. Top3 carries the runner-up candidates as a threshold-tuning aid.
type Emission struct {
	Character  string               `json:"character"`
	Confidence *float64             `json:"confidence"`
	TextBuffer string               `json:"text_buffer"`
	Action     string               `json:"action,omitempty"`
	Top3       []classify.Candidate `json:"top3"`
	Timestamp  int64                `json:"timestamp"`
}

// Session status states pushed to subscribers.
const (
	StatusStarted     = "started"
	StatusStopped     = "stopped"
	StatusCameraError = "camera_error"
)

// Status reports a session lifecycle change.
type Status struct {
	State   string `json:"state"`
	Message string `json:"message,omitempty"`
}

// Publisher receives emissions and status changes from the detection
// worker. Implementations must not block and must swallow their own
// delivery failures; the frame loop never waits on a subscriber.
type Publisher interface {
	PublishEmission(Emission)
	PublishStatus(Status)
}

// NopPublisher discards all events.
type NopPublisher struct{}

func (NopPublisher) PublishEmission(Emission) {}
func (NopPublisher) PublishStatus(Status)     {}
