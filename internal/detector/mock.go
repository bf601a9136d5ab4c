package detector

import (
	"sync"

	"gocv.io/x/gocv"
)

// MockDetector is a test implementation of the Detector interface.
// It returns pre-configured hands, or plays back a scripted sequence of
// per-frame results when one is enqueued.
type MockDetector struct {
	mu     sync.Mutex
	hands  []HandLandmarks
	script [][]HandLandmarks
	err    error
	calls  int
}

// NewMockDetector creates a new MockDetector instance.
func NewMockDetector() *MockDetector {
	return &MockDetector{}
}

// SetHands sets the hands that will be returned by every Detect call.
func (m *MockDetector) SetHands(hands []HandLandmarks) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hands = hands
}

// Enqueue appends one frame's worth of hands to the scripted sequence.
// While a script is pending, Detect consumes it one entry per call before
// falling back to the static hands.
func (m *MockDetector) Enqueue(hands ...HandLandmarks) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.script = append(m.script, hands)
}

// SetError sets the error that will be returned by Detect.
func (m *MockDetector) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Calls returns how many times Detect has been invoked.
func (m *MockDetector) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// Detect returns the next scripted result, the static hands, or the
// configured error.
func (m *MockDetector) Detect(frame *gocv.Mat) ([]HandLandmarks, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls++

	if m.err != nil {
		return nil, m.err
	}
	if len(m.script) > 0 {
		hands := m.script[0]
		m.script = m.script[1:]
		return CapHands(hands), nil
	}
	return CapHands(m.hands), nil
}

// Close is a no-op for the mock detector.
func (m *MockDetector) Close() error {
	return nil
}

// FlatHandAt returns a synthetic open hand whose landmarks spread over a
// small grid anchored at (x, y). Useful for exercising normalization and
// bounding-box math without a real landmark model.
func FlatHandAt(x, y float64, handedness string) HandLandmarks {
	lm := HandLandmarks{
		Handedness: handedness,
		Score:      0.95,
	}

	// 21 points arranged on a 5-column fan; exact shape does not matter,
	// only that it is deterministic and spatially spread.
	for i := 0; i < NumLandmarks; i++ {
		col := i % 5
		row := i / 5
		lm.Points[i] = Point3D{
			X: x + float64(col)*0.02,
			Y: y + float64(row)*0.03,
			Z: -0.01 * float64(row),
		}
	}
	return lm
}
