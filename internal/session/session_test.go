package session

import (
	"errors"
	"sync"
	"testing"
	"time"

	"gocv.io/x/gocv"

	"github.com/ayusman/mudra/internal/capture"
	"github.com/ayusman/mudra/internal/classify"
	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/feature"
)

// recordingPublisher captures events for assertions.
type recordingPublisher struct {
	mu        sync.Mutex
	emissions []Emission
	statuses  []Status
}

func (p *recordingPublisher) PublishEmission(e Emission) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.emissions = append(p.emissions, e)
}

func (p *recordingPublisher) PublishStatus(s Status) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.statuses = append(p.statuses, s)
}

func (p *recordingPublisher) emissionCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.emissions)
}

func (p *recordingPublisher) lastStatus() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.statuses) == 0 {
		return ""
	}
	return p.statuses[len(p.statuses)-1].State
}

func waitFor(t *testing.T, cond func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal(msg)
}

// signHand returns a deterministic hand shape; different tweaks give
// different feature vectors.
func signHand(tweak float64) detector.HandLandmarks {
	h := detector.FlatHandAt(0.3, 0.3, detector.HandednessRight)
	h.Points[detector.ThumbTip].X += tweak
	return h
}

// twoSignModel builds a 1-NN model that classifies signHand(0) as H and
// signHand(0.1) as I.
func twoSignModel(t *testing.T) *classify.Adapter {
	t.Helper()

	vecH, err := feature.Build([]detector.HandLandmarks{signHand(0)})
	if err != nil {
		t.Fatalf("feature.Build() error = %v", err)
	}
	vecI, err := feature.Build([]detector.HandLandmarks{signHand(0.1)})
	if err != nil {
		t.Fatalf("feature.Build() error = %v", err)
	}

	knn, err := classify.NewKNN(1, []classify.Prototype{
		{LabelIndex: classify.LabelIndex("H"), Features: vecH},
		{LabelIndex: classify.LabelIndex("I"), Features: vecI},
	})
	if err != nil {
		t.Fatalf("NewKNN() error = %v", err)
	}
	return classify.NewAdapter(knn)
}

func testFrames(t *testing.T, n int) []*gocv.Mat {
	t.Helper()
	frames := make([]*gocv.Mat, n)
	for i := range frames {
		m := gocv.NewMatWithSize(120, 160, gocv.MatTypeCV8UC3)
		frames[i] = &m
	}
	t.Cleanup(func() {
		for _, f := range frames {
			f.Close()
		}
	})
	return frames
}

func TestSession_StartWithoutModel(t *testing.T) {
	cam := capture.NewMockCamera(nil, true)
	s := New(Config{
		Camera:   cam,
		Detector: detector.NewMockDetector(),
		Model:    nil,
	})

	err := s.Start()
	if !errors.Is(err, ErrModelNotLoaded) {
		t.Fatalf("Start() error = %v, want %v", err, ErrModelNotLoaded)
	}

	if s.Running() {
		t.Error("session should not be running after rejected start")
	}
	if cam.IsOpen() {
		t.Error("camera must not be opened when the model is missing")
	}
	if got := s.Buffer(); got != "" {
		t.Errorf("buffer = %q, want unchanged empty buffer", got)
	}
}

func TestSession_CameraOpenFailure(t *testing.T) {
	cam := capture.NewMockCamera(nil, true)
	openErr := errors.New("device busy")
	cam.SetOpenError(openErr)

	s := New(Config{
		Camera:   cam,
		Detector: detector.NewMockDetector(),
		Model:    classify.NewAdapter(hardStub{}),
	})

	if err := s.Start(); !errors.Is(err, openErr) {
		t.Fatalf("Start() error = %v, want %v", err, openErr)
	}
	if s.Running() {
		t.Error("session should not be running after camera open failure")
	}
}

// hardStub is a minimal hard classifier for lifecycle tests.
type hardStub struct{}

func (hardStub) Predict(features []float64) (int, error) { return 0, nil }

func TestSession_DoubleStart(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	cam := capture.NewMockCamera(testFrames(t, 1), true)
	s := New(Config{
		Camera:        cam,
		Detector:      detector.NewMockDetector(),
		Model:         twoSignModel(t),
		FrameInterval: 5 * time.Millisecond,
	})

	if err := s.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer func() {
		s.Stop()
		s.Wait()
	}()

	if err := s.Start(); !errors.Is(err, ErrAlreadyRunning) {
		t.Fatalf("second Start() error = %v, want %v", err, ErrAlreadyRunning)
	}
}

func TestSession_EmitsAndAccumulates(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	pub := &recordingPublisher{}
	det := detector.NewMockDetector()
	det.Enqueue(signHand(0))   // H
	det.Enqueue(signHand(0.1)) // I
	// Script exhausted: subsequent frames show no hands

	s := New(Config{
		Camera:        capture.NewMockCamera(testFrames(t, 1), true),
		Detector:      det,
		Model:         twoSignModel(t),
		Publisher:     pub,
		FrameInterval: 5 * time.Millisecond,
	})

	if err := s.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	waitFor(t, func() bool { return pub.emissionCount() >= 2 }, "expected two emissions")

	s.Stop()
	s.Wait()

	if got := s.Buffer(); got != "HI" {
		t.Errorf("buffer = %q, want HI", got)
	}

	pub.mu.Lock()
	defer pub.mu.Unlock()
	if len(pub.emissions) != 2 {
		t.Fatalf("emissions = %d, want exactly 2", len(pub.emissions))
	}

	first, second := pub.emissions[0], pub.emissions[1]
	if first.Character != "H" || first.TextBuffer != "H" {
		t.Errorf("first emission = %+v, want character H, buffer H", first)
	}
	if second.Character != "I" || second.TextBuffer != "HI" {
		t.Errorf("second emission = %+v, want character I, buffer HI", second)
	}
	if first.Confidence == nil || *first.Confidence != 1.0 {
		t.Errorf("first emission confidence = %v, want 1.0", first.Confidence)
	}
	if first.Action != "" {
		t.Errorf("first emission action = %q, want literal append", first.Action)
	}
	if len(first.Top3) == 0 {
		t.Error("first emission has no top-3 candidates")
	}
}

func TestSession_PreviewHoldsLatestFrame(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	s := New(Config{
		Camera:        capture.NewMockCamera(testFrames(t, 1), true),
		Detector:      detector.NewMockDetector(),
		Model:         twoSignModel(t),
		FrameInterval: 5 * time.Millisecond,
	})

	// No frame before the session starts
	if _, _, ok := s.Preview().Latest(); ok {
		t.Error("preview slot should be empty before start")
	}

	if err := s.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer func() {
		s.Stop()
		s.Wait()
	}()

	waitFor(t, func() bool {
		_, _, ok := s.Preview().Latest()
		return ok
	}, "expected an annotated preview frame")

	jpeg, _, _ := s.Preview().Latest()
	if len(jpeg) == 0 {
		t.Error("preview frame is empty")
	}
}

func TestSession_CameraFailureEndsSession(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	pub := &recordingPublisher{}
	// Two frames, no looping: the third read fails mid-session
	s := New(Config{
		Camera:        capture.NewMockCamera(testFrames(t, 2), false),
		Detector:      detector.NewMockDetector(),
		Model:         twoSignModel(t),
		Publisher:     pub,
		FrameInterval: 5 * time.Millisecond,
	})

	if err := s.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	s.Wait()

	if s.Running() {
		t.Error("session still running after camera failure")
	}

	pub.mu.Lock()
	var sawError bool
	for _, st := range pub.statuses {
		if st.State == StatusCameraError {
			sawError = true
		}
	}
	pub.mu.Unlock()
	if !sawError {
		t.Error("no camera_error status was published")
	}
	if got := pub.lastStatus(); got != StatusStopped {
		t.Errorf("last status = %q, want %q", got, StatusStopped)
	}

	// Recovery is a fresh session; MockCamera.Open rewinds playback
	if err := s.Start(); err != nil {
		t.Fatalf("restart after failure error = %v", err)
	}
	s.Stop()
	s.Wait()
}

func TestSession_ClearBuffer(t *testing.T) {
	s := New(Config{
		Camera:   capture.NewMockCamera(nil, true),
		Detector: detector.NewMockDetector(),
		Model:    twoSignModel(t),
	})

	s.buffer.Append("H")
	s.buffer.Append("I")

	s.ClearBuffer()

	if got := s.Buffer(); got != "" {
		t.Errorf("buffer = %q after ClearBuffer, want empty", got)
	}
}

func TestSession_SetCalibrationWhileRunning(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	s := New(Config{
		Camera:        capture.NewMockCamera(testFrames(t, 1), true),
		Detector:      detector.NewMockDetector(),
		Model:         twoSignModel(t),
		FrameInterval: 5 * time.Millisecond,
	})

	if err := s.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer func() {
		s.Stop()
		s.Wait()
	}()

	err := s.SetCalibration(classify.NewGate(0.5, nil), nil)
	if !errors.Is(err, ErrAlreadyRunning) {
		t.Errorf("SetCalibration() while running error = %v, want %v", err, ErrAlreadyRunning)
	}
}
