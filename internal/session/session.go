package session

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"gocv.io/x/gocv"

	"github.com/ayusman/mudra/internal/capture"
	"github.com/ayusman/mudra/internal/classify"
	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/feature"
)

// DefaultFrameInterval bounds the frame rate of the detection loop.
const DefaultFrameInterval = 100 * time.Millisecond

// Start rejection reasons.
var (
	// ErrAlreadyRunning is returned by Start while a session is active.
	ErrAlreadyRunning = errors.New("detection already running")
	// ErrModelNotLoaded is returned by Start when no classifier model
	// could be loaded; the camera is never opened in that case.
	ErrModelNotLoaded = errors.New("classifier model not loaded")
)

// Config holds everything a Session needs. Camera and Detector are
// required; Model may be nil, which leaves the session permanently unable
// to start. Nil Gate, Bindings and Publisher fall back to defaults.
type Config struct {
	Camera   capture.Camera
	Detector detector.Detector
	Model    *classify.Adapter

	Gate      *classify.Gate
	Bindings  Bindings
	Publisher Publisher

	// FrameInterval bounds the loop rate; DefaultFrameInterval when zero.
	FrameInterval time.Duration
	// Cooldown is the debounce cooldown in frames; DefaultCooldown when zero.
	Cooldown int
	// ActivityThreshold enables the frame-differencing inference skip
	// when positive; zero disables it.
	ActivityThreshold float64
}

// Session owns one detection lifecycle: Stopped -> Running -> Stopped.
// A single background worker runs the frame loop and is the only mutator
// of the debounce state and text buffer. Exactly one worker exists at a
// time.
type Session struct {
	camera    capture.Camera
	detector  detector.Detector
	model     *classify.Adapter
	gate      *classify.Gate
	bindings  Bindings
	publisher Publisher
	interval  time.Duration
	activity  *capture.ActivityGate

	buffer   *TextBuffer
	debounce *Debounce
	slot     *FrameSlot

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	done    chan struct{}
}

// New creates a stopped Session from the config.
func New(cfg Config) *Session {
	s := &Session{
		camera:    cfg.Camera,
		detector:  cfg.Detector,
		model:     cfg.Model,
		gate:      cfg.Gate,
		bindings:  cfg.Bindings,
		publisher: cfg.Publisher,
		interval:  cfg.FrameInterval,
		buffer:    NewTextBuffer(),
		debounce:  NewDebounce(cfg.Cooldown),
		slot:      NewFrameSlot(),
	}

	if s.gate == nil {
		s.gate = classify.NewGate(classify.DefaultThreshold, classify.DefaultOverrides())
	}
	if s.bindings == nil {
		s.bindings = DefaultBindings()
	}
	if s.publisher == nil {
		s.publisher = NopPublisher{}
	}
	if s.interval <= 0 {
		s.interval = DefaultFrameInterval
	}
	if cfg.ActivityThreshold > 0 {
		s.activity = capture.NewActivityGate(cfg.ActivityThreshold)
	}

	return s
}

// Start opens the camera and spawns the detection worker. It returns
// ErrAlreadyRunning if a worker is active and ErrModelNotLoaded when the
// classifier never loaded; neither changes any session state. A camera
// open failure is returned as-is and also leaves the session stopped.
func (s *Session) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return ErrAlreadyRunning
	}
	if s.model == nil {
		return ErrModelNotLoaded
	}

	if err := s.camera.Open(); err != nil {
		return fmt.Errorf("open camera: %w", err)
	}

	s.buffer.Clear()
	s.debounce.Reset()
	s.slot.Reset()
	if s.activity != nil {
		s.activity.Reset()
	}

	s.stopCh = make(chan struct{})
	s.done = make(chan struct{})
	s.running = true

	go s.run(s.stopCh, s.done)

	s.publisher.PublishStatus(Status{State: StatusStarted, Message: "camera started"})
	log.Println("Detection session started")
	return nil
}

// Stop signals the worker to exit at its next poll. It never blocks and
// always succeeds; stopping a stopped session is a no-op.
func (s *Session) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running || s.stopCh == nil {
		return
	}
	close(s.stopCh)
	s.stopCh = nil
}

// Wait blocks until the worker has exited and released the camera.
// Returns immediately when no worker is active.
func (s *Session) Wait() {
	s.mu.Lock()
	done := s.done
	s.mu.Unlock()

	if done != nil {
		<-done
	}
}

// Running reports whether a detection worker is active.
func (s *Session) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// ModelLoaded reports whether a classifier model is available.
func (s *Session) ModelLoaded() bool {
	return s.model != nil
}

// Buffer returns a snapshot of the accumulated text.
func (s *Session) Buffer() string {
	return s.buffer.String()
}

// ClearBuffer empties the accumulated text. This is the external clear
// operation, independent of the clear-all gesture.
func (s *Session) ClearBuffer() {
	s.buffer.Clear()
}

// Preview exposes the latest-annotated-frame slot for streaming consumers.
func (s *Session) Preview() *FrameSlot {
	return s.slot
}

// SetCalibration replaces the confidence gate and action bindings. The
// worker owns both while running, so calibration changes are only accepted
// while stopped.
func (s *Session) SetCalibration(gate *classify.Gate, bindings Bindings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return ErrAlreadyRunning
	}
	if gate != nil {
		s.gate = gate
	}
	if bindings != nil {
		s.bindings = bindings
	}
	return nil
}

// run is the frame loop. It owns the camera handle exclusively until it
// exits and closes it on the way out.
func (s *Session) run(stopCh, done chan struct{}) {
	defer s.finish(done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			frame, err := s.camera.ReadFrame()
			if err != nil {
				log.Printf("Camera read failed, ending session: %v", err)
				s.publisher.PublishStatus(Status{State: StatusCameraError, Message: err.Error()})
				return
			}
			s.processFrame(frame)
			frame.Close()
		}
	}
}

func (s *Session) finish(done chan struct{}) {
	if err := s.camera.Close(); err != nil {
		log.Printf("Error closing camera: %v", err)
	}

	s.mu.Lock()
	s.running = false
	s.stopCh = nil
	s.done = nil
	s.mu.Unlock()

	s.publisher.PublishStatus(Status{State: StatusStopped, Message: "camera stopped"})
	log.Println("Detection session stopped")
	close(done)
}

// processFrame runs one iteration: landmarks, features, classification,
// gating, debounce, dispatch, preview. Per-frame anomalies (no hands,
// below-threshold confidence, detector hiccups) skip emission but still
// advance the debounce counter.
func (s *Session) processFrame(frame *gocv.Mat) {
	if s.activity != nil {
		if active, _ := s.activity.Active(frame); !active {
			s.debounce.Observe("", false)
			s.storePreview(frame, nil, nil, 0)
			return
		}
	}

	hands, err := s.detector.Detect(frame)
	if err != nil {
		log.Printf("Hand detection failed: %v", err)
		s.debounce.Observe("", false)
		s.storePreview(frame, nil, nil, 0)
		return
	}

	vec, err := feature.Build(hands)
	if err != nil {
		// No hands visible; the classifier is not invoked.
		s.debounce.Observe("", false)
		s.storePreview(frame, hands, nil, 0)
		return
	}

	res, err := s.model.Classify(vec)
	if err != nil {
		log.Printf("Classification failed: %v", err)
		res = classify.Result{Label: classify.LabelUnknown}
	}

	accepted := res.Label != classify.LabelUnknown && s.gate.Accept(res)
	if s.debounce.Observe(res.Label, accepted) {
		s.emit(res)
	}

	s.storePreview(frame, hands, &res, s.gate.Threshold(res.Label))
}

// emit applies the sign's action to the buffer and publishes the emission.
func (s *Session) emit(res classify.Result) {
	action := s.bindings.Resolve(res.Label)
	Apply(s.buffer, action, res.Label)

	ev := Emission{
		Character:  res.Label,
		TextBuffer: s.buffer.String(),
		Action:     action.String(),
		Top3:       res.Top3,
		Timestamp:  time.Now().UnixMilli(),
	}
	if res.HasConfidence {
		conf := res.Confidence
		ev.Confidence = &conf
	}
	s.publisher.PublishEmission(ev)
}

// storePreview draws the overlay and refreshes the latest-frame slot.
// Preview failures are ignored; they must never stall detection.
func (s *Session) storePreview(frame *gocv.Mat, hands []detector.HandLandmarks, res *classify.Result, threshold float64) {
	annotate(frame, hands, res, threshold, s.buffer.String())

	buf, err := gocv.IMEncode(".jpg", *frame)
	if err != nil {
		return
	}
	defer buf.Close()

	s.slot.Store(buf.GetBytes())
}
