package detector

import "gocv.io/x/gocv"

// Detector defines the interface for hand landmark extraction implementations.
type Detector interface {
	// Detect analyzes a video frame and returns detected hand landmarks,
	// sorted Left-first and capped at MaxHands. An empty result means no
	// hands are visible; that is the common case, not an error.
	Detect(frame *gocv.Mat) ([]HandLandmarks, error)

	// Close releases any resources held by the detector.
	Close() error
}

// Config holds configuration options for hand landmark extraction.
type Config struct {
	// MaxHands is the maximum number of hands to detect (default: 2).
	MaxHands int

	// MinConfidence is the minimum detection confidence threshold (0.0-1.0).
	MinConfidence float64

	// MinTrackingConf is the minimum tracking confidence threshold (0.0-1.0).
	MinTrackingConf float64
}

// DefaultConfig returns a Config with the values the recognizer was
// calibrated against.
func DefaultConfig() Config {
	return Config{
		MaxHands:        MaxHands,
		MinConfidence:   0.3,
		MinTrackingConf: 0.5,
	}
}
