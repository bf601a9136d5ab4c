// Package capture provides camera capture functionality using GoCV (OpenCV).
package capture

import (
	"errors"
	"sync"

	"gocv.io/x/gocv"
)

// Default capture resolution.
const (
	DefaultWidth  = 1280
	DefaultHeight = 720
)

// ErrCameraNotOpen is returned when trying to read from a camera that is not open.
var ErrCameraNotOpen = errors.New("camera is not open")

// ErrReadFailed is returned when the camera device stops producing frames.
// A session that sees this error shuts down; there is no retry.
var ErrReadFailed = errors.New("failed to read frame from camera")

// Tuning holds optional device-level adjustments applied after the camera
// opens. Zero values leave the corresponding property untouched. Useful
// ranges vary wildly between webcams; treat these as calibration data.
type Tuning struct {
	Exposure   float64
	Gain       float64
	Brightness float64
}

// Camera defines the interface for camera capture implementations.
type Camera interface {
	Open() error
	Close() error
	ReadFrame() (*gocv.Mat, error)
	IsOpen() bool
}

// cameraImpl manages video capture from a camera device using GoCV.
type cameraImpl struct {
	deviceID int
	tuning   Tuning
	capture  *gocv.VideoCapture
	mu       sync.Mutex
	running  bool
}

// NewCamera creates a new Camera with the given device ID and tuning.
func NewCamera(deviceID int, tuning Tuning) Camera {
	return &cameraImpl{
		deviceID: deviceID,
		tuning:   tuning,
		running:  false,
		capture:  nil,
	}
}

// Open opens the camera for capturing frames.
// It sets the resolution to 1280x720 and applies any tuning values.
func (c *cameraImpl) Open() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.running {
		return nil
	}

	capture, err := gocv.OpenVideoCapture(c.deviceID)
	if err != nil {
		return err
	}

	capture.Set(gocv.VideoCaptureFrameWidth, DefaultWidth)
	capture.Set(gocv.VideoCaptureFrameHeight, DefaultHeight)

	if c.tuning.Exposure != 0 {
		capture.Set(gocv.VideoCaptureExposure, c.tuning.Exposure)
	}
	if c.tuning.Gain != 0 {
		capture.Set(gocv.VideoCaptureGain, c.tuning.Gain)
	}
	if c.tuning.Brightness != 0 {
		capture.Set(gocv.VideoCaptureBrightness, c.tuning.Brightness)
	}

	c.capture = capture
	c.running = true

	return nil
}

// Close closes the camera and releases resources.
func (c *cameraImpl) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.running || c.capture == nil {
		c.running = false
		return nil
	}

	err := c.capture.Close()
	c.capture = nil
	c.running = false

	return err
}

// ReadFrame reads a single frame from the camera.
// The caller is responsible for closing the returned Mat.
func (c *cameraImpl) ReadFrame() (*gocv.Mat, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.running || c.capture == nil {
		return nil, ErrCameraNotOpen
	}

	mat := gocv.NewMat()
	if ok := c.capture.Read(&mat); !ok {
		mat.Close()
		return nil, ErrReadFailed
	}

	if mat.Empty() {
		mat.Close()
		return nil, ErrReadFailed
	}

	return &mat, nil
}

// IsOpen returns true if the camera is currently open and running.
func (c *cameraImpl) IsOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.running
}
