package capture

import (
	"image"
	"sync"

	"gocv.io/x/gocv"
)

// Frame-differencing constants.
const (
	// activityBlurSize is the kernel size for Gaussian blur (21x21).
	activityBlurSize = 21
	// activityDiffThreshold is the binary threshold for difference detection.
	activityDiffThreshold = 25
)

// ActivityGate decides whether a frame is worth running hand detection on,
// using frame differencing against the previous frame. A static scene means
// the signer is not moving into a new gesture, so the expensive landmark
// extraction can be skipped for that frame.
type ActivityGate struct {
	threshold   float64
	prevGray    gocv.Mat
	initialized bool
	mu          sync.Mutex
}

// NewActivityGate creates an ActivityGate with the given threshold.
// The threshold is the percentage of pixels that must change for the frame
// to count as active, e.g. 1.0 means 1% of pixels must change.
func NewActivityGate(threshold float64) *ActivityGate {
	return &ActivityGate{
		threshold:   threshold,
		prevGray:    gocv.NewMat(),
		initialized: false,
	}
}

// Active reports whether the frame differs enough from the previous one to
// run inference, along with the percentage of pixels that changed.
// The first frame seen becomes the baseline and reports active, so a session
// never starts by skipping frames.
func (g *ActivityGate) Active(frame *gocv.Mat) (bool, float64) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if frame == nil || frame.Empty() {
		return false, 0
	}

	gray := gocv.NewMat()
	defer gray.Close()

	if frame.Channels() > 1 {
		gocv.CvtColor(*frame, &gray, gocv.ColorBGRToGray)
	} else {
		frame.CopyTo(&gray)
	}

	// Blur to reduce sensor noise before differencing
	blurred := gocv.NewMat()
	defer blurred.Close()
	gocv.GaussianBlur(gray, &blurred, image.Point{X: activityBlurSize, Y: activityBlurSize}, 0, 0, gocv.BorderDefault)

	if !g.initialized {
		blurred.CopyTo(&g.prevGray)
		g.initialized = true
		return true, 100
	}

	diff := gocv.NewMat()
	defer diff.Close()
	gocv.AbsDiff(blurred, g.prevGray, &diff)

	thresh := gocv.NewMat()
	defer thresh.Close()
	gocv.Threshold(diff, &thresh, activityDiffThreshold, 255, gocv.ThresholdBinary)

	nonZero := gocv.CountNonZero(thresh)
	totalPixels := thresh.Rows() * thresh.Cols()
	changePercent := float64(nonZero) / float64(totalPixels) * 100.0

	blurred.CopyTo(&g.prevGray)

	return changePercent > g.threshold, changePercent
}

// Reset clears the baseline so the next frame starts a fresh comparison.
func (g *ActivityGate) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.prevGray.Empty() {
		g.prevGray.Close()
		g.prevGray = gocv.NewMat()
	}
	g.initialized = false
}

// Close releases resources used by the gate.
func (g *ActivityGate) Close() {
	g.Reset()
}

// SetThreshold updates the activity threshold.
// Values less than or equal to 0 are ignored.
func (g *ActivityGate) SetThreshold(threshold float64) {
	if threshold <= 0 {
		return
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	g.threshold = threshold
}
