package session

import "github.com/ayusman/mudra/internal/classify"

// DefaultCooldown is how many frames the same sign must be held before it
// is accepted again as a deliberate repeat.
const DefaultCooldown = 5

// Debounce suppresses the duplicate emissions a held gesture would
// otherwise produce on every frame, while still letting the signer repeat
// a character on purpose by holding it past the cooldown. A different sign
// always emits immediately.
type Debounce struct {
	cooldown int
	last     string
	frames   int
}

// NewDebounce creates a Debounce with the given frame cooldown.
// Non-positive cooldowns fall back to DefaultCooldown.
func NewDebounce(cooldown int) *Debounce {
	if cooldown <= 0 {
		cooldown = DefaultCooldown
	}
	return &Debounce{cooldown: cooldown, frames: cooldown}
}

// Observe records one processed frame and reports whether the label should
// be emitted. accepted is false when the frame produced no usable
// classification (no hands, below threshold, detector error); such frames
// still advance the frame counter so a sign held through a noisy patch can
// repeat once the cooldown elapses.
func (d *Debounce) Observe(label string, accepted bool) bool {
	d.frames++

	if !accepted || label == classify.LabelUnknown || label == "" {
		return false
	}

	if label != d.last || d.frames >= d.cooldown {
		d.last = label
		d.frames = 0
		return true
	}

	return false
}

// Reset returns the machine to its initial state. The frame counter starts
// at the cooldown so the first accepted sign of a session emits
// immediately.
func (d *Debounce) Reset() {
	d.last = ""
	d.frames = d.cooldown
}
