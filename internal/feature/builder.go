// Package feature converts hand landmarks into the fixed-length feature
// vector the sign classifier was trained on.
package feature

import (
	"errors"

	"github.com/ayusman/mudra/internal/detector"
)

// Vector sizes. Each hand contributes 21 (x, y) pairs; the vector always
// holds two hand blocks, zero-padded when only one hand is visible.
const (
	PerHandLen = detector.NumLandmarks * 2
	VectorLen  = PerHandLen * detector.MaxHands
)

// ErrNoHands is returned when a frame contains no hand observations.
// It marks the ordinary "no hand visible" case, not a failure.
var ErrNoHands = errors.New("no hand landmarks observed")

// Build produces the classifier input vector from up to two hands.
//
// Each hand is normalized independently: its own minimum x and minimum y
// are subtracted from every landmark, making the features invariant to
// where the hand sits in the frame (but not to scale or rotation, which
// the training data is expected to cover). Hands are processed in sorted
// order, Left before Right before unknown, and missing hands are padded
// with zeros so the result is always exactly VectorLen long.
func Build(hands []detector.HandLandmarks) ([]float64, error) {
	if len(hands) == 0 {
		return nil, ErrNoHands
	}

	ordered := make([]detector.HandLandmarks, len(hands))
	copy(ordered, hands)
	ordered = detector.CapHands(ordered)

	vec := make([]float64, 0, VectorLen)
	for i := range ordered {
		vec = append(vec, handBlock(&ordered[i])...)
	}
	for len(vec) < VectorLen {
		vec = append(vec, 0)
	}

	return vec, nil
}

// handBlock flattens one hand into 42 position-normalized features.
func handBlock(hand *detector.HandLandmarks) []float64 {
	minX := hand.Points[0].X
	minY := hand.Points[0].Y
	for _, p := range hand.Points[1:] {
		if p.X < minX {
			minX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
	}

	block := make([]float64, 0, PerHandLen)
	for _, p := range hand.Points {
		block = append(block, p.X-minX, p.Y-minY)
	}
	return block
}
