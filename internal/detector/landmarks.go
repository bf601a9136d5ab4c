// Package detector provides hand landmark extraction for sign recognition.
package detector

import "sort"

// Hand landmark indices following MediaPipe convention.
// See: https://developers.google.com/mediapipe/solutions/vision/hand_landmarker
const (
	Wrist        = 0
	ThumbCMC     = 1
	ThumbMCP     = 2
	ThumbIP      = 3
	ThumbTip     = 4
	IndexMCP     = 5
	IndexPIP     = 6
	IndexDIP     = 7
	IndexTip     = 8
	MiddleMCP    = 9
	MiddlePIP    = 10
	MiddleDIP    = 11
	MiddleTip    = 12
	RingMCP      = 13
	RingPIP      = 14
	RingDIP      = 15
	RingTip      = 16
	PinkyMCP     = 17
	PinkyPIP     = 18
	PinkyDIP     = 19
	PinkyTip     = 20
	NumLandmarks = 21
)

// MaxHands is the number of hands the pipeline considers per frame.
// Extra detections are discarded.
const MaxHands = 2

// Handedness labels reported by the landmark model.
const (
	HandednessLeft  = "Left"
	HandednessRight = "Right"
)

// Connections enumerates the landmark index pairs that form the hand
// skeleton, used when drawing the preview overlay.
var Connections = [][2]int{
	{Wrist, ThumbCMC}, {ThumbCMC, ThumbMCP}, {ThumbMCP, ThumbIP}, {ThumbIP, ThumbTip},
	{Wrist, IndexMCP}, {IndexMCP, IndexPIP}, {IndexPIP, IndexDIP}, {IndexDIP, IndexTip},
	{IndexMCP, MiddleMCP}, {MiddleMCP, MiddlePIP}, {MiddlePIP, MiddleDIP}, {MiddleDIP, MiddleTip},
	{MiddleMCP, RingMCP}, {RingMCP, RingPIP}, {RingPIP, RingDIP}, {RingDIP, RingTip},
	{RingMCP, PinkyMCP}, {Wrist, PinkyMCP}, {PinkyMCP, PinkyPIP}, {PinkyPIP, PinkyDIP}, {PinkyDIP, PinkyTip},
}

// Point3D represents a 3D point in normalized image coordinates.
type Point3D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// HandLandmarks represents the 21 hand landmarks detected for one hand.
type HandLandmarks struct {
	Points     [NumLandmarks]Point3D `json:"points"`
	Handedness string                `json:"handedness"` // "Left", "Right" or ""
	Score      float64               `json:"score"`
}

// handednessRank orders hands Left before Right before unknown, matching the
// order the classifier was trained with.
func handednessRank(label string) int {
	switch label {
	case HandednessLeft:
		return 0
	case HandednessRight:
		return 1
	default:
		return 2
	}
}

// SortHands sorts hands in place Left-first, then Right, then unknown.
// The sort is stable so two hands with the same handedness keep their
// detection order.
func SortHands(hands []HandLandmarks) {
	sort.SliceStable(hands, func(i, j int) bool {
		return handednessRank(hands[i].Handedness) < handednessRank(hands[j].Handedness)
	})
}

// CapHands sorts hands and discards extras beyond MaxHands.
func CapHands(hands []HandLandmarks) []HandLandmarks {
	SortHands(hands)
	if len(hands) > MaxHands {
		hands = hands[:MaxHands]
	}
	return hands
}

// BoundingBox returns the min and max normalized coordinates covering all
// landmarks of the given hands. ok is false when hands is empty.
func BoundingBox(hands []HandLandmarks) (minX, minY, maxX, maxY float64, ok bool) {
	if len(hands) == 0 {
		return 0, 0, 0, 0, false
	}

	minX, minY = 1.0, 1.0
	for i := range hands {
		for _, p := range hands[i].Points {
			if p.X < minX {
				minX = p.X
			}
			if p.Y < minY {
				minY = p.Y
			}
			if p.X > maxX {
				maxX = p.X
			}
			if p.Y > maxY {
				maxY = p.Y
			}
		}
	}
	return minX, minY, maxX, maxY, true
}
