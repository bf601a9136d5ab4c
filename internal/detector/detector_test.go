package detector

import (
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.MaxHands != 2 {
		t.Errorf("MaxHands = %d, want 2", cfg.MaxHands)
	}
	if cfg.MinConfidence != 0.3 {
		t.Errorf("MinConfidence = %f, want 0.3", cfg.MinConfidence)
	}
}

func TestSortHands(t *testing.T) {
	tests := []struct {
		name  string
		hands []string
		want  []string
	}{
		{
			name:  "right before left gets swapped",
			hands: []string{HandednessRight, HandednessLeft},
			want:  []string{HandednessLeft, HandednessRight},
		},
		{
			name:  "unknown sorts last",
			hands: []string{"", HandednessRight, HandednessLeft},
			want:  []string{HandednessLeft, HandednessRight, ""},
		},
		{
			name:  "already sorted stays put",
			hands: []string{HandednessLeft, HandednessRight},
			want:  []string{HandednessLeft, HandednessRight},
		},
		{
			name:  "empty",
			hands: nil,
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hands := make([]HandLandmarks, len(tt.hands))
			for i, h := range tt.hands {
				hands[i] = HandLandmarks{Handedness: h}
			}

			SortHands(hands)

			for i, want := range tt.want {
				if hands[i].Handedness != want {
					t.Errorf("hands[%d].Handedness = %q, want %q", i, hands[i].Handedness, want)
				}
			}
		})
	}
}

func TestCapHands(t *testing.T) {
	hands := []HandLandmarks{
		{Handedness: ""},
		{Handedness: HandednessRight},
		{Handedness: HandednessLeft},
	}

	capped := CapHands(hands)

	if len(capped) != MaxHands {
		t.Fatalf("len = %d, want %d", len(capped), MaxHands)
	}
	// Sorting happens before capping, so the unknown hand is the one dropped
	if capped[0].Handedness != HandednessLeft || capped[1].Handedness != HandednessRight {
		t.Errorf("capped hands = [%q, %q], want [Left, Right]",
			capped[0].Handedness, capped[1].Handedness)
	}
}

func TestBoundingBox(t *testing.T) {
	hand := FlatHandAt(0.3, 0.4, HandednessRight)

	minX, minY, maxX, maxY, ok := BoundingBox([]HandLandmarks{hand})
	if !ok {
		t.Fatal("BoundingBox() ok = false for one hand")
	}

	if minX != 0.3 || minY != 0.4 {
		t.Errorf("min = (%f, %f), want (0.3, 0.4)", minX, minY)
	}
	if maxX <= minX || maxY <= minY {
		t.Errorf("max = (%f, %f) not beyond min", maxX, maxY)
	}
}

func TestBoundingBox_NoHands(t *testing.T) {
	if _, _, _, _, ok := BoundingBox(nil); ok {
		t.Error("BoundingBox() ok = true for no hands")
	}
}

func TestMockDetector_Script(t *testing.T) {
	m := NewMockDetector()
	m.SetHands([]HandLandmarks{FlatHandAt(0.1, 0.1, HandednessLeft)})
	m.Enqueue(FlatHandAt(0.5, 0.5, HandednessRight))
	m.Enqueue() // one empty frame

	hands, err := m.Detect(nil)
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	if len(hands) != 1 || hands[0].Handedness != HandednessRight {
		t.Fatalf("first scripted frame = %v, want one Right hand", hands)
	}

	hands, _ = m.Detect(nil)
	if len(hands) != 0 {
		t.Fatalf("second scripted frame has %d hands, want 0", len(hands))
	}

	// Script exhausted, falls back to static hands
	hands, _ = m.Detect(nil)
	if len(hands) != 1 || hands[0].Handedness != HandednessLeft {
		t.Fatalf("fallback frame = %v, want one Left hand", hands)
	}

	if m.Calls() != 3 {
		t.Errorf("Calls() = %d, want 3", m.Calls())
	}
}
