package classify

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// Prototype is one labeled training vector retained by the k-NN model.
type Prototype struct {
	LabelIndex int
	Features   []float64
}

// KNN is a k-nearest-neighbor classifier over retained prototypes. It is
// probabilistic: the predicted distribution is the vote fraction of each
// class among the k nearest prototypes.
type KNN struct {
	k          int
	prototypes []Prototype
	featureLen int
}

// NewKNN builds a KNN over prototypes. All prototypes must share the same
// feature length, and k must not exceed the prototype count.
func NewKNN(k int, prototypes []Prototype) (*KNN, error) {
	if k <= 0 {
		return nil, fmt.Errorf("k must be positive, got %d", k)
	}
	if len(prototypes) == 0 {
		return nil, fmt.Errorf("no prototypes")
	}
	if k > len(prototypes) {
		return nil, fmt.Errorf("k (%d) exceeds prototype count (%d)", k, len(prototypes))
	}

	featureLen := len(prototypes[0].Features)
	for i, p := range prototypes {
		if len(p.Features) != featureLen {
			return nil, fmt.Errorf("prototype %d has %d features, expected %d", i, len(p.Features), featureLen)
		}
		if p.LabelIndex < 0 || p.LabelIndex >= NumLabels {
			return nil, fmt.Errorf("prototype %d has out-of-range label index %d", i, p.LabelIndex)
		}
	}

	return &KNN{k: k, prototypes: prototypes, featureLen: featureLen}, nil
}

// Predict returns the majority class among the k nearest prototypes.
func (m *KNN) Predict(features []float64) (int, error) {
	dist, err := m.PredictProba(features)
	if err != nil {
		return 0, err
	}
	return argmax(dist), nil
}

// PredictProba returns the vote-fraction distribution over all classes.
func (m *KNN) PredictProba(features []float64) ([]float64, error) {
	if len(features) != m.featureLen {
		return nil, fmt.Errorf("feature length %d, expected %d", len(features), m.featureLen)
	}

	distances := make([]float64, len(m.prototypes))
	for i, p := range m.prototypes {
		distances[i] = floats.Distance(features, p.Features, 2)
	}

	// Argsort gives prototype indices ordered by ascending distance.
	inds := make([]int, len(distances))
	floats.Argsort(distances, inds)

	dist := make([]float64, NumLabels)
	vote := 1.0 / float64(m.k)
	for _, protoIdx := range inds[:m.k] {
		dist[m.prototypes[protoIdx].LabelIndex] += vote
	}

	return dist, nil
}
