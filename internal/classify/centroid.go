package classify

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// Centroid is one class center for the nearest-centroid model.
type Centroid struct {
	LabelIndex int
	Features   []float64
}

// NearestCentroid classifies a vector as the class whose centroid is
// closest. It is a hard classifier: distances are not calibrated, so it
// exposes no probability distribution and its predictions bypass the
// confidence gate.
type NearestCentroid struct {
	centroids  []Centroid
	featureLen int
}

// NewNearestCentroid builds a model over the given class centroids.
func NewNearestCentroid(centroids []Centroid) (*NearestCentroid, error) {
	if len(centroids) == 0 {
		return nil, fmt.Errorf("no centroids")
	}

	featureLen := len(centroids[0].Features)
	for i, c := range centroids {
		if len(c.Features) != featureLen {
			return nil, fmt.Errorf("centroid %d has %d features, expected %d", i, len(c.Features), featureLen)
		}
		if c.LabelIndex < 0 || c.LabelIndex >= NumLabels {
			return nil, fmt.Errorf("centroid %d has out-of-range label index %d", i, c.LabelIndex)
		}
	}

	return &NearestCentroid{centroids: centroids, featureLen: featureLen}, nil
}

// Predict returns the class of the nearest centroid.
func (m *NearestCentroid) Predict(features []float64) (int, error) {
	if len(features) != m.featureLen {
		return 0, fmt.Errorf("feature length %d, expected %d", len(features), m.featureLen)
	}

	best := 0
	bestDist := floats.Distance(features, m.centroids[0].Features, 2)
	for i, c := range m.centroids[1:] {
		d := floats.Distance(features, c.Features, 2)
		if d < bestDist {
			bestDist = d
			best = i + 1
		}
	}

	return m.centroids[best].LabelIndex, nil
}
