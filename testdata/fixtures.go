// Package testdata provides synthetic signs and model fixtures for tests
// that exercise the full recognition pipeline without a camera.
package testdata

import (
	"path/filepath"

	"github.com/ayusman/mudra/internal/classify"
	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/feature"
)

// Sign returns a deterministic synthetic hand whose shape varies with
// tweak, plus the feature vector the pipeline derives from it. Hands with
// different tweaks are distinguishable after normalization.
func Sign(tweak float64) (detector.HandLandmarks, []float64, error) {
	hand := detector.FlatHandAt(0.3, 0.3, detector.HandednessRight)
	hand.Points[detector.ThumbTip].X += tweak

	vec, err := feature.Build([]detector.HandLandmarks{hand})
	if err != nil {
		return detector.HandLandmarks{}, nil, err
	}
	return hand, vec, nil
}

// KNNModel builds a 1-NN artifact mapping each label to the sign produced
// by its tweak.
func KNNModel(signs map[string]float64) (*classify.Artifact, error) {
	art := &classify.Artifact{Type: classify.ModelKNN, K: 1}
	for label, tweak := range signs {
		_, vec, err := Sign(tweak)
		if err != nil {
			return nil, err
		}
		art.Vectors = append(art.Vectors, classify.LabeledVector{Label: label, Features: vec})
	}
	return art, nil
}

// WriteKNNModel writes a 1-NN model artifact to dir/model.json and returns
// its path.
func WriteKNNModel(dir string, signs map[string]float64) (string, error) {
	art, err := KNNModel(signs)
	if err != nil {
		return "", err
	}

	path := filepath.Join(dir, "model.json")
	if err := art.Write(path); err != nil {
		return "", err
	}
	return path, nil
}
