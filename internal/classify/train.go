package classify

import (
	"encoding/json"
	"fmt"
	"os"
)

// Sample is one labeled feature vector recorded for training.
type Sample struct {
	Label    string    `json:"label"`
	Features []float64 `json:"features"`
}

// BuildKNNArtifact packs samples directly into a k-NN model artifact.
// Every sample becomes a prototype.
func BuildKNNArtifact(samples []Sample, k int) (*Artifact, error) {
	if len(samples) == 0 {
		return nil, fmt.Errorf("no samples provided")
	}
	if err := validateSamples(samples); err != nil {
		return nil, err
	}
	if k <= 0 {
		k = 5
	}
	if k > len(samples) {
		k = len(samples)
	}

	art := &Artifact{Type: ModelKNN, K: k, Vectors: make([]LabeledVector, 0, len(samples))}
	for _, s := range samples {
		art.Vectors = append(art.Vectors, LabeledVector{Label: s.Label, Features: s.Features})
	}
	return art, nil
}

// BuildCentroidArtifact averages all samples of each label into a single
// class centroid and packs the centroids into a model artifact.
func BuildCentroidArtifact(samples []Sample) (*Artifact, error) {
	if len(samples) == 0 {
		return nil, fmt.Errorf("no samples provided")
	}
	if err := validateSamples(samples); err != nil {
		return nil, err
	}

	featureLen := len(samples[0].Features)
	sums := make(map[string][]float64)
	counts := make(map[string]int)
	order := make([]string, 0)

	for _, s := range samples {
		if _, seen := sums[s.Label]; !seen {
			sums[s.Label] = make([]float64, featureLen)
			order = append(order, s.Label)
		}
		sum := sums[s.Label]
		for i, f := range s.Features {
			sum[i] += f
		}
		counts[s.Label]++
	}

	art := &Artifact{Type: ModelCentroid, Vectors: make([]LabeledVector, 0, len(order))}
	for _, label := range order {
		sum := sums[label]
		n := float64(counts[label])
		centroid := make([]float64, featureLen)
		for i, v := range sum {
			centroid[i] = v / n
		}
		art.Vectors = append(art.Vectors, LabeledVector{Label: label, Features: centroid})
	}
	return art, nil
}

func validateSamples(samples []Sample) error {
	featureLen := len(samples[0].Features)
	for i, s := range samples {
		if LabelIndex(s.Label) < 0 {
			return fmt.Errorf("sample %d has unknown label %q", i, s.Label)
		}
		if len(s.Features) != featureLen {
			return fmt.Errorf("sample %d has %d features, expected %d", i, len(s.Features), featureLen)
		}
	}
	return nil
}

// ReadSamples loads training samples from a JSON file containing an array
// of {label, features} objects.
func ReadSamples(path string) ([]Sample, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read samples: %w", err)
	}

	var samples []Sample
	if err := json.Unmarshal(data, &samples); err != nil {
		return nil, fmt.Errorf("parse samples: %w", err)
	}
	return samples, nil
}

// Write saves the model artifact as JSON.
func (a *Artifact) Write(path string) error {
	data, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return fmt.Errorf("encode model artifact: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write model artifact: %w", err)
	}
	return nil
}
