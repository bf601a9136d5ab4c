package classify

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
)

// Model artifact kinds.
const (
	ModelKNN      = "knn"
	ModelCentroid = "centroid"
)

// Artifact is the on-disk JSON representation of a trained model.
type Artifact struct {
	Type    string          `json:"type"`
	K       int             `json:"k,omitempty"`
	Vectors []LabeledVector `json:"vectors"`
}

// LabeledVector is one labeled feature vector inside an artifact: a
// prototype for k-NN models, a class centroid for centroid models.
type LabeledVector struct {
	Label    string    `json:"label"`
	Features []float64 `json:"features"`
}

// LoadModel reads a model artifact from path and builds the matching
// classifier, wrapped in an Adapter.
func LoadModel(path string) (*Adapter, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model artifact: %w", err)
	}

	var art Artifact
	if err := json.Unmarshal(data, &art); err != nil {
		return nil, fmt.Errorf("parse model artifact: %w", err)
	}

	return buildModel(&art)
}

func buildModel(art *Artifact) (*Adapter, error) {
	if len(art.Vectors) == 0 {
		return nil, fmt.Errorf("model artifact has no vectors")
	}

	switch art.Type {
	case ModelKNN:
		prototypes := make([]Prototype, 0, len(art.Vectors))
		for _, v := range art.Vectors {
			idx := LabelIndex(v.Label)
			if idx < 0 {
				return nil, fmt.Errorf("artifact references unknown label %q", v.Label)
			}
			prototypes = append(prototypes, Prototype{LabelIndex: idx, Features: v.Features})
		}
		k := art.K
		if k <= 0 {
			k = 5
		}
		if k > len(prototypes) {
			k = len(prototypes)
		}
		knn, err := NewKNN(k, prototypes)
		if err != nil {
			return nil, err
		}
		return NewAdapter(knn), nil

	case ModelCentroid:
		centroids := make([]Centroid, 0, len(art.Vectors))
		for _, v := range art.Vectors {
			idx := LabelIndex(v.Label)
			if idx < 0 {
				return nil, fmt.Errorf("artifact references unknown label %q", v.Label)
			}
			centroids = append(centroids, Centroid{LabelIndex: idx, Features: v.Features})
		}
		nc, err := NewNearestCentroid(centroids)
		if err != nil {
			return nil, err
		}
		return NewAdapter(nc), nil

	default:
		return nil, fmt.Errorf("unknown model type %q", art.Type)
	}
}

// DefaultModelPaths lists the locations tried in order when loading the
// model at startup.
func DefaultModelPaths() []string {
	paths := []string{
		"model.json",
		filepath.Join("models", "model.json"),
	}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".mudra", "model.json"))
	}
	return paths
}

// FindAndLoadModel tries each candidate path in order and returns the first
// model that loads. A nil Adapter with a nil error is never returned; when
// every candidate fails the last error is reported and the caller is
// expected to stay in the model-not-loaded state.
func FindAndLoadModel(candidates []string) (*Adapter, error) {
	var lastErr error
	for _, path := range candidates {
		adapter, err := LoadModel(path)
		if err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				log.Printf("Failed to load model from %s: %v", path, err)
			}
			lastErr = err
			continue
		}
		log.Printf("Loaded classifier model from %s", path)
		return adapter, nil
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("no model candidates given")
	}
	return nil, fmt.Errorf("no usable model artifact: %w", lastErr)
}
