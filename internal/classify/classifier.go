package classify

import (
	"fmt"
	"sort"
)

// Classifier is the minimal capability a model must provide: a hard class
// index for a feature vector.
type Classifier interface {
	Predict(features []float64) (int, error)
}

// ProbabilisticClassifier is the richer capability: a full probability
// distribution over all class indices. Models that implement it get
// confidence gating; hard classifiers pass the gate unconditionally since
// they provide no calibration signal.
type ProbabilisticClassifier interface {
	Classifier
	PredictProba(features []float64) ([]float64, error)
}

// Candidate is one entry of the top-k diagnostic list.
type Candidate struct {
	Label       string  `json:"char"`
	Probability float64 `json:"prob"`
}

// Result is the outcome of classifying one feature vector.
type Result struct {
	// Label is the predicted sign, or LabelUnknown.
	Label string
	// Confidence is the probability of Label. Only meaningful when
	// HasConfidence is true.
	Confidence float64
	// HasConfidence is false for hard classifiers.
	HasConfidence bool
	// Top3 lists the three most probable signs, best first. Empty for
	// hard classifiers.
	Top3 []Candidate
}

// Adapter wraps a loaded model behind a uniform Classify call. The
// probabilistic capability is detected once at construction, not per frame.
type Adapter struct {
	model Classifier
	proba ProbabilisticClassifier // nil when the model is hard
}

// NewAdapter wraps model, probing its capabilities.
func NewAdapter(model Classifier) *Adapter {
	a := &Adapter{model: model}
	if p, ok := model.(ProbabilisticClassifier); ok {
		a.proba = p
	}
	return a
}

// Probabilistic reports whether the wrapped model exposes per-class
// probabilities.
func (a *Adapter) Probabilistic() bool {
	return a.proba != nil
}

// Classify runs the model on one feature vector. An out-of-range class
// index maps to LabelUnknown rather than an error.
func (a *Adapter) Classify(features []float64) (Result, error) {
	if a.proba != nil {
		dist, err := a.proba.PredictProba(features)
		if err != nil {
			return Result{Label: LabelUnknown}, fmt.Errorf("predict proba: %w", err)
		}

		best := argmax(dist)
		return Result{
			Label:         Label(best),
			Confidence:    dist[best],
			HasConfidence: true,
			Top3:          topCandidates(dist, 3),
		}, nil
	}

	idx, err := a.model.Predict(features)
	if err != nil {
		return Result{Label: LabelUnknown}, fmt.Errorf("predict: %w", err)
	}
	return Result{Label: Label(idx)}, nil
}

func argmax(dist []float64) int {
	best := 0
	for i, p := range dist {
		if p > dist[best] {
			best = i
		}
	}
	return best
}

// topCandidates returns the k most probable labels, best first.
func topCandidates(dist []float64, k int) []Candidate {
	idx := make([]int, len(dist))
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(i, j int) bool { return dist[idx[i]] > dist[idx[j]] })

	if k > len(idx) {
		k = len(idx)
	}
	out := make([]Candidate, 0, k)
	for _, i := range idx[:k] {
		out = append(out, Candidate{Label: Label(i), Probability: dist[i]})
	}
	return out
}
