package classify

// DefaultThreshold is the global confidence floor a prediction must reach
// before it is accepted.
const DefaultThreshold = 0.65

// DefaultOverrides returns per-class threshold overrides for signs the
// model confuses more easily. These values came out of manual calibration
// against a validation set; recalibrate them for your own dataset rather
// than treating them as constants.
func DefaultOverrides() map[string]float64 {
	return map[string]float64{
		"C": 0.22,
		"D": 0.45,
		"U": 0.40,
		"N": 0.20,
		"2": 0.50,
		"1": 0.50,
		"I": 0.30,
	}
}

// Gate applies confidence thresholds to classification results.
type Gate struct {
	defaultThreshold float64
	overrides        map[string]float64
}

// NewGate builds a gate with the given global threshold and per-class
// overrides. A nil overrides map means no overrides.
func NewGate(defaultThreshold float64, overrides map[string]float64) *Gate {
	if defaultThreshold <= 0 {
		defaultThreshold = DefaultThreshold
	}
	g := &Gate{
		defaultThreshold: defaultThreshold,
		overrides:        make(map[string]float64, len(overrides)),
	}
	for label, th := range overrides {
		g.overrides[label] = th
	}
	return g
}

// Threshold returns the threshold applied to the given label.
func (g *Gate) Threshold(label string) float64 {
	if th, ok := g.overrides[label]; ok {
		return th
	}
	return g.defaultThreshold
}

// Accept reports whether a result clears its threshold. Results without a
// confidence value (hard classifiers) always pass; a confidence exactly at
// the threshold passes.
func (g *Gate) Accept(res Result) bool {
	if !res.HasConfidence {
		return true
	}
	return res.Confidence >= g.Threshold(res.Label)
}
