// Package classify wraps the trained sign classifier and the confidence
// gating applied to its predictions.
package classify

// LabelUnknown is the sentinel for predictions that cannot be mapped to a
// known sign, either because the model emitted an out-of-range class index
// or because inference failed.
const LabelUnknown = "Unknown"

// labels maps class indices to the sign alphabet the model was trained on:
// digits 1-9 followed by letters A-Z.
var labels = func() []string {
	out := make([]string, 0, 35)
	for d := '1'; d <= '9'; d++ {
		out = append(out, string(d))
	}
	for c := 'A'; c <= 'Z'; c++ {
		out = append(out, string(c))
	}
	return out
}()

// NumLabels is the size of the classifier's label set.
var NumLabels = len(labels)

// Label returns the sign for a class index, or LabelUnknown when the index
// is out of range.
func Label(index int) string {
	if index < 0 || index >= len(labels) {
		return LabelUnknown
	}
	return labels[index]
}

// LabelIndex returns the class index for a sign, or -1 when the sign is not
// part of the label set.
func LabelIndex(label string) int {
	for i, l := range labels {
		if l == label {
			return i
		}
	}
	return -1
}

// Labels returns a copy of the full label set in index order.
func Labels() []string {
	out := make([]string, len(labels))
	copy(out, labels)
	return out
}
