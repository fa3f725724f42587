package eval

import (
	"fmt"
	"sort"
	"strings"
)

// ConfusionMatrix counts predictions per pair of labels. Counts[i][j] is the number of rows of class Labels[i]
// predicted as Labels[j].
type ConfusionMatrix struct {
	Labels []int
	Counts [][]float64
}

// NewConfusionMatrix tabulates predictions over the union of the actual and predicted labels.
func NewConfusionMatrix(actual, predicted []int) ConfusionMatrix {
	seen := make(map[int]bool)
	for _, l := range actual {
		seen[l] = true
	}
	for _, l := range predicted {
		seen[l] = true
	}
	labels := make([]int, 0, len(seen))
	for l := range seen {
		labels = append(labels, l)
	}
	sort.Ints(labels)

	index := make(map[int]int, len(labels))
	for i, l := range labels {
		index[l] = i
	}
	counts := make([][]float64, len(labels))
	for i := range counts {
		counts[i] = make([]float64, len(labels))
	}
	for i := range actual {
		if i >= len(predicted) {
			break
		}
		counts[index[actual[i]]][index[predicted[i]]]++
	}
	return ConfusionMatrix{Labels: labels, Counts: counts}
}

// Support is the number of rows whose actual class is Labels[i].
func (cm ConfusionMatrix) Support(i int) float64 {
	s := 0.0
	for _, c := range cm.Counts[i] {
		s += c
	}
	return s
}

// Predicted is the number of rows predicted as Labels[i].
func (cm ConfusionMatrix) Predicted(i int) float64 {
	s := 0.0
	for _, row := range cm.Counts {
		s += row[i]
	}
	return s
}

// Precision of class Labels[i], 0 when nothing was predicted as that class.
func (cm ConfusionMatrix) Precision(i int) float64 {
	p := cm.Predicted(i)
	if p == 0 {
		return 0
	}
	return cm.Counts[i][i] / p
}

// Recall of class Labels[i], 0 when the class has no rows.
func (cm ConfusionMatrix) Recall(i int) float64 {
	s := cm.Support(i)
	if s == 0 {
		return 0
	}
	return cm.Counts[i][i] / s
}

func (cm ConfusionMatrix) String() string {
	var b strings.Builder
	b.WriteString("actual\\predicted")
	for _, l := range cm.Labels {
		fmt.Fprintf(&b, "\t%d", l)
	}
	for i, l := range cm.Labels {
		fmt.Fprintf(&b, "\n%d", l)
		for _, c := range cm.Counts[i] {
			fmt.Fprintf(&b, "\t%d", int(c))
		}
	}
	return b.String()
}
