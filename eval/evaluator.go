// Package eval scores the predictions of a classifier against the true labels.
package eval

// Evaluator is an interface for scoring predicted labels.
type Evaluator interface {
	Score(actual, predicted []int) float64
	Name() string
}

// Evaluate scores predictions using supplied evaluation measurements, keyed by their name.
func Evaluate(evaluators []Evaluator, actual, predicted []int) map[string]float64 {
	scores := make(map[string]float64, len(evaluators))
	for _, evaluator := range evaluators {
		scores[evaluator.Name()] = evaluator.Score(actual, predicted)
	}
	return scores
}
