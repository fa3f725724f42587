package eval

type accuracyEvaluator struct{}
type precisionEvaluator struct{}
type recallEvaluator struct{}
type f1Evaluator struct{}

var (
	// Accuracy is the fraction of correct predictions.
	Accuracy = accuracyEvaluator{}
	// Precision is per-class precision, averaged with each class weighted by its support.
	Precision = precisionEvaluator{}
	// Recall is per-class recall, averaged with each class weighted by its support.
	Recall = recallEvaluator{}
	// F1 is per-class f-measure, averaged with each class weighted by its support.
	F1 = f1Evaluator{}
)

// Measures are the four measures reported for every classifier.
func Measures() []Evaluator {
	return []Evaluator{Accuracy, Precision, Recall, F1}
}

func (accuracyEvaluator) Name() string {
	return "accuracy"
}

func (accuracyEvaluator) Score(actual, predicted []int) float64 {
	if len(actual) == 0 {
		return 0
	}
	correct := 0.0
	for i := range actual {
		if i < len(predicted) && actual[i] == predicted[i] {
			correct++
		}
	}
	return correct / float64(len(actual))
}

func (precisionEvaluator) Name() string {
	return "precision"
}

func (precisionEvaluator) Score(actual, predicted []int) float64 {
	return weighted(NewConfusionMatrix(actual, predicted), func(p, r float64) float64 { return p })
}

func (recallEvaluator) Name() string {
	return "recall"
}

func (recallEvaluator) Score(actual, predicted []int) float64 {
	return weighted(NewConfusionMatrix(actual, predicted), func(p, r float64) float64 { return r })
}

func (f1Evaluator) Name() string {
	return "f1_score"
}

func (f1Evaluator) Score(actual, predicted []int) float64 {
	return weighted(NewConfusionMatrix(actual, predicted), fMeasure)
}

func fMeasure(p, r float64) float64 {
	if p+r == 0 {
		return 0
	}
	return 2 * p * r / (p + r)
}

// weighted averages a per-class measure of precision and recall, weighting each class by its support.
// Undefined precision or recall is taken as 0.
func weighted(cm ConfusionMatrix, measure func(p, r float64) float64) float64 {
	total := 0.0
	score := 0.0
	for i := range cm.Labels {
		support := cm.Support(i)
		if support == 0 {
			continue
		}
		score += support * measure(cm.Precision(i), cm.Recall(i))
		total += support
	}
	if total == 0 {
		return 0
	}
	return score / total
}
