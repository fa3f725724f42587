package learning

import (
	"fmt"
	"math"

	"github.com/hscells/boato/represent"
	"github.com/pkg/errors"
)

// BayesOptions are the parameters of multinomial naive Bayes.
type BayesOptions struct {
	Alpha float64 `toml:"alpha"`
}

// DefaultBayesOptions use Laplace smoothing.
func DefaultBayesOptions() BayesOptions {
	return BayesOptions{Alpha: 1}
}

// MultinomialNB is naive Bayes for count-like features, with additive smoothing and priors taken from the class
// frequencies of the training rows.
type MultinomialNB struct {
	Options BayesOptions

	classes  []int
	logPrior []float64
	// logProb[c][j] is the smoothed log probability of feature j in class c.
	logProb [][]float64
}

// NewMultinomialNB creates a multinomial naive Bayes classifier.
func NewMultinomialNB(options BayesOptions) *MultinomialNB {
	return &MultinomialNB{Options: options}
}

func (m *MultinomialNB) Name() string {
	return "MultinomialNB"
}

func (m *MultinomialNB) String() string {
	if m.Options.Alpha != 1 {
		return fmt.Sprintf("MultinomialNB(alpha=%v)", m.Options.Alpha)
	}
	return "MultinomialNB()"
}

func (m *MultinomialNB) Fit(X represent.Matrix, y []int) error {
	if err := checkFit(X, y); err != nil {
		return err
	}
	for _, row := range X.Rows {
		for _, v := range row.Values {
			if v < 0 {
				return errors.New("negative values in data passed to MultinomialNB")
			}
		}
	}

	m.classes = classes(y)
	e := encode(y, m.classes)
	k := len(m.classes)

	counts := make([]float64, k)
	features := make([][]float64, k)
	for c := range features {
		features[c] = make([]float64, X.Cols)
	}
	for i, row := range X.Rows {
		counts[e[i]]++
		row.AddScaled(features[e[i]], 1)
	}

	n := float64(X.Len())
	alpha := m.Options.Alpha
	m.logPrior = make([]float64, k)
	m.logProb = make([][]float64, k)
	for c := 0; c < k; c++ {
		m.logPrior[c] = math.Log(counts[c] / n)
		total := 0.0
		for _, f := range features[c] {
			total += f + alpha
		}
		m.logProb[c] = make([]float64, X.Cols)
		for j, f := range features[c] {
			m.logProb[c][j] = math.Log((f + alpha) / total)
		}
	}
	return nil
}

// JointLogLikelihood is the unnormalised log posterior of every class for every row.
func (m *MultinomialNB) JointLogLikelihood(X represent.Matrix) ([][]float64, error) {
	if m.logProb == nil {
		return nil, errNotFit
	}
	jll := make([][]float64, X.Len())
	for i, row := range X.Rows {
		jll[i] = make([]float64, len(m.classes))
		for c := range m.classes {
			jll[i][c] = m.logPrior[c] + row.Dot(m.logProb[c])
		}
	}
	return jll, nil
}

func (m *MultinomialNB) Predict(X represent.Matrix) ([]int, error) {
	jll, err := m.JointLogLikelihood(X)
	if err != nil {
		return nil, err
	}
	pred := make([]int, len(jll))
	for i := range jll {
		pred[i] = m.classes[argmax(jll[i])]
	}
	return pred, nil
}
