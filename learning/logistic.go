package learning

import (
	"fmt"
	"log"
	"math"

	"github.com/hscells/boato/represent"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/optimize"
)

// LogisticOptions are the parameters of logistic regression.
type LogisticOptions struct {
	C             float64 `toml:"c"`
	MaxIterations int     `toml:"max_iterations"`
}

// DefaultLogisticOptions are C = 1 with at most 500 iterations of L-BFGS.
func DefaultLogisticOptions() LogisticOptions {
	return LogisticOptions{C: 1, MaxIterations: 500}
}

// LogisticRegression is L2 regularised logistic regression with an unpenalised intercept, minimised with L-BFGS.
// More than two classes are handled one-vs-rest.
type LogisticRegression struct {
	Options LogisticOptions

	classes []int
	weights [][]float64
}

// NewLogisticRegression creates a logistic regression classifier.
func NewLogisticRegression(options LogisticOptions) *LogisticRegression {
	return &LogisticRegression{Options: options}
}

func (l *LogisticRegression) Name() string {
	return "LogisticRegression"
}

func (l *LogisticRegression) String() string {
	return fmt.Sprintf("LogisticRegression(max_iter=%d)", l.Options.MaxIterations)
}

// logLoss is log(1+exp(-m)) computed without overflow.
func logLoss(m float64) float64 {
	if m > 0 {
		return math.Log1p(math.Exp(-m))
	}
	return -m + math.Log1p(math.Exp(m))
}

func (l *LogisticRegression) Fit(X represent.Matrix, y []int) error {
	if err := checkFit(X, y); err != nil {
		return err
	}
	l.classes = classes(y)
	e := encode(y, l.classes)

	problems := len(l.classes)
	if problems == 2 {
		problems = 1
	}
	l.weights = make([][]float64, problems)
	for p := 0; p < problems; p++ {
		positive := p
		if len(l.classes) == 2 {
			positive = 1
		}
		t := make([]float64, len(e))
		for i, c := range e {
			t[i] = -1
			if c == positive {
				t[i] = 1
			}
		}
		w, err := l.minimise(X, t)
		if err != nil {
			return err
		}
		l.weights[p] = w
	}
	return nil
}

// minimise finds the weights, with the intercept last, for targets of +1 or -1.
func (l *LogisticRegression) minimise(X represent.Matrix, t []float64) ([]float64, error) {
	c := l.Options.C
	bias := X.Cols
	margins := make([]float64, X.Len())

	problem := optimize.Problem{
		Func: func(w []float64) float64 {
			f := 0.0
			for i, row := range X.Rows {
				f += logLoss(t[i] * (row.Dot(w) + w[bias]))
			}
			return 0.5*floats.Dot(w[:bias], w[:bias]) + c*f
		},
		Grad: func(grad, w []float64) {
			copy(grad, w)
			grad[bias] = 0
			for i, row := range X.Rows {
				margins[i] = t[i] * (row.Dot(w) + w[bias])
				// derivative of log(1+exp(-m)) with respect to the score.
				g := -c * t[i] / (1 + math.Exp(margins[i]))
				row.AddScaled(grad, g)
				grad[bias] += g
			}
		},
	}

	settings := &optimize.Settings{
		MajorIterations:   l.Options.MaxIterations,
		GradientThreshold: 1e-4,
	}
	result, err := optimize.Minimize(problem, make([]float64, X.Cols+1), settings, &optimize.LBFGS{})
	if result == nil {
		return nil, err
	}
	if err != nil {
		log.Printf("logistic regression did not converge: %v\n", err)
	} else if result.Status != optimize.GradientThreshold {
		log.Printf("logistic regression stopped with status %v\n", result.Status)
	}
	return result.X, nil
}

// Probability of the positive class for binary problems, or of each one-vs-rest class otherwise.
func (l *LogisticRegression) Probability(X represent.Matrix) ([][]float64, error) {
	if l.weights == nil {
		return nil, errNotFit
	}
	p := make([][]float64, X.Len())
	for i, row := range X.Rows {
		p[i] = make([]float64, len(l.weights))
		for k, w := range l.weights {
			p[i][k] = 1 / (1 + math.Exp(-(row.Dot(w) + w[len(w)-1])))
		}
	}
	return p, nil
}

func (l *LogisticRegression) Predict(X represent.Matrix) ([]int, error) {
	p, err := l.Probability(X)
	if err != nil {
		return nil, err
	}
	pred := make([]int, len(p))
	for i := range p {
		if len(p[i]) == 1 {
			pred[i] = l.classes[0]
			if p[i][0] > 0.5 {
				pred[i] = l.classes[1]
			}
			continue
		}
		pred[i] = l.classes[argmax(p[i])]
	}
	return pred, nil
}
