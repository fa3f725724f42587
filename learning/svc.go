package learning

import (
	"math/rand"

	"github.com/hscells/boato/represent"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
)

// SVCOptions are the parameters of the linear support vector classifier.
type SVCOptions struct {
	C             float64 `toml:"c"`
	Tolerance     float64 `toml:"tolerance"`
	MaxIterations int     `toml:"max_iterations"`
	Seed          int64   `toml:"seed"`
}

// DefaultSVCOptions are C = 1 with at most 1000 passes over the data.
func DefaultSVCOptions() SVCOptions {
	return SVCOptions{C: 1, Tolerance: 0.1, MaxIterations: 1000, Seed: 1}
}

// SVC is a linear support vector machine with hinge loss, trained by dual coordinate descent. More than two classes
// are handled one-vs-rest.
type SVC struct {
	Options SVCOptions

	classes []int
	// one weight vector per binary problem, with the bias as the last element.
	weights [][]float64
}

// NewSVC creates a linear support vector classifier.
func NewSVC(options SVCOptions) *SVC {
	return &SVC{Options: options}
}

func (s *SVC) Name() string {
	return "SVC"
}

func (s *SVC) String() string {
	return "SVC(kernel='linear')"
}

func (s *SVC) Fit(X represent.Matrix, y []int) error {
	if err := checkFit(X, y); err != nil {
		return err
	}
	s.classes = classes(y)
	e := encode(y, s.classes)

	problems := len(s.classes)
	if problems == 2 {
		problems = 1
	}
	s.weights = make([][]float64, problems)
	for p := 0; p < problems; p++ {
		positive := p
		if len(s.classes) == 2 {
			positive = 1
		}
		t := make([]float64, len(e))
		for i, c := range e {
			t[i] = -1
			if c == positive {
				t[i] = 1
			}
		}
		s.weights[p] = s.dualCoordinateDescent(X, t)
	}
	return nil
}

// dualCoordinateDescent solves the dual of the L1-loss SVM for targets of +1 or -1.
func (s *SVC) dualCoordinateDescent(X represent.Matrix, t []float64) []float64 {
	n := X.Len()
	c := s.Options.C
	w := make([]float64, X.Cols+1)
	bias := X.Cols
	alpha := make([]float64, n)
	q := make([]float64, n)
	for i, row := range X.Rows {
		q[i] = row.SquaredNorm() + 1
	}

	rng := rand.New(rand.NewSource(s.Options.Seed))
	for iter := 0; iter < s.Options.MaxIterations; iter++ {
		maxPG, minPG := -1e300, 1e300
		for _, i := range rng.Perm(n) {
			row := X.Rows[i]
			g := t[i]*(row.Dot(w)+w[bias]) - 1

			pg := g
			switch {
			case alpha[i] == 0:
				if g > 0 {
					pg = 0
				}
			case alpha[i] == c:
				if g < 0 {
					pg = 0
				}
			}
			if pg > maxPG {
				maxPG = pg
			}
			if pg < minPG {
				minPG = pg
			}
			if pg == 0 {
				continue
			}

			old := alpha[i]
			alpha[i] -= g / q[i]
			if alpha[i] < 0 {
				alpha[i] = 0
			} else if alpha[i] > c {
				alpha[i] = c
			}
			d := (alpha[i] - old) * t[i]
			row.AddScaled(w, d)
			w[bias] += d
		}
		if maxPG-minPG <= s.Options.Tolerance {
			break
		}
	}
	return w
}

// Decision returns the signed distance of each row from every separating hyperplane.
func (s *SVC) Decision(X represent.Matrix) ([][]float64, error) {
	if s.weights == nil {
		return nil, errNotFit
	}
	d := make([][]float64, X.Len())
	for i, row := range X.Rows {
		d[i] = make([]float64, len(s.weights))
		for p, w := range s.weights {
			if len(w) != X.Cols+1 {
				return nil, errors.Errorf("expected %d features, got %d", len(w)-1, X.Cols)
			}
			d[i][p] = row.Dot(w) + w[len(w)-1]
		}
	}
	return d, nil
}

func (s *SVC) Predict(X represent.Matrix) ([]int, error) {
	d, err := s.Decision(X)
	if err != nil {
		return nil, err
	}
	pred := make([]int, len(d))
	for i := range d {
		if len(d[i]) == 1 {
			pred[i] = s.classes[0]
			if d[i][0] > 0 {
				pred[i] = s.classes[1]
			}
			continue
		}
		pred[i] = s.classes[floats.MaxIdx(d[i])]
	}
	return pred, nil
}
