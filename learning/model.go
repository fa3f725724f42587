// Package learning splits a represented corpus into training and testing rows, and trains and evaluates the
// classifiers compared by the experiment.
package learning

import (
	"sort"

	"github.com/hscells/boato/represent"
	"github.com/pkg/errors"
)

// Classifier is a supervised model that learns to predict labels from a feature matrix.
type Classifier interface {
	// Name is the key the classifier is stored under in results.
	Name() string
	// Fit must train the model on the rows of X labelled with y.
	Fit(X represent.Matrix, y []int) error
	// Predict must label each row of X.
	Predict(X represent.Matrix) ([]int, error)
	// String describes the model and its non-default parameters.
	String() string
}

var errNotFit = errors.New("model has not been fit")

// classes are the sorted unique labels.
func classes(y []int) []int {
	seen := make(map[int]bool)
	for _, l := range y {
		seen[l] = true
	}
	c := make([]int, 0, len(seen))
	for l := range seen {
		c = append(c, l)
	}
	sort.Ints(c)
	return c
}

// encode maps each label to its position in classes.
func encode(y, classes []int) []int {
	index := make(map[int]int, len(classes))
	for i, c := range classes {
		index[c] = i
	}
	e := make([]int, len(y))
	for i, l := range y {
		e[i] = index[l]
	}
	return e
}

func checkFit(X represent.Matrix, y []int) error {
	if X.Len() != len(y) {
		return errors.Errorf("%d rows but %d labels", X.Len(), len(y))
	}
	if X.Len() == 0 {
		return errors.New("no rows to fit")
	}
	if len(classes(y)) < 2 {
		return errors.New("at least two classes are required to fit a classifier")
	}
	return nil
}

// argmax returns the first index of the largest value.
func argmax(v []float64) int {
	best := 0
	for i := range v {
		if v[i] > v[best] {
			best = i
		}
	}
	return best
}
