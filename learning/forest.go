package learning

import (
	"fmt"
	"log"
	"math"
	"math/rand"
	"runtime"

	"github.com/hscells/boato/represent"
	"golang.org/x/sync/errgroup"
)

// ForestOptions are the parameters of the random forest.
type ForestOptions struct {
	Trees int   `toml:"trees"`
	Seed  int64 `toml:"seed"`
	// Jobs is the number of trees trained at once. Values below one use every CPU.
	Jobs int `toml:"jobs"`
	TreeOptions
}

// DefaultForestOptions are 100 fully grown trees with seed 42, trained on every CPU.
func DefaultForestOptions() ForestOptions {
	return ForestOptions{Trees: 100, Seed: 42, Jobs: -1, TreeOptions: TreeOptions{MinSamplesSplit: 2}}
}

// RandomForest is an ensemble of decision trees, each grown on a bootstrap sample of the rows. Predictions average
// the class distributions of the leaves the row falls into.
type RandomForest struct {
	Options ForestOptions

	classes []int
	trees   []*DecisionTree
}

// NewRandomForest creates a random forest classifier.
func NewRandomForest(options ForestOptions) *RandomForest {
	return &RandomForest{Options: options}
}

func (f *RandomForest) Name() string {
	return "RandomForest"
}

func (f *RandomForest) String() string {
	return fmt.Sprintf("RandomForestClassifier(n_jobs=%d, random_state=%d)", f.Options.Jobs, f.Options.Seed)
}

func sqrtFeatures(cols int) int {
	m := int(math.Sqrt(float64(cols)))
	if m < 1 {
		return 1
	}
	return m
}

func (f *RandomForest) Fit(X represent.Matrix, y []int) error {
	if err := checkFit(X, y); err != nil {
		return err
	}
	f.classes = classes(y)
	e := encode(y, f.classes)
	n := X.Len()

	jobs := f.Options.Jobs
	if jobs < 1 {
		jobs = runtime.NumCPU()
	}
	trees := make([]*DecisionTree, f.Options.Trees)
	var g errgroup.Group
	g.SetLimit(jobs)
	for i := range trees {
		i := i
		g.Go(func() error {
			rng := rand.New(rand.NewSource(f.Options.Seed + int64(i)))
			rows := make([]int, n)
			for j := range rows {
				rows[j] = rng.Intn(n)
			}
			tree := &DecisionTree{Options: f.Options.TreeOptions}
			tree.fit(X, e, rows, len(f.classes), rng)
			trees[i] = tree
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	f.trees = trees

	depth := 0
	for _, tree := range trees {
		if d := tree.Depth(); d > depth {
			depth = d
		}
	}
	log.Printf("grew %d trees on %d rows (max depth %d)\n", len(trees), n, depth)
	return nil
}

// Probability averages the leaf class distributions of every tree, with one column per class in sorted order.
func (f *RandomForest) Probability(X represent.Matrix) ([][]float64, error) {
	if f.trees == nil {
		return nil, errNotFit
	}
	p := make([][]float64, X.Len())
	for i, row := range X.Rows {
		p[i] = make([]float64, len(f.classes))
		for _, tree := range f.trees {
			for c, v := range tree.distribution(row) {
				p[i][c] += v
			}
		}
		for c := range p[i] {
			p[i][c] /= float64(len(f.trees))
		}
	}
	return p, nil
}

func (f *RandomForest) Predict(X represent.Matrix) ([]int, error) {
	p, err := f.Probability(X)
	if err != nil {
		return nil, err
	}
	pred := make([]int, len(p))
	for i := range p {
		pred[i] = f.classes[argmax(p[i])]
	}
	return pred, nil
}
