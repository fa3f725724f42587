package learning

import (
	"context"
	"math/rand"
	"reflect"
	"testing"

	"github.com/hscells/boato/eval"
	"github.com/hscells/boato/pipeline"
	"github.com/hscells/boato/represent"
)

// separable builds n rows per class where class 1 counts feature 0 and class 0 counts feature 1, with noise in
// the remaining features.
func separable(n int, seed int64) (represent.Matrix, []int) {
	rng := rand.New(rand.NewSource(seed))
	X := represent.Matrix{Cols: 6}
	var y []int
	for i := 0; i < 2*n; i++ {
		label := i % 2
		signal := 1
		if label == 1 {
			signal = 0
		}
		noise := 2 + rng.Intn(4)
		indices := []int{signal, noise}
		if noise < signal {
			indices = []int{noise, signal}
		}
		X.Rows = append(X.Rows, represent.Vector{Indices: indices, Values: []float64{float64(1 + rng.Intn(3)), float64(1 + rng.Intn(3))}})
		y = append(y, label)
	}
	return X, y
}

func testForest() ForestOptions {
	o := DefaultForestOptions()
	o.Trees = 10
	return o
}

func classifiers() []Classifier {
	o := DefaultOptions()
	o.Forest = testForest()
	return NewClassifiers(o)
}

func TestClassifiersSeparable(t *testing.T) {
	X, y := separable(30, 1)
	XTest, yTest := separable(10, 2)
	for _, clf := range classifiers() {
		if err := clf.Fit(X, y); err != nil {
			t.Fatalf("%s: %v", clf.Name(), err)
		}
		pred, err := clf.Predict(XTest)
		if err != nil {
			t.Fatalf("%s: %v", clf.Name(), err)
		}
		if acc := eval.Accuracy.Score(yTest, pred); acc != 1 {
			t.Errorf("%s: expected perfect accuracy on separable data, got %v", clf.Name(), acc)
		}
	}
}

func TestClassifierOrderAndNames(t *testing.T) {
	want := []struct{ name, model string }{
		{"SVC", "SVC(kernel='linear')"},
		{"LogisticRegression", "LogisticRegression(max_iter=500)"},
		{"MultinomialNB", "MultinomialNB()"},
		{"RandomForest", "RandomForestClassifier(n_jobs=-1, random_state=42)"},
	}
	clfs := NewClassifiers(DefaultOptions())
	for i, w := range want {
		if clfs[i].Name() != w.name || clfs[i].String() != w.model {
			t.Errorf("%d: expected %s %s, got %s %s", i, w.name, w.model, clfs[i].Name(), clfs[i].String())
		}
	}
}

func TestPredictBeforeFit(t *testing.T) {
	X, _ := separable(2, 1)
	for _, clf := range classifiers() {
		if _, err := clf.Predict(X); err == nil {
			t.Errorf("%s: expected an error predicting before fitting", clf.Name())
		}
	}
}

func TestFitSingleClass(t *testing.T) {
	X, _ := separable(2, 1)
	y := make([]int, X.Len())
	for _, clf := range classifiers() {
		if err := clf.Fit(X, y); err == nil {
			t.Errorf("%s: expected an error fitting one class", clf.Name())
		}
	}
}

func TestMultinomialNBNegative(t *testing.T) {
	X := represent.Matrix{Rows: []represent.Vector{represent.DenseVector([]float64{1, -1}), represent.DenseVector([]float64{0, 1})}, Cols: 2}
	if err := NewMultinomialNB(DefaultBayesOptions()).Fit(X, []int{0, 1}); err == nil {
		t.Error("expected an error for negative features")
	}
}

func TestMultinomialNBProbabilities(t *testing.T) {
	X := represent.Matrix{Rows: []represent.Vector{
		represent.DenseVector([]float64{2, 0}),
		represent.DenseVector([]float64{0, 1}),
	}, Cols: 2}
	nb := NewMultinomialNB(DefaultBayesOptions())
	if err := nb.Fit(X, []int{0, 1}); err != nil {
		t.Fatal(err)
	}
	jll, err := nb.JointLogLikelihood(represent.Matrix{Rows: []represent.Vector{represent.DenseVector([]float64{1, 0})}, Cols: 2})
	if err != nil {
		t.Fatal(err)
	}
	// class 0: prior 1/2, p(f0) = 3/4; class 1: prior 1/2, p(f0) = 1/3.
	if jll[0][0] <= jll[0][1] {
		t.Errorf("expected class 0 to be more likely: %v", jll[0])
	}
}

func TestMultiClass(t *testing.T) {
	X := represent.Matrix{Cols: 3}
	var y []int
	for i := 0; i < 30; i++ {
		c := i % 3
		X.Rows = append(X.Rows, represent.Vector{Indices: []int{c}, Values: []float64{float64(1 + i%2)}})
		y = append(y, c*10)
	}
	for _, clf := range classifiers() {
		if err := clf.Fit(X, y); err != nil {
			t.Fatalf("%s: %v", clf.Name(), err)
		}
		pred, err := clf.Predict(X)
		if err != nil {
			t.Fatal(err)
		}
		if acc := eval.Accuracy.Score(y, pred); acc != 1 {
			t.Errorf("%s: expected perfect accuracy, got %v (%v)", clf.Name(), acc, pred)
		}
	}
}

func TestForestDeterministic(t *testing.T) {
	X, y := separable(20, 3)
	a, b := NewRandomForest(testForest()), NewRandomForest(testForest())
	if err := a.Fit(X, y); err != nil {
		t.Fatal(err)
	}
	if err := b.Fit(X, y); err != nil {
		t.Fatal(err)
	}
	pa, _ := a.Probability(X)
	pb, _ := b.Probability(X)
	for i := range pa {
		for c := range pa[i] {
			if pa[i][c] != pb[i][c] {
				t.Fatal("forests trained with the same seed differ")
			}
		}
	}
}

func TestTreeSplitsOnZeros(t *testing.T) {
	// only the presence of feature 1 separates the classes.
	X := represent.Matrix{Rows: []represent.Vector{
		{Indices: []int{0}, Values: []float64{1}},
		{Indices: []int{0, 1}, Values: []float64{1, 3}},
		{Indices: []int{0}, Values: []float64{1}},
		{Indices: []int{0, 1}, Values: []float64{1, 2}},
	}, Cols: 2}
	y := []int{0, 1, 0, 1}
	tree := &DecisionTree{Options: TreeOptions{MaxFeatures: 2}}
	tree.fit(X, y, []int{0, 1, 2, 3}, 2, rand.New(rand.NewSource(1)))
	if tree.Depth() != 1 {
		t.Errorf("expected a single split, got depth %d", tree.Depth())
	}
	if root := tree.nodes[0]; root.feature != 1 || root.threshold != 1 {
		t.Errorf("expected a split on feature 1 at 1, got %d at %v", root.feature, root.threshold)
	}
	for i, row := range X.Rows {
		if d := tree.distribution(row); d[y[i]] != 1 {
			t.Errorf("row %d: unexpected distribution %v", i, d)
		}
	}
}

func TestStratifiedSplit(t *testing.T) {
	y := make([]int, 0, 15)
	for i := 0; i < 10; i++ {
		y = append(y, 0)
	}
	for i := 0; i < 5; i++ {
		y = append(y, 1)
	}
	train, test, err := StratifiedSplit(y, 0.2, 52)
	if err != nil {
		t.Fatal(err)
	}
	if len(train)+len(test) != len(y) {
		t.Fatalf("rows lost: %d + %d", len(train), len(test))
	}
	counts := map[int]int{}
	for _, i := range test {
		counts[y[i]]++
	}
	if counts[0] != 2 || counts[1] != 1 {
		t.Errorf("expected 2 and 1 held out rows, got %v", counts)
	}
	seen := map[int]bool{}
	for _, i := range append(append([]int{}, train...), test...) {
		if seen[i] {
			t.Errorf("row %d appears twice", i)
		}
		seen[i] = true
	}

	train2, test2, _ := StratifiedSplit(y, 0.2, 52)
	for i := range test {
		if test[i] != test2[i] {
			t.Fatal("split is not deterministic")
		}
	}
	if len(train2) != len(train) {
		t.Fatal("split is not deterministic")
	}
}

func TestStratifiedSplitRoundsUpTestRows(t *testing.T) {
	y := []int{0, 0, 0, 0, 0, 1, 1, 1, 1, 1}
	train, test, err := StratifiedSplit(y, 0.25, 52)
	if err != nil {
		t.Fatal(err)
	}
	if len(test) != 3 || len(train) != 7 {
		t.Fatalf("expected 7 training and 3 testing rows, got %d and %d", len(train), len(test))
	}
	counts := map[int]int{}
	for _, i := range test {
		counts[y[i]]++
	}
	if counts[0] < 1 || counts[1] < 1 {
		t.Errorf("expected both classes held out, got %v", counts)
	}
}

func TestApportion(t *testing.T) {
	tests := []struct {
		counts []int
		k      int
		want   []int
	}{
		{[]int{10, 5}, 12, []int{8, 4}},
		{[]int{7, 3}, 8, []int{6, 2}},
		{[]int{5, 5}, 7, []int{4, 3}},
		{[]int{1, 1, 8}, 5, []int{1, 0, 4}},
	}
	for _, tt := range tests {
		got := apportion(tt.counts, tt.k)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("apportion(%v, %d): expected %v, got %v", tt.counts, tt.k, tt.want, got)
		}
	}
}

func TestStratifiedSplitErrors(t *testing.T) {
	if _, _, err := StratifiedSplit([]int{1, 1, 1}, 0.2, 52); err == nil {
		t.Error("expected an error for a single class")
	}
	if _, _, err := StratifiedSplit([]int{0, 0, 0, 1}, 0.2, 52); err == nil {
		t.Error("expected an error for a class with a single row")
	}
	if _, _, err := StratifiedSplit([]int{0, 1}, 1.5, 52); err == nil {
		t.Error("expected an error for an invalid test size")
	}
}

func TestRun(t *testing.T) {
	var trueDocs, fakeDocs []pipeline.Document
	for i := 0; i < 20; i++ {
		trueDocs = append(trueDocs, pipeline.NewDocument("governo anuncia investimento saude", pipeline.True))
		fakeDocs = append(fakeDocs, pipeline.NewDocument("urgente compartilhe vacina chip", pipeline.Fake))
	}
	base := pipeline.NewCorpus(pipeline.BaseName(1), trueDocs, fakeDocs)

	outcomes, err := Run(context.Background(), represent.TFIDF{}, base, classifiers(), eval.Measures(), DefaultSplitOptions())
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"SVC", "LogisticRegression", "MultinomialNB", "RandomForest"}
	if len(outcomes) != len(want) {
		t.Fatalf("expected %d outcomes, got %d", len(want), len(outcomes))
	}
	for i, o := range outcomes {
		if o.Classifier != want[i] {
			t.Errorf("expected %s, got %s", want[i], o.Classifier)
		}
		for _, name := range []string{"accuracy", "precision", "recall", "f1_score"} {
			if o.Scores[name] != 1 {
				t.Errorf("%s: expected %s of 1, got %v", o.Classifier, name, o.Scores[name])
			}
		}
	}
}
