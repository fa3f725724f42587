package eval_test

import (
	"math"
	"testing"

	"github.com/hscells/boato/eval"
)

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestMeasures(t *testing.T) {
	actual := []int{0, 0, 0, 1, 1}
	predicted := []int{0, 0, 1, 1, 0}

	// class 0: p = 2/3, r = 2/3, support 3; class 1: p = 1/2, r = 1/2, support 2.
	scores := eval.Evaluate(eval.Measures(), actual, predicted)
	want := map[string]float64{
		"accuracy":  3.0 / 5.0,
		"precision": (3*(2.0/3.0) + 2*0.5) / 5,
		"recall":    (3*(2.0/3.0) + 2*0.5) / 5,
		"f1_score":  (3*(2.0/3.0) + 2*0.5) / 5,
	}
	for name, w := range want {
		if !near(scores[name], w) {
			t.Errorf("%s: expected %v, got %v", name, w, scores[name])
		}
	}
}

func TestZeroDivision(t *testing.T) {
	actual := []int{0, 0, 1, 1}
	predicted := []int{0, 0, 0, 0}

	// class 1 is never predicted, so its precision is 0 rather than undefined.
	if p := eval.Precision.Score(actual, predicted); !near(p, 0.25) {
		t.Errorf("expected a precision of 0.25, got %v", p)
	}
	if r := eval.Recall.Score(actual, predicted); !near(r, 0.5) {
		t.Errorf("expected a recall of 0.5, got %v", r)
	}
	if f := eval.F1.Score(actual, predicted); !near(f, 0.5*(2*0.5/1.5)) {
		t.Errorf("unexpected f1 %v", f)
	}
}

func TestPerfect(t *testing.T) {
	actual := []int{1, 0, 1}
	for _, e := range eval.Measures() {
		if s := e.Score(actual, actual); s != 1 {
			t.Errorf("%s: expected 1, got %v", e.Name(), s)
		}
	}
}

func TestConfusionMatrix(t *testing.T) {
	cm := eval.NewConfusionMatrix([]int{0, 1, 1}, []int{1, 1, 2})
	if len(cm.Labels) != 3 {
		t.Fatalf("expected 3 labels, got %v", cm.Labels)
	}
	if cm.Counts[0][1] != 1 || cm.Counts[1][1] != 1 || cm.Counts[1][2] != 1 {
		t.Errorf("unexpected counts %v", cm.Counts)
	}
	if cm.Support(2) != 0 || cm.Predicted(2) != 1 {
		t.Error("unexpected support")
	}
	want := "actual\\predicted\t0\t1\t2\n0\t0\t1\t0\n1\t0\t1\t1\n2\t0\t0\t0"
	if cm.String() != want {
		t.Errorf("unexpected string\n%s", cm.String())
	}
}
