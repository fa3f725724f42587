package plot

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/hscells/boato/learning"
	"github.com/hscells/boato/output"
	"github.com/hscells/boato/represent"
)

func fixtures() []Representation {
	var reps []Representation
	for i, key := range represent.Keys() {
		r := output.NewResults(4)
		var outcomes []learning.Outcome
		for j, clf := range Classifiers() {
			v := 0.6 + 0.05*float64(i) + 0.05*float64(j)
			outcomes = append(outcomes, learning.Outcome{Classifier: clf, Model: clf, Scores: map[string]float64{
				"accuracy": v, "precision": v, "recall": v, "f1_score": v,
			}})
		}
		r.Fill("Base 1", key, outcomes)
		r.Fill("Base 3", key, outcomes)
		reps = append(reps, Representation{Key: key, Results: r})
	}
	return reps
}

func TestHeatmapGrid(t *testing.T) {
	g := heatmapGrid(fixtures(), "f1_score", 4)
	c, r := g.Dims()
	if c != 4 || r != 12 {
		t.Fatalf("expected a 4x12 grid, got %dx%d", c, r)
	}
	if g.rows[0] != "LogisticRegression_BoW" || g.rows[11] != "SVC_Word2Vec" {
		t.Errorf("rows are not sorted by label: %v", g.rows)
	}
	if g.cols[0] != "Base 1" || g.cols[3] != "Base 4" {
		t.Errorf("unexpected columns %v", g.cols)
	}
	// LogisticRegression is the second classifier and BoW the first representation.
	if math.Abs(g.values[0][0]-0.65) > 1e-12 {
		t.Errorf("expected 0.65, got %v", g.values[0][0])
	}
	if g.values[0][1] != 0 {
		t.Errorf("expected missing scores to be 0, got %v", g.values[0][1])
	}
	// the first row is drawn at the top.
	if g.Z(0, r-1) != g.values[0][0] {
		t.Error("first row is not at the top of the grid")
	}
}

func TestHeatmap(t *testing.T) {
	dir := t.TempDir()
	path, err := Heatmap(fixtures(), "accuracy", dir, 4)
	if err != nil {
		t.Fatal(err)
	}
	if path != filepath.Join(dir, "heatmap_vertical_accuracy.png") {
		t.Errorf("unexpected path %s", path)
	}
	if info, err := os.Stat(path); err != nil || info.Size() == 0 {
		t.Errorf("expected a png at %s: %v", path, err)
	}
}

func TestHeatmapConstant(t *testing.T) {
	reps := []Representation{{Key: represent.BOWKey, Results: output.NewResults(4)}}
	if _, err := Heatmap(reps, "recall", t.TempDir(), 4); err != nil {
		t.Fatal(err)
	}
}

func TestRadar(t *testing.T) {
	dir := t.TempDir()
	paths, err := Radar(fixtures(), "f1_score", dir, 4)
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) != 4 {
		t.Fatalf("expected 4 charts, got %d", len(paths))
	}
	if paths[1] != filepath.Join(dir, "radar_f1_score_Base_2.png") {
		t.Errorf("unexpected path %s", paths[1])
	}
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			t.Error(err)
		}
	}
}

func TestRadarInvalidMetric(t *testing.T) {
	if _, err := Radar(fixtures(), "auc", t.TempDir(), 4); err == nil {
		t.Error("expected an error for an invalid metric")
	}
}

func TestRadius(t *testing.T) {
	if radius(0.3) != 0 {
		t.Error("expected scores below the range to sit at the centre")
	}
	if math.Abs(radius(1.05)-1) > 1e-12 {
		t.Error("expected the top of the range at radius 1")
	}
	xy := polar(1, spoke(1, 4))
	if math.Abs(xy.X) > 1e-12 || math.Abs(xy.Y-1) > 1e-12 {
		t.Errorf("expected the second spoke to point north, got %v", xy)
	}
}
