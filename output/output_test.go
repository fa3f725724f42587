package output

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hscells/boato/learning"
)

func outcomes() []learning.Outcome {
	return []learning.Outcome{
		{Classifier: "SVC", Model: "SVC(kernel='linear')", Scores: map[string]float64{"accuracy": 0.9, "precision": 0.8, "recall": 0.7, "f1_score": 0.75}},
		{Classifier: "MultinomialNB", Model: "MultinomialNB()", Scores: map[string]float64{"accuracy": 0.5, "precision": 0.5, "recall": 0.5, "f1_score": 0.5}},
	}
}

func TestNewResults(t *testing.T) {
	r := NewResults(4)
	for _, base := range []string{"Base 1", "Base 2", "Base 3", "Base 4"} {
		if _, ok := r[base]; !ok {
			t.Errorf("missing %s", base)
		}
	}
}

func TestFillAndLookup(t *testing.T) {
	r := NewResults(4)
	r.Fill("Base 2", "BOW", outcomes())
	if v, ok := r.Lookup("Base 2", "BOW", "SVC", "recall"); !ok || v != 0.7 {
		t.Errorf("expected 0.7, got %v %v", v, ok)
	}
	if _, ok := r.Lookup("Base 1", "BOW", "SVC", "recall"); ok {
		t.Error("expected a missing value for an unfilled base")
	}
	if _, ok := r.Lookup("Base 2", "BOW", "SVC", "auc"); ok {
		t.Error("expected a missing value for an unknown metric")
	}
	if r["Base 2"]["BOW"]["SVC"].Model != "SVC(kernel='linear')" {
		t.Error("model description not recorded")
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results", "results_bow.json")
	r := NewResults(4)
	r.Fill("Base 1", "BOW", outcomes())
	if err := r.Save(path); err != nil {
		t.Fatal(err)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(b), "\n    \"Base 1\": {") {
		t.Errorf("expected four space indentation:\n%s", b)
	}
	if !strings.Contains(string(b), `"model": "SVC(kernel='linear')"`) {
		t.Errorf("expected unescaped model description:\n%s", b)
	}
	var raw map[string]map[string]map[string]map[string]interface{}
	if err := json.Unmarshal(b, &raw); err != nil {
		t.Fatal(err)
	}
	if raw["Base 1"]["BOW"]["SVC"]["f1_score"] != 0.75 {
		t.Errorf("unexpected f1_score %v", raw["Base 1"]["BOW"]["SVC"]["f1_score"])
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if v, _ := loaded.Lookup("Base 1", "BOW", "MultinomialNB", "accuracy"); v != 0.5 {
		t.Errorf("expected 0.5, got %v", v)
	}
	if len(loaded.Bases()) != 4 {
		t.Errorf("expected 4 bases, got %v", loaded.Bases())
	}
}

func TestSaveClassifierOrder(t *testing.T) {
	r := NewResults(2)
	r.Fill("Base 2", "BOW", []learning.Outcome{
		{Classifier: "RandomForest"},
		{Classifier: "Perceptron"},
		{Classifier: "LogisticRegression"},
		{Classifier: "SVC"},
		{Classifier: "MultinomialNB"},
	})
	b, err := json.Marshal(r)
	if err != nil {
		t.Fatal(err)
	}
	s := string(b)

	order := []string{`"Base 1"`, `"Base 2"`, `"SVC"`, `"LogisticRegression"`, `"MultinomialNB"`, `"RandomForest"`, `"Perceptron"`}
	last := -1
	for _, key := range order {
		i := strings.Index(s, key)
		if i <= last {
			t.Fatalf("expected %s after the keys before it in %s", key, s)
		}
		last = i
	}
	if !strings.Contains(s, `"Base 1":{}`) {
		t.Errorf("expected an empty object for Base 1 in %s", s)
	}

	var loaded Results
	if err := json.Unmarshal(b, &loaded); err != nil {
		t.Fatal(err)
	}
	if len(loaded["Base 2"]["BOW"]) != 5 {
		t.Errorf("expected 5 classifiers, got %v", loaded["Base 2"]["BOW"])
	}
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "results_tfidf.json"))
	if err == nil || !strings.Contains(err.Error(), "--mode full") {
		t.Errorf("expected a hint to run the full mode, got %v", err)
	}
}

func TestCsvMeasurementFormatter(t *testing.T) {
	bow := NewResults(1)
	bow.Fill("Base 1", "BOW", outcomes())
	s, err := CsvMeasurementFormatter(map[string]Results{"BOW": bow})
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(s), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected a header and 2 rows, got:\n%s", s)
	}
	if lines[0] != "base,representation,classifier,model,accuracy,precision,recall,f1_score" {
		t.Errorf("unexpected header %s", lines[0])
	}
	if lines[1] != "Base 1,BOW,MultinomialNB,MultinomialNB(),0.5,0.5,0.5,0.5" {
		t.Errorf("unexpected row %s", lines[1])
	}
}

func TestManifest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.json")
	m := NewManifest("full", map[string]int{"seed": 42})
	m.Add("results/results_bow.json")
	if err := m.Save(path); err != nil {
		t.Fatal(err)
	}
	var loaded Manifest
	b, _ := os.ReadFile(path)
	if err := json.Unmarshal(b, &loaded); err != nil {
		t.Fatal(err)
	}
	if loaded.ID != m.ID || len(loaded.ID) != 36 || loaded.Mode != "full" || len(loaded.Files) != 1 {
		t.Errorf("unexpected manifest %+v", loaded)
	}
	if loaded.Finished.Before(loaded.Started) {
		t.Error("finished before started")
	}
}
