package output

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"

	"github.com/hscells/boato/learning"
	"github.com/hscells/boato/pipeline"
	"github.com/pkg/errors"
)

// Scores are the measurements of one classifier, along with a description of the model.
type Scores struct {
	Model     string  `json:"model"`
	Accuracy  float64 `json:"accuracy"`
	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
	F1        float64 `json:"f1_score"`
}

// Metrics are the measurement names that can be looked up in Scores, in the order they are plotted.
func Metrics() []string {
	return []string{"f1_score", "accuracy", "precision", "recall"}
}

// Get looks a measurement up by name.
func (s Scores) Get(metric string) (float64, bool) {
	switch metric {
	case "accuracy":
		return s.Accuracy, true
	case "precision":
		return s.Precision, true
	case "recall":
		return s.Recall, true
	case "f1_score":
		return s.F1, true
	}
	return 0, false
}

// Results are the scores of one representation, nested as base, representation, then classifier.
type Results map[string]map[string]map[string]Scores

// NewResults creates results with an empty entry for each of the bases.
func NewResults(bases int) Results {
	r := make(Results, bases)
	for i := 1; i <= bases; i++ {
		r[pipeline.BaseName(i)] = make(map[string]map[string]Scores)
	}
	return r
}

// Fill records the outcomes of a representation on a base, replacing any earlier outcomes.
func (r Results) Fill(base, representation string, outcomes []learning.Outcome) {
	if _, ok := r[base]; !ok {
		r[base] = make(map[string]map[string]Scores)
	}
	m := make(map[string]Scores, len(outcomes))
	for _, o := range outcomes {
		m[o.Classifier] = Scores{
			Model:     o.Model,
			Accuracy:  o.Scores["accuracy"],
			Precision: o.Scores["precision"],
			Recall:    o.Scores["recall"],
			F1:        o.Scores["f1_score"],
		}
	}
	r[base][representation] = m
}

// Lookup returns a measurement, or false when the base, representation, classifier or metric is missing.
func (r Results) Lookup(base, representation, classifier, metric string) (float64, bool) {
	s, ok := r[base][representation][classifier]
	if !ok {
		return 0, false
	}
	return s.Get(metric)
}

// Bases are the base names in sorted order.
func (r Results) Bases() []string {
	bases := make([]string, 0, len(r))
	for base := range r {
		bases = append(bases, base)
	}
	sort.Strings(bases)
	return bases
}

// classifiers orders the classifiers of a representation as they are run, followed by any others by name.
func classifiers(clfs map[string]Scores) []string {
	names := make([]string, 0, len(clfs))
	for _, name := range learning.ClassifierNames() {
		if _, ok := clfs[name]; ok {
			names = append(names, name)
		}
	}
	var rest []string
	for name := range clfs {
		if !contains(names, name) {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	return append(names, rest...)
}

func contains(s []string, v string) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}

// MarshalJSON writes bases and representations by name and classifiers in the order they are run.
func (r Results) MarshalJSON() ([]byte, error) {
	var b bytes.Buffer
	b.WriteByte('{')
	for i, base := range r.Bases() {
		if i > 0 {
			b.WriteByte(',')
		}
		if err := writeKey(&b, base); err != nil {
			return nil, err
		}
		reps := make([]string, 0, len(r[base]))
		for rep := range r[base] {
			reps = append(reps, rep)
		}
		sort.Strings(reps)

		b.WriteByte('{')
		for j, rep := range reps {
			if j > 0 {
				b.WriteByte(',')
			}
			if err := writeKey(&b, rep); err != nil {
				return nil, err
			}
			b.WriteByte('{')
			for k, clf := range classifiers(r[base][rep]) {
				if k > 0 {
					b.WriteByte(',')
				}
				if err := writeKey(&b, clf); err != nil {
					return nil, err
				}
				if err := encode(&b, r[base][rep][clf]); err != nil {
					return nil, err
				}
			}
			b.WriteByte('}')
		}
		b.WriteByte('}')
	}
	b.WriteByte('}')
	return b.Bytes(), nil
}

func writeKey(b *bytes.Buffer, key string) error {
	if err := encode(b, key); err != nil {
		return err
	}
	b.WriteByte(':')
	return nil
}

// encode appends v to b as JSON without escaping HTML characters.
func encode(b *bytes.Buffer, v interface{}) error {
	var e bytes.Buffer
	enc := json.NewEncoder(&e)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return err
	}
	b.Write(bytes.TrimRight(e.Bytes(), "\n"))
	return nil
}

// Save writes the results as indented JSON, creating the parent directory when needed.
func (r Results) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0777); err != nil {
		return err
	}
	var b bytes.Buffer
	enc := json.NewEncoder(&b)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(r); err != nil {
		return err
	}
	return os.WriteFile(path, b.Bytes(), 0644)
}

// Load reads results written by Save.
func Load(path string) (Results, error) {
	b, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.Errorf("%s not found; run with --mode full first", path)
	} else if err != nil {
		return nil, err
	}
	var r Results
	if err := json.Unmarshal(b, &r); err != nil {
		return nil, errors.Wrapf(err, "parsing %s", path)
	}
	return r, nil
}
