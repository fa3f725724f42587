// Package output persists and summarises the results of an experiment.
package output

import (
	"bytes"
	"encoding/csv"
	"sort"
	"strconv"
)

// CsvMeasurementFormatter flattens results, keyed by representation, into one CSV row per base, representation and
// classifier. Rows are sorted by base, then representation, then classifier.
func CsvMeasurementFormatter(results map[string]Results) (string, error) {
	type row struct {
		base, rep, clf string
		s              Scores
	}
	var rows []row
	for _, r := range results {
		for base, reps := range r {
			for rep, clfs := range reps {
				for clf, s := range clfs {
					rows = append(rows, row{base, rep, clf, s})
				}
			}
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].base != rows[j].base {
			return rows[i].base < rows[j].base
		}
		if rows[i].rep != rows[j].rep {
			return rows[i].rep < rows[j].rep
		}
		return rows[i].clf < rows[j].clf
	})

	b := bytes.NewBufferString("")
	w := csv.NewWriter(b)
	h := []string{"base", "representation", "classifier"}
	h = append(h, "model", "accuracy", "precision", "recall", "f1_score")
	if err := w.Write(h); err != nil {
		return "", err
	}
	for _, r := range rows {
		record := []string{
			r.base, r.rep, r.clf, r.s.Model,
			strconv.FormatFloat(r.s.Accuracy, 'f', -1, 64),
			strconv.FormatFloat(r.s.Precision, 'f', -1, 64),
			strconv.FormatFloat(r.s.Recall, 'f', -1, 64),
			strconv.FormatFloat(r.s.F1, 'f', -1, 64),
		}
		if err := w.Write(record); err != nil {
			return "", err
		}
	}
	w.Flush()
	return b.String(), w.Error()
}
