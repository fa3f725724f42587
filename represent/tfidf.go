package represent

import (
	"context"
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
)

// TFIDF weights term counts by their smoothed inverse document frequency, then normalises each row to unit length.
type TFIDF struct{}

// Name of the representation.
func (TFIDF) Name() string {
	return TFIDFKey
}

// IDF computes ln((1+n)/(1+df))+1 for every column of a count matrix.
func IDF(counts Matrix) []float64 {
	df := make([]float64, counts.Cols)
	for _, row := range counts.Rows {
		for _, j := range row.Indices {
			df[j]++
		}
	}
	n := float64(counts.Len())
	idf := make([]float64, counts.Cols)
	for j := range idf {
		idf[j] = math.Log((1+n)/(1+df[j])) + 1
	}
	return idf
}

// Represent fits a vocabulary and document frequencies to the texts.
func (TFIDF) Represent(ctx context.Context, texts []string) (Matrix, error) {
	v := NewVocabulary(texts)
	if len(v) == 0 {
		return Matrix{}, errors.New("empty vocabulary; perhaps the documents only contain stop words")
	}
	m := v.CountMatrix(texts)
	idf := IDF(m)
	for _, row := range m.Rows {
		for k, j := range row.Indices {
			row.Values[k] *= idf[j]
		}
		if norm := floats.Norm(row.Values, 2); norm > 0 {
			floats.Scale(1/norm, row.Values)
		}
	}
	return m, ctx.Err()
}
