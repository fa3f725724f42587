// Package represent encodes the texts of a corpus as numeric feature matrices.
package represent

import (
	"sort"
)

// Vector is a sparse row. Indices are sorted in increasing order and Values holds the value at each index.
type Vector struct {
	Indices []int
	Values  []float64
}

// DenseVector creates a vector that stores every value, including zeros.
func DenseVector(values []float64) Vector {
	indices := make([]int, len(values))
	for i := range indices {
		indices[i] = i
	}
	return Vector{Indices: indices, Values: values}
}

// At returns the value at column j.
func (v Vector) At(j int) float64 {
	i := sort.SearchInts(v.Indices, j)
	if i < len(v.Indices) && v.Indices[i] == j {
		return v.Values[i]
	}
	return 0
}

// Dot computes the dot product with a dense weight vector.
func (v Vector) Dot(w []float64) float64 {
	var s float64
	for i, j := range v.Indices {
		s += v.Values[i] * w[j]
	}
	return s
}

// AddScaled adds alpha times the vector to the dense vector dst.
func (v Vector) AddScaled(dst []float64, alpha float64) {
	for i, j := range v.Indices {
		dst[j] += alpha * v.Values[i]
	}
}

// SquaredNorm is the sum of the squared values.
func (v Vector) SquaredNorm() float64 {
	var s float64
	for _, x := range v.Values {
		s += x * x
	}
	return s
}

// Matrix is a row-sparse matrix of Cols columns.
type Matrix struct {
	Rows []Vector
	Cols int
}

// Len is the number of rows.
func (m Matrix) Len() int {
	return len(m.Rows)
}

// Subset selects rows by index, in the order given. Rows are shared with the original matrix.
func (m Matrix) Subset(rows []int) Matrix {
	s := Matrix{Rows: make([]Vector, len(rows)), Cols: m.Cols}
	for i, r := range rows {
		s.Rows[i] = m.Rows[r]
	}
	return s
}
