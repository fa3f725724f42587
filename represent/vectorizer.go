package represent

import (
	"regexp"
	"sort"

	"github.com/xtgo/set"
)

// tokenPattern matches runs of two or more word characters.
var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}_]{2,}`)

// Tokens extracts the terms counted by the vectorizers.
func Tokens(text string) []string {
	return tokenPattern.FindAllString(text, -1)
}

// Vocabulary maps each term to its column.
type Vocabulary map[string]int

// NewVocabulary assigns columns to the unique terms of the texts, in lexical order.
func NewVocabulary(texts []string) Vocabulary {
	var terms sort.StringSlice
	for _, text := range texts {
		terms = append(terms, Tokens(text)...)
	}
	sort.Sort(terms)
	n := set.Uniq(terms)

	v := make(Vocabulary, n)
	for i, term := range terms[:n] {
		v[term] = i
	}
	return v
}

// Counts is the sparse term-frequency vector of a text. Out of vocabulary terms are ignored.
func (v Vocabulary) Counts(text string) Vector {
	counts := make(map[int]float64)
	for _, term := range Tokens(text) {
		if j, ok := v[term]; ok {
			counts[j]++
		}
	}

	vec := Vector{
		Indices: make([]int, 0, len(counts)),
		Values:  make([]float64, 0, len(counts)),
	}
	for j := range counts {
		vec.Indices = append(vec.Indices, j)
	}
	sort.Ints(vec.Indices)
	for _, j := range vec.Indices {
		vec.Values = append(vec.Values, counts[j])
	}
	return vec
}

// CountMatrix counts the terms of every text.
func (v Vocabulary) CountMatrix(texts []string) Matrix {
	m := Matrix{Rows: make([]Vector, len(texts)), Cols: len(v)}
	for i, text := range texts {
		m.Rows[i] = v.Counts(text)
	}
	return m
}
