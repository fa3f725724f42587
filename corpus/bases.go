package corpus

import (
	"math/rand"

	"github.com/hscells/boato/pipeline"
	"github.com/pkg/errors"
)

// Split is the true and fake documents of a single source.
type Split struct {
	Source string
	True   []pipeline.Document
	Fake   []pipeline.Document
}

// Sample draws n documents without replacement. The same seed always draws the same documents.
func Sample(docs []pipeline.Document, n int, seed int64) ([]pipeline.Document, error) {
	if n > len(docs) {
		return nil, errors.Errorf("cannot take a sample of %d documents from %d", n, len(docs))
	}
	if n < 0 {
		return nil, errors.Errorf("invalid sample size %d", n)
	}
	perm := rand.New(rand.NewSource(seed)).Perm(len(docs))
	sample := make([]pipeline.Document, n)
	for i := 0; i < n; i++ {
		sample[i] = docs[perm[i]]
	}
	return sample, nil
}

// Bases composes the splits into nested corpora of increasing size: base i contains, in order, the true then the
// fake documents of the first i splits.
func Bases(splits []Split) []pipeline.Corpus {
	bases := make([]pipeline.Corpus, len(splits))
	var parts [][]pipeline.Document
	for i, split := range splits {
		parts = append(parts, split.True, split.Fake)
		bases[i] = pipeline.NewCorpus(pipeline.BaseName(i+1), parts...)
	}
	return bases
}
