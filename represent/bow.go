package represent

import (
	"context"

	"github.com/pkg/errors"
)

// BOW is a bag of words: the raw count of each vocabulary term.
type BOW struct{}

// Name of the representation.
func (BOW) Name() string {
	return BOWKey
}

// Represent fits a vocabulary to the texts and counts their terms.
func (BOW) Represent(ctx context.Context, texts []string) (Matrix, error) {
	v := NewVocabulary(texts)
	if len(v) == 0 {
		return Matrix{}, errors.New("empty vocabulary; perhaps the documents only contain stop words")
	}
	return v.CountMatrix(texts), ctx.Err()
}
