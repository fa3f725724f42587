package represent

import (
	"context"

	"github.com/pkg/errors"
)

const (
	// BOWKey names the bag of words representation in results.
	BOWKey = "BOW"
	// TFIDFKey names the tf-idf representation in results.
	TFIDFKey = "TFIDF"
	// Word2VecKey names the word2vec representation in results.
	Word2VecKey = "Word2Vec"
)

// Representation turns a list of preprocessed texts into one row of features per text.
type Representation interface {
	Name() string
	Represent(ctx context.Context, texts []string) (Matrix, error)
}

// New creates a representation from its result key.
func New(name string, options Word2VecOptions) (Representation, error) {
	switch name {
	case BOWKey:
		return BOW{}, nil
	case TFIDFKey:
		return TFIDF{}, nil
	case Word2VecKey:
		return NewWord2Vec(options), nil
	}
	return nil, errors.Errorf("unknown representation %s", name)
}

// Keys of every representation, in the order they are run.
func Keys() []string {
	return []string{BOWKey, TFIDFKey, Word2VecKey}
}
