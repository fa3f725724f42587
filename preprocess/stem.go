package preprocess

import (
	"github.com/blevesearch/snowballstem"
	"github.com/blevesearch/snowballstem/portuguese"
	"github.com/hashicorp/golang-lru"
	"github.com/pkg/errors"
	"github.com/reiver/go-porterstemmer"
)

const (
	// NoStemmer leaves tokens untouched.
	NoStemmer = "none"
	// PortugueseStemmer names the Snowball Portuguese stemmer.
	PortugueseStemmer = "portuguese"
	// PorterStemmer names the (English) Porter stemmer.
	PorterStemmer = "porter"
)

// Stemmer reduces a word to its stem.
type Stemmer interface {
	Stem(word string) string
}

// StemmerFunc adapts a function into a Stemmer.
type StemmerFunc func(word string) string

// Stem calls f(word).
func (f StemmerFunc) Stem(word string) string {
	return f(word)
}

// NewStemmer creates the stemmer with the given name.
func NewStemmer(name string) (Stemmer, error) {
	switch name {
	case NoStemmer, "":
		return StemmerFunc(func(word string) string { return word }), nil
	case PortugueseStemmer:
		return StemmerFunc(func(word string) string {
			env := snowballstem.NewEnv(word)
			portuguese.Stem(env)
			return env.Current()
		}), nil
	case PorterStemmer:
		return StemmerFunc(porterstemmer.StemString), nil
	}
	return nil, errors.Errorf("unknown stemmer %q", name)
}

// lruStemmer memoises the stems of the most recently seen words.
type lruStemmer struct {
	stemmer Stemmer
	cache   *lru.Cache
}

// NewCachedStemmer wraps a stemmer with an LRU cache holding up to size words.
func NewCachedStemmer(stemmer Stemmer, size int) (Stemmer, error) {
	cache, err := lru.New(size)
	if err != nil {
		return nil, err
	}
	return lruStemmer{stemmer: stemmer, cache: cache}, nil
}

func (s lruStemmer) Stem(word string) string {
	if v, ok := s.cache.Get(word); ok {
		return v.(string)
	}
	stem := s.stemmer.Stem(word)
	s.cache.Add(word, stem)
	return stem
}
