package preprocess

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Options configures a Preprocessor.
type Options struct {
	// Tokeniser is either "punkt" or "prose".
	Tokeniser string `toml:"tokeniser"`
	// Stemmer is one of "none", "portuguese" or "porter".
	Stemmer string `toml:"stemmer"`
	// Language is the language code used to select stop words.
	Language string `toml:"language"`
	// FoldAccents replaces accented characters after stop words are removed.
	FoldAccents bool `toml:"fold_accents"`
	// StemCacheSize is the number of stems kept in memory.
	StemCacheSize int `toml:"stem_cache_size"`
}

// DefaultOptions are the options every corpus is preprocessed with unless configured otherwise.
func DefaultOptions() Options {
	return Options{
		Tokeniser:     PunktTokeniser,
		Stemmer:       NoStemmer,
		Language:      "pt",
		StemCacheSize: 1 << 16,
	}
}

// Key uniquely identifies the output of a preprocessor built from these options.
func (o Options) Key() string {
	return fmt.Sprintf("%s_%s_%s_%t", o.Tokeniser, o.Stemmer, o.Language, o.FoldAccents)
}

// Preprocessor applies the fixed text preprocessing step to news texts: markup is removed, the text is tokenised,
// lowercased, stripped of non-alphanumeric tokens and stop words, then stemmed.
type Preprocessor struct {
	options    Options
	tokeniser  Tokeniser
	processors []TokenProcessor
}

// New creates a new preprocessor.
func New(options Options) (*Preprocessor, error) {
	tokeniser, err := NewTokeniser(options.Tokeniser)
	if err != nil {
		return nil, err
	}

	stemmer, err := NewStemmer(options.Stemmer)
	if err != nil {
		return nil, err
	}
	if options.StemCacheSize > 0 {
		stemmer, err = NewCachedStemmer(stemmer, options.StemCacheSize)
		if err != nil {
			return nil, err
		}
	}

	if len(options.Language) == 0 {
		options.Language = "pt"
	}

	processors := []TokenProcessor{Lowercase, AlphaNum, Stopwords(options.Language)}
	if options.FoldAccents {
		processors = append(processors, FoldAccents)
	}
	processors = append(processors, Stem(stemmer))

	return &Preprocessor{
		options:    options,
		tokeniser:  tokeniser,
		processors: processors,
	}, nil
}

// Key identifies the configuration of the preprocessor.
func (p *Preprocessor) Key() string {
	return p.options.Key()
}

// Text preprocesses a single text and returns its tokens joined by single spaces.
func (p *Preprocessor) Text(text string) (string, error) {
	text, err := StripHTML(text)
	if err != nil {
		return "", errors.Wrap(err, "stripping markup")
	}
	tokens, err := p.tokeniser.Tokenise(text)
	if err != nil {
		return "", errors.Wrap(err, "tokenising")
	}
	for _, process := range p.processors {
		tokens = process(tokens)
	}
	return strings.Join(tokens, " "), nil
}
