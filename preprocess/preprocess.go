// Package preprocess handles the normalisation of news text before it is represented as vectors.
package preprocess

import (
	"strings"
	"unicode"

	"github.com/bbalet/stopwords"
	"github.com/hscells/go-unidecode"
)

// TokenProcessor is applied to the tokens of a document, in order, after tokenisation.
type TokenProcessor func(tokens []string) []string

// Lowercase transforms all capital letters to lowercase.
func Lowercase(tokens []string) []string {
	for i, token := range tokens {
		tokens[i] = strings.ToLower(token)
	}
	return tokens
}

// AlphaNum removes all tokens containing a character that is neither a letter nor a digit.
func AlphaNum(tokens []string) []string {
	kept := tokens[:0]
	for _, token := range tokens {
		if isAlphaNum(token) {
			kept = append(kept, token)
		}
	}
	return kept
}

func isAlphaNum(token string) bool {
	if len(token) == 0 {
		return false
	}
	for _, r := range token {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// Stopwords removes the stop words of the language (a BCP 47 or ISO 639-1 code) from the tokens. Portuguese uses the
// NLTK list rather than the one bundled with the stopwords package.
func Stopwords(language string) TokenProcessor {
	return func(tokens []string) []string {
		if len(tokens) == 0 {
			return tokens
		}
		return strings.Fields(stopwords.CleanString(strings.Join(tokens, " "), language, false))
	}
}

// FoldAccents replaces accented characters with their closest ASCII representation.
func FoldAccents(tokens []string) []string {
	for i, token := range tokens {
		tokens[i] = unidecode.Unidecode(token)
	}
	return tokens
}

// Stem reduces each token with the stemmer.
func Stem(stemmer Stemmer) TokenProcessor {
	return func(tokens []string) []string {
		for i, token := range tokens {
			tokens[i] = stemmer.Stem(token)
		}
		return tokens
	}
}
