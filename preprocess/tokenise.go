package preprocess

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/dan-locke/clean-html"
	"github.com/jdkato/prose/v2"
	"github.com/pkg/errors"
	"gopkg.in/neurosnap/sentences.v1"
)

// Tokeniser splits text into word tokens.
type Tokeniser interface {
	Tokenise(text string) ([]string, error)
}

// TokeniserFunc adapts a function into a Tokeniser.
type TokeniserFunc func(text string) ([]string, error)

// Tokenise calls f(text).
func (f TokeniserFunc) Tokenise(text string) ([]string, error) {
	return f(text)
}

const (
	// PunktTokeniser names the Punkt word tokeniser.
	PunktTokeniser = "punkt"
	// ProseTokeniser names the prose tokeniser.
	ProseTokeniser = "prose"
)

// NewTokeniser creates the tokeniser with the given name.
func NewTokeniser(name string) (Tokeniser, error) {
	switch name {
	case PunktTokeniser, "":
		return NewPunktTokeniser(), nil
	case ProseTokeniser:
		return NewProseTokeniser(), nil
	}
	return nil, errors.Errorf("unknown tokeniser %q", name)
}

// NewPunktTokeniser creates a tokeniser using the Punkt word tokeniser. Punctuation attached to either end of a
// token (e.g. a sentence-final period) is split off.
func NewPunktTokeniser() Tokeniser {
	punkt := sentences.NewWordTokenizer(sentences.NewPunctStrings())
	return TokeniserFunc(func(text string) ([]string, error) {
		var tokens []string
		for _, token := range punkt.Tokenize(text, false) {
			tok := strings.TrimFunc(token.Tok, func(r rune) bool {
				return !unicode.IsLetter(r) && !unicode.IsDigit(r)
			})
			if len(tok) > 0 {
				tokens = append(tokens, tok)
			}
		}
		return tokens, nil
	})
}

// NewProseTokeniser creates a tokeniser using the prose iterative tokeniser.
func NewProseTokeniser() Tokeniser {
	return TokeniserFunc(func(text string) ([]string, error) {
		doc, err := prose.NewDocument(text, prose.WithTagging(false), prose.WithExtraction(false), prose.WithSegmentation(false))
		if err != nil {
			return nil, err
		}
		toks := doc.Tokens()
		tokens := make([]string, len(toks))
		for i, tok := range toks {
			tokens[i] = tok.Text
		}
		return tokens, nil
	})
}

// tag matches a complete markup tag, comment or declaration.
var tag = regexp.MustCompile(`<[a-zA-Z/!][^<>]*>`)

// StripHTML removes markup from the text, keeping only the text portions separated by spaces. A '<' that does not
// open a complete tag is kept as text.
func StripHTML(text string) (string, error) {
	tags := tag.FindAllStringIndex(text, -1)
	if len(tags) == 0 {
		return text, nil
	}

	// Blank out stray '<' so the tokeniser does not read the rest of the text as an unterminated tag. Offsets are
	// unchanged, so portions still index into text.
	masked := []byte(text)
	next := 0
	for i, c := range masked {
		for next < len(tags) && tags[next][1] <= i {
			next++
		}
		if c == '<' && (next == len(tags) || tags[next][0] != i) {
			masked[i] = ' '
		}
	}

	portions, err := clean_html.TextPos(masked)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	for i := range portions.Positions {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(text[portions.Positions[i][0]:portions.Positions[i][1]])
	}
	return b.String(), nil
}
