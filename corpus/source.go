// Package corpus provides sources for loading the fake news corpora and composing them into nested bases.
package corpus

import (
	"github.com/hscells/boato/pipeline"
)

// Processor normalises the raw text of a document before it is stored in a corpus.
type Processor interface {
	// Text preprocesses a single raw text.
	Text(text string) (string, error)
	// Key identifies the configuration of the processor, so cached corpora are only reused for identical
	// preprocessing.
	Key() string
}

// Source represents an external news corpus and how to parse it.
type Source interface {
	// Name of the corpus, also used as the name of the directory its repository is cloned into.
	Name() string
	// URL of the git repository hosting the corpus.
	URL() string
	// Load reads the corpus from a local copy of its repository, returning the true and the fake documents.
	Load(dir string, processor Processor) (trueDocs, fakeDocs []pipeline.Document, err error)
}

// Sources returns the four corpora, in the order they are composed into bases.
func Sources() []Source {
	return []Source{Fakebr{}, FakeRecogna{}, FakeTrue{}, BoatosBR{}}
}

func document(processor Processor, text string, label pipeline.Label) (pipeline.Document, error) {
	t, err := processor.Text(text)
	if err != nil {
		return pipeline.Document{}, err
	}
	return pipeline.NewDocument(t, label), nil
}
