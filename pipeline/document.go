package pipeline

import "fmt"

// Label is the class of a news document.
type Label int

const (
	// Fake marks a fabricated or misleading news document.
	Fake Label = 0
	// True marks a legitimate news document.
	True Label = 1
)

func (l Label) String() string {
	switch l {
	case Fake:
		return "fake"
	case True:
		return "true"
	}
	return "unknown"
}

// Document stores a preprocessed news text along with its class.
type Document struct {
	Text  string
	Label Label
}

// NewDocument creates a new labelled document.
func NewDocument(text string, label Label) Document {
	return Document{Text: text, Label: label}
}

// Corpus is a named, ordered collection of documents that an experiment is run over.
type Corpus struct {
	Name      string
	Documents []Document
}

// NewCorpus concatenates the parts, in order, into a single corpus.
func NewCorpus(name string, parts ...[]Document) Corpus {
	var n int
	for _, part := range parts {
		n += len(part)
	}
	docs := make([]Document, 0, n)
	for _, part := range parts {
		docs = append(docs, part...)
	}
	return Corpus{Name: name, Documents: docs}
}

// Texts returns the text of every document in the corpus.
func (c Corpus) Texts() []string {
	texts := make([]string, len(c.Documents))
	for i, doc := range c.Documents {
		texts[i] = doc.Text
	}
	return texts
}

// Labels returns the class of every document in the corpus.
func (c Corpus) Labels() []int {
	labels := make([]int, len(c.Documents))
	for i, doc := range c.Documents {
		labels[i] = int(doc.Label)
	}
	return labels
}

// Count returns the number of documents with the given label.
func (c Corpus) Count(label Label) int {
	var n int
	for _, doc := range c.Documents {
		if doc.Label == label {
			n++
		}
	}
	return n
}

// BaseName is the name of the i-th (1-indexed) nested corpus.
func BaseName(i int) string {
	return fmt.Sprintf("Base %d", i)
}
