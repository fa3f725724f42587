package corpus

import (
	"os"
	"path/filepath"

	"github.com/hscells/boato/pipeline"
	"github.com/pkg/errors"
)

// Fakebr is the Fake.br corpus: one text file per news document, split into a true and a fake directory.
type Fakebr struct{}

// Name of the corpus.
func (Fakebr) Name() string {
	return "Fakebr"
}

// URL of the corpus repository.
func (Fakebr) URL() string {
	return "https://github.com/roneysco/Fake.br-Corpus.git"
}

// Load reads full_texts/true and full_texts/fake, in file name order.
func (Fakebr) Load(dir string, processor Processor) ([]pipeline.Document, []pipeline.Document, error) {
	trueDir := filepath.Join(dir, "full_texts", "true")
	fakeDir := filepath.Join(dir, "full_texts", "fake")
	if !isDir(trueDir) || !isDir(fakeDir) {
		return nil, nil, errors.New("'true' or 'fake' directories not found in cloned repo")
	}

	trueDocs, err := readTextDir(trueDir, pipeline.True, processor)
	if err != nil {
		return nil, nil, errors.Wrap(err, "true news directory")
	}
	fakeDocs, err := readTextDir(fakeDir, pipeline.Fake, processor)
	if err != nil {
		return nil, nil, errors.Wrap(err, "fake news directory")
	}
	return trueDocs, fakeDocs, nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// readTextDir reads every regular file in dir as a single document. os.ReadDir sorts entries by file name.
func readTextDir(dir string, label pipeline.Label, processor Processor) ([]pipeline.Document, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var docs []pipeline.Document
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		b, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		doc, err := document(processor, string(b), label)
		if err != nil {
			return nil, errors.Wrapf(err, "processing %s", entry.Name())
		}
		docs = append(docs, doc)
	}

	if len(docs) == 0 {
		return nil, errors.New("no files found")
	}
	return docs, nil
}
