package corpus

import (
	"encoding/csv"
	"os"
	"path/filepath"

	"github.com/hscells/boato/pipeline"
	"github.com/pkg/errors"
)

// FakeTrue is the FakeTrue.Br corpus: a CSV file pairing each fake news document with a true counterpart.
type FakeTrue struct{}

// Name of the corpus.
func (FakeTrue) Name() string {
	return "FakeTrue"
}

// URL of the corpus repository.
func (FakeTrue) URL() string {
	return "https://github.com/jpchav98/FakeTrue.Br.git"
}

// Load reads FakeTrueBr_corpus.csv. Each row yields a fake document (the fake title and text joined by a space)
// and a true document.
func (FakeTrue) Load(dir string, processor Processor) ([]pipeline.Document, []pipeline.Document, error) {
	path := filepath.Join(dir, "FakeTrueBr_corpus.csv")
	if !isFile(path) {
		return nil, nil, errors.Errorf("expected file not found: %s", path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, errors.Wrapf(err, "parsing %s", path)
	}
	if len(records) < 2 {
		return nil, nil, errors.Errorf("table read from %s is empty", path)
	}

	cols, err := columns(records[0], "title_fake", "fake", "true")
	if err != nil {
		return nil, nil, err
	}

	trueDocs := make([]pipeline.Document, 0, len(records)-1)
	fakeDocs := make([]pipeline.Document, 0, len(records)-1)
	for _, record := range records[1:] {
		fake, err := document(processor, cell(record, cols["title_fake"])+" "+cell(record, cols["fake"]), pipeline.Fake)
		if err != nil {
			return nil, nil, err
		}
		genuine, err := document(processor, cell(record, cols["true"]), pipeline.True)
		if err != nil {
			return nil, nil, err
		}
		fakeDocs = append(fakeDocs, fake)
		trueDocs = append(trueDocs, genuine)
	}
	return trueDocs, fakeDocs, nil
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
