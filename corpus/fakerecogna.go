package corpus

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/hscells/boato/pipeline"
	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
)

// FakeRecogna is the FakeRecogna corpus, distributed as a spreadsheet with one news document per row.
type FakeRecogna struct{}

// Name of the corpus.
func (FakeRecogna) Name() string {
	return "FakeRecogna"
}

// URL of the corpus repository.
func (FakeRecogna) URL() string {
	return "https://github.com/Gabriel-Lino-Garcia/FakeRecogna.git"
}

// Load reads the first sheet of dataset/FakeRecogna.xlsx. The text of a document is its title, subtitle and body
// joined by spaces; the Classe column holds 1 for true and 0 for fake news. Rows with any other class are dropped.
func (FakeRecogna) Load(dir string, processor Processor) ([]pipeline.Document, []pipeline.Document, error) {
	path := filepath.Join(dir, "dataset", "FakeRecogna.xlsx")
	if !isFile(path) {
		return nil, nil, errors.Errorf("expected file not found: %s", path)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, errors.Errorf("%s contains no sheets", path)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, nil, err
	}
	if len(rows) < 2 {
		return nil, nil, errors.Errorf("table read from %s is empty", path)
	}

	cols, err := columns(rows[0], "Titulo", "Subtitulo", "Noticia", "Classe")
	if err != nil {
		return nil, nil, err
	}

	var trueDocs, fakeDocs []pipeline.Document
	for _, row := range rows[1:] {
		text := strings.Join([]string{
			cell(row, cols["Titulo"]),
			cell(row, cols["Subtitulo"]),
			cell(row, cols["Noticia"]),
		}, " ")

		var label pipeline.Label
		switch classe(cell(row, cols["Classe"])) {
		case 1:
			label = pipeline.True
		case 0:
			label = pipeline.Fake
		default:
			continue
		}

		doc, err := document(processor, text, label)
		if err != nil {
			return nil, nil, err
		}
		if label == pipeline.True {
			trueDocs = append(trueDocs, doc)
		} else {
			fakeDocs = append(fakeDocs, doc)
		}
	}

	if len(trueDocs) == 0 || len(fakeDocs) == 0 {
		return nil, nil, errors.New("corpus loaded but returned empty data for 'true' or 'fake' classes")
	}
	return trueDocs, fakeDocs, nil
}

// classe parses a numeric class, returning -1 for anything that is not a number.
func classe(s string) int {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return -1
	}
	return int(v)
}

// columns maps each expected column name to its index in the header.
func columns(header []string, expected ...string) (map[string]int, error) {
	found := make(map[string]int)
	for i, h := range header {
		found[strings.TrimSpace(h)] = i
	}
	cols := make(map[string]int, len(expected))
	var missing []string
	for _, name := range expected {
		i, ok := found[name]
		if !ok {
			missing = append(missing, name)
			continue
		}
		cols[name] = i
	}
	if len(missing) > 0 {
		return nil, errors.Errorf("expected columns missing in file: %s, found: %s", strings.Join(missing, ", "), strings.Join(header, ", "))
	}
	return cols, nil
}

// cell returns the value at index i, or the empty string for cells trimmed from the end of a row.
func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}
