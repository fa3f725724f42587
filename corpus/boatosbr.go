package corpus

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/hscells/boato/pipeline"
	"github.com/pkg/errors"
)

// BoatosBR is the Boatos.br corpus of fact-checked rumours, distributed as JSON.
type BoatosBR struct{}

// Name of the corpus.
func (BoatosBR) Name() string {
	return "BoatosBR"
}

// URL of the corpus repository.
func (BoatosBR) URL() string {
	return "https://github.com/Felipe-Harrison/boatos-br-corpus.git"
}

type rumour struct {
	Texto  string
	Rotulo string
}

// Load reads base_simples/boatos_br_corpus_simples.json. Rumours labelled "verdade" are true and those labelled
// "falso" are fake; any other label is ignored.
func (BoatosBR) Load(dir string, processor Processor) ([]pipeline.Document, []pipeline.Document, error) {
	path := filepath.Join(dir, "base_simples", "boatos_br_corpus_simples.json")
	if !isFile(path) {
		return nil, nil, errors.Errorf("expected file not found: %s", path)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	rumours, err := parseRumours(b)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "parsing %s", path)
	}
	if len(rumours) == 0 {
		return nil, nil, errors.Errorf("table read from %s is empty", path)
	}

	var trueDocs, fakeDocs []pipeline.Document
	for _, r := range rumours {
		var label pipeline.Label
		switch r.Rotulo {
		case "verdade":
			label = pipeline.True
		case "falso":
			label = pipeline.Fake
		default:
			continue
		}
		doc, err := document(processor, r.Texto, label)
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
		return nil, nil, errors.New("true or fake class is empty after filtering")
	}
	return trueDocs, fakeDocs, nil
}

// parseRumours accepts either an array of records or a column oriented object mapping each column to an object of
// row index to value.
func parseRumours(b []byte) ([]rumour, error) {
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return nil, nil
	}

	if b[0] == '[' {
		var records []map[string]interface{}
		if err := json.Unmarshal(b, &records); err != nil {
			return nil, err
		}
		rumours := make([]rumour, len(records))
		for i, record := range records {
			texto, okT := record["texto"]
			rotulo, okR := record["rotulo"]
			if !okT || !okR {
				return nil, errors.Errorf("record %d is missing the texto or rotulo column", i)
			}
			rumours[i] = rumour{Texto: str(texto), Rotulo: str(rotulo)}
		}
		return rumours, nil
	}

	var cols map[string]map[string]interface{}
	if err := json.Unmarshal(b, &cols); err != nil {
		return nil, err
	}
	texto, okT := cols["texto"]
	rotulo, okR := cols["rotulo"]
	if !okT || !okR {
		return nil, errors.New("expected columns texto and rotulo")
	}

	keys := make([]string, 0, len(texto))
	for k := range texto {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		x, errX := strconv.Atoi(keys[i])
		y, errY := strconv.Atoi(keys[j])
		if errX != nil || errY != nil {
			return keys[i] < keys[j]
		}
		return x < y
	})

	rumours := make([]rumour, len(keys))
	for i, k := range keys {
		rumours[i] = rumour{Texto: str(texto[k]), Rotulo: str(rotulo[k])}
	}
	return rumours, nil
}

func str(v interface{}) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	}
	return fmt.Sprint(v)
}
