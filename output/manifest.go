package output

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// Manifest records a single run of the experiment.
type Manifest struct {
	ID       string      `json:"id"`
	Mode     string      `json:"mode"`
	Started  time.Time   `json:"started"`
	Finished time.Time   `json:"finished"`
	Files    []string    `json:"files"`
	Config   interface{} `json:"config"`
}

// NewManifest starts the manifest of a run, identified by a random UUID.
func NewManifest(mode string, config interface{}) *Manifest {
	return &Manifest{
		ID:      uuid.New().String(),
		Mode:    mode,
		Started: time.Now(),
		Config:  config,
	}
}

// Add records a file written by the run.
func (m *Manifest) Add(path string) {
	m.Files = append(m.Files, path)
}

// Save marks the run finished and writes the manifest as indented JSON.
func (m *Manifest) Save(path string) error {
	m.Finished = time.Now()
	if err := os.MkdirAll(filepath.Dir(path), 0777); err != nil {
		return err
	}
	b, err := json.MarshalIndent(m, "", "    ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}
