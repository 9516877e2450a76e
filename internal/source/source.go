// Package source defines how labeled review data enters the pipeline.
// Concrete formats (CSV, JSONL) register themselves by name; callers
// resolve a reader by format name or file extension.
package source

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/crimson-sun/winnow/internal/model"
)

// ErrMissingColumn is returned when an input file lacks a required named
// column. It aborts the run before any work (a configuration problem, not
// a data problem).
var ErrMissingColumn = errors.New("missing required column")

// Source reads labeled examples from one file.
type Source interface {
	// Name returns the format name the source is registered under.
	Name() string

	// Read loads all labeled examples from path. Rows with empty text are
	// dropped; malformed rows are skipped with a logged warning.
	Read(path string) ([]model.Example, error)
}

// Constructor creates a new Source instance.
type Constructor func() Source

var registry = map[string]Constructor{}

// Register adds a source constructor under the given format name.
func Register(name string, ctor Constructor) {
	registry[name] = ctor
}

// Get returns the source constructor for the given format name.
func Get(name string) (Constructor, error) {
	ctor, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown source format: %s", name)
	}
	return ctor, nil
}

// Formats returns the registered format names, sorted.
func Formats() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ForPath resolves a source by file extension (".jsonl" → jsonl,
// everything else → csv).
func ForPath(path string) (Source, error) {
	name := "csv"
	if strings.EqualFold(filepath.Ext(path), ".jsonl") {
		name = "jsonl"
	}
	ctor, err := Get(name)
	if err != nil {
		return nil, err
	}
	return ctor(), nil
}
