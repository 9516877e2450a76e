// Package manifest records what a pipeline run produced: a JSON document
// with a unique run ID, the effective sampling parameters, per-class
// fulfillment reports, and per-split sizes. The manifest is the durable
// record of under-fulfillment warnings.
package manifest

import (
	"bufio"
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/crimson-sun/winnow/internal/output"
	"github.com/crimson-sun/winnow/internal/sampler"
)

// Filename is the manifest file name inside the output directory.
const Filename = "manifest.json"

// ClassReport is one class's sampling outcome.
type ClassReport struct {
	Label     string `json:"label"`
	Requested int    `json:"requested"`
	Returned  int    `json:"returned"`
	Rounds    int    `json:"rounds"`
	Shortfall bool   `json:"shortfall"`
}

// SplitInfo is one split's size and label distribution.
type SplitInfo struct {
	Name   string         `json:"name"`
	Size   int            `json:"size"`
	Labels map[string]int `json:"labels,omitempty"`
}

// Manifest describes one complete dataset build.
type Manifest struct {
	RunID     string        `json:"run_id"`
	CreatedAt time.Time     `json:"created_at"`
	Seed      int64         `json:"seed"`
	Target    int           `json:"target_per_class"`
	Train     float64       `json:"train_ratio"`
	Test      float64       `json:"test_ratio"`
	Val       float64       `json:"val_ratio"`
	Classes   []ClassReport `json:"classes,omitempty"`
	Splits    []SplitInfo   `json:"splits,omitempty"`
	Warnings  []string      `json:"warnings,omitempty"`
}

// New creates a Manifest with a fresh run ID and timestamp.
func New(seed int64, target int, train, test, val float64) *Manifest {
	return &Manifest{
		RunID:     uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		Seed:      seed,
		Target:    target,
		Train:     train,
		Test:      test,
		Val:       val,
	}
}

// AddClass records a sampler report. Shortfalls also append a warning.
func (m *Manifest) AddClass(r sampler.Report) {
	m.Classes = append(m.Classes, ClassReport{
		Label:     r.Label.String(),
		Requested: r.Requested,
		Returned:  r.Returned,
		Rounds:    r.Rounds,
		Shortfall: r.Shortfall,
	})
	if r.Shortfall {
		m.Warnings = append(m.Warnings,
			fmt.Sprintf("class %s under-fulfilled: %d of %d", r.Label, r.Returned, r.Requested))
	}
}

// AddSplit records a written split.
func (m *Manifest) AddSplit(split output.Split) {
	m.Splits = append(m.Splits, SplitInfo{
		Name:   split.Name,
		Size:   len(split.Examples),
		Labels: split.Labels(),
	})
}

// SplitSizes returns split name → size for the recorded splits.
func (m *Manifest) SplitSizes() map[string]int {
	sizes := make(map[string]int, len(m.Splits))
	for _, s := range m.Splits {
		sizes[s.Name] = s.Size
	}
	return sizes
}

// Warn appends a free-form warning.
func (m *Manifest) Warn(format string, args ...any) {
	m.Warnings = append(m.Warnings, fmt.Sprintf(format, args...))
}

// WriteTo writes the manifest as indented JSON into dir, atomically.
func (m *Manifest) WriteTo(dir string) error {
	path := filepath.Join(dir, Filename)
	err := output.AtomicWrite(path, func(w *bufio.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(m)
	})
	if err != nil {
		return fmt.Errorf("manifest: %w", err)
	}
	return nil
}
