package manifest

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/crimson-sun/winnow/internal/model"
	"github.com/crimson-sun/winnow/internal/output"
	"github.com/crimson-sun/winnow/internal/sampler"
)

func TestManifestRoundTrip(t *testing.T) {
	dir := t.TempDir()

	m := New(57, 2000, 0.8, 0.1, 0.1)
	if m.RunID == "" {
		t.Fatal("expected a run ID")
	}
	m.AddClass(sampler.Report{Label: model.Negative, Requested: 2000, Returned: 2000, Rounds: 1})
	m.AddClass(sampler.Report{Label: model.Neutral, Requested: 2000, Returned: 1500, Rounds: 3, Shortfall: true})
	m.AddSplit(output.Split{Name: "train", Examples: []model.Example{
		{Text: "a", Label: model.Negative},
		{Text: "b", Label: model.Neutral},
	}})

	if err := m.WriteTo(dir); err != nil {
		t.Fatalf("write: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, Filename))
	if err != nil {
		t.Fatal(err)
	}
	var got Manifest
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("manifest is not valid JSON: %v", err)
	}
	if got.RunID != m.RunID {
		t.Fatalf("run ID mismatch: %q vs %q", got.RunID, m.RunID)
	}
	if got.Seed != 57 || got.Target != 2000 {
		t.Fatalf("bad parameters: %+v", got)
	}
	if len(got.Classes) != 2 {
		t.Fatalf("expected 2 class reports, got %d", len(got.Classes))
	}
	if len(got.Warnings) != 1 {
		t.Fatalf("expected 1 shortfall warning, got %v", got.Warnings)
	}
	if got.Splits[0].Labels["negative"] != 1 || got.Splits[0].Labels["neutral"] != 1 {
		t.Fatalf("bad split labels: %v", got.Splits[0].Labels)
	}
}

func TestManifestRunIDsUnique(t *testing.T) {
	a := New(1, 10, 0.8, 0.1, 0.1)
	b := New(1, 10, 0.8, 0.1, 0.1)
	if a.RunID == b.RunID {
		t.Fatal("expected distinct run IDs")
	}
}

func TestWarn(t *testing.T) {
	m := New(1, 10, 0.8, 0.1, 0.1)
	m.Warn("class %s produced no data", model.Neutral)
	if len(m.Warnings) != 1 || m.Warnings[0] != "class neutral produced no data" {
		t.Fatalf("got %v", m.Warnings)
	}
}
