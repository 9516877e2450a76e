// Package jsonl reads labeled examples from JSON-lines files of
// {"text": ..., "sentiment": ...} objects, mapping sentiment names to
// polarity labels. Malformed lines and unknown sentiments are skipped
// with a warning, not fatal.
package jsonl

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/crimson-sun/winnow/internal/model"
	"github.com/crimson-sun/winnow/internal/source"
)

func init() {
	source.Register("jsonl", func() source.Source { return &JSONL{} })
}

// maxLineBytes bounds a single JSONL line; review texts are short, 1 MiB
// leaves generous headroom.
const maxLineBytes = 1 << 20

// JSONL reads labeled examples from a JSON-lines file.
type JSONL struct{}

// Name implements source.Source.
func (j *JSONL) Name() string { return "jsonl" }

type record struct {
	Text      string `json:"text"`
	Sentiment string `json:"sentiment"`
}

// Read loads all valid records from path.
func (j *JSONL) Read(path string) ([]model.Example, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("jsonl source: %w", err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 64*1024), maxLineBytes)

	var examples []model.Example
	skipped := 0
	line := 0
	for sc.Scan() {
		line++
		raw := strings.TrimSpace(sc.Text())
		if raw == "" {
			continue
		}
		var rec record
		if err := json.Unmarshal([]byte(raw), &rec); err != nil {
			slog.Warn("skipping malformed jsonl line", "path", path, "line", line, "err", err)
			skipped++
			continue
		}
		if rec.Text == "" || rec.Sentiment == "" {
			slog.Warn("skipping jsonl line missing text or sentiment", "path", path, "line", line)
			skipped++
			continue
		}
		label, err := model.ParsePolarity(rec.Sentiment)
		if err != nil {
			slog.Warn("skipping jsonl line with unknown sentiment", "path", path, "line", line, "sentiment", rec.Sentiment)
			skipped++
			continue
		}
		examples = append(examples, model.Example{Text: rec.Text, Label: label})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("jsonl source: read %s: %w", path, err)
	}
	if skipped > 0 {
		slog.Info("jsonl read finished with skipped lines", "path", path, "kept", len(examples), "skipped", skipped)
	}
	return examples, nil
}
