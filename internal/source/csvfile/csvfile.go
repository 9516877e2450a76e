// Package csvfile reads and writes the pipeline's CSV formats: the raw
// review export (polarity, review_text, review_text_processed, rating)
// and the intermediate per-class files (polarity, text).
package csvfile

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/crimson-sun/winnow/internal/model"
	"github.com/crimson-sun/winnow/internal/output"
	"github.com/crimson-sun/winnow/internal/source"
)

func init() {
	source.Register("csv", func() source.Source { return &CSV{} })
}

// CSV reads labeled examples from a per-class polarity,text file.
type CSV struct{}

// Name implements source.Source.
func (c *CSV) Name() string { return "csv" }

// Read loads a per-class CSV. The header must name "text" and "polarity"
// columns (any order, extra columns ignored). Rows with empty text are
// dropped.
func (c *CSV) Read(path string) ([]model.Example, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("csv source: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("csv source: read header of %s: %w", path, err)
	}
	cols, err := columnIndex(header, path, "text", "polarity")
	if err != nil {
		return nil, err
	}

	var examples []model.Example
	row := 1
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		row++
		if err != nil {
			return nil, fmt.Errorf("csv source: %s row %d: %w", path, row, err)
		}
		text := strings.TrimSpace(field(rec, cols["text"]))
		if text == "" {
			continue
		}
		label, err := model.ParsePolarity(field(rec, cols["polarity"]))
		if err != nil {
			slog.Warn("skipping row with bad polarity", "path", path, "row", row, "err", err)
			continue
		}
		examples = append(examples, model.Example{Text: text, Label: label})
	}
	return examples, nil
}

// ReadReviews loads the raw review export. The header must name the
// polarity, review_text, review_text_processed, and rating columns.
// Review indices are assigned in file order.
func ReadReviews(path string) ([]model.Review, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("csv source: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("csv source: read header of %s: %w", path, err)
	}
	cols, err := columnIndex(header, path,
		"polarity", "review_text", "review_text_processed", "rating")
	if err != nil {
		return nil, err
	}

	var reviews []model.Review
	row := 1
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		row++
		if err != nil {
			return nil, fmt.Errorf("csv source: %s row %d: %w", path, row, err)
		}
		reviews = append(reviews, model.Review{
			Index:     len(reviews),
			Polarity:  atoiOr(field(rec, cols["polarity"]), -1),
			Rating:    atoiOr(field(rec, cols["rating"]), -1),
			Text:      field(rec, cols["review_text"]),
			Processed: field(rec, cols["review_text_processed"]),
		})
	}
	return reviews, nil
}

// WriteLabeled writes examples to a per-class polarity,text CSV,
// overwriting path. Parent directories are created as needed and the
// file lands atomically, like the split files.
func WriteLabeled(path string, examples []model.Example) error {
	err := output.AtomicWrite(path, func(bw *bufio.Writer) error {
		w := csv.NewWriter(bw)
		if err := w.Write([]string{"polarity", "text"}); err != nil {
			return err
		}
		for _, ex := range examples {
			if err := w.Write([]string{strconv.Itoa(ex.Label.Value()), ex.Text}); err != nil {
				return err
			}
		}
		w.Flush()
		return w.Error()
	})
	if err != nil {
		return fmt.Errorf("csv sink: write %s: %w", path, err)
	}
	return nil
}

// columnIndex maps required column names to their positions in the header.
func columnIndex(header []string, path string, required ...string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.ToLower(strings.TrimSpace(name))] = i
	}
	cols := make(map[string]int, len(required))
	for _, name := range required {
		i, ok := idx[name]
		if !ok {
			return nil, fmt.Errorf("%w: %s in %s", source.ErrMissingColumn, name, path)
		}
		cols[name] = i
	}
	return cols, nil
}

func field(rec []string, i int) string {
	if i < 0 || i >= len(rec) {
		return ""
	}
	return rec[i]
}

func atoiOr(s string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fallback
	}
	return n
}
