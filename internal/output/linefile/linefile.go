// Package linefile writes dataset splits as paired newline-delimited
// files: <split>_text.txt and <split>_labels.txt, where line i of each
// file describes the same example. Files are written atomically (temp
// file + rename) so a failure never leaves a truncated split behind.
package linefile

import (
	"bufio"
	"context"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/crimson-sun/winnow/internal/output"
)

// Sink writes split file pairs into a directory.
type Sink struct {
	dir string
}

// New creates a line-file sink rooted at dir. The directory is created on
// first write.
func New(dir string) *Sink {
	return &Sink{dir: dir}
}

// Write writes the split's text and label files, overwriting existing
// files. The text file is written first; a label-file failure leaves the
// previous label file intact rather than a partial one.
func (s *Sink) Write(_ context.Context, split output.Split) error {
	textPath := filepath.Join(s.dir, split.Name+"_text.txt")
	err := output.AtomicWrite(textPath, func(w *bufio.Writer) error {
		for _, ex := range split.Examples {
			if _, err := w.WriteString(ex.Text); err != nil {
				return err
			}
			if err := w.WriteByte('\n'); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("linefile sink: %s: %w", textPath, err)
	}

	labelPath := filepath.Join(s.dir, split.Name+"_labels.txt")
	err = output.AtomicWrite(labelPath, func(w *bufio.Writer) error {
		for _, ex := range split.Examples {
			if _, err := w.WriteString(strconv.Itoa(ex.Label.Value())); err != nil {
				return err
			}
			if err := w.WriteByte('\n'); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("linefile sink: %s: %w", labelPath, err)
	}
	return nil
}

// Close implements output.Sink. Writes are flushed per file; nothing is
// held open between splits.
func (s *Sink) Close() error { return nil }
