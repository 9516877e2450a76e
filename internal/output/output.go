// Package output defines where assembled dataset splits go.
package output

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/crimson-sun/winnow/internal/model"
)

// Split is one named, ordered slice of the assembled dataset.
type Split struct {
	Name     string
	Examples []model.Example
}

// Labels counts examples per label name.
func (s Split) Labels() map[string]int {
	counts := make(map[string]int)
	for _, ex := range s.Examples {
		counts[ex.Label.String()]++
	}
	return counts
}

// Sink receives dataset splits. A failed split write must not corrupt
// splits already written.
type Sink interface {
	Write(ctx context.Context, split Split) error
	Close() error
}

// AtomicWrite writes a file via a same-directory temp file renamed over
// path on success, creating parent directories as needed. A failure never
// leaves a partially written file at path.
func AtomicWrite(path string, fill func(*bufio.Writer) error) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp in %s: %w", dir, err)
	}
	tmpPath := tmp.Name()

	w := bufio.NewWriter(tmp)
	err = fill(w)
	if err == nil {
		err = w.Flush()
	}
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err == nil {
		if err = os.Rename(tmpPath, path); err != nil {
			err = fmt.Errorf("rename %s: %w", path, err)
		}
	}
	if err != nil {
		os.Remove(tmpPath)
		return err
	}
	return nil
}
