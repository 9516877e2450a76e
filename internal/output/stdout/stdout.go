// Package stdout prints a human-readable summary of each split. Useful
// for dry-runs and as a secondary sink next to linefile.
package stdout

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/crimson-sun/winnow/internal/output"
)

// Sink writes one summary line per split.
type Sink struct {
	w io.Writer
}

// New creates a stdout Sink. A nil writer defaults to os.Stdout.
func New(w io.Writer) *Sink {
	if w == nil {
		w = os.Stdout
	}
	return &Sink{w: w}
}

func (s *Sink) Write(_ context.Context, split output.Split) error {
	counts := split.Labels()
	labels := make([]string, 0, len(counts))
	for name := range counts {
		labels = append(labels, name)
	}
	sort.Strings(labels)

	if _, err := fmt.Fprintf(s.w, "%s: %d examples", split.Name, len(split.Examples)); err != nil {
		return fmt.Errorf("stdout sink: %w", err)
	}
	for _, name := range labels {
		if _, err := fmt.Fprintf(s.w, " %s=%d", name, counts[name]); err != nil {
			return fmt.Errorf("stdout sink: %w", err)
		}
	}
	if _, err := fmt.Fprintln(s.w); err != nil {
		return fmt.Errorf("stdout sink: %w", err)
	}
	return nil
}

func (s *Sink) Close() error { return nil }
