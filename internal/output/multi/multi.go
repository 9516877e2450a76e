package multi

import (
	"context"
	"errors"

	"github.com/crimson-sun/winnow/internal/output"
)

// Multi fans each split out to several sinks sequentially. If one sink
// fails, the remaining sinks still receive the split; errors are joined.
type Multi struct {
	sinks []output.Sink
}

// New creates a Multi over the given sinks.
func New(sinks ...output.Sink) *Multi {
	return &Multi{sinks: sinks}
}

// Write delivers the split to every sink, collecting errors.
func (m *Multi) Write(ctx context.Context, split output.Split) error {
	var errs []error
	for _, s := range m.sinks {
		if err := s.Write(ctx, split); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Close closes every sink, collecting errors.
func (m *Multi) Close() error {
	var errs []error
	for _, s := range m.sinks {
		if err := s.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
