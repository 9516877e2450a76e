package winnow

import (
	"context"
	"fmt"

	"github.com/crimson-sun/winnow/internal/config"
	"github.com/crimson-sun/winnow/internal/pipeline"
	"github.com/crimson-sun/winnow/internal/sampler"

	// Register source format implementations.
	_ "github.com/crimson-sun/winnow/internal/source/csvfile"
	_ "github.com/crimson-sun/winnow/internal/source/jsonl"
)

// Builder runs the dataset build pipeline for one configuration.
type Builder struct {
	p   *pipeline.Pipeline
	cfg config.Config
}

// Report is one class's sampling outcome.
type Report struct {
	Label     string
	Requested int
	Returned  int
	Shortfall bool
}

// Summary describes a finished build.
type Summary struct {
	RunID    string
	Splits   map[string]int
	Warnings []string
}

// New creates a Builder. Configuration starts from the WINNOW_*
// environment (with the documented defaults) and options override it.
// Invalid configuration fails here, before any work.
func New(opts ...Option) (*Builder, error) {
	cfg := config.Load()
	for _, opt := range opts {
		opt(&cfg)
	}
	p, err := pipeline.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("winnow: %w", err)
	}
	return &Builder{p: p, cfg: cfg}, nil
}

// Prepare runs the filter+sample stage, writing per-class CSVs.
func (b *Builder) Prepare(ctx context.Context) ([]Report, error) {
	reports, err := b.p.Prepare(ctx)
	return convertReports(reports), err
}

// Build runs the interleave+split stage over the per-class CSVs.
func (b *Builder) Build(ctx context.Context) (*Summary, error) {
	m, err := b.p.BuildDataset(ctx, nil)
	if m == nil {
		return nil, err
	}
	return &Summary{RunID: m.RunID, Splits: m.SplitSizes(), Warnings: m.Warnings}, err
}

// Run executes both stages back to back and returns the build summary.
func (b *Builder) Run(ctx context.Context) (*Summary, error) {
	reports, err := b.p.Prepare(ctx)
	if err != nil {
		return nil, err
	}
	m, err := b.p.BuildDataset(ctx, reports)
	if m == nil {
		return nil, err
	}
	return &Summary{RunID: m.RunID, Splits: m.SplitSizes(), Warnings: m.Warnings}, err
}

// Convert converts a labeled input file (.jsonl or .csv) into a
// per-class polarity,text CSV. Returns the number of rows written.
func (b *Builder) Convert(ctx context.Context, in, out string) (int, error) {
	return b.p.Convert(ctx, in, out)
}

func convertReports(reports []sampler.Report) []Report {
	out := make([]Report, 0, len(reports))
	for _, r := range reports {
		out = append(out, Report{
			Label:     r.Label.String(),
			Requested: r.Requested,
			Returned:  r.Returned,
			Shortfall: r.Shortfall,
		})
	}
	return out
}

