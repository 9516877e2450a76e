// Package pipeline wires sources, the sampler, the assembler, and sinks
// into the dataset build stages. Configuration errors abort before any
// work; per-class and per-file problems are isolated so sibling classes
// and files still complete.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"os"

	"github.com/crimson-sun/winnow/internal/assemble"
	"github.com/crimson-sun/winnow/internal/config"
	"github.com/crimson-sun/winnow/internal/filter"
	"github.com/crimson-sun/winnow/internal/model"
	"github.com/crimson-sun/winnow/internal/normalize"
	"github.com/crimson-sun/winnow/internal/output"
	"github.com/crimson-sun/winnow/internal/output/linefile"
	"github.com/crimson-sun/winnow/internal/output/manifest"
	"github.com/crimson-sun/winnow/internal/output/multi"
	"github.com/crimson-sun/winnow/internal/output/stdout"
	"github.com/crimson-sun/winnow/internal/sampler"
	"github.com/crimson-sun/winnow/internal/source"
	"github.com/crimson-sun/winnow/internal/source/csvfile"
)

// Pipeline runs the dataset build stages for one configuration.
type Pipeline struct {
	cfg  config.Config
	samp *sampler.Sampler
}

// New validates the configuration and creates a Pipeline.
func New(cfg config.Config) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	norm := normalize.New(cfg.NormalizerOptions())
	return &Pipeline{
		cfg:  cfg,
		samp: sampler.New(norm, cfg.Sample.Seed),
	}, nil
}

// Prepare runs stage one: load the raw review export, filter each class
// by its heuristic rule, sample and clean, and write one per-class CSV.
// A class that yields no rows is skipped; its siblings still complete.
func (p *Pipeline) Prepare(ctx context.Context) ([]sampler.Report, error) {
	reviews, err := csvfile.ReadReviews(p.cfg.Input.RawCSV)
	if err != nil {
		return nil, fmt.Errorf("prepare: %w", err)
	}
	slog.Info("loaded raw reviews", "path", p.cfg.Input.RawCSV, "rows", len(reviews))

	rules := make(map[model.Polarity]filter.Rule, 3)
	for _, r := range filter.DefaultRules() {
		rules[r.Label] = r
	}

	var reports []sampler.Report
	var errs []error
	for _, label := range p.cfg.Sample.Order {
		if err := ctx.Err(); err != nil {
			return reports, err
		}
		rule, ok := rules[label]
		if !ok {
			slog.Warn("no filter rule for class, skipping", "class", label)
			continue
		}
		bucket := rule.Apply(reviews)
		if bucket.Len() == 0 {
			slog.Warn("no candidate rows for class, skipping", "class", label)
			continue
		}

		examples, report := p.samp.Sample(bucket, p.cfg.Sample.Target)
		reports = append(reports, report)
		if report.Shortfall {
			slog.Warn("class under-fulfilled",
				"class", label, "returned", report.Returned, "requested", report.Requested)
		}
		if len(examples) == 0 {
			slog.Warn("no cleanable rows for class, skipping", "class", label)
			continue
		}

		path := p.cfg.ClassCSV(label)
		if err := csvfile.WriteLabeled(path, examples); err != nil {
			slog.Error("failed to write class CSV", "class", label, "err", err)
			errs = append(errs, err)
			continue
		}
		slog.Info("wrote class CSV", "class", label, "path", path, "rows", len(examples))
	}
	return reports, errors.Join(errs...)
}

// BuildDataset runs stage two: load the per-class CSVs, interleave,
// split, and write the split file pairs plus the run manifest. Sampler
// reports from a preceding Prepare may be passed in for the manifest;
// nil is fine when the stage runs standalone.
func (p *Pipeline) BuildDataset(ctx context.Context, reports []sampler.Report) (*manifest.Manifest, error) {
	m := manifest.New(p.cfg.Sample.Seed, p.cfg.Sample.Target,
		p.cfg.Split.Train, p.cfg.Split.Test, p.cfg.Split.Val)
	for _, r := range reports {
		m.AddClass(r)
	}

	classes := make([][]model.Example, 0, len(p.cfg.Sample.Order))
	for _, label := range p.cfg.Sample.Order {
		path := p.cfg.ClassCSV(label)
		examples, err := p.readClass(path, label)
		if err != nil {
			slog.Warn("skipping class", "class", label, "path", path, "err", err)
			m.Warn("class %s skipped: %v", label, err)
			continue
		}
		slog.Info("loaded class", "class", label, "path", path, "rows", len(examples))
		classes = append(classes, examples)
	}

	ds, err := assemble.Assemble(classes, p.cfg.Split)
	if errors.Is(err, assemble.ErrNoData) {
		slog.Warn("no examples to assemble, no split files written")
		m.Warn("no examples to assemble")
		return m, p.finish(m)
	}
	if err != nil {
		return nil, fmt.Errorf("build dataset: %w", err)
	}
	slog.Info("assembled dataset", "total", ds.Total(),
		"train", len(ds.Train), "test", len(ds.Test), "val", len(ds.Val))

	sink := p.sink()
	defer sink.Close()

	var errs []error
	for _, split := range []output.Split{
		{Name: "train", Examples: ds.Train},
		{Name: "test", Examples: ds.Test},
		{Name: "val", Examples: ds.Val},
	} {
		m.AddSplit(split)
		if len(split.Examples) == 0 {
			slog.Warn("split is empty, skipping file creation", "split", split.Name)
			m.Warn("split %s is empty", split.Name)
			continue
		}
		if err := sink.Write(ctx, split); err != nil {
			slog.Error("failed to write split", "split", split.Name, "err", err)
			errs = append(errs, err)
			continue
		}
		slog.Info("wrote split", "split", split.Name, "rows", len(split.Examples))
	}
	if err := p.finish(m); err != nil {
		errs = append(errs, err)
	}
	return m, errors.Join(errs...)
}

// Convert reads labeled examples from inPath (format by extension) and
// writes them as a per-class polarity,text CSV to outPath.
func (p *Pipeline) Convert(ctx context.Context, inPath, outPath string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	src, err := source.ForPath(inPath)
	if err != nil {
		return 0, fmt.Errorf("convert: %w", err)
	}
	examples, err := src.Read(inPath)
	if err != nil {
		return 0, fmt.Errorf("convert: %w", err)
	}
	if len(examples) == 0 {
		return 0, fmt.Errorf("convert: no valid records in %s", inPath)
	}
	if err := csvfile.WriteLabeled(outPath, examples); err != nil {
		return 0, fmt.Errorf("convert: %w", err)
	}
	slog.Info("converted", "from", inPath, "to", outPath, "rows", len(examples))
	return len(examples), nil
}

// Inspect prints the last n raw reviews with the given rating. Diagnostic
// helper for eyeballing filter inputs.
func (p *Pipeline) Inspect(w io.Writer, rating, n int) error {
	reviews, err := csvfile.ReadReviews(p.cfg.Input.RawCSV)
	if err != nil {
		return fmt.Errorf("inspect: %w", err)
	}
	var matched []model.Review
	for _, r := range reviews {
		if r.Rating == rating {
			matched = append(matched, r)
		}
	}
	start := len(matched) - n
	if start < 0 {
		start = 0
	}
	for _, r := range matched[start:] {
		fmt.Fprintf(w, "%d\t%d\t%s\n", r.Index, r.Rating, r.Text)
	}
	fmt.Fprintf(w, "%d of %d reviews have rating %d\n", len(matched), len(reviews), rating)
	return nil
}

// readClass loads one per-class CSV and subsamples it deterministically
// when it holds more rows than the target.
func (p *Pipeline) readClass(path string, label model.Polarity) ([]model.Example, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}
	src, err := source.Get("csv")
	if err != nil {
		return nil, err
	}
	examples, err := src().Read(path)
	if err != nil {
		return nil, err
	}
	if len(examples) == 0 {
		return nil, fmt.Errorf("no valid rows in %s", path)
	}
	for _, ex := range examples {
		if ex.Label != label {
			slog.Warn("row label differs from class file", "path", path, "expected", label, "got", ex.Label)
			break
		}
	}
	if target := p.cfg.Sample.Target; len(examples) > target {
		examples = subsample(examples, target, p.cfg.Sample.Seed)
		slog.Info("subsampled class", "class", label, "kept", target)
	}
	return examples, nil
}

// subsample keeps n deterministically chosen examples in draw order.
func subsample(examples []model.Example, n int, seed int64) []model.Example {
	rng := rand.New(rand.NewSource(seed))
	perm := rng.Perm(len(examples))
	out := make([]model.Example, 0, n)
	for _, i := range perm[:n] {
		out = append(out, examples[i])
	}
	return out
}

func (p *Pipeline) sink() output.Sink {
	file := linefile.New(p.cfg.Output.Dir)
	if p.cfg.Output.Preview {
		return multi.New(file, stdout.New(nil))
	}
	return file
}

func (p *Pipeline) finish(m *manifest.Manifest) error {
	if !p.cfg.Output.Manifest {
		return nil
	}
	return m.WriteTo(p.cfg.Output.Dir)
}
