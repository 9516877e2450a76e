package winnow

import (
	"github.com/crimson-sun/winnow/internal/config"
	"github.com/crimson-sun/winnow/internal/model"
)

// Option configures a Builder. Options override values read from the
// WINNOW_* environment.
type Option func(*config.Config)

// WithRawCSV sets the raw review export path for the prepare stage.
func WithRawCSV(path string) Option {
	return func(c *config.Config) { c.Input.RawCSV = path }
}

// WithDataDir sets the directory holding the intermediate per-class CSVs.
func WithDataDir(dir string) Option {
	return func(c *config.Config) { c.Input.DataDir = dir }
}

// WithOutputDir sets the directory for split files and the manifest.
func WithOutputDir(dir string) Option {
	return func(c *config.Config) { c.Output.Dir = dir }
}

// WithTargetCount sets the number of examples sampled per class.
// Default: 2000.
func WithTargetCount(n int) Option {
	return func(c *config.Config) { c.Sample.Target = n }
}

// WithSeed fixes the random seed for all sampling draws. Default: 57.
func WithSeed(seed int64) Option {
	return func(c *config.Config) { c.Sample.Seed = seed }
}

// WithRatios sets the train/test/val split proportions. They must sum
// to 1.0. Default: 0.8/0.1/0.1.
func WithRatios(train, test, val float64) Option {
	return func(c *config.Config) {
		c.Split.Train = train
		c.Split.Test = test
		c.Split.Val = val
	}
}

// WithClassOrder sets the interleave precedence. Unknown names are
// rejected by New. Default: negative, neutral, positive.
func WithClassOrder(labels ...string) Option {
	return func(c *config.Config) {
		var order []model.Polarity
		for _, l := range labels {
			p, err := model.ParsePolarity(l)
			if err != nil {
				// Clear the order so Validate rejects it as empty rather
				// than running with a partial precedence.
				order = nil
				break
			}
			order = append(order, p)
		}
		c.Sample.Order = order
	}
}

// WithCleaning sets the normalizer policies: quotes and symbols are
// "replace" or "strip", collapse is the identical-rune run threshold
// (0 disables). Default: replace, replace, 3.
func WithCleaning(quotes, symbols string, collapse int) Option {
	return func(c *config.Config) {
		c.Clean.Quotes = quotes
		c.Clean.Symbols = symbols
		c.Clean.Collapse = collapse
	}
}

// WithDiacriticFolding strips accents during normalization so keyword
// rules written accent-folded match accented text. Default: off.
func WithDiacriticFolding() Option {
	return func(c *config.Config) { c.Clean.FoldDiacritics = true }
}

// WithPreview also prints split summaries to stdout during the build.
func WithPreview() Option {
	return func(c *config.Config) { c.Output.Preview = true }
}

// WithoutManifest disables writing manifest.json.
func WithoutManifest() Option {
	return func(c *config.Config) { c.Output.Manifest = false }
}
