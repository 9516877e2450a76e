// Package config reads winnow configuration from environment variables
// with sensible defaults, mirroring the original pipeline's parameters.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/crimson-sun/winnow/internal/assemble"
	"github.com/crimson-sun/winnow/internal/model"
	"github.com/crimson-sun/winnow/internal/normalize"
)

// ErrInvalid is wrapped by every validation failure. Configuration errors
// abort the run before any work happens.
var ErrInvalid = errors.New("invalid configuration")

// Config holds all winnow configuration.
type Config struct {
	Input  InputConfig
	Sample SampleConfig
	Split  assemble.Ratios
	Output OutputConfig
	Clean  CleanConfig
	Log    LogConfig
}

// InputConfig locates the input files.
type InputConfig struct {
	RawCSV  string // raw review export for the prepare stage
	DataDir string // directory holding the per-class CSVs between stages
}

// SampleConfig holds sampling settings.
type SampleConfig struct {
	Target int   // examples per class
	Seed   int64 // base random seed
	Order  []model.Polarity
}

// OutputConfig holds output destination settings.
type OutputConfig struct {
	Dir      string // directory for split files and the manifest
	Preview  bool   // also print split summaries to stdout
	Manifest bool   // write manifest.json
}

// CleanConfig holds text normalizer settings.
type CleanConfig struct {
	Quotes         string // "replace" or "strip"
	Symbols        string // "replace" or "strip"
	Collapse       int    // run-collapse threshold, 0 disables
	FoldDiacritics bool
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // text or json
}

// Load reads configuration from WINNOW_* environment variables.
func Load() Config {
	return Config{
		Input: InputConfig{
			RawCSV:  getenv("WINNOW_INPUT", "data/b2w.csv"),
			DataDir: getenv("WINNOW_DATA_DIR", "data"),
		},
		Sample: SampleConfig{
			Target: getenvInt("WINNOW_TARGET", 2000),
			Seed:   int64(getenvInt("WINNOW_SEED", 57)),
			Order:  parseOrder(os.Getenv("WINNOW_CLASS_ORDER")),
		},
		Split: assemble.Ratios{
			Train: getenvFloat("WINNOW_TRAIN_RATIO", 0.8),
			Test:  getenvFloat("WINNOW_TEST_RATIO", 0.1),
			Val:   getenvFloat("WINNOW_VAL_RATIO", 0.1),
		},
		Output: OutputConfig{
			Dir:      getenv("WINNOW_OUTPUT_DIR", "training"),
			Preview:  getenvBool("WINNOW_PREVIEW", false),
			Manifest: getenvBool("WINNOW_MANIFEST", true),
		},
		Clean: CleanConfig{
			Quotes:         getenv("WINNOW_QUOTES", "replace"),
			Symbols:        getenv("WINNOW_SYMBOLS", "replace"),
			Collapse:       getenvInt("WINNOW_COLLAPSE", 3),
			FoldDiacritics: getenvBool("WINNOW_FOLD_DIACRITICS", false),
		},
		Log: LogConfig{
			Level:  getenv("WINNOW_LOG_LEVEL", "info"),
			Format: getenv("WINNOW_LOG_FORMAT", "text"),
		},
	}
}

// Validate checks the configuration. All problems found are joined into
// one error wrapping ErrInvalid.
func (c Config) Validate() error {
	var errs []error
	if c.Sample.Target <= 0 {
		errs = append(errs, fmt.Errorf("target per class must be positive, got %d", c.Sample.Target))
	}
	if err := c.Split.Validate(); err != nil {
		errs = append(errs, err)
	}
	if len(c.Sample.Order) == 0 {
		errs = append(errs, errors.New("class order is empty"))
	}
	seen := make(map[model.Polarity]bool)
	for _, p := range c.Sample.Order {
		if seen[p] {
			errs = append(errs, fmt.Errorf("class order repeats %s", p))
		}
		seen[p] = true
	}
	if p := c.Clean.Quotes; p != "replace" && p != "strip" {
		errs = append(errs, fmt.Errorf("quotes policy must be replace or strip, got %q", p))
	}
	if p := c.Clean.Symbols; p != "replace" && p != "strip" {
		errs = append(errs, fmt.Errorf("symbols policy must be replace or strip, got %q", p))
	}
	if c.Output.Dir == "" {
		errs = append(errs, errors.New("output directory is empty"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
	}
	return nil
}

// NormalizerOptions converts the cleaning config to normalize.Options.
func (c Config) NormalizerOptions() normalize.Options {
	opts := normalize.Defaults()
	if c.Clean.Quotes == "strip" {
		opts.Quotes = normalize.Strip
	}
	if c.Clean.Symbols == "strip" {
		opts.Symbols = normalize.Strip
	}
	opts.CollapseThreshold = c.Clean.Collapse
	opts.FoldDiacritics = c.Clean.FoldDiacritics
	return opts
}

// ClassCSV returns the per-class intermediate CSV path for a label.
func (c Config) ClassCSV(label model.Polarity) string {
	return filepath.Join(c.Input.DataDir, "b2w_"+label.String()+".csv")
}

// parseOrder parses a comma-separated class list; empty or invalid input
// falls back to the default precedence.
func parseOrder(s string) []model.Polarity {
	if s == "" {
		return model.DefaultPrecedence()
	}
	var order []model.Polarity
	for _, part := range strings.Split(s, ",") {
		p, err := model.ParsePolarity(part)
		if err != nil {
			return model.DefaultPrecedence()
		}
		order = append(order, p)
	}
	return order
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getenvFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}

func getenvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
