// Package normalize cleans raw review text into the form stored in the
// final dataset: quotes and symbols handled per policy, character runs
// collapsed, whitespace folded to single spaces, optional diacritic
// stripping for accent-folded keyword matching.
//
// Normalization is total, deterministic for a fixed Options value, and
// idempotent: Normalize(Normalize(s)) == Normalize(s).
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Policy selects how a removed character class is handled.
type Policy int

const (
	// Replace substitutes a single space for each matched rune.
	Replace Policy = iota
	// Strip deletes matched runes outright.
	Strip
)

// Options configures a Normalizer. The zero value is not useful; use
// Defaults and override fields as needed.
type Options struct {
	// Quotes controls handling of '"' and '\''.
	Quotes Policy
	// Symbols controls handling of runes that are not letters, digits,
	// underscore, or whitespace.
	Symbols Policy
	// CollapseThreshold collapses runs of this many (or more) identical
	// runes to a single occurrence. Values below 2 disable collapsing.
	CollapseThreshold int
	// FoldDiacritics strips combining marks (NFD, drop Mn, NFC) before
	// the other rules run, so "péssimo" and "pessimo" normalize alike.
	FoldDiacritics bool
}

// Defaults returns the options used by the dataset pipeline: quotes and
// symbols replaced with spaces, runs of 3+ collapsed, diacritics kept.
func Defaults() Options {
	return Options{
		Quotes:            Replace,
		Symbols:           Replace,
		CollapseThreshold: 3,
	}
}

// Normalizer applies a fixed set of cleaning rules to text.
type Normalizer struct {
	opts   Options
	folder transform.Transformer
}

// New creates a Normalizer with the given options.
func New(opts Options) *Normalizer {
	n := &Normalizer{opts: opts}
	if opts.FoldDiacritics {
		n.folder = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	}
	return n
}

// Normalize cleans s. Empty input yields empty output; there are no error
// conditions.
func (n *Normalizer) Normalize(s string) string {
	if s == "" {
		return ""
	}
	if n.folder != nil {
		if folded, _, err := transform.String(n.folder, s); err == nil {
			s = folded
		}
	}

	var b strings.Builder
	b.Grow(len(s))

	// Runs are buffered and flushed when broken: a run of CollapseThreshold
	// or more identical runes collapses to a single occurrence, shorter
	// runs are kept whole.
	var cur rune
	count := 0
	pendingSpace := false
	wrote := false

	flush := func() {
		if count == 0 {
			return
		}
		if pendingSpace && wrote {
			b.WriteRune(' ')
		}
		pendingSpace = false
		wrote = true
		if n.opts.CollapseThreshold >= 2 && count >= n.opts.CollapseThreshold {
			count = 1
		}
		for ; count > 0; count-- {
			b.WriteRune(cur)
		}
	}

	emit := func(r rune) {
		if count > 0 && r != cur {
			flush()
		}
		cur = r
		count++
	}

	space := func() {
		// Whitespace breaks character runs and collapses to one space,
		// dropped entirely at the start and end.
		flush()
		pendingSpace = true
	}

	for _, r := range s {
		switch {
		case r == '"' || r == '\'':
			if n.opts.Quotes == Replace {
				space()
			}
		case unicode.IsSpace(r):
			space()
		case r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r):
			emit(r)
		default:
			if n.opts.Symbols == Replace {
				space()
			}
		}
	}
	flush()
	return b.String()
}

// NormalizeAll cleans each element of texts, preserving order.
func (n *Normalizer) NormalizeAll(texts []string) []string {
	out := make([]string, len(texts))
	for i, t := range texts {
		out[i] = n.Normalize(t)
	}
	return out
}
