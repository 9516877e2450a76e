// Package assemble merges per-class example sequences into one dataset:
// a round-robin interleave over a fixed class precedence followed by a
// purely positional train/test/val split.
package assemble

import (
	"errors"
	"fmt"
	"math"

	"github.com/crimson-sun/winnow/internal/model"
)

// ErrBadRatios is returned when the split ratios do not sum to 1.0.
// It is a precondition failure: no interleave or split work happens.
var ErrBadRatios = errors.New("split ratios must sum to 1.0")

// ErrNoData signals that every class sequence was empty. The returned
// dataset is valid (three empty splits); the caller decides whether to
// proceed.
var ErrNoData = errors.New("no examples to assemble")

// Ratios are the train/test/val proportions. They must sum to 1.0;
// comparison allows 1e-9 of float artifact so 0.8+0.1+0.1 passes.
type Ratios struct {
	Train float64
	Test  float64
	Val   float64
}

// Validate checks the ratio sum and bounds.
func (r Ratios) Validate() error {
	if r.Train < 0 || r.Test < 0 || r.Val < 0 {
		return fmt.Errorf("%w: got negative ratio (train=%g test=%g val=%g)", ErrBadRatios, r.Train, r.Test, r.Val)
	}
	if sum := r.Train + r.Test + r.Val; math.Abs(sum-1.0) > 1e-9 {
		return fmt.Errorf("%w: got %g", ErrBadRatios, sum)
	}
	return nil
}

// Dataset holds the three positional splits of the interleaved sequence.
type Dataset struct {
	Train []model.Example
	Test  []model.Example
	Val   []model.Example
}

// Total returns the number of examples across all splits.
func (d Dataset) Total() int {
	return len(d.Train) + len(d.Test) + len(d.Val)
}

// Assemble interleaves the class sequences round-robin in the given order
// and splits the result positionally. Each round takes one element from
// every class that still has elements, in precedence order; exhausted
// classes are skipped. Intra-class order is preserved.
//
// Invalid ratios return ErrBadRatios before any work. All-empty input
// returns an empty Dataset plus ErrNoData. Undersized input may produce
// empty splits; that is valid and not an error.
func Assemble(classes [][]model.Example, ratios Ratios) (Dataset, error) {
	if err := ratios.Validate(); err != nil {
		return Dataset{}, err
	}

	merged := Interleave(classes)
	if len(merged) == 0 {
		return Dataset{}, ErrNoData
	}

	n := len(merged)
	trainEnd := int(float64(n) * ratios.Train)
	testEnd := int(float64(n) * (ratios.Train + ratios.Test))

	return Dataset{
		Train: merged[:trainEnd],
		Test:  merged[trainEnd:testEnd],
		Val:   merged[testEnd:],
	}, nil
}

// Interleave performs the round-robin merge on its own. Exposed for
// callers that split differently.
func Interleave(classes [][]model.Example) []model.Example {
	total := 0
	for _, c := range classes {
		total += len(c)
	}
	merged := make([]model.Example, 0, total)
	for round := 0; len(merged) < total; round++ {
		for _, c := range classes {
			if round < len(c) {
				merged = append(merged, c[round])
			}
		}
	}
	return merged
}
