// Package sampler draws a fixed number of cleaned examples from a class
// bucket. Draws are seeded and fully deterministic; cleaning can empty a
// candidate out, so the sampler retries with growing batches over the
// not-yet-drawn remainder, bounded to a fixed number of rounds. A bucket
// that cannot fulfill the target yields a shorter result and a shortfall
// flag, never an error.
package sampler

import (
	"math"
	"math/rand"

	"github.com/crimson-sun/winnow/internal/model"
	"github.com/crimson-sun/winnow/internal/normalize"
)

const (
	maxRounds     = 3
	initialFactor = 1.5
	retryFactor   = 1.8
)

// Report describes how a sample request was fulfilled.
type Report struct {
	Label     model.Polarity
	Requested int
	Returned  int
	Rounds    int
	Shortfall bool
}

// Sampler draws labeled examples from buckets using a shared normalizer.
type Sampler struct {
	norm *normalize.Normalizer
	seed int64
}

// New creates a Sampler. The seed fixes every draw; identical inputs and
// seed produce identical output.
func New(norm *normalize.Normalizer, seed int64) *Sampler {
	return &Sampler{norm: norm, seed: seed}
}

// Sample draws up to target examples from the bucket. Each drawn row is
// normalized via its primary text, falling back to the processed text;
// rows empty under both are discarded but stay consumed, so no source row
// is ever drawn twice. The result is truncated to exactly target when the
// accepted rows overshoot.
func (s *Sampler) Sample(bucket model.Bucket, target int) ([]model.Example, Report) {
	report := Report{Label: bucket.Label, Requested: target}
	if target <= 0 || bucket.Len() == 0 {
		report.Shortfall = target > 0
		return nil, report
	}

	// pool holds indices into bucket.Reviews not yet drawn.
	pool := make([]int, bucket.Len())
	for i := range pool {
		pool[i] = i
	}

	var accepted []model.Example
	for round := 0; round < maxRounds && len(accepted) < target && len(pool) > 0; round++ {
		var want int
		if round == 0 {
			want = scaled(target, initialFactor)
		} else {
			want = scaled(target-len(accepted), retryFactor)
		}
		if want > len(pool) {
			want = len(pool)
		}

		drawn, rest := draw(pool, want, s.seed+int64(round))
		pool = rest
		for _, idx := range drawn {
			rev := bucket.Reviews[idx]
			text := s.norm.Normalize(rev.Text)
			if text == "" {
				text = s.norm.Normalize(rev.Processed)
			}
			if text == "" {
				continue
			}
			accepted = append(accepted, model.Example{Text: text, Label: bucket.Label})
		}
		report.Rounds++
	}

	if len(accepted) > target {
		keep, _ := draw(indices(len(accepted)), target, s.seed)
		truncated := make([]model.Example, 0, target)
		for _, i := range keep {
			truncated = append(truncated, accepted[i])
		}
		accepted = truncated
	}

	report.Returned = len(accepted)
	report.Shortfall = len(accepted) < target
	return accepted, report
}

// draw removes n deterministically chosen elements from pool and returns
// them in draw order along with the untouched remainder.
func draw(pool []int, n int, seed int64) (drawn, rest []int) {
	if n >= len(pool) {
		n = len(pool)
	}
	rng := rand.New(rand.NewSource(seed))
	perm := rng.Perm(len(pool))

	drawn = make([]int, 0, n)
	taken := make(map[int]bool, n)
	for _, p := range perm[:n] {
		drawn = append(drawn, pool[p])
		taken[p] = true
	}
	rest = make([]int, 0, len(pool)-n)
	for i, v := range pool {
		if !taken[i] {
			rest = append(rest, v)
		}
	}
	return drawn, rest
}

func indices(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

func scaled(n int, factor float64) int {
	return int(math.Ceil(float64(n) * factor))
}
