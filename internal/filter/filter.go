// Package filter selects candidate rows for each sentiment class using the
// heuristic rules of the upstream B2W pipeline: polarity and rating
// equality plus keyword include/exclude lists matched against the
// pre-processed review text.
package filter

import (
	"strings"

	"github.com/crimson-sun/winnow/internal/model"
)

// Rule describes how candidate rows for one class are selected.
// Nil equality fields are ignored. Include keywords keep a row when ANY
// matches; exclude keywords drop a row when ANY matches. Matching is plain
// substring on the processed text, which the pipeline accent-folds first.
type Rule struct {
	Label    model.Polarity
	Polarity *int
	Rating   *int
	Include  []string
	Exclude  []string
}

// Match reports whether the review satisfies the rule.
func (r Rule) Match(rev model.Review) bool {
	if r.Polarity != nil && rev.Polarity != *r.Polarity {
		return false
	}
	if r.Rating != nil && rev.Rating != *r.Rating {
		return false
	}
	if len(r.Include) > 0 && !containsAny(rev.Processed, r.Include) {
		return false
	}
	if containsAny(rev.Processed, r.Exclude) {
		return false
	}
	return true
}

// Apply collects the reviews matching the rule into a bucket for the
// rule's label, preserving input order.
func (r Rule) Apply(reviews []model.Review) model.Bucket {
	b := model.Bucket{Label: r.Label}
	for _, rev := range reviews {
		if r.Match(rev) {
			b.Reviews = append(b.Reviews, rev)
		}
	}
	return b
}

// DefaultRules returns the three class rules of the original pipeline.
// The raw export carries binary polarity (0=negative, 1=positive); neutral
// rows are mined from 3-star reviews by keyword heuristics.
func DefaultRules() []Rule {
	return []Rule{
		{
			Label:    model.Negative,
			Polarity: intp(0),
		},
		{
			Label:   model.Neutral,
			Rating:  intp(3),
			Include: []string{"porem", "mas"},
			Exclude: []string{
				"indico", "bom", "otimo", "infelizmente", "recomendo",
				"pessimo", "pessima", "excelente", "horrivel",
			},
		},
		{
			Label:    model.Positive,
			Polarity: intp(1),
			Exclude:  []string{"porem", "caro", "ressalva"},
		},
	}
}

func containsAny(s string, keywords []string) bool {
	if s == "" {
		return false
	}
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

func intp(n int) *int { return &n }
