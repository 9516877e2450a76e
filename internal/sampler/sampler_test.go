package sampler

import (
	"fmt"
	"testing"

	"github.com/crimson-sun/winnow/internal/model"
	"github.com/crimson-sun/winnow/internal/normalize"
)

func bucket(label model.Polarity, n int) model.Bucket {
	b := model.Bucket{Label: label}
	for i := 0; i < n; i++ {
		b.Reviews = append(b.Reviews, model.Review{
			Index:     i,
			Text:      fmt.Sprintf("review numero %d muito bom", i),
			Processed: fmt.Sprintf("review numero %d", i),
		})
	}
	return b
}

func newSampler(seed int64) *Sampler {
	return New(normalize.New(normalize.Defaults()), seed)
}

func TestSampleExactCount(t *testing.T) {
	s := newSampler(57)
	examples, report := s.Sample(bucket(model.Positive, 100), 20)
	if len(examples) != 20 {
		t.Fatalf("expected 20 examples, got %d", len(examples))
	}
	if report.Shortfall {
		t.Fatal("expected no shortfall")
	}
	if report.Returned != 20 || report.Requested != 20 {
		t.Fatalf("bad report: %+v", report)
	}
	for _, ex := range examples {
		if ex.Label != model.Positive {
			t.Fatalf("expected positive label, got %v", ex.Label)
		}
		if ex.Text == "" {
			t.Fatal("empty text in output")
		}
	}
}

func TestSampleDeterministic(t *testing.T) {
	b := bucket(model.Neutral, 200)
	first, _ := newSampler(42).Sample(b, 50)
	second, _ := newSampler(42).Sample(b, 50)
	if len(first) != len(second) {
		t.Fatalf("lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("index %d differs: %v vs %v", i, first[i], second[i])
		}
	}
}

func TestSampleSeedChangesSelection(t *testing.T) {
	b := bucket(model.Neutral, 200)
	first, _ := newSampler(1).Sample(b, 50)
	second, _ := newSampler(2).Sample(b, 50)
	same := true
	for i := range first {
		if first[i] != second[i] {
			same = false
			break
		}
	}
	if same {
		t.Fatal("expected different seeds to produce different draws")
	}
}

func TestSampleNoDuplicateSourceRows(t *testing.T) {
	// Every review text is unique, so duplicate texts would mean a source
	// row was drawn twice.
	b := bucket(model.Negative, 60)
	examples, _ := newSampler(7).Sample(b, 60)
	seen := make(map[string]bool, len(examples))
	for _, ex := range examples {
		if seen[ex.Text] {
			t.Fatalf("duplicate source row in output: %q", ex.Text)
		}
		seen[ex.Text] = true
	}
}

func TestSampleShortfall(t *testing.T) {
	b := bucket(model.Positive, 1500)
	examples, report := newSampler(57).Sample(b, 2000)
	if len(examples) != 1500 {
		t.Fatalf("expected all 1500 rows, got %d", len(examples))
	}
	if !report.Shortfall {
		t.Fatal("expected shortfall to be reported")
	}
	if report.Returned != 1500 {
		t.Fatalf("expected Returned=1500, got %d", report.Returned)
	}
}

func TestSampleFallbackToProcessedText(t *testing.T) {
	b := model.Bucket{Label: model.Negative}
	// Primary text cleans to empty; processed text survives.
	b.Reviews = append(b.Reviews, model.Review{Index: 0, Text: "!!! ...", Processed: "ruim demais"})
	examples, report := newSampler(3).Sample(b, 1)
	if len(examples) != 1 {
		t.Fatalf("expected 1 example, got %d", len(examples))
	}
	if examples[0].Text != "ruim demais" {
		t.Fatalf("expected fallback text, got %q", examples[0].Text)
	}
	if report.Shortfall {
		t.Fatal("expected no shortfall")
	}
}

func TestSampleDiscardsUncleanableRows(t *testing.T) {
	b := model.Bucket{Label: model.Negative}
	for i := 0; i < 10; i++ {
		b.Reviews = append(b.Reviews, model.Review{Index: i, Text: "???", Processed: "..."})
	}
	examples, report := newSampler(9).Sample(b, 5)
	if len(examples) != 0 {
		t.Fatalf("expected no examples, got %d", len(examples))
	}
	if !report.Shortfall {
		t.Fatal("expected shortfall")
	}
	if report.Rounds == 0 {
		t.Fatal("expected at least one round")
	}
}

func TestSampleRetriesAreBounded(t *testing.T) {
	b := model.Bucket{Label: model.Negative}
	for i := 0; i < 10000; i++ {
		b.Reviews = append(b.Reviews, model.Review{Index: i, Text: "..."})
	}
	_, report := newSampler(11).Sample(b, 100)
	if report.Rounds > 3 {
		t.Fatalf("expected at most 3 rounds, got %d", report.Rounds)
	}
}

func TestSampleEmptyBucket(t *testing.T) {
	examples, report := newSampler(5).Sample(model.Bucket{Label: model.Neutral}, 10)
	if examples != nil {
		t.Fatalf("expected nil, got %v", examples)
	}
	if !report.Shortfall {
		t.Fatal("expected shortfall for empty bucket")
	}
}

func TestSampleZeroTarget(t *testing.T) {
	examples, report := newSampler(5).Sample(bucket(model.Neutral, 10), 0)
	if len(examples) != 0 {
		t.Fatalf("expected no examples, got %d", len(examples))
	}
	if report.Shortfall {
		t.Fatal("zero target is trivially fulfilled")
	}
}
