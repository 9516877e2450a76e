package assemble

import (
	"errors"
	"fmt"
	"testing"

	"github.com/crimson-sun/winnow/internal/model"
)

func class(label model.Polarity, texts ...string) []model.Example {
	out := make([]model.Example, 0, len(texts))
	for _, txt := range texts {
		out = append(out, model.Example{Text: txt, Label: label})
	}
	return out
}

func texts(examples []model.Example) []string {
	out := make([]string, 0, len(examples))
	for _, ex := range examples {
		out = append(out, ex.Text)
	}
	return out
}

func equal(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

func TestInterleaveUnevenClasses(t *testing.T) {
	classes := [][]model.Example{
		class(model.Negative, "neg1", "neg2", "neg3"),
		class(model.Neutral, "neu1", "neu2"),
		class(model.Positive, "pos1"),
	}
	merged := Interleave(classes)
	want := []string{"neg1", "neu1", "pos1", "neg2", "neu2", "neg3"}
	if !equal(texts(merged), want) {
		t.Fatalf("got %v, want %v", texts(merged), want)
	}
}

func TestInterleavePreservesIntraClassOrder(t *testing.T) {
	classes := [][]model.Example{
		class(model.Negative, "a", "b", "c", "d"),
		class(model.Positive, "x", "y"),
	}
	merged := Interleave(classes)
	var negs []string
	for _, ex := range merged {
		if ex.Label == model.Negative {
			negs = append(negs, ex.Text)
		}
	}
	if !equal(negs, []string{"a", "b", "c", "d"}) {
		t.Fatalf("intra-class order not preserved: %v", negs)
	}
}

func TestAssembleScenario(t *testing.T) {
	classes := [][]model.Example{
		class(model.Negative, "neg1", "neg2", "neg3"),
		class(model.Neutral, "neu1", "neu2"),
		class(model.Positive, "pos1"),
	}
	// Binary-exact ratios producing the 3/2/1 positional partition.
	ds, err := Assemble(classes, Ratios{Train: 0.5, Test: 0.375, Val: 0.125})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !equal(texts(ds.Train), []string{"neg1", "neu1", "pos1"}) {
		t.Fatalf("train: got %v", texts(ds.Train))
	}
	if !equal(texts(ds.Test), []string{"neg2", "neu2"}) {
		t.Fatalf("test: got %v", texts(ds.Test))
	}
	if !equal(texts(ds.Val), []string{"neg3"}) {
		t.Fatalf("val: got %v", texts(ds.Val))
	}
}

func TestAssembleSplitSizesSum(t *testing.T) {
	for n := 0; n <= 25; n++ {
		var seq []model.Example
		for i := 0; i < n; i++ {
			seq = append(seq, model.Example{Text: fmt.Sprintf("t%d", i), Label: model.Positive})
		}
		ds, err := Assemble([][]model.Example{seq}, Ratios{Train: 0.8, Test: 0.1, Val: 0.1})
		if n == 0 {
			if !errors.Is(err, ErrNoData) {
				t.Fatalf("n=0: expected ErrNoData, got %v", err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("n=%d: unexpected error: %v", n, err)
		}
		if ds.Total() != n {
			t.Fatalf("n=%d: splits sum to %d", n, ds.Total())
		}
	}
}

func TestAssembleBadRatios(t *testing.T) {
	classes := [][]model.Example{class(model.Positive, "a")}
	_, err := Assemble(classes, Ratios{Train: 0.8, Test: 0.1, Val: 0.2})
	if !errors.Is(err, ErrBadRatios) {
		t.Fatalf("expected ErrBadRatios, got %v", err)
	}
	_, err = Assemble(classes, Ratios{Train: 1.2, Test: -0.1, Val: -0.1})
	if !errors.Is(err, ErrBadRatios) {
		t.Fatalf("expected ErrBadRatios for negative ratio, got %v", err)
	}
}

func TestAssembleFloatArtifactRatiosAccepted(t *testing.T) {
	// 0.8+0.1+0.1 is not exactly 1.0 in binary floating point; it must
	// still validate.
	if err := (Ratios{Train: 0.8, Test: 0.1, Val: 0.1}).Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestAssembleAllEmpty(t *testing.T) {
	ds, err := Assemble([][]model.Example{nil, nil, nil}, Ratios{Train: 0.8, Test: 0.1, Val: 0.1})
	if !errors.Is(err, ErrNoData) {
		t.Fatalf("expected ErrNoData, got %v", err)
	}
	if ds.Total() != 0 {
		t.Fatalf("expected empty dataset, got %d examples", ds.Total())
	}
}

func TestAssembleNoClasses(t *testing.T) {
	_, err := Assemble(nil, Ratios{Train: 0.8, Test: 0.1, Val: 0.1})
	if !errors.Is(err, ErrNoData) {
		t.Fatalf("expected ErrNoData, got %v", err)
	}
}

func TestAssembleTinyInputAllowsEmptySplits(t *testing.T) {
	ds, err := Assemble([][]model.Example{class(model.Positive, "only")}, Ratios{Train: 0.8, Test: 0.1, Val: 0.1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ds.Train) != 0 || len(ds.Test) != 0 || len(ds.Val) != 1 {
		t.Fatalf("got train=%d test=%d val=%d", len(ds.Train), len(ds.Test), len(ds.Val))
	}
}

func TestAssembleDeterministic(t *testing.T) {
	classes := [][]model.Example{
		class(model.Negative, "n1", "n2"),
		class(model.Positive, "p1", "p2", "p3"),
	}
	r := Ratios{Train: 0.5, Test: 0.25, Val: 0.25}
	a, _ := Assemble(classes, r)
	b, _ := Assemble(classes, r)
	if !equal(texts(a.Train), texts(b.Train)) || !equal(texts(a.Test), texts(b.Test)) || !equal(texts(a.Val), texts(b.Val)) {
		t.Fatal("assemble is not deterministic")
	}
}
