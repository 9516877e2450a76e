package model

// Example is winnow's output type: one labeled, normalized training row.
// Text is always non-empty. Immutable once produced.
type Example struct {
	Text  string
	Label Polarity
}
