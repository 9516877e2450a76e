package model

import (
	"fmt"
	"strconv"
	"strings"
)

// Polarity is a sentiment class label. The numeric values are fixed by the
// published dataset format: 0=negative, 1=neutral, 2=positive.
type Polarity int

const (
	Negative Polarity = 0
	Neutral  Polarity = 1
	Positive Polarity = 2
)

// DefaultPrecedence is the class order used for interleaving when no
// explicit order is configured.
func DefaultPrecedence() []Polarity {
	return []Polarity{Negative, Neutral, Positive}
}

// String returns the sentiment name ("negative", "neutral", "positive").
func (p Polarity) String() string {
	switch p {
	case Negative:
		return "negative"
	case Neutral:
		return "neutral"
	case Positive:
		return "positive"
	default:
		return fmt.Sprintf("polarity(%d)", int(p))
	}
}

// Value returns the numeric label written to label files.
func (p Polarity) Value() int {
	return int(p)
}

// ParsePolarity accepts a sentiment name ("negative", "neutral",
// "positive", case-insensitive) or a numeric label ("0", "1", "2").
func ParsePolarity(s string) (Polarity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "negative":
		return Negative, nil
	case "neutral":
		return Neutral, nil
	case "positive":
		return Positive, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err == nil && n >= 0 && n <= 2 {
		return Polarity(n), nil
	}
	return 0, fmt.Errorf("unknown polarity %q", s)
}
