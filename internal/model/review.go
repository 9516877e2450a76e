package model

// Review is a raw input row as produced by a source, before filtering and
// cleaning. Index is the row's position in its source and identifies the
// row for duplicate exclusion during sampling.
type Review struct {
	Index     int
	Polarity  int    // source polarity column (binary in the raw B2W export)
	Rating    int    // star rating, 1-5
	Text      string // primary review text
	Processed string // pre-processed review text, used as fallback and for keyword rules
}

// Bucket is an ordered set of candidate reviews for one class.
type Bucket struct {
	Label   Polarity
	Reviews []Review
}

// Len returns the number of candidate rows.
func (b Bucket) Len() int { return len(b.Reviews) }
