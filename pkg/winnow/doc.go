// Package winnow provides an embeddable API over the dataset build
// pipeline: filter raw reviews into class buckets, sample and clean a
// fixed count per class, interleave the classes, and write
// train/test/val text+label file pairs.
//
// Quick start:
//
//	b, err := winnow.New(
//	    winnow.WithRawCSV("data/b2w.csv"),
//	    winnow.WithOutputDir("training"),
//	    winnow.WithTargetCount(2000),
//	    winnow.WithSeed(57),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	summary, err := b.Run(context.Background())
//
// Builds are deterministic: the same input files, options, and seed
// produce byte-identical output files. Each split is a pair of
// newline-delimited files, <split>_text.txt and <split>_labels.txt,
// where line i of both files describes the same example.
package winnow
