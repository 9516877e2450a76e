package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/crimson-sun/winnow/internal/config"
	"github.com/crimson-sun/winnow/internal/logging"
	"github.com/crimson-sun/winnow/internal/pipeline"

	// Register source format implementations.
	_ "github.com/crimson-sun/winnow/internal/source/csvfile"
	_ "github.com/crimson-sun/winnow/internal/source/jsonl"
)

var (
	mode       = flag.String("mode", "all", "prepare|dataset|convert|inspect|all")
	convertIn  = flag.String("in", "", "Input path for convert mode (.jsonl or .csv)")
	convertOut = flag.String("out", "", "Output CSV path for convert mode")
	rating     = flag.Int("rating", 3, "Rating to match in inspect mode")
	tail       = flag.Int("tail", 10, "Number of rows to print in inspect mode")
)

func main() {
	flag.Parse()

	cfg := config.Load()
	logging.Setup(nil, cfg.Log.Level, cfg.Log.Format)

	p, err := pipeline.New(cfg)
	if err != nil {
		log.Fatalf("winnow: %v", err)
	}

	// Interrupt cancels between stages; the transforms themselves are
	// short and synchronous.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	switch *mode {
	case "prepare":
		if _, err := p.Prepare(ctx); err != nil {
			log.Fatalf("prepare: %v", err)
		}
	case "dataset":
		if _, err := p.BuildDataset(ctx, nil); err != nil {
			log.Fatalf("dataset: %v", err)
		}
	case "convert":
		if *convertIn == "" || *convertOut == "" {
			log.Fatal("convert mode requires -in and -out")
		}
		if _, err := p.Convert(ctx, *convertIn, *convertOut); err != nil {
			log.Fatalf("convert: %v", err)
		}
	case "inspect":
		if err := p.Inspect(os.Stdout, *rating, *tail); err != nil {
			log.Fatalf("inspect: %v", err)
		}
	case "all":
		reports, err := p.Prepare(ctx)
		if err != nil {
			log.Fatalf("prepare: %v", err)
		}
		if _, err := p.BuildDataset(ctx, reports); err != nil {
			log.Fatalf("dataset: %v", err)
		}
	default:
		log.Fatalf("unknown mode %q (expected prepare|dataset|convert|inspect|all)", *mode)
	}
}
