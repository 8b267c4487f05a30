package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"ngramkit/config"
	"ngramkit/internal/adapter/analyzer"
	"ngramkit/internal/adapter/fs"
	"ngramkit/internal/domain"
	"ngramkit/ngram"
)

func main() {
	file := flag.String("f", "", "Text file to generate from")
	dir := flag.String("dir", ".", "Directory holding ngram.yaml")
	maxN := flag.Int("n", 4, "Largest gram size to try")
	maxK := flag.Int("k", 2, "Largest skip budget to try")
	flag.Parse()

	if *file == "" {
		fmt.Println("Usage: go run cmd/benchmark/main.go -f corpus.txt [-n 4] [-k 2]")
		fmt.Println("\nMeasures, for every n and k up to the limits:")
		fmt.Println("  1. Grams generated per sequence set")
		fmt.Println("  2. Distinct grams")
		fmt.Println("  3. Generation throughput")
		os.Exit(1)
	}

	cfg, err := config.LoadFromDir(*dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	content, err := fs.ReadFile(*file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", *file, err)
		os.Exit(1)
	}

	tokenizer := analyzer.NewTokenizer(cfg.Tokenize)
	seqs := tokenizer.Sequences(content, cfg.Corpus.Unit)
	items := 0
	for _, s := range seqs {
		items += len(s)
	}

	var opts []ngram.Option[string]
	if cfg.Generate.PadLeft != "" {
		opts = append(opts, ngram.WithLeftPad(cfg.Generate.PadLeft))
	}
	if cfg.Generate.PadRight != "" {
		opts = append(opts, ngram.WithRightPad(cfg.Generate.PadRight))
	}

	fmt.Println("N-GRAM GENERATION BENCHMARK")
	fmt.Println(strings.Repeat("=", 70))
	fmt.Printf("Sequences: %d (%s)\n", len(seqs), cfg.Corpus.Unit)
	fmt.Printf("Items:     %d\n", items)
	fmt.Println(strings.Repeat("-", 70))
	fmt.Printf("%3s %3s %12s %12s %12s %14s\n", "n", "k", "grams", "distinct", "elapsed", "grams/sec")

	for n := 1; n <= *maxN; n++ {
		for k := 0; k <= *maxK; k++ {
			counts := make(domain.GramCounts)
			start := time.Now()
			for _, s := range seqs {
				g, err := ngram.SkipGrams(s, n, k, opts...)
				if err != nil {
					fmt.Fprintf(os.Stderr, "Generation error: %v\n", err)
					os.Exit(1)
				}
				for gram := range g.All() {
					counts.Add(gram)
				}
			}
			elapsed := time.Since(start)

			total := counts.Total()
			rate := 0.0
			if elapsed > 0 {
				rate = float64(total) / elapsed.Seconds()
			}
			fmt.Printf("%3d %3d %12d %12d %12s %14.0f\n", n, k, total, len(counts), elapsed.Round(time.Microsecond), rate)
		}
	}
	fmt.Println(strings.Repeat("=", 70))
}
