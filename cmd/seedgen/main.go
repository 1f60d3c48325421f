// Command seedgen writes a synthetic product catalog for CATALOG_SEED_FILE.
//
// Run: go run ./cmd/seedgen -n 10000 -o catalog.json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/utafrali/storefront/internal/catalog"
	"github.com/utafrali/storefront/pkg/logger"
)

func main() {
	var (
		count = flag.Int("n", 1000, "number of products to generate")
		seed  = flag.Uint64("seed", 42, "random seed")
		out   = flag.String("o", "-", "output file, - for stdout")
	)
	flag.Parse()

	// The catalog may go to stdout, so logs go to stderr.
	log := logger.NewWithWriter("seedgen", os.Getenv("LOG_LEVEL"), os.Stderr)

	if err := run(*count, *seed, *out); err != nil {
		log.Error("failed to generate catalog", slog.String("error", err.Error()))
		os.Exit(1)
	}
	log.Info("catalog generated",
		slog.Int("products", *count),
		slog.Uint64("seed", *seed),
		slog.String("output", *out),
	)
}

func run(count int, seed uint64, out string) error {
	if count < 1 {
		return fmt.Errorf("-n must be at least 1, got %d", count)
	}

	var w io.Writer = os.Stdout
	if out != "-" {
		f, err := os.Create(out)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		w = f
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(catalog.Generate(count, seed)); err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}
	return nil
}
