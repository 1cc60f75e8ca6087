// Command updateheader replaces the first line of a transactions CSV with
// the canonical Finnish header row. Used when an upstream export arrives
// with mangled or translated column names.
package main

import (
	"flag"
	"log/slog"
	"os"

	"lomacli/internal/dataset"
)

func main() {
	file := flag.String("file", "", "path to the transactions CSV to rewrite")
	dryRun := flag.Bool("dry-run", false, "print the resulting header without writing")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))

	if *file == "" {
		logger.Error("missing required -file flag")
		flag.Usage()
		os.Exit(2)
	}

	rows, err := dataset.ReadCSVFile(*file)
	if err != nil {
		logger.Error("failed to read input file",
			slog.String("file", *file),
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	out, err := dataset.RewriteHeader(rows)
	if err != nil {
		logger.Error("failed to rewrite header",
			slog.String("file", *file),
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	if *dryRun {
		logger.Info("dry run, not writing",
			slog.String("file", *file),
			slog.Any("header", out[0]))
		return
	}

	if err := dataset.WriteCSVFileAtomic(*file, out); err != nil {
		logger.Error("failed to write output file",
			slog.String("file", *file),
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("header rewritten",
		slog.String("file", *file),
		slog.Int("data_rows", len(out)-1))
}
