// Command translatevalues rewrites legacy English shoreline labels
// ("with"/"without") in a transactions CSV to the canonical Finnish codes
// ("ranta"/"ei_rantaa"). Values already in canonical form pass through, so
// the rewrite is safe to run repeatedly.
package main

import (
	"flag"
	"log/slog"
	"os"

	"lomacli/internal/dataset"
)

func main() {
	file := flag.String("file", "", "path to the transactions CSV to rewrite")
	dryRun := flag.Bool("dry-run", false, "report what would change without writing")
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

	out, err := dataset.TranslateShoreline(rows)
	if err != nil {
		logger.Error("failed to translate shoreline values",
			slog.String("file", *file),
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	changed := countChangedRows(rows, out)

	if *dryRun {
		logger.Info("dry run, not writing",
			slog.String("file", *file),
			slog.Int("rows_changed", changed))
		return
	}

	if err := dataset.WriteCSVFileAtomic(*file, out); err != nil {
		logger.Error("failed to write output file",
			slog.String("file", *file),
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("shoreline values translated",
		slog.String("file", *file),
		slog.Int("rows_changed", changed))
}

func countChangedRows(before, after [][]string) int {
	changed := 0
	for i := range before {
		if i >= len(after) {
			break
		}
		for j := range before[i] {
			if j < len(after[i]) && before[i][j] != after[i][j] {
				changed++
				break
			}
		}
	}
	return changed
}
