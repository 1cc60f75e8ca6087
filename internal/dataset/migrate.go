package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"lomacli/internal/config"
	apperrors "lomacli/internal/errors"
)

// One-off maintenance transforms for the dataset file. Both operate on rows
// in memory and write back atomically, so an interrupted run never leaves a
// half-written file behind.

// RewriteHeader discards the existing header row and prepends the canonical
// eight-column header. Data rows pass through unchanged. Running it on an
// already-migrated file is a no-op as long as the header wording matches.
func RewriteHeader(rows [][]string) ([][]string, error) {
	if len(rows) == 0 {
		return nil, apperrors.NewParsingError("cannot rewrite header of an empty file", nil)
	}
	out := make([][]string, 0, len(rows))
	out = append(out, CanonicalHeader())
	out = append(out, rows[1:]...)
	return out, nil
}

// TranslateShoreline rewrites the shoreline-type column from legacy English
// labels to the canonical short codes. Values outside the legacy mapping
// pass through unchanged, so a second run is a no-op. The column is located
// by its Finnish header name with a fallback to the pre-migration English
// name, matching the order the two utilities may be run in.
func TranslateShoreline(rows [][]string) ([][]string, error) {
	if len(rows) == 0 {
		return nil, apperrors.NewParsingError("cannot translate values in an empty file", nil)
	}

	col := -1
	for i, name := range rows[0] {
		trimmed := strings.TrimSpace(name)
		if trimmed == config.ColShoreline || trimmed == "shoreline_type" {
			col = i
			break
		}
	}
	if col < 0 {
		return nil, apperrors.NewParsingError(
			fmt.Sprintf("shoreline column %q not found in header", config.ColShoreline), nil)
	}

	out := make([][]string, len(rows))
	out[0] = append([]string(nil), rows[0]...)
	for i, row := range rows[1:] {
		translated := append([]string(nil), row...)
		if col < len(translated) {
			if canonical, ok := config.LegacyShorelineLabels[strings.TrimSpace(translated[col])]; ok {
				translated[col] = canonical
			}
		}
		out[i+1] = translated
	}
	return out, nil
}

// ReadCSVFile reads all rows of a semicolon-delimited CSV file
func ReadCSVFile(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, apperrors.NewStorageError(fmt.Sprintf("failed to open %s", path), err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.Comma = config.CSVSeparator
	// Migration may encounter ragged legacy rows; pass them through as-is
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, apperrors.NewParsingError(fmt.Sprintf("failed to read %s", path), err)
	}
	return rows, nil
}

// WriteCSVFileAtomic writes rows to path via a temp file and rename, so the
// destination is either the old content or the complete new content.
func WriteCSVFileAtomic(path string, rows [][]string) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return apperrors.NewStorageError("failed to create temp file", err)
	}
	tmpPath := tmp.Name()

	writer := csv.NewWriter(tmp)
	writer.Comma = config.CSVSeparator
	if err := writer.WriteAll(rows); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return apperrors.NewStorageError("failed to write rows", err)
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return apperrors.NewStorageError("failed to flush rows", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return apperrors.NewStorageError("failed to close temp file", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return apperrors.NewStorageError("failed to replace destination file", err)
	}
	return nil
}
