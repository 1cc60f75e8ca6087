package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"strings"

	"lomacli/internal/config"
	apperrors "lomacli/internal/errors"
)

// Mapping load conditions. All of them are non-fatal: the caller proceeds
// with an empty mapping and every row falls back to the unknown-region
// sentinel.
var (
	ErrMappingFileMissing   = errors.New("mapping file missing")
	ErrMappingSchemaInvalid = errors.New("mapping schema invalid")
)

// LoadMapping reads the kunta -> maakunta lookup table from a
// semicolon-delimited CSV file. On any failure it returns an empty mapping
// together with the condition; the mapping is never partially populated on
// a failed load. Duplicate keys resolve last-write-wins.
func LoadMapping(path string) (RegionMapping, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return RegionMapping{}, apperrors.NewMappingError(
				fmt.Sprintf("mapping file not found at %s", path), ErrMappingFileMissing).
				WithContext("path", path)
		}
		return RegionMapping{}, apperrors.NewMappingError("failed to open mapping file", err).
			WithContext("path", path)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.Comma = config.CSVSeparator

	rows, err := reader.ReadAll()
	if err != nil {
		return RegionMapping{}, apperrors.NewMappingError("failed to read mapping file", err).
			WithContext("path", path)
	}
	if len(rows) == 0 {
		return RegionMapping{}, apperrors.NewMappingError(
			"mapping file is empty", ErrMappingSchemaInvalid).WithContext("path", path)
	}

	kuntaIdx, maakuntaIdx := -1, -1
	for i, col := range rows[0] {
		switch strings.TrimSpace(col) {
		case config.ColMappingKunta:
			kuntaIdx = i
		case config.ColMappingMaakunta:
			maakuntaIdx = i
		}
	}
	if kuntaIdx < 0 || maakuntaIdx < 0 {
		return RegionMapping{}, apperrors.NewMappingError(
			fmt.Sprintf("mapping file must contain %q and %q columns", config.ColMappingKunta, config.ColMappingMaakunta),
			ErrMappingSchemaInvalid).WithContext("path", path)
	}

	mapping := make(RegionMapping, len(rows)-1)
	for _, row := range rows[1:] {
		if kuntaIdx >= len(row) || maakuntaIdx >= len(row) {
			continue
		}
		kunta := strings.TrimSpace(row[kuntaIdx])
		maakunta := strings.TrimSpace(row[maakuntaIdx])
		if kunta == "" {
			continue
		}
		// Last occurrence wins on duplicate municipalities
		mapping[kunta] = maakunta
	}

	return mapping, nil
}
