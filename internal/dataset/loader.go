package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"lomacli/internal/config"
	apperrors "lomacli/internal/errors"
)

// ErrDatasetNotFound indicates the dataset file is absent. Unlike mapping
// failures this is fatal: no table is available and the session cannot serve
// data requests.
var ErrDatasetNotFound = errors.New("dataset file not found")

// LoadDataset reads the transactions table from a semicolon-delimited CSV
// file, validates its header against the schema, coerces the typed columns
// and derives the region column from the given mapping.
//
// Rows whose year cannot be parsed are dropped entirely. Metric values that
// cannot be parsed become missing values, not zeros. An unmapped
// municipality, or an empty mapping, yields the unknown-region sentinel.
func LoadDataset(path string, mapping RegionMapping) ([]Record, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.NewStorageError(
				fmt.Sprintf("dataset file not found at %s", path), ErrDatasetNotFound).
				WithContext("path", path)
		}
		return nil, apperrors.NewStorageError("failed to open dataset file", err).
			WithContext("path", path)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.Comma = config.CSVSeparator

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, apperrors.NewParsingError("failed to read dataset file", err).
			WithContext("path", path)
	}
	if len(rows) == 0 {
		return nil, apperrors.NewParsingError("dataset file is empty", nil).
			WithContext("path", path)
	}

	if err := ValidateHeader(rows[0]); err != nil {
		return nil, apperrors.NewParsingError("dataset header does not match expected schema", err).
			WithContext("path", path)
	}

	records := make([]Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec, ok := parseRow(row, mapping)
		if !ok {
			continue
		}
		records = append(records, rec)
	}

	return records, nil
}

// parseRow coerces a single data row into a Record. Returns ok=false when
// the row must be dropped (unparsable year).
func parseRow(row []string, mapping RegionMapping) (Record, bool) {
	year, err := strconv.Atoi(strings.TrimSpace(row[0]))
	if err != nil {
		return Record{}, false
	}

	rec := Record{
		Year:             year,
		MunicipalityCode: strings.TrimSpace(row[1]),
		MunicipalityName: strings.TrimSpace(row[2]),
		ShorelineType:    strings.TrimSpace(row[7]),
		Count:            parseMetric(row[3]),
		AvgAreaM2:        parseMetric(row[4]),
		MedianPriceEUR:   parseMetric(row[5]),
		MeanPriceEUR:     parseMetric(row[6]),
	}

	if region, ok := mapping[rec.MunicipalityName]; ok && region != "" {
		rec.Region = region
	} else {
		rec.Region = config.UnknownRegion
	}

	return rec, true
}

// parseMetric parses a numeric metric cell. Decimal commas are normalized to
// decimal points before parsing; anything unparsable becomes a missing value.
func parseMetric(cell string) NullFloat64 {
	normalized := strings.ReplaceAll(strings.TrimSpace(cell), ",", ".")
	if normalized == "" {
		return NullFloat64{}
	}
	v, err := strconv.ParseFloat(normalized, 64)
	if err != nil {
		return NullFloat64{}
	}
	return Float(v)
}
