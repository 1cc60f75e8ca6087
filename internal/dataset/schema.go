package dataset

import (
	"fmt"
	"strings"

	"lomacli/internal/config"
)

// FieldKind is the coercion applied to a dataset column at load time
type FieldKind int

const (
	FieldString FieldKind = iota
	FieldInt
	FieldFloat
)

// Field describes one typed column of the dataset
type Field struct {
	Name string
	Kind FieldKind
}

// Schema is the ordered column layout of the transactions dataset. It is
// validated once at load time; rows are then coerced into typed Records
// instead of being accessed by column name throughout.
var Schema = []Field{
	{Name: config.ColYear, Kind: FieldInt},
	{Name: config.ColMunicipalityCode, Kind: FieldString},
	{Name: config.ColMunicipalityName, Kind: FieldString},
	{Name: config.ColCount, Kind: FieldFloat},
	{Name: config.ColAvgArea, Kind: FieldFloat},
	{Name: config.ColMedianPrice, Kind: FieldFloat},
	{Name: config.ColMeanPrice, Kind: FieldFloat},
	{Name: config.ColShoreline, Kind: FieldString},
}

// CanonicalHeader returns the expected header row in column order
func CanonicalHeader() []string {
	header := make([]string, len(Schema))
	for i, f := range Schema {
		header[i] = f.Name
	}
	return header
}

// ValidateHeader checks that the given header row matches the schema exactly
func ValidateHeader(header []string) error {
	if len(header) != len(Schema) {
		return fmt.Errorf("expected %d columns, got %d", len(Schema), len(header))
	}
	for i, f := range Schema {
		if strings.TrimSpace(header[i]) != f.Name {
			return fmt.Errorf("column %d: expected %q, got %q", i, f.Name, strings.TrimSpace(header[i]))
		}
	}
	return nil
}
