package dataset

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lomacli/internal/config"
	apperrors "lomacli/internal/errors"
)

const datasetHeader = "vuosi;aluejakotunniste;aluejakoselite;lukumäärä;ka_pinta_ala_m2;mediaanihinta_eur;keskihinta_eur;rantatyyppi\n"

func TestLoadDataset(t *testing.T) {
	content := datasetHeader +
		"2020;KU148;Inari;12;68,5;95000;101250,75;ranta\n" +
		"2021;KU148;Inari;8;70;99000;104000;ei_rantaa\n"
	path := writeFile(t, "data.csv", content)

	records, err := LoadDataset(path, RegionMapping{"Inari": "Lappi"})
	require.NoError(t, err)
	require.Len(t, records, 2)

	first := records[0]
	assert.Equal(t, 2020, first.Year)
	assert.Equal(t, "KU148", first.MunicipalityCode)
	assert.Equal(t, "Inari", first.MunicipalityName)
	assert.Equal(t, "Lappi", first.Region)
	assert.Equal(t, "ranta", first.ShorelineType)
	assert.Equal(t, Float(12), first.Count)
	// Decimal commas are normalized before parsing
	assert.Equal(t, Float(68.5), first.AvgAreaM2)
	assert.Equal(t, Float(101250.75), first.MeanPriceEUR)
}

func TestLoadDataset_UnparsableYearDropsRow(t *testing.T) {
	content := datasetHeader +
		"20xx;KU148;Inari;12;68,5;95000;101250;ranta\n" +
		"2021;KU148;Inari;8;70;99000;104000;ranta\n"
	path := writeFile(t, "data.csv", content)

	records, err := LoadDataset(path, nil)
	require.NoError(t, err)

	require.Len(t, records, 1)
	assert.Equal(t, 2021, records[0].Year)
}

func TestLoadDataset_UnparsableMetricBecomesMissing(t *testing.T) {
	content := datasetHeader +
		"2020;KU148;Inari;12;n/a;;101250;ranta\n"
	path := writeFile(t, "data.csv", content)

	records, err := LoadDataset(path, nil)
	require.NoError(t, err)
	require.Len(t, records, 1)

	assert.False(t, records[0].AvgAreaM2.Valid)
	assert.False(t, records[0].MedianPriceEUR.Valid)
	assert.Equal(t, Float(101250), records[0].MeanPriceEUR)
}

func TestLoadDataset_UnmappedMunicipalityGetsSentinel(t *testing.T) {
	content := datasetHeader +
		"2020;KU999;Sotkamo;5;60;80000;85000;ranta\n"
	path := writeFile(t, "data.csv", content)

	records, err := LoadDataset(path, RegionMapping{"Inari": "Lappi"})
	require.NoError(t, err)
	require.Len(t, records, 1)

	assert.Equal(t, config.UnknownRegion, records[0].Region)
}

func TestLoadDataset_EmptyMappingAllSentinel(t *testing.T) {
	content := datasetHeader +
		"2020;KU148;Inari;12;68;95000;101250;ranta\n" +
		"2021;KU305;Kuusamo;3;55;70000;72000;ei_rantaa\n"
	path := writeFile(t, "data.csv", content)

	records, err := LoadDataset(path, RegionMapping{})
	require.NoError(t, err)

	for _, rec := range records {
		assert.Equal(t, config.UnknownRegion, rec.Region)
	}
}

func TestLoadDataset_FileNotFound(t *testing.T) {
	_, err := LoadDataset(filepath.Join(t.TempDir(), "missing.csv"), nil)

	assert.True(t, errors.Is(err, ErrDatasetNotFound))

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrTypeStorage, appErr.Type)
}

func TestLoadDataset_WrongHeaderAbortsLoad(t *testing.T) {
	content := "year;code;name;count;area;median;mean;shore\n" +
		"2020;KU148;Inari;12;68;95000;101250;ranta\n"
	path := writeFile(t, "data.csv", content)

	_, err := LoadDataset(path, nil)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrTypeParsing, appErr.Type)
}

func TestValidateHeader(t *testing.T) {
	assert.NoError(t, ValidateHeader(CanonicalHeader()))
	assert.Error(t, ValidateHeader([]string{"vuosi"}))

	// Order matters
	swapped := CanonicalHeader()
	swapped[0], swapped[1] = swapped[1], swapped[0]
	assert.Error(t, ValidateHeader(swapped))
}
