package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"lomacli/internal/dataset"
)

func rec(year int, region, muni, shoreline string, count, meanPrice float64) dataset.Record {
	return dataset.Record{
		Year:             year,
		MunicipalityName: muni,
		Region:           region,
		ShorelineType:    shoreline,
		Count:            dataset.Float(count),
		MeanPriceEUR:     dataset.Float(meanPrice),
	}
}

func testRecords() []dataset.Record {
	return []dataset.Record{
		rec(2019, "Lappi", "Inari", "ranta", 10, 100000),
		rec(2020, "Lappi", "Inari", "ranta", 12, 105000),
		rec(2020, "Lappi", "Inari", "ei_rantaa", 5, 80000),
		rec(2020, "Lappi", "Kittilä", "ranta", 7, 110000),
		rec(2020, "Kainuu", "Sotkamo", "ranta", 4, 90000),
		rec(2021, "Kainuu", "Sotkamo", "ei_rantaa", 6, 85000),
	}
}

func TestFilter_ByRegion(t *testing.T) {
	out := Filter(testRecords(), FilterOptions{
		Level:     LevelRegion,
		Areas:     []string{"Lappi"},
		Years:     YearRange{Min: 2019, Max: 2021},
		Shoreline: ShorelineAll,
	})

	assert.Len(t, out, 4)
	for _, r := range out {
		assert.Equal(t, "Lappi", r.Region)
	}
}

func TestFilter_ByMunicipality(t *testing.T) {
	out := Filter(testRecords(), FilterOptions{
		Level:     LevelMunicipality,
		Areas:     []string{"Sotkamo"},
		Years:     YearRange{Min: 2019, Max: 2021},
		Shoreline: ShorelineAll,
	})

	assert.Len(t, out, 2)
	for _, r := range out {
		assert.Equal(t, "Sotkamo", r.MunicipalityName)
	}
}

func TestFilter_YearRangeInclusive(t *testing.T) {
	out := Filter(testRecords(), FilterOptions{
		Level:     LevelRegion,
		Areas:     []string{"Lappi", "Kainuu"},
		Years:     YearRange{Min: 2020, Max: 2020},
		Shoreline: ShorelineAll,
	})

	assert.Len(t, out, 4)
	for _, r := range out {
		assert.Equal(t, 2020, r.Year)
	}
}

func TestFilter_Shoreline(t *testing.T) {
	out := Filter(testRecords(), FilterOptions{
		Level:     LevelRegion,
		Areas:     []string{"Lappi", "Kainuu"},
		Years:     YearRange{Min: 2019, Max: 2021},
		Shoreline: "ei_rantaa",
	})

	assert.Len(t, out, 2)
	for _, r := range out {
		assert.Equal(t, "ei_rantaa", r.ShorelineType)
	}
}

func TestFilter_EmptyAreasYieldsEmpty(t *testing.T) {
	out := Filter(testRecords(), FilterOptions{
		Level:     LevelRegion,
		Areas:     nil,
		Years:     YearRange{Min: 2019, Max: 2021},
		Shoreline: ShorelineAll,
	})

	assert.Empty(t, out)
}

func TestFilter_OutputIsSubsetAndInputUntouched(t *testing.T) {
	input := testRecords()
	out := Filter(input, FilterOptions{
		Level:     LevelRegion,
		Areas:     []string{"Kainuu"},
		Years:     YearRange{Min: 2019, Max: 2021},
		Shoreline: ShorelineAll,
	})

	assert.LessOrEqual(t, len(out), len(input))
	for _, r := range out {
		assert.Contains(t, input, r)
	}
	assert.Equal(t, testRecords(), input)
}
