package services

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"lomacli/internal/analytics"
	"lomacli/internal/config"
	"lomacli/internal/dataset"
	apierrors "lomacli/internal/errors"
)

// stubRepo is an in-memory Repository for service tests
type stubRepo struct {
	records []dataset.Record
	mod     time.Time
	loadErr error
	loads   int
}

func (r *stubRepo) Load(ctx context.Context) ([]dataset.Record, dataset.RegionMapping, error) {
	if r.loadErr != nil {
		return nil, nil, r.loadErr
	}
	r.loads++
	return r.records, dataset.RegionMapping{}, nil
}

func (r *stubRepo) ModTime() (time.Time, error) {
	return r.mod, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func fixtureRecords() []dataset.Record {
	mk := func(year int, region, muni, shoreline string, count, meanPrice float64) dataset.Record {
		return dataset.Record{
			Year:             year,
			Region:           region,
			MunicipalityName: muni,
			ShorelineType:    shoreline,
			Count:            dataset.Float(count),
			MeanPriceEUR:     dataset.Float(meanPrice),
		}
	}
	return []dataset.Record{
		mk(2019, "Lappi", "Inari", "ranta", 10, 100000),
		mk(2020, "Lappi", "Inari", "ranta", 12, 105000),
		mk(2020, "Lappi", "Kittilä", "ei_rantaa", 5, 80000),
		mk(2020, "Kainuu", "Sotkamo", "ranta", 4, 90000),
	}
}

func fixtureRequest() SeriesRequest {
	return SeriesRequest{
		Level:     "maakunta",
		Areas:     []string{"Lappi"},
		YearMin:   2019,
		YearMax:   2021,
		Shoreline: "all",
		Metric:    "mean_price_eur",
	}
}

func TestGetFilters_DerivedFromDataset(t *testing.T) {
	svc := NewDataService(&stubRepo{records: fixtureRecords(), mod: time.Now()}, testLogger())

	meta, err := svc.GetFilters(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"Kainuu", "Lappi"}, meta.Regions)
	assert.Equal(t, []string{"Inari", "Kittilä", "Sotkamo"}, meta.Municipalities)
	assert.Equal(t, analytics.YearRange{Min: 2019, Max: 2020}, meta.Years)
	assert.Equal(t, []string{"all", "ranta", "ei_rantaa"}, meta.ShorelineTypes)
	assert.Contains(t, meta.Metrics, "median_price_eur")
}

func TestGetFilters_SentinelRegionNotSelectable(t *testing.T) {
	records := append(fixtureRecords(), dataset.Record{
		Year:             2020,
		Region:           config.UnknownRegion,
		MunicipalityName: "Posio",
		ShorelineType:    "ranta",
		Count:            dataset.Float(3),
		MeanPriceEUR:     dataset.Float(60000),
	})
	svc := NewDataService(&stubRepo{records: records, mod: time.Now()}, testLogger())

	meta, err := svc.GetFilters(context.Background())
	require.NoError(t, err)

	assert.NotContains(t, meta.Regions, config.UnknownRegion)
	assert.Equal(t, []string{"Kainuu", "Lappi"}, meta.Regions)
	// Unmapped rows stay reachable via the municipality level
	assert.Contains(t, meta.Municipalities, "Posio")
}

func TestGetSeries_EmptyAreasRejected(t *testing.T) {
	svc := NewDataService(&stubRepo{records: fixtureRecords(), mod: time.Now()}, testLogger())

	req := fixtureRequest()
	req.Areas = nil
	_, err := svc.GetSeries(context.Background(), req)

	assert.ErrorIs(t, err, apierrors.ErrEmptyAreaSelection)
}

func TestGetSeries_AggregatesByRegion(t *testing.T) {
	svc := NewDataService(&stubRepo{records: fixtureRecords(), mod: time.Now()}, testLogger())

	res, err := svc.GetSeries(context.Background(), fixtureRequest())
	require.NoError(t, err)

	require.NotEmpty(t, res.Rows)
	assert.Empty(t, res.Notice)
	for _, row := range res.Rows {
		assert.Equal(t, "Lappi", row.Area)
	}
}

func TestGetSeries_MedianMultiAreaYieldsNotice(t *testing.T) {
	svc := NewDataService(&stubRepo{records: fixtureRecords(), mod: time.Now()}, testLogger())

	req := fixtureRequest()
	req.Areas = []string{"Lappi", "Kainuu"}
	req.Metric = "median_price_eur"

	res, err := svc.GetSeries(context.Background(), req)
	require.NoError(t, err)

	assert.Empty(t, res.Rows)
	assert.Equal(t, NoticeMedianSingleArea, res.Notice)
}

func TestGetComparison_MedianAlwaysYieldsNotice(t *testing.T) {
	svc := NewDataService(&stubRepo{records: fixtureRecords(), mod: time.Now()}, testLogger())

	req := fixtureRequest()
	req.Metric = "median_price_eur"

	res, err := svc.GetComparison(context.Background(), req)
	require.NoError(t, err)

	assert.Empty(t, res.Rows)
	assert.Equal(t, NoticeMedianNotComparable, res.Notice)
}

func TestGetTable_SortedAndCounted(t *testing.T) {
	svc := NewDataService(&stubRepo{records: fixtureRecords(), mod: time.Now()}, testLogger())

	res, err := svc.GetTable(context.Background(), fixtureRequest())
	require.NoError(t, err)

	require.Equal(t, 3, res.Total)
	assert.Equal(t, "Inari", res.Rows[0].MunicipalityName)
	assert.Equal(t, 2019, res.Rows[0].Year)
}

func TestEnsureLoaded_CachesUntilFileChanges(t *testing.T) {
	repo := &stubRepo{records: fixtureRecords(), mod: time.Unix(1000, 0)}
	svc := NewDataService(repo, testLogger())

	_, err := svc.GetFilters(context.Background())
	require.NoError(t, err)
	_, err = svc.GetFilters(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, repo.loads)

	// Touch the file
	repo.mod = time.Unix(2000, 0)
	_, err = svc.GetFilters(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, repo.loads)
}

func TestReload_ForcesFreshLoad(t *testing.T) {
	repo := &stubRepo{records: fixtureRecords(), mod: time.Unix(1000, 0)}
	svc := NewDataService(repo, testLogger())

	require.NoError(t, svc.Reload(context.Background()))
	require.NoError(t, svc.Reload(context.Background()))
	assert.Equal(t, 2, repo.loads)
	assert.Equal(t, len(fixtureRecords()), svc.RecordCount())
}

func TestGetSeries_LoadErrorPropagates(t *testing.T) {
	repo := &stubRepo{loadErr: assert.AnError}
	svc := NewDataService(repo, testLogger())

	_, err := svc.GetSeries(context.Background(), fixtureRequest())
	assert.ErrorIs(t, err, assert.AnError)
}

func TestExportXLSX_RoundTrip(t *testing.T) {
	svc := NewDataService(&stubRepo{records: fixtureRecords(), mod: time.Now()}, testLogger())

	res, err := svc.ExportXLSX(context.Background(), fixtureRequest())
	require.NoError(t, err)
	require.NotEmpty(t, res.Content)
	assert.Contains(t, res.Filename, ".xlsx")

	f, err := excelize.OpenReader(bytes.NewReader(res.Content))
	require.NoError(t, err)
	defer f.Close()

	header, err := f.GetCellValue(exportSheet, "A1")
	require.NoError(t, err)
	assert.Equal(t, "vuosi", header)

	year, err := f.GetCellValue(exportSheet, "A2")
	require.NoError(t, err)
	assert.Equal(t, "2019", year)
}

func TestHealthService_ReportsDatasetReadiness(t *testing.T) {
	svc := NewDataService(&stubRepo{records: fixtureRecords(), mod: time.Now()}, testLogger())
	health := NewHealthService("1.2.3", svc, testLogger())

	cold := health.Check(context.Background())
	assert.Equal(t, "ok", cold.Status)
	assert.False(t, cold.Dataset.Loaded)

	require.NoError(t, svc.Reload(context.Background()))

	warm := health.Check(context.Background())
	assert.True(t, warm.Dataset.Loaded)
	assert.Equal(t, len(fixtureRecords()), warm.Dataset.Records)
	assert.Equal(t, "1.2.3", warm.Version)
}
