package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"lomacli/internal/analytics"
	"lomacli/internal/config"
	"lomacli/internal/dataset"
	apierrors "lomacli/internal/errors"
)

// Notices surfaced instead of chart rows when a median aggregation is
// refused. The refusals are deliberate, so the API answers 200 with an
// explanation rather than an error.
const (
	NoticeMedianSingleArea    = "Median price is only available when a single area is selected"
	NoticeMedianNotComparable = "Median price cannot be averaged over a period; choose another metric"
)

// SeriesRequest describes one per-year chart query
type SeriesRequest struct {
	Level     string   `json:"level" validate:"required,aggregation_level"`
	Areas     []string `json:"areas" validate:"dive,area_name"`
	YearMin   int      `json:"year_min" validate:"required,gte=1900,lte=2100"`
	YearMax   int      `json:"year_max" validate:"required,gte=1900,lte=2100,gtefield=YearMin"`
	Shoreline string   `json:"shoreline" validate:"required,oneof=all ranta ei_rantaa"`
	Metric    string   `json:"metric" validate:"required,metric"`
}

// options converts the request into analytics filter options
func (r SeriesRequest) options() analytics.FilterOptions {
	return analytics.FilterOptions{
		Level:     analytics.AggregationLevel(r.Level),
		Areas:     r.Areas,
		Years:     analytics.YearRange{Min: r.YearMin, Max: r.YearMax},
		Shoreline: r.Shoreline,
	}
}

// SeriesResult carries the chart rows, or a notice when the requested
// aggregation was refused
type SeriesResult struct {
	Rows   []analytics.SeriesRow `json:"rows"`
	Notice string                `json:"notice,omitempty"`
}

// ComparisonResult carries the period-average bars, or a notice when the
// requested aggregation was refused
type ComparisonResult struct {
	Rows   []analytics.ComparisonRow `json:"rows"`
	Notice string                    `json:"notice,omitempty"`
}

// TableResult carries the filtered raw rows for the data-table view
type TableResult struct {
	Rows  []dataset.Record `json:"rows"`
	Total int              `json:"total"`
}

// FilterMetadata describes the selectable filter values derived from the
// loaded dataset. It drives the dashboard's filter widgets.
type FilterMetadata struct {
	Regions        []string            `json:"regions"`
	Municipalities []string            `json:"municipalities"`
	Years          analytics.YearRange `json:"years"`
	ShorelineTypes []string            `json:"shoreline_types"`
	Metrics        []string            `json:"metrics"`
}

// DataService serves the dashboard's data queries over an in-memory copy
// of the dataset. The dataset is loaded lazily on first use and reloaded
// when the underlying file changes or Reload is called.
type DataService struct {
	repo   Repository
	logger *slog.Logger

	mu       sync.RWMutex
	records  []dataset.Record
	loadedAt time.Time
	modTime  time.Time
}

// NewDataService creates a data service over the given repository
func NewDataService(repo Repository, logger *slog.Logger) *DataService {
	if logger == nil {
		logger = slog.Default()
	}
	return &DataService{
		repo:   repo,
		logger: logger.With(slog.String("service", "data")),
	}
}

// ensureLoaded returns the cached records, loading or reloading them when
// the cache is cold or the dataset file has changed on disk.
func (s *DataService) ensureLoaded(ctx context.Context) ([]dataset.Record, error) {
	s.mu.RLock()
	records := s.records
	cachedMod := s.modTime
	s.mu.RUnlock()

	if records != nil {
		if mod, err := s.repo.ModTime(); err == nil && mod.Equal(cachedMod) {
			return records, nil
		}
	}

	return s.load(ctx)
}

// load refreshes the cache from the repository
func (s *DataService) load(ctx context.Context) ([]dataset.Record, error) {
	records, _, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}

	mod, modErr := s.repo.ModTime()
	if modErr != nil {
		mod = time.Time{}
	}

	s.mu.Lock()
	s.records = records
	s.loadedAt = time.Now()
	s.modTime = mod
	s.mu.Unlock()

	return records, nil
}

// Reload forces a reload of the dataset from storage
func (s *DataService) Reload(ctx context.Context) error {
	s.logger.InfoContext(ctx, "dataset reload requested")
	_, err := s.load(ctx)
	return err
}

// LoadedAt reports when the cache was last populated. Zero when cold.
func (s *DataService) LoadedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadedAt
}

// RecordCount reports the number of cached records. Zero when cold.
func (s *DataService) RecordCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// GetFilters derives the selectable filter values from the loaded dataset
func (s *DataService) GetFilters(ctx context.Context) (*FilterMetadata, error) {
	records, err := s.ensureLoaded(ctx)
	if err != nil {
		return nil, err
	}

	regionSet := make(map[string]struct{})
	muniSet := make(map[string]struct{})
	years := analytics.YearRange{}
	for i, rec := range records {
		// The sentinel region is not selectable; unmapped rows stay
		// reachable through the municipality level.
		if rec.Region != config.UnknownRegion {
			regionSet[rec.Region] = struct{}{}
		}
		muniSet[rec.MunicipalityName] = struct{}{}
		if i == 0 {
			years = analytics.YearRange{Min: rec.Year, Max: rec.Year}
			continue
		}
		if rec.Year < years.Min {
			years.Min = rec.Year
		}
		if rec.Year > years.Max {
			years.Max = rec.Year
		}
	}

	return &FilterMetadata{
		Regions:        sortedKeys(regionSet),
		Municipalities: sortedKeys(muniSet),
		Years:          years,
		ShorelineTypes: []string{analytics.ShorelineAll, config.ShorelineWith, config.ShorelineWithout},
		Metrics: []string{
			string(analytics.MetricCount),
			string(analytics.MetricAvgArea),
			string(analytics.MetricMedianPrice),
			string(analytics.MetricMeanPrice),
		},
	}, nil
}

// GetSeries computes the per-year chart rows for the requested filters.
// A refused median aggregation yields empty rows plus a notice, not an
// error.
func (s *DataService) GetSeries(ctx context.Context, req SeriesRequest) (*SeriesResult, error) {
	if len(req.Areas) == 0 {
		return nil, apierrors.ErrEmptyAreaSelection
	}

	records, err := s.ensureLoaded(ctx)
	if err != nil {
		return nil, err
	}

	filtered := analytics.Filter(records, req.options())
	rows, err := analytics.Aggregate(filtered, req.options(), analytics.Metric(req.Metric))
	if err != nil {
		if errors.Is(err, analytics.ErrMedianRequiresSingleArea) {
			return &SeriesResult{Rows: []analytics.SeriesRow{}, Notice: NoticeMedianSingleArea}, nil
		}
		return nil, fmt.Errorf("aggregate series: %w", err)
	}

	return &SeriesResult{Rows: rows}, nil
}

// GetComparison computes the period-average bars for the requested
// filters. Median price is refused unconditionally in this view.
func (s *DataService) GetComparison(ctx context.Context, req SeriesRequest) (*ComparisonResult, error) {
	if len(req.Areas) == 0 {
		return nil, apierrors.ErrEmptyAreaSelection
	}

	records, err := s.ensureLoaded(ctx)
	if err != nil {
		return nil, err
	}

	filtered := analytics.Filter(records, req.options())
	rows, err := analytics.AggregatePeriod(filtered, req.options(), analytics.Metric(req.Metric))
	if err != nil {
		if errors.Is(err, analytics.ErrMedianNotComparable) {
			return &ComparisonResult{Rows: []analytics.ComparisonRow{}, Notice: NoticeMedianNotComparable}, nil
		}
		return nil, fmt.Errorf("aggregate comparison: %w", err)
	}

	return &ComparisonResult{Rows: rows}, nil
}

// GetTable returns the filtered raw rows for the data-table view
func (s *DataService) GetTable(ctx context.Context, req SeriesRequest) (*TableResult, error) {
	if len(req.Areas) == 0 {
		return nil, apierrors.ErrEmptyAreaSelection
	}

	records, err := s.ensureLoaded(ctx)
	if err != nil {
		return nil, err
	}

	filtered := analytics.Filter(records, req.options())
	sort.Slice(filtered, func(i, j int) bool {
		if filtered[i].Year != filtered[j].Year {
			return filtered[i].Year < filtered[j].Year
		}
		if filtered[i].Region != filtered[j].Region {
			return filtered[i].Region < filtered[j].Region
		}
		return filtered[i].MunicipalityName < filtered[j].MunicipalityName
	})

	return &TableResult{Rows: filtered, Total: len(filtered)}, nil
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
