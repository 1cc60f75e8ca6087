package analytics

import (
	"errors"

	"lomacli/internal/dataset"
)

// AggregationLevel selects the administrative level the dashboard operates on
type AggregationLevel string

const (
	// LevelRegion aggregates municipalities into maakunta-level series
	LevelRegion AggregationLevel = "maakunta"
	// LevelMunicipality keeps rows at their native kunta granularity
	LevelMunicipality AggregationLevel = "kunta"
)

// Metric identifies one of the four numeric dataset metrics
type Metric string

const (
	MetricCount       Metric = "count"
	MetricAvgArea     Metric = "avg_area_m2"
	MetricMedianPrice Metric = "median_price_eur"
	MetricMeanPrice   Metric = "mean_price_eur"
)

// ShorelineAll disables shoreline filtering
const ShorelineAll = "all"

// YearRange is an inclusive year interval
type YearRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// FilterOptions describes the user-selected filters of one dashboard view
type FilterOptions struct {
	Level     AggregationLevel
	Areas     []string
	Years     YearRange
	Shoreline string
}

// SeriesRow is one chart-ready row of the per-year line-chart output. At
// municipality level rows pass through at their native granularity; at
// region level they carry grouped aggregates.
type SeriesRow struct {
	Area           string              `json:"area"`
	Year           int                 `json:"year"`
	ShorelineType  string              `json:"shoreline_type,omitempty"`
	Count          dataset.NullFloat64 `json:"count"`
	AvgAreaM2      dataset.NullFloat64 `json:"avg_area_m2"`
	MedianPriceEUR dataset.NullFloat64 `json:"median_price_eur"`
	MeanPriceEUR   dataset.NullFloat64 `json:"mean_price_eur"`
}

// ComparisonRow is one bar of the period-average comparison view: the
// selected metric averaged over the whole year range for an
// (area, shoreline type) pair.
type ComparisonRow struct {
	Area          string              `json:"area"`
	ShorelineType string              `json:"shoreline_type"`
	Value         dataset.NullFloat64 `json:"value"`
}

// Deliberate refusals of statistically invalid median aggregations. These
// are not failures: the caller surfaces an explanatory message instead of a
// chart.
var (
	// ErrMedianRequiresSingleArea is returned when median price is requested
	// at region level with more than one area selected. A median of medians
	// across regions would be misleading.
	ErrMedianRequiresSingleArea = errors.New("median price cannot be aggregated across multiple areas")
	// ErrMedianNotComparable is returned for the period comparison view,
	// where a period-level median of medians is invalid regardless of how
	// many areas are selected.
	ErrMedianNotComparable = errors.New("median price cannot be averaged over a period")
)

// AreaOf returns the value of the area column the given level filters on
func AreaOf(rec dataset.Record, level AggregationLevel) string {
	if level == LevelRegion {
		return rec.Region
	}
	return rec.MunicipalityName
}
