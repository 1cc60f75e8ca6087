package analytics

import (
	"sort"

	"lomacli/internal/dataset"
)

// Aggregate produces the per-year line-chart rows for the given filtered
// subset.
//
// At municipality level the rows pass through unchanged, since the dataset
// is already at municipality x year x shoreline granularity. At region level
// rows are grouped by (region, year) - plus shoreline type when the
// shoreline filter is "all", so per-shoreline series stay distinguishable.
// Within a group, count is summed; average area and mean price are
// recomputed as count-weighted means. Median price is only carried when
// exactly one area is selected; requesting it for several areas returns
// ErrMedianRequiresSingleArea and no rows.
func Aggregate(filtered []dataset.Record, opts FilterOptions, metric Metric) ([]SeriesRow, error) {
	if opts.Level == LevelMunicipality {
		return passthroughRows(filtered), nil
	}

	if metric == MetricMedianPrice && len(opts.Areas) > 1 {
		return nil, ErrMedianRequiresSingleArea
	}

	type groupKey struct {
		region    string
		year      int
		shoreline string
	}
	includeShoreline := opts.Shoreline == ShorelineAll

	groups := make(map[groupKey][]dataset.Record)
	for _, rec := range filtered {
		key := groupKey{region: rec.Region, year: rec.Year}
		if includeShoreline {
			key.shoreline = rec.ShorelineType
		}
		groups[key] = append(groups[key], rec)
	}

	includeMedian := len(opts.Areas) == 1

	rows := make([]SeriesRow, 0, len(groups))
	for key, members := range groups {
		row := SeriesRow{
			Area:          key.region,
			Year:          key.year,
			ShorelineType: key.shoreline,
			Count:         sumCounts(members),
			AvgAreaM2:     weightedMean(members, func(r dataset.Record) dataset.NullFloat64 { return r.AvgAreaM2 }),
			MeanPriceEUR:  weightedMean(members, func(r dataset.Record) dataset.NullFloat64 { return r.MeanPriceEUR }),
		}
		if includeMedian {
			row.MedianPriceEUR = medianOf(members, func(r dataset.Record) dataset.NullFloat64 { return r.MedianPriceEUR })
		}
		rows = append(rows, row)
	}

	sortSeriesRows(rows)
	return rows, nil
}

// AggregatePeriod produces the bar-chart comparison rows: the selected
// metric collapsed over the whole selected year range, per (area, shoreline
// type) pair. Count uses an unweighted mean of the yearly values; average
// area and mean price use the count-weighted mean over the entire period.
// Median price is refused unconditionally in this view.
func AggregatePeriod(filtered []dataset.Record, opts FilterOptions, metric Metric) ([]ComparisonRow, error) {
	if metric == MetricMedianPrice {
		return nil, ErrMedianNotComparable
	}

	type groupKey struct {
		area      string
		shoreline string
	}

	groups := make(map[groupKey][]dataset.Record)
	for _, rec := range filtered {
		key := groupKey{area: AreaOf(rec, opts.Level), shoreline: rec.ShorelineType}
		groups[key] = append(groups[key], rec)
	}

	rows := make([]ComparisonRow, 0, len(groups))
	for key, members := range groups {
		row := ComparisonRow{Area: key.area, ShorelineType: key.shoreline}
		switch metric {
		case MetricCount:
			row.Value = meanOf(members, func(r dataset.Record) dataset.NullFloat64 { return r.Count })
		case MetricAvgArea:
			row.Value = weightedMean(members, func(r dataset.Record) dataset.NullFloat64 { return r.AvgAreaM2 })
		case MetricMeanPrice:
			row.Value = weightedMean(members, func(r dataset.Record) dataset.NullFloat64 { return r.MeanPriceEUR })
		}
		rows = append(rows, row)
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Area != rows[j].Area {
			return rows[i].Area < rows[j].Area
		}
		return rows[i].ShorelineType < rows[j].ShorelineType
	})
	return rows, nil
}

// passthroughRows converts municipality-level records to series rows without
// any grouping.
func passthroughRows(records []dataset.Record) []SeriesRow {
	rows := make([]SeriesRow, 0, len(records))
	for _, rec := range records {
		rows = append(rows, SeriesRow{
			Area:           rec.MunicipalityName,
			Year:           rec.Year,
			ShorelineType:  rec.ShorelineType,
			Count:          rec.Count,
			AvgAreaM2:      rec.AvgAreaM2,
			MedianPriceEUR: rec.MedianPriceEUR,
			MeanPriceEUR:   rec.MeanPriceEUR,
		})
	}
	sortSeriesRows(rows)
	return rows
}

// sumCounts sums the valid counts of a group. A group with no valid counts
// yields a missing value rather than zero.
func sumCounts(members []dataset.Record) dataset.NullFloat64 {
	var sum float64
	var any bool
	for _, rec := range members {
		if rec.Count.Valid {
			sum += rec.Count.Float64
			any = true
		}
	}
	if !any {
		return dataset.NullFloat64{}
	}
	return dataset.Float(sum)
}

// weightedMean computes the count-weighted mean of a metric over a group:
// sum(value*count)/sum(count). Rows with a missing value, or a missing or
// non-positive count, are excluded from both numerator and denominator.
func weightedMean(members []dataset.Record, metric func(dataset.Record) dataset.NullFloat64) dataset.NullFloat64 {
	var weighted, weight float64
	for _, rec := range members {
		v := metric(rec)
		if !v.Valid || !rec.Count.Valid || rec.Count.Float64 <= 0 {
			continue
		}
		weighted += v.Float64 * rec.Count.Float64
		weight += rec.Count.Float64
	}
	if weight == 0 {
		return dataset.NullFloat64{}
	}
	return dataset.Float(weighted / weight)
}

// meanOf computes the unweighted mean of a metric's valid values
func meanOf(members []dataset.Record, metric func(dataset.Record) dataset.NullFloat64) dataset.NullFloat64 {
	var sum float64
	var n int
	for _, rec := range members {
		if v := metric(rec); v.Valid {
			sum += v.Float64
			n++
		}
	}
	if n == 0 {
		return dataset.NullFloat64{}
	}
	return dataset.Float(sum / float64(n))
}

// medianOf computes the median of a metric's valid values
func medianOf(members []dataset.Record, metric func(dataset.Record) dataset.NullFloat64) dataset.NullFloat64 {
	values := make([]float64, 0, len(members))
	for _, rec := range members {
		if v := metric(rec); v.Valid {
			values = append(values, v.Float64)
		}
	}
	if len(values) == 0 {
		return dataset.NullFloat64{}
	}
	sort.Float64s(values)
	mid := len(values) / 2
	if len(values)%2 == 1 {
		return dataset.Float(values[mid])
	}
	return dataset.Float((values[mid-1] + values[mid]) / 2)
}

func sortSeriesRows(rows []SeriesRow) {
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Area != rows[j].Area {
			return rows[i].Area < rows[j].Area
		}
		if rows[i].Year != rows[j].Year {
			return rows[i].Year < rows[j].Year
		}
		return rows[i].ShorelineType < rows[j].ShorelineType
	})
}
