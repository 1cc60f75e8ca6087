// Package analytics implements the filtering and aggregation pipeline
// behind the dashboard views: subsetting the loaded transactions table by
// area, year range and shoreline type, then computing grouped aggregates
// (summed counts, count-weighted means, conditional medians) at region
// level, plus the period-average comparison used by the bar chart.
//
// Everything here is a pure function over immutable records; there is no
// state and nothing is mutated.
package analytics
