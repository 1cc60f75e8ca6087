package analytics

import (
	"lomacli/internal/dataset"
)

// Filter returns the subset of records matching the given options. A record
// is kept when its area column (region or municipality, depending on level)
// is among the selected areas, its year falls inside the inclusive year
// range, and its shoreline type matches the filter (or the filter is "all").
//
// The input is never mutated; the result is a fresh slice. An empty area
// selection yields an empty result; rejecting that case with a user-facing
// message is the caller's job.
func Filter(records []dataset.Record, opts FilterOptions) []dataset.Record {
	selected := make(map[string]struct{}, len(opts.Areas))
	for _, area := range opts.Areas {
		selected[area] = struct{}{}
	}

	out := make([]dataset.Record, 0, len(records))
	for _, rec := range records {
		if _, ok := selected[AreaOf(rec, opts.Level)]; !ok {
			continue
		}
		if rec.Year < opts.Years.Min || rec.Year > opts.Years.Max {
			continue
		}
		if opts.Shoreline != ShorelineAll && rec.ShorelineType != opts.Shoreline {
			continue
		}
		out = append(out, rec)
	}
	return out
}
