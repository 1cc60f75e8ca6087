package dataset

import (
	"encoding/json"
)

// NullFloat64 represents a numeric metric value that may be missing.
// Missing values are excluded from sums and weighted means downstream,
// never treated as zero.
type NullFloat64 struct {
	Float64 float64
	Valid   bool
}

// Float builds a valid NullFloat64
func Float(v float64) NullFloat64 {
	return NullFloat64{Float64: v, Valid: true}
}

// MarshalJSON renders missing values as null
func (n NullFloat64) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.Float64)
}

// UnmarshalJSON accepts null for missing values
func (n *NullFloat64) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*n = NullFloat64{}
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*n = NullFloat64{Float64: v, Valid: true}
	return nil
}

// Record is one row of the transactions dataset: a municipality x year x
// shoreline-type bucket of holiday-property sales.
type Record struct {
	Year             int         `json:"year"`
	MunicipalityCode string      `json:"municipality_code"`
	MunicipalityName string      `json:"municipality_name"`
	Region           string      `json:"region"`
	ShorelineType    string      `json:"shoreline_type"`
	Count            NullFloat64 `json:"count"`
	AvgAreaM2        NullFloat64 `json:"avg_area_m2"`
	MedianPriceEUR   NullFloat64 `json:"median_price_eur"`
	MeanPriceEUR     NullFloat64 `json:"mean_price_eur"`
}

// RegionMapping maps municipality name (kunta) to region name (maakunta).
// Built once per load and treated as read-only for the session.
type RegionMapping map[string]string
