package http

import (
	"context"

	"lomacli/internal/services"
)

// DataServiceInterface is what the data handler needs from the data
// service. Defined on the consumer side so handler tests can mock it.
type DataServiceInterface interface {
	GetFilters(ctx context.Context) (*services.FilterMetadata, error)
	GetSeries(ctx context.Context, req services.SeriesRequest) (*services.SeriesResult, error)
	GetComparison(ctx context.Context, req services.SeriesRequest) (*services.ComparisonResult, error)
	GetTable(ctx context.Context, req services.SeriesRequest) (*services.TableResult, error)
	ExportXLSX(ctx context.Context, req services.SeriesRequest) (*services.ExportResult, error)
	Reload(ctx context.Context) error
}

// HealthServiceInterface is what the health handler needs
type HealthServiceInterface interface {
	Check(ctx context.Context) *services.HealthStatus
}
