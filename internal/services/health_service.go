package services

import (
	"context"
	"log/slog"
	"runtime"
	"time"
)

// HealthService reports service liveness and dataset readiness
type HealthService struct {
	version   string
	startTime time.Time
	data      *DataService
	logger    *slog.Logger
}

// HealthStatus is the health endpoint response
type HealthStatus struct {
	Status    string        `json:"status"`
	Timestamp time.Time     `json:"timestamp"`
	Version   string        `json:"version"`
	Uptime    string        `json:"uptime"`
	Runtime   RuntimeInfo   `json:"runtime"`
	Dataset   DatasetHealth `json:"dataset"`
}

// RuntimeInfo carries basic process information
type RuntimeInfo struct {
	GoVersion  string `json:"go_version"`
	OS         string `json:"os"`
	Arch       string `json:"arch"`
	Goroutines int    `json:"goroutines"`
}

// DatasetHealth reports whether the dataset cache is populated
type DatasetHealth struct {
	Loaded   bool      `json:"loaded"`
	Records  int       `json:"records"`
	LoadedAt time.Time `json:"loaded_at,omitempty"`
}

// NewHealthService creates a health service over the data service
func NewHealthService(version string, data *DataService, logger *slog.Logger) *HealthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &HealthService{
		version:   version,
		startTime: time.Now(),
		data:      data,
		logger:    logger.With(slog.String("service", "health")),
	}
}

// Check reports the current health. The service is "ok" even before the
// first dataset load; readiness is visible in the dataset section.
func (s *HealthService) Check(ctx context.Context) *HealthStatus {
	loadedAt := s.data.LoadedAt()

	return &HealthStatus{
		Status:    "ok",
		Timestamp: time.Now(),
		Version:   s.version,
		Uptime:    time.Since(s.startTime).Round(time.Second).String(),
		Runtime: RuntimeInfo{
			GoVersion:  runtime.Version(),
			OS:         runtime.GOOS,
			Arch:       runtime.GOARCH,
			Goroutines: runtime.NumGoroutine(),
		},
		Dataset: DatasetHealth{
			Loaded:   !loadedAt.IsZero(),
			Records:  s.data.RecordCount(),
			LoadedAt: loadedAt,
		},
	}
}
