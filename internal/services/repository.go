package services

import (
	"context"
	"log/slog"
	"os"
	"time"

	"lomacli/internal/config"
	"lomacli/internal/dataset"
)

// Repository loads the transactions table and its region mapping from
// storage. The interface exists so handlers and services can be tested
// against in-memory fixtures.
type Repository interface {
	// Load reads the mapping and dataset files and returns the parsed
	// records with regions resolved.
	Load(ctx context.Context) ([]dataset.Record, dataset.RegionMapping, error)
	// ModTime returns the dataset file's last modification time, used for
	// cache invalidation.
	ModTime() (time.Time, error)
}

// FileRepository reads the dataset and mapping from CSV files on disk at
// the configured paths.
type FileRepository struct {
	datasetPath string
	mappingPath string
	logger      *slog.Logger
}

// NewFileRepository creates a repository over the configured data paths
func NewFileRepository(cfg *config.Config, logger *slog.Logger) *FileRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileRepository{
		datasetPath: cfg.GetDatasetPath(),
		mappingPath: cfg.GetMappingPath(),
		logger:      logger,
	}
}

// Load reads the mapping first, then the dataset, resolving each row's
// region through the mapping. A missing or malformed mapping does not
// abort the load: rows fall back to the unknown-region sentinel.
func (r *FileRepository) Load(ctx context.Context) ([]dataset.Record, dataset.RegionMapping, error) {
	mapping, err := dataset.LoadMapping(r.mappingPath)
	if err != nil {
		// Degrade rather than fail: every row gets the sentinel region
		r.logger.WarnContext(ctx, "region mapping unavailable, using sentinel region",
			slog.String("path", r.mappingPath),
			slog.String("error", err.Error()))
		mapping = dataset.RegionMapping{}
	}

	records, err := dataset.LoadDataset(r.datasetPath, mapping)
	if err != nil {
		return nil, nil, err
	}

	r.logger.InfoContext(ctx, "dataset loaded",
		slog.String("path", r.datasetPath),
		slog.Int("records", len(records)),
		slog.Int("mapped_municipalities", len(mapping)))

	return records, mapping, nil
}

// ModTime stats the dataset file
func (r *FileRepository) ModTime() (time.Time, error) {
	info, err := os.Stat(r.datasetPath)
	if err != nil {
		return time.Time{}, err
	}
	return info.ModTime(), nil
}
