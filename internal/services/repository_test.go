package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lomacli/internal/config"
)

func writeDataFiles(t *testing.T, dataset, mapping string) *config.Config {
	t.Helper()
	dir := t.TempDir()
	if dataset != "" {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "data.csv"), []byte(dataset), 0o644))
	}
	if mapping != "" {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "mapping.csv"), []byte(mapping), 0o644))
	}
	return &config.Config{Paths: config.PathsConfig{
		DataDir:     dir,
		DatasetFile: "data.csv",
		MappingFile: "mapping.csv",
	}}
}

const repoDatasetCSV = "vuosi;aluejakotunniste;aluejakoselite;lukumäärä;ka_pinta_ala_m2;mediaanihinta_eur;keskihinta_eur;rantatyyppi\n" +
	"2020;KU148;Inari;12;48,5;95000;101250,5;ranta\n"

const repoMappingCSV = "kunta;maakunta\nInari;Lappi\n"

func TestFileRepository_LoadResolvesRegions(t *testing.T) {
	cfg := writeDataFiles(t, repoDatasetCSV, repoMappingCSV)
	repo := NewFileRepository(cfg, testLogger())

	records, mapping, err := repo.Load(context.Background())
	require.NoError(t, err)

	require.Len(t, records, 1)
	assert.Equal(t, "Lappi", records[0].Region)
	assert.Equal(t, "Lappi", mapping["Inari"])

	mod, err := repo.ModTime()
	require.NoError(t, err)
	assert.False(t, mod.IsZero())
}

func TestFileRepository_MissingMappingDegradesToSentinel(t *testing.T) {
	cfg := writeDataFiles(t, repoDatasetCSV, "")
	repo := NewFileRepository(cfg, testLogger())

	records, _, err := repo.Load(context.Background())
	require.NoError(t, err)

	require.Len(t, records, 1)
	assert.Equal(t, config.UnknownRegion, records[0].Region)
}

func TestFileRepository_MissingDatasetFails(t *testing.T) {
	cfg := writeDataFiles(t, "", repoMappingCSV)
	repo := NewFileRepository(cfg, testLogger())

	_, _, err := repo.Load(context.Background())
	assert.Error(t, err)
}
