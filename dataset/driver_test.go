package dataset

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/SweIsHere/previewData/logging"
)

func TestRunRequiresAcquisitionTool(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultRunConfig()
	cfg.Tool = "previewdata-test-no-such-tool"
	cfg.CSVPath = filepath.Join(dir, "songs.csv")
	cfg.OutputDir = filepath.Join(dir, "previews")
	cfg.WorkDir = filepath.Join(dir, "rawdata")
	cfg.CheckpointPath = filepath.Join(dir, "progress.json")

	driver := NewDriver(cfg, nil, &logging.NoOpLogger{})
	err := driver.Run(context.Background())

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found in PATH")
}

func TestProcessRowRejectsShortRecord(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultRunConfig()
	cfg.WorkDir = dir

	driver := NewDriver(cfg, nil, &logging.NoOpLogger{})

	// Default config reads columns 0 and 1; a one-column row cannot name
	// both track and artist
	ok := driver.processRow(context.Background(), []string{"lonely-value"}, 1)
	assert.False(t, ok)
}

func TestDefaultRunConfig(t *testing.T) {
	cfg := DefaultRunConfig()

	assert.Equal(t, "spotdl", cfg.Tool)
	assert.Equal(t, 0, cfg.TrackColumn)
	assert.Equal(t, 1, cfg.ArtistColumn)
	assert.NotZero(t, cfg.FetchTimeout)
}
