package dataset

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/SweIsHere/previewData/chorus"
	"github.com/SweIsHere/previewData/logging"
)

// RunConfig holds the settings of one dataset run
type RunConfig struct {
	CSVPath        string        `json:"csv_path" mapstructure:"csv_path"`
	OutputDir      string        `json:"output_dir" mapstructure:"output_dir"`
	WorkDir        string        `json:"work_dir" mapstructure:"work_dir"`
	CheckpointPath string        `json:"checkpoint_path" mapstructure:"checkpoint_path"`
	Tool           string        `json:"tool" mapstructure:"tool"`
	FetchTimeout   time.Duration `json:"fetch_timeout" mapstructure:"fetch_timeout"`

	// Column indices of track name and artist in the CSV (header skipped)
	TrackColumn  int `json:"track_column" mapstructure:"track_column"`
	ArtistColumn int `json:"artist_column" mapstructure:"artist_column"`
}

// DefaultRunConfig returns a run configuration with conventional paths
func DefaultRunConfig() *RunConfig {
	return &RunConfig{
		CSVPath:        "songs.csv",
		OutputDir:      "previews",
		WorkDir:        "rawdata",
		CheckpointPath: "progress.json",
		Tool:           "spotdl",
		FetchTimeout:   5 * time.Minute,
		TrackColumn:    0,
		ArtistColumn:   1,
	}
}

// Driver walks the CSV row by row: acquire the song, run chorus
// detection, keep the preview, clear the workspace, checkpoint.
// The detector itself is stateless across rows.
type Driver struct {
	config     *RunConfig
	detector   *chorus.Detector
	acquirer   *Acquirer
	checkpoint *CheckpointStore
	logger     logging.Logger
}

// NewDriver creates a dataset driver
func NewDriver(config *RunConfig, detector *chorus.Detector, logger logging.Logger) *Driver {
	if config == nil {
		config = DefaultRunConfig()
	}
	if detector == nil {
		detector = chorus.NewDetector(nil, logger)
	}
	if logger == nil {
		logger = logging.GetGlobalLogger()
	}

	return &Driver{
		config:     config,
		detector:   detector,
		acquirer:   NewAcquirer(config.Tool, config.FetchTimeout),
		checkpoint: NewCheckpointStore(config.CheckpointPath),
		logger:     logger.WithFields(logging.Fields{"component": "dataset_driver"}),
	}
}

// Run processes the corpus, resuming from the last checkpoint. It stops
// early when ctx is cancelled; progress up to that row is checkpointed.
func (d *Driver) Run(ctx context.Context) error {
	if !d.acquirer.Available() {
		return fmt.Errorf("acquisition tool %q not found in PATH", d.acquirer.Tool)
	}

	for _, dir := range []string{d.config.OutputDir, d.config.WorkDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}

	cp, err := d.checkpoint.Load()
	if err != nil {
		return err
	}
	if cp.LastRow > 0 {
		d.logger.Info("Resuming from checkpoint", logging.Fields{
			"last_row":  cp.LastRow,
			"succeeded": cp.Succeeded,
			"failed":    cp.Failed,
		})
	}

	f, err := os.Open(d.config.CSVPath)
	if err != nil {
		return fmt.Errorf("open dataset %s: %w", d.config.CSVPath, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	// Skip header
	if _, err := reader.Read(); err != nil {
		return fmt.Errorf("read dataset header: %w", err)
	}

	row := 0
	succeeded := cp.Succeeded
	failed := cp.Failed

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			d.logger.Warn("Skipping malformed row", logging.Fields{"row": row, "error": err.Error()})
			row++
			continue
		}

		row++
		if row <= cp.LastRow {
			continue
		}

		if d.processRow(ctx, record, row) {
			succeeded++
		} else {
			failed++
		}

		if err := d.checkpoint.Save(row, succeeded, failed); err != nil {
			d.logger.Warn("Failed to save checkpoint", logging.Fields{"error": err.Error()})
		}
	}

	d.logger.Info("Dataset run completed", logging.Fields{
		"rows":      row,
		"succeeded": succeeded,
		"failed":    failed,
	})

	return nil
}

// processRow handles one track: download, detect, clean up. Per-row
// failures never abort the run.
func (d *Driver) processRow(ctx context.Context, record []string, row int) bool {
	maxCol := max(d.config.TrackColumn, d.config.ArtistColumn)
	if len(record) <= maxCol {
		d.logger.Warn("Row has too few columns", logging.Fields{"row": row})
		return false
	}

	track := record[d.config.TrackColumn]
	artist := record[d.config.ArtistColumn]
	logger := d.logger.WithFields(logging.Fields{"row": row, "track": track, "artist": artist})

	if err := ClearDir(d.config.WorkDir); err != nil {
		logger.Warn("Failed to clear work dir", logging.Fields{"error": err.Error()})
	}

	query := fmt.Sprintf("%s - %s", artist, track)
	audioPath, err := d.acquirer.Fetch(ctx, query, d.config.WorkDir)
	if err != nil {
		logger.Error(err, "Acquisition failed")
		return false
	}

	outName := SanitizeFilename(fmt.Sprintf("%s_%s", artist, track)) + "_preview.wav"
	outPath := filepath.Join(d.config.OutputDir, outName)

	result := d.detector.Detect(audioPath, outPath)
	if !result.Success {
		logger.Error(fmt.Errorf("%s", result.Error), "Detection failed")
		return false
	}

	logger.Info("Preview extracted", logging.Fields{
		"output":     result.OutputPath,
		"start_s":    result.StartS,
		"duration_s": result.DurationS,
		"score":      result.Score,
	})

	return true
}
