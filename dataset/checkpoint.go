// Package dataset drives preview extraction over a whole corpus: a CSV
// of track/artist rows, an external acquisition tool per row, and a
// resumable checkpoint so long runs survive interruption.
package dataset

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Checkpoint records how far a dataset run has progressed
type Checkpoint struct {
	LastRow   int    `json:"last_row"`
	Succeeded int    `json:"succeeded"`
	Failed    int    `json:"failed"`
	Timestamp string `json:"timestamp"`
}

// CheckpointStore persists run progress as a JSON file
type CheckpointStore struct {
	path string
}

// NewCheckpointStore creates a store backed by the given file path
func NewCheckpointStore(path string) *CheckpointStore {
	return &CheckpointStore{path: path}
}

// Load reads the previous checkpoint. A missing file is not an error;
// it returns a zero checkpoint so the run starts from the top.
func (s *CheckpointStore) Load() (*Checkpoint, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Checkpoint{}, nil
		}
		return nil, fmt.Errorf("read checkpoint %s: %w", s.path, err)
	}

	var cp Checkpoint
	if err := json.Unmarshal(data, &cp); err != nil {
		return nil, fmt.Errorf("parse checkpoint %s: %w", s.path, err)
	}

	return &cp, nil
}

// Save writes the current progress, stamping it with the current time
func (s *CheckpointStore) Save(lastRow, succeeded, failed int) error {
	cp := Checkpoint{
		LastRow:   lastRow,
		Succeeded: succeeded,
		Failed:    failed,
		Timestamp: time.Now().Format("2006-01-02 15:04:05"),
	}

	f, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("create checkpoint %s: %w", s.path, err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(&cp); err != nil {
		return fmt.Errorf("write checkpoint %s: %w", s.path, err)
	}

	return nil
}
