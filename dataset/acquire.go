package dataset

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/SweIsHere/previewData/logging"
)

// Acquirer downloads one song per query into a working directory by
// shelling out to an external acquisition tool (spotdl by default). The
// core pipeline only ever sees the resulting audio file path.
type Acquirer struct {
	Tool    string        // Acquisition binary, assumed in PATH
	Timeout time.Duration // Per-song download budget
	logger  logging.Logger
}

// NewAcquirer creates an acquirer for the given tool
func NewAcquirer(tool string, timeout time.Duration) *Acquirer {
	if tool == "" {
		tool = "spotdl"
	}
	if timeout <= 0 {
		timeout = 5 * time.Minute
	}
	return &Acquirer{
		Tool:    tool,
		Timeout: timeout,
		logger:  logging.WithFields(logging.Fields{"component": "acquirer"}),
	}
}

// Available reports whether the acquisition tool can be invoked
func (a *Acquirer) Available() bool {
	_, err := exec.LookPath(a.Tool)
	return err == nil
}

// Fetch downloads the best match for query into dir and returns the
// path of the newest audio file found there afterwards
func (a *Acquirer) Fetch(ctx context.Context, query, dir string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, a.Timeout)
	defer cancel()

	logger := a.logger.WithFields(logging.Fields{"query": query})
	logger.Debug("Acquiring track")

	cmd := exec.CommandContext(ctx, a.Tool, "download", query, "--output", dir)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		logger.Error(err, "Acquisition tool failed", logging.Fields{
			"stderr": stderr.String(),
		})
		return "", fmt.Errorf("acquire %q: %w", query, err)
	}

	path, err := newestAudioFile(dir)
	if err != nil {
		return "", fmt.Errorf("acquire %q: %w", query, err)
	}

	logger.Debug("Track acquired", logging.Fields{"path": path})
	return path, nil
}

// newestAudioFile returns the most recently modified audio file in dir
func newestAudioFile(dir string) (string, error) {
	var newest string
	var newestTime time.Time

	for _, pattern := range []string{"*.mp3", "*.m4a", "*.wav"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			continue
		}
		for _, match := range matches {
			info, err := os.Stat(match)
			if err != nil {
				continue
			}
			if newest == "" || info.ModTime().After(newestTime) {
				newest = match
				newestTime = info.ModTime()
			}
		}
	}

	if newest == "" {
		return "", fmt.Errorf("no audio file found in %s", dir)
	}

	return newest, nil
}

// ClearDir removes every file in dir, keeping the directory itself.
// Used between rows so each download lands in a clean workspace.
func ClearDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		if err := os.RemoveAll(filepath.Join(dir, entry.Name())); err != nil {
			return err
		}
	}

	return nil
}
