// Package audio handles loading, decoding and exporting audio for the
// chorus pipeline. WAV files are decoded natively; everything else goes
// through an ffmpeg subprocess.
package audio

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Sentinel errors for the load/export boundary
var (
	ErrFileNotFound = errors.New("audio file not found")
	ErrDecode       = errors.New("audio decode failed")
	ErrExport       = errors.New("audio export failed")
)

// Clip represents decoded mono audio
type Clip struct {
	PCM        []float64     `json:"-"`
	SampleRate int           `json:"sample_rate"`
	Duration   time.Duration `json:"duration"`
	Path       string        `json:"path"`
}

// Seconds returns the clip duration in seconds
func (c *Clip) Seconds() float64 {
	if c.SampleRate <= 0 {
		return 0
	}
	return float64(len(c.PCM)) / float64(c.SampleRate)
}

// Load decodes an audio file into mono PCM. WAV input is decoded in
// process; other containers fall back to ffmpeg with the given target
// sample rate (0 keeps the source rate for WAV, 22050 for ffmpeg).
func Load(path string, targetSampleRate int) (*Clip, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("%w: stat %s: %v", ErrDecode, path, err)
	}

	if strings.EqualFold(filepath.Ext(path), ".wav") {
		return LoadWAV(path)
	}

	decoder := NewFFmpegDecoder(nil)
	return decoder.DecodeFile(path, targetSampleRate)
}
