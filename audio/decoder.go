package audio

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"math"
	"os/exec"
	"time"

	"github.com/SweIsHere/previewData/logging"
)

// FFmpegConfig holds settings for the ffmpeg fallback decoder
type FFmpegConfig struct {
	FFmpegPath string        `json:"ffmpeg_path"` // Path to ffmpeg binary
	Timeout    time.Duration `json:"timeout"`     // Timeout for the decode subprocess
}

// DefaultFFmpegConfig returns default decoder configuration
func DefaultFFmpegConfig() *FFmpegConfig {
	return &FFmpegConfig{
		FFmpegPath: "ffmpeg",
		Timeout:    60 * time.Second,
	}
}

// FFmpegDecoder decodes compressed audio (mp3, m4a, ...) through an
// ffmpeg subprocess emitting raw f64le mono PCM
type FFmpegDecoder struct {
	config *FFmpegConfig
	logger logging.Logger
}

// NewFFmpegDecoder creates a new ffmpeg-backed decoder
func NewFFmpegDecoder(config *FFmpegConfig) *FFmpegDecoder {
	if config == nil {
		config = DefaultFFmpegConfig()
	}
	return &FFmpegDecoder{
		config: config,
		logger: logging.WithFields(logging.Fields{
			"component": "ffmpeg_decoder",
		}),
	}
}

// DecodeFile decodes an audio file to mono PCM at the target sample rate
// (22050 Hz when zero)
func (d *FFmpegDecoder) DecodeFile(path string, targetSampleRate int) (*Clip, error) {
	if targetSampleRate <= 0 {
		targetSampleRate = 22050
	}

	logger := d.logger.WithFields(logging.Fields{
		"function":    "DecodeFile",
		"filename":    path,
		"sample_rate": targetSampleRate,
	})
	logger.Debug("Starting ffmpeg decode")

	ctx, cancel := context.WithTimeout(context.Background(), d.config.Timeout)
	defer cancel()

	args := []string{
		"-i", path,
		"-f", "f64le",
		"-acodec", "pcm_f64le",
		"-ac", "1",
		"-ar", fmt.Sprintf("%d", targetSampleRate),
		"-v", "quiet",
		"pipe:1",
	}

	cmd := exec.CommandContext(ctx, d.config.FFmpegPath, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		logger.Error(err, "ffmpeg decode failed", logging.Fields{
			"stderr": stderr.String(),
		})
		return nil, fmt.Errorf("%w: ffmpeg on %s: %v", ErrDecode, path, err)
	}

	raw := stdout.Bytes()
	if len(raw) < 8 {
		return nil, fmt.Errorf("%w: ffmpeg produced no samples for %s", ErrDecode, path)
	}

	numSamples := len(raw) / 8
	pcm := make([]float64, numSamples)
	for i := 0; i < numSamples; i++ {
		bits := binary.LittleEndian.Uint64(raw[i*8 : i*8+8])
		pcm[i] = math.Float64frombits(bits)
	}

	logger.Debug("Decode completed", logging.Fields{
		"samples":  numSamples,
		"duration": float64(numSamples) / float64(targetSampleRate),
	})

	return &Clip{
		PCM:        pcm,
		SampleRate: targetSampleRate,
		Duration:   time.Duration(float64(numSamples) / float64(targetSampleRate) * float64(time.Second)),
		Path:       path,
	}, nil
}
