package chorus

import (
	"fmt"

	"github.com/SweIsHere/previewData/analysis/chroma"
	"github.com/SweIsHere/previewData/analysis/spectral"
	"github.com/SweIsHere/previewData/analysis/temporal"
	"github.com/SweIsHere/previewData/audio"
	"github.com/SweIsHere/previewData/logging"
)

// FeatureSet holds the frame-aligned feature streams of one track.
// Every stream has exactly NumFrames entries at one entry per hop, so a
// frame-range slice is temporally valid across all of them at once.
type FeatureSet struct {
	SampleRate int `json:"sample_rate"`
	HopLength  int `json:"hop_length"`

	Energy     []float64   `json:"energy"`     // RMS per frame
	MFCC       [][]float64 `json:"mfcc"`       // 13 timbral coefficients per frame
	Brightness []float64   `json:"brightness"` // Spectral centroid per frame
	Chroma     [][]float64 `json:"chroma"`     // 12 pitch class energies per frame

	// Diagnostics only; not consumed by scoring
	Tempo float64 `json:"tempo"`
	Beats []int   `json:"beats"`
}

// NumFrames returns the shared length of the feature streams
func (fs *FeatureSet) NumFrames() int {
	return len(fs.Energy)
}

// FrameTime converts a frame index to seconds
func (fs *FeatureSet) FrameTime(frame int) float64 {
	return float64(frame) * float64(fs.HopLength) / float64(fs.SampleRate)
}

// FeatureExtractor turns a decoded waveform into the frame-aligned
// feature streams the segmenter consumes
type FeatureExtractor struct {
	config *Config
	logger logging.Logger
}

// NewFeatureExtractor creates a feature extractor for the given config
func NewFeatureExtractor(config *Config, logger logging.Logger) *FeatureExtractor {
	if config == nil {
		config = DefaultConfig()
	}
	if logger == nil {
		logger = logging.GetGlobalLogger()
	}
	return &FeatureExtractor{
		config: config,
		logger: logger.WithFields(logging.Fields{"component": "feature_extractor"}),
	}
}

// Extract computes all feature streams for the clip. The single STFT is
// shared by the MFCC, brightness and chroma streams, and the RMS stream
// uses the same frame layout, which keeps every stream the same length.
func (fe *FeatureExtractor) Extract(clip *audio.Clip) (*FeatureSet, error) {
	cfg := fe.config

	if clip == nil || len(clip.PCM) < cfg.FrameLength {
		return nil, fmt.Errorf("track too short for analysis: need at least %d samples", cfg.FrameLength)
	}

	fe.logger.Debug("Extracting features", logging.Fields{
		"samples":     len(clip.PCM),
		"sample_rate": clip.SampleRate,
		"frame":       cfg.FrameLength,
		"hop":         cfg.HopLength,
	})

	stft := spectral.NewSTFT()
	window := spectral.NewHann(cfg.FrameLength)
	spectrogram, err := stft.Compute(clip.PCM, cfg.FrameLength, cfg.HopLength, clip.SampleRate, window)
	if err != nil {
		return nil, fmt.Errorf("stft: %w", err)
	}

	energy := temporal.NewEnergy(cfg.FrameLength, cfg.HopLength).ComputeRMS(clip.PCM)

	mfcc, err := spectral.NewMFCC(clip.SampleRate, cfg.MFCCCoefficients).ComputeFrames(spectrogram.Magnitude)
	if err != nil {
		return nil, fmt.Errorf("mfcc: %w", err)
	}

	brightness := spectral.NewCentroid(clip.SampleRate).ComputeFrames(spectrogram.Magnitude)

	chromagram := chroma.NewExtractor(clip.SampleRate).ComputeFrames(spectrogram)

	if len(energy) != spectrogram.TimeFrames ||
		len(mfcc) != spectrogram.TimeFrames ||
		len(brightness) != spectrogram.TimeFrames ||
		len(chromagram) != spectrogram.TimeFrames {
		return nil, fmt.Errorf("feature streams misaligned: energy=%d mfcc=%d brightness=%d chroma=%d stft=%d",
			len(energy), len(mfcc), len(brightness), len(chromagram), spectrogram.TimeFrames)
	}

	tempo, beats := temporal.NewTempoEstimator(cfg.HopLength, clip.SampleRate).Estimate(energy)

	fe.logger.Debug("Feature extraction completed", logging.Fields{
		"frames": spectrogram.TimeFrames,
		"tempo":  tempo,
		"beats":  len(beats),
	})

	return &FeatureSet{
		SampleRate: clip.SampleRate,
		HopLength:  cfg.HopLength,
		Energy:     energy,
		MFCC:       mfcc,
		Brightness: brightness,
		Chroma:     chromagram,
		Tempo:      tempo,
		Beats:      beats,
	}, nil
}
