package chorus

import (
	"github.com/SweIsHere/previewData/analysis/stats"
)

// Segment is one fixed-length candidate window over the frame index
// space. The frame range is half-open [StartFrame, EndFrame). Segments
// are created once by the Segmenter and read-only afterwards.
type Segment struct {
	StartS     float64 `json:"start_s"`
	EndS       float64 `json:"end_s"`
	StartFrame int     `json:"start_frame"`
	EndFrame   int     `json:"end_frame"`

	MeanEnergy     float64 `json:"mean_energy"`
	EnergyVariance float64 `json:"energy_variance"`
	MeanBrightness float64 `json:"mean_brightness"`
	TonalStability float64 `json:"tonal_stability"`

	// Raw per-frame sub-matrices for similarity computation
	MFCC   [][]float64 `json:"-"`
	Chroma [][]float64 `json:"-"`
}

// Duration returns the segment length in seconds
func (s *Segment) Duration() float64 {
	return s.EndS - s.StartS
}

// Segmenter slices the feature streams into fixed-length overlapping
// windows. Window is longer than stride on purpose: the same musical
// moment appears in several segments, which is what lets repeated
// passages accumulate repetition counts.
type Segmenter struct {
	config *Config
}

// NewSegmenter creates a segmenter for the given config
func NewSegmenter(config *Config) *Segmenter {
	if config == nil {
		config = DefaultConfig()
	}
	return &Segmenter{config: config}
}

// Segment produces the ordered candidate windows. A trailing window
// shorter than the full length is dropped; a track shorter than one
// window yields no segments.
func (sg *Segmenter) Segment(features *FeatureSet) []Segment {
	windowFrames := sg.framesFor(sg.config.WindowSeconds, features)
	strideFrames := sg.framesFor(sg.config.StrideSeconds, features)
	totalFrames := features.NumFrames()

	if windowFrames <= 0 || strideFrames <= 0 || totalFrames < windowFrames {
		return nil
	}

	count := (totalFrames-windowFrames)/strideFrames + 1
	segments := make([]Segment, 0, count)

	for i := 0; i+windowFrames <= totalFrames; i += strideFrames {
		startFrame := i
		endFrame := i + windowFrames

		energyWindow := features.Energy[startFrame:endFrame]
		chromaWindow := features.Chroma[startFrame:endFrame]

		segments = append(segments, Segment{
			StartS:         features.FrameTime(startFrame),
			EndS:           features.FrameTime(endFrame),
			StartFrame:     startFrame,
			EndFrame:       endFrame,
			MeanEnergy:     stats.Mean(energyWindow),
			EnergyVariance: stats.Variance(energyWindow),
			MeanBrightness: stats.Mean(features.Brightness[startFrame:endFrame]),
			TonalStability: 1.0 / (1.0 + stats.Variance(stats.Flatten(chromaWindow))),
			MFCC:           features.MFCC[startFrame:endFrame],
			Chroma:         chromaWindow,
		})
	}

	return segments
}

// framesFor converts a duration in seconds to a frame count
func (sg *Segmenter) framesFor(seconds float64, features *FeatureSet) int {
	return int(seconds * float64(features.SampleRate) / float64(features.HopLength))
}
