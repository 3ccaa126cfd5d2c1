// Package chorus locates the most chorus-like section of a song and
// extracts it as an audio preview. Candidate segments are scored on
// repetition, energy, position, tonal stability and energy variance;
// the winner is expanded to a target duration and exported with fades.
package chorus

import (
	"runtime"
)

// ScoreWeights holds the relative weight of each sub-score in the
// composite segment score. The values are empirically chosen; they are
// exposed as configuration rather than re-derived.
type ScoreWeights struct {
	Repetition     float64 `json:"repetition"`
	Energy         float64 `json:"energy"`
	Position       float64 `json:"position"`
	Stability      float64 `json:"stability"`
	EnergyVariance float64 `json:"energy_variance"`
}

// PositionBands holds the position-prior scores. Segments starting in the
// middle half of the track score full, the middle 70% scores medium, and
// the edges score low but are never excluded.
type PositionBands struct {
	InnerLow   float64 `json:"inner_low"`   // 0.25
	InnerHigh  float64 `json:"inner_high"`  // 0.75
	OuterLow   float64 `json:"outer_low"`   // 0.15
	OuterHigh  float64 `json:"outer_high"`  // 0.85
	InnerScore float64 `json:"inner_score"` // 1.0
	OuterScore float64 `json:"outer_score"` // 0.7
	EdgeScore  float64 `json:"edge_score"`  // 0.3
}

// Config holds every tunable constant of the detection pipeline
type Config struct {
	// Frame analysis layout
	SampleRate  int `json:"sample_rate"`  // Decode target (default 22050)
	FrameLength int `json:"frame_length"` // Analysis frame in samples (default 2048)
	HopLength   int `json:"hop_length"`   // Hop in samples (default 512)

	MFCCCoefficients int `json:"mfcc_coefficients"` // Timbral descriptor size (default 13)

	// Segmentation
	WindowSeconds float64 `json:"window_seconds"` // Sliding window length (default 12)
	StrideSeconds float64 `json:"stride_seconds"` // Window stride (default 2)

	// Similarity
	TimbreWeight        float64 `json:"timbre_weight"`        // MFCC correlation weight (default 0.7)
	HarmonyWeight       float64 `json:"harmony_weight"`       // Chroma correlation weight (default 0.3)
	RepetitionThreshold float64 `json:"repetition_threshold"` // Similarity counted as a repeat (default 0.6)

	// Scoring
	Weights  ScoreWeights  `json:"weights"`
	Position PositionBands `json:"position"`

	// Output
	TargetDuration float64 `json:"target_duration"` // Preview length in seconds (default 30)

	// Workers for the pairwise similarity computation (default NumCPU)
	Workers int `json:"workers"`
}

// DefaultConfig returns the default detection configuration
func DefaultConfig() *Config {
	return &Config{
		SampleRate:       22050,
		FrameLength:      2048,
		HopLength:        512,
		MFCCCoefficients: 13,
		WindowSeconds:    12.0,
		StrideSeconds:    2.0,

		TimbreWeight:        0.7,
		HarmonyWeight:       0.3,
		RepetitionThreshold: 0.6,

		Weights: ScoreWeights{
			Repetition:     0.35,
			Energy:         0.25,
			Position:       0.15,
			Stability:      0.15,
			EnergyVariance: 0.10,
		},
		Position: PositionBands{
			InnerLow:   0.25,
			InnerHigh:  0.75,
			OuterLow:   0.15,
			OuterHigh:  0.85,
			InnerScore: 1.0,
			OuterScore: 0.7,
			EdgeScore:  0.3,
		},

		TargetDuration: 30.0,
		Workers:        runtime.NumCPU(),
	}
}
