package chorus

import (
	"math"
	"math/rand"
	"testing"
)

// testConfig uses a 1000 Hz / 100 sample hop layout so frame counts and
// segment times come out as round numbers: 10 frames per second, 120
// frame windows, 20 frame strides.
func testConfig() *Config {
	cfg := DefaultConfig()
	cfg.SampleRate = 1000
	cfg.HopLength = 100
	cfg.Workers = 2
	return cfg
}

// testFeatures builds a feature set with the given number of frames,
// filled with deterministic pseudo-random content
func testFeatures(numFrames int, seed int64) *FeatureSet {
	rng := rand.New(rand.NewSource(seed))

	fs := &FeatureSet{
		SampleRate: 1000,
		HopLength:  100,
		Energy:     make([]float64, numFrames),
		MFCC:       make([][]float64, numFrames),
		Brightness: make([]float64, numFrames),
		Chroma:     make([][]float64, numFrames),
	}

	for i := 0; i < numFrames; i++ {
		fs.Energy[i] = 0.3 + 0.1*rng.Float64()
		fs.Brightness[i] = 1000 + 500*rng.Float64()
		fs.MFCC[i] = randomRow(rng, 13)
		fs.Chroma[i] = normalizedRow(rng, 12)
	}

	return fs
}

func randomRow(rng *rand.Rand, width int) []float64 {
	row := make([]float64, width)
	for i := range row {
		row[i] = rng.Float64()
	}
	return row
}

func normalizedRow(rng *rand.Rand, width int) []float64 {
	row := randomRow(rng, width)
	sum := 0.0
	for _, v := range row {
		sum += v
	}
	for i := range row {
		row[i] /= sum
	}
	return row
}

func TestSegmentCount(t *testing.T) {
	cfg := testConfig()
	segmenter := NewSegmenter(cfg)

	// 120 frame window, 20 frame stride
	tests := []struct {
		name      string
		numFrames int
		want      int
	}{
		{"shorter than one window", 119, 0},
		{"exactly one window", 120, 1},
		{"one stride short of two", 139, 1},
		{"two windows", 140, 2},
		{"ninety seconds", 900, (900-120)/20 + 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			segments := segmenter.Segment(testFeatures(tt.numFrames, 1))
			if len(segments) != tt.want {
				t.Errorf("got %d segments, want %d", len(segments), tt.want)
			}
		})
	}
}

func TestSegmentBounds(t *testing.T) {
	segmenter := NewSegmenter(testConfig())
	segments := segmenter.Segment(testFeatures(300, 1))

	if len(segments) != 10 {
		t.Fatalf("got %d segments, want 10", len(segments))
	}

	for i, seg := range segments {
		wantStartFrame := i * 20
		if seg.StartFrame != wantStartFrame {
			t.Errorf("segment %d StartFrame = %d, want %d", i, seg.StartFrame, wantStartFrame)
		}
		if seg.EndFrame != wantStartFrame+120 {
			t.Errorf("segment %d EndFrame = %d, want %d", i, seg.EndFrame, wantStartFrame+120)
		}
		if math.Abs(seg.StartS-float64(i)*2.0) > 1e-9 {
			t.Errorf("segment %d StartS = %v, want %v", i, seg.StartS, float64(i)*2.0)
		}
		if math.Abs(seg.Duration()-12.0) > 1e-9 {
			t.Errorf("segment %d duration = %v, want 12", i, seg.Duration())
		}
		if len(seg.MFCC) != 120 || len(seg.Chroma) != 120 {
			t.Errorf("segment %d sub-matrix frames = %d/%d, want 120", i, len(seg.MFCC), len(seg.Chroma))
		}
	}
}

func TestSegmentStatistics(t *testing.T) {
	features := testFeatures(140, 1)

	// Constant energy and a flat chroma distribution over the first window
	flatChroma := make([]float64, 12)
	for i := range flatChroma {
		flatChroma[i] = 1.0 / 12.0
	}
	for i := 0; i < 120; i++ {
		features.Energy[i] = 0.5
		features.Brightness[i] = 1500
		features.Chroma[i] = flatChroma
	}

	segments := NewSegmenter(testConfig()).Segment(features)
	if len(segments) != 2 {
		t.Fatalf("got %d segments, want 2", len(segments))
	}

	first := segments[0]
	if math.Abs(first.MeanEnergy-0.5) > 1e-12 {
		t.Errorf("MeanEnergy = %v, want 0.5", first.MeanEnergy)
	}
	if first.EnergyVariance != 0 {
		t.Errorf("EnergyVariance = %v, want 0", first.EnergyVariance)
	}
	if math.Abs(first.MeanBrightness-1500) > 1e-9 {
		t.Errorf("MeanBrightness = %v, want 1500", first.MeanBrightness)
	}

	// A flat chroma distribution has zero variance, so stability is 1
	if math.Abs(first.TonalStability-1.0) > 1e-9 {
		t.Errorf("TonalStability = %v, want 1", first.TonalStability)
	}
}

func TestSegmentShortTrackYieldsNone(t *testing.T) {
	segmenter := NewSegmenter(testConfig())
	if got := segmenter.Segment(testFeatures(50, 1)); got != nil {
		t.Errorf("short track gave %d segments, want none", len(got))
	}
}
