package temporal

import (
	"math"
	"testing"
)

func TestComputeRMSFrameLayout(t *testing.T) {
	energy := NewEnergy(2048, 512)

	tests := []struct {
		name       string
		numSamples int
		wantFrames int
	}{
		{"too short", 1000, 0},
		{"exact frame", 2048, 1},
		{"one hop past", 2048 + 512, 2},
		{"one second", 22050, (22050-2048)/512 + 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := energy.ComputeRMS(make([]float64, tt.numSamples))
			if len(got) != tt.wantFrames {
				t.Errorf("frames = %d, want %d", len(got), tt.wantFrames)
			}
		})
	}
}

func TestComputeRMSConstantSignal(t *testing.T) {
	energy := NewEnergy(2048, 512)

	signal := make([]float64, 22050)
	for i := range signal {
		signal[i] = 0.5
	}

	for i, v := range energy.ComputeRMS(signal) {
		if math.Abs(v-0.5) > 1e-12 {
			t.Errorf("frame %d RMS = %v, want 0.5", i, v)
		}
	}
}

func TestComputeRMSSineAmplitude(t *testing.T) {
	energy := NewEnergy(2048, 512)

	// RMS of a unit sine is 1/sqrt(2)
	signal := make([]float64, 22050)
	for i := range signal {
		signal[i] = math.Sin(2 * math.Pi * 440.0 * float64(i) / 22050.0)
	}

	values := energy.ComputeRMS(signal)
	want := 1.0 / math.Sqrt2
	if got := values[len(values)/2]; math.Abs(got-want) > 0.01 {
		t.Errorf("sine RMS = %v, want about %v", got, want)
	}
}

func TestTempoEstimateFromPulseTrain(t *testing.T) {
	hopSize := 512
	sampleRate := 22050
	period := 25 // frames between pulses

	envelope := make([]float64, 900)
	for i := 0; i < len(envelope); i += period {
		envelope[i] = 1.0
	}

	estimator := NewTempoEstimator(hopSize, sampleRate)
	tempo, beats := estimator.Estimate(envelope)

	wantTempo := 60.0 / (float64(period) * float64(hopSize) / float64(sampleRate))
	if math.Abs(tempo-wantTempo) > 1.0 {
		t.Errorf("tempo = %.2f BPM, want about %.2f BPM", tempo, wantTempo)
	}

	if len(beats) == 0 {
		t.Fatal("no beats returned")
	}
	for i := 1; i < len(beats); i++ {
		if beats[i]-beats[i-1] != period {
			t.Errorf("beat spacing %d at index %d, want %d", beats[i]-beats[i-1], i, period)
		}
	}
}

func TestTempoFallbackOnFlatEnvelope(t *testing.T) {
	estimator := NewTempoEstimator(512, 22050)

	envelope := make([]float64, 500)
	for i := range envelope {
		envelope[i] = 0.3
	}

	tempo, beats := estimator.Estimate(envelope)
	if tempo != 120.0 {
		t.Errorf("tempo = %v, want 120 fallback", tempo)
	}
	if len(beats) == 0 {
		t.Error("fallback should still produce a beat grid")
	}
}

func TestTempoEstimateShortEnvelope(t *testing.T) {
	estimator := NewTempoEstimator(512, 22050)

	tempo, beats := estimator.Estimate(make([]float64, 5))
	if tempo != 0 || beats != nil {
		t.Errorf("short envelope gave tempo=%v beats=%v, want 0 and nil", tempo, beats)
	}
}
