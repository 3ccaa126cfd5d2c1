// Package chroma folds STFT magnitude spectrograms into 12-bin pitch
// class energy vectors, the harmonic fingerprint of each frame.
package chroma

import (
	"math"

	"github.com/SweIsHere/previewData/analysis/spectral"
)

// Extractor maps magnitude spectra onto the 12 semitone pitch classes
// (C, C#, D, ... B). All octaves of a pitch fold into the same bin, which
// makes the representation a tonal fingerprint independent of register.
type Extractor struct {
	sampleRate int
	tuningFreq float64 // A4 frequency
	chromaBins int
	minFreq    float64
	maxFreq    float64
}

// NewExtractor creates a chroma extractor with standard A4=440Hz tuning
func NewExtractor(sampleRate int) *Extractor {
	return &Extractor{
		sampleRate: sampleRate,
		tuningFreq: 440.0,
		chromaBins: 12,
		minFreq:    80.0,   // Approximate E2
		maxFreq:    8000.0, // High enough for harmonics
	}
}

// ComputeFrames converts an STFT magnitude spectrogram to a chromagram,
// one normalized 12-bin vector per time frame
func (e *Extractor) ComputeFrames(stftResult *spectral.STFTResult) [][]float64 {
	if stftResult == nil || stftResult.TimeFrames == 0 {
		return [][]float64{}
	}

	mapping := e.binMapping(stftResult.FreqBins, stftResult.FreqResolution)

	chromagram := make([][]float64, stftResult.TimeFrames)
	for t := 0; t < stftResult.TimeFrames; t++ {
		chromagram[t] = make([]float64, e.chromaBins)

		for f := 0; f < stftResult.FreqBins; f++ {
			bin := mapping[f]
			if bin < 0 {
				continue
			}
			// Magnitude squared for energy
			mag := stftResult.Magnitude[t][f]
			chromagram[t][bin] += mag * mag
		}

		e.normalizeFrame(chromagram[t])
	}

	return chromagram
}

// Bins returns the number of chroma bins
func (e *Extractor) Bins() int {
	return e.chromaBins
}

// binMapping maps FFT bins to pitch class bins, -1 for out-of-range bins
func (e *Extractor) binMapping(freqBins int, freqResolution float64) []int {
	mapping := make([]int, freqBins)

	for f := 0; f < freqBins; f++ {
		frequency := float64(f) * freqResolution

		if frequency < e.minFreq || frequency > e.maxFreq {
			mapping[f] = -1
			continue
		}

		midiNote := 69.0 + 12.0*math.Log2(frequency/e.tuningFreq)
		mapping[f] = ((int(math.Round(midiNote)) % 12) + 12) % 12
	}

	return mapping
}

// normalizeFrame normalizes a chroma frame to unit sum
func (e *Extractor) normalizeFrame(frame []float64) {
	total := 0.0
	for _, energy := range frame {
		total += energy
	}

	if total > 1e-10 {
		for i := range frame {
			frame[i] /= total
		}
	}
}
