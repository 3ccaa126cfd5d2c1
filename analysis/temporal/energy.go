// Package temporal provides time-domain features: framed RMS energy and
// tempo estimation from the energy envelope.
package temporal

import (
	"math"
)

// Energy computes framed RMS energy over a signal
type Energy struct {
	frameSize int
	hopSize   int
}

// NewEnergy creates a new energy calculator
func NewEnergy(frameSize, hopSize int) *Energy {
	return &Energy{
		frameSize: frameSize,
		hopSize:   hopSize,
	}
}

// ComputeRMS calculates RMS energy for overlapping frames. The frame
// layout matches the STFT layout so energy frames align one-to-one with
// spectrogram frames.
func (e *Energy) ComputeRMS(signal []float64) []float64 {
	if len(signal) < e.frameSize || e.hopSize <= 0 || e.frameSize <= 0 {
		return []float64{}
	}

	numFrames := (len(signal)-e.frameSize)/e.hopSize + 1
	energies := make([]float64, numFrames)

	for i := 0; i < numFrames; i++ {
		startIdx := i * e.hopSize

		sumSquares := 0.0
		for j := startIdx; j < startIdx+e.frameSize; j++ {
			sumSquares += signal[j] * signal[j]
		}
		energies[i] = math.Sqrt(sumSquares / float64(e.frameSize))
	}

	return energies
}
