package spectral

// Centroid computes the spectral centroid (center of mass) of a spectrum,
// used as the brightness measure of a frame
type Centroid struct {
	sampleRate int
	freqBins   []float64
}

// NewCentroid creates a new spectral centroid calculator
func NewCentroid(sampleRate int) *Centroid {
	return &Centroid{sampleRate: sampleRate}
}

// Compute calculates the spectral centroid for a single magnitude spectrum
func (c *Centroid) Compute(spectrum []float64) float64 {
	if len(spectrum) == 0 {
		return 0.0
	}

	if len(c.freqBins) != len(spectrum) {
		c.initializeFreqBins(len(spectrum))
	}

	numerator := 0.0
	denominator := 0.0
	for i := range spectrum {
		numerator += c.freqBins[i] * spectrum[i]
		denominator += spectrum[i]
	}

	if denominator == 0 {
		return 0
	}

	return numerator / denominator
}

// ComputeFrames processes a full spectrogram, one centroid per frame
func (c *Centroid) ComputeFrames(spectrogram [][]float64) []float64 {
	centroids := make([]float64, len(spectrogram))
	for t, spectrum := range spectrogram {
		centroids[t] = c.Compute(spectrum)
	}
	return centroids
}

func (c *Centroid) initializeFreqBins(numBins int) {
	c.freqBins = make([]float64, numBins)
	for i := 0; i < numBins; i++ {
		c.freqBins[i] = float64(i) * float64(c.sampleRate) / float64((numBins-1)*2)
	}
}
