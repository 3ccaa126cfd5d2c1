package temporal

// TempoEstimator estimates global tempo from the framed energy envelope
// using autocorrelation. Carried as diagnostic output only.
type TempoEstimator struct {
	hopSize    int
	sampleRate int
}

// NewTempoEstimator creates a new tempo estimator for the given frame layout
func NewTempoEstimator(hopSize, sampleRate int) *TempoEstimator {
	return &TempoEstimator{
		hopSize:    hopSize,
		sampleRate: sampleRate,
	}
}

// Estimate returns the tempo in BPM and approximate beat positions as
// frame indices. Falls back to 120 BPM when no periodic structure stands
// out in the envelope.
func (te *TempoEstimator) Estimate(envelope []float64) (float64, []int) {
	if len(envelope) < 10 {
		return 0.0, nil
	}

	maxLag := len(envelope) / 2
	autocorr := te.autocorrelation(envelope, maxLag)

	bestLag := te.findBeatLag(autocorr)
	if bestLag == 0 {
		return 120.0, te.beatGrid(envelope, te.lagForTempo(120.0))
	}

	period := float64(bestLag) * float64(te.hopSize) / float64(te.sampleRate)
	tempo := 60.0 / period

	return tempo, te.beatGrid(envelope, bestLag)
}

// autocorrelation computes the normalized autocorrelation of the envelope
func (te *TempoEstimator) autocorrelation(signal []float64, maxLag int) []float64 {
	if maxLag > len(signal) {
		maxLag = len(signal)
	}

	autocorr := make([]float64, maxLag)
	for lag := 0; lag < maxLag; lag++ {
		sum := 0.0
		count := 0
		for i := 0; i < len(signal)-lag; i++ {
			sum += signal[i] * signal[i+lag]
			count++
		}
		if count > 0 {
			autocorr[lag] = sum / float64(count)
		}
	}

	if len(autocorr) > 0 && autocorr[0] > 0 {
		for i := range autocorr {
			autocorr[i] /= autocorr[0]
		}
	}

	return autocorr
}

// findBeatLag finds the strongest autocorrelation peak in the 60-180 BPM range
func (te *TempoEstimator) findBeatLag(autocorr []float64) int {
	timePerFrame := float64(te.hopSize) / float64(te.sampleRate)

	minLag := int((60.0 / 180.0) / timePerFrame)
	maxLag := int(1.0 / timePerFrame) // 60 BPM
	if minLag < 1 {
		minLag = 1
	}
	if maxLag >= len(autocorr) {
		maxLag = len(autocorr) - 1
	}

	maxVal := 0.0
	bestLag := 0
	for lag := minLag; lag <= maxLag; lag++ {
		if lag > 0 && lag < len(autocorr)-1 {
			if autocorr[lag] > autocorr[lag-1] &&
				autocorr[lag] > autocorr[lag+1] &&
				autocorr[lag] > maxVal {
				maxVal = autocorr[lag]
				bestLag = lag
			}
		}
	}

	return bestLag
}

// lagForTempo converts a BPM value to its envelope lag
func (te *TempoEstimator) lagForTempo(bpm float64) int {
	timePerFrame := float64(te.hopSize) / float64(te.sampleRate)
	lag := int((60.0 / bpm) / timePerFrame)
	if lag < 1 {
		lag = 1
	}
	return lag
}

// beatGrid anchors a beat grid on the loudest envelope frame within the
// first period and steps forward by the beat period
func (te *TempoEstimator) beatGrid(envelope []float64, periodFrames int) []int {
	if periodFrames <= 0 || len(envelope) == 0 {
		return nil
	}

	anchor := 0
	limit := min(periodFrames, len(envelope))
	for i := 1; i < limit; i++ {
		if envelope[i] > envelope[anchor] {
			anchor = i
		}
	}

	var beats []int
	for frame := anchor; frame < len(envelope); frame += periodFrames {
		beats = append(beats, frame)
	}

	return beats
}
