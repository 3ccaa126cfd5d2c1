package chorus

import (
	"sync"

	"github.com/SweIsHere/previewData/analysis/stats"
	"github.com/SweIsHere/previewData/logging"
)

// SimilarityMatrix is a symmetric matrix of pairwise segment similarity.
// Self-pairs stay at zero; nothing reads them.
type SimilarityMatrix struct {
	values [][]float64
	n      int
}

// At returns the similarity between segments i and j
func (m *SimilarityMatrix) At(i, j int) float64 {
	return m.values[i][j]
}

// Size returns the number of segments
func (m *SimilarityMatrix) Size() int {
	return m.n
}

// SimilarityEngine computes pairwise segment similarity from the timbral
// and harmonic sub-matrices. Timbre carries more weight than harmony:
// textural recurrence is the stronger chorus signal, tonal recurrence a
// secondary confirmation.
type SimilarityEngine struct {
	config *Config
	logger logging.Logger
}

// NewSimilarityEngine creates a similarity engine for the given config
func NewSimilarityEngine(config *Config, logger logging.Logger) *SimilarityEngine {
	if config == nil {
		config = DefaultConfig()
	}
	if logger == nil {
		logger = logging.GetGlobalLogger()
	}
	return &SimilarityEngine{
		config: config,
		logger: logger.WithFields(logging.Fields{"component": "similarity_engine"}),
	}
}

// Compute builds the full similarity matrix. The pair computations are
// independent and each pair writes its own two cells, so they are spread
// across a worker pool and merged without coordination.
func (se *SimilarityEngine) Compute(segments []Segment) *SimilarityMatrix {
	n := len(segments)

	values := make([][]float64, n)
	for i := range values {
		values[i] = make([]float64, n)
	}

	se.logger.Debug("Computing segment similarities", logging.Fields{
		"segments": n,
		"pairs":    n * (n - 1) / 2,
	})

	type pair struct{ i, j int }
	jobs := make(chan pair, n)

	numWorkers := se.config.Workers
	if numWorkers <= 0 {
		numWorkers = 1
	}

	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for p := range jobs {
				sim := se.pairSimilarity(&segments[p.i], &segments[p.j])
				values[p.i][p.j] = sim
				values[p.j][p.i] = sim
			}
		}()
	}

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			jobs <- pair{i, j}
		}
	}
	close(jobs)
	wg.Wait()

	return &SimilarityMatrix{values: values, n: n}
}

// pairSimilarity combines the timbral and harmonic correlation of two
// segments. Any degenerate pair (width mismatch, zero variance) yields a
// zero contribution instead of failing the run.
func (se *SimilarityEngine) pairSimilarity(a, b *Segment) float64 {
	corrMFCC := subMatrixCorrelation(a.MFCC, b.MFCC)
	corrChroma := subMatrixCorrelation(a.Chroma, b.Chroma)

	return se.config.TimbreWeight*corrMFCC + se.config.HarmonyWeight*corrChroma
}

// subMatrixCorrelation computes the Pearson correlation of two flattened
// feature windows. Windows of unequal frame count compare as 0; a NaN
// correlation (constant input) also maps to 0.
func subMatrixCorrelation(a, b [][]float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0.0
	}

	return stats.Correlation(stats.Flatten(a), stats.Flatten(b))
}
