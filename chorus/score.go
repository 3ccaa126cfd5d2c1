package chorus

import (
	"sort"

	"github.com/SweIsHere/previewData/logging"
)

// ScoreRecord holds one segment's composite score and its sub-scores
type ScoreRecord struct {
	Index int `json:"index"`

	Total          float64 `json:"total"`
	Repetition     float64 `json:"repetition"`
	Energy         float64 `json:"energy"`
	Position       float64 `json:"position"`
	Stability      float64 `json:"stability"`
	EnergyVariance float64 `json:"energy_variance"`

	Repetitions int     `json:"repetitions"`
	StartS      float64 `json:"start_s"`
	EndS        float64 `json:"end_s"`
}

// Scorer ranks segments by a weighted blend of repetition, energy,
// position, tonal stability and energy steadiness
type Scorer struct {
	config *Config
	logger logging.Logger
}

// NewScorer creates a scorer for the given config
func NewScorer(config *Config, logger logging.Logger) *Scorer {
	if config == nil {
		config = DefaultConfig()
	}
	if logger == nil {
		logger = logging.GetGlobalLogger()
	}
	return &Scorer{
		config: config,
		logger: logger.WithFields(logging.Fields{"component": "chorus_scorer"}),
	}
}

// Rank scores every segment and returns the records ordered by total
// score, descending. The sort is stable and keyed on score alone, so
// equal scores keep segment order. Deterministic for identical inputs.
func (sc *Scorer) Rank(segments []Segment, similarities *SimilarityMatrix) []ScoreRecord {
	n := len(segments)
	if n == 0 {
		return nil
	}

	trackDuration := segments[n-1].EndS

	maxEnergy := 0.0
	maxStability := 0.0
	maxVariance := 0.0
	for i := range segments {
		maxEnergy = max(maxEnergy, segments[i].MeanEnergy)
		maxStability = max(maxStability, segments[i].TonalStability)
		maxVariance = max(maxVariance, segments[i].EnergyVariance)
	}

	w := sc.config.Weights
	records := make([]ScoreRecord, n)

	for i := range segments {
		seg := &segments[i]

		repetitions := 0
		for j := 0; j < n; j++ {
			if j != i && similarities.At(i, j) > sc.config.RepetitionThreshold {
				repetitions++
			}
		}
		repetitionScore := float64(repetitions) / float64(n)

		energyScore := 0.0
		if maxEnergy > 0 {
			energyScore = seg.MeanEnergy / maxEnergy
		}

		positionScore := sc.positionScore(seg.StartS, trackDuration)

		stabilityScore := 0.0
		if maxStability > 0 {
			stabilityScore = seg.TonalStability / maxStability
		}

		varianceScore := 1.0
		if maxVariance > 0 {
			varianceScore = 1.0 - seg.EnergyVariance/maxVariance
		}

		records[i] = ScoreRecord{
			Index:          i,
			Repetition:     repetitionScore,
			Energy:         energyScore,
			Position:       positionScore,
			Stability:      stabilityScore,
			EnergyVariance: varianceScore,
			Repetitions:    repetitions,
			StartS:         seg.StartS,
			EndS:           seg.EndS,
			Total: repetitionScore*w.Repetition +
				energyScore*w.Energy +
				positionScore*w.Position +
				stabilityScore*w.Stability +
				varianceScore*w.EnergyVariance,
		}
	}

	sort.SliceStable(records, func(a, b int) bool {
		return records[a].Total > records[b].Total
	})

	sc.logTopCandidates(records)

	return records
}

// positionScore applies the position prior: choruses cluster in the
// middle of a track but the edges are never fully excluded
func (sc *Scorer) positionScore(startS, trackDuration float64) float64 {
	if trackDuration <= 0 {
		return sc.config.Position.EdgeScore
	}

	p := sc.config.Position
	relative := startS / trackDuration

	switch {
	case relative >= p.InnerLow && relative <= p.InnerHigh:
		return p.InnerScore
	case relative >= p.OuterLow && relative <= p.OuterHigh:
		return p.OuterScore
	default:
		return p.EdgeScore
	}
}

func (sc *Scorer) logTopCandidates(records []ScoreRecord) {
	for i, rec := range records {
		if i >= 3 {
			break
		}
		sc.logger.Debug("Chorus candidate", logging.Fields{
			"rank":        i + 1,
			"start_s":     rec.StartS,
			"end_s":       rec.EndS,
			"score":       rec.Total,
			"repetitions": rec.Repetitions,
		})
	}
}
