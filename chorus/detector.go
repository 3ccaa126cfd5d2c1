package chorus

import (
	"fmt"

	"github.com/SweIsHere/previewData/audio"
	"github.com/SweIsHere/previewData/logging"
)

// Result is the externally observable outcome of one detection run.
// On failure only Success and Error are meaningful.
type Result struct {
	Success     bool    `json:"success"`
	StartS      float64 `json:"start_s"`
	EndS        float64 `json:"end_s"`
	DurationS   float64 `json:"duration_s"`
	Score       float64 `json:"score"`
	Repetitions int     `json:"repetitions"`
	OutputPath  string  `json:"output_path"`
	Error       string  `json:"error,omitempty"`
}

// Detector runs the full pipeline: load, extract, segment, similarity,
// score, expand, export. It never lets an error or panic escape; every
// failure comes back as a failure-shaped Result.
type Detector struct {
	config *Config
	logger logging.Logger

	extractor  *FeatureExtractor
	segmenter  *Segmenter
	similarity *SimilarityEngine
	scorer     *Scorer
	expander   *Expander
}

// NewDetector creates a detector. A nil config uses DefaultConfig; a nil
// logger uses the global logger.
func NewDetector(config *Config, logger logging.Logger) *Detector {
	if config == nil {
		config = DefaultConfig()
	}
	if logger == nil {
		logger = logging.GetGlobalLogger()
	}
	logger = logger.WithFields(logging.Fields{"component": "chorus_detector"})

	return &Detector{
		config:     config,
		logger:     logger,
		extractor:  NewFeatureExtractor(config, logger),
		segmenter:  NewSegmenter(config),
		similarity: NewSimilarityEngine(config, logger),
		scorer:     NewScorer(config, logger),
		expander:   NewExpander(config),
	}
}

// Detect locates the chorus of the file at inputPath and writes the
// faded preview clip to outputPath
func (d *Detector) Detect(inputPath, outputPath string) (result *Result) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error(fmt.Errorf("%v", r), "Detection panicked")
			result = failure(fmt.Errorf("internal error: %v", r))
		}
	}()

	clip, err := audio.Load(inputPath, d.config.SampleRate)
	if err != nil {
		d.logger.Error(err, "Failed to load audio", logging.Fields{"path": inputPath})
		return failure(err)
	}

	d.logger.Info("Audio loaded", logging.Fields{
		"path":       inputPath,
		"duration_s": clip.Seconds(),
	})

	return d.DetectClip(clip, outputPath)
}

// DetectClip runs detection on already-decoded audio. Useful when the
// caller manages decoding, and for tests.
func (d *Detector) DetectClip(clip *audio.Clip, outputPath string) *Result {
	features, err := d.extractor.Extract(clip)
	if err != nil {
		return failure(err)
	}

	segments := d.segmenter.Segment(features)
	if len(segments) == 0 {
		return failure(fmt.Errorf("track shorter than the %gs analysis window", d.config.WindowSeconds))
	}

	d.logger.Info("Segments detected", logging.Fields{"count": len(segments)})

	similarities := d.similarity.Compute(segments)
	ranked := d.scorer.Rank(segments, similarities)

	best := ranked[0]
	startS, endS := d.expander.Expand(best, segments)

	d.logger.Info("Chorus selected", logging.Fields{
		"start_s":     startS,
		"end_s":       endS,
		"score":       best.Total,
		"repetitions": best.Repetitions,
	})

	if err := audio.ExportClip(clip, startS, endS, outputPath); err != nil {
		d.logger.Error(err, "Failed to export preview", logging.Fields{"path": outputPath})
		return failure(err)
	}

	return &Result{
		Success:     true,
		StartS:      startS,
		EndS:        endS,
		DurationS:   endS - startS,
		Score:       best.Total,
		Repetitions: best.Repetitions,
		OutputPath:  outputPath,
	}
}

func failure(err error) *Result {
	return &Result{Success: false, Error: err.Error()}
}
