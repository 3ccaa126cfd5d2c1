package chorus

// Expander grows the winning segment to the target preview duration
// while staying inside the track bounds
type Expander struct {
	config *Config
}

// NewExpander creates an expander for the given config
func NewExpander(config *Config) *Expander {
	if config == nil {
		config = DefaultConfig()
	}
	return &Expander{config: config}
}

// Expand returns the final [start, end) bounds in seconds for the
// winning record. A segment already at or past the target is returned
// unchanged. Otherwise the shortfall is split evenly across both sides;
// if that runs past the end of the track the end is clamped and the
// start pulled back a full target duration, so near-track-end winners
// favor a correct trailing edge over symmetric centering.
func (ex *Expander) Expand(best ScoreRecord, segments []Segment) (float64, float64) {
	seg := segments[best.Index]

	start := seg.StartS
	end := seg.EndS
	target := ex.config.TargetDuration

	if end-start >= target {
		return start, end
	}

	halfGrowth := (target - (end - start)) / 2.0

	newStart := max(0.0, start-halfGrowth)
	newEnd := end + halfGrowth

	trackDuration := segments[len(segments)-1].EndS
	if newEnd > trackDuration {
		newEnd = trackDuration
		newStart = max(0.0, newEnd-target)
	}

	return newStart, newEnd
}
