package signals

// #region signal-names

// Signal identifies one of the four upstream signal sources.
type Signal string

const (
	SignalEngagement  Signal = "engagement"
	SignalPerformance Signal = "performance"
	SignalCurriculum  Signal = "curriculum"
	SignalAffect      Signal = "affect"
)

// Names lists the four signals in weight-tuple order.
var Names = [4]Signal{SignalEngagement, SignalPerformance, SignalCurriculum, SignalAffect}

// #endregion signal-names

// #region bundle

// Bundle carries the four payload documents for one update cycle.
// Each payload is an already-validated structured document from its
// upstream producer; a nil payload means the signal is missing this cycle.
type Bundle struct {
	Engagement  map[string]any `json:"engagement,omitempty"`
	Performance map[string]any `json:"performance,omitempty"`
	Curriculum  map[string]any `json:"curriculum,omitempty"`
	Affect      map[string]any `json:"affect,omitempty"`
}

// #endregion bundle

// #region scores

// Scores holds the normalized [0,1] score per signal.
type Scores struct {
	Engagement  float64
	Performance float64
	Curriculum  float64
	Affect      float64
}

// Vector returns the scores in weight-tuple order.
func (s Scores) Vector() [4]float64 {
	return [4]float64{s.Engagement, s.Performance, s.Curriculum, s.Affect}
}

// #endregion scores

// #region fallback

// Fallback records one neutral-default substitution made while normalizing.
type Fallback struct {
	Signal Signal `json:"signal"`
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// #endregion fallback
