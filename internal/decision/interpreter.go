// Package decision maps a learner's post-update state onto an actionable
// recommendation: what to do next, how confident the engine is, which
// phase follows, and how the update equation should be tuned next cycle.
package decision

import (
	"fmt"

	"github.com/adaptivepath/progression/go-engine/internal/phase"
	"github.com/adaptivepath/progression/go-engine/internal/signals"
)

// #region config

// Range is a closed clamp interval.
type Range struct {
	Min float64
	Max float64
}

// Clamp restricts v to the range.
func (r Range) Clamp(v float64) float64 {
	if v < r.Min {
		return r.Min
	}
	if v > r.Max {
		return r.Max
	}
	return v
}

// Config holds the decision thresholds and adaptive clamp ranges. These
// are business-policy constants supplied by configuration, not engine
// invariants.
type Config struct {
	AdvanceThreshold  float64
	ContinueThreshold float64
	SupportThreshold  float64

	AdvanceConfidence   float64
	ContinueConfidence  float64
	SupportConfidence   float64
	RemediateConfidence float64

	AlphaRange Range
	BetaRange  Range
}

// DefaultConfig returns the standard thresholds and clamp ranges.
func DefaultConfig() Config {
	return Config{
		AdvanceThreshold:  0.8,
		ContinueThreshold: 0.6,
		SupportThreshold:  0.4,

		AdvanceConfidence:   0.9,
		ContinueConfidence:  0.7,
		SupportConfidence:   0.6,
		RemediateConfidence: 0.8,

		AlphaRange: Range{Min: 0.3, Max: 0.9},
		BetaRange:  Range{Min: 0.05, Max: 0.25},
	}
}

// Validate rejects threshold orderings the interpreter cannot serve.
func (c Config) Validate() error {
	if !(c.AdvanceThreshold > c.ContinueThreshold && c.ContinueThreshold > c.SupportThreshold) {
		return fmt.Errorf("decision: thresholds must descend: advance %.2f > continue %.2f > support %.2f",
			c.AdvanceThreshold, c.ContinueThreshold, c.SupportThreshold)
	}
	for _, conf := range []float64{c.AdvanceConfidence, c.ContinueConfidence, c.SupportConfidence, c.RemediateConfidence} {
		if conf < 0 || conf > 1 {
			return fmt.Errorf("decision: confidence %f outside [0,1]", conf)
		}
	}
	if c.AlphaRange.Min > c.AlphaRange.Max || c.BetaRange.Min > c.BetaRange.Max {
		return fmt.Errorf("decision: inverted clamp range")
	}
	return nil
}

// #endregion config

// #region interpreter

// Interpreter turns a post-update state into a Record. Pure given its
// configuration: same inputs, same outputs.
type Interpreter struct {
	config Config
}

// NewInterpreter creates an interpreter with the given configuration.
func NewInterpreter(config Config) *Interpreter {
	return &Interpreter{config: config}
}

// Interpret maps state onto action, confidence, next phase, and the
// adaptive parameters for the following cycle. ph is the effective phase
// this cycle was computed under; scores inform the reasoning text.
func (in *Interpreter) Interpret(entityID string, state float64, ph phase.Phase, scores signals.Scores) Record {
	c := in.config

	var action Action
	var confidence float64
	switch {
	case state >= c.AdvanceThreshold:
		action = ActionAdvance
		confidence = c.AdvanceConfidence
	case state >= c.ContinueThreshold:
		action = ActionContinue
		confidence = c.ContinueConfidence
	case state >= c.SupportThreshold:
		action = ActionSupport
		confidence = c.SupportConfidence
	default:
		action = ActionRemediate
		confidence = c.RemediateConfidence
	}

	next := ph
	switch action {
	case ActionAdvance:
		next = phase.Next(ph)
	case ActionRemediate:
		next = phase.Prev(ph)
	}

	return Record{
		EntityID:          entityID,
		State:             state,
		RecommendedAction: action,
		Confidence:        confidence,
		Reasoning:         reasoning(action, state, scores, c),
		NextPhase:         next,
		AdaptiveParams:    in.adaptiveParams(state, ph),
	}
}

// adaptiveParams recomputes the tuning pair each cycle. Both formulas are
// monotonic: a struggling learner gets a higher baseline learning rate,
// and exploration tapers off as the learner moves toward mastery.
func (in *Interpreter) adaptiveParams(state float64, ph phase.Phase) AdaptiveParams {
	idx := phase.Index(ph)
	if idx < 0 {
		idx = phase.Index(phase.Default())
	}
	return AdaptiveParams{
		AlphaBaseline:   in.config.AlphaRange.Clamp(0.9 - 0.6*state),
		BetaExploration: in.config.BetaRange.Clamp(0.25 - 0.05*float64(idx)),
	}
}

// #endregion interpreter

// #region reasoning

func reasoning(action Action, state float64, scores signals.Scores, c Config) string {
	switch action {
	case ActionAdvance:
		return fmt.Sprintf("state %.3f at or above advance threshold %.2f; learner ready for the next phase", state, c.AdvanceThreshold)
	case ActionContinue:
		return fmt.Sprintf("state %.3f in continue band [%.2f, %.2f); steady progress in current phase", state, c.ContinueThreshold, c.AdvanceThreshold)
	case ActionSupport:
		return fmt.Sprintf("state %.3f in support band [%.2f, %.2f); reinforce current material, weakest signal: %s", state, c.SupportThreshold, c.ContinueThreshold, weakestSignal(scores))
	default:
		return fmt.Sprintf("state %.3f below support threshold %.2f; step back and remediate, weakest signal: %s", state, c.SupportThreshold, weakestSignal(scores))
	}
}

// weakestSignal names the lowest-scoring signal, first-listed on ties.
func weakestSignal(scores signals.Scores) signals.Signal {
	vec := scores.Vector()
	min := 0
	for i := 1; i < len(vec); i++ {
		if vec[i] < vec[min] {
			min = i
		}
	}
	return signals.Names[min]
}

// #endregion reasoning
