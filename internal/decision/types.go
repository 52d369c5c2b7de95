package decision

import (
	"time"

	"github.com/adaptivepath/progression/go-engine/internal/phase"
	"github.com/adaptivepath/progression/go-engine/internal/signals"
)

// #region action

// Action is the categorical recommendation for one cycle.
type Action string

const (
	ActionAdvance   Action = "advance"
	ActionContinue  Action = "continue"
	ActionSupport   Action = "support"
	ActionRemediate Action = "remediate"
)

// #endregion action

// #region adaptive-params

// AdaptiveParams is the per-cycle tuning pair fed back into the next
// update equation for the same learner.
type AdaptiveParams struct {
	AlphaBaseline   float64 `json:"alpha_baseline"`
	BetaExploration float64 `json:"beta_exploration"`
}

// #endregion adaptive-params

// #region diagnostics

// Diagnostics carries the engine's per-cycle telemetry, attached to the
// record by the integration engine after interpretation.
type Diagnostics struct {
	CycleID        string             `json:"cycle_id"`
	Integration    float64            `json:"integration"`
	Noise          float64            `json:"noise"`
	Elapsed        time.Duration      `json:"elapsed"`
	BudgetExceeded bool               `json:"budget_exceeded"`
	PhaseFallback  bool               `json:"phase_fallback"`
	Fallbacks      []signals.Fallback `json:"fallbacks,omitempty"`
}

// #endregion diagnostics

// #region record

// Record is the full outcome of one update cycle.
type Record struct {
	EntityID          string         `json:"entity_id"`
	State             float64        `json:"state"`
	RecommendedAction Action         `json:"recommended_action"`
	Confidence        float64        `json:"confidence"`
	Reasoning         string         `json:"reasoning"`
	NextPhase         phase.Phase    `json:"next_phase"`
	AdaptiveParams    AdaptiveParams `json:"adaptive_parameters"`
	Diagnostics       Diagnostics    `json:"diagnostics"`
}

// #endregion record
