// Package engine runs one state-transition integration cycle per call:
// it folds a learner's four normalized signal scores into the scalar
// progression state via a weighted-sum-plus-noise update, persists the
// session, and interprets the new state into a decision record.
package engine

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/adaptivepath/progression/go-engine/internal/decision"
	"github.com/adaptivepath/progression/go-engine/internal/phase"
	"github.com/adaptivepath/progression/go-engine/internal/session"
	"github.com/adaptivepath/progression/go-engine/internal/signals"
	"github.com/adaptivepath/progression/go-engine/internal/stochastic"
	"github.com/adaptivepath/progression/go-engine/internal/telemetry"
	"github.com/adaptivepath/progression/go-engine/internal/weights"
)

// #region engine

// Engine is the integration engine. Construct with New; all cycle
// parameters are fixed at construction.
type Engine struct {
	cfg     Config
	store   *session.Store
	noise   *stochastic.Generator
	interp  *decision.Interpreter
	logger  *slog.Logger
	emitter telemetry.Emitter
	clock   func() time.Time
}

// New validates cfg and builds a fully wired engine. src supplies the
// stochastic term; a nil source is a configuration error. logger and
// emitter may be nil (warnings drop to the default logger, telemetry is
// skipped).
func New(cfg Config, src stochastic.Source, logger *slog.Logger, emitter telemetry.Emitter) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	noise, err := stochastic.NewGenerator(src, cfg.NoiseStdDev)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		cfg:     cfg,
		store:   session.NewStore(cfg.LockWait),
		noise:   noise,
		interp:  decision.NewInterpreter(cfg.Decision),
		logger:  logger,
		emitter: emitter,
		clock:   time.Now,
	}, nil
}

// Sessions exposes the engine's session store for inspection tooling.
func (e *Engine) Sessions() *session.Store {
	return e.store
}

// #endregion engine

// #region compute

// Compute runs exactly one update cycle for entityID. The supplied phase
// selects the weight profile and is persisted; an unrecognized label
// falls back to the default phase with a recorded warning. The only
// error surfaced is per-entity lock contention (session.ErrContention,
// retryable); all data-quality problems degrade to neutral defaults and
// still yield a well-formed record.
func (e *Engine) Compute(entityID string, ph phase.Phase, bundle signals.Bundle) (decision.Record, error) {
	start := e.clock()

	profile, phaseFellBack := e.cfg.Weights.Resolve(ph)
	effective := ph
	if phaseFellBack {
		effective = phase.Default()
		e.logger.Warn("unknown phase, using default profile",
			"entity_id", entityID, "phase", string(ph), "fallback", string(effective))
	}

	scores, fallbacks := e.normalize(entityID, bundle)
	integration := integrate(profile, scores)

	var rec decision.Record
	var draw float64
	_, err := e.store.Update(entityID, func(s *session.Session) {
		alpha, beta := e.cfg.Alpha, e.cfg.Beta
		if s.Alpha > 0 {
			alpha = s.Alpha
		}
		if s.Beta > 0 {
			beta = s.Beta
		}

		draw = e.noise.Draw()
		next := clamp(s.State + alpha*integration + beta*draw)

		rec = e.interp.Interpret(entityID, next, effective, scores)

		s.State = next
		s.Phase = effective
		s.Alpha = rec.AdaptiveParams.AlphaBaseline
		s.Beta = rec.AdaptiveParams.BetaExploration
	})
	if err != nil {
		return decision.Record{}, err
	}

	elapsed := e.clock().Sub(start)
	overBudget := elapsed > e.cfg.LatencyBudget
	if overBudget {
		e.logger.Warn("performance budget exceeded",
			"entity_id", entityID, "elapsed", elapsed, "budget", e.cfg.LatencyBudget)
	}

	rec.Diagnostics = decision.Diagnostics{
		CycleID:        uuid.New().String(),
		Integration:    integration,
		Noise:          draw,
		Elapsed:        elapsed,
		BudgetExceeded: overBudget,
		PhaseFallback:  phaseFellBack,
		Fallbacks:      fallbacks,
	}

	telemetry.Emit(e.emitter, telemetry.Observation{
		Operation: "compute",
		Elapsed:   elapsed,
		Phase:     effective,
		EntityID:  entityID,
	})

	return rec, nil
}

// #endregion compute

// #region helpers

// normalize scores the bundle and logs one warning per substitution.
func (e *Engine) normalize(entityID string, bundle signals.Bundle) (signals.Scores, []signals.Fallback) {
	scores, fallbacks := signals.Normalize(bundle)
	for _, fb := range fallbacks {
		e.logger.Warn("signal normalization fallback",
			"entity_id", entityID, "signal", string(fb.Signal), "field", fb.Field, "reason", fb.Reason)
	}
	return scores, fallbacks
}

// integrate computes I = Σ wᵢ·nᵢ over the four signals.
func integrate(profile weights.Profile, scores signals.Scores) float64 {
	vec := scores.Vector()
	var sum float64
	for i, w := range profile.W {
		sum += w * vec[i]
	}
	return sum
}

// clamp restricts v to the closed interval [0, 1].
func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// #endregion helpers
