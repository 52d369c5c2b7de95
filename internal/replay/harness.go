// Package replay runs recorded cycle sequences against a fresh engine
// with a seeded randomness source, so a run can be reproduced exactly
// and compared against pinned expectations.
package replay

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/adaptivepath/progression/go-engine/internal/decision"
	"github.com/adaptivepath/progression/go-engine/internal/engine"
	"github.com/adaptivepath/progression/go-engine/internal/phase"
	"github.com/adaptivepath/progression/go-engine/internal/stochastic"
)

// stateTolerance bounds the allowed drift on pinned state expectations.
const stateTolerance = 1e-9

// #region result

// Result captures the outcome of replaying one cycle.
type Result struct {
	Index    int
	EntityID string
	Record   decision.Record
	Pass     bool
	Mismatch string // empty when Pass
}

// #endregion result

// #region harness

// Run replays every cycle of the fixture in order against a fresh
// engine seeded from the fixture and reports per-cycle pass/fail.
// Cycles without expectations pass trivially.
func Run(f *Fixture, logger *slog.Logger) ([]Result, error) {
	eng, err := engine.New(f.EngineConfig(), stochastic.NewLockedSource(f.Seed), logger, nil)
	if err != nil {
		return nil, fmt.Errorf("replay engine: %w", err)
	}

	results := make([]Result, 0, len(f.Cycles))
	for i, c := range f.Cycles {
		rec, err := eng.Compute(c.EntityID, phase.Phase(c.Phase), c.Signals)
		if err != nil {
			return nil, fmt.Errorf("replay cycle %d: %w", i, err)
		}

		res := Result{Index: i, EntityID: c.EntityID, Record: rec, Pass: true}
		if i < len(f.Expected) {
			exp := f.Expected[i]
			if exp.Action != "" && exp.Action != string(rec.RecommendedAction) {
				res.Pass = false
				res.Mismatch = fmt.Sprintf("action %s, expected %s", rec.RecommendedAction, exp.Action)
			} else if exp.State != nil && math.Abs(*exp.State-rec.State) > stateTolerance {
				res.Pass = false
				res.Mismatch = fmt.Sprintf("state %.9f, expected %.9f", rec.State, *exp.State)
			}
		}
		results = append(results, res)
	}
	return results, nil
}

// #endregion harness
