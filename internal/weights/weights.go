// Package weights maps learning phases to the 4-tuple of signal weights
// used by the integration engine. The table is externally configured,
// validated once at load, and read-only during operation.
package weights

import (
	"fmt"
	"math"

	"github.com/adaptivepath/progression/go-engine/internal/phase"
)

// sumTolerance is the allowed deviation of a profile's weight sum from 1.0.
const sumTolerance = 0.05

// #region profile

// Profile is the phase-specific weight tuple, in signal order
// (engagement, performance, curriculum, affect).
type Profile struct {
	Phase phase.Phase
	W     [4]float64
}

// #endregion profile

// #region table

// Table holds one profile per phase.
type Table struct {
	profiles map[phase.Phase]Profile
}

// NewTable builds a table from the given profiles. Call Validate before use.
func NewTable(profiles []Profile) Table {
	m := make(map[phase.Phase]Profile, len(profiles))
	for _, p := range profiles {
		m[p.Phase] = p
	}
	return Table{profiles: m}
}

// DefaultTable returns the standard five-phase table. Each phase emphasizes
// a different signal: onboarding leans on engagement, introduction on
// curriculum, practice and application on performance, mastery on affect.
func DefaultTable() Table {
	return NewTable([]Profile{
		{Phase: phase.Onboarding, W: [4]float64{0.40, 0.22, 0.28, 0.10}},
		{Phase: phase.Introduction, W: [4]float64{0.25, 0.20, 0.40, 0.15}},
		{Phase: phase.Practice, W: [4]float64{0.20, 0.40, 0.25, 0.15}},
		{Phase: phase.Application, W: [4]float64{0.22, 0.33, 0.30, 0.15}},
		{Phase: phase.Mastery, W: [4]float64{0.22, 0.23, 0.15, 0.40}},
	})
}

// #endregion table

// #region validate

// Validate checks that every phase has a profile, every weight is
// non-negative, and every profile sums to 1.0 within tolerance.
// A violation is a fatal configuration error for the engine.
func (t Table) Validate() error {
	for _, ph := range phase.Order {
		p, ok := t.profiles[ph]
		if !ok {
			return fmt.Errorf("weights: no profile for phase %q", ph)
		}
		var sum float64
		for i, w := range p.W {
			if w < 0 {
				return fmt.Errorf("weights: phase %q weight %d is negative (%f)", ph, i, w)
			}
			sum += w
		}
		if math.Abs(sum-1.0) > sumTolerance {
			return fmt.Errorf("weights: phase %q weights sum to %f, want 1.0 ± %.2f", ph, sum, sumTolerance)
		}
	}
	return nil
}

// #endregion validate

// #region resolve

// Resolve returns the profile for ph. Unrecognized phases fall back to the
// practice profile; the second return reports whether that fallback fired
// so the caller can log it.
func (t Table) Resolve(ph phase.Phase) (Profile, bool) {
	if p, ok := t.profiles[ph]; ok {
		return p, false
	}
	return t.profiles[phase.Default()], true
}

// #endregion resolve
