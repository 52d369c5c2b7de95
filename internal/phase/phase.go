package phase

// #region phase

// Phase labels one of the five ordered learning stages.
type Phase string

const (
	Onboarding   Phase = "onboarding"
	Introduction Phase = "introduction"
	Practice     Phase = "practice"
	Application  Phase = "application"
	Mastery      Phase = "mastery"
)

// Order lists all phases from first to last.
var Order = [5]Phase{Onboarding, Introduction, Practice, Application, Mastery}

// #endregion phase

// #region lookup

// Index returns the position of p in the phase order, or -1 if unknown.
func Index(p Phase) int {
	for i, q := range Order {
		if q == p {
			return i
		}
	}
	return -1
}

// Valid reports whether p is one of the five known phases.
func Valid(p Phase) bool {
	return Index(p) >= 0
}

// First returns the initial phase for new sessions.
func First() Phase {
	return Onboarding
}

// Default returns the fallback phase used when a label is unrecognized.
func Default() Phase {
	return Practice
}

// #endregion lookup

// #region transitions

// Next returns the phase one step forward, capped at the last phase.
// Unknown phases are returned unchanged.
func Next(p Phase) Phase {
	i := Index(p)
	if i < 0 || i == len(Order)-1 {
		return p
	}
	return Order[i+1]
}

// Prev returns the phase one step backward, capped at the first phase.
// Unknown phases are returned unchanged.
func Prev(p Phase) Phase {
	i := Index(p)
	if i <= 0 {
		return p
	}
	return Order[i-1]
}

// #endregion transitions
