package session

import (
	"time"

	"github.com/adaptivepath/progression/go-engine/internal/phase"
)

// #region session

// Session is the tracked progression state for one learner.
type Session struct {
	EntityID    string
	State       float64 // always in [0,1]; 0.5 is neutral
	Phase       phase.Phase
	LastUpdated time.Time

	// Alpha and Beta carry the previous cycle's adaptive parameters.
	// Zero means "not yet set"; the engine substitutes its configured
	// defaults until the first decision has been interpreted.
	Alpha float64
	Beta  float64
}

// #endregion session
