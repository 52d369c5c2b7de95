package engine

import (
	"errors"
	"fmt"
	"time"

	"github.com/adaptivepath/progression/go-engine/internal/decision"
	"github.com/adaptivepath/progression/go-engine/internal/session"
	"github.com/adaptivepath/progression/go-engine/internal/stochastic"
	"github.com/adaptivepath/progression/go-engine/internal/weights"
)

// ErrConfiguration marks a fatal construction-time configuration error.
// No partially configured engine is ever returned.
var ErrConfiguration = errors.New("engine: invalid configuration")

// DefaultLatencyBudget is the soft wall-time budget for one cycle.
const DefaultLatencyBudget = 10 * time.Millisecond

// #region config

// Config is the engine's full configuration surface, validated once at
// construction and immutable thereafter.
type Config struct {
	Weights  weights.Table
	Decision decision.Config

	// Alpha and Beta are the default update-equation parameters, used
	// until a learner's first cycle produces adaptive overrides.
	Alpha float64
	Beta  float64

	NoiseStdDev   float64
	LatencyBudget time.Duration
	LockWait      time.Duration
}

// DefaultConfig returns the standard engine configuration.
func DefaultConfig() Config {
	return Config{
		Weights:       weights.DefaultTable(),
		Decision:      decision.DefaultConfig(),
		Alpha:         0.7,
		Beta:          0.15,
		NoiseStdDev:   stochastic.DefaultStdDev,
		LatencyBudget: DefaultLatencyBudget,
		LockWait:      session.DefaultLockWait,
	}
}

// Validate checks every configured constant. Any violation wraps
// ErrConfiguration.
func (c Config) Validate() error {
	if err := c.Weights.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrConfiguration, err)
	}
	if err := c.Decision.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrConfiguration, err)
	}
	if c.Alpha <= 0 {
		return fmt.Errorf("%w: alpha %f must be positive", ErrConfiguration, c.Alpha)
	}
	if c.Beta < 0 {
		return fmt.Errorf("%w: beta %f must be non-negative", ErrConfiguration, c.Beta)
	}
	if c.NoiseStdDev < 0 {
		return fmt.Errorf("%w: noise stddev %f must be non-negative", ErrConfiguration, c.NoiseStdDev)
	}
	if c.LatencyBudget <= 0 {
		return fmt.Errorf("%w: latency budget %v must be positive", ErrConfiguration, c.LatencyBudget)
	}
	return nil
}

// #endregion config
