package replay

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/adaptivepath/progression/go-engine/internal/engine"
	"github.com/adaptivepath/progression/go-engine/internal/signals"
)

// #region fixture-types

// Fixture is the top-level JSON structure for a recorded run.
type Fixture struct {
	Description string        `json:"description"`
	Seed        int64         `json:"seed"`
	Config      FixtureConfig `json:"config"`
	Cycles      []Cycle       `json:"cycles"`
	Expected    []Expectation `json:"expected,omitempty"`
}

// Cycle is one recorded compute request.
type Cycle struct {
	EntityID string         `json:"entity_id"`
	Phase    string         `json:"phase"`
	Signals  signals.Bundle `json:"signals"`
}

// Expectation pins the outcome of the cycle at the same index. A nil
// State skips the state comparison.
type Expectation struct {
	Action string   `json:"action"`
	State  *float64 `json:"state,omitempty"`
}

// FixtureConfig overrides selected engine constants; nil fields keep
// the defaults.
type FixtureConfig struct {
	Alpha       *float64 `json:"alpha,omitempty"`
	Beta        *float64 `json:"beta,omitempty"`
	NoiseStdDev *float64 `json:"noise_stddev,omitempty"`
}

// #endregion fixture-types

// #region fixture-loader

// LoadFixture reads and parses a JSON fixture file.
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture %s: %w", path, err)
	}
	var f Fixture
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse fixture %s: %w", path, err)
	}
	if len(f.Expected) > 0 && len(f.Expected) != len(f.Cycles) {
		return nil, fmt.Errorf("fixture %s: %d expectations for %d cycles", path, len(f.Expected), len(f.Cycles))
	}
	return &f, nil
}

// EngineConfig applies the fixture's overrides to the default config.
func (f *Fixture) EngineConfig() engine.Config {
	cfg := engine.DefaultConfig()
	if f.Config.Alpha != nil {
		cfg.Alpha = *f.Config.Alpha
	}
	if f.Config.Beta != nil {
		cfg.Beta = *f.Config.Beta
	}
	if f.Config.NoiseStdDev != nil {
		cfg.NoiseStdDev = *f.Config.NoiseStdDev
	}
	return cfg
}

// #endregion fixture-loader
