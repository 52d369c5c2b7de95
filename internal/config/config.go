// Package config assembles the engine's runtime configuration from the
// environment and optional weight profile files.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/adaptivepath/progression/go-engine/internal/engine"
	"github.com/adaptivepath/progression/go-engine/internal/weights"
)

// #region env

// Env is the environment-variable surface of the engine commands.
type Env struct {
	DBPath      string        `env:"PROGRESSION_DB" envDefault:"progression.db"`
	WeightsPath string        `env:"PROGRESSION_WEIGHTS"`
	Seed        int64         `env:"PROGRESSION_SEED"`
	LogLevel    string        `env:"PROGRESSION_LOG_LEVEL" envDefault:"info"`
	Alpha       float64       `env:"PROGRESSION_ALPHA" envDefault:"0.7"`
	Beta        float64       `env:"PROGRESSION_BETA" envDefault:"0.15"`
	NoiseStdDev float64       `env:"PROGRESSION_NOISE_STDDEV" envDefault:"0.1"`
	Budget      time.Duration `env:"PROGRESSION_BUDGET" envDefault:"10ms"`
	LockWait    time.Duration `env:"PROGRESSION_LOCK_WAIT" envDefault:"250ms"`
}

// Parse reads the environment.
func Parse() (Env, error) {
	var e Env
	if err := env.Parse(&e); err != nil {
		return Env{}, fmt.Errorf("parse env: %w", err)
	}
	return e, nil
}

// #endregion env

// #region engine-config

// EngineConfig builds the validated-at-construction engine configuration:
// defaults, overlaid with the environment, overlaid with the weight
// profile file when one is configured.
func (e Env) EngineConfig() (engine.Config, error) {
	cfg := engine.DefaultConfig()
	cfg.Alpha = e.Alpha
	cfg.Beta = e.Beta
	cfg.NoiseStdDev = e.NoiseStdDev
	cfg.LatencyBudget = e.Budget
	cfg.LockWait = e.LockWait

	if e.WeightsPath != "" {
		table, err := weights.LoadTable(e.WeightsPath)
		if err != nil {
			return engine.Config{}, err
		}
		cfg.Weights = table
	}
	return cfg, nil
}

// #endregion engine-config
