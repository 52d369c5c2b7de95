// Package telemetry defines the shape of the engine's observability
// signal. Transport and storage of observations belong to the caller.
package telemetry

import (
	"log/slog"
	"time"

	"github.com/adaptivepath/progression/go-engine/internal/phase"
)

// #region observation

// Observation describes one completed engine operation.
type Observation struct {
	Operation string
	Elapsed   time.Duration
	Phase     phase.Phase
	EntityID  string
}

// #endregion observation

// #region emitter

// Emitter receives one observation per engine operation.
type Emitter interface {
	Emit(Observation)
}

// FuncEmitter adapts a function to the Emitter interface.
type FuncEmitter func(Observation)

// Emit calls f.
func (f FuncEmitter) Emit(o Observation) { f(o) }

// Emit forwards o to e, tolerating a nil emitter.
func Emit(e Emitter, o Observation) {
	if e == nil {
		return
	}
	e.Emit(o)
}

// #endregion emitter

// #region log-emitter

// LogEmitter writes observations to a structured logger.
type LogEmitter struct {
	logger *slog.Logger
}

// NewLogEmitter creates an emitter backed by logger.
func NewLogEmitter(logger *slog.Logger) *LogEmitter {
	return &LogEmitter{logger: logger}
}

// Emit logs the observation at debug level.
func (e *LogEmitter) Emit(o Observation) {
	if e == nil || e.logger == nil {
		return
	}
	e.logger.Debug("operation complete",
		"operation", o.Operation,
		"elapsed", o.Elapsed,
		"phase", string(o.Phase),
		"entity_id", o.EntityID,
	)
}

// #endregion log-emitter
