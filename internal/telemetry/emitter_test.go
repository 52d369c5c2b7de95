package telemetry

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/adaptivepath/progression/go-engine/internal/phase"
)

func TestEmitNilEmitter(t *testing.T) {
	// Must not panic.
	Emit(nil, Observation{Operation: "compute"})
}

func TestFuncEmitter(t *testing.T) {
	var got Observation
	e := FuncEmitter(func(o Observation) { got = o })
	Emit(e, Observation{
		Operation: "compute",
		Elapsed:   3 * time.Millisecond,
		Phase:     phase.Practice,
		EntityID:  "learner-1",
	})
	if got.Operation != "compute" || got.EntityID != "learner-1" {
		t.Fatalf("observation not forwarded: %+v", got)
	}
}

func TestLogEmitter(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	e := NewLogEmitter(logger)
	e.Emit(Observation{Operation: "compute", Phase: phase.Mastery, EntityID: "learner-9"})
	out := buf.String()
	if !strings.Contains(out, "learner-9") || !strings.Contains(out, "mastery") {
		t.Fatalf("log output missing fields: %s", out)
	}
}
