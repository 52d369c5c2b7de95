package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/lmittmann/tint"

	"github.com/adaptivepath/progression/go-engine/internal/config"
	"github.com/adaptivepath/progression/go-engine/internal/engine"
	"github.com/adaptivepath/progression/go-engine/internal/journal"
	"github.com/adaptivepath/progression/go-engine/internal/phase"
	"github.com/adaptivepath/progression/go-engine/internal/signals"
	"github.com/adaptivepath/progression/go-engine/internal/stochastic"
	"github.com/adaptivepath/progression/go-engine/internal/telemetry"
)

// #region request

// request is one JSON line on stdin.
type request struct {
	EntityID string         `json:"entity_id"`
	Phase    string         `json:"phase"`
	Signals  signals.Bundle `json:"signals"`
}

// #endregion request

// #region main

func main() {
	env, err := config.Parse()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(2)
	}

	logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level: logLevel(env.LogLevel),
	}))
	slog.SetDefault(logger)

	cfg, err := env.EngineConfig()
	if err != nil {
		logger.Error("configuration", "err", err)
		os.Exit(2)
	}

	seed := env.Seed
	if seed == 0 {
		seed, err = stochastic.NewSeed()
		if err != nil {
			logger.Error("seed randomness source", "err", err)
			os.Exit(2)
		}
	}

	eng, err := engine.New(cfg, stochastic.NewLockedSource(seed), logger, telemetry.NewLogEmitter(logger))
	if err != nil {
		logger.Error("construct engine", "err", err)
		os.Exit(2)
	}

	jnl, err := journal.Open(env.DBPath)
	if err != nil {
		logger.Error("open journal", "err", err, "path", env.DBPath)
		os.Exit(2)
	}
	defer jnl.Close()

	logger.Info("progression engine ready", "db", env.DBPath, "seed", seed)

	out := json.NewEncoder(os.Stdout)
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var req request
		if err := json.Unmarshal([]byte(line), &req); err != nil {
			logger.Warn("skipping malformed request", "err", err)
			continue
		}
		if req.EntityID == "" {
			logger.Warn("skipping request without entity_id")
			continue
		}

		before := eng.Sessions().GetOrInit(req.EntityID).State
		rec, err := eng.Compute(req.EntityID, phase.Phase(req.Phase), req.Signals)
		if err != nil {
			// Contention is retryable; report it and keep serving.
			logger.Warn("compute failed", "entity_id", req.EntityID, "err", err)
			continue
		}

		if err := out.Encode(rec); err != nil {
			logger.Error("write decision", "err", err)
		}

		if err := jnl.Record(journal.Entry{
			CycleID:     rec.Diagnostics.CycleID,
			EntityID:    rec.EntityID,
			Phase:       string(rec.NextPhase),
			Action:      string(rec.RecommendedAction),
			Confidence:  rec.Confidence,
			Reasoning:   rec.Reasoning,
			Integration: rec.Diagnostics.Integration,
			Noise:       rec.Diagnostics.Noise,
			StateBefore: before,
			StateAfter:  rec.State,
			Elapsed:     rec.Diagnostics.Elapsed,
		}); err != nil {
			logger.Warn("journal decision", "err", err)
		}
	}
	if err := scanner.Err(); err != nil {
		logger.Error("read stdin", "err", err)
		os.Exit(1)
	}
}

// #endregion main

// #region helpers

func logLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// #endregion helpers
