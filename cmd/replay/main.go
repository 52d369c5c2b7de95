package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/lmittmann/tint"

	"github.com/adaptivepath/progression/go-engine/internal/replay"
)

// #region main

func main() {
	fixturePath := flag.String("fixture", "", "path to fixture JSON")
	flag.Parse()

	if *fixturePath == "" {
		fmt.Fprintln(os.Stderr, "usage: replay --fixture path/to/fixture.json")
		os.Exit(2)
	}

	logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{Level: slog.LevelWarn}))

	fixture, err := replay.LoadFixture(*fixturePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	results, err := replay.Run(fixture, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if fixture.Description != "" {
		fmt.Printf("# %s\n", fixture.Description)
	}

	failed := 0
	for _, r := range results {
		status := "ok"
		if !r.Pass {
			status = "FAIL"
			failed++
		}
		fmt.Printf("[%3d] %-16s state=%.4f action=%-9s phase=%-12s %s",
			r.Index, r.EntityID, r.Record.State, r.Record.RecommendedAction, r.Record.NextPhase, status)
		if r.Mismatch != "" {
			fmt.Printf(" (%s)", r.Mismatch)
		}
		fmt.Println()
	}

	fmt.Printf("%d cycles, %d failed\n", len(results), failed)
	if failed > 0 {
		os.Exit(1)
	}
}

// #endregion main
