package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"os"

	"github.com/adaptivepath/progression/go-engine/internal/phase"
	"github.com/adaptivepath/progression/go-engine/internal/replay"
	"github.com/adaptivepath/progression/go-engine/internal/signals"
	"github.com/adaptivepath/progression/go-engine/internal/stochastic"
)

// #region main

func main() {
	outPath := flag.String("out", "", "output fixture JSON path")
	cycles := flag.Int("cycles", 20, "number of cycles to generate")
	entities := flag.Int("entities", 3, "number of distinct learners")
	seed := flag.Int64("seed", 0, "generator seed (0 = random)")
	flag.Parse()

	if *outPath == "" {
		fmt.Fprintln(os.Stderr, "usage: fixture-export --out path/to/fixture.json [--cycles N] [--entities M] [--seed S]")
		os.Exit(2)
	}

	if *seed == 0 {
		s, err := stochastic.NewSeed()
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		*seed = s
		fmt.Fprintf(os.Stderr, "using seed: %d\n", *seed)
	}

	fixture := generate(*seed, *cycles, *entities)

	data, err := json.MarshalIndent(fixture, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(*outPath, data, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("wrote %d cycles for %d learners to %s\n", *cycles, *entities, *outPath)
}

// #endregion main

// #region generate

// generate produces a synthetic fixture with plausible payload spreads:
// learners drift through phases with noisy per-signal sub-fields.
func generate(seed int64, cycles, entities int) replay.Fixture {
	rng := rand.New(rand.NewSource(seed))

	f := replay.Fixture{
		Description: fmt.Sprintf("synthetic fixture (seed %d)", seed),
		Seed:        seed,
	}

	for i := 0; i < cycles; i++ {
		entity := fmt.Sprintf("learner-%d", rng.Intn(entities)+1)
		ph := phase.Order[rng.Intn(len(phase.Order))]
		base := rng.Float64()

		f.Cycles = append(f.Cycles, replay.Cycle{
			EntityID: entity,
			Phase:    string(ph),
			Signals: signals.Bundle{
				Engagement: map[string]any{
					"readiness":  jitter(rng, base),
					"preference": jitter(rng, base),
				},
				Performance: map[string]any{
					"accuracy":  jitter(rng, base),
					"retention": jitter(rng, base),
				},
				Curriculum: map[string]any{
					"completion_ratio":   jitter(rng, base),
					"prerequisite_ratio": jitter(rng, base),
				},
				Affect: map[string]any{
					"valence": jitter(rng, base),
					"stress":  jitter(rng, 1-base),
				},
			},
		})
	}
	return f
}

// jitter perturbs v by ±0.1 and clamps to [0,1].
func jitter(rng *rand.Rand, v float64) float64 {
	v += (rng.Float64() - 0.5) * 0.2
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// #endregion generate
