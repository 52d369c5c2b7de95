package weights

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/adaptivepath/progression/go-engine/internal/phase"
)

func TestDefaultTableValid(t *testing.T) {
	if err := DefaultTable().Validate(); err != nil {
		t.Fatalf("default table should validate: %v", err)
	}
}

func TestValidateMissingPhase(t *testing.T) {
	table := NewTable([]Profile{
		{Phase: phase.Onboarding, W: [4]float64{0.25, 0.25, 0.25, 0.25}},
	})
	if err := table.Validate(); err == nil {
		t.Fatal("expected error for missing phases")
	}
}

func TestValidateSumOutOfTolerance(t *testing.T) {
	profiles := make([]Profile, 0, len(phase.Order))
	for _, ph := range phase.Order {
		profiles = append(profiles, Profile{Phase: ph, W: [4]float64{0.25, 0.25, 0.25, 0.25}})
	}
	// Break one profile: sums to 1.2, outside ±0.05.
	profiles[2].W = [4]float64{0.5, 0.3, 0.2, 0.2}
	if err := NewTable(profiles).Validate(); err == nil {
		t.Fatal("expected error for weight sum outside tolerance")
	}
}

func TestValidateNegativeWeight(t *testing.T) {
	profiles := make([]Profile, 0, len(phase.Order))
	for _, ph := range phase.Order {
		profiles = append(profiles, Profile{Phase: ph, W: [4]float64{0.25, 0.25, 0.25, 0.25}})
	}
	profiles[0].W = [4]float64{-0.1, 0.5, 0.3, 0.3}
	if err := NewTable(profiles).Validate(); err == nil {
		t.Fatal("expected error for negative weight")
	}
}

func TestResolveKnownPhase(t *testing.T) {
	table := DefaultTable()
	p, fellBack := table.Resolve(phase.Onboarding)
	if fellBack {
		t.Fatal("unexpected fallback for known phase")
	}
	if p.W != [4]float64{0.40, 0.22, 0.28, 0.10} {
		t.Fatalf("unexpected onboarding weights: %v", p.W)
	}
}

func TestResolveUnknownPhaseFallsBack(t *testing.T) {
	table := DefaultTable()
	p, fellBack := table.Resolve("warmup")
	if !fellBack {
		t.Fatal("expected fallback for unknown phase")
	}
	want, _ := table.Resolve(phase.Practice)
	if p.W != want.W {
		t.Fatalf("fallback should use practice weights, got %v", p.W)
	}
}

func TestLoadTable(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "weights.toml")
	content := `
[[profile]]
phase   = "onboarding"
weights = [0.40, 0.22, 0.28, 0.10]

[[profile]]
phase   = "introduction"
weights = [0.25, 0.20, 0.40, 0.15]

[[profile]]
phase   = "practice"
weights = [0.20, 0.40, 0.25, 0.15]

[[profile]]
phase   = "application"
weights = [0.22, 0.33, 0.30, 0.15]

[[profile]]
phase   = "mastery"
weights = [0.22, 0.23, 0.15, 0.40]
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	table, err := LoadTable(path)
	if err != nil {
		t.Fatalf("LoadTable: %v", err)
	}
	p, fellBack := table.Resolve(phase.Mastery)
	if fellBack || p.W != [4]float64{0.22, 0.23, 0.15, 0.40} {
		t.Fatalf("unexpected mastery profile: %v (fallback=%v)", p.W, fellBack)
	}
}

func TestLoadTableRejectsBadSum(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "weights.toml")
	content := `
[[profile]]
phase   = "onboarding"
weights = [0.9, 0.9, 0.9, 0.9]
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if _, err := LoadTable(path); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestLoadTableMissingFile(t *testing.T) {
	if _, err := LoadTable(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
