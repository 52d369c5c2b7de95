package weights

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/adaptivepath/progression/go-engine/internal/phase"
)

// #region file-format

// tableFile is the on-disk TOML shape:
//
//	[[profile]]
//	phase   = "onboarding"
//	weights = [0.40, 0.22, 0.28, 0.10]
type tableFile struct {
	Profiles []profileEntry `toml:"profile"`
}

type profileEntry struct {
	Phase   string    `toml:"phase"`
	Weights []float64 `toml:"weights"`
}

// #endregion file-format

// #region load

// LoadTable reads and validates a weight profile table from a TOML file.
func LoadTable(path string) (Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Table{}, fmt.Errorf("read weights %s: %w", path, err)
	}
	var f tableFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return Table{}, fmt.Errorf("parse weights %s: %w", path, err)
	}

	profiles := make([]Profile, 0, len(f.Profiles))
	for _, e := range f.Profiles {
		if len(e.Weights) != 4 {
			return Table{}, fmt.Errorf("weights: phase %q has %d weights, want 4", e.Phase, len(e.Weights))
		}
		p := Profile{Phase: phase.Phase(e.Phase)}
		copy(p.W[:], e.Weights)
		profiles = append(profiles, p)
	}

	t := NewTable(profiles)
	if err := t.Validate(); err != nil {
		return Table{}, err
	}
	return t, nil
}

// #endregion load
