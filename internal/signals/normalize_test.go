package signals

import (
	"encoding/json"
	"testing"
)

func TestNormalizeAllNeutral(t *testing.T) {
	scores, fallbacks := Normalize(Bundle{})

	// Every sub-field defaults to 0.5, so every score must land on 0.5.
	for i, v := range scores.Vector() {
		if v != 0.5 {
			t.Fatalf("score %s = %f, want 0.5", Names[i], v)
		}
	}
	if len(fallbacks) != 8 {
		t.Fatalf("expected 8 fallbacks for an empty bundle, got %d", len(fallbacks))
	}
}

func TestNormalizeFullBundle(t *testing.T) {
	scores, fallbacks := Normalize(Bundle{
		Engagement:  map[string]any{"readiness": 1.0, "preference": 0.5},
		Performance: map[string]any{"accuracy": 0.9, "retention": 0.4},
		Curriculum:  map[string]any{"completion_ratio": 0.8, "prerequisite_ratio": 0.6},
		Affect:      map[string]any{"valence": 0.7, "stress": 0.2},
	})
	if len(fallbacks) != 0 {
		t.Fatalf("expected no fallbacks, got %v", fallbacks)
	}
	if got, want := scores.Engagement, 0.6*1.0+0.4*0.5; got != want {
		t.Fatalf("engagement = %f, want %f", got, want)
	}
	if got, want := scores.Performance, 0.6*0.9+0.4*0.4; got != want {
		t.Fatalf("performance = %f, want %f", got, want)
	}
	if got, want := scores.Curriculum, 0.5*0.8+0.5*0.6; got != want {
		t.Fatalf("curriculum = %f, want %f", got, want)
	}
	if got, want := scores.Affect, 0.5*0.7+0.5*(1-0.2); got != want {
		t.Fatalf("affect = %f, want %f", got, want)
	}
}

func TestNormalizeMalformedField(t *testing.T) {
	scores, fallbacks := Normalize(Bundle{
		Engagement: map[string]any{"readiness": "high", "preference": 0.8},
	})
	// readiness degrades to neutral, preference is used.
	if got, want := scores.Engagement, 0.6*0.5+0.4*0.8; got != want {
		t.Fatalf("engagement = %f, want %f", got, want)
	}
	found := false
	for _, fb := range fallbacks {
		if fb.Signal == SignalEngagement && fb.Field == "readiness" {
			found = true
		}
	}
	if !found {
		t.Fatal("expected a fallback for malformed readiness field")
	}
}

func TestNormalizeClampsOutOfRangeFields(t *testing.T) {
	scores, _ := Normalize(Bundle{
		Performance: map[string]any{"accuracy": 3.2, "retention": -1.0},
	})
	if got, want := scores.Performance, 0.6*1.0+0.4*0.0; got != want {
		t.Fatalf("performance = %f, want %f", got, want)
	}
}

func TestNormalizeNumericRepresentations(t *testing.T) {
	scores, fallbacks := Normalize(Bundle{
		Curriculum: map[string]any{
			"completion_ratio":   1,
			"prerequisite_ratio": json.Number("0.5"),
		},
	})
	if len(fallbacks) != 6 {
		t.Fatalf("expected 6 fallbacks (other signals), got %d", len(fallbacks))
	}
	if got, want := scores.Curriculum, 0.5*1.0+0.5*0.5; got != want {
		t.Fatalf("curriculum = %f, want %f", got, want)
	}
}

func TestNormalizeDeterministic(t *testing.T) {
	b := Bundle{
		Engagement: map[string]any{"readiness": 0.3},
		Affect:     map[string]any{"stress": 0.9},
	}
	s1, _ := Normalize(b)
	s2, _ := Normalize(b)
	if s1 != s2 {
		t.Fatalf("non-deterministic normalization: %+v vs %+v", s1, s2)
	}
}
