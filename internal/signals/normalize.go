package signals

import "encoding/json"

// neutral is the per-field default substituted for missing or malformed
// sub-fields. The engine must never abort a cycle over incomplete
// upstream data; it degrades to neutral and records a Fallback instead.
const neutral = 0.5

// #region normalize

// Normalize maps the four payload documents to bounded [0,1] scores.
// Pure and deterministic: no I/O, no clock, no randomness. The returned
// fallbacks list every neutral-default substitution that was made.
func Normalize(b Bundle) (Scores, []Fallback) {
	var fb []Fallback

	readiness := field(b.Engagement, SignalEngagement, "readiness", &fb)
	preference := field(b.Engagement, SignalEngagement, "preference", &fb)

	accuracy := field(b.Performance, SignalPerformance, "accuracy", &fb)
	retention := field(b.Performance, SignalPerformance, "retention", &fb)

	completion := field(b.Curriculum, SignalCurriculum, "completion_ratio", &fb)
	prereq := field(b.Curriculum, SignalCurriculum, "prerequisite_ratio", &fb)

	valence := field(b.Affect, SignalAffect, "valence", &fb)
	stress := field(b.Affect, SignalAffect, "stress", &fb)

	scores := Scores{
		Engagement:  clamp(0.6*readiness + 0.4*preference),
		Performance: clamp(0.6*accuracy + 0.4*retention),
		Curriculum:  clamp(0.5*completion + 0.5*prereq),
		Affect:      clamp(0.5*valence + 0.5*(1-stress)),
	}
	return scores, fb
}

// #endregion normalize

// #region helpers

// field extracts a numeric sub-field clamped to [0,1], falling back to
// neutral when the payload or field is absent or non-numeric.
func field(payload map[string]any, sig Signal, key string, fb *[]Fallback) float64 {
	if payload == nil {
		*fb = append(*fb, Fallback{Signal: sig, Field: key, Reason: "payload missing"})
		return neutral
	}
	raw, ok := payload[key]
	if !ok {
		*fb = append(*fb, Fallback{Signal: sig, Field: key, Reason: "field missing"})
		return neutral
	}
	v, ok := toFloat(raw)
	if !ok {
		*fb = append(*fb, Fallback{Signal: sig, Field: key, Reason: "field not numeric"})
		return neutral
	}
	return clamp(v)
}

// toFloat converts the numeric representations seen in decoded JSON payloads.
func toFloat(raw any) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

// clamp restricts v to [0, 1].
func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// #endregion helpers
