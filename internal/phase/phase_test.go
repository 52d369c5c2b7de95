package phase

import "testing"

func TestOrderAndIndex(t *testing.T) {
	for i, p := range Order {
		if Index(p) != i {
			t.Fatalf("Index(%s) = %d, want %d", p, Index(p), i)
		}
	}
	if Index("warmup") != -1 {
		t.Fatal("expected -1 for unknown phase")
	}
}

func TestNextCapsAtMastery(t *testing.T) {
	if got := Next(Onboarding); got != Introduction {
		t.Fatalf("Next(onboarding) = %s", got)
	}
	if got := Next(Mastery); got != Mastery {
		t.Fatalf("Next(mastery) = %s, want mastery", got)
	}
}

func TestPrevCapsAtOnboarding(t *testing.T) {
	if got := Prev(Mastery); got != Application {
		t.Fatalf("Prev(mastery) = %s", got)
	}
	if got := Prev(Onboarding); got != Onboarding {
		t.Fatalf("Prev(onboarding) = %s, want onboarding", got)
	}
}

func TestUnknownPhasePassthrough(t *testing.T) {
	if got := Next("warmup"); got != "warmup" {
		t.Fatalf("Next(unknown) = %s", got)
	}
	if got := Prev("warmup"); got != "warmup" {
		t.Fatalf("Prev(unknown) = %s", got)
	}
}

func TestDefaults(t *testing.T) {
	if First() != Onboarding {
		t.Fatal("First should be onboarding")
	}
	if Default() != Practice {
		t.Fatal("Default should be practice")
	}
	if !Valid(Practice) || Valid("") {
		t.Fatal("Valid misclassified a phase")
	}
}
