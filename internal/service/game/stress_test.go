package game

import (
	"testing"

	"github.com/turingmystery/backend/internal/model/npc"
)

func testCharacter() npc.NPC {
	return npc.NPC{
		ID:              "librarian",
		Name:            "Eleanor Price",
		StressThreshold: 70,
		StressTriggers:  []string{"lying", "rush", "demand", "server room", "protocol omega"},
	}
}

func TestStressDeltaBase(t *testing.T) {
	if got := StressDelta(testCharacter(), "how are you today"); got != 2 {
		t.Fatalf("unexpected base delta: got %d want 2", got)
	}
}

func TestStressDeltaTrigger(t *testing.T) {
	if got := StressDelta(testCharacter(), "what happened in the server room"); got != 17 {
		t.Fatalf("unexpected trigger delta: got %d want 17", got)
	}
}

func TestStressDeltaRepeatedTriggerCountsOnce(t *testing.T) {
	once := StressDelta(testCharacter(), "i was near the server room")
	twice := StressDelta(testCharacter(), "the server room, yes the server room")

	if once != twice {
		t.Fatalf("repeated trigger should not score again: once=%d twice=%d", once, twice)
	}
	if twice != 17 {
		t.Fatalf("unexpected delta: got %d want 17", twice)
	}
}

func TestStressDeltaAggressiveMarkersOncePerMessage(t *testing.T) {
	// Both "!" and "tell me" present; the aggressive bonus applies once.
	if got := StressDelta(testCharacter(), "tell me now!"); got != 7 {
		t.Fatalf("unexpected aggressive delta: got %d want 7", got)
	}
}

func TestStressDeltaPoliteMarkersOncePerMessage(t *testing.T) {
	if got := StressDelta(testCharacter(), "please, thank you for your time"); got != -3 {
		t.Fatalf("unexpected polite delta: got %d want -3", got)
	}
}

func TestStressDeltaClampedHigh(t *testing.T) {
	// Two triggers would score 2+15+15=32; the delta cap is 25.
	if got := StressDelta(testCharacter(), "stop lying about the server room"); got != 25 {
		t.Fatalf("unexpected clamped delta: got %d want 25", got)
	}
}

func TestApplyStressStaysInRange(t *testing.T) {
	level := 0
	character := testCharacter()
	messages := []string{
		"please be calm",
		"tell me about the server room now!",
		"you keep lying, i demand the truth about protocol omega!",
		"thank you, please relax",
		"rush rush rush!",
	}

	for i := 0; i < 50; i++ {
		for _, msg := range messages {
			level = ApplyStress(level, StressDelta(character, msg))
			if level < 0 || level > 100 {
				t.Fatalf("stress level out of range: %d", level)
			}
		}
	}
}

func TestApplyStressClampsAtBounds(t *testing.T) {
	if got := ApplyStress(95, 17); got != 100 {
		t.Fatalf("expected clamp at 100, got %d", got)
	}
	if got := ApplyStress(3, -10); got != 0 {
		t.Fatalf("expected clamp at 0, got %d", got)
	}
}

func TestStressStateFor(t *testing.T) {
	// Threshold 70: calm below 42, agitated in [42, 70), hostile at 70+.
	if got := StressStateFor(41, 70); got != StressCalm {
		t.Fatalf("expected calm at 41, got %s", got)
	}
	if got := StressStateFor(42, 70); got != StressAgitated {
		t.Fatalf("expected agitated at 42, got %s", got)
	}
	if got := StressStateFor(69, 70); got != StressAgitated {
		t.Fatalf("expected agitated at 69, got %s", got)
	}
	if got := StressStateFor(70, 70); got != StressHostile {
		t.Fatalf("expected hostile at 70, got %s", got)
	}
}

func TestEffectiveThreshold(t *testing.T) {
	character := testCharacter()

	if got := EffectiveThreshold(character, false); got != 70 {
		t.Fatalf("non-imposter threshold changed: got %d", got)
	}
	if got := EffectiveThreshold(character, true); got != 50 {
		t.Fatalf("imposter threshold: got %d want 50", got)
	}

	character.StressThreshold = 40
	if got := EffectiveThreshold(character, true); got != 30 {
		t.Fatalf("imposter threshold floor: got %d want 30", got)
	}
}
