package game

import (
	"strings"

	"github.com/turingmystery/backend/internal/model/npc"
)

// StressState classifies a character's current defensiveness. It is derived
// from the stress level and threshold, never stored.
type StressState string

const (
	StressCalm     StressState = "calm"
	StressAgitated StressState = "agitated"
	StressHostile  StressState = "hostile"
)

// Stress scoring constants. Deltas are clamped per message so a single
// question can never swing the level by more than 25 points either way.
const (
	baseStressDelta    = 2
	triggerStressDelta = 15
	aggressiveDelta    = 5
	politeDelta        = -5
	minStressDelta     = -10
	maxStressDelta     = 25

	minStressLevel = 0
	maxStressLevel = 100

	// Imposters crack under pressure sooner: their threshold is lowered by
	// a fixed penalty, floored so they never start out hostile.
	imposterThresholdPenalty = 20
	minImposterThreshold     = 30
)

// StressDelta scores a single player message against a character's
// configuration. Deterministic: +2 base, +15 per distinct trigger keyword
// present, +5 for an aggressive tone and -5 for a polite one (each tone
// counted once per message no matter how many markers appear), clamped to
// [-10, 25].
func StressDelta(character npc.NPC, message string) int {
	lower := strings.ToLower(message)

	delta := baseStressDelta
	delta += triggerStressDelta * len(triggerHits(character, lower))

	if strings.Contains(lower, "!") || strings.Contains(lower, "demand") || strings.Contains(lower, "tell me") {
		delta += aggressiveDelta
	}
	if strings.Contains(lower, "please") || strings.Contains(lower, "thank") {
		delta += politeDelta
	}

	return clamp(delta, minStressDelta, maxStressDelta)
}

// ApplyStress folds a delta into a stress level, keeping it within [0, 100].
func ApplyStress(level, delta int) int {
	return clamp(level+delta, minStressLevel, maxStressLevel)
}

// StressStateFor maps a level to the behaviour tier for the given threshold.
func StressStateFor(level, threshold int) StressState {
	switch {
	case level >= threshold:
		return StressHostile
	case float64(level) >= float64(threshold)*0.6:
		return StressAgitated
	default:
		return StressCalm
	}
}

// EffectiveThreshold returns the threshold used for behaviour selection,
// lowered when the character is the round's imposter.
func EffectiveThreshold(character npc.NPC, imposter bool) int {
	if !imposter {
		return character.StressThreshold
	}
	threshold := character.StressThreshold - imposterThresholdPenalty
	if threshold < minImposterThreshold {
		threshold = minImposterThreshold
	}
	return threshold
}

// triggerHits returns the distinct trigger keywords contained in the
// lowercased message, each at most once regardless of repetition.
func triggerHits(character npc.NPC, lowerMessage string) []string {
	var hits []string
	seen := make(map[string]struct{}, len(character.StressTriggers))
	for _, trigger := range character.StressTriggers {
		key := strings.ToLower(trigger)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		if strings.Contains(lowerMessage, key) {
			hits = append(hits, trigger)
		}
	}
	return hits
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
