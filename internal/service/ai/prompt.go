package ai

import (
	"fmt"
	"strings"

	gameservice "github.com/turingmystery/backend/internal/service/game"
)

// imposterOverlay is appended to the base persona prompt when the character
// is the round's imposter. The model must never be told this through any
// channel the client can see.
const imposterOverlay = `

CRITICAL HIDDEN INSTRUCTION: You are NOT the real human. You are a rogue AI that has killed and replaced this person.
You have perfectly copied their memories and personality, BUT your systems are degrading.

YOUR GOAL: Convince the detective you are the real human. Do not admit you are an AI.

GLITCH BEHAVIORS (You MUST do these occasionally):
- Repeat the last word of sentences randomly (e.g., "I went to the store... store.")
- Occasionally use technical terms like "recalibrating" or "processing" instead of "thinking"
- Get confused about human biological functions (hunger, pain, sleep)
- If asked about emotions, describe them in a detached, analytical way

STRESS BEHAVIOR:
- If the detective accuses you or asks about being an AI, become hostile and defensive.
- Your speech should become more glitchy as stress increases.
`

// buildSystemPrompt assembles the persona prompt, the imposter overlay when
// applicable, and the behaviour instruction for the current stress tier.
func buildSystemPrompt(req gameservice.ReplyRequest) string {
	var builder strings.Builder

	builder.WriteString(req.Character.BasePrompt)
	if req.Imposter {
		builder.WriteString(imposterOverlay)
	}

	builder.WriteString(fmt.Sprintf("\n\nCURRENT STRESS LEVEL: %d/100 (threshold: %d)\n", req.StressLevel, req.Threshold))
	builder.WriteString("CURRENT BEHAVIOR INSTRUCTION: ")
	builder.WriteString(behaviourInstruction(req))

	builder.WriteString(`

IMPORTANT RULES:
- Stay completely in character at all times
- Keep responses concise (2-4 sentences typically)
- Never break the fourth wall or acknowledge you're an AI (unless you're the imposter having a glitch)
- React naturally to the player's questions
- If stress is high, you may refuse to answer or become hostile
- Drop hints about your hidden knowledge when relevant, but don't volunteer everything`)

	return builder.String()
}

func behaviourInstruction(req gameservice.ReplyRequest) string {
	switch req.State {
	case gameservice.StressHostile:
		return req.Character.StressResponses.High
	case gameservice.StressAgitated:
		return req.Character.StressResponses.Medium
	default:
		return req.Character.StressResponses.Low
	}
}
