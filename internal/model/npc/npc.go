package npc

// StressResponses holds the three behaviour instructions selected by the
// character's current stress state.
type StressResponses struct {
	Low    string `json:"low"`
	Medium string `json:"medium"`
	High   string `json:"high"`
}

// NPC captures a character's full configuration, including the prompt and
// interrogation tuning that must never reach the client.
type NPC struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Role            string          `json:"role"`
	Portrait        string          `json:"portrait"`
	Location        string          `json:"location"`
	BasePrompt      string          `json:"-"`
	StressThreshold int             `json:"-"`
	StressTriggers  []string        `json:"-"`
	StressResponses StressResponses `json:"-"`
}

// Listing is the public projection exposed to the frontend. No prompts,
// thresholds or triggers.
type Listing struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	Portrait string `json:"portrait"`
	Location string `json:"location"`
}

// Listing returns the character's public projection.
func (n NPC) Listing() Listing {
	return Listing{
		ID:       n.ID,
		Name:     n.Name,
		Role:     n.Role,
		Portrait: n.Portrait,
		Location: n.Location,
	}
}
