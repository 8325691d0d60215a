package game

import "time"

// Status tracks the lifecycle of a round. Transitions are terminal: a session
// moves from active to won or lost exactly once and never back.
type Status string

const (
	StatusActive Status = "active"
	StatusWon    Status = "won"
	StatusLost   Status = "lost"
)

// Message roles within an interrogation transcript.
const (
	RolePlayer = "player"
	RoleNPC    = "npc"
)

// Message is a single turn in a conversation with one character.
type Message struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// InteractionRecord holds the per-character conversation state within a
// session. History strictly alternates player/npc turns and is appended in
// pairs, so it never ends on an unanswered player turn.
type InteractionRecord struct {
	NPCID             string    `json:"npcId"`
	History           []Message `json:"history"`
	StressLevel       int       `json:"stressLevel"`
	LastInteractionAt time.Time `json:"lastInteractionAt"`
}

// CompletedTurns reports the number of full question/answer exchanges.
func (r *InteractionRecord) CompletedTurns() int {
	return len(r.History) / 2
}

// Session is one interrogation round. ImposterID is fixed at creation and is
// always a valid catalog key.
type Session struct {
	ID              string                        `json:"id"`
	PlayerName      string                        `json:"playerName"`
	ImposterID      string                        `json:"imposterId"`
	Status          Status                        `json:"status"`
	FinalGuess      string                        `json:"finalGuess,omitempty"`
	StartedAt       time.Time                     `json:"startedAt"`
	EndedAt         *time.Time                    `json:"endedAt,omitempty"`
	CluesDiscovered []string                      `json:"cluesDiscovered"`
	Interactions    map[string]*InteractionRecord `json:"interactions"`

	// Degraded marks a session reconstructed from its identifier alone:
	// player name and prior history are unrecoverable. Never persisted.
	Degraded bool `json:"-"`
}

// Interaction returns the record for the given character, creating an empty
// one on first contact. Records are never shared between characters.
func (s *Session) Interaction(npcID string) *InteractionRecord {
	if s.Interactions == nil {
		s.Interactions = make(map[string]*InteractionRecord)
	}
	record, ok := s.Interactions[npcID]
	if !ok {
		record = &InteractionRecord{NPCID: npcID}
		s.Interactions[npcID] = record
	}
	return record
}

// Clone returns a deep copy so callers can hand sessions across goroutine
// boundaries without sharing mutable state.
func (s *Session) Clone() *Session {
	copied := *s
	copied.CluesDiscovered = append([]string(nil), s.CluesDiscovered...)
	if s.Interactions != nil {
		copied.Interactions = make(map[string]*InteractionRecord, len(s.Interactions))
		for id, record := range s.Interactions {
			rec := *record
			rec.History = append([]Message(nil), record.History...)
			copied.Interactions[id] = &rec
		}
	}
	if s.EndedAt != nil {
		ended := *s.EndedAt
		copied.EndedAt = &ended
	}
	return &copied
}
