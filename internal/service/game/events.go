package game

import (
	"sync"
	"time"
)

// Event types published on the per-session feed.
const (
	EventStress  = "stress"
	EventDecided = "decided"
)

// Event is a live game-state change for one session, consumed by the
// websocket feed so the client can animate stress bars without polling.
type Event struct {
	Type        string      `json:"type"`
	SessionID   string      `json:"sessionId"`
	NPCID       string      `json:"npcId"`
	StressLevel int         `json:"stressLevel,omitempty"`
	StressState StressState `json:"stressState,omitempty"`
	Turns       int         `json:"turns,omitempty"`
	Status      string      `json:"status,omitempty"`
	At          time.Time   `json:"at"`
}

// broadcaster fans events out to per-session subscribers. Publishing never
// blocks: a subscriber that cannot keep up loses events rather than stalling
// the chat path.
type broadcaster struct {
	mu   sync.Mutex
	subs map[string]map[chan Event]struct{}
}

func newBroadcaster() *broadcaster {
	return &broadcaster{subs: make(map[string]map[chan Event]struct{})}
}

func (b *broadcaster) subscribe(sessionID string) chan Event {
	ch := make(chan Event, 16)
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.subs[sessionID] == nil {
		b.subs[sessionID] = make(map[chan Event]struct{})
	}
	b.subs[sessionID][ch] = struct{}{}
	return ch
}

func (b *broadcaster) unsubscribe(sessionID string, ch chan Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	subs, ok := b.subs[sessionID]
	if !ok {
		return
	}
	if _, ok := subs[ch]; !ok {
		return
	}
	delete(subs, ch)
	close(ch)
	if len(subs) == 0 {
		delete(b.subs, sessionID)
	}
}

func (b *broadcaster) publish(event Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for ch := range b.subs[event.SessionID] {
		select {
		case ch <- event:
		default:
		}
	}
}
