// Package game implements the session and interrogation state engine: tiered
// session resolution, per-character stress and history, and accusation
// resolution. Transport and text generation stay outside; the engine consumes
// the latter through the Responder interface.
package game

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/turingmystery/backend/internal/model/game"
	"github.com/turingmystery/backend/internal/model/npc"
	"github.com/turingmystery/backend/internal/storage"
)

var (
	// ErrSessionNotFound: the identifier matched no tier, including the
	// stateless decode.
	ErrSessionNotFound = storage.ErrSessionNotFound
	// ErrUnknownNPC: the character identifier is not a catalog key.
	ErrUnknownNPC = errors.New("unknown npc")
	// ErrRoundDecided: the session already ended; the first verdict stands.
	ErrRoundDecided = errors.New("round already decided")
	// ErrMessageRequired: chat called with an empty message.
	ErrMessageRequired = errors.New("message is required")
)

const (
	defaultPlayerName = "Detective"

	// Upper bound on a single reply generation. On expiry the turn is still
	// recorded with a placeholder line.
	replyTimeout = 10 * time.Second
)

// ReplyRequest carries everything the text-generation step needs for one
// character turn.
type ReplyRequest struct {
	Character   npc.NPC
	Imposter    bool
	History     []game.Message
	PlayerText  string
	StressLevel int
	Threshold   int
	State       StressState
}

// Responder produces an in-character reply or fails; the engine treats it as
// opaque and substitutes a canned line on failure.
type Responder interface {
	Reply(ctx context.Context, req ReplyRequest) (string, error)
}

// Service owns session state across the storage tiers and serializes
// mutations per session.
type Service struct {
	catalog   npc.Catalog
	durable   storage.Store // nil when no durable tier is configured
	volatile  storage.Store
	responder Responder // nil when generation is disabled
	reveals   *revealTable
	events    *broadcaster

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewService wires the engine. The reveal-narrative table is checked against
// the catalog here, once, so accusation handling never has to.
func NewService(catalog npc.Catalog, durable, volatile storage.Store, responder Responder) (*Service, error) {
	if volatile == nil {
		return nil, errors.New("volatile store is required")
	}

	reveals, err := newRevealTable(catalog)
	if err != nil {
		return nil, fmt.Errorf("invalid reveal table: %w", err)
	}

	return &Service{
		catalog:   catalog,
		durable:   durable,
		volatile:  volatile,
		responder: responder,
		reveals:   reveals,
		events:    newBroadcaster(),
		locks:     make(map[string]*sync.Mutex),
	}, nil
}

// sessionLock returns the mutex serializing read-modify-write cycles for one
// session. Requests against different sessions never contend.
func (s *Service) sessionLock(sessionID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock, ok := s.locks[sessionID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[sessionID] = lock
	}
	return lock
}

// StartGame creates a new round: picks the imposter, allocates an identifier
// that embeds it, and writes the session to the primary tier.
func (s *Service) StartGame(ctx context.Context, playerName string) (*game.Session, error) {
	playerName = strings.TrimSpace(playerName)
	if playerName == "" {
		playerName = defaultPlayerName
	}

	ids := s.catalog.IDs()
	imposterID := ids[rand.IntN(len(ids))]

	session := &game.Session{
		ID:              game.NewSessionID(imposterID),
		PlayerName:      playerName,
		ImposterID:      imposterID,
		Status:          game.StatusActive,
		StartedAt:       time.Now().UTC(),
		CluesDiscovered: []string{},
		Interactions:    make(map[string]*game.InteractionRecord),
	}

	if err := s.writePrimary(ctx, session); err != nil {
		return nil, err
	}

	log.Printf("[game] session %s started, imposter=%s", session.ID, imposterID)
	return session, nil
}

// writePrimary stores a new session durably when possible, falling back to
// the volatile tier so a round can always start.
func (s *Service) writePrimary(ctx context.Context, session *game.Session) error {
	if s.durable != nil {
		err := s.durable.Put(ctx, session)
		if err == nil {
			return nil
		}
		log.Printf("[game] durable write failed for session %s, falling back to memory: %v", session.ID, err)
	}
	return s.volatile.Put(ctx, session)
}

// resolve walks the tiers in fixed order: durable, volatile, then stateless
// recovery from the identifier itself. The returned flag reports whether the
// durable tier owns the record.
func (s *Service) resolve(ctx context.Context, sessionID string) (*game.Session, bool, error) {
	if s.durable != nil {
		session, err := s.durable.Get(ctx, sessionID)
		if err == nil {
			return session, true, nil
		}
		if !errors.Is(err, storage.ErrSessionNotFound) {
			log.Printf("[game] durable lookup failed for session %s: %v", sessionID, err)
		}
	}

	session, err := s.volatile.Get(ctx, sessionID)
	if err == nil {
		return session, false, nil
	}
	if !errors.Is(err, storage.ErrSessionNotFound) {
		return nil, false, err
	}

	imposterID, ok := game.DecodeSessionID(sessionID)
	if !ok {
		return nil, false, ErrSessionNotFound
	}
	if _, ok := s.catalog.FindByID(imposterID); !ok {
		return nil, false, ErrSessionNotFound
	}

	// Reduced-fidelity reconstruction: the round's answer survives in the
	// identifier, but the player name and any prior conversation do not.
	log.Printf("[game] recovered session %s from stateless id", sessionID)
	return &game.Session{
		ID:              sessionID,
		PlayerName:      defaultPlayerName,
		ImposterID:      imposterID,
		Status:          game.StatusActive,
		StartedAt:       time.Now().UTC(),
		CluesDiscovered: []string{},
		Interactions:    make(map[string]*game.InteractionRecord),
		Degraded:        true,
	}, false, nil
}

// update writes a session back to its owning tier. A stateless-recovered
// session is promoted into the volatile tier here, so later requests within
// this process see a consistent view.
func (s *Service) update(ctx context.Context, session *game.Session, fromDurable bool) error {
	if fromDurable && s.durable != nil {
		err := s.durable.Put(ctx, session)
		if err == nil {
			return nil
		}
		log.Printf("[game] durable update failed for session %s, falling back to memory: %v", session.ID, err)
	}
	return s.volatile.Put(ctx, session)
}

// ChatResult is the outcome of one interrogation exchange.
type ChatResult struct {
	Reply        string
	NPCName      string
	StressLevel  int
	StressState  StressState
	StressChange int
	Turns        int
	Degraded     bool
}

// Chat applies one player message to a (session, character) pair: scores the
// stress delta, generates the character's reply, appends the turn pair, and
// writes the session back. The whole read-modify-write cycle runs under the
// session's lock.
func (s *Service) Chat(ctx context.Context, sessionID, npcID, message string) (*ChatResult, error) {
	if strings.TrimSpace(message) == "" {
		return nil, ErrMessageRequired
	}

	character, ok := s.catalog.FindByID(npcID)
	if !ok {
		return nil, ErrUnknownNPC
	}

	lock := s.sessionLock(sessionID)
	lock.Lock()
	defer lock.Unlock()

	session, fromDurable, err := s.resolve(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	record := session.Interaction(npcID)

	delta := StressDelta(character, message)
	newLevel := ApplyStress(record.StressLevel, delta)

	imposter := session.ImposterID == npcID
	behaviourThreshold := EffectiveThreshold(character, imposter)
	behaviourState := StressStateFor(newLevel, behaviourThreshold)

	reply, err := s.generateReply(ctx, ReplyRequest{
		Character:   character,
		Imposter:    imposter,
		History:     append([]game.Message(nil), record.History...),
		PlayerText:  message,
		StressLevel: newLevel,
		Threshold:   behaviourThreshold,
		State:       behaviourState,
	})
	if err != nil {
		// Only caller cancellation aborts the turn; nothing was mutated.
		return nil, err
	}

	now := time.Now().UTC()
	record.History = append(record.History,
		game.Message{Role: game.RolePlayer, Content: message, Timestamp: now},
		game.Message{Role: game.RoleNPC, Content: reply, Timestamp: time.Now().UTC()},
	)
	record.StressLevel = newLevel
	record.LastInteractionAt = now

	s.recordClues(session, character, message)

	if err := s.update(ctx, session, fromDurable); err != nil {
		return nil, fmt.Errorf("failed to save session %s: %w", sessionID, err)
	}

	// The visible stress state uses the base threshold; the lowered imposter
	// threshold only steers generation. Watching who cracks early is the
	// player's job, not the API's.
	visibleState := StressStateFor(newLevel, character.StressThreshold)

	s.events.publish(Event{
		Type:        EventStress,
		SessionID:   sessionID,
		NPCID:       npcID,
		StressLevel: newLevel,
		StressState: visibleState,
		Turns:       record.CompletedTurns(),
		At:          now,
	})

	return &ChatResult{
		Reply:        reply,
		NPCName:      character.Name,
		StressLevel:  newLevel,
		StressState:  visibleState,
		StressChange: delta,
		Turns:        record.CompletedTurns(),
		Degraded:     session.Degraded,
	}, nil
}

// generateReply runs the responder under a bounded timeout. Upstream failure
// is recovered locally with a placeholder line so the turn pair is never left
// dangling; only cancellation of the inbound request propagates.
func (s *Service) generateReply(ctx context.Context, req ReplyRequest) (string, error) {
	if s.responder == nil {
		return distractedReply(req.Character), nil
	}

	replyCtx, cancel := context.WithTimeout(ctx, replyTimeout)
	defer cancel()

	reply, err := s.responder.Reply(replyCtx, req)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		log.Printf("[game] reply generation failed for npc %s: %v", req.Character.ID, err)
		return distractedReply(req.Character), nil
	}
	return reply, nil
}

func distractedReply(character npc.NPC) string {
	return fmt.Sprintf("*%s seems distracted and doesn't respond*", character.Name)
}

// recordClues notes the first time each trigger keyword provokes a character,
// giving the clue journal real content.
func (s *Service) recordClues(session *game.Session, character npc.NPC, message string) {
	for _, trigger := range triggerHits(character, strings.ToLower(message)) {
		clue := fmt.Sprintf("%s reacted strongly when you mentioned %q", character.Name, trigger)
		if containsClue(session.CluesDiscovered, clue) {
			continue
		}
		session.CluesDiscovered = append(session.CluesDiscovered, clue)
	}
}

func containsClue(clues []string, clue string) bool {
	for _, c := range clues {
		if c == clue {
			return true
		}
	}
	return false
}

// History returns the transcript and stress level for one character.
func (s *Service) History(ctx context.Context, sessionID, npcID string) ([]game.Message, int, error) {
	if _, ok := s.catalog.FindByID(npcID); !ok {
		return nil, 0, ErrUnknownNPC
	}

	session, _, err := s.resolve(ctx, sessionID)
	if err != nil {
		return nil, 0, err
	}

	record, ok := session.Interactions[npcID]
	if !ok {
		return []game.Message{}, 0, nil
	}
	return append([]game.Message{}, record.History...), record.StressLevel, nil
}

// NPCState summarizes one character's interrogation progress for the state view.
type NPCState struct {
	StressLevel  int `json:"stressLevel"`
	MessageCount int `json:"messageCount"`
}

// StateSummary is the session snapshot exposed to the client. It never
// includes the imposter identifier.
type StateSummary struct {
	SessionID       string              `json:"sessionId"`
	PlayerName      string              `json:"playerName"`
	Status          game.Status         `json:"gameStatus"`
	CluesDiscovered []string            `json:"cluesDiscovered"`
	NPCStates       map[string]NPCState `json:"npcStates"`
	Degraded        bool                `json:"degraded,omitempty"`
}

// GameState resolves the session and projects its public summary.
func (s *Service) GameState(ctx context.Context, sessionID string) (*StateSummary, error) {
	session, _, err := s.resolve(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	states := make(map[string]NPCState, len(session.Interactions))
	for id, record := range session.Interactions {
		states[id] = NPCState{
			StressLevel:  record.StressLevel,
			MessageCount: len(record.History),
		}
	}

	return &StateSummary{
		SessionID:       session.ID,
		PlayerName:      session.PlayerName,
		Status:          session.Status,
		CluesDiscovered: append([]string{}, session.CluesDiscovered...),
		NPCStates:       states,
		Degraded:        session.Degraded,
	}, nil
}

// Clues returns the discovered clue list.
func (s *Service) Clues(ctx context.Context, sessionID string) ([]string, error) {
	session, _, err := s.resolve(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return append([]string{}, session.CluesDiscovered...), nil
}

// Outcome is the terminal result of an accusation.
type Outcome struct {
	Correct    bool
	Status     game.Status
	Message    string
	Revelation string
}

// Accuse resolves the round. The first verdict is final: any later accusation
// returns ErrRoundDecided and leaves the session untouched.
func (s *Service) Accuse(ctx context.Context, sessionID, npcID string) (*Outcome, error) {
	accused, ok := s.catalog.FindByID(npcID)
	if !ok {
		return nil, ErrUnknownNPC
	}

	lock := s.sessionLock(sessionID)
	lock.Lock()
	defer lock.Unlock()

	session, fromDurable, err := s.resolve(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if session.Status != game.StatusActive {
		return nil, ErrRoundDecided
	}

	correct := npcID == session.ImposterID
	now := time.Now().UTC()
	if correct {
		session.Status = game.StatusWon
	} else {
		session.Status = game.StatusLost
	}
	session.FinalGuess = npcID
	session.EndedAt = &now

	if err := s.update(ctx, session, fromDurable); err != nil {
		return nil, fmt.Errorf("failed to save session %s: %w", sessionID, err)
	}

	s.events.publish(Event{
		Type:      EventDecided,
		SessionID: sessionID,
		NPCID:     npcID,
		Status:    string(session.Status),
		At:        now,
	})

	narrative := s.reveals.entry(session.ImposterID)
	log.Printf("[game] session %s decided: guess=%s correct=%t", sessionID, npcID, correct)

	if correct {
		return &Outcome{
			Correct:    true,
			Status:     session.Status,
			Message:    narrative.Message,
			Revelation: narrative.Revelation,
		}, nil
	}

	imposterName := "Unknown"
	if imposter, ok := s.catalog.FindByID(session.ImposterID); ok {
		imposterName = imposter.Name
	}

	// A wrong guess still ends with full closure: name the real imposter and
	// disclose its story instead of leaving a dead end.
	return &Outcome{
		Correct: false,
		Status:  session.Status,
		Message: fmt.Sprintf("Your accusation was incorrect. %s is innocent. The real imposter remains at large, and your credibility is ruined. The case is closed, but the mystery remains unsolved.", accused.Name),
		Revelation: fmt.Sprintf("TRANSCRIPT RECOVERED: The true imposter was %s. \n\n%s",
			imposterName, narrative.Revelation),
	}, nil
}

// SubscribeEvents opens a live event feed for one session.
func (s *Service) SubscribeEvents(sessionID string) chan Event {
	return s.events.subscribe(sessionID)
}

// UnsubscribeEvents closes a feed opened by SubscribeEvents.
func (s *Service) UnsubscribeEvents(sessionID string, ch chan Event) {
	s.events.unsubscribe(sessionID, ch)
}

// Catalog exposes the character set for handlers that need listings.
func (s *Service) Catalog() npc.Catalog {
	return s.catalog
}
