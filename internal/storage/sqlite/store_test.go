package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/turingmystery/backend/internal/model/game"
	"github.com/turingmystery/backend/internal/storage"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := New(filepath.Join(t.TempDir(), "sessions.db"))
	if err != nil {
		t.Fatalf("New err: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreGetMissing(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Get(context.Background(), "missing")
	if !errors.Is(err, storage.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestStorePersistsFullDocument(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	started := time.Now().UTC().Truncate(time.Second)
	session := &game.Session{
		ID:              "abc-scientist",
		PlayerName:      "Ada",
		ImposterID:      "scientist",
		Status:          game.StatusActive,
		StartedAt:       started,
		CluesDiscovered: []string{"Dr. Yuki Chen reacted strongly when you mentioned \"experiment\""},
		Interactions: map[string]*game.InteractionRecord{
			"scientist": {
				NPCID: "scientist",
				History: []game.Message{
					{Role: game.RolePlayer, Content: "what about the experiment", Timestamp: started},
					{Role: game.RoleNPC, Content: "I... I can't talk about that.", Timestamp: started},
				},
				StressLevel:       17,
				LastInteractionAt: started,
			},
		},
	}

	if err := store.Put(ctx, session); err != nil {
		t.Fatalf("Put err: %v", err)
	}

	got, err := store.Get(ctx, session.ID)
	if err != nil {
		t.Fatalf("Get err: %v", err)
	}

	if got.PlayerName != "Ada" || got.ImposterID != "scientist" || got.Status != game.StatusActive {
		t.Fatalf("unexpected session: %+v", got)
	}
	if len(got.CluesDiscovered) != 1 {
		t.Fatalf("clues not persisted: %v", got.CluesDiscovered)
	}
	record, ok := got.Interactions["scientist"]
	if !ok {
		t.Fatal("interaction record not persisted")
	}
	if record.StressLevel != 17 || len(record.History) != 2 {
		t.Fatalf("unexpected record: %+v", record)
	}
	if record.History[0].Role != game.RolePlayer || record.History[1].Role != game.RoleNPC {
		t.Fatal("history order not preserved")
	}
}

func TestStorePutUpserts(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	session := &game.Session{
		ID:         "abc-janitor",
		PlayerName: "Ada",
		ImposterID: "janitor",
		Status:     game.StatusActive,
		StartedAt:  time.Now().UTC(),
	}
	if err := store.Put(ctx, session); err != nil {
		t.Fatalf("Put err: %v", err)
	}

	ended := time.Now().UTC().Truncate(time.Second)
	session.Status = game.StatusWon
	session.FinalGuess = "janitor"
	session.EndedAt = &ended
	if err := store.Put(ctx, session); err != nil {
		t.Fatalf("second Put err: %v", err)
	}

	got, err := store.Get(ctx, session.ID)
	if err != nil {
		t.Fatalf("Get err: %v", err)
	}
	if got.Status != game.StatusWon || got.FinalGuess != "janitor" {
		t.Fatalf("upsert did not apply: %+v", got)
	}
	if got.EndedAt == nil || !got.EndedAt.Equal(ended) {
		t.Fatalf("endedAt not persisted: %v", got.EndedAt)
	}
}
