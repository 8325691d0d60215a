package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/turingmystery/backend/internal/model/game"
	"github.com/turingmystery/backend/internal/storage"
)

func TestStoreGetMissing(t *testing.T) {
	store := New()

	_, err := store.Get(context.Background(), "missing")
	if !errors.Is(err, storage.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestStorePutGetRoundTrip(t *testing.T) {
	store := New()
	ctx := context.Background()

	session := &game.Session{
		ID:         "abc-librarian",
		PlayerName: "Ada",
		ImposterID: "librarian",
		Status:     game.StatusActive,
		StartedAt:  time.Now().UTC(),
	}

	if err := store.Put(ctx, session); err != nil {
		t.Fatalf("Put err: %v", err)
	}

	got, err := store.Get(ctx, session.ID)
	if err != nil {
		t.Fatalf("Get err: %v", err)
	}
	if got.PlayerName != "Ada" || got.ImposterID != "librarian" {
		t.Fatalf("unexpected session: %+v", got)
	}
}

func TestStoreIsolatesCallers(t *testing.T) {
	store := New()
	ctx := context.Background()

	session := &game.Session{ID: "abc-mayor", ImposterID: "mayor", Status: game.StatusActive}
	if err := store.Put(ctx, session); err != nil {
		t.Fatalf("Put err: %v", err)
	}

	// Mutating the caller's copy must not leak into the store.
	session.Status = game.StatusLost
	got, err := store.Get(ctx, "abc-mayor")
	if err != nil {
		t.Fatalf("Get err: %v", err)
	}
	if got.Status != game.StatusActive {
		t.Fatalf("store shared state with caller: %s", got.Status)
	}

	// And mutating a read result must not change the stored record.
	got.Interaction("mayor").StressLevel = 99
	again, err := store.Get(ctx, "abc-mayor")
	if err != nil {
		t.Fatalf("Get err: %v", err)
	}
	if len(again.Interactions) != 0 {
		t.Fatal("read result shared state with store")
	}
}
