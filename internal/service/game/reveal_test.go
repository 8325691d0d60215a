package game

import (
	"testing"

	"github.com/turingmystery/backend/internal/model/npc"
)

func TestRevealTableCoversCatalog(t *testing.T) {
	catalog := npc.NewMemoryCatalog(npc.Seed())

	table, err := newRevealTable(catalog)
	if err != nil {
		t.Fatalf("newRevealTable err: %v", err)
	}

	for _, id := range catalog.IDs() {
		entry := table.entry(id)
		if entry.Message == "" {
			t.Fatalf("empty message for %s", id)
		}
		if entry.Revelation == "" {
			t.Fatalf("empty revelation for %s", id)
		}
	}
}

func TestRevealTableRejectsUnknownCharacter(t *testing.T) {
	cast := append(npc.Seed(), npc.NPC{ID: "ghost", Name: "Ghost", StressThreshold: 50})
	catalog := npc.NewMemoryCatalog(cast)

	if _, err := newRevealTable(catalog); err == nil {
		t.Fatal("expected error for character without a narrative")
	}
}

func TestRevealTableFallbackEntry(t *testing.T) {
	catalog := npc.NewMemoryCatalog(npc.Seed())

	table, err := newRevealTable(catalog)
	if err != nil {
		t.Fatalf("newRevealTable err: %v", err)
	}

	// Unreachable in practice, but the designated default must still answer.
	entry := table.entry("unknown")
	if entry != table.entry(fallbackRevealID) {
		t.Fatal("expected fallback entry for unknown imposter")
	}
}
