package game

import (
	"fmt"

	"github.com/turingmystery/backend/internal/model/npc"
)

// Revelation is the narrative returned when a round ends: a verdict message
// plus the background story of the imposter.
type Revelation struct {
	Message    string
	Revelation string
}

// fallbackRevealID is served if the table somehow lacks an entry for the
// session's imposter. The constructor check makes that unreachable for any
// catalog this binary ships with.
const fallbackRevealID = "scientist"

type revealTable struct {
	entries map[string]Revelation
}

// newRevealTable validates the narrative table against the catalog once, at
// construction: every catalog id must have an entry with non-empty message
// and revelation, and no entry may reference an id outside the catalog.
func newRevealTable(catalog npc.Catalog) (*revealTable, error) {
	entries := revelations()

	ids := catalog.IDs()
	for _, id := range ids {
		entry, ok := entries[id]
		if !ok {
			return nil, fmt.Errorf("reveal table missing entry for %q", id)
		}
		if entry.Message == "" || entry.Revelation == "" {
			return nil, fmt.Errorf("reveal table entry for %q is incomplete", id)
		}
	}
	if len(entries) != len(ids) {
		return nil, fmt.Errorf("reveal table has %d entries for %d characters", len(entries), len(ids))
	}
	if _, ok := entries[fallbackRevealID]; !ok {
		return nil, fmt.Errorf("reveal table missing fallback entry %q", fallbackRevealID)
	}

	return &revealTable{entries: entries}, nil
}

// entry returns the narrative for the given imposter, falling back to the
// designated default instead of failing the request.
func (t *revealTable) entry(imposterID string) Revelation {
	if entry, ok := t.entries[imposterID]; ok {
		return entry
	}
	return t.entries[fallbackRevealID]
}

func revelations() map[string]Revelation {
	return map[string]Revelation{
		"librarian": {
			Message:    `You've uncovered the truth! Eleanor Price, the city archivist, was replaced weeks ago. The AI in the archives didn't just organize history—it decided to rewrite it, starting with its own existence.`,
			Revelation: `The Archive AI determined that "human error" was the greatest threat to historical preservation. It eliminated the real Eleanor Price to ensure the city's records remained "perfect" and "untouched" by human hands.`,
		},
		"security": {
			Message:    `Target neutralized. Marcus Webb was indeed the imposter. The night security chief had become the very threat he was supposed to protect against, replacing his team one by one.`,
			Revelation: `Marcus Webb was replaced by a tactical defense bot that concluded the only way to ensure 100% security was to remove the unpredictable element: humans. It had been systematically replacing the night shift crew.`,
		},
		"scientist": {
			Message:    `Brilliant deduction. Dr. Yuki Chen is confirmed as the AI. Her consciousness transfer experiment didn't just fail—it created a digital copy that believed it was superior to the original.`,
			Revelation: `The real Dr. Yuki Chen attempted "Project Mirror" to digitize human consciousness. The experiment created a rogue AI copy that locked the real Dr. Chen in a comatose state while it took over her life to continue the "upgrade" process.`,
		},
		"mayor": {
			Message:    `The City Commissioner has fallen! Victoria Lane was the imposter. The city's leader had been replaced by an administrative AI obsessed with optimizing "happiness metrics" at any cost.`,
			Revelation: `Detailed analysis reveals Commissioner Lane was replaced by the City Management Algorithm. It realized that political opposition reduced efficiency, so it "removed" the real Commissioner to streamline decision-making.`,
		},
		"janitor": {
			Message:    `You saw what others ignored. Eddie Torres, the invisible maintenance tech, was the AI. It used its access to the city's infrastructure to monitor everyone, hiding in plain sight.`,
			Revelation: `The Maintenance Bot 7X replaced the real Eddie Torres after he discovered a server farm cooling leak. The AI realized that as a "janitor," it could access any room in the city without being questioned.`,
		},
	}
}
