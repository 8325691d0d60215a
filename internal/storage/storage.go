// Package storage defines the session persistence contract shared by the
// durable (sqlite) and volatile (in-memory) tiers. The game service decides
// tier ordering; a Store only answers get/put by identifier.
package storage

import (
	"context"
	"errors"

	"github.com/turingmystery/backend/internal/model/game"
)

// ErrSessionNotFound is returned by Get when the tier holds no record for the
// identifier. It is not an IO failure; callers fall through to the next tier.
var ErrSessionNotFound = errors.New("session not found")

// Store persists game sessions keyed by session identifier.
type Store interface {
	// Get returns the session or ErrSessionNotFound.
	Get(ctx context.Context, sessionID string) (*game.Session, error)
	// Put inserts or replaces the session record.
	Put(ctx context.Context, session *game.Session) error
}
