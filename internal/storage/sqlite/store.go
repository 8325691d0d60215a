// Package sqlite implements the durable session tier over an embedded SQLite
// database. The session document is stored as one row per session, with the
// per-character interactions and clue list serialized as JSON columns,
// matching the persisted record shape.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/turingmystery/backend/internal/model/game"
	"github.com/turingmystery/backend/internal/storage"
)

// Store persists sessions in a SQLite database file.
type Store struct {
	db *sql.DB
}

// New opens (creating if necessary) the database at dbPath and initializes
// the schema.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS sessions (
		id TEXT PRIMARY KEY,
		player_name TEXT NOT NULL,
		imposter_id TEXT NOT NULL,
		status TEXT NOT NULL,
		final_guess TEXT,
		started_at DATETIME NOT NULL,
		ended_at DATETIME,
		clues_discovered TEXT NOT NULL DEFAULT '[]',
		interactions TEXT NOT NULL DEFAULT '{}'
	);

	CREATE INDEX IF NOT EXISTS idx_sessions_status ON sessions(status);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Get implements storage.Store.
func (s *Store) Get(ctx context.Context, sessionID string) (*game.Session, error) {
	query := `
		SELECT id, player_name, imposter_id, status, final_guess, started_at, ended_at, clues_discovered, interactions
		FROM sessions
		WHERE id = ?
	`

	session := &game.Session{}
	var (
		finalGuess   sql.NullString
		endedAt      sql.NullTime
		cluesJSON    string
		interactJSON string
	)

	err := s.db.QueryRowContext(ctx, query, sessionID).Scan(
		&session.ID,
		&session.PlayerName,
		&session.ImposterID,
		&session.Status,
		&finalGuess,
		&session.StartedAt,
		&endedAt,
		&cluesJSON,
		&interactJSON,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	if finalGuess.Valid {
		session.FinalGuess = finalGuess.String
	}
	if endedAt.Valid {
		ended := endedAt.Time
		session.EndedAt = &ended
	}

	if err := json.Unmarshal([]byte(cluesJSON), &session.CluesDiscovered); err != nil {
		return nil, fmt.Errorf("failed to decode clues for session %s: %w", sessionID, err)
	}
	if err := json.Unmarshal([]byte(interactJSON), &session.Interactions); err != nil {
		return nil, fmt.Errorf("failed to decode interactions for session %s: %w", sessionID, err)
	}

	return session, nil
}

// Put implements storage.Store with an upsert, so create and write-back share
// one path.
func (s *Store) Put(ctx context.Context, session *game.Session) error {
	cluesJSON, err := json.Marshal(clueList(session.CluesDiscovered))
	if err != nil {
		return fmt.Errorf("failed to encode clues: %w", err)
	}

	interactions := session.Interactions
	if interactions == nil {
		interactions = map[string]*game.InteractionRecord{}
	}
	interactJSON, err := json.Marshal(interactions)
	if err != nil {
		return fmt.Errorf("failed to encode interactions: %w", err)
	}

	var finalGuess sql.NullString
	if session.FinalGuess != "" {
		finalGuess = sql.NullString{String: session.FinalGuess, Valid: true}
	}

	var endedAt sql.NullTime
	if session.EndedAt != nil {
		endedAt = sql.NullTime{Time: *session.EndedAt, Valid: true}
	}

	query := `
		INSERT INTO sessions (id, player_name, imposter_id, status, final_guess, started_at, ended_at, clues_discovered, interactions)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			player_name = excluded.player_name,
			status = excluded.status,
			final_guess = excluded.final_guess,
			ended_at = excluded.ended_at,
			clues_discovered = excluded.clues_discovered,
			interactions = excluded.interactions
	`

	_, err = s.db.ExecContext(ctx, query,
		session.ID,
		session.PlayerName,
		session.ImposterID,
		string(session.Status),
		finalGuess,
		session.StartedAt.UTC(),
		endedAt,
		string(cluesJSON),
		string(interactJSON),
	)
	if err != nil {
		return fmt.Errorf("failed to put session: %w", err)
	}

	return nil
}

// clueList normalizes nil to an empty slice so the column always holds a JSON
// array.
func clueList(clues []string) []string {
	if clues == nil {
		return []string{}
	}
	return clues
}

// Ping verifies the connection, used at startup to fail fast on an unusable
// database file.
func (s *Store) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return s.db.PingContext(ctx)
}
