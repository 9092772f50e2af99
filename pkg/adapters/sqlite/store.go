// Package sqlite persists session snapshots in a local SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/aretw0/clicktree/pkg/domain"
	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS sessions (
	id TEXT PRIMARY KEY,
	collapsed TEXT NOT NULL,
	config TEXT,
	sealed TEXT NOT NULL DEFAULT '',
	updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_sessions_updated_at ON sessions(updated_at);
`

// Store implements ports.StateStore on SQLite.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the database at path and applies the schema.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// SQLite serializes writers; a single connection avoids SQLITE_BUSY under load.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save upserts the snapshot.
func (s *Store) Save(ctx context.Context, sessionID string, snap *domain.Snapshot) error {
	collapsed, err := json.Marshal(snap.Collapsed)
	if err != nil {
		return fmt.Errorf("marshal collapsed state: %w", err)
	}

	var config sql.NullString
	if snap.Config != nil {
		data, err := json.Marshal(snap.Config)
		if err != nil {
			return fmt.Errorf("marshal config: %w", err)
		}
		config = sql.NullString{String: string(data), Valid: true}
	}

	updated := snap.UpdatedAt
	if updated.IsZero() {
		updated = time.Now().UTC()
	}

	query := `
	INSERT OR REPLACE INTO sessions (id, collapsed, config, sealed, updated_at)
	VALUES (?, ?, ?, ?, ?)
	`
	if _, err := s.db.ExecContext(ctx, query, sessionID, string(collapsed), config, snap.Sealed, updated); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Load reads a snapshot.
func (s *Store) Load(ctx context.Context, sessionID string) (*domain.Snapshot, error) {
	query := `SELECT collapsed, config, sealed, updated_at FROM sessions WHERE id = ?`

	var (
		collapsed string
		config    sql.NullString
		sealed    string
		updated   time.Time
	)
	err := s.db.QueryRowContext(ctx, query, sessionID).Scan(&collapsed, &config, &sealed, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	snap := domain.NewSnapshot(sessionID)
	snap.UpdatedAt = updated
	snap.Sealed = sealed
	if err := json.Unmarshal([]byte(collapsed), &snap.Collapsed); err != nil {
		return nil, fmt.Errorf("unmarshal collapsed state: %w", err)
	}
	if config.Valid {
		snap.Config = &domain.RenderConfig{}
		if err := json.Unmarshal([]byte(config.String), snap.Config); err != nil {
			return nil, fmt.Errorf("unmarshal config: %w", err)
		}
	}
	return snap, nil
}

// Delete removes a snapshot. Deleting an unknown session is not an error.
func (s *Store) Delete(ctx context.Context, sessionID string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, sessionID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// List returns session IDs, most recently updated first.
func (s *Store) List(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id FROM sessions ORDER BY updated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
