package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/krutagidon/krutagidon-server-go/internal/game"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS games (
	id         TEXT PRIMARY KEY,
	state      TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL,
	updated_at TIMESTAMP NOT NULL
);
CREATE TABLE IF NOT EXISTS moves (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	game_id    TEXT NOT NULL,
	player_id  TEXT NOT NULL,
	kind       TEXT NOT NULL,
	data       TEXT,
	created_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_moves_game ON moves(game_id);
`

// SQLite is the embedded store. The driver is pure Go, so it needs no
// cgo toolchain; a single writer connection avoids SQLITE_BUSY under the
// engine's per-game serialization.
type SQLite struct {
	db     *sql.DB
	logger *zap.Logger
}

func NewSQLite(ctx context.Context, path string, logger *zap.Logger) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("applying sqlite schema: %w", err)
	}
	logger.Info("sqlite store ready", zap.String("path", path))
	return &SQLite{db: db, logger: logger}, nil
}

func (s *SQLite) Close() error { return s.db.Close() }

func (s *SQLite) CreateGame(ctx context.Context, st *game.State) error {
	blob, err := json.Marshal(st)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO games (id, state, created_at, updated_at) VALUES (?, ?, ?, ?)`,
		st.ID, string(blob), st.CreatedAt, st.UpdatedAt)
	return err
}

func (s *SQLite) SaveGame(ctx context.Context, st *game.State) error {
	blob, err := json.Marshal(st)
	if err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE games SET state = ?, updated_at = ? WHERE id = ?`,
		string(blob), st.UpdatedAt, st.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("game %s not persisted before save", st.ID)
	}
	return nil
}

func (s *SQLite) GetGame(ctx context.Context, gameID string) (*game.State, error) {
	var blob string
	err := s.db.QueryRowContext(ctx,
		`SELECT state FROM games WHERE id = ?`, gameID).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var st game.State
	if err := json.Unmarshal([]byte(blob), &st); err != nil {
		return nil, err
	}
	return &st, nil
}

func (s *SQLite) RecordMove(ctx context.Context, gameID, playerID, kind string, data map[string]any) error {
	var payload any
	if data != nil {
		blob, err := json.Marshal(data)
		if err != nil {
			return err
		}
		payload = string(blob)
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO moves (game_id, player_id, kind, data, created_at) VALUES (?, ?, ?, ?, ?)`,
		gameID, playerID, kind, payload, time.Now().UTC())
	return err
}

var _ game.Store = (*SQLite)(nil)
