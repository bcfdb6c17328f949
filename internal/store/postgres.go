package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/krutagidon/krutagidon-server-go/internal/game"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS games (
	id         TEXT PRIMARY KEY,
	state      JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);
CREATE TABLE IF NOT EXISTS moves (
	id         BIGSERIAL PRIMARY KEY,
	game_id    TEXT NOT NULL,
	player_id  TEXT NOT NULL,
	kind       TEXT NOT NULL,
	data       JSONB,
	created_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_moves_game ON moves(game_id);
`

// Postgres stores game state as JSONB documents behind a pgx pool.
type Postgres struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

func NewPostgres(ctx context.Context, dsn string, logger *zap.Logger) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("creating postgres pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging postgres: %w", err)
	}
	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("applying postgres schema: %w", err)
	}
	logger.Info("postgres store ready",
		zap.Int32("total_conns", pool.Stat().TotalConns()))
	return &Postgres{pool: pool, logger: logger}, nil
}

func (p *Postgres) Close() { p.pool.Close() }

func (p *Postgres) CreateGame(ctx context.Context, st *game.State) error {
	blob, err := json.Marshal(st)
	if err != nil {
		return err
	}
	_, err = p.pool.Exec(ctx,
		`INSERT INTO games (id, state, created_at, updated_at) VALUES ($1, $2, $3, $4)`,
		st.ID, blob, st.CreatedAt, st.UpdatedAt)
	return err
}

func (p *Postgres) SaveGame(ctx context.Context, st *game.State) error {
	blob, err := json.Marshal(st)
	if err != nil {
		return err
	}
	tag, err := p.pool.Exec(ctx,
		`UPDATE games SET state = $1, updated_at = $2 WHERE id = $3`,
		blob, st.UpdatedAt, st.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("game %s not persisted before save", st.ID)
	}
	return nil
}

func (p *Postgres) GetGame(ctx context.Context, gameID string) (*game.State, error) {
	var blob []byte
	err := p.pool.QueryRow(ctx,
		`SELECT state FROM games WHERE id = $1`, gameID).Scan(&blob)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var st game.State
	if err := json.Unmarshal(blob, &st); err != nil {
		return nil, err
	}
	return &st, nil
}

func (p *Postgres) RecordMove(ctx context.Context, gameID, playerID, kind string, data map[string]any) error {
	var payload []byte
	if data != nil {
		blob, err := json.Marshal(data)
		if err != nil {
			return err
		}
		payload = blob
	}
	_, err := p.pool.Exec(ctx,
		`INSERT INTO moves (game_id, player_id, kind, data, created_at) VALUES ($1, $2, $3, $4, $5)`,
		gameID, playerID, kind, payload, time.Now().UTC())
	return err
}

var _ game.Store = (*Postgres)(nil)
