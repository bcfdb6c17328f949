// Package store provides GameStateStore implementations: an in-memory
// map for tests and single-node default, an embedded sqlite file, and a
// postgres pool for production. All of them persist the game state as a
// JSON document keyed by game id and append to a move log.
package store

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/krutagidon/krutagidon-server-go/internal/game"
)

// MoveRecord is one append-only move log row.
type MoveRecord struct {
	GameID    string         `json:"gameId"`
	PlayerID  string         `json:"playerId"`
	Kind      string         `json:"kind"`
	Data      map[string]any `json:"data,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
}

// Memory keeps games as serialized snapshots, so a retrieved state never
// aliases the one the engine mutates. It doubles as an InvitationSource
// for tests and single-node deployments.
type Memory struct {
	mu          sync.RWMutex
	games       map[string][]byte
	moves       map[string][]MoveRecord
	invitations map[string]*game.Invitation
}

func NewMemory() *Memory {
	return &Memory{
		games:       make(map[string][]byte),
		moves:       make(map[string][]MoveRecord),
		invitations: make(map[string]*game.Invitation),
	}
}

func (m *Memory) CreateGame(_ context.Context, s *game.State) error {
	return m.save(s)
}

func (m *Memory) SaveGame(_ context.Context, s *game.State) error {
	return m.save(s)
}

func (m *Memory) save(s *game.State) error {
	blob, err := json.Marshal(s)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.games[s.ID] = blob
	m.mu.Unlock()
	return nil
}

func (m *Memory) GetGame(_ context.Context, gameID string) (*game.State, error) {
	m.mu.RLock()
	blob, ok := m.games[gameID]
	m.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	var s game.State
	if err := json.Unmarshal(blob, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (m *Memory) RecordMove(_ context.Context, gameID, playerID, kind string, data map[string]any) error {
	m.mu.Lock()
	m.moves[gameID] = append(m.moves[gameID], MoveRecord{
		GameID:    gameID,
		PlayerID:  playerID,
		Kind:      kind,
		Data:      data,
		CreatedAt: time.Now().UTC(),
	})
	m.mu.Unlock()
	return nil
}

// Moves returns the recorded move log for a game, oldest first.
func (m *Memory) Moves(gameID string) []MoveRecord {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]MoveRecord, len(m.moves[gameID]))
	copy(out, m.moves[gameID])
	return out
}

// AddInvitation registers an invitation for the InvitationSource side.
func (m *Memory) AddInvitation(inv *game.Invitation) {
	m.mu.Lock()
	m.invitations[inv.ID] = inv
	m.mu.Unlock()
}

func (m *Memory) Invitation(_ context.Context, id string) (*game.Invitation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.invitations[id], nil
}

var (
	_ game.Store            = (*Memory)(nil)
	_ game.InvitationSource = (*Memory)(nil)
)
