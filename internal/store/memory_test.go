package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krutagidon/krutagidon-server-go/internal/game"
)

func TestMemoryRoundTrip(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	s := &game.State{
		ID:     "g1",
		Status: game.StatusActive,
		Turn:   3,
		Players: []*game.Player{
			{ID: "p1", Username: "wizard1", Health: 20, MaxHealth: 25},
		},
	}
	require.NoError(t, m.CreateGame(ctx, s))

	got, err := m.GetGame(ctx, "g1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 3, got.Turn)
	require.Len(t, got.Players, 1)
	assert.Equal(t, "wizard1", got.Players[0].Username)
}

func TestMemoryGetUnknownGame(t *testing.T) {
	got, err := NewMemory().GetGame(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMemorySnapshotsDoNotAlias(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	s := &game.State{ID: "g1", Turn: 1}
	require.NoError(t, m.CreateGame(ctx, s))

	s.Turn = 99
	got, err := m.GetGame(ctx, "g1")
	require.NoError(t, err)
	assert.Equal(t, 1, got.Turn, "mutating the saved value must not leak into the store")

	got.Turn = 50
	again, err := m.GetGame(ctx, "g1")
	require.NoError(t, err)
	assert.Equal(t, 1, again.Turn, "mutating a read value must not leak either")
}

func TestMemoryMoveLogKeepsOrder(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	require.NoError(t, m.RecordMove(ctx, "g1", "p1", "playCard", map[string]any{"cardId": "c1"}))
	require.NoError(t, m.RecordMove(ctx, "g1", "p2", "endTurn", nil))
	require.NoError(t, m.RecordMove(ctx, "g2", "p1", "buyCard", nil))

	moves := m.Moves("g1")
	require.Len(t, moves, 2)
	assert.Equal(t, "playCard", moves[0].Kind)
	assert.Equal(t, "endTurn", moves[1].Kind)
	assert.Equal(t, "c1", moves[0].Data["cardId"])
	assert.Len(t, m.Moves("g2"), 1)
}

func TestMemoryInvitations(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	m.AddInvitation(&game.Invitation{
		ID:     "inv-1",
		Status: game.InvitationAccepted,
		Players: []game.InvitedPlayer{
			{ID: "p1", Username: "wizard1"},
			{ID: "p2", Username: "wizard2"},
		},
	})

	inv, err := m.Invitation(ctx, "inv-1")
	require.NoError(t, err)
	require.NotNil(t, inv)
	assert.Len(t, inv.Players, 2)

	missing, err := m.Invitation(ctx, "inv-2")
	require.NoError(t, err)
	assert.Nil(t, missing)
}
