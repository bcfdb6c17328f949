package game

import "context"

// Store persists game state and the move log. The engine is the only
// writer; implementations do not need to merge concurrent updates.
type Store interface {
	CreateGame(ctx context.Context, s *State) error
	GetGame(ctx context.Context, gameID string) (*State, error)
	SaveGame(ctx context.Context, s *State) error
	RecordMove(ctx context.Context, gameID, playerID, kind string, data map[string]any) error
}

// Invitation statuses accepted by CreateGame.
const InvitationAccepted = "accepted"

// InvitedPlayer is one participant of an accepted invitation.
type InvitedPlayer struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// Invitation is the lobby artifact a game is created from.
type Invitation struct {
	ID      string          `json:"id"`
	Status  string          `json:"status"`
	Players []InvitedPlayer `json:"players"`
}

// InvitationSource resolves invitation ids. The lobby service backs this
// in production; tests supply a fixed map.
type InvitationSource interface {
	Invitation(ctx context.Context, id string) (*Invitation, error)
}
