package game

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/krutagidon/krutagidon-server-go/internal/catalog"
)

// Player count limits for a game.
const (
	MinPlayers = 2
	MaxPlayers = 5
)

const legendaryRowSize = 9

// CreateGame materializes a new game from an accepted invitation: starter
// decks dealt and shuffled, the marketplace seeded, the legendary row
// stacked with its fixed opener on top, and the loadout draft opened with
// the first player in the selection queue.
func (e *Engine) CreateGame(ctx context.Context, invitationID string) (*State, error) {
	invitation, err := e.invites.Invitation(ctx, invitationID)
	if err != nil {
		return nil, err
	}
	if invitation == nil {
		return nil, notFoundf("invitation %s not found", invitationID)
	}
	if invitation.Status != InvitationAccepted {
		return nil, validationf("invitation %s is %s, not accepted", invitationID, invitation.Status)
	}
	if n := len(invitation.Players); n < MinPlayers || n > MaxPlayers {
		return nil, validationf("game needs %d to %d players, got %d", MinPlayers, MaxPlayers, n)
	}
	seen := make(map[string]bool, len(invitation.Players))
	for _, p := range invitation.Players {
		if seen[p.ID] {
			return nil, validationf("player %s appears twice in invitation", p.ID)
		}
		seen[p.ID] = true
	}

	now := time.Now().UTC()
	s := &State{
		ID:                 uuid.NewString(),
		Status:             StatusPending,
		Turn:               1,
		LastBoughtCardCost: -1,
		DeadWizardTokens:   4 * len(invitation.Players),
		Prize: KrutagidonPrize{
			Name:        "Krutagidon Prize",
			Description: "Held by the last wizard to score a kill.",
		},
		ProposedTokens:    make(map[string][]int),
		ProposedFamiliars: make(map[string][]string),
		ProposedBoards:    make(map[string][]int),
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	for _, invited := range invitation.Players {
		s.Players = append(s.Players, e.newPlayer(invited))
	}

	s.MarketplaceReserve = instantiate(e.catalog.MarketplaceReserve())
	catalog.Shuffle(e.rng, s.MarketplaceReserve)
	// Setup refill: stray magic surfacing now is discarded without effect.
	e.turns.RefillMarketplace(s, false)

	first := e.catalog.FirstLegend()
	s.LegendaryMarketplace = []*Card{newCard(first)}
	s.IsTopLegendaryCardHidden = true
	var others []*Card
	for _, def := range e.catalog.Legends() {
		if def.Name != first.Name {
			others = append(others, newCard(def))
		}
	}
	catalog.Shuffle(e.rng, others)
	if take := legendaryRowSize - len(s.Players); take < len(others) {
		others = others[:take]
	}
	s.LegendaryReserve = others

	s.StrayMagicDeck = instantiate(e.catalog.StrayMagicDeck())
	s.SluggishSticksDeck = instantiate(e.catalog.SluggishSticks())

	s.CurrentPlayerID = s.Players[e.rng.Intn(len(s.Players))].ID
	for _, p := range s.Players {
		s.SelectionQueue = append(s.SelectionQueue, p.ID)
	}

	if err := e.store.CreateGame(ctx, s); err != nil {
		return nil, err
	}
	e.logger.Info("game created",
		zap.String("game_id", s.ID),
		zap.String("invitation_id", invitationID),
		zap.Int("players", len(s.Players)))

	e.notifier.Broadcast(s.ID, EventGameUpdate, s)
	e.notifier.ToPlayer(s.ID, s.SelectionQueue[0], EventSelectionRequired, SelectionPrompt{
		Action: "loadout",
	})
	return s, nil
}

func (e *Engine) newPlayer(invited InvitedPlayer) *Player {
	deck := instantiate(e.catalog.StarterDeck())
	catalog.Shuffle(e.rng, deck)
	hand := deck[:HandSize]
	deck = deck[HandSize:]
	return &Player{
		ID:        invited.ID,
		Username:  invited.Username,
		Deck:      deck,
		Hand:      hand,
		Health:    StartingHealth,
		MaxHealth: MaxHealth,
	}
}
