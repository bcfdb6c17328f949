package game

import (
	"time"

	"github.com/krutagidon/krutagidon-server-go/internal/catalog"
)

// Status is the game lifecycle phase.
type Status string

const (
	StatusPending  Status = "pending"
	StatusActive   Status = "active"
	StatusFinished Status = "finished"
)

// Starting resource values for every wizard.
const (
	StartingHealth  = 20
	MaxHealth       = 25
	HandSize        = 5
	MarketplaceSize = 5
	StrayMagicCost  = 3
)

// Card is a concrete card in play: a catalog definition stamped with a
// unique instance identity so two copies of the same card can be told
// apart across zones.
type Card struct {
	InstanceID string `json:"instanceId"`
	catalog.CardDef
}

// DeadWizard is a kill trophy held by a player. Its printed effect is not
// applied; it only counts toward scoring.
type DeadWizard struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// KrutagidonPrize is the singleton trophy that moves to whichever player
// made the most recent kill.
type KrutagidonPrize struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	OwnerID     string `json:"ownerId,omitempty"`
}

// Player is one seat at the table. Zone slices are ordered: Deck index 0
// is the top, Hand and PlayArea are display order, Discard is face up.
type Player struct {
	ID       string `json:"id"`
	Username string `json:"username"`

	Deck     []*Card `json:"deck"`
	Hand     []*Card `json:"hand"`
	PlayArea []*Card `json:"playArea"`
	Discard  []*Card `json:"discard"`

	Health    int `json:"health"`
	MaxHealth int `json:"maxHealth"`
	Power     int `json:"power"`

	KrutagidonCups  int          `json:"krutagidonCups"`
	DeadWizardCount int          `json:"deadWizardCount"`
	DeadWizards     []DeadWizard `json:"deadWizards"`

	SelectionCompleted  bool                          `json:"selectionCompleted"`
	WizardPropertyToken *catalog.WizardPropertyToken  `json:"wizardPropertyToken,omitempty"`
	Familiar            *Card                         `json:"familiar,omitempty"`
	PlayAreaBoard       *catalog.PlayAreaBoard        `json:"playAreaBoard,omitempty"`

	// Per-turn flags, reset when the turn passes.
	FirstWizardPlayed      bool `json:"firstWizardPlayed"`
	FirstCreaturePlayed    bool `json:"firstCreaturePlayed"`
	FirstTreasurePlayed    bool `json:"firstTreasurePlayed"`
	FirstSpellPlayed       bool `json:"firstSpellPlayed"`
	PutNextCardOnTopOfDeck bool `json:"putNextCardOnTopOfDeck"`
	PlayAttackOnAcquire    bool `json:"playAttackOnAcquire"`
}

// RemoveFromHand extracts the card with the given instance id from the
// hand, returning nil if absent.
func (p *Player) RemoveFromHand(cardID string) *Card {
	return removeCard(&p.Hand, cardID)
}

// RemoveFromPlayArea extracts the card with the given instance id from the
// play area, returning nil if absent.
func (p *Player) RemoveFromPlayArea(cardID string) *Card {
	return removeCard(&p.PlayArea, cardID)
}

// RemoveFromDiscard extracts the card with the given instance id from the
// discard pile, returning nil if absent.
func (p *Player) RemoveFromDiscard(cardID string) *Card {
	return removeCard(&p.Discard, cardID)
}

func removeCard(zone *[]*Card, cardID string) *Card {
	for i, c := range *zone {
		if c.InstanceID == cardID {
			*zone = append((*zone)[:i], (*zone)[i+1:]...)
			return c
		}
	}
	return nil
}

// FindCard returns the card with the given instance id from a zone slice.
func FindCard(zone []*Card, cardID string) *Card {
	for _, c := range zone {
		if c.InstanceID == cardID {
			return c
		}
	}
	return nil
}

// ScoreEntry is one row of the final standings.
type ScoreEntry struct {
	PlayerID       string `json:"playerId"`
	Username       string `json:"username"`
	Score          int    `json:"score"`
	CardPoints     int    `json:"cardPoints"`
	DeadWizards    int    `json:"deadWizards"`
	SluggishSticks int    `json:"sluggishSticks"`
	Legends        int    `json:"legends"`
}

// State is the full authoritative game state. It is the unit of
// persistence: stores serialize it as a single document keyed by ID.
type State struct {
	ID      string    `json:"id"`
	Status  Status    `json:"status"`
	Turn    int       `json:"turn"`
	Players []*Player `json:"players"`

	CurrentPlayerID string `json:"currentPlayerId"`
	WinnerID        string `json:"winnerId,omitempty"`
	FinalScores     []ScoreEntry `json:"finalScores,omitempty"`

	Marketplace        []*Card `json:"marketplace"`
	MarketplaceReserve []*Card `json:"marketplaceReserve"`

	LegendaryMarketplace     []*Card `json:"legendaryMarketplace"`
	LegendaryReserve         []*Card `json:"legendaryReserve"`
	IsTopLegendaryCardHidden bool    `json:"isTopLegendaryCardHidden"`

	StrayMagicDeck     []*Card `json:"strayMagicDeck"`
	SluggishSticksDeck []*Card `json:"sluggishSticksDeck"`
	ChaosDiscard       []*Card `json:"chaosDiscard"`
	DestroyedCards     []*Card `json:"destroyedCards"`

	DeadWizardTokens int             `json:"deadWizardTokens"`
	Prize            KrutagidonPrize `json:"prize"`

	// LastBoughtCardCost is -1 until the first purchase of the game.
	LastBoughtCardCost int `json:"lastBoughtCardCost"`

	// Loadout draft bookkeeping, only meaningful while Status is pending.
	SelectionQueue    []string            `json:"selectionQueue,omitempty"`
	SelectionIndex    int                 `json:"selectionIndex"`
	ProposedTokens    map[string][]int    `json:"proposedTokens"`
	ProposedFamiliars map[string][]string `json:"proposedFamiliars"`
	ProposedBoards    map[string][]int    `json:"proposedBoards"`

	Pending *PendingInteraction `json:"pending,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// PlayerByID returns the seat with the given id, or nil.
func (s *State) PlayerByID(id string) *Player {
	for _, p := range s.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// CurrentPlayer returns the seat whose turn it is.
func (s *State) CurrentPlayer() *Player {
	return s.PlayerByID(s.CurrentPlayerID)
}

// Enemies returns every other seat that is still standing, in seating
// order starting after the given player.
func (s *State) Enemies(of *Player) []*Player {
	idx := s.seatIndex(of.ID)
	var out []*Player
	for i := 1; i < len(s.Players); i++ {
		p := s.Players[(idx+i)%len(s.Players)]
		if p.Health > 0 {
			out = append(out, p)
		}
	}
	return out
}

// EnemyIDs returns the ids of Enemies(of).
func (s *State) EnemyIDs(of *Player) []string {
	enemies := s.Enemies(of)
	ids := make([]string, len(enemies))
	for i, e := range enemies {
		ids[i] = e.ID
	}
	return ids
}

// Neighbors returns the seats immediately left and right of the given
// player. With two players both slots are the same opponent, returned
// once.
func (s *State) Neighbors(of *Player) []*Player {
	n := len(s.Players)
	if n < 2 {
		return nil
	}
	idx := s.seatIndex(of.ID)
	left := s.Players[(idx+n-1)%n]
	right := s.Players[(idx+1)%n]
	if left.ID == right.ID {
		return []*Player{left}
	}
	return []*Player{left, right}
}

// NextPlayer returns the next living seat after the current player.
func (s *State) NextPlayer() *Player {
	idx := s.seatIndex(s.CurrentPlayerID)
	for i := 1; i <= len(s.Players); i++ {
		p := s.Players[(idx+i)%len(s.Players)]
		if p.Health > 0 {
			return p
		}
	}
	return s.CurrentPlayer()
}

func (s *State) seatIndex(playerID string) int {
	for i, p := range s.Players {
		if p.ID == playerID {
			return i
		}
	}
	return 0
}
