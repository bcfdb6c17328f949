package game

// PlayerView is a seat as one particular client may see it: own hand and
// deck order are private, everyone else sees counts.
type PlayerView struct {
	ID       string `json:"id"`
	Username string `json:"username"`

	Hand      []*Card `json:"hand,omitempty"`
	HandCount int     `json:"handCount"`
	DeckCount int     `json:"deckCount"`
	PlayArea  []*Card `json:"playArea"`
	Discard   []*Card `json:"discard"`

	Health    int `json:"health"`
	MaxHealth int `json:"maxHealth"`
	Power     int `json:"power"`

	KrutagidonCups  int          `json:"krutagidonCups"`
	DeadWizardCount int          `json:"deadWizardCount"`
	DeadWizards     []DeadWizard `json:"deadWizards"`

	SelectionCompleted bool  `json:"selectionCompleted"`
	Familiar           *Card `json:"familiar,omitempty"`
}

// View is the redacted game state pushed to one player: their own hand in
// full, opponents' hidden zones as counts, reserves as counts, and the
// hidden legendary top masked.
type View struct {
	ID              string       `json:"id"`
	Status          Status       `json:"status"`
	Turn            int          `json:"turn"`
	CurrentPlayerID string       `json:"currentPlayerId"`
	WinnerID        string       `json:"winnerId,omitempty"`
	FinalScores     []ScoreEntry `json:"finalScores,omitempty"`

	Players []PlayerView `json:"players"`

	Marketplace          []*Card `json:"marketplace"`
	MarketplaceReserve   int     `json:"marketplaceReserveCount"`
	LegendaryMarketplace []*Card `json:"legendaryMarketplace"`
	LegendaryReserve     int     `json:"legendaryReserveCount"`
	LegendaryHidden      bool    `json:"legendaryHidden"`

	StrayMagicCount    int     `json:"strayMagicCount"`
	SluggishStickCount int     `json:"sluggishStickCount"`
	ChaosDiscard       []*Card `json:"chaosDiscard"`
	DestroyedCards     []*Card `json:"destroyedCards"`

	DeadWizardTokens int             `json:"deadWizardTokens"`
	Prize            KrutagidonPrize `json:"prize"`

	Pending *PendingInteraction `json:"pending,omitempty"`
}

// ViewFor renders the state for one recipient. forPlayerID may be empty
// for a spectator view with every hand hidden.
func ViewFor(s *State, forPlayerID string) *View {
	v := &View{
		ID:                 s.ID,
		Status:             s.Status,
		Turn:               s.Turn,
		CurrentPlayerID:    s.CurrentPlayerID,
		WinnerID:           s.WinnerID,
		FinalScores:        s.FinalScores,
		Marketplace:        s.Marketplace,
		MarketplaceReserve: len(s.MarketplaceReserve),
		LegendaryReserve:   len(s.LegendaryReserve),
		LegendaryHidden:    s.IsTopLegendaryCardHidden,
		StrayMagicCount:    len(s.StrayMagicDeck),
		SluggishStickCount: len(s.SluggishSticksDeck),
		ChaosDiscard:       s.ChaosDiscard,
		DestroyedCards:     s.DestroyedCards,
		DeadWizardTokens:   s.DeadWizardTokens,
		Prize:              s.Prize,
		Pending:            s.Pending,
	}

	if !s.IsTopLegendaryCardHidden {
		v.LegendaryMarketplace = s.LegendaryMarketplace
	}

	for _, p := range s.Players {
		pv := PlayerView{
			ID:                 p.ID,
			Username:           p.Username,
			HandCount:          len(p.Hand),
			DeckCount:          len(p.Deck),
			PlayArea:           p.PlayArea,
			Discard:            p.Discard,
			Health:             p.Health,
			MaxHealth:          p.MaxHealth,
			Power:              p.Power,
			KrutagidonCups:     p.KrutagidonCups,
			DeadWizardCount:    p.DeadWizardCount,
			DeadWizards:        p.DeadWizards,
			SelectionCompleted: p.SelectionCompleted,
			Familiar:           p.Familiar,
		}
		if p.ID == forPlayerID {
			pv.Hand = p.Hand
		}
		v.Players = append(v.Players, pv)
	}
	return v
}
