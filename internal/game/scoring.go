package game

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"github.com/krutagidon/krutagidon-server-go/internal/catalog"
)

// checkGameEnd finishes the game when the dead-wizard token supply is
// exhausted, the marketplace can no longer be kept at five cards, or the
// last legend has been bought. A finished game is scored once and becomes
// immutable.
func (e *Engine) checkGameEnd(ctx context.Context, s *State) {
	if s.Status != StatusActive {
		return
	}
	tokensGone := s.DeadWizardTokens <= 0
	marketDry := len(s.MarketplaceReserve) == 0 && len(s.Marketplace) < MarketplaceSize
	legendsGone := len(s.LegendaryMarketplace) == 0 && len(s.LegendaryReserve) == 0
	if !tokensGone && !marketDry && !legendsGone {
		return
	}

	s.Status = StatusFinished
	s.FinalScores = e.computeScores(s)
	if len(s.FinalScores) > 0 {
		s.WinnerID = s.FinalScores[0].PlayerID
	}

	e.logger.Info("game finished",
		zap.String("game_id", s.ID),
		zap.String("winner_id", s.WinnerID),
		zap.Bool("tokens_exhausted", tokensGone),
		zap.Bool("marketplace_dry", marketDry),
		zap.Bool("legends_exhausted", legendsGone))
	e.notifier.Broadcast(s.ID, EventGameFinished, s.FinalScores)
	e.recordMove(ctx, s, s.WinnerID, "gameFinished", map[string]any{
		"winnerId": s.WinnerID,
	})
}

// computeScores ranks players by victory points across every owned card
// minus three per dead wizard minus one per sluggish stick. Ties break on
// more legends, then fewer dead wizards.
func (e *Engine) computeScores(s *State) []ScoreEntry {
	entries := make([]ScoreEntry, 0, len(s.Players))
	for _, p := range s.Players {
		entry := ScoreEntry{
			PlayerID:    p.ID,
			Username:    p.Username,
			DeadWizards: p.DeadWizardCount,
		}
		for _, zone := range [][]*Card{p.Deck, p.Hand, p.PlayArea, p.Discard} {
			for _, c := range zone {
				entry.CardPoints += c.VictoryPoints
				if c.Type == catalog.TypeSluggishStick {
					entry.SluggishSticks++
				}
				if c.Type == catalog.TypeLegend {
					entry.Legends++
				}
			}
		}
		entry.Score = entry.CardPoints - 3*entry.DeadWizards - entry.SluggishSticks
		entries = append(entries, entry)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.Legends != b.Legends {
			return a.Legends > b.Legends
		}
		return a.DeadWizards < b.DeadWizards
	})
	return entries
}
