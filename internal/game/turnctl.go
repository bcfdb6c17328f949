package game

import (
	"context"

	"go.uber.org/zap"
)

// StartTurn re-runs the current player's marketplace refill. The turn
// handover in EndTurn already applies start-of-turn effects; this command
// exists for clients resuming a turn after a reconnect and never grants
// power twice.
func (e *Engine) StartTurn(ctx context.Context, gameID, playerID string) (*State, error) {
	unlock := e.locks.lock(gameID)
	defer unlock()

	s, err := e.loadActiveGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	player := s.CurrentPlayer()
	if player == nil || player.ID != playerID {
		return nil, validationf("it is not player %s's turn", playerID)
	}

	e.turns.RefillMarketplace(s, true)
	e.checkGameEnd(ctx, s)
	if err := e.persist(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

// EndTurn closes the current player's turn: hand and non-permanent play
// area are discarded, power resets, end-of-turn permanents draw, the hand
// refills to five, the prize owner's bonus applies, a hidden legend is
// revealed with its group attack, and the turn passes to the next living
// player with a fresh marketplace and start-of-turn effects.
func (e *Engine) EndTurn(ctx context.Context, gameID, playerID string) (*State, error) {
	unlock := e.locks.lock(gameID)
	defer unlock()

	s, err := e.loadActiveGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if err := e.expirePending(ctx, s); err != nil {
		return nil, err
	}
	if s.Status != StatusActive {
		// The expired interaction may have ended the game.
		return s, nil
	}
	player := s.CurrentPlayer()
	if player == nil || player.ID != playerID {
		return nil, validationf("it is not player %s's turn", playerID)
	}
	if s.Pending != nil {
		return nil, statef("interaction %s must resolve before the turn ends", s.Pending.Kind)
	}

	// Sweep the turn's cards and spent resources.
	player.Discard = append(player.Discard, player.Hand...)
	player.Hand = nil
	kept := player.PlayArea[:0]
	for _, c := range player.PlayArea {
		if c.IsPermanent {
			kept = append(kept, c)
		} else {
			player.Discard = append(player.Discard, c)
		}
	}
	player.PlayArea = kept
	player.Power = 0
	player.PutNextCardOnTopOfDeck = false
	player.PlayAttackOnAcquire = false

	e.turns.ApplyEndOfTurnEffects(s, player)
	e.combat.drawCards(s, player, HandSize)
	if s.Prize.OwnerID == player.ID {
		e.combat.drawCards(s, player, 6)
		e.combat.discardFirstFromHand(player)
	}

	if s.IsTopLegendaryCardHidden && len(s.LegendaryMarketplace) > 0 {
		legend := s.LegendaryMarketplace[0]
		s.IsTopLegendaryCardHidden = false
		e.notifier.Broadcast(s.ID, EventLegendaryCardRevealed, legend)
		e.turns.ApplyLegendaryGroupAttack(s, legend)
	}

	next := s.NextPlayer()
	s.CurrentPlayerID = next.ID
	s.Turn++
	e.turns.RefillMarketplace(s, true)
	e.turns.ApplyStartOfTurnEffects(s, next)

	e.logger.Info("turn ended",
		zap.String("game_id", s.ID),
		zap.String("player_id", playerID),
		zap.String("next_player_id", next.ID),
		zap.Int("turn", s.Turn))
	e.recordMove(ctx, s, playerID, "endTurn", map[string]any{
		"turn": s.Turn,
	})

	e.checkGameEnd(ctx, s)
	if err := e.persist(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}
