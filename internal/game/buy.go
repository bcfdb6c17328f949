package game

import (
	"context"

	"go.uber.org/zap"
)

// BuySource says which pile a purchase comes from.
type BuySource string

const (
	BuyMarketplace BuySource = "marketplace"
	BuyLegendary   BuySource = "legendary"
	BuyStrayMagic  BuySource = "strayMagic"
	BuyFamiliar    BuySource = "familiar"
)

// BuyCard purchases a card for the current player's accumulated power.
// Bought cards land in the discard pile, or on top of the deck when a
// prior effect armed that. The vacated marketplace slot refills
// immediately.
func (e *Engine) BuyCard(ctx context.Context, gameID, playerID, cardID string, source BuySource) (*State, error) {
	unlock := e.locks.lock(gameID)
	defer unlock()

	s, err := e.loadActiveGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if err := e.expirePending(ctx, s); err != nil {
		return nil, err
	}
	player := s.CurrentPlayer()
	if player == nil || player.ID != playerID {
		return nil, validationf("it is not player %s's turn", playerID)
	}
	if attackPendingOn(s, playerID) {
		return nil, validationf("an attack involving player %s is unresolved", playerID)
	}

	card, cost, err := e.takeFromPile(s, player, cardID, source)
	if err != nil {
		return nil, err
	}
	if player.Power < cost {
		// Nothing was removed yet on the error path; takeFromPile only
		// commits when the purchase is affordable.
		return nil, validationf("card %q costs %d, player has %d power", card.Name, cost, player.Power)
	}

	player.Power -= cost
	s.LastBoughtCardCost = cost

	if player.PutNextCardOnTopOfDeck {
		player.Deck = append([]*Card{card}, player.Deck...)
		player.PutNextCardOnTopOfDeck = false
	} else {
		player.Discard = append(player.Discard, card)
	}
	e.combat.cardAcquired(s, player, card)

	e.logger.Info("card bought",
		zap.String("game_id", s.ID),
		zap.String("player_id", playerID),
		zap.String("card", card.Name),
		zap.Int("cost", cost))

	e.recordMove(ctx, s, playerID, "buyCard", map[string]any{
		"cardId":   card.InstanceID,
		"cardName": card.Name,
		"cost":     cost,
		"source":   string(source),
	})
	e.notifier.Broadcast(s.ID, EventMoveMade, MoveNotice{
		PlayerID: playerID,
		Kind:     "buyCard",
		CardID:   card.InstanceID,
	})

	e.checkGameEnd(ctx, s)
	if err := e.persist(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

// takeFromPile locates and removes the card from its pile, returning it
// with its effective cost. The removal happens only after the affordability
// check passes.
func (e *Engine) takeFromPile(s *State, player *Player, cardID string, source BuySource) (*Card, int, error) {
	switch source {
	case BuyMarketplace:
		card := FindCard(s.Marketplace, cardID)
		if card == nil {
			return nil, 0, notFoundf("card %s is not in the marketplace", cardID)
		}
		if player.Power < card.Cost {
			return card, card.Cost, nil
		}
		removeCard(&s.Marketplace, cardID)
		e.turns.RefillMarketplace(s, true)
		return card, card.Cost, nil

	case BuyLegendary:
		card := FindCard(s.LegendaryMarketplace, cardID)
		if card == nil {
			return nil, 0, notFoundf("card %s is not in the legendary row", cardID)
		}
		if s.IsTopLegendaryCardHidden {
			return nil, 0, validationf("the legendary card is not revealed yet")
		}
		if player.Power < card.Cost {
			return card, card.Cost, nil
		}
		removeCard(&s.LegendaryMarketplace, cardID)
		if len(s.LegendaryMarketplace) == 0 && len(s.LegendaryReserve) > 0 {
			next := s.LegendaryReserve[0]
			s.LegendaryReserve = s.LegendaryReserve[1:]
			s.LegendaryMarketplace = []*Card{next}
			s.IsTopLegendaryCardHidden = true
		}
		return card, card.Cost, nil

	case BuyStrayMagic:
		if len(s.StrayMagicDeck) == 0 {
			return nil, 0, notFoundf("the stray magic deck is empty")
		}
		card := s.StrayMagicDeck[0]
		if player.Power < StrayMagicCost {
			return card, StrayMagicCost, nil
		}
		s.StrayMagicDeck = s.StrayMagicDeck[1:]
		return card, StrayMagicCost, nil

	case BuyFamiliar:
		if player.Familiar == nil {
			return nil, 0, notFoundf("player %s has no familiar left", player.ID)
		}
		card := player.Familiar
		if card.InstanceID != cardID {
			return nil, 0, notFoundf("card %s is not player %s's familiar", cardID, player.ID)
		}
		if player.Power < card.Cost {
			return card, card.Cost, nil
		}
		player.Familiar = nil
		return card, card.Cost, nil

	default:
		return nil, 0, validationf("unknown buy source %q", source)
	}
}

// attackPendingOn reports whether an unresolved attack interaction
// involves the given player.
func attackPendingOn(s *State, playerID string) bool {
	if s.Pending == nil {
		return false
	}
	switch s.Pending.Kind {
	case PendingAttackTarget:
		return s.Pending.AttackTarget.PlayerID == playerID
	case PendingDefense:
		d := s.Pending.Defense
		return d.AttackerID == playerID || d.OpponentID == playerID
	default:
		return false
	}
}
