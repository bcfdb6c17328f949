package game

import (
	"context"

	"go.uber.org/zap"

	"github.com/krutagidon/krutagidon-server-go/internal/catalog"
)

// TopDeckAction is the verdict for an own revealed deck-top card.
type TopDeckAction string

const (
	TopDeckTake   TopDeckAction = "take"
	TopDeckRemove TopDeckAction = "remove"
	TopDeckReturn TopDeckAction = "return"
)

// DestroyCardFromDiscard removes one of the current player's discarded
// cards from the game. The prompt that invites this is fire-and-forget;
// the command validates against the pile itself.
func (e *Engine) DestroyCardFromDiscard(ctx context.Context, gameID, playerID, cardID string) (*State, error) {
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
	card := player.RemoveFromDiscard(cardID)
	if card == nil {
		return nil, notFoundf("card %s is not in player %s's discard pile", cardID, playerID)
	}
	s.DestroyedCards = append(s.DestroyedCards, card)

	e.logger.Info("card destroyed from discard",
		zap.String("game_id", s.ID),
		zap.String("player_id", playerID),
		zap.String("card", card.Name))
	e.recordMove(ctx, s, playerID, "destroyCardFromDiscard", map[string]any{
		"cardId":   card.InstanceID,
		"cardName": card.Name,
	})
	if err := e.persist(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

// HandleTopDeckSelection settles the current player's own revealed
// deck-top card: take it to hand, remove it from the game, or bury it in
// the deck.
func (e *Engine) HandleTopDeckSelection(ctx context.Context, gameID, playerID, cardID string, action TopDeckAction) (*State, error) {
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
	if len(player.Deck) == 0 || player.Deck[0].InstanceID != cardID {
		return nil, statef("card %s is not on top of player %s's deck", cardID, playerID)
	}

	card := player.Deck[0]
	player.Deck = player.Deck[1:]
	switch action {
	case TopDeckTake:
		player.Hand = append(player.Hand, card)
	case TopDeckRemove:
		s.DestroyedCards = append(s.DestroyedCards, card)
	case TopDeckReturn:
		player.Deck = append(player.Deck, card)
		catalog.Shuffle(e.rng, player.Deck)
	default:
		return nil, validationf("unknown top deck action %q", action)
	}

	e.recordMove(ctx, s, playerID, "handleTopDeckSelection", map[string]any{
		"cardId": cardID,
		"action": string(action),
	})
	if err := e.persist(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

// TopDeckVerdict is the attacker's decision for one enemy's revealed
// deck-top card.
type TopDeckVerdict struct {
	EnemyID string `json:"enemyId"`
	CardID  string `json:"cardId"`
	Destroy bool   `json:"destroy"`
}

// ResolveTopDeckSelection settles a pending enemy top-deck reveal: each
// revealed card is either destroyed or buried back in its owner's deck.
func (e *Engine) ResolveTopDeckSelection(ctx context.Context, gameID, playerID string, verdicts []TopDeckVerdict) (*State, error) {
	unlock := e.locks.lock(gameID)
	defer unlock()

	s, err := e.loadActiveGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if s.Pending == nil || s.Pending.Kind != PendingTopDeckReveal {
		return nil, statef("no top deck reveal is pending")
	}
	pending := s.Pending.TopDeck
	if pending.PlayerID != playerID {
		return nil, validationf("top deck reveal belongs to player %s", pending.PlayerID)
	}

	revealed := make(map[string]string, len(pending.Revealed))
	for _, r := range pending.Revealed {
		revealed[r.EnemyID] = r.Card.InstanceID
	}
	for _, v := range verdicts {
		if revealed[v.EnemyID] != v.CardID {
			return nil, validationf("card %s was not revealed for enemy %s", v.CardID, v.EnemyID)
		}
		enemy := s.PlayerByID(v.EnemyID)
		if enemy == nil || len(enemy.Deck) == 0 || enemy.Deck[0].InstanceID != v.CardID {
			return nil, statef("revealed card %s is no longer on top of enemy %s's deck", v.CardID, v.EnemyID)
		}
		card := enemy.Deck[0]
		enemy.Deck = enemy.Deck[1:]
		if v.Destroy {
			s.DestroyedCards = append(s.DestroyedCards, card)
		} else {
			enemy.Deck = append(enemy.Deck, card)
			catalog.Shuffle(e.rng, enemy.Deck)
		}
	}
	s.clearPending()

	e.recordMove(ctx, s, playerID, "resolveTopDeckSelection", map[string]any{
		"verdicts": len(verdicts),
	})
	if err := e.persist(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

// ResolveDestroyCardSelection settles a pending destroy-from-hand prompt.
// An empty card id declines the destroy.
func (e *Engine) ResolveDestroyCardSelection(ctx context.Context, gameID, playerID, cardID string) (*State, error) {
	unlock := e.locks.lock(gameID)
	defer unlock()

	s, err := e.loadActiveGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if s.Pending == nil || s.Pending.Kind != PendingDestroyFromHand {
		return nil, statef("no destroy selection is pending")
	}
	if s.Pending.Destroy.PlayerID != playerID {
		return nil, validationf("destroy selection belongs to player %s", s.Pending.Destroy.PlayerID)
	}
	player := s.PlayerByID(playerID)

	if cardID != "" {
		card := player.RemoveFromHand(cardID)
		if card == nil {
			return nil, notFoundf("card %s is not in player %s's hand", cardID, playerID)
		}
		s.DestroyedCards = append(s.DestroyedCards, card)
	}
	s.clearPending()

	e.recordMove(ctx, s, playerID, "resolveDestroyCardSelection", map[string]any{
		"cardId": cardID,
	})
	if err := e.persist(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

// ResolveEnemySelection settles a pending enemy choice, currently only
// the dead-wizard handoff after a kill-weakest attack.
func (e *Engine) ResolveEnemySelection(ctx context.Context, gameID, playerID, enemyID string) (*State, error) {
	unlock := e.locks.lock(gameID)
	defer unlock()

	s, err := e.loadActiveGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if s.Pending == nil || s.Pending.Kind != PendingEnemySelection {
		return nil, statef("no enemy selection is pending")
	}
	pending := s.Pending.EnemySelect
	if pending.PlayerID != playerID {
		return nil, validationf("enemy selection belongs to player %s", pending.PlayerID)
	}
	if !containsString(pending.Targets, enemyID) {
		return nil, validationf("enemy %s is not a valid target", enemyID)
	}
	player := s.PlayerByID(playerID)
	enemy := s.PlayerByID(enemyID)
	if enemy == nil {
		return nil, notFoundf("enemy %s not in game", enemyID)
	}

	switch pending.Action {
	case EnemyActionGiveDeadWizard:
		if player.DeadWizardCount > 0 {
			player.DeadWizardCount--
			enemy.DeadWizardCount++
			if n := len(player.DeadWizards); n > 0 {
				trophy := player.DeadWizards[n-1]
				player.DeadWizards = player.DeadWizards[:n-1]
				enemy.DeadWizards = append(enemy.DeadWizards, trophy)
			}
		}
	default:
		return nil, statef("unknown enemy selection action %q", pending.Action)
	}
	s.clearPending()

	e.recordMove(ctx, s, playerID, "resolveEnemySelection", map[string]any{
		"enemyId": enemyID,
		"action":  pending.Action,
	})
	if err := e.persist(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}
