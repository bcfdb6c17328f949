package game

import (
	"context"

	"go.uber.org/zap"

	"github.com/krutagidon/krutagidon-server-go/internal/catalog"
)

// PlayCard plays a card from the current player's hand. Non-attack cards
// resolve immediately. Attack cards with a declared opponent move to the
// play area and open a defense prompt; without one, a target prompt opens
// first. No card may be played while any interaction is pending.
func (e *Engine) PlayCard(ctx context.Context, gameID, playerID, cardID, opponentID string) (*State, error) {
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
	if s.Pending != nil {
		if s.Pending.Kind == PendingDefense && s.Pending.Defense.AttackerID == playerID {
			return nil, validationf("attack is awaiting the opponent's defense")
		}
		return nil, statef("interaction %s is pending", s.Pending.Kind)
	}

	card := FindCard(player.Hand, cardID)
	if card == nil {
		return nil, notFoundf("card %s is not in player %s's hand", cardID, playerID)
	}
	if !card.IsAttack && opponentID != "" && !cardNeedsEnemy(card) {
		return nil, validationf("card %q does not target an opponent", card.Name)
	}

	if card.IsAttack {
		if opponentID == "" {
			targets := s.EnemyIDs(player)
			if len(targets) == 0 {
				return nil, validationf("no enemies available to attack")
			}
			if err := s.beginPending(&PendingInteraction{
				Kind:         PendingAttackTarget,
				AttackTarget: &AttackTargetState{PlayerID: playerID, CardID: cardID},
			}); err != nil {
				return nil, err
			}
			e.notifier.ToPlayer(s.ID, playerID, EventAttackTargetRequired, AttackTargetPrompt{
				CardID:  cardID,
				Targets: targets,
			})
			e.notifier.Broadcast(s.ID, EventAttackTargetNotification, AttackNotice{
				AttackerID: playerID,
				CardID:     cardID,
			})
			if err := e.persist(ctx, s); err != nil {
				return nil, err
			}
			return s, nil
		}
		return e.declareAttack(ctx, s, player, card, opponentID)
	}

	if err := e.applyCardEffect(ctx, s, player, card, opponentID, ""); err != nil {
		return nil, err
	}
	return s, nil
}

// cardNeedsEnemy reports whether a non-attack card consumes a selected
// enemy through one of its play properties.
func cardNeedsEnemy(card *Card) bool {
	return card.HasProperty(catalog.PropYouAndSelectedEnemyDrawOneCard)
}

// declareAttack moves the card to the play area and hands the opponent a
// defense prompt. The attack's effects wait for ResolveDefense.
func (e *Engine) declareAttack(ctx context.Context, s *State, attacker *Player, card *Card, opponentID string) (*State, error) {
	opponent := s.PlayerByID(opponentID)
	if opponent == nil {
		return nil, notFoundf("opponent %s not in game", opponentID)
	}
	if opponent.ID == attacker.ID {
		return nil, validationf("cannot attack yourself")
	}

	attacker.RemoveFromHand(card.InstanceID)
	attacker.PlayArea = append(attacker.PlayArea, card)

	if err := s.beginPending(&PendingInteraction{
		Kind: PendingDefense,
		Defense: &DefenseState{
			AttackerID: attacker.ID,
			OpponentID: opponentID,
			CardID:     card.InstanceID,
			Damage:     card.Damage,
		},
	}); err != nil {
		return nil, err
	}

	e.notifier.ToPlayer(s.ID, opponentID, EventDefenseRequired, DefensePrompt{
		AttackerID: attacker.ID,
		CardID:     card.InstanceID,
		Damage:     card.Damage,
	})
	e.notifier.Broadcast(s.ID, EventAttackNotification, AttackNotice{
		AttackerID: attacker.ID,
		OpponentID: opponentID,
		CardID:     card.InstanceID,
	})
	e.logger.Info("attack declared",
		zap.String("game_id", s.ID),
		zap.String("attacker_id", attacker.ID),
		zap.String("opponent_id", opponentID),
		zap.String("card", card.Name))

	if err := e.persist(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

// ResolveAttackTarget answers a target prompt: the chosen opponent turns
// the prompt into a declared attack.
func (e *Engine) ResolveAttackTarget(ctx context.Context, gameID, playerID, opponentID string) (*State, error) {
	unlock := e.locks.lock(gameID)
	defer unlock()

	s, err := e.loadActiveGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if s.Pending == nil || s.Pending.Kind != PendingAttackTarget {
		return nil, statef("no attack target selection is pending")
	}
	pending := s.Pending.AttackTarget
	if pending.PlayerID != playerID {
		return nil, validationf("target selection belongs to player %s", pending.PlayerID)
	}
	player := s.PlayerByID(playerID)
	card := FindCard(player.Hand, pending.CardID)
	if card == nil {
		return nil, statef("card %s left the hand while targeting", pending.CardID)
	}
	s.clearPending()
	return e.declareAttack(ctx, s, player, card, opponentID)
}

// CancelAttackTargetSelection abandons a target prompt; the card stays in
// hand.
func (e *Engine) CancelAttackTargetSelection(ctx context.Context, gameID, playerID string) (*State, error) {
	unlock := e.locks.lock(gameID)
	defer unlock()

	s, err := e.loadActiveGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if s.Pending == nil || s.Pending.Kind != PendingAttackTarget {
		return nil, statef("no attack target selection is pending")
	}
	if s.Pending.AttackTarget.PlayerID != playerID {
		return nil, validationf("target selection belongs to player %s", s.Pending.AttackTarget.PlayerID)
	}
	s.clearPending()
	if err := e.persist(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

// ResolveDefense answers a defense prompt. With a defense card the
// defender plays it for its effects before the attack lands; either way
// the attack resolves. Playing a defense card does not prevent the
// attack's damage.
func (e *Engine) ResolveDefense(ctx context.Context, gameID, playerID, defenseCardID string) (*State, error) {
	unlock := e.locks.lock(gameID)
	defer unlock()

	s, err := e.loadActiveGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if s.Pending == nil || s.Pending.Kind != PendingDefense {
		return nil, statef("no defense is pending")
	}
	pending := s.Pending.Defense
	if pending.OpponentID != playerID {
		return nil, validationf("defense prompt belongs to player %s", pending.OpponentID)
	}
	attacker := s.PlayerByID(pending.AttackerID)
	card := FindCard(attacker.PlayArea, pending.CardID)
	if card == nil {
		return nil, statef("attack card %s is no longer in play", pending.CardID)
	}

	if err := e.applyCardEffect(ctx, s, attacker, card, pending.OpponentID, defenseCardID); err != nil {
		return nil, err
	}
	return s, nil
}

// applyCardEffect is the single resolution path for a played card: card
// and attack properties, then the opponent's defense card if one was
// committed, then the bookkeeping tail of move log, end check, persist,
// and room notification.
func (e *Engine) applyCardEffect(ctx context.Context, s *State, player *Player, card *Card, opponentID, defenseCardID string) error {
	s.clearPending()

	if removed := player.RemoveFromHand(card.InstanceID); removed != nil {
		player.PlayArea = append(player.PlayArea, card)
	}

	if err := e.props.ApplyCardProperties(s, player, card, opponentID); err != nil {
		return err
	}

	if defenseCardID != "" {
		opponent := s.PlayerByID(opponentID)
		if opponent == nil {
			return notFoundf("opponent %s not in game", opponentID)
		}
		defense := FindCard(opponent.Hand, defenseCardID)
		if defense == nil {
			return notFoundf("defense card %s is not in player %s's hand", defenseCardID, opponentID)
		}
		if !defense.IsDefense {
			return validationf("card %q is not a defense card", defense.Name)
		}
		opponent.RemoveFromHand(defense.InstanceID)
		opponent.PlayArea = append(opponent.PlayArea, defense)
		if err := e.props.ApplyDefenseProperties(s, opponent, player, defense); err != nil {
			return err
		}
	}

	e.recordMove(ctx, s, player.ID, "playCard", map[string]any{
		"cardId":     card.InstanceID,
		"cardName":   card.Name,
		"opponentId": opponentID,
	})
	e.notifier.Broadcast(s.ID, EventMoveMade, MoveNotice{
		PlayerID: player.ID,
		Kind:     "playCard",
		CardID:   card.InstanceID,
	})

	e.checkGameEnd(ctx, s)
	return e.persist(ctx, s)
}
