package game

import (
	"go.uber.org/zap"

	"github.com/krutagidon/krutagidon-server-go/internal/catalog"
)

// TurnEngine owns marketplace replenishment, the turn boundary effects of
// permanents, and legendary group attacks.
type TurnEngine struct {
	*core
	combat *CombatEngine
	props  *PropertyResolver
}

func newTurnEngine(c *core, combat *CombatEngine, props *PropertyResolver) *TurnEngine {
	return &TurnEngine{core: c, combat: combat, props: props}
}

// RefillMarketplace tops the visible row back up to five cards from the
// reserve. Stray-magic cards never land in the row: each one surfacing
// fires its shared effect (unless effects are suppressed, as during
// setup) and goes to the chaos discard, and the refill keeps drawing.
func (t *TurnEngine) RefillMarketplace(s *State, withEffects bool) {
	for len(s.Marketplace) < MarketplaceSize && len(s.MarketplaceReserve) > 0 {
		card := s.MarketplaceReserve[0]
		s.MarketplaceReserve = s.MarketplaceReserve[1:]
		if card.Type == catalog.TypeStrayMagic {
			if withEffects {
				t.applyStrayMagicEffect(s, card)
			}
			s.ChaosDiscard = append(s.ChaosDiscard, card)
			continue
		}
		s.Marketplace = append(s.Marketplace, card)
	}
}

func (t *TurnEngine) applyStrayMagicEffect(s *State, card *Card) {
	if card.HasProperty(catalog.PropEveryPlayerDrawsOneCard) {
		for _, p := range s.Players {
			t.drawCards(s, p, 1)
		}
	}
	t.logger.Info("stray magic surfaced",
		zap.String("game_id", s.ID),
		zap.String("card", card.Name))
}

// ApplyStartOfTurnEffects resets the per-turn flags and grants power from
// permanents that produce it each turn.
func (t *TurnEngine) ApplyStartOfTurnEffects(s *State, p *Player) {
	p.FirstWizardPlayed = false
	p.FirstCreaturePlayed = false
	p.FirstTreasurePlayed = false
	p.FirstSpellPlayed = false

	for _, card := range p.PlayArea {
		if card.IsPermanent && card.StartOfTurnPower > 0 {
			p.Power += card.StartOfTurnPower
		}
	}
}

// ApplyEndOfTurnEffects runs permanents that draw at end of turn. It runs
// before the standard hand refill so the drawn cards join the new hand.
func (t *TurnEngine) ApplyEndOfTurnEffects(s *State, p *Player) {
	for _, card := range p.PlayArea {
		if card.IsPermanent && card.EndOfTurnDraw > 0 {
			t.drawCards(s, p, card.EndOfTurnDraw)
		}
	}
}

// ApplyLegendaryGroupAttack hits every wizard when a legend is first
// revealed. A player holding a defense card escapes by playing it (its
// defense effects apply); everyone else takes the damage, and survivors
// of a lethal hit are handled as deaths with no killer. Each wizard hit
// also picks up a sluggish stick into their discard pile.
func (t *TurnEngine) ApplyLegendaryGroupAttack(s *State, legend *Card) {
	for _, p := range s.Players {
		defense := firstDefenseCard(p.Hand)
		if defense != nil {
			p.RemoveFromHand(defense.InstanceID)
			p.PlayArea = append(p.PlayArea, defense)
			if err := t.props.ApplyDefenseProperties(s, p, nil, defense); err != nil {
				t.logger.Warn("legendary defense effect failed",
					zap.String("game_id", s.ID),
					zap.String("player_id", p.ID),
					zap.Error(err))
			}
			continue
		}
		p.Health -= legend.GroupAttackDamage
		if p.Health < 1 {
			t.combat.HandlePlayerDeath(s, p, nil)
		}
		if len(s.SluggishSticksDeck) > 0 {
			stick := s.SluggishSticksDeck[0]
			s.SluggishSticksDeck = s.SluggishSticksDeck[1:]
			p.Discard = append(p.Discard, stick)
		}
	}
	t.logger.Info("legendary group attack resolved",
		zap.String("game_id", s.ID),
		zap.String("legend", legend.Name),
		zap.Int("damage", legend.GroupAttackDamage))
}

func firstDefenseCard(hand []*Card) *Card {
	for _, c := range hand {
		if c.IsDefense {
			return c
		}
	}
	return nil
}
