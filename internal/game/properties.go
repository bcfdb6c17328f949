package game

import (
	"github.com/krutagidon/krutagidon-server-go/internal/catalog"

	"go.uber.org/zap"
)

// PropertyResolver applies non-combat card properties through a handler
// registry keyed by property id, plus the place triggers and defense
// effects that hang off the same card data.
type PropertyResolver struct {
	*core
	combat *CombatEngine
}

func newPropertyResolver(c *core, combat *CombatEngine) *PropertyResolver {
	return &PropertyResolver{core: c, combat: combat}
}

// effectContext carries the optional inputs a property handler may need.
type effectContext struct {
	card       *Card
	opponentID string
}

type propertyHandler func(r *PropertyResolver, s *State, p *Player, ctx *effectContext) error

var propertyHandlers = map[catalog.PropertyID]propertyHandler{
	catalog.PropAddOnePower:   addPower(1),
	catalog.PropAddTwoPower:   addPower(2),
	catalog.PropAddThreePower: addPower(3),
	catalog.PropAddFourPower:  addPower(4),
	catalog.PropAddFivePower:  addPower(5),

	catalog.PropDrawOneCard:    drawCards(1),
	catalog.PropDrawTwoCards:   drawCards(2),
	catalog.PropDrawThreeCards: drawCards(3),
	catalog.PropDrawFourCards:  drawCards(4),

	catalog.PropGainTwoHealth:                 gainHealth(2),
	catalog.PropGainThreeHealth:               gainHealth(3),
	catalog.PropGainOneHealthForEachPermanent: propHealthPerPermanent,

	catalog.PropAddOnePowerForEachDeadWizard:    propPowerPerDeadWizard,
	catalog.PropRemoveOnePowerForEachDeadWizard: propPowerLossPerDeadWizard,
	catalog.PropDeadWizardDrawOrPower:           propDeadWizardDrawOrPower,

	catalog.PropDiscardAllCards:                propDiscardAllCards,
	catalog.PropPutNextBoughtCardOnTopOfDeck:   propPutNextBoughtOnTop,
	catalog.PropYouAndSelectedEnemyDrawOneCard: propYouAndEnemyDraw,

	catalog.PropCanDestroyCardFromDiscard:    propOfferDestroyFromDiscard,
	catalog.PropCheckTopDeckCardTakeOrRemove: propOfferTopDeckCard,
	catalog.PropCheckTopCardOfDeck:           propOfferTopDeckCard,
	catalog.PropDrawTopCardOrReturnToDeck:    propOfferTopDeckCard,

	catalog.PropTakeWizardFromDiscardOrAddTwoPower:   takeFromDiscardOrPower(catalog.TypeWizard),
	catalog.PropTakeCreatureFromDiscardOrAddTwoPower: takeFromDiscardOrPower(catalog.TypeCreature),
	catalog.PropTakeSpellFromDiscardOrAddTwoPower:    takeFromDiscardOrPower(catalog.TypeSpell),
	catalog.PropTakeTreasureFromDiscardOrAddTwoPower: takeFromDiscardOrPower(catalog.TypeTreasure),

	catalog.PropEveryPlayerDrawsOneCard: propEveryPlayerDraws,

	// Markers consumed elsewhere: the play itself changes nothing.
	catalog.PropAttackOnEveryAcquire:      propEnableAcquireAttacks,
	catalog.PropDoubleAttackDamage:        noOpProperty,
	catalog.PropFirstWizardDrawOneCard:    noOpProperty,
	catalog.PropFirstCreatureDrawOneCard:  noOpProperty,
	catalog.PropFirstTreasureDrawOneCard:  noOpProperty,
	catalog.PropFirstSpellDrawOneCard:     noOpProperty,
}

// placeTriggers maps a card type to the tracking flag and the permanent
// property that rewards the first play of that type each turn.
var placeTriggers = []struct {
	cardType catalog.CardType
	marker   catalog.PropertyID
	flag     func(p *Player) *bool
}{
	{catalog.TypeWizard, catalog.PropFirstWizardDrawOneCard, func(p *Player) *bool { return &p.FirstWizardPlayed }},
	{catalog.TypeCreature, catalog.PropFirstCreatureDrawOneCard, func(p *Player) *bool { return &p.FirstCreaturePlayed }},
	{catalog.TypeTreasure, catalog.PropFirstTreasureDrawOneCard, func(p *Player) *bool { return &p.FirstTreasurePlayed }},
	{catalog.TypeSpell, catalog.PropFirstSpellDrawOneCard, func(p *Player) *bool { return &p.FirstSpellPlayed }},
}

// ApplyCardProperties resolves a played card: its listed properties (with
// the first-card amplifier doubling the rest when it fires), its attack
// properties when an opponent is declared, its defense properties when it
// is itself a defense card, and any place triggers its type sets off.
func (r *PropertyResolver) ApplyCardProperties(s *State, p *Player, card *Card, opponentID string) error {
	wasFirst := len(p.PlayArea) == 0 ||
		(len(p.PlayArea) == 1 && p.PlayArea[0].InstanceID == card.InstanceID)

	ctx := &effectContext{card: card, opponentID: opponentID}
	for _, id := range card.Properties {
		if id == catalog.PropIfFirstCardToPlay {
			if !wasFirst {
				continue
			}
			// The amplifier repeats every sibling property once more.
			for _, sibling := range card.Properties {
				if sibling == catalog.PropIfFirstCardToPlay {
					continue
				}
				if err := r.applyProperty(s, p, sibling, ctx); err != nil {
					return err
				}
			}
			continue
		}
		if err := r.applyProperty(s, p, id, ctx); err != nil {
			return err
		}
	}

	if card.IsAttack && opponentID != "" {
		opponent := s.PlayerByID(opponentID)
		if opponent == nil {
			return notFoundf("opponent %s not in game", opponentID)
		}
		if err := r.combat.ApplyAttackProperties(s, p, opponent, card); err != nil {
			return err
		}
	}

	if card.IsDefense {
		if err := r.ApplyDefenseProperties(s, p, nil, card); err != nil {
			return err
		}
	}

	r.applyPlaceTriggers(s, p, card)
	return nil
}

func (r *PropertyResolver) applyProperty(s *State, p *Player, id catalog.PropertyID, ctx *effectContext) error {
	handler, ok := propertyHandlers[id]
	if !ok {
		return r.unhandledEffect(s, "play", string(id))
	}
	return handler(r, s, p, ctx)
}

// applyPlaceTriggers draws a card when the played card is the first of a
// type for which the player controls the matching place permanent. Each
// trigger fires at most once per turn.
func (r *PropertyResolver) applyPlaceTriggers(s *State, p *Player, card *Card) {
	for _, trigger := range placeTriggers {
		if card.Type != trigger.cardType {
			continue
		}
		flag := trigger.flag(p)
		if *flag {
			continue
		}
		*flag = true
		for _, permanent := range p.PlayArea {
			if permanent.IsPermanent && permanent.HasProperty(trigger.marker) && permanent.InstanceID != card.InstanceID {
				r.drawCards(s, p, 1)
				break
			}
		}
	}
}

type defenseHandler func(r *PropertyResolver, s *State, defender, attacker *Player, card *Card) error

var defenseHandlers = map[catalog.DefensePropertyID]defenseHandler{
	catalog.DefenseGainThreeHealth: func(r *PropertyResolver, _ *State, defender, _ *Player, _ *Card) error {
		r.gainHealth(defender, 3)
		return nil
	},
	catalog.DefenseDrawOneCard: func(r *PropertyResolver, s *State, defender, _ *Player, _ *Card) error {
		r.drawCards(s, defender, 1)
		return nil
	},
	catalog.DefenseDealFiveDamageToAttacker: func(r *PropertyResolver, s *State, defender, attacker *Player, _ *Card) error {
		if attacker == nil {
			return nil
		}
		r.combat.DealDamage(s, attacker, defender, 5)
		return nil
	},
}

// ApplyDefenseProperties resolves a defense card's effects for its owner.
// attacker is nil when the card is played proactively or against a
// legendary group attack.
func (r *PropertyResolver) ApplyDefenseProperties(s *State, defender, attacker *Player, card *Card) error {
	for _, id := range card.DefenseProperties {
		handler, ok := defenseHandlers[id]
		if !ok {
			if err := r.unhandledEffect(s, "defense", string(id)); err != nil {
				return err
			}
			continue
		}
		if err := handler(r, s, defender, attacker, card); err != nil {
			return err
		}
	}
	return nil
}

func addPower(n int) propertyHandler {
	return func(_ *PropertyResolver, _ *State, p *Player, _ *effectContext) error {
		p.Power += n
		return nil
	}
}

func drawCards(n int) propertyHandler {
	return func(r *PropertyResolver, s *State, p *Player, _ *effectContext) error {
		r.core.drawCards(s, p, n)
		return nil
	}
}

func gainHealth(n int) propertyHandler {
	return func(r *PropertyResolver, _ *State, p *Player, _ *effectContext) error {
		r.core.gainHealth(p, n)
		return nil
	}
}

func propHealthPerPermanent(r *PropertyResolver, _ *State, p *Player, _ *effectContext) error {
	count := 0
	for _, c := range p.PlayArea {
		if c.IsPermanent {
			count++
		}
	}
	r.core.gainHealth(p, count)
	return nil
}

func propPowerPerDeadWizard(_ *PropertyResolver, _ *State, p *Player, _ *effectContext) error {
	p.Power += p.DeadWizardCount
	return nil
}

func propPowerLossPerDeadWizard(_ *PropertyResolver, _ *State, p *Player, _ *effectContext) error {
	p.Power -= p.DeadWizardCount
	if p.Power < 0 {
		p.Power = 0
	}
	return nil
}

func propDeadWizardDrawOrPower(r *PropertyResolver, s *State, p *Player, _ *effectContext) error {
	if p.DeadWizardCount > 3 {
		r.core.drawCards(s, p, 3)
	} else {
		p.Power += 2
	}
	return nil
}

func propDiscardAllCards(_ *PropertyResolver, _ *State, p *Player, ctx *effectContext) error {
	kept := p.Hand[:0]
	for _, c := range p.Hand {
		if c.InstanceID == ctx.card.InstanceID {
			kept = append(kept, c)
			continue
		}
		p.Discard = append(p.Discard, c)
	}
	p.Hand = kept
	return nil
}

func propPutNextBoughtOnTop(_ *PropertyResolver, _ *State, p *Player, _ *effectContext) error {
	p.PutNextCardOnTopOfDeck = true
	return nil
}

func propEnableAcquireAttacks(_ *PropertyResolver, _ *State, p *Player, _ *effectContext) error {
	p.PlayAttackOnAcquire = true
	return nil
}

func propYouAndEnemyDraw(r *PropertyResolver, s *State, p *Player, ctx *effectContext) error {
	r.core.drawCards(s, p, 1)
	if ctx.opponentID == "" {
		return validationf("card %q requires a selected enemy", ctx.card.Name)
	}
	enemy := s.PlayerByID(ctx.opponentID)
	if enemy == nil {
		return notFoundf("opponent %s not in game", ctx.opponentID)
	}
	r.core.drawCards(s, enemy, 1)
	return nil
}

// propOfferDestroyFromDiscard invites the player to trim their discard
// pile; the follow-up arrives as a separate command validated against the
// pile, so no pending state is recorded.
func propOfferDestroyFromDiscard(r *PropertyResolver, s *State, p *Player, ctx *effectContext) error {
	if len(p.Discard) == 0 {
		return nil
	}
	r.notifier.ToPlayer(s.ID, p.ID, EventDestroyCardRequired, SelectionPrompt{
		Action: "destroyCardFromDiscard",
		CardID: ctx.card.InstanceID,
	})
	return nil
}

// propOfferTopDeckCard reveals the player's own deck top and lets them
// choose its fate via the top-deck command. Validation against the actual
// deck top makes the prompt safe to lose.
func propOfferTopDeckCard(r *PropertyResolver, s *State, p *Player, ctx *effectContext) error {
	if len(p.Deck) == 0 && len(p.Discard) == 0 {
		return nil
	}
	if len(p.Deck) == 0 {
		p.Deck = p.Discard
		p.Discard = nil
		catalog.Shuffle(r.rng, p.Deck)
	}
	r.notifier.ToPlayer(s.ID, p.ID, EventSelectionRequired, SelectionPrompt{
		Action: "checkTopDeckCard",
		CardID: p.Deck[0].InstanceID,
	})
	return nil
}

func takeFromDiscardOrPower(cardType catalog.CardType) propertyHandler {
	return func(r *PropertyResolver, s *State, p *Player, _ *effectContext) error {
		for _, c := range p.Discard {
			if c.Type == cardType {
				p.RemoveFromDiscard(c.InstanceID)
				p.Hand = append(p.Hand, c)
				r.logger.Debug("card recovered from discard",
					zap.String("game_id", s.ID),
					zap.String("player_id", p.ID),
					zap.String("card", c.Name))
				return nil
			}
		}
		p.Power += 2
		return nil
	}
}

func propEveryPlayerDraws(r *PropertyResolver, s *State, _ *Player, _ *effectContext) error {
	for _, player := range s.Players {
		r.core.drawCards(s, player, 1)
	}
	return nil
}

func noOpProperty(_ *PropertyResolver, _ *State, _ *Player, _ *effectContext) error {
	return nil
}
