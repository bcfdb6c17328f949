package game

import (
	"math/rand"

	"go.uber.org/zap"

	"github.com/krutagidon/krutagidon-server-go/internal/catalog"
)

// core bundles the collaborators every engine needs: event fan-out,
// logging, the shared RNG, and the card catalog. A single core instance
// is shared by the combat, property, and turn engines.
type core struct {
	notifier Notifier
	logger   *zap.Logger
	rng      *rand.Rand
	catalog  *catalog.Catalog
	strict   bool
}

// drawCards moves up to n cards from the top of the deck into the hand,
// reshuffling the discard pile under the deck when it runs dry. Drawing
// from an empty deck with an empty discard pile draws nothing.
func (c *core) drawCards(s *State, p *Player, n int) {
	for i := 0; i < n; i++ {
		if len(p.Deck) == 0 {
			if len(p.Discard) == 0 {
				return
			}
			p.Deck = p.Discard
			p.Discard = nil
			catalog.Shuffle(c.rng, p.Deck)
		}
		card := p.Deck[0]
		p.Deck = p.Deck[1:]
		p.Hand = append(p.Hand, card)
		c.cardAcquired(s, p, card)
	}
}

// cardAcquired fires permanents that attack whenever their owner gains a
// card.
func (c *core) cardAcquired(s *State, p *Player, gained *Card) {
	if !p.PlayAttackOnAcquire {
		return
	}
	for _, permanent := range p.PlayArea {
		if permanent.IsPermanent && permanent.HasProperty(catalog.PropAttackOnEveryAcquire) {
			c.notifier.ToPlayer(s.ID, p.ID, EventAttackRequired, AcquireAttackPrompt{
				CardID:  permanent.InstanceID,
				Damage:  gained.Cost,
				Targets: s.EnemyIDs(p),
			})
			return
		}
	}
}

// giveSluggishStick buries a stick from the supply in the target's deck.
func (c *core) giveSluggishStick(s *State, target *Player) {
	if len(s.SluggishSticksDeck) == 0 {
		return
	}
	stick := s.SluggishSticksDeck[0]
	s.SluggishSticksDeck = s.SluggishSticksDeck[1:]
	target.Deck = append(target.Deck, stick)
	catalog.Shuffle(c.rng, target.Deck)
	c.logger.Debug("sluggish stick dealt",
		zap.String("game_id", s.ID),
		zap.String("player_id", target.ID))
}

// gainHealth heals up to the cap.
func (c *core) gainHealth(p *Player, amount int) {
	p.Health += amount
	if p.Health > p.MaxHealth {
		p.Health = p.MaxHealth
	}
}

// discardFirstFromHand moves the first card of the hand to the discard
// pile, returning it, or nil for an empty hand.
func (c *core) discardFirstFromHand(p *Player) *Card {
	if len(p.Hand) == 0 {
		return nil
	}
	card := p.Hand[0]
	p.Hand = p.Hand[1:]
	p.Discard = append(p.Discard, card)
	return card
}

// unhandledEffect is the soft-fail path for card properties without a
// registered handler: log and continue, or error out in strict mode.
func (c *core) unhandledEffect(s *State, kind, id string) error {
	if c.strict {
		return statef("no handler registered for %s property %q", kind, id)
	}
	c.logger.Warn("skipping card property without handler",
		zap.String("game_id", s.ID),
		zap.String("property_kind", kind),
		zap.String("property_id", id))
	return nil
}
