package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTurnFixture(t *testing.T, playerCount int) (*combatFixture, *TurnEngine) {
	t.Helper()
	f := newCombatFixture(t, playerCount)
	return f, newTurnEngine(f.core, f.combat, f.props)
}

func TestRefillMarketplaceTopsUpToFive(t *testing.T) {
	f, turns := newTurnFixture(t, 2)
	s := f.state
	s.Marketplace = []*Card{f.card(t, "Twins"), f.card(t, "Sweet Kitty")}
	for i := 0; i < 6; i++ {
		s.MarketplaceReserve = append(s.MarketplaceReserve, f.card(t, "Cursed Wallet"))
	}

	turns.RefillMarketplace(s, true)

	assert.Len(t, s.Marketplace, MarketplaceSize)
	assert.Len(t, s.MarketplaceReserve, 3)
}

func TestRefillMarketplaceStopsWhenReserveRunsDry(t *testing.T) {
	f, turns := newTurnFixture(t, 2)
	s := f.state
	s.MarketplaceReserve = []*Card{f.card(t, "Twins")}

	turns.RefillMarketplace(s, true)

	assert.Len(t, s.Marketplace, 1)
	assert.Empty(t, s.MarketplaceReserve)
}

func TestRefillMarketplaceInterceptsStrayMagic(t *testing.T) {
	f, turns := newTurnFixture(t, 3)
	s := f.state
	for _, p := range s.Players {
		p.Deck = []*Card{f.card(t, "Sign")}
	}
	stray := f.card(t, "Stray Magic")
	s.MarketplaceReserve = []*Card{stray, f.card(t, "Twins"), f.card(t, "Sweet Kitty")}

	turns.RefillMarketplace(s, true)

	assert.Len(t, s.Marketplace, 2, "stray magic never reaches the row")
	require.Len(t, s.ChaosDiscard, 1)
	assert.Equal(t, stray.InstanceID, s.ChaosDiscard[0].InstanceID)
	for _, p := range s.Players {
		assert.Len(t, p.Hand, 1, "every player draws when it surfaces")
	}
}

func TestRefillMarketplaceCanSuppressStrayEffects(t *testing.T) {
	f, turns := newTurnFixture(t, 2)
	s := f.state
	for _, p := range s.Players {
		p.Deck = []*Card{f.card(t, "Sign")}
	}
	s.MarketplaceReserve = []*Card{f.card(t, "Stray Magic")}

	turns.RefillMarketplace(s, false)

	assert.Len(t, s.ChaosDiscard, 1)
	for _, p := range s.Players {
		assert.Empty(t, p.Hand, "setup refills fire no shared draws")
	}
}

func TestStartOfTurnPermanentPower(t *testing.T) {
	f, turns := newTurnFixture(t, 2)
	p := f.state.Players[0]
	p.PlayArea = []*Card{f.card(t, "Gloating Spire")}
	p.FirstWizardPlayed = true
	p.FirstSpellPlayed = true

	turns.ApplyStartOfTurnEffects(f.state, p)

	assert.Equal(t, 1, p.Power)
	assert.False(t, p.FirstWizardPlayed)
	assert.False(t, p.FirstSpellPlayed)
}

func TestEndOfTurnPermanentDraw(t *testing.T) {
	f, turns := newTurnFixture(t, 2)
	p := f.state.Players[0]
	p.PlayArea = []*Card{f.card(t, "Night Library")}
	p.Deck = []*Card{f.card(t, "Sign"), f.card(t, "Wand")}

	turns.ApplyEndOfTurnEffects(f.state, p)

	assert.Len(t, p.Hand, 1)
}

func TestLegendaryGroupAttackHitsUndefendedWizards(t *testing.T) {
	f, turns := newTurnFixture(t, 2)
	s := f.state
	s.SluggishSticksDeck = []*Card{f.card(t, "Sluggish Stick"), f.card(t, "Sluggish Stick")}
	legend := f.card(t, "Baron Bloodboil")

	turns.ApplyLegendaryGroupAttack(s, legend)

	for _, p := range s.Players {
		assert.Equal(t, StartingHealth-legend.GroupAttackDamage, p.Health)
		assert.Len(t, p.Discard, 1, "each victim picks up a stick")
	}
	assert.Empty(t, s.SluggishSticksDeck)
}

func TestLegendaryGroupAttackDefenseCardEscapes(t *testing.T) {
	f, turns := newTurnFixture(t, 2)
	s := f.state
	s.SluggishSticksDeck = []*Card{f.card(t, "Sluggish Stick")}
	defender, victim := s.Players[0], s.Players[1]
	shield := f.card(t, "Ugorilla")
	defender.Hand = []*Card{f.card(t, "Sign"), shield}
	legend := f.card(t, "Baron Bloodboil")

	turns.ApplyLegendaryGroupAttack(s, legend)

	assert.Equal(t, StartingHealth, defender.Health, "playing the defense card dodges the hit")
	assert.NotNil(t, FindCard(defender.PlayArea, shield.InstanceID))
	assert.Empty(t, defender.Discard, "no stick for the escapee")
	assert.Equal(t, StartingHealth-legend.GroupAttackDamage, victim.Health)
	assert.Len(t, victim.Discard, 1)
}

func TestLegendaryGroupAttackLethalHitIsADeath(t *testing.T) {
	f, turns := newTurnFixture(t, 2)
	s := f.state
	victim := s.Players[1]
	victim.Health = 3

	turns.ApplyLegendaryGroupAttack(s, f.card(t, "Baron Bloodboil"))

	assert.Equal(t, StartingHealth, victim.Health, "death resets health")
	assert.Equal(t, 1, victim.DeadWizardCount)
	assert.Equal(t, 7, s.DeadWizardTokens)
	assert.Equal(t, "", s.Prize.OwnerID, "an unowned attack moves no prize")
}
