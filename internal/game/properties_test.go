package game

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/krutagidon/krutagidon-server-go/internal/catalog"
)

func TestPropertyPowerAndDraw(t *testing.T) {
	f := newCombatFixture(t, 2)
	p := f.state.Players[0]
	p.Deck = []*Card{f.card(t, "Sign"), f.card(t, "Fizzle")}
	card := f.card(t, "Sunfaced One")
	p.Hand = []*Card{card}

	require.NoError(t, f.props.ApplyCardProperties(f.state, p, card, ""))

	assert.Equal(t, 2, p.Power)
	assert.Len(t, p.Hand, 2, "one card drawn into hand")
	assert.Len(t, p.Deck, 1)
}

func TestPropertyDrawReshufflesDiscard(t *testing.T) {
	f := newCombatFixture(t, 2)
	p := f.state.Players[0]
	p.Deck = nil
	p.Discard = []*Card{f.card(t, "Sign"), f.card(t, "Wand"), f.card(t, "Fizzle")}
	card := f.card(t, "Twins")

	require.NoError(t, f.props.ApplyCardProperties(f.state, p, card, ""))

	assert.Len(t, p.Hand, 2)
	assert.Len(t, p.Deck, 1)
	assert.Empty(t, p.Discard, "discard reshuffled under the deck")
}

func TestPropertyDrawFromEmptyDeckAndDiscardIsNoop(t *testing.T) {
	f := newCombatFixture(t, 2)
	p := f.state.Players[0]
	card := f.card(t, "Twins")

	require.NoError(t, f.props.ApplyCardProperties(f.state, p, card, ""))

	assert.Empty(t, p.Hand)
}

func TestPropertyHealClampsAtMaxHealth(t *testing.T) {
	f := newCombatFixture(t, 2)
	p := f.state.Players[0]
	p.Health = 24
	card := f.card(t, "Second Wind")

	require.NoError(t, f.props.ApplyCardProperties(f.state, p, card, ""))

	assert.Equal(t, MaxHealth, p.Health)
}

func TestPropertyPowerPerDeadWizard(t *testing.T) {
	f := newCombatFixture(t, 2)
	p := f.state.Players[0]
	p.DeadWizardCount = 3
	card := f.card(t, "Bone Collector")

	require.NoError(t, f.props.ApplyCardProperties(f.state, p, card, ""))

	assert.Equal(t, 3, p.Power)
}

func TestPropertyPowerLossPerDeadWizardFloorsAtZero(t *testing.T) {
	f := newCombatFixture(t, 2)
	p := f.state.Players[0]
	p.DeadWizardCount = 7
	card := f.card(t, "Showoff")

	require.NoError(t, f.props.ApplyCardProperties(f.state, p, card, ""))

	assert.Zero(t, p.Power, "+5 then -7 clamps to zero")
}

func TestPropertyDeadWizardDrawOrPower(t *testing.T) {
	f := newCombatFixture(t, 2)
	p := f.state.Players[0]
	card := f.card(t, "Grimoire of Gluttony")

	require.NoError(t, f.props.ApplyCardProperties(f.state, p, card, ""))
	assert.Equal(t, 2, p.Power, "three or fewer dead wizards grant power")

	p.Power = 0
	p.DeadWizardCount = 4
	p.Deck = []*Card{f.card(t, "Sign"), f.card(t, "Sign"), f.card(t, "Sign")}
	require.NoError(t, f.props.ApplyCardProperties(f.state, p, card, ""))
	assert.Zero(t, p.Power)
	assert.Len(t, p.Hand, 3, "over three dead wizards draw instead")
}

func TestPropertyDiscardAllKeepsThePlayedCard(t *testing.T) {
	f := newCombatFixture(t, 2)
	p := f.state.Players[0]
	card := f.card(t, "Wheel of Trouble")
	keepers := []*Card{f.card(t, "Sign"), f.card(t, "Wand")}
	p.Hand = append([]*Card{card}, keepers...)
	p.Deck = []*Card{f.card(t, "Fizzle"), f.card(t, "Fizzle"), f.card(t, "Fizzle")}

	require.NoError(t, f.props.ApplyCardProperties(f.state, p, card, ""))

	assert.Nil(t, FindCard(p.Discard, card.InstanceID), "played card survives its own discard-all")
	for _, k := range keepers {
		assert.NotNil(t, FindCard(p.Discard, k.InstanceID))
	}
	// Discard-all then draw-three, in declaration order.
	assert.Len(t, p.Hand, 4)
}

func TestPropertyFirstCardAmplifierDoublesSiblings(t *testing.T) {
	f := newCombatFixture(t, 2)
	p := f.state.Players[0]
	card := f.card(t, "Mana Leech")
	p.Hand = []*Card{card}

	require.NoError(t, f.props.ApplyCardProperties(f.state, p, card, ""))
	assert.Equal(t, 4, p.Power, "+2 applied twice for the first card of the turn")

	// A second copy played onto an occupied play area gets no bonus.
	p.PlayArea = append(p.PlayArea, card)
	p.Power = 0
	second := f.card(t, "Mana Leech")
	require.NoError(t, f.props.ApplyCardProperties(f.state, p, second, ""))
	assert.Equal(t, 2, p.Power)
}

func TestPropertyAmplifierCountsTheCardItselfAsFirst(t *testing.T) {
	f := newCombatFixture(t, 2)
	p := f.state.Players[0]
	card := f.card(t, "Mana Leech")
	// Attack-style flows move the card to the play area before resolution.
	p.PlayArea = []*Card{card}

	require.NoError(t, f.props.ApplyCardProperties(f.state, p, card, ""))

	assert.Equal(t, 4, p.Power)
}

func TestPlaceTriggerDrawsOncePerTurn(t *testing.T) {
	f := newCombatFixture(t, 2)
	p := f.state.Players[0]
	p.PlayArea = []*Card{f.card(t, "Skullflame Mountain")}
	p.Deck = []*Card{f.card(t, "Sign"), f.card(t, "Sign")}

	wizard := f.card(t, "Sweet Kitty")
	require.NoError(t, f.props.ApplyCardProperties(f.state, p, wizard, ""))
	assert.Len(t, p.Hand, 1, "first wizard of the turn draws")
	assert.True(t, p.FirstWizardPlayed)

	require.NoError(t, f.props.ApplyCardProperties(f.state, p, f.card(t, "Sweet Kitty"), ""))
	assert.Len(t, p.Hand, 1, "second wizard does not")
}

func TestPlaceTriggerFlagSetsEvenWithoutThePlace(t *testing.T) {
	f := newCombatFixture(t, 2)
	p := f.state.Players[0]

	require.NoError(t, f.props.ApplyCardProperties(f.state, p, f.card(t, "Sweet Kitty"), ""))

	assert.True(t, p.FirstWizardPlayed)
	assert.Empty(t, p.Hand)
}

func TestPropertyTakeWizardFromDiscardOrPower(t *testing.T) {
	f := newCombatFixture(t, 2)
	p := f.state.Players[0]
	buried := f.card(t, "Sweet Kitty")
	p.Discard = []*Card{f.card(t, "Sign"), buried}
	card := f.card(t, "Whisperer")

	require.NoError(t, f.props.ApplyCardProperties(f.state, p, card, ""))

	assert.NotNil(t, FindCard(p.Hand, buried.InstanceID))
	assert.Equal(t, 2, p.Power, "only the flat power, not the fallback")

	p.Power = 0
	p.Hand = nil
	require.NoError(t, f.props.ApplyCardProperties(f.state, p, f.card(t, "Whisperer"), ""))
	assert.Equal(t, 4, p.Power, "no wizard in discard falls back to power")
}

func TestPropertyYouAndEnemyDraw(t *testing.T) {
	f := newCombatFixture(t, 2)
	p, enemy := f.state.Players[0], f.state.Players[1]
	p.Deck = []*Card{f.card(t, "Sign")}
	enemy.Deck = []*Card{f.card(t, "Sign")}
	card := f.card(t, "Echo of the Bazaar")

	require.NoError(t, f.props.ApplyCardProperties(f.state, p, card, enemy.ID))

	assert.Len(t, p.Hand, 1)
	assert.Len(t, enemy.Hand, 1)
}

func TestPropertyYouAndEnemyDrawRequiresEnemy(t *testing.T) {
	f := newCombatFixture(t, 2)
	p := f.state.Players[0]
	card := f.card(t, "Echo of the Bazaar")

	err := f.props.ApplyCardProperties(f.state, p, card, "")
	assert.True(t, IsValidation(err))
}

func TestPropertyCursedWalletArmsDeckTopPurchase(t *testing.T) {
	f := newCombatFixture(t, 2)
	p := f.state.Players[0]

	require.NoError(t, f.props.ApplyCardProperties(f.state, p, f.card(t, "Cursed Wallet"), ""))

	assert.True(t, p.PutNextCardOnTopOfDeck)
}

func TestUnhandledPropertySoftFailsByDefault(t *testing.T) {
	f := newCombatFixture(t, 2)
	p := f.state.Players[0]
	card := f.card(t, "Necromancy")

	require.NoError(t, f.props.ApplyCardProperties(f.state, p, card, ""))

	assert.Equal(t, 3, p.Power, "the handled sibling property still applies")
}

func TestUnhandledPropertyErrorsInStrictMode(t *testing.T) {
	notifier := &fakeNotifier{}
	c := &core{
		notifier: notifier,
		logger:   zaptest.NewLogger(t),
		rng:      rand.New(rand.NewSource(7)),
		catalog:  catalog.New(),
		strict:   true,
	}
	props := newPropertyResolver(c, newCombatEngine(c))
	s := &State{ID: "game-1", Players: []*Player{{ID: "p1", Health: 20, MaxHealth: 25}}}
	def, ok := c.catalog.ByName("Necromancy")
	require.True(t, ok)

	err := props.ApplyCardProperties(s, s.Players[0], newCard(def), "")
	assert.True(t, IsStateMachine(err))
}

func TestDefensePropertiesApplyToDefender(t *testing.T) {
	f := newCombatFixture(t, 2)
	defender, attacker := f.state.Players[1], f.state.Players[0]
	defender.Deck = []*Card{f.card(t, "Sign")}
	card := f.card(t, "Unholy Grail")

	require.NoError(t, f.props.ApplyDefenseProperties(f.state, defender, attacker, card))

	assert.Len(t, defender.Hand, 1, "defense draw applies")
	assert.Equal(t, StartingHealth-5, attacker.Health, "grail strikes back")
}

func TestDefenseRetaliationSkipsUnownedAttacks(t *testing.T) {
	f := newCombatFixture(t, 2)
	defender := f.state.Players[1]
	card := f.card(t, "Unholy Grail")

	require.NoError(t, f.props.ApplyDefenseProperties(f.state, defender, nil, card))

	assert.Equal(t, StartingHealth, f.state.Players[0].Health)
}
