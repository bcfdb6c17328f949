package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDestroyCardFromDiscard(t *testing.T) {
	h := newActiveHarness(t, 2, Options{})
	player := h.current()
	buried := h.card("Sluggish Stick")
	h.mutate(func(s *State) {
		s.PlayerByID(player).Discard = []*Card{buried}
	})

	_, err := h.engine.DestroyCardFromDiscard(h.ctx, h.gameID, player, buried.InstanceID)
	require.NoError(t, err)

	s := h.state()
	assert.Empty(t, s.PlayerByID(player).Discard)
	assert.NotNil(t, FindCard(s.DestroyedCards, buried.InstanceID))

	_, err = h.engine.DestroyCardFromDiscard(h.ctx, h.gameID, player, buried.InstanceID)
	assert.True(t, IsNotFound(err))
}

func TestHandleTopDeckSelection(t *testing.T) {
	h := newActiveHarness(t, 2, Options{})
	player := h.current()

	top := h.state().PlayerByID(player).Deck[0]
	_, err := h.engine.HandleTopDeckSelection(h.ctx, h.gameID, player, top.InstanceID, TopDeckTake)
	require.NoError(t, err)
	p := h.playerState(player)
	assert.NotNil(t, FindCard(p.Hand, top.InstanceID))
	assert.Len(t, p.Deck, 4)

	top = p.Deck[0]
	_, err = h.engine.HandleTopDeckSelection(h.ctx, h.gameID, player, top.InstanceID, TopDeckRemove)
	require.NoError(t, err)
	s := h.state()
	assert.NotNil(t, FindCard(s.DestroyedCards, top.InstanceID))
	assert.Len(t, s.PlayerByID(player).Deck, 3)

	top = s.PlayerByID(player).Deck[0]
	_, err = h.engine.HandleTopDeckSelection(h.ctx, h.gameID, player, top.InstanceID, TopDeckReturn)
	require.NoError(t, err)
	p = h.playerState(player)
	assert.Len(t, p.Deck, 3, "returned cards stay in the deck")
	assert.NotNil(t, FindCard(p.Deck, top.InstanceID))
}

func TestHandleTopDeckSelectionRequiresTheTopCard(t *testing.T) {
	h := newActiveHarness(t, 2, Options{})
	player := h.current()
	notTop := h.state().PlayerByID(player).Deck[1]

	_, err := h.engine.HandleTopDeckSelection(h.ctx, h.gameID, player, notTop.InstanceID, TopDeckTake)
	assert.True(t, IsStateMachine(err))
}

func TestResolveTopDeckSelectionAfterRevealAttack(t *testing.T) {
	h := newActiveHarness(t, 2, Options{})
	attacker := h.current()
	defender := h.enemyOf(attacker)
	attack := h.giveHand(attacker, "Hollow Choir")[0]
	_, err := h.engine.PlayCard(h.ctx, h.gameID, attacker, attack.InstanceID, defender)
	require.NoError(t, err)
	_, err = h.engine.ResolveDefense(h.ctx, h.gameID, defender, "")
	require.NoError(t, err)

	s := h.state()
	require.NotNil(t, s.Pending)
	require.Equal(t, PendingTopDeckReveal, s.Pending.Kind)
	require.Len(t, s.Pending.TopDeck.Revealed, 1)
	revealed := s.Pending.TopDeck.Revealed[0]
	assert.Equal(t, defender, revealed.EnemyID)

	_, err = h.engine.ResolveTopDeckSelection(h.ctx, h.gameID, attacker, []TopDeckVerdict{
		{EnemyID: defender, CardID: revealed.Card.InstanceID, Destroy: true},
	})
	require.NoError(t, err)

	s = h.state()
	assert.Nil(t, s.Pending)
	assert.NotNil(t, FindCard(s.DestroyedCards, revealed.Card.InstanceID))
	assert.Len(t, s.PlayerByID(defender).Deck, 4)
}

func TestResolveTopDeckSelectionRejectsForeignVerdicts(t *testing.T) {
	h := newActiveHarness(t, 2, Options{})
	attacker := h.current()
	defender := h.enemyOf(attacker)
	attack := h.giveHand(attacker, "Hollow Choir")[0]
	_, err := h.engine.PlayCard(h.ctx, h.gameID, attacker, attack.InstanceID, defender)
	require.NoError(t, err)
	_, err = h.engine.ResolveDefense(h.ctx, h.gameID, defender, "")
	require.NoError(t, err)

	_, err = h.engine.ResolveTopDeckSelection(h.ctx, h.gameID, attacker, []TopDeckVerdict{
		{EnemyID: defender, CardID: "not-the-revealed-card", Destroy: true},
	})
	assert.True(t, IsValidation(err))

	_, err = h.engine.ResolveTopDeckSelection(h.ctx, h.gameID, defender, nil)
	assert.True(t, IsValidation(err), "only the attacker settles the reveal")
}

func TestResolveDestroyCardSelection(t *testing.T) {
	h := newActiveHarness(t, 2, Options{})
	attacker := h.current()
	defender := h.enemyOf(attacker)
	cards := h.giveHand(attacker, "Legend Eater", "Twins")
	attack, doomed := cards[0], cards[1]
	_, err := h.engine.PlayCard(h.ctx, h.gameID, attacker, attack.InstanceID, defender)
	require.NoError(t, err)
	_, err = h.engine.ResolveDefense(h.ctx, h.gameID, defender, "")
	require.NoError(t, err)

	s := h.state()
	require.NotNil(t, s.Pending)
	require.Equal(t, PendingDestroyFromHand, s.Pending.Kind)
	assert.Equal(t, attacker, s.Pending.Destroy.PlayerID,
		"with no legends to punish, the attacker may trim their own hand")
	prompts := h.notifier.named(EventDestroyCardRequired)
	require.NotEmpty(t, prompts)
	assert.Equal(t, attacker, prompts[len(prompts)-1].PlayerID)

	_, err = h.engine.ResolveDestroyCardSelection(h.ctx, h.gameID, attacker, doomed.InstanceID)
	require.NoError(t, err)

	s = h.state()
	assert.Nil(t, s.Pending)
	assert.NotNil(t, FindCard(s.DestroyedCards, doomed.InstanceID))
	assert.Nil(t, FindCard(s.PlayerByID(attacker).Hand, doomed.InstanceID))
}

func TestResolveDestroyCardSelectionCanDecline(t *testing.T) {
	h := newActiveHarness(t, 2, Options{})
	attacker := h.current()
	defender := h.enemyOf(attacker)
	cards := h.giveHand(attacker, "Legend Eater", "Twins")
	attack, kept := cards[0], cards[1]
	_, err := h.engine.PlayCard(h.ctx, h.gameID, attacker, attack.InstanceID, defender)
	require.NoError(t, err)
	_, err = h.engine.ResolveDefense(h.ctx, h.gameID, defender, "")
	require.NoError(t, err)

	_, err = h.engine.ResolveDestroyCardSelection(h.ctx, h.gameID, attacker, "")
	require.NoError(t, err)

	s := h.state()
	assert.Nil(t, s.Pending)
	assert.NotNil(t, FindCard(s.PlayerByID(attacker).Hand, kept.InstanceID))
	assert.Empty(t, s.DestroyedCards)
}

func TestResolveEnemySelectionHandsOverATrophy(t *testing.T) {
	h := newActiveHarness(t, 2, Options{})
	attacker := h.current()
	defender := h.enemyOf(attacker)
	h.mutate(func(s *State) {
		s.PlayerByID(defender).Health = 4
	})
	attack := h.giveHand(attacker, "Pit Hyena")[0]
	_, err := h.engine.PlayCard(h.ctx, h.gameID, attacker, attack.InstanceID, defender)
	require.NoError(t, err)
	_, err = h.engine.ResolveDefense(h.ctx, h.gameID, defender, "")
	require.NoError(t, err)

	s := h.state()
	require.NotNil(t, s.Pending)
	require.Equal(t, PendingEnemySelection, s.Pending.Kind)
	assert.Equal(t, attacker, s.Pending.EnemySelect.PlayerID)
	assert.Equal(t, 2, s.PlayerByID(attacker).DeadWizardCount, "the kill awards two tokens")
	assert.Equal(t, 8-1-2, s.DeadWizardTokens)

	_, err = h.engine.ResolveEnemySelection(h.ctx, h.gameID, attacker, defender)
	require.NoError(t, err)

	s = h.state()
	assert.Nil(t, s.Pending)
	a, d := s.PlayerByID(attacker), s.PlayerByID(defender)
	assert.Equal(t, 1, a.DeadWizardCount, "one token handed over")
	assert.Len(t, a.DeadWizards, 1)
	assert.Equal(t, 2, d.DeadWizardCount, "the kill plus the handed-over token")
	assert.Len(t, d.DeadWizards, 2)
	assert.Equal(t, attacker, s.Prize.OwnerID)
}

func TestResolveEnemySelectionValidatesTarget(t *testing.T) {
	h := newActiveHarness(t, 3, Options{})
	attacker := h.current()
	h.mutate(func(s *State) {
		require.NoError(t, s.beginPending(&PendingInteraction{
			Kind: PendingEnemySelection,
			EnemySelect: &EnemySelectState{
				PlayerID: attacker,
				Action:   EnemyActionGiveDeadWizard,
				Targets:  s.EnemyIDs(s.PlayerByID(attacker)),
			},
		}))
	})

	_, err := h.engine.ResolveEnemySelection(h.ctx, h.gameID, attacker, attacker)
	assert.True(t, IsValidation(err))
}
