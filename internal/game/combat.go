package game

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/krutagidon/krutagidon-server-go/internal/catalog"
)

// CombatEngine resolves damage, deaths, and attack-card effects. Attack
// effects dispatch through a handler registry keyed by attack property
// id.
type CombatEngine struct {
	*core
}

func newCombatEngine(c *core) *CombatEngine {
	return &CombatEngine{core: c}
}

// DealDamage applies damage from attacker (nil for unowned sources such
// as legendary group attacks) to target, doubling it when the attacker
// controls a damage-doubling permanent. It reports whether the target
// died; death handling resets the target, so callers must capture this
// before inspecting health.
func (e *CombatEngine) DealDamage(s *State, target, attacker *Player, amount int) (died bool) {
	if amount <= 0 {
		return false
	}
	if attacker != nil && hasDoubleDamage(attacker) {
		amount *= 2
	}
	target.Health -= amount
	e.logger.Debug("damage dealt",
		zap.String("game_id", s.ID),
		zap.String("target_id", target.ID),
		zap.Int("amount", amount))
	if target.Health < 1 {
		e.HandlePlayerDeath(s, target, attacker)
		return true
	}
	return false
}

func hasDoubleDamage(p *Player) bool {
	for _, card := range p.PlayArea {
		if card.IsPermanent && card.HasProperty(catalog.PropDoubleAttackDamage) {
			return true
		}
	}
	return false
}

// HandlePlayerDeath resets the dead wizard to full health, awards a dead
// wizard token while the supply lasts, and moves the Krutagidon Prize to
// the killer. A killer's damage-doubling permanent is spent by the kill.
func (e *CombatEngine) HandlePlayerDeath(s *State, dead, killer *Player) {
	dead.Health = StartingHealth
	dead.DeadWizardCount++
	if s.DeadWizardTokens > 0 {
		s.DeadWizardTokens--
		dead.DeadWizards = append(dead.DeadWizards, DeadWizard{
			ID:   dead.DeadWizardCount,
			Name: fmt.Sprintf("Dead Wizard %d", dead.DeadWizardCount),
		})
	}
	if killer != nil && killer.ID != dead.ID {
		s.Prize.OwnerID = killer.ID
		for _, card := range killer.PlayArea {
			if card.IsPermanent && card.HasProperty(catalog.PropDoubleAttackDamage) {
				killer.RemoveFromPlayArea(card.InstanceID)
				killer.Discard = append(killer.Discard, card)
				break
			}
		}
	}
	e.logger.Info("wizard died",
		zap.String("game_id", s.ID),
		zap.String("player_id", dead.ID),
		zap.Int("dead_wizard_count", dead.DeadWizardCount))
}

type attackHandler func(e *CombatEngine, s *State, attacker, opponent *Player, card *Card) error

var attackHandlers = map[catalog.AttackPropertyID]attackHandler{
	catalog.AttackDealOneDamage:   dealFlatDamage(1),
	catalog.AttackDealThreeDamage: dealFlatDamage(3),
	catalog.AttackDealFiveDamage:  dealFlatDamage(5),
	catalog.AttackDealTenDamage:   dealFlatDamage(10),

	catalog.AttackDealSevenDamageToEachEnemy:       attackSevenToEachEnemy,
	catalog.AttackDealFiveDamageToNeighbors:        dealNeighborDamage(5),
	catalog.AttackDealSixDamageToNeighbors:         dealNeighborDamage(6),
	catalog.AttackDealFiveDamageToWeakerEnemies:    attackFiveToWeakerEnemies,
	catalog.AttackTwoDamagePerDefenseCardInDiscard: attackTwoPerDefenseInDiscard,
	catalog.AttackThreeDamagePerPermanentToAll:     attackThreePerPermanentToAll,

	catalog.AttackEnemyGetsSluggishStick:      attackGiveSluggishStick,
	catalog.AttackEveryEnemyGetsSluggishStick: attackGiveSluggishStickToAll,
	catalog.AttackEveryEnemyDiscardsOneCard:   attackEveryEnemyDiscards,
	catalog.AttackEveryEnemyRevealsTopCard:    attackEveryEnemyRevealsTop,
	catalog.AttackEnemyDiscardsCostlyCard:     attackDiscardCostlyCard,
	catalog.AttackRevealTopCardDamageAsCost:   attackTopCardCostAsDamage,
	catalog.AttackRevealHandDamageAsMostCostly: attackMostCostlyHandAsDamage,
	catalog.AttackGiveZeroCostCardToEnemy:     attackGiveZeroCostCard,

	catalog.AttackTwoDamagePerSluggishStickOrDraw: attackTwoPerOwnStickOrDraw,
	catalog.AttackFourDamagePerLegendOrDestroy:    attackFourPerLegendOrDestroy,
	catalog.AttackKillWeakestAndAwardDeadWizard:   attackKillWeakest,
	catalog.AttackDamageAsLastBoughtCardCost:      attackLastBoughtCost,
}

// ApplyAttackProperties resolves every attack property on the card in
// declaration order. opponent may be nil only for properties that pick
// their own targets; single-target properties require it.
func (e *CombatEngine) ApplyAttackProperties(s *State, attacker, opponent *Player, card *Card) error {
	for _, id := range card.AttackProperties {
		handler, ok := attackHandlers[id]
		if !ok {
			if err := e.unhandledEffect(s, "attack", string(id)); err != nil {
				return err
			}
			continue
		}
		if err := handler(e, s, attacker, opponent, card); err != nil {
			return err
		}
	}
	return nil
}

func dealFlatDamage(amount int) attackHandler {
	return func(e *CombatEngine, s *State, attacker, opponent *Player, card *Card) error {
		if opponent == nil {
			return validationf("attack %q requires a target", card.Name)
		}
		e.DealDamage(s, opponent, attacker, amount)
		return nil
	}
}

func dealNeighborDamage(amount int) attackHandler {
	return func(e *CombatEngine, s *State, attacker, _ *Player, _ *Card) error {
		for _, neighbor := range s.Neighbors(attacker) {
			e.DealDamage(s, neighbor, attacker, amount)
		}
		return nil
	}
}

func attackSevenToEachEnemy(e *CombatEngine, s *State, attacker, _ *Player, _ *Card) error {
	for _, enemy := range s.Enemies(attacker) {
		e.DealDamage(s, enemy, attacker, 7)
	}
	return nil
}

func attackFiveToWeakerEnemies(e *CombatEngine, s *State, attacker, _ *Player, _ *Card) error {
	for _, enemy := range s.Enemies(attacker) {
		if enemy.Health < attacker.Health {
			e.DealDamage(s, enemy, attacker, 5)
		}
	}
	return nil
}

func attackTwoPerDefenseInDiscard(e *CombatEngine, s *State, attacker, opponent *Player, card *Card) error {
	if opponent == nil {
		return validationf("attack %q requires a target", card.Name)
	}
	count := 0
	for _, c := range opponent.Discard {
		if c.IsDefense {
			count++
		}
	}
	e.DealDamage(s, opponent, attacker, 2*count)
	return nil
}

func attackThreePerPermanentToAll(e *CombatEngine, s *State, attacker, _ *Player, _ *Card) error {
	count := 0
	for _, c := range attacker.PlayArea {
		if c.IsPermanent {
			count++
		}
	}
	if count == 0 {
		return nil
	}
	for _, enemy := range s.Enemies(attacker) {
		e.DealDamage(s, enemy, attacker, 3*count)
	}
	return nil
}

func attackGiveSluggishStick(e *CombatEngine, s *State, _, opponent *Player, card *Card) error {
	if opponent == nil {
		return validationf("attack %q requires a target", card.Name)
	}
	e.giveSluggishStick(s, opponent)
	return nil
}

func attackGiveSluggishStickToAll(e *CombatEngine, s *State, attacker, _ *Player, _ *Card) error {
	for _, enemy := range s.Enemies(attacker) {
		e.giveSluggishStick(s, enemy)
	}
	return nil
}

func attackEveryEnemyDiscards(e *CombatEngine, s *State, attacker, _ *Player, _ *Card) error {
	for _, enemy := range s.Enemies(attacker) {
		e.discardFirstFromHand(enemy)
	}
	return nil
}

// attackEveryEnemyRevealsTop turns every enemy's deck top face up and hands
// the attacker a pending verdict over each revealed card.
func attackEveryEnemyRevealsTop(e *CombatEngine, s *State, attacker, _ *Player, _ *Card) error {
	var revealed []RevealedTopCard
	for _, enemy := range s.Enemies(attacker) {
		if len(enemy.Deck) == 0 {
			continue
		}
		revealed = append(revealed, RevealedTopCard{EnemyID: enemy.ID, Card: enemy.Deck[0]})
	}
	if len(revealed) == 0 {
		return nil
	}
	if err := s.beginPending(&PendingInteraction{
		Kind:    PendingTopDeckReveal,
		TopDeck: &TopDeckState{PlayerID: attacker.ID, Revealed: revealed},
	}); err != nil {
		return err
	}
	e.notifier.ToPlayer(s.ID, attacker.ID, EventTopDeckReveal, revealed)
	return nil
}

func attackDiscardCostlyCard(e *CombatEngine, s *State, _, opponent *Player, card *Card) error {
	if opponent == nil {
		return validationf("attack %q requires a target", card.Name)
	}
	for _, c := range opponent.Hand {
		if c.Cost > 5 {
			opponent.RemoveFromHand(c.InstanceID)
			opponent.Discard = append(opponent.Discard, c)
			return nil
		}
	}
	return nil
}

func attackTopCardCostAsDamage(e *CombatEngine, s *State, attacker, opponent *Player, card *Card) error {
	if opponent == nil {
		return validationf("attack %q requires a target", card.Name)
	}
	if len(opponent.Deck) == 0 {
		return nil
	}
	top := opponent.Deck[0]
	e.DealDamage(s, opponent, attacker, top.Cost)
	e.notifier.ToPlayer(s.ID, opponent.ID, EventTopCardRevealed, top)
	return nil
}

func attackMostCostlyHandAsDamage(e *CombatEngine, s *State, attacker, opponent *Player, card *Card) error {
	if opponent == nil {
		return validationf("attack %q requires a target", card.Name)
	}
	most := 0
	for _, c := range opponent.Hand {
		if c.Cost > most {
			most = c.Cost
		}
	}
	e.DealDamage(s, opponent, attacker, most)
	e.notifier.ToPlayer(s.ID, opponent.ID, EventHandRevealed, opponent.Hand)
	return nil
}

// attackGiveZeroCostCard moves the attacker's first zero-cost card (hand
// first, then discard) into the opponent's hand.
func attackGiveZeroCostCard(e *CombatEngine, s *State, attacker, opponent *Player, card *Card) error {
	if opponent == nil {
		return validationf("attack %q requires a target", card.Name)
	}
	for _, c := range attacker.Hand {
		if c.Cost == 0 && c.InstanceID != card.InstanceID {
			attacker.RemoveFromHand(c.InstanceID)
			opponent.Hand = append(opponent.Hand, c)
			return nil
		}
	}
	for _, c := range attacker.Discard {
		if c.Cost == 0 {
			attacker.RemoveFromDiscard(c.InstanceID)
			opponent.Hand = append(opponent.Hand, c)
			return nil
		}
	}
	return nil
}

// attackTwoPerOwnStickOrDraw hits every enemy for two per sluggish stick
// the attacker controls or has discarded; with none, the attacker draws
// instead.
func attackTwoPerOwnStickOrDraw(e *CombatEngine, s *State, attacker, _ *Player, _ *Card) error {
	sticks := 0
	for _, zone := range [][]*Card{attacker.PlayArea, attacker.Discard} {
		for _, c := range zone {
			if c.Type == catalog.TypeSluggishStick {
				sticks++
			}
		}
	}
	if sticks == 0 {
		e.drawCards(s, attacker, 1)
		return nil
	}
	for _, enemy := range s.Enemies(attacker) {
		e.DealDamage(s, enemy, attacker, 2*sticks)
	}
	return nil
}

// attackFourPerLegendOrDestroy hits every enemy for four per legend in
// that enemy's discard; when no damage lands at all, the attacker may
// destroy a card from their own hand instead.
func attackFourPerLegendOrDestroy(e *CombatEngine, s *State, attacker, _ *Player, _ *Card) error {
	total := 0
	for _, enemy := range s.Enemies(attacker) {
		legends := 0
		for _, c := range enemy.Discard {
			if c.Type == catalog.TypeLegend {
				legends++
			}
		}
		total += 4 * legends
		e.DealDamage(s, enemy, attacker, 4*legends)
	}
	if total > 0 || len(attacker.Hand) == 0 {
		return nil
	}
	if err := s.beginPending(&PendingInteraction{
		Kind:    PendingDestroyFromHand,
		Destroy: &DestroyState{PlayerID: attacker.ID},
	}); err != nil {
		return err
	}
	handIDs := make([]string, len(attacker.Hand))
	for i, c := range attacker.Hand {
		handIDs[i] = c.InstanceID
	}
	e.notifier.ToPlayer(s.ID, attacker.ID, EventDestroyCardRequired, SelectionPrompt{
		Action:  "destroyCardFromHand",
		Options: handIDs,
	})
	return nil
}

// attackKillWeakest hits the weakest enemy for four. A kill nets the
// attacker two dead wizard tokens from the supply, one of which they must
// hand to an enemy of their choice.
func attackKillWeakest(e *CombatEngine, s *State, attacker, _ *Player, card *Card) error {
	enemies := s.Enemies(attacker)
	if len(enemies) == 0 {
		return nil
	}
	weakest := enemies[0]
	for _, enemy := range enemies[1:] {
		if enemy.Health < weakest.Health {
			weakest = enemy
		}
	}
	died := e.DealDamage(s, weakest, attacker, 4)
	if !died || s.DeadWizardTokens < 2 {
		return nil
	}
	s.DeadWizardTokens -= 2
	for i := 0; i < 2; i++ {
		attacker.DeadWizardCount++
		attacker.DeadWizards = append(attacker.DeadWizards, DeadWizard{
			ID:   attacker.DeadWizardCount,
			Name: fmt.Sprintf("Dead Wizard %d", attacker.DeadWizardCount),
		})
	}
	targets := s.EnemyIDs(attacker)
	if len(targets) == 0 {
		return nil
	}
	if err := s.beginPending(&PendingInteraction{
		Kind: PendingEnemySelection,
		EnemySelect: &EnemySelectState{
			PlayerID: attacker.ID,
			Action:   EnemyActionGiveDeadWizard,
			Targets:  targets,
		},
	}); err != nil {
		return err
	}
	e.notifier.ToPlayer(s.ID, attacker.ID, EventSelectEnemyRequired, SelectionPrompt{
		Action:  EnemyActionGiveDeadWizard,
		Options: targets,
	})
	return nil
}

func attackLastBoughtCost(e *CombatEngine, s *State, attacker, opponent *Player, card *Card) error {
	if opponent == nil {
		return validationf("attack %q requires a target", card.Name)
	}
	if s.LastBoughtCardCost < 0 {
		return nil
	}
	e.DealDamage(s, opponent, attacker, s.LastBoughtCardCost)
	return nil
}
