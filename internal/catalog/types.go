package catalog

// CardType is the gameplay category a card definition belongs to.
type CardType string

const (
	TypeSeed          CardType = "seed"
	TypeFamiliar      CardType = "familiar"
	TypeLegend        CardType = "legend"
	TypeTreasure      CardType = "treasure"
	TypeWizard        CardType = "wizard"
	TypeCreature      CardType = "creature"
	TypeSpell         CardType = "spell"
	TypePlace         CardType = "place"
	TypeChaos         CardType = "chaos"
	TypeStrayMagic    CardType = "strayMagic"
	TypeSluggishStick CardType = "sluggishStick"
)

// PropertyID identifies a non-combat card property. Properties are resolved
// by the game engine's handler registry; ids without a registered handler
// are treated as no-ops.
type PropertyID string

const (
	PropAddOnePower   PropertyID = "addOnePower"
	PropAddTwoPower   PropertyID = "addTwoPower"
	PropAddThreePower PropertyID = "addThreePower"
	PropAddFourPower  PropertyID = "addFourPower"
	PropAddFivePower  PropertyID = "addFivePower"

	PropDrawOneCard    PropertyID = "drawOneCard"
	PropDrawTwoCards   PropertyID = "drawTwoCards"
	PropDrawThreeCards PropertyID = "drawThreeCards"
	PropDrawFourCards  PropertyID = "drawFourCards"

	PropGainTwoHealth                PropertyID = "gainTwoHealth"
	PropGainThreeHealth              PropertyID = "gainThreeHealth"
	PropGainOneHealthForEachPermanent PropertyID = "gainOneHealthForEachPermanent"

	PropAddOnePowerForEachDeadWizard    PropertyID = "addOnePowerForEachDeadWizard"
	PropRemoveOnePowerForEachDeadWizard PropertyID = "removeOnePowerForEachDeadWizard"

	// More than three dead wizards: draw three cards, otherwise gain two power.
	PropDeadWizardDrawOrPower PropertyID = "ifOverThreeDeadWizardsDrawThreeElseAddTwoPower"

	PropDiscardAllCards            PropertyID = "discardAllCards"
	PropPutNextBoughtCardOnTopOfDeck PropertyID = "putNextBoughtCardOnTopOfDeck"
	PropYouAndSelectedEnemyDrawOneCard PropertyID = "youAndSelectedEnemyDrawOneCard"

	PropCanDestroyCardFromDiscard PropertyID = "canDestroyCardFromDiscard"
	PropCheckTopDeckCardTakeOrRemove PropertyID = "checkTopDeckCardTakeOrRemove"
	PropCheckTopCardOfDeck           PropertyID = "checkTopCardOfDeck"
	PropDrawTopCardOrReturnToDeck    PropertyID = "drawTopCardOrReturnToDeck"

	PropTakeWizardFromDiscardOrAddTwoPower   PropertyID = "takeWizardFromDiscardOrAddTwoPower"
	PropTakeCreatureFromDiscardOrAddTwoPower PropertyID = "takeCreatureFromDiscardOrAddTwoPower"
	PropTakeSpellFromDiscardOrAddTwoPower    PropertyID = "takeSpellFromDiscardOrAddTwoPower"
	PropTakeTreasureFromDiscardOrAddTwoPower PropertyID = "takeTreasureFromDiscardOrAddTwoPower"

	PropAttackOnEveryAcquire PropertyID = "eachTimeYouGetOrBuyCardThisTurnPlayAttack"
	PropIfFirstCardToPlay    PropertyID = "ifItFirstCardToPlay"

	// Place triggers. The trigger logic itself lives in the engine; the
	// property marks the permanent granting the draw.
	PropFirstWizardDrawOneCard   PropertyID = "ifHaveFirstWizardDrawOneCard"
	PropFirstCreatureDrawOneCard PropertyID = "ifHaveFirstCreatureDrawOneCard"
	PropFirstTreasureDrawOneCard PropertyID = "ifHaveFirstTreasureDrawOneCard"
	PropFirstSpellDrawOneCard    PropertyID = "ifHaveFirstSpellDrawOneCard"

	// Passive markers consumed by the combat engine.
	PropDoubleAttackDamage PropertyID = "doubleAttackDamage"

	// Known to the catalog but intentionally without handlers, matching the
	// reference rules implementation.
	PropDoubleHealingEffects PropertyID = "doubleHealingEffects"
	PropNecromancy           PropertyID = "necromancy"
	PropCthulhu              PropertyID = "cthulhu"
	PropCardLikeDeadWizard   PropertyID = "cardCountsAsDeadWizard"
	PropExpandTopDeckCardGainLivesAsCost PropertyID = "expandTopDeckCardAndGainLivesAsItCost"

	// Shared stray-magic effect applied when a stray-magic card surfaces
	// during marketplace refill.
	PropEveryPlayerDrawsOneCard PropertyID = "everyPlayerDrawsOneCard"
)

// AttackPropertyID identifies an attack effect resolved by the combat engine.
type AttackPropertyID string

const (
	AttackDealOneDamage   AttackPropertyID = "dealOneDamageToSelectedEnemy"
	AttackDealThreeDamage AttackPropertyID = "dealThreeDamageToSelectedEnemy"
	AttackDealFiveDamage  AttackPropertyID = "dealFiveDamageToSelectedEnemy"
	AttackDealTenDamage   AttackPropertyID = "dealTenDamageToSelectedEnemy"

	AttackDealSevenDamageToEachEnemy      AttackPropertyID = "dealSevenDamageToEachEnemy"
	AttackDealFiveDamageToNeighbors       AttackPropertyID = "dealFiveDamageToLeftAndRightEnemy"
	AttackDealSixDamageToNeighbors        AttackPropertyID = "dealSixDamageToLeftAndRightEnemy"
	AttackDealFiveDamageToWeakerEnemies   AttackPropertyID = "dealFiveDamageToEachEnemyWeakerThanYou"
	AttackTwoDamagePerDefenseCardInDiscard AttackPropertyID = "dealTwoDamagePerDefenseCardInEnemyDiscard"
	AttackThreeDamagePerPermanentToAll     AttackPropertyID = "dealThreeDamageToEveryEnemyPerPermanentCard"

	AttackEnemyGetsSluggishStick       AttackPropertyID = "enemyGetsSluggishStick"
	AttackEveryEnemyGetsSluggishStick  AttackPropertyID = "everyEnemyGetsSluggishStick"
	AttackEveryEnemyDiscardsOneCard    AttackPropertyID = "everyEnemyDiscardsOneCard"
	AttackEveryEnemyRevealsTopCard     AttackPropertyID = "everyEnemyRevealsTopCardYouMayDiscard"
	AttackEnemyDiscardsCostlyCard      AttackPropertyID = "enemyDiscardsCardCostingOverFive"
	AttackRevealTopCardDamageAsCost    AttackPropertyID = "enemyRevealsTopCardTakeDamageAsItsCost"
	AttackRevealHandDamageAsMostCostly AttackPropertyID = "enemyRevealsHandTakeDamageAsMostCostlyCard"
	AttackGiveZeroCostCardToEnemy      AttackPropertyID = "giveZeroCostCardFromHandOrDiscardToEnemy"

	AttackTwoDamagePerSluggishStickOrDraw AttackPropertyID = "dealTwoDamagePerOwnSluggishStickElseDrawOneCard"
	AttackFourDamagePerLegendOrDestroy    AttackPropertyID = "dealFourDamagePerLegendInEnemyDiscardElseDestroyHandCard"
	AttackKillWeakestAndAwardDeadWizard   AttackPropertyID = "dealFourDamageToWeakestEnemyOnKillGiveDeadWizard"
	AttackDamageAsLastBoughtCardCost      AttackPropertyID = "dealDamageEqualToLastBoughtCardCost"

	// In the catalog without a registered handler, matching the reference
	// implementation.
	AttackHealFourPerEscapedEnemy AttackPropertyID = "gainFourHealthPerEnemyThatEscapesAttack"
)

// DefensePropertyID identifies an effect applied to the player of a defense card.
type DefensePropertyID string

const (
	DefenseGainThreeHealth        DefensePropertyID = "gainThreeHealth"
	DefenseDiscardCard            DefensePropertyID = "discardCard"
	DefenseDrawOneCard            DefensePropertyID = "drawOneCard"
	DefenseCanDestroyCardInHand   DefensePropertyID = "canDestroyCardInHand"
	DefenseDealFiveDamageToAttacker DefensePropertyID = "dealFiveDamageToAttacker"
)

// CardDef is the immutable definition of a card. Game instances snapshot a
// definition and add their own identity.
type CardDef struct {
	Name              string              `json:"name"`
	Type              CardType            `json:"type"`
	Cost              int                 `json:"cost"`
	Effect            string              `json:"effect,omitempty"`
	Properties        []PropertyID        `json:"properties,omitempty"`
	AttackProperties  []AttackPropertyID  `json:"attackProperties,omitempty"`
	DefenseProperties []DefensePropertyID `json:"defenseProperties,omitempty"`
	Damage            int                 `json:"damage,omitempty"`
	VictoryPoints     int                 `json:"victoryPoints,omitempty"`
	IsAttack          bool                `json:"isAttack,omitempty"`
	IsDefense         bool                `json:"isDefense,omitempty"`
	IsPermanent       bool                `json:"isPermanent,omitempty"`

	// GroupAttackDamage applies to legends only: the damage dealt to every
	// wizard when the legend is first revealed.
	GroupAttackDamage int `json:"groupAttackDamage,omitempty"`

	// Timed permanent effects.
	StartOfTurnPower int `json:"startOfTurnPower,omitempty"`
	EndOfTurnDraw    int `json:"endOfTurnDraw,omitempty"`
}

// HasProperty reports whether the card carries the given play property.
func (d *CardDef) HasProperty(id PropertyID) bool {
	for _, p := range d.Properties {
		if p == id {
			return true
		}
	}
	return false
}

// HasAttackProperty reports whether the card carries the given attack
// property.
func (d *CardDef) HasAttackProperty(id AttackPropertyID) bool {
	for _, p := range d.AttackProperties {
		if p == id {
			return true
		}
	}
	return false
}

// WizardPropertyTokenEffect is defined for completeness; token effects are
// deliberately not applied anywhere yet.
type WizardPropertyTokenEffect string

// WizardPropertyToken is one of the eight loadout tokens offered during the
// selection phase.
type WizardPropertyToken struct {
	ID      int                         `json:"id"`
	Name    string                      `json:"name"`
	Effects []WizardPropertyTokenEffect `json:"effects,omitempty"`
}

// PlayAreaBoard is a cosmetic play-area board offered during the selection phase.
type PlayAreaBoard struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}
