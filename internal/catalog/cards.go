package catalog

// Deck composition constants.
const (
	strayMagicDeckSize    = 16
	sluggishStickDeckSize = 16
	strayMagicInMarket    = 6

	firstLegendName = "One-Armed One-Eyed Wonderwood"
)

// copyCounts lists cards that appear in the marketplace reserve more than
// once. Anything not listed is a single.
var copyCounts = map[string]int{
	"Snotty Knight":   2,
	"Twins":           2,
	"Epic Brawls":     2,
	"Pocket Lightning": 2,
	"Gravedigger":     2,
	"Mana Leech":      2,
}

var builtinCards = []CardDef{
	// Starter cards.
	{
		Name:       "Sign",
		Type:       TypeSeed,
		Cost:       0,
		Effect:     "+1 power",
		Properties: []PropertyID{PropAddOnePower},
	},
	{
		Name:             "Wand",
		Type:             TypeSeed,
		Cost:             0,
		Effect:           "+1 power. Attack: deal 1 damage to a chosen wizard",
		Properties:       []PropertyID{PropAddOnePower},
		AttackProperties: []AttackPropertyID{AttackDealOneDamage},
		Damage:           1,
		IsAttack:         true,
	},
	{
		Name:   "Fizzle",
		Type:   TypeSeed,
		Cost:   0,
		Effect: "Does nothing",
	},

	// Side reserves.
	{
		Name:          "Stray Magic",
		Type:          TypeStrayMagic,
		Cost:          3,
		Effect:        "Every player draws one card",
		Properties:    []PropertyID{PropEveryPlayerDrawsOneCard},
		VictoryPoints: 1,
	},
	{
		Name: "Sluggish Stick",
		Type: TypeSluggishStick,
		Cost: 0,
	},

	// Wizards.
	{
		Name:             "Sunfaced One",
		Type:             TypeWizard,
		Cost:             7,
		Properties:       []PropertyID{PropAddTwoPower, PropDrawOneCard},
		AttackProperties: []AttackPropertyID{AttackDealTenDamage},
		Damage:           10,
		VictoryPoints:    2,
		IsAttack:         true,
	},
	{
		Name:          "Sweet Kitty",
		Type:          TypeWizard,
		Cost:          6,
		VictoryPoints: 2,
	},
	{
		Name:          "Showoff",
		Type:          TypeWizard,
		Cost:          6,
		Properties:    []PropertyID{PropAddFivePower, PropRemoveOnePowerForEachDeadWizard},
		VictoryPoints: 3,
	},
	{
		Name:             "Snotty Knight",
		Type:             TypeWizard,
		Cost:             3,
		Properties:       []PropertyID{PropAddTwoPower},
		VictoryPoints:    1,
	},
	{
		Name:             "Gravedigger",
		Type:             TypeWizard,
		Cost:             4,
		Properties:       []PropertyID{PropAddTwoPower, PropCanDestroyCardFromDiscard},
		VictoryPoints:    1,
	},
	{
		Name:          "Bone Collector",
		Type:          TypeWizard,
		Cost:          5,
		Properties:    []PropertyID{PropAddOnePowerForEachDeadWizard},
		VictoryPoints: 2,
	},
	{
		Name:             "Whisperer",
		Type:             TypeWizard,
		Cost:             5,
		Properties:       []PropertyID{PropAddTwoPower, PropTakeWizardFromDiscardOrAddTwoPower},
		VictoryPoints:    2,
	},

	// Spells.
	{
		Name:             "Krutagidon!",
		Type:             TypeSpell,
		Cost:             7,
		Properties:       []PropertyID{PropAddThreePower},
		AttackProperties: []AttackPropertyID{AttackDealSevenDamageToEachEnemy},
		VictoryPoints:    2,
		IsAttack:         true,
	},
	{
		Name:          "Necromancy",
		Type:          TypeSpell,
		Cost:          6,
		Properties:    []PropertyID{PropAddThreePower, PropNecromancy},
		VictoryPoints: 2,
	},
	{
		Name:             "Epic Brawls",
		Type:             TypeSpell,
		Cost:             5,
		Properties:       []PropertyID{PropAddThreePower},
		AttackProperties: []AttackPropertyID{AttackTwoDamagePerDefenseCardInDiscard},
		VictoryPoints:    1,
		IsAttack:         true,
	},
	{
		Name:             "Pocket Lightning",
		Type:             TypeSpell,
		Cost:             3,
		Properties:       []PropertyID{PropAddOnePower},
		AttackProperties: []AttackPropertyID{AttackDealThreeDamage},
		Damage:           3,
		VictoryPoints:    1,
		IsAttack:         true,
	},
	{
		Name:             "Thunderclap",
		Type:             TypeSpell,
		Cost:             5,
		AttackProperties: []AttackPropertyID{AttackDealFiveDamageToNeighbors},
		VictoryPoints:    1,
		IsAttack:         true,
	},
	{
		Name:             "Avalanche of Greed",
		Type:             TypeSpell,
		Cost:             6,
		Properties:       []PropertyID{PropAddTwoPower},
		AttackProperties: []AttackPropertyID{AttackRevealHandDamageAsMostCostly},
		VictoryPoints:    2,
		IsAttack:         true,
	},
	{
		Name:          "Second Wind",
		Type:          TypeSpell,
		Cost:          4,
		Properties:    []PropertyID{PropGainThreeHealth, PropDrawOneCard},
		VictoryPoints: 1,
	},

	// Creatures.
	{
		Name:             "Fruity Rump",
		Type:             TypeCreature,
		Cost:             6,
		Properties:       []PropertyID{PropAddTwoPower},
		AttackProperties: []AttackPropertyID{AttackEveryEnemyGetsSluggishStick, AttackHealFourPerEscapedEnemy},
		VictoryPoints:    2,
		IsAttack:         true,
	},
	{
		Name:              "Ugorilla",
		Type:              TypeCreature,
		Cost:              6,
		Properties:        []PropertyID{PropAddTwoPower},
		DefenseProperties: []DefensePropertyID{DefenseDiscardCard, DefenseDrawOneCard, DefenseCanDestroyCardInHand},
		VictoryPoints:     2,
		IsDefense:         true,
	},
	{
		Name:          "Cthulhu",
		Type:          TypeCreature,
		Cost:          7,
		Properties:    []PropertyID{PropCthulhu},
		VictoryPoints: 3,
	},
	{
		Name:              "Dragon Eggs",
		Type:              TypeCreature,
		Cost:              5,
		Properties:        []PropertyID{PropGainThreeHealth},
		DefenseProperties: []DefensePropertyID{DefenseDiscardCard, DefenseDrawOneCard},
		IsDefense:         true,
		IsPermanent:       true,
	},
	{
		Name:             "Mana Leech",
		Type:             TypeCreature,
		Cost:             4,
		Properties:       []PropertyID{PropAddTwoPower, PropIfFirstCardToPlay},
		VictoryPoints:    1,
	},
	{
		Name:             "Rabid Pack",
		Type:             TypeCreature,
		Cost:             6,
		AttackProperties: []AttackPropertyID{AttackDealFiveDamageToWeakerEnemies},
		VictoryPoints:    2,
		IsAttack:         true,
	},
	{
		Name:             "Scrap Golem",
		Type:             TypeCreature,
		Cost:             5,
		Properties:       []PropertyID{PropAddTwoPower},
		AttackProperties: []AttackPropertyID{AttackTwoDamagePerSluggishStickOrDraw},
		VictoryPoints:    1,
		IsAttack:         true,
	},
	{
		Name:             "Legend Eater",
		Type:             TypeCreature,
		Cost:             7,
		AttackProperties: []AttackPropertyID{AttackFourDamagePerLegendOrDestroy},
		VictoryPoints:    2,
		IsAttack:         true,
	},
	{
		Name:             "Pit Hyena",
		Type:             TypeCreature,
		Cost:             5,
		AttackProperties: []AttackPropertyID{AttackKillWeakestAndAwardDeadWizard},
		VictoryPoints:    1,
		IsAttack:         true,
	},

	// Treasures.
	{
		Name:        "Big Bonebag",
		Type:        TypeTreasure,
		Cost:        3,
		Properties:  []PropertyID{PropCardLikeDeadWizard},
		IsPermanent: true,
	},
	{
		Name:          "Bag of Joy",
		Type:          TypeTreasure,
		Cost:          6,
		Properties:    []PropertyID{PropAddThreePower, PropExpandTopDeckCardGainLivesAsCost},
		VictoryPoints: 2,
	},
	{
		Name:          "Uncle Andy's Laurels",
		Type:          TypeTreasure,
		Cost:          7,
		Properties:    []PropertyID{PropAddFivePower},
		VictoryPoints: 2,
	},
	{
		Name:              "Unholy Grail",
		Type:              TypeTreasure,
		Cost:              6,
		Properties:        []PropertyID{PropAddThreePower},
		DefenseProperties: []DefensePropertyID{DefenseDiscardCard, DefenseDrawOneCard, DefenseDealFiveDamageToAttacker},
		VictoryPoints:     2,
		IsDefense:         true,
	},
	{
		Name:          "Twins",
		Type:          TypeTreasure,
		Cost:          4,
		Properties:    []PropertyID{PropDrawTwoCards},
		VictoryPoints: 1,
	},
	{
		Name:          "Cursed Wallet",
		Type:          TypeTreasure,
		Cost:          4,
		Properties:    []PropertyID{PropAddTwoPower, PropPutNextBoughtCardOnTopOfDeck},
		VictoryPoints: 1,
	},
	{
		Name:          "Grimoire of Gluttony",
		Type:          TypeTreasure,
		Cost:          5,
		Properties:    []PropertyID{PropDeadWizardDrawOrPower},
		VictoryPoints: 2,
	},
	{
		Name:             "Sticky Fingers",
		Type:             TypeTreasure,
		Cost:             5,
		Properties:       []PropertyID{PropAddOnePower},
		AttackProperties: []AttackPropertyID{AttackGiveZeroCostCardToEnemy},
		VictoryPoints:    1,
		IsAttack:         true,
	},

	// Chaos cards: buyable market oddities.
	{
		Name:             "Wheel of Trouble",
		Type:             TypeChaos,
		Cost:             4,
		Properties:       []PropertyID{PropDiscardAllCards, PropDrawThreeCards},
		VictoryPoints:    1,
	},
	{
		Name:          "Echo of the Bazaar",
		Type:          TypeChaos,
		Cost:          3,
		Properties:    []PropertyID{PropYouAndSelectedEnemyDrawOneCard},
		VictoryPoints: 1,
	},
	{
		Name:             "Trickster's Due",
		Type:             TypeChaos,
		Cost:             5,
		AttackProperties: []AttackPropertyID{AttackDamageAsLastBoughtCardCost},
		VictoryPoints:    1,
		IsAttack:         true,
	},

	// Places: permanents with trigger or timed effects.
	{
		Name:        "Skullflame Mountain",
		Type:        TypePlace,
		Cost:        5,
		Effect:      "When you play your first wizard in a turn, draw a card",
		Properties:  []PropertyID{PropFirstWizardDrawOneCard},
		IsPermanent: true,
		VictoryPoints: 1,
	},
	{
		Name:        "Squidslayer Castle",
		Type:        TypePlace,
		Cost:        5,
		Effect:      "When you play your first creature in a turn, draw a card",
		Properties:  []PropertyID{PropFirstCreatureDrawOneCard},
		IsPermanent: true,
		VictoryPoints: 1,
	},
	{
		Name:        "Mushroom Bog",
		Type:        TypePlace,
		Cost:        5,
		Effect:      "When you play your first treasure in a turn, draw a card",
		Properties:  []PropertyID{PropFirstTreasureDrawOneCard},
		IsPermanent: true,
		VictoryPoints: 1,
	},
	{
		Name:        "Mansions of Passion",
		Type:        TypePlace,
		Cost:        5,
		Effect:      "When you play your first spell in a turn, draw a card",
		Properties:  []PropertyID{PropFirstSpellDrawOneCard},
		IsPermanent: true,
		VictoryPoints: 1,
	},
	{
		Name:        "Krutagidon Arena",
		Type:        TypePlace,
		Cost:        6,
		Effect:      "Your attacks deal double damage. Discard when you kill an enemy",
		Properties:  []PropertyID{PropDoubleAttackDamage},
		IsPermanent: true,
		VictoryPoints: 2,
	},
	{
		Name:        "Little Six",
		Type:        TypePlace,
		Cost:        4,
		Effect:      "Your healing effects are doubled",
		Properties:  []PropertyID{PropDoubleHealingEffects},
		IsPermanent: true,
		VictoryPoints: 1,
	},
	{
		Name:             "Gloating Spire",
		Type:             TypePlace,
		Cost:             6,
		Effect:           "At the start of your turn, gain 1 power",
		IsPermanent:      true,
		StartOfTurnPower: 1,
		VictoryPoints:    2,
	},
	{
		Name:          "Night Library",
		Type:          TypePlace,
		Cost:          6,
		Effect:        "At the end of your turn, draw 1 card",
		IsPermanent:   true,
		EndOfTurnDraw: 1,
		VictoryPoints: 2,
	},
	{
		Name:        "Greedy Vault",
		Type:        TypePlace,
		Cost:        5,
		Effect:      "Each time you get or buy a card this turn, play an attack",
		Properties:  []PropertyID{PropAttackOnEveryAcquire},
		IsPermanent: true,
		IsAttack:    true,
		VictoryPoints: 1,
	},

	// Legends.
	{
		Name:              firstLegendName,
		Type:              TypeLegend,
		Cost:              9,
		Effect:            "Group attack: every wizard takes 5 damage and gets a sluggish stick",
		GroupAttackDamage: 5,
		VictoryPoints:     4,
	},
	{
		Name:              "Maw of the Deep",
		Type:              TypeLegend,
		Cost:              10,
		GroupAttackDamage: 5,
		AttackProperties:  []AttackPropertyID{AttackDealSixDamageToNeighbors},
		VictoryPoints:     4,
		IsAttack:          true,
	},
	{
		Name:              "Baron Bloodboil",
		Type:              TypeLegend,
		Cost:              9,
		GroupAttackDamage: 5,
		AttackProperties:  []AttackPropertyID{AttackDealFiveDamage},
		Damage:            5,
		VictoryPoints:     4,
		IsAttack:          true,
	},
	{
		Name:              "Mother of Mold",
		Type:              TypeLegend,
		Cost:              10,
		GroupAttackDamage: 5,
		AttackProperties:  []AttackPropertyID{AttackEveryEnemyDiscardsOneCard},
		VictoryPoints:     5,
		IsAttack:          true,
	},
	{
		Name:              "The Uncrowned",
		Type:              TypeLegend,
		Cost:              11,
		GroupAttackDamage: 5,
		AttackProperties:  []AttackPropertyID{AttackThreeDamagePerPermanentToAll},
		VictoryPoints:     5,
		IsAttack:          true,
	},
	{
		Name:              "Hollow Choir",
		Type:              TypeLegend,
		Cost:              9,
		GroupAttackDamage: 5,
		AttackProperties:  []AttackPropertyID{AttackEveryEnemyRevealsTopCard},
		VictoryPoints:     4,
		IsAttack:          true,
	},
	{
		Name:              "Wormfather",
		Type:              TypeLegend,
		Cost:              10,
		GroupAttackDamage: 5,
		AttackProperties:  []AttackPropertyID{AttackEnemyDiscardsCostlyCard, AttackRevealTopCardDamageAsCost},
		VictoryPoints:     5,
		IsAttack:          true,
	},
	{
		Name:              "Granny Cinders",
		Type:              TypeLegend,
		Cost:              9,
		GroupAttackDamage: 5,
		AttackProperties:  []AttackPropertyID{AttackEnemyGetsSluggishStick, AttackDealThreeDamage},
		Damage:            3,
		VictoryPoints:     4,
		IsAttack:          true,
	},

	// Familiars.
	{Name: "Black Cat", Type: TypeFamiliar, Cost: 4, Properties: []PropertyID{PropAddTwoPower}, VictoryPoints: 1},
	{Name: "Toad", Type: TypeFamiliar, Cost: 4, Properties: []PropertyID{PropGainTwoHealth}, VictoryPoints: 1},
	{Name: "Raven", Type: TypeFamiliar, Cost: 4, Properties: []PropertyID{PropDrawOneCard}, VictoryPoints: 1},
	{Name: "Imp", Type: TypeFamiliar, Cost: 4, Properties: []PropertyID{PropAddOnePower, PropDrawOneCard}, VictoryPoints: 1},
	{Name: "Rat King", Type: TypeFamiliar, Cost: 4, Properties: []PropertyID{PropCheckTopDeckCardTakeOrRemove}, VictoryPoints: 1},
	{Name: "Owlet", Type: TypeFamiliar, Cost: 4, Properties: []PropertyID{PropCheckTopCardOfDeck}, VictoryPoints: 1},
	{Name: "Salamander", Type: TypeFamiliar, Cost: 4, AttackProperties: []AttackPropertyID{AttackDealThreeDamage}, Damage: 3, IsAttack: true, VictoryPoints: 1},
	{Name: "Moth Swarm", Type: TypeFamiliar, Cost: 4, Properties: []PropertyID{PropDrawTopCardOrReturnToDeck}, VictoryPoints: 1},
	{Name: "Hedgehog", Type: TypeFamiliar, Cost: 4, DefenseProperties: []DefensePropertyID{DefenseGainThreeHealth}, IsDefense: true, VictoryPoints: 1},
	{Name: "Slime", Type: TypeFamiliar, Cost: 4, Properties: []PropertyID{PropGainOneHealthForEachPermanent}, VictoryPoints: 1},
}

var builtinPropertyTokens = []WizardPropertyToken{
	{ID: 1, Name: "Pyromaniac"},
	{ID: 2, Name: "Hoarder"},
	{ID: 3, Name: "Grave Robber"},
	{ID: 4, Name: "Showboat"},
	{ID: 5, Name: "Bookworm"},
	{ID: 6, Name: "Brawler"},
	{ID: 7, Name: "Sleepwalker"},
	{ID: 8, Name: "Lucky Devil"},
}

var builtinPlayAreaBoards = []PlayAreaBoard{
	{ID: 1, Name: "Obsidian Circle"},
	{ID: 2, Name: "Bone Pit"},
	{ID: 3, Name: "Mossy Altar"},
	{ID: 4, Name: "Starfall Crater"},
	{ID: 5, Name: "Rusty Throne"},
	{ID: 6, Name: "Glass Garden"},
	{ID: 7, Name: "Ember Field"},
	{ID: 8, Name: "Sunken Chapel"},
	{ID: 9, Name: "Howling Cliff"},
	{ID: 10, Name: "Velvet Dungeon"},
}
