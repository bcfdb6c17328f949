package catalog

import (
	"fmt"
	"math/rand"
)

// Catalog is the static, read-only registry of card definitions.
type Catalog struct {
	byName map[string]*CardDef
	byType map[CardType][]*CardDef
}

// New builds the catalog from the built-in card set.
func New() *Catalog {
	c := &Catalog{
		byName: make(map[string]*CardDef),
		byType: make(map[CardType][]*CardDef),
	}
	for i := range builtinCards {
		def := &builtinCards[i]
		if _, dup := c.byName[def.Name]; dup {
			panic(fmt.Sprintf("catalog: duplicate card name %q", def.Name))
		}
		c.byName[def.Name] = def
		c.byType[def.Type] = append(c.byType[def.Type], def)
	}
	return c
}

// ByName looks up a card definition by its unique name.
func (c *Catalog) ByName(name string) (*CardDef, bool) {
	def, ok := c.byName[name]
	return def, ok
}

// ByType returns all definitions of the given type in declaration order.
// The returned slice must not be mutated.
func (c *Catalog) ByType(t CardType) []*CardDef {
	return c.byType[t]
}

// Shuffle permutes s in place with a Fisher-Yates walk over rng.
func Shuffle[T any](rng *rand.Rand, s []T) {
	for i := len(s) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		s[i], s[j] = s[j], s[i]
	}
}

// StarterDeck returns the ten-card deck every wizard begins with:
// six Signs, one Wand and three Fizzles.
func (c *Catalog) StarterDeck() []*CardDef {
	deck := make([]*CardDef, 0, 10)
	sign := c.mustByName("Sign")
	wand := c.mustByName("Wand")
	fizzle := c.mustByName("Fizzle")
	for i := 0; i < 6; i++ {
		deck = append(deck, sign)
	}
	deck = append(deck, wand)
	for i := 0; i < 3; i++ {
		deck = append(deck, fizzle)
	}
	return deck
}

// MarketplaceReserve returns the unshuffled shared marketplace reserve:
// every creature, place, spell, treasure, wizard and chaos card expanded by
// its copy count, plus the stray-magic cards that surface during refill.
func (c *Catalog) MarketplaceReserve() []*CardDef {
	var reserve []*CardDef
	for _, t := range []CardType{TypeCreature, TypePlace, TypeSpell, TypeTreasure, TypeWizard, TypeChaos} {
		for _, def := range c.byType[t] {
			for i := 0; i < copiesOf(def); i++ {
				reserve = append(reserve, def)
			}
		}
	}
	stray := c.mustByName("Stray Magic")
	for i := 0; i < strayMagicInMarket; i++ {
		reserve = append(reserve, stray)
	}
	return reserve
}

// Legends returns all legend definitions.
func (c *Catalog) Legends() []*CardDef {
	return c.byType[TypeLegend]
}

// FirstLegend returns the legend that always starts on top of the legendary
// marketplace.
func (c *Catalog) FirstLegend() *CardDef {
	return c.mustByName(firstLegendName)
}

// StrayMagicDeck returns the buyable stray-magic reserve.
func (c *Catalog) StrayMagicDeck() []*CardDef {
	def := c.mustByName("Stray Magic")
	deck := make([]*CardDef, strayMagicDeckSize)
	for i := range deck {
		deck[i] = def
	}
	return deck
}

// SluggishSticks returns the sluggish-stick penalty reserve.
func (c *Catalog) SluggishSticks() []*CardDef {
	def := c.mustByName("Sluggish Stick")
	deck := make([]*CardDef, sluggishStickDeckSize)
	for i := range deck {
		deck[i] = def
	}
	return deck
}

// Familiars returns all familiar definitions.
func (c *Catalog) Familiars() []*CardDef {
	return c.byType[TypeFamiliar]
}

// WizardPropertyTokens returns the eight loadout tokens.
func (c *Catalog) WizardPropertyTokens() []WizardPropertyToken {
	return builtinPropertyTokens
}

// PlayAreaBoards returns the ten loadout boards.
func (c *Catalog) PlayAreaBoards() []PlayAreaBoard {
	return builtinPlayAreaBoards
}

func (c *Catalog) mustByName(name string) *CardDef {
	def, ok := c.byName[name]
	if !ok {
		panic(fmt.Sprintf("catalog: missing built-in card %q", name))
	}
	return def
}

func copiesOf(def *CardDef) int {
	if n, ok := copyCounts[def.Name]; ok {
		return n
	}
	return 1
}
