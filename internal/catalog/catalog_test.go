package catalog

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogLookups(t *testing.T) {
	c := New()

	def, ok := c.ByName("Stray Magic")
	require.True(t, ok)
	assert.Equal(t, TypeStrayMagic, def.Type)
	assert.Equal(t, 3, def.Cost)

	_, ok = c.ByName("No Such Card")
	assert.False(t, ok)

	for _, legend := range c.ByType(TypeLegend) {
		assert.Equal(t, TypeLegend, legend.Type)
		assert.Positive(t, legend.GroupAttackDamage, "every legend joins the group attack")
	}
}

func TestStarterDeckComposition(t *testing.T) {
	deck := New().StarterDeck()

	require.Len(t, deck, 10)
	counts := map[string]int{}
	for _, def := range deck {
		counts[def.Name]++
	}
	assert.Equal(t, 6, counts["Sign"])
	assert.Equal(t, 1, counts["Wand"])
	assert.Equal(t, 3, counts["Fizzle"])
}

func TestMarketplaceReserveHonorsCopyCounts(t *testing.T) {
	reserve := New().MarketplaceReserve()

	counts := map[string]int{}
	for _, def := range reserve {
		counts[def.Name]++
	}
	assert.Equal(t, 2, counts["Epic Brawls"])
	assert.Equal(t, 2, counts["Mana Leech"])
	assert.Equal(t, 1, counts["Sunfaced One"])
	assert.Equal(t, 6, counts["Stray Magic"])

	for _, def := range reserve {
		switch def.Type {
		case TypeLegend, TypeFamiliar, TypeSeed, TypeSluggishStick:
			t.Fatalf("card %q of type %s does not belong in the reserve", def.Name, def.Type)
		}
	}
}

func TestFirstLegendIsALegend(t *testing.T) {
	c := New()
	first := c.FirstLegend()

	assert.Equal(t, TypeLegend, first.Type)
	assert.Contains(t, c.Legends(), first)
}

func TestFixedPiles(t *testing.T) {
	c := New()

	assert.Len(t, c.StrayMagicDeck(), 16)
	assert.Len(t, c.SluggishSticks(), 16)
	assert.Len(t, c.WizardPropertyTokens(), 8)
	assert.Len(t, c.PlayAreaBoards(), 10)
	assert.NotEmpty(t, c.Familiars())
}

func TestShuffleIsDeterministicPerSeed(t *testing.T) {
	base := []int{1, 2, 3, 4, 5, 6, 7, 8}

	a := append([]int(nil), base...)
	b := append([]int(nil), base...)
	Shuffle(rand.New(rand.NewSource(9)), a)
	Shuffle(rand.New(rand.NewSource(9)), b)
	assert.Equal(t, a, b)

	assert.ElementsMatch(t, base, a, "shuffling permutes, never drops")
}

func TestHasProperty(t *testing.T) {
	c := New()
	def, ok := c.ByName("Cursed Wallet")
	require.True(t, ok)

	assert.True(t, def.HasProperty(PropPutNextBoughtCardOnTopOfDeck))
	assert.False(t, def.HasProperty(PropDrawOneCard))
}
