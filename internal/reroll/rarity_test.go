package reroll

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRarityOrder(t *testing.T) {
	tiers := Tiers()
	require.Len(t, tiers, 6)
	for i := 1; i < len(tiers); i++ {
		assert.Greater(t, tiers[i].Rank(), tiers[i-1].Rank(), "%s should outrank %s", tiers[i], tiers[i-1])
	}
}

func TestAtLeastIsAtOrAbove(t *testing.T) {
	assert.True(t, RarityRare.AtLeast(RarityRare), "exact tier satisfies")
	assert.True(t, RarityAncestral.AtLeast(RarityRare))
	assert.False(t, RarityCommon.AtLeast(RarityRare))
	assert.False(t, RarityTier("shiny").AtLeast(RarityCommon))
}

func TestParseRarity(t *testing.T) {
	r, err := ParseRarity("mythic")
	require.NoError(t, err)
	assert.Equal(t, RarityMythic, r)

	_, err = ParseRarity("ultrarare")
	assert.ErrorIs(t, err, ErrUnknownRarity)
}

func TestTiersThrough(t *testing.T) {
	assert.Equal(t, []RarityTier{RarityCommon}, TiersThrough(RarityCommon))
	assert.Equal(t,
		[]RarityTier{RarityCommon, RarityRare, RarityEpic},
		TiersThrough(RarityEpic))
	assert.Len(t, TiersThrough(RarityAncestral), 6)
}
