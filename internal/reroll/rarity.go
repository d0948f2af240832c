package reroll

import (
	"errors"
	"fmt"
)

// RarityTier is one tier on the module rarity ladder.
type RarityTier string

const (
	RarityCommon    RarityTier = "common"
	RarityRare      RarityTier = "rare"
	RarityEpic      RarityTier = "epic"
	RarityLegendary RarityTier = "legendary"
	RarityMythic    RarityTier = "mythic"
	RarityAncestral RarityTier = "ancestral"
)

var ErrUnknownRarity = errors.New("unknown rarity tier")

// rarityRank gives the total order used for all comparisons:
// common < rare < epic < legendary < mythic < ancestral.
var rarityRank = map[RarityTier]int{
	RarityCommon:    0,
	RarityRare:      1,
	RarityEpic:      2,
	RarityLegendary: 3,
	RarityMythic:    4,
	RarityAncestral: 5,
}

// Tiers lists every tier from lowest to highest.
func Tiers() []RarityTier {
	return []RarityTier{
		RarityCommon, RarityRare, RarityEpic,
		RarityLegendary, RarityMythic, RarityAncestral,
	}
}

// Valid reports whether r names a real tier.
func (r RarityTier) Valid() bool {
	_, ok := rarityRank[r]
	return ok
}

// Rank returns the tier's position in the order; unknown tiers sort below common.
func (r RarityTier) Rank() int {
	if rank, ok := rarityRank[r]; ok {
		return rank
	}
	return -1
}

// AtLeast reports whether r satisfies a minimum of min ("at or above", never exact-match).
func (r RarityTier) AtLeast(min RarityTier) bool {
	return r.Rank() >= min.Rank() && r.Valid()
}

// ParseRarity validates a user-supplied tier string.
func ParseRarity(s string) (RarityTier, error) {
	r := RarityTier(s)
	if !r.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownRarity, s)
	}
	return r, nil
}

// TiersThrough returns every tier from common up to and including max.
func TiersThrough(max RarityTier) []RarityTier {
	var out []RarityTier
	for _, t := range Tiers() {
		if t.Rank() > max.Rank() {
			break
		}
		out = append(out, t)
	}
	return out
}
