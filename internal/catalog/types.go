// types.go
package catalog

import (
	"fmt"

	"github.com/towertracking/reroll-backend/internal/reroll"
)

// RawCatalog is one catalog file as loaded from YAML; module-type files
// override / extend modules/default.yaml.
type RawCatalog struct {
	Version   string         `yaml:"version"`
	SlotCount int            `yaml:"slot_count,omitempty"`
	Effects   []EffectConfig `yaml:"effects,omitempty"`
	Notes     string         `yaml:"notes,omitempty"`
}

// EffectConfig describes one rollable effect: which rarities it comes in and
// the magnitude at each. An effect with no magnitude for a tier cannot roll
// at that tier.
type EffectConfig struct {
	ID          string             `yaml:"id" json:"id"`
	Name        string             `yaml:"name,omitempty" json:"name,omitempty"`
	UnlockLevel int                `yaml:"unlock_level,omitempty" json:"unlock_level,omitempty"`
	Magnitudes  map[string]float64 `yaml:"magnitudes" json:"magnitudes"`
}

// Catalog is the normalized, read-only effect table for one module type.
// Built once (at load or from the builtin set) and shared; never mutated.
type Catalog struct {
	ModuleType string         `json:"module_type"`
	Version    string         `json:"version,omitempty"`
	SlotCount  int            `json:"slot_count"`
	Effects    []EffectConfig `json:"effects"`

	byID map[string]int // effect id -> index into Effects
}

// Normalize turns a merged RawCatalog into a usable Catalog.
func Normalize(raw RawCatalog, moduleType string) (*Catalog, error) {
	if len(raw.Effects) == 0 {
		return nil, fmt.Errorf("catalog for %q has no effects", moduleType)
	}
	slots := raw.SlotCount
	if slots <= 0 {
		slots = 5
	}
	c := &Catalog{
		ModuleType: moduleType,
		Version:    raw.Version,
		SlotCount:  slots,
		Effects:    append([]EffectConfig(nil), raw.Effects...),
		byID:       make(map[string]int, len(raw.Effects)),
	}
	for i, e := range c.Effects {
		if _, dup := c.byID[e.ID]; dup {
			return nil, fmt.Errorf("catalog for %q: duplicate effect id %q", moduleType, e.ID)
		}
		c.byID[e.ID] = i
	}
	return c, nil
}

// Effect looks up one effect config by id.
func (c *Catalog) Effect(id reroll.EffectID) (EffectConfig, bool) {
	i, ok := c.byID[string(id)]
	if !ok {
		return EffectConfig{}, false
	}
	return c.Effects[i], true
}

// Magnitude returns the rolled value for (effect, rarity), if that pair exists.
func (c *Catalog) Magnitude(id reroll.EffectID, r reroll.RarityTier) (float64, bool) {
	e, ok := c.Effect(id)
	if !ok {
		return 0, false
	}
	m, ok := e.Magnitudes[string(r)]
	return m, ok
}

// Pool builds the legal uniform draw pool for a module: every (effect,
// rarity) pair where the effect is unlocked at moduleLevel, not banned, and
// defines a magnitude at a tier no higher than moduleRarity.
func (c *Catalog) Pool(moduleRarity reroll.RarityTier, moduleLevel int, banned []reroll.EffectID) reroll.Pool {
	bannedSet := make(map[reroll.EffectID]bool, len(banned))
	for _, b := range banned {
		bannedSet[b] = true
	}
	var pool reroll.Pool
	for _, e := range c.Effects {
		id := reroll.EffectID(e.ID)
		if bannedSet[id] || e.UnlockLevel > moduleLevel {
			continue
		}
		for _, tier := range reroll.TiersThrough(moduleRarity) {
			if _, ok := e.Magnitudes[string(tier)]; ok {
				pool = append(pool, reroll.RollOption{EffectID: id, Rarity: tier})
			}
		}
	}
	return pool
}
