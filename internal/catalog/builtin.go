package catalog

import "fmt"

// Source hands out catalogs per module type. Implemented by Loader (YAML
// files) and by the builtin compiled-in set.
type Source interface {
	Load(moduleType string) (*Catalog, error)
}

// ModuleTypes lists the module types the builtin catalog knows.
func ModuleTypes() []string {
	return []string{"cannon", "armor", "generator", "core"}
}

func mags(c, r, e, l, m, a float64) map[string]float64 {
	out := map[string]float64{}
	for tier, v := range map[string]float64{
		"common": c, "rare": r, "epic": e, "legendary": l, "mythic": m, "ancestral": a,
	} {
		if v != 0 {
			out[tier] = v
		}
	}
	return out
}

// builtinDefault carries the effects every module type can roll.
var builtinDefault = RawCatalog{
	Version:   "builtin-1",
	SlotCount: 5,
	Effects: []EffectConfig{
		{ID: "attackSpeed", Name: "Attack Speed", Magnitudes: mags(1.5, 2.5, 4, 6, 8.5, 12)},
		{ID: "critChance", Name: "Crit Chance", Magnitudes: mags(1, 2, 3.5, 5, 7, 10)},
		{ID: "damage", Name: "Damage", Magnitudes: mags(4, 7, 11, 16, 24, 35)},
		{ID: "coinBonus", Name: "Coin Bonus", UnlockLevel: 21, Magnitudes: mags(2, 3.5, 5.5, 8, 12, 17)},
	},
}

// builtinModules layers module-type-specific effects over the defaults.
var builtinModules = map[string]RawCatalog{
	"cannon": {
		Effects: []EffectConfig{
			{ID: "critFactor", Name: "Crit Factor", Magnitudes: mags(3, 5, 8, 12, 18, 26)},
			{ID: "attackRange", Name: "Attack Range", UnlockLevel: 41, Magnitudes: mags(2, 4, 6.5, 10, 14, 20)},
			{ID: "multishotChance", Name: "Multishot Chance", UnlockLevel: 81, Magnitudes: mags(0, 1.5, 2.5, 4, 6, 9)},
			{ID: "rapidFireChance", Name: "Rapid Fire Chance", UnlockLevel: 121, Magnitudes: mags(0, 0, 2, 3.5, 5.5, 8)},
		},
	},
	"armor": {
		Effects: []EffectConfig{
			{ID: "healthRegen", Name: "Health Regen", Magnitudes: mags(5, 9, 14, 21, 31, 45)},
			{ID: "defensePercent", Name: "Defense %", Magnitudes: mags(2, 3.5, 5.5, 8, 12, 17)},
			{ID: "thornDamage", Name: "Thorn Damage", UnlockLevel: 61, Magnitudes: mags(0, 3, 5, 8, 12, 18)},
			{ID: "lifesteal", Name: "Lifesteal", UnlockLevel: 101, Magnitudes: mags(0, 0, 1.5, 2.5, 4, 6)},
		},
	},
	"generator": {
		Effects: []EffectConfig{
			{ID: "cashBonus", Name: "Cash Bonus", Magnitudes: mags(3, 5, 8, 12, 18, 26)},
			{ID: "cashPerWave", Name: "Cash / Wave", UnlockLevel: 41, Magnitudes: mags(5, 9, 14, 21, 31, 45)},
			{ID: "coinsPerKill", Name: "Coins / Kill", UnlockLevel: 81, Magnitudes: mags(0, 2, 3.5, 5.5, 8, 12)},
		},
	},
	"core": {
		Effects: []EffectConfig{
			{ID: "ultimateDamage", Name: "Ultimate Damage", Magnitudes: mags(6, 10, 16, 24, 36, 52)},
			{ID: "ultimateCooldown", Name: "Ultimate Cooldown", UnlockLevel: 61, Magnitudes: mags(1, 2, 3.5, 5, 7.5, 11)},
		},
	},
}

type builtinSource struct{}

// BuiltinSource returns the compiled-in catalog set. Used when no catalog
// directory is configured, and by tests and the offline CLI.
func BuiltinSource() Source { return builtinSource{} }

func (builtinSource) Load(moduleType string) (*Catalog, error) {
	mod, ok := builtinModules[moduleType]
	if !ok {
		return nil, fmt.Errorf("unknown module type %q", moduleType)
	}
	merged := mergeRaw(builtinDefault, mod)
	return Normalize(merged, moduleType)
}
