package battle

import "slices"

// SpellID names a combat spell.
type SpellID string

const (
	SpellNone           SpellID = ""
	SpellMagicArrow     SpellID = "magic_arrow"
	SpellLightningBolt  SpellID = "lightning_bolt"
	SpellColdRay        SpellID = "cold_ray"
	SpellFireball       SpellID = "fireball"
	SpellColdRing       SpellID = "cold_ring"
	SpellChainLightning SpellID = "chain_lightning"
	SpellMeteorShower   SpellID = "meteor_shower"
	SpellArmageddon     SpellID = "armageddon"
	SpellElementalStorm SpellID = "elemental_storm"
	SpellSlow           SpellID = "slow"
	SpellMassSlow       SpellID = "mass_slow"
	SpellHaste          SpellID = "haste"
	SpellMassHaste      SpellID = "mass_haste"
	SpellBlind          SpellID = "blind"
	SpellParalyze       SpellID = "paralyze"
	SpellCurse          SpellID = "curse"
	SpellMassCurse      SpellID = "mass_curse"
	SpellBless          SpellID = "bless"
	SpellMassBless      SpellID = "mass_bless"
	SpellBerserker      SpellID = "berserker"
	SpellHypnotize      SpellID = "hypnotize"
	SpellDisruptingRay  SpellID = "disrupting_ray"
	SpellBloodlust      SpellID = "bloodlust"
	SpellStoneskin      SpellID = "stoneskin"
	SpellSteelskin      SpellID = "steelskin"
	SpellShield         SpellID = "shield"
	SpellMassShield     SpellID = "mass_shield"
	SpellAntimagic      SpellID = "antimagic"
	SpellDispel         SpellID = "dispel"
	SpellMassDispel     SpellID = "mass_dispel"
	SpellResurrect      SpellID = "resurrect"
	SpellResurrectTrue  SpellID = "resurrect_true"
	SpellAnimateDead    SpellID = "animate_dead"
	SpellSummonEarth    SpellID = "summon_earth"
	SpellSummonFire     SpellID = "summon_fire"
)

// Category groups spells by how the AI values them.
type Category uint8

const (
	CategoryDamage Category = iota
	CategoryDispel
	CategoryResurrect
	CategorySummon
	CategoryEffect
)

// Spell is a catalog entry. Numeric fields scale with commander spell power.
type Spell struct {
	ID       SpellID
	Tier     int
	Cost     int
	Category Category
	Mass     bool // every unit of the targeted side
	Area     int  // radius around the target cell
	Global   bool // every unit on the board
	Chain    bool // jumps to up to three more enemies at half power
	Friendly bool // targets the caster's own units
	Damage   int  // damage per spell power
	Restore  int  // hit points per spell power
	Summon   float64
	Extra    int // effect magnitude, e.g. speed change
}

var spellCatalog = []Spell{
	{ID: SpellMagicArrow, Tier: 1, Cost: 3, Category: CategoryDamage, Damage: 10},
	{ID: SpellLightningBolt, Tier: 2, Cost: 7, Category: CategoryDamage, Damage: 25},
	{ID: SpellColdRay, Tier: 2, Cost: 6, Category: CategoryDamage, Damage: 20},
	{ID: SpellFireball, Tier: 3, Cost: 9, Category: CategoryDamage, Damage: 10, Area: 1},
	{ID: SpellColdRing, Tier: 3, Cost: 9, Category: CategoryDamage, Damage: 10, Area: 1},
	{ID: SpellChainLightning, Tier: 4, Cost: 15, Category: CategoryDamage, Damage: 40, Chain: true},
	{ID: SpellMeteorShower, Tier: 4, Cost: 15, Category: CategoryDamage, Damage: 25, Area: 1},
	{ID: SpellArmageddon, Tier: 4, Cost: 20, Category: CategoryDamage, Damage: 50, Global: true},
	{ID: SpellElementalStorm, Tier: 4, Cost: 15, Category: CategoryDamage, Damage: 25, Global: true},
	{ID: SpellSlow, Tier: 1, Cost: 3, Category: CategoryEffect, Extra: 2},
	{ID: SpellMassSlow, Tier: 4, Cost: 15, Category: CategoryEffect, Mass: true, Extra: 2},
	{ID: SpellHaste, Tier: 1, Cost: 3, Category: CategoryEffect, Friendly: true, Extra: 2},
	{ID: SpellMassHaste, Tier: 3, Cost: 10, Category: CategoryEffect, Friendly: true, Mass: true, Extra: 2},
	{ID: SpellBlind, Tier: 2, Cost: 6, Category: CategoryEffect},
	{ID: SpellParalyze, Tier: 3, Cost: 9, Category: CategoryEffect},
	{ID: SpellCurse, Tier: 1, Cost: 3, Category: CategoryEffect},
	{ID: SpellMassCurse, Tier: 3, Cost: 12, Category: CategoryEffect, Mass: true},
	{ID: SpellBless, Tier: 1, Cost: 3, Category: CategoryEffect, Friendly: true},
	{ID: SpellMassBless, Tier: 3, Cost: 12, Category: CategoryEffect, Friendly: true, Mass: true},
	{ID: SpellBerserker, Tier: 4, Cost: 12, Category: CategoryEffect},
	{ID: SpellHypnotize, Tier: 5, Cost: 15, Category: CategoryEffect},
	{ID: SpellDisruptingRay, Tier: 2, Cost: 7, Category: CategoryEffect, Extra: 3},
	{ID: SpellBloodlust, Tier: 1, Cost: 3, Category: CategoryEffect, Friendly: true, Extra: 3},
	{ID: SpellStoneskin, Tier: 1, Cost: 3, Category: CategoryEffect, Friendly: true, Extra: 3},
	{ID: SpellSteelskin, Tier: 2, Cost: 6, Category: CategoryEffect, Friendly: true, Extra: 5},
	{ID: SpellShield, Tier: 1, Cost: 3, Category: CategoryEffect, Friendly: true},
	{ID: SpellMassShield, Tier: 4, Cost: 7, Category: CategoryEffect, Friendly: true, Mass: true},
	{ID: SpellAntimagic, Tier: 3, Cost: 7, Category: CategoryEffect, Friendly: true},
	{ID: SpellDispel, Tier: 1, Cost: 5, Category: CategoryDispel},
	{ID: SpellMassDispel, Tier: 3, Cost: 12, Category: CategoryDispel, Mass: true},
	{ID: SpellResurrect, Tier: 4, Cost: 12, Category: CategoryResurrect, Friendly: true, Restore: 50},
	{ID: SpellResurrectTrue, Tier: 5, Cost: 15, Category: CategoryResurrect, Friendly: true, Restore: 50},
	{ID: SpellAnimateDead, Tier: 3, Cost: 10, Category: CategoryResurrect, Friendly: true, Restore: 50},
	{ID: SpellSummonEarth, Tier: 5, Cost: 30, Category: CategorySummon, Summon: 3},
	{ID: SpellSummonFire, Tier: 5, Cost: 30, Category: CategorySummon, Summon: 3},
}

// Spells returns the catalog in declaration order.
func Spells() []Spell {
	return spellCatalog
}

// SpellByID looks up a catalog entry.
func SpellByID(id SpellID) (Spell, bool) {
	i := slices.IndexFunc(spellCatalog, func(s Spell) bool { return s.ID == id })
	if i < 0 {
		return Spell{}, false
	}
	return spellCatalog[i], true
}

// IsSingleTarget reports whether the spell needs a unit under the cursor.
func (s Spell) IsSingleTarget() bool {
	return !s.Mass && !s.Global && s.Area == 0 && s.Category != CategorySummon
}

// IsResurrect reports whether the spell brings dead creatures back.
func (s Spell) IsResurrect() bool {
	return s.ID == SpellResurrect || s.ID == SpellResurrectTrue || s.ID == SpellAnimateDead
}

// IsPermanent reports whether restored creatures stay after the battle.
func (s Spell) IsPermanent() bool {
	return s.ID == SpellResurrectTrue || s.ID == SpellAnimateDead
}

// massVariants maps mass spells onto the effect they apply per unit.
var massVariants = map[SpellID]SpellID{
	SpellMassSlow:   SpellSlow,
	SpellMassHaste:  SpellHaste,
	SpellMassCurse:  SpellCurse,
	SpellMassBless:  SpellBless,
	SpellMassShield: SpellShield,
}

// BaseEffect returns the single-target effect a spell applies to each unit
// it hits. Spells without a mass variant map onto themselves.
func BaseEffect(id SpellID) SpellID {
	if base, ok := massVariants[id]; ok {
		return base
	}
	return id
}
