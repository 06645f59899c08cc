package world

// BuildingKind groups castle buildings by purpose.
type BuildingKind string

const (
	KindEconomy  BuildingKind = "economy"
	KindDefense  BuildingKind = "defense"
	KindDwelling BuildingKind = "dwelling"
	KindMagic    BuildingKind = "magic"
)

// Building is a catalog entry for something a castle can construct.
type Building struct {
	Name           string
	Kind           BuildingKind
	Cost           int
	Value          int
	Requires       []string
	RequiresCastle bool   // only fortified castles may build it
	Grants         *Troop // weekly creatures added to the castle's recruits
	GrantCost      int    // gold per granted creature
	Income         int    // extra daily gold
}

var buildingCatalog = []Building{
	{Name: "tavern", Kind: KindEconomy, Cost: 500, Value: 1},
	{Name: "well", Kind: KindEconomy, Cost: 500, Value: 2},
	{Name: "marketplace", Kind: KindEconomy, Cost: 500, Value: 2, Income: 50},
	{Name: "statue", Kind: KindEconomy, Cost: 1250, Value: 3, Income: 250},
	{Name: "moat", Kind: KindDefense, Cost: 750, Value: 2, RequiresCastle: true},
	{Name: "left_turret", Kind: KindDefense, Cost: 1500, Value: 3, RequiresCastle: true},
	{Name: "right_turret", Kind: KindDefense, Cost: 1500, Value: 3, RequiresCastle: true},
	{Name: "mage_guild_1", Kind: KindMagic, Cost: 2000, Value: 4},
	{Name: "mage_guild_2", Kind: KindMagic, Cost: 1000, Value: 3, Requires: []string{"mage_guild_1"}},
	{Name: "dwelling_1", Kind: KindDwelling, Cost: 400, Value: 2,
		Grants: &Troop{Monster: "peasant", Count: 12, Strength: 1}, GrantCost: 20},
	{Name: "dwelling_2", Kind: KindDwelling, Cost: 1000, Value: 3, Requires: []string{"dwelling_1"},
		Grants: &Troop{Monster: "archer", Count: 8, Strength: 5}, GrantCost: 150},
	{Name: "dwelling_3", Kind: KindDwelling, Cost: 2000, Value: 5, Requires: []string{"dwelling_2"},
		Grants: &Troop{Monster: "pikeman", Count: 5, Strength: 9}, GrantCost: 200},
	{Name: "dwelling_4", Kind: KindDwelling, Cost: 4000, Value: 8, Requires: []string{"dwelling_3"},
		Grants: &Troop{Monster: "cavalry", Count: 3, Strength: 30}, GrantCost: 300},
}

// Buildings returns the building catalog in declaration order.
func Buildings() []Building {
	return buildingCatalog
}

// BuildingByName looks up a catalog entry.
func BuildingByName(name string) (Building, bool) {
	for _, b := range buildingCatalog {
		if b.Name == name {
			return b, true
		}
	}
	return Building{}, false
}
