package world

// ObjectType classifies what occupies a map tile.
type ObjectType string

const (
	ObjectNone             ObjectType = ""
	ObjectHero             ObjectType = "hero"
	ObjectCastle           ObjectType = "castle"
	ObjectMonster          ObjectType = "monster"
	ObjectMine             ObjectType = "mine"
	ObjectSawmill          ObjectType = "sawmill"
	ObjectAlchemyLab       ObjectType = "alchemy_lab"
	ObjectWindmill         ObjectType = "windmill"
	ObjectWatermill        ObjectType = "watermill"
	ObjectMagicGarden      ObjectType = "magic_garden"
	ObjectResource         ObjectType = "resource"
	ObjectTreasureChest    ObjectType = "treasure_chest"
	ObjectCampfire         ObjectType = "campfire"
	ObjectArtifact         ObjectType = "artifact"
	ObjectXanadu           ObjectType = "xanadu"
	ObjectHeroUpgrade      ObjectType = "hero_upgrade"
	ObjectDwelling         ObjectType = "dwelling"
	ObjectObservationTower ObjectType = "observation_tower"
	ObjectStoneliths       ObjectType = "stoneliths"
)

// IsPickup reports whether the object disappears once a hero steps on it.
func (o ObjectType) IsPickup() bool {
	switch o {
	case ObjectResource, ObjectTreasureChest, ObjectCampfire, ObjectArtifact:
		return true
	}
	return false
}

// IsCapture reports whether a hero flags the object for its kingdom.
func (o ObjectType) IsCapture() bool {
	switch o {
	case ObjectMine, ObjectSawmill, ObjectAlchemyLab:
		return true
	}
	return false
}

// IsQuantity reports whether the object yields a weekly amount that is
// emptied on visit.
func (o ObjectType) IsQuantity() bool {
	switch o {
	case ObjectWindmill, ObjectWatermill, ObjectMagicGarden:
		return true
	}
	return false
}

// IsVisitOnce reports whether each hero benefits from the object only once.
func (o ObjectType) IsVisitOnce() bool {
	switch o {
	case ObjectXanadu, ObjectHeroUpgrade, ObjectObservationTower:
		return true
	}
	return false
}

// IsGuarded reports whether stepping on the object can start a fight.
func (o ObjectType) IsGuarded() bool {
	return o == ObjectMonster || o == ObjectHero || o == ObjectCastle || o.IsCapture()
}
