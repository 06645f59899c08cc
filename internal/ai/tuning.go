package ai

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// RegionWeights turn region statistics into a safety factor.
type RegionWeights struct {
	CastleSafety      int     `yaml:"castle_safety"`
	HeroSafety        int     `yaml:"hero_safety"`
	EnemyCastleDanger int     `yaml:"enemy_castle_danger"`
	FogTilesPerDanger int     `yaml:"fog_tiles_per_danger"`
	ThreatDanger      float64 `yaml:"threat_danger"`     // safety lost per unit of threat/own-strength ratio
	ThreatProjection  float64 `yaml:"threat_projection"` // share of a threat felt in neighbouring regions
	MaxThreatRatio    float64 `yaml:"max_threat_ratio"`
}

// ArmyAdvantage is how much stronger a hero must be than a guard before
// attacking it. The turn loop relaxes it from Large to Small.
type ArmyAdvantage struct {
	Large  float64 `yaml:"large"`
	Medium float64 `yaml:"medium"`
	Small  float64 `yaml:"small"`
}

// BattleWeights tune the battle planner.
type BattleWeights struct {
	RetreatRatio         float64 `yaml:"retreat_ratio"`
	ShooterWeight        float64 `yaml:"shooter_weight"`
	SpeedAdvantageWeight float64 `yaml:"speed_advantage_weight"`
	OverpoweredRatio     float64 `yaml:"overpowered_ratio"`
	DefensiveArcherRatio float64 `yaml:"defensive_archer_ratio"`
	FasterTargetBonus    float64 `yaml:"faster_target_bonus"`
	RetaliationWeight    float64 `yaml:"retaliation_weight"`
}

// Tuning holds every policy weight of the Normal strategy.
type Tuning struct {
	Region                RegionWeights `yaml:"region"`
	ThreatDistanceLimit   uint32        `yaml:"threat_distance_limit"` // move points
	GoldReserve           int           `yaml:"gold_reserve"`
	HeroCost              int           `yaml:"hero_cost"`
	HeroLimit             int           `yaml:"hero_limit"`
	IslandRegionLimit     int           `yaml:"island_region_limit"`
	ValueToIgnore         float64       `yaml:"value_to_ignore"`
	DangerousTaskPenalty  float64       `yaml:"dangerous_task_penalty"`
	DistanceWeight        float64       `yaml:"distance_weight"`
	ArmyAdvantage         ArmyAdvantage `yaml:"army_advantage"`
	FighterRiskFactor     float64       `yaml:"fighter_risk_factor"`
	FogTileValue          float64       `yaml:"fog_tile_value"`
	MaxHeroActionsPerTurn int           `yaml:"max_hero_actions_per_turn"`
	Battle                BattleWeights `yaml:"battle"`
}

// DefaultTuning returns the built-in weights.
func DefaultTuning() Tuning {
	return Tuning{
		Region: RegionWeights{
			CastleSafety:      4,
			HeroSafety:        2,
			EnemyCastleDanger: 3,
			FogTilesPerDanger: 10,
			ThreatDanger:      5,
			ThreatProjection:  0.5,
			MaxThreatRatio:    10,
		},
		ThreatDistanceLimit:  2500,
		GoldReserve:          1000,
		HeroCost:             2500,
		HeroLimit:            4,
		IslandRegionLimit:    3,
		ValueToIgnore:        0,
		DangerousTaskPenalty: 20000,
		DistanceWeight:       0.1,
		ArmyAdvantage: ArmyAdvantage{
			Large:  1.8,
			Medium: 1.5,
			Small:  1.3,
		},
		FighterRiskFactor:     0.8,
		FogTileValue:          50,
		MaxHeroActionsPerTurn: 50,
		Battle: BattleWeights{
			RetreatRatio:         0.1,
			ShooterWeight:        0.5,
			SpeedAdvantageWeight: 0.05,
			OverpoweredRatio:     10,
			DefensiveArcherRatio: 0.5,
			FasterTargetBonus:    0.25,
			RetaliationWeight:    0.5,
		},
	}
}

// LoadTuning overlays a YAML file on the default weights.
func LoadTuning(path string) (Tuning, error) {
	t := DefaultTuning()
	raw, err := os.ReadFile(path)
	if err != nil {
		return t, fmt.Errorf("reading tuning: %w", err)
	}
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return t, fmt.Errorf("%s: %w", path, err)
	}
	if err := t.Validate(); err != nil {
		return t, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Validate rejects weights the strategy cannot work with.
func (t Tuning) Validate() error {
	var errs []error
	if t.DistanceWeight <= 0 {
		errs = append(errs, errors.New("distance_weight must be positive"))
	}
	if t.Region.FogTilesPerDanger <= 0 {
		errs = append(errs, errors.New("region.fog_tiles_per_danger must be positive"))
	}
	if t.Region.ThreatDanger < 0 || t.Region.ThreatProjection < 0 || t.Region.ThreatProjection > 1 {
		errs = append(errs, errors.New("region threat weights out of range"))
	}
	a := t.ArmyAdvantage
	if a.Small < 1 || a.Medium < a.Small || a.Large < a.Medium {
		errs = append(errs, errors.New("army_advantage must satisfy 1 <= small <= medium <= large"))
	}
	if t.MaxHeroActionsPerTurn <= 0 {
		errs = append(errs, errors.New("max_hero_actions_per_turn must be positive"))
	}
	if t.Battle.RetreatRatio < 0 || t.Battle.RetreatRatio >= 1 {
		errs = append(errs, errors.New("battle.retreat_ratio must be in [0, 1)"))
	}
	if t.FighterRiskFactor < 0 || t.FighterRiskFactor > 1 {
		errs = append(errs, errors.New("fighter_risk_factor must be in [0, 1]"))
	}
	return errors.Join(errs...)
}
