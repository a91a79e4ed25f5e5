package tuning

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Tuning struct {
	Seed int64 `yaml:"seed"`

	Hazards    Hazards    `yaml:"hazards"`
	Adjacency  Adjacency  `yaml:"adjacency"`
	Milestones Milestones `yaml:"milestones"`
	Board      Board      `yaml:"board"`
}

type Hazards struct {
	ErosionOceanCount          int `yaml:"erosion_ocean_count"`
	RemoveDustStormsOceanCount int `yaml:"remove_dust_storms_ocean_count"`
	SevereErosionTemperature   int `yaml:"severe_erosion_temperature"`
	SevereDustStormOxygen      int `yaml:"severe_dust_storm_oxygen"`

	MildCoverCost   int `yaml:"mild_cover_cost"`
	SevereCoverCost int `yaml:"severe_cover_cost"`

	MildAdjacentProduction   int `yaml:"mild_adjacent_production"`
	SevereAdjacentProduction int `yaml:"severe_adjacent_production"`

	MildRemovalTR      int `yaml:"mild_removal_tr"`
	SevereRemovalTR    int `yaml:"severe_removal_tr"`
	DustStormRemovalTR int `yaml:"dust_storm_removal_tr"`
}

type Adjacency struct {
	OwnerReward        int `yaml:"owner_reward"`
	DoubledOwnerReward int `yaml:"doubled_owner_reward"`
	// ProductionBuffer is added to M€ production when checking production costs.
	ProductionBuffer int `yaml:"production_buffer"`
}

type Milestones struct {
	NetworkerThreshold int `yaml:"networker_threshold"`
}

type Board struct {
	OceanSpaces []string `yaml:"ocean_spaces"`
	// SpaceBonuses are the bonuses printed on a space, keyed by space id ("Steel", "Plant", "Card", ...).
	SpaceBonuses map[string][]string `yaml:"space_bonuses"`
}

func Defaults() Tuning {
	return Tuning{
		Seed: 1337,
		Hazards: Hazards{
			ErosionOceanCount:          3,
			RemoveDustStormsOceanCount: 6,
			SevereErosionTemperature:   -4,
			SevereDustStormOxygen:      5,
			MildCoverCost:              8,
			SevereCoverCost:            16,
			MildAdjacentProduction:     1,
			SevereAdjacentProduction:   2,
			MildRemovalTR:              1,
			SevereRemovalTR:            2,
			DustStormRemovalTR:         1,
		},
		Adjacency: Adjacency{
			OwnerReward:        1,
			DoubledOwnerReward: 2,
			ProductionBuffer:   5,
		},
		Milestones: Milestones{NetworkerThreshold: 3},
		Board: Board{
			OceanSpaces: []string{"04", "05", "06", "10", "11", "19", "27", "28", "33", "34", "35", "44", "50", "57", "58"},
		},
	}
}

// Load reads a tuning file on top of Defaults, so a file only needs the keys it changes.
func Load(path string) (Tuning, error) {
	t := Defaults()
	raw, err := os.ReadFile(path)
	if err != nil {
		return t, err
	}
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return t, fmt.Errorf("tuning.yaml: %w", err)
	}
	if err := t.Validate(); err != nil {
		return t, fmt.Errorf("tuning.yaml: %w", err)
	}
	return t, nil
}

func (t Tuning) Validate() error {
	var errs []error
	for _, f := range []struct {
		name string
		v    int
	}{
		{"hazards.mild_cover_cost", t.Hazards.MildCoverCost},
		{"hazards.severe_cover_cost", t.Hazards.SevereCoverCost},
		{"hazards.mild_adjacent_production", t.Hazards.MildAdjacentProduction},
		{"hazards.severe_adjacent_production", t.Hazards.SevereAdjacentProduction},
		{"hazards.mild_removal_tr", t.Hazards.MildRemovalTR},
		{"hazards.severe_removal_tr", t.Hazards.SevereRemovalTR},
		{"hazards.dust_storm_removal_tr", t.Hazards.DustStormRemovalTR},
		{"adjacency.owner_reward", t.Adjacency.OwnerReward},
		{"adjacency.doubled_owner_reward", t.Adjacency.DoubledOwnerReward},
		{"adjacency.production_buffer", t.Adjacency.ProductionBuffer},
		{"milestones.networker_threshold", t.Milestones.NetworkerThreshold},
	} {
		if f.v < 0 {
			errs = append(errs, fmt.Errorf("%s must be >= 0", f.name))
		}
	}
	if t.Hazards.ErosionOceanCount < 0 || t.Hazards.RemoveDustStormsOceanCount < 0 {
		errs = append(errs, errors.New("ocean thresholds must be >= 0"))
	}
	seen := map[string]bool{}
	for _, id := range t.Board.OceanSpaces {
		if seen[id] {
			errs = append(errs, fmt.Errorf("board.ocean_spaces: duplicate %q", id))
		}
		seen[id] = true
	}
	return errors.Join(errs...)
}
