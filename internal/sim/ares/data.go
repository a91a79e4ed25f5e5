package ares

import "aresrules.dev/internal/sim/tuning"

// HazardConstraint is a one-shot gate: once Available is false it stays false.
type HazardConstraint struct {
	Threshold int  `json:"threshold"`
	Available bool `json:"available"`
}

type HazardData struct {
	// Oceans: add erosion tiles.
	ErosionOceanCount HazardConstraint `json:"erosion_ocean_count"`
	// Oceans: remove dust storms.
	RemoveDustStormsOceanCount HazardConstraint `json:"remove_dust_storms_ocean_count"`
	// Temperature: erosions become severe.
	SevereErosionTemperature HazardConstraint `json:"severe_erosion_temperature"`
	// Oxygen: dust storms become severe.
	SevereDustStormOxygen HazardConstraint `json:"severe_dust_storm_oxygen"`
}

type MilestoneCount struct {
	PlayerID string `json:"player_id"`
	Count    int    `json:"count"`
}

// Data is the per-game Ares state. It is owned by the game and handed to Handler by pointer.
type Data struct {
	Active         bool             `json:"active"`
	IncludeHazards bool             `json:"include_hazards"`
	Hazards        HazardData       `json:"hazards"`
	Milestones     []MilestoneCount `json:"milestones"`
}

func InitialData(active, includeHazards bool, h tuning.Hazards, playerIDs []string) Data {
	d := Data{
		Active:         active,
		IncludeHazards: includeHazards,
		Hazards: HazardData{
			ErosionOceanCount:          HazardConstraint{Threshold: h.ErosionOceanCount, Available: true},
			RemoveDustStormsOceanCount: HazardConstraint{Threshold: h.RemoveDustStormsOceanCount, Available: true},
			SevereErosionTemperature:   HazardConstraint{Threshold: h.SevereErosionTemperature, Available: true},
			SevereDustStormOxygen:      HazardConstraint{Threshold: h.SevereDustStormOxygen, Available: true},
		},
		Milestones: make([]MilestoneCount, 0, len(playerIDs)),
	}
	for _, id := range playerIDs {
		d.Milestones = append(d.Milestones, MilestoneCount{PlayerID: id})
	}
	return d
}

// testConstraint fires once when value reaches the threshold, then closes the gate.
func testConstraint(c *HazardConstraint, value int, fire func()) {
	if !c.Available || value < c.Threshold {
		return
	}
	fire()
	c.Available = false
}
