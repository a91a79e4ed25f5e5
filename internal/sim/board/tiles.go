package board

import "fmt"

type TileKind int

const (
	TileGreenery TileKind = iota + 1
	TileOcean
	TileCity
	TileCapital
	TileCommercialDistrict
	TileEcologicalZone
	TileIndustrialCenter
	TileLavaFlows
	TileMiningArea
	TileMiningRights
	TileMoholeArea
	TileNaturalPreserve
	TileNuclearZone
	TileRestrictedArea
	TileBiofertilizerFacility
	TileMetallicAsteroid
	TileSolarFarm
	TileOceanCity
	TileOceanFarm
	TileOceanSanctuary
	TileDustStormMild
	TileDustStormSevere
	TileErosionMild
	TileErosionSevere
	TileMiningSteelBonus
	TileMiningTitaniumBonus
)

type tileName struct {
	id      string
	display string
}

var tileNames = map[TileKind]tileName{
	TileGreenery:              {"GREENERY", "greenery"},
	TileOcean:                 {"OCEAN", "ocean"},
	TileCity:                  {"CITY", "city"},
	TileCapital:               {"CAPITAL", "Capital"},
	TileCommercialDistrict:    {"COMMERCIAL_DISTRICT", "Commercial District"},
	TileEcologicalZone:        {"ECOLOGICAL_ZONE", "Ecological Zone"},
	TileIndustrialCenter:      {"INDUSTRIAL_CENTER", "Industrial Center"},
	TileLavaFlows:             {"LAVA_FLOWS", "Lava Flows"},
	TileMiningArea:            {"MINING_AREA", "Mining Area"},
	TileMiningRights:          {"MINING_RIGHTS", "Mining Rights"},
	TileMoholeArea:            {"MOHOLE_AREA", "Mohole Area"},
	TileNaturalPreserve:       {"NATURAL_PRESERVE", "Natural Preserve"},
	TileNuclearZone:           {"NUCLEAR_ZONE", "Nuclear Zone"},
	TileRestrictedArea:        {"RESTRICTED_AREA", "Restricted Area"},
	TileBiofertilizerFacility: {"BIOFERTILIZER_FACILITY", "Biofertilizer Facility"},
	TileMetallicAsteroid:      {"METALLIC_ASTEROID", "Metallic Asteroid"},
	TileSolarFarm:             {"SOLAR_FARM", "Solar Farm"},
	TileOceanCity:             {"OCEAN_CITY", "Ocean City"},
	TileOceanFarm:             {"OCEAN_FARM", "Ocean Farm"},
	TileOceanSanctuary:        {"OCEAN_SANCTUARY", "Ocean Sanctuary"},
	TileDustStormMild:         {"DUST_STORM_MILD", "Mild Dust Storm"},
	TileDustStormSevere:       {"DUST_STORM_SEVERE", "Severe Dust Storm"},
	TileErosionMild:           {"EROSION_MILD", "Mild Erosion"},
	TileErosionSevere:         {"EROSION_SEVERE", "Severe Erosion"},
	TileMiningSteelBonus:      {"MINING_STEEL_BONUS", "Mining (Steel)"},
	TileMiningTitaniumBonus:   {"MINING_TITANIUM_BONUS", "Mining (Titanium)"},
}

var tileByID = func() map[string]TileKind {
	m := make(map[string]TileKind, len(tileNames))
	for k, n := range tileNames {
		m[n.id] = k
	}
	return m
}()

// ID is the stable identifier used in snapshots.
func (k TileKind) ID() string {
	if n, ok := tileNames[k]; ok {
		return n.id
	}
	return fmt.Sprintf("TILE_%d", int(k))
}

// String is the human-readable name used in game log messages.
func (k TileKind) String() string {
	if n, ok := tileNames[k]; ok {
		return n.display
	}
	return "special"
}

func ParseTileKind(id string) (TileKind, error) {
	if k, ok := tileByID[id]; ok {
		return k, nil
	}
	return 0, fmt.Errorf("unknown tile kind %q", id)
}

// IsOcean reports whether k counts toward the ocean total.
func IsOcean(k TileKind) bool {
	switch k {
	case TileOcean, TileOceanCity, TileOceanFarm, TileOceanSanctuary:
		return true
	}
	return false
}

type Tile struct {
	Kind TileKind
	// ProtectedHazard marks a hazard that cannot be covered or cleared.
	ProtectedHazard bool
}

type Bonus int

const (
	BonusTitanium Bonus = iota + 1
	BonusSteel
	BonusPlant
	BonusDrawCard
	BonusHeat
	BonusOcean
	BonusMegaCredits
	BonusAnimal
	BonusMicrobe
	BonusPower
)

var bonusNames = map[Bonus]string{
	BonusTitanium:    "Titanium",
	BonusSteel:       "Steel",
	BonusPlant:       "Plant",
	BonusDrawCard:    "Card",
	BonusHeat:        "Heat",
	BonusOcean:       "Ocean",
	BonusMegaCredits: "MC",
	BonusAnimal:      "Animal",
	BonusMicrobe:     "Microbe",
	BonusPower:       "Power",
}

func (b Bonus) String() string {
	if s, ok := bonusNames[b]; ok {
		return s
	}
	return "special"
}

func ParseBonus(s string) (Bonus, error) {
	for b, name := range bonusNames {
		if name == s {
			return b, nil
		}
	}
	return 0, fmt.Errorf("unknown bonus %q", s)
}

// Adjacency is attached to a space by the card that placed its tile.
type Adjacency struct {
	Bonuses []Bonus
	// Cost is a flat M€ surcharge for placing next to this space.
	Cost int
}
