package ares

import (
	"fmt"

	"aresrules.dev/internal/sim/board"
	"aresrules.dev/internal/sim/gamelog"
	"aresrules.dev/internal/sim/player"
)

type Severity int

const (
	SeverityNone Severity = iota
	SeverityMild
	SeveritySevere
)

func (s Severity) String() string {
	switch s {
	case SeverityMild:
		return "mild"
	case SeveritySevere:
		return "severe"
	default:
		return "none"
	}
}

var (
	OceanUpgradeTiles = []board.TileKind{board.TileOceanCity, board.TileOceanFarm, board.TileOceanSanctuary}
	HazardTiles       = []board.TileKind{board.TileDustStormMild, board.TileDustStormSevere, board.TileErosionMild, board.TileErosionSevere}
)

func SeverityOf(k board.TileKind) Severity {
	switch k {
	case board.TileDustStormMild, board.TileErosionMild:
		return SeverityMild
	case board.TileDustStormSevere, board.TileErosionSevere:
		return SeveritySevere
	default:
		return SeverityNone
	}
}

func HazardSeverity(sp *board.Space) Severity {
	if sp.Tile == nil {
		return SeverityNone
	}
	return SeverityOf(sp.Tile.Kind)
}

func HasHazardTile(sp *board.Space) bool {
	return HazardSeverity(sp) != SeverityNone
}

func IsOceanUpgrade(k board.TileKind) bool {
	for _, t := range OceanUpgradeTiles {
		if t == k {
			return true
		}
	}
	return false
}

func isDustStorm(k board.TileKind) bool {
	return k == board.TileDustStormMild || k == board.TileDustStormSevere
}

// CanCover reports whether newTile may be placed on sp.
func CanCover(sp *board.Space, newTile board.Tile) bool {
	if sp.Tile == nil {
		return true
	}
	if HasHazardTile(sp) && !sp.Tile.ProtectedHazard {
		return true
	}
	return sp.Tile.Kind == board.TileOcean && IsOceanUpgrade(newTile.Kind)
}

func PutHazardAt(sp *board.Space, k board.TileKind) {
	sp.Tile = &board.Tile{Kind: k}
}

// ProtectHazard shields the hazard on sp from covering and removal.
func ProtectHazard(sp *board.Space) error {
	if !HasHazardTile(sp) {
		return fmt.Errorf("%w: %s", ErrNotHazard, sp.ID)
	}
	sp.Tile.ProtectedHazard = true
	return nil
}

func (h *Handler) placeHazard(env Env, k board.TileKind, direction int) (*board.Space, error) {
	sp, err := env.SpaceByOffset(direction)
	if err != nil {
		return nil, fmt.Errorf("place %s: %w", k, err)
	}
	PutHazardAt(sp, k)
	return sp, nil
}

// SetupHazards seeds the starting dust storms; fewer players get more storms.
func (h *Handler) SetupHazards(env Env, playerCount int) error {
	var directions []int
	switch {
	case playerCount >= 5:
		directions = []int{1}
	case playerCount == 4:
		directions = []int{1, -1}
	default:
		directions = []int{1, 1, -1}
	}
	for _, dir := range directions {
		if _, err := h.placeHazard(env, board.TileDustStormMild, dir); err != nil {
			return err
		}
	}
	return nil
}

func (h *Handler) OnTemperatureChange(env Env) {
	if !h.data.IncludeHazards {
		return
	}
	// No erosions yet is fine: the erosion gate reads this gate when it fires.
	testConstraint(&h.data.Hazards.SevereErosionTemperature, env.Temperature(), func() {
		makeSevere(env, board.TileErosionMild, board.TileErosionSevere)
	})
}

func (h *Handler) OnOxygenChange(env Env) {
	if !h.data.IncludeHazards {
		return
	}
	testConstraint(&h.data.Hazards.SevereDustStormOxygen, env.OxygenLevel(), func() {
		makeSevere(env, board.TileDustStormMild, board.TileDustStormSevere)
	})
}

// OnOceanPlaced runs the two ocean-count gates after p placed an ocean.
func (h *Handler) OnOceanPlaced(env Env, p *player.Player) {
	if !h.data.IncludeHazards {
		return
	}
	h.testToPlaceErosionTiles(env, p)
	h.testToRemoveDustStorms(env, p)
}

// testToPlaceErosionTiles drops an erosion tile in each direction. A crowded
// board just gets fewer erosions; the gate closes either way.
func (h *Handler) testToPlaceErosionTiles(env Env, p *player.Player) {
	testConstraint(&h.data.Hazards.ErosionOceanCount, env.Board().OceanCount(), func() {
		kind := board.TileErosionMild
		if !h.data.Hazards.SevereErosionTemperature.Available {
			kind = board.TileErosionSevere
		}
		for _, dir := range []int{1, -1} {
			sp, err := h.placeHazard(env, kind, dir)
			if err != nil {
				env.Log("No space left for ${0} tile", gamelog.String(kind.String()))
				continue
			}
			env.Log("${0} placed ${1} tile at ${2}", gamelog.Player(p.ID), gamelog.String(kind.String()), gamelog.String(sp.ID))
		}
	})
}

func (h *Handler) testToRemoveDustStorms(env Env, p *player.Player) {
	testConstraint(&h.data.Hazards.RemoveDustStormsOceanCount, env.Board().OceanCount(), func() {
		for _, sp := range env.Board().Spaces() {
			if sp.Tile == nil || !isDustStorm(sp.Tile.Kind) || sp.Tile.ProtectedHazard {
				continue
			}
			sp.Tile = nil
		}
		if !env.FreePlacement() {
			steps := h.tune.Hazards.DustStormRemovalTR
			p.IncreaseTerraformRating(steps)
			env.Log("${0}'s TR increases ${1} step(s) for eliminating dust storms", gamelog.Player(p.ID), gamelog.Number(steps))
		}
	})
}

func makeSevere(env Env, from, to board.TileKind) {
	for _, sp := range env.Board().Spaces() {
		if sp.Tile != nil && sp.Tile.Kind == from {
			// Protection survives the upgrade.
			sp.Tile.Kind = to
		}
	}
	env.Log("${0} have upgraded to ${1}", gamelog.String(from.String()), gamelog.String(to.String()))
}

// GrantBonusForRemovingHazard rewards p for covering a hazard of kind initial.
// initial is the tile kind the space held before placement, or 0 for an empty space.
func (h *Handler) GrantBonusForRemovingHazard(env Env, p *player.Player, initial board.TileKind) {
	if env.FreePlacement() {
		return
	}
	var steps int
	switch SeverityOf(initial) {
	case SeverityMild:
		steps = h.tune.Hazards.MildRemovalTR
	case SeveritySevere:
		steps = h.tune.Hazards.SevereRemovalTR
	default:
		return
	}
	p.IncreaseTerraformRating(steps)
	env.Log("${0}'s TR increases ${1} step(s) for removing ${2}", gamelog.Player(p.ID), gamelog.Number(steps), gamelog.String(initial.String()))
}
