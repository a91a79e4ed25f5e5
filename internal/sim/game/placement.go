package game

import (
	"fmt"

	"aresrules.dev/internal/sim/ares"
	"aresrules.dev/internal/sim/board"
	"aresrules.dev/internal/sim/gamelog"
	"aresrules.dev/internal/sim/interrupt"
	"aresrules.dev/internal/sim/player"
)

type tileOptions struct {
	adjacency *board.Adjacency
}

type TileOption func(*tileOptions)

// WithAdjacency attaches adjacency bonuses or costs to the placed tile.
func WithAdjacency(adj board.Adjacency) TileOption {
	return func(o *tileOptions) {
		a := adj
		a.Bonuses = append([]board.Bonus(nil), adj.Bonuses...)
		o.adjacency = &a
	}
}

func requiredSpaceType(k board.TileKind) board.SpaceType {
	if board.IsOcean(k) {
		return board.SpaceOcean
	}
	return board.SpaceLand
}

func (g *Game) validatePlacement(p *player.Player, sp *board.Space, tile board.Tile) error {
	if sp.Tile != nil && g.aresData == nil {
		return conflict(sp.ID, ErrSpaceOccupied)
	}
	if sp.Owner != "" && sp.Owner != p.ID {
		return conflict(sp.ID, fmt.Errorf("%w by %s", ErrLandClaimed, sp.Owner))
	}
	if want := requiredSpaceType(tile.Kind); sp.Type != want {
		return invalidTarget(sp.ID, fmt.Errorf("%w: %s is not %s", ErrWrongSpaceType, sp.Type, want))
	}
	if g.aresData != nil && !ares.CanCover(sp, tile) {
		return conflict(sp.ID, ErrSpaceOccupied)
	}
	return nil
}

// AddTile places tile for p on spaceID. Costs are checked before anything
// changes; payments are queued as interrupts. Bonuses are granted outside
// the solar phase only.
func (g *Game) AddTile(p *player.Player, spaceID string, tile board.Tile, opts ...TileOption) error {
	if _, ok := g.byID[p.ID]; !ok {
		return fmt.Errorf("%w %q", ErrUnknownPlayer, p.ID)
	}
	sp, ok := g.board.Space(spaceID)
	if !ok {
		return invalidTarget(spaceID, ErrUnknownSpace)
	}
	if err := g.validatePlacement(p, sp, tile); err != nil {
		return err
	}
	var o tileOptions
	for _, opt := range opts {
		opt(&o)
	}

	if g.ares != nil {
		if err := g.ares.PayAdjacencyAndHazardCosts(g, p, sp); err != nil {
			return err
		}
	}

	var initial board.TileKind
	if sp.Tile != nil {
		initial = sp.Tile.Kind
	}
	covering := sp.Tile != nil
	var survey ares.SurveyBaseline
	if g.ares != nil {
		survey = ares.BeforeTilePlacement(p)
	}

	placed := tile
	placed.ProtectedHazard = false
	sp.Tile = &placed
	sp.Adjacency = o.adjacency
	if tile.Kind == board.TileOcean {
		sp.Owner = ""
	} else {
		sp.Owner = p.ID
	}
	g.Log("${0} placed ${1} tile at ${2}", gamelog.Player(p.ID), gamelog.String(tile.Kind.String()), gamelog.String(sp.ID))

	if !g.FreePlacement() {
		if !covering {
			if err := g.grantSpaceBonuses(p, sp); err != nil {
				return err
			}
		}
		if n := g.adjacentOceans(sp); n > 0 {
			p.AddResource(player.MegaCredits, n*OceanAdjacencyMegaCredits)
		}
		if g.ares != nil {
			if err := g.ares.EarnAdjacencyBonuses(g, p, sp); err != nil {
				return err
			}
			g.ares.AfterTilePlacement(g, p, survey)
		}
	} else {
		sp.Owner = ""
	}

	if g.ares != nil {
		g.ares.GrantBonusForRemovingHazard(g, p, initial)
	}
	return nil
}

func (g *Game) adjacentOceans(sp *board.Space) int {
	n := 0
	for _, adj := range g.board.Adjacent(sp) {
		if adj.Tile != nil && board.IsOcean(adj.Tile.Kind) {
			n++
		}
	}
	return n
}

func (g *Game) grantSpaceBonuses(p *player.Player, sp *board.Space) error {
	for _, b := range sp.Bonuses {
		if err := g.GrantSpaceBonus(p, b); err != nil {
			return err
		}
	}
	return nil
}

// GrantSpaceBonus applies one standard board bonus.
func (g *Game) GrantSpaceBonus(p *player.Player, b board.Bonus) error {
	switch b {
	case board.BonusTitanium:
		p.AddResource(player.Titanium, 1)
	case board.BonusSteel:
		p.AddResource(player.Steel, 1)
	case board.BonusPlant:
		p.AddResource(player.Plants, 1)
	case board.BonusHeat:
		p.AddResource(player.Heat, 1)
	case board.BonusMegaCredits:
		p.AddResource(player.MegaCredits, 1)
	case board.BonusPower:
		p.AddResource(player.Energy, 1)
	case board.BonusDrawCard:
		p.CardsInHand++
		g.Log("${0} drew ${1} card(s)", gamelog.Player(p.ID), gamelog.Number(1))
	case board.BonusOcean:
		if !g.canAddOcean() {
			return nil
		}
		spaces := g.board.AvailableOceanSpaces()
		g.Enqueue(interrupt.SelectSpace(p.ID, "Select space for ocean tile", spaces, func(sp *board.Space) error {
			return g.AddOceanTile(p, sp.ID)
		}))
	default:
		return fmt.Errorf("space bonus %s is not a board bonus", b)
	}
	return nil
}

// ClaimLand reserves an empty land space for p. Other players cannot place there.
func (g *Game) ClaimLand(p *player.Player, spaceID string) error {
	sp, ok := g.board.Space(spaceID)
	if !ok {
		return invalidTarget(spaceID, ErrUnknownSpace)
	}
	if sp.Type != board.SpaceLand {
		return invalidTarget(sp.ID, fmt.Errorf("%w: %s is not %s", ErrWrongSpaceType, sp.Type, board.SpaceLand))
	}
	if sp.Tile != nil {
		return conflict(sp.ID, ErrSpaceOccupied)
	}
	if sp.Owner != "" {
		return conflict(sp.ID, fmt.Errorf("%w by %s", ErrLandClaimed, sp.Owner))
	}
	sp.Owner = p.ID
	g.Log("${0} claimed ${1}", gamelog.Player(p.ID), gamelog.String(sp.ID))
	return nil
}

func (g *Game) canAddOcean() bool {
	return g.board.OceanCount() < board.MaxOceans && len(g.board.AvailableOceanSpaces()) > 0
}

// AddOceanTile places an ocean for p. Once every ocean is on the board it does nothing.
func (g *Game) AddOceanTile(p *player.Player, spaceID string) error {
	if !g.canAddOcean() {
		return nil
	}
	if err := g.AddTile(p, spaceID, board.Tile{Kind: board.TileOcean}); err != nil {
		return err
	}
	if !g.FreePlacement() {
		p.IncreaseTerraformRating(1)
	}
	if g.ares != nil {
		g.ares.OnOceanPlaced(g, p)
	}
	return nil
}

// IncreaseTemperature raises the temperature by steps of 2°C, capped at the maximum.
func (g *Game) IncreaseTemperature(p *player.Player, steps int) {
	if g.temperature >= MaxTemperature || steps <= 0 {
		return
	}
	if room := (MaxTemperature - g.temperature) / 2; steps > room {
		steps = room
	}
	if !g.FreePlacement() {
		p.IncreaseTerraformRating(steps)
	}
	g.temperature += 2 * steps
	g.Log("${0} raised the temperature ${1} step(s)", gamelog.Player(p.ID), gamelog.Number(steps))
	if g.ares != nil {
		g.ares.OnTemperatureChange(g)
	}
}

// IncreaseOxygenLevel raises oxygen by steps percent, capped at the maximum.
func (g *Game) IncreaseOxygenLevel(p *player.Player, steps int) {
	if g.oxygen >= MaxOxygen || steps <= 0 {
		return
	}
	if room := MaxOxygen - g.oxygen; steps > room {
		steps = room
	}
	if !g.FreePlacement() {
		p.IncreaseTerraformRating(steps)
	}
	g.oxygen += steps
	g.Log("${0} raised the oxygen level ${1} step(s)", gamelog.Player(p.ID), gamelog.Number(steps))
	if g.ares != nil {
		g.ares.OnOxygenChange(g)
	}
}

// ProtectHazard shields the hazard on spaceID for the rest of the game.
func (g *Game) ProtectHazard(spaceID string) error {
	if g.aresData == nil {
		return ErrAresDisabled
	}
	sp, ok := g.board.Space(spaceID)
	if !ok {
		return invalidTarget(spaceID, ErrUnknownSpace)
	}
	if err := ares.ProtectHazard(sp); err != nil {
		return invalidTarget(spaceID, err)
	}
	return nil
}
