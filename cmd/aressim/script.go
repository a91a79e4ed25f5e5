package main

import (
	"errors"
	"fmt"
	"log"

	"aresrules.dev/internal/protocol"
	"aresrules.dev/internal/sim/ares"
	"aresrules.dev/internal/sim/board"
	"aresrules.dev/internal/sim/game"
	"aresrules.dev/internal/sim/interrupt"
	"aresrules.dev/internal/sim/player"
)

const startingMegaCredits = 42

// newPlayers seats n players. The first holds Marketing Experts, the second
// an animal card and Ecological Survey, the third Geological Survey.
func newPlayers(n int) []*player.Player {
	out := make([]*player.Player, 0, n)
	for i := 0; i < n; i++ {
		p := player.New(fmt.Sprintf("p%d", i+1), fmt.Sprintf("Player %d", i+1))
		p.SetResource(player.MegaCredits, startingMegaCredits)
		p.AddProduction(player.MegaCredits, 2)
		p.AddProduction(player.Heat, 1)
		switch i {
		case 0:
			p.PlayedCards = append(p.PlayedCards, &player.Card{Name: ares.CardMarketingExperts})
		case 1:
			p.PlayedCards = append(p.PlayedCards,
				&player.Card{Name: "Birds", ResourceType: player.CardResourceAnimal},
				&player.Card{Name: ares.CardEcologicalSurvey})
		case 2:
			p.PlayedCards = append(p.PlayedCards, &player.Card{Name: ares.CardGeologicalSurvey})
		}
		out = append(out, p)
	}
	return out
}

// autoResponse answers interrupts with the first option, paying M€ before
// heat and giving up the cheapest production first.
func autoResponse(g *game.Game) func(*interrupt.Interrupt) interrupt.Response {
	return func(in *interrupt.Interrupt) interrupt.Response {
		var r interrupt.Response
		p, _ := g.Player(in.PlayerID)
		switch in.Kind {
		case interrupt.KindSelectCard:
			if len(in.Cards) > 0 {
				r.Card = in.Cards[0]
			}
		case interrupt.KindSelectSpace:
			if len(in.Spaces) > 0 {
				r.SpaceID = in.Spaces[0]
			}
		case interrupt.KindSelectHowToPay:
			if p != nil {
				r.Payment.MegaCredits = min(in.Amount, p.Resource(player.MegaCredits))
				r.Payment.Heat = in.Amount - r.Payment.MegaCredits
			}
		case interrupt.KindSelectProductionToLose:
			if p != nil {
				r.Production = pickProductionLoss(p, in.Units)
			}
		}
		return r
	}
}

func pickProductionLoss(p *player.Player, units int) player.ProductionUnits {
	var u player.ProductionUnits
	take := func(dst *int, r player.Resource, floor int) {
		n := min(units, p.Production(r)-floor)
		if n > 0 {
			*dst += n
			units -= n
		}
	}
	take(&u.Heat, player.Heat, 0)
	take(&u.Energy, player.Energy, 0)
	take(&u.Plants, player.Plants, 0)
	take(&u.Steel, player.Steel, 0)
	take(&u.Titanium, player.Titanium, 0)
	take(&u.MegaCredits, player.MegaCredits, player.MinMegaCreditProduction)
	return u
}

type script struct {
	g      *game.Game
	logger *log.Logger

	// afterGeneration runs once the generation's interrupts are resolved.
	afterGeneration func(gen int) error

	placed  int
	skipped int
}

// skippable reports whether a rejected placement only ends the player's action.
func skippable(err error) bool {
	if errors.Is(err, ares.ErrInvariant) {
		return false
	}
	switch protocol.CodeOf(err) {
	case protocol.ErrNoResource, protocol.ErrConflict, protocol.ErrInvalidTarget:
		return true
	}
	return false
}

func (s *script) settle() error {
	return s.g.ResolveAll(autoResponse(s.g))
}

func (s *script) try(what string, p *player.Player, err error) error {
	if err == nil {
		s.placed++
		return s.settle()
	}
	if skippable(err) {
		s.skipped++
		s.logger.Printf("gen %d: %s skipped %s: %v (%s)", s.g.Generation(), p.ID, what, err, protocol.CodeOf(err))
		return nil
	}
	return fmt.Errorf("%s %s: %w", p.ID, what, err)
}

func (s *script) landSpace(p *player.Player, salt int) (*board.Space, bool) {
	spaces := s.g.Board().AvailableLandSpaces(p.ID)
	if len(spaces) == 0 {
		return nil, false
	}
	return spaces[(s.g.Generation()*7+salt*13)%len(spaces)], true
}

func (s *script) turn(i int, p *player.Player) error {
	gen := s.g.Generation()
	if oceans := s.g.Board().AvailableOceanSpaces(); len(oceans) > 0 && s.g.Board().OceanCount() < board.MaxOceans {
		sp := oceans[(gen+i)%len(oceans)]
		if err := s.try("ocean at "+sp.ID, p, s.g.AddOceanTile(p, sp.ID)); err != nil {
			return err
		}
	}

	if sp, ok := s.landSpace(p, i); ok {
		tile := board.Tile{Kind: board.TileCity}
		var opts []game.TileOption
		switch {
		case gen%3 == 1:
			tile.Kind = board.TileCommercialDistrict
			opts = append(opts, game.WithAdjacency(board.Adjacency{Bonuses: []board.Bonus{board.BonusMegaCredits, board.BonusMegaCredits}}))
		case gen%3 == 2:
			tile.Kind = board.TileNaturalPreserve
			opts = append(opts, game.WithAdjacency(board.Adjacency{Bonuses: []board.Bonus{board.BonusAnimal}}))
		}
		if err := s.try(tile.Kind.String()+" at "+sp.ID, p, s.g.AddTile(p, sp.ID, tile, opts...)); err != nil {
			return err
		}
	}

	if i%2 == 0 {
		s.g.IncreaseTemperature(p, 1)
	} else {
		s.g.IncreaseOxygenLevel(p, 1)
	}
	return s.settle()
}

func (s *script) solarPhase() error {
	s.g.SetPhase(game.PhaseSolar)
	defer s.g.SetPhase(game.PhaseAction)
	players := s.g.Players()
	oceans := s.g.Board().AvailableOceanSpaces()
	if len(oceans) == 0 || len(players) == 0 {
		return nil
	}
	first := players[0]
	return s.try("world government ocean", first, s.g.AddOceanTile(first, oceans[len(oceans)-1].ID))
}

func (s *script) run(generations int) error {
	s.g.SetPhase(game.PhaseAction)
	for gen := 1; gen <= generations; gen++ {
		for i, p := range s.g.Players() {
			if err := s.turn(i, p); err != nil {
				return err
			}
		}
		if err := s.solarPhase(); err != nil {
			return err
		}
		for _, p := range s.g.Players() {
			p.AddResource(player.MegaCredits, p.Production(player.MegaCredits)+p.TerraformRating())
			p.AddResource(player.Heat, p.Production(player.Heat))
		}
		if s.afterGeneration != nil {
			if err := s.afterGeneration(s.g.Generation()); err != nil {
				return err
			}
		}
		if gen < generations {
			s.g.NextGeneration()
			s.g.SetPhase(game.PhaseAction)
		}
	}
	return nil
}
