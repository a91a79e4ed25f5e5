package game

import (
	"fmt"

	"aresrules.dev/internal/persistence/snapshot"
	"aresrules.dev/internal/sim/ares"
	"aresrules.dev/internal/sim/board"
	"aresrules.dev/internal/sim/player"
)

// ExportSnapshot captures the game between actions. Pending interrupts hold
// closures and are not saved, so export only when the queue is empty.
func (g *Game) ExportSnapshot() (snapshot.SnapshotV1, error) {
	if n := g.queue.Len(); n > 0 {
		return snapshot.SnapshotV1{}, fmt.Errorf("export snapshot: %d interrupt(s) pending", n)
	}
	snap := snapshot.SnapshotV1{
		Header:        snapshot.Header{Version: snapshot.Version, GameID: g.ID, Generation: g.generation},
		Seed:          g.tune.Seed,
		Phase:         g.phase.String(),
		Temperature:   g.temperature,
		Oxygen:        g.oxygen,
		Tiles:         []snapshot.TileV1{},
		DealerDrawn:   g.dealer.Drawn(),
		DealerStacked: g.dealer.Stacked(),
	}
	if d := g.aresData; d != nil {
		snap.Ares = snapshot.AresV1{
			Active:         d.Active,
			IncludeHazards: d.IncludeHazards,
			Hazards: snapshot.HazardsV1{
				ErosionOceanCount:          gateV1(d.Hazards.ErosionOceanCount),
				RemoveDustStormsOceanCount: gateV1(d.Hazards.RemoveDustStormsOceanCount),
				SevereErosionTemperature:   gateV1(d.Hazards.SevereErosionTemperature),
				SevereDustStormOxygen:      gateV1(d.Hazards.SevereDustStormOxygen),
			},
			Milestones: make([]snapshot.MilestoneV1, 0, len(d.Milestones)),
		}
		for _, m := range d.Milestones {
			snap.Ares.Milestones = append(snap.Ares.Milestones, snapshot.MilestoneV1{PlayerID: m.PlayerID, Count: m.Count})
		}
	}

	for _, sp := range g.board.Spaces() {
		if sp.Tile == nil {
			if sp.Owner != "" {
				snap.Claims = append(snap.Claims, snapshot.ClaimV1{Space: sp.ID, Owner: sp.Owner})
			}
			continue
		}
		t := snapshot.TileV1{
			Space:           sp.ID,
			Kind:            sp.Tile.Kind.ID(),
			Owner:           sp.Owner,
			ProtectedHazard: sp.Tile.ProtectedHazard,
		}
		if sp.Adjacency != nil {
			t.Cost = sp.Adjacency.Cost
			for _, b := range sp.Adjacency.Bonuses {
				t.Bonuses = append(t.Bonuses, b.String())
			}
		}
		snap.Tiles = append(snap.Tiles, t)
	}

	for _, p := range g.players {
		pv := snapshot.PlayerV1{
			ID:              p.ID,
			Name:            p.Name,
			TerraformRating: p.TerraformRating(),
			CardsInHand:     p.CardsInHand,
			HeatAsMC:        p.CanUseHeatAsMegaCredits,
		}
		for _, r := range player.Resources {
			pv.Resources[r] = p.Resource(r)
			pv.Production[r] = p.Production(r)
		}
		if p.Corporation != nil {
			c := cardV1(p.Corporation)
			pv.Corporation = &c
		}
		for _, c := range p.PlayedCards {
			pv.PlayedCards = append(pv.PlayedCards, cardV1(c))
		}
		snap.Players = append(snap.Players, pv)
	}
	return snap, nil
}

func gateV1(c ares.HazardConstraint) snapshot.GateV1 {
	return snapshot.GateV1{Threshold: c.Threshold, Available: c.Available}
}

func gate(c snapshot.GateV1) ares.HazardConstraint {
	return ares.HazardConstraint{Threshold: c.Threshold, Available: c.Available}
}

func cardV1(c *player.Card) snapshot.CardV1 {
	v := snapshot.CardV1{Name: c.Name, Resources: c.Resources}
	if c.ResourceType != player.CardResourceNone {
		v.ResourceType = c.ResourceType.String()
	}
	return v
}

func card(v snapshot.CardV1) (*player.Card, error) {
	t, err := player.ParseCardResource(v.ResourceType)
	if err != nil {
		return nil, fmt.Errorf("card %s: %w", v.Name, err)
	}
	return &player.Card{Name: v.Name, ResourceType: t, Resources: v.Resources}, nil
}

// ImportSnapshot rebuilds a game from snap. opts supplies what a snapshot
// does not carry: tuning (board layout, rewards) and log sinks. Hazard setup
// is not rerun.
func ImportSnapshot(snap snapshot.SnapshotV1, opts Options) (*Game, error) {
	players := make([]*player.Player, 0, len(snap.Players))
	for _, pv := range snap.Players {
		p := player.New(pv.ID, pv.Name)
		p.SetTerraformRating(pv.TerraformRating)
		p.CardsInHand = pv.CardsInHand
		p.CanUseHeatAsMegaCredits = pv.HeatAsMC
		for _, r := range player.Resources {
			p.SetResource(r, pv.Resources[r])
			p.AddProduction(r, pv.Production[r])
		}
		if pv.Corporation != nil {
			c, err := card(*pv.Corporation)
			if err != nil {
				return nil, err
			}
			p.Corporation = c
		}
		for _, cv := range pv.PlayedCards {
			c, err := card(cv)
			if err != nil {
				return nil, err
			}
			p.PlayedCards = append(p.PlayedCards, c)
		}
		players = append(players, p)
	}

	opts.Ares = snap.Ares.Active
	opts.Hazards = snap.Ares.Active && snap.Ares.IncludeHazards
	opts.Tuning.Seed = snap.Seed
	opts.Dealer = NewDealer(snap.Seed)
	opts.Dealer.Skip(snap.DealerDrawn)
	opts.Dealer.Stack(snap.DealerStacked...)

	g, err := newGame(snap.Header.GameID, players, opts)
	if err != nil {
		return nil, fmt.Errorf("import snapshot: %w", err)
	}
	g.generation = snap.Header.Generation
	g.temperature = snap.Temperature
	g.oxygen = snap.Oxygen
	if snap.Phase != "" {
		if g.phase, err = ParsePhase(snap.Phase); err != nil {
			return nil, fmt.Errorf("import snapshot: %w", err)
		}
	}

	if d := g.aresData; d != nil {
		d.Hazards = ares.HazardData{
			ErosionOceanCount:          gate(snap.Ares.Hazards.ErosionOceanCount),
			RemoveDustStormsOceanCount: gate(snap.Ares.Hazards.RemoveDustStormsOceanCount),
			SevereErosionTemperature:   gate(snap.Ares.Hazards.SevereErosionTemperature),
			SevereDustStormOxygen:      gate(snap.Ares.Hazards.SevereDustStormOxygen),
		}
		d.Milestones = d.Milestones[:0]
		for _, m := range snap.Ares.Milestones {
			d.Milestones = append(d.Milestones, ares.MilestoneCount{PlayerID: m.PlayerID, Count: m.Count})
		}
	}

	for _, tv := range snap.Tiles {
		sp, ok := g.board.Space(tv.Space)
		if !ok {
			return nil, fmt.Errorf("import snapshot: %w %q", ErrUnknownSpace, tv.Space)
		}
		kind, err := board.ParseTileKind(tv.Kind)
		if err != nil {
			return nil, fmt.Errorf("import snapshot %s: %w", tv.Space, err)
		}
		sp.Tile = &board.Tile{Kind: kind, ProtectedHazard: tv.ProtectedHazard}
		sp.Owner = tv.Owner
		if len(tv.Bonuses) > 0 || tv.Cost != 0 {
			adj := &board.Adjacency{Cost: tv.Cost}
			for _, name := range tv.Bonuses {
				b, err := board.ParseBonus(name)
				if err != nil {
					return nil, fmt.Errorf("import snapshot %s: %w", tv.Space, err)
				}
				adj.Bonuses = append(adj.Bonuses, b)
			}
			sp.Adjacency = adj
		}
	}
	for _, cv := range snap.Claims {
		sp, ok := g.board.Space(cv.Space)
		if !ok {
			return nil, fmt.Errorf("import snapshot: %w %q", ErrUnknownSpace, cv.Space)
		}
		sp.Owner = cv.Owner
	}
	return g, nil
}
