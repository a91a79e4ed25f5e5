package ares

import (
	"errors"
	"testing"

	"aresrules.dev/internal/protocol"
	"aresrules.dev/internal/sim/board"
	"aresrules.dev/internal/sim/interrupt"
	"aresrules.dev/internal/sim/player"
)

func TestAdjacencyCost(t *testing.T) {
	cases := []struct {
		name  string
		setup func(t *testing.T, env *fakeEnv)
		want  AdjacencyCost
	}{
		{"empty", func(*testing.T, *fakeEnv) {}, AdjacencyCost{}},
		{"neighbour surcharge", func(t *testing.T, env *fakeEnv) {
			sp := placeBonusTile(t, env, "02", "p2")
			sp.Adjacency.Cost = 3
		}, AdjacencyCost{MegaCredits: 3}},
		{"mild destination", func(t *testing.T, env *fakeEnv) {
			PutHazardAt(env.space(t, "01"), board.TileDustStormMild)
		}, AdjacencyCost{MegaCredits: 8}},
		{"severe destination", func(t *testing.T, env *fakeEnv) {
			PutHazardAt(env.space(t, "01"), board.TileErosionSevere)
		}, AdjacencyCost{MegaCredits: 16}},
		{"hazard neighbours", func(t *testing.T, env *fakeEnv) {
			PutHazardAt(env.space(t, "02"), board.TileDustStormMild)
			PutHazardAt(env.space(t, "07"), board.TileErosionSevere)
		}, AdjacencyCost{Production: 3}},
		{"destination hazard adds no production", func(t *testing.T, env *fakeEnv) {
			PutHazardAt(env.space(t, "01"), board.TileDustStormSevere)
			PutHazardAt(env.space(t, "02"), board.TileDustStormSevere)
		}, AdjacencyCost{MegaCredits: 16, Production: 2}},
	}
	for _, tc := range cases {
		env := newFakeEnv()
		h, _ := newTestHandler()
		tc.setup(t, env)
		if got := h.AdjacencyCost(env, env.space(t, "01")); got != tc.want {
			t.Fatalf("%s: got %+v want %+v", tc.name, got, tc.want)
		}
	}
}

func TestAdjacencyCost_OceanSpaceNextToHazard(t *testing.T) {
	env := newFakeEnv()
	h, _ := newTestHandler()
	sp := env.space(t, testOceanSpaces[0])
	var hazard *board.Space
	for _, adj := range env.b.Adjacent(sp) {
		if adj.Type == board.SpaceLand {
			hazard = adj
			break
		}
	}
	if hazard == nil {
		t.Fatalf("no land neighbour for %s", sp.ID)
	}
	PutHazardAt(hazard, board.TileDustStormMild)

	if got := h.AdjacencyCost(env, sp); got != (AdjacencyCost{Production: 1}) {
		t.Fatalf("ocean next to a mild hazard: got %+v", got)
	}
}

func TestAssertCanPay(t *testing.T) {
	p := player.New("p1", "Alice")
	env := newFakeEnv(p)
	h, _ := newTestHandler(p)
	PutHazardAt(env.space(t, "01"), board.TileDustStormMild)

	p.SetResource(player.MegaCredits, 7)
	_, err := h.AssertCanPay(env, p, env.space(t, "01"))
	var ae *AffordabilityError
	if !errors.As(err, &ae) || !errors.Is(err, ErrCannotAfford) {
		t.Fatalf("expected affordability error, got %v", err)
	}
	if ae.Error() != "Placing here costs 8 M€" {
		t.Fatalf("message: %q", ae.Error())
	}
	if protocol.CodeOf(err) != protocol.ErrNoResource {
		t.Fatalf("code: %s", protocol.CodeOf(err))
	}

	p.SetResource(player.Heat, 1)
	p.CanUseHeatAsMegaCredits = true
	if cost, err := h.AssertCanPay(env, p, env.space(t, "01")); err != nil || cost.MegaCredits != 8 {
		t.Fatalf("heat should cover the gap: cost=%+v err=%v", cost, err)
	}

	env.free = true
	p.SetResource(player.MegaCredits, 0)
	if cost, err := h.AssertCanPay(env, p, env.space(t, "01")); err != nil || cost != (AdjacencyCost{}) {
		t.Fatalf("free placement: cost=%+v err=%v", cost, err)
	}
}

func TestAssertCanPay_ProductionShortfall(t *testing.T) {
	p := player.New("p1", "Alice")
	env := newFakeEnv(p)
	h, _ := newTestHandler(p)
	// Six severe neighbours of 28 cost 12 production; the buffer is 5.
	sp := env.space(t, "28")
	for _, adj := range env.b.Adjacent(sp) {
		PutHazardAt(adj, board.TileDustStormSevere)
	}
	p.AddProduction(player.Heat, 6)
	_, err := h.AssertCanPay(env, p, sp)
	if err == nil || err.Error() != "Placing here costs 12 units of production and 0 M€" {
		t.Fatalf("got %v", err)
	}

	p.AddProduction(player.Heat, 1)
	if _, err := h.AssertCanPay(env, p, sp); err != nil {
		t.Fatalf("11+1 production should afford 12: %v", err)
	}
}

func TestPayAdjacencyAndHazardCosts_QueuesProductionThenPayment(t *testing.T) {
	p := player.New("p1", "Alice")
	env := newFakeEnv(p)
	h, _ := newTestHandler(p)
	PutHazardAt(env.space(t, "01"), board.TileDustStormMild)
	PutHazardAt(env.space(t, "02"), board.TileDustStormMild)
	p.SetResource(player.MegaCredits, 10)
	p.AddProduction(player.Heat, 1)

	if err := h.PayAdjacencyAndHazardCosts(env, p, env.space(t, "01")); err != nil {
		t.Fatal(err)
	}
	pending := env.queue.Pending()
	if len(pending) != 2 {
		t.Fatalf("pending: %v", pending)
	}
	if pending[0].Kind != interrupt.KindSelectProductionToLose || pending[0].Units != 1 {
		t.Fatalf("first interrupt: %v", pending[0])
	}
	if pending[1].Kind != interrupt.KindSelectHowToPay || pending[1].Amount != 8 {
		t.Fatalf("second interrupt: %v", pending[1])
	}
	if p.Resource(player.MegaCredits) != 10 || p.Production(player.Heat) != 1 {
		t.Fatalf("nothing is paid before the interrupts resolve")
	}

	if err := env.queue.Resolve(interrupt.Response{Production: player.ProductionUnits{Heat: 1}}); err != nil {
		t.Fatal(err)
	}
	if err := env.queue.Resolve(interrupt.Response{Payment: player.Payment{MegaCredits: 8}}); err != nil {
		t.Fatal(err)
	}
	if p.Resource(player.MegaCredits) != 2 || p.Production(player.Heat) != 0 {
		t.Fatalf("after payment: mc=%d heat prod=%d", p.Resource(player.MegaCredits), p.Production(player.Heat))
	}
}

func TestPayAdjacencyAndHazardCosts_RejectsWithoutQueueing(t *testing.T) {
	p := player.New("p1", "Alice")
	env := newFakeEnv(p)
	h, _ := newTestHandler(p)
	PutHazardAt(env.space(t, "01"), board.TileErosionSevere)
	err := h.PayAdjacencyAndHazardCosts(env, p, env.space(t, "01"))
	if !errors.Is(err, ErrCannotAfford) {
		t.Fatalf("expected ErrCannotAfford, got %v", err)
	}
	if env.queue.Len() != 0 {
		t.Fatalf("interrupts queued after rejection")
	}
}

func TestPayAdjacencyAndHazardCosts_NothingToPay(t *testing.T) {
	p := player.New("p1", "Alice")
	env := newFakeEnv(p)
	h, _ := newTestHandler(p)
	if err := h.PayAdjacencyAndHazardCosts(env, p, env.space(t, "01")); err != nil {
		t.Fatal(err)
	}
	if env.queue.Len() != 0 || env.log.Len() != 0 {
		t.Fatalf("free space queued %d interrupts", env.queue.Len())
	}
}
