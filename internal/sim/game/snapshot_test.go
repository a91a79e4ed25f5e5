package game

import (
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"aresrules.dev/internal/persistence/snapshot"
	"aresrules.dev/internal/sim/board"
	"aresrules.dev/internal/sim/interrupt"
	"aresrules.dev/internal/sim/player"
	"aresrules.dev/internal/sim/tuning"
)

// quietLandSpace finds an empty land space with no occupied neighbours.
func quietLandSpace(t *testing.T, g *Game) string {
	t.Helper()
	for _, sp := range g.Board().AvailableLandSpaces("") {
		quiet := true
		for _, adj := range g.Board().Adjacent(sp) {
			if adj.Tile != nil {
				quiet = false
			}
		}
		if quiet {
			return sp.ID
		}
	}
	t.Fatalf("no quiet land space")
	return ""
}

func TestSnapshot_RoundTrip(t *testing.T) {
	g, p := newHazardGame(t)
	other, _ := g.Player("p2")
	p.PlayedCards = append(p.PlayedCards, &player.Card{Name: "Pets", ResourceType: player.CardResourceAnimal, Resources: 1})
	other.Corporation = &player.Card{Name: "Arklight", ResourceType: player.CardResourceAnimal}
	for i := 0; i < 3; i++ {
		addOcean(t, g, p)
	}
	g.IncreaseOxygenLevel(p, 5)
	storm := tilesByKind(g)[board.TileDustStormSevere][0]
	if err := g.ProtectHazard(storm.ID); err != nil {
		t.Fatal(err)
	}
	quiet := quietLandSpace(t, g)
	if err := g.AddTile(other, quiet, board.Tile{Kind: board.TileCommercialDistrict},
		WithAdjacency(board.Adjacency{Bonuses: []board.Bonus{board.BonusMegaCredits, board.BonusAnimal}, Cost: 1})); err != nil {
		t.Fatal(err)
	}
	if err := g.ResolveAll(func(in *interrupt.Interrupt) interrupt.Response {
		t.Fatalf("unexpected interrupt %v", in)
		return interrupt.Response{}
	}); err != nil {
		t.Fatal(err)
	}
	g.SetPhase(PhaseProduction)

	snap, err := g.ExportSnapshot()
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "g1.snap.zst")
	if err := snapshot.WriteSnapshot(path, snap); err != nil {
		t.Fatal(err)
	}
	read, err := snapshot.ReadSnapshot(path)
	if err != nil {
		t.Fatal(err)
	}
	restored, err := ImportSnapshot(read, Options{Tuning: tuning.Defaults()})
	if err != nil {
		t.Fatal(err)
	}
	again, err := restored.ExportSnapshot()
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(snap, again) {
		t.Fatalf("snapshot changed across import:\nbefore=%+v\nafter=%+v", snap, again)
	}
	if restored.Phase() != PhaseProduction || restored.Temperature() != g.Temperature() {
		t.Fatalf("phase=%s temperature=%d", restored.Phase(), restored.Temperature())
	}
	if restored.AresData().Hazards != g.AresData().Hazards {
		t.Fatalf("gate state lost: %+v", restored.AresData().Hazards)
	}
	if a, b := g.Dealer().Deal(), restored.Dealer().Deal(); a != b {
		t.Fatalf("dealer diverged: %d vs %d", a, b)
	}
}

func TestExportSnapshot_RefusesPendingInterrupts(t *testing.T) {
	g, p, _ := newTestGame(t, Options{Ares: true, Tuning: emptyBoardTuning()})
	sp, _ := g.Board().Space("01")
	sp.Tile = &board.Tile{Kind: board.TileErosionMild}
	p.SetResource(player.MegaCredits, 8)
	if err := g.AddTile(p, "01", board.Tile{Kind: board.TileGreenery}); err != nil {
		t.Fatal(err)
	}
	if _, err := g.ExportSnapshot(); err == nil {
		t.Fatalf("expected error with a payment pending")
	}
}

func TestSnapshot_KeepsClaimsAndStackedCards(t *testing.T) {
	g, p, other := newTestGame(t, Options{Ares: true, Tuning: emptyBoardTuning()})
	if err := g.ClaimLand(p, "20"); err != nil {
		t.Fatal(err)
	}
	g.Dealer().Stack(7, 2)

	snap, err := g.ExportSnapshot()
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "g1.snap.zst")
	if err := snapshot.WriteSnapshot(path, snap); err != nil {
		t.Fatal(err)
	}
	read, err := snapshot.ReadSnapshot(path)
	if err != nil {
		t.Fatal(err)
	}
	restored, err := ImportSnapshot(read, Options{Tuning: emptyBoardTuning()})
	if err != nil {
		t.Fatal(err)
	}

	sp, _ := restored.Board().Space("20")
	if sp.Tile != nil || sp.Owner != p.ID {
		t.Fatalf("claim lost: tile=%+v owner=%q", sp.Tile, sp.Owner)
	}
	rp, _ := restored.Player(other.ID)
	if err := restored.AddTile(rp, "20", board.Tile{Kind: board.TileGreenery}); !errors.Is(err, ErrLandClaimed) {
		t.Fatalf("expected claimed land, got %v", err)
	}
	for _, want := range []int{7, 2} {
		if got := restored.Dealer().Deal(); got != want {
			t.Fatalf("stacked card: got %d want %d", got, want)
		}
	}
	g.Dealer().Deal()
	g.Dealer().Deal()
	if a, b := g.Dealer().Deal(), restored.Dealer().Deal(); a != b {
		t.Fatalf("dealer diverged after the stack: %d vs %d", a, b)
	}
}
