package board

import (
	"errors"
	"testing"
)

func ids(spaces []*Space) []string {
	out := make([]string, 0, len(spaces))
	for _, sp := range spaces {
		out = append(out, sp.ID)
	}
	return out
}

func sameIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestNew_Layout(t *testing.T) {
	b := New([]string{"04", "05"})
	if got := len(b.Spaces()); got != 61 {
		t.Fatalf("spaces: got %d want 61", got)
	}
	if sp, _ := b.Space("04"); sp.Type != SpaceOcean {
		t.Fatalf("04 should be an ocean space")
	}
	if sp, _ := b.Space("61"); sp.Row != 8 || sp.Col != 4 {
		t.Fatalf("61 at row=%d col=%d", sp.Row, sp.Col)
	}
	if got := len(b.SpacesOfType(SpaceOcean)); got != 2 {
		t.Fatalf("ocean spaces: got %d", got)
	}
}

func TestAdjacent_FixedOrder(t *testing.T) {
	b := New(nil)
	cases := []struct {
		id   string
		want []string
	}{
		// Top-left corner.
		{"01", []string{"02", "07", "06"}},
		// Upper half interior: row 1 col 1.
		{"07", []string{"01", "02", "08", "14", "13", "06"}},
		// Middle row: row 4 col 1.
		{"28", []string{"19", "20", "29", "37", "36", "27"}},
		// Lower half interior: row 5 col 1.
		{"37", []string{"28", "29", "38", "45", "44", "36"}},
		// Bottom-right corner.
		{"61", []string{"55", "56", "60"}},
	}
	for _, tc := range cases {
		sp, _ := b.Space(tc.id)
		if got := ids(b.Adjacent(sp)); !sameIDs(got, tc.want) {
			t.Fatalf("Adjacent(%s): got %v want %v", tc.id, got, tc.want)
		}
	}
}

func TestAdjacent_Symmetric(t *testing.T) {
	b := New(nil)
	for _, sp := range b.Spaces() {
		for _, n := range b.Adjacent(sp) {
			found := false
			for _, back := range b.Adjacent(n) {
				if back == sp {
					found = true
				}
			}
			if !found {
				t.Fatalf("%s lists %s but not the reverse", sp.ID, n.ID)
			}
		}
	}
}

func TestOceanCount(t *testing.T) {
	b := New([]string{"04", "05", "10"})
	for _, id := range []string{"04", "05"} {
		sp, _ := b.Space(id)
		sp.Tile = &Tile{Kind: TileOcean}
	}
	sp, _ := b.Space("10")
	sp.Tile = &Tile{Kind: TileOceanCity}
	land, _ := b.Space("01")
	land.Tile = &Tile{Kind: TileGreenery}
	if got := b.OceanCount(); got != 3 {
		t.Fatalf("OceanCount: got %d want 3", got)
	}
}

func TestNthAvailableLandSpace(t *testing.T) {
	b := New([]string{"01"})
	sp, err := b.NthAvailableLandSpace(0, 1, "", nil)
	if err != nil || sp.ID != "02" {
		t.Fatalf("first from start: %v %v", sp, err)
	}
	sp, err = b.NthAvailableLandSpace(0, -1, "", nil)
	if err != nil || sp.ID != "61" {
		t.Fatalf("first from end: %v %v", sp, err)
	}
	sp, err = b.NthAvailableLandSpace(2, -1, "", nil)
	if err != nil || sp.ID != "59" {
		t.Fatalf("third from end: %v %v", sp, err)
	}
	// 60 land spaces, wraps.
	sp, err = b.NthAvailableLandSpace(61, 1, "", nil)
	if err != nil || sp.ID != "03" {
		t.Fatalf("wrapped: %v %v", sp, err)
	}
	claimed, _ := b.Space("02")
	claimed.Owner = "p2"
	sp, _ = b.NthAvailableLandSpace(0, 1, "p1", nil)
	if sp.ID != "03" {
		t.Fatalf("claimed space should be skipped, got %s", sp.ID)
	}
	if _, err := b.NthAvailableLandSpace(0, 1, "", func(*Space) bool { return false }); !errors.Is(err, ErrNoAvailableSpace) {
		t.Fatalf("expected ErrNoAvailableSpace, got %v", err)
	}
}

func TestTileKindIDs(t *testing.T) {
	for k := TileGreenery; k <= TileMiningTitaniumBonus; k++ {
		got, err := ParseTileKind(k.ID())
		if err != nil || got != k {
			t.Fatalf("ParseTileKind(%s): %v %v", k.ID(), got, err)
		}
	}
	if _, err := ParseTileKind("NOPE"); err == nil {
		t.Fatalf("expected unknown tile kind error")
	}
	if TileErosionSevere.String() != "Severe Erosion" {
		t.Fatalf("display name: %q", TileErosionSevere.String())
	}
}
