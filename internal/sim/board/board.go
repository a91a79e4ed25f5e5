package board

import (
	"errors"
	"fmt"
)

type SpaceType int

const (
	SpaceLand SpaceType = iota + 1
	SpaceOcean
)

func (t SpaceType) String() string {
	switch t {
	case SpaceLand:
		return "land"
	case SpaceOcean:
		return "ocean"
	default:
		return "unknown"
	}
}

type Space struct {
	ID   string
	Type SpaceType
	Row  int
	Col  int

	// Bonuses are printed on the board and granted to whoever first occupies the space.
	Bonuses []Bonus

	Tile *Tile
	// Owner is the player id that owns the tile, empty for neutral tiles.
	Owner     string
	Adjacency *Adjacency
}

func (s *Space) String() string {
	return fmt.Sprintf("%s (row %d, col %d)", s.ID, s.Row, s.Col)
}

// RowWidths is the hex layout used by the base map: nine rows, widest in the middle.
var RowWidths = []int{5, 6, 7, 8, 9, 8, 7, 6, 5}

const MaxOceans = 9

var ErrNoAvailableSpace = errors.New("no available space")

type Board struct {
	spaces []*Space
	byID   map[string]*Space
	rows   [][]*Space
	middle int
}

// New builds the hex map. Spaces listed in oceanSpaces are reserved for oceans.
func New(oceanSpaces []string) *Board {
	oceans := make(map[string]bool, len(oceanSpaces))
	for _, id := range oceanSpaces {
		oceans[id] = true
	}
	b := &Board{
		byID:   map[string]*Space{},
		rows:   make([][]*Space, len(RowWidths)),
		middle: len(RowWidths) / 2,
	}
	n := 0
	for row, width := range RowWidths {
		for col := 0; col < width; col++ {
			n++
			id := fmt.Sprintf("%02d", n)
			typ := SpaceLand
			if oceans[id] {
				typ = SpaceOcean
			}
			sp := &Space{ID: id, Type: typ, Row: row, Col: col}
			b.spaces = append(b.spaces, sp)
			b.rows[row] = append(b.rows[row], sp)
			b.byID[id] = sp
		}
	}
	return b
}

// Spaces returns every space in id order.
func (b *Board) Spaces() []*Space { return b.spaces }

func (b *Board) Space(id string) (*Space, bool) {
	sp, ok := b.byID[id]
	return sp, ok
}

func (b *Board) at(row, col int) *Space {
	if row < 0 || row >= len(b.rows) {
		return nil
	}
	if col < 0 || col >= len(b.rows[row]) {
		return nil
	}
	return b.rows[row][col]
}

// Adjacent lists the neighbours of sp clockwise from the upper left.
// The order is fixed and is the resolution order for adjacency effects.
func (b *Board) Adjacent(sp *Space) []*Space {
	r, c := sp.Row, sp.Col
	var coords [6][2]int
	switch {
	case r < b.middle:
		coords = [6][2]int{{r - 1, c - 1}, {r - 1, c}, {r, c + 1}, {r + 1, c + 1}, {r + 1, c}, {r, c - 1}}
	case r == b.middle:
		coords = [6][2]int{{r - 1, c - 1}, {r - 1, c}, {r, c + 1}, {r + 1, c}, {r + 1, c - 1}, {r, c - 1}}
	default:
		coords = [6][2]int{{r - 1, c}, {r - 1, c + 1}, {r, c + 1}, {r + 1, c}, {r + 1, c - 1}, {r, c - 1}}
	}
	out := make([]*Space, 0, 6)
	for _, rc := range coords {
		if n := b.at(rc[0], rc[1]); n != nil {
			out = append(out, n)
		}
	}
	return out
}

func (b *Board) SpacesOfType(t SpaceType) []*Space {
	var out []*Space
	for _, sp := range b.spaces {
		if sp.Type == t {
			out = append(out, sp)
		}
	}
	return out
}

func (b *Board) OceanCount() int {
	n := 0
	for _, sp := range b.spaces {
		if sp.Tile != nil && IsOcean(sp.Tile.Kind) {
			n++
		}
	}
	return n
}

// AvailableOceanSpaces lists empty ocean-reserved spaces.
func (b *Board) AvailableOceanSpaces() []*Space {
	var out []*Space
	for _, sp := range b.spaces {
		if sp.Type == SpaceOcean && sp.Tile == nil {
			out = append(out, sp)
		}
	}
	return out
}

// AvailableLandSpaces lists empty land spaces that owner (or nobody) has claimed.
func (b *Board) AvailableLandSpaces(owner string) []*Space {
	var out []*Space
	for _, sp := range b.spaces {
		if sp.Type != SpaceLand || sp.Tile != nil {
			continue
		}
		if sp.Owner != "" && sp.Owner != owner {
			continue
		}
		out = append(out, sp)
	}
	return out
}

// NthAvailableLandSpace counts distance spaces into the available land spaces
// that satisfy keep, from the start for direction 1 or from the end for -1.
// The distance wraps around.
func (b *Board) NthAvailableLandSpace(distance, direction int, owner string, keep func(*Space) bool) (*Space, error) {
	if direction != 1 && direction != -1 {
		return nil, fmt.Errorf("direction must be 1 or -1, got %d", direction)
	}
	var candidates []*Space
	for _, sp := range b.AvailableLandSpaces(owner) {
		if keep == nil || keep(sp) {
			candidates = append(candidates, sp)
		}
	}
	if len(candidates) == 0 {
		return nil, ErrNoAvailableSpace
	}
	idx := distance
	if direction == -1 {
		idx = len(candidates) - (distance + 1)
	}
	idx %= len(candidates)
	if idx < 0 {
		idx += len(candidates)
	}
	return candidates[idx], nil
}
