package ares

import (
	"testing"

	"aresrules.dev/internal/sim/board"
	"aresrules.dev/internal/sim/gamelog"
	"aresrules.dev/internal/sim/interrupt"
	"aresrules.dev/internal/sim/player"
	"aresrules.dev/internal/sim/tuning"
)

var testOceanSpaces = []string{"30", "31", "32", "33", "34", "35", "36"}

type fakeEnv struct {
	b       *board.Board
	players map[string]*player.Player
	free    bool
	temp    int
	oxygen  int
	log     *gamelog.Log
	queue   interrupt.Queue
	granted []board.Bonus
}

func newFakeEnv(players ...*player.Player) *fakeEnv {
	env := &fakeEnv{
		b:       board.New(testOceanSpaces),
		players: map[string]*player.Player{},
		temp:    -30,
		log:     gamelog.New(),
	}
	for _, p := range players {
		env.players[p.ID] = p
	}
	return env
}

func (e *fakeEnv) Board() *board.Board { return e.b }
func (e *fakeEnv) Player(id string) (*player.Player, bool) {
	p, ok := e.players[id]
	return p, ok
}
func (e *fakeEnv) FreePlacement() bool                      { return e.free }
func (e *fakeEnv) Temperature() int                         { return e.temp }
func (e *fakeEnv) OxygenLevel() int                         { return e.oxygen }
func (e *fakeEnv) Log(msg string, args ...gamelog.Arg)      { e.log.Append(msg, args...) }
func (e *fakeEnv) Enqueue(in *interrupt.Interrupt)          { e.queue.Push(in) }
func (e *fakeEnv) SpaceByOffset(dir int) (*board.Space, error) {
	return e.b.NthAvailableLandSpace(0, dir, "", nil)
}
func (e *fakeEnv) GrantSpaceBonus(p *player.Player, b board.Bonus) error {
	e.granted = append(e.granted, b)
	switch b {
	case board.BonusPlant:
		p.AddResource(player.Plants, 1)
	case board.BonusSteel:
		p.AddResource(player.Steel, 1)
	case board.BonusDrawCard:
		p.CardsInHand++
	}
	return nil
}

func (e *fakeEnv) space(t *testing.T, id string) *board.Space {
	t.Helper()
	sp, ok := e.b.Space(id)
	if !ok {
		t.Fatalf("no space %s", id)
	}
	return sp
}

// addOceans fills the next n ocean spaces directly, bypassing placement rules.
func (e *fakeEnv) addOceans(n int) {
	for _, sp := range e.b.AvailableOceanSpaces()[:n] {
		sp.Tile = &board.Tile{Kind: board.TileOcean}
	}
}

func newTestHandler(players ...*player.Player) (*Handler, *Data) {
	ids := make([]string, 0, len(players))
	for _, p := range players {
		ids = append(ids, p.ID)
	}
	data := InitialData(true, true, tuning.Defaults().Hazards, ids)
	return NewHandler(&data, tuning.Defaults()), &data
}

func countTiles(b *board.Board, k board.TileKind) int {
	n := 0
	for _, sp := range b.Spaces() {
		if sp.Tile != nil && sp.Tile.Kind == k {
			n++
		}
	}
	return n
}
