package game

import (
	"errors"
	"fmt"

	"aresrules.dev/internal/sim/ares"
	"aresrules.dev/internal/sim/board"
	"aresrules.dev/internal/sim/gamelog"
	"aresrules.dev/internal/sim/interrupt"
	"aresrules.dev/internal/sim/player"
	"aresrules.dev/internal/sim/tuning"
)

const (
	MinTemperature = -30
	MaxTemperature = 8
	MaxOxygen      = 14

	// OceanAdjacencyMegaCredits is paid for each ocean next to a placed tile.
	OceanAdjacencyMegaCredits = 2
)

type Phase int

const (
	PhaseResearch Phase = iota
	PhaseAction
	PhaseProduction
	// PhaseSolar is the world-government phase; placements there are free and unrewarded.
	PhaseSolar
)

var phaseNames = map[Phase]string{
	PhaseResearch:   "research",
	PhaseAction:     "action",
	PhaseProduction: "production",
	PhaseSolar:      "solar",
}

func (p Phase) String() string {
	if s, ok := phaseNames[p]; ok {
		return s
	}
	return "unknown"
}

func ParsePhase(s string) (Phase, error) {
	for p, name := range phaseNames {
		if name == s {
			return p, nil
		}
	}
	return 0, fmt.Errorf("unknown phase %q", s)
}

type Options struct {
	// Ares enables the Ares expansion; Hazards additionally enables the hazard lifecycle.
	Ares    bool
	Hazards bool

	Tuning tuning.Tuning
	// Dealer deals hazard offsets. Nil means a dealer seeded from Tuning.Seed.
	Dealer *Dealer
	Sinks  []gamelog.Sink
}

// Game is the single-threaded reference game the Ares rules run against.
type Game struct {
	ID string

	tune        tuning.Tuning
	board       *board.Board
	players     []*player.Player
	byID        map[string]*player.Player
	phase       Phase
	generation  int
	temperature int
	oxygen      int

	log    *gamelog.Log
	queue  interrupt.Queue
	dealer *Dealer

	aresData *ares.Data
	ares     *ares.Handler
}

func newGame(id string, players []*player.Player, opts Options) (*Game, error) {
	if len(players) == 0 {
		return nil, errors.New("game needs at least one player")
	}
	if opts.Hazards && !opts.Ares {
		return nil, fmt.Errorf("hazards: %w", ErrAresDisabled)
	}
	if err := opts.Tuning.Validate(); err != nil {
		return nil, fmt.Errorf("tuning: %w", err)
	}
	g := &Game{
		ID:          id,
		tune:        opts.Tuning,
		board:       board.New(opts.Tuning.Board.OceanSpaces),
		byID:        make(map[string]*player.Player, len(players)),
		phase:       PhaseAction,
		generation:  1,
		temperature: MinTemperature,
		log:         gamelog.New(opts.Sinks...),
		dealer:      opts.Dealer,
	}
	if g.dealer == nil {
		g.dealer = NewDealer(opts.Tuning.Seed)
	}
	if err := g.applySpaceBonuses(opts.Tuning.Board.SpaceBonuses); err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(players))
	for _, p := range players {
		if _, dup := g.byID[p.ID]; dup {
			return nil, fmt.Errorf("duplicate player %q", p.ID)
		}
		g.byID[p.ID] = p
		g.players = append(g.players, p)
		ids = append(ids, p.ID)
	}
	if opts.Ares {
		data := ares.InitialData(true, opts.Hazards, opts.Tuning.Hazards, ids)
		g.aresData = &data
		g.ares = ares.NewHandler(g.aresData, opts.Tuning,
			ares.WithOwnerReward(ares.CardOwnerReward(ares.CardMarketingExperts, opts.Tuning.Adjacency)))
	}
	return g, nil
}

// New starts a game. With hazards enabled the starting dust storms are placed.
func New(id string, players []*player.Player, opts Options) (*Game, error) {
	g, err := newGame(id, players, opts)
	if err != nil {
		return nil, err
	}
	if g.aresData != nil && g.aresData.IncludeHazards {
		if err := g.ares.SetupHazards(g, len(players)); err != nil {
			return nil, fmt.Errorf("setup hazards: %w", err)
		}
	}
	return g, nil
}

func (g *Game) applySpaceBonuses(m map[string][]string) error {
	for id, names := range m {
		sp, ok := g.board.Space(id)
		if !ok {
			return fmt.Errorf("space bonuses: %w %q", ErrUnknownSpace, id)
		}
		sp.Bonuses = sp.Bonuses[:0]
		for _, n := range names {
			b, err := board.ParseBonus(n)
			if err != nil {
				return fmt.Errorf("space bonuses %s: %w", id, err)
			}
			sp.Bonuses = append(sp.Bonuses, b)
		}
	}
	return nil
}

func (g *Game) Board() *board.Board { return g.board }

func (g *Game) Player(id string) (*player.Player, bool) {
	p, ok := g.byID[id]
	return p, ok
}

func (g *Game) Players() []*player.Player {
	return append([]*player.Player(nil), g.players...)
}

func (g *Game) Phase() Phase          { return g.phase }
func (g *Game) SetPhase(p Phase)      { g.phase = p }
func (g *Game) Generation() int       { return g.generation }
func (g *Game) FreePlacement() bool   { return g.phase == PhaseSolar }
func (g *Game) Temperature() int      { return g.temperature }
func (g *Game) OxygenLevel() int      { return g.oxygen }
func (g *Game) Dealer() *Dealer       { return g.dealer }
func (g *Game) GameLog() *gamelog.Log { return g.log }

// NextGeneration starts a new generation in the research phase.
func (g *Game) NextGeneration() {
	g.generation++
	g.phase = PhaseResearch
}

// AresData is the live Ares state, or nil when the expansion is off.
func (g *Game) AresData() *ares.Data { return g.aresData }

// Ares is the rules handler, or nil when the expansion is off.
func (g *Game) Ares() *ares.Handler { return g.ares }

func (g *Game) Log(msg string, args ...gamelog.Arg) { g.log.Append(msg, args...) }

func (g *Game) Enqueue(in *interrupt.Interrupt) { g.queue.Push(in) }

// Interrupts lists the pending decisions in resolution order.
func (g *Game) Interrupts() []*interrupt.Interrupt { return g.queue.Pending() }

func (g *Game) PendingInterrupt() (*interrupt.Interrupt, bool) { return g.queue.Peek() }

// Resolve answers the decision at the head of the queue.
func (g *Game) Resolve(r interrupt.Response) error { return g.queue.Resolve(r) }

// ResolveAll answers every pending decision, including ones queued while resolving.
func (g *Game) ResolveAll(choose func(*interrupt.Interrupt) interrupt.Response) error {
	return g.queue.Drain(choose)
}

// SpaceByOffset deals a card and counts max(cost-1, 0) available land spaces
// from one end of the map, skipping spaces next to a hazard.
func (g *Game) SpaceByOffset(direction int) (*board.Space, error) {
	cost := g.dealer.Deal()
	distance := cost - 1
	if distance < 0 {
		distance = 0
	}
	sp, err := g.board.NthAvailableLandSpace(distance, direction, "", func(sp *board.Space) bool {
		for _, adj := range g.board.Adjacent(sp) {
			if ares.HasHazardTile(adj) {
				return false
			}
		}
		return true
	})
	if err != nil {
		return nil, err
	}
	g.Log("Dealt a card costing ${0} to pick space ${1}", gamelog.Number(cost), gamelog.String(sp.ID))
	return sp, nil
}
