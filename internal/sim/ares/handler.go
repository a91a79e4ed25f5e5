package ares

import (
	"aresrules.dev/internal/sim/board"
	"aresrules.dev/internal/sim/gamelog"
	"aresrules.dev/internal/sim/interrupt"
	"aresrules.dev/internal/sim/player"
	"aresrules.dev/internal/sim/tuning"
)

// Env is the game-level context the Ares rules read and write through.
type Env interface {
	Board() *board.Board
	Player(id string) (*player.Player, bool)
	// FreePlacement is true during the world-government phase; costs and rewards are suppressed.
	FreePlacement() bool
	Temperature() int
	OxygenLevel() int
	Log(msg string, args ...gamelog.Arg)
	Enqueue(in *interrupt.Interrupt)
	// GrantSpaceBonus applies a standard board bonus (resources, card draw, ocean).
	GrantSpaceBonus(p *player.Player, b board.Bonus) error
	// SpaceByOffset picks a land space for a hazard, counting from the start (1) or end (-1) of the map.
	SpaceByOffset(direction int) (*board.Space, error)
}

// OwnerRewardFunc decides how many M€ the owner of a bonus tile receives.
type OwnerRewardFunc func(owner *player.Player) int

type Handler struct {
	data        *Data
	tune        tuning.Tuning
	ownerReward OwnerRewardFunc
}

type Option func(*Handler)

func WithOwnerReward(fn OwnerRewardFunc) Option {
	return func(h *Handler) { h.ownerReward = fn }
}

func NewHandler(data *Data, tune tuning.Tuning, opts ...Option) *Handler {
	h := &Handler{data: data, tune: tune}
	h.ownerReward = func(*player.Player) int { return tune.Adjacency.OwnerReward }
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Handler) Data() *Data { return h.data }

// CardOwnerReward doubles the owner reward for owners holding card.
func CardOwnerReward(card string, adj tuning.Adjacency) OwnerRewardFunc {
	return func(owner *player.Player) int {
		if owner.HasCard(card) {
			return adj.DoubledOwnerReward
		}
		return adj.OwnerReward
	}
}
