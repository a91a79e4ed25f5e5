package ares

import (
	"fmt"
	"strings"

	"aresrules.dev/internal/sim/board"
	"aresrules.dev/internal/sim/gamelog"
	"aresrules.dev/internal/sim/interrupt"
	"aresrules.dev/internal/sim/player"
)

// IsAresBonus reports whether b is one of the bonuses introduced by Ares
// rather than a standard board bonus.
func IsAresBonus(b board.Bonus) bool {
	switch b {
	case board.BonusAnimal, board.BonusMegaCredits, board.BonusMicrobe, board.BonusPower:
		return true
	}
	return false
}

type bonusHandler func(env Env, p *player.Player, b board.Bonus) error

func grantResource(r player.Resource) bonusHandler {
	return func(_ Env, p *player.Player, _ board.Bonus) error {
		p.AddResource(r, 1)
		return nil
	}
}

func grantCardResource(t player.CardResource) bonusHandler {
	return func(env Env, p *player.Player, _ board.Bonus) error {
		addResourceToCard(env, p, t)
		return nil
	}
}

func grantSpaceBonus(env Env, p *player.Player, b board.Bonus) error {
	return env.GrantSpaceBonus(p, b)
}

var bonusHandlers = map[board.Bonus]bonusHandler{
	board.BonusMegaCredits: grantResource(player.MegaCredits),
	board.BonusPower:       grantResource(player.Energy),
	board.BonusAnimal:      grantCardResource(player.CardResourceAnimal),
	board.BonusMicrobe:     grantCardResource(player.CardResourceMicrobe),
	board.BonusTitanium:    grantSpaceBonus,
	board.BonusSteel:       grantSpaceBonus,
	board.BonusPlant:       grantSpaceBonus,
	board.BonusDrawCard:    grantSpaceBonus,
	board.BonusHeat:        grantSpaceBonus,
	board.BonusOcean:       grantSpaceBonus,
}

// addResourceToCard adds one resource of type t to the player's only eligible
// card, asks when there are several, and drops it when there are none.
func addResourceToCard(env Env, p *player.Player, t player.CardResource) {
	cards := p.ResourceCards(t)
	switch len(cards) {
	case 0:
	case 1:
		p.AddResourceTo(cards[0], 1)
	default:
		env.Enqueue(interrupt.SelectCard(p, "Select a card to add an "+t.String(), cards, func(c *player.Card) error {
			p.AddResourceTo(c, 1)
			env.Log("${0} added ${1} ${2} to ${3}", gamelog.Player(p.ID), gamelog.Number(1), gamelog.String(t.String()), gamelog.CardName(c.Name))
			return nil
		}))
	}
}

// EarnAdjacencyBonuses resolves every bonus-bearing neighbour of sp for p, in board order,
// and counts the placement toward p's milestone total if any neighbour paid out.
func (h *Handler) EarnAdjacencyBonuses(env Env, p *player.Player, sp *board.Space) error {
	earned := false
	for _, adj := range env.Board().Adjacent(sp) {
		ok, err := h.earnAdjacencyBonus(env, adj, p)
		if err != nil {
			return err
		}
		if ok {
			earned = true
		}
	}
	if !earned {
		return nil
	}
	return h.incrementMilestone(p.ID)
}

// earnAdjacencyBonus applies adj's bonuses to p, who placed next to it, and
// pays adj's owner. It reports whether adj had any bonus.
func (h *Handler) earnAdjacencyBonus(env Env, adj *board.Space, p *player.Player) (bool, error) {
	if adj.Adjacency == nil || len(adj.Adjacency.Bonuses) == 0 {
		return false, nil
	}
	if adj.Owner == "" {
		return false, invariantf("tile with an adjacency bonus must have an owner (%s, bonuses %v)", adj.ID, adj.Adjacency.Bonuses)
	}
	owner, ok := env.Player(adj.Owner)
	if !ok {
		return false, invariantf("owner %q of %s is not in the game", adj.Owner, adj.ID)
	}

	var order []board.Bonus
	counts := map[board.Bonus]int{}
	for _, b := range adj.Adjacency.Bonuses {
		fn, ok := bonusHandlers[b]
		if !ok {
			return false, invariantf("unknown adjacency bonus %d on %s", int(b), adj.ID)
		}
		if counts[b] == 0 {
			order = append(order, b)
		}
		counts[b]++
		if err := fn(env, p, b); err != nil {
			return false, fmt.Errorf("adjacency bonus %s from %s: %w", b, adj.ID, err)
		}
	}

	parts := make([]string, 0, len(order))
	for _, b := range order {
		parts = append(parts, fmt.Sprintf("%d %s", counts[b], b))
	}
	tileText := "undefined"
	if adj.Tile != nil {
		tileText = adj.Tile.Kind.String()
	}
	env.Log("${0} gains ${1} for placing next to ${2}", gamelog.Player(p.ID), gamelog.String(strings.Join(parts, ", ")), gamelog.String(tileText))

	reward := h.ownerReward(owner)
	owner.AddResource(player.MegaCredits, reward)
	env.Log("${0} gains ${1} M€ for a tile placed next to ${2}", gamelog.Player(owner.ID), gamelog.Number(reward), gamelog.String(tileText))
	return true, nil
}
