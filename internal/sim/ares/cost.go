package ares

import (
	"aresrules.dev/internal/sim/board"
	"aresrules.dev/internal/sim/gamelog"
	"aresrules.dev/internal/sim/interrupt"
	"aresrules.dev/internal/sim/player"
)

type AdjacencyCost struct {
	MegaCredits int `json:"megacredits"`
	Production  int `json:"production"`
}

// AdjacencyCost sums what placing on sp costs: neighbour surcharges and hazard
// production penalties, plus the surcharge for covering a hazard on sp itself.
// Every tile kind, oceans included, pays the hazard production penalty.
func (h *Handler) AdjacencyCost(env Env, sp *board.Space) AdjacencyCost {
	var cost AdjacencyCost
	for _, adj := range env.Board().Adjacent(sp) {
		if adj.Adjacency != nil {
			cost.MegaCredits += adj.Adjacency.Cost
		}
		switch HazardSeverity(adj) {
		case SeverityMild:
			cost.Production += h.tune.Hazards.MildAdjacentProduction
		case SeveritySevere:
			cost.Production += h.tune.Hazards.SevereAdjacentProduction
		}
	}

	switch HazardSeverity(sp) {
	case SeverityMild:
		cost.MegaCredits += h.tune.Hazards.MildCoverCost
	case SeveritySevere:
		cost.MegaCredits += h.tune.Hazards.SevereCoverCost
	}
	return cost
}

// availableProductionUnits counts production p could give up; M€ production may go to -5.
func (h *Handler) availableProductionUnits(p *player.Player) int {
	return p.Production(player.MegaCredits) + h.tune.Adjacency.ProductionBuffer +
		p.Production(player.Steel) +
		p.Production(player.Titanium) +
		p.Production(player.Plants) +
		p.Production(player.Energy) +
		p.Production(player.Heat)
}

// AssertCanPay returns the placement cost or an *AffordabilityError. It reserves nothing.
func (h *Handler) AssertCanPay(env Env, p *player.Player, sp *board.Space) (AdjacencyCost, error) {
	if env.FreePlacement() {
		return AdjacencyCost{}, nil
	}
	cost := h.AdjacencyCost(env, sp)
	if h.availableProductionUnits(p) >= cost.Production && p.CanAfford(cost.MegaCredits) {
		return cost, nil
	}
	return cost, &AffordabilityError{MegaCredits: cost.MegaCredits, Production: cost.Production}
}

// PayAdjacencyAndHazardCosts checks affordability and queues the payment
// choices: production loss first, then the M€ payment.
func (h *Handler) PayAdjacencyAndHazardCosts(env Env, p *player.Player, sp *board.Space) error {
	cost, err := h.AssertCanPay(env, p, sp)
	if err != nil {
		return err
	}
	if cost.Production > 0 {
		env.Enqueue(interrupt.SelectProductionToLose(p, cost.Production))
	}
	if cost.MegaCredits > 0 {
		env.Log("${0} placing a tile here costs ${1} M€", gamelog.Player(p.ID), gamelog.Number(cost.MegaCredits))
		env.Enqueue(interrupt.SelectHowToPay(p, cost.MegaCredits, "Select how to pay additional placement costs."))
	}
	return nil
}
