package ares

import (
	"aresrules.dev/internal/sim/gamelog"
	"aresrules.dev/internal/sim/player"
)

const (
	CardEcologicalSurvey = "Ecological Survey"
	CardGeologicalSurvey = "Geological Survey"
	CardMarketingExperts = "Marketing Experts"
)

// SurveyBaseline remembers the resources a survey card tracks across one placement.
type SurveyBaseline struct {
	resources     map[player.Resource]int
	cardResources map[player.CardResource]int
}

func (b SurveyBaseline) Empty() bool {
	return len(b.resources) == 0 && len(b.cardResources) == 0
}

func BeforeTilePlacement(p *player.Player) SurveyBaseline {
	b := SurveyBaseline{
		resources:     map[player.Resource]int{},
		cardResources: map[player.CardResource]int{},
	}
	if p.HasCard(CardEcologicalSurvey) {
		b.resources[player.Plants] = p.Resource(player.Plants)
		b.cardResources[player.CardResourceAnimal] = p.CardResources(player.CardResourceAnimal)
		b.cardResources[player.CardResourceMicrobe] = p.CardResources(player.CardResourceMicrobe)
	}
	if p.HasCard(CardGeologicalSurvey) {
		b.resources[player.Steel] = p.Resource(player.Steel)
		b.resources[player.Titanium] = p.Resource(player.Titanium)
		b.resources[player.Heat] = p.Resource(player.Heat)
	}
	return b
}

// AfterTilePlacement grants one extra unit of each tracked resource the placement increased.
func (h *Handler) AfterTilePlacement(env Env, p *player.Player, base SurveyBaseline) {
	if base.Empty() {
		return
	}
	for _, r := range []player.Resource{player.Plants, player.Steel, player.Titanium, player.Heat} {
		start, ok := base.resources[r]
		if !ok || p.Resource(r) <= start {
			continue
		}
		p.AddResource(r, 1)
		card := CardGeologicalSurvey
		if r == player.Plants {
			card = CardEcologicalSurvey
		}
		env.Log("${0} gained a bonus ${1} because of ${2}", gamelog.Player(p.ID), gamelog.String(r.String()), gamelog.CardName(card))
	}
	for _, t := range []player.CardResource{player.CardResourceMicrobe, player.CardResourceAnimal} {
		start, ok := base.cardResources[t]
		if !ok || p.CardResources(t) <= start {
			continue
		}
		addResourceToCard(env, p, t)
	}
}
