package player

import (
	"errors"
	"fmt"
)

type Resource int

const (
	MegaCredits Resource = iota
	Steel
	Titanium
	Plants
	Energy
	Heat
)

var Resources = []Resource{MegaCredits, Steel, Titanium, Plants, Energy, Heat}

func (r Resource) String() string {
	switch r {
	case MegaCredits:
		return "megacredits"
	case Steel:
		return "steel"
	case Titanium:
		return "titanium"
	case Plants:
		return "plants"
	case Energy:
		return "energy"
	case Heat:
		return "heat"
	default:
		return "unknown"
	}
}

// CardResource is the kind of resource a card can hold.
type CardResource int

const (
	CardResourceNone CardResource = iota
	CardResourceAnimal
	CardResourceMicrobe
)

func (r CardResource) String() string {
	switch r {
	case CardResourceAnimal:
		return "animal"
	case CardResourceMicrobe:
		return "microbe"
	default:
		return "none"
	}
}

func ParseCardResource(s string) (CardResource, error) {
	switch s {
	case "", "none":
		return CardResourceNone, nil
	case "animal":
		return CardResourceAnimal, nil
	case "microbe":
		return CardResourceMicrobe, nil
	}
	return CardResourceNone, fmt.Errorf("unknown card resource %q", s)
}

type Card struct {
	Name         string
	ResourceType CardResource
	Resources    int
}

const (
	StartingTerraformRating = 20
	// MinMegaCreditProduction is how far M€ production may drop below zero.
	MinMegaCreditProduction = -5
)

var ErrInvalidAmount = errors.New("invalid amount")

type Player struct {
	ID   string
	Name string

	resources  [6]int
	production [6]int
	tr         int

	Corporation *Card
	PlayedCards []*Card
	CardsInHand int

	// CanUseHeatAsMegaCredits is granted by a corporation effect.
	CanUseHeatAsMegaCredits bool
}

func New(id, name string) *Player {
	return &Player{ID: id, Name: name, tr: StartingTerraformRating}
}

func (p *Player) Resource(r Resource) int       { return p.resources[r] }
func (p *Player) SetResource(r Resource, n int) { p.resources[r] = n }
func (p *Player) AddResource(r Resource, n int) { p.resources[r] += n }

func (p *Player) Production(r Resource) int       { return p.production[r] }
func (p *Player) AddProduction(r Resource, n int) { p.production[r] += n }

func (p *Player) TerraformRating() int { return p.tr }

func (p *Player) IncreaseTerraformRating(steps int) { p.tr += steps }

// SetTerraformRating restores a saved rating.
func (p *Player) SetTerraformRating(tr int) { p.tr = tr }

// CanAfford reports whether the player can pay amount M€, counting heat when allowed.
func (p *Player) CanAfford(amount int) bool {
	available := p.resources[MegaCredits]
	if p.CanUseHeatAsMegaCredits {
		available += p.resources[Heat]
	}
	return available >= amount
}

func (p *Player) cards() []*Card {
	out := make([]*Card, 0, len(p.PlayedCards)+1)
	if p.Corporation != nil {
		out = append(out, p.Corporation)
	}
	return append(out, p.PlayedCards...)
}

func (p *Player) HasCard(name string) bool {
	for _, c := range p.cards() {
		if c.Name == name {
			return true
		}
	}
	return false
}

func (p *Player) Card(name string) (*Card, bool) {
	for _, c := range p.cards() {
		if c.Name == name {
			return c, true
		}
	}
	return nil, false
}

// ResourceCards lists the cards (corporation first) that hold resources of type t.
func (p *Player) ResourceCards(t CardResource) []*Card {
	var out []*Card
	for _, c := range p.cards() {
		if c.ResourceType == t && t != CardResourceNone {
			out = append(out, c)
		}
	}
	return out
}

func (p *Player) AddResourceTo(c *Card, n int) { c.Resources += n }

// CardResources sums the resources of type t across all of the player's cards.
func (p *Player) CardResources(t CardResource) int {
	n := 0
	for _, c := range p.ResourceCards(t) {
		n += c.Resources
	}
	return n
}

// ProductionUnits is a production loss selection.
type ProductionUnits struct {
	MegaCredits int `json:"megacredits"`
	Steel       int `json:"steel"`
	Titanium    int `json:"titanium"`
	Plants      int `json:"plants"`
	Energy      int `json:"energy"`
	Heat        int `json:"heat"`
}

func (u ProductionUnits) byResource() [6]int {
	return [6]int{u.MegaCredits, u.Steel, u.Titanium, u.Plants, u.Energy, u.Heat}
}

func (u ProductionUnits) Total() int {
	n := 0
	for _, v := range u.byResource() {
		n += v
	}
	return n
}

// LoseProduction deducts u, refusing selections the player cannot cover.
func (p *Player) LoseProduction(u ProductionUnits) error {
	loss := u.byResource()
	for _, r := range Resources {
		if loss[r] < 0 {
			return fmt.Errorf("%w: negative %s production", ErrInvalidAmount, r)
		}
		floor := 0
		if r == MegaCredits {
			floor = MinMegaCreditProduction
		}
		if p.production[r]-loss[r] < floor {
			return fmt.Errorf("%w: not enough %s production", ErrInvalidAmount, r)
		}
	}
	for _, r := range Resources {
		p.production[r] -= loss[r]
	}
	return nil
}

// Payment is how a player splits an M€ cost.
type Payment struct {
	MegaCredits int `json:"megacredits"`
	Heat        int `json:"heat"`
}

func (p *Player) Pay(pay Payment) error {
	if pay.MegaCredits < 0 || pay.Heat < 0 {
		return fmt.Errorf("%w: negative payment", ErrInvalidAmount)
	}
	if pay.Heat > 0 && !p.CanUseHeatAsMegaCredits {
		return fmt.Errorf("%w: heat cannot be used as M€", ErrInvalidAmount)
	}
	if pay.MegaCredits > p.resources[MegaCredits] || pay.Heat > p.resources[Heat] {
		return fmt.Errorf("%w: not enough resources", ErrInvalidAmount)
	}
	p.resources[MegaCredits] -= pay.MegaCredits
	p.resources[Heat] -= pay.Heat
	return nil
}
