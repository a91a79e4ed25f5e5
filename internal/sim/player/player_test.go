package player

import (
	"errors"
	"testing"
)

func TestCanAfford(t *testing.T) {
	p := New("p1", "Alice")
	p.SetResource(MegaCredits, 3)
	p.SetResource(Heat, 5)
	if p.CanAfford(4) {
		t.Fatalf("heat should not count without the corporation effect")
	}
	p.CanUseHeatAsMegaCredits = true
	if !p.CanAfford(8) || p.CanAfford(9) {
		t.Fatalf("heat should count toward M€")
	}
}

func TestResourceCards_CorporationFirst(t *testing.T) {
	p := New("p1", "Alice")
	p.Corporation = &Card{Name: "Arklight", ResourceType: CardResourceAnimal, Resources: 1}
	p.PlayedCards = []*Card{
		{Name: "Fish", ResourceType: CardResourceAnimal, Resources: 2},
		{Name: "Ants", ResourceType: CardResourceMicrobe},
		{Name: "Mine"},
	}
	got := p.ResourceCards(CardResourceAnimal)
	if len(got) != 2 || got[0].Name != "Arklight" || got[1].Name != "Fish" {
		t.Fatalf("animal cards: %+v", got)
	}
	if n := p.CardResources(CardResourceAnimal); n != 3 {
		t.Fatalf("animal count: got %d", n)
	}
	if got := p.ResourceCards(CardResourceNone); len(got) != 0 {
		t.Fatalf("cards without resources must not be listed: %+v", got)
	}
}

func TestLoseProduction(t *testing.T) {
	p := New("p1", "Alice")
	p.AddProduction(Plants, 2)

	if err := p.LoseProduction(ProductionUnits{Plants: 3}); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
	if err := p.LoseProduction(ProductionUnits{MegaCredits: 5, Plants: 2}); err != nil {
		t.Fatalf("LoseProduction: %v", err)
	}
	if p.Production(MegaCredits) != -5 || p.Production(Plants) != 0 {
		t.Fatalf("production after loss: mc=%d plants=%d", p.Production(MegaCredits), p.Production(Plants))
	}
	if err := p.LoseProduction(ProductionUnits{MegaCredits: 1}); err == nil {
		t.Fatalf("M€ production cannot drop below -5")
	}
}

func TestPay(t *testing.T) {
	p := New("p1", "Alice")
	p.SetResource(MegaCredits, 5)
	p.SetResource(Heat, 4)
	if err := p.Pay(Payment{MegaCredits: 2, Heat: 2}); err == nil {
		t.Fatalf("heat payment requires the corporation effect")
	}
	p.CanUseHeatAsMegaCredits = true
	if err := p.Pay(Payment{MegaCredits: 2, Heat: 2}); err != nil {
		t.Fatalf("Pay: %v", err)
	}
	if p.Resource(MegaCredits) != 3 || p.Resource(Heat) != 2 {
		t.Fatalf("after pay: mc=%d heat=%d", p.Resource(MegaCredits), p.Resource(Heat))
	}
	if err := p.Pay(Payment{MegaCredits: 4}); err == nil {
		t.Fatalf("overdraw should fail")
	}
}
