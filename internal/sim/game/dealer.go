package game

// MaxCardCost bounds the cost of a dealt card.
const MaxCardCost = 30

// Dealer deals project card costs from a seeded, replayable sequence.
// The n-th card depends only on the seed and n, so a dealer restored with
// Skip produces the same cards as the original.
type Dealer struct {
	seed    int64
	drawn   int
	stacked []int
}

func NewDealer(seed int64) *Dealer {
	return &Dealer{seed: seed}
}

// Stack puts cards with the given costs on top of the deck.
func (d *Dealer) Stack(costs ...int) {
	d.stacked = append(append([]int(nil), costs...), d.stacked...)
}

// Deal returns the cost of the next card.
func (d *Dealer) Deal() int {
	if len(d.stacked) > 0 {
		c := d.stacked[0]
		d.stacked = d.stacked[1:]
		return c
	}
	c := int(cardHash(d.seed, d.drawn) % (MaxCardCost + 1))
	d.drawn++
	return c
}

// Drawn counts cards dealt from the seeded sequence; stacked cards are not counted.
func (d *Dealer) Drawn() int { return d.drawn }

// Stacked lists the stacked cards not yet dealt, top first.
func (d *Dealer) Stacked() []int { return append([]int(nil), d.stacked...) }

// Skip advances the seeded sequence by n cards.
func (d *Dealer) Skip(n int) {
	if n > 0 {
		d.drawn += n
	}
}

func mix64(z uint64) uint64 {
	z += 0x9e3779b97f4a7c15
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

func cardHash(seed int64, n int) uint64 {
	return mix64(uint64(seed) ^ (uint64(uint32(int32(n))) * 0x9e3779b97f4a7c15))
}
