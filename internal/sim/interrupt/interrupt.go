package interrupt

import (
	"errors"
	"fmt"

	"aresrules.dev/internal/protocol"
	"aresrules.dev/internal/sim/board"
	"aresrules.dev/internal/sim/player"
)

type Kind string

const (
	KindSelectCard             Kind = "SELECT_CARD"
	KindSelectProductionToLose Kind = "SELECT_PRODUCTION_TO_LOSE"
	KindSelectHowToPay         Kind = "SELECT_HOW_TO_PAY"
	KindSelectSpace            Kind = "SELECT_SPACE"
)

var (
	ErrEmpty           = errors.New("no pending interrupt")
	ErrInvalidResponse = errors.New("invalid response")
)

// ResponseError is returned when a player's answer does not fit the pending interrupt.
type ResponseError struct {
	Kind Kind
	Err  error
}

func (e *ResponseError) Error() string { return fmt.Sprintf("%s: %v", e.Kind, e.Err) }
func (e *ResponseError) Unwrap() error { return e.Err }
func (e *ResponseError) Code() string  { return protocol.ErrBadRequest }

// Response carries the player's choice. Only the field matching the kind is read.
type Response struct {
	Card       string                 `json:"card,omitempty"`
	Production player.ProductionUnits `json:"production,omitempty"`
	Payment    player.Payment         `json:"payment,omitempty"`
	SpaceID    string                 `json:"space_id,omitempty"`
}

// Interrupt is a suspended decision. The resume closure completes the mutation.
type Interrupt struct {
	PlayerID string
	Kind     Kind
	Title    string

	Cards  []string
	Units  int
	Amount int
	Spaces []string

	resume func(Response) error
}

func (in *Interrupt) String() string {
	return fmt.Sprintf("%s for %s: %s", in.Kind, in.PlayerID, in.Title)
}

func reject(kind Kind, format string, args ...any) error {
	return &ResponseError{Kind: kind, Err: fmt.Errorf("%w: "+format, append([]any{ErrInvalidResponse}, args...)...)}
}

// SelectCard asks p to pick one of cards; onSelect runs with the chosen card.
func SelectCard(p *player.Player, title string, cards []*player.Card, onSelect func(*player.Card) error) *Interrupt {
	names := make([]string, 0, len(cards))
	for _, c := range cards {
		names = append(names, c.Name)
	}
	return &Interrupt{
		PlayerID: p.ID,
		Kind:     KindSelectCard,
		Title:    title,
		Cards:    names,
		resume: func(r Response) error {
			for _, c := range cards {
				if c.Name == r.Card {
					return onSelect(c)
				}
			}
			return reject(KindSelectCard, "card %q is not selectable", r.Card)
		},
	}
}

// SelectProductionToLose asks p which production units to forfeit.
func SelectProductionToLose(p *player.Player, units int) *Interrupt {
	return &Interrupt{
		PlayerID: p.ID,
		Kind:     KindSelectProductionToLose,
		Title:    fmt.Sprintf("Choose %d unit(s) of production to lose", units),
		Units:    units,
		resume: func(r Response) error {
			if got := r.Production.Total(); got != units {
				return reject(KindSelectProductionToLose, "selected %d units, need %d", got, units)
			}
			if err := p.LoseProduction(r.Production); err != nil {
				return &ResponseError{Kind: KindSelectProductionToLose, Err: err}
			}
			return nil
		},
	}
}

// SelectHowToPay asks p how to split an M€ cost.
func SelectHowToPay(p *player.Player, amount int, title string) *Interrupt {
	return &Interrupt{
		PlayerID: p.ID,
		Kind:     KindSelectHowToPay,
		Title:    title,
		Amount:   amount,
		resume: func(r Response) error {
			if got := r.Payment.MegaCredits + r.Payment.Heat; got != amount {
				return reject(KindSelectHowToPay, "paid %d, need %d", got, amount)
			}
			if err := p.Pay(r.Payment); err != nil {
				return &ResponseError{Kind: KindSelectHowToPay, Err: err}
			}
			return nil
		},
	}
}

// SelectSpace asks the player to choose one of spaces.
func SelectSpace(playerID, title string, spaces []*board.Space, onSelect func(*board.Space) error) *Interrupt {
	ids := make([]string, 0, len(spaces))
	for _, sp := range spaces {
		ids = append(ids, sp.ID)
	}
	return &Interrupt{
		PlayerID: playerID,
		Kind:     KindSelectSpace,
		Title:    title,
		Spaces:   ids,
		resume: func(r Response) error {
			for _, sp := range spaces {
				if sp.ID == r.SpaceID {
					return onSelect(sp)
				}
			}
			return reject(KindSelectSpace, "space %q is not selectable", r.SpaceID)
		},
	}
}
