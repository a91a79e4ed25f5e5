package game

import (
	"errors"
	"fmt"

	"aresrules.dev/internal/protocol"
)

var (
	ErrUnknownSpace   = errors.New("unknown space")
	ErrUnknownPlayer  = errors.New("unknown player")
	ErrSpaceOccupied  = errors.New("selected space is occupied")
	ErrWrongSpaceType = errors.New("wrong space type")
	ErrLandClaimed    = errors.New("space is land claimed")
	ErrAresDisabled   = errors.New("ares expansion is not enabled")
)

// PlacementError rejects a tile placement before anything is mutated.
type PlacementError struct {
	SpaceID string
	Err     error
	code    string
}

func (e *PlacementError) Error() string { return fmt.Sprintf("space %s: %v", e.SpaceID, e.Err) }
func (e *PlacementError) Unwrap() error { return e.Err }
func (e *PlacementError) Code() string  { return e.code }

func invalidTarget(spaceID string, err error) error {
	return &PlacementError{SpaceID: spaceID, Err: err, code: protocol.ErrInvalidTarget}
}

func conflict(spaceID string, err error) error {
	return &PlacementError{SpaceID: spaceID, Err: err, code: protocol.ErrConflict}
}
