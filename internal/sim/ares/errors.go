package ares

import (
	"errors"
	"fmt"

	"aresrules.dev/internal/protocol"
)

var (
	// ErrInvariant marks corrupted board or game state. Callers must not retry.
	ErrInvariant    = errors.New("ares invariant violation")
	ErrCannotAfford = errors.New("cannot afford placement")
	ErrNotHazard    = errors.New("space has no hazard tile")
)

// AffordabilityError rejects a placement before anything is mutated.
type AffordabilityError struct {
	MegaCredits int
	Production  int
}

func (e *AffordabilityError) Error() string {
	if e.Production > 0 {
		return fmt.Sprintf("Placing here costs %d units of production and %d M€", e.Production, e.MegaCredits)
	}
	return fmt.Sprintf("Placing here costs %d M€", e.MegaCredits)
}

func (e *AffordabilityError) Is(target error) bool { return target == ErrCannotAfford }
func (e *AffordabilityError) Code() string         { return protocol.ErrNoResource }

type invariantError struct{ msg string }

func (e *invariantError) Error() string        { return ErrInvariant.Error() + ": " + e.msg }
func (e *invariantError) Is(target error) bool { return target == ErrInvariant }
func (e *invariantError) Code() string         { return protocol.ErrInvariant }

func invariantf(format string, args ...any) error {
	return &invariantError{msg: fmt.Sprintf(format, args...)}
}
