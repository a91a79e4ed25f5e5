package protocol

const (
	// Request/response validation.
	ErrBadRequest = "E_BAD_REQUEST"

	// Placement rules.
	ErrNoResource    = "E_NO_RESOURCE"
	ErrInvalidTarget = "E_INVALID_TARGET"
	ErrConflict      = "E_CONFLICT"
	ErrBlocked       = "E_BLOCKED"

	// Engine state.
	ErrInvariant = "E_INVARIANT"
	ErrInternal  = "E_INTERNAL"
)

var knownCodes = map[string]struct{}{
	ErrBadRequest:    {},
	ErrNoResource:    {},
	ErrInvalidTarget: {},
	ErrConflict:      {},
	ErrBlocked:       {},
	ErrInvariant:     {},
	ErrInternal:      {},
}

func IsKnownCode(code string) bool {
	if code == "" {
		return true
	}
	_, ok := knownCodes[code]
	return ok
}

// Coder is implemented by errors that carry one of the codes above.
type Coder interface {
	Code() string
}

// CodeOf returns the code attached to err, or ErrInternal when err carries none.
func CodeOf(err error) string {
	if err == nil {
		return ""
	}
	for e := err; e != nil; {
		if c, ok := e.(Coder); ok {
			return c.Code()
		}
		u, ok := e.(interface{ Unwrap() error })
		if !ok {
			break
		}
		e = u.Unwrap()
	}
	return ErrInternal
}
