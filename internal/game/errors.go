package game

import "errors"

// Error kinds. Every error returned by this package and by the inference engine wraps one of these,
// so callers can decide on a policy with errors.Is.
var (
	ErrValidation    = errors.New("invalid input")
	ErrNotFound      = errors.New("not found")
	ErrSetup         = errors.New("invalid setup")
	ErrContradiction = errors.New("contradiction")
)
