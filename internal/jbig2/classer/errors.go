package classer

import (
	"errors"
)

// ErrInvalidInput is the error returned for the undefined or out of range input.
// The classifier state is not changed when it is returned.
var ErrInvalidInput = errors.New("invalid input")
