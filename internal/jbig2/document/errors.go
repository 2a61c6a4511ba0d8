package document

import (
	"errors"
)

// ErrCorruptData is the error returned when the persisted data is malformed.
// No partial data is returned with it.
var ErrCorruptData = errors.New("corrupt data")
