package domain

import "errors"

// ErrValidation is wrapped by every input validation failure so adapters can
// map it to a client error.
var ErrValidation = errors.New("validation failed")
