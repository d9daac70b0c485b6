package domain

import "errors"

// ErrNotFound is returned when a node identity cannot be found in the registry.
var ErrNotFound = errors.New("node not found")

// ErrInvalidPlugin is returned when a registration candidate does not expose
// the required capability set (spec, input contract, output contract, execute).
var ErrInvalidPlugin = errors.New("invalid plugin")
