package schema

import "errors"

// ErrCyclicSchema is returned when a contract refers to itself, directly or
// through nested contracts. Cyclic contracts are rejected rather than
// rendered as bounded references.
var ErrCyclicSchema = errors.New("cyclic schema definition")

// ErrSchemaTooDeep is returned when nesting exceeds the extraction depth
// bound. It guards against malformed contracts that nest without cycling.
var ErrSchemaTooDeep = errors.New("schema nesting too deep")
