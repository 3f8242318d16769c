package domain

import "errors"

// Sentinel errors shared across layers. All are recoverable: callers report
// them and keep going, nothing here is process-fatal.
var (
	ErrInvalidCoordinate   = errors.New("coordinate out of bounds")
	ErrCellOccupied        = errors.New("cell is occupied")
	ErrNotAQueen           = errors.New("cell does not hold a queen")
	ErrMalformedDefinition = errors.New("malformed puzzle definition")
	ErrUnsatisfiable       = errors.New("no valid queen placement exists")
)
