package FDTD

import "errors"

var (
	ErrUnknownQuantity  = errors.New("quantity not available for this grid")
	ErrOutOfBounds      = errors.New("location outside of the grid")
	ErrGridTooSmall     = errors.New("grid too small for the requested CPML thickness")
	ErrBadCPMLThickness = errors.New("CPML thickness must be 0 or at least 2")
	ErrNoTimeAdvance    = errors.New("time step is zero, the end time cannot be reached")
)
