package pricing

import "errors"

var (
	// ErrInvalidParameter is returned when market inputs fail validation.
	ErrInvalidParameter = errors.New("invalid pricing parameter")
	// ErrDegenerateLattice is returned when the derived transition
	// probabilities fall outside [0,1] for the given inputs.
	ErrDegenerateLattice = errors.New("degenerate lattice parameters")
	// ErrNumericalInstability is returned when a NaN or Inf appears
	// mid-lattice.
	ErrNumericalInstability = errors.New("numerical instability in lattice")
)
