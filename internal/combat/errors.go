package combat

import "errors"

var (
	// ErrInvariant marks a broken routing or scheduling invariant: a unit
	// off the grid, on a wall, or sharing a cell with another live unit.
	// The battle that hit it is aborted.
	ErrInvariant = errors.New("battle invariant violated")

	ErrStalemate         = errors.New("stalemate: a full round changed nothing")
	ErrRoundLimit        = errors.New("round limit reached")
	ErrNoFlawlessVictory = errors.New("no boost wins without casualties")
)
