package model

import "errors"

var (
	// ErrOutOfBounds indicates a position or ship segment falls outside the board.
	ErrOutOfBounds = errors.New("position out of bounds")
	// ErrOverlap indicates a candidate ship placement collides with an existing ship.
	ErrOverlap = errors.New("ship placement overlaps an existing ship")
	// ErrDuplicateShipType indicates a ship of that type has already been placed.
	ErrDuplicateShipType = errors.New("ship type already placed")
	// ErrAlreadyShot indicates the target cell has already been fired upon.
	ErrAlreadyShot = errors.New("cell already shot")
	// ErrNotWellFormed indicates well_formed() failed where it was required to hold.
	ErrNotWellFormed = errors.New("game state is not well-formed")
)
