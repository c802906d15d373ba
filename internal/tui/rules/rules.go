// Package rules defines the client-side board validation rules the TUI
// uses before sending a request, so an obviously-illegal move never
// leaves a round trip's latency between the player and an error.
package rules

import (
	"fmt"

	"github.com/nautica/battleship-zk/internal/dto"
)

// CanAttack reports whether (x, y) is in bounds and not already shot.
func CanAttack(board dto.BoardView, x, y int) error {
	if x < 0 || x >= board.Size || y < 0 || y >= board.Size {
		return fmt.Errorf("coordinates out of bounds: %d,%d", x, y)
	}

	switch board.Grid[y][x] {
	case dto.CellHit, dto.CellMiss, dto.CellSunk:
		return fmt.Errorf("cell already attacked: %d,%d", x, y)
	default:
		return nil
	}
}

// CanPlaceShip reports whether a ship of the given size fits at (x, y)
// with the given orientation, in bounds and without overlapping an
// already-placed ship.
func CanPlaceShip(board dto.BoardView, size, x, y int, vertical bool) error {
	if vertical {
		if y+size > board.Size {
			return fmt.Errorf("ship out of bounds")
		}
	} else if x+size > board.Size {
		return fmt.Errorf("ship out of bounds")
	}

	for i := 0; i < size; i++ {
		cx, cy := x+i, y
		if vertical {
			cx, cy = x, y+i
		}

		if cx < 0 || cx >= board.Size || cy < 0 || cy >= board.Size {
			return fmt.Errorf("coordinates out of bounds")
		}
		if board.Grid[cy][cx] != dto.CellEmpty {
			return fmt.Errorf("overlap with existing ship at %d,%d", cx, cy)
		}
	}

	return nil
}
