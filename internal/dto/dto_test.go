package dto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nautica/battleship-zk/internal/dto"
	"github.com/nautica/battleship-zk/internal/model"
)

func TestPlaceShipRequest_ToModel(t *testing.T) {
	t.Parallel()

	req := dto.PlaceShipRequest{ShipName: "Destroyer", X: 1, Y: 2, Orientation: "vertical"}
	pl, ok := req.ToModel()
	assert.True(t, ok)
	assert.Equal(t, model.Destroyer, pl.Type)
	assert.Equal(t, model.Position{X: 1, Y: 2}, pl.Origin)
	assert.Equal(t, model.Vertical, pl.Direction)
}

func TestPlaceShipRequest_ToModel_RejectsUnknownShip(t *testing.T) {
	t.Parallel()

	_, ok := dto.PlaceShipRequest{ShipName: "Dreadnought", Orientation: "horizontal"}.ToModel()
	assert.False(t, ok)
}

func TestPlaceShipRequest_ToModel_RejectsUnknownOrientation(t *testing.T) {
	t.Parallel()

	_, ok := dto.PlaceShipRequest{ShipName: "Carrier", Orientation: "diagonal"}.ToModel()
	assert.False(t, ok)
}

func TestHitTypeToResponse(t *testing.T) {
	t.Parallel()

	assert.Equal(t, dto.FireResponse{Result: "miss"}, dto.HitTypeToResponse(model.MissResult()))
	assert.Equal(t, dto.FireResponse{Result: "hit"}, dto.HitTypeToResponse(model.HitResult()))
	assert.Equal(t, dto.FireResponse{Result: "sunk", Ship: "Cruiser"}, dto.HitTypeToResponse(model.SunkResult(model.Cruiser)))
}

func TestBoardViewOwn_RevealsUnhitShipCells(t *testing.T) {
	t.Parallel()

	g := model.NewGameState([16]byte{1})
	require.NoError(t, g.Place(model.Destroyer, model.Position{X: 2, Y: 2}, model.Horizontal))
	_, ok := g.ApplyShot(model.Position{X: 2, Y: 2})
	assert.True(t, ok)

	view := dto.BoardViewOwn(g)
	assert.Equal(t, dto.CellHit, view.Grid[2][2])
	assert.Equal(t, dto.CellShip, view.Grid[2][3])
	assert.Equal(t, dto.CellEmpty, view.Grid[0][0])
}

func TestBoardViewFrom_NeverRevealsShipCells(t *testing.T) {
	t.Parallel()

	var grid [model.BoardSize][model.BoardSize]model.CellState
	grid[0][0] = model.Hit
	grid[1][1] = model.Miss
	// grid[2][2] remains Empty: an unshot cell, whether or not a ship
	// occupies it, must render as unknown to a spectator.

	view := dto.BoardViewFrom(grid)
	assert.Equal(t, model.BoardSize, view.Size)
	assert.Equal(t, dto.CellHit, view.Grid[0][0])
	assert.Equal(t, dto.CellMiss, view.Grid[1][1])
	assert.Equal(t, dto.CellUnknown, view.Grid[2][2])
}
