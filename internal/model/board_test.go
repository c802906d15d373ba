package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "github.com/nautica/battleship-zk/internal/model"
)

func TestCanPlace_BoundaryPlacement(t *testing.T) {
	t.Parallel()

	g := m.NewGameState([16]byte{})

	// Boundary placement: scenario 1 from spec.md §8.
	err := g.CanPlace(m.Carrier, m.Position{X: 5, Y: 9}, m.Horizontal)
	assert.NoError(t, err)

	err = g.CanPlace(m.Carrier, m.Position{X: 6, Y: 9}, m.Horizontal)
	assert.ErrorIs(t, err, m.ErrOutOfBounds)
}

func TestApplyShot_ShotBeforeShipStart(t *testing.T) {
	t.Parallel()

	g := m.NewGameState([16]byte{})
	require.NoError(t, g.Place(m.Cruiser, m.Position{X: 5, Y: 5}, m.Horizontal))

	result, ok := g.ApplyShot(m.Position{X: 4, Y: 5})
	require.True(t, ok)
	assert.Equal(t, m.ResultMiss, result.Kind)
	assert.Equal(t, m.Miss, g.Grid[5][4])
	assert.Equal(t, uint32(0), g.Ships[0].Hits)
}

func TestApplyShot_SinkProgression(t *testing.T) {
	t.Parallel()

	g := m.NewGameState([16]byte{})
	require.NoError(t, g.Place(m.Carrier, m.Position{X: 0, Y: 0}, m.Horizontal))

	for x := uint32(0); x < 4; x++ {
		result, ok := g.ApplyShot(m.Position{X: x, Y: 0})
		require.True(t, ok)
		assert.Equal(t, m.ResultHit, result.Kind, "segment %d", x)
	}

	result, ok := g.ApplyShot(m.Position{X: 4, Y: 0})
	require.True(t, ok)
	require.Equal(t, m.ResultSunk, result.Kind)
	assert.Equal(t, m.Carrier, result.Ship)
	assert.True(t, g.Ships[0].IsSunk())
}

func TestApplyShot_IdempotentReShot(t *testing.T) {
	t.Parallel()

	g := m.NewGameState([16]byte{})

	result, ok := g.ApplyShot(m.Position{X: 1, Y: 1})
	require.True(t, ok)
	assert.Equal(t, m.ResultMiss, result.Kind)

	_, ok = g.ApplyShot(m.Position{X: 1, Y: 1})
	assert.False(t, ok)
}

func TestApplyShot_OutOfBounds(t *testing.T) {
	t.Parallel()

	g := m.NewGameState([16]byte{})
	_, ok := g.ApplyShot(m.Position{X: 10, Y: 0})
	assert.False(t, ok)
}

func TestCommit_SensitivityToPepperAndDeterminism(t *testing.T) {
	t.Parallel()

	a := m.NewGameState([16]byte{})
	b := m.NewGameState([16]byte{1})

	require.NoError(t, a.Place(m.Destroyer, m.Position{X: 0, Y: 0}, m.Horizontal))
	require.NoError(t, b.Place(m.Destroyer, m.Position{X: 0, Y: 0}, m.Horizontal))

	assert.NotEqual(t, a.Commit(), b.Commit(), "states differing only by pepper must have distinct digests")

	a2 := a.Clone()
	assert.Equal(t, a.Commit(), a2.Commit(), "clones before divergence commit equally")

	shot := m.Position{X: 5, Y: 5}
	a.ApplyShot(shot)
	a2.ApplyShot(shot)
	assert.Equal(t, a.Commit(), a2.Commit(), "identical shot sequences commit equally")
}

func TestCommit_Determinism(t *testing.T) {
	t.Parallel()

	g := m.NewGameState([16]byte{9, 9, 9})
	require.NoError(t, g.Place(m.Carrier, m.Position{X: 0, Y: 0}, m.Horizontal))

	d1 := g.Commit()
	d2 := g.Commit()
	assert.Equal(t, d1, d2)
}

func TestPlaceAll_NonAtomic(t *testing.T) {
	t.Parallel()

	g := m.NewGameState([16]byte{})
	placements := []m.Placement{
		{Type: m.Carrier, Origin: m.Position{X: 0, Y: 0}, Direction: m.Horizontal},
		{Type: m.Battleship, Origin: m.Position{X: 0, Y: 0}, Direction: m.Horizontal}, // overlaps Carrier
		{Type: m.Cruiser, Origin: m.Position{X: 0, Y: 2}, Direction: m.Horizontal},
	}

	ok := g.PlaceAll(placements)
	assert.False(t, ok)
	// Carrier succeeded before Battleship failed; Cruiser never attempted.
	require.Len(t, g.Ships, 1)
	assert.Equal(t, m.Carrier, g.Ships[0].Type)
}

func TestPlaceAll_OrderPreservedAndWellFormedOnSuccess(t *testing.T) {
	t.Parallel()

	g := m.NewGameState([16]byte{})
	placements := []m.Placement{
		{Type: m.Carrier, Origin: m.Position{X: 0, Y: 0}, Direction: m.Horizontal},
		{Type: m.Battleship, Origin: m.Position{X: 0, Y: 1}, Direction: m.Horizontal},
		{Type: m.Cruiser, Origin: m.Position{X: 0, Y: 2}, Direction: m.Horizontal},
		{Type: m.Submarine, Origin: m.Position{X: 0, Y: 3}, Direction: m.Horizontal},
		{Type: m.Destroyer, Origin: m.Position{X: 0, Y: 4}, Direction: m.Horizontal},
	}

	ok := g.PlaceAll(placements)
	require.True(t, ok)
	require.True(t, g.WellFormed())

	for i, pl := range placements {
		assert.Equal(t, pl.Type, g.Ships[i].Type)
	}
}

func TestPlace_RejectsDuplicateShipType(t *testing.T) {
	t.Parallel()

	g := m.NewGameState([16]byte{})
	require.NoError(t, g.Place(m.Destroyer, m.Position{X: 0, Y: 0}, m.Horizontal))
	err := g.Place(m.Destroyer, m.Position{X: 5, Y: 5}, m.Horizontal)
	assert.ErrorIs(t, err, m.ErrDuplicateShipType)
}

func TestCodec_RoundTrip(t *testing.T) {
	t.Parallel()

	g := m.NewGameState([16]byte{1, 2, 3, 4})
	placements := []m.Placement{
		{Type: m.Carrier, Origin: m.Position{X: 0, Y: 0}, Direction: m.Horizontal},
		{Type: m.Battleship, Origin: m.Position{X: 0, Y: 1}, Direction: m.Horizontal},
		{Type: m.Cruiser, Origin: m.Position{X: 0, Y: 2}, Direction: m.Horizontal},
		{Type: m.Submarine, Origin: m.Position{X: 0, Y: 3}, Direction: m.Horizontal},
		{Type: m.Destroyer, Origin: m.Position{X: 0, Y: 4}, Direction: m.Horizontal},
	}
	require.True(t, g.PlaceAll(placements))
	g.ApplyShot(m.Position{X: 0, Y: 0})
	g.ApplyShot(m.Position{X: 9, Y: 9})

	decoded, err := m.DecodeGameStateBytes(g.Bytes())
	require.NoError(t, err)

	assert.Equal(t, g.Ships, decoded.Ships)
	assert.Equal(t, g.Pepper, decoded.Pepper)
	assert.Equal(t, g.Grid, decoded.Grid)
	assert.Equal(t, g.Commit(), decoded.Commit())
}

func TestPlaceShipsRandomly(t *testing.T) {
	t.Parallel()

	g := m.NewGameState([16]byte{})
	ok := g.PlaceShipsRandomly(randSource(t))
	require.True(t, ok)
	assert.True(t, g.WellFormed())
}
