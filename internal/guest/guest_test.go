package guest_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nautica/battleship-zk/internal/guest"
	"github.com/nautica/battleship-zk/internal/model"
)

func wellFormedBoard(t *testing.T) *model.GameState {
	t.Helper()
	g := model.NewGameState([16]byte{7})
	ok := g.PlaceAll([]model.Placement{
		{Type: model.Carrier, Origin: model.Position{X: 0, Y: 0}, Direction: model.Horizontal},
		{Type: model.Battleship, Origin: model.Position{X: 0, Y: 1}, Direction: model.Horizontal},
		{Type: model.Cruiser, Origin: model.Position{X: 0, Y: 2}, Direction: model.Horizontal},
		{Type: model.Submarine, Origin: model.Position{X: 0, Y: 3}, Direction: model.Horizontal},
		{Type: model.Destroyer, Origin: model.Position{X: 0, Y: 4}, Direction: model.Horizontal},
	})
	require.True(t, ok)
	return g
}

func TestRun_RejectsNotWellFormed(t *testing.T) {
	t.Parallel()

	g := model.NewGameState([16]byte{})
	_, err := guest.Run(g, []model.Position{{X: 0, Y: 0}})
	assert.ErrorIs(t, err, guest.ErrNotWellFormed)
}

func TestRun_JournalTracksEachShot(t *testing.T) {
	t.Parallel()

	g := wellFormedBoard(t)
	initialCommit := g.Commit()

	shots := []model.Position{{X: 0, Y: 0}, {X: 5, Y: 5}}
	journal, err := guest.Run(g, shots)
	require.NoError(t, err)

	assert.Equal(t, initialCommit, journal.Initial)
	require.Len(t, journal.Commits, 2)

	assert.Equal(t, initialCommit, journal.Commits[0].OldState)
	assert.Equal(t, model.ResultHit, journal.Commits[0].Hit.Kind)
	assert.Equal(t, journal.Commits[0].NewState, journal.Commits[1].OldState)
	assert.Equal(t, model.ResultMiss, journal.Commits[1].Hit.Kind)

	// The guest must not mutate the caller's state.
	assert.Equal(t, initialCommit, g.Commit())
}

func TestRun_MalformedShotIsNoOpMiss(t *testing.T) {
	t.Parallel()

	g := wellFormedBoard(t)
	before := g.Commit()

	journal, err := guest.Run(g, []model.Position{{X: 99, Y: 99}})
	require.NoError(t, err)

	require.Len(t, journal.Commits, 1)
	rc := journal.Commits[0]
	assert.Equal(t, model.ResultMiss, rc.Hit.Kind)
	assert.Equal(t, before, rc.OldState)
	assert.Equal(t, before, rc.NewState)
}

func TestRun_RepeatedShotIsNoOpMiss(t *testing.T) {
	t.Parallel()

	g := wellFormedBoard(t)
	journal, err := guest.Run(g, []model.Position{{X: 0, Y: 0}, {X: 0, Y: 0}})
	require.NoError(t, err)
	require.Len(t, journal.Commits, 2)

	assert.Equal(t, model.ResultHit, journal.Commits[0].Hit.Kind)
	assert.Equal(t, model.ResultMiss, journal.Commits[1].Hit.Kind)
	assert.Equal(t, journal.Commits[0].NewState, journal.Commits[1].OldState)
	assert.Equal(t, journal.Commits[1].OldState, journal.Commits[1].NewState)
}
