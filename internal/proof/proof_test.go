package proof_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nautica/battleship-zk/internal/guest"
	"github.com/nautica/battleship-zk/internal/model"
	"github.com/nautica/battleship-zk/internal/proof"
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

func TestProve_ProducesVerifiableReceipt(t *testing.T) {
	t.Parallel()

	g := wellFormedBoard(t)
	shot := model.Position{X: 0, Y: 0}

	r, err := proof.Prove(proof.GuestInput{Initial: g, Shots: []model.Position{shot}})
	require.NoError(t, err)
	assert.Equal(t, proof.ProgramIdentity, r.ProgramID)
	require.Len(t, r.Journal.Commits, 1)

	commits, err := proof.VerifyAsDefender(r, g, shot)
	require.NoError(t, err)
	require.Len(t, commits, 1)
	assert.Equal(t, model.ResultHit, commits[0].Hit.Kind)
}

func TestProve_RejectsNotWellFormed(t *testing.T) {
	t.Parallel()

	g := model.NewGameState([16]byte{})
	_, err := proof.Prove(proof.GuestInput{Initial: g, Shots: []model.Position{{X: 0, Y: 0}}})
	assert.ErrorIs(t, err, proof.ErrProverUnavailable)
}

func TestVerifyAsDefender_RejectsTamperedSeal(t *testing.T) {
	t.Parallel()

	g := wellFormedBoard(t)
	shot := model.Position{X: 0, Y: 0}
	r, err := proof.Prove(proof.GuestInput{Initial: g, Shots: []model.Position{shot}})
	require.NoError(t, err)

	r.Journal.Commits[0].Hit = model.MissResult()

	_, err = proof.VerifyAsDefender(r, g, shot)
	assert.ErrorIs(t, err, proof.ErrProofInvalid)
}

func TestVerifyAsDefender_RejectsWrongShot(t *testing.T) {
	t.Parallel()

	g := wellFormedBoard(t)
	shot := model.Position{X: 0, Y: 0}
	r, err := proof.Prove(proof.GuestInput{Initial: g, Shots: []model.Position{shot}})
	require.NoError(t, err)

	_, err = proof.VerifyAsDefender(r, g, model.Position{X: 1, Y: 1})
	assert.ErrorIs(t, err, proof.ErrProofMismatch)
}

func TestVerifyAsDefender_RejectsStaleServerState(t *testing.T) {
	t.Parallel()

	g := wellFormedBoard(t)
	shot := model.Position{X: 0, Y: 0}
	r, err := proof.Prove(proof.GuestInput{Initial: g, Shots: []model.Position{shot}})
	require.NoError(t, err)

	_, ok := g.ApplyShot(model.Position{X: 9, Y: 9})
	require.True(t, ok)

	_, err = proof.VerifyAsDefender(r, g, shot)
	assert.ErrorIs(t, err, proof.ErrProofMismatch)
}

func TestVerifyAsShooter_MatchesRecordedCommitment(t *testing.T) {
	t.Parallel()

	g := wellFormedBoard(t)
	expectedOld := g.Commit()
	shot := model.Position{X: 0, Y: 0}

	r, err := proof.Prove(proof.GuestInput{Initial: g, Shots: []model.Position{shot}})
	require.NoError(t, err)

	rc, err := proof.VerifyAsShooter(r, expectedOld, shot)
	require.NoError(t, err)
	assert.Equal(t, model.ResultHit, rc.Hit.Kind)
	assert.NotEqual(t, rc.OldState, rc.NewState)
}

func TestVerifyAsShooter_RejectsStaleCommitment(t *testing.T) {
	t.Parallel()

	g := wellFormedBoard(t)
	shot := model.Position{X: 0, Y: 0}
	r, err := proof.Prove(proof.GuestInput{Initial: g, Shots: []model.Position{shot}})
	require.NoError(t, err)

	var stale model.Digest
	_, err = proof.VerifyAsShooter(r, stale, shot)
	assert.ErrorIs(t, err, proof.ErrProofMismatch)
}

func TestProofData_RoundTrip(t *testing.T) {
	t.Parallel()

	g := wellFormedBoard(t)
	shot := model.Position{X: 0, Y: 0}
	r, err := proof.Prove(proof.GuestInput{Initial: g, Shots: []model.Position{shot}})
	require.NoError(t, err)

	pd, err := proof.ToProofData(r)
	require.NoError(t, err)
	assert.Equal(t, r.Journal.Commits[0], pd.Commit)

	back, err := proof.FromProofData(pd)
	require.NoError(t, err)
	assert.Equal(t, r, back)

	_, err = proof.VerifyAsDefender(back, g, shot)
	require.NoError(t, err)
}

func TestProofData_DecodeRejectsGarbage(t *testing.T) {
	t.Parallel()

	_, err := proof.FromProofData(proof.ProofData{ReceiptBytes: []byte("not a gob stream")})
	require.Error(t, err)
}

func TestGuestJournal_SensitiveToShotOrder(t *testing.T) {
	t.Parallel()

	g := wellFormedBoard(t)
	shots := []model.Position{{X: 0, Y: 0}, {X: 5, Y: 5}}

	j1, err := guest.Run(g, shots)
	require.NoError(t, err)

	reversed := []model.Position{shots[1], shots[0]}
	j2, err := guest.Run(g, reversed)
	require.NoError(t, err)

	assert.NotEqual(t, j1.Commits, j2.Commits)
}
